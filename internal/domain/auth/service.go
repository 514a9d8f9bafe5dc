package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pandalens/pandalens-api/internal/domain/user"
	"github.com/pandalens/pandalens-api/internal/pkg/jwt"
	"github.com/pandalens/pandalens-api/internal/pkg/logger"
	"github.com/pandalens/pandalens-api/internal/pkg/password"
	"github.com/pandalens/pandalens-api/internal/pkg/session"
)

// Session change events pushed to a user's open connections.
const (
	EventSignedIn       = "SIGNED_IN"
	EventSignedOut      = "SIGNED_OUT"
	EventTokenRefreshed = "TOKEN_REFRESHED"
)

// RefreshTokens stores hashed refresh tokens.
type RefreshTokens interface {
	Save(ctx context.Context, tokenHash string, userID uuid.UUID) error
	Lookup(ctx context.Context, tokenHash string) (uuid.UUID, error)
	Take(ctx context.Context, tokenHash string) (uuid.UUID, error)
	Delete(ctx context.Context, tokenHash string) error
}

// SessionNotifier tells a user's other clients that their session changed.
type SessionNotifier interface {
	NotifySession(ctx context.Context, userID uuid.UUID, event string)
}

// WelcomeMailer greets newly created accounts.
type WelcomeMailer interface {
	SendWelcome(to, name string)
}

// Service handles authentication business logic
type Service struct {
	userRepo   user.Repository
	jwtService *jwt.Service
	tokens     RefreshTokens
	notifier   SessionNotifier // nil disables notifications
	mailer     WelcomeMailer
}

// NewService creates auth service
func NewService(userRepo user.Repository, jwtService *jwt.Service, tokens RefreshTokens, notifier SessionNotifier) *Service {
	return &Service{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokens:     tokens,
		notifier:   notifier,
	}
}

// WithMailer enables welcome emails for new accounts.
func (s *Service) WithMailer(m WelcomeMailer) *Service {
	s.mailer = m
	return s
}

// SignUp creates a client account and signs it in.
func (s *Service) SignUp(ctx context.Context, req *SignUpRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	u, err := s.createUser(ctx, email, req.Password, req.DisplayName)
	if err != nil {
		return nil, err
	}
	return s.signedIn(ctx, u, true)
}

// SignIn authenticates by email and password. When no account exists for
// the email yet, one is created with these credentials. A wrong password
// for an existing account is ErrInvalidCredentials.
func (s *Service) SignIn(ctx context.Context, req *SignInRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)

	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if u == nil {
		u, err = s.createUser(ctx, email, req.Password, "")
		if errors.Is(err, ErrEmailAlreadyExists) {
			// Lost a race with a concurrent sign-up for the same email.
			return nil, ErrInvalidCredentials
		}
		if err != nil {
			return nil, err
		}
		logger.FromContext(ctx).Info().Str("user_id", u.ID.String()).Msg("Account created on first sign-in")
		return s.signedIn(ctx, u, true)
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.TouchLastSignIn(ctx, u.ID); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Msg("Failed to record sign-in time")
	}
	return s.signedIn(ctx, u, false)
}

// Refresh redeems a refresh token for a new token pair. The old refresh
// token stops working.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	if refreshToken == "" {
		return nil, ErrRefreshTokenRequired
	}

	userID, err := s.tokens.Take(ctx, jwt.HashRefreshToken(refreshToken))
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}

	resp, err := s.issueTokens(ctx, u, false)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, u.ID, EventTokenRefreshed)
	return resp, nil
}

// SignOut revokes refreshToken. Signing out without a token, or twice, is
// not an error.
func (s *Service) SignOut(ctx context.Context, sess *session.Session, refreshToken string) error {
	userID := uuid.Nil
	if !sess.IsGuest() {
		userID = sess.UserID
	}

	if refreshToken != "" {
		hash := jwt.HashRefreshToken(refreshToken)
		if userID == uuid.Nil {
			if owner, err := s.tokens.Lookup(ctx, hash); err == nil {
				userID = owner
			}
		}
		if err := s.tokens.Delete(ctx, hash); err != nil {
			return err
		}
	}

	if userID != uuid.Nil {
		s.notify(ctx, userID, EventSignedOut)
	}
	return nil
}

// Session returns the signed-in user, or nil when there is no session.
// A token whose account no longer exists is also no session.
func (s *Service) Session(ctx context.Context, sess *session.Session) (*UserResponse, error) {
	if sess.IsGuest() {
		return nil, nil
	}
	u, err := s.userRepo.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	resp := NewUserResponse(u)
	return &resp, nil
}

func (s *Service) createUser(ctx context.Context, email, rawPassword, displayName string) (*user.User, error) {
	hash, err := password.Hash(rawPassword)
	if err != nil {
		if errors.Is(err, password.ErrTooShort) {
			return nil, ErrPasswordTooShort
		}
		return nil, err
	}

	now := time.Now().UTC()
	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
		Role:         user.RoleClient,
		LastSignInAt: &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrEmailAlreadyExists) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	if s.mailer != nil {
		s.mailer.SendWelcome(u.Email, u.DisplayName)
	}
	return u, nil
}

func (s *Service) signedIn(ctx context.Context, u *user.User, created bool) (*AuthResponse, error) {
	resp, err := s.issueTokens(ctx, u, created)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, u.ID, EventSignedIn)
	return resp, nil
}

func (s *Service) issueTokens(ctx context.Context, u *user.User, created bool) (*AuthResponse, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Save(ctx, jwt.HashRefreshToken(refreshToken), u.ID); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:    NewUserResponse(u),
		Created: created,
		Tokens: TokensResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresIn:    int(s.jwtService.AccessTTL().Seconds()),
			TokenType:    "Bearer",
		},
	}, nil
}

func (s *Service) notify(ctx context.Context, userID uuid.UUID, event string) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifySession(ctx, userID, event)
}
