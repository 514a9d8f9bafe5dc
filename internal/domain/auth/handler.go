package auth

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/pandalens/pandalens-api/internal/pkg/errorhandler"
	"github.com/pandalens/pandalens-api/internal/pkg/response"
	"github.com/pandalens/pandalens-api/internal/pkg/session"
	"github.com/pandalens/pandalens-api/internal/pkg/validator"
)

// Handler handles auth HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates auth handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// SignUp handles POST /auth/sign-up
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		errorhandler.Validation(r.Context(), w, errs)
		return
	}

	result, err := h.service.SignUp(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err, "auth.sign_up")
		return
	}

	response.Created(w, result)
}

// SignIn handles POST /auth/sign-in
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		errorhandler.Validation(r.Context(), w, errs)
		return
	}

	result, err := h.service.SignIn(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err, "auth.sign_in")
		return
	}

	if result.Created {
		response.Created(w, result)
		return
	}
	response.OK(w, result)
}

// Refresh handles POST /auth/refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	result, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.writeError(w, r, err, "auth.refresh")
		return
	}

	response.OK(w, result)
}

// SignOut handles POST /auth/sign-out
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if r.ContentLength != 0 {
		if err := response.DecodeJSON(r.Body, &req); err != nil {
			response.BadRequest(w, "Invalid JSON body")
			return
		}
	}

	if err := h.service.SignOut(r.Context(), session.FromContext(r.Context()), req.RefreshToken); err != nil {
		// The access token expires on its own; the client is signed out either way.
		log.Warn().Err(err).Msg("Failed to revoke refresh token")
	}

	response.NoContent(w)
}

// Session handles GET /auth/session
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.Session(r.Context(), session.FromContext(r.Context()))
	if err != nil {
		errorhandler.Internal(r.Context(), w, err, "auth.session")
		return
	}

	response.OK(w, SessionResponse{User: u})
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	switch {
	case errors.Is(err, ErrEmailAlreadyExists):
		response.Conflict(w, response.CodeConflict, "Email already registered")
	case errors.Is(err, ErrInvalidCredentials):
		response.Unauthorized(w, "Invalid email or password")
	case errors.Is(err, ErrPasswordTooShort):
		errorhandler.Validation(r.Context(), w, map[string]string{"password": "Value is too short (min: 6)"})
	case errors.Is(err, ErrRefreshTokenRequired):
		response.BadRequest(w, "Refresh token is required")
	case errors.Is(err, ErrInvalidRefreshToken), errors.Is(err, ErrUserNotFound):
		response.Unauthorized(w, "Invalid or expired refresh token")
	default:
		errorhandler.Internal(r.Context(), w, err, operation)
	}
}
