package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/pandalens/pandalens-api/internal/config"
	"github.com/pandalens/pandalens-api/internal/domain/auth"
	"github.com/pandalens/pandalens-api/internal/domain/availability"
	"github.com/pandalens/pandalens-api/internal/domain/booking"
	"github.com/pandalens/pandalens-api/internal/domain/follow"
	"github.com/pandalens/pandalens-api/internal/domain/photographer"
	"github.com/pandalens/pandalens-api/internal/domain/portfolio"
	"github.com/pandalens/pandalens-api/internal/domain/realtime"
	"github.com/pandalens/pandalens-api/internal/domain/user"
	"github.com/pandalens/pandalens-api/internal/middleware"
	"github.com/pandalens/pandalens-api/internal/pkg/database"
	"github.com/pandalens/pandalens-api/internal/pkg/email"
	"github.com/pandalens/pandalens-api/internal/pkg/events"
	"github.com/pandalens/pandalens-api/internal/pkg/imaging"
	"github.com/pandalens/pandalens-api/internal/pkg/jwt"
	"github.com/pandalens/pandalens-api/internal/pkg/logger"
	"github.com/pandalens/pandalens-api/internal/pkg/metrics"
	pkgresponse "github.com/pandalens/pandalens-api/internal/pkg/response"
	"github.com/pandalens/pandalens-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	logCloser := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		LogFile:     cfg.LogFile,
	})
	defer logCloser.Close()

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting PandaLens API")

	if cfg.IsProduction() && cfg.HasDefaultSecret() {
		log.Fatal().Msg("JWT_SECRET must be set in production")
	}

	db, err := database.NewPostgres(cfg.DatabaseURL, database.PostgresOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	publisher, err := events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to RabbitMQ")
	}
	defer publisher.Close()

	store, err := storage.NewS3Storage(context.Background(), storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create S3 storage")
	}

	mailer := email.NewService(email.Config{
		SendGrid: email.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailFromName,
		},
		Currency: cfg.CurrencySymbol,
	})
	defer mailer.Close()

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	// ---------- WebSocket hub ----------
	hub := realtime.NewHub(redis)
	go hub.Run()
	defer hub.Shutdown()

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	photographerRepo := photographer.NewRepository(db)
	availabilityRepo := availability.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	followRepo := follow.NewRepository(db)
	portfolioRepo := portfolio.NewRepository(db)

	// ---------- Services ----------
	photographerService := photographer.NewService(photographerRepo)
	availabilityService := availability.NewService(
		availabilityRepo,
		availability.NewWeekCache(redis, cfg.AvailabilityCacheTTL),
		cfg.Location(),
	)
	bookingService := booking.NewService(
		bookingRepo,
		availabilityService,
		booking.NewSlotHold(redis, cfg.SlotHoldTTL),
		publisher,
	).WithMailer(mailer)
	followService := follow.NewService(followRepo, photographerService)
	portfolioService := portfolio.NewService(
		portfolioRepo,
		photographerService,
		store,
		imaging.NewProcessor(imaging.DefaultConfig()),
	)
	authService := auth.NewService(
		userRepo,
		jwtService,
		auth.NewRefreshStore(redis, cfg.JWTRefreshTTL),
		hub,
	).WithMailer(mailer)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	photographerHandler := photographer.NewHandler(photographerService)
	availabilityHandler := availability.NewHandler(availabilityService, cfg.CurrencySymbol)
	bookingHandler := booking.NewHandler(bookingService, cfg.CurrencySymbol)
	followHandler := follow.NewHandler(followService)
	portfolioHandler := portfolio.NewHandler(portfolioService)
	realtimeHandler := realtime.NewHandler(hub, jwtService, cfg.AllowedOrigins)

	authMiddleware := middleware.Auth(jwtService)
	optionalAuth := middleware.OptionalAuth(jwtService)
	photographerOnly := func(next http.Handler) http.Handler {
		return authMiddleware(middleware.RequireRole(string(user.RolePhotographer))(next))
	}
	signInLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
	bookingLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	// WebSocket endpoint (before Compress)
	r.Mount("/ws", realtimeHandler.Routes())

	r.Group(func(r chi.Router) {
		r.Use(chimw.Compress(5))

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			status := "ok"
			if err := db.PingContext(ctx); err != nil {
				status = "degraded"
			}
			pkgresponse.OK(w, map[string]string{
				"status":  status,
				"version": "1.0.0",
			})
		})
		r.Handle("/metrics", metrics.Handler())

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
				pkgresponse.OK(w, map[string]string{"message": "pong"})
			})

			r.Mount("/auth", authHandler.Routes(optionalAuth, signInLimiter.Middleware))
			r.Mount("/availability", availabilityHandler.Routes())
			r.Mount("/bookings", bookingHandler.Routes(authMiddleware, optionalAuth, bookingLimiter.Middleware))
			r.Mount("/me", followHandler.MeRoutes(authMiddleware))

			mountPhotographerRoutes(r,
				photographerHandler.MountDirectory,
				photographerHandler.MountProfile,
				availabilityHandler.MountWeek,
				func(r chi.Router) { followHandler.MountPhotographer(r, optionalAuth) },
				func(r chi.Router) { portfolioHandler.MountPhotographer(r, photographerOnly) },
			)
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

// mountPhotographerRoutes registers /photographers once. The first mount
// receives the directory router; every other mount shares the
// /{photographerID} router so no two packages mount the same prefix.
func mountPhotographerRoutes(r chi.Router, directory func(chi.Router), perPhotographer ...func(chi.Router)) {
	r.Route("/photographers", func(r chi.Router) {
		directory(r)
		r.Route("/{photographerID}", func(r chi.Router) {
			for _, mount := range perPhotographer {
				mount(r)
			}
		})
	})
}
