// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/liftingtracker/backend/internal/admin"
	"github.com/liftingtracker/backend/internal/auth"
	"github.com/liftingtracker/backend/internal/billing"
	"github.com/liftingtracker/backend/internal/config"
	"github.com/liftingtracker/backend/internal/core"
	"github.com/liftingtracker/backend/internal/exercise"
	"github.com/liftingtracker/backend/internal/health"
	"github.com/liftingtracker/backend/internal/middleware"
	"github.com/liftingtracker/backend/internal/registration"
	"github.com/liftingtracker/backend/internal/server"
	"github.com/liftingtracker/backend/internal/user"
	"github.com/liftingtracker/backend/internal/workout"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	_ = godotenv.Load() //nolint:errcheck // .env is optional

	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	csrfGuard := middleware.NewCSRFGuard(redis.Client)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	authRepo := auth.NewRepository(db.DB)
	authSvc := auth.NewService(authRepo, jwtManager, userSvc, redis.Client)
	authHandler := auth.NewHandler(authSvc, csrfGuard)

	stripeProvider := billing.NewStripeProvider(cfg.Stripe)
	billingSvc := billing.NewService(stripeProvider, userSvc, logger)
	billingHandler := billing.NewHandler(billingSvc)
	webhookHandler := billing.NewWebhookHandler(billingSvc, stripeProvider, logger)

	draftStore := registration.NewStore(redis.Client, cfg.Registration.DraftTTL)
	registrationSvc := registration.NewService(draftStore, userSvc, authSvc, logger)
	registrationHandler := registration.NewHandler(registrationSvc, csrfGuard)

	workoutRepo := workout.NewRepository(db.DB)
	workoutSvc := workout.NewService(workoutRepo, logger)
	workoutHandler := workout.NewHandler(workoutSvc)

	exerciseRepo := exercise.NewRepository(db.DB)
	exerciseSvc := exercise.NewService(exerciseRepo, logger)
	exerciseHandler := exercise.NewHandler(exerciseSvc)

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		AuthSvc:    authSvc,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(jwtManager)
	adminOnly := middleware.RequireAdmin
	subscribed := billing.RequireActiveSubscription(billingSvc)

	planLimiter := middleware.PlanRateLimiter(
		redis.Client,
		middleware.PlanLimits,
		func(r *http.Request) string {
			userID := middleware.GetUserID(r.Context())
			active, planErr := billingSvc.HasActiveSubscription(r.Context(), userID)
			if planErr != nil || !active {
				return "free"
			}
			return "subscriber"
		},
	)

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)
		registrationHandler.RegisterRoutes(r)

		// Authenticated by payload signature, not by session.
		webhookHandler.RegisterRoutes(r)

		userHandler.RegisterRoutes(r, authenticator, csrfGuard.Require)
		billingHandler.RegisterRoutes(r, authenticator, csrfGuard.Require, planLimiter)
		workoutHandler.RegisterRoutes(r, authenticator, subscribed, csrfGuard.Require, planLimiter)
		exerciseHandler.RegisterRoutes(r, authenticator)

		userHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		exerciseHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
