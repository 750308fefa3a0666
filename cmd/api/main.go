// @title Holiday Planner API
// @version 1.0
// @description Experiences and holiday trips published by organisers.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/crypto/bcrypt"

	"holidayplanner/config"
	_ "holidayplanner/docs"
	"holidayplanner/internal/adapters/auth"
	"holidayplanner/internal/adapters/email"
	"holidayplanner/internal/adapters/messaging"
	deliveryhttp "holidayplanner/internal/delivery/http"
	"holidayplanner/internal/delivery/http/controllers"
	"holidayplanner/internal/delivery/http/middleware"
	"holidayplanner/internal/domain"
	"holidayplanner/internal/repository/cache"
	"holidayplanner/internal/repository/postgres"
	"holidayplanner/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := config.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		logger.Warn("database not reachable at startup", "err", err)
	}
	cancelPing()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	tripRepo := postgres.NewTripRepository(db)
	experienceRepo := postgres.NewExperienceRepository(db)
	if cfg.RedisURL != "" {
		rdb, err := config.NewRedisClient(cfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, experience cache disabled", "err", err)
		} else {
			defer rdb.Close()
			experienceRepo = cache.NewExperienceRepository(experienceRepo, rdb, cfg.CacheTTLList, logger)
		}
	}

	// Adapters
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	issuer := auth.NewJWTIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		logger.Error("failed to load email templates", "err", err)
		os.Exit(1)
	}

	var publisher domain.ExperiencePublisher = messaging.NewNoopPublisher(logger)
	if cfg.RabbitURL != "" {
		p, err := messaging.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange, logger)
		if err != nil {
			logger.Warn("rabbitmq unavailable, experience events disabled", "err", err)
		} else {
			defer p.Close()
			publisher = p
		}
	}

	// Services
	userService := services.NewUserService(userRepo, hasher, issuer, cfg.ServiceTimeout)
	experienceService := services.NewExperienceService(experienceRepo, userRepo, cfg.ServiceTimeout)
	tripService := services.NewTripService(tripRepo, cfg.ServiceTimeout)
	emailService := services.NewEmailService(mailer, renderer)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(registry)

	mux := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Experiences: controllers.NewExperienceController(logger, experienceService, userService, emailService, publisher),
		Trips:       controllers.NewTripController(logger, tripService),
		Users:       controllers.NewUserController(logger, userService, emailService),
		Health:      controllers.NewHealthController(logger, db),
	}, deliveryhttp.RouterConfig{
		RequireAuth:    middleware.RequireAuth(verifier, logger),
		AuthRateLimit:  cfg.RateLimitLogin,
		AuthRateWindow: cfg.RateLimitWindow,
		Metrics:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	// Metrics wraps the mux directly so the matched route pattern is visible to it.
	handler := middleware.CORS(cfg.CORSAllowedOrigins,
		middleware.RequestID(
			middleware.LoggingMiddleware(logger, metrics.Handler(mux)),
		),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
