package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"car-blog/cmd/api/auth"
	"car-blog/cmd/api/event/dispatcher"
	"car-blog/cmd/api/middleware"
	"car-blog/cmd/api/router"
	"car-blog/cmd/api/services"
	"car-blog/cmd/api/upload"
	"car-blog/config"
	"car-blog/db"
	"car-blog/eventbus"
	"car-blog/internal/logger"
	"car-blog/repositories"
)

// @title           Car Blog API
// @version         1.0
// @description     Car blog listings with cookie based JWT authentication and image uploads
// @BasePath        /api
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.Init(ctx); err != nil {
		logger.ErrorWithFields("failed to initialize MongoDB", logger.Fields{"error": err.Error()})
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Disconnect(shutdownCtx); err != nil {
			logger.WarnWithFields("MongoDB disconnect failed", logger.Fields{"error": err.Error()})
		}
	}()

	tokens, err := auth.NewJWTManagerFromEnv(cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	if err != nil {
		logger.ErrorWithFields("failed to initialize token verifier", logger.Fields{"error": err.Error()})
		os.Exit(1)
	}

	bus := newEventBus(ctx, cfg.Kafka)
	defer bus.Close()

	uploader := upload.New(upload.Config{
		Dir:          cfg.Upload.Dir,
		PublicPrefix: cfg.Upload.PublicPrefix,
		MaxSize:      cfg.Upload.MaxSizeBytes,
	})

	users := repositories.NewUserRepository(db.Database())
	blogs := repositories.NewBlogRepository(db.Database())

	blogService := services.NewBlogService(
		blogs,
		users,
		tokens,
		uploader,
		dispatcher.NewEventDispatcher(bus, blogTopic(cfg.Kafka)),
		services.BlogServiceOptions{
			EnforceOwnership: cfg.Blog.EnforceOwnership,
			PublishTimeout:   cfg.Kafka.PublishTimeout,
		},
	)
	authService := services.NewAuthService(users, tokens)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var limiter *middleware.IPRateLimiter
	if cfg.RateLimit.RequestsPerMinute > 0 {
		limiter = middleware.NewIPRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}

	r := router.New(router.Dependencies{
		BlogService:  blogService,
		AuthService:  authService,
		UploadDir:    uploader.Dir(),
		UploadPrefix: uploader.Prefix(),
		MaxImageSize: uploader.MaxSize(),
		CookieSecure: cfg.Auth.CookieSecure,
		ClientDist:   cfg.Server.ClientDist,
		AuthLimiter:  limiter,
		Registry:     registry,
		Health:       db.Ping,

		TrustedProxies: cfg.Server.TrustedProxies,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router.WithCORS(r, cfg.Server.ClientURL),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.InfoWithFields("starting api server", logger.Fields{
			"addr":              cfg.Server.Addr,
			"client_url":        cfg.Server.ClientURL,
			"enforce_ownership": cfg.Blog.EnforceOwnership,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorWithFields("api server stopped", logger.Fields{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()
	logger.Log.Info("shutting down api server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithFields("graceful shutdown failed", logger.Fields{"error": err.Error()})
	}
}

// newEventBus connects to Kafka when brokers are configured. Without brokers,
// or when Kafka is unreachable at startup, events are dropped.
func newEventBus(ctx context.Context, cfg config.KafkaConfig) eventbus.EventBus {
	if cfg.Brokers == "" {
		logger.Log.Info("kafka brokers not configured, blog events disabled")
		return eventbus.NoopBus{}
	}

	topic := blogTopic(cfg)
	if err := eventbus.EnsureTopics(ctx, cfg.Brokers, topic, 3); err != nil {
		logger.WarnWithFields("failed to ensure eventbus topics", logger.Fields{
			"topic": topic.Base(),
			"error": err.Error(),
		})
	}

	bus, err := eventbus.NewKafkaEventBus(cfg.Brokers, cfg.PublishTimeout)
	if err != nil {
		logger.ErrorWithFields("failed to create event bus, blog events disabled", logger.Fields{"error": err.Error()})
		return eventbus.NoopBus{}
	}
	return bus
}

func blogTopic(cfg config.KafkaConfig) eventbus.Topic {
	if cfg.Topic == "" {
		return eventbus.TopicBlogEvents
	}
	return eventbus.NewTopic(cfg.Topic)
}
