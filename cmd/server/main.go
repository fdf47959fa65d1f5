package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	"advisor/internal/adapters/ai"
	"advisor/internal/adapters/config"
	"advisor/internal/adapters/errors/noop"
	"advisor/internal/adapters/errors/sentry"
	advisorredis "advisor/internal/adapters/redis"
	"advisor/internal/agents"
	"advisor/internal/api/health"
	httpapi "advisor/internal/api/http"
	"advisor/internal/domain/session"
	"advisor/internal/metrics"
	"advisor/internal/repository/memory"
	redisrepo "advisor/internal/repository/redis"
	"advisor/internal/tools"
	"advisor/pkg/errors"
	"advisor/pkg/logger"
	"advisor/pkg/templates"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	metrics.Init()

	redisClient := initRedis(cfg, log)
	sessions := initSessionRepository(cfg, redisClient, log)

	provider, err := ai.NewOpenAIProvider(cfg.AI)
	if err != nil {
		log.Fatalf("Failed to initialize OpenAI provider: %v", err)
	}

	toolClient := initTools(cfg, log)
	orchestrator := agents.NewOrchestrator(provider, toolClient, sessions, templates.Get())

	handler := httpapi.NewHandler(orchestrator, sessions)
	var healthRedis *goredis.Client
	if redisClient != nil {
		healthRedis = redisClient.Client()
	}
	healthHandler := health.New(log, healthRedis, cfg.App.Name, version())

	srv := &http.Server{
		Addr:              cfg.App.Addr(),
		Handler:           httpapi.NewRouter(handler, healthHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("HTTP server listening on %s", cfg.App.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	waitForShutdown(srv, redisClient, errorTracker, log)
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}

// initRedis connects to Redis when the session backend requires it.
func initRedis(cfg *config.Config, log *logger.Logger) *advisorredis.Client {
	if cfg.Session.Backend != "redis" {
		return nil
	}

	client, err := advisorredis.NewClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Infof("Redis connected at %s:%d", cfg.Redis.Host, cfg.Redis.Port)
	return client
}

// initSessionRepository selects the session store per SESSION_BACKEND.
func initSessionRepository(cfg *config.Config, redisClient *advisorredis.Client, log *logger.Logger) session.Repository {
	if redisClient != nil {
		prometheus.MustRegister(metrics.NewSessionCollector(log, redisClient.Client()))
		log.Info("Using Redis session store")
		return redisrepo.NewSessionRepository(redisClient.Client())
	}

	log.Info("Using in-memory session store")
	return memory.NewSessionRepository()
}

// initTools builds the tool registry and its cached execution client.
func initTools(cfg *config.Config, log *logger.Logger) *tools.Client {
	registry := tools.NewRegistry()
	tools.RegisterAllTools(registry, cfg)

	var cache tools.Cache
	if cfg.Cache.Enabled {
		cache = tools.NewTTLCache(cfg.Cache.TTL)
		log.Infof("Tool cache enabled, ttl=%s", cfg.Cache.TTL)
	}

	return tools.NewClient(registry, cache)
}

func waitForShutdown(srv *http.Server, redisClient *advisorredis.Client, tracker errors.Tracker, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Infof("Received signal %s, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("HTTP server shutdown failed: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Errorf("Redis close failed: %v", err)
		}
	}
	if err := tracker.Flush(ctx); err != nil {
		log.Errorf("Error tracker flush failed: %v", err)
	}
	log.Info("Shutdown complete")
}

func version() string {
	if v := os.Getenv("APP_VERSION"); v != "" {
		return v
	}
	return "dev"
}
