// Command server starts the LearnovateX platform HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/learnovatex/platform/internal/adapter/ai"
	"github.com/learnovatex/platform/internal/adapter/ai/demo"
	"github.com/learnovatex/platform/internal/adapter/ai/live"
	"github.com/learnovatex/platform/internal/adapter/httpserver"
	"github.com/learnovatex/platform/internal/adapter/queue/kafka"
	quotaredis "github.com/learnovatex/platform/internal/adapter/quota/redis"
	"github.com/learnovatex/platform/internal/adapter/repo/postgres"
	tikaext "github.com/learnovatex/platform/internal/adapter/textextractor/tika"
	"github.com/learnovatex/platform/internal/app"
	"github.com/learnovatex/platform/internal/config"
	"github.com/learnovatex/platform/internal/domain"
	"github.com/learnovatex/platform/internal/observability"
	"github.com/learnovatex/platform/internal/usecase"
)

// redisAdapter narrows *redis.Client to the readiness interface.
type redisAdapter struct{ *goredis.Client }

func (r redisAdapter) Ping(ctx context.Context) app.RedisPingResult {
	return r.Client.Ping(ctx)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)
	observability.InitMetrics()

	ctx := context.Background()
	shutdownTracer, err := observability.SetupTracing(ctx, cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	pool, err := postgres.NewPool(ctx, cfg.DBURL)
	if err != nil {
		slog.Error("db connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		slog.Error("schema bootstrap failed", slog.Any("error", err))
		os.Exit(1)
	}

	// Repositories
	userRepo := postgres.NewUserRepo(pool)
	learningRepo := postgres.NewLearningRepo(pool)
	codeRepo := postgres.NewCodeEvalRepo(pool)
	resumeRepo := postgres.NewResumeRepo(pool)
	interviewRepo := postgres.NewInterviewRepo(pool)

	// Optional Redis for daily quotas.
	var rdb *goredis.Client
	if cfg.RedisAddr != "" {
		rdb = goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		defer func() { _ = rdb.Close() }()
	}
	quota := quotaredis.New(rdb, cfg)

	// Optional Kafka producer for activity events.
	events, err := kafka.New(cfg.KafkaBrokers)
	if err != nil {
		slog.Error("kafka producer connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer events.Close()

	// AI orchestrator: live client when configured, demo fallback always.
	var liveSrc domain.ResponseSource
	if cfg.LiveConfigured() {
		liveSrc = live.New(cfg)
	}
	orch := ai.New(cfg, liveSrc, demo.New(), nil)
	slog.Info("ai orchestrator initialized", slog.String("mode", cfg.AIMode), slog.Bool("live_configured", cfg.LiveConfigured()))

	ext := tikaext.New(cfg.TikaURL)

	// Usecases
	authSvc := usecase.NewAuthService(userRepo, cfg.TokenSecret, cfg.TokenTTL)
	tutorSvc := usecase.NewTutorService(orch, learningRepo, quota, events)
	codeSvc := usecase.NewCodeService(orch, codeRepo, quota, events)
	resumeSvc := usecase.NewResumeService(orch, resumeRepo, ext, quota, events)
	interviewSvc := usecase.NewInterviewService(orch, interviewRepo, quota, events)
	statsSvc := usecase.NewStatsService(learningRepo, codeRepo, resumeRepo, interviewRepo)
	achieveSvc, err := usecase.NewAchievementService(statsSvc, codeRepo)
	if err != nil {
		slog.Error("achievement catalog load failed", slog.Any("error", err))
		os.Exit(1)
	}

	var redisCheck app.RedisClient
	if rdb != nil {
		redisCheck = redisAdapter{rdb}
	}
	checks := app.BuildReadinessChecks(cfg, pool, redisCheck)

	srv := httpserver.NewServer(cfg, authSvc, tutorSvc, codeSvc, resumeSvc, interviewSvc, statsSvc, achieveSvc, orch.Status)
	handler := app.BuildRouter(cfg, srv, checks)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
