package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baharkarakas/forohub/internal/api"
	"github.com/baharkarakas/forohub/internal/auth"
	"github.com/baharkarakas/forohub/internal/config"
	"github.com/baharkarakas/forohub/internal/db"
	"github.com/baharkarakas/forohub/internal/logger"
	"github.com/baharkarakas/forohub/internal/metrics"
	"github.com/baharkarakas/forohub/internal/middleware"
	repo "github.com/baharkarakas/forohub/internal/repository"
	"github.com/baharkarakas/forohub/internal/repository/memory"
	"github.com/baharkarakas/forohub/internal/repository/postgres"
	"github.com/baharkarakas/forohub/internal/services"
)

type stores struct {
	users  repo.Users
	topics repo.Topics
	audit  repo.AuditLogs
	tx     repo.Transactor
}

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Error("store", "store", cfg.Store, "err", err)
		os.Exit(1)
	}
	defer closeStore()

	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	userSvc := services.NewUserService(st.users, auth.NewHasher(auth.DefaultParams), tm)
	topicSvc := services.NewTopicService(st.topics, st.audit, st.tx)

	metrics.Init()
	r := api.NewRouter(api.RouterDeps{
		Cfg:      cfg,
		UserSvc:  userSvc,
		TopicSvc: topicSvc,
		Auth:     middleware.NewAuthMiddleware(tm, st.users),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
}

func openStore(ctx context.Context, cfg config.Config) (stores, func(), error) {
	if cfg.Store == "memory" {
		slog.Warn("using in-memory store; data is lost on exit")
		m := memory.New()
		return stores{users: m.Users(), topics: m.Topics(), audit: m.AuditLogs(), tx: m}, func() {}, nil
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return stores{}, nil, err
	}
	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return stores{}, nil, err
		}
	}
	repos := postgres.NewRepositories(pool)
	return stores{users: repos.Users, topics: repos.Topics, audit: repos.AuditLogs, tx: repos.Tx}, pool.Close, nil
}
