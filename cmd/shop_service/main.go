package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shop_service/internal/auth"
	"shop_service/internal/config"
	"shop_service/internal/handler"
	"shop_service/internal/mailer"
	"shop_service/internal/ratelimit"
	"shop_service/internal/service"
	"shop_service/internal/session"
	"shop_service/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "")

	flag.Parse()
	if configPath == "" {
		log.Fatal("failed get config path from flags")
	}

	cfg := config.MustLoadConfig(configPath)

	lgr := setupLogger(cfg.Env)
	lgr.Info("started shop service", slog.String("env", cfg.Env))

	if cfg.Env == envProd {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, err := storage.NewMongoStorage(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		lgr.Error("failed to init storage", slog.Any("error", err))
		os.Exit(1)
	}

	var registry session.Registry
	if cfg.Redis.Addr != "" {
		registry = session.NewRedis(redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}), cfg.Redis.SessionTTL)
		lgr.Info("session registry: redis", slog.String("addr", cfg.Redis.Addr))
	} else {
		registry = session.NewMemory()
		lgr.Info("session registry: in-memory")
	}

	ml, err := mailer.NewSMTP(cfg.SMTP.Host, cfg.SMTP.User, cfg.SMTP.Password,
		cfg.SMTP.From, cfg.SMTP.SkipVerify, lgr)
	if err != nil {
		lgr.Error("failed to init mailer", slog.Any("error", err))
		os.Exit(1)
	}

	issuer := auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.RefreshSecret, cfg.Auth.AccessTTL)
	limiter := ratelimit.NewPerClient(cfg.Auth.LoginLimit, cfg.Auth.LoginWindow)

	srvc := service.NewService(st, registry, issuer, ml, lgr)
	h := handler.NewHandler(srvc, srvc, issuer, limiter, lgr)

	server := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      h.InitRoutes(),
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}

	go func() {
		lgr.Info("listening", slog.String("address", cfg.HTTPServer.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lgr.Error("server stopped", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lgr.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		lgr.Error("failed to shutdown server", slog.Any("error", err))
	}
	if err := st.Close(shutdownCtx); err != nil {
		lgr.Error("failed to close storage", slog.Any("error", err))
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}
	return log
}
