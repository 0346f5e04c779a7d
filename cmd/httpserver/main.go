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

	"cinesearch/grpcserver"
	"cinesearch/httpserver"
	"cinesearch/movie"
	"cinesearch/pkg/config"
	"cinesearch/pkg/logger"
	"cinesearch/pkg/sentry"
	"cinesearch/tmdb"

	sentrygo "github.com/getsentry/sentry-go"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		slog.Error("Cannot init logger", "error", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	catalog := tmdb.NewClient(tmdb.Options{
		APIKey:   cfg.TMDB.APIKey,
		BaseURL:  cfg.TMDB.BaseURL,
		Language: cfg.TMDB.Language,
		Timeout:  cfg.TMDB.Timeout,
	})
	if !catalog.Configured() {
		log.Warnw("TMDB_API_KEY is not set, every movie list will be empty")
	}
	movieService := movie.NewUsecase(catalog,
		movie.WithLogger(log.Named("movie")),
		movie.WithReporter(sentry.Reporter{}),
	)

	server := httpserver.Default(cfg)
	server.Logger = log.Named("http")
	server.MovieService = movieService

	rpc := grpcserver.New(fmt.Sprintf(":%d", cfg.GRPCPort), movieService, log.Named("grpc"))

	errc := make(chan error, 2)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("http server: %w", err)
		}
	}()
	go func() {
		if err := rpc.Start(); err != nil {
			errc <- fmt.Errorf("grpc server: %w", err)
		}
	}()
	slog.Info("server started!", "http", server.Addr, "grpc", rpc.Addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case err := <-errc:
		slog.Error("server stopped with error", "error", err)
		exitCode = 1
	case sig := <-quit:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("http shutdown failed", "error", err)
	}
	rpc.Stop()

	if exitCode != 0 {
		sentrygo.Flush(sentry.FlushTime)
		os.Exit(exitCode)
	}
}
