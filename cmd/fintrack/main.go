package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/backend"
	"fintrack/internal/cli"
	apphttp "fintrack/internal/http"
	"fintrack/internal/service"
	"fintrack/internal/store"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	result, err := backend.NewFactory(logger.Logger).Create(cfg)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", "error", err)
			}
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.LoadSampleData {
		if err := seedIfEmpty(ctx, result.Store); err != nil {
			logger.Error("Sample data load failed", "error", err)
			os.Exit(1)
		}
	}

	opts := apphttp.Options{
		Addr:               ":" + cfg.Port,
		MaxReceiptBytes:    cfg.MaxReceiptBytes,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	}
	if cfg.LoadSampleData {
		opts.SampleLoader = store.SampleTransactions
	}

	srv := apphttp.NewServer(opts, result.Store)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting fintrack server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

// seedIfEmpty loads the sample dataset when the store has no records, so a
// fresh install opens with a populated dashboard.
func seedIfEmpty(ctx context.Context, st store.Store) error {
	count, err := st.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	svc := service.NewTransactionService(st, nil)
	_, err = svc.Seed(ctx, store.SampleTransactions())
	return err
}
