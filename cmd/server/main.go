package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Simplici0/cleanquote/internal/config"
	"github.com/Simplici0/cleanquote/internal/db"
	"github.com/Simplici0/cleanquote/internal/drafts"
	"github.com/Simplici0/cleanquote/internal/logger"
	"github.com/Simplici0/cleanquote/internal/migrations"
	"github.com/Simplici0/cleanquote/internal/pricing"
	"github.com/Simplici0/cleanquote/internal/quotes"
	"github.com/Simplici0/cleanquote/internal/rates"
	"github.com/Simplici0/cleanquote/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.IsDev())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server stopped with error", zap.Error(err))
	}
	log.Info("server shutdown gracefully")
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	for _, w := range cfg.Warnings() {
		log.Warn("config warning", zap.String("detail", w))
	}

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	if err := migrations.Up(ctx, database, log); err != nil {
		return fmt.Errorf("run database migrations: %w", err)
	}

	stats, err := seed.Run(ctx, database, seed.Config{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		Year:          time.Now().UTC().Year(),
	})
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}
	log.Info("seed complete", zap.Int("inserts", stats.Inserts), zap.Int("updates", stats.Updates))

	srv := &server{
		auth:   newAuthService(database, cfg.SessionSecret, !cfg.IsDev()),
		calc:   pricing.NewCalculator(rates.Standard()),
		quotes: quotes.NewStore(database),
		log:    log,
	}

	if cfg.DraftsEnabled() {
		store, err := drafts.Connect(ctx, drafts.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.DraftTTL,
		}, log)
		if err != nil {
			return fmt.Errorf("connect drafts store: %w", err)
		}
		defer store.Close()
		srv.drafts = store
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
