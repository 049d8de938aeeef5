package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hoanghai1803/postdesk/internal/api"
	"github.com/hoanghai1803/postdesk/internal/auth"
	"github.com/hoanghai1803/postdesk/internal/config"
	"github.com/hoanghai1803/postdesk/internal/logger"
	"github.com/hoanghai1803/postdesk/internal/posts"
	"github.com/hoanghai1803/postdesk/internal/storage"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	err := run(*configPath)
	if err != nil {
		zap.S().Errorw("server exited", "error", err)
	}
	_ = zap.L().Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(configPath string) error {
	// Console logging until the config says otherwise.
	if _, err := logger.Install("info", "console"); err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if _, err := logger.Install(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}
	log := zap.S()

	db, err := storage.OpenDatabase(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := storage.RunMigrations(db); err != nil {
		return err
	}

	gate, err := auth.FromConfig(cfg.Admin)
	if err != nil {
		return fmt.Errorf("building admin gate: %w", err)
	}
	log.Infow("admin gate configured", "mode", cfg.Admin.Mode)

	service := posts.NewService(storage.NewStore(db))
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(gate, service, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infow("starting server", "addr", "http://"+srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Infow("shutting down", "timeout", shutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
