package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shelter-dashboard/internal/adapters/auth/remote"
	"shelter-dashboard/internal/platform/config"
	"shelter-dashboard/internal/platform/logger"
	"shelter-dashboard/internal/ports/auth"
	"shelter-dashboard/internal/router"
)

func main() {
	cfg := config.Load()
	log := logger.NewFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := router.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Error("store init failed", map[string]any{"err": err})
		os.Exit(1)
	}
	if closeStore != nil {
		defer func() { _ = closeStore() }()
	}

	// Sin AUTH_BASE_URL queda en modo dev (sesión estática de config).
	var verifier auth.Verifier
	if cfg.Auth.BaseURL != "" {
		client, err := remote.NewClient(remote.Config{
			BaseURL: cfg.Auth.BaseURL,
			APIKey:  cfg.Auth.APIKey,
			Timeout: cfg.Auth.Timeout,
		})
		if err != nil {
			log.Error("auth client init failed", map[string]any{"err": err})
			os.Exit(1)
		}
		verifier = remote.NewVerifier(client)
	}

	h, err := router.NewRouter(router.Options{
		Config:   cfg,
		Logger:   log,
		Verifier: verifier,
		Store:    store,
	})
	if err != nil {
		log.Error("router init failed", map[string]any{"err": err})
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": cfg.Addr(), "api_base_url": cfg.APIBaseURL})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", map[string]any{"err": err})
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", map[string]any{"err": err})
	}
}
