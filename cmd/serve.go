package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"resourceEditorAPI/internal/auth"
	"resourceEditorAPI/internal/config"
	"resourceEditorAPI/internal/handlers"
	"resourceEditorAPI/internal/i18n"
	"resourceEditorAPI/internal/k8s"
	"resourceEditorAPI/internal/logging"
	"resourceEditorAPI/internal/samples"
	"resourceEditorAPI/internal/server"
	"resourceEditorAPI/internal/session"
)

const expiryInterval = time.Minute

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(parent context.Context, cfg *config.Config) error {
	logger, closer, err := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	k8sClient, err := k8s.NewClient(ctx, cfg.KubeconfigPath, cfg.ConsoleNamespace, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize Kubernetes client: %w", err)
	}
	if err := k8sClient.EnsureNamespace(cfg.ConsoleNamespace); err != nil {
		return err
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL())

	store := session.NewStore(k8sClient, samples.Provider{}, i18n.NewCatalog(cfg.DefaultLocale), cfg.Policy(), logger)
	go store.RunExpiry(ctx, cfg.SessionTTL(), expiryInterval)

	router := server.NewRouter(
		jwtManager,
		handlers.NewOperatorHandler(k8sClient, jwtManager, logger),
		handlers.NewSessionsHandler(store, k8sClient, logger),
		server.Options{AllowedOrigins: cfg.AllowedOrigins, Logger: logger},
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr), zap.String("console_namespace", cfg.ConsoleNamespace))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSec)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	logger.Info("server stopped", zap.Int("open_sessions", store.Len()))
	return nil
}
