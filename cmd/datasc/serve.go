package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ukaji3/datasc-go/internal/api"
	"github.com/ukaji3/datasc-go/internal/config"
	"github.com/ukaji3/datasc-go/internal/session"
)

type serveFlags struct {
	configPath string
	addr       string
}

func newServeCmd() *cobra.Command {
	f := &serveFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve uploads, summaries and charts over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}

	cmd.Flags().StringVar(&f.configPath, "config", "", "Config file (.yaml, .yml or .json)")
	cmd.Flags().StringVar(&f.addr, "addr", "", "Listen address (overrides config)")
	return cmd
}

// loadConfig applies defaults, the config file, DATASC_* variables and flags, in that order.
func loadConfig(cmd *cobra.Command, f *serveFlags) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if f.configPath != "" {
		var err error
		if cfg, err = config.LoadFromFile(f.configPath); err != nil {
			return nil, err
		}
	}
	config.LoadFromEnv(cfg)
	if cmd.Flags().Changed("addr") {
		cfg.HTTP.Addr = f.addr
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func serve(cfg *config.Config) error {
	store := session.NewStore(cfg.Session.TTL)
	srv := api.NewServer(store, cfg.Options(), cfg.MaxUploadBytes())

	httpServer := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go store.Run(ctx, cfg.Session.TTL/2)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("server: listening on %s", cfg.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("server: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	log.Printf("server: stopped")
	return nil
}
