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

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"task-manager/internal/api"
	"task-manager/internal/auth"
	"task-manager/internal/config"
	"task-manager/internal/logging"
	"task-manager/internal/seed"
	"task-manager/internal/service"
	"task-manager/internal/store"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "task-manager",
	Short:         "Task tracking REST API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate, seed and serve the HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer a.store.Close()
		if err := a.store.Migrate(cmd.Context()); err != nil {
			return err
		}
		a.log.Info("schema ready")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Install the default user and task statuses",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer a.store.Close()
		if err := a.store.Migrate(cmd.Context()); err != nil {
			return err
		}
		return seed.Run(cmd.Context(), a.store, a.hasher, a.cfg.Seed, a.log)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ./config.yaml)")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type app struct {
	cfg    *config.Config
	log    *logrus.Logger
	store  store.Store
	hasher auth.Hasher
}

func setup(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	var st store.Store
	switch cfg.Database.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory store, data is lost on exit")
		st = store.NewMemory()
	default:
		pg, err := store.Open(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("connect: %w", err)
		}
		st = pg
	}
	return &app{cfg: cfg, log: log, store: st, hasher: auth.NewHasher()}, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.store.Close()

	if err := a.store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := seed.Run(ctx, a.store, a.hasher, a.cfg.Seed, a.log); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	tokens := auth.NewTokens(a.cfg.Auth.JWTSecret, a.cfg.Auth.TokenTTL)
	handler := api.New(
		service.New(a.store, a.hasher, a.log),
		auth.NewAuthenticator(a.store.Repos().Users, a.hasher, tokens, a.log),
		tokens,
		a.log,
	)

	srv := &http.Server{
		Addr:              a.cfg.Server.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		a.log.WithField("addr", srv.Addr).Info("task-manager listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
