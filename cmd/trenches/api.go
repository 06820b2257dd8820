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

	"github.com/spf13/cobra"

	"github.com/LandoCrissian/LAMMB-Runner/internal/config"
	"github.com/LandoCrissian/LAMMB-Runner/internal/leaderboard"
	"github.com/LandoCrissian/LAMMB-Runner/internal/storage"
)

const (
	shutdownTimeout = 10 * time.Second
	pruneInterval   = 5 * time.Minute
)

var (
	flagAPIAddr  string
	flagAuditDir string
	flagEnvFile  string
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Run the weekly leaderboard HTTP API",
	Long: `Serve the weekly leaderboard over HTTP.

Endpoints:
  POST /api/submit-score   - Submit a signed score claim
  GET  /api/leaderboard    - Top scores for ?weekId= (default: current week),
                             plus the rank of ?wallet= when given
  GET  /api/feed           - WebSocket stream of new best scores

Settings come from TRENCHES_* environment variables, optionally loaded
from a .env file. Flags override both.

Examples:
  trenches api
  trenches api --addr :9000 --audit-dir ./audit
  trenches api --env ./prod.env`,
	Args: cobra.NoArgs,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", "", "Listen address (env TRENCHES_ADDR, default :8787)")
	apiCmd.Flags().StringVar(&flagAuditDir, "audit-dir", "", "Directory for compressed audit logs (env TRENCHES_AUDIT_DIR)")
	apiCmd.Flags().StringVar(&flagEnvFile, "env", "", "Path to a .env file (default: ./.env when present)")
}

func loadAPIConfig(cmd *cobra.Command) (config.ServerConfig, error) {
	var files []string
	if flagEnvFile != "" {
		files = append(files, flagEnvFile)
	}
	cfg, err := config.LoadServerConfig(files...)
	if err != nil {
		return cfg, fmt.Errorf("load env: %w", err)
	}
	if flagAPIAddr != "" {
		cfg.Address = flagAPIAddr
	}
	if flagAuditDir != "" {
		cfg.AuditDir = flagAuditDir
	}
	if cmd.Flags().Changed("db") {
		cfg.DBPath = flagDBPath
	}
	return cfg, nil
}

func runAPI(cmd *cobra.Command, _ []string) error {
	logger := newLogger("trenches-api")

	cfg, err := loadAPIConfig(cmd)
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := []leaderboard.Option{
		leaderboard.WithLogger(logger),
		leaderboard.WithLeaderboardSize(cfg.LeaderboardSize),
	}
	if cfg.AuditDir != "" {
		dir, err := storage.ExpandPath(cfg.AuditDir)
		if err != nil {
			return err
		}
		audit := leaderboard.NewAuditLog(dir)
		defer audit.Close()
		opts = append(opts, leaderboard.WithAuditor(audit))
		logger.Info("audit log enabled", "dir", dir)
	}

	service := leaderboard.NewService(leaderboard.NewSQLStore(store), leaderboard.LimitsFromConfig(cfg), opts...)

	schema, err := leaderboard.NewSchemaValidator()
	if err != nil {
		return err
	}
	feed := leaderboard.NewFeed(logger)
	feed.Attach(service)

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           leaderboard.NewHandler(service, schema, feed, logger).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		ticker := time.NewTicker(pruneInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				service.PruneRateLimits()
			}
		}
	}()

	errc := make(chan error, 1)
	go func() {
		logger.Info("leaderboard API listening", "address", cfg.Address, "db", cfg.DBPath)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
