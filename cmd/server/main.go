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

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/tabsplit/internal/config"
	"github.com/mmynk/tabsplit/internal/metrics"
	"github.com/mmynk/tabsplit/internal/storage/sqlite"
	"github.com/mmynk/tabsplit/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	addr       string
	dbPath     string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "tabsplit-server",
		Short: "Serve the tabsplit bill settlement API",
		Long: `Serve the tabsplit Connect API over HTTP/2 cleartext.

Settings come from defaults, then the YAML file given by --config, then
environment variables (ADDR, DB_PATH, JWT_SECRET, TOKEN_TTL, LOG_LEVEL,
LOG_FORMAT, CORS_ORIGIN), then the flags below.

Example:
  tabsplit-server --config ./tabsplit.yaml
  DB_PATH=/tmp/bills.db tabsplit-server --addr :9090`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address, e.g. :8080")
	cmd.Flags().StringVar(&opts.dbPath, "db", "", "path to the SQLite database")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")

	return cmd
}

// loadConfig applies flags that were set on top of file and env settings.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("addr") {
		cfg.Server.Addr = opts.addr
	}
	if cmd.Flags().Changed("db") {
		cfg.Database.Path = opts.dbPath
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config) error {
	logging.Setup(cfg.Log.Level, cfg.Log.Format)
	if cfg.Auth.JWTSecret == config.DevJWTSecret {
		slog.Warn("Using the development JWT secret; set JWT_SECRET in production")
	}

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.Database.Path)

	handler := newHandler(cfg, store, metrics.New())

	// h2c serves HTTP/2 without TLS, which Connect and gRPC clients need.
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", cfg.Server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
