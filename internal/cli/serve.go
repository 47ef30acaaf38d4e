package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/manwithacat/dazzle-sub005/internal/api"
	"github.com/manwithacat/dazzle-sub005/pkg/cache"
	"github.com/manwithacat/dazzle-sub005/pkg/errors"
	"github.com/manwithacat/dazzle-sub005/pkg/pipeline"
	"github.com/manwithacat/dazzle-sub005/pkg/store"
)

// ServeConfig is the TOML configuration for the HTTP service.
type ServeConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`

	Cache   ServeCacheConfig  `toml:"cache"`
	Archive store.MongoConfig `toml:"archive"`
}

// ServeCacheConfig selects the plan cache backend.
type ServeCacheConfig struct {
	// Backend is one of "file" (default), "redis", or "none".
	Backend string `toml:"backend"`

	// Dir overrides the file cache directory.
	Dir string `toml:"dir"`

	Redis cache.RedisConfig `toml:"redis"`
}

// serveCommand creates the serve command for running the HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout engine as an HTTP service",
		Long: `Run the layout engine as an HTTP service.

The service computes plans from posted manifests (POST /api/v1/plans) and
serves previously archived plans back (GET /api/v1/plans/{fingerprint}).
Plans computed over HTTP are byte-identical to plans computed locally.

Configuration is read from a TOML file; --addr overrides the listen address.
With no archive URI configured, archived plans live in process memory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServeConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to TOML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

// loadServeConfig reads the config file, or returns defaults when no path is
// given.
func loadServeConfig(path string) (*ServeConfig, error) {
	cfg := &ServeConfig{Addr: ":8080"}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "config not found: %s", path)
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to parse config %s", path)
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	return cfg, nil
}

// runServe wires the cache, archive, and runner together and serves until the
// context is cancelled.
func (c *CLI) runServe(ctx context.Context, cfg *ServeConfig) error {
	planCache, err := c.newServeCache(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	var archive store.Store
	if cfg.Archive.URI != "" {
		archive, err = store.NewMongoStore(ctx, cfg.Archive)
		if err != nil {
			return fmt.Errorf("initialize archive: %w", err)
		}
		c.Logger.Info("plan archive connected", "database", cfg.Archive.Database)
	} else {
		archive = store.NewMemoryStore()
		c.Logger.Info("plan archive in memory (no archive URI configured)")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = archive.Close(shutdownCtx)
	}()

	runner := pipeline.NewRunner(planCache, nil, c.Logger)
	defer runner.Close()

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewServer(runner, archive, c.Logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", cfg.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

// newServeCache builds the cache backend named by the config.
func (c *CLI) newServeCache(ctx context.Context, cfg ServeCacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "", "file":
		dir := cfg.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return nil, err
			}
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, cfg.Redis)
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"unknown cache backend %q (expected file, redis, or none)", cfg.Backend)
	}
}
