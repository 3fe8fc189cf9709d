// Command zengin-sync publishes the JSON source files to Redis and/or
// PostgreSQL so the lookup service can run in redis or postgres mode.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Adithya-Monish-Kumar-K/zengin/internal/source"
	"github.com/Adithya-Monish-Kumar-K/zengin/internal/store/pgstore"
	"github.com/Adithya-Monish-Kumar-K/zengin/internal/store/redisstore"
	"github.com/Adithya-Monish-Kumar-K/zengin/internal/zengin"
	"github.com/Adithya-Monish-Kumar-K/zengin/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/zengin/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/zengin/pkg/postgres"
	pkgredis "github.com/Adithya-Monish-Kumar-K/zengin/pkg/redis"
	"github.com/Adithya-Monish-Kumar-K/zengin/pkg/resilience"
)

func main() {
	configPath := flag.String("config", "configs/development.yaml", "path to config file")
	sourceDir := flag.String("source", "", "source directory (overrides config)")
	toRedis := flag.Bool("redis", false, "publish to redis")
	toPostgres := flag.Bool("postgres", false, "publish to postgres")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *sourceDir != "" {
		cfg.Source.Dir = *sourceDir
	}
	if !*toRedis && !*toPostgres {
		fmt.Fprintln(os.Stderr, "nothing to do: pass -redis and/or -postgres")
		os.Exit(2)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []source.Option
	if cfg.Source.AllowMissingBranches {
		opts = append(opts, source.WithMissingBranchesAsEmpty())
	}
	start := time.Now()
	ds, err := source.NewDirReader(cfg.Source.Dir, opts...).ReadDataset()
	if err != nil {
		slog.Error("failed to read source", "dir", cfg.Source.Dir, "error", err)
		os.Exit(1)
	}
	slog.Info("source read", "dir", cfg.Source.Dir, "banks", ds.Len(), "branches", ds.BranchCount(), "took", time.Since(start))

	failed := false
	if *toRedis {
		if err := syncRedis(ctx, cfg, ds); err != nil {
			slog.Error("redis sync failed", "error", err)
			failed = true
		}
	}
	if *toPostgres {
		if err := syncPostgres(ctx, cfg, ds); err != nil {
			slog.Error("postgres sync failed", "error", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
	slog.Info("sync complete")
}

func syncRedis(ctx context.Context, cfg *config.Config, ds *zengin.Dataset) error {
	var client *pkgredis.Client
	err := resilience.Retry(ctx, "redis connect", resilience.RetryConfig{}, func(context.Context) error {
		var err error
		client, err = pkgredis.NewClient(cfg.Redis)
		return err
	})
	if err != nil {
		return err
	}
	defer client.Close()
	return redisstore.New(client, cfg.Redis.KeyPrefix).Publish(ctx, ds)
}

func syncPostgres(ctx context.Context, cfg *config.Config, ds *zengin.Dataset) error {
	var client *postgres.Client
	err := resilience.Retry(ctx, "postgres connect", resilience.RetryConfig{}, func(context.Context) error {
		var err error
		client, err = postgres.New(cfg.Postgres)
		return err
	})
	if err != nil {
		return err
	}
	defer client.Close()
	store := pgstore.New(client)
	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}
	return store.Publish(ctx, ds)
}
