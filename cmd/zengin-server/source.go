package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/zengin/internal/embedded"
	"github.com/Adithya-Monish-Kumar-K/zengin/internal/lookup"
	"github.com/Adithya-Monish-Kumar-K/zengin/internal/ondemand"
	"github.com/Adithya-Monish-Kumar-K/zengin/internal/preload"
	"github.com/Adithya-Monish-Kumar-K/zengin/internal/source"
	"github.com/Adithya-Monish-Kumar-K/zengin/internal/store/pgstore"
	"github.com/Adithya-Monish-Kumar-K/zengin/internal/store/redisstore"
	"github.com/Adithya-Monish-Kumar-K/zengin/internal/zengin"
	"github.com/Adithya-Monish-Kumar-K/zengin/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/zengin/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/zengin/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/zengin/pkg/postgres"
	pkgredis "github.com/Adithya-Monish-Kumar-K/zengin/pkg/redis"
	"github.com/Adithya-Monish-Kumar-K/zengin/pkg/resilience"
)

// openSource builds the lookup source for cfg.Source.Mode and registers its
// health check. The returned func releases any connections.
func openSource(ctx context.Context, cfg *config.Config, m *metrics.Metrics, checker *health.Checker) (lookup.Source, func(), error) {
	var opts []source.Option
	if cfg.Source.AllowMissingBranches {
		opts = append(opts, source.WithMissingBranchesAsEmpty())
	}
	noop := func() {}

	switch cfg.Source.Mode {
	case config.ModePreloaded:
		start := time.Now()
		if err := preload.Load(cfg.Source.Dir, opts...); err != nil {
			return nil, nil, err
		}
		ds := preload.Default().Dataset()
		recordDataset(m, ds, time.Since(start))
		checker.SetInfo("source_dir", cfg.Source.Dir)
		checker.Register("dataset", health.Static(health.StatusUp, fmt.Sprintf("%d banks, %d branches", ds.Len(), ds.BranchCount())))
		return lookup.FromIndex(preload.Default()), noop, nil

	case config.ModeEmbedded:
		ds := embedded.Dataset()
		recordDataset(m, ds, 0)
		checker.Register("dataset", health.Static(health.StatusUp, fmt.Sprintf("%d banks compiled in", ds.Len())))
		return lookup.Embedded{}, noop, nil

	case config.ModeOnDemand:
		reader := source.NewDirReader(cfg.Source.Dir, opts...)
		checker.SetInfo("source_dir", cfg.Source.Dir)
		checker.Register("source", func(context.Context) health.ComponentHealth {
			if _, err := reader.ReadBanks(); err != nil {
				return health.ComponentHealth{Status: health.StatusDown, Message: err.Error()}
			}
			return health.ComponentHealth{Status: health.StatusUp}
		})
		return lookup.FromAccessor(ondemand.New(reader)), noop, nil

	case config.ModeRedis:
		var client *pkgredis.Client
		err := resilience.Retry(ctx, "redis connect", resilience.RetryConfig{}, func(context.Context) error {
			var err error
			client, err = pkgredis.NewClient(cfg.Redis)
			return err
		})
		if err != nil {
			return nil, nil, err
		}
		store := redisstore.New(client, cfg.Redis.KeyPrefix)
		if meta, ok, err := store.Meta(ctx); err == nil && ok {
			m.DatasetBanks.Set(float64(meta.Banks))
			m.DatasetBranches.Set(float64(meta.Branches))
			slog.Info("redis dataset found", "banks", meta.Banks, "branches", meta.Branches, "published_at", meta.PublishedAt)
		} else {
			slog.Warn("no dataset published to redis yet; run zengin-sync", "error", err)
		}
		checker.Register("redis", func(ctx context.Context) health.ComponentHealth {
			ready, err := store.Ready(ctx)
			switch {
			case err != nil:
				return health.ComponentHealth{Status: health.StatusDown, Message: err.Error()}
			case !ready:
				return health.ComponentHealth{Status: health.StatusDown, Message: "no dataset published"}
			}
			return health.ComponentHealth{Status: health.StatusUp}
		})
		return lookup.Guard(store, newBreaker("redis", m), cfg.Source.LookupTimeout), func() { client.Close() }, nil

	case config.ModePostgres:
		var client *postgres.Client
		err := resilience.Retry(ctx, "postgres connect", resilience.RetryConfig{}, func(context.Context) error {
			var err error
			client, err = postgres.New(cfg.Postgres)
			return err
		})
		if err != nil {
			return nil, nil, err
		}
		store := pgstore.New(client)
		if banks, branches, err := store.Count(ctx); err == nil {
			m.DatasetBanks.Set(float64(banks))
			m.DatasetBranches.Set(float64(branches))
		} else {
			slog.Warn("postgres dataset not readable; run zengin-sync", "error", err)
		}
		checker.Register("postgres", func(ctx context.Context) health.ComponentHealth {
			if err := client.Ping(ctx); err != nil {
				return health.ComponentHealth{Status: health.StatusDown, Message: err.Error()}
			}
			return health.ComponentHealth{Status: health.StatusUp}
		})
		return lookup.Guard(store, newBreaker("postgres", m), cfg.Source.LookupTimeout), func() { client.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unsupported mode %q", cfg.Source.Mode)
}

func recordDataset(m *metrics.Metrics, ds *zengin.Dataset, took time.Duration) {
	m.DatasetBanks.Set(float64(ds.Len()))
	m.DatasetBranches.Set(float64(ds.BranchCount()))
	m.DatasetLoadDuration.Set(took.Seconds())
	slog.Info("dataset ready", "banks", ds.Len(), "branches", ds.BranchCount(), "took", took)
}

func newBreaker(store string, m *metrics.Metrics) *resilience.CircuitBreaker {
	m.StoreCircuitState.WithLabelValues(store).Set(float64(resilience.StateClosed))
	return resilience.NewCircuitBreaker(store, resilience.CircuitBreakerConfig{
		OnStateChange: func(name string, _, to resilience.State) {
			m.StoreCircuitState.WithLabelValues(name).Set(float64(to))
		},
	})
}
