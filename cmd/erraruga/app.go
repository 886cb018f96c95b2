package main

import (
	"context"
	"os"
	"strings"

	"codeberg.org/mutker/erraruga/internal/config"
	"codeberg.org/mutker/erraruga/internal/errors"
	"codeberg.org/mutker/erraruga/internal/logger"
	"codeberg.org/mutker/erraruga/internal/metrics"
	"codeberg.org/mutker/erraruga/internal/store"
	"codeberg.org/mutker/erraruga/pkg/catalog"
	"codeberg.org/mutker/erraruga/pkg/resolver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
)

// app holds what a command needs after configuration has been loaded.
type app struct {
	cfg       *config.Config
	resolver  *resolver.Resolver
	collector *metrics.Collector
}

func loadConfig(fs *pflag.FlagSet, args []string) (*config.Config, error) {
	cfg, err := config.Load(fs, args)
	if err != nil {
		return nil, err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger.Init(level, os.Stderr, cfg.Console)
	logger.Debug().
		Str("catalog", cfg.Catalog).
		Str("database", cfg.Database).
		Bool("demo_rules", cfg.DemoRules).
		Msg("Config loaded")

	return cfg, nil
}

// newApp builds the resolver. Rules are registered in this order, so earlier
// sources win on overlapping keys: database catalog, YAML catalog, demo rules.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg}

	opts := []resolver.Option{resolver.WithLogger(logger.Zerolog())}
	if cfg.Metrics {
		collector, err := metrics.NewCollector(prometheus.NewRegistry())
		if err != nil {
			return nil, err
		}
		a.collector = collector
		opts = append(opts, resolver.WithObserver(collector))
	}
	a.resolver = resolver.New(opts...)

	if cfg.Database != "" {
		repo, err := openStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		defer repo.Close()

		c, err := repo.List(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.Apply(a.resolver); err != nil {
			return nil, err
		}
		logger.Debug().Int("rules", len(c.Entries)).Msg("Database catalog applied")
	}

	if cfg.Catalog != "" {
		c, err := catalog.Load(cfg.Catalog)
		if err != nil {
			return nil, err
		}
		if err := c.Apply(a.resolver); err != nil {
			return nil, err
		}
		logger.Debug().Int("rules", len(c.Entries)).Msg("YAML catalog applied")
	}

	if cfg.DemoRules {
		registerDemoRules(a.resolver)
	}

	return a, nil
}

func openStore(ctx context.Context, cfg *config.Config) (store.Repository, error) {
	if cfg.Database == "" {
		return nil, errors.New().WithMessage(errors.ErrInvalidConfig, "no database configured")
	}

	storeCfg := store.DefaultConfig()
	storeCfg.DBPath = cfg.Database

	return store.Open(ctx, storeCfg, logger.Default())
}

// close reports collected metrics.
func (a *app) close() {
	if a.collector == nil {
		return
	}

	snap := a.collector.Snapshot()
	logger.Info().
		Float64("custom", snap[resolver.TierCustom]).
		Float64("default", snap[resolver.TierDefault]).
		Float64("fallback", snap[resolver.TierFallback]).
		Msg("Resolutions")
}

// parseMeta turns "key=value" pairs into metadata.
func parseMeta(pairs []string) (map[string]any, error) {
	md := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, errors.New().WithMessage(errors.ErrInvalidArgument, "metadata must be key=value: "+pair)
		}
		md[key] = value
	}

	return md, nil
}
