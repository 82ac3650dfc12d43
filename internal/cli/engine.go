package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/pageforge"
	"github.com/aretw0/pageforge/internal/adapters/file"
	"github.com/aretw0/pageforge/internal/config"
	"github.com/aretw0/pageforge/pkg/adapters/memory"
	"github.com/aretw0/pageforge/pkg/adapters/redis"
	"github.com/aretw0/pageforge/pkg/domain"
	"github.com/aretw0/pageforge/pkg/observability"
	"github.com/aretw0/pageforge/pkg/persistence/middleware"
	"github.com/aretw0/pageforge/pkg/ports"
)

// Build is an engine plus the resources that must be released with it.
type Build struct {
	Engine  *pageforge.Engine
	Metrics *observability.Metrics
	closers []func() error
}

// Close releases backend connections.
func (b *Build) Close() error {
	var errs []error
	for _, c := range b.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// BuildEngine assembles an engine from cfg. When reg is non-nil editor activity
// is counted there.
func BuildEngine(cfg config.Config, logger *slog.Logger, reg prometheus.Registerer) (*Build, error) {
	b := &Build{}
	opts := []pageforge.Option{
		pageforge.WithLogger(logger),
		pageforge.WithHistoryLimit(cfg.HistoryLimit),
	}

	store, locker, err := b.openStore(cfg.Store)
	if err != nil {
		return nil, err
	}
	opts = append(opts, pageforge.WithStore(store))
	if locker != nil {
		opts = append(opts, pageforge.WithLocker(locker))
	}

	mws, err := securityMiddlewares(cfg)
	if err != nil {
		return nil, errors.Join(err, b.Close())
	}
	if len(mws) > 0 {
		opts = append(opts, pageforge.WithMiddleware(mws...))
	}

	var hooks []domain.LifecycleHooks
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		hooks = append(hooks, observability.Logging(logger))
	}
	if reg != nil {
		b.Metrics = observability.NewMetrics(reg)
		hooks = append(hooks, b.Metrics.Hooks())
	}
	if len(hooks) > 0 {
		opts = append(opts, pageforge.WithLifecycleHooks(observability.Compose(hooks...)))
	}

	engine, err := pageforge.New(opts...)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("error initializing engine: %w", err), b.Close())
	}
	b.Engine = engine
	return b, nil
}

func (b *Build) openStore(cfg config.StoreConfig) (ports.SiteStore, ports.DistributedLocker, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return memory.NewStore(), nil, nil
	case config.BackendFile:
		format, err := file.ParseFormat(cfg.Format)
		if err != nil {
			return nil, nil, err
		}
		return file.New(cfg.Dir, file.WithFormat(format)), nil, nil
	case config.BackendRedis:
		var opts []redis.Option
		if cfg.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		if cfg.Redis.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.Redis.TTL))
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...)
		b.closers = append(b.closers, store.Close)
		if !cfg.Redis.Lock {
			return store, nil, nil
		}
		return store, redis.NewLocker(store.Client(), cfg.Redis.Prefix), nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// securityMiddlewares scrubs before encrypting so masked values never reach the envelope.
func securityMiddlewares(cfg config.Config) ([]middleware.Middleware, error) {
	var mws []middleware.Middleware
	if len(cfg.Security.ScrubPatterns) > 0 || cfg.Security.DropAIHints {
		mws = append(mws, middleware.NewScrubMiddleware(middleware.ScrubConfig{
			Patterns:    cfg.Security.ScrubPatterns,
			DropAIHints: cfg.Security.DropAIHints,
		}))
	}
	active, fallback, err := cfg.Keys()
	if err != nil {
		return nil, err
	}
	if active != nil {
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallback,
		}))
	}
	return mws, nil
}
