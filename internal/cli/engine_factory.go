package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/formcheck"
	"github.com/aretw0/formcheck/internal/config"
	"github.com/aretw0/formcheck/pkg/adapters/file"
	"github.com/aretw0/formcheck/pkg/adapters/memory"
	"github.com/aretw0/formcheck/pkg/adapters/redis"
	"github.com/aretw0/formcheck/pkg/ports"
)

// openStore builds the document store selected by cfg. The returned close
// function is never nil.
func openStore(cfg config.Config) (ports.DocumentStore, ports.DistributedLocker, func() error) {
	switch cfg.Store {
	case config.StoreRedis:
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, redis.WithPrefix(cfg.Redis.Prefix))
		return store, redis.NewLocker(store.Client(), cfg.Redis.Prefix), store.Close
	case config.StoreMemory:
		return memory.NewStore(), nil, func() error { return nil }
	default:
		return file.New(cfg.SchemaDir), nil, func() error { return nil }
	}
}

// NewEngine initializes an engine with standard CLI conventions: the store
// and dialect come from cfg and every stored schema is loaded.
// Schemas that fail to load are logged, not fatal.
func NewEngine(ctx context.Context, cfg config.Config, logger *slog.Logger) (*formcheck.Engine, func() error, error) {
	compiler, err := formcheck.Compiler(cfg.Dialect)
	if err != nil {
		return nil, nil, err
	}

	store, locker, closeStore := openStore(cfg)
	opts := []formcheck.Option{
		formcheck.WithLogger(logger),
		formcheck.WithStore(store),
		formcheck.WithCompiler(compiler),
	}
	if locker != nil {
		opts = append(opts, formcheck.WithLocker(locker))
	}

	eng, err := formcheck.New(ctx, opts...)
	if err != nil {
		if eng == nil {
			_ = closeStore()
			return nil, nil, fmt.Errorf("error initializing engine: %w", err)
		}
		logger.Warn("some schemas failed to load", "error", err)
	}
	return eng, closeStore, nil
}
