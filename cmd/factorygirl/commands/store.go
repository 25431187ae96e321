package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/SilvertipSoftware/factorygirl/internal/config"
	"github.com/SilvertipSoftware/factorygirl/pkg/factory"
	"github.com/SilvertipSoftware/factorygirl/pkg/store"
)

// openStore connects the store named by cfg. The returned close function
// is never nil.
func openStore(ctx context.Context, cfg *config.Config) (factory.Store, func() error, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Store.Timeout)
	defer cancel()

	nop := func() error { return nil }

	switch cfg.Store.Kind {
	case config.StoreMemory:
		return store.NewMemory(), nop, nil
	case config.StoreSQLite:
		s, err := store.OpenSQLite(ctx, cfg.Store.SQLiteDSN())
		if err != nil {
			return nil, nop, err
		}
		return s, s.Close, nil
	case config.StorePostgres:
		s, err := store.OpenPostgres(ctx, cfg.Store.DSN)
		if err != nil {
			return nil, nop, err
		}
		return s, s.Close, nil
	case config.StoreSurreal:
		s, err := store.OpenSurreal(ctx, store.SurrealConfig{
			Host:      cfg.Database.Host,
			Port:      cfg.Database.Port,
			User:      cfg.Database.User,
			Password:  cfg.Database.Password,
			Namespace: cfg.Database.Namespace,
			Database:  cfg.Database.Database,
		})
		if err != nil {
			return nil, nop, err
		}
		return s, s.Close, nil
	default:
		return nil, nop, fmt.Errorf("unknown store %q", cfg.Store.Kind)
	}
}

// applySchema runs the statements in path, separated by semicolons, against
// a SQL store.
func applySchema(ctx context.Context, s factory.Store, path string) error {
	sqlStore, ok := s.(*store.SQL)
	if !ok {
		return fmt.Errorf("--schema needs a sqlite or postgres store")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	for _, stmt := range strings.Split(string(data), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := sqlStore.DB().ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
