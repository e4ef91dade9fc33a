// Package store abre el almacenamiento configurado (PostgreSQL o memoria) detrás de
// los contratos de repositorio del dominio.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/commodities-api/internal/domain/repository"
	"github.com/jhoicas/commodities-api/internal/infrastructure/memory"
	"github.com/jhoicas/commodities-api/internal/infrastructure/observability"
	"github.com/jhoicas/commodities-api/internal/infrastructure/postgres"
	"github.com/jhoicas/commodities-api/pkg/config"
)

type backend interface {
	Ping(ctx context.Context) error
	Reset(ctx context.Context) error
}

// Store repositorios del driver elegido, instrumentados con métricas y trazas.
type Store struct {
	Users    repository.UserRepository
	Products repository.ProductRepository
	Driver   string

	backend backend
	close   func()
}

// Open conecta con el driver de cfg. En postgres aplica las migraciones si cfg.Migrate.
// prom puede ser nil.
func Open(ctx context.Context, cfg config.DBConfig, prom *observability.Prom) (*Store, error) {
	switch cfg.Driver {
	case config.StoreDriverMemory:
		mem := memory.NewStore()
		return wrap(cfg.Driver, mem.Users, mem.Products, mem, func() {}, prom), nil

	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("store: conexión a PostgreSQL: %w", err)
		}
		if cfg.Migrate {
			db := postgres.OpenDB(pool)
			err := postgres.RunMigrations(ctx, db)
			_ = db.Close()
			if err != nil {
				pool.Close()
				return nil, fmt.Errorf("store: %w", err)
			}
		}
		pg := postgres.NewStore(pool)
		return wrap(cfg.Driver, pg.Users, pg.Products, pg, pool.Close, prom), nil

	default:
		return nil, fmt.Errorf("store: driver desconocido %q", cfg.Driver)
	}
}

func wrap(driver string, users repository.UserRepository, products repository.ProductRepository, b backend, closeFn func(), prom *observability.Prom) *Store {
	return &Store{
		Users:    observability.NewUserRepository(users, prom),
		Products: observability.NewProductRepository(products, prom),
		Driver:   driver,
		backend:  b,
		close:    closeFn,
	}
}

// Ping verifica el almacenamiento (GET /health).
func (s *Store) Ping(ctx context.Context) error { return s.backend.Ping(ctx) }

// Reset vacía usuarios y productos (cmd/seed).
func (s *Store) Reset(ctx context.Context) error { return s.backend.Reset(ctx) }

// Close libera las conexiones.
func (s *Store) Close() { s.close() }
