// Package pgrepo is the PostgreSQL Entity Store, written directly against pgx.
package pgrepo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"gamestore-admin/config"
	"gamestore-admin/internal/domain"
	"gamestore-admin/pkg/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPgxPool creates a new pgx connection pool
func NewPgxPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}

	poolConfig.MaxConns = cfg.DBMaxConns
	poolConfig.MinConns = cfg.DBMinConns
	poolConfig.MaxConnIdleTime = cfg.DBMaxConnIdleTime
	poolConfig.ConnConfig.Tracer = queryTracer{}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return pool, nil
}

// RunMigrations applies every pending migration in migrationsFS.
func RunMigrations(databaseURL string, migrationsFS fs.FS) error {
	src, err := iofs.New(migrationsFS, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Get().Info().Uint("version", version).Bool("dirty", dirty).Msg("Migrations applied")
	return nil
}

// Store hands out the pgx-backed repositories.
type Store struct {
	pool *pgxpool.Pool
	tx   *TxManager
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, tx: NewTxManager(pool)}
}

func (s *Store) Coupons() domain.CouponRepository { return &couponRepository{s} }

func (s *Store) Licenses() domain.LicenseRepository { return &licenseRepository{s} }

func (s *Store) Games() domain.GameRepository { return &gameRepository{s} }

func (s *Store) Users() domain.UserRepository { return &userRepository{s} }

func (s *Store) SystemRequirements() domain.SystemRequirementRepository {
	return &systemRequirementRepository{s}
}

func (s *Store) Categories() domain.CategoryRepository { return &categoryRepository{s} }

func (s *Store) Products() domain.ProductRepository { return &productRepository{s} }
