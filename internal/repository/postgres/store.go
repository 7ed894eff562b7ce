package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/immerse/sponsor-tracker/internal/repository"
)

// Store is a repository.Store backed by a pgx connection pool
type Store struct {
	db       *pgxpool.Pool
	sponsors *SponsorRepository
}

var _ repository.Store = (*Store)(nil)

// NewStore opens a connection pool with the given limits and checks it
func NewStore(ctx context.Context, dsn string, maxConns, minConns int32, clock clockwork.Clock) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = maxConns
	poolConfig.MinConns = minConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{
		db:       pool,
		sponsors: NewSponsorRepository(pool, clock),
	}, nil
}

// Sponsors returns the sponsor repository
func (s *Store) Sponsors() repository.SponsorRepository {
	return s.sponsors
}

// Ping checks the pool
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes all pooled connections
func (s *Store) Close(_ context.Context) error {
	s.db.Close()
	return nil
}
