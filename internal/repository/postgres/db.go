package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/shootplan/internal/repository"
)

// maxTxAttempts bounds how often a transaction is replayed after a
// serialization failure or deadlock.
const maxTxAttempts = 3

type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool: pool,
	}
}

// RunTx runs fn inside a serializable transaction. fn may be replayed when
// the database reports a serialization failure, so it must not have side
// effects outside tx.
func (s *Store) RunTx(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	const op = "postgres.Store.RunTx"

	var err error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err = s.runTxOnce(ctx, fn)
		if err == nil || !IsRetryable(err) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}

func (s *Store) runTxOnce(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}

	defer tx.Rollback(ctx)

	if err := fn(ctx, txRepos{db: tx, s: s}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

func (s *Store) Bookings() repository.BookingRepo           { return &BookingRepo{pool: s.pool} }
func (s *Store) Photographers() repository.PhotographerRepo { return &PhotographerRepo{pool: s.pool} }
func (s *Store) Leads() repository.LeadRepo                 { return &LeadRepo{pool: s.pool} }
func (s *Store) Projects() repository.ProjectRepo           { return &ProjectRepo{pool: s.pool} }

type txRepos struct {
	db DB
	s  *Store
}

func (t txRepos) Bookings() repository.BookingRepo {
	return (&BookingRepo{pool: t.s.pool}).With(t.db)
}

func (t txRepos) Photographers() repository.PhotographerRepo {
	return (&PhotographerRepo{pool: t.s.pool}).With(t.db)
}

func (t txRepos) Leads() repository.LeadRepo {
	return (&LeadRepo{pool: t.s.pool}).With(t.db)
}

func (t txRepos) Projects() repository.ProjectRepo {
	return (&ProjectRepo{pool: t.s.pool}).With(t.db)
}
