package postgres

import (
	"context"
	"errors"

	repo "github.com/baharkarakas/forohub/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repositories struct {
	Users     repo.Users
	Topics    repo.Topics
	AuditLogs repo.AuditLogs
	Tx        repo.Transactor
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:     &usersRepo{pool},
		Topics:    &topicsRepo{pool},
		AuditLogs: &auditLogsRepo{pool},
		Tx:        &transactor{pool},
	}
}

type transactor struct{ pool *pgxpool.Pool }

// WithTx runs fn in a single read-committed transaction.
func (t *transactor) WithTx(ctx context.Context, fn func(repo.Tx) error) error {
	tx, err := t.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}
	// no-op after a successful commit
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(repo.Tx{
		Users:     &usersRepo{tx},
		Topics:    &topicsRepo{tx},
		AuditLogs: &auditLogsRepo{tx},
	}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const (
	uniqueViolation      = "23505"
	invalidTextRepresent = "22P02"
)

// mapErr translates driver errors into repository sentinels.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repo.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return repo.ErrDuplicate
		case invalidTextRepresent:
			// malformed uuid in a lookup
			return repo.ErrNotFound
		}
	}
	return err
}
