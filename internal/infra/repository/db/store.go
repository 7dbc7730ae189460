package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/ccfreem/sickfits/internal/infra/repository/db/sqlc"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type IStore interface {
	sqlc.Querier
	ExecTx(ctx context.Context, fn func(sqlc.Querier) error) error
	ExecMultiTx(ctx context.Context, fns []func(sqlc.Querier) error) error
}

// Store manages the connection pool and transactions
type Store struct {
	*sqlc.Queries
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{
		db:      db,
		Queries: sqlc.New(db),
	}
}

var txOptions = pgx.TxOptions{
	IsoLevel:       pgx.ReadCommitted,
	AccessMode:     pgx.ReadWrite,
	DeferrableMode: pgx.NotDeferrable,
}

// ExecTx runs fn in one transaction, rolled back when fn returns an error.
func (s *Store) ExecTx(ctx context.Context, fn func(sqlc.Querier) error) error {
	tx, err := s.db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	q := sqlc.New(tx)
	err = fn(q)

	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx err: %v, rollback err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}

// ExecMultiTx runs fns in order inside a single transaction.
func (s *Store) ExecMultiTx(ctx context.Context, fns []func(sqlc.Querier) error) error {
	return s.ExecTx(ctx, func(q sqlc.Querier) error {
		for _, fn := range fns {
			if err := fn(q); err != nil {
				return err
			}
		}
		return nil
	})
}

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// UniqueViolation builds the error postgres reports for a duplicate key.
func UniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: uniqueViolation, ConstraintName: constraint, Message: "duplicate key value violates unique constraint"}
}
