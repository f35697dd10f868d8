package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type store struct {
	db *sqlx.DB
	sb squirrel.StatementBuilderType
}

func newStore(db *sqlx.DB) store {
	var format squirrel.PlaceholderFormat = squirrel.Question
	if db.DriverName() == DriverPostgres {
		format = squirrel.Dollar
	}
	return store{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(format),
	}
}

type transactionCallback func(*sqlx.Tx) error

func (s store) transaction(ctx context.Context, cb transactionCallback) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := cb(tx); err != nil {
		if err2 := tx.Rollback(); err2 != nil {
			return fmt.Errorf("rollback error: %s\noriginal error: %w", err2, err)
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s store) exec(ctx context.Context, e sqlx.ExecerContext, b squirrel.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}
	res, err := e.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s store) selectRows(ctx context.Context, q sqlx.QueryerContext, dest interface{}, b squirrel.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	return sqlx.SelectContext(ctx, q, dest, query, args...)
}

func (s store) getRow(ctx context.Context, q sqlx.QueryerContext, dest interface{}, b squirrel.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	return sqlx.GetContext(ctx, q, dest, query, args...)
}

var now = func() time.Time {
	return time.Now().UTC()
}

func nowMillis() int64 {
	return now().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
