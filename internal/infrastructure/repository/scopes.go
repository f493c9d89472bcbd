package repository

import (
	"context"
	"errors"

	domainRepo "github.com/aquaflow/sachet-api/internal/domain/repository"
	"github.com/aquaflow/sachet-api/pkg/apperror"
	"github.com/aquaflow/sachet-api/pkg/period"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type ctxKey string

// txKey carries the open transaction between repositories.
const txKey ctxKey = "gorm_tx"

// conn returns the transaction carried by ctx, or db when there is none.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

type transactor struct {
	db *gorm.DB
}

// NewTransactor creates a Transactor backed by gorm transactions
func NewTransactor(db *gorm.DB) domainRepo.Transactor {
	return &transactor{db: db}
}

// WithinTransaction joins an already open transaction instead of nesting.
func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}

// DateRange filters column to the inclusive range r. Zero bounds are open.
func DateRange(column string, r period.Range) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !r.From.IsZero() {
			db = db.Where(column+" >= ?", r.From)
		}
		if !r.To.IsZero() {
			db = db.Where(column+" < ?", r.EndExclusive())
		}
		return db
	}
}

// first returns nil, nil when no row matches.
func first[T any](db *gorm.DB, conds ...interface{}) (*T, error) {
	var out T
	err := db.First(&out, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate maps constraint violations to conflict errors.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.NewConflictError("a record with the same unique value already exists")
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperror.NewConflictError("a record with the same unique value already exists")
		case pgForeignKeyViolation:
			return apperror.NewConflictError("the record is referenced by other records")
		}
	}
	return err
}
