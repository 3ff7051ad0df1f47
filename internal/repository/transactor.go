package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"paper-summary-api/internal/platform/dbctx"
)

// ErrDuplicateKey reports a unique-index violation.
var ErrDuplicateKey = errors.New("duplicate key")

type Transactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

// WithinTx runs fn in one transaction, committing when fn returns nil.
func (t *Transactor) WithinTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Join(ErrDuplicateKey, err)
	}
	return err
}
