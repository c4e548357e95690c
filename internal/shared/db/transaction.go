// Package db holds the gorm helpers the repositories share: the
// context-carried transaction and the lifecycle query scopes.
package db

import (
	"context"

	"gorm.io/gorm"

	"github.com/inkwell-print/inkwell/internal/shared/errors"
)

type txKey struct{}

type TransactionManager struct {
	db *gorm.DB
}

func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// RunInTransaction commits when fn returns nil. Errors from fn come back
// unchanged; begin and commit failures are reported as store_unavailable.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	var fnErr error
	err := tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(context.WithValue(ctx, txKey{}, tx))
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return errors.NewStoreUnavailableError("transaction failed", err)
	}
	return nil
}

// GetTxFromContext returns the transaction opened by RunInTransaction, or
// defaultDB bound to ctx outside of one.
func GetTxFromContext(ctx context.Context, defaultDB *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return defaultDB.WithContext(ctx)
}
