package service

import (
	"context"
	"database/sql"

	"github.com/velder/taskboard-api/internal/store"
)

// TxManager runs a function within a database transaction. Services depend
// on this interface rather than *sql.DB directly so unit tests can supply a
// pass-through implementation without a real database.
type TxManager interface {
	// WithinTx executes fn inside a transaction, committing on nil return
	// and rolling back on error or panic.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error
}

// sqlTxManager is the production TxManager backed by a *sql.DB.
type sqlTxManager struct {
	db *sql.DB
}

// NewTxManager creates a TxManager that runs functions in real database
// transactions on db.
func NewTxManager(db *sql.DB) TxManager {
	if db == nil {
		panic("db cannot be nil")
	}
	return &sqlTxManager{db: db}
}

// WithinTx implements TxManager.
func (m *sqlTxManager) WithinTx(
	ctx context.Context,
	fn func(ctx context.Context, tx *sql.Tx) error,
) error {
	return store.RunInTransaction(ctx, m.db, store.TxFn(fn))
}
