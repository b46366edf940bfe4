package mocks

import (
	"context"
	"database/sql"
)

// MockTxManager implements service.TxManager for testing. It invokes the
// function with a nil transaction; the store mocks' WithTx(nil) return
// themselves, so service logic runs against the in-memory mocks unchanged.
type MockTxManager struct {
	WithinTxFn func(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error

	// BeginError, when set, is returned before fn runs.
	BeginError error
}

// NewMockTxManager creates a pass-through transaction manager.
func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

// WithinTx implements the TxManager interface.
func (m *MockTxManager) WithinTx(
	ctx context.Context,
	fn func(ctx context.Context, tx *sql.Tx) error,
) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	if m.BeginError != nil {
		return m.BeginError
	}
	return fn(ctx, nil)
}
