package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	DBExecutor
}

func (f *fakeTx) Commit() error   { return nil }
func (f *fakeTx) Rollback() error { return nil }

type fakeDB struct {
	DBExecutor
}

func TestGetExecutor(t *testing.T) {
	db := &fakeDB{}
	tx := &fakeTx{}

	assert.Same(t, db, GetExecutor(context.Background(), db))
	assert.False(t, IsInTransaction(context.Background()))

	ctx := WithTx(context.Background(), tx)
	assert.Same(t, tx, GetExecutor(ctx, db))
	assert.True(t, IsInTransaction(ctx))
}

func TestOperation(t *testing.T) {
	testCases := []struct {
		name     string
		query    string
		expected string
	}{
		{name: "select", query: "SELECT id FROM bookings", expected: "select"},
		{name: "leading whitespace", query: "\n  INSERT INTO bookings", expected: "insert"},
		{name: "empty", query: "  ", expected: "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Operation(tc.query))
		})
	}
}

var _ DBExecutor = (*sql.DB)(nil)
var _ TxExecutor = (*sql.Tx)(nil)
var _ TxExecutor = (*Tx)(nil)
var _ DBExecutor = (*DB)(nil)
