package simpletxmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskhive/BookingService/pkg/dbmetrics"
)

type fakeTx struct{}

func (fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

type retryCounter struct {
	n int
}

func (c *retryCounter) IncDBTxRetry() { c.n++ }

func TestDoSerializable_RetriesWrappedSerializationFailure(t *testing.T) {
	counter := &retryCounter{}
	manager := NewTransactionManager(nil, counter)
	ctx := dbmetrics.WithTx(context.Background(), fakeTx{})

	errScanRow := errors.New("waitlist.repository: failed to scan row")

	calls := 0
	err := manager.DoSerializable(ctx, func(ctx context.Context) error {
		calls++
		if calls < 2 {
			return fmt.Errorf("%w: PeekHead - scan entry: %w", errScanRow, &pq.Error{Code: "40001"})
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, counter.n)
}

func TestDoSerializable_NonRetryableFailsImmediately(t *testing.T) {
	counter := &retryCounter{}
	manager := NewTransactionManager(nil, counter)
	ctx := dbmetrics.WithTx(context.Background(), fakeTx{})

	calls := 0
	err := manager.DoSerializable(ctx, func(ctx context.Context) error {
		calls++
		return fmt.Errorf("%w: Enqueue - execute insert: %w",
			errors.New("waitlist.repository: failed to execute query"), &pq.Error{Code: "23505"})
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, counter.n)
}
