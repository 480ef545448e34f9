package txmanager

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

// fakeTx кладется в контекст, чтобы run пошел по пути вложенной
// транзакции и не трогал соединение с базой.
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

// wrapLikeRepository воспроизводит двухслойное оборачивание ошибки драйвера:
// репозиторий добавляет sentinel операции, usecase - свой ErrInternal.
func wrapLikeRepository(pqErr *pq.Error) error {
	errExecQuery := errors.New("booking.repository: failed to execute query")
	errInternal := errors.New("usecase: internal error")
	repoErr := fmt.Errorf("%w: TryCreate - execute insert: %w", errExecQuery, pqErr)
	return fmt.Errorf("%w: failed to create booking: %w", errInternal, repoErr)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "raw serialization failure",
			err:  &pq.Error{Code: "40001"},
			want: true,
		},
		{
			name: "raw deadlock",
			err:  &pq.Error{Code: "40P01"},
			want: true,
		},
		{
			name: "serialization failure wrapped by repository and usecase",
			err:  wrapLikeRepository(&pq.Error{Code: "40001"}),
			want: true,
		},
		{
			name: "deadlock wrapped by repository and usecase",
			err:  wrapLikeRepository(&pq.Error{Code: "40P01"}),
			want: true,
		},
		{
			name: "unique violation is not retryable",
			err:  wrapLikeRepository(&pq.Error{Code: "23505"}),
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}

func TestDoSerializable_RetriesWrappedSerializationFailure(t *testing.T) {
	counter := &retryCounter{}
	manager := NewTransactionManager(dbmetrics.Wrap(nil, nil), counter)
	ctx := dbmetrics.WithTx(context.Background(), fakeTx{})

	calls := 0
	err := manager.DoSerializable(ctx, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return wrapLikeRepository(&pq.Error{Code: "40001"})
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, counter.n)
}

func TestDoSerializable_ExhaustsRetries(t *testing.T) {
	counter := &retryCounter{}
	manager := NewTransactionManager(dbmetrics.Wrap(nil, nil), counter)
	ctx := dbmetrics.WithTx(context.Background(), fakeTx{})

	calls := 0
	err := manager.DoSerializable(ctx, func(ctx context.Context) error {
		calls++
		return wrapLikeRepository(&pq.Error{Code: "40001"})
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, maxSerializableRetries, calls)
	assert.Equal(t, maxSerializableRetries, counter.n)
}

func TestDoSerializable_NonRetryableFailsImmediately(t *testing.T) {
	counter := &retryCounter{}
	manager := NewTransactionManager(dbmetrics.Wrap(nil, nil), counter)
	ctx := dbmetrics.WithTx(context.Background(), fakeTx{})

	sentinel := errors.New("business rule violated")

	calls := 0
	err := manager.DoSerializable(ctx, func(ctx context.Context) error {
		calls++
		return sentinel
	})

	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, counter.n)
}
