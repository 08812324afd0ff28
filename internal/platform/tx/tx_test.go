package tx_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readenvy/internal/platform/tx"
)

func TestValueReturnsResult(t *testing.T) {
	t.Parallel()
	got, err := tx.Value(context.Background(), tx.NoopManager{}, func(context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestValueDropsResultOnError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	got, err := tx.Value(context.Background(), tx.NoopManager{}, func(context.Context) (string, error) {
		return "partial", boom
	})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, got)
}
