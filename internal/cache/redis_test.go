package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRedis_NilClientIsNoop(t *testing.T) {
	ctx := context.Background()
	r := NewRedis(nil)

	require.NoError(t, r.SetObject(ctx, "k", map[string]int{"a": 1}, time.Minute))

	var out map[string]int
	found, err := r.GetObject(ctx, "k", &out)
	require.NoError(t, err)
	require.False(t, found)
	require.NoError(t, r.Delete(ctx, "k"))
}

func TestRedis_WithLockWithoutClientRunsFn(t *testing.T) {
	var r *Redis
	ran := false
	err := r.WithLock(context.Background(), "job", time.Second, func(ctx context.Context) error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	require.True(t, ran)

	boom := errors.New("boom")
	err = NewRedis(nil).WithLock(context.Background(), "job", time.Second, func(ctx context.Context) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
}
