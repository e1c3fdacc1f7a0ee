package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/arscene/pkg/sequence"
)

func TestParallelMapPreservesOrderAndErrors(t *testing.T) {
	boom := errors.New("boom")
	res := ParallelMap(context.Background(), sequence.From([]int{1, 2, 3, 4}), 2,
		func(_ context.Context, v int) (int, error) {
			if v == 3 {
				return 0, boom
			}
			return v * 10, nil
		})

	require.Len(t, res, 4)
	assert.Equal(t, 10, res[0].Value)
	assert.Equal(t, 20, res[1].Value)
	assert.ErrorIs(t, res[2].Err, boom)
	assert.Equal(t, 40, res[3].Value)
}

func TestParallelMapCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls atomic.Int32
	res := ParallelMap(ctx, sequence.From([]int{1, 2}), 0, func(context.Context, int) (int, error) {
		calls.Add(1)
		return 0, nil
	})
	assert.Zero(t, calls.Load())
	for _, r := range res {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}
