package spectralgate

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelRange(t *testing.T) {
	ctx := context.Background()
	for _, workers := range []int{0, 1, 3, 7, 100} {
		for _, n := range []int{0, 1, 5, 64, 1000} {
			visits := make([]int32, n)
			err := parallelRange(ctx, workers, n, func(ctx context.Context, lo, hi int) error {
				for i := lo; i < hi; i++ {
					atomic.AddInt32(&visits[i], 1)
				}
				return nil
			})
			require.NoError(t, err)
			for i, count := range visits {
				require.Equal(t, int32(1), count, "workers:%d n:%d i:%d", workers, n, i)
			}
		}
	}
}

func TestParallelRangeErrors(t *testing.T) {
	errOdd := errors.New("odd chunk")
	err := parallelRange(context.Background(), 4, 8, func(ctx context.Context, lo, hi int) error {
		if (lo/2)%2 == 1 {
			return errOdd
		}
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errOdd)
	assert.Contains(t, err.Error(), "range [2:4)")
	assert.Contains(t, err.Error(), "range [6:8)")
}

type ctxKey struct{}

func TestParallelRangePassesContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), ctxKey{}, "caller")
	var calls atomic.Int32
	err := parallelRange(ctx, 4, 16, func(ctx context.Context, lo, hi int) error {
		calls.Add(1)
		if ctx.Value(ctxKey{}) != "caller" {
			return errors.New("context of the caller is lost")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(4), calls.Load())
}
