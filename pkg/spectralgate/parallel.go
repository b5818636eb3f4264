package spectralgate

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/observability"
)

// parallelRange splits [0, n) into at most `workers` contiguous ranges and
// processes them concurrently.
func parallelRange(
	ctx context.Context,
	workers int,
	n int,
	fn func(ctx context.Context, lo, hi int) error,
) error {
	if n <= 0 {
		return nil
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		return fn(ctx, 0, n)
	}

	chunkSize := (n + workers - 1) / workers

	var (
		wg     sync.WaitGroup
		locker sync.Mutex
		mErr   *multierror.Error
	)
	for lo := 0; lo < n; lo += chunkSize {
		hi := min(lo+chunkSize, n)
		wg.Add(1)
		observability.Go(ctx, func() {
			defer wg.Done()
			err := fn(ctx, lo, hi)
			if err == nil {
				return
			}
			locker.Lock()
			defer locker.Unlock()
			mErr = multierror.Append(mErr, fmt.Errorf("range [%d:%d): %w", lo, hi, err))
		})
	}
	wg.Wait()
	return mErr.ErrorOrNil()
}
