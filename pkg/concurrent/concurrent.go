package concurrent

import (
	"context"

	"github.com/zeusync/arscene/pkg/sequence"
	"golang.org/x/sync/errgroup"
)

// Result pairs the output of one mapped element with its error.
type Result[R any] struct {
	Value R
	Err   error
}

// ParallelMap applies mapFn to each element of the iterator on at most
// workers goroutines, preserving order. A failing element does not stop the
// others; its error is reported in its own Result. Elements not started
// before ctx is done get ctx.Err().
func ParallelMap[T any, R any](ctx context.Context, i *sequence.Iterator[T], workers int, mapFn func(context.Context, T) (R, error)) []Result[R] {
	in := i.Collect()
	out := make([]Result[R], len(in))
	if workers <= 0 {
		workers = 1
	}

	group := errgroup.Group{}
	group.SetLimit(workers)
	for idx, val := range in {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				out[idx].Err = err
				return nil
			}
			out[idx].Value, out[idx].Err = mapFn(ctx, val)
			return nil
		})
	}
	_ = group.Wait()
	return out
}
