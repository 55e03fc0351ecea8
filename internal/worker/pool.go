package worker

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Result is the outcome of a job run on the pool.
type Result[T any] struct {
	Value T
	Err   error
}

// Pool runs jobs off the calling goroutine with at most Size jobs in flight.
type Pool struct {
	sem  *semaphore.Weighted
	size int64
}

func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		sem:  semaphore.NewWeighted(int64(size)),
		size: int64(size),
	}
}

func (p *Pool) Size() int {
	return int(p.size)
}

// Submit queues fn and returns a channel that receives exactly one result. If ctx ends before a
// slot frees up, the result carries ctx's error and fn never runs. The channel is buffered, so
// abandoning it does not leak the worker.
func Submit[T any](ctx context.Context, p *Pool, fn func(context.Context) (T, error)) <-chan Result[T] {
	out := make(chan Result[T], 1)
	go func() {
		if err := p.sem.Acquire(ctx, 1); err != nil {
			out <- Result[T]{Err: err}
			return
		}
		defer p.sem.Release(1)

		value, err := fn(ctx)
		out <- Result[T]{Value: value, Err: err}
	}()
	return out
}

// Await waits for the result of a submitted job or for ctx to end, whichever comes first.
func Await[T any](ctx context.Context, results <-chan Result[T]) (T, error) {
	select {
	case r := <-results:
		return r.Value, r.Err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Drain blocks until every running job has finished or ctx ends.
func (p *Pool) Drain(ctx context.Context) error {
	if err := p.sem.Acquire(ctx, p.size); err != nil {
		return err
	}
	p.sem.Release(p.size)
	return nil
}
