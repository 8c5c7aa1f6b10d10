package lanes

import "context"

// Future is the pending result of a job submitted to a lane.
type Future[T any] struct {
	value T
	done  <-chan error
	err   error
	ready bool
}

// Submit runs job on the named lane and returns a Future for its typed
// result. Like Limiter.Go, it never blocks the caller.
func Submit[T any](l *Limiter, name Name, job func() (T, error)) *Future[T] {
	f := &Future[T]{}
	f.done = l.Go(name, func() error {
		value, err := job()
		if err != nil {
			return err
		}
		f.value = value
		return nil
	})
	return f
}

// Wait blocks until the job finishes or ctx is done, and returns the job's
// result. Wait may be called multiple times; after the first completion it
// returns the cached result.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	if f.ready {
		return f.value, f.err
	}
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case err := <-f.done:
		f.err = err
		f.ready = true
		return f.value, f.err
	}
}
