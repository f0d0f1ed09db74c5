package goroutine

import "context"

// Launch runs fn in a new goroutine and waits for it. If ctx is done first,
// Launch returns ctx.Err() without waiting and fn's result is discarded.
func Launch(ctx context.Context, fn func() error) error {
	errc := make(chan error, 1)

	go func() {
		errc <- fn()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
