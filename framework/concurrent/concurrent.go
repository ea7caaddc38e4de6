package concurrent

import (
	"context"
	"errors"
	"sync"
)

// Map applies fn to each item concurrently and returns the results.
// Order of results matches order of items; every error is joined.
func Map[T, R any](items []T, fn func(T) (R, error)) ([]R, error) {
	if len(items) == 0 {
		return nil, nil
	}

	results := make([]R, len(items))
	errs := make([]error, len(items))
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(i int, item T) {
			defer wg.Done()
			results[i], errs[i] = fn(item)
		}(i, item)
	}

	wg.Wait()

	return results, errors.Join(errs...)
}

// ForEachWithContext executes fn for each item concurrently.
// Items not yet started when ctx is cancelled report the context error.
func ForEachWithContext[T any](ctx context.Context, items []T, fn func(context.Context, T) error) error {
	if len(items) == 0 {
		return nil
	}

	errs := make([]error, len(items))
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(i int, item T) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			errs[i] = fn(ctx, item)
		}(i, item)
	}

	wg.Wait()

	return errors.Join(errs...)
}
