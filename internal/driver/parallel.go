package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// CheckPaths checks many files with a bounded worker pool. Results come
// back in input order. Individual check outcomes (diagnostics, I/O errors)
// live in their Result; the returned error only reports context
// cancellation.
func CheckPaths(ctx context.Context, paths []string, jobs int, cache *DiskCache) ([]Result, error) {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	results := make([]Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = CheckFile(path, cache)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
