package compiler

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/ethereum/go-ethereum/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/lhaig/vyc/internal/diagnostic"
)

// Builder compiles many files in parallel. Every file runs its own
// pipeline; only the cache is shared.
type Builder struct {
	Jobs  int
	Cache *Cache
	// Label renders a path for diagnostics, identity when nil
	Label func(path string) string
}

// Report is the outcome of a project build
type Report struct {
	Results     []*Result // successful units, in input order
	Diagnostics *diagnostic.Diagnostics
}

// Build compiles every path. A failing file is reported and does not stop
// the others; only context cancellation aborts the build.
func (b *Builder) Build(ctx context.Context, paths []string) (*Report, error) {
	jobs := b.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]*Result, len(paths))
	errs := make([]error, len(paths))

	sem := semaphore.NewWeighted(int64(jobs))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			results[i], errs[i] = b.compile(path)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{Diagnostics: diagnostic.New()}
	for i, path := range paths {
		if errs[i] != nil {
			report.Diagnostics.Add(b.label(path), errs[i])
			continue
		}
		report.Results = append(report.Results, results[i])
	}
	log.Debug("Built project", "files", len(paths), "failed", report.Diagnostics.Count(), "jobs", jobs)
	return report, nil
}

func (b *Builder) compile(path string) (*Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	if b.Cache != nil {
		if res, ok := b.Cache.Get(path, source); ok {
			log.Trace("Compile cache hit", "path", path)
			return res, nil
		}
	}
	res, err := Compile(string(source))
	if err != nil {
		return nil, err
	}
	res.Path = path
	if b.Cache != nil {
		b.Cache.Add(source, res)
	}
	return res, nil
}

func (b *Builder) label(path string) string {
	if b.Label == nil {
		return path
	}
	return b.Label(path)
}
