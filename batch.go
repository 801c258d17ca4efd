package oxide

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// EvaluateMany evaluates a batch of expressions concurrently and returns their
// values in the same order. If any expression fails, the result is nil and the
// error is that of the failing expression which comes first in srcs, as if
// the batch were evaluated in order. Expressions not yet started when an error
// occurs or ctx is cancelled are skipped; ctx's error is returned only if no
// expression failed.
func EvaluateMany(ctx context.Context, srcs []string, opts ...Option) ([]string, error) {
	c := newConfig(opts)
	vals := make([]string, len(srcs))
	errs := make([]error, len(srcs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, src := range srcs {
		// Checking here rather than in the goroutine means every expression
		// before the last one started runs to completion, which keeps the
		// choice of error independent of scheduling.
		if gctx.Err() != nil {
			break
		}
		i, src := i, src
		g.Go(func() error {
			vals[i], errs[i] = c.evaluate(src)
			return errs[i]
		})
	}
	g.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return vals, nil
}

// Result is the outcome of evaluating one expression of a batch.
type Result struct {
	// Value is the result as text. It is empty if Err is not nil.
	Value string
	// Err is the error evaluating the expression.
	Err error
}

// EvaluateEach evaluates a batch of expressions concurrently and reports the
// outcome of each one in the same order. Expressions not yet started when ctx
// is cancelled have ctx's error.
func EvaluateEach(ctx context.Context, srcs []string, opts ...Option) []Result {
	c := newConfig(opts)
	r := make([]Result, len(srcs))
	var g errgroup.Group
	g.SetLimit(c.workers)
	for i, src := range srcs {
		if err := ctx.Err(); err != nil {
			r[i].Err = err
			continue
		}
		i, src := i, src
		g.Go(func() error {
			r[i].Value, r[i].Err = c.evaluate(src)
			return nil
		})
	}
	g.Wait()
	return r
}
