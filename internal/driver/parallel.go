package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"mslayout/internal/resolver"
)

// batchChunk — сколько проводов переводит одна горутина за раз; перевод
// одного провода слишком дёшев, чтобы платить за горутину на каждый.
const batchChunk = 256

// TranslateBatch translates wires concurrently; out[i] corresponds to wires[i].
func TranslateBatch(ctx context.Context, r *resolver.Resolver, wires []string, jobs int) ([]string, error) {
	out := make([]string, len(wires))
	if len(wires) == 0 {
		return out, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	chunks := (len(wires) + batchChunk - 1) / batchChunk

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, chunks))
	for c := range chunks {
		lo := c * batchChunk
		hi := min(lo+batchChunk, len(wires))
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// индексы диапазонов не пересекаются, мьютекс не нужен
			for i := lo; i < hi; i++ {
				out[i] = r.Translate(wires[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, nil
}

// Request names one design/top pair for ResolveAll.
type Request struct {
	Path string
	Top  string

	Observer PhaseObserver                // если задан, заменяет opts.Observer
	Done     func(res *Result, err error) // вызывается из рабочей горутины
}

// ResolveAll resolves several designs concurrently. Results and errors are
// indexed like reqs; one failing request does not cancel the others.
func ResolveAll(ctx context.Context, reqs []Request, opts Options, jobs int) ([]*Result, []error) {
	results := make([]*Result, len(reqs))
	errs := make([]error, len(reqs))
	if len(reqs) == 0 {
		return results, errs
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(min(jobs, len(reqs)))
	for i, req := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				if req.Done != nil {
					req.Done(nil, err)
				}
				return nil
			}
			o := opts
			if req.Observer != nil {
				o.Observer = req.Observer
			}
			results[i], errs[i] = Resolve(ctx, req.Path, req.Top, o)
			if req.Done != nil {
				req.Done(results[i], errs[i])
			}
			return nil
		})
	}
	_ = g.Wait()
	return results, errs
}
