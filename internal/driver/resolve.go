package driver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fortio.org/safecast"

	"mslayout/internal/canon"
	"mslayout/internal/diag"
	"mslayout/internal/lexer"
	"mslayout/internal/observ"
	"mslayout/internal/project"
	"mslayout/internal/resolver"
	"mslayout/internal/source"
	"mslayout/internal/trace"
)

// Options controls one Resolve call.
type Options struct {
	MaxDiagnostics int
	Cache          *DiskCache   // nil — без дискового кэша
	Memory         *MemoryCache // nil — без кэша в памяти
	Observer       PhaseObserver
	Timings        bool // добавить OBS6001 с таймингами в Bag
}

// Result is everything a front end needs after a Resolve call.
type Result struct {
	FileSet  *source.FileSet
	File     *source.File
	Bag      *diag.Bag
	Resolver *resolver.Resolver // nil, если top-level не найден
	Key      project.Digest
	CacheHit bool
	Timing   observ.Report
}

// Resolve loads a generated BSV file and builds a resolver for top.
func Resolve(ctx context.Context, path, top string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return resolveFile(ctx, fs, fs.Get(id), top, opts)
}

// ResolveText is Resolve for text that is already in memory (stdin, pipes).
func ResolveText(ctx context.Context, name, text, top string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, []byte(text))
	return resolveFile(ctx, fs, fs.Get(id), top, opts)
}

func resolveFile(ctx context.Context, fs *source.FileSet, file *source.File, top string, opts Options) (*Result, error) {
	maxErrors, err := safecast.Conv[uint](opts.MaxDiagnostics)
	if err != nil {
		return nil, fmt.Errorf("max diagnostics: %w", err)
	}
	top = strings.TrimSpace(top)

	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeDriver, "resolve", trace.CurrentSpan(ctx).SpanID).
		WithExtra("path", file.Path).
		WithExtra("top", top)
	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: root.ID()})

	timer := observ.NewTimer()
	ph := &phases{timer: timer, observer: opts.Observer}
	res := &Result{FileSet: fs, File: file, Bag: diag.NewBag(opts.MaxDiagnostics)}
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})

	done := ph.begin("canonicalize")
	span := trace.Begin(tracer, trace.ScopePass, "canonicalize", root.ID())
	canonical := canon.Tokens(lexer.New(file, lexer.Options{}).All())
	res.Key = cacheKeyCanonical(canonical, top)
	span.End("")
	done("")

	done = ph.begin("cache")
	res.Resolver, res.CacheHit = lookupCaches(res.Key, opts, rep, file)
	if res.CacheHit {
		done("hit")
	} else {
		done("miss")
	}

	if !res.CacheHit {
		done = ph.begin("build")
		res.Resolver, err = resolver.Build(ctx, file, top, resolver.Options{
			Reporter:  rep,
			MaxErrors: maxErrors,
		})
		if err != nil {
			done("failed")
			root.End(err.Error())
			finishTimings(res, timer, opts)
			return res, err
		}
		done("")
		storeCaches(res.Key, res.Resolver, opts, rep, file, top)
	}

	root.WithExtra("cache_hit", fmt.Sprint(res.CacheHit)).End("")
	finishTimings(res, timer, opts)
	return res, nil
}

func lookupCaches(key project.Digest, opts Options, rep diag.Reporter, file *source.File) (*resolver.Resolver, bool) {
	if r, ok := opts.Memory.Get(key); ok {
		return r, true
	}
	if opts.Cache == nil {
		return nil, false
	}
	var payload DiskPayload
	ok, err := opts.Cache.Get(key, &payload)
	if err != nil {
		// битая запись — обычный промах, перезапишем после сборки
		diag.ReportWarning(rep, diag.IOCacheError, source.Span{File: file.ID},
			"ignoring unreadable layout cache entry: "+err.Error()).Emit()
		return nil, false
	}
	if !ok {
		return nil, false
	}
	r, err := resolver.FromSnapshot(payload.Snapshot)
	if err != nil {
		var rerr *resolver.Error
		if !errors.As(err, &rerr) {
			diag.ReportWarning(rep, diag.IOCacheError, source.Span{File: file.ID}, err.Error()).Emit()
		}
		return nil, false
	}
	opts.Memory.Put(key, r)
	return r, true
}

func storeCaches(key project.Digest, r *resolver.Resolver, opts Options, rep diag.Reporter, file *source.File, top string) {
	opts.Memory.Put(key, r)
	if opts.Cache == nil {
		return
	}
	payload := &DiskPayload{Path: file.Path, Top: top, Snapshot: r.Snapshot()}
	if err := opts.Cache.Put(key, payload); err != nil {
		diag.ReportWarning(rep, diag.IOCacheError, source.Span{File: file.ID},
			"failed to write layout cache: "+err.Error()).Emit()
	}
}

func finishTimings(res *Result, timer *observ.Timer, opts Options) {
	res.Timing = timer.Report()
	if opts.Timings {
		appendTimingDiagnostic(res.Bag, timingPayload{
			Kind:    "resolve",
			Path:    res.File.Path,
			TotalMS: res.Timing.TotalMS,
			Phases:  res.Timing.Phases,
		})
	}
}
