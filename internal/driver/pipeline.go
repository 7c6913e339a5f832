// Package driver runs the parse → prune → print pipeline over fixture
// files, optionally in parallel and backed by a disk cache.
package driver

import (
	"context"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"reactc/internal/diag"
	"reactc/internal/reactive"
	"reactc/internal/source"
	"reactc/internal/trace"
)

// Options configures a pipeline run.
type Options struct {
	Prune          reactive.Options
	Jobs           int // <= 0 means GOMAXPROCS
	MaxDiagnostics int
	Tracer         trace.Tracer
	Cache          *DiskCache // nil disables caching
}

// Stats aggregates pass statistics for one file.
type Stats struct {
	Functions      int
	ScopesKept     int
	ScopesPruned   int
	MemoizedIdents int
}

// Result is the outcome for a single input file.
type Result struct {
	Path      string
	Output    string // pruned dump, empty on error
	Bag       *diag.Bag
	Stats     Stats
	FromCache bool
	Duration  time.Duration
}

// Ok reports whether the file was processed without errors.
func (r *Result) Ok() bool {
	return !r.Bag.HasErrors()
}

// PruneFiles processes the given files. Files are loaded up front into the
// returned FileSet; processing then fans out over an errgroup bounded by
// opts.Jobs. Result slots are unique per goroutine, so no locking is needed.
func PruneFiles(ctx context.Context, paths []string, opts Options) ([]Result, *source.FileSet, error) {
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop()
	}
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = 100
	}

	fileSet := source.NewFileSet()
	fileIDs := make([]source.FileID, len(paths))
	loadErrors := make([]error, len(paths))
	for i, path := range paths {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[i] = err
			continue
		}
		fileIDs[i] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(paths), 1)))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(opts.MaxDiagnostics)
			if loadErrors[i] != nil {
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{},
					"failed to load file: "+loadErrors[i].Error()))
				results[i] = Result{Path: path, Bag: bag}
				return nil
			}
			results[i] = pruneOne(fileSet.Get(fileIDs[i]), path, bag, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return results, fileSet, nil
}

// PruneFile processes a single already-loaded file.
func PruneFile(f *source.File, opts Options) Result {
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop()
	}
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = 100
	}
	return pruneOne(f, f.Path, diag.NewBag(opts.MaxDiagnostics), opts)
}

func pruneOne(f *source.File, path string, bag *diag.Bag, opts Options) Result {
	start := time.Now()
	res := Result{Path: path, Bag: bag}

	key := Key(f.Content, opts.Prune)
	if opts.Cache != nil {
		var payload DiskPayload
		if ok, err := opts.Cache.Get(key, &payload); err == nil && ok {
			res.Output = payload.Output
			res.Stats = Stats{
				Functions:      payload.Functions,
				ScopesKept:     payload.ScopesKept,
				ScopesPruned:   payload.ScopesPruned,
				MemoizedIdents: payload.MemoizedIdents,
			}
			res.FromCache = true
			res.Duration = time.Since(start)
			return res
		}
	}

	sp := trace.Begin(opts.Tracer, "parse "+path)
	fns, err := reactive.Parse(f, diag.BagReporter{Bag: bag})
	sp.End()
	if err != nil {
		res.Duration = time.Since(start)
		return res
	}

	for _, fn := range fns {
		sp := trace.Begin(opts.Tracer, "prune "+fn.Name)
		stats, err := reactive.PruneNonEscapingScopes(fn, opts.Prune, opts.Tracer)
		sp.End()
		if err != nil {
			if perr, ok := err.(*reactive.PassError); ok {
				bag.Add(perr.Diagnostic())
			} else {
				bag.Add(diag.NewError(diag.UnknownCode, fn.Span, err.Error()))
			}
			res.Duration = time.Since(start)
			return res
		}
		res.Stats.Functions++
		res.Stats.ScopesKept += stats.ScopesKept
		res.Stats.ScopesPruned += stats.ScopesPruned
		res.Stats.MemoizedIdents += len(stats.Memoized)
	}

	var sb strings.Builder
	if err := reactive.Dump(&sb, fns); err != nil {
		bag.Add(diag.NewError(diag.UnknownCode, source.Span{}, "dump failed: "+err.Error()))
		res.Duration = time.Since(start)
		return res
	}
	res.Output = sb.String()

	if opts.Cache != nil {
		payload := DiskPayload{
			MemoizeJsxElements: opts.Prune.MemoizeJsxElements,
			Output:             res.Output,
			Functions:          res.Stats.Functions,
			ScopesKept:         res.Stats.ScopesKept,
			ScopesPruned:       res.Stats.ScopesPruned,
			MemoizedIdents:     res.Stats.MemoizedIdents,
		}
		// Best effort: a failed write only costs the next run.
		_ = opts.Cache.Put(key, &payload)
	}

	res.Duration = time.Since(start)
	return res
}
