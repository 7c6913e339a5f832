package reactive

import (
	"fmt"
	"strings"

	"reactc/internal/hir"
	"reactc/internal/trace"
)

// PruneStats summarizes one run of the pruner.
type PruneStats struct {
	ScopesKept   int
	ScopesPruned int
	// Memoized lists the memoized set in solve order.
	Memoized []hir.IdentifierID
}

// PruneNonEscapingScopes deletes reactive scopes none of whose outputs can
// reach a return value, inlining their instructions in place. Scopes with an
// escaping output are kept, and keeping a scope transitively keeps the
// scopes producing its declared dependencies.
//
// The function is mutated in place. On error nothing has been rewritten.
func PruneNonEscapingScopes(fn *Function, opts Options, tr trace.Tracer) (PruneStats, error) {
	state := newPruneState()
	if fn.Ident != nil {
		state.declare(fn.Ident.ID, MemoNever)
	}
	for _, p := range fn.Params {
		state.declare(p.Ident.ID, MemoNever)
	}

	c := &collector{state: state, opts: opts}
	Walk(fn, c)
	if c.err != nil {
		return PruneStats{}, c.err
	}
	trace.Point(tr, "prune/collect", state.debugString())

	s := newSolver(state)
	if err := s.run(); err != nil {
		return PruneStats{}, err
	}
	trace.Point(tr, "prune/solve", "memoized="+formatIDs(s.order))

	t := &pruneTransform{memoized: s.memoized}
	TransformScopes(fn, t)

	return PruneStats{
		ScopesKept:   t.kept,
		ScopesPruned: t.pruned,
		Memoized:     s.order,
	}, nil
}

func formatIDs(ids []hir.IdentifierID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("$%d", id)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
