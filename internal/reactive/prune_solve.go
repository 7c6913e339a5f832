package reactive

import (
	"reactc/internal/hir"
)

// solver computes the memoized set: every identifier whose value must be
// preserved for memoization, found by depth-first traversal from the
// returned identifiers.
type solver struct {
	state    *pruneState
	memoized map[hir.IdentifierID]struct{}
	order    []hir.IdentifierID
}

func newSolver(state *pruneState) *solver {
	return &solver{
		state:    state,
		memoized: make(map[hir.IdentifierID]struct{}),
	}
}

func (s *solver) run() error {
	for _, id := range s.state.returnOrder {
		if _, err := s.visit(id, false); err != nil {
			return err
		}
	}
	return nil
}

// visit decides whether an identifier must be memoized. Revisits return the
// value decided so far: nodes are tentatively non-memoized while their
// dependencies are in flight, which breaks aliasing cycles.
func (s *solver) visit(id hir.IdentifierID, forceMemoize bool) (bool, error) {
	node, ok := s.state.identifiers[id]
	if !ok {
		return false, errMissingIdentifierNode(id)
	}
	if node.seen {
		return node.memoized, nil
	}
	node.seen = true
	node.memoized = false

	hasMemoizedDependency := false
	for _, dep := range sortedIdentifierIDs(node.dependencies) {
		m, err := s.visit(dep, false)
		if err != nil {
			return false, err
		}
		if m {
			hasMemoizedDependency = true
		}
	}

	switch {
	case node.level == MemoMemoized:
		node.memoized = true
	case node.level == MemoConditional && (hasMemoizedDependency || forceMemoize):
		node.memoized = true
	case node.level == MemoUnmemoized && forceMemoize:
		node.memoized = true
	}

	if node.memoized {
		s.memoized[id] = struct{}{}
		s.order = append(s.order, id)
		for _, scopeID := range sortedScopeIDs(node.scopes) {
			if err := s.forceMemoizeScopeDependencies(scopeID); err != nil {
				return false, err
			}
		}
	}
	return node.memoized, nil
}

// forceMemoizeScopeDependencies keeps interleaved neighbors alive: once any
// value of a scope escapes, the scope's declared dependencies must stay
// memoized so its cache key remains stable.
func (s *solver) forceMemoizeScopeDependencies(id hir.ScopeID) error {
	node, ok := s.state.scopes[id]
	if !ok {
		return errMissingScopeNode(id)
	}
	if node.seen {
		return nil
	}
	node.seen = true
	for _, dep := range node.dependencies {
		if _, err := s.visit(dep, true); err != nil {
			return err
		}
	}
	return nil
}
