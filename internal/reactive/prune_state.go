package reactive

import (
	"fmt"
	"sort"
	"strings"

	"reactc/internal/hir"
)

// identifierNode is the per-identifier vertex of the dependency graph.
type identifierNode struct {
	level        MemoLevel
	dependencies map[hir.IdentifierID]struct{}
	scopes       map[hir.ScopeID]struct{}
	memoized     bool
	seen         bool
}

// scopeNode is the per-scope vertex. Its dependency list is fixed at
// creation from the scope's declared dependencies.
type scopeNode struct {
	dependencies []hir.IdentifierID
	seen         bool
}

// pruneState is the pass-scoped graph container. It is built by the
// collector, read by the solver (which only flips seen/memoized marks),
// and discarded after the transform.
type pruneState struct {
	definitions map[hir.IdentifierID]hir.IdentifierID
	identifiers map[hir.IdentifierID]*identifierNode
	scopes      map[hir.ScopeID]*scopeNode
	returned    map[hir.IdentifierID]struct{}
	returnOrder []hir.IdentifierID
}

func newPruneState() *pruneState {
	return &pruneState{
		definitions: make(map[hir.IdentifierID]hir.IdentifierID),
		identifiers: make(map[hir.IdentifierID]*identifierNode),
		scopes:      make(map[hir.ScopeID]*scopeNode),
		returned:    make(map[hir.IdentifierID]struct{}),
	}
}

// resolve collapses LoadLocal indirections. Upstream normalizes chains to a
// single step, but the loop runs to a fixed point anyway; the hop guard
// bounds pathological cycles.
func (s *pruneState) resolve(id hir.IdentifierID) hir.IdentifierID {
	hops := len(s.definitions) + 1
	for range hops {
		next, ok := s.definitions[id]
		if !ok || next == id {
			return id
		}
		id = next
	}
	return id
}

// node returns the graph vertex for an identifier, creating it on first
// mention.
func (s *pruneState) node(id hir.IdentifierID) *identifierNode {
	if n, ok := s.identifiers[id]; ok {
		return n
	}
	n := &identifierNode{
		level:        MemoNever,
		dependencies: make(map[hir.IdentifierID]struct{}),
		scopes:       make(map[hir.ScopeID]struct{}),
	}
	s.identifiers[id] = n
	return n
}

// declare pre-registers an identifier at the given level.
func (s *pruneState) declare(id hir.IdentifierID, level MemoLevel) {
	n := s.node(id)
	n.level = JoinLevels(n.level, level)
}

// scopeNodeFor returns the vertex for a scope, creating it from the scope's
// declared dependencies on first mention. Re-adding a scope is a no-op.
func (s *pruneState) scopeNodeFor(scope *hir.Scope) *scopeNode {
	if n, ok := s.scopes[scope.ID]; ok {
		return n
	}
	deps := make([]hir.IdentifierID, 0, len(scope.Dependencies))
	for _, dep := range scope.Dependencies {
		deps = append(deps, s.resolve(dep.Ident.ID))
	}
	n := &scopeNode{dependencies: deps}
	s.scopes[scope.ID] = n
	return n
}

// addReturned records an identifier reached by a return terminal, keeping
// insertion order for the solver.
func (s *pruneState) addReturned(id hir.IdentifierID) {
	if _, ok := s.returned[id]; ok {
		return
	}
	s.returned[id] = struct{}{}
	s.returnOrder = append(s.returnOrder, id)
}

func sortedIdentifierIDs(m map[hir.IdentifierID]struct{}) []hir.IdentifierID {
	ids := make([]hir.IdentifierID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedScopeIDs(m map[hir.ScopeID]struct{}) []hir.ScopeID {
	ids := make([]hir.ScopeID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// debugString renders the collected graph for trace output.
func (s *pruneState) debugString() string {
	var sb strings.Builder
	ids := make([]hir.IdentifierID, 0, len(s.identifiers))
	for id := range s.identifiers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i, id := range ids {
		if i > 0 {
			sb.WriteString(" ")
		}
		n := s.identifiers[id]
		fmt.Fprintf(&sb, "$%d{%s deps=%v scopes=%v}", id, n.level,
			sortedIdentifierIDs(n.dependencies), sortedScopeIDs(n.scopes))
	}
	fmt.Fprintf(&sb, " returned=%v", s.returnOrder)
	return sb.String()
}
