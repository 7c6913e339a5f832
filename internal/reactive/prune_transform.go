package reactive

import (
	"reactc/internal/hir"
)

// pruneTransform keeps scopes whose declarations or reassignments intersect
// the memoized set and inlines the rest.
type pruneTransform struct {
	memoized map[hir.IdentifierID]struct{}
	kept     int
	pruned   int
}

func (t *pruneTransform) TransformScope(block *ScopeBlock) Transformed {
	if t.scopeEscapes(block.Scope) {
		t.kept++
		return Keep()
	}
	t.pruned++
	return ReplaceMany(block.Body)
}

func (t *pruneTransform) scopeEscapes(scope *hir.Scope) bool {
	for _, decl := range scope.Declarations {
		if _, ok := t.memoized[decl.Ident.ID]; ok {
			return true
		}
	}
	for _, re := range scope.Reassignments {
		if _, ok := t.memoized[re.Ident.ID]; ok {
			return true
		}
	}
	return false
}
