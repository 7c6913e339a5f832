package hir

// InstrRange is a half-open instruction id range [Start, End).
type InstrRange struct {
	Start InstrID
	End   InstrID
}

// Contains reports whether the range covers the given instruction id.
func (r InstrRange) Contains(id InstrID) bool {
	return id >= r.Start && id < r.End
}

// Scope is a reactive scope: a region of instructions whose outputs are
// candidates for memoization. Scopes arrive from upstream scope inference
// with their dependency, declaration and reassignment sets precomputed.
type Scope struct {
	ID    ScopeID
	Range InstrRange

	// Dependencies are the scope's external inputs, in source order.
	Dependencies []*Place
	// Declarations are identifiers first assigned inside the scope.
	Declarations []*Place
	// Reassignments are outer identifiers written inside the scope.
	Reassignments []*Place
}

// GetPlaceScope returns the reactive scope active for the place at the given
// instruction id, or nil when the place's identifier has no scope or the
// scope's range does not cover the instruction.
func GetPlaceScope(at InstrID, p *Place) *Scope {
	if p == nil || p.Ident == nil {
		return nil
	}
	if s := p.Ident.Scope; s != nil && s.Range.Contains(at) {
		return s
	}
	return nil
}
