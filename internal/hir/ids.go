// Package hir provides the reactive High-level Intermediate Representation.
//
// HIR here is the post-scope-inference form of a React function: SSA-like
// temporaries and named bindings (identifiers), instruction values as a
// tagged union, and reactive scopes — regions whose outputs are candidates
// for render-to-render memoization. The package is consumed by the reactive
// tree and its passes; construction happens in the fixture parser.
package hir

// IdentifierID identifies an SSA-like temporary or named binding.
type IdentifierID uint32

// ScopeID identifies a reactive scope within a function.
type ScopeID uint32

// InstrID identifies an instruction; ids are ordered by source position.
type InstrID uint32

// Invalid ID constants (zero is sentinel).
const (
	NoIdentifierID IdentifierID = 0
	NoInstrID      InstrID      = 0
)

// IsValid returns true if the ID is valid (non-zero).
func (id IdentifierID) IsValid() bool { return id != NoIdentifierID }
func (id InstrID) IsValid() bool      { return id != NoInstrID }
