package hir

import (
	"fmt"

	"reactc/internal/source"
)

// Identifier is a shared node for an SSA-like temporary or named binding.
// All places referring to the same binding point at one Identifier.
type Identifier struct {
	ID   IdentifierID
	Name string // empty for temporaries
	// Scope is the reactive scope this identifier was assigned to by scope
	// inference, nil if none. Valid only within the scope's instruction range.
	Scope *Scope
}

func (id *Identifier) String() string {
	if id == nil {
		return "$?"
	}
	if id.Name != "" {
		return fmt.Sprintf("$%d:%s", id.ID, id.Name)
	}
	return fmt.Sprintf("$%d", id.ID)
}

// Place is a single occurrence of an identifier with its usage effect.
type Place struct {
	Ident  *Identifier
	Effect Effect
	Span   source.Span
}

func (p *Place) String() string {
	if p == nil {
		return "$?"
	}
	if p.Effect != EffectUnknown && p.Effect != EffectRead {
		return p.Ident.String() + "!" + p.Effect.String()
	}
	return p.Ident.String()
}
