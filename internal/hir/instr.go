package hir

import (
	"reactc/internal/source"
)

// Instruction is a single HIR instruction: an optional lvalue and a value.
type Instruction struct {
	ID     InstrID
	LValue *Place // nil when the result is unnamed
	Value  *Value
	Span   source.Span
}
