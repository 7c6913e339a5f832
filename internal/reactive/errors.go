package reactive

import (
	"fmt"

	"reactc/internal/diag"
	"reactc/internal/hir"
	"reactc/internal/source"
)

// PassError is a fatal pass failure. The pass is all-or-nothing: any
// PassError aborts without partially rewriting the function.
type PassError struct {
	Code    diag.Code
	Span    source.Span
	Message string
}

func (e *PassError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Diagnostic converts the error for rendering.
func (e *PassError) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code, e.Span, e.Message)
}

func errUnsupportedValue(v *hir.Value) *PassError {
	desc := ""
	if d, ok := v.Data.(hir.UnsupportedData); ok && d.Description != "" {
		desc = ": " + d.Description
	}
	return &PassError{
		Code:    diag.PruneUnsupportedValue,
		Span:    v.Span,
		Message: "unexpected unsupported node" + desc,
	}
}

func errMissingIdentifierNode(id hir.IdentifierID) *PassError {
	return &PassError{
		Code:    diag.PruneMissingIdentifierNode,
		Message: fmt.Sprintf("no graph node for identifier $%d", id),
	}
}

func errMissingScopeNode(id hir.ScopeID) *PassError {
	return &PassError{
		Code:    diag.PruneMissingScopeNode,
		Message: fmt.Sprintf("no graph node for scope @%d", id),
	}
}

func errExhaustiveness(what string, span source.Span) *PassError {
	return &PassError{
		Code:    diag.PruneExhaustiveness,
		Span:    span,
		Message: "unhandled " + what,
	}
}
