package diag

import (
	"fmt"
)

// Code identifies a diagnostic kind. Codes are grouped by producing phase.
type Code uint16

const (
	UnknownCode Code = 0

	// I/O
	IOLoadFileError Code = 1001

	// Reactive-HIR text format
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectIdentifier  Code = 2002
	SynExpectPlace       Code = 2003
	SynExpectValue       Code = 2004
	SynUnclosedBlock     Code = 2005
	SynBadInstrID        Code = 2006
	SynBadScopeHeader    Code = 2007
	SynUnknownValueKind  Code = 2008
	SynUnknownEffect     Code = 2009
	SynDuplicateInstrID  Code = 2010
	SynScopeRangeInvalid Code = 2011

	// Scope pruning
	PruneUnsupportedValue      Code = 3001
	PruneMissingIdentifierNode Code = 3002
	PruneMissingScopeNode      Code = 3003
	PruneExhaustiveness        Code = 3004
)

func (c Code) String() string {
	return fmt.Sprintf("RC%04d", uint16(c))
}

// Phase returns the producing phase for a code, for grouping in output.
func (c Code) Phase() string {
	switch {
	case c >= 3000 && c < 4000:
		return "prune"
	case c >= 2000 && c < 3000:
		return "parse"
	case c >= 1000 && c < 2000:
		return "io"
	default:
		return "unknown"
	}
}
