package hir

import "fmt"

// Effect describes how an operand place is used by its instruction.
type Effect uint8

const (
	// EffectUnknown is the default for places with no inferred effect.
	EffectUnknown Effect = iota
	// EffectRead reads the value without retaining it.
	EffectRead
	// EffectCapture retains the value inside the result.
	EffectCapture
	// EffectMutate modifies the value.
	EffectMutate
	// EffectStore writes into the value.
	EffectStore
	// EffectFreeze marks the value as immutable from here on.
	EffectFreeze
)

func (e Effect) String() string {
	switch e {
	case EffectUnknown:
		return "unknown"
	case EffectRead:
		return "read"
	case EffectCapture:
		return "capture"
	case EffectMutate:
		return "mutate"
	case EffectStore:
		return "store"
	case EffectFreeze:
		return "freeze"
	default:
		return "invalid"
	}
}

// ParseEffect converts a string to an Effect.
func ParseEffect(s string) (Effect, error) {
	switch s {
	case "read":
		return EffectRead, nil
	case "capture":
		return EffectCapture, nil
	case "mutate":
		return EffectMutate, nil
	case "store":
		return EffectStore, nil
	case "freeze":
		return EffectFreeze, nil
	default:
		return EffectUnknown, fmt.Errorf("invalid effect: %q", s)
	}
}

// Mutable reports whether the effect retains or modifies the operand.
// Mutable operands of allocating values must themselves stay memoized.
func (e Effect) Mutable() bool {
	return e == EffectCapture || e == EffectMutate || e == EffectStore
}
