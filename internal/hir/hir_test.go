package hir

import (
	"testing"
)

func ident(id IdentifierID) *Identifier {
	return &Identifier{ID: id}
}

func place(id IdentifierID, eff Effect) *Place {
	return &Place{Ident: ident(id), Effect: eff}
}

func collectOperands(v *Value) []IdentifierID {
	var ids []IdentifierID
	EachOperand(v, func(p *Place) {
		ids = append(ids, p.Ident.ID)
	})
	return ids
}

func TestEachOperandCall(t *testing.T) {
	v := &Value{
		Kind: ValueCall,
		Data: CallData{
			Callee: place(1, EffectRead),
			Args: []CallArg{
				{Place: place(2, EffectCapture)},
				{Place: place(3, EffectRead), Spread: true},
			},
		},
	}
	ids := collectOperands(v)
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Errorf("expected [1 2 3], got %v", ids)
	}
}

func TestEachOperandNestedConditional(t *testing.T) {
	v := &Value{
		Kind: ValueConditional,
		Data: ConditionalData{
			Test: &Value{Kind: ValueLoadLocal, Data: LoadLocalData{Place: place(1, EffectRead)}},
			Consequent: &Value{Kind: ValueLogical, Data: LogicalData{
				Op:    "&&",
				Left:  &Value{Kind: ValueLoadLocal, Data: LoadLocalData{Place: place(2, EffectRead)}},
				Right: &Value{Kind: ValueLoadLocal, Data: LoadLocalData{Place: place(3, EffectRead)}},
			}},
			Alternate: &Value{Kind: ValuePrimitive, Data: PrimitiveData{Raw: "null"}},
		},
	}
	ids := collectOperands(v)
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Errorf("expected [1 2 3], got %v", ids)
	}
}

func TestEachOperandDestructure(t *testing.T) {
	v := &Value{
		Kind: ValueDestructure,
		Data: DestructureData{
			Pattern: Pattern{
				Kind: PatternObject,
				Props: []ObjectPatternProp{
					{Kind: ObjectPropIdentifier, Key: "a", Place: place(1, EffectRead)},
					{Kind: ObjectPropSpread, Place: place(2, EffectRead)},
				},
			},
			Value: place(3, EffectRead),
		},
	}
	ids := collectOperands(v)
	if len(ids) != 3 || ids[2] != 3 {
		t.Errorf("expected pattern slots then value, got %v", ids)
	}
}

func TestGetPlaceScope(t *testing.T) {
	s := &Scope{ID: 1, Range: InstrRange{Start: 2, End: 5}}
	id := ident(7)
	id.Scope = s
	p := &Place{Ident: id, Effect: EffectRead}

	if got := GetPlaceScope(3, p); got != s {
		t.Errorf("expected scope for instruction inside range")
	}
	if got := GetPlaceScope(5, p); got != nil {
		t.Errorf("range end is exclusive, got %v", got)
	}
	if got := GetPlaceScope(1, p); got != nil {
		t.Errorf("expected nil before range, got %v", got)
	}
}

func TestEffectMutable(t *testing.T) {
	mutable := []Effect{EffectCapture, EffectMutate, EffectStore}
	for _, e := range mutable {
		if !e.Mutable() {
			t.Errorf("%s should be mutable", e)
		}
	}
	for _, e := range []Effect{EffectRead, EffectFreeze, EffectUnknown} {
		if e.Mutable() {
			t.Errorf("%s should not be mutable", e)
		}
	}
}
