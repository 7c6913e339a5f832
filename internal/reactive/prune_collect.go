package reactive

import (
	"reactc/internal/hir"
)

// memoLValue is a produced place together with its classified level.
type memoLValue struct {
	place *hir.Place
	level MemoLevel
}

// memoInputs is the lvalue/rvalue contract of a single value: the places
// whose identity the value produces, and the places it aliases.
type memoInputs struct {
	lvalues []memoLValue
	rvalues []*hir.Place
}

// collector walks every instruction, classifies its value, and records
// aliasing edges, scope membership and returned identifiers into the state.
type collector struct {
	state *pruneState
	opts  Options
	err   error // first fatal error; the walk continues but does no work
}

func (c *collector) VisitInstruction(st *Statement) {
	c.collectInstruction(st.Instr)
}

func (c *collector) VisitTerminal(st *Statement) {
	if c.err != nil {
		return
	}
	t := st.Term
	if t.Kind == TermReturn && t.Return.Value != nil {
		id := c.state.resolve(t.Return.Value.Ident.ID)
		c.state.node(id)
		c.state.addReturned(id)
	}
}

func (c *collector) collectInstruction(instr *hir.Instruction) {
	if c.err != nil || instr == nil || instr.Value == nil {
		return
	}

	// Sequence bodies carry whole instructions; collect them first so the
	// final value sees their lvalues.
	if seq, ok := instr.Value.Data.(hir.SequenceData); ok {
		for _, inner := range seq.Instructions {
			c.collectInstruction(inner)
		}
		if c.err != nil {
			return
		}
	}

	// A LoadLocal assignment is an indirection: later mentions of the
	// lvalue collapse to the source binding.
	if ll, ok := instr.Value.Data.(hir.LoadLocalData); ok && instr.LValue != nil {
		c.state.definitions[instr.LValue.Ident.ID] = ll.Place.Ident.ID
	}

	inputs, err := c.computeMemoizationInputs(instr.Value, instr.LValue)
	if err != nil {
		c.err = err
		return
	}

	rvalueIDs := make([]hir.IdentifierID, 0, len(inputs.rvalues))
	for _, rv := range inputs.rvalues {
		rvalueIDs = append(rvalueIDs, c.visitOperand(instr.ID, rv))
	}
	for _, lv := range inputs.lvalues {
		id := c.visitOperand(instr.ID, lv.place)
		node := c.state.node(id)
		node.level = JoinLevels(node.level, lv.level)
		for _, rid := range rvalueIDs {
			if rid != id {
				node.dependencies[rid] = struct{}{}
			}
		}
	}
}

// visitOperand resolves a place through the definitions map, makes sure its
// graph vertex exists, and associates it with the reactive scope active at
// the instruction, if any.
func (c *collector) visitOperand(at hir.InstrID, p *hir.Place) hir.IdentifierID {
	id := c.state.resolve(p.Ident.ID)
	node := c.state.node(id)
	if scope := hir.GetPlaceScope(at, p); scope != nil {
		c.state.scopeNodeFor(scope)
		node.scopes[scope.ID] = struct{}{}
	}
	return id
}

// computeMemoizationInputs classifies a value into its lvalue levels and
// aliased rvalues. lvalue is the instruction lvalue, nil when unnamed or
// when recursing into a nested value.
func (c *collector) computeMemoizationInputs(v *hir.Value, lvalue *hir.Place) (memoInputs, error) {
	switch d := v.Data.(type) {
	case hir.ConditionalData:
		// Only the branches alias the result; the test does not.
		cons, err := c.computeMemoizationInputs(d.Consequent, nil)
		if err != nil {
			return memoInputs{}, err
		}
		alt, err := c.computeMemoizationInputs(d.Alternate, nil)
		if err != nil {
			return memoInputs{}, err
		}
		return memoInputs{
			lvalues: conditionalLValue(lvalue),
			rvalues: append(cons.rvalues, alt.rvalues...),
		}, nil

	case hir.LogicalData:
		left, err := c.computeMemoizationInputs(d.Left, nil)
		if err != nil {
			return memoInputs{}, err
		}
		right, err := c.computeMemoizationInputs(d.Right, nil)
		if err != nil {
			return memoInputs{}, err
		}
		return memoInputs{
			lvalues: conditionalLValue(lvalue),
			rvalues: append(left.rvalues, right.rvalues...),
		}, nil

	case hir.SequenceData:
		// Only the final value of the sequence aliases the result.
		final, err := c.computeMemoizationInputs(d.Value, nil)
		if err != nil {
			return memoInputs{}, err
		}
		return memoInputs{
			lvalues: conditionalLValue(lvalue),
			rvalues: final.rvalues,
		}, nil

	case hir.JsxData:
		var rvalues []*hir.Place
		if d.Tag != nil {
			rvalues = append(rvalues, d.Tag)
		}
		for _, attr := range d.Attrs {
			rvalues = append(rvalues, attr.Value)
		}
		for _, child := range d.Children {
			rvalues = append(rvalues, child)
		}
		return memoInputs{
			lvalues: leveledLValue(lvalue, c.jsxLevel()),
			rvalues: rvalues,
		}, nil

	case hir.JsxFragmentData:
		rvalues := make([]*hir.Place, 0, len(d.Children))
		for _, child := range d.Children {
			rvalues = append(rvalues, child)
		}
		return memoInputs{
			lvalues: leveledLValue(lvalue, c.jsxLevel()),
			rvalues: rvalues,
		}, nil

	case hir.PrimitiveData, hir.TemplateLiteralData, hir.JsxTextData,
		hir.BinaryData, hir.UnaryData, hir.LoadGlobalData,
		hir.PropertyDeleteData, hir.ComputedDeleteData:
		// Identity-comparable results; operands are not aliased.
		return memoInputs{lvalues: leveledLValue(lvalue, MemoNever)}, nil

	case hir.TypeCastData:
		return memoInputs{
			lvalues: conditionalLValue(lvalue),
			rvalues: []*hir.Place{d.Value},
		}, nil

	case hir.LoadLocalData:
		return memoInputs{
			lvalues: conditionalLValue(lvalue),
			rvalues: []*hir.Place{d.Place},
		}, nil

	case hir.DeclareLocalData:
		lvalues := []memoLValue{{place: d.LValue, level: MemoUnmemoized}}
		return memoInputs{
			lvalues: append(lvalues, leveledLValue(lvalue, MemoUnmemoized)...),
		}, nil

	case hir.StoreLocalData:
		lvalues := []memoLValue{{place: d.LValue, level: MemoConditional}}
		return memoInputs{
			lvalues: append(lvalues, conditionalLValue(lvalue)...),
			rvalues: []*hir.Place{d.Value},
		}, nil

	case hir.DestructureData:
		lvalues, err := c.destructureLValues(v, d, lvalue)
		if err != nil {
			return memoInputs{}, err
		}
		return memoInputs{
			lvalues: lvalues,
			rvalues: []*hir.Place{d.Value},
		}, nil

	case hir.PropertyLoadData:
		return memoInputs{
			lvalues: conditionalLValue(lvalue),
			rvalues: []*hir.Place{d.Object},
		}, nil

	case hir.ComputedLoadData:
		// The key is not aliased by the result.
		return memoInputs{
			lvalues: conditionalLValue(lvalue),
			rvalues: []*hir.Place{d.Object},
		}, nil

	case hir.ComputedStoreData:
		lvalues := []memoLValue{{place: d.Object, level: MemoConditional}}
		return memoInputs{
			lvalues: append(lvalues, conditionalLValue(lvalue)...),
			rvalues: []*hir.Place{d.Value},
		}, nil

	case hir.ArrayData, hir.ObjectData, hir.NewData, hir.CallData,
		hir.MethodCallData, hir.OptionalCallData, hir.PropertyStoreData,
		hir.FunctionData, hir.RegExpData, hir.TaggedTemplateData:
		// Fresh references: mutable operands must stay memoized alongside
		// the result, and every operand is aliased.
		var lvalues []memoLValue
		var rvalues []*hir.Place
		hir.EachOperand(v, func(p *hir.Place) {
			if p.Effect.Mutable() {
				lvalues = append(lvalues, memoLValue{place: p, level: MemoMemoized})
			}
			rvalues = append(rvalues, p)
		})
		return memoInputs{
			lvalues: append(lvalues, leveledLValue(lvalue, MemoMemoized)...),
			rvalues: rvalues,
		}, nil

	case hir.UnsupportedData:
		return memoInputs{}, errUnsupportedValue(v)

	default:
		return memoInputs{}, errExhaustiveness("value kind "+v.Kind.String(), v.Span)
	}
}

func (c *collector) jsxLevel() MemoLevel {
	if c.opts.MemoizeJsxElements {
		return MemoMemoized
	}
	return MemoUnmemoized
}

func (c *collector) destructureLValues(v *hir.Value, d hir.DestructureData, lvalue *hir.Place) ([]memoLValue, error) {
	lvalues := conditionalLValue(lvalue)
	switch d.Pattern.Kind {
	case hir.PatternArray:
		for _, item := range d.Pattern.Items {
			switch item.Kind {
			case hir.ArrayItemIdentifier:
				lvalues = append(lvalues, memoLValue{place: item.Place, level: MemoConditional})
			case hir.ArrayItemSpread:
				lvalues = append(lvalues, memoLValue{place: item.Place, level: MemoMemoized})
			case hir.ArrayItemHole:
				// nothing bound
			default:
				return nil, errExhaustiveness("array pattern item", v.Span)
			}
		}
	case hir.PatternObject:
		for _, prop := range d.Pattern.Props {
			switch prop.Kind {
			case hir.ObjectPropIdentifier:
				lvalues = append(lvalues, memoLValue{place: prop.Place, level: MemoConditional})
			case hir.ObjectPropSpread:
				lvalues = append(lvalues, memoLValue{place: prop.Place, level: MemoMemoized})
			default:
				return nil, errExhaustiveness("object pattern property", v.Span)
			}
		}
	default:
		return nil, errExhaustiveness("destructure pattern", v.Span)
	}
	return lvalues, nil
}

// leveledLValue wraps the optional instruction lvalue at the given level.
func leveledLValue(lvalue *hir.Place, level MemoLevel) []memoLValue {
	if lvalue == nil {
		return nil
	}
	return []memoLValue{{place: lvalue, level: level}}
}

func conditionalLValue(lvalue *hir.Place) []memoLValue {
	return leveledLValue(lvalue, MemoConditional)
}
