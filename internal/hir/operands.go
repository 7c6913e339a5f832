package hir

// EachOperand yields every operand place of a value, in source order.
// Nested values (conditional branches, logical arms, sequence bodies)
// are traversed recursively; lvalue-side places of stores and patterns
// are included, since their identity participates in aliasing.
func EachOperand(v *Value, fn func(p *Place)) {
	if v == nil {
		return
	}
	visit := func(p *Place) {
		if p != nil {
			fn(p)
		}
	}
	switch d := v.Data.(type) {
	case PrimitiveData, JsxTextData, LoadGlobalData, RegExpData, UnsupportedData:
		// no operands
	case TemplateLiteralData:
		for _, p := range d.Subexprs {
			visit(p)
		}
	case BinaryData:
		visit(d.Left)
		visit(d.Right)
	case UnaryData:
		visit(d.Operand)
	case LoadLocalData:
		visit(d.Place)
	case DeclareLocalData:
		visit(d.LValue)
	case StoreLocalData:
		visit(d.LValue)
		visit(d.Value)
	case DestructureData:
		switch d.Pattern.Kind {
		case PatternArray:
			for _, item := range d.Pattern.Items {
				visit(item.Place)
			}
		case PatternObject:
			for _, prop := range d.Pattern.Props {
				visit(prop.Place)
			}
		}
		visit(d.Value)
	case TypeCastData:
		visit(d.Value)
	case ConditionalData:
		EachOperand(d.Test, fn)
		EachOperand(d.Consequent, fn)
		EachOperand(d.Alternate, fn)
	case LogicalData:
		EachOperand(d.Left, fn)
		EachOperand(d.Right, fn)
	case SequenceData:
		for _, instr := range d.Instructions {
			if instr.LValue != nil {
				visit(instr.LValue)
			}
			EachOperand(instr.Value, fn)
		}
		EachOperand(d.Value, fn)
	case PropertyLoadData:
		visit(d.Object)
	case ComputedLoadData:
		visit(d.Object)
		visit(d.Property)
	case PropertyStoreData:
		visit(d.Object)
		visit(d.Value)
	case ComputedStoreData:
		visit(d.Object)
		visit(d.Property)
		visit(d.Value)
	case PropertyDeleteData:
		visit(d.Object)
	case ComputedDeleteData:
		visit(d.Object)
		visit(d.Property)
	case ArrayData:
		for _, el := range d.Elements {
			visit(el.Place)
		}
	case ObjectData:
		for _, prop := range d.Properties {
			visit(prop.Value)
		}
	case NewData:
		visit(d.Callee)
		for _, a := range d.Args {
			visit(a.Place)
		}
	case CallData:
		visit(d.Callee)
		for _, a := range d.Args {
			visit(a.Place)
		}
	case MethodCallData:
		visit(d.Receiver)
		visit(d.Property)
		for _, a := range d.Args {
			visit(a.Place)
		}
	case OptionalCallData:
		visit(d.Callee)
		for _, a := range d.Args {
			visit(a.Place)
		}
	case FunctionData:
		for _, p := range d.Dependencies {
			visit(p)
		}
	case TaggedTemplateData:
		visit(d.Tag)
		for _, p := range d.Subexprs {
			visit(p)
		}
	case JsxData:
		visit(d.Tag)
		for _, attr := range d.Attrs {
			visit(attr.Value)
		}
		for _, c := range d.Children {
			visit(c)
		}
	case JsxFragmentData:
		for _, c := range d.Children {
			visit(c)
		}
	}
}
