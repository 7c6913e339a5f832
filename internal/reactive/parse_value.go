package reactive

import (
	"strings"

	"reactc/internal/diag"
	"reactc/internal/hir"
)

// parseValue parses Kind(args...). Each kind owns its argument syntax,
// mirroring what valueString prints.
//
//nolint:gocyclo // one arm per value kind
func (p *parser) parseValue() (*hir.Value, error) {
	kindTok, err := p.expectIdent()
	if err != nil {
		return nil, p.errf(diag.SynExpectValue, p.cur(), "expected value, got %q", p.cur().text)
	}
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}

	v := &hir.Value{Span: kindTok.span(p.file)}
	switch kindTok.text {
	case "Primitive":
		v.Kind = hir.ValuePrimitive
		var raw strings.Builder
		for !p.atPunct(")") {
			if p.cur().kind == tokEOF {
				return nil, p.errf(diag.SynUnclosedBlock, p.cur(), "unterminated Primitive")
			}
			raw.WriteString(p.advance().text)
		}
		v.Data = hir.PrimitiveData{Raw: raw.String()}

	case "Template":
		quasis, err := p.parseStringList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(","); err != nil {
			return nil, err
		}
		exprs, err := p.parsePlaceList()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueTemplateLiteral
		v.Data = hir.TemplateLiteralData{Quasis: quasis, Subexprs: exprs}

	case "JsxText":
		text, err := p.expectString()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueJsxText
		v.Data = hir.JsxTextData{Text: text}

	case "Binary":
		op, err := p.parseOpArg()
		if err != nil {
			return nil, err
		}
		left, right, err := p.parseTwoPlaces()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueBinary
		v.Data = hir.BinaryData{Op: op, Left: left, Right: right}

	case "Unary":
		op, err := p.parseOpArg()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(","); err != nil {
			return nil, err
		}
		operand, err := p.parsePlace()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueUnary
		v.Data = hir.UnaryData{Op: op, Operand: operand}

	case "LoadGlobal":
		nameTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueLoadGlobal
		v.Data = hir.LoadGlobalData{Name: nameTok.text}

	case "LoadLocal":
		pl, err := p.parsePlace()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueLoadLocal
		v.Data = hir.LoadLocalData{Place: pl}

	case "DeclareLocal":
		pl, err := p.parsePlace()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueDeclareLocal
		v.Data = hir.DeclareLocalData{LValue: pl}

	case "StoreLocal":
		lv, val, err := p.parseTwoPlacesNoComma()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueStoreLocal
		v.Data = hir.StoreLocalData{LValue: lv, Value: val}

	case "Destructure":
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(","); err != nil {
			return nil, err
		}
		val, err := p.parsePlace()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueDestructure
		v.Data = hir.DestructureData{Pattern: pat, Value: val}

	case "TypeCast":
		pl, err := p.parsePlace()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueTypeCast
		v.Data = hir.TypeCastData{Value: pl}

	case "Conditional":
		test, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(","); err != nil {
			return nil, err
		}
		cons, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(","); err != nil {
			return nil, err
		}
		alt, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueConditional
		v.Data = hir.ConditionalData{Test: test, Consequent: cons, Alternate: alt}

	case "Logical":
		op, err := p.parseOpArg()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(","); err != nil {
			return nil, err
		}
		left, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(","); err != nil {
			return nil, err
		}
		right, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueLogical
		v.Data = hir.LogicalData{Op: op, Left: left, Right: right}

	case "Sequence":
		var instrs []*hir.Instruction
		for p.atPunct("[") {
			instr, err := p.parseInstruction()
			if err != nil {
				return nil, err
			}
			instrs = append(instrs, instr)
			if _, err := p.expectPunct(","); err != nil {
				return nil, err
			}
		}
		final, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueSequence
		v.Data = hir.SequenceData{Instructions: instrs, Value: final}

	case "PropertyLoad":
		obj, prop, err := p.parsePlaceAndName()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValuePropertyLoad
		v.Data = hir.PropertyLoadData{Object: obj, Property: prop}

	case "ComputedLoad":
		obj, key, err := p.parseTwoPlacesNoComma()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueComputedLoad
		v.Data = hir.ComputedLoadData{Object: obj, Property: key}

	case "PropertyStore":
		obj, prop, err := p.parsePlaceAndName()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(","); err != nil {
			return nil, err
		}
		val, err := p.parsePlace()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValuePropertyStore
		v.Data = hir.PropertyStoreData{Object: obj, Property: prop, Value: val}

	case "ComputedStore":
		obj, key, err := p.parseTwoPlacesNoComma()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(","); err != nil {
			return nil, err
		}
		val, err := p.parsePlace()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueComputedStore
		v.Data = hir.ComputedStoreData{Object: obj, Property: key, Value: val}

	case "PropertyDelete":
		obj, prop, err := p.parsePlaceAndName()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValuePropertyDelete
		v.Data = hir.PropertyDeleteData{Object: obj, Property: prop}

	case "ComputedDelete":
		obj, key, err := p.parseTwoPlacesNoComma()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueComputedDelete
		v.Data = hir.ComputedDeleteData{Object: obj, Property: key}

	case "Array":
		elements, err := p.parseArrayElements()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueArray
		v.Data = hir.ArrayData{Elements: elements}

	case "Object":
		props, err := p.parseObjectEntries(")")
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueObject
		v.Data = hir.ObjectData{Properties: props}

	case "New":
		callee, args, err := p.parseCalleeArgs()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueNew
		v.Data = hir.NewData{Callee: callee, Args: args}

	case "Call":
		callee, args, err := p.parseCalleeArgs()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueCall
		v.Data = hir.CallData{Callee: callee, Args: args}

	case "MethodCall":
		recv, err := p.parsePlace()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(","); err != nil {
			return nil, err
		}
		prop, err := p.parsePlace()
		if err != nil {
			return nil, err
		}
		args, err := p.parseCallArgs()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueMethodCall
		v.Data = hir.MethodCallData{Receiver: recv, Property: prop, Args: args}

	case "OptionalCall":
		callee, args, err := p.parseCalleeArgs()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueOptionalCall
		v.Data = hir.OptionalCallData{Callee: callee, Args: args}

	case "Function":
		name := ""
		if p.cur().kind == tokIdent {
			name = p.advance().text
			if _, err := p.expectPunct(","); err != nil {
				return nil, err
			}
		}
		deps, err := p.parsePlaceList()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueFunction
		v.Data = hir.FunctionData{Name: name, Dependencies: deps}

	case "RegExp":
		pat, err := p.expectString()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(","); err != nil {
			return nil, err
		}
		flags, err := p.expectString()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueRegExp
		v.Data = hir.RegExpData{Pattern: pat, Flags: flags}

	case "TaggedTemplate":
		tag, err := p.parsePlace()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(","); err != nil {
			return nil, err
		}
		quasis, err := p.parseStringList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(","); err != nil {
			return nil, err
		}
		exprs, err := p.parsePlaceList()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueTaggedTemplate
		v.Data = hir.TaggedTemplateData{Tag: tag, Quasis: quasis, Subexprs: exprs}

	case "Jsx":
		data, err := p.parseJsx()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueJsx
		v.Data = data

	case "JsxFragment":
		var children []*hir.Place
		for !p.atPunct(")") {
			if len(children) > 0 {
				if _, err := p.expectPunct(","); err != nil {
					return nil, err
				}
			}
			child, err := p.parsePlace()
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		v.Kind = hir.ValueJsxFragment
		v.Data = hir.JsxFragmentData{Children: children}

	case "Unsupported":
		desc, err := p.expectString()
		if err != nil {
			return nil, err
		}
		v.Kind = hir.ValueUnsupported
		v.Data = hir.UnsupportedData{Description: desc}

	default:
		return nil, p.errf(diag.SynUnknownValueKind, kindTok, "unknown value kind %q", kindTok.text)
	}

	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return v, nil
}

// parseOpArg accepts an operator token or a word operator (in, instanceof,
// typeof, delete, void).
func (p *parser) parseOpArg() (string, error) {
	if p.cur().kind == tokOp || p.cur().kind == tokIdent {
		return p.advance().text, nil
	}
	return "", p.errf(diag.SynUnexpectedToken, p.cur(), "expected operator, got %q", p.cur().text)
}

func (p *parser) parseTwoPlaces() (*hir.Place, *hir.Place, error) {
	if _, err := p.expectPunct(","); err != nil {
		return nil, nil, err
	}
	return p.parseTwoPlacesNoComma()
}

func (p *parser) parseTwoPlacesNoComma() (*hir.Place, *hir.Place, error) {
	first, err := p.parsePlace()
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expectPunct(","); err != nil {
		return nil, nil, err
	}
	second, err := p.parsePlace()
	if err != nil {
		return nil, nil, err
	}
	return first, second, nil
}

func (p *parser) parsePlaceAndName() (*hir.Place, string, error) {
	pl, err := p.parsePlace()
	if err != nil {
		return nil, "", err
	}
	if _, err := p.expectPunct(","); err != nil {
		return nil, "", err
	}
	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, "", err
	}
	return pl, nameTok.text, nil
}

func (p *parser) parseStringList() ([]string, error) {
	if _, err := p.expectPunct("["); err != nil {
		return nil, err
	}
	var items []string
	for !p.atPunct("]") {
		if len(items) > 0 {
			if _, err := p.expectPunct(","); err != nil {
				return nil, err
			}
		}
		s, err := p.expectString()
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	p.advance() // ']'
	return items, nil
}

func (p *parser) parsePattern() (hir.Pattern, error) {
	switch {
	case p.atPunct("["):
		p.advance()
		pat := hir.Pattern{Kind: hir.PatternArray}
		for !p.atPunct("]") {
			if len(pat.Items) > 0 {
				if _, err := p.expectPunct(","); err != nil {
					return pat, err
				}
			}
			switch {
			case p.atKeyword("_"):
				p.advance()
				pat.Items = append(pat.Items, hir.ArrayPatternItem{Kind: hir.ArrayItemHole})
			case p.atOp("..."):
				p.advance()
				pl, err := p.parsePlace()
				if err != nil {
					return pat, err
				}
				pat.Items = append(pat.Items, hir.ArrayPatternItem{Kind: hir.ArrayItemSpread, Place: pl})
			default:
				pl, err := p.parsePlace()
				if err != nil {
					return pat, err
				}
				pat.Items = append(pat.Items, hir.ArrayPatternItem{Kind: hir.ArrayItemIdentifier, Place: pl})
			}
		}
		p.advance() // ']'
		return pat, nil

	case p.atPunct("{"):
		p.advance()
		pat := hir.Pattern{Kind: hir.PatternObject}
		for !p.atPunct("}") {
			if len(pat.Props) > 0 {
				if _, err := p.expectPunct(","); err != nil {
					return pat, err
				}
			}
			if p.atOp("...") {
				p.advance()
				pl, err := p.parsePlace()
				if err != nil {
					return pat, err
				}
				pat.Props = append(pat.Props, hir.ObjectPatternProp{Kind: hir.ObjectPropSpread, Place: pl})
				continue
			}
			keyTok, err := p.expectIdent()
			if err != nil {
				return pat, err
			}
			if _, err := p.expectPunct(":"); err != nil {
				return pat, err
			}
			pl, err := p.parsePlace()
			if err != nil {
				return pat, err
			}
			pat.Props = append(pat.Props, hir.ObjectPatternProp{
				Kind: hir.ObjectPropIdentifier, Key: keyTok.text, Place: pl,
			})
		}
		p.advance() // '}'
		return pat, nil

	default:
		return hir.Pattern{}, p.errf(diag.SynUnexpectedToken, p.cur(), "expected pattern, got %q", p.cur().text)
	}
}

func (p *parser) parseArrayElements() ([]hir.ArrayElement, error) {
	var elements []hir.ArrayElement
	for !p.atPunct(")") {
		if len(elements) > 0 {
			if _, err := p.expectPunct(","); err != nil {
				return nil, err
			}
		}
		switch {
		case p.atKeyword("_"):
			p.advance()
			elements = append(elements, hir.ArrayElement{Kind: hir.ElementHole})
		case p.atOp("..."):
			p.advance()
			pl, err := p.parsePlace()
			if err != nil {
				return nil, err
			}
			elements = append(elements, hir.ArrayElement{Kind: hir.ElementSpread, Place: pl})
		default:
			pl, err := p.parsePlace()
			if err != nil {
				return nil, err
			}
			elements = append(elements, hir.ArrayElement{Kind: hir.ElementValue, Place: pl})
		}
	}
	return elements, nil
}

// parseObjectEntries parses key: place and ...place entries until the given
// closer (exclusive).
func (p *parser) parseObjectEntries(closer string) ([]hir.ObjectEntry, error) {
	var props []hir.ObjectEntry
	for !p.atPunct(closer) && !p.atPunct(";") {
		if len(props) > 0 {
			if _, err := p.expectPunct(","); err != nil {
				return nil, err
			}
		}
		if p.atOp("...") {
			p.advance()
			pl, err := p.parsePlace()
			if err != nil {
				return nil, err
			}
			props = append(props, hir.ObjectEntry{Value: pl, Spread: true})
			continue
		}
		keyTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		pl, err := p.parsePlace()
		if err != nil {
			return nil, err
		}
		props = append(props, hir.ObjectEntry{Key: keyTok.text, Value: pl})
	}
	return props, nil
}

func (p *parser) parseCalleeArgs() (*hir.Place, []hir.CallArg, error) {
	callee, err := p.parsePlace()
	if err != nil {
		return nil, nil, err
	}
	args, err := p.parseCallArgs()
	if err != nil {
		return nil, nil, err
	}
	return callee, args, nil
}

// parseCallArgs parses ", arg" repetitions until ')'.
func (p *parser) parseCallArgs() ([]hir.CallArg, error) {
	var args []hir.CallArg
	for !p.atPunct(")") {
		if _, err := p.expectPunct(","); err != nil {
			return nil, err
		}
		spread := false
		if p.atOp("...") {
			p.advance()
			spread = true
		}
		pl, err := p.parsePlace()
		if err != nil {
			return nil, err
		}
		args = append(args, hir.CallArg{Place: pl, Spread: spread})
	}
	return args, nil
}

// parseJsx parses tag[; attrs[; children]].
func (p *parser) parseJsx() (hir.JsxData, error) {
	var data hir.JsxData
	if p.atPunct("$") {
		tag, err := p.parsePlace()
		if err != nil {
			return data, err
		}
		data.Tag = tag
	} else {
		nameTok, err := p.expectIdent()
		if err != nil {
			return data, err
		}
		data.TagName = nameTok.text
	}

	if !p.atPunct(";") {
		return data, nil
	}
	p.advance() // ';'

	entries, err := p.parseObjectEntries(")")
	if err != nil {
		return data, err
	}
	for _, e := range entries {
		data.Attrs = append(data.Attrs, hir.JsxAttribute{Name: e.Key, Value: e.Value})
	}

	if !p.atPunct(";") {
		return data, nil
	}
	p.advance() // ';'

	for !p.atPunct(")") {
		if len(data.Children) > 0 {
			if _, err := p.expectPunct(","); err != nil {
				return data, err
			}
		}
		child, err := p.parsePlace()
		if err != nil {
			return data, err
		}
		data.Children = append(data.Children, child)
	}
	return data, nil
}
