package reactive

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"reactc/internal/hir"
)

// Printer dumps reactive functions in the textual format understood by
// Parse. The output round-trips: parsing a dump yields an equivalent tree.
type Printer struct {
	w      io.Writer
	indent int
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Dump writes all functions to w in source order.
func Dump(w io.Writer, fns []*Function) error {
	p := NewPrinter(w)
	for i, fn := range fns {
		if i > 0 {
			p.printf("\n")
		}
		if err := p.PrintFunction(fn); err != nil {
			return err
		}
	}
	return nil
}

// PrintFunction prints a single function.
func (p *Printer) PrintFunction(fn *Function) error {
	p.printf("fn ")
	if fn.Ident != nil {
		p.printf("%s(", fn.Ident)
	} else {
		p.printf("%s(", fn.Name)
	}
	for i, param := range fn.Params {
		if i > 0 {
			p.printf(", ")
		}
		p.printf("%s", param)
	}
	p.printf(") {\n")
	p.indent++
	p.printStmts(fn.Body)
	p.indent--
	p.printf("}\n")
	return nil
}

func (p *Printer) printStmts(stmts []*Statement) {
	for _, st := range stmts {
		p.printStmt(st)
	}
}

func (p *Printer) printStmt(st *Statement) {
	switch st.Kind {
	case StmtInstruction:
		p.line(instrString(st.Instr))
	case StmtScope:
		s := st.Scope.Scope
		p.line(fmt.Sprintf("scope @%d range=[%d,%d) deps=%s decls=%s reassign=%s {",
			s.ID, s.Range.Start, s.Range.End,
			placeList(s.Dependencies), placeList(s.Declarations), placeList(s.Reassignments)))
		p.indent++
		p.printStmts(st.Scope.Body)
		p.indent--
		p.line("}")
	case StmtTerminal:
		p.printTerminal(st.Term)
	}
}

func (p *Printer) printTerminal(t *Terminal) {
	switch t.Kind {
	case TermReturn:
		if t.Return.Value != nil {
			p.line("return " + t.Return.Value.String())
		} else {
			p.line("return")
		}
	case TermIf:
		p.line("if " + t.If.Test.String() + " {")
		p.indent++
		p.printStmts(t.If.Then)
		p.indent--
		if t.If.Else != nil {
			p.line("} else {")
			p.indent++
			p.printStmts(t.If.Else)
			p.indent--
		}
		p.line("}")
	case TermWhile:
		p.line("while " + t.While.Test.String() + " {")
		p.indent++
		p.printStmts(t.While.Body)
		p.indent--
		p.line("}")
	case TermBreak:
		p.line("break")
	case TermContinue:
		p.line("continue")
	}
}

func instrString(instr *hir.Instruction) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%d] ", instr.ID)
	if instr.LValue != nil {
		fmt.Fprintf(&sb, "%s = ", instr.LValue)
	}
	sb.WriteString(valueString(instr.Value))
	return sb.String()
}

//nolint:gocyclo // one arm per value kind
func valueString(v *hir.Value) string {
	switch d := v.Data.(type) {
	case hir.PrimitiveData:
		return "Primitive(" + d.Raw + ")"
	case hir.TemplateLiteralData:
		return "Template(" + stringList(d.Quasis) + ", " + placeList(d.Subexprs) + ")"
	case hir.JsxTextData:
		return "JsxText(" + strconv.Quote(d.Text) + ")"
	case hir.BinaryData:
		return fmt.Sprintf("Binary(%s, %s, %s)", d.Op, d.Left, d.Right)
	case hir.UnaryData:
		return fmt.Sprintf("Unary(%s, %s)", d.Op, d.Operand)
	case hir.LoadGlobalData:
		return "LoadGlobal(" + d.Name + ")"
	case hir.LoadLocalData:
		return "LoadLocal(" + d.Place.String() + ")"
	case hir.DeclareLocalData:
		return "DeclareLocal(" + d.LValue.String() + ")"
	case hir.StoreLocalData:
		return fmt.Sprintf("StoreLocal(%s, %s)", d.LValue, d.Value)
	case hir.DestructureData:
		return fmt.Sprintf("Destructure(%s, %s)", patternString(d.Pattern), d.Value)
	case hir.TypeCastData:
		return "TypeCast(" + d.Value.String() + ")"
	case hir.ConditionalData:
		return fmt.Sprintf("Conditional(%s, %s, %s)",
			valueString(d.Test), valueString(d.Consequent), valueString(d.Alternate))
	case hir.LogicalData:
		return fmt.Sprintf("Logical(%s, %s, %s)", d.Op, valueString(d.Left), valueString(d.Right))
	case hir.SequenceData:
		parts := make([]string, 0, len(d.Instructions)+1)
		for _, instr := range d.Instructions {
			parts = append(parts, instrString(instr))
		}
		parts = append(parts, valueString(d.Value))
		return "Sequence(" + strings.Join(parts, ", ") + ")"
	case hir.PropertyLoadData:
		return fmt.Sprintf("PropertyLoad(%s, %s)", d.Object, d.Property)
	case hir.ComputedLoadData:
		return fmt.Sprintf("ComputedLoad(%s, %s)", d.Object, d.Property)
	case hir.PropertyStoreData:
		return fmt.Sprintf("PropertyStore(%s, %s, %s)", d.Object, d.Property, d.Value)
	case hir.ComputedStoreData:
		return fmt.Sprintf("ComputedStore(%s, %s, %s)", d.Object, d.Property, d.Value)
	case hir.PropertyDeleteData:
		return fmt.Sprintf("PropertyDelete(%s, %s)", d.Object, d.Property)
	case hir.ComputedDeleteData:
		return fmt.Sprintf("ComputedDelete(%s, %s)", d.Object, d.Property)
	case hir.ArrayData:
		parts := make([]string, 0, len(d.Elements))
		for _, el := range d.Elements {
			parts = append(parts, elementString(el))
		}
		return "Array(" + strings.Join(parts, ", ") + ")"
	case hir.ObjectData:
		parts := make([]string, 0, len(d.Properties))
		for _, prop := range d.Properties {
			if prop.Spread {
				parts = append(parts, "..."+prop.Value.String())
			} else {
				parts = append(parts, prop.Key+": "+prop.Value.String())
			}
		}
		return "Object(" + strings.Join(parts, ", ") + ")"
	case hir.NewData:
		return "New(" + calleeArgs(d.Callee, d.Args) + ")"
	case hir.CallData:
		return "Call(" + calleeArgs(d.Callee, d.Args) + ")"
	case hir.MethodCallData:
		parts := []string{d.Receiver.String(), d.Property.String()}
		parts = append(parts, argStrings(d.Args)...)
		return "MethodCall(" + strings.Join(parts, ", ") + ")"
	case hir.OptionalCallData:
		return "OptionalCall(" + calleeArgs(d.Callee, d.Args) + ")"
	case hir.FunctionData:
		if d.Name != "" {
			return "Function(" + d.Name + ", " + placeList(d.Dependencies) + ")"
		}
		return "Function(" + placeList(d.Dependencies) + ")"
	case hir.RegExpData:
		return fmt.Sprintf("RegExp(%s, %s)", strconv.Quote(d.Pattern), strconv.Quote(d.Flags))
	case hir.TaggedTemplateData:
		return fmt.Sprintf("TaggedTemplate(%s, %s, %s)",
			d.Tag, stringList(d.Quasis), placeList(d.Subexprs))
	case hir.JsxData:
		tag := d.TagName
		if d.Tag != nil {
			tag = d.Tag.String()
		}
		attrs := make([]string, 0, len(d.Attrs))
		for _, a := range d.Attrs {
			if a.Name == "" {
				attrs = append(attrs, "..."+a.Value.String())
			} else {
				attrs = append(attrs, a.Name+": "+a.Value.String())
			}
		}
		sections := []string{tag}
		if len(attrs) > 0 || len(d.Children) > 0 {
			sections = append(sections, strings.Join(attrs, ", "))
		}
		if len(d.Children) > 0 {
			sections = append(sections, joinPlaces(d.Children))
		}
		return "Jsx(" + strings.Join(sections, "; ") + ")"
	case hir.JsxFragmentData:
		return "JsxFragment(" + joinPlaces(d.Children) + ")"
	case hir.UnsupportedData:
		return "Unsupported(" + strconv.Quote(d.Description) + ")"
	default:
		return v.Kind.String() + "(?)"
	}
}

func patternString(pat hir.Pattern) string {
	switch pat.Kind {
	case hir.PatternArray:
		parts := make([]string, 0, len(pat.Items))
		for _, item := range pat.Items {
			switch item.Kind {
			case hir.ArrayItemIdentifier:
				parts = append(parts, item.Place.String())
			case hir.ArrayItemSpread:
				parts = append(parts, "..."+item.Place.String())
			case hir.ArrayItemHole:
				parts = append(parts, "_")
			}
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case hir.PatternObject:
		parts := make([]string, 0, len(pat.Props))
		for _, prop := range pat.Props {
			if prop.Kind == hir.ObjectPropSpread {
				parts = append(parts, "..."+prop.Place.String())
			} else {
				parts = append(parts, prop.Key+": "+prop.Place.String())
			}
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return "<?>"
}

func elementString(el hir.ArrayElement) string {
	switch el.Kind {
	case hir.ElementSpread:
		return "..." + el.Place.String()
	case hir.ElementHole:
		return "_"
	default:
		return el.Place.String()
	}
}

func calleeArgs(callee *hir.Place, args []hir.CallArg) string {
	parts := append([]string{callee.String()}, argStrings(args)...)
	return strings.Join(parts, ", ")
}

func argStrings(args []hir.CallArg) []string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		if a.Spread {
			parts = append(parts, "..."+a.Place.String())
		} else {
			parts = append(parts, a.Place.String())
		}
	}
	return parts
}

func placeList(places []*hir.Place) string {
	return "[" + joinPlaces(places) + "]"
}

func joinPlaces(places []*hir.Place) string {
	parts := make([]string, 0, len(places))
	for _, p := range places {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, ", ")
}

func stringList(items []string) string {
	parts := make([]string, 0, len(items))
	for _, s := range items {
		parts = append(parts, strconv.Quote(s))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (p *Printer) line(s string) {
	p.printf("%s%s\n", strings.Repeat("  ", p.indent), s)
}

func (p *Printer) printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}
