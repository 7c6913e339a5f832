package reactive

import (
	"strings"
	"testing"

	"reactc/internal/diag"
	"reactc/internal/hir"
	"reactc/internal/source"
)

func parseOne(t *testing.T, src string) *Function {
	t.Helper()
	fns := parseAll(t, src)
	if len(fns) != 1 {
		t.Fatalf("expected 1 function, got %d", len(fns))
	}
	return fns[0]
}

func parseAll(t *testing.T, src string) []*Function {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rhir", []byte(src))
	bag := diag.NewBag(10)
	fns, err := Parse(fs.Get(id), diag.BagReporter{Bag: bag})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return fns
}

func dumpString(t *testing.T, fns []*Function) string {
	t.Helper()
	var sb strings.Builder
	if err := Dump(&sb, fns); err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	return sb.String()
}

func TestParseSimpleFunction(t *testing.T) {
	fn := parseOne(t, `
fn $1:f($2:props) {
  [1] $3 = LoadGlobal(foo)
  return $3
}
`)
	if fn.Name != "f" || fn.Ident == nil || fn.Ident.ID != 1 {
		t.Errorf("bad function header: name=%q ident=%v", fn.Name, fn.Ident)
	}
	if len(fn.Params) != 1 || fn.Params[0].Ident.Name != "props" {
		t.Errorf("bad params: %v", fn.Params)
	}
	if len(fn.Body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(fn.Body))
	}
	if fn.Body[0].Kind != StmtInstruction || fn.Body[0].Instr.Value.Kind != hir.ValueLoadGlobal {
		t.Errorf("expected LoadGlobal instruction first")
	}
	if fn.Body[1].Kind != StmtTerminal || fn.Body[1].Term.Kind != TermReturn {
		t.Errorf("expected return terminal")
	}
}

func TestParseSharedIdentifiers(t *testing.T) {
	fn := parseOne(t, `
fn f($1:p) {
  [1] $2 = PropertyLoad($1, x)
  [2] $3 = Array($2!capture)
  return $3
}
`)
	load := fn.Body[0].Instr.Value.Data.(hir.PropertyLoadData)
	if load.Object.Ident != fn.Params[0].Ident {
		t.Errorf("places with the same id should share one Identifier")
	}
	arr := fn.Body[1].Instr.Value.Data.(hir.ArrayData)
	if arr.Elements[0].Place.Effect != hir.EffectCapture {
		t.Errorf("expected capture effect, got %s", arr.Elements[0].Place.Effect)
	}
}

func TestParseScopeHeader(t *testing.T) {
	fn := parseOne(t, `
fn f($1:p) {
  scope @0 range=[1,3) deps=[$1!capture] decls=[$2] reassign=[] {
    [1] $3 = PropertyLoad($1, a)
    [2] $2:a = Array($3)
  }
  return $2
}
`)
	st := fn.Body[0]
	if st.Kind != StmtScope {
		t.Fatalf("expected scope statement, got %s", st.Kind)
	}
	s := st.Scope.Scope
	if s.ID != 0 || s.Range.Start != 1 || s.Range.End != 3 {
		t.Errorf("bad scope header: %+v", s)
	}
	if len(s.Dependencies) != 1 || s.Dependencies[0].Ident.ID != 1 {
		t.Errorf("bad deps: %v", s.Dependencies)
	}
	decl := s.Declarations[0]
	if decl.Ident.Scope != s {
		t.Errorf("declared identifier should be linked to its scope")
	}
	if got := hir.GetPlaceScope(2, decl); got != s {
		t.Errorf("expected scope active at instruction 2")
	}
	if got := hir.GetPlaceScope(3, decl); got != nil {
		t.Errorf("scope should not be active past its range")
	}
}

func TestParseNestedValues(t *testing.T) {
	fn := parseOne(t, `
fn f($1:p) {
  [1] $2 = Conditional(LoadLocal($1), Logical(&&, LoadLocal($1), Primitive(1)), Primitive(null))
  [2] $3 = Sequence([3] $4 = Call($1), LoadLocal($4))
  return $2
}
`)
	cond := fn.Body[0].Instr.Value
	if cond.Kind != hir.ValueConditional {
		t.Fatalf("expected conditional, got %s", cond.Kind)
	}
	d := cond.Data.(hir.ConditionalData)
	if d.Consequent.Kind != hir.ValueLogical {
		t.Errorf("expected nested logical, got %s", d.Consequent.Kind)
	}
	seq := fn.Body[1].Instr.Value.Data.(hir.SequenceData)
	if len(seq.Instructions) != 1 || seq.Instructions[0].ID != 3 {
		t.Errorf("bad sequence instructions: %v", seq.Instructions)
	}
	if seq.Value.Kind != hir.ValueLoadLocal {
		t.Errorf("expected LoadLocal sequence value, got %s", seq.Value.Kind)
	}
}

func TestParseDestructureAndJsx(t *testing.T) {
	fn := parseOne(t, `
fn f($1:o) {
  [1] $2 = Destructure({a: $3, ...$4}, $1)
  [2] $5 = Destructure([$6, _, ...$7], $1)
  [3] $8 = Jsx(div; className: $3, ...$4; $6, $7)
  [4] $9 = Jsx($3)
  return $8
}
`)
	obj := fn.Body[0].Instr.Value.Data.(hir.DestructureData)
	if obj.Pattern.Kind != hir.PatternObject || len(obj.Pattern.Props) != 2 {
		t.Fatalf("bad object pattern: %+v", obj.Pattern)
	}
	if obj.Pattern.Props[1].Kind != hir.ObjectPropSpread {
		t.Errorf("expected spread prop")
	}
	arr := fn.Body[1].Instr.Value.Data.(hir.DestructureData)
	if arr.Pattern.Kind != hir.PatternArray || len(arr.Pattern.Items) != 3 {
		t.Fatalf("bad array pattern: %+v", arr.Pattern)
	}
	if arr.Pattern.Items[1].Kind != hir.ArrayItemHole || arr.Pattern.Items[2].Kind != hir.ArrayItemSpread {
		t.Errorf("bad pattern item kinds")
	}
	jsx := fn.Body[2].Instr.Value.Data.(hir.JsxData)
	if jsx.TagName != "div" || len(jsx.Attrs) != 2 || len(jsx.Children) != 2 {
		t.Errorf("bad jsx: %+v", jsx)
	}
	if jsx.Attrs[1].Name != "" {
		t.Errorf("expected spread attribute")
	}
	ref := fn.Body[3].Instr.Value.Data.(hir.JsxData)
	if ref.Tag == nil || ref.Tag.Ident.ID != 3 {
		t.Errorf("expected place tag, got %+v", ref)
	}
}

func TestParseRoundTrip(t *testing.T) {
	src := `
fn $1:Component($2:props) {
  [1] $3 = PropertyLoad($2, items)
  scope @0 range=[2,5) deps=[$3!capture] decls=[$4, $5] reassign=[] {
    [2] $4:list = Array(...$3, _)
    [3] $6 = Primitive("title")
    [4] $5 = Object(title: $6, ...$2)
  }
  if $4 {
    [5] $7 = MethodCall($4!mutate, $8, $5!capture)
  } else {
    while $3 {
      break
    }
    continue
  }
  [6] $9 = Template(["a", "b"], [$3])
  [7] $10 = TaggedTemplate($9, ["q"], [$3])
  [8] $11 = Function(helper, [$4!capture])
  [9] $12 = RegExp("ab+", "g")
  [10] $13 = Unary(!, $3)
  [11] $14 = New($11, $12, ...$13)
  [12] $15 = OptionalCall($11, $13)
  [13] $16 = JsxFragment($4, $5)
  [14] $17 = TypeCast($16)
  [15] StoreLocal($4, $17)
  [16] ComputedStore($5, $6, $7)
  [17] $18 = ComputedLoad($5, $6)
  [18] PropertyDelete($5, stale)
  [19] ComputedDelete($5, $6)
  [20] $19 = JsxText("hello")
  return $4
}
`
	first := parseAll(t, src)
	out1 := dumpString(t, first)
	second := parseAll(t, out1)
	out2 := dumpString(t, second)
	if out1 != out2 {
		t.Errorf("round trip not stable:\nfirst:\n%s\nsecond:\n%s", out1, out2)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"unknown kind", "fn f() {\n  [1] $2 = Bogus()\n}", diag.SynUnknownValueKind},
		{"duplicate instr", "fn f() {\n  [1] $2 = Object()\n  [1] $3 = Object()\n}", diag.SynDuplicateInstrID},
		{"bad effect", "fn f() {\n  [1] $2 = LoadLocal($3!wild)\n}", diag.SynUnknownEffect},
		{"inverted range", "fn f() {\n  scope @0 range=[3,1) deps=[] decls=[] reassign=[] {\n  }\n}", diag.SynScopeRangeInvalid},
		{"duplicate scope", "fn f() {\n  scope @0 range=[1,2) deps=[] decls=[] reassign=[] {\n  }\n  scope @0 range=[2,3) deps=[] decls=[] reassign=[] {\n  }\n}", diag.SynBadScopeHeader},
		{"unclosed block", "fn f() {\n  [1] $2 = Object()\n", diag.SynUnclosedBlock},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fs := source.NewFileSet()
			id := fs.AddVirtual("err.rhir", []byte(c.src))
			bag := diag.NewBag(10)
			_, err := Parse(fs.Get(id), diag.BagReporter{Bag: bag})
			if err == nil {
				t.Fatalf("expected parse error")
			}
			if bag.Len() == 0 {
				t.Fatalf("expected reported diagnostic")
			}
			if got := bag.Items()[0].Code; got != c.code {
				t.Errorf("expected code %s, got %s", c.code, got)
			}
		})
	}
}
