package reactive

import (
	"testing"

	"reactc/internal/hir"
	"reactc/internal/trace"
)

func prune(t *testing.T, fn *Function, opts Options) PruneStats {
	t.Helper()
	stats, err := PruneNonEscapingScopes(fn, opts, trace.Nop())
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	return stats
}

// remainingScopes returns the ids of scope blocks still present, in order.
func remainingScopes(fn *Function) []hir.ScopeID {
	var ids []hir.ScopeID
	var walk func(stmts []*Statement)
	walk = func(stmts []*Statement) {
		for _, st := range stmts {
			switch st.Kind {
			case StmtScope:
				ids = append(ids, st.Scope.Scope.ID)
				walk(st.Scope.Body)
			case StmtTerminal:
				switch st.Term.Kind {
				case TermIf:
					walk(st.Term.If.Then)
					walk(st.Term.If.Else)
				case TermWhile:
					walk(st.Term.While.Body)
				}
			}
		}
	}
	walk(fn.Body)
	return ids
}

func containsID(ids []hir.IdentifierID, want hir.IdentifierID) bool {
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}

func TestPruneUnusedLocal(t *testing.T) {
	// const a = {}; const b = {}; return b
	fn := parseOne(t, `
fn $1:f() {
  scope @0 range=[1,2) deps=[] decls=[$2] reassign=[] {
    [1] $2:a = Object()
  }
  scope @1 range=[2,3) deps=[] decls=[$3] reassign=[] {
    [2] $3:b = Object()
  }
  return $3
}
`)
	stats := prune(t, fn, Options{})

	scopes := remainingScopes(fn)
	if len(scopes) != 1 || scopes[0] != 1 {
		t.Fatalf("expected only scope @1 to remain, got %v", scopes)
	}
	if stats.ScopesPruned != 1 || stats.ScopesKept != 1 {
		t.Errorf("expected 1 pruned / 1 kept, got %+v", stats)
	}
	// The pruned scope's instruction is inlined, not dropped.
	if fn.Body[0].Kind != StmtInstruction || fn.Body[0].Instr.ID != 1 {
		t.Errorf("expected instruction [1] inlined at top, got %v", fn.Body[0].Kind)
	}
	if !containsID(stats.Memoized, 3) || containsID(stats.Memoized, 2) {
		t.Errorf("expected memoized set {3}, got %v", stats.Memoized)
	}
}

func TestPruneTransitiveAlias(t *testing.T) {
	// const b = {}; const c = [b]; return c
	fn := parseOne(t, `
fn $1:f() {
  scope @0 range=[1,2) deps=[] decls=[$2] reassign=[] {
    [1] $2:b = Object()
  }
  scope @1 range=[2,3) deps=[$2] decls=[$3] reassign=[] {
    [2] $3:c = Array($2!capture)
  }
  return $3
}
`)
	stats := prune(t, fn, Options{})

	scopes := remainingScopes(fn)
	if len(scopes) != 2 {
		t.Fatalf("expected both scopes kept, got %v", scopes)
	}
	if !containsID(stats.Memoized, 2) || !containsID(stats.Memoized, 3) {
		t.Errorf("expected memoized set to include both values, got %v", stats.Memoized)
	}
}

func TestPruneInterleavedGroupForcesDependency(t *testing.T) {
	// const a = [p.a]; merged scope builds b and c, stores a into c, returns b.
	// a never escapes directly but the merged scope depends on it.
	fn := parseOne(t, `
fn $1:f($2:p) {
  scope @0 range=[1,3) deps=[$2] decls=[$3] reassign=[] {
    [1] $4 = PropertyLoad($2, a)
    [2] $3:a = Array($4)
  }
  scope @1 range=[3,6) deps=[$3!capture, $2] decls=[$5, $6] reassign=[] {
    [3] $5:b = Array()
    [4] $6:c = Object()
    [5] PropertyStore($6!mutate, a, $3!capture)
  }
  return $5
}
`)
	stats := prune(t, fn, Options{})

	scopes := remainingScopes(fn)
	if len(scopes) != 2 {
		t.Fatalf("expected merged scope and its dependency kept, got %v", scopes)
	}
	if !containsID(stats.Memoized, 3) {
		t.Errorf("expected $3 forced through scope dependencies, got %v", stats.Memoized)
	}
	// The parameter is Never and must not be forced.
	if containsID(stats.Memoized, 2) {
		t.Errorf("parameter should never be memoized, got %v", stats.Memoized)
	}
}

func TestPruneJsxPolicy(t *testing.T) {
	src := `
fn $1:C($2:p) {
  [1] $3 = PropertyLoad($2, x)
  scope @0 range=[2,3) deps=[$3] decls=[$4] reassign=[] {
    [2] $4 = Jsx(div; ; $3)
  }
  return $4
}
`
	// Default policy: fresh JSX is not worth memoizing.
	fn := parseOne(t, src)
	prune(t, fn, Options{MemoizeJsxElements: false})
	if scopes := remainingScopes(fn); len(scopes) != 0 {
		t.Errorf("expected JSX scope pruned under default policy, got %v", scopes)
	}

	fn = parseOne(t, src)
	prune(t, fn, Options{MemoizeJsxElements: true})
	if scopes := remainingScopes(fn); len(scopes) != 1 {
		t.Errorf("expected JSX scope kept when memoizing JSX, got %v", scopes)
	}
}

func TestPrunePrimitiveOnlyReturn(t *testing.T) {
	fn := parseOne(t, `
fn $1:f($2:x, $3:y) {
  [1] $4 = Binary(+, $2, $3)
  return $4
}
`)
	stats := prune(t, fn, Options{})
	if len(stats.Memoized) != 0 {
		t.Errorf("expected empty memoized set, got %v", stats.Memoized)
	}
	if stats.ScopesKept != 0 {
		t.Errorf("expected no kept scopes, got %d", stats.ScopesKept)
	}
}

func TestPruneDestructureSpreadForces(t *testing.T) {
	const header = `
fn $1:f($2:o) {
  scope @0 range=[1,2) deps=[$2] decls=[$3, $4] reassign=[] {
    [1] $5 = Destructure({a: $3, ...$4}, $2)
  }
`
	// Returning the rest slot keeps the scope: rest is a fresh object.
	fn := parseOne(t, header+"  return $4\n}")
	prune(t, fn, Options{})
	if scopes := remainingScopes(fn); len(scopes) != 1 {
		t.Errorf("expected destructure scope kept for rest slot, got %v", scopes)
	}

	// Returning the plain slot alone does not.
	fn = parseOne(t, header+"  return $3\n}")
	prune(t, fn, Options{})
	if scopes := remainingScopes(fn); len(scopes) != 0 {
		t.Errorf("expected destructure scope pruned for plain slot, got %v", scopes)
	}
}

func TestPruneLoadLocalIndirection(t *testing.T) {
	// return t where t = LoadLocal(b): the return must resolve to b.
	fn := parseOne(t, `
fn $1:f() {
  scope @0 range=[1,2) deps=[] decls=[$2] reassign=[] {
    [1] $2:b = Object()
  }
  [2] $3 = LoadLocal($2)
  return $3
}
`)
	stats := prune(t, fn, Options{})
	if scopes := remainingScopes(fn); len(scopes) != 1 {
		t.Fatalf("expected scope kept through LoadLocal indirection, got %v", scopes)
	}
	if !containsID(stats.Memoized, 2) {
		t.Errorf("expected source binding memoized, got %v", stats.Memoized)
	}
}

func TestPruneConditionalPassThrough(t *testing.T) {
	// cond ? b : null escapes; b's scope must be kept, the test must not.
	fn := parseOne(t, `
fn $1:f($2:p) {
  [1] $3 = PropertyLoad($2, flag)
  scope @0 range=[2,3) deps=[] decls=[$4] reassign=[] {
    [2] $4:b = Object()
  }
  [3] $5 = Conditional(LoadLocal($3), LoadLocal($4), Primitive(null))
  return $5
}
`)
	stats := prune(t, fn, Options{})
	if scopes := remainingScopes(fn); len(scopes) != 1 {
		t.Fatalf("expected object scope kept via conditional, got %v", scopes)
	}
	if !containsID(stats.Memoized, 4) || !containsID(stats.Memoized, 5) {
		t.Errorf("expected conditional chain memoized, got %v", stats.Memoized)
	}
	if containsID(stats.Memoized, 3) {
		t.Errorf("the conditional test must not be aliased, got %v", stats.Memoized)
	}
}

func TestPruneReassignmentKeepsScope(t *testing.T) {
	fn := parseOne(t, `
fn $1:f($2:p) {
  [1] $3 = DeclareLocal($4)
  scope @0 range=[2,4) deps=[$2] decls=[$5] reassign=[$4] {
    [2] $5 = Array($2)
    [3] StoreLocal($4, $5)
  }
  [4] $6 = LoadLocal($4)
  return $6
}
`)
	prune(t, fn, Options{})
	if scopes := remainingScopes(fn); len(scopes) != 1 {
		t.Errorf("expected scope kept via reassigned binding, got %v", scopes)
	}
}

func TestPruneNestedScopes(t *testing.T) {
	// The outer scope escapes, the inner one does not: inner is inlined
	// inside the kept outer scope.
	fn := parseOne(t, `
fn $1:f() {
  scope @0 range=[1,4) deps=[] decls=[$2] reassign=[] {
    scope @1 range=[1,2) deps=[] decls=[$3] reassign=[] {
      [1] $3 = Object()
    }
    [2] $4 = Primitive(1)
    [3] $2 = Array($4)
  }
  return $2
}
`)
	prune(t, fn, Options{})
	scopes := remainingScopes(fn)
	if len(scopes) != 1 || scopes[0] != 0 {
		t.Fatalf("expected only outer scope kept, got %v", scopes)
	}
	outer := fn.Body[0].Scope
	if outer.Body[0].Kind != StmtInstruction || outer.Body[0].Instr.ID != 1 {
		t.Errorf("expected inner scope inlined into outer body")
	}
}

func TestPruneIdempotent(t *testing.T) {
	src := `
fn $1:f($2:p) {
  scope @0 range=[1,3) deps=[$2] decls=[$3] reassign=[] {
    [1] $4 = PropertyLoad($2, a)
    [2] $3:a = Array($4)
  }
  scope @1 range=[3,4) deps=[] decls=[$5] reassign=[] {
    [3] $5 = Object()
  }
  return $3
}
`
	fn := parseOne(t, src)
	prune(t, fn, Options{})
	first := dumpString(t, []*Function{fn})

	again := parseAll(t, first)
	stats := prune(t, again[0], Options{})
	second := dumpString(t, again)

	if first != second {
		t.Errorf("second run changed the function:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
	if stats.ScopesPruned != 0 {
		t.Errorf("second run should prune nothing, pruned %d", stats.ScopesPruned)
	}
}

func TestPruneKeptScopeDependenciesMemoized(t *testing.T) {
	// Transitive scope preservation: every non-Never dependency of a kept
	// scope ends up in the memoized set.
	fn := parseOne(t, `
fn $1:f($2:p) {
  scope @0 range=[1,2) deps=[] decls=[$3] reassign=[] {
    [1] $3 = Array()
  }
  scope @1 range=[2,3) deps=[$3!capture] decls=[$4] reassign=[] {
    [2] $4 = Object(items: $3)
  }
  return $4
}
`)
	stats := prune(t, fn, Options{})
	for _, st := range fn.Body {
		if st.Kind != StmtScope {
			continue
		}
		for _, dep := range st.Scope.Scope.Dependencies {
			if !containsID(stats.Memoized, dep.Ident.ID) {
				t.Errorf("kept scope @%d has unmemoized dependency $%d",
					st.Scope.Scope.ID, dep.Ident.ID)
			}
		}
	}
}

func TestPruneUnsupportedValueFails(t *testing.T) {
	fn := parseOne(t, `
fn $1:f() {
  [1] $2 = Unsupported("with statement")
  return $2
}
`)
	_, err := PruneNonEscapingScopes(fn, Options{}, trace.Nop())
	if err == nil {
		t.Fatalf("expected error for unsupported value")
	}
	perr, ok := err.(*PassError)
	if !ok {
		t.Fatalf("expected PassError, got %T", err)
	}
	if perr.Code.Phase() != "prune" {
		t.Errorf("expected prune-phase code, got %s", perr.Code)
	}
}

func TestPruneCycleTerminates(t *testing.T) {
	// a aliases b and b aliases a through stores; the solver's
	// tentatively-false marking must terminate and stay conservative.
	fn := parseOne(t, `
fn $1:f() {
  [1] $2 = DeclareLocal($3)
  [2] $4 = DeclareLocal($5)
  [3] StoreLocal($3, $5)
  [4] StoreLocal($5, $3)
  [5] $6 = LoadLocal($3)
  return $6
}
`)
	stats := prune(t, fn, Options{})
	if containsID(stats.Memoized, 3) || containsID(stats.Memoized, 5) {
		t.Errorf("pure aliasing cycle must stay unmemoized, got %v", stats.Memoized)
	}
}
