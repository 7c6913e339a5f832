package reactive

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"reactc/internal/diag"
	"reactc/internal/hir"
	"reactc/internal/source"
)

// Parse reads the textual reactive-HIR format produced by Dump. Syntax
// errors are reported through rep and returned as an error; the first error
// aborts the parse.
func Parse(f *source.File, rep diag.Reporter) ([]*Function, error) {
	toks, err := scanTokens(f)
	if err != nil {
		if serr, ok := err.(*syntaxError); ok {
			serr.report(rep)
		}
		return nil, err
	}
	p := &parser{toks: toks, file: f.ID, rep: rep}
	fns, err := p.parseFile()
	if err != nil {
		if serr, ok := err.(*syntaxError); ok {
			serr.report(rep)
		}
		return nil, err
	}
	return fns, nil
}

type tokKind uint8

const (
	tokEOF tokKind = iota
	tokIdent
	tokNumber
	tokString
	tokPunct
	tokOp
)

type token struct {
	kind tokKind
	text string
	pos  uint32
}

func (t token) span(file source.FileID) source.Span {
	return source.Span{
		File:  file,
		Start: t.pos,
		End:   t.pos + uint32(len(t.text)), //nolint:gosec // G115: token lengths are small
	}
}

type syntaxError struct {
	code diag.Code
	span source.Span
	msg  string
}

func (e *syntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.code, e.msg)
}

func (e *syntaxError) report(rep diag.Reporter) {
	if rep != nil {
		rep.Report(e.code, diag.SevError, e.span, e.msg, nil)
	}
}

const opChars = "+-*/<>=&|^%!?~."

func isOpChar(b byte) bool    { return strings.IndexByte(opChars, b) >= 0 }
func isPunctChar(b byte) bool { return strings.IndexByte("()[]{},:;@$", b) >= 0 }
func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func scanTokens(f *source.File) ([]token, error) {
	src := f.Content
	toks := make([]token, 0, 128)
	i := 0
	for i < len(src) {
		b := src[i]
		switch {
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			i++
		case b == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case isIdentStart(b):
			start := i
			for i < len(src) && isIdentPart(src[i]) {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: string(src[start:i]), pos: uint32(start)}) //nolint:gosec // G115
		case b >= '0' && b <= '9':
			start := i
			for i < len(src) && (src[i] >= '0' && src[i] <= '9' || src[i] == '.') {
				i++
			}
			toks = append(toks, token{kind: tokNumber, text: string(src[start:i]), pos: uint32(start)}) //nolint:gosec // G115
		case b == '"':
			start := i
			i++
			for i < len(src) && src[i] != '"' {
				if src[i] == '\\' && i+1 < len(src) {
					i++
				}
				i++
			}
			if i >= len(src) {
				return nil, &syntaxError{
					code: diag.SynUnexpectedToken,
					span: source.Span{File: f.ID, Start: uint32(start), End: uint32(len(src))}, //nolint:gosec // G115
					msg:  "unterminated string",
				}
			}
			i++
			toks = append(toks, token{kind: tokString, text: string(src[start:i]), pos: uint32(start)}) //nolint:gosec // G115
		case isPunctChar(b):
			toks = append(toks, token{kind: tokPunct, text: string(b), pos: uint32(i)}) //nolint:gosec // G115
			i++
		case isOpChar(b):
			start := i
			for i < len(src) && isOpChar(src[i]) {
				i++
			}
			toks = append(toks, token{kind: tokOp, text: string(src[start:i]), pos: uint32(start)}) //nolint:gosec // G115
		default:
			return nil, &syntaxError{
				code: diag.SynUnexpectedToken,
				span: source.Span{File: f.ID, Start: uint32(i), End: uint32(i + 1)}, //nolint:gosec // G115
				msg:  fmt.Sprintf("unexpected character %q", b),
			}
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: uint32(len(src))}) //nolint:gosec // G115
	return toks, nil
}

type parser struct {
	toks []token
	pos  int
	file source.FileID
	rep  diag.Reporter

	// per-function tables
	idents   map[hir.IdentifierID]*hir.Identifier
	scopes   map[hir.ScopeID]*hir.Scope
	instrIDs map[hir.InstrID]bool
}

func (p *parser) cur() token { return p.toks[p.pos] }

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errf(code diag.Code, t token, format string, args ...any) error {
	return &syntaxError{code: code, span: t.span(p.file), msg: fmt.Sprintf(format, args...)}
}

func (p *parser) atPunct(ch string) bool {
	return p.cur().kind == tokPunct && p.cur().text == ch
}

func (p *parser) atOp(op string) bool {
	return p.cur().kind == tokOp && p.cur().text == op
}

func (p *parser) atKeyword(kw string) bool {
	return p.cur().kind == tokIdent && p.cur().text == kw
}

func (p *parser) expectPunct(ch string) (token, error) {
	if !p.atPunct(ch) {
		return p.cur(), p.errf(diag.SynUnexpectedToken, p.cur(), "expected %q, got %q", ch, p.cur().text)
	}
	return p.advance(), nil
}

func (p *parser) expectOp(op string) (token, error) {
	if !p.atOp(op) {
		return p.cur(), p.errf(diag.SynUnexpectedToken, p.cur(), "expected %q, got %q", op, p.cur().text)
	}
	return p.advance(), nil
}

func (p *parser) expectIdent() (token, error) {
	if p.cur().kind != tokIdent {
		return p.cur(), p.errf(diag.SynExpectIdentifier, p.cur(), "expected identifier, got %q", p.cur().text)
	}
	return p.advance(), nil
}

func (p *parser) expectNumber() (uint32, token, error) {
	if p.cur().kind != tokNumber {
		return 0, p.cur(), p.errf(diag.SynUnexpectedToken, p.cur(), "expected number, got %q", p.cur().text)
	}
	t := p.advance()
	u, err := strconv.ParseUint(t.text, 10, 64)
	if err != nil {
		return 0, t, p.errf(diag.SynUnexpectedToken, t, "bad number %q", t.text)
	}
	n, err := safecast.Conv[uint32](u)
	if err != nil {
		return 0, t, p.errf(diag.SynUnexpectedToken, t, "number %q out of range", t.text)
	}
	return n, t, nil
}

func (p *parser) expectString() (string, error) {
	if p.cur().kind != tokString {
		return "", p.errf(diag.SynUnexpectedToken, p.cur(), "expected string, got %q", p.cur().text)
	}
	t := p.advance()
	s, err := strconv.Unquote(t.text)
	if err != nil {
		return "", p.errf(diag.SynUnexpectedToken, t, "bad string %s", t.text)
	}
	return s, nil
}

func (p *parser) parseFile() ([]*Function, error) {
	var fns []*Function
	for p.cur().kind != tokEOF {
		if !p.atKeyword("fn") {
			return nil, p.errf(diag.SynUnexpectedToken, p.cur(), "expected 'fn', got %q", p.cur().text)
		}
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		fns = append(fns, fn)
	}
	return fns, nil
}

func (p *parser) parseFunction() (*Function, error) {
	p.idents = make(map[hir.IdentifierID]*hir.Identifier)
	p.scopes = make(map[hir.ScopeID]*hir.Scope)
	p.instrIDs = make(map[hir.InstrID]bool)

	fnTok := p.advance() // 'fn'
	fn := &Function{Span: fnTok.span(p.file)}

	if p.atPunct("$") {
		place, err := p.parsePlace()
		if err != nil {
			return nil, err
		}
		fn.Ident = place.Ident
		fn.Name = place.Ident.Name
	} else {
		nameTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		fn.Name = nameTok.text
	}

	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	for !p.atPunct(")") {
		if len(fn.Params) > 0 {
			if _, err := p.expectPunct(","); err != nil {
				return nil, err
			}
		}
		param, err := p.parsePlace()
		if err != nil {
			return nil, err
		}
		fn.Params = append(fn.Params, param)
	}
	p.advance() // ')'

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	fn.Body = body
	return fn, nil
}

// parseBlock parses '{' statements '}'.
func (p *parser) parseBlock() ([]*Statement, error) {
	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	stmts := make([]*Statement, 0, 4)
	for !p.atPunct("}") {
		if p.cur().kind == tokEOF {
			return nil, p.errf(diag.SynUnclosedBlock, p.cur(), "unexpected end of input in block")
		}
		st, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
	}
	p.advance() // '}'
	return stmts, nil
}

func (p *parser) parseStatement() (*Statement, error) {
	switch {
	case p.atPunct("["):
		instr, err := p.parseInstruction()
		if err != nil {
			return nil, err
		}
		if p.instrIDs[instr.ID] {
			return nil, p.errf(diag.SynDuplicateInstrID, p.cur(), "duplicate instruction id [%d]", instr.ID)
		}
		p.instrIDs[instr.ID] = true
		return &Statement{Kind: StmtInstruction, Instr: instr}, nil
	case p.atKeyword("scope"):
		return p.parseScope()
	case p.atKeyword("if"):
		return p.parseIf()
	case p.atKeyword("while"):
		return p.parseWhile()
	case p.atKeyword("return"):
		return p.parseReturn()
	case p.atKeyword("break"):
		t := p.advance()
		return &Statement{Kind: StmtTerminal, Term: &Terminal{Kind: TermBreak, Span: t.span(p.file)}}, nil
	case p.atKeyword("continue"):
		t := p.advance()
		return &Statement{Kind: StmtTerminal, Term: &Terminal{Kind: TermContinue, Span: t.span(p.file)}}, nil
	default:
		return nil, p.errf(diag.SynUnexpectedToken, p.cur(), "expected statement, got %q", p.cur().text)
	}
}

func (p *parser) parseInstruction() (*hir.Instruction, error) {
	open, err := p.expectPunct("[")
	if err != nil {
		return nil, err
	}
	id, idTok, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, p.errf(diag.SynBadInstrID, idTok, "instruction id must be positive")
	}
	if _, err := p.expectPunct("]"); err != nil {
		return nil, err
	}

	instr := &hir.Instruction{ID: hir.InstrID(id), Span: open.span(p.file)}
	if p.atPunct("$") {
		lv, err := p.parsePlace()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectOp("="); err != nil {
			return nil, err
		}
		instr.LValue = lv
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	instr.Value = v
	return instr, nil
}

func (p *parser) parseScope() (*Statement, error) {
	p.advance() // 'scope'
	if _, err := p.expectPunct("@"); err != nil {
		return nil, err
	}
	id, idTok, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	scopeID := hir.ScopeID(id)
	if _, ok := p.scopes[scopeID]; ok {
		return nil, p.errf(diag.SynBadScopeHeader, idTok, "scope @%d defined twice", id)
	}
	scope := &hir.Scope{ID: scopeID}
	p.scopes[scopeID] = scope

	// range=[a,b)
	if err := p.expectField("range", idTok); err != nil {
		return nil, err
	}
	if _, err := p.expectPunct("["); err != nil {
		return nil, err
	}
	start, _, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(","); err != nil {
		return nil, err
	}
	end, endTok, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	if end < start {
		return nil, p.errf(diag.SynScopeRangeInvalid, endTok, "scope range [%d,%d) is inverted", start, end)
	}
	scope.Range = hir.InstrRange{Start: hir.InstrID(start), End: hir.InstrID(end)}

	if scope.Dependencies, err = p.parsePlaceListField("deps"); err != nil {
		return nil, err
	}
	if scope.Declarations, err = p.parsePlaceListField("decls"); err != nil {
		return nil, err
	}
	if scope.Reassignments, err = p.parsePlaceListField("reassign"); err != nil {
		return nil, err
	}

	// Declared and reassigned identifiers belong to this scope.
	for _, pl := range scope.Declarations {
		pl.Ident.Scope = scope
	}
	for _, pl := range scope.Reassignments {
		pl.Ident.Scope = scope
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &Statement{
		Kind:  StmtScope,
		Scope: &ScopeBlock{Scope: scope, Body: body},
	}, nil
}

func (p *parser) expectField(name string, at token) error {
	t, err := p.expectIdent()
	if err != nil {
		return err
	}
	if t.text != name {
		return p.errf(diag.SynBadScopeHeader, at, "expected %q field, got %q", name, t.text)
	}
	_, err = p.expectOp("=")
	return err
}

func (p *parser) parsePlaceListField(name string) ([]*hir.Place, error) {
	if err := p.expectField(name, p.cur()); err != nil {
		return nil, err
	}
	return p.parsePlaceList()
}

func (p *parser) parsePlaceList() ([]*hir.Place, error) {
	if _, err := p.expectPunct("["); err != nil {
		return nil, err
	}
	places := make([]*hir.Place, 0, 2)
	for !p.atPunct("]") {
		if len(places) > 0 {
			if _, err := p.expectPunct(","); err != nil {
				return nil, err
			}
		}
		pl, err := p.parsePlace()
		if err != nil {
			return nil, err
		}
		places = append(places, pl)
	}
	p.advance() // ']'
	return places, nil
}

func (p *parser) parseIf() (*Statement, error) {
	t := p.advance() // 'if'
	test, err := p.parsePlace()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	term := &Terminal{Kind: TermIf, Span: t.span(p.file), If: IfTerm{Test: test, Then: then}}
	if p.atKeyword("else") {
		p.advance()
		els, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		term.If.Else = els
	}
	return &Statement{Kind: StmtTerminal, Term: term}, nil
}

func (p *parser) parseWhile() (*Statement, error) {
	t := p.advance() // 'while'
	test, err := p.parsePlace()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &Statement{
		Kind: StmtTerminal,
		Term: &Terminal{Kind: TermWhile, Span: t.span(p.file), While: WhileTerm{Test: test, Body: body}},
	}, nil
}

func (p *parser) parseReturn() (*Statement, error) {
	t := p.advance() // 'return'
	term := &Terminal{Kind: TermReturn, Span: t.span(p.file)}
	if p.atPunct("$") {
		v, err := p.parsePlace()
		if err != nil {
			return nil, err
		}
		term.Return.Value = v
	}
	return &Statement{Kind: StmtTerminal, Term: term}, nil
}

// parsePlace parses $N[:name][!effect].
func (p *parser) parsePlace() (*hir.Place, error) {
	dollar, err := p.expectPunct("$")
	if err != nil {
		return nil, p.errf(diag.SynExpectPlace, p.cur(), "expected place, got %q", p.cur().text)
	}
	id, idTok, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, p.errf(diag.SynExpectPlace, idTok, "identifier id must be positive")
	}
	name := ""
	if p.atPunct(":") {
		p.advance()
		nameTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		name = nameTok.text
	}
	effect := hir.EffectRead
	if p.atOp("!") {
		p.advance()
		effTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		effect, err = hir.ParseEffect(effTok.text)
		if err != nil {
			return nil, p.errf(diag.SynUnknownEffect, effTok, "unknown effect %q", effTok.text)
		}
	}
	last := p.toks[p.pos-1]
	span := source.Span{
		File:  p.file,
		Start: dollar.pos,
		End:   last.pos + uint32(len(last.text)), //nolint:gosec // G115: token lengths are small
	}
	return &hir.Place{
		Ident:  p.identifier(hir.IdentifierID(id), name),
		Effect: effect,
		Span:   span,
	}, nil
}

func (p *parser) identifier(id hir.IdentifierID, name string) *hir.Identifier {
	if existing, ok := p.idents[id]; ok {
		if name != "" && existing.Name == "" {
			existing.Name = name
		}
		return existing
	}
	n := &hir.Identifier{ID: id, Name: name}
	p.idents[id] = n
	return n
}
