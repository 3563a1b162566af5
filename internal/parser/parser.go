package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hexcompiler/hexagon/internal/ast"
	"github.com/hexcompiler/hexagon/internal/compiler"
	"github.com/hexcompiler/hexagon/internal/iotamodel"
	"github.com/hexcompiler/hexagon/internal/location"
	"github.com/hexcompiler/hexagon/internal/registry"
)

// SyntaxError is a parse-time failure: these are host-boundary failures
// (malformed source), distinct from the Mishap taxonomy the compiler
// and interpreter raise for well-formed-but-invalid programs.
type SyntaxError struct {
	Location location.Location
	Message  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

type parser struct {
	toks []token
	pos  int
	path string
	reg  *registry.Registry
	// names maps every recognized multi-word or single-word pattern name
	// (display or internal) to itself, used for greedy longest-match.
	names   map[string]bool
	maxWords int
	entities map[string]string // declared config entity names; @name literals do not consult it (iotamodel.NewEntity builds the iota from the name alone)
	macros   compiler.Macros
}

// Parse lexes and parses a full source file into an ast.File plus any
// macro definitions (`def Name { ... }` blocks) it declared.
func Parse(path, src string, reg *registry.Registry, declaredEntities map[string]string) (ast.File, compiler.Macros, error) {
	l := newLexer(path, src)
	var toks []token
	for {
		t := l.next()
		toks = append(toks, t)
		if t.kind == tokEOF {
			break
		}
	}

	p := &parser{toks: toks, path: path, reg: reg, entities: declaredEntities, macros: compiler.Macros{}}
	p.buildNameIndex()

	var nodes []ast.Node
	for !p.atEOF() {
		if p.peekWord() == "def" {
			if err := p.parseMacroDef(); err != nil {
				return ast.File{}, nil, err
			}
			continue
		}
		node, err := p.parseItem()
		if err != nil {
			return ast.File{}, nil, err
		}
		if node != nil {
			nodes = append(nodes, node)
		}
	}
	return ast.File{Nodes: nodes}, p.macros, nil
}

func (p *parser) buildNameIndex() {
	p.names = map[string]bool{}
	for _, e := range p.reg.All() {
		p.addName(e.DisplayName)
		p.addName(e.InternalName)
	}
}

func (p *parser) addName(name string) {
	if name == "" {
		return
	}
	p.names[strings.ToLower(name)] = true
	if n := len(strings.Fields(name)); n > p.maxWords {
		p.maxWords = n
	}
}

func (p *parser) cur() token  { return p.toks[p.pos] }
func (p *parser) atEOF() bool { return p.cur().kind == tokEOF }

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) peekWord() string {
	if p.cur().kind == tokWord {
		return p.cur().text
	}
	return ""
}

func (p *parser) expectSymbol(sym string) error {
	if p.cur().kind != tokSymbol || p.cur().text != sym {
		return &SyntaxError{Location: location.AtSource(p.path, p.cur().line, p.cur().col), Message: fmt.Sprintf("expected %q", sym)}
	}
	p.advance()
	return nil
}

// parseItem parses one top-level or nested construct: a bracketed Hex,
// a Store/Copy/Push op, or a named action (with optional value).
func (p *parser) parseItem() (ast.Node, error) {
	t := p.cur()
	switch {
	case t.kind == tokSymbol && t.text == "{":
		return p.parseHex(false)
	case t.kind == tokSymbol && t.text == "[" && p.peekNextIsSymbol("["):
		return p.parseHex(true)
	case t.kind == tokWord && isOpName(t.text) && p.peekNextIsSymbol("("):
		return p.parseOp()
	case t.kind == tokWord:
		return p.parseActionOrPattern(0)
	default:
		return nil, &SyntaxError{Location: location.AtSource(p.path, t.line, t.col), Message: "unexpected token"}
	}
}

func (p *parser) peekNextIsSymbol(sym string) bool {
	if p.pos+1 >= len(p.toks) {
		return false
	}
	n := p.toks[p.pos+1]
	return n.kind == tokSymbol && n.text == sym
}

func isOpName(w string) bool {
	switch w {
	case "Store", "Copy", "Push":
		return true
	}
	return false
}

func (p *parser) parseOp() (ast.Node, error) {
	nameTok := p.advance()
	loc := location.AtSource(p.path, nameTok.line, nameTok.col)
	var opName ast.OpName
	switch nameTok.text {
	case "Store":
		opName = ast.OpStore
	case "Copy":
		opName = ast.OpCopy
	case "Push":
		opName = ast.OpPush
	}
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	var arg *ast.OpValue
	if p.cur().kind == tokWord {
		v := p.advance()
		arg = &ast.OpValue{Var: v.text, IsVar: true}
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	return ast.Op{Location: loc, Name: opName, Arg: arg}, nil
}

// parseHex parses a `{ ... }` (or `[[ ... ]]` external) block. extern
// marks an externally-callable hex, per ast.Hex's doc.
func (p *parser) parseHex(extern bool) (ast.Node, error) {
	start := p.cur()
	loc := location.AtSource(p.path, start.line, start.col)
	if extern {
		p.advance()
		p.advance()
	} else {
		p.advance()
	}

	var nodes []ast.Node
	for {
		if p.atEOF() {
			return nil, &SyntaxError{Location: loc, Message: "unterminated hex block"}
		}
		t := p.cur()
		if !extern && t.kind == tokSymbol && t.text == "}" {
			p.advance()
			break
		}
		if extern && t.kind == tokSymbol && t.text == "]" && p.peekNextIsSymbol("]") {
			p.advance()
			p.advance()
			break
		}
		node, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		if node != nil {
			nodes = append(nodes, node)
		}
	}
	return ast.Hex{Location: loc, External: extern, Nodes: nodes}, nil
}

// parseActionOrPattern greedily matches the longest run of Word tokens
// against a known registry/macro name, then consumes an optional `:
// value` suffix. depth guards against infinite recursion when parsing a
// nested pattern-valued escape (e.g. `Consideration: Huginn's Gambit`).
func (p *parser) parseActionOrPattern(depth int) (ast.Node, error) {
	start := p.cur()
	loc := location.AtSource(p.path, start.line, start.col)

	name, consumed := p.matchLongestName()
	if consumed == 0 {
		return nil, &SyntaxError{Location: loc, Message: fmt.Sprintf("unknown pattern name %q", start.text)}
	}

	av, err := p.parseOptionalValue(depth)
	if err != nil {
		return nil, err
	}
	return ast.Action{Location: loc, Name: name, Value: av}, nil
}

// matchLongestName consumes 1..maxWords Word tokens, preferring the
// longest run that names a known pattern or macro.
func (p *parser) matchLongestName() (string, int) {
	best := ""
	bestN := 0
	var words []string
	save := p.pos
	for n := 1; n <= p.maxWords && p.pos < len(p.toks); n++ {
		if p.toks[p.pos-save+save].kind != tokWord {
			break
		}
		t := p.toks[p.pos]
		if t.kind != tokWord {
			break
		}
		words = append(words, t.text)
		p.pos++
		candidate := strings.Join(words, " ")
		_, isMacro := p.macros[candidate]
		if p.names[strings.ToLower(candidate)] || isMacro {
			best = candidate
			bestN = n
		}
	}
	p.pos = save
	if bestN == 0 {
		return "", 0
	}
	for i := 0; i < bestN; i++ {
		p.advance()
	}
	return best, bestN
}

func (p *parser) parseOptionalValue(depth int) (*ast.ActionValue, error) {
	if p.cur().kind != tokSymbol || p.cur().text != ":" {
		return nil, nil
	}
	p.advance()

	if p.cur().kind == tokWord && isBookkeeperMask(p.cur().text) {
		t := p.advance()
		return &ast.ActionValue{Mask: t.text, IsMask: true}, nil
	}

	if depth < 8 && p.cur().kind == tokWord && !isIotaLiteralStart(p.cur()) {
		inner, err := p.parseActionOrPattern(depth + 1)
		if err != nil {
			return nil, err
		}
		act := inner.(ast.Action)
		sig, ok := p.reg.Find(act.Name)
		if !ok {
			return nil, &SyntaxError{Location: act.Location, Message: "nested pattern value not found in registry"}
		}
		pat := iotamodel.NewPattern(sig.Signature, sig.InternalName, valueOf(act.Value), act.Location)
		return &ast.ActionValue{Iota: pat}, nil
	}

	v, err := p.parseIota()
	if err != nil {
		return nil, err
	}
	return &ast.ActionValue{Iota: v}, nil
}

func valueOf(av *ast.ActionValue) any {
	if av == nil {
		return nil
	}
	if av.IsMask {
		return iotamodel.BookkeeperMask(av.Mask)
	}
	return av.Iota
}

func isBookkeeperMask(w string) bool {
	if w == "" {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] != '-' && w[i] != 'v' {
			return false
		}
	}
	return true
}

func isIotaLiteralStart(t token) bool {
	switch t.text {
	case "True", "False", "Garbage", "Null", "raw":
		return true
	}
	return false
}

// parseIota parses one iota literal per spec.md §6's surface grammar.
func (p *parser) parseIota() (iotamodel.Iota, error) {
	t := p.cur()
	switch {
	case t.kind == tokNumber:
		p.advance()
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, &SyntaxError{Location: location.AtSource(p.path, t.line, t.col), Message: "invalid number"}
		}
		return iotamodel.NewNumber(f), nil

	case t.kind == tokString:
		p.advance()
		return iotamodel.NewString(t.text), nil

	case t.kind == tokSymbol && t.text == "@":
		p.advance()
		name := p.advance().text
		return iotamodel.NewEntity(name), nil

	case t.kind == tokWord && t.text == "True":
		p.advance()
		return iotamodel.NewBool(true), nil
	case t.kind == tokWord && t.text == "False":
		p.advance()
		return iotamodel.NewBool(false), nil
	case t.kind == tokWord && t.text == "Garbage":
		p.advance()
		return iotamodel.Garbage{}, nil
	case t.kind == tokWord && t.text == "Null":
		p.advance()
		return iotamodel.Null{}, nil

	case t.kind == tokWord && t.text == "raw":
		p.advance()
		if err := p.expectSymbol("("); err != nil {
			return nil, err
		}
		sigTok := p.advance()
		if err := p.expectSymbol(")"); err != nil {
			return nil, err
		}
		sig, ok := iotamodel.ParseSignature(sigTok.text)
		if !ok {
			return nil, &SyntaxError{Location: location.AtSource(p.path, sigTok.line, sigTok.col), Message: "invalid raw signature"}
		}
		return iotamodel.NewPattern(sig, "", nil, location.AtSource(p.path, t.line, t.col)), nil

	case t.kind == tokSymbol && t.text == "(":
		return p.parseVector()

	case t.kind == tokSymbol && t.text == "[":
		return p.parseListOrMatrix()

	case t.kind == tokWord:
		node, err := p.parseActionOrPattern(8)
		if err != nil {
			return nil, err
		}
		act := node.(ast.Action)
		entry, ok := p.reg.Find(act.Name)
		if !ok {
			return nil, &SyntaxError{Location: act.Location, Message: "pattern value not found in registry"}
		}
		return iotamodel.NewPattern(entry.Signature, entry.InternalName, valueOf(act.Value), act.Location), nil

	default:
		return nil, &SyntaxError{Location: location.AtSource(p.path, t.line, t.col), Message: "expected iota literal"}
	}
}

func (p *parser) parseVector() (iotamodel.Iota, error) {
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	var nums [3]float64
	for i := 0; i < 3; i++ {
		if i > 0 {
			if err := p.expectSymbol(","); err != nil {
				return nil, err
			}
		}
		t := p.cur()
		if t.kind != tokNumber {
			return nil, &SyntaxError{Location: location.AtSource(p.path, t.line, t.col), Message: "expected number in vector"}
		}
		p.advance()
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, &SyntaxError{Location: location.AtSource(p.path, t.line, t.col), Message: "invalid number"}
		}
		nums[i] = f
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	return iotamodel.NewVector(nums[0], nums[1], nums[2]), nil
}

// parseListOrMatrix disambiguates `[` on a one-token lookahead: a `(`
// immediately inside means a matrix header `(rows, cols) | ...`,
// anything else is an ordinary comma-separated list.
func (p *parser) parseListOrMatrix() (iotamodel.Iota, error) {
	openTok := p.cur()
	p.advance()
	if p.cur().kind == tokSymbol && p.cur().text == "(" {
		return p.parseMatrixBody(openTok)
	}
	var items []iotamodel.Iota
	for {
		if p.cur().kind == tokSymbol && p.cur().text == "]" {
			p.advance()
			break
		}
		if len(items) > 0 {
			if err := p.expectSymbol(","); err != nil {
				return nil, err
			}
		}
		item, err := p.parseIota()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return iotamodel.NewList(items...), nil
}

func (p *parser) parseMatrixBody(openTok token) (iotamodel.Iota, error) {
	if err := p.expectSymbol("("); err != nil {
		return nil, err
	}
	rowsTok := p.advance()
	rows, err := strconv.Atoi(rowsTok.text)
	if err != nil {
		return nil, &SyntaxError{Location: location.AtSource(p.path, rowsTok.line, rowsTok.col), Message: "invalid matrix row count"}
	}
	if err := p.expectSymbol(","); err != nil {
		return nil, err
	}
	colsTok := p.advance()
	cols, err := strconv.Atoi(colsTok.text)
	if err != nil {
		return nil, &SyntaxError{Location: location.AtSource(p.path, colsTok.line, colsTok.col), Message: "invalid matrix col count"}
	}
	if err := p.expectSymbol(")"); err != nil {
		return nil, err
	}
	if err := p.expectSymbol(":"); err != nil {
		// spec.md uses "|" conceptually; tolerate either separator token.
		if err2 := p.expectSymbolAny("|"); err2 != nil {
			return nil, err
		}
	}
	var data []float64
	for i := 0; i < rows*cols; i++ {
		if i > 0 {
			p.advanceIfSymbol(",")
			p.advanceIfSymbol(";")
		}
		t := p.cur()
		if t.kind != tokNumber {
			return nil, &SyntaxError{Location: location.AtSource(p.path, t.line, t.col), Message: "expected number in matrix"}
		}
		p.advance()
		f, ferr := strconv.ParseFloat(t.text, 64)
		if ferr != nil {
			return nil, &SyntaxError{Location: location.AtSource(p.path, t.line, t.col), Message: "invalid number"}
		}
		data = append(data, f)
	}
	if err := p.expectSymbol("]"); err != nil {
		return nil, err
	}
	return iotamodel.NewMatrix(rows, cols, data), nil
}

func (p *parser) expectSymbolAny(sym string) error {
	if p.cur().kind == tokSymbol && p.cur().text == sym {
		p.advance()
		return nil
	}
	return &SyntaxError{Location: location.AtSource(p.path, p.cur().line, p.cur().col), Message: fmt.Sprintf("expected %q", sym)}
}

func (p *parser) advanceIfSymbol(sym string) {
	if p.cur().kind == tokSymbol && p.cur().text == sym {
		p.advance()
	}
}

// parseMacroDef parses `def Name { ... }`, registering Name as a macro
// whose body is the bracketed Hex (spec.md §4.2's macro table).
func (p *parser) parseMacroDef() error {
	p.advance() // "def"
	if p.cur().kind != tokWord {
		return &SyntaxError{Location: location.AtSource(p.path, p.cur().line, p.cur().col), Message: "expected macro name"}
	}
	name := p.advance().text
	node, err := p.parseItem()
	if err != nil {
		return err
	}
	hex, ok := node.(ast.Hex)
	if !ok {
		return &SyntaxError{Location: location.UnknownLocation, Message: "macro body must be a { } block"}
	}
	p.macros[name] = compiler.Macro{Body: hex}
	p.names[strings.ToLower(name)] = true
	if p.maxWords < 1 {
		p.maxWords = 1
	}
	return nil
}
