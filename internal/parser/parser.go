// Package parser implements the recursive-descent, single-token-lookahead
// parser this module exists to provide: five public entry points, each
// taking a string and returning a span-annotated ast.Node or a
// perror.ParseError.
//
// Grounded on the teacher's compiler/internal/frontend/parser/parser.go
// for the Parser struct shape and its cursor-method vocabulary
// (peek/previous/next/advance/match/consume), adapted to drive
// package lexer's on-demand token cursor instead of Ferret's pre-tokenized
// slice, and cross-checked against the Rust original
// (original_source/.../syntax.rs) for exact production semantics.
package parser

import (
	"github.com/pilo290/moveir/internal/ast"
	"github.com/pilo290/moveir/internal/lexer"
	"github.com/pilo290/moveir/internal/perror"
	"github.com/pilo290/moveir/internal/source"
)

// Parser drives a lexer.Lexer through one grammar production. It holds no
// state beyond the cursor itself: there is nothing to reset between
// invocations because each entry point builds a fresh one (spec.md §2:
// "ephemeral... no shared mutable state across invocations").
type Parser struct {
	lex *lexer.Lexer
}

func newParser(src string) (*Parser, error) {
	p := &Parser{lex: lexer.New(src)}
	if err := p.lex.Advance(); err != nil {
		return nil, perror.NewUser(err)
	}
	return p, nil
}

func (p *Parser) peek() lexer.Tok       { return p.lex.Peek() }
func (p *Parser) content() string       { return p.lex.Content() }
func (p *Parser) startLoc() int         { return p.lex.StartLoc() }
func (p *Parser) previousEndLoc() int   { return p.lex.PreviousEndLoc() }

func (p *Parser) advance() error {
	if err := p.lex.Advance(); err != nil {
		return perror.NewUser(err)
	}
	return nil
}

func (p *Parser) check(tok lexer.Tok) bool { return p.peek() == tok }

// expect consumes the current token if it matches tok, or fails with
// InvalidToken at the current position.
func (p *Parser) expect(tok lexer.Tok) error {
	if p.peek() != tok {
		return perror.NewInvalidToken(p.startLoc())
	}
	return p.advance()
}

// spanned runs f, then wraps its result span [start of the token that was
// current when spanned was called, end of the token consumed just before
// f returned]. Mirrors syntax.rs's `spanned` helper exactly.
func spanned[T any](p *Parser, f func() (T, error)) (T, source.Span, error) {
	start := p.startLoc()
	val, err := f()
	if err != nil {
		var zero T
		return zero, source.Span{}, err
	}
	return val, source.NewSpan(start, p.previousEndLoc()), nil
}

// adjustGenericClose splits a '>>' token in place into a single '>' when
// the grammar only wants to consume one '>' here (a nested generic close,
// spec.md §4.1). It is a no-op otherwise.
func (p *Parser) adjustGenericClose(endToken lexer.Tok) {
	if p.peek() == lexer.GreaterGreater && endToken == lexer.Greater {
		p.lex.ReplaceToken(lexer.Greater, 1)
	}
}

// consumeEndOfGenerics closes a '<...>' list, splitting a trailing '>>'
// first if needed.
func (p *Parser) consumeEndOfGenerics() error {
	p.adjustGenericClose(lexer.Greater)
	return p.expect(lexer.Greater)
}

// commaList parses a comma-separated, optionally trailing-comma list of
// items, stopping once the current token is in stop. When
// adjustGenerics is true, a '>>' sitting where only a '>' would close the
// list is split before the stop check (for type-actuals/type-formals
// lists, whose closing token is '>').
func commaList[T any](p *Parser, stop []lexer.Tok, adjustGenerics bool, parseItem func() (T, error)) ([]T, error) {
	var items []T
	for {
		if adjustGenerics {
			p.adjustGenericClose(lexer.Greater)
		}
		if inSet(p.peek(), stop) {
			break
		}
		item, err := parseItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if adjustGenerics {
			p.adjustGenericClose(lexer.Greater)
		}
		if p.peek() != lexer.Comma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func inSet(tok lexer.Tok, set []lexer.Tok) bool {
	for _, s := range set {
		if tok == s {
			return true
		}
	}
	return false
}

// ParseCmdString parses a single command/statement (spec.md §4.8).
func ParseCmdString(input string) (ast.Statement, error) {
	p, err := newParser(input)
	if err != nil {
		return nil, err
	}
	return p.parseStatement()
}

// ParseModuleString parses a single "module M { ... }" unit.
func ParseModuleString(input string) (ast.ModuleDefinition, error) {
	p, err := newParser(input)
	if err != nil {
		return ast.ModuleDefinition{}, err
	}
	return p.parseModule()
}

// ParseProgramString parses a full transaction: zero or more modules plus
// a script.
func ParseProgramString(input string) (ast.Program, error) {
	p, err := newParser(input)
	if err != nil {
		return ast.Program{}, err
	}
	return p.parseProgram()
}

// ParseScriptString parses a bare transaction script (no "modules:"
// section).
func ParseScriptString(input string) (ast.Script, error) {
	p, err := newParser(input)
	if err != nil {
		return ast.Script{}, err
	}
	return p.parseScript()
}

// ParseScriptOrModuleString parses either a script or a single module,
// dispatching on whether the input opens with "module".
func ParseScriptOrModuleString(input string) (ast.ScriptOrModule, error) {
	p, err := newParser(input)
	if err != nil {
		return ast.ScriptOrModule{}, err
	}
	return p.parseScriptOrModule()
}
