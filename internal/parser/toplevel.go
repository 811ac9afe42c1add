package parser

import (
	"github.com/pilo290/moveir/internal/ast"
	"github.com/pilo290/moveir/internal/lexer"
	"github.com/pilo290/moveir/internal/perror"
)

// selfName is the reserved alias a module import can never be given: it
// would shadow references to the enclosing module itself (spec.md §4.7,
// syntax.rs's fatal "import self is reserved" check).
const selfName = "Self"

// parseImportAlias parses the optional "as Alias" suffix of an import
// declaration. Aliasing to the reserved self-name is rejected as a parse
// error (spec.md §9 "Fatal-assertion sites" — converted to InvalidToken
// here rather than a process abort).
func (p *Parser) parseImportAlias() (*ast.ModuleName, error) {
	if p.peek() != lexer.As {
		return nil, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	start := p.startLoc()
	name, err := p.parseModuleName()
	if err != nil {
		return nil, err
	}
	if name.Name == selfName {
		return nil, perror.NewInvalidToken(start)
	}
	return &name, nil
}

// parseImportDecl parses one "import 0xADDR.Module [as Alias];" or
// "import Transaction.Module [as Alias];" declaration.
func (p *Parser) parseImportDecl() (ast.ImportDefinition, error) {
	start := p.startLoc()
	if err := p.expect(lexer.Import); err != nil {
		return ast.ImportDefinition{}, err
	}
	ident, err := p.parseQualifiedModuleIdent()
	if err != nil {
		return ast.ImportDefinition{}, err
	}
	alias, aerr := p.parseImportAlias()
	if aerr != nil {
		return ast.ImportDefinition{}, aerr
	}
	if err := p.expect(lexer.Semicolon); err != nil {
		return ast.ImportDefinition{}, err
	}
	return ast.NewImportDefinition(ident, alias, start, p.previousEndLoc()), nil
}

func (p *Parser) parseImportDecls() ([]ast.ImportDefinition, error) {
	var imports []ast.ImportDefinition
	for p.peek() == lexer.Import {
		imp, err := p.parseImportDecl()
		if err != nil {
			return nil, err
		}
		imports = append(imports, imp)
	}
	return imports, nil
}

// parseModule parses one "module M { ... }" unit: imports, then
// synthetics, then struct declarations, then function declarations, in
// that fixed order (spec.md §4.7).
func (p *Parser) parseModule() (ast.ModuleDefinition, error) {
	start := p.startLoc()
	if err := p.expect(lexer.Module); err != nil {
		return ast.ModuleDefinition{}, err
	}
	name, err := p.parseModuleName()
	if err != nil {
		return ast.ModuleDefinition{}, err
	}
	if err := p.expect(lexer.LBrace); err != nil {
		return ast.ModuleDefinition{}, err
	}

	imports, ierr := p.parseImportDecls()
	if ierr != nil {
		return ast.ModuleDefinition{}, ierr
	}

	var synthetics []ast.SyntheticDefinition
	for p.peek() == lexer.Synthetic {
		s, serr := p.parseSynthetic()
		if serr != nil {
			return ast.ModuleDefinition{}, serr
		}
		synthetics = append(synthetics, s)
	}

	var structs []ast.StructDefinition
	for {
		isStruct, serr := p.isStructDecl()
		if serr != nil {
			return ast.ModuleDefinition{}, serr
		}
		if !isStruct {
			break
		}
		sd, derr := p.parseStructDecl()
		if derr != nil {
			return ast.ModuleDefinition{}, derr
		}
		structs = append(structs, sd)
	}

	var functions []ast.Function
	for p.peek() != lexer.RBrace {
		fn, ferr := p.parseFunctionDecl()
		if ferr != nil {
			return ast.ModuleDefinition{}, ferr
		}
		functions = append(functions, fn)
	}
	if err := p.expect(lexer.RBrace); err != nil {
		return ast.ModuleDefinition{}, err
	}
	return ast.NewModuleDefinition(name, imports, synthetics, structs, functions, start, p.previousEndLoc()), nil
}

// modulesHeaderLiteral and scriptHeaderLiteral are not reserved keywords:
// "modules"/"script" lex as plain NameValue tokens, so the "modules:" /
// "script:" section markers are detected here as that exact word directly
// followed by a standalone ':' (spec.md §4.7).
const (
	modulesHeaderLiteral = "modules"
	scriptHeaderLiteral  = "script"
)

// peekHeaderLiteral reports whether the upcoming two tokens spell "word:".
func (p *Parser) peekHeaderLiteral(word string) (bool, error) {
	if p.peek() != lexer.NameValue || p.content() != word {
		return false, nil
	}
	tok, err := p.lex.Lookahead()
	if err != nil {
		return false, nil
	}
	return tok == lexer.Colon, nil
}

func (p *Parser) consumeHeaderLiteral() error {
	if err := p.advance(); err != nil { // the word itself
		return err
	}
	return p.expect(lexer.Colon)
}

// parseModules parses the "modules: M* script:" section preceding a
// script in a full program, if present; an input that opens directly on
// "import"/"main" has no modules at all.
func (p *Parser) parseModules() ([]ast.ModuleDefinition, error) {
	isHeader, herr := p.peekHeaderLiteral(modulesHeaderLiteral)
	if herr != nil {
		return nil, herr
	}
	if !isHeader {
		return nil, nil
	}
	if err := p.consumeHeaderLiteral(); err != nil {
		return nil, err
	}
	var modules []ast.ModuleDefinition
	for p.peek() == lexer.Module {
		m, err := p.parseModule()
		if err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	isScriptHeader, serr := p.peekHeaderLiteral(scriptHeaderLiteral)
	if serr != nil {
		return nil, serr
	}
	if !isScriptHeader {
		return nil, perror.NewInvalidToken(p.startLoc())
	}
	if err := p.consumeHeaderLiteral(); err != nil {
		return nil, err
	}
	return modules, nil
}

// parseScript parses a bare transaction script: its imports followed by
// exactly one "main" function.
func (p *Parser) parseScript() (ast.Script, error) {
	start := p.startLoc()
	imports, ierr := p.parseImportDecls()
	if ierr != nil {
		return ast.Script{}, ierr
	}
	if err := p.expect(lexer.Main); err != nil {
		return ast.Script{}, err
	}
	nameStart := p.startLoc()
	if err := p.expect(lexer.LParen); err != nil {
		return ast.Script{}, err
	}
	args, aerr := commaList(p, []lexer.Tok{lexer.RParen}, false, p.parseArgDecl)
	if aerr != nil {
		return ast.Script{}, aerr
	}
	if err := p.expect(lexer.RParen); err != nil {
		return ast.Script{}, err
	}
	block, berr := p.parseFunctionBlock()
	if berr != nil {
		return ast.Script{}, berr
	}
	mainName, merr := ast.NewFunctionName(mainLiteral, nameStart, nameStart+len(mainLiteral))
	if merr != nil {
		return ast.Script{}, perror.NewUser(merr)
	}
	sig := ast.NewFunctionSignature(nil, args, nil, nil, nameStart, p.previousEndLoc())
	main := ast.NewFunction(mainName, ast.VisibilityPublic, sig, nil, ast.FunctionBody{Block: &block}, start, p.previousEndLoc())
	return ast.NewScript(imports, main, start, p.previousEndLoc()), nil
}

const mainLiteral = "main"

// parseProgram parses a full transaction (spec.md §4.7): either the
// single-module shorthand (a bare "module M { ... }", synthesizing an
// empty script around it) or the general "modules: M* script: <script>"
// form.
func (p *Parser) parseProgram() (ast.Program, error) {
	start := p.startLoc()
	if p.peek() == lexer.Module {
		module, err := p.parseModule()
		if err != nil {
			return ast.Program{}, err
		}
		script := syntheticMainScript(start, p.previousEndLoc())
		return ast.NewProgram([]ast.ModuleDefinition{module}, script, start, p.previousEndLoc()), nil
	}

	modules, merr := p.parseModules()
	if merr != nil {
		return ast.Program{}, merr
	}
	script, serr := p.parseScript()
	if serr != nil {
		return ast.Program{}, serr
	}
	return ast.NewProgram(modules, script, start, p.previousEndLoc()), nil
}

// syntheticMainScript builds the empty "main() { return; }" script the
// single-module program shorthand synthesizes, with a Return(ExprList([]))
// body exactly as parse_program does in the original (supplemented per
// SPEC_FULL.md: spec.md names the shape but not this precise statement).
func syntheticMainScript(start, end int) ast.Script {
	ret := ast.NewCmdReturn(nil, start, end)
	stmt := ast.NewStmtCmd(ret, start, end)
	block := ast.NewBlock([]ast.Statement{stmt}, start, end)
	mainName, _ := ast.NewFunctionName(mainLiteral, start, start+len(mainLiteral))
	sig := ast.NewFunctionSignature(nil, nil, nil, nil, start, end)
	main := ast.NewFunction(mainName, ast.VisibilityPublic, sig, nil, ast.FunctionBody{Block: &block}, start, end)
	return ast.NewScript(nil, main, start, end)
}

// parseScriptOrModule dispatches on whether the input opens with
// "module", parsing either a plain module or a bare script.
func (p *Parser) parseScriptOrModule() (ast.ScriptOrModule, error) {
	start := p.startLoc()
	if p.peek() == lexer.Module {
		m, err := p.parseModule()
		if err != nil {
			return ast.ScriptOrModule{}, err
		}
		return ast.NewScriptOrModuleModule(m, start, p.previousEndLoc()), nil
	}
	s, err := p.parseScript()
	if err != nil {
		return ast.ScriptOrModule{}, err
	}
	return ast.NewScriptOrModuleScript(s, start, p.previousEndLoc()), nil
}
