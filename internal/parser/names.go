package parser

import (
	"strings"

	"github.com/pilo290/moveir/internal/ast"
	"github.com/pilo290/moveir/internal/lexer"
	"github.com/pilo290/moveir/internal/perror"
)

// parseName consumes a plain NameValue token and returns its text.
func (p *Parser) parseName() (string, error) {
	if p.peek() != lexer.NameValue {
		return "", perror.NewInvalidToken(p.startLoc())
	}
	name := p.content()
	if err := p.advance(); err != nil {
		return "", err
	}
	return name, nil
}

// parseNameBeginTy consumes a NameBeginTyValue token (a name fused with
// its opening '<') and returns the name part, leaving the cursor
// positioned as if the '<' had been consumed separately.
func (p *Parser) parseNameBeginTy() (string, error) {
	if p.peek() != lexer.NameBeginTyValue {
		return "", perror.NewInvalidToken(p.startLoc())
	}
	text := strings.TrimSuffix(p.content(), "<")
	if err := p.advance(); err != nil {
		return "", err
	}
	return text, nil
}

// parseDotName consumes a DotNameValue token and splits it into its two
// components.
func (p *Parser) parseDotName() (string, string, error) {
	if p.peek() != lexer.DotNameValue {
		return "", "", perror.NewInvalidToken(p.startLoc())
	}
	text := p.content()
	idx := strings.IndexByte(text, '.')
	if idx < 0 {
		return "", "", perror.NewInvalidToken(p.startLoc())
	}
	if err := p.advance(); err != nil {
		return "", "", err
	}
	return text[:idx], text[idx+1:], nil
}

func (p *Parser) parseVar() (ast.Var, error) {
	start := p.startLoc()
	name, err := p.parseName()
	if err != nil {
		return ast.Var{}, err
	}
	v, verr := ast.NewVar(name, start, p.previousEndLoc())
	if verr != nil {
		return ast.Var{}, perror.NewUser(verr)
	}
	return v, nil
}

func (p *Parser) parseField() (ast.Field, error) {
	start := p.startLoc()
	name, err := p.parseName()
	if err != nil {
		return ast.Field{}, err
	}
	f, ferr := ast.NewField(name, start, p.previousEndLoc())
	if ferr != nil {
		return ast.Field{}, perror.NewUser(ferr)
	}
	return f, nil
}

func (p *Parser) parseTypeVar() (ast.TypeVar, error) {
	start := p.startLoc()
	name, err := p.parseName()
	if err != nil {
		return ast.TypeVar{}, err
	}
	tv, terr := ast.NewTypeVar(name, start, p.previousEndLoc())
	if terr != nil {
		return ast.TypeVar{}, perror.NewUser(terr)
	}
	return tv, nil
}

func (p *Parser) parseModuleName() (ast.ModuleName, error) {
	start := p.startLoc()
	name, err := p.parseName()
	if err != nil {
		return ast.ModuleName{}, err
	}
	m, merr := ast.NewModuleName(name, start, p.previousEndLoc())
	if merr != nil {
		return ast.ModuleName{}, perror.NewUser(merr)
	}
	return m, nil
}

func (p *Parser) parseStructName() (ast.StructName, error) {
	start := p.startLoc()
	name, err := p.parseName()
	if err != nil {
		return ast.StructName{}, err
	}
	s, serr := ast.NewStructName(name, start, p.previousEndLoc())
	if serr != nil {
		return ast.StructName{}, perror.NewUser(serr)
	}
	return s, nil
}

func (p *Parser) parseFunctionName() (ast.FunctionName, error) {
	start := p.startLoc()
	name, err := p.parseName()
	if err != nil {
		return ast.FunctionName{}, err
	}
	f, ferr := ast.NewFunctionName(name, start, p.previousEndLoc())
	if ferr != nil {
		return ast.FunctionName{}, perror.NewUser(ferr)
	}
	return f, nil
}

func (p *Parser) parseAccountAddress() (ast.AccountAddress, error) {
	if p.peek() != lexer.AccountAddressValue {
		return ast.AccountAddress{}, perror.NewInvalidToken(p.startLoc())
	}
	start := p.startLoc()
	raw := p.content()
	if err := p.advance(); err != nil {
		return ast.AccountAddress{}, err
	}
	addr, aerr := ast.NewAccountAddress(raw, start, p.previousEndLoc())
	if aerr != nil {
		return ast.AccountAddress{}, perror.NewUser(aerr)
	}
	return addr, nil
}

// parseModuleIdent parses either the literal "Transaction" keyword or a
// plain module name, as used unqualified inside the module whose imports
// are in scope.
func (p *Parser) parseModuleIdent() (ast.ModuleIdent, error) {
	start := p.startLoc()
	if p.peek() == lexer.NameValue && p.content() == transactionLiteral {
		if err := p.advance(); err != nil {
			return ast.ModuleIdent{}, err
		}
		return ast.NewModuleIdentTransaction(start, p.previousEndLoc()), nil
	}
	name, err := p.parseModuleName()
	if err != nil {
		return ast.ModuleIdent{}, err
	}
	return ast.NewModuleIdentName(name, start, p.previousEndLoc()), nil
}

// transactionLiteral is not a reserved word in Move-IR: it is an ordinary
// identifier whose text happens to be "Transaction", used as the module
// address placeholder meaning "this transaction script's own module"
// (syntax.rs parse_module_ident / parse_qualified_module_ident).
const transactionLiteral = "Transaction"

// parseQualifiedModuleIdent parses "Addr.Module" or "Transaction.Module".
// An AccountAddressValue token starts with a digit, so it never fuses with
// the following '.', leaving the '.' to be consumed on its own. "Transaction"
// is not a reserved word, though, so it goes through the same identifier
// scanning as any other name, and the lexer's unconditional dot-fusion rule
// (lexer.go's scanIdentifierLike) folds "Transaction.Module" into a single
// DotNameValue token before the parser ever sees it — the same situation
// parseQualifiedStructIdentDotted handles for "Alias.Struct" (syntax.rs
// parse_qualified_module_ident, parse_dot_name).
func (p *Parser) parseQualifiedModuleIdent() (ast.QualifiedModuleIdent, error) {
	start := p.startLoc()
	switch p.peek() {
	case lexer.DotNameValue:
		first, rest, err := p.parseDotName()
		if err != nil {
			return ast.QualifiedModuleIdent{}, err
		}
		if first != transactionLiteral {
			return ast.QualifiedModuleIdent{}, perror.NewInvalidToken(start)
		}
		end := p.previousEndLoc()
		moduleName, merr := ast.NewModuleName(rest, start, end)
		if merr != nil {
			return ast.QualifiedModuleIdent{}, perror.NewUser(merr)
		}
		return ast.NewQualifiedModuleIdent(ast.AccountAddress{}, true, moduleName, start, end), nil
	case lexer.AccountAddressValue:
		addr, err := p.parseAccountAddress()
		if err != nil {
			return ast.QualifiedModuleIdent{}, err
		}
		if err := p.expect(lexer.Period); err != nil {
			return ast.QualifiedModuleIdent{}, err
		}
		moduleName, merr := p.parseModuleName()
		if merr != nil {
			return ast.QualifiedModuleIdent{}, merr
		}
		return ast.NewQualifiedModuleIdent(addr, false, moduleName, start, p.previousEndLoc()), nil
	default:
		return ast.QualifiedModuleIdent{}, perror.NewInvalidToken(start)
	}
}
