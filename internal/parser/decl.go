package parser

import (
	"github.com/pilo290/moveir/internal/ast"
	"github.com/pilo290/moveir/internal/lexer"
	"github.com/pilo290/moveir/internal/perror"
)

// parseFunctionDecl parses one function definition: its modifiers, name,
// type formals, signature, spec directives, and body (spec.md §4.5).
func (p *Parser) parseFunctionDecl() (ast.Function, error) {
	start := p.startLoc()
	vis := ast.VisibilityInternal
	if p.peek() == lexer.Public {
		if err := p.advance(); err != nil {
			return ast.Function{}, err
		}
		vis = ast.VisibilityPublic
	}
	native := false
	if p.peek() == lexer.Native {
		if err := p.advance(); err != nil {
			return ast.Function{}, err
		}
		native = true
	}

	nameStart := p.startLoc()
	name, typeFormals, err := p.parseNameAndTypeFormals()
	if err != nil {
		return ast.Function{}, err
	}
	fname, ferr := ast.NewFunctionName(name, nameStart, nameStart+len(name))
	if ferr != nil {
		return ast.Function{}, perror.NewUser(ferr)
	}

	sigStart := p.startLoc()
	if err := p.expect(lexer.LParen); err != nil {
		return ast.Function{}, err
	}
	args, aerr := commaList(p, []lexer.Tok{lexer.RParen}, false, p.parseArgDecl)
	if aerr != nil {
		return ast.Function{}, aerr
	}
	if err := p.expect(lexer.RParen); err != nil {
		return ast.Function{}, err
	}
	returnTypes, rerr := p.parseReturnType()
	if rerr != nil {
		return ast.Function{}, rerr
	}
	acquires, qerr := p.parseAcquireList()
	if qerr != nil {
		return ast.Function{}, qerr
	}
	sig := ast.NewFunctionSignature(typeFormals, args, returnTypes, acquires, sigStart, p.previousEndLoc())

	var specs []ast.Condition
	for p.peek().IsSpecDirective() {
		cond, cerr := p.parseSpecCondition()
		if cerr != nil {
			return ast.Function{}, cerr
		}
		specs = append(specs, cond)
	}

	var body ast.FunctionBody
	if native {
		if err := p.expect(lexer.Semicolon); err != nil {
			return ast.Function{}, err
		}
		body = ast.FunctionBody{Native: true}
	} else {
		block, berr := p.parseFunctionBlock()
		if berr != nil {
			return ast.Function{}, berr
		}
		body = ast.FunctionBody{Block: &block}
	}

	return ast.NewFunction(fname, vis, sig, specs, body, start, p.previousEndLoc()), nil
}

// parseFieldDecl parses one "name: Type" entry of a struct's field list.
func (p *Parser) parseFieldDecl() (ast.FieldDecl, error) {
	start := p.startLoc()
	name, err := p.parseField()
	if err != nil {
		return ast.FieldDecl{}, err
	}
	if err := p.expect(lexer.Colon); err != nil {
		return ast.FieldDecl{}, err
	}
	typ, terr := p.parseType()
	if terr != nil {
		return ast.FieldDecl{}, terr
	}
	return ast.NewFieldDecl(name, typ, start, p.previousEndLoc()), nil
}

// isStructDecl reports whether the upcoming declaration is a struct
// rather than a function, by looking at most one token ahead of the
// optional "native" modifier (spec.md §4.7, syntax.rs is_struct_decl):
// a struct decl always continues with "struct"/"resource" right after an
// optional leading "native".
func (p *Parser) isStructDecl() (bool, error) {
	if p.peek() == lexer.Struct || p.peek() == lexer.Resource {
		return true, nil
	}
	if p.peek() == lexer.Native {
		tok, err := p.lex.Lookahead()
		if err != nil {
			return false, perror.NewUser(err)
		}
		return tok == lexer.Struct || tok == lexer.Resource, nil
	}
	return false, nil
}

// parseStructDecl parses one struct/resource definition: its name, type
// formals, fields (absent when native), and invariants.
func (p *Parser) parseStructDecl() (ast.StructDefinition, error) {
	start := p.startLoc()
	native := false
	if p.peek() == lexer.Native {
		if err := p.advance(); err != nil {
			return ast.StructDefinition{}, err
		}
		native = true
	}
	vis := ast.StructOrdinary
	switch p.peek() {
	case lexer.Struct:
		if err := p.advance(); err != nil {
			return ast.StructDefinition{}, err
		}
	case lexer.Resource:
		if err := p.advance(); err != nil {
			return ast.StructDefinition{}, err
		}
		vis = ast.StructResource
	default:
		return ast.StructDefinition{}, perror.NewInvalidToken(p.startLoc())
	}

	nameStart := p.startLoc()
	name, typeFormals, err := p.parseNameAndTypeFormals()
	if err != nil {
		return ast.StructDefinition{}, err
	}
	sname, serr := ast.NewStructName(name, nameStart, nameStart+len(name))
	if serr != nil {
		return ast.StructDefinition{}, perror.NewUser(serr)
	}

	if native {
		if err := p.expect(lexer.Semicolon); err != nil {
			return ast.StructDefinition{}, err
		}
		return ast.NewStructDefinition(sname, vis, true, typeFormals, nil, nil, start, p.previousEndLoc()), nil
	}

	if err := p.expect(lexer.LBrace); err != nil {
		return ast.StructDefinition{}, err
	}
	var fields []ast.FieldDecl
	var invariants []ast.Invariant
	for p.peek() != lexer.RBrace {
		if p.peek() == lexer.Invariant {
			inv, ierr := p.parseInvariant()
			if ierr != nil {
				return ast.StructDefinition{}, ierr
			}
			invariants = append(invariants, inv)
			continue
		}
		field, ferr := p.parseFieldDecl()
		if ferr != nil {
			return ast.StructDefinition{}, ferr
		}
		fields = append(fields, field)
		if p.peek() == lexer.Comma {
			if err := p.advance(); err != nil {
				return ast.StructDefinition{}, err
			}
		} else {
			break
		}
	}
	if err := p.expect(lexer.RBrace); err != nil {
		return ast.StructDefinition{}, err
	}
	return ast.NewStructDefinition(sname, vis, false, typeFormals, fields, invariants, start, p.previousEndLoc()), nil
}
