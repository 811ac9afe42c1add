package parser

import (
	"github.com/pilo290/moveir/internal/ast"
	"github.com/pilo290/moveir/internal/lexer"
	"github.com/pilo290/moveir/internal/perror"
)

// parseKind parses an explicit kind constraint ("resource" or
// "unrestricted"). The grammar only ever calls this after having already
// seen the ':' that introduces it; a type formal with no ':Kind' at all
// defaults to ast.KindAll without ever calling parseKind (spec.md §4.4).
func (p *Parser) parseKind() (ast.Kind, error) {
	switch p.peek() {
	case lexer.Resource:
		if err := p.advance(); err != nil {
			return 0, err
		}
		return ast.KindResource, nil
	case lexer.Unrestricted:
		if err := p.advance(); err != nil {
			return 0, err
		}
		return ast.KindUnrestricted, nil
	default:
		return 0, perror.NewInvalidToken(p.startLoc())
	}
}

// parseTypeFormal parses one entry of a "<T: resource, U>" type-formal
// list: a type variable with an optional ':Kind' annotation.
func (p *Parser) parseTypeFormal() (ast.TypeFormal, error) {
	start := p.startLoc()
	tv, err := p.parseTypeVar()
	if err != nil {
		return ast.TypeFormal{}, err
	}
	kind := ast.KindAll
	if p.peek() == lexer.Colon {
		if err := p.advance(); err != nil {
			return ast.TypeFormal{}, err
		}
		kind, err = p.parseKind()
		if err != nil {
			return ast.TypeFormal{}, err
		}
	}
	return ast.NewTypeFormal(tv, kind, start, p.previousEndLoc()), nil
}

// parseTypeActuals parses an optional '<T, U, ...>' list introduced by a
// standalone Less token (as opposed to one already fused into a
// NameBeginTy token). Absence of '<' means an empty list.
func (p *Parser) parseTypeActuals() ([]ast.Type, error) {
	if p.peek() != lexer.Less {
		return nil, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.finishTypeActuals()
}

// finishTypeActuals parses the comma-separated type list up to and
// including the closing '>', assuming the opening '<' has already been
// consumed (either standalone or fused into a NameBeginTy token).
func (p *Parser) finishTypeActuals() ([]ast.Type, error) {
	types, err := commaList(p, []lexer.Tok{lexer.Greater, lexer.GreaterGreater}, true, p.parseType)
	if err != nil {
		return nil, err
	}
	if err := p.consumeEndOfGenerics(); err != nil {
		return nil, err
	}
	return types, nil
}

// parseNameAndTypeActuals dispatches on whether the lexer fused the name
// with its opening '<' (NameBeginTyValue) or left it bare (NameValue),
// per spec.md §4.5 / syntax.rs parse_name_and_type_actuals.
func (p *Parser) parseNameAndTypeActuals() (string, []ast.Type, error) {
	if p.peek() == lexer.NameBeginTyValue {
		name, err := p.parseNameBeginTy()
		if err != nil {
			return "", nil, err
		}
		actuals, err := p.finishTypeActuals()
		if err != nil {
			return "", nil, err
		}
		return name, actuals, nil
	}
	name, err := p.parseName()
	if err != nil {
		return "", nil, err
	}
	return name, nil, nil
}

// parseNameAndTypeFormals is parseNameAndTypeActuals's declaration-site
// counterpart: a name followed by an optional '<T: Kind, ...>' list.
func (p *Parser) parseNameAndTypeFormals() (string, []ast.TypeFormal, error) {
	if p.peek() == lexer.NameBeginTyValue {
		name, err := p.parseNameBeginTy()
		if err != nil {
			return "", nil, err
		}
		formals, err := commaList(p, []lexer.Tok{lexer.Greater, lexer.GreaterGreater}, true, p.parseTypeFormal)
		if err != nil {
			return "", nil, err
		}
		if err := p.consumeEndOfGenerics(); err != nil {
			return "", nil, err
		}
		return name, formals, nil
	}
	name, err := p.parseName()
	if err != nil {
		return "", nil, err
	}
	return name, nil, nil
}

// parseQualifiedStructIdentDotted handles the "Alias.Struct" form, where
// the lexer has already fused Alias and Struct into one DotNameValue
// token (neither part started mid-expression with a digit, so fusion
// always applies). A following bare '<' (not fused, since DotName fusion
// never also eats '<') begins the type-actuals list.
func (p *Parser) parseQualifiedStructIdentDotted() (ast.QualifiedStructIdent, error) {
	start := p.startLoc()
	alias, structText, err := p.parseDotName()
	if err != nil {
		return ast.QualifiedStructIdent{}, err
	}
	end := p.previousEndLoc()
	moduleName, merr := ast.NewModuleName(alias, start, end)
	if merr != nil {
		return ast.QualifiedStructIdent{}, perror.NewUser(merr)
	}
	structName, serr := ast.NewStructName(structText, start, end)
	if serr != nil {
		return ast.QualifiedStructIdent{}, perror.NewUser(serr)
	}
	return ast.NewQualifiedStructIdent(moduleName, true, structName, start, end), nil
}

// parseQualifiedStructIdentAny parses a struct reference in either form
// (dotted-alias or bare, with optional type actuals) and returns it along
// with any type actuals applied to it. Used where a struct name appears
// as a command target (unpack) rather than inside an expression.
func (p *Parser) parseQualifiedStructIdentAny() (ast.QualifiedStructIdent, []ast.Type, error) {
	if p.peek() == lexer.DotNameValue {
		ident, err := p.parseQualifiedStructIdentDotted()
		if err != nil {
			return ast.QualifiedStructIdent{}, nil, err
		}
		actuals, aerr := p.parseTypeActuals()
		if aerr != nil {
			return ast.QualifiedStructIdent{}, nil, aerr
		}
		return ident, actuals, nil
	}
	start := p.startLoc()
	name, actuals, err := p.parseNameAndTypeActuals()
	if err != nil {
		return ast.QualifiedStructIdent{}, nil, err
	}
	end := p.previousEndLoc()
	sn, serr := ast.NewStructName(name, start, end)
	if serr != nil {
		return ast.QualifiedStructIdent{}, nil, perror.NewUser(serr)
	}
	return ast.NewQualifiedStructIdent(ast.ModuleName{}, false, sn, start, end), actuals, nil
}

// parseType parses any type production (spec.md §4.4): the primitive
// keywords, a reference, a qualified struct instantiation, or a bare name
// standing for a type parameter bound by the enclosing declaration.
func (p *Parser) parseType() (ast.Type, error) {
	start := p.startLoc()
	switch p.peek() {
	case lexer.Address:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewTypeAddress(start, p.previousEndLoc()), nil
	case lexer.U8:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewTypeU8(start, p.previousEndLoc()), nil
	case lexer.U64:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewTypeU64(start, p.previousEndLoc()), nil
	case lexer.U128:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewTypeU128(start, p.previousEndLoc()), nil
	case lexer.Bool:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewTypeBool(start, p.previousEndLoc()), nil
	case lexer.Bytearray:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewTypeByteArray(start, p.previousEndLoc()), nil
	case lexer.Amp:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return ast.NewTypeReference(false, inner, start, p.previousEndLoc()), nil
	case lexer.AmpMut:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return ast.NewTypeReference(true, inner, start, p.previousEndLoc()), nil
	case lexer.DotNameValue:
		ident, err := p.parseQualifiedStructIdentDotted()
		if err != nil {
			return nil, err
		}
		actuals, err := p.parseTypeActuals()
		if err != nil {
			return nil, err
		}
		return ast.NewTypeStruct(ident, actuals, start, p.previousEndLoc()), nil
	case lexer.NameValue, lexer.NameBeginTyValue:
		name, actuals, err := p.parseNameAndTypeActuals()
		if err != nil {
			return nil, err
		}
		if len(actuals) > 0 {
			// A bare name applied to type actuals names a struct defined in
			// the enclosing module, e.g. "vector<T>" (spec.md §8 boundary
			// scenario 1) — the same unqualified QualifiedStructIdent shape
			// parseQualifiedStructIdentAny builds for command targets.
			sn, serr := ast.NewStructName(name, start, p.previousEndLoc())
			if serr != nil {
				return nil, perror.NewUser(serr)
			}
			ident := ast.NewQualifiedStructIdent(ast.ModuleName{}, false, sn, start, p.previousEndLoc())
			return ast.NewTypeStruct(ident, actuals, start, p.previousEndLoc()), nil
		}
		tv, terr := ast.NewTypeVar(name, start, p.previousEndLoc())
		if terr != nil {
			return nil, perror.NewUser(terr)
		}
		return ast.NewTypeParameter(tv, start, p.previousEndLoc()), nil
	default:
		return nil, perror.NewInvalidToken(start)
	}
}

// parseArgDecl parses one "name: Type" function parameter.
func (p *Parser) parseArgDecl() (ast.ArgDecl, error) {
	start := p.startLoc()
	name, err := p.parseVar()
	if err != nil {
		return ast.ArgDecl{}, err
	}
	if err := p.expect(lexer.Colon); err != nil {
		return ast.ArgDecl{}, err
	}
	typ, err := p.parseType()
	if err != nil {
		return ast.ArgDecl{}, err
	}
	return ast.NewArgDecl(name, typ, start, p.previousEndLoc()), nil
}

// parseReturnType parses an optional ": T1 * T2 * ..." return-type tuple.
// Absence of ':' means no return value.
func (p *Parser) parseReturnType() ([]ast.Type, error) {
	if p.peek() != lexer.Colon {
		return nil, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	var types []ast.Type
	for {
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		types = append(types, typ)
		if p.peek() != lexer.Star {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return types, nil
}

// parseAcquireList parses an optional "acquires T1, T2, ..." clause.
func (p *Parser) parseAcquireList() ([]ast.StructName, error) {
	if p.peek() != lexer.Acquires {
		return nil, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	var names []ast.StructName
	for {
		name, err := p.parseStructName()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		if p.peek() != lexer.Comma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return names, nil
}
