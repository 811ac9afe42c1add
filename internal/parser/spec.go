package parser

import (
	"strconv"

	"github.com/pilo290/moveir/internal/ast"
	"github.com/pilo290/moveir/internal/lexer"
	"github.com/pilo290/moveir/internal/perror"
)

// parseStorageLocation parses a spec-language storage location (spec.md
// §4.6): a base term followed by zero or more '.field' accesses.
func (p *Parser) parseStorageLocation() (ast.StorageLocation, error) {
	start := p.startLoc()
	base, err := p.parseStorageLocationBase(start)
	if err != nil {
		return nil, err
	}
	return p.parseFieldChain(start, base)
}

func (p *Parser) parseFieldChain(start int, base ast.StorageLocation) (ast.StorageLocation, error) {
	for p.peek() == lexer.Period {
		if err := p.advance(); err != nil {
			return nil, err
		}
		f, ferr := p.parseField()
		if ferr != nil {
			return nil, ferr
		}
		base = ast.NewLocField(base, f, start, p.previousEndLoc())
	}
	return base, nil
}

// parseStorageLocationBase parses one of the non-chained storage-location
// forms: "RET" or "RET(i)" (i defaults to 0 when the parens are absent),
// "txn_sender", an address literal, "global<T>(loc)", or a bare formal
// name (syntax.rs parse_storage_location).
func (p *Parser) parseStorageLocationBase(start int) (ast.StorageLocation, error) {
	switch p.peek() {
	case lexer.SpecReturn:
		if err := p.advance(); err != nil {
			return nil, err
		}
		idx := 0
		if p.peek() == lexer.LParen {
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.peek() != lexer.U64Value {
				return nil, perror.NewInvalidToken(p.startLoc())
			}
			idxText := p.content()
			n, ierr := strconv.Atoi(idxText)
			if ierr != nil {
				return nil, perror.Userf("invalid RET index %q: %w", idxText, ierr)
			}
			idx = n
			if err := p.advance(); err != nil {
				return nil, err
			}
			if err := p.expect(lexer.RParen); err != nil {
				return nil, err
			}
		}
		return ast.NewLocReturn(idx, start, p.previousEndLoc()), nil
	case lexer.TxnSender:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewLocTxnSender(start, p.previousEndLoc()), nil
	case lexer.AccountAddressValue:
		addr, err := p.parseAccountAddress()
		if err != nil {
			return nil, err
		}
		return ast.NewLocAddress(addr, start, p.previousEndLoc()), nil
	case lexer.Global:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect(lexer.Less); err != nil {
			return nil, err
		}
		typ, terr := p.parseType()
		if terr != nil {
			return nil, terr
		}
		if err := p.consumeEndOfGenerics(); err != nil {
			return nil, err
		}
		if err := p.expect(lexer.LParen); err != nil {
			return nil, err
		}
		loc, lerr := p.parseStorageLocation()
		if lerr != nil {
			return nil, lerr
		}
		if err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		return ast.NewLocGlobal(typ, loc, start, p.previousEndLoc()), nil
	case lexer.NameValue:
		v, err := p.parseVar()
		if err != nil {
			return nil, err
		}
		return ast.NewLocFormal(v, start, p.previousEndLoc()), nil
	default:
		return nil, perror.NewInvalidToken(start)
	}
}

// parseUnarySpecExp parses one spec-expression term: a literal, a prefixed
// form (!, old(), &/&mut, *, global_exists<T>(...)), a parenthesized
// sub-expression, a call to a helper function, or a bare storage location
// (syntax.rs parse_unary_spec_exp).
func (p *Parser) parseUnarySpecExp() (ast.SpecExp, error) {
	start := p.startLoc()
	switch p.peek() {
	case lexer.Exclaim:
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseUnarySpecExp()
		if err != nil {
			return nil, err
		}
		return ast.NewSpecExpNot(e, start, p.previousEndLoc()), nil
	case lexer.Old:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect(lexer.LParen); err != nil {
			return nil, err
		}
		e, err := p.parseSpecExp()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		return ast.NewSpecExpOld(e, start, p.previousEndLoc()), nil
	case lexer.Amp, lexer.AmpMut:
		mutable := p.peek() == lexer.AmpMut
		if err := p.advance(); err != nil {
			return nil, err
		}
		loc, err := p.parseStorageLocation()
		if err != nil {
			return nil, err
		}
		return ast.NewSpecExpReference(mutable, loc, start, p.previousEndLoc()), nil
	case lexer.Star:
		if err := p.advance(); err != nil {
			return nil, err
		}
		loc, err := p.parseStorageLocation()
		if err != nil {
			return nil, err
		}
		return ast.NewSpecExpDereference(loc, start, p.previousEndLoc()), nil
	case lexer.GlobalExists:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect(lexer.Less); err != nil {
			return nil, err
		}
		typ, terr := p.parseType()
		if terr != nil {
			return nil, terr
		}
		if err := p.consumeEndOfGenerics(); err != nil {
			return nil, err
		}
		if err := p.expect(lexer.LParen); err != nil {
			return nil, err
		}
		loc, lerr := p.parseStorageLocation()
		if lerr != nil {
			return nil, lerr
		}
		if err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		return ast.NewSpecExpGlobalExists(typ, loc, start, p.previousEndLoc()), nil
	case lexer.LParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseSpecExp()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		return e, nil
	case lexer.NameValue, lexer.NameBeginTyValue:
		name, typeActuals, err := p.parseNameAndTypeActuals()
		if err != nil {
			return nil, err
		}
		if p.peek() == lexer.LParen {
			fn, ferr := ast.NewFunctionName(name, start, start+len(name))
			if ferr != nil {
				return nil, perror.NewUser(ferr)
			}
			callee := ast.NewModuleFunctionCall(nil, fn, typeActuals, start, p.previousEndLoc())
			if err := p.advance(); err != nil {
				return nil, err
			}
			args, aerr := commaList(p, []lexer.Tok{lexer.RParen}, false, p.parseSpecExp)
			if aerr != nil {
				return nil, aerr
			}
			if err := p.expect(lexer.RParen); err != nil {
				return nil, err
			}
			return ast.NewSpecExpCall(callee, args, start, p.previousEndLoc()), nil
		}
		v, verr := ast.NewVar(name, start, start+len(name))
		if verr != nil {
			return nil, perror.NewUser(verr)
		}
		base := ast.NewLocFormal(v, start, start+len(name))
		loc, lerr := p.parseFieldChain(start, base)
		if lerr != nil {
			return nil, lerr
		}
		return ast.NewSpecExpLocation(loc, start, p.previousEndLoc()), nil
	default:
		if isCopyableValStart(p.peek()) {
			val, err := p.parseCopyableVal()
			if err != nil {
				return nil, err
			}
			return ast.NewSpecExpConstant(val, start, p.previousEndLoc()), nil
		}
		base, err := p.parseStorageLocationBase(start)
		if err != nil {
			return nil, err
		}
		loc, lerr := p.parseFieldChain(start, base)
		if lerr != nil {
			return nil, lerr
		}
		return ast.NewSpecExpLocation(loc, start, p.previousEndLoc()), nil
	}
}

// specPrecedenceOf is exprPrecedenceOf's counterpart for the spec-
// expression grammar: it keeps "==>" (spec expressions are the only place
// implication is legal) but, unlike exprPrecedenceOf, omits the bitshift
// operators entirely — spec.md §4.6 states plainly that "bitshifts are
// not valid spec operators," so "requires a << b;" must fail to parse
// rather than build a SpecExpBinop{Op: OpShl}. The type argument of
// "global_exists<T>(...)"/"global<T>(...)" is closed by consumeEndOfGenerics,
// never by this table. In spec mode the lexer fuses a name with neither '<'
// nor '.', so that type argument can be a primitive type, a reference or a
// bare name (a type parameter); a generic or module-qualified struct type
// there, such as "S<T>" or "M.S", does not parse.
func specPrecedenceOf(tok lexer.Tok) (ast.BinOp, int, bool) {
	switch tok {
	case lexer.EqualEqualGreater:
		return ast.OpImplies, 1, true
	case lexer.PipePipe:
		return ast.OpOr, 2, true
	case lexer.AmpAmp:
		return ast.OpAnd, 3, true
	case lexer.EqualEqual:
		return ast.OpEq, 4, true
	case lexer.ExclaimEqual:
		return ast.OpNeq, 4, true
	case lexer.Less:
		return ast.OpLt, 4, true
	case lexer.Greater:
		return ast.OpGt, 4, true
	case lexer.LessEqual:
		return ast.OpLe, 4, true
	case lexer.GreaterEqual:
		return ast.OpGe, 4, true
	case lexer.Pipe:
		return ast.OpBitOr, 5, true
	case lexer.Caret:
		return ast.OpBitXor, 6, true
	case lexer.Amp:
		return ast.OpBitAnd, 7, true
	case lexer.Plus:
		return ast.OpAdd, 9, true
	case lexer.Minus:
		return ast.OpSub, 9, true
	case lexer.Star:
		return ast.OpMul, 10, true
	case lexer.Slash:
		return ast.OpDiv, 10, true
	case lexer.Percent:
		return ast.OpMod, 10, true
	default:
		return 0, 0, false
	}
}

// parseSpecExp parses a full spec expression via the same precedence-
// climbing shape exprPrecedenceOf/parseRhsOfBinaryExp use, but over
// specPrecedenceOf's own table (spec.md §4.6).
func (p *Parser) parseSpecExp() (ast.SpecExp, error) {
	start := p.startLoc()
	lhs, err := p.parseUnarySpecExp()
	if err != nil {
		return nil, err
	}
	return p.parseRhsOfSpecExp(start, lhs, 0)
}

// parseRhsOfSpecExp mirrors parseRhsOfBinaryExp, with two differences:
// "==>" is right-associative (a following "==>" of equal precedence is
// folded into the right operand), and an "a ==> b" term is desugared here
// into "!a || b" rather than kept as its own SpecExpBinop variant (spec.md §4.6 — the verifier backends this
// spec language targets have no native implication operator).
func (p *Parser) parseRhsOfSpecExp(start int, lhs ast.SpecExp, minPrec int) (ast.SpecExp, error) {
	result := lhs
	opTok := p.peek()
	op, prec, ok := specPrecedenceOf(opTok)

	for ok && prec >= minPrec {
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseUnarySpecExp()
		if err != nil {
			return nil, err
		}

		nextTok := p.peek()
		_, nextPrec, nextOk := specPrecedenceOf(nextTok)
		for nextOk && (nextPrec > prec || (nextPrec == prec && opTok == lexer.EqualEqualGreater)) {
			rhs, err = p.parseRhsOfSpecExp(start, rhs, nextPrec)
			if err != nil {
				return nil, err
			}
			nextTok = p.peek()
			_, nextPrec, nextOk = specPrecedenceOf(nextTok)
		}

		if opTok == lexer.EqualEqualGreater {
			notLhs := ast.NewSpecExpNot(result, start, p.previousEndLoc())
			result = ast.NewSpecExpBinop(ast.OpOr, notLhs, rhs, start, p.previousEndLoc())
		} else {
			result = ast.NewSpecExpBinop(op, result, rhs, start, p.previousEndLoc())
		}
		opTok = p.peek()
		op, prec, ok = specPrecedenceOf(opTok)
	}
	return result, nil
}

// conditionKindOf maps a directive keyword token to its ConditionKind, or
// fails with InvalidToken at loc if tok does not introduce a condition.
func conditionKindOf(tok lexer.Tok, loc int) (ast.ConditionKind, error) {
	switch tok {
	case lexer.Requires:
		return ast.ConditionRequires, nil
	case lexer.Ensures:
		return ast.ConditionEnsures, nil
	case lexer.AbortsIf:
		return ast.ConditionAbortsIf, nil
	case lexer.SucceedsIf:
		return ast.ConditionSucceedsIf, nil
	default:
		return 0, perror.NewInvalidToken(loc)
	}
}

// parseSpecCondition parses one "requires/ensures/aborts_if/succeeds_if
// e;" clause attached to a function. SpecMode is raised for the duration
// of the embedded expression so the lexer stops greedily fusing names
// with a following '<' or '.' (spec.md §3, §4.6): that fusion exists only
// to resolve the ordinary-expression grammar's ambiguities and would
// otherwise misparse a plain "x.f" storage-location chain.
func (p *Parser) parseSpecCondition() (ast.Condition, error) {
	start := p.startLoc()
	kind, err := conditionKindOf(p.peek(), start)
	if err != nil {
		return ast.Condition{}, err
	}

	prevMode := p.lex.SpecMode
	p.lex.SpecMode = true
	defer func() { p.lex.SpecMode = prevMode }()

	if err := p.advance(); err != nil {
		return ast.Condition{}, err
	}
	e, err := p.parseSpecExp()
	if err != nil {
		return ast.Condition{}, err
	}
	if err := p.expect(lexer.Semicolon); err != nil {
		return ast.Condition{}, err
	}
	return ast.NewCondition(kind, e, start, p.previousEndLoc()), nil
}

// parseInvariant parses a struct or module invariant, with an optional
// "{modifier}" brace (e.g. "{pack}", "{update}") naming which lifecycle
// point it applies to.
func (p *Parser) parseInvariant() (ast.Invariant, error) {
	start := p.startLoc()
	if p.peek() != lexer.Invariant {
		return ast.Invariant{}, perror.NewInvalidToken(start)
	}

	prevMode := p.lex.SpecMode
	p.lex.SpecMode = true
	defer func() { p.lex.SpecMode = prevMode }()

	if err := p.advance(); err != nil {
		return ast.Invariant{}, err
	}
	modifier := ""
	if p.peek() == lexer.LBrace {
		if err := p.advance(); err != nil {
			return ast.Invariant{}, err
		}
		name, nerr := p.parseName()
		if nerr != nil {
			return ast.Invariant{}, nerr
		}
		modifier = name
		if err := p.expect(lexer.RBrace); err != nil {
			return ast.Invariant{}, err
		}
	}
	e, err := p.parseSpecExp()
	if err != nil {
		return ast.Invariant{}, err
	}
	if err := p.expect(lexer.Semicolon); err != nil {
		return ast.Invariant{}, err
	}
	return ast.NewInvariant(modifier, e, start, p.previousEndLoc()), nil
}

// parseSynthetic parses a module-level "synthetic name: Type;" variable,
// visible only inside spec expressions.
func (p *Parser) parseSynthetic() (ast.SyntheticDefinition, error) {
	start := p.startLoc()
	if err := p.expect(lexer.Synthetic); err != nil {
		return ast.SyntheticDefinition{}, err
	}
	name, err := p.parseVar()
	if err != nil {
		return ast.SyntheticDefinition{}, err
	}
	if err := p.expect(lexer.Colon); err != nil {
		return ast.SyntheticDefinition{}, err
	}
	typ, terr := p.parseType()
	if terr != nil {
		return ast.SyntheticDefinition{}, terr
	}
	if err := p.expect(lexer.Semicolon); err != nil {
		return ast.SyntheticDefinition{}, err
	}
	return ast.NewSyntheticDefinition(name, typ, start, p.previousEndLoc()), nil
}
