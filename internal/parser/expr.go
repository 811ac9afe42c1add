package parser

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/pilo290/moveir/internal/ast"
	"github.com/pilo290/moveir/internal/lexer"
	"github.com/pilo290/moveir/internal/perror"
)

// exprPrecedenceOf returns the binary operator and numeric precedence a
// token introduces in the ordinary (non-spec) expression grammar,
// mirroring get_precedence in syntax.rs exactly: "||"=2, "&&"=3, the
// comparisons=4, "|"=5, "^"=6, "&"=7, the shifts=8, "+"/"-"=9,
// "*"/"/"/"%"=10. Anything else is not a binary operator at all
// (precedence 0, ok=false). "==>" is deliberately absent: spec.md §4.2/§1
// restrict implication to spec expressions (specPrecedenceOf in spec.go);
// an ordinary expression like a while-condition must reject it rather
// than build an ast.ExpBinop{Op: OpImplies}.
func exprPrecedenceOf(tok lexer.Tok) (ast.BinOp, int, bool) {
	switch tok {
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
	case lexer.LessLess:
		return ast.OpShl, 8, true
	case lexer.GreaterGreater:
		return ast.OpShr, 8, true
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

// parseExp parses a full expression via iterative precedence climbing
// (spec.md §9 prefers this to a cascading per-precedence-level grammar).
func (p *Parser) parseExp() (ast.Exp, error) {
	start := p.startLoc()
	lhs, err := p.parseUnaryExp()
	if err != nil {
		return nil, err
	}
	return p.parseRhsOfBinaryExp(start, lhs, 0)
}

// parseRhsOfBinaryExp consumes operators of precedence >= minPrec,
// folding lhs leftward, and recurses once per run of strictly higher
// precedence on the right, mirroring syntax.rs's parse_rhs_of_binary_exp.
// Every operator in exprPrecedenceOf's table is left-associative.
func (p *Parser) parseRhsOfBinaryExp(start int, lhs ast.Exp, minPrec int) (ast.Exp, error) {
	result := lhs
	opTok := p.peek()
	op, prec, ok := exprPrecedenceOf(opTok)

	for ok && prec >= minPrec {
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseUnaryExp()
		if err != nil {
			return nil, err
		}

		nextTok := p.peek()
		_, nextPrec, nextOk := exprPrecedenceOf(nextTok)
		for nextOk && nextPrec > prec {
			rhs, err = p.parseRhsOfBinaryExp(start, rhs, nextPrec)
			if err != nil {
				return nil, err
			}
			nextTok = p.peek()
			_, nextPrec, nextOk = exprPrecedenceOf(nextTok)
		}

		result = ast.NewExpBinop(op, result, rhs, start, p.previousEndLoc())
		opTok = p.peek()
		op, prec, ok = exprPrecedenceOf(opTok)
	}
	return result, nil
}

func (p *Parser) parseUnaryExp() (ast.Exp, error) {
	start := p.startLoc()
	switch p.peek() {
	case lexer.Exclaim:
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseUnaryExp()
		if err != nil {
			return nil, err
		}
		return ast.NewExpUnary(ast.OpNot, e, start, p.previousEndLoc()), nil
	case lexer.Star:
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseUnaryExp()
		if err != nil {
			return nil, err
		}
		return ast.NewExpDereference(e, start, p.previousEndLoc()), nil
	case lexer.Amp, lexer.AmpMut:
		return p.parseBorrowField()
	default:
		return p.parseCallOrTerm()
	}
}

// parseBorrowField handles "&e"/"&mut e", where e is a local variable or
// a chain of field accesses off one (spec.md §4.2, syntax.rs
// parse_borrow_field_).
func (p *Parser) parseBorrowField() (ast.Exp, error) {
	start := p.startLoc()
	mutable := p.peek() == lexer.AmpMut
	if err := p.advance(); err != nil {
		return nil, err
	}
	var exp ast.Exp
	if p.peek() == lexer.DotNameValue {
		// Outside spec mode the lexer fuses "x.f" into one DotNameValue
		// token, whose two parts are never empty: split it back into x and f.
		varStart := p.startLoc()
		name, field, derr := p.parseDotName()
		if derr != nil {
			return nil, derr
		}
		v, _ := ast.NewVar(name, varStart, varStart+len(name))
		f, _ := ast.NewField(field, varStart+len(name)+1, p.previousEndLoc())
		exp = ast.NewExpBorrowField(mutable, ast.NewExpBorrowLocal(mutable, v, start, varStart+len(name)), f, start, p.previousEndLoc())
	} else {
		v, err := p.parseVar()
		if err != nil {
			return nil, err
		}
		exp = ast.NewExpBorrowLocal(mutable, v, start, p.previousEndLoc())
	}
	for p.peek() == lexer.Period {
		if err := p.advance(); err != nil {
			return nil, err
		}
		f, ferr := p.parseField()
		if ferr != nil {
			return nil, ferr
		}
		exp = ast.NewExpBorrowField(mutable, exp, f, start, p.previousEndLoc())
	}
	return exp, nil
}

var builtinTokens = map[lexer.Tok]ast.Builtin{
	lexer.Exists:          ast.BuiltinExists,
	lexer.BorrowGlobal:    ast.BuiltinBorrowGlobal,
	lexer.BorrowGlobalMut: ast.BuiltinBorrowGlobalMut,
	lexer.GetTxnSender:    ast.BuiltinGetTxnSender,
	lexer.MoveFrom:        ast.BuiltinMoveFrom,
	lexer.MoveToSender:    ast.BuiltinMoveToSender,
	lexer.Freeze:          ast.BuiltinFreeze,
	lexer.ToU8:            ast.BuiltinToU8,
	lexer.ToU64:           ast.BuiltinToU64,
	lexer.ToU128:          ast.BuiltinToU128,
}

var builtinNeedsTypeActuals = map[lexer.Tok]bool{
	lexer.Exists:          true,
	lexer.BorrowGlobal:    true,
	lexer.BorrowGlobalMut: true,
	lexer.MoveFrom:        true,
	lexer.MoveToSender:    true,
}

func (p *Parser) parseCallOrTerm() (ast.Exp, error) {
	start := p.startLoc()
	switch {
	case p.peek() == lexer.Move:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect(lexer.LParen); err != nil {
			return nil, err
		}
		v, err := p.parseVar()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		return ast.NewExpMove(v, start, p.previousEndLoc()), nil
	case p.peek() == lexer.Copy:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect(lexer.LParen); err != nil {
			return nil, err
		}
		v, err := p.parseVar()
		if err != nil {
			return nil, err
		}
		if err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		return ast.NewExpCopy(v, start, p.previousEndLoc()), nil
	case p.peek() == lexer.LParen:
		return p.parseExprList()
	case isCopyableValStart(p.peek()):
		val, err := p.parseCopyableVal()
		if err != nil {
			return nil, err
		}
		return ast.NewExpValue(val, start, p.previousEndLoc()), nil
	case p.peek() == lexer.DotNameValue:
		return p.parseQualifiedCall(start)
	case p.peek() == lexer.NameBeginTyValue:
		// A name fused with its opening '<' always forces pack
		// interpretation (spec.md §4.2): "Name<T>" is never a plain read.
		return p.parsePackTerm(start)
	case p.peek() == lexer.NameValue:
		// A bare name is a pack only if '{' follows immediately; otherwise
		// it is an ordinary variable read (spec.md §8 boundary scenarios 2
		// and 6). This grammar has no same-module call form by bare name:
		// own-module functions are always invoked through the reserved
		// "Self." alias, which lexes as DotNameValue.
		if la, lerr := p.lex.Lookahead(); lerr == nil && la == lexer.LBrace {
			return p.parsePackTerm(start)
		}
		v, err := p.parseVar()
		if err != nil {
			return nil, err
		}
		return ast.NewExpVar(v, start, p.previousEndLoc()), nil
	default:
		if _, ok := builtinTokens[p.peek()]; ok {
			return p.parseBuiltinCall(start)
		}
		return nil, perror.NewInvalidToken(start)
	}
}

func isCopyableValStart(tok lexer.Tok) bool {
	switch tok {
	case lexer.AccountAddressValue, lexer.True, lexer.False, lexer.U8Value, lexer.U64Value, lexer.U128Value, lexer.ByteArrayValue:
		return true
	default:
		return false
	}
}

func (p *Parser) parseBuiltinCall(start int) (ast.Exp, error) {
	tok := p.peek()
	builtin, ok := builtinTokens[tok]
	if !ok {
		return nil, perror.NewInvalidToken(start)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	var typeActuals []ast.Type
	if builtinNeedsTypeActuals[tok] {
		if err := p.expect(lexer.Less); err != nil {
			return nil, err
		}
		types, err := p.finishTypeActuals()
		if err != nil {
			return nil, err
		}
		typeActuals = types
	}
	callee := ast.NewBuiltinCall(builtin, typeActuals, start, p.previousEndLoc())
	args, err := p.parseCallArgs()
	if err != nil {
		return nil, err
	}
	return ast.NewExpCall(callee, args, start, p.previousEndLoc()), nil
}

// parseQualifiedCall parses a "Alias.function<T...>(args)" or
// "Alias.Struct<T...>{...}" term: a dotted name always names either a
// module-qualified function call or a module-qualified pack, distinguished
// by whether '{' or '(' follows the (optional) type actuals.
func (p *Parser) parseQualifiedCall(start int) (ast.Exp, error) {
	alias, bare, derr := p.parseDotName()
	if derr != nil {
		return nil, derr
	}
	end := p.previousEndLoc()
	m, merr := ast.NewModuleName(alias, start, end)
	if merr != nil {
		return nil, perror.NewUser(merr)
	}
	typeActuals, err := p.parseTypeActuals()
	if err != nil {
		return nil, err
	}

	if p.peek() == lexer.LBrace {
		return p.parsePack(start, &m, bare, typeActuals)
	}

	fn, ferr := ast.NewFunctionName(bare, start+len(alias)+1, start+len(alias)+1+len(bare))
	if ferr != nil {
		return nil, perror.NewUser(ferr)
	}
	callee := ast.NewModuleFunctionCall(&m, fn, typeActuals, start, p.previousEndLoc())
	args, aerr := p.parseCallArgs()
	if aerr != nil {
		return nil, aerr
	}
	return ast.NewExpCall(callee, args, start, p.previousEndLoc()), nil
}

// parsePackTerm parses a bare "Name<T...>{ f: e, ... }" pack term. A bare
// name never introduces a call in this grammar (spec.md §4.2): without a
// following '{' it is simply not a valid term.
func (p *Parser) parsePackTerm(start int) (ast.Exp, error) {
	name, typeActuals, err := p.parseNameAndTypeActuals()
	if err != nil {
		return nil, err
	}
	return p.parsePack(start, nil, name, typeActuals)
}

func (p *Parser) parsePack(start int, moduleAlias *ast.ModuleName, name string, typeActuals []ast.Type) (ast.Exp, error) {
	structName, serr := ast.NewStructName(name, start, p.previousEndLoc())
	if serr != nil {
		return nil, perror.NewUser(serr)
	}
	var m ast.ModuleName
	qualified := false
	if moduleAlias != nil {
		m = *moduleAlias
		qualified = true
	}
	ident := ast.NewQualifiedStructIdent(m, qualified, structName, start, p.previousEndLoc())

	if err := p.expect(lexer.LBrace); err != nil {
		return nil, err
	}
	fields, ferr := commaList(p, []lexer.Tok{lexer.RBrace}, false, p.parseFieldExp)
	if ferr != nil {
		return nil, ferr
	}
	if err := p.expect(lexer.RBrace); err != nil {
		return nil, err
	}
	return ast.NewExpPack(ident, typeActuals, fields, start, p.previousEndLoc()), nil
}

func (p *Parser) parseFieldExp() (ast.FieldExp, error) {
	start := p.startLoc()
	f, err := p.parseField()
	if err != nil {
		return ast.FieldExp{}, err
	}
	if err := p.expect(lexer.Colon); err != nil {
		return ast.FieldExp{}, err
	}
	e, eerr := p.parseExp()
	if eerr != nil {
		return ast.FieldExp{}, eerr
	}
	return ast.NewFieldExp(f, e, start, p.previousEndLoc()), nil
}

func (p *Parser) parseCallArgs() ([]ast.Exp, error) {
	if err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	args, err := commaList(p, []lexer.Tok{lexer.RParen}, false, p.parseExp)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	return args, nil
}

// parseExprList parses a parenthesized term: "()" is the empty list,
// "(e)" is e itself (plain grouping, not a 1-tuple), "(e1, e2, ...)" is an
// ExpList.
func (p *Parser) parseExprList() (ast.Exp, error) {
	start := p.startLoc()
	if err := p.expect(lexer.LParen); err != nil {
		return nil, err
	}
	elems, err := commaList(p, []lexer.Tok{lexer.RParen}, false, p.parseExp)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RParen); err != nil {
		return nil, err
	}
	if len(elems) == 1 {
		return elems[0], nil
	}
	return ast.NewExpList(elems, start, p.previousEndLoc()), nil
}

func (p *Parser) parseCopyableVal() (ast.CopyableVal, error) {
	start := p.startLoc()
	switch p.peek() {
	case lexer.AccountAddressValue:
		addr, err := p.parseAccountAddress()
		if err != nil {
			return nil, err
		}
		return ast.NewValAddress(addr, start, p.previousEndLoc()), nil
	case lexer.True:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewValBool(true, start, p.previousEndLoc()), nil
	case lexer.False:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewValBool(false, start, p.previousEndLoc()), nil
	case lexer.U8Value:
		text := p.content()
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := strconv.ParseUint(strings.TrimSuffix(text, "u8"), 10, 8)
		if err != nil {
			return nil, perror.Userf("invalid u8 literal %q: %w", text, err)
		}
		return ast.NewValU8(uint8(n), start, p.previousEndLoc()), nil
	case lexer.U64Value:
		text := p.content()
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := strconv.ParseUint(strings.TrimSuffix(text, "u64"), 10, 64)
		if err != nil {
			return nil, perror.Userf("invalid u64 literal %q: %w", text, err)
		}
		return ast.NewValU64(n, start, p.previousEndLoc()), nil
	case lexer.U128Value:
		text := p.content()
		if err := p.advance(); err != nil {
			return nil, err
		}
		digits := strings.TrimSuffix(text, "u128")
		n, ok := new(big.Int).SetString(digits, 10)
		if !ok {
			return nil, perror.Userf("invalid u128 literal %q", text)
		}
		return ast.NewValU128(n, start, p.previousEndLoc()), nil
	case lexer.ByteArrayValue:
		text := p.content()
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner := strings.TrimSuffix(strings.TrimPrefix(text, `h"`), `"`)
		bytes, err := decodeHexBytes(inner)
		if err != nil {
			return nil, perror.Userf("invalid byte array literal %q: %w", text, err)
		}
		return ast.NewValByteArray(bytes, start, p.previousEndLoc()), nil
	default:
		return nil, perror.NewInvalidToken(start)
	}
}

func decodeHexBytes(hexDigits string) ([]byte, error) {
	if len(hexDigits)%2 != 0 {
		return nil, perror.Userf("odd number of hex digits")
	}
	out := make([]byte, len(hexDigits)/2)
	for i := 0; i < len(out); i++ {
		hi, ok1 := hexVal(hexDigits[2*i])
		lo, ok2 := hexVal(hexDigits[2*i+1])
		if !ok1 || !ok2 {
			return nil, perror.Userf("non-hex digit in byte array literal")
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func hexVal(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}
