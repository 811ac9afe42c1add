package ast

import "math/big"

// CopyableVal is a literal value: one of the few types the grammar can
// write down directly (spec.md §4.2 "literal terms").
type CopyableVal interface {
	Node
	isCopyableVal()
}

type ValAddress struct {
	span
	Address AccountAddress
}
type ValBool struct {
	span
	Value bool
}
type ValU8 struct {
	span
	Value uint8
}
type ValU64 struct {
	span
	Value uint64
}
type ValU128 struct {
	span
	Value *big.Int
}
type ValByteArray struct {
	span
	Bytes []byte
}

func (ValAddress) isCopyableVal()   {}
func (ValBool) isCopyableVal()      {}
func (ValU8) isCopyableVal()        {}
func (ValU64) isCopyableVal()       {}
func (ValU128) isCopyableVal()      {}
func (ValByteArray) isCopyableVal() {}

func NewValAddress(a AccountAddress, start, end int) ValAddress { return ValAddress{newSpan(start, end), a} }
func NewValBool(v bool, start, end int) ValBool                 { return ValBool{newSpan(start, end), v} }
func NewValU8(v uint8, start, end int) ValU8                    { return ValU8{newSpan(start, end), v} }
func NewValU64(v uint64, start, end int) ValU64                 { return ValU64{newSpan(start, end), v} }
func NewValU128(v *big.Int, start, end int) ValU128             { return ValU128{newSpan(start, end), v} }
func NewValByteArray(b []byte, start, end int) ValByteArray     { return ValByteArray{newSpan(start, end), b} }

// BinOp enumerates the binary operators, ordered to match spec.md §4.2's
// precedence table (highest precedence last in this list is irrelevant;
// the parser's own precedence table is authoritative — this is just the
// set of operator tags).
type BinOp int

const (
	OpImplies BinOp = iota // ==>
	OpOr                   // ||
	OpAnd                  // &&
	OpEq                   // ==
	OpNeq                  // !=
	OpLt                   // <
	OpGt                   // >
	OpLe                   // <=
	OpGe                   // >=
	OpBitOr                // |
	OpBitXor               // ^
	OpBitAnd               // &
	OpShl                  // <<
	OpShr                  // >>
	OpAdd                  // +
	OpSub                  // -
	OpMul                  // *
	OpDiv                  // /
	OpMod                  // %
)

// UnaryOp enumerates the prefix unary operators.
type UnaryOp int

const (
	OpNot UnaryOp = iota // !
)

// Builtin enumerates the built-in pseudo-functions recognized by keyword
// (spec.md §4.2, syntax.rs parse_builtin): exists<T>(addr),
// borrow_global[_mut]<T>(addr), get_txn_sender(), move_from<T>(addr),
// move_to_sender<T>(v), freeze(ref), to_u8/to_u64/to_u128(v).
type Builtin int

const (
	BuiltinExists Builtin = iota
	BuiltinBorrowGlobal
	BuiltinBorrowGlobalMut
	BuiltinGetTxnSender
	BuiltinMoveFrom
	BuiltinMoveToSender
	BuiltinFreeze
	BuiltinToU8
	BuiltinToU64
	BuiltinToU128
)

// FunctionCall is the callee of a call expression: either a builtin or a
// user-defined function, optionally qualified by the module it lives in
// (nil Module means "defined in the enclosing module").
type FunctionCall struct {
	span
	IsBuiltin    bool
	Builtin      Builtin
	Module       *ModuleName
	Name         FunctionName
	TypeActuals  []Type
}

func NewBuiltinCall(b Builtin, typeActuals []Type, start, end int) FunctionCall {
	return FunctionCall{span: newSpan(start, end), IsBuiltin: true, Builtin: b, TypeActuals: typeActuals}
}

func NewModuleFunctionCall(module *ModuleName, name FunctionName, typeActuals []Type, start, end int) FunctionCall {
	return FunctionCall{span: newSpan(start, end), Module: module, Name: name, TypeActuals: typeActuals}
}

// FieldExp is one "field: expr" entry of a pack expression.
type FieldExp struct {
	span
	Name Field
	Exp  Exp
}

func NewFieldExp(name Field, e Exp, start, end int) FieldExp {
	return FieldExp{span: newSpan(start, end), Name: name, Exp: e}
}

// Exp is any expression production.
type Exp interface {
	Node
	isExp()
}

type ExpValue struct {
	span
	Val CopyableVal
}

// ExpVar reads a local variable's value without the explicit move/copy
// ownership annotation (spec.md §8 boundary scenarios 2 and 6 use bare
// names as ordinary readable terms; enforcing move/copy resource
// discipline on that read is the semantic analysis this parser leaves out
// of scope, per spec.md §1).
type ExpVar struct {
	span
	Var Var
}

// ExpMove reads a local variable and consumes its ownership ("move(x)").
type ExpMove struct {
	span
	Var Var
}

// ExpCopy reads a local variable without consuming it ("copy(x)").
type ExpCopy struct {
	span
	Var Var
}

// ExpBorrowLocal is "&x" / "&mut x".
type ExpBorrowLocal struct {
	span
	Mutable bool
	Var     Var
}

// ExpBorrowField is "&e.f" / "&mut e.f".
type ExpBorrowField struct {
	span
	Mutable bool
	Exp     Exp
	Field   Field
}

// ExpPack is "Module.Struct<T...>{ f1: e1, f2: e2, ... }".
type ExpPack struct {
	span
	Ident       QualifiedStructIdent
	TypeActuals []Type
	Fields      []FieldExp
}

// ExpCall is a call to a builtin or user function.
type ExpCall struct {
	span
	Callee FunctionCall
	Args   []Exp
}

// ExpDereference is "*e".
type ExpDereference struct {
	span
	Exp Exp
}

type ExpUnary struct {
	span
	Op  UnaryOp
	Exp Exp
}

type ExpBinop struct {
	span
	Op    BinOp
	Left  Exp
	Right Exp
}

// ExpList is a parenthesized, comma-separated expression list: "()" or
// "(e1, e2, ...)". The parser never builds a single-element ExpList: "(e)"
// is plain grouping and parses as e itself.
type ExpList struct {
	span
	Elements []Exp
}

func (ExpValue) isExp()        {}
func (ExpVar) isExp()          {}
func (ExpMove) isExp()         {}
func (ExpCopy) isExp()         {}
func (ExpBorrowLocal) isExp()  {}
func (ExpBorrowField) isExp()  {}
func (ExpPack) isExp()         {}
func (ExpCall) isExp()         {}
func (ExpDereference) isExp()  {}
func (ExpUnary) isExp()        {}
func (ExpBinop) isExp()        {}
func (ExpList) isExp()         {}

func NewExpValue(v CopyableVal, start, end int) ExpValue { return ExpValue{newSpan(start, end), v} }
func NewExpVar(v Var, start, end int) ExpVar             { return ExpVar{newSpan(start, end), v} }
func NewExpMove(v Var, start, end int) ExpMove           { return ExpMove{newSpan(start, end), v} }
func NewExpCopy(v Var, start, end int) ExpCopy           { return ExpCopy{newSpan(start, end), v} }

func NewExpBorrowLocal(mutable bool, v Var, start, end int) ExpBorrowLocal {
	return ExpBorrowLocal{newSpan(start, end), mutable, v}
}

func NewExpBorrowField(mutable bool, e Exp, f Field, start, end int) ExpBorrowField {
	return ExpBorrowField{newSpan(start, end), mutable, e, f}
}

func NewExpPack(ident QualifiedStructIdent, typeActuals []Type, fields []FieldExp, start, end int) ExpPack {
	return ExpPack{span: newSpan(start, end), Ident: ident, TypeActuals: typeActuals, Fields: fields}
}

func NewExpCall(callee FunctionCall, args []Exp, start, end int) ExpCall {
	return ExpCall{span: newSpan(start, end), Callee: callee, Args: args}
}

func NewExpDereference(e Exp, start, end int) ExpDereference { return ExpDereference{newSpan(start, end), e} }

func NewExpUnary(op UnaryOp, e Exp, start, end int) ExpUnary {
	return ExpUnary{newSpan(start, end), op, e}
}

func NewExpBinop(op BinOp, left, right Exp, start, end int) ExpBinop {
	return ExpBinop{span: newSpan(start, end), Op: op, Left: left, Right: right}
}

func NewExpList(elements []Exp, start, end int) ExpList {
	return ExpList{span: newSpan(start, end), Elements: elements}
}
