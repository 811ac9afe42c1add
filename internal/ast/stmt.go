package ast

// LValue is the target of an assignment: a bare local, or a dereferenced
// reference ("*e = ...").
type LValue interface {
	Node
	isLValue()
}

type LValueVar struct {
	span
	Var Var
}

type LValueMutate struct {
	span
	Exp Exp
}

func (LValueVar) isLValue()    {}
func (LValueMutate) isLValue() {}

func NewLValueVar(v Var, start, end int) LValueVar { return LValueVar{newSpan(start, end), v} }
func NewLValueMutate(e Exp, start, end int) LValueMutate {
	return LValueMutate{newSpan(start, end), e}
}

// FieldBinding is one entry of an unpack's destructuring pattern: "f: x"
// or its shorthand "f" (meaning "f: f", spec.md §4.3).
type FieldBinding struct {
	span
	Field Field
	Var   Var
}

func NewFieldBinding(f Field, v Var, start, end int) FieldBinding {
	return FieldBinding{span: newSpan(start, end), Field: f, Var: v}
}

// Cmd is a single non-control-flow instruction.
type Cmd interface {
	Node
	isCmd()
}

type CmdReturn struct {
	span
	Values []Exp
}

type CmdAbort struct {
	span
	Code Exp // nil means a bare "abort;"
}

type CmdAssign struct {
	span
	LValues []LValue
	Value   Exp
}

type CmdUnpack struct {
	span
	Ident    QualifiedStructIdent
	Bindings []FieldBinding
	Value    Exp
}

type CmdContinue struct{ span }
type CmdBreak struct{ span }

// CmdExp is a bare expression used as a statement (typically a call whose
// result is discarded).
type CmdExp struct {
	span
	Exp Exp
}

func (CmdReturn) isCmd()   {}
func (CmdAbort) isCmd()    {}
func (CmdAssign) isCmd()   {}
func (CmdUnpack) isCmd()   {}
func (CmdContinue) isCmd() {}
func (CmdBreak) isCmd()    {}
func (CmdExp) isCmd()      {}

func NewCmdReturn(values []Exp, start, end int) CmdReturn {
	return CmdReturn{span: newSpan(start, end), Values: values}
}

func NewCmdAbort(code Exp, start, end int) CmdAbort { return CmdAbort{newSpan(start, end), code} }

func NewCmdAssign(lvalues []LValue, value Exp, start, end int) CmdAssign {
	return CmdAssign{span: newSpan(start, end), LValues: lvalues, Value: value}
}

func NewCmdUnpack(ident QualifiedStructIdent, bindings []FieldBinding, value Exp, start, end int) CmdUnpack {
	return CmdUnpack{span: newSpan(start, end), Ident: ident, Bindings: bindings, Value: value}
}

func NewCmdContinue(start, end int) CmdContinue { return CmdContinue{newSpan(start, end)} }
func NewCmdBreak(start, end int) CmdBreak       { return CmdBreak{newSpan(start, end)} }
func NewCmdExp(e Exp, start, end int) CmdExp    { return CmdExp{newSpan(start, end), e} }

// Block is a brace-delimited, ordered sequence of statements. In a
// function body, the "let" bindings come first, as a leading run, and
// share this one sequence with the statements that follow them; other
// blocks hold no "let" bindings.
type Block struct {
	span
	Items []Statement
}

func NewBlock(items []Statement, start, end int) Block {
	return Block{span: newSpan(start, end), Items: items}
}

// LocalDecl is a "let x [: T] [= e];" binding.
type LocalDecl struct {
	span
	Name Var
	Type Type // nil if untyped
	Init Exp  // nil if "let x;" with no initializer
}

func NewLocalDecl(name Var, typ Type, init Exp, start, end int) LocalDecl {
	return LocalDecl{span: newSpan(start, end), Name: name, Type: typ, Init: init}
}

// Statement is a Cmd or a control-flow construct.
type Statement interface {
	Node
	isStatement()
}

type StmtCmd struct {
	span
	Cmd Cmd
}

// StmtLet is a "let x [: T] [= e];" binding, one of the leading run of
// bindings at the start of a function body's Block.
type StmtLet struct {
	span
	Decl LocalDecl
}

// StmtBlock is a bare nested "{ ... }" used directly as a statement.
type StmtBlock struct {
	span
	Block Block
}

// StmtIfElse is "if (e) block [else block]". The assert desugaring
// (spec.md §4.3) produces exactly this shape: the condition is "!e", the
// then-branch aborts with the asserted error code, and there is no else.
type StmtIfElse struct {
	span
	Cond Exp
	Then Block
	Else *Block
}

type StmtWhile struct {
	span
	Cond Exp
	Body Block
}

type StmtLoop struct {
	span
	Body Block
}

func (StmtCmd) isStatement()    {}
func (StmtLet) isStatement()    {}
func (StmtBlock) isStatement()  {}
func (StmtIfElse) isStatement() {}
func (StmtWhile) isStatement()  {}
func (StmtLoop) isStatement()   {}

func NewStmtCmd(c Cmd, start, end int) StmtCmd { return StmtCmd{newSpan(start, end), c} }

func NewStmtLet(decl LocalDecl, start, end int) StmtLet { return StmtLet{newSpan(start, end), decl} }

func NewStmtBlock(b Block, start, end int) StmtBlock { return StmtBlock{newSpan(start, end), b} }

func NewStmtIfElse(cond Exp, then Block, els *Block, start, end int) StmtIfElse {
	return StmtIfElse{span: newSpan(start, end), Cond: cond, Then: then, Else: els}
}

func NewStmtWhile(cond Exp, body Block, start, end int) StmtWhile {
	return StmtWhile{span: newSpan(start, end), Cond: cond, Body: body}
}

func NewStmtLoop(body Block, start, end int) StmtLoop {
	return StmtLoop{span: newSpan(start, end), Body: body}
}
