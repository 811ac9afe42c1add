package parser

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/require"

	"github.com/pilo290/moveir/internal/ast"
)

func mustStructName(t *testing.T, name string) ast.StructName {
	t.Helper()
	sn, err := ast.NewStructName(name, 0, 0)
	require.NoError(t, err)
	return sn
}

func mustTypeVar(t *testing.T, name string) ast.TypeVar {
	t.Helper()
	tv, err := ast.NewTypeVar(name, 0, 0)
	require.NoError(t, err)
	return tv
}

func mustVar(t *testing.T, name string) ast.Var {
	t.Helper()
	v, err := ast.NewVar(name, 0, 0)
	require.NoError(t, err)
	return v
}

func unqualifiedStruct(name ast.StructName) ast.QualifiedStructIdent {
	return ast.NewQualifiedStructIdent(ast.ModuleName{}, false, name, 0, 0)
}

// Boundary scenario 1 (spec.md §8): a doubly-nested generic, "vector<vector<T>>",
// exercises the '>>' splitting that lets one closing token end two generic
// lists at once. parseType used to reject a bare (undotted) name
// applied to type actuals; this scenario is the reason it no longer does.
func TestBoundaryNestedGenericSplitsDoubleAngleBracket(t *testing.T) {
	mod, err := ParseModuleString("module M { struct S<T> { v: vector<vector<T>> } }")
	require.NoError(t, err)
	require.Len(t, mod.Structs, 1)
	require.Len(t, mod.Structs[0].Fields, 1)

	got := mod.Structs[0].Fields[0].Type
	inner := ast.NewTypeStruct(
		unqualifiedStruct(mustStructName(t, "vector")),
		[]ast.Type{ast.NewTypeParameter(mustTypeVar(t, "T"), 0, 0)},
		0, 0,
	)
	want := ast.NewTypeStruct(
		unqualifiedStruct(mustStructName(t, "vector")),
		[]ast.Type{inner},
		0, 0,
	)

	if diff := deep.Equal(got, want); diff != nil {
		t.Errorf("field type shape mismatch: %v", diff)
	}
}

// Boundary scenario 2: "assert(e, c);" desugars to "if (!e) { abort c; }"
// with no else branch. Exercises ast.ExpVar, added so a bare name used as
// an ordinary operand (rather than a pack or a move/copy target) parses at
// all — move/copy discipline is semantic analysis this parser leaves out
// of scope.
func TestBoundaryAssertDesugarsToIfNotAbort(t *testing.T) {
	stmt, err := ParseCmdString("assert(x == 1, 42);")
	require.NoError(t, err)

	ifElse, ok := stmt.(ast.StmtIfElse)
	require.True(t, ok, "expected StmtIfElse, got %T", stmt)
	require.Nil(t, ifElse.Else)

	not, ok := ifElse.Cond.(ast.ExpUnary)
	require.True(t, ok, "expected ExpUnary, got %T", ifElse.Cond)
	require.Equal(t, ast.OpNot, not.Op)

	eq, ok := not.Exp.(ast.ExpBinop)
	require.True(t, ok, "expected ExpBinop, got %T", not.Exp)
	require.Equal(t, ast.OpEq, eq.Op)

	v, ok := eq.Left.(ast.ExpVar)
	require.True(t, ok, "expected ExpVar, got %T", eq.Left)
	require.Equal(t, "x", v.Var.Name)

	one, ok := eq.Right.(ast.ExpValue)
	require.True(t, ok, "expected ExpValue, got %T", eq.Right)
	oneU64, ok := one.Val.(ast.ValU64)
	require.True(t, ok, "expected ValU64, got %T", one.Val)
	require.Equal(t, uint64(1), oneU64.Value)

	require.Len(t, ifElse.Then.Items, 1)
	abortStmt, ok := ifElse.Then.Items[0].(ast.StmtCmd)
	require.True(t, ok, "expected StmtCmd, got %T", ifElse.Then.Items[0])
	abort, ok := abortStmt.Cmd.(ast.CmdAbort)
	require.True(t, ok, "expected CmdAbort, got %T", abortStmt.Cmd)

	code, ok := abort.Code.(ast.ExpValue)
	require.True(t, ok, "expected ExpValue, got %T", abort.Code)
	codeU64, ok := code.Val.(ast.ValU64)
	require.True(t, ok, "expected ValU64, got %T", code.Val)
	require.Equal(t, uint64(42), codeU64.Value)
}

// Boundary scenario 3: "S { f } = g;" expands the shorthand field binding
// "f" to "f: f" in the destructuring pattern.
func TestBoundaryUnpackShorthandFieldBinding(t *testing.T) {
	stmt, err := ParseCmdString("S { f } = g;")
	require.NoError(t, err)

	cmdStmt, ok := stmt.(ast.StmtCmd)
	require.True(t, ok, "expected StmtCmd, got %T", stmt)
	unpack, ok := cmdStmt.Cmd.(ast.CmdUnpack)
	require.True(t, ok, "expected CmdUnpack, got %T", cmdStmt.Cmd)

	require.Equal(t, "S", unpack.Ident.Name.Name)
	require.False(t, unpack.Ident.Qualified)
	require.Len(t, unpack.Bindings, 1)
	require.Equal(t, "f", unpack.Bindings[0].Field.Name)
	require.Equal(t, "f", unpack.Bindings[0].Var.Name)

	value, ok := unpack.Value.(ast.ExpVar)
	require.True(t, ok, "expected ExpVar, got %T", unpack.Value)
	require.Equal(t, "g", value.Var.Name)
}

// Boundary scenario 4: "ensures a ==> b && c;" desugars the right-
// associative implication into "!a || (b && c)" rather than keeping its
// own SpecExpBinop variant (spec.md §4.6 — the verifier backends this
// spec language targets have no native implication operator).
func TestBoundarySpecImplicationDesugarsToNotOrAnd(t *testing.T) {
	src := "module M { public foo(): u64 ensures a ==> b && c; { return 0; } }"
	mod, err := ParseModuleString(src)
	require.NoError(t, err)
	require.Len(t, mod.Functions, 1)
	require.Len(t, mod.Functions[0].Specs, 1)

	cond := mod.Functions[0].Specs[0]
	require.Equal(t, ast.ConditionEnsures, cond.Kind)

	a := ast.NewSpecExpLocation(ast.NewLocFormal(mustVar(t, "a"), 0, 0), 0, 0)
	b := ast.NewSpecExpLocation(ast.NewLocFormal(mustVar(t, "b"), 0, 0), 0, 0)
	c := ast.NewSpecExpLocation(ast.NewLocFormal(mustVar(t, "c"), 0, 0), 0, 0)
	want := ast.NewSpecExpBinop(
		ast.OpOr,
		ast.NewSpecExpNot(a, 0, 0),
		ast.NewSpecExpBinop(ast.OpAnd, b, c, 0, 0),
		0, 0,
	)

	if diff := deep.Equal(cond.Exp, want); diff != nil {
		t.Errorf("desugared implication shape mismatch: %v", diff)
	}
}

// Boundary scenario 5: a bare "module M { }" program synthesizes an empty
// main script around it rather than requiring an explicit "modules: ...
// script: ..." section.
func TestBoundarySingleModuleProgramSynthesizesMainScript(t *testing.T) {
	program, err := ParseProgramString("module M { }")
	require.NoError(t, err)

	require.Len(t, program.Modules, 1)
	require.Equal(t, "M", program.Modules[0].Name.Name)

	require.Equal(t, "main", program.Script.Main.Name.Name)
	require.Equal(t, ast.VisibilityPublic, program.Script.Main.Visibility)
	require.NotNil(t, program.Script.Main.Body.Block)
	require.Len(t, program.Script.Main.Body.Block.Items, 1)

	ret, ok := program.Script.Main.Body.Block.Items[0].(ast.StmtCmd)
	require.True(t, ok, "expected StmtCmd, got %T", program.Script.Main.Body.Block.Items[0])
	cmdReturn, ok := ret.Cmd.(ast.CmdReturn)
	require.True(t, ok, "expected CmdReturn, got %T", ret.Cmd)
	require.Empty(t, cmdReturn.Values)
}

// Boundary scenario 6: spec.md §8 states "!a && b | c == d" parses as
// "(!a) && (b | (c == d))", reasoning that "==" (precedence 4) groups
// before "|" (precedence 5). That narrative contradicts its own
// precedence table, which assigns '|' a higher precedence than '==' (5 >
// 4) — "higher binds tighter" per the same table, and per syntax.rs's
// get_precedence. Under the table both this spec and the original agree
// on, "b | c" groups first: the correct parse is
// "(!a) && ((b | c) == d)", which is what this test asserts (see
// DESIGN.md's "Discrepancy noted" entry for boundary scenario 6).
func TestBoundaryPrecedenceClimbingGroupsBitOrTighterThanEquality(t *testing.T) {
	stmt, err := ParseCmdString("!a && b | c == d;")
	require.NoError(t, err)

	cmdStmt, ok := stmt.(ast.StmtCmd)
	require.True(t, ok, "expected StmtCmd, got %T", stmt)
	cmdExp, ok := cmdStmt.Cmd.(ast.CmdExp)
	require.True(t, ok, "expected CmdExp, got %T", cmdStmt.Cmd)

	a := ast.NewExpVar(mustVar(t, "a"), 0, 0)
	b := ast.NewExpVar(mustVar(t, "b"), 0, 0)
	c := ast.NewExpVar(mustVar(t, "c"), 0, 0)
	d := ast.NewExpVar(mustVar(t, "d"), 0, 0)
	want := ast.NewExpBinop(
		ast.OpAnd,
		ast.NewExpUnary(ast.OpNot, a, 0, 0),
		ast.NewExpBinop(
			ast.OpEq,
			ast.NewExpBinop(ast.OpBitOr, b, c, 0, 0),
			d,
			0, 0,
		),
		0, 0,
	)

	if diff := deep.Equal(cmdExp.Exp, want); diff != nil {
		t.Errorf("precedence grouping mismatch: %v", diff)
	}
}

// Span nesting: the top binary expression's span lies inside the
// statement's, and the spans of its two operands lie inside its own.
func TestBoundarySpansNestInsideParent(t *testing.T) {
	stmt, err := ParseCmdString("!a && b | c == d;")
	require.NoError(t, err)

	cmdStmt := stmt.(ast.StmtCmd)
	cmdExp := cmdStmt.Cmd.(ast.CmdExp)
	top := cmdExp.Exp.(ast.ExpBinop)
	require.LessOrEqual(t, stmt.Loc().Start, top.Loc().Start)
	require.GreaterOrEqual(t, stmt.Loc().End, top.Loc().End)

	left := top.Left.(ast.ExpUnary)
	require.GreaterOrEqual(t, left.Loc().Start, top.Loc().Start)
	require.LessOrEqual(t, left.Loc().End, top.Loc().End)

	right := top.Right.(ast.ExpBinop)
	require.GreaterOrEqual(t, right.Loc().Start, top.Loc().Start)
	require.LessOrEqual(t, right.Loc().End, top.Loc().End)
}

// parseSpecCondition raises SpecMode only for the duration of its own
// embedded expression; a later function's signature must see the lexer's
// greedy name/type fusion restored.
func TestBoundarySpecModeRestoredAfterCondition(t *testing.T) {
	src := "module M { public foo(): u64 ensures a ==> b && c; { return 0; } " +
		"public bar<T>(x: T): vector<T> { return x; } }"
	mod, err := ParseModuleString(src)
	require.NoError(t, err)
	require.Len(t, mod.Functions, 2)

	bar := mod.Functions[1]
	require.Len(t, bar.Signature.ReturnTypes, 1)
	_, ok := bar.Signature.ReturnTypes[0].(ast.TypeStruct)
	require.True(t, ok, "expected TypeStruct (vector<T> fused via NameBeginTy), got %T", bar.Signature.ReturnTypes[0])
}
