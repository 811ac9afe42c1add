package ast

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewVarRejectsEmptyName(t *testing.T) {
	_, err := NewVar("", 0, 0)
	require.Error(t, err)
}

func TestNewVarAcceptsNonEmptyName(t *testing.T) {
	v, err := NewVar("x", 4, 5)
	require.NoError(t, err)
	require.Equal(t, "x", v.Name)
	require.Equal(t, 4, v.Loc().Start)
	require.Equal(t, 5, v.Loc().End)
}

func TestNewFieldRejectsEmptyName(t *testing.T) {
	_, err := NewField("", 0, 0)
	require.Error(t, err)
}

func TestNewTypeVarRejectsEmptyName(t *testing.T) {
	_, err := NewTypeVar("", 0, 0)
	require.Error(t, err)
}

func TestNewModuleNameRejectsEmptyName(t *testing.T) {
	_, err := NewModuleName("", 0, 0)
	require.Error(t, err)
}

func TestNewStructNameRejectsEmptyName(t *testing.T) {
	_, err := NewStructName("", 0, 0)
	require.Error(t, err)
}

func TestNewFunctionNameRejectsEmptyName(t *testing.T) {
	_, err := NewFunctionName("", 0, 0)
	require.Error(t, err)
}

func TestNewAccountAddressNormalizesCaseAndStripsPrefix(t *testing.T) {
	addr, err := NewAccountAddress("0xCAFE", 0, 6)
	require.NoError(t, err)
	require.Equal(t, "cafe", addr.Hex)
	require.Equal(t, "0xcafe", addr.String())
}

func TestNewAccountAddressAcceptsUppercaseXPrefix(t *testing.T) {
	addr, err := NewAccountAddress("0X1", 0, 3)
	require.NoError(t, err)
	require.Equal(t, "1", addr.Hex)
}

func TestNewAccountAddressRejectsMissingPrefix(t *testing.T) {
	_, err := NewAccountAddress("1Bee", 0, 4)
	require.Error(t, err)
}

func TestNewAccountAddressRejectsNoDigits(t *testing.T) {
	_, err := NewAccountAddress("0x", 0, 2)
	require.Error(t, err)
}

func TestNewAccountAddressRejectsNonHexDigit(t *testing.T) {
	_, err := NewAccountAddress("0xZZ", 0, 4)
	require.Error(t, err)
}

func TestNewSpanRejectsInvertedRange(t *testing.T) {
	require.Panics(t, func() {
		NewVar("x", 5, 4)
	})
}

func TestBlockPreservesStatementOrder(t *testing.T) {
	d1, err := NewVar("a", 0, 1)
	require.NoError(t, err)
	d2, err := NewVar("b", 2, 3)
	require.NoError(t, err)

	s1 := NewStmtLet(NewLocalDecl(d1, nil, nil, 0, 1), 0, 1)
	s2 := NewStmtLet(NewLocalDecl(d2, nil, nil, 2, 3), 2, 3)
	block := NewBlock([]Statement{s1, s2}, 0, 3)

	require.Len(t, block.Items, 2)
	first, ok := block.Items[0].(StmtLet)
	require.True(t, ok)
	require.Equal(t, "a", first.Decl.Name.Name)
	second, ok := block.Items[1].(StmtLet)
	require.True(t, ok)
	require.Equal(t, "b", second.Decl.Name.Name)
}

func TestCmdAbortNilCodeMeansBareAbort(t *testing.T) {
	c := NewCmdAbort(nil, 0, 6)
	require.Nil(t, c.Code)
}

func TestStmtIfElseWithoutElseHasNilElse(t *testing.T) {
	then := NewBlock(nil, 0, 0)
	s := NewStmtIfElse(nil, then, nil, 0, 0)
	require.Nil(t, s.Else)
}
