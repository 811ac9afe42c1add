package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []Token {
	t.Helper()
	l := New(src)
	var toks []Token
	for {
		require.NoError(t, l.Advance())
		toks = append(toks, l.cur)
		if l.cur.Kind == EOF {
			break
		}
	}
	return toks
}

func TestLexerKeywordsAndPlainNames(t *testing.T) {
	toks := scanAll(t, "module Foo native struct resource")
	kinds := make([]Tok, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	require.Equal(t, []Tok{Module, NameValue, Native, Struct, Resource, EOF}, kinds)
	require.Equal(t, "Foo", toks[1].Content)
}

func TestLexerNameBeginTyFusion(t *testing.T) {
	toks := scanAll(t, "Vec<T>")
	require.Equal(t, NameBeginTyValue, toks[0].Kind)
	require.Equal(t, "Vec<", toks[0].Content)
	require.Equal(t, NameValue, toks[1].Kind)
	require.Equal(t, Greater, toks[2].Kind)
}

func TestLexerDotNameFusion(t *testing.T) {
	toks := scanAll(t, "M.Coin")
	require.Equal(t, DotNameValue, toks[0].Kind)
	require.Equal(t, "M.Coin", toks[0].Content)
}

func TestLexerSpecModeSuppressesFusion(t *testing.T) {
	l := New("x.f")
	l.SpecMode = true
	require.NoError(t, l.Advance())
	require.Equal(t, NameValue, l.Peek())
	require.Equal(t, "x", l.Content())
	require.NoError(t, l.Advance())
	require.Equal(t, Period, l.Peek())
	require.NoError(t, l.Advance())
	require.Equal(t, NameValue, l.Peek())
	require.Equal(t, "f", l.Content())
}

func TestLexerAccountAddressNeverFuses(t *testing.T) {
	toks := scanAll(t, "0x1.M")
	require.Equal(t, AccountAddressValue, toks[0].Kind)
	require.Equal(t, "0x1", toks[0].Content)
	require.Equal(t, Period, toks[1].Kind)
	require.Equal(t, NameValue, toks[2].Kind)
}

func TestLexerNumberSuffixes(t *testing.T) {
	toks := scanAll(t, "1 1u8 1u64 1u128")
	require.Equal(t, U64Value, toks[0].Kind)
	require.Equal(t, U8Value, toks[1].Kind)
	require.Equal(t, U64Value, toks[2].Kind)
	require.Equal(t, U128Value, toks[3].Kind)
}

func TestLexerByteArrayLiteral(t *testing.T) {
	toks := scanAll(t, `h"CAFE"`)
	require.Equal(t, ByteArrayValue, toks[0].Kind)
	require.Equal(t, `h"CAFE"`, toks[0].Content)
}

func TestLexerAmpMutVsAmpAmp(t *testing.T) {
	toks := scanAll(t, "&mut x && y")
	require.Equal(t, AmpMut, toks[0].Kind)
	require.Equal(t, NameValue, toks[1].Kind)
	require.Equal(t, AmpAmp, toks[2].Kind)
}

func TestLexerLookaheadDoesNotConsume(t *testing.T) {
	l := New("foo bar")
	require.NoError(t, l.Advance())
	require.Equal(t, "foo", l.Content())
	la, err := l.Lookahead()
	require.NoError(t, err)
	require.Equal(t, NameValue, la)
	require.Equal(t, "foo", l.Content(), "Lookahead must not move the current token")
	require.NoError(t, l.Advance())
	require.Equal(t, "bar", l.Content())
}

func TestLexerReplaceTokenSplitsShiftRight(t *testing.T) {
	l := New(">>")
	require.NoError(t, l.Advance())
	require.Equal(t, GreaterGreater, l.Peek())
	l.ReplaceToken(Greater, 1)
	require.Equal(t, Greater, l.Peek())
	require.Equal(t, ">", l.Content())
	require.NoError(t, l.Advance())
	require.Equal(t, Greater, l.Peek())
}

func TestLexerCommentsAreSkipped(t *testing.T) {
	toks := scanAll(t, "x // trailing comment\n/* block */ y")
	require.Equal(t, NameValue, toks[0].Kind)
	require.Equal(t, "x", toks[0].Content)
	require.Equal(t, NameValue, toks[1].Kind)
	require.Equal(t, "y", toks[1].Content)
}
