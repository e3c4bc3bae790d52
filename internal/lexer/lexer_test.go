package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenize(t *testing.T, input string) []Token {
	t.Helper()
	l := New(input, "<test>")
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

func TestSimpleLetExpression(t *testing.T) {
	toks := tokenize(t, "x = 1 + 2")
	got := make([]TokenType, len(toks))
	for i, tk := range toks {
		got[i] = tk.Type
	}
	assert.Equal(t, []TokenType{IDENT, ASSIGN, INT, PLUS, INT, EOF}, got)
}

func TestTwoCharOperators(t *testing.T) {
	cases := []struct {
		src  string
		want TokenType
	}{
		{"==", EQ}, {"!=", NEQ}, {"<=", LTE}, {">=", GTE},
		{"&&", AND}, {"||", OR}, {"++", APPEND}, {"//", DSLASH},
	}
	for _, c := range cases {
		toks := tokenize(t, c.src)
		require.Len(t, toks, 2) // operator + EOF
		assert.Equal(t, c.want, toks[0].Type, c.src)
	}
}

func TestSingleCharFallbackWhenNoMatch(t *testing.T) {
	toks := tokenize(t, "< >")
	assert.Equal(t, LT, toks[0].Type)
	assert.Equal(t, GT, toks[1].Type)
}

func TestKeywordsVsIdentifiers(t *testing.T) {
	toks := tokenize(t, "do end if then elif else def case of enum not myVar MyType")
	want := []TokenType{DO, END, IF, THEN, ELIF, ELSE, DEF, CASE, OF, ENUM, NOT, IDENT, TYPE_IDENT, EOF}
	got := make([]TokenType, len(toks))
	for i, tk := range toks {
		got[i] = tk.Type
	}
	assert.Equal(t, want, got)
}

func TestStringLiteralEscapes(t *testing.T) {
	toks := tokenize(t, `"a\nb\"c"`)
	require.Equal(t, STRING, toks[0].Type)
	assert.Equal(t, "a\nb\"c", toks[0].Literal)
}

func TestExternalVerbatimSpan(t *testing.T) {
	toks := tokenize(t, "`Math.random()`")
	require.Equal(t, EXTERNAL, toks[0].Type)
	assert.Equal(t, "Math.random()", toks[0].Literal)
}

func TestIntVsFloat(t *testing.T) {
	toks := tokenize(t, "1 1.5")
	require.GreaterOrEqual(t, len(toks), 2)
	assert.Equal(t, INT, toks[0].Type)
	assert.Equal(t, FLOAT, toks[1].Type)
}

func TestLineCommentsAreSkipped(t *testing.T) {
	toks := tokenize(t, "x = 1 # trailing comment\ny = 2")
	got := make([]TokenType, 0, len(toks))
	for _, tk := range toks {
		got = append(got, tk.Type)
	}
	assert.Equal(t, []TokenType{IDENT, ASSIGN, INT, IDENT, ASSIGN, INT, EOF}, got)
}

func TestLineTracking(t *testing.T) {
	toks := tokenize(t, "x\ny")
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)
}

func TestPipeToken(t *testing.T) {
	toks := tokenize(t, "|")
	assert.Equal(t, PIPE, toks[0].Type)
}
