package pipeline

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uwu-lang/uwuc/internal/errors"
)

func compile(t *testing.T, src string) *Result {
	t.Helper()
	return Run(Config{Mode: ModeEmit}, Source{Code: src, Filename: "<test>.uwu"})
}

func TestLetBindingCodegen(t *testing.T) {
	res := compile(t, "x = 1")
	require.False(t, res.Failed(), res.Errors)
	assert.Contains(t, res.JS, "const x = 1;")
}

func TestGenericIdInstantiatedAtTwoTypes(t *testing.T) {
	res := compile(t, `
def myId<A>(x: A): A do x end
n = myId(1)
s = myId("hi")
n
`)
	require.False(t, res.Failed(), res.Errors)
	assert.Equal(t, "Num", res.Type.String())
}

func TestNestedOptionPatternMatch(t *testing.T) {
	res := compile(t, `
pair = Some(Some(1))
case pair of
  Some(inner) do
    case inner of
      Some(v) do v end
      None do 0 end
    end
  end
  None do 0 end
end
`)
	require.False(t, res.Failed(), res.Errors)
	assert.Equal(t, "Num", res.Type.String())
	assert.Contains(t, res.JS, `TAG === "Some"`)
}

func TestEnumPairDestructuring(t *testing.T) {
	res := compile(t, `
enum Pair<A, B> = MkPair(A, B) end
p = MkPair(1, "x")
case p of
  MkPair(a, b) do a end
end
`)
	require.False(t, res.Failed(), res.Errors)
	assert.Equal(t, "Num", res.Type.String())
}

func TestNonExhaustiveOptionOfOptionWarns(t *testing.T) {
	res := compile(t, `
pair = Some(Some(1))
case pair of
  Some(inner) do 1 end
end
`)
	require.False(t, res.Failed(), res.Errors)
	require.Len(t, res.Warnings, 1)
	var nem *errors.NonExhaustiveMatch
	require.ErrorAs(t, res.Warnings[0], &nem)
}

func TestTypeErrorRaisesUnifyFail(t *testing.T) {
	res := compile(t, `do 1 end: Str`)
	require.True(t, res.Failed())
	require.Len(t, res.Errors, 1)
	var uf *errors.UnifyFail
	assert.ErrorAs(t, res.Errors[0], &uf)
}

func TestNestedDoInDefBodyHoistingAndCodegen(t *testing.T) {
	res := compile(t, `
def adder(a: Num): Num do
  b = (do c = a + 1 c end)
  b
end
adder(5)
`)
	require.False(t, res.Failed(), res.Errors)
	assert.Contains(t, res.JS, "const adder = (a)=>{")
	assert.Contains(t, res.JS, "const c = (a + 1);")
}

func TestParseErrorStopsBeforeInference(t *testing.T) {
	res := compile(t, "x = ")
	require.True(t, res.Failed())
	var pe *errors.ParseError
	assert.ErrorAs(t, res.Errors[0], &pe)
}

func TestUnboundIdentifierError(t *testing.T) {
	res := compile(t, "y")
	require.True(t, res.Failed())
	var ui *errors.UnboundIdentifier
	assert.ErrorAs(t, res.Errors[0], &ui)
}

func TestExactCodegenOutputForSimpleDef(t *testing.T) {
	res := compile(t, "def add(a: Num, b: Num): Num do a + b end")
	require.False(t, res.Failed(), res.Errors)

	want := "const add = (a)=>(b)=>{\nreturn (a + b);\n};"
	if diff := cmp.Diff(want, strings.TrimSpace(res.JS)); diff != "" {
		t.Errorf("codegen mismatch (-want +got):\n%s", diff)
	}
}

func TestModeCheckStopsBeforeCodegen(t *testing.T) {
	res := Run(Config{Mode: ModeCheck}, Source{Code: "1 + 1", Filename: "<test>.uwu"})
	require.False(t, res.Failed())
	assert.Empty(t, res.JS)
	assert.Equal(t, "Num", res.Type.String())
}
