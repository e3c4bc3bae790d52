package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uwu-lang/uwuc/internal/ast"
)

func TestProgramRendersLetAsConst(t *testing.T) {
	prog := &ast.Program{Body: []ast.Expr{
		&ast.Let{ID: "x", Init: &ast.Num{Value: 42}},
	}}
	out := Program(prog)
	assert.Contains(t, out, "const x = 42;")
}

func TestFunctionDeclCurriesParams(t *testing.T) {
	def := &ast.Def{
		ID:     "add",
		Params: []*ast.Param{{ID: "a"}, {ID: "b"}},
		Body: &ast.Do{Body: &ast.Block{Exprs: []ast.Expr{
			&ast.BinaryExpr{Op: "+", Left: &ast.Identifier{Name: "a"}, Right: &ast.Identifier{Name: "b"}},
		}}},
	}
	out := genFunctionDecl(def)
	assert.Contains(t, out, "const add = (a)=>(b)=>{")
	assert.Contains(t, out, "return (a + b);")
}

func TestZeroParamDefIsNiladic(t *testing.T) {
	def := &ast.Def{ID: "zero", Body: &ast.Do{Body: &ast.Block{Exprs: []ast.Expr{&ast.Num{Value: 0}}}}}
	out := genFunctionDecl(def)
	assert.Contains(t, out, "const zero = ()=>{")
}

func TestVariantCallEncodesTagAndFields(t *testing.T) {
	n := &ast.VariantCall{Name: "Some", Args: []ast.Expr{&ast.Num{Value: 1}}}
	out := genExpr(n)
	assert.Equal(t, `{TAG: "Some", _0: 1}`, out)
}

func TestNullaryVariantCallHasNoFields(t *testing.T) {
	n := &ast.VariantCall{Name: "None"}
	out := genExpr(n)
	assert.Equal(t, `{TAG: "None"}`, out)
}

func TestBinaryOperatorMapping(t *testing.T) {
	cases := []struct {
		op   string
		want string
	}{
		{"==", "==="},
		{"!=", "!=="},
		{"++", "+"},
	}
	for _, c := range cases {
		n := &ast.BinaryExpr{Op: c.op, Left: &ast.Num{Value: 1}, Right: &ast.Num{Value: 2}}
		out := genExpr(n)
		assert.Contains(t, out, c.want)
	}
}

func TestIntegerDivisionFloors(t *testing.T) {
	n := &ast.BinaryExpr{Op: "//", Left: &ast.Num{Value: 7}, Right: &ast.Num{Value: 2}}
	out := genExpr(n)
	assert.Equal(t, "Math.floor(7 / 2)", out)
}

func TestPipeOperatorEmitsConcat(t *testing.T) {
	n := &ast.BinaryExpr{Op: "|", Left: &ast.Identifier{Name: "xs"}, Right: &ast.Identifier{Name: "ys"}}
	out := genExpr(n)
	assert.Equal(t, "xs.concat(ys)", out)
}

func TestCurriedCallChains(t *testing.T) {
	n := &ast.Call{Callee: &ast.Call{Callee: &ast.Identifier{Name: "f"}, Args: []ast.Expr{&ast.Num{Value: 1}}}, Args: []ast.Expr{&ast.Num{Value: 2}}}
	out := genExpr(n)
	assert.Equal(t, "f(1)(2)", out)
}

func TestPrintAndUnitIdentifiersAreSpecialCased(t *testing.T) {
	assert.Equal(t, "console.log", genExpr(&ast.Identifier{Name: "print"}))
	assert.Equal(t, "undefined", genExpr(&ast.Identifier{Name: "unit"}))
}

func TestCaseOfLowersToTagSwitch(t *testing.T) {
	n := &ast.CaseOf{
		Scrutinee: &ast.Identifier{Name: "opt"},
		Cases: []*ast.Case{
			{Pattern: &ast.MatchVariant{Name: "Some", SubPatterns: []ast.Pattern{&ast.MatchAs{Name: "v"}}},
				Body: &ast.Do{Body: &ast.Block{Exprs: []ast.Expr{&ast.Identifier{Name: "v"}}}}},
			{Pattern: &ast.MatchVariant{Name: "None"},
				Body: &ast.Do{Body: &ast.Block{Exprs: []ast.Expr{&ast.Num{Value: 0}}}}},
		},
	}
	out := genExpr(n)
	assert.True(t, strings.Contains(out, `$.TAG === "Some"`))
	assert.True(t, strings.Contains(out, "const $_0 = $._0;"))
}

func TestExternalEmitsVerbatim(t *testing.T) {
	n := &ast.External{Verbatim: "Math.random()"}
	assert.Equal(t, "Math.random()", genExpr(n))
}

func TestUnhoistedDoPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected a panic for an unhoisted Do in expression position")
		}
	}()
	genExpr(&ast.Do{Body: &ast.Block{}})
}
