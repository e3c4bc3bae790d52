package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uwu-lang/uwuc/internal/ast"
	"github.com/uwu-lang/uwuc/internal/errors"
	"github.com/uwu-lang/uwuc/internal/types"
)

func numDo(v int64) *ast.Do {
	return &ast.Do{Pos: pos(), Body: &ast.Block{Pos: pos(), Exprs: []ast.Expr{&ast.Num{Value: v, Pos: pos()}}}}
}

func TestCaseOfExhaustiveOptionNoWarning(t *testing.T) {
	c, ctx := newEnv()
	prog := &ast.Program{Pos: pos(), Body: []ast.Expr{
		&ast.CaseOf{Pos: pos(), Scrutinee: &ast.VariantCall{Name: "Some", Pos: pos(), Args: []ast.Expr{&ast.Num{Value: 1, Pos: pos()}}},
			Cases: []*ast.Case{
				{Pos: pos(), Pattern: &ast.MatchVariant{Name: "Some", Pos: pos(), SubPatterns: []ast.Pattern{&ast.MatchAs{Name: "x", Pos: pos()}}}, Body: numDo(1)},
				{Pos: pos(), Pattern: &ast.MatchVariant{Name: "None", Pos: pos()}, Body: numDo(0)},
			},
		},
	}}
	_, ty, err := types.InferProgram(c, types.Substitution{}, ctx, prog)
	require.NoError(t, err)
	assert.Equal(t, "Num", ty.String())
	assert.Empty(t, c.Warnings)
}

func TestCaseOfNonExhaustiveWarns(t *testing.T) {
	c, ctx := newEnv()
	prog := &ast.Program{Pos: pos(), Body: []ast.Expr{
		&ast.CaseOf{Pos: pos(), Scrutinee: &ast.VariantCall{Name: "Some", Pos: pos(), Args: []ast.Expr{&ast.Num{Value: 1, Pos: pos()}}},
			Cases: []*ast.Case{
				{Pos: pos(), Pattern: &ast.MatchVariant{Name: "Some", Pos: pos(), SubPatterns: []ast.Pattern{&ast.MatchAs{Name: "x", Pos: pos()}}}, Body: numDo(1)},
			},
		},
	}}
	_, _, err := types.InferProgram(c, types.Substitution{}, ctx, prog)
	require.NoError(t, err, "a non-exhaustive match is a warning, not a hard error")
	require.Len(t, c.Warnings, 1)
	var nem *errors.NonExhaustiveMatch
	require.ErrorAs(t, c.Warnings[0], &nem)
	assert.ElementsMatch(t, []string{"None"}, nem.Remaining["$"])
}

func TestCaseOfMatchAsCatchAllIsExhaustive(t *testing.T) {
	c, ctx := newEnv()
	prog := &ast.Program{Pos: pos(), Body: []ast.Expr{
		&ast.CaseOf{Pos: pos(), Scrutinee: &ast.VariantCall{Name: "None", Pos: pos()},
			Cases: []*ast.Case{
				{Pos: pos(), Pattern: &ast.MatchAs{Name: "any", Pos: pos()}, Body: numDo(1)},
			},
		},
	}}
	_, _, err := types.InferProgram(c, types.Substitution{}, ctx, prog)
	require.NoError(t, err)
	assert.Empty(t, c.Warnings)
}
