package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uwu-lang/uwuc/internal/ast"
	"github.com/uwu-lang/uwuc/internal/errors"
)

var noPos = ast.Pos{}

func TestUnifyReflexive(t *testing.T) {
	cases := []Type{
		TNum, TStr, TBool,
		Apply(TOption, TNum),
		Apply(TCallable, TNum, TBool),
	}
	for _, ty := range cases {
		t.Run(ty.String(), func(t *testing.T) {
			s, err := Unify(ty, ty, noPos)
			require.NoError(t, err)
			assert.Equal(t, ty, Apply(s, ty))
		})
	}
}

func TestUnifyTConMismatch(t *testing.T) {
	_, err := Unify(TNum, TStr, noPos)
	require.Error(t, err)
	var uf *errors.UnifyFail
	assert.ErrorAs(t, err, &uf)
}

func TestUnifyTConByNameKindAlts(t *testing.T) {
	a := &TCon{Name: "Pair", Kind: Star}
	b := &TCon{Name: "Pair", Kind: Star}
	_, err := Unify(a, b, noPos)
	require.NoError(t, err, "two separately built TCons with the same name/kind/alts must unify")
}

func TestUnifyVarBindsAndSubstitutes(t *testing.T) {
	v := &TVar{ID: 1, Kind: Star}
	s, err := Unify(v, TNum, noPos)
	require.NoError(t, err)
	assert.Equal(t, TNum, Apply(s, v))
}

func TestUnifyVarKindMismatch(t *testing.T) {
	v := &TVar{ID: 1, Kind: KFun{Arg: Star, Ret: Star}}
	_, err := Unify(v, TNum, noPos)
	require.Error(t, err)
	var km *errors.KindMismatch
	assert.ErrorAs(t, err, &km)
}

func TestUnifyOccursCheck(t *testing.T) {
	v := &TVar{ID: 1, Kind: Star}
	cyclic := Apply(TOption, v)
	_, err := Unify(v, cyclic, noPos)
	require.Error(t, err)
	var oc *errors.OccursCheck
	assert.ErrorAs(t, err, &oc)
}

func TestUnifyTApRecurses(t *testing.T) {
	v := &TVar{ID: 1, Kind: Star}
	s, err := Unify(Apply(TOption, v), Apply(TOption, TNum), noPos)
	require.NoError(t, err)
	assert.Equal(t, TNum, Apply(s, v))
}

func TestUnifySubstComposesWithRunningSubst(t *testing.T) {
	v1 := &TVar{ID: 1, Kind: Star}
	v2 := &TVar{ID: 2, Kind: Star}
	s := Substitution{1: v2}
	s2, err := UnifySubst(v1, TNum, s, noPos)
	require.NoError(t, err)
	assert.Equal(t, TNum, Apply(s2, v1))
	assert.Equal(t, TNum, Apply(s2, v2))
}

func TestComposeAppliesS2ThroughS1(t *testing.T) {
	s1 := Substitution{1: TNum}
	s2 := Substitution{2: &TVar{ID: 1, Kind: Star}}
	composed := Compose(s1, s2)
	assert.Equal(t, TNum, Apply(composed, &TVar{ID: 2, Kind: Star}))
}
