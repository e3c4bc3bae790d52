package types

import (
	"github.com/uwu-lang/uwuc/internal/ast"
	"github.com/uwu-lang/uwuc/internal/errors"
)

// Unify implements the five-case unifier of spec.md §4.2.
func Unify(a, b Type, pos ast.Pos) (Substitution, error) {
	switch a := a.(type) {
	case *TCon:
		if b, ok := b.(*TCon); ok && tconEquals(a, b) {
			return Substitution{}, nil
		}
	case *TAp:
		if b, ok := b.(*TAp); ok {
			s0, err := Unify(a.Con, b.Con, pos)
			if err != nil {
				return nil, err
			}
			s1, err := Unify(Apply(s0, a.Arg), Apply(s0, b.Arg), pos)
			if err != nil {
				return nil, err
			}
			return Compose(s1, s0), nil
		}
	}

	if u, ok := a.(*TVar); ok {
		if !u.Kind.Equals(KindOf(b)) {
			return nil, &errors.KindMismatch{A: u.Kind, B: KindOf(b), Pos: pos}
		}
		return varBind(u.ID, b, pos)
	}
	if u, ok := b.(*TVar); ok {
		if !u.Kind.Equals(KindOf(a)) {
			return nil, &errors.KindMismatch{A: KindOf(a), B: u.Kind, Pos: pos}
		}
		return varBind(u.ID, a, pos)
	}

	return nil, &errors.UnifyFail{A: a, B: b, Pos: pos}
}

// tconEquals implements spec.md §3.2: TCon equality is by name, kind,
// and alts (not pointer identity — two separately-built TCons for the
// same enum must still unify).
func tconEquals(a, b *TCon) bool {
	if a.Name != b.Name || !a.Kind.Equals(b.Kind) || len(a.Alts) != len(b.Alts) {
		return false
	}
	for i := range a.Alts {
		if a.Alts[i] != b.Alts[i] {
			return false
		}
	}
	return true
}

// varBind binds u to t, or fails the occurs check.
func varBind(u int, t Type, pos ast.Pos) (Substitution, error) {
	if v, ok := t.(*TVar); ok && v.ID == u {
		return Substitution{}, nil
	}
	if FTV(t)[u] {
		return nil, &errors.OccursCheck{Var: u, Ty: t, Pos: pos}
	}
	return Substitution{u: t}, nil
}

// UnifySubst threads a running substitution through Unify:
// compose(unify(apply(s,a), apply(s,b)), s).
func UnifySubst(a, b Type, s Substitution, pos ast.Pos) (Substitution, error) {
	u, err := Unify(Apply(s, a), Apply(s, b), pos)
	if err != nil {
		return nil, err
	}
	return Compose(u, s), nil
}
