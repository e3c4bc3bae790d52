package types

import (
	"github.com/uwu-lang/uwuc/internal/ast"
	"github.com/uwu-lang/uwuc/internal/dtree"
	"github.com/uwu-lang/uwuc/internal/errors"
)

const scrutineeSlot = "$"

// inferCaseOf types a case-of by compiling its clauses to a decision
// tree (package dtree, which only knows about patterns, not types)
// and then typing that tree per spec.md §4.4.4. A MissingLeaf with
// still-uncovered alternatives records a recoverable
// NonExhaustiveMatch warning on c instead of failing compilation.
func inferCaseOf(c *Counter, s Substitution, ctx *Context, n *ast.CaseOf) (Substitution, Type, error) {
	s, scrutineeTy, err := Infer(c, s, ctx, n.Scrutinee)
	if err != nil {
		return nil, nil, err
	}

	scope := ctx.Clone()
	scope.Vars[scrutineeSlot] = FromSubst(s, ctx, scrutineeTy)

	tree := dtree.Build(n.Cases, scrutineeSlot)
	return typeTree(c, s, scope, tree, map[string][]string{}, n.Pos)
}

// typeTree recursively types a decision tree, threading remainingAlts
// (the still-unmatched variant names per slot, lazily initialised on
// first visit) along each path independently: the "yes" arm commits
// to having consumed one alternative of Node.Var, the "no" arm keeps
// the same (already-decremented) remaining set but never sees the
// fresh sub-slots introduced for the matched constructor.
func typeTree(c *Counter, s Substitution, ctx *Context, tree dtree.Tree, remainingAlts map[string][]string, pos ast.Pos) (Substitution, Type, error) {
	switch t := tree.(type) {

	case *dtree.Leaf:
		return Infer(c, s, ctx, t.Body)

	case *dtree.MissingLeaf:
		for _, alts := range remainingAlts {
			if len(alts) > 0 {
				c.Warnings = append(c.Warnings, &errors.NonExhaustiveMatch{
					Remaining: cloneAlts(remainingAlts),
					Pos:       pos,
				})
				break
			}
		}
		return s, c.Fresh(Star), nil

	case *dtree.Node:
		return typeNode(c, s, ctx, t, remainingAlts, pos)

	default:
		return nil, nil, &errors.CompilerInvariant{Msg: "typeTree: unknown tree node", Pos: pos}
	}
}

func typeNode(c *Counter, s Substitution, ctx *Context, n *dtree.Node, remainingAlts map[string][]string, pos ast.Pos) (Substitution, Type, error) {
	slotSch, ok := ctx.Vars[n.Var]
	if !ok {
		return nil, nil, &errors.CompilerInvariant{Msg: "typeNode: unbound slot " + n.Var, Pos: pos}
	}
	slotTy := Apply(s, slotSch.Instantiate(c.Fresh))

	rem := cloneAlts(remainingAlts)
	if _, seen := rem[n.Var]; !seen {
		rem[n.Var] = altsOf(slotTy)
	}
	rem[n.Var] = removeAlt(rem[n.Var], n.Ctor)

	ctorSch, ok := ctx.Vars[n.Ctor]
	if !ok {
		return nil, nil, &errors.UnboundIdentifier{Name: n.Ctor, Pos: pos}
	}
	nakedSch, ok := ctx.Types[n.Ctor]
	if !ok {
		return nil, nil, &errors.UnboundIdentifier{Name: n.Ctor, Pos: pos}
	}
	ctorTy := ctorSch.Instantiate(c.Fresh)
	nakedTy := nakedSch.Instantiate(c.Fresh)

	subVars := make([]Type, len(n.Subs))
	for i := range n.Subs {
		subVars[i] = c.Fresh(Star)
	}
	domainTy := Apply(nakedTy, subVars...)

	s, err := UnifySubst(ctorTy, Apply(TCallable, domainTy, slotTy), s, pos)
	if err != nil {
		return nil, nil, err
	}

	yesScope := ctx.Clone()
	for i, name := range n.Subs {
		yesScope.Vars[name] = FromSubst(s, ctx, Apply(s, subVars[i]))
	}

	yesRem := cloneAlts(rem)
	sYes, yesTy, err := typeTree(c, s, yesScope, n.Yes, yesRem, pos)
	if err != nil {
		return nil, nil, err
	}

	sNo, noTy, err := typeTree(c, sYes, ctx, n.No, rem, pos)
	if err != nil {
		return nil, nil, err
	}

	sNo, err = UnifySubst(yesTy, noTy, sNo, pos)
	if err != nil {
		return nil, nil, err
	}
	return sNo, Apply(sNo, noTy), nil
}

// altsOf returns the variant-name alternatives of t's head type
// constructor, or nil if t is not (yet) headed by one (an unconstrained
// scrutinee type can't be checked for exhaustiveness).
func altsOf(t Type) []string {
	head := t
	for {
		ap, ok := head.(*TAp)
		if !ok {
			break
		}
		head = ap.Con
	}
	con, ok := head.(*TCon)
	if !ok {
		return nil
	}
	return append([]string(nil), con.Alts...)
}

func removeAlt(alts []string, name string) []string {
	out := make([]string, 0, len(alts))
	for _, a := range alts {
		if a != name {
			out = append(out, a)
		}
	}
	return out
}

func cloneAlts(m map[string][]string) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[k] = append([]string(nil), v...)
	}
	return out
}
