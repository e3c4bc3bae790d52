package types

import (
	"github.com/uwu-lang/uwuc/internal/ast"
	"github.com/uwu-lang/uwuc/internal/errors"
)

// Counter mints fresh type-variable ids and accumulates non-fatal
// warnings (currently only NonExhaustiveMatch) raised while inferring
// a single compilation unit. It is threaded explicitly through Infer
// rather than kept as a package-global, so each unit (each file, and
// each --watch recompilation) can start from its own fresh Counter.
type Counter struct {
	next     int
	Warnings []error
}

// NewCounter returns a counter with no variables minted yet.
func NewCounter() *Counter { return &Counter{} }

// Fresh mints a new TVar of kind k.
func (c *Counter) Fresh(k Kind) *TVar {
	c.next++
	return &TVar{ID: c.next, Kind: k}
}

// Infer implements Algorithm J over a single expression node, per
// spec.md §4.3: infer(s, ctx, node) -> (s', tau). Declarations (Let,
// Def, EnumDeclaration) mutate ctx's maps in place so that later
// statements in the same block see the new binding; scope-introducing
// constructs (Do, If branches, Def bodies) clone ctx first so those
// mutations don't escape.
func Infer(c *Counter, s Substitution, ctx *Context, node ast.Expr) (Substitution, Type, error) {
	switch n := node.(type) {

	case *ast.Num:
		return s, TNum, nil

	case *ast.Float:
		return s, TFloat, nil

	case *ast.Str:
		return s, TStr, nil

	case *ast.Identifier:
		sch, ok := ctx.Vars[n.Name]
		if !ok {
			return nil, nil, &errors.UnboundIdentifier{Name: n.Name, Pos: n.Pos}
		}
		return s, sch.Instantiate(c.Fresh), nil

	case *ast.Let:
		s2, initTy, err := Infer(c, s, ctx, n.Init)
		if err != nil {
			return nil, nil, err
		}
		if n.Hint != nil {
			s3, hintTy, err := inferHint(c, s2, ctx, n.Hint)
			if err != nil {
				return nil, nil, err
			}
			s3, err = UnifySubst(initTy, hintTy, s3, n.Pos)
			if err != nil {
				return nil, nil, err
			}
			s2 = s3
			initTy = Apply(s2, hintTy)
		}
		ctx.Vars[n.ID] = FromSubst(s2, ctx, initTy)
		return s2, TUnit, nil

	case *ast.Do:
		return inferDo(c, s, ctx, n)

	case *ast.If:
		return inferIf(c, s, ctx, n)

	case *ast.UnaryExpr:
		return inferUnary(c, s, ctx, n)

	case *ast.BinaryExpr:
		return inferBinary(c, s, ctx, n)

	case *ast.Def:
		return inferDef(c, s, ctx, n)

	case *ast.Call:
		return inferCall(c, s, ctx, n)

	case *ast.VariantCall:
		return inferVariantCall(c, s, ctx, n)

	case *ast.EnumDeclaration:
		return inferEnumDeclaration(c, s, ctx, n)

	case *ast.Array:
		return inferArray(c, s, ctx, n)

	case *ast.CaseOf:
		return inferCaseOf(c, s, ctx, n)

	case *ast.External:
		return s, c.Fresh(Star), nil

	default:
		return nil, nil, &errors.CompilerInvariant{Msg: "infer: unhandled expression node", Pos: node.Position()}
	}
}

// InferProgram infers every top-level expression of prog in sequence
// against ctx, returning the type of the final expression (Unit if
// prog is empty).
func InferProgram(c *Counter, s Substitution, ctx *Context, prog *ast.Program) (Substitution, Type, error) {
	return inferExprs(c, s, ctx, prog.Body)
}

// inferBlock infers a Block's expressions in sequence against ctx,
// without cloning it: declarations inside the block remain visible to
// later statements in the same block.
func inferBlock(c *Counter, s Substitution, ctx *Context, b *ast.Block) (Substitution, Type, error) {
	return inferExprs(c, s, ctx, b.Exprs)
}

func inferExprs(c *Counter, s Substitution, ctx *Context, exprs []ast.Expr) (Substitution, Type, error) {
	result := Type(TUnit)
	for _, e := range exprs {
		s2, ty, err := Infer(c, s, ctx, e)
		if err != nil {
			return nil, nil, err
		}
		s, result = s2, ty
	}
	return s, result, nil
}

func inferDo(c *Counter, s Substitution, ctx *Context, d *ast.Do) (Substitution, Type, error) {
	scope := ctx.Clone()
	s, bodyTy, err := inferBlock(c, s, scope, d.Body)
	if err != nil {
		return nil, nil, err
	}
	if d.Hint != nil {
		hintS, hintTy, err := inferHint(c, s, scope, d.Hint)
		if err != nil {
			return nil, nil, err
		}
		s, err = UnifySubst(bodyTy, hintTy, hintS, d.Pos)
		if err != nil {
			return nil, nil, err
		}
		bodyTy = Apply(s, hintTy)
	}
	return s, bodyTy, nil
}

func inferIf(c *Counter, s Substitution, ctx *Context, n *ast.If) (Substitution, Type, error) {
	s, testTy, err := Infer(c, s, ctx, n.Test)
	if err != nil {
		return nil, nil, err
	}
	s, err = UnifySubst(testTy, TBool, s, n.Test.Position())
	if err != nil {
		return nil, nil, err
	}

	thenScope := ctx.Clone()
	s, thenTy, err := inferBlock(c, s, thenScope, n.Then)
	if err != nil {
		return nil, nil, err
	}

	if n.OrElse == nil {
		s, err = UnifySubst(thenTy, TUnit, s, n.Pos)
		if err != nil {
			return nil, nil, err
		}
		return s, TUnit, nil
	}

	s, elseTy, err := Infer(c, s, ctx, n.OrElse)
	if err != nil {
		return nil, nil, err
	}
	s, err = UnifySubst(thenTy, elseTy, s, n.Pos)
	if err != nil {
		return nil, nil, err
	}
	if n.Hint != nil {
		hintS, hintTy, err := inferHint(c, s, ctx, n.Hint)
		if err != nil {
			return nil, nil, err
		}
		s, err = UnifySubst(thenTy, hintTy, hintS, n.Pos)
		if err != nil {
			return nil, nil, err
		}
	}
	return s, Apply(s, thenTy), nil
}

func inferUnary(c *Counter, s Substitution, ctx *Context, n *ast.UnaryExpr) (Substitution, Type, error) {
	s, exprTy, err := Infer(c, s, ctx, n.Expr)
	if err != nil {
		return nil, nil, err
	}
	switch n.Op {
	case "-", "+":
		s, err = UnifySubst(exprTy, TNum, s, n.Pos)
		if err != nil {
			return nil, nil, err
		}
		return s, TNum, nil
	case "!", "not":
		s, err = UnifySubst(exprTy, TBool, s, n.Pos)
		if err != nil {
			return nil, nil, err
		}
		return s, TBool, nil
	default:
		return nil, nil, &errors.CompilerInvariant{Msg: "infer: unknown unary operator " + n.Op, Pos: n.Pos}
	}
}

func inferBinary(c *Counter, s Substitution, ctx *Context, n *ast.BinaryExpr) (Substitution, Type, error) {
	sch, ok := ctx.Vars[n.Op]
	if !ok {
		return nil, nil, &errors.UnboundIdentifier{Name: n.Op, Pos: n.Pos}
	}
	fnTy := sch.Instantiate(c.Fresh)

	s, leftTy, err := Infer(c, s, ctx, n.Left)
	if err != nil {
		return nil, nil, err
	}
	s, rightTy, err := Infer(c, s, ctx, n.Right)
	if err != nil {
		return nil, nil, err
	}

	s, resultTy, err := applyArgType(c, s, fnTy, leftTy, n.Pos)
	if err != nil {
		return nil, nil, err
	}
	s, resultTy, err = applyArgType(c, s, resultTy, rightTy, n.Pos)
	if err != nil {
		return nil, nil, err
	}
	return s, resultTy, nil
}

// applyArgType applies a Callable-typed fnTy to one already-inferred
// argument type, per the curried-application rule shared by Call and
// BinaryExpr.
func applyArgType(c *Counter, s Substitution, fnTy, argTy Type, pos ast.Pos) (Substitution, Type, error) {
	retVar := c.Fresh(Star)
	s, err := UnifySubst(fnTy, Apply(TCallable, argTy, retVar), s, pos)
	if err != nil {
		return nil, nil, err
	}
	return s, Apply(s, retVar), nil
}

func inferDef(c *Counter, s Substitution, ctx *Context, n *ast.Def) (Substitution, Type, error) {
	scope := ctx.Clone()
	for _, g := range n.Generics {
		scope.Vars[g] = &Scheme{Type: c.Fresh(Star)}
	}

	paramTys := make([]Type, len(n.Params))
	for i, p := range n.Params {
		var pty Type
		if p.Hint != nil {
			var err error
			s, pty, err = inferHint(c, s, scope, p.Hint)
			if err != nil {
				return nil, nil, err
			}
		} else {
			pty = c.Fresh(Star)
		}
		paramTys[i] = pty
		scope.Vars[p.ID] = &Scheme{Type: pty}
	}

	// Def is not self-recursive: n.ID is bound only in the enclosing
	// context, after the body has been inferred, so the body cannot
	// call itself.
	s, bodyTy, err := inferDo(c, s, scope, n.Body)
	if err != nil {
		return nil, nil, err
	}
	if n.Hint != nil {
		var hintTy Type
		s, hintTy, err = inferHint(c, s, scope, n.Hint)
		if err != nil {
			return nil, nil, err
		}
		s, err = UnifySubst(bodyTy, hintTy, s, n.Pos)
		if err != nil {
			return nil, nil, err
		}
	}

	fnTy := Curry(TCallable, paramTys, bodyTy)
	fnTy = Apply(s, fnTy)
	ctx.Vars[n.ID] = FromSubst(s, ctx, fnTy)
	return s, TUnit, nil
}

func inferCall(c *Counter, s Substitution, ctx *Context, n *ast.Call) (Substitution, Type, error) {
	s, calleeTy, err := Infer(c, s, ctx, n.Callee)
	if err != nil {
		return nil, nil, err
	}

	argTys := make([]Type, len(n.Args))
	for i := len(n.Args) - 1; i >= 0; i-- {
		var ty Type
		s, ty, err = Infer(c, s, ctx, n.Args[i])
		if err != nil {
			return nil, nil, err
		}
		argTys[i] = ty
	}

	result := calleeTy
	for _, at := range argTys {
		result, err = applyCurried(c, &s, result, at, n.Pos)
		if err != nil {
			return nil, nil, err
		}
	}
	return s, result, nil
}

func applyCurried(c *Counter, s *Substitution, fnTy, argTy Type, pos ast.Pos) (Type, error) {
	s2, resultTy, err := applyArgType(c, *s, fnTy, argTy, pos)
	if err != nil {
		return nil, err
	}
	*s = s2
	return resultTy, nil
}

func inferVariantCall(c *Counter, s Substitution, ctx *Context, n *ast.VariantCall) (Substitution, Type, error) {
	wrapSch, ok := ctx.Vars[n.Name]
	if !ok {
		return nil, nil, &errors.UnboundIdentifier{Name: n.Name, Pos: n.Pos}
	}
	nakedSch, ok := ctx.Types[n.Name]
	if !ok {
		return nil, nil, &errors.UnboundIdentifier{Name: n.Name, Pos: n.Pos}
	}

	wrapTy := wrapSch.Instantiate(c.Fresh)
	nakedTy := nakedSch.Instantiate(c.Fresh)

	argTys := make([]Type, len(n.Args))
	for i := len(n.Args) - 1; i >= 0; i-- {
		var ty Type
		var err error
		s, ty, err = Infer(c, s, ctx, n.Args[i])
		if err != nil {
			return nil, nil, err
		}
		argTys[i] = ty
	}

	variantTy := Apply(nakedTy, argTys...)
	retVar := c.Fresh(Star)
	s, err := UnifySubst(wrapTy, Apply(TCallable, variantTy, retVar), s, n.Pos)
	if err != nil {
		return nil, nil, err
	}
	return s, Apply(s, retVar), nil
}

func inferEnumDeclaration(c *Counter, s Substitution, ctx *Context, n *ast.EnumDeclaration) (Substitution, Type, error) {
	scope := ctx.Clone()
	genericVars := make([]Type, len(n.Generics))
	for i, g := range n.Generics {
		v := c.Fresh(Star)
		genericVars[i] = v
		scope.Vars[g] = &Scheme{Type: v}
	}

	enumKind := Kind(Star)
	for range n.Generics {
		enumKind = KFun{Arg: Star, Ret: enumKind}
	}
	alts := make([]string, len(n.Variants))
	for i, v := range n.Variants {
		alts[i] = v.Name
	}
	enumCon := &TCon{Name: n.ID, Kind: enumKind, Alts: alts}
	enumApplied := Apply(enumCon, genericVars...)

	for _, v := range n.Variants {
		fieldTys := make([]Type, len(v.FieldHints))
		for i, h := range v.FieldHints {
			var ty Type
			var err error
			s, ty, err = inferHint(c, s, scope, h)
			if err != nil {
				return nil, nil, err
			}
			fieldTys[i] = ty
		}

		nakedKind := Kind(Star)
		for i := len(fieldTys) - 1; i >= 0; i-- {
			nakedKind = KFun{Arg: KindOf(fieldTys[i]), Ret: nakedKind}
		}
		variantCon := &TCon{Name: v.Name, Kind: nakedKind}
		domainTy := Apply(variantCon, fieldTys...)
		wrapFnTy := Apply(TCallable, domainTy, enumApplied)

		ctx.Types[v.Name] = FromSubst(s, ctx, variantCon)
		ctx.Vars[v.Name] = FromSubst(s, ctx, wrapFnTy)
	}

	ctx.Vars[n.ID] = FromSubst(s, ctx, enumCon)
	return s, TUnit, nil
}

func inferArray(c *Counter, s Substitution, ctx *Context, n *ast.Array) (Substitution, Type, error) {
	elemTy := Type(c.Fresh(Star))
	for _, e := range n.Args {
		s2, ty, err := Infer(c, s, ctx, e)
		if err != nil {
			return nil, nil, err
		}
		s2, err = UnifySubst(elemTy, ty, s2, e.Position())
		if err != nil {
			return nil, nil, err
		}
		s, elemTy = s2, Apply(s2, elemTy)
	}
	return s, Apply(TArray, elemTy), nil
}

// inferHint resolves a type annotation: instantiate ctx[name], fold
// args via TAp, unify the result with a fresh variable. A nil hint
// (no annotation in the source) yields an unconstrained fresh
// variable, per spec.md's MaybeHint.
func inferHint(c *Counter, s Substitution, ctx *Context, h *ast.Hint) (Substitution, Type, error) {
	if h == nil {
		return s, c.Fresh(Star), nil
	}
	sch, ok := ctx.Vars[h.Name]
	if !ok {
		return nil, nil, &errors.UnboundIdentifier{Name: h.Name, Pos: h.Pos}
	}
	base := sch.Instantiate(c.Fresh)

	argTys := make([]Type, len(h.Args))
	for i, a := range h.Args {
		var ty Type
		var err error
		s, ty, err = inferHint(c, s, ctx, a)
		if err != nil {
			return nil, nil, err
		}
		argTys[i] = ty
	}

	applied := Apply(base, argTys...)
	fresh := c.Fresh(KindOf(Apply(s, applied)))
	s, err := UnifySubst(applied, fresh, s, h.Pos)
	if err != nil {
		return nil, nil, err
	}
	return s, Apply(s, fresh), nil
}
