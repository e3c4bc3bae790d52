// Package prelude seeds a fresh Context with everything spec.md §4.7
// requires before a compilation unit's own declarations are inferred:
// the primitive type constructors (so Hints like `Option<Num>` or
// `Str` resolve), the built-in Bool/Option variant constructors, the
// identity function, and one binding per binary operator.
package prelude

import "github.com/uwu-lang/uwuc/internal/types"

// NewContext returns the seeded context. c mints the fresh variables
// needed for the polymorphic bindings (id, Some, None, ==, !=); it
// should be the same Counter later threaded through inference of the
// unit's own code, so variable ids never collide.
func NewContext(c *types.Counter) *types.Context {
	ctx := types.NewContext()

	for _, tc := range []*types.TCon{
		types.TNum, types.TFloat, types.TStr, types.TUnit, types.TBool,
		types.TRegex, types.TOption, types.TArray, types.TCallable,
	} {
		ctx.Vars[tc.Name] = &types.Scheme{Type: tc}
	}

	ctx.Vars["unit"] = &types.Scheme{Type: types.TUnit}

	bindNullaryVariant(ctx, "True", types.TBool)
	bindNullaryVariant(ctx, "False", types.TBool)

	a := c.Fresh(types.Star)
	noneCon := &types.TCon{Name: "None", Kind: types.Star}
	ctx.Types["None"] = types.FromSubst(nil, ctx, noneCon)
	ctx.Vars["None"] = types.FromSubst(nil, ctx,
		types.Apply(types.TCallable, noneCon, types.Apply(types.TOption, a)))

	someCon := &types.TCon{Name: "Some", Kind: types.KFun{Arg: types.Star, Ret: types.Star}}
	ctx.Types["Some"] = types.FromSubst(nil, ctx, someCon)
	someDomain := types.Apply(someCon, a)
	ctx.Vars["Some"] = types.FromSubst(nil, ctx,
		types.Apply(types.TCallable, someDomain, types.Apply(types.TOption, a)))

	idVar := c.Fresh(types.Star)
	ctx.Vars["id"] = types.FromSubst(nil, ctx, types.Curry(types.TCallable, []types.Type{idVar}, idVar))

	for _, op := range []string{"+", "-", "*", "/", "//"} {
		ctx.Vars[op] = &types.Scheme{Type: types.Curry(types.TCallable, []types.Type{types.TNum, types.TNum}, types.TNum)}
	}
	for _, op := range []string{"<", ">", "<=", ">="} {
		ctx.Vars[op] = &types.Scheme{Type: types.Curry(types.TCallable, []types.Type{types.TNum, types.TNum}, types.TBool)}
	}
	ctx.Vars["++"] = &types.Scheme{Type: types.Curry(types.TCallable, []types.Type{types.TStr, types.TStr}, types.TStr)}
	{
		elt := c.Fresh(types.Star)
		arr := types.Apply(types.TArray, elt)
		ctx.Vars["|"] = types.FromSubst(nil, ctx, types.Curry(types.TCallable, []types.Type{arr, arr}, arr))
	}
	for _, op := range []string{"&&", "||"} {
		ctx.Vars[op] = &types.Scheme{Type: types.Curry(types.TCallable, []types.Type{types.TBool, types.TBool}, types.TBool)}
	}
	for _, op := range []string{"==", "!="} {
		v := c.Fresh(types.Star)
		ctx.Vars[op] = types.FromSubst(nil, ctx, types.Curry(types.TCallable, []types.Type{v, v}, types.TBool))
	}

	return ctx
}

func bindNullaryVariant(ctx *types.Context, name string, enum *types.TCon) {
	con := &types.TCon{Name: name, Kind: types.Star}
	ctx.Types[name] = types.FromSubst(nil, ctx, con)
	ctx.Vars[name] = types.FromSubst(nil, ctx, types.Apply(types.TCallable, con, enum))
}
