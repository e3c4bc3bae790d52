package types

import (
	"fmt"
	"strings"
)

// Type is a member of the type universe: TVar, TCon, or TAp.
type Type interface {
	String() string
	ty()
}

// TVar is a unification variable. ID is a globally fresh positive
// integer allocated by a Counter (see Counter in infer.go); identities are
// never reused once bound.
type TVar struct {
	ID   int
	Kind Kind
}

func (*TVar) ty() {}
func (t *TVar) String() string { return fmt.Sprintf("t%d", t.ID) }

// TCon is a named type constructor. Alts is the ordered list of
// variant constructor names for sum types, nil for every other
// constructor (Num, Str, Callable, Array, ...).
type TCon struct {
	Name string
	Kind Kind
	Alts []string
}

func (*TCon) ty() {}
func (t *TCon) String() string { return t.Name }

// TAp is application of a type constructor to a type argument;
// left-associative, so `Callable a b` is TAp(TAp(Callable, a), b).
type TAp struct {
	Con Type
	Arg Type
}

func (*TAp) ty() {}
func (t *TAp) String() string {
	// Render curried Callable applications as an arrow chain and
	// everything else as Con<Arg, Arg, ...> for readability.
	con, args := spine(t)
	if c, ok := con.(*TCon); ok && c.Name == "Callable" && len(args) == 2 {
		return fmt.Sprintf("(%s -> %s)", args[0], args[1])
	}
	strs := make([]string, len(args))
	for i, a := range args {
		strs[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", con, strings.Join(strs, ", "))
}

// spine unwinds a left-associative TAp chain into its head
// constructor and the ordered list of arguments.
func spine(t Type) (Type, []Type) {
	var args []Type
	for {
		ap, ok := t.(*TAp)
		if !ok {
			// reverse args, which were collected innermost-first
			for i, j := 0, len(args)-1; i < j; i, j = i+1, j-1 {
				args[i], args[j] = args[j], args[i]
			}
			return t, args
		}
		args = append(args, ap.Arg)
		t = ap.Con
	}
}

// KindOf computes the kind of t, panicking (a CompilerInvariant in
// practice, guarded against by the unifier's kind check before any
// TAp is constructed) if a TAp's constructor is not of function kind.
func KindOf(t Type) Kind {
	switch t := t.(type) {
	case *TVar:
		return t.Kind
	case *TCon:
		return t.Kind
	case *TAp:
		k := KindOf(t.Con)
		fn, ok := k.(KFun)
		if !ok {
			panic(fmt.Sprintf("KindOf: %s applied but has kind %s", t.Con, k))
		}
		return fn.Ret
	default:
		panic(fmt.Sprintf("KindOf: unknown type %T", t))
	}
}

// Apply builds a TAp chain applying con to args in order.
func Apply(con Type, args ...Type) Type {
	t := con
	for _, a := range args {
		t = &TAp{Con: t, Arg: a}
	}
	return t
}

// Curry builds the function type params[0] -> params[1] -> ... -> ret,
// encoded as nested TAp(TAp(Callable, param), rest) per spec §3.2. A
// zero-param function is Unit -> ret.
func Curry(callable Type, params []Type, ret Type) Type {
	if len(params) == 0 {
		return Apply(callable, TUnit, ret)
	}
	result := ret
	for i := len(params) - 1; i >= 0; i-- {
		result = Apply(callable, params[i], result)
	}
	return result
}

// Uncurry is the inverse of Curry for a Callable chain: given
// `a -> b -> ... -> r` it returns ([a, b, ...], r). ok is false if t
// is not built from callable.
func Uncurry(callable Type, t Type) (params []Type, ret Type, ok bool) {
	for {
		ap, isAp := t.(*TAp)
		if !isAp {
			return params, t, len(params) > 0
		}
		inner, isAp2 := ap.Con.(*TAp)
		if !isAp2 {
			return params, t, len(params) > 0
		}
		if c, isCon := inner.Con.(*TCon); !isCon || !sameCon(c, callable) {
			return params, t, len(params) > 0
		}
		params = append(params, inner.Arg)
		t = ap.Arg
	}
}

func sameCon(a *TCon, b Type) bool {
	bc, ok := b.(*TCon)
	return ok && a.Name == bc.Name
}

// Primitive type constructors seeded by the prelude (see package
// prelude); kept here so every package that needs e.g. TNum doesn't
// have to depend on prelude.
var (
	TNum      = &TCon{Name: "Num", Kind: Star}
	TFloat    = &TCon{Name: "Float", Kind: Star}
	TStr      = &TCon{Name: "Str", Kind: Star}
	TUnit     = &TCon{Name: "Unit", Kind: Star}
	TBool     = &TCon{Name: "Bool", Kind: Star, Alts: []string{"True", "False"}}
	TRegex    = &TCon{Name: "Regex", Kind: Star}
	TOption   = &TCon{Name: "Option", Kind: KFun{Arg: Star, Ret: Star}, Alts: []string{"Some", "None"}}
	TArray    = &TCon{Name: "Array", Kind: KFun{Arg: Star, Ret: Star}}
	TCallable = &TCon{Name: "Callable", Kind: KFun{Arg: Star, Ret: KFun{Arg: Star, Ret: Star}}}
)
