package types

// Substitution is a finite mapping from TVar id to Type.
type Substitution map[int]Type

// Apply structurally rewrites t, replacing each free TVar(id) with
// s[id] when present. TCon is returned unchanged; TAp recurses into
// both Con and Arg.
func Apply(s Substitution, t Type) Type {
	if len(s) == 0 {
		return t
	}
	switch t := t.(type) {
	case *TVar:
		if r, ok := s[t.ID]; ok {
			return r
		}
		return t
	case *TCon:
		return t
	case *TAp:
		return &TAp{Con: Apply(s, t.Con), Arg: Apply(s, t.Arg)}
	default:
		return t
	}
}

// Compose yields s1 ∘ s2, the substitution that first applies s2,
// then s1: every binding in s2 is rewritten through Apply(s1, _),
// then the result is unioned with s1 (s1 wins on key collisions).
func Compose(s1, s2 Substitution) Substitution {
	out := make(Substitution, len(s1)+len(s2))
	for k, v := range s2 {
		out[k] = Apply(s1, v)
	}
	for k, v := range s1 {
		out[k] = v
	}
	return out
}

// ApplyScheme removes sch's quantified vars from s before applying,
// so instantiation-bound variables are never accidentally captured by
// an outer substitution.
func ApplyScheme(s Substitution, sch *Scheme) *Scheme {
	if len(s) == 0 {
		return sch
	}
	filtered := make(Substitution, len(s))
	for k, v := range s {
		filtered[k] = v
	}
	for _, v := range sch.Vars {
		delete(filtered, v)
	}
	return &Scheme{Vars: sch.Vars, Type: Apply(filtered, sch.Type)}
}

// ApplyContext lifts ApplyScheme across every binding in both of a
// Context's maps, returning a new Context.
func ApplyContext(s Substitution, ctx *Context) *Context {
	if len(s) == 0 {
		return ctx
	}
	out := NewContext()
	for k, v := range ctx.Vars {
		out.Vars[k] = ApplyScheme(s, v)
	}
	for k, v := range ctx.Types {
		out.Types[k] = ApplyScheme(s, v)
	}
	return out
}

// FTV returns the free type-variable ids of t.
func FTV(t Type) map[int]bool {
	out := map[int]bool{}
	ftv(t, out)
	return out
}

func ftv(t Type, out map[int]bool) {
	switch t := t.(type) {
	case *TVar:
		out[t.ID] = true
	case *TCon:
		// no free variables
	case *TAp:
		ftv(t.Con, out)
		ftv(t.Arg, out)
	}
}

// FTVScheme is ftv(sch.Type) minus the quantified variables.
func FTVScheme(sch *Scheme) map[int]bool {
	free := FTV(sch.Type)
	for _, v := range sch.Vars {
		delete(free, v)
	}
	return free
}

// FTVContext is the union of FTVScheme over every binding in both of
// ctx's maps; it drives generalization (FromSubst quantifies exactly
// what's free in a type but absent from this set).
func FTVContext(ctx *Context) map[int]bool {
	out := map[int]bool{}
	for _, sch := range ctx.Vars {
		for v := range FTVScheme(sch) {
			out[v] = true
		}
	}
	for _, sch := range ctx.Types {
		for v := range FTVScheme(sch) {
			out[v] = true
		}
	}
	return out
}
