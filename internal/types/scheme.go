package types

// Scheme packages a type with the set of its universally-quantified
// variable ids; the concrete representation of polymorphism. The
// quantified set must be a subset of Type's free variables.
type Scheme struct {
	Vars []int
	Type Type
}

// Instantiate replaces every quantified variable in s with a fresh
// TVar minted by fresh.
func (s *Scheme) Instantiate(fresh func(Kind) *TVar) Type {
	if len(s.Vars) == 0 {
		return s.Type
	}
	sub := make(Substitution, len(s.Vars))
	for _, v := range s.Vars {
		sub[v] = fresh(Star)
	}
	return Apply(sub, s.Type)
}

// FromSubst builds the scheme implied by generalizing ty against ctx
// under subst: quantify exactly the variables free in
// apply(subst, ty) but not free in apply(subst, ctx). This is the
// only place where quantifiers are introduced — called at Let, Def,
// variant/type-constructor bindings, the prelude's polymorphic
// bindings, the scrutinee binding "$", and case-tree sub-slot bindings.
func FromSubst(subst Substitution, ctx *Context, ty Type) *Scheme {
	appliedTy := Apply(subst, ty)
	free := FTV(appliedTy)
	ctxFree := FTVContext(ApplyContext(subst, ctx))
	for v := range ctxFree {
		delete(free, v)
	}
	vars := make([]int, 0, len(free))
	for v := range free {
		vars = append(vars, v)
	}
	return &Scheme{Vars: vars, Type: appliedTy}
}

// Context maps identifiers to schemes. Term-level and type-level
// identifiers share a namespace in spec.md via a "$"-prefix
// convention; here they are split into two maps instead (Vars for
// ordinary term bindings and wrapping variant functions, Types for
// the naked type constructor bound under a variant/enum name) per the
// design note that prefers this to overloading a single map by
// string prefix.
type Context struct {
	Vars  map[string]*Scheme
	Types map[string]*Scheme
}

// NewContext returns an empty context.
func NewContext() *Context {
	return &Context{Vars: map[string]*Scheme{}, Types: map[string]*Scheme{}}
}

// Clone returns a context whose maps are independent of the
// receiver's, so mutating the clone (e.g. inside a Do, If branch, Def
// body, EnumDeclaration generic scope, or case-tree "yes" arm) never
// affects the parent scope.
func (c *Context) Clone() *Context {
	vars := make(map[string]*Scheme, len(c.Vars))
	for k, v := range c.Vars {
		vars[k] = v
	}
	types := make(map[string]*Scheme, len(c.Types))
	for k, v := range c.Types {
		types[k] = v
	}
	return &Context{Vars: vars, Types: types}
}
