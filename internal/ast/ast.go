// Package ast defines the immutable tree produced by the parser and
// consumed by every later compiler stage (inference, the decision-tree
// compiler, hoisting, and code generation).
package ast

import (
	"fmt"
	"strings"
)

// Pos is a single point in source text.
type Pos struct {
	Line   int
	Column int
	File   string
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span is a half-open range in source text, used by diagnostics that
// want to underline more than one token.
type Span struct {
	Start Pos
	End   Pos
}

// Node is implemented by every AST type.
type Node interface {
	String() string
	Position() Pos
}

// Expr is implemented by every expression node. uwu has no statements;
// everything that appears in a block position is an Expr.
type Expr interface {
	Node
	exprNode()
}

// Pattern is implemented by the two case-of pattern forms.
type Pattern interface {
	Node
	patternNode()
}

// Program is the root of a parsed compilation unit.
type Program struct {
	Body []Expr
	Pos  Pos
}

func (p *Program) Position() Pos { return p.Pos }
func (p *Program) String() string {
	parts := make([]string, len(p.Body))
	for i, e := range p.Body {
		parts[i] = e.String()
	}
	return strings.Join(parts, "\n")
}

// Num is an integer literal.
type Num struct {
	Value int64
	Pos   Pos
}

func (n *Num) Position() Pos  { return n.Pos }
func (n *Num) String() string { return fmt.Sprintf("%d", n.Value) }
func (n *Num) exprNode()      {}

// Float is a floating-point literal.
type Float struct {
	Value float64
	Pos   Pos
}

func (f *Float) Position() Pos  { return f.Pos }
func (f *Float) String() string { return fmt.Sprintf("%g", f.Value) }
func (f *Float) exprNode()      {}

// Str is a string literal; Value already has escapes resolved.
type Str struct {
	Value string
	Pos   Pos
}

func (s *Str) Position() Pos  { return s.Pos }
func (s *Str) String() string { return fmt.Sprintf("%q", s.Value) }
func (s *Str) exprNode()      {}

// Identifier is a reference to a term binding.
type Identifier struct {
	Name string
	Pos  Pos
}

func (i *Identifier) Position() Pos  { return i.Pos }
func (i *Identifier) String() string { return i.Name }
func (i *Identifier) exprNode()      {}

// Hint is a textual type annotation: a name plus its type arguments,
// e.g. `Option<Num>` parses to Hint{Name: "Option", Args: [Hint{Num}]}.
// Absence of a hint is represented as a nil *Hint, not a sentinel node.
type Hint struct {
	Name string
	Args []*Hint
	Pos  Pos
}

func (h *Hint) Position() Pos { return h.Pos }
func (h *Hint) String() string {
	if len(h.Args) == 0 {
		return h.Name
	}
	args := make([]string, len(h.Args))
	for i, a := range h.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", h.Name, strings.Join(args, ", "))
}

// Let introduces a binding. Hint is nil when the source omitted one.
type Let struct {
	ID   string
	Init Expr
	Hint *Hint
	Pos  Pos
}

func (l *Let) Position() Pos  { return l.Pos }
func (l *Let) String() string { return fmt.Sprintf("%s = %s", l.ID, l.Init) }
func (l *Let) exprNode()      {}

// Block is an ordered sequence of expressions; its value is the value
// of the last expression, or Unit if empty.
type Block struct {
	Exprs []Expr
	Pos   Pos
}

func (b *Block) Position() Pos { return b.Pos }
func (b *Block) String() string {
	parts := make([]string, len(b.Exprs))
	for i, e := range b.Exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, "; ")
}

// Do is a scoped block that introduces its own context frame.
type Do struct {
	Body *Block
	Hint *Hint
	Pos  Pos
}

func (d *Do) Position() Pos  { return d.Pos }
func (d *Do) String() string { return fmt.Sprintf("do %s end", d.Body) }
func (d *Do) exprNode()      {}

// If is a conditional. OrElse is nil when the source had no else/elif
// tail, meaning the expression's type is Unit.
type If struct {
	Test   Expr
	Then   *Block
	OrElse Expr // *Do (plain else), *If (desugared elif), or nil
	Hint   *Hint
	Pos    Pos
}

func (i *If) Position() Pos { return i.Pos }
func (i *If) String() string {
	if i.OrElse == nil {
		return fmt.Sprintf("if %s then %s end", i.Test, i.Then)
	}
	return fmt.Sprintf("if %s then %s else %s end", i.Test, i.Then, i.OrElse)
}
func (i *If) exprNode() {}

// UnaryExpr is one of -, +, !, not.
type UnaryExpr struct {
	Op   string
	Expr Expr
	Pos  Pos
}

func (u *UnaryExpr) Position() Pos  { return u.Pos }
func (u *UnaryExpr) String() string { return fmt.Sprintf("(%s%s)", u.Op, u.Expr) }
func (u *UnaryExpr) exprNode()      {}

// BinaryExpr is desugared during inference to a call of the operator's
// name bound in the context.
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
	Pos   Pos
}

func (b *BinaryExpr) Position() Pos { return b.Pos }
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}
func (b *BinaryExpr) exprNode() {}

// Param is one formal parameter of a Def.
type Param struct {
	ID   string
	Hint *Hint
	Pos  Pos
}

func (p *Param) Position() Pos { return p.Pos }
func (p *Param) String() string {
	if p.Hint == nil {
		return p.ID
	}
	return fmt.Sprintf("%s: %s", p.ID, p.Hint)
}

// Def is a function definition. Generics introduces fresh type
// variables in scope for Hint, Params, and Body.
type Def struct {
	ID       string
	Params   []*Param
	Body     *Do
	Hint     *Hint
	Generics []string
	Pos      Pos
}

func (d *Def) Position() Pos { return d.Pos }
func (d *Def) String() string {
	params := make([]string, len(d.Params))
	for i, p := range d.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("def %s(%s) %s", d.ID, strings.Join(params, ", "), d.Body)
}
func (d *Def) exprNode() {}

// Call is n-ary application of a callee to arguments.
type Call struct {
	Callee Expr
	Args   []Expr
	Pos    Pos
}

func (c *Call) Position() Pos { return c.Pos }
func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Callee, strings.Join(args, ", "))
}
func (c *Call) exprNode() {}

// VariantCall applies a variant constructor to its field expressions.
// Name denotes both the wrapping function and, under "$"+Name, the
// naked type constructor (see types.Context).
type VariantCall struct {
	Name string
	Args []Expr
	Pos  Pos
}

func (v *VariantCall) Position() Pos { return v.Pos }
func (v *VariantCall) String() string {
	args := make([]string, len(v.Args))
	for i, a := range v.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", v.Name, strings.Join(args, ", "))
}
func (v *VariantCall) exprNode() {}

// Variant is one constructor clause of an EnumDeclaration. FieldHints
// is empty for a nullary variant.
type Variant struct {
	Name       string
	FieldHints []*Hint
	Pos        Pos
}

func (v *Variant) Position() Pos { return v.Pos }
func (v *Variant) String() string {
	if len(v.FieldHints) == 0 {
		return v.Name
	}
	fields := make([]string, len(v.FieldHints))
	for i, f := range v.FieldHints {
		fields[i] = f.String()
	}
	return fmt.Sprintf("%s(%s)", v.Name, strings.Join(fields, ", "))
}

// EnumDeclaration declares a sum type: a TCon of kind
// KStar -> ... -> KStar, a context entry per variant, and two bindings
// per variant (the naked TCon under "$"+name, the constructor function
// under name).
type EnumDeclaration struct {
	ID       string
	Variants []*Variant
	Generics []string
	Pos      Pos
}

func (e *EnumDeclaration) Position() Pos { return e.Pos }
func (e *EnumDeclaration) String() string {
	variants := make([]string, len(e.Variants))
	for i, v := range e.Variants {
		variants[i] = v.String()
	}
	return fmt.Sprintf("enum %s{%s}", e.ID, strings.Join(variants, ", "))
}
func (e *EnumDeclaration) exprNode() {}

// Array is a homogeneous literal; all elements must unify.
type Array struct {
	Args []Expr
	Pos  Pos
}

func (a *Array) Position() Pos { return a.Pos }
func (a *Array) String() string {
	args := make([]string, len(a.Args))
	for i, e := range a.Args {
		args[i] = e.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(args, ", "))
}
func (a *Array) exprNode() {}

// Case is one arm of a CaseOf.
type Case struct {
	Pattern Pattern
	Body    *Do
	Pos     Pos
}

func (c *Case) Position() Pos  { return c.Pos }
func (c *Case) String() string { return fmt.Sprintf("%s %s", c.Pattern, c.Body) }

// CaseOf is a pattern match over a scrutinee.
type CaseOf struct {
	Scrutinee Expr
	Cases     []*Case
	Pos       Pos
}

func (c *CaseOf) Position() Pos { return c.Pos }
func (c *CaseOf) String() string {
	cases := make([]string, len(c.Cases))
	for i, a := range c.Cases {
		cases[i] = a.String()
	}
	return fmt.Sprintf("case %s of %s end", c.Scrutinee, strings.Join(cases, " "))
}
func (c *CaseOf) exprNode() {}

// MatchAs binds the matched slot to Name unconditionally.
type MatchAs struct {
	Name string
	Pos  Pos
}

func (m *MatchAs) Position() Pos  { return m.Pos }
func (m *MatchAs) String() string { return m.Name }
func (m *MatchAs) patternNode()   {}

// MatchVariant matches a slot against a named variant constructor,
// recursing into SubPatterns for its fields.
type MatchVariant struct {
	Name        string
	SubPatterns []Pattern
	Pos         Pos
}

func (m *MatchVariant) Position() Pos { return m.Pos }
func (m *MatchVariant) String() string {
	if len(m.SubPatterns) == 0 {
		return m.Name
	}
	subs := make([]string, len(m.SubPatterns))
	for i, s := range m.SubPatterns {
		subs[i] = s.String()
	}
	return fmt.Sprintf("%s(%s)", m.Name, strings.Join(subs, ", "))
}
func (m *MatchVariant) patternNode() {}

// External is an escape hatch carrying a verbatim host-source
// fragment; its type is an unconstrained fresh variable.
type External struct {
	Verbatim string
	Pos      Pos
}

func (e *External) Position() Pos  { return e.Pos }
func (e *External) String() string { return fmt.Sprintf("`%s`", e.Verbatim) }
func (e *External) exprNode()      {}
