// Package hoist implements the lifting transform of spec.md §4.5: it
// rewrites a parsed, type-checked AST so that no Do survives in
// expression position and no declaration sits directly inside an
// operand, argument, test or scrutinee. An If or CaseOf in expression
// position keeps the declarations of its own branches, which codegen
// renders as statements inside an IIFE.
package hoist

import "github.com/uwu-lang/uwuc/internal/ast"

// Program hoists every declaration nested in expression position
// throughout prog.
func Program(prog *ast.Program) *ast.Program {
	return &ast.Program{Body: hoistBlock(prog.Body), Pos: prog.Pos}
}

// hoistBlock processes a statement sequence: each statement may expand
// into zero or more preceding statements plus itself. Per spec.md
// §4.5, any bare Identifier statement other than the block's final
// one is then dropped — it has no side effect, and typically only
// appears because a declaration reached value position (hoistValue's
// unit-identifier substitution) or a nested Do was fully inlined.
func hoistBlock(exprs []ast.Expr) []ast.Expr {
	out := make([]ast.Expr, 0, len(exprs))
	for _, e := range exprs {
		pre, repl := hoistStmt(e)
		out = append(out, pre...)
		out = append(out, repl)
	}
	return dropBareIdentifiers(out)
}

func dropBareIdentifiers(exprs []ast.Expr) []ast.Expr {
	out := make([]ast.Expr, 0, len(exprs))
	for i, e := range exprs {
		if _, ok := e.(*ast.Identifier); ok && i != len(exprs)-1 {
			continue
		}
		out = append(out, e)
	}
	return out
}

// hoistStmt hoists e, which already sits in statement position: there
// is nowhere shallower to lift e itself to, only its children.
func hoistStmt(e ast.Expr) ([]ast.Expr, ast.Expr) {
	switch n := e.(type) {
	case *ast.Let:
		pre, init := hoistValue(n.Init)
		n.Init = init
		return pre, n
	case *ast.Def:
		n.Body.Body.Exprs = hoistBlock(n.Body.Body.Exprs)
		return nil, n
	case *ast.EnumDeclaration:
		return nil, n
	default:
		return hoistValue(e)
	}
}

// hoistValue hoists e, which is needed as a single expression value
// (an operand, argument, array element, branch condition, or
// scrutinee). Any declarations found inside e are returned as `pre`,
// to be spliced into the nearest enclosing statement sequence by the
// caller; e itself is rewritten in place and returned as the
// remaining, declaration-free expression.
func hoistValue(e ast.Expr) ([]ast.Expr, ast.Expr) {
	switch n := e.(type) {
	case *ast.Num, *ast.Float, *ast.Str, *ast.Identifier, *ast.External:
		return nil, e

	case *ast.UnaryExpr:
		pre, expr := hoistValue(n.Expr)
		n.Expr = expr
		return pre, n

	case *ast.BinaryExpr:
		lpre, left := hoistValue(n.Left)
		rpre, right := hoistValue(n.Right)
		n.Left, n.Right = left, right
		return append(lpre, rpre...), n

	case *ast.Call:
		pre, callee := hoistValue(n.Callee)
		n.Callee = callee
		for i, a := range n.Args {
			argPre, arg := hoistValue(a)
			n.Args[i] = arg
			pre = append(pre, argPre...)
		}
		return pre, n

	case *ast.VariantCall:
		var pre []ast.Expr
		for i, a := range n.Args {
			argPre, arg := hoistValue(a)
			n.Args[i] = arg
			pre = append(pre, argPre...)
		}
		return pre, n

	case *ast.Array:
		var pre []ast.Expr
		for i, a := range n.Args {
			argPre, arg := hoistValue(a)
			n.Args[i] = arg
			pre = append(pre, argPre...)
		}
		return pre, n

	case *ast.Do:
		return hoistDoValue(n)

	case *ast.If:
		return hoistIfValue(n)

	case *ast.CaseOf:
		return hoistCaseOfValue(n)

	case *ast.Let, *ast.Def, *ast.EnumDeclaration:
		// A declaration reached directly in value position (only
		// possible as the trailing expression of a Do body): it
		// produces no usable value, so it is lifted whole and
		// replaced by a reference to the prelude's unit identifier.
		return []ast.Expr{e}, &ast.Identifier{Name: "unit", Pos: e.Position()}

	default:
		return nil, e
	}
}

// hoistDoValue fully inlines a Do used as a value: every statement but
// the last is lifted verbatim (after its own recursive hoisting) into
// the caller's statement sequence, and the last is hoisted as a value
// to stand in for the Do's result. A Do's scope is not preserved by
// this inlining; the language has no shadowing for this to break.
func hoistDoValue(n *ast.Do) ([]ast.Expr, ast.Expr) {
	exprs := n.Body.Exprs
	if len(exprs) == 0 {
		return nil, &ast.Identifier{Name: "unit", Pos: n.Pos}
	}
	var lifted []ast.Expr
	for _, e := range exprs[:len(exprs)-1] {
		pre, repl := hoistStmt(e)
		lifted = append(lifted, pre...)
		lifted = append(lifted, repl)
	}
	tailPre, tail := hoistValue(exprs[len(exprs)-1])
	lifted = append(lifted, tailPre...)
	return lifted, tail
}

// hoistIfValue keeps If's branches intact (they run conditionally, so
// their declarations cannot be hoisted past the test) but recursively
// hoists within each branch. Only the test, which always runs, can be
// hoisted out to the caller.
func hoistIfValue(n *ast.If) ([]ast.Expr, ast.Expr) {
	pre, test := hoistValue(n.Test)
	n.Test = test
	n.Then.Exprs = hoistBlock(n.Then.Exprs)
	if n.OrElse != nil {
		n.OrElse = hoistElif(n.OrElse)
	}
	return pre, n
}

// hoistElif hoists an else-arm, which is either a plain Do or a
// desugared elif (*ast.If). A nested elif's own lifted test
// statements must stay scoped to this else-arm, not bubble past the
// outer If, so they are re-wrapped in a synthetic Do.
func hoistElif(e ast.Expr) ast.Expr {
	switch n := e.(type) {
	case *ast.Do:
		n.Body.Exprs = hoistBlock(n.Body.Exprs)
		return n
	case *ast.If:
		pre, repl := hoistIfValue(n)
		if len(pre) == 0 {
			return repl
		}
		return &ast.Do{Body: &ast.Block{Exprs: append(pre, repl), Pos: n.Pos}, Pos: n.Pos}
	default:
		return e
	}
}

func hoistCaseOfValue(n *ast.CaseOf) ([]ast.Expr, ast.Expr) {
	pre, scrutinee := hoistValue(n.Scrutinee)
	n.Scrutinee = scrutinee
	for _, cs := range n.Cases {
		cs.Body.Body.Exprs = hoistBlock(cs.Body.Body.Exprs)
	}
	return pre, n
}
