// Package codegen renders a hoisted AST as host (JavaScript-shaped)
// source text, per spec.md §4.6. It assumes hoist.Program has already
// run: no Do appears in expression position, and an If or CaseOf there
// keeps declarations only inside its branches, which are rendered as
// statements inside an IIFE. Every expression is therefore a single
// host expression and every statement sequence is just a list of such
// expressions (plus declarations) in order.
package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/uwu-lang/uwuc/internal/ast"
	"github.com/uwu-lang/uwuc/internal/dtree"
)

// Program renders prog as a complete source file.
func Program(prog *ast.Program) string {
	var b strings.Builder
	for _, e := range prog.Body {
		writeStmt(&b, e)
	}
	return b.String()
}

func writeStmt(b *strings.Builder, e ast.Expr) {
	s := genStmt(e)
	if s == "" {
		return
	}
	b.WriteString(s)
	b.WriteByte('\n')
}

func genBlockStmts(exprs []ast.Expr) string {
	var b strings.Builder
	for _, e := range exprs {
		writeStmt(&b, e)
	}
	return b.String()
}

// genBlockAsReturn renders exprs as statements, with the final
// expression (if any) wrapped in a return.
func genBlockAsReturn(exprs []ast.Expr) string {
	if len(exprs) == 0 {
		return "return undefined;"
	}
	var b strings.Builder
	for _, e := range exprs[:len(exprs)-1] {
		writeStmt(&b, e)
	}
	fmt.Fprintf(&b, "return %s;", genExpr(exprs[len(exprs)-1]))
	return b.String()
}

func genStmt(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Let:
		return fmt.Sprintf("const %s = %s;", jsIdent(n.ID), genExpr(n.Init))

	case *ast.Def:
		return genFunctionDecl(n)

	case *ast.EnumDeclaration:
		// Purely a compile-time declaration; no runtime representation.
		return ""

	case *ast.If:
		return genIfStmt(n)

	default:
		return genExpr(e) + ";"
	}
}

// genFunctionDecl renders a Def as const id = (p0)=>(p1)=>...=>{body};
// a zero-parameter def still takes one placeholder arrow, per
// spec.md §4.6.
func genFunctionDecl(n *ast.Def) string {
	body := genBlockAsReturn(n.Body.Body.Exprs)

	var b strings.Builder
	fmt.Fprintf(&b, "const %s = ", jsIdent(n.ID))
	if len(n.Params) == 0 {
		b.WriteString("()=>")
	} else {
		for _, p := range n.Params {
			fmt.Fprintf(&b, "(%s)=>", jsIdent(p.ID))
		}
	}
	fmt.Fprintf(&b, "{\n%s\n};", body)
	return b.String()
}

func genIfStmt(n *ast.If) string {
	var b strings.Builder
	fmt.Fprintf(&b, "if (%s) {\n%s\n}", genExpr(n.Test), genBlockStmts(n.Then.Exprs))
	switch orElse := n.OrElse.(type) {
	case nil:
	case *ast.Do:
		fmt.Fprintf(&b, " else {\n%s\n}", genBlockStmts(orElse.Body.Exprs))
	case *ast.If:
		fmt.Fprintf(&b, " else %s", genIfStmt(orElse))
	}
	return b.String()
}

func genExpr(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Num:
		return strconv.FormatInt(n.Value, 10)

	case *ast.Float:
		return strconv.FormatFloat(n.Value, 'g', -1, 64)

	case *ast.Str:
		return strconv.Quote(n.Value)

	case *ast.Identifier:
		switch n.Name {
		case "print":
			return "console.log"
		case "unit":
			return "undefined"
		default:
			return jsIdent(n.Name)
		}

	case *ast.UnaryExpr:
		return fmt.Sprintf("(%s%s)", unaryOp(n.Op), genExpr(n.Expr))

	case *ast.BinaryExpr:
		return genBinary(n)

	case *ast.Call:
		return genCall(n)

	case *ast.VariantCall:
		return genVariantCall(n)

	case *ast.Array:
		parts := make([]string, len(n.Args))
		for i, a := range n.Args {
			parts[i] = genExpr(a)
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))

	case *ast.If:
		return genIfExpr(n)

	case *ast.CaseOf:
		return genCaseOf(n)

	case *ast.External:
		return n.Verbatim

	case *ast.Do:
		// hoist.Program eliminates every Do in expression position;
		// reaching one here means hoisting was skipped or incomplete.
		panic("codegen: unhoisted Do in expression position")

	default:
		panic(fmt.Sprintf("codegen: unhandled expression %T", e))
	}
}

func unaryOp(op string) string {
	switch op {
	case "not":
		return "!"
	default:
		return op
	}
}

var binaryOps = map[string]string{
	"+": "+", "-": "-", "*": "*", "/": "/",
	"<": "<", ">": ">", "<=": "<=", ">=": ">=",
	"==": "===", "!=": "!==",
	"&&": "&&", "||": "||",
	"++": "+",
}

func genBinary(n *ast.BinaryExpr) string {
	left, right := genExpr(n.Left), genExpr(n.Right)
	switch n.Op {
	case "//":
		return fmt.Sprintf("Math.floor(%s / %s)", left, right)
	case "|":
		return fmt.Sprintf("%s.concat(%s)", left, right)
	}
	op, ok := binaryOps[n.Op]
	if !ok {
		panic("codegen: unknown binary operator " + n.Op)
	}
	return fmt.Sprintf("(%s %s %s)", left, op, right)
}

func genCall(n *ast.Call) string {
	callee := genExpr(n.Callee)
	if len(n.Args) == 0 {
		return callee + "()"
	}
	var b strings.Builder
	b.WriteString(callee)
	for _, a := range n.Args {
		fmt.Fprintf(&b, "(%s)", genExpr(a))
	}
	return b.String()
}

func genVariantCall(n *ast.VariantCall) string {
	if len(n.Args) == 0 {
		return fmt.Sprintf("{TAG: %q}", n.Name)
	}
	fields := make([]string, len(n.Args))
	for i, a := range n.Args {
		fields[i] = fmt.Sprintf("_%d: %s", i, genExpr(a))
	}
	return fmt.Sprintf("{TAG: %q, %s}", n.Name, strings.Join(fields, ", "))
}

func genIfExpr(n *ast.If) string {
	var b strings.Builder
	b.WriteString("(function() {\n")
	fmt.Fprintf(&b, "if (%s) {\n%s\n}", genExpr(n.Test), genBlockAsReturn(n.Then.Exprs))
	switch orElse := n.OrElse.(type) {
	case nil:
		b.WriteString("\nreturn undefined;")
	case *ast.Do:
		fmt.Fprintf(&b, " else {\n%s\n}", genBlockAsReturn(orElse.Body.Exprs))
	case *ast.If:
		fmt.Fprintf(&b, " else {\nreturn %s;\n}", genIfExpr(orElse))
	}
	b.WriteString("\n})()")
	return b.String()
}

const scrutineeSlot = "$"

func genCaseOf(n *ast.CaseOf) string {
	tree := dtree.Build(n.Cases, scrutineeSlot)
	var b strings.Builder
	fmt.Fprintf(&b, "(function() {\nconst %s = %s;\n%s\n})()", jsIdent(scrutineeSlot), genExpr(n.Scrutinee), genTree(tree))
	return b.String()
}

func genTree(t dtree.Tree) string {
	switch t := t.(type) {
	case *dtree.Leaf:
		return genBlockAsReturn(t.Body.Body.Exprs)

	case *dtree.MissingLeaf:
		return `throw new Error("non-exhaustive pattern match");`

	case *dtree.Node:
		var b strings.Builder
		fmt.Fprintf(&b, "if (%s.TAG === %q) {\n", jsIdent(t.Var), t.Ctor)
		for i, sub := range t.Subs {
			fmt.Fprintf(&b, "const %s = %s._%d;\n", jsIdent(sub), jsIdent(t.Var), i)
		}
		b.WriteString(genTree(t.Yes))
		b.WriteString("\n} else {\n")
		b.WriteString(genTree(t.No))
		b.WriteString("\n}")
		return b.String()

	default:
		panic(fmt.Sprintf("codegen: unknown tree node %T", t))
	}
}

// jsIdent maps a source identifier, or a dtree-generated slot name
// such as "$._0", to a valid host identifier.
func jsIdent(name string) string {
	return strings.ReplaceAll(name, ".", "_")
}
