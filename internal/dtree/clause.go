// Package dtree compiles a case-of's list of clauses into a decision
// tree, per spec.md §4.4. It depends only on ast: typing the tree
// (§4.4.4) is the inferencer's job (package types), since only it can
// recurse back into Infer for leaf bodies.
package dtree

import "github.com/uwu-lang/uwuc/internal/ast"

// slotPattern is one (slot name, pattern) entry. Clauses keep these
// in a slice rather than a map so that "iteration order over the
// first clause's patterns" (the tie-break rule in the branching
// heuristic, spec.md §4.4.3) is well defined and decision-tree
// compilation is reproducible given identical clause ordering.
type slotPattern struct {
	Slot    string
	Pattern ast.Pattern
}

// Clause is one row of the clause matrix: a mapping from scrutinee
// slot name ("$" for the top-level scrutinee, or generated names
// "$._i" for sub-slots) to a Pattern, plus the body to run on match.
type Clause struct {
	Patterns []slotPattern
	Body     *ast.Do
}

func (c Clause) get(slot string) (ast.Pattern, bool) {
	for _, sp := range c.Patterns {
		if sp.Slot == slot {
			return sp.Pattern, true
		}
	}
	return nil, false
}

// without returns c's patterns with slot removed, preserving order.
func (c Clause) without(slot string) []slotPattern {
	out := make([]slotPattern, 0, len(c.Patterns))
	for _, sp := range c.Patterns {
		if sp.Slot != slot {
			out = append(out, sp)
		}
	}
	return out
}

// substVarEqs separates MatchAs bindings from MatchVariant
// constraints (spec.md §4.4.1): for every slot whose pattern is
// MatchAs(name), a synthetic Let(name, Identifier(slot)) is prepended
// to the body and the entry dropped from the pattern map. The
// remaining map contains only MatchVariants.
func substVarEqs(c Clause) Clause {
	var lets []ast.Expr
	var remaining []slotPattern

	for _, sp := range c.Patterns {
		if as, ok := sp.Pattern.(*ast.MatchAs); ok {
			lets = append(lets, &ast.Let{
				ID:   as.Name,
				Init: &ast.Identifier{Name: sp.Slot, Pos: as.Pos},
				Pos:  as.Pos,
			})
			continue
		}
		remaining = append(remaining, sp)
	}

	if len(lets) == 0 {
		return Clause{Patterns: remaining, Body: c.Body}
	}

	newBody := &ast.Do{
		Hint: c.Body.Hint,
		Pos:  c.Body.Pos,
		Body: &ast.Block{
			Pos:   c.Body.Body.Pos,
			Exprs: append(append([]ast.Expr{}, lets...), c.Body.Body.Exprs...),
		},
	}
	return Clause{Patterns: remaining, Body: newBody}
}
