package dtree

import (
	"strconv"

	"github.com/uwu-lang/uwuc/internal/ast"
)

// Tree is a compiled decision tree: Leaf, MissingLeaf, or Node.
type Tree interface {
	isTree()
}

// Leaf is a matched clause's body, ready to be typed/codegenned.
type Leaf struct {
	Body *ast.Do
}

// MissingLeaf marks a clause-matrix path with no covering clause.
// The inferencer turns this into a NonExhaustiveMatch warning and a
// fresh type variable; codegen never reaches a MissingLeaf path at
// runtime for an exhaustive match, but the generated code still needs
// some branch to emit (spec.md §4.4.5 talks about a thrown-error stub).
type MissingLeaf struct{}

// Node tests slot Var against Ctor. Subs names the fresh slots bound
// to Ctor's fields, in field order, used by both branches' clauses and
// (after typing) by codegen to destructure the matched value.
type Node struct {
	Var  string
	Ctor string
	Subs []string
	Yes  Tree
	No   Tree
}

func (*Leaf) isTree()        {}
func (*MissingLeaf) isTree() {}
func (*Node) isTree()        {}

// Build compiles a case-of's clauses into a decision tree, per
// spec.md §4.4.2. scrutineeSlot is the slot name the first pattern
// binds against — "$" for a top-level case-of.
func Build(cases []*ast.Case, scrutineeSlot string) Tree {
	clauses := make([]Clause, len(cases))
	for i, c := range cases {
		clauses[i] = Clause{
			Patterns: []slotPattern{{Slot: scrutineeSlot, Pattern: c.Pattern}},
			Body:     c.Body,
		}
	}
	return genMatch(clauses)
}

func genMatch(clauses []Clause) Tree {
	if len(clauses) == 0 {
		return &MissingLeaf{}
	}

	subst := make([]Clause, len(clauses))
	for i, c := range clauses {
		subst[i] = substVarEqs(c)
	}
	clauses = subst

	if len(clauses[0].Patterns) == 0 {
		return &Leaf{Body: clauses[0].Body}
	}

	branchVar := chooseBranchVar(clauses)
	firstPattern, _ := clauses[0].get(branchVar)
	branchPattern := firstPattern.(*ast.MatchVariant)

	subSlots := make([]string, len(branchPattern.SubPatterns))
	for i := range branchPattern.SubPatterns {
		subSlots[i] = branchSlotName(branchVar, i)
	}

	var yes, no []Clause
	for _, c := range clauses {
		p, ok := c.get(branchVar)
		if !ok {
			// Unconstrained on this slot: vacuously satisfies both arms.
			yes = append(yes, c)
			no = append(no, c)
			continue
		}
		mv := p.(*ast.MatchVariant)
		if mv.Name != branchPattern.Name {
			no = append(no, c)
			continue
		}
		expanded := c.without(branchVar)
		for i, sub := range mv.SubPatterns {
			expanded = append(expanded, slotPattern{Slot: subSlots[i], Pattern: sub})
		}
		yes = append(yes, Clause{Patterns: expanded, Body: c.Body})
	}

	return &Node{
		Var:  branchVar,
		Ctor: branchPattern.Name,
		Subs: subSlots,
		Yes:  genMatch(yes),
		No:   genMatch(no),
	}
}

// chooseBranchVar implements the branching heuristic of spec.md
// §4.4.3: pick the slot, among those constrained in the first clause,
// that is constrained by the most clauses overall; ties go to the
// slot appearing earliest in the first clause's pattern order.
func chooseBranchVar(clauses []Clause) string {
	best := ""
	bestCount := -1
	for _, sp := range clauses[0].Patterns {
		count := 0
		for _, c := range clauses {
			if _, ok := c.get(sp.Slot); ok {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			best = sp.Slot
		}
	}
	return best
}

func branchSlotName(parent string, i int) string {
	return parent + "._" + strconv.Itoa(i)
}
