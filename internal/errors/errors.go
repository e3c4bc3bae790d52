// Package errors defines the typed error values the compiler raises.
// A failed compilation unit reports either every ParseError its parser
// collected or exactly one of the other kinds. NonExhaustiveMatch is
// recoverable and reported as a warning (see cmd/uwuc).
package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/uwu-lang/uwuc/internal/ast"
)

// Stringer is satisfied by types.Type and types.Kind without this
// package importing types, which would otherwise form an import
// cycle (types constructs these errors while unifying).
type Stringer interface {
	String() string
}

// ParseError is raised by the lexer/parser. Line and Column are
// 1-based; Message is human-readable.
type ParseError struct {
	Line    int
	Column  int
	File    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
}

// UnifyFail means two types could not be made equal.
type UnifyFail struct {
	A, B Stringer
	Pos  ast.Pos
}

func (e *UnifyFail) Error() string {
	return fmt.Sprintf("%s: cannot unify %s with %s", e.Pos, e.A, e.B)
}

// KindMismatch means a unification variable was bound inconsistently
// with the kind of the type it was unified against.
type KindMismatch struct {
	A, B Stringer
	Pos  ast.Pos
}

func (e *KindMismatch) Error() string {
	return fmt.Sprintf("%s: kind mismatch: %s vs %s", e.Pos, e.A, e.B)
}

// OccursCheck means binding Var to Ty would create an infinite type.
type OccursCheck struct {
	Var int
	Ty  Stringer
	Pos ast.Pos
}

func (e *OccursCheck) Error() string {
	return fmt.Sprintf("%s: occurs check: t%d occurs in %s", e.Pos, e.Var, e.Ty)
}

// UnboundIdentifier means a Context lookup missed.
type UnboundIdentifier struct {
	Name string
	Pos  ast.Pos
}

func (e *UnboundIdentifier) Error() string {
	return fmt.Sprintf("%s: unbound identifier %q", e.Pos, e.Name)
}

// NonExhaustiveMatch means decision-tree compilation reached a
// MissingLeaf with at least one slot whose alternatives were not
// fully ruled out. Remaining maps each such slot to the variant
// names still uncovered along that path.
type NonExhaustiveMatch struct {
	Remaining map[string][]string
	Pos       ast.Pos
}

func (e *NonExhaustiveMatch) Error() string {
	slots := make([]string, 0, len(e.Remaining))
	for slot := range e.Remaining {
		slots = append(slots, slot)
	}
	sort.Strings(slots)

	parts := make([]string, 0, len(slots))
	for _, slot := range slots {
		alts := e.Remaining[slot]
		sort.Strings(alts)
		parts = append(parts, fmt.Sprintf("%s: %s", slot, strings.Join(alts, ", ")))
	}
	return fmt.Sprintf("%s: non-exhaustive pattern match (missing %s)", e.Pos, strings.Join(parts, "; "))
}

// CompilerInvariant signals an impossible AST shape reached a stage
// that assumed it could never occur — a compiler bug, not a source
// error.
type CompilerInvariant struct {
	Msg string
	Pos ast.Pos
}

func (e *CompilerInvariant) Error() string {
	return fmt.Sprintf("%s: internal compiler error: %s", e.Pos, e.Msg)
}

// IsWarning reports whether err should be surfaced as a warning
// (compilation continues) rather than aborting the unit.
func IsWarning(err error) bool {
	_, ok := err.(*NonExhaustiveMatch)
	return ok
}
