// Package pipeline wires the compiler's stages together: lex, parse,
// seed the prelude, infer types, hoist declarations out of expression
// position, and generate host source. It is the single entry point
// used by both cmd/uwuc and internal/repl, so the two surfaces can
// never drift on what "compiling a unit" means.
package pipeline

import (
	"time"

	"github.com/uwu-lang/uwuc/internal/ast"
	"github.com/uwu-lang/uwuc/internal/codegen"
	"github.com/uwu-lang/uwuc/internal/errors"
	"github.com/uwu-lang/uwuc/internal/hoist"
	"github.com/uwu-lang/uwuc/internal/lexer"
	"github.com/uwu-lang/uwuc/internal/parser"
	"github.com/uwu-lang/uwuc/internal/prelude"
	"github.com/uwu-lang/uwuc/internal/types"
)

// Mode selects how far Run carries a unit: ModeCheck stops after
// inference (used by the REPL's :type), ModeEmit runs
// all the way to host source.
type Mode int

const (
	ModeCheck Mode = iota
	ModeEmit
)

// Source is one compilation unit: either a file on disk or one line
// of REPL input.
type Source struct {
	Code     string
	Filename string
	IsREPL   bool
	REPLNum  int
}

// Config controls how Run processes a Source.
type Config struct {
	Mode Mode
	// Ctx, when non-nil, seeds inference instead of a fresh prelude
	// context; the REPL passes its accumulated session context here so
	// each line sees every earlier line's bindings.
	Ctx *types.Context
	// Counter, when non-nil, is used (and mutated) in place of a fresh
	// one, again so the REPL's variable ids never collide across lines.
	Counter *types.Counter
}

// Result carries everything a caller might want out of a run: the
// trees at each stage, the inferred type, generated source, and every
// diagnostic raised along the way.
type Result struct {
	AST      *ast.Program
	Hoisted  *ast.Program
	Type     types.Type
	JS       string
	Ctx      *types.Context
	Counter  *types.Counter
	Errors   []error
	Warnings []error

	PhaseTimings map[string]int64 // milliseconds, keyed by phase name
}

// Run compiles src according to cfg. It stops at the first stage that
// fails (parse errors, then a type error) and always returns whatever
// partial Result it has, so a failed run can still report a partial
// AST to a diagnostic printer.
func Run(cfg Config, src Source) *Result {
	res := &Result{PhaseTimings: map[string]int64{}}

	t0 := time.Now()
	lex := lexer.New(src.Code, src.Filename)
	p := parser.New(lex)
	prog, parseErrs := p.ParseProgram()
	res.PhaseTimings["parse"] = time.Since(t0).Milliseconds()
	res.AST = prog
	if len(parseErrs) > 0 {
		res.Errors = parseErrs
		return res
	}

	t1 := time.Now()
	counter := cfg.Counter
	if counter == nil {
		counter = types.NewCounter()
	}
	ctx := cfg.Ctx
	if ctx == nil {
		ctx = prelude.NewContext(counter)
	}

	subst, ty, err := types.InferProgram(counter, types.Substitution{}, ctx, prog)
	res.PhaseTimings["infer"] = time.Since(t1).Milliseconds()
	res.Ctx = ctx
	res.Counter = counter
	res.Warnings = counter.Warnings
	if err != nil {
		res.Errors = []error{err}
		return res
	}
	res.Type = types.Apply(subst, ty)

	if cfg.Mode == ModeCheck {
		return res
	}

	t2 := time.Now()
	hoisted := hoist.Program(prog)
	res.PhaseTimings["hoist"] = time.Since(t2).Milliseconds()
	res.Hoisted = hoisted

	t3 := time.Now()
	res.JS = codegen.Program(hoisted)
	res.PhaseTimings["codegen"] = time.Since(t3).Milliseconds()

	return res
}

// Failed reports whether res's run stopped with a hard error. A
// NonExhaustiveMatch on its own does not count; errors.IsWarning
// governs the distinction.
func (r *Result) Failed() bool {
	for _, e := range r.Errors {
		if !errors.IsWarning(e) {
			return true
		}
	}
	return false
}
