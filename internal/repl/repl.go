// Package repl implements the interactive loop described by
// SPEC_FULL.md §4.11: one expression at a time, run through the same
// pipeline.Run entry point used by the batch compiler, sharing one
// accumulated Context and Counter across lines so later lines see
// earlier bindings the way a single top-level Block would.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"github.com/uwu-lang/uwuc/internal/pipeline"
	"github.com/uwu-lang/uwuc/internal/prelude"
	"github.com/uwu-lang/uwuc/internal/types"
)

// REPL holds the session state shared across lines.
type REPL struct {
	out     io.Writer
	line    *liner.State
	counter *types.Counter
	ctx     *types.Context
	lastJS  string
	num     int
}

// New returns a REPL writing prompts/results to out and reading input
// via liner.
func New(out io.Writer) *REPL {
	counter := types.NewCounter()
	return &REPL{
		out:     out,
		line:    liner.NewLiner(),
		counter: counter,
		ctx:     prelude.NewContext(counter),
	}
}

// Run drives the read-eval-print loop until :quit or EOF.
func (r *REPL) Run() {
	defer r.line.Close()

	for {
		input, err := r.line.Prompt("uwu> ")
		if err != nil { // EOF or Ctrl-C/Ctrl-D
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		r.line.AppendHistory(input)

		if strings.HasPrefix(input, ":") {
			if r.command(input) {
				return
			}
			continue
		}
		r.eval(input)
	}
}

func (r *REPL) eval(code string) {
	r.num++
	res := pipeline.Run(pipeline.Config{
		Mode:    pipeline.ModeEmit,
		Ctx:     r.ctx,
		Counter: r.counter,
	}, pipeline.Source{Code: code, Filename: "<repl>", IsREPL: true, REPLNum: r.num})

	for _, w := range res.Warnings {
		fmt.Fprintln(r.out, color.YellowString("warning: %s", w))
	}
	if res.Failed() {
		for _, e := range res.Errors {
			fmt.Fprintln(r.out, color.RedString("error: %s", e))
		}
		return
	}

	r.lastJS = res.JS
	fmt.Fprintln(r.out, color.CyanString(res.Type.String()))
}
