package repl

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/uwu-lang/uwuc/internal/pipeline"
	"github.com/uwu-lang/uwuc/internal/prelude"
	"github.com/uwu-lang/uwuc/internal/types"
)

// command runs a leading-":" REPL command and reports whether the
// loop should exit.
func (r *REPL) command(input string) bool {
	word, rest, _ := strings.Cut(input, " ")
	rest = strings.TrimSpace(rest)

	switch word {
	case ":quit", ":q":
		return true

	case ":reset":
		r.counter = types.NewCounter()
		r.ctx = prelude.NewContext(r.counter)
		r.lastJS = ""
		fmt.Fprintln(r.out, color.CyanString("session reset"))
		return false

	case ":js":
		if r.lastJS == "" {
			fmt.Fprintln(r.out, color.YellowString("no expression evaluated yet"))
			return false
		}
		fmt.Fprintln(r.out, r.lastJS)
		return false

	case ":type":
		if rest == "" {
			fmt.Fprintln(r.out, color.YellowString(":type needs an expression"))
			return false
		}
		res := pipeline.Run(pipeline.Config{
			Mode:    pipeline.ModeCheck,
			Ctx:     r.ctx.Clone(),
			Counter: r.counter,
		}, pipeline.Source{Code: rest, Filename: "<repl>", IsREPL: true})
		if res.Failed() {
			for _, e := range res.Errors {
				fmt.Fprintln(r.out, color.RedString("error: %s", e))
			}
			return false
		}
		fmt.Fprintln(r.out, color.CyanString(res.Type.String()))
		return false

	default:
		fmt.Fprintln(r.out, color.YellowString("unknown command %q (try :type, :js, :reset, :quit)", word))
		return false
	}
}
