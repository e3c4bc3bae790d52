package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/width"

	"github.com/uwu-lang/uwuc/internal/ast"
	"github.com/uwu-lang/uwuc/internal/config"
	"github.com/uwu-lang/uwuc/internal/errors"
)

// diagnostics renders compiler errors/warnings to stderr, colored
// when the output is a terminal and config doesn't forbid it.
type diagnostics struct {
	color bool
}

func newDiagnostics(cfg config.Config) *diagnostics {
	switch cfg.Color {
	case config.ColorAlways:
		return &diagnostics{color: true}
	case config.ColorNever:
		return &diagnostics{color: false}
	default:
		return &diagnostics{color: isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())}
	}
}

func (d *diagnostics) err(e error) {
	d.print(color.RedString("error:"), e)
}

func (d *diagnostics) warn(e error) {
	d.print(color.YellowString("warning:"), e)
}

func (d *diagnostics) print(coloredTag string, e error) {
	tag := coloredTag
	if !d.color {
		tag = plainTag(e)
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", tag, e)
	if pos, ok := errPos(e); ok {
		printSnippet(pos)
	}
}

func plainTag(e error) string {
	if errors.IsWarning(e) {
		return "warning:"
	}
	return "error:"
}

// errPos extracts the ast.Pos carried by one of the seven structured
// error kinds, if any (CompilerInvariant and the others all carry
// one).
func errPos(e error) (ast.Pos, bool) {
	switch e := e.(type) {
	case *errors.ParseError:
		return ast.Pos{Line: e.Line, Column: e.Column, File: e.File}, true
	case *errors.UnifyFail:
		return e.Pos, true
	case *errors.KindMismatch:
		return e.Pos, true
	case *errors.OccursCheck:
		return e.Pos, true
	case *errors.UnboundIdentifier:
		return e.Pos, true
	case *errors.NonExhaustiveMatch:
		return e.Pos, true
	case *errors.CompilerInvariant:
		return e.Pos, true
	default:
		return ast.Pos{}, false
	}
}

// printSnippet prints the source line at pos with a caret underneath,
// padding the caret by the rendered (east-asian-aware) width of the
// line's prefix rather than by rune or byte count, so the caret lands
// under the right column even when the prefix contains wide runes.
func printSnippet(pos ast.Pos) {
	data, err := os.ReadFile(pos.File)
	if err != nil {
		return
	}
	lines := strings.Split(string(data), "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return
	}
	line := lines[pos.Line-1]
	fmt.Fprintf(os.Stderr, "  %s\n", line)

	prefixRunes := []rune(line)
	if pos.Column-1 < len(prefixRunes) {
		prefixRunes = prefixRunes[:pos.Column-1]
	}
	pad := 0
	for _, r := range prefixRunes {
		pad += runeWidth(r)
	}
	fmt.Fprintf(os.Stderr, "  %s^\n", strings.Repeat(" ", pad))
}

func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}
