package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uwu-lang/uwuc/internal/prelude"
	"github.com/uwu-lang/uwuc/internal/types"
)

func newTestREPL(out *bytes.Buffer) *REPL {
	counter := types.NewCounter()
	return &REPL{
		out:     out,
		counter: counter,
		ctx:     prelude.NewContext(counter),
	}
}

func TestEvalPrintsInferredType(t *testing.T) {
	var buf bytes.Buffer
	r := newTestREPL(&buf)
	r.eval("1 + 2")
	assert.Contains(t, buf.String(), "Num")
}

func TestEvalBindingsPersistAcrossLines(t *testing.T) {
	var buf bytes.Buffer
	r := newTestREPL(&buf)
	r.eval("x = 5")
	buf.Reset()
	r.eval("x + 1")
	assert.Contains(t, buf.String(), "Num")
	assert.Empty(t, extractErrorLines(buf.String()))
}

func TestEvalTypeErrorPrintsError(t *testing.T) {
	var buf bytes.Buffer
	r := newTestREPL(&buf)
	r.eval(`do 1 end: Str`)
	assert.Contains(t, buf.String(), "error:")
}

func TestEvalStoresLastJS(t *testing.T) {
	var buf bytes.Buffer
	r := newTestREPL(&buf)
	r.eval("x = 1")
	assert.NotEmpty(t, r.lastJS)
}

func TestCommandJsBeforeAnyEvalWarns(t *testing.T) {
	var buf bytes.Buffer
	r := newTestREPL(&buf)
	quit := r.command(":js")
	require.False(t, quit)
	assert.Contains(t, buf.String(), "no expression evaluated")
}

func TestCommandJsAfterEvalPrintsLastJS(t *testing.T) {
	var buf bytes.Buffer
	r := newTestREPL(&buf)
	r.eval("x = 1")
	buf.Reset()
	r.command(":js")
	assert.Contains(t, buf.String(), "const x = 1;")
}

func TestCommandResetClearsBindings(t *testing.T) {
	var buf bytes.Buffer
	r := newTestREPL(&buf)
	r.eval("x = 1")
	r.command(":reset")
	buf.Reset()
	r.eval("x")
	assert.Contains(t, buf.String(), "error:")
}

func TestCommandTypeDoesNotMutateSession(t *testing.T) {
	var buf bytes.Buffer
	r := newTestREPL(&buf)
	r.command(":type y = 1")
	_, bound := r.ctx.Vars["y"]
	assert.False(t, bound, ":type must not leak bindings into the shared session context")
}

func TestCommandQuitSignalsExit(t *testing.T) {
	var buf bytes.Buffer
	r := newTestREPL(&buf)
	assert.True(t, r.command(":quit"))
	assert.True(t, r.command(":q"))
}

func TestUnknownCommandWarns(t *testing.T) {
	var buf bytes.Buffer
	r := newTestREPL(&buf)
	quit := r.command(":bogus")
	assert.False(t, quit)
	assert.Contains(t, buf.String(), "unknown command")
}

func extractErrorLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.Contains(line, "error:") {
			out = append(out, line)
		}
	}
	return out
}
