package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uwu-lang/uwuc/internal/ast"
	"github.com/uwu-lang/uwuc/internal/errors"
)

func TestErrPosExtractsPositionFromEachStructuredError(t *testing.T) {
	pos := ast.Pos{Line: 3, Column: 5, File: "a.uwu"}
	cases := []error{
		&errors.ParseError{Line: 3, Column: 5, File: "a.uwu", Message: "bad"},
		&errors.UnifyFail{Pos: pos},
		&errors.KindMismatch{Pos: pos},
		&errors.OccursCheck{Pos: pos},
		&errors.UnboundIdentifier{Pos: pos},
		&errors.NonExhaustiveMatch{Pos: pos},
		&errors.CompilerInvariant{Pos: pos},
	}
	for _, e := range cases {
		got, ok := errPos(e)
		require.True(t, ok, "%T", e)
		assert.Equal(t, 3, got.Line, "%T", e)
		assert.Equal(t, 5, got.Column, "%T", e)
	}
}

func TestErrPosFalseForUnstructuredError(t *testing.T) {
	_, ok := errPos(assertError{})
	assert.False(t, ok)
}

type assertError struct{}

func (assertError) Error() string { return "plain" }

func TestPlainTagDistinguishesWarningFromError(t *testing.T) {
	assert.Equal(t, "warning:", plainTag(&errors.NonExhaustiveMatch{}))
	assert.Equal(t, "error:", plainTag(&errors.UnifyFail{}))
}

func TestRuneWidthWideVsNarrow(t *testing.T) {
	assert.Equal(t, 1, runeWidth('a'))
	assert.Equal(t, 2, runeWidth('あ'))
}
