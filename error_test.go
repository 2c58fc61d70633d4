package codeinterpreter_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	codeinterpreter "github.com/FellowTraveler/code-interpreter"
)

func TestErrorTraceback(t *testing.T) {
	e := codeinterpreter.Error{
		Name:         "ZeroDivisionError",
		Value:        "division by zero",
		TracebackRaw: []string{"line1", "line2"},
	}
	assert.Equal(t, "line1\nline2", e.Traceback())
}

func TestErrorTracebackEmpty(t *testing.T) {
	e := codeinterpreter.Error{Name: "KeyboardInterrupt"}
	assert.Equal(t, "", e.Traceback())
}

func TestKernelError(t *testing.T) {
	err := &codeinterpreter.KernelError{Op: "restart", Err: io.ErrUnexpectedEOF}
	assert.Equal(t, "kernel restart: unexpected EOF", err.Error())
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	var kerr *codeinterpreter.KernelError
	wrapped := fmt.Errorf("create sandbox: %w", err)
	require.True(t, errors.As(wrapped, &kerr))
	assert.Equal(t, "restart", kerr.Op)
}

func TestKernelErrorWithoutCause(t *testing.T) {
	err := &codeinterpreter.KernelError{Op: "shutdown"}
	assert.Equal(t, "kernel shutdown failed", err.Error())
	assert.Nil(t, err.Unwrap())
}
