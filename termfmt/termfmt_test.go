package termfmt_test

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	codeinterpreter "github.com/FellowTraveler/code-interpreter"
	"github.com/FellowTraveler/code-interpreter/termfmt"
)

func init() {
	// keep assertions byte-exact
	color.NoColor = true
}

func TestPrinterStreamsEvents(t *testing.T) {
	var buf bytes.Buffer
	p := termfmt.New(&buf)

	p.Stdout("hello")
	p.Stderr("warning")
	require.NoError(t, p.Result(true, map[codeinterpreter.MIMEType]any{
		"text/plain": "42",
	}))
	p.End()

	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "warning")
	assert.Contains(t, out, "[result] formats: text/plain")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "execution finished in")
}

func TestPrinterRejectsBrokenRecord(t *testing.T) {
	p := termfmt.New(&bytes.Buffer{})
	err := p.Result(true, map[codeinterpreter.MIMEType]any{"image/png": "cGll"})
	assert.ErrorIs(t, err, codeinterpreter.ErrMissingText)
}

func TestSummary(t *testing.T) {
	main, err := codeinterpreter.NewResult(true, map[codeinterpreter.MIMEType]any{
		"text/plain": "42",
	})
	require.NoError(t, err)
	plot, err := codeinterpreter.NewResult(false, map[codeinterpreter.MIMEType]any{
		"text/plain": "<Figure>",
		"image/png":  "cGll",
	})
	require.NoError(t, err)

	exec := &codeinterpreter.Execution{
		Results: []*codeinterpreter.Result{plot, main},
		Logs: codeinterpreter.Logs{
			Stdout: []string{"computing"},
			Stderr: []string{"warn"},
		},
	}

	var buf bytes.Buffer
	termfmt.Summary(&buf, exec)
	out := buf.String()

	assert.Contains(t, out, "main result:")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "[display] formats: image/png, text/plain")
	assert.Contains(t, out, "stdout (1 lines):")
	assert.Contains(t, out, "stderr (1 lines):")
}

func TestSummaryWithError(t *testing.T) {
	exec := &codeinterpreter.Execution{
		Error: &codeinterpreter.Error{
			Name:         "ValueError",
			Value:        "bad input",
			TracebackRaw: []string{"Traceback:", "  cell 1"},
		},
	}

	var buf bytes.Buffer
	termfmt.Summary(&buf, exec)
	out := buf.String()

	assert.Contains(t, out, "no main result")
	assert.Contains(t, out, "error ValueError: bad input")
	assert.Contains(t, out, "Traceback:\n  cell 1")
}
