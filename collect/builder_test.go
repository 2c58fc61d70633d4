package collect_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	codeinterpreter "github.com/FellowTraveler/code-interpreter"
	"github.com/FellowTraveler/code-interpreter/collect"
)

func TestBuilderAssemblesExecution(t *testing.T) {
	b := collect.NewBuilder()

	b.Stdout("computing...")
	b.Stdout("done")
	b.Stderr("deprecation warning")
	err := b.Result(false, map[codeinterpreter.MIMEType]any{
		"text/plain": "a plot",
		"image/png":  "cGll",
	})
	require.NoError(t, err)
	err = b.Result(true, map[codeinterpreter.MIMEType]any{
		"text/plain": "42",
	})
	require.NoError(t, err)
	b.End()

	require.True(t, b.Done())
	exec := b.Execution()
	require.Len(t, exec.Results, 2)
	assert.Equal(t, []string{"computing...", "done"}, exec.Logs.Stdout)
	assert.Equal(t, []string{"deprecation warning"}, exec.Logs.Stderr)
	assert.Nil(t, exec.Error)

	text, ok := exec.Text()
	require.True(t, ok)
	assert.Equal(t, "42", text)
}

func TestBuilderFailedExecution(t *testing.T) {
	b := collect.NewBuilder()
	b.Error("NameError", "name 'x' is not defined", []string{"Traceback:", "  cell 1"})
	b.End()

	exec := b.Execution()
	require.NotNil(t, exec.Error)
	assert.Equal(t, "NameError", exec.Error.Name)
	assert.Equal(t, "Traceback:\n  cell 1", exec.Error.Traceback())
	_, ok := exec.Text()
	assert.False(t, ok)
}

func TestBuilderRejectsRecordWithoutText(t *testing.T) {
	b := collect.NewBuilder()
	err := b.Result(true, map[codeinterpreter.MIMEType]any{
		"image/png": "cGll",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, codeinterpreter.ErrMissingText)
	assert.Empty(t, b.Execution().Results)
}

func TestBuilderWarnsOnSecondMainResult(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	b := collect.NewBuilder(collect.WithID("run-1"), collect.WithLogger(logger))

	require.NoError(t, b.Result(true, map[codeinterpreter.MIMEType]any{"text/plain": "first"}))
	require.NoError(t, b.Result(true, map[codeinterpreter.MIMEType]any{"text/plain": "second"}))

	assert.Contains(t, buf.String(), "second main result")
	assert.Contains(t, buf.String(), "run-1")

	// both records are kept, the first one wins
	exec := b.Execution()
	require.Len(t, exec.Results, 2)
	text, ok := exec.Text()
	require.True(t, ok)
	assert.Equal(t, "first", text)
}

func TestBuilderMintsID(t *testing.T) {
	a := collect.NewBuilder()
	b := collect.NewBuilder()
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())

	c := collect.NewBuilder(collect.WithID("fixed"))
	assert.Equal(t, "fixed", c.ID())
}

func TestFanoutForwardsToEverySink(t *testing.T) {
	a := collect.NewBuilder()
	b := collect.NewBuilder()
	f := collect.NewFanout(a, b)

	f.Stdout("out")
	f.Stderr("err")
	require.NoError(t, f.Result(true, map[codeinterpreter.MIMEType]any{"text/plain": "42"}))
	f.Error("E", "v", nil)
	f.End()

	for _, sink := range []*collect.Builder{a, b} {
		exec := sink.Execution()
		assert.Equal(t, []string{"out"}, exec.Logs.Stdout)
		assert.Equal(t, []string{"err"}, exec.Logs.Stderr)
		assert.Len(t, exec.Results, 1)
		require.NotNil(t, exec.Error)
		assert.True(t, sink.Done())
	}
}

func TestFanoutJoinsResultErrors(t *testing.T) {
	f := collect.NewFanout(collect.NewBuilder(), collect.NewBuilder())
	err := f.Result(false, map[codeinterpreter.MIMEType]any{"image/png": "cGll"})
	require.Error(t, err)
	assert.ErrorIs(t, err, codeinterpreter.ErrMissingText)
}
