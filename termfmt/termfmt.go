// Package termfmt renders collected execution output for a terminal. It is
// a debugging surface, not the notebook-style rich display a front-end
// would build on Result's representations.
package termfmt

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"

	codeinterpreter "github.com/FellowTraveler/code-interpreter"
)

// Payloads larger than this rectangle get trimmed before display so base64
// image blobs do not flood the terminal.
const (
	MaxPayloadHeight = 20
	MaxPayloadWidth  = 100
)

var (
	stderrColor = color.New(color.FgYellow)
	errorColor  = color.New(color.FgRed, color.Bold)
	mainColor   = color.New(color.FgGreen, color.Bold)
	faintColor  = color.New(color.Faint)
)

// Printer writes events to a terminal as they arrive. It implements
// collect.Sink.
type Printer struct {
	w         io.Writer
	startedAt time.Time
}

func New(w io.Writer) *Printer {
	return &Printer{w: w, startedAt: time.Now()}
}

func (p *Printer) Stdout(line string) {
	fmt.Fprintln(p.w, line)
}

func (p *Printer) Stderr(line string) {
	stderrColor.Fprintln(p.w, line)
}

func (p *Printer) Result(isMainResult bool, data map[codeinterpreter.MIMEType]any) error {
	r, err := codeinterpreter.NewResult(isMainResult, data)
	if err != nil {
		return err
	}
	printResult(p.w, r)
	return nil
}

func (p *Printer) Error(name, value string, traceback []string) {
	errorColor.Fprintf(p.w, "!! %s: %s\n", name, value)
	e := codeinterpreter.Error{Name: name, Value: value, TracebackRaw: traceback}
	if tb := e.Traceback(); tb != "" {
		fmt.Fprintln(p.w, trimToRect(tb, MaxPayloadHeight, MaxPayloadWidth))
	}
}

func (p *Printer) End() {
	dur := time.Since(p.startedAt).Round(time.Millisecond)
	faintColor.Fprintf(p.w, "== execution finished in %s ==\n", dur)
}

// Summary prints a finished execution: the main result, other outputs,
// accumulated logs and the error if one occurred.
func Summary(w io.Writer, exec *codeinterpreter.Execution) {
	if text, ok := exec.Text(); ok {
		mainColor.Fprintln(w, "main result:")
		fmt.Fprintln(w, trimToRect(text, MaxPayloadHeight, MaxPayloadWidth))
	} else {
		faintColor.Fprintln(w, "no main result")
	}
	for _, r := range exec.Results {
		if r.IsMainResult {
			continue
		}
		printResult(w, r)
	}
	if len(exec.Logs.Stdout) > 0 {
		faintColor.Fprintf(w, "stdout (%d lines):\n", len(exec.Logs.Stdout))
		for _, line := range exec.Logs.Stdout {
			fmt.Fprintln(w, trimToRect(line, 1, MaxPayloadWidth))
		}
	}
	if len(exec.Logs.Stderr) > 0 {
		faintColor.Fprintf(w, "stderr (%d lines):\n", len(exec.Logs.Stderr))
		for _, line := range exec.Logs.Stderr {
			stderrColor.Fprintln(w, trimToRect(line, 1, MaxPayloadWidth))
		}
	}
	if exec.Error != nil {
		errorColor.Fprintf(w, "error %s: %s\n", exec.Error.Name, exec.Error.Value)
		if tb := exec.Error.Traceback(); tb != "" {
			fmt.Fprintln(w, trimToRect(tb, MaxPayloadHeight, MaxPayloadWidth))
		}
	}
}

func printResult(w io.Writer, r *codeinterpreter.Result) {
	marker := "display"
	if r.IsMainResult {
		marker = "result"
	}
	faintColor.Fprintf(w, "[%s] formats: %s\n", marker, formatList(r))
	fmt.Fprintln(w, trimToRect(r.Text, MaxPayloadHeight, MaxPayloadWidth))
}

func formatList(r *codeinterpreter.Result) string {
	types := r.Keys().ToSlice()
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	out := ""
	for i, mt := range types {
		if i > 0 {
			out += ", "
		}
		out += string(mt)
	}
	return out
}
