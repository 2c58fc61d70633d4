package collect

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	codeinterpreter "github.com/FellowTraveler/code-interpreter"
)

// Builder gathers the output events of one run and assembles a complete
// codeinterpreter.Execution. It implements Sink.
//
// A Builder belongs to a single run and expects a single writer; the
// streaming layer delivering events must not call it from multiple
// goroutines at once.
type Builder struct {
	id     string
	logger *slog.Logger

	exec    codeinterpreter.Execution
	hasMain bool
	done    bool
}

type BuilderOption func(*Builder)

// WithID sets the execution id. Without it the builder mints a UUID.
func WithID(id string) BuilderOption {
	return func(b *Builder) { b.id = id }
}

// WithLogger sets the logger used for event diagnostics. Without it the
// builder logs nowhere.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) { b.logger = logger }
}

func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	if b.id == "" {
		b.id = uuid.NewString()
	}
	if b.logger == nil {
		b.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return b
}

// ID returns the execution id this builder collects for.
func (b *Builder) ID() string {
	return b.id
}

// Stdout implements Sink.
func (b *Builder) Stdout(line string) {
	b.exec.Logs.Stdout = append(b.exec.Logs.Stdout, line)
}

// Stderr implements Sink.
func (b *Builder) Stderr(line string) {
	b.exec.Logs.Stderr = append(b.exec.Logs.Stderr, line)
}

// Result implements Sink. It normalizes the record and appends it to the
// execution; a record without a text/plain entry is rejected unchanged.
func (b *Builder) Result(isMainResult bool, data map[codeinterpreter.MIMEType]any) error {
	r, err := codeinterpreter.NewResult(isMainResult, data)
	if err != nil {
		return fmt.Errorf("collect result for execution %s: %w", b.id, err)
	}
	if isMainResult && b.hasMain {
		// the kernel should flag exactly one record as the cell's return
		// value; tolerate violations, first one wins in Execution.Text
		b.logger.Warn("second main result for execution, keeping first",
			"execution_id", b.id)
	}
	b.hasMain = b.hasMain || isMainResult
	b.exec.Results = append(b.exec.Results, r)
	return nil
}

// Error implements Sink.
func (b *Builder) Error(name, value string, traceback []string) {
	b.exec.Error = &codeinterpreter.Error{
		Name:         name,
		Value:        value,
		TracebackRaw: traceback,
	}
}

// End implements Sink.
func (b *Builder) End() {
	b.done = true
}

// Done reports whether the run's End event has arrived.
func (b *Builder) Done() bool {
	return b.done
}

// Execution returns the assembled aggregate. Call it after End; the result
// must be treated as frozen from then on.
func (b *Builder) Execution() *codeinterpreter.Execution {
	return &b.exec
}
