package collect

import (
	"errors"

	codeinterpreter "github.com/FellowTraveler/code-interpreter"
)

// Sink receives the decoded output events of one code-snippet run in
// arrival order: stream lines, output records, the error if the run raised
// one, and a final End. The transport layer that decodes kernel messages
// drives it; implementations are not safe for concurrent use unless stated.
type Sink interface {
	Stdout(line string)
	Stderr(line string)

	// Result delivers one MIME-keyed output record. isMainResult marks the
	// record the kernel reported as the cell's return value.
	Result(isMainResult bool, data map[codeinterpreter.MIMEType]any) error

	// Error delivers the uncaught exception that ended the run.
	Error(name, value string, traceback []string)

	// End signals that no further events will arrive.
	End()
}

// Fanout forwards every event to each wrapped sink in order, so a single
// run can feed a builder and a terminal printer at the same time.
type Fanout struct {
	sinks []Sink
}

func NewFanout(sinks ...Sink) *Fanout {
	return &Fanout{sinks: sinks}
}

func (f *Fanout) Stdout(line string) {
	for _, s := range f.sinks {
		s.Stdout(line)
	}
}

func (f *Fanout) Stderr(line string) {
	for _, s := range f.sinks {
		s.Stderr(line)
	}
}

// Result forwards the record to every sink even when one of them fails, and
// returns the failures joined.
func (f *Fanout) Result(isMainResult bool, data map[codeinterpreter.MIMEType]any) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Result(isMainResult, data); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *Fanout) Error(name, value string, traceback []string) {
	for _, s := range f.sinks {
		s.Error(name, value, traceback)
	}
}

func (f *Fanout) End() {
	for _, s := range f.sinks {
		s.End()
	}
}
