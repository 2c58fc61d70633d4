// Package scenario parses behaviour files: TOML descriptions pairing a
// recorded trace with the outcome its replayed execution must show.
package scenario

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	codeinterpreter "github.com/FellowTraveler/code-interpreter"
)

// Expect describes the outcome a replayed execution must show. Nil fields
// are not checked.
type Expect struct {
	// Text is the expected main-result text.
	Text *string `toml:"text"`
	// NoMainResult asserts that no result is flagged as the cell's return
	// value.
	NoMainResult bool `toml:"no_main_result"`
	// ErrorName is the expected exception class; an empty string asserts
	// the execution succeeded.
	ErrorName *string `toml:"error_name"`

	Results     *int `toml:"results"`
	StdoutLines *int `toml:"stdout_lines"`
	StderrLines *int `toml:"stderr_lines"`

	// MIMETypes lists types that must appear in some result of the
	// execution.
	MIMETypes []string `toml:"mime_types"`
}

// Case is one runnable scenario converted from TOML.
type Case struct {
	Name   string `toml:"name"`
	Trace  string `toml:"trace"`
	Expect Expect `toml:"expect"`
}

type root struct {
	Cases []Case `toml:"scenarios"`
}

// Parse reads a behaviour TOML file. Trace paths are resolved relative to
// the file's directory.
func Parse(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read behaviour file: %w", err)
	}
	var r root
	if err := toml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse behaviour file: %w", err)
	}
	dir := filepath.Dir(path)
	for i := range r.Cases {
		c := &r.Cases[i]
		if c.Name == "" {
			return nil, fmt.Errorf("scenario %d has no name", i+1)
		}
		if c.Trace == "" {
			return nil, fmt.Errorf("scenario %q has no trace", c.Name)
		}
		if !filepath.IsAbs(c.Trace) {
			c.Trace = filepath.Join(dir, c.Trace)
		}
	}
	return r.Cases, nil
}

// Check compares a replayed execution against the case's expectations and
// returns an error naming the first divergent field.
func Check(c Case, exec *codeinterpreter.Execution) error {
	text, hasMain := exec.Text()
	if c.Expect.NoMainResult && hasMain {
		return fmt.Errorf("scenario %q: expected no main result, got %q", c.Name, text)
	}
	if c.Expect.Text != nil {
		if !hasMain {
			return fmt.Errorf("scenario %q: expected main result %q, got none", c.Name, *c.Expect.Text)
		}
		if text != *c.Expect.Text {
			return fmt.Errorf("scenario %q: main result = %q, want %q", c.Name, text, *c.Expect.Text)
		}
	}
	if c.Expect.ErrorName != nil {
		switch {
		case *c.Expect.ErrorName == "" && exec.Error != nil:
			return fmt.Errorf("scenario %q: unexpected error %s: %s", c.Name, exec.Error.Name, exec.Error.Value)
		case *c.Expect.ErrorName != "" && exec.Error == nil:
			return fmt.Errorf("scenario %q: expected error %q, execution succeeded", c.Name, *c.Expect.ErrorName)
		case *c.Expect.ErrorName != "" && exec.Error.Name != *c.Expect.ErrorName:
			return fmt.Errorf("scenario %q: error name = %q, want %q", c.Name, exec.Error.Name, *c.Expect.ErrorName)
		}
	}
	if c.Expect.Results != nil && len(exec.Results) != *c.Expect.Results {
		return fmt.Errorf("scenario %q: result count = %d, want %d", c.Name, len(exec.Results), *c.Expect.Results)
	}
	if c.Expect.StdoutLines != nil && len(exec.Logs.Stdout) != *c.Expect.StdoutLines {
		return fmt.Errorf("scenario %q: stdout lines = %d, want %d", c.Name, len(exec.Logs.Stdout), *c.Expect.StdoutLines)
	}
	if c.Expect.StderrLines != nil && len(exec.Logs.Stderr) != *c.Expect.StderrLines {
		return fmt.Errorf("scenario %q: stderr lines = %d, want %d", c.Name, len(exec.Logs.Stderr), *c.Expect.StderrLines)
	}
	for _, mt := range c.Expect.MIMETypes {
		if !executionHasType(exec, codeinterpreter.MIMEType(mt)) {
			return fmt.Errorf("scenario %q: no result carries MIME type %q", c.Name, mt)
		}
	}
	return nil
}

func executionHasType(exec *codeinterpreter.Execution, mt codeinterpreter.MIMEType) bool {
	for _, r := range exec.Results {
		if _, ok := r.Representation(mt); ok {
			return true
		}
	}
	return false
}
