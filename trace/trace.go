// Package trace reads recorded kernel output traces so executions can be
// replayed through the collector without a live kernel. A trace is a
// JSON-lines file of decoded output events, optionally zstd-compressed.
package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	codeinterpreter "github.com/FellowTraveler/code-interpreter"
	"github.com/FellowTraveler/code-interpreter/collect"
)

// Event kinds appearing in a trace.
const (
	EventStdout = "stdout"
	EventStderr = "stderr"
	EventResult = "result"
	EventError  = "error"
	EventEnd    = "end"
)

// Event is one recorded kernel output event.
type Event struct {
	Type string `json:"type"`

	// stream events
	Line string `json:"line,omitempty"`

	// result events
	IsMainResult bool                             `json:"is_main_result,omitempty"`
	Data         map[codeinterpreter.MIMEType]any `json:"data,omitempty"`

	// error events
	Name      string   `json:"name,omitempty"`
	Value     string   `json:"value,omitempty"`
	Traceback []string `json:"traceback,omitempty"`
}

// Read decodes a JSON-lines event stream. Blank lines are skipped; a
// malformed line fails with its line number.
func Read(r io.Reader) ([]Event, error) {
	var events []Event
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var ev Event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			return nil, fmt.Errorf("trace line %d: %w", lineNo, err)
		}
		events = append(events, ev)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return events, nil
}

// Load reads a trace file. Files with a .zst suffix are decompressed
// transparently.
func Load(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open zstd trace %s: %w", path, err)
		}
		defer dec.Close()
		r = dec
	}
	return Read(r)
}

// Apply replays events into a sink in order. When the trace carries no
// explicit end event the sink is ended after the last event, so a truncated
// recording still yields a finished execution.
func Apply(events []Event, sink collect.Sink) error {
	ended := false
	for i, ev := range events {
		switch ev.Type {
		case EventStdout:
			sink.Stdout(ev.Line)
		case EventStderr:
			sink.Stderr(ev.Line)
		case EventResult:
			if err := sink.Result(ev.IsMainResult, ev.Data); err != nil {
				return fmt.Errorf("trace event %d: %w", i+1, err)
			}
		case EventError:
			sink.Error(ev.Name, ev.Value, ev.Traceback)
		case EventEnd:
			sink.End()
			ended = true
		default:
			return fmt.Errorf("trace event %d: unknown type %q", i+1, ev.Type)
		}
	}
	if !ended {
		sink.End()
	}
	return nil
}
