package codeinterpreter

// Logs holds output printed to the standard streams during execution,
// usually by print statements, warnings and subprocesses.
//
// The slices are appended to incrementally by the streaming layer that feeds
// this module. No internal locking is provided; at most one writer may
// mutate a given Logs value at a time.
type Logs struct {
	Stdout []string `json:"stdout"`
	Stderr []string `json:"stderr"`
}

// Execution is the full outcome of running one code snippet: every output
// record in emission order, the accumulated logs, and the error if the
// snippet raised one. Once handed to a caller it must be treated as frozen.
type Execution struct {
	// Results lists the outputs of the cell: the interactively evaluated
	// last expression plus any display calls, in emission order.
	Results []*Result `json:"results"`

	Logs Logs `json:"logs"`

	// Error is set iff the executed code raised an uncaught exception.
	Error *Error `json:"error,omitempty"`
}

// Text returns the plain-text representation of the execution's main result,
// i.e. the first Result flagged as the cell's return value. A cell that only
// printed or displayed has no main result; that is a valid outcome reported
// as ok == false, not an error.
func (e *Execution) Text() (string, bool) {
	for _, r := range e.Results {
		if r.IsMainResult {
			return r.Text, true
		}
	}
	return "", false
}
