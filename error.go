package codeinterpreter

import (
	"fmt"
	"strings"
)

// Error describes an uncaught exception raised by the user's code inside a
// healthy kernel. It is carried as data on an Execution, never raised by
// this package. Immutable after construction.
type Error struct {
	// Name of the exception class, e.g. "ZeroDivisionError".
	Name string `json:"name"`
	// Value is the exception message.
	Value string `json:"value"`
	// TracebackRaw holds the traceback lines as emitted by the kernel.
	TracebackRaw []string `json:"traceback_raw"`
}

// Traceback returns the traceback joined into a single string.
func (e *Error) Traceback() string {
	return strings.Join(e.TracebackRaw, "\n")
}

// KernelError reports that a kernel management operation failed at the
// control layer, e.g. a restart request that never reached the backend.
// It is distinct from Error, which represents a failure of the user's code
// inside a successfully operating kernel. This package only defines the
// type; the external control layer raises it.
type KernelError struct {
	// Op is the kernel operation that failed, e.g. "restart".
	Op string
	// Err is the underlying cause, may be nil.
	Err error
}

func (e *KernelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("kernel %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("kernel %s failed", e.Op)
}

func (e *KernelError) Unwrap() error {
	return e.Err
}
