package collect

import (
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"

	codeinterpreter "github.com/FellowTraveler/code-interpreter"
)

// Registry routes events for concurrently in-flight executions to their
// builders by execution id. Starting, looking up and finishing runs is safe
// from multiple goroutines; delivering events to one builder still follows
// the single-writer rule.
type Registry struct {
	inflight *xsync.MapOf[string, *Builder]
}

func NewRegistry() *Registry {
	return &Registry{inflight: xsync.NewMapOf[string, *Builder]()}
}

// Start registers a builder for the given execution id and returns it. An
// empty id gets a minted UUID. When the id is already in flight the existing
// builder is returned, so redelivered start events stay harmless.
func (g *Registry) Start(id string, opts ...BuilderOption) *Builder {
	if id == "" {
		id = uuid.NewString()
	}
	b, _ := g.inflight.LoadOrStore(id, NewBuilder(append(opts, WithID(id))...))
	return b
}

// Get returns the builder for an in-flight execution.
func (g *Registry) Get(id string) (*Builder, bool) {
	return g.inflight.Load(id)
}

// Finish ends the run, removes it from the registry and returns the
// assembled execution. The second return is false when the id is unknown or
// already finished.
func (g *Registry) Finish(id string) (*codeinterpreter.Execution, bool) {
	b, ok := g.inflight.LoadAndDelete(id)
	if !ok {
		return nil, false
	}
	b.End()
	return b.Execution(), true
}

// Len returns the number of in-flight executions.
func (g *Registry) Len() int {
	return g.inflight.Size()
}
