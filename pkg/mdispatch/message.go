// Package mdispatch implements the message dispatch core: the Message
// type and the router/queue/processor/queries/scheduler/listeners/
// hierarchy facets that together implement the accept -> queue ->
// process pipeline.
package mdispatch

import "github.com/LerianStudio/mdispatch/common"

// Message is the unit of dispatch. RuntimeMeta carries transport-injected
// fields (e.g. a WebSocket "currentPiece") that the core never
// interprets. QueryResult is set by a handler when IsQuery is true and
// read back by the caller after accept returns. SyncResult is set by a
// processor that runs a non-query message to completion inside Accept
// itself (SynchronousFacet) so a caller waiting on Accept's return can
// still thread the outcome back to its own response instead of
// discarding it; a queued ProcessorFacet leaves it nil since its Accept
// only enqueues.
type Message struct {
	ID            string
	Path          string
	Body          any
	CorrelationID string
	IsQuery       bool
	RuntimeMeta   map[string]any
	QueryResult   any
	SyncResult    *Result
}

// NewMessage builds a Message with a fresh UUIDv7 ID for path carrying
// body. CorrelationID defaults to the generated ID when not overridden
// by the caller.
func NewMessage(path string, body any) *Message {
	id := common.GenerateUUIDv7().String()

	return &Message{
		ID:            id,
		Path:          path,
		Body:          body,
		CorrelationID: id,
		RuntimeMeta:   make(map[string]any),
	}
}

// Result is what processMessageCore and its callers (processTick,
// processImmediately, processMessage) return.
type Result struct {
	Success       bool
	Data          any
	Error         string
	CorrelationID string
}

// HandlerFunc is a registered route's implementation.
type HandlerFunc func(message *Message, params map[string]string, options map[string]any) (Result, error)
