package mdispatch

import (
	"context"
	"fmt"

	"github.com/LerianStudio/mdispatch/common"
	"github.com/LerianStudio/mdispatch/pkg/mfacet"
)

// SynchronousFacet is a drop-in replacement for ProcessorFacet that
// never queues: Accept runs processMessageCore to completion before
// returning. It is chosen as a Subsystem's coreProcessor in preference
// to a plain processor facet whenever both are attached.
type SynchronousFacet struct {
	mfacet.Base

	router    *RouterFacet
	queries   *QueriesFacet
	listeners *ListenersFacet

	stats     Statistics
	sendError func(err error, meta map[string]any)
}

// NewSynchronousFacet returns a factory for the "synchronous" kind. It
// is built bare; AttachDeps wires in "router" (required) plus "queries"
// and "listeners" (consulted if present) once this hook's Attach kinds
// have been built.
func NewSynchronousFacet(source string) func() (mfacet.Facet, error) {
	return func() (mfacet.Facet, error) {
		return &SynchronousFacet{
			Base:      mfacet.NewBase("synchronous", source),
			sendError: func(error, map[string]any) {},
		}, nil
	}
}

// AttachDeps wires the synchronous processor to its required router,
// plus any optional queries/listeners facet present in deps.
func (s *SynchronousFacet) AttachDeps(deps map[string]mfacet.Facet) error {
	router, _ := deps["router"].(*RouterFacet)
	if router == nil {
		return common.DependencyError{
			EntityType: "synchronous",
			Title:      "Missing Required Attach",
			Message:    "synchronous processor requires router to be attached",
		}
	}

	s.router = router
	s.queries, _ = deps["queries"].(*QueriesFacet)
	s.listeners, _ = deps["listeners"].(*ListenersFacet)

	return nil
}

// SetSendError installs the best-effort error channel invoked on
// handler failure.
func (s *SynchronousFacet) SetSendError(fn func(err error, meta map[string]any)) {
	if fn != nil {
		s.sendError = fn
	}
}

// Statistics returns a snapshot of the processor's counters.
func (s *SynchronousFacet) Statistics() Snapshot { return s.stats.Snapshot() }

// Accept runs message to completion synchronously and returns true once
// processing has finished. The outcome is threaded back onto message
// itself (QueryResult for queries, SyncResult otherwise) so a transport
// that called Accept directly can still report it instead of treating
// the bool as the whole answer.
func (s *SynchronousFacet) Accept(ctx context.Context, message *Message, currentPiece any) (bool, error) {
	if currentPiece != nil {
		message.RuntimeMeta["currentPiece"] = currentPiece
	}

	if message.IsQuery && s.queries != nil {
		result, err := s.queries.ProcessQuery(message, map[string]any{})
		if err != nil {
			return false, err
		}

		message.QueryResult = result
		s.stats.queriesAnswered.Add(1)

		return true, nil
	}

	result := s.ProcessImmediately(ctx, message, nil)
	message.SyncResult = &result

	return true, nil
}

// ProcessImmediately and ProcessTick exist so SynchronousFacet satisfies
// the same processor-shaped usage as ProcessorFacet; ProcessTick always
// reports an empty queue since there is nothing to dequeue.
func (s *SynchronousFacet) ProcessImmediately(ctx context.Context, message *Message, options map[string]any) Result {
	return s.processMessageCore(ctx, message, options)
}

func (s *SynchronousFacet) ProcessMessage(ctx context.Context, message *Message, options map[string]any) Result {
	return s.processMessageCore(ctx, message, options)
}

// ProcessTick is a no-op for a synchronous processor: messages are
// processed in Accept, so there is never anything queued to dequeue.
func (s *SynchronousFacet) ProcessTick(ctx context.Context, options map[string]any) (*Result, error) {
	return nil, nil
}

func (s *SynchronousFacet) processMessageCore(ctx context.Context, message *Message, options map[string]any) Result {
	tracer := common.NewTracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "mdispatch.processMessageCore")
	defer span.End()

	resolved, ok := s.router.ResolveRoute(message.Path)
	if !ok {
		result := Result{
			Success: false,
			Error:   fmt.Sprintf("No route handler found: %s", message.Path),
		}

		if s.listeners != nil {
			s.listeners.notify(message, result)
		}

		return result
	}

	hResult, err := resolved.Handler(message, resolved.Params, options)

	var result Result

	if err != nil || !hResult.Success {
		s.stats.messagesFailed.Add(1)

		errMsg := hResult.Error
		if err != nil {
			errMsg = err.Error()
		}

		s.sendError(fmt.Errorf("%s", errMsg), map[string]any{"path": message.Path, "messageId": message.ID})

		result = Result{Success: false, Error: errMsg}
	} else {
		s.stats.messagesProcessed.Add(1)
		result = hResult
	}

	if message.CorrelationID != "" {
		result.CorrelationID = message.CorrelationID
	}

	if s.listeners != nil {
		s.listeners.notify(message, result)
	}

	return result
}
