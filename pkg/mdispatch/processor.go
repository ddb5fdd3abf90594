package mdispatch

import (
	"context"
	"fmt"

	"github.com/LerianStudio/mdispatch/common"
	"github.com/LerianStudio/mdispatch/pkg/mfacet"
)

// ProcessorFacet implements the accept -> queue -> process pipeline: it
// attaches to a router and a queue, optionally a queries facet (for the
// synchronous query fast-path), a listeners facet (post-process
// observers) and a scheduler facet (processTick override).
type ProcessorFacet struct {
	mfacet.Base

	router    *RouterFacet
	queue     *QueueFacet
	queries   *QueriesFacet
	listeners *ListenersFacet
	scheduler *SchedulerFacet

	stats     Statistics
	sendError func(err error, meta map[string]any)
}

// NewProcessorFacet returns a factory for the "processor" kind. It is
// built bare; AttachDeps wires in "router" and "queue" (required) plus
// "queries", "listeners" and "scheduler" (consulted if present) once
// every kind in this hook's Attach has been built.
func NewProcessorFacet(source string) func() (mfacet.Facet, error) {
	return func() (mfacet.Facet, error) {
		return &ProcessorFacet{
			Base:      mfacet.NewBase("processor", source),
			sendError: func(error, map[string]any) {},
		}, nil
	}
}

// AttachDeps wires the processor to its required router and queue, plus
// any optional queries/listeners/scheduler facet present in deps.
func (p *ProcessorFacet) AttachDeps(deps map[string]mfacet.Facet) error {
	router, _ := deps["router"].(*RouterFacet)
	queue, _ := deps["queue"].(*QueueFacet)

	if router == nil || queue == nil {
		return common.DependencyError{
			EntityType: "processor",
			Title:      "Missing Required Attach",
			Message:    "processor requires both router and queue to be attached",
		}
	}

	p.router = router
	p.queue = queue
	p.queries, _ = deps["queries"].(*QueriesFacet)
	p.listeners, _ = deps["listeners"].(*ListenersFacet)
	p.scheduler, _ = deps["scheduler"].(*SchedulerFacet)

	return nil
}

// SetSendError installs the best-effort error channel invoked by
// processMessageCore on handler failure. Typically wired by the owning
// MessageSystem to its own sendError.
func (p *ProcessorFacet) SetSendError(fn func(err error, meta map[string]any)) {
	if fn != nil {
		p.sendError = fn
	}
}

// Statistics returns a snapshot of the processor's counters.
func (p *ProcessorFacet) Statistics() Snapshot { return p.stats.Snapshot() }

// Accept routes message to the query fast-path (if it is a query and a
// queries facet is attached) or enqueues it. It always returns true on
// success; it returns false with an error when the query fast-path's
// handler fails or when a bounded queue is full.
func (p *ProcessorFacet) Accept(ctx context.Context, message *Message, currentPiece any) (bool, error) {
	if currentPiece != nil {
		message.RuntimeMeta["currentPiece"] = currentPiece
	}

	if message.IsQuery && p.queries != nil {
		result, err := p.queries.ProcessQuery(message, map[string]any{})
		if err != nil {
			return false, err
		}

		message.QueryResult = result
		p.stats.queriesAnswered.Add(1)

		return true, nil
	}

	if err := p.queue.Enqueue(message); err != nil {
		return false, err
	}

	p.stats.messagesAccepted.Add(1)

	return true, nil
}

// ProcessTick dequeues one message and runs it through
// processMessageCore, or returns (nil, nil) when the queue is empty. If
// a scheduler facet is attached, its Process override runs first and
// any result or error it gives is returned; while the scheduler is
// paused the tick does no work and returns (nil, nil).
func (p *ProcessorFacet) ProcessTick(ctx context.Context, options map[string]any) (*Result, error) {
	if p.scheduler != nil {
		res, err := p.scheduler.Process(ctx)
		if res != nil || err != nil {
			return res, err
		}

		p.scheduler.mu.Lock()
		paused := p.scheduler.paused
		p.scheduler.mu.Unlock()

		if paused {
			return nil, nil
		}
	}

	msg, ok := p.queue.Dequeue()
	if !ok {
		return nil, nil
	}

	result := p.processMessageCore(ctx, msg, options)

	return &result, nil
}

// ProcessImmediately never queues message; it runs processMessageCore
// directly.
func (p *ProcessorFacet) ProcessImmediately(ctx context.Context, message *Message, options map[string]any) Result {
	return p.processMessageCore(ctx, message, options)
}

// ProcessMessage is the general entry point: options are applied as
// given (the caller is responsible for any merging with per-message
// defaults before calling in).
func (p *ProcessorFacet) ProcessMessage(ctx context.Context, message *Message, options map[string]any) Result {
	return p.processMessageCore(ctx, message, options)
}

func (p *ProcessorFacet) processMessageCore(ctx context.Context, message *Message, options map[string]any) Result {
	tracer := common.NewTracerFromContext(ctx)
	ctx, span := tracer.Start(ctx, "mdispatch.processMessageCore")
	defer span.End()

	resolved, ok := p.router.ResolveRoute(message.Path)
	if !ok {
		result := Result{
			Success: false,
			Error:   fmt.Sprintf("No route handler found: %s", message.Path),
		}

		if p.listeners != nil {
			p.listeners.notify(message, result)
		}

		return result
	}

	hResult, err := resolved.Handler(message, resolved.Params, options)

	var result Result

	if err != nil || !hResult.Success {
		p.stats.messagesFailed.Add(1)

		errMsg := hResult.Error
		if err != nil {
			errMsg = err.Error()
		}

		p.sendError(fmt.Errorf("%s", errMsg), map[string]any{"path": message.Path, "messageId": message.ID})

		result = Result{Success: false, Error: errMsg}
	} else {
		p.stats.messagesProcessed.Add(1)
		result = hResult
	}

	if message.CorrelationID != "" {
		result.CorrelationID = message.CorrelationID
	}

	if p.listeners != nil {
		p.listeners.notify(message, result)
	}

	return result
}
