package mdispatch

import (
	"context"
	"sync"

	"github.com/LerianStudio/mdispatch/pkg/mfacet"
)

// SchedulerFacet, when attached, overrides a processor's processTick
// with Process, allowing batched or time-sliced dispatch instead of one
// message per tick. Pause/Resume gate whether Process does anything.
type SchedulerFacet struct {
	mfacet.Base

	mu      sync.Mutex
	paused  bool
	process func(ctx context.Context) (*Result, error)
}

// NewSchedulerFacet returns a factory for the "scheduler" kind. process
// is the override for processTick; it receives the same "dequeue one,
// process it" contract unless the caller wants batching.
func NewSchedulerFacet(source string, process func(ctx context.Context) (*Result, error)) func() (mfacet.Facet, error) {
	return func() (mfacet.Facet, error) {
		return &SchedulerFacet{
			Base:    mfacet.NewBase("scheduler", source),
			process: process,
		}, nil
	}
}

// Pause stops Process from doing work until Resume.
func (s *SchedulerFacet) Pause() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
}

// Resume clears a prior Pause.
func (s *SchedulerFacet) Resume() {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
}

// Process runs the scheduler's override, or (nil, nil) while paused or
// if no override was supplied.
func (s *SchedulerFacet) Process(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	paused := s.paused
	s.mu.Unlock()

	if paused || s.process == nil {
		return nil, nil
	}

	return s.process(ctx)
}
