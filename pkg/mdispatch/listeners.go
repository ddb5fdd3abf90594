package mdispatch

import (
	"sync"

	"github.com/LerianStudio/mdispatch/pkg/mfacet"
)

// ListenerFunc observes a Result after processMessageCore runs,
// regardless of success or failure.
type ListenerFunc func(message *Message, result Result)

// ListenersFacet fans a processed message out to any number of
// observers; observers cannot affect the result they are shown.
type ListenersFacet struct {
	mfacet.Base

	mu        sync.Mutex
	listeners []ListenerFunc
}

// NewListenersFacet returns a factory for the "listeners" kind.
func NewListenersFacet(source string) func() (mfacet.Facet, error) {
	return func() (mfacet.Facet, error) {
		return &ListenersFacet{Base: mfacet.NewBase("listeners", source)}, nil
	}
}

// AddListener registers fn to be called after every processMessageCore.
func (l *ListenersFacet) AddListener(fn ListenerFunc) {
	l.mu.Lock()
	l.listeners = append(l.listeners, fn)
	l.mu.Unlock()
}

// notify calls every registered listener in registration order.
func (l *ListenersFacet) notify(message *Message, result Result) {
	l.mu.Lock()
	fns := make([]ListenerFunc, len(l.listeners))
	copy(fns, l.listeners)
	l.mu.Unlock()

	for _, fn := range fns {
		fn(message, result)
	}
}
