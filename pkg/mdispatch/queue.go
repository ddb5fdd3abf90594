package mdispatch

import (
	"sync"

	"github.com/LerianStudio/mdispatch/common"
	cn "github.com/LerianStudio/mdispatch/common/constant"
	"github.com/LerianStudio/mdispatch/pkg/mfacet"
)

// QueueFacet is a FIFO with an optional bounded capacity. Enqueue
// appends; Dequeue pops from the front by re-slicing the backing slice.
type QueueFacet struct {
	mfacet.Base

	mu       sync.Mutex
	items    []*Message
	capacity int // 0 means unbounded
}

// NewQueueFacet returns a factory for the "queue" kind with the given
// capacity (0 for unbounded).
func NewQueueFacet(source string, capacity int) func() (mfacet.Facet, error) {
	return func() (mfacet.Facet, error) {
		return &QueueFacet{
			Base:     mfacet.NewBase("queue", source),
			capacity: capacity,
		}, nil
	}
}

// Enqueue appends msg to the back of the queue. It fails with a
// DependencyError if the queue is at capacity.
func (q *QueueFacet) Enqueue(msg *Message) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.capacity > 0 && len(q.items) >= q.capacity {
		return common.DependencyError{
			Code:    cn.ErrQueueFull.Error(),
			Title:   "Queue Full",
			Message: "queue is at capacity",
		}
	}

	q.items = append(q.items, msg)

	return nil
}

// Dequeue removes and returns the front of the queue, or (nil, false)
// when empty.
func (q *QueueFacet) Dequeue() (*Message, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil, false
	}

	msg := q.items[0]
	q.items = q.items[1:]

	return msg, true
}

// Len reports the number of messages currently queued.
func (q *QueueFacet) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}
