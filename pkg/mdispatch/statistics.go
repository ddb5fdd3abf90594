package mdispatch

import "sync/atomic"

// Statistics is the processor's counter set, safe for concurrent
// increment/read.
type Statistics struct {
	messagesAccepted  atomic.Int64
	messagesProcessed atomic.Int64
	messagesFailed    atomic.Int64
	queriesAnswered   atomic.Int64
}

// Snapshot is a point-in-time copy of Statistics' counters.
type Snapshot struct {
	MessagesAccepted  int64
	MessagesProcessed int64
	MessagesFailed    int64
	QueriesAnswered   int64
}

// Snapshot reads all counters atomically with respect to each other's
// ordering guarantees (each individual counter is consistent; the tuple
// is a best-effort snapshot under concurrent writers).
func (s *Statistics) Snapshot() Snapshot {
	return Snapshot{
		MessagesAccepted:  s.messagesAccepted.Load(),
		MessagesProcessed: s.messagesProcessed.Load(),
		MessagesFailed:    s.messagesFailed.Load(),
		QueriesAnswered:   s.queriesAnswered.Load(),
	}
}
