package mdispatch

import "testing"

func TestStatistics_SnapshotStartsAtZero(t *testing.T) {
	var s Statistics

	snap := s.Snapshot()

	if snap != (Snapshot{}) {
		t.Fatalf("expected a zero Snapshot, got %+v", snap)
	}
}

func TestStatistics_SnapshotReflectsCounterIncrements(t *testing.T) {
	var s Statistics

	s.messagesAccepted.Add(3)
	s.messagesProcessed.Add(2)
	s.messagesFailed.Add(1)
	s.queriesAnswered.Add(4)

	snap := s.Snapshot()

	want := Snapshot{MessagesAccepted: 3, MessagesProcessed: 2, MessagesFailed: 1, QueriesAnswered: 4}
	if snap != want {
		t.Fatalf("expected %+v, got %+v", want, snap)
	}
}
