package inmemory

import "testing"

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordRoll("r")
	r.RecordRoll("rd")
	r.RecordRoll("rd")
	r.RecordRejected()
	r.RecordFailure()

	s := r.Snapshot()
	if s.RollTotal != 5 {
		t.Fatalf("expected total 5, got %d", s.RollTotal)
	}
	if s.RollSuccess != 3 {
		t.Fatalf("expected success 3, got %d", s.RollSuccess)
	}
	if s.RollRejected != 1 {
		t.Fatalf("expected rejected 1, got %d", s.RollRejected)
	}
	if s.RollFailure != 1 {
		t.Fatalf("expected failure 1, got %d", s.RollFailure)
	}
	if s.ByCommand["rd"] != 2 {
		t.Fatalf("expected rd count 2, got %d", s.ByCommand["rd"])
	}
	if s.ByCommand["r"] != 1 {
		t.Fatalf("expected r count 1, got %d", s.ByCommand["r"])
	}
}
