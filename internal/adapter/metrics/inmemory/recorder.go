package inmemory

import "sync"

type Snapshot struct {
	RollTotal    uint64            `json:"roll_total"`
	RollSuccess  uint64            `json:"roll_success"`
	RollRejected uint64            `json:"roll_rejected"`
	RollFailure  uint64            `json:"roll_failure"`
	ByCommand    map[string]uint64 `json:"by_command"`
}

type Recorder struct {
	mu        sync.Mutex
	success   uint64
	rejected  uint64
	failure   uint64
	byCommand map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byCommand: map[string]uint64{},
	}
}

func (r *Recorder) RecordRoll(command string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.byCommand[command]++
}

func (r *Recorder) RecordRejected() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		RollSuccess:  r.success,
		RollRejected: r.rejected,
		RollFailure:  r.failure,
		RollTotal:    r.success + r.rejected + r.failure,
		ByCommand:    make(map[string]uint64, len(r.byCommand)),
	}
	for k, v := range r.byCommand {
		out.ByCommand[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
