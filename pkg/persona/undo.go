package persona

import "sync"

// UndoBuffer keeps at most one snapshot of the state taken immediately
// before a bulk AI overwrite. It is a single slot, not a stack: arming
// twice without consuming discards the earlier snapshot.
type UndoBuffer struct {
	mu   sync.Mutex
	snap *State
}

// Arm stores a snapshot, replacing any previous one.
func (b *UndoBuffer) Arm(s State) {
	b.mu.Lock()
	defer b.mu.Unlock()
	snap := s.Clone()
	b.snap = &snap
}

// Disarm clears the stored snapshot.
func (b *UndoBuffer) Disarm() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snap = nil
}

// Consume returns and clears the stored snapshot.
func (b *UndoBuffer) Consume() (State, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.snap == nil {
		return State{}, false
	}
	snap := *b.snap
	b.snap = nil
	return snap, true
}

// Armed reports whether a snapshot is live.
func (b *UndoBuffer) Armed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snap != nil
}
