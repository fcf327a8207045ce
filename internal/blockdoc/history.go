package blockdoc

// MaxHistory bounds both undo stacks. Once full, the oldest snapshot falls
// off the far end; recording never fails.
const MaxHistory = 50

// Metadata is the free-form post metadata edited alongside the block tree.
type Metadata map[string]any

// Clone deep-copies the metadata mapping.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

// Snapshot is an immutable deep copy of {blocks, metadata}, the unit of
// undo/redo. Snapshots are created by Editor.capture and never mutated.
type Snapshot struct {
	Blocks []*Block
	Meta   Metadata
}

// History holds the past/future snapshot stacks.
type History struct {
	past   []Snapshot
	future []Snapshot
}

// Record pushes the pre-mutation snapshot onto past and clears future.
// Called immediately before every mutation takes effect.
func (h *History) Record(pre Snapshot) {
	h.past = append(h.past, pre)
	if len(h.past) > MaxHistory {
		h.past = h.past[len(h.past)-MaxHistory:]
	}
	h.future = nil
}

// Undo pops the latest past snapshot, pushing cur to future. ok is false
// when there is nothing to undo.
func (h *History) Undo(cur Snapshot) (s Snapshot, ok bool) {
	if len(h.past) == 0 {
		return Snapshot{}, false
	}
	h.future = append(h.future, cur)
	if len(h.future) > MaxHistory {
		h.future = h.future[len(h.future)-MaxHistory:]
	}
	s = h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	return s, true
}

// Redo pops the latest future snapshot, pushing cur to past.
func (h *History) Redo(cur Snapshot) (s Snapshot, ok bool) {
	if len(h.future) == 0 {
		return Snapshot{}, false
	}
	h.past = append(h.past, cur)
	if len(h.past) > MaxHistory {
		h.past = h.past[len(h.past)-MaxHistory:]
	}
	s = h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	return s, true
}

func (h *History) CanUndo() bool { return len(h.past) > 0 }
func (h *History) CanRedo() bool { return len(h.future) > 0 }
