package blockdoc

import (
	"sort"
	"strings"
)

// Direction selects a sibling move.
type Direction string

const (
	MoveUp   Direction = "up"
	MoveDown Direction = "down"
)

// Editor owns one article body during an editing session: the live block
// tree, the post metadata being edited alongside it, the current selection
// and the undo/redo history.
//
// All operations are total: addressing an unknown client id is a safe no-op,
// never an error. An Editor is owned by a single editing session and is not
// safe for concurrent use.
type Editor struct {
	blocks  []*Block
	meta    Metadata
	selected string
	history History

	// lastEdit coalesces keystroke-level attribute updates: consecutive
	// Update calls hitting the same block with the same key set share one
	// history entry. Any other operation closes the edit.
	lastEdit string
}

// NewEditor starts a session over the given document. The inputs are deep
// copied so the caller's tree stays independent of the session.
func NewEditor(blocks []*Block, meta Metadata) *Editor {
	return &Editor{
		blocks: CloneTree(blocks),
		meta:   meta.Clone(),
	}
}

// Blocks returns the live tree. Callers must treat it as read-only; all
// mutation goes through the editor's operations.
func (e *Editor) Blocks() []*Block { return e.blocks }

// Meta returns the live metadata mapping, read-only for callers.
func (e *Editor) Meta() Metadata { return e.meta }

// Document returns an independent deep copy of {blocks, metadata}, suitable
// for handing to the persistence layer.
func (e *Editor) Document() Snapshot { return e.capture() }

// Selected returns the selected block's client id, or "" when nothing is
// selected.
func (e *Editor) Selected() string { return e.selected }

// Select marks the given block as selected. Selecting an unknown id clears
// the selection. Selection is UI state: it is not recorded in history.
func (e *Editor) Select(clientID string) {
	if _, _, ok := findIn(&e.blocks, clientID); !ok {
		e.selected = ""
		return
	}
	e.selected = clientID
}

// Find locates a block anywhere in the tree.
func (e *Editor) Find(clientID string) (*Block, bool) {
	list, idx, ok := findIn(&e.blocks, clientID)
	if !ok {
		return nil, false
	}
	return (*list)[idx], true
}

// findIn is the depth-first search every operation is built on. It returns
// the containing child list and the index within it, so callers can splice.
// O(n) per call; article bodies are small.
func findIn(list *[]*Block, clientID string) (*[]*Block, int, bool) {
	if clientID == "" {
		return nil, 0, false
	}
	for i, b := range *list {
		if b.ClientID == clientID {
			return list, i, true
		}
		if l, j, ok := findIn(&b.Children, clientID); ok {
			return l, j, true
		}
	}
	return nil, 0, false
}

// Insert creates a block of the given type and splices it immediately after
// the selected block, or at the end of the root list when nothing is
// selected. The new block becomes selected. Returns "" for an unregistered
// type (tree unchanged).
func (e *Editor) Insert(typeName string) string {
	nb := NewBlock(typeName)
	if nb == nil {
		return ""
	}
	e.snapshot()
	if list, idx, ok := findIn(&e.blocks, e.selected); ok {
		spliceIn(list, idx+1, nb)
	} else {
		e.blocks = append(e.blocks, nb)
	}
	e.selected = nb.ClientID
	return nb.ClientID
}

// InsertAt creates a block of the given type at an explicit index in the
// root list. Indexes are clamped to [0, len]. The new block becomes
// selected. Returns "" for an unregistered type.
func (e *Editor) InsertAt(typeName string, index int) string {
	nb := NewBlock(typeName)
	if nb == nil {
		return ""
	}
	e.snapshot()
	if index < 0 {
		index = 0
	}
	if index > len(e.blocks) {
		index = len(e.blocks)
	}
	spliceIn(&e.blocks, index, nb)
	e.selected = nb.ClientID
	return nb.ClientID
}

// Update merges the given fields into the target block's attributes.
// Unknown ids are a silent no-op. Consecutive updates to the same block
// with the same key set coalesce into a single history entry, so typing
// does not cost one snapshot per character.
func (e *Editor) Update(clientID string, attrs map[string]any) {
	list, idx, ok := findIn(&e.blocks, clientID)
	if !ok || len(attrs) == 0 {
		return
	}
	if key := editKey(clientID, attrs); key != e.lastEdit {
		e.snapshot()
		e.lastEdit = key
	}
	b := (*list)[idx]
	if b.Attributes == nil {
		b.Attributes = make(map[string]any, len(attrs))
	}
	for k, v := range attrs {
		b.Attributes[k] = cloneValue(v)
	}
}

// Remove splices the block out of its parent's child list. If the removed
// block was selected, the selection is cleared.
func (e *Editor) Remove(clientID string) {
	list, idx, ok := findIn(&e.blocks, clientID)
	if !ok {
		return
	}
	e.snapshot()
	*list = append((*list)[:idx], (*list)[idx+1:]...)
	if e.selected == clientID {
		e.selected = ""
	}
}

// Move swaps the block with its immediate sibling in the given direction.
// Moves never cross parents; the first block cannot move up and the last
// cannot move down (boundary moves leave the tree and history untouched).
func (e *Editor) Move(clientID string, dir Direction) {
	list, idx, ok := findIn(&e.blocks, clientID)
	if !ok {
		return
	}
	var swap int
	switch dir {
	case MoveUp:
		swap = idx - 1
	case MoveDown:
		swap = idx + 1
	default:
		return
	}
	if swap < 0 || swap >= len(*list) {
		return
	}
	e.snapshot()
	(*list)[idx], (*list)[swap] = (*list)[swap], (*list)[idx]
}

// SetMeta records a metadata field edit as an undoable mutation.
func (e *Editor) SetMeta(key string, value any) {
	e.snapshot()
	if e.meta == nil {
		e.meta = Metadata{}
	}
	e.meta[key] = cloneValue(value)
}

// Undo restores the latest past snapshot, pushing the current state to the
// redo stack. Returns false when there is nothing to undo.
func (e *Editor) Undo() bool {
	s, ok := e.history.Undo(e.capture())
	if !ok {
		return false
	}
	e.restore(s)
	return true
}

// Redo restores the latest future snapshot, pushing the current state back
// to the undo stack. Returns false when there is nothing to redo.
func (e *Editor) Redo() bool {
	s, ok := e.history.Redo(e.capture())
	if !ok {
		return false
	}
	e.restore(s)
	return true
}

func (e *Editor) CanUndo() bool { return e.history.CanUndo() }
func (e *Editor) CanRedo() bool { return e.history.CanRedo() }

// snapshot records the pre-mutation state and closes any coalesced edit.
func (e *Editor) snapshot() {
	e.history.Record(e.capture())
	e.lastEdit = ""
}

func (e *Editor) capture() Snapshot {
	return Snapshot{Blocks: CloneTree(e.blocks), Meta: e.meta.Clone()}
}

// restore adopts a snapshot as the live document. The snapshot came off a
// history stack and has no other owner, so no copy is needed. Selection is
// cleared when its referent no longer exists.
func (e *Editor) restore(s Snapshot) {
	e.blocks = s.Blocks
	e.meta = s.Meta
	e.lastEdit = ""
	if _, _, ok := findIn(&e.blocks, e.selected); !ok {
		e.selected = ""
	}
}

func spliceIn(list *[]*Block, idx int, b *Block) {
	*list = append(*list, nil)
	copy((*list)[idx+1:], (*list)[idx:])
	(*list)[idx] = b
}

func editKey(clientID string, attrs map[string]any) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return clientID + "\x00" + strings.Join(keys, "\x00")
}
