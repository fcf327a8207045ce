package blockdoc

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collectIDs walks the tree and fails the test if any block is reachable
// more than once.
func collectIDs(t *testing.T, blocks []*Block) map[string]struct{} {
	t.Helper()
	ids := make(map[string]struct{})
	Walk(blocks, func(b *Block) bool {
		_, dup := ids[b.ClientID]
		require.False(t, dup, "duplicate clientId %s", b.ClientID)
		ids[b.ClientID] = struct{}{}
		return true
	})
	return ids
}

func TestInsert_AfterSelectionAndAtEnd(t *testing.T) {
	e := NewEditor(nil, nil)

	first := e.Insert("paragraph")
	require.NotEmpty(t, first)

	// first is now selected, so the next insert lands right after it
	second := e.Insert("heading")
	require.NotEmpty(t, second)

	e.Select(first)
	third := e.Insert("quote")

	ids := make([]string, 0, 3)
	for _, b := range e.Blocks() {
		ids = append(ids, b.ClientID)
	}
	assert.Equal(t, []string{first, third, second}, ids)
	assert.Equal(t, third, e.Selected())
	collectIDs(t, e.Blocks())
}

func TestInsert_UnknownTypeIsNoop(t *testing.T) {
	e := NewEditor(nil, nil)
	assert.Empty(t, e.Insert("hologram"))
	assert.Empty(t, e.Blocks())
	assert.False(t, e.CanUndo())
}

func TestInsertAt_ClampsIndex(t *testing.T) {
	e := NewEditor(nil, nil)
	a := e.Insert("paragraph")
	b := e.InsertAt("paragraph", 0)
	c := e.InsertAt("paragraph", 99)

	ids := make([]string, 0, 3)
	for _, blk := range e.Blocks() {
		ids = append(ids, blk.ClientID)
	}
	assert.Equal(t, []string{b, a, c}, ids)
}

func TestInsert_DefaultsComeFromRegistry(t *testing.T) {
	e := NewEditor(nil, nil)
	id := e.Insert("heading")
	b, ok := e.Find(id)
	require.True(t, ok)
	assert.Equal(t, "heading", b.Type)
	assert.Equal(t, 2, b.Attributes["level"])
}

func TestUpdate_MergesAndIgnoresUnknown(t *testing.T) {
	e := NewEditor(nil, nil)
	id := e.Insert("paragraph")

	e.Update(id, map[string]any{"text": "Lights out"})
	e.Update("nope", map[string]any{"text": "lost"})

	b, _ := e.Find(id)
	assert.Equal(t, "Lights out", b.Attributes["text"])
	assert.Equal(t, "left", b.Attributes["align"]) // untouched default
}

func TestUpdate_CoalescesKeystrokes(t *testing.T) {
	e := NewEditor(nil, nil)
	id := e.Insert("paragraph")

	// simulated typing: many updates to the same field, one history entry
	for i, s := range []string{"L", "Li", "Lig", "Ligh", "Light", "Lights"} {
		e.Update(id, map[string]any{"text": s})
		_ = i
	}

	require.True(t, e.Undo())
	b, _ := e.Find(id)
	assert.Equal(t, "", b.Attributes["text"], "one undo reverts the whole typing burst")
}

func TestUpdate_DifferentFieldBreaksCoalescing(t *testing.T) {
	e := NewEditor(nil, nil)
	id := e.Insert("paragraph")

	e.Update(id, map[string]any{"text": "body"})
	e.Update(id, map[string]any{"align": "center"})

	require.True(t, e.Undo())
	b, _ := e.Find(id)
	assert.Equal(t, "body", b.Attributes["text"])
	assert.Equal(t, "left", b.Attributes["align"])
}

func TestRemove_ClearsSelectionOfRemoved(t *testing.T) {
	e := NewEditor(nil, nil)
	a := e.Insert("paragraph")
	b := e.Insert("paragraph")

	e.Select(a)
	e.Remove(a)
	assert.Empty(t, e.Selected())

	e.Select(b)
	e.Remove("missing") // no-op
	assert.Equal(t, b, e.Selected())
	assert.Len(t, e.Blocks(), 1)
}

func TestMove_SwapsSiblingsAndStopsAtBoundary(t *testing.T) {
	e := NewEditor(nil, nil)
	a := e.Insert("paragraph")
	b := e.Insert("paragraph")
	c := e.Insert("paragraph")

	order := func() []string {
		ids := make([]string, 0, 3)
		for _, blk := range e.Blocks() {
			ids = append(ids, blk.ClientID)
		}
		return ids
	}

	e.Move(b, MoveUp)
	assert.Equal(t, []string{b, a, c}, order())

	// boundary no-ops: tree unchanged, nothing recorded
	before := order()
	undoDepthBefore := historyDepth(e)
	e.Move(b, MoveUp)
	e.Move(c, MoveDown)
	assert.Equal(t, before, order())
	assert.Equal(t, undoDepthBefore, historyDepth(e))
}

func historyDepth(e *Editor) int { return len(e.history.past) }

func TestMove_WithinNestedContainer(t *testing.T) {
	group := NewBlock("group")
	p1 := NewBlock("paragraph")
	p2 := NewBlock("paragraph")
	group.Children = []*Block{p1, p2}

	e := NewEditor([]*Block{group}, nil)
	e.Move(p2.ClientID, MoveUp)

	g, ok := e.Find(group.ClientID)
	require.True(t, ok)
	assert.Equal(t, p2.ClientID, g.Children[0].ClientID)
	assert.Equal(t, p1.ClientID, g.Children[1].ClientID)
	collectIDs(t, e.Blocks())
}

func TestUndoRedo_ExactRoundTrip(t *testing.T) {
	e := NewEditor(nil, nil)
	id := e.Insert("paragraph")
	e.Update(id, map[string]any{"text": "v1"})

	before := e.Document()
	e.Update(id, map[string]any{"align": "center"})
	after := e.Document()

	require.True(t, e.Undo())
	assert.Equal(t, before, e.Document())

	require.True(t, e.Redo())
	assert.Equal(t, after, e.Document())
}

func TestUndo_RestoresMetadata(t *testing.T) {
	e := NewEditor(nil, Metadata{"title": "Draft"})
	e.SetMeta("title", "Final")
	require.True(t, e.Undo())
	assert.Equal(t, "Draft", e.Meta()["title"])
	require.True(t, e.Redo())
	assert.Equal(t, "Final", e.Meta()["title"])
}

func TestUndo_EmptyStackIsNoop(t *testing.T) {
	e := NewEditor(nil, nil)
	assert.False(t, e.Undo())
	assert.False(t, e.Redo())
}

func TestUndo_ClearsDanglingSelection(t *testing.T) {
	e := NewEditor(nil, nil)
	a := e.Insert("paragraph")
	_ = a
	b := e.Insert("paragraph")
	e.Select(b)

	// undoing the insert of b removes its referent
	require.True(t, e.Undo())
	assert.Empty(t, e.Selected())
}

func TestHistory_BoundedAtFifty(t *testing.T) {
	e := NewEditor(nil, nil)
	id := e.Insert("paragraph")

	// 60 discrete mutations on distinct fields so nothing coalesces
	for i := 0; i < 60; i++ {
		e.Update(id, map[string]any{fmt.Sprintf("f%d", i): i})
	}

	undos := 0
	for e.Undo() {
		undos++
	}
	assert.Equal(t, MaxHistory, undos)
}

func TestNewMutationClearsRedo(t *testing.T) {
	e := NewEditor(nil, nil)
	id := e.Insert("paragraph")
	e.Update(id, map[string]any{"text": "a"})
	require.True(t, e.Undo())
	require.True(t, e.CanRedo())

	e.Update(id, map[string]any{"text": "b"})
	assert.False(t, e.CanRedo())
}

func TestSnapshotIndependence(t *testing.T) {
	e := NewEditor(nil, nil)
	id := e.Insert("list")
	e.Update(id, map[string]any{"items": []any{"one"}})

	snap := e.Document()
	e.Update(id, map[string]any{"items": []any{"one", "two"}})

	b := snap.Blocks[0]
	assert.Equal(t, []any{"one"}, b.Attributes["items"], "earlier snapshot unaffected by later mutation")
}

func TestInvariants_UnderRandomishSequence(t *testing.T) {
	e := NewEditor(nil, nil)

	var ids []string
	for i := 0; i < 10; i++ {
		ids = append(ids, e.Insert("paragraph"))
	}
	e.Move(ids[3], MoveUp)
	e.Remove(ids[5])
	e.Update(ids[7], map[string]any{"text": "x"})
	e.InsertAt("quote", 2)
	require.True(t, e.Undo())
	require.True(t, e.Redo())
	e.Move(ids[0], MoveDown)

	seen := collectIDs(t, e.Blocks())
	assert.NotContains(t, seen, ids[5])
	assert.Len(t, seen, 10) // 10 inserts - 1 remove + 1 quote
}
