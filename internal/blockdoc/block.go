// Package blockdoc implements the in-memory document model for article
// bodies: a recursive tree of typed content blocks addressed by stable
// client ids, plus a bounded undo/redo history of whole-document snapshots.
package blockdoc

// Block is one node of the article-body tree. Attributes is an open,
// per-type mapping validated by the editing surface, not by the model.
// Children is empty for leaf types.
type Block struct {
	ClientID   string         `json:"clientId"`
	Type       string         `json:"type"`
	Attributes map[string]any `json:"attributes,omitempty"`
	Children   []*Block       `json:"children,omitempty"`
}

// Clone returns a deep copy of the block and its subtree. Snapshots rely on
// this: a copy must never share mutable state with the original.
func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}
	c := &Block{
		ClientID:   b.ClientID,
		Type:       b.Type,
		Attributes: cloneAttrs(b.Attributes),
	}
	if len(b.Children) > 0 {
		c.Children = CloneTree(b.Children)
	}
	return c
}

// CloneTree deep-copies an ordered block list.
func CloneTree(blocks []*Block) []*Block {
	if blocks == nil {
		return nil
	}
	out := make([]*Block, len(blocks))
	for i, b := range blocks {
		out[i] = b.Clone()
	}
	return out
}

func cloneAttrs(attrs map[string]any) map[string]any {
	if attrs == nil {
		return nil
	}
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue copies the JSON-shaped values attributes are allowed to hold:
// scalars, []any and map[string]any.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// Walk visits every block of the tree depth-first. Returning false from fn
// stops the traversal.
func Walk(blocks []*Block, fn func(*Block) bool) bool {
	for _, b := range blocks {
		if !fn(b) {
			return false
		}
		if !Walk(b.Children, fn) {
			return false
		}
	}
	return true
}
