package blockdoc

import "github.com/google/uuid"

// Definition describes one block type: its default attributes and whether it
// may hold child blocks.
type Definition struct {
	Type      string
	Container bool
	Defaults  func() map[string]any
}

// The registry is closed but extensible: the built-in kinds cover the
// editing surface's needs, and callers may add their own with Register.
var registry = map[string]Definition{}

func init() {
	for _, def := range []Definition{
		{Type: "paragraph", Defaults: func() map[string]any {
			return map[string]any{"text": "", "align": "left"}
		}},
		{Type: "heading", Defaults: func() map[string]any {
			return map[string]any{"text": "", "level": 2}
		}},
		{Type: "list", Defaults: func() map[string]any {
			return map[string]any{"style": "bullet", "items": []any{}}
		}},
		{Type: "quote", Defaults: func() map[string]any {
			return map[string]any{"text": "", "attribution": ""}
		}},
		{Type: "table", Defaults: func() map[string]any {
			return map[string]any{"headers": []any{}, "rows": []any{}}
		}},
		{Type: "image", Defaults: func() map[string]any {
			return map[string]any{"url": "", "alt": "", "caption": ""}
		}},
		{Type: "gallery", Defaults: func() map[string]any {
			return map[string]any{"images": []any{}}
		}},
		{Type: "video", Defaults: func() map[string]any {
			return map[string]any{"url": "", "provider": "youtube"}
		}},
		{Type: "social", Defaults: func() map[string]any {
			return map[string]any{"url": "", "network": "x"}
		}},
		// Motorsport kinds.
		{Type: "standings", Defaults: func() map[string]any {
			return map[string]any{"season": "", "category": "drivers"}
		}},
		{Type: "grid", Defaults: func() map[string]any {
			return map[string]any{"raceId": "", "columns": []any{"pos", "driver", "time"}}
		}},
		// Generic container for side-by-side layouts.
		{Type: "group", Container: true, Defaults: func() map[string]any {
			return map[string]any{"layout": "columns"}
		}},
	} {
		registry[def.Type] = def
	}
}

// Register adds or replaces a block type definition.
func Register(def Definition) {
	registry[def.Type] = def
}

// Lookup returns the definition for a type name.
func Lookup(typeName string) (Definition, bool) {
	def, ok := registry[typeName]
	return def, ok
}

// NewBlock creates a block of the given type with a fresh client id and the
// type's default attributes. It returns nil for unregistered types.
func NewBlock(typeName string) *Block {
	def, ok := registry[typeName]
	if !ok {
		return nil
	}
	var attrs map[string]any
	if def.Defaults != nil {
		attrs = def.Defaults()
	}
	return &Block{
		ClientID:   uuid.NewString(),
		Type:       typeName,
		Attributes: attrs,
	}
}
