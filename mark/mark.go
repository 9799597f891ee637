// Package mark defines the item type stored in moor lists. The core treats
// items as opaque beyond their Value, which is the identity used for
// deduplication and self-exclusion.
package mark

// Item is a single entry in a list. Implementations carry whatever context
// they need (cursor position, command text, ...); the core only ever looks at
// Value.
type Item interface {
	// Value returns the identity of the item. Two items are considered the
	// same entry when their values are equal. An empty value marks an item
	// that cannot be tracked (e.g. an unnamed buffer).
	Value() string
}

// File is the default item type: a reference to a file position within a
// project, with the path stored relative to the project root.
type File struct {
	Path string `json:"value"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

// Value implements Item.
func (f File) Value() string {
	return f.Path
}
