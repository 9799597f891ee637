package list

import (
	"encoding/json"

	"github.com/grovetools/moor/mark"
)

// Codec converts between items and their stored form. Each list picks its
// codec at construction time; the rest of the system never inspects an item
// beyond the round trip.
type Codec interface {
	Encode(item mark.Item) (json.RawMessage, error)
	Decode(raw json.RawMessage) (mark.Item, error)
}

// FileCodec is the default codec, storing mark.File items as JSON objects.
type FileCodec struct{}

// Encode implements Codec.
func (FileCodec) Encode(item mark.Item) (json.RawMessage, error) {
	file, ok := item.(mark.File)
	if !ok {
		// Preserve at least the identity of foreign item types.
		file = mark.File{Path: item.Value()}
	}
	return json.Marshal(file)
}

// Decode implements Codec.
func (FileCodec) Decode(raw json.RawMessage) (mark.Item, error) {
	var file mark.File
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, err
	}
	return file, nil
}
