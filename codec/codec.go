// Package codec centralizes result and dataset encoding.
//
// Codec selection is a compatibility boundary: persisted blobs record
// the codec name in their header so they can be decoded by name later.
package codec

import "strings"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default is the default codec used by the library.
var Default Codec = JSON{}

// ByName returns a built-in codec by its stable name.
//
// Compression wrappers compose with a "+", e.g. "zstd+json" is the JSON
// codec wrapped in zstd compression.
func ByName(name string) (Codec, bool) {
	if inner, ok := strings.CutPrefix(name, "zstd+"); ok {
		c, found := ByName(inner)
		if !found {
			return nil, false
		}
		return Zstd(c), true
	}
	if inner, ok := strings.CutPrefix(name, "lz4+"); ok {
		c, found := ByName(inner)
		if !found {
			return nil, false
		}
		return LZ4(c), true
	}

	switch name {
	case "json":
		return JSON{}, true
	case "gob":
		return Gob{}, true
	default:
		return nil, false
	}
}
