package course

import "strings"

// Metadata is the open key/value extension point of a course state. Unknown
// keys round-trip through persistence verbatim; nothing here is validated
// against a schema.
type Metadata map[string]any

// Get resolves a dotted path ("statistics.files.audio_files") into the map.
func (m Metadata) Get(path string) (any, bool) {
	if m == nil {
		return nil, false
	}
	keys := strings.Split(path, ".")
	var current any = map[string]any(m)
	for _, key := range keys {
		node, ok := current.(map[string]any)
		if !ok {
			if meta, isMeta := current.(Metadata); isMeta {
				node = map[string]any(meta)
			} else {
				return nil, false
			}
		}
		current, ok = node[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// Set assigns a value at a dotted path, creating intermediate maps as needed.
// An intermediate key holding a non-map value is replaced by a map.
func (m Metadata) Set(path string, value any) {
	if m == nil {
		return
	}
	keys := strings.Split(path, ".")
	node := map[string]any(m)
	for _, key := range keys[:len(keys)-1] {
		next, ok := node[key].(map[string]any)
		if !ok {
			if meta, isMeta := node[key].(Metadata); isMeta {
				next = map[string]any(meta)
			} else {
				next = make(map[string]any)
			}
			node[key] = next
		}
		node = next
	}
	node[keys[len(keys)-1]] = value
}

// String resolves a dotted path and returns its string form, or empty when
// the key is absent or not a string.
func (m Metadata) String(path string) string {
	value, ok := m.Get(path)
	if !ok {
		return ""
	}
	s, _ := value.(string)
	return s
}
