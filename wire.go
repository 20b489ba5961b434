package wiretree

import (
	"encoding/json"
	"hash/fnv"
)

// Get reads a key from a wire mapping with a typed assertion.
func Get[T any](wire map[string]any, key string) (T, bool) {
	v, ok := wire[key]
	if !ok {
		return *new(T), false
	}
	t, ok := v.(T)
	return t, ok
}

// WireEqual reports whether two wire trees hold the same data. Mappings
// compare by key set and recursive value equality, slices element-wise
// in order, scalars by ==.
func WireEqual(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			ov, ok := bv[k]
			if !ok || !WireEqual(v, ov) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !WireEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// DeepCopyWire returns a copy of a wire tree that shares no mappings or
// slices with the input. Scalars are returned as is.
func DeepCopyWire(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, val := range tv {
			out[k] = DeepCopyWire(val)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, val := range tv {
			out[i] = DeepCopyWire(val)
		}
		return out
	default:
		return v
	}
}

// CanonicalWireHash computes a stable FNV-64 hash of a wire tree by
// hashing its canonical JSON form. The hash is not cryptographically
// secure; it only identifies a tree in a stable way, independent of map
// iteration order.
func CanonicalWireHash(wire any) (uint64, error) {
	data, err := CanonicalJSON(wire)
	if err != nil {
		return 0, err
	}
	h := fnv.New64()
	// fnv64 can never fail to write
	_, _ = h.Write(data)
	return h.Sum64(), nil
}

// wireFromJSON parses JSON bytes into a wire tree.
func wireFromJSON(data []byte) (any, error) {
	var wire any
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, err
	}
	return wire, nil
}
