package wiretree

import (
	"fmt"
	"reflect"
	"time"
)

// TransformFunc converts a single value in one direction. The registry
// is passed through so that transforms over nested objects can recurse
// into the engine; leaf transforms are free to ignore it.
type TransformFunc func(r *Registry, v any) (any, error)

// Scheme is a paired to-wire/from-wire value transform. Schemes are
// immutable once constructed; combinators return new Schemes and never
// mutate shared ones. The zero Scheme is the primitive (identity)
// scheme.
type Scheme struct {
	toWire   TransformFunc
	fromWire TransformFunc
}

// ToWire applies the serialize-direction transform.
func (s Scheme) ToWire(r *Registry, v any) (any, error) {
	if s.toWire == nil {
		return v, nil
	}
	return s.toWire(r, v)
}

// FromWire applies the deserialize-direction transform.
func (s Scheme) FromWire(r *Registry, v any) (any, error) {
	if s.fromWire == nil {
		return v, nil
	}
	return s.fromWire(r, v)
}

// Primitive returns the identity scheme.
func Primitive() Scheme {
	return Scheme{}
}

// dateWireFormat is RFC 3339 with fixed millisecond precision, matching
// the common JSON convention for timestamps ("2020-01-02T00:00:00.000Z").
const dateWireFormat = "2006-01-02T15:04:05.000Z07:00"

// Date returns a scheme converting time.Time values to RFC 3339 strings
// in UTC and back. Values that are not a time (on the way out) or not a
// string (on the way in) pass through unchanged, which guards against
// double conversion.
func Date() Scheme {
	return Scheme{
		toWire: func(_ *Registry, v any) (any, error) {
			switch t := v.(type) {
			case time.Time:
				return t.UTC().Format(dateWireFormat), nil
			case *time.Time:
				if t == nil {
					return nil, nil
				}
				return t.UTC().Format(dateWireFormat), nil
			default:
				return v, nil
			}
		},
		fromWire: func(_ *Registry, v any) (any, error) {
			s, ok := v.(string)
			if !ok {
				return v, nil
			}
			t, err := time.Parse(time.RFC3339Nano, s)
			if err != nil {
				return nil, fmt.Errorf("could not parse %q as date: %w", s, err)
			}
			return t, nil
		},
	}
}

// Array returns a scheme applying inner element-wise over a slice or
// array. A nil input passes through unchanged in both directions, and
// so does any non-slice input.
func Array(inner Scheme) Scheme {
	return Scheme{
		toWire: func(r *Registry, v any) (any, error) {
			return mapElements(r, v, inner.ToWire)
		},
		fromWire: func(r *Registry, v any) (any, error) {
			return mapElements(r, v, inner.FromWire)
		},
	}
}

func mapElements(r *Registry, v any, fn func(*Registry, any) (any, error)) (any, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return v, nil
	}
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return nil, nil
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		mapped, err := fn(r, rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		out[i] = mapped
	}
	return out, nil
}

// ObjectMap returns a scheme applying inner to every value of a
// string-keyed mapping, preserving keys. Input that is not such a
// mapping (including nil) is returned unchanged.
func ObjectMap(inner Scheme) Scheme {
	return Scheme{
		toWire: func(r *Registry, v any) (any, error) {
			return mapValues(r, v, inner.ToWire)
		},
		fromWire: func(r *Registry, v any) (any, error) {
			return mapValues(r, v, inner.FromWire)
		},
	}
}

func mapValues(r *Registry, v any, fn func(*Registry, any) (any, error)) (any, error) {
	if v == nil {
		return v, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
		return v, nil
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		mapped, err := fn(r, iter.Value().Interface())
		if err != nil {
			return nil, err
		}
		out[iter.Key().String()] = mapped
	}
	return out, nil
}

// Object returns a scheme that delegates to the engine for a nested
// typed value: Serialize on the way out, Deserialize for the given
// prototype's type on the way in. The nested type's own descriptor
// resolution applies independently.
func Object(prototype any) Scheme {
	return Scheme{
		toWire: func(r *Registry, v any) (any, error) {
			return r.Serialize(v)
		},
		fromWire: func(r *Registry, v any) (any, error) {
			return r.Deserialize(prototype, v)
		},
	}
}

// Custom returns a scheme built from caller-supplied transforms. A nil
// transform means identity for that direction. This is the extension
// point for polymorphic fields: a typical fromWire inspects a
// discriminant key in the wire mapping and dispatches Deserialize to
// one of several concrete types.
func Custom(toWire, fromWire TransformFunc) Scheme {
	return Scheme{toWire: toWire, fromWire: fromWire}
}
