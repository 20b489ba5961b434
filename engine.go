package wiretree

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

// Serialize converts an instance into its wire form.
//
// nil (including a typed nil pointer) maps to nil. A bare
// map[string]any is returned unchanged, as are non-struct values, the
// escape hatch for already-wire-shaped data nested inside a typed
// graph. For struct values the effective descriptor of the concrete
// type drives the conversion: every serialize-direction property writes
// its transformed field value under its wire name; properties excluded
// by direction are omitted entirely, not written as null.
func (r *Registry) Serialize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}

	if m, ok := v.(map[string]any); ok {
		return m, nil
	}
	if rv.Kind() != reflect.Struct {
		return v, nil
	}

	desc := r.resolveType(rv.Type())
	out := make(map[string]any, desc.Len())
	for p := range desc.Properties() {
		if !p.Directions.Has(DirectionSerialize) {
			continue
		}
		field := rv.FieldByName(p.Name)
		if !field.IsValid() {
			continue
		}
		wire, err := p.Scheme.ToWire(r, field.Interface())
		if err != nil {
			return nil, err
		}
		out[p.WireName] = wire
	}
	return out, nil
}

// Deserialize converts a wire tree back into an instance of the
// prototype's type, returned as a pointer to a new struct.
//
// A nil wire tree maps to nil. Resolution starts at the requested type,
// not a runtime-inspected one; the wire tree carries no type tag unless
// the caller adds one through a Custom scheme. The instance comes from
// the concrete type's construction factory when one is registered,
// otherwise from the zero value. Deserialize-direction properties whose
// wire name is present in the tree are transformed and assigned; absent
// keys leave the field untouched. The post-construct hook, if any, runs
// last against the populated instance.
func (r *Registry) Deserialize(prototype any, wire any) (any, error) {
	if wire == nil {
		return nil, nil
	}
	t, err := structTypeOf(prototype)
	if err != nil {
		return nil, err
	}
	wireMap, ok := wire.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("cannot deserialize %s from %T, expected a map[string]any wire tree", typeName(t), wire)
	}

	desc := r.resolveType(t)

	var instance any
	if factory := desc.ConstructionFactory(); factory != nil {
		instance = factory(wireMap)
	} else {
		instance = reflect.New(t).Interface()
	}

	iv := reflect.ValueOf(instance)
	if iv.Kind() != reflect.Pointer || iv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("construction factory for %s produced %T, expected a struct pointer", typeName(t), instance)
	}

	for p := range desc.Properties() {
		if !p.Directions.Has(DirectionDeserialize) {
			continue
		}
		raw, present := wireMap[p.WireName]
		if !present {
			continue
		}
		v, err := p.Scheme.FromWire(r, raw)
		if err != nil {
			return nil, err
		}
		if err := setField(iv.Elem(), p.Name, v); err != nil {
			return nil, err
		}
	}

	if hook := desc.PostConstructHook(); hook != nil {
		if err := hook(instance); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// DeserializeAs is Deserialize with the result typed as *T.
func DeserializeAs[T any](r *Registry, wire any) (*T, error) {
	var proto T
	v, err := r.Deserialize(&proto, wire)
	if err != nil || v == nil {
		return nil, err
	}
	out, ok := v.(*T)
	if !ok {
		return nil, fmt.Errorf("construction factory produced %T, expected %T", v, &proto)
	}
	return out, nil
}

// setField writes a transformed wire value into the named struct field.
// A field missing on the concrete type is skipped, matching the
// serialize side; a merged ancestor property only applies where the
// field actually exists.
func setField(structVal reflect.Value, name string, v any) error {
	field := structVal.FieldByName(name)
	if !field.IsValid() {
		return nil
	}
	if !field.CanSet() {
		return fmt.Errorf("field %q of %s is not settable", name, typeName(structVal.Type()))
	}
	if err := assign(field, v); err != nil {
		return fmt.Errorf("field %q of %s: %w", name, typeName(structVal.Type()), err)
	}
	return nil
}

// assign stores a wire-shaped value into a statically typed
// destination, converting []any, map[string]any and JSON numbers to the
// destination's element types where needed.
func assign(dst reflect.Value, v any) error {
	if v == nil {
		dst.SetZero()
		return nil
	}

	if dst.Kind() == reflect.Pointer {
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return assign(dst.Elem(), v)
	}

	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(dst.Type()) {
		dst.Set(rv)
		return nil
	}
	// nested deserialization hands back struct pointers, which also
	// need to land in plain struct fields and slice elements
	if rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Type().AssignableTo(dst.Type()) {
		dst.Set(rv.Elem())
		return nil
	}

	switch dst.Kind() {
	case reflect.Slice:
		if rv.Kind() != reflect.Slice {
			break
		}
		out := reflect.MakeSlice(dst.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if err := assign(out.Index(i), rv.Index(i).Interface()); err != nil {
				return err
			}
		}
		dst.Set(out)
		return nil
	case reflect.Map:
		if rv.Kind() != reflect.Map || !rv.Type().Key().AssignableTo(dst.Type().Key()) {
			break
		}
		out := reflect.MakeMapWithSize(dst.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			elem := reflect.New(dst.Type().Elem()).Elem()
			if err := assign(elem, iter.Value().Interface()); err != nil {
				return err
			}
			out.SetMapIndex(iter.Key(), elem)
		}
		dst.Set(out)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, ok := asInt64(v); ok {
			dst.SetInt(n)
			return nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n, ok := asInt64(v); ok && n >= 0 {
			dst.SetUint(uint64(n))
			return nil
		}
	case reflect.Float32, reflect.Float64:
		if f, ok := asFloat64(v); ok {
			dst.SetFloat(f)
			return nil
		}
	}

	if rv.Type().ConvertibleTo(dst.Type()) {
		dst.Set(rv.Convert(dst.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", v, dst.Type())
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
	case string:
		if i, err := strconv.ParseInt(n, 10, 64); err == nil {
			return i, true
		}
	}
	return 0, false
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f, true
		}
	}
	return 0, false
}
