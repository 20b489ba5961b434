package wiretree

import (
	"iter"
	"reflect"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Direction is the set of conversion directions a property participates
// in.
type Direction uint8

const (
	DirectionSerialize Direction = 1 << iota
	DirectionDeserialize

	DirectionBoth = DirectionSerialize | DirectionDeserialize
)

// Has reports whether d includes the given direction.
func (d Direction) Has(o Direction) bool {
	return d&o != 0
}

func (d Direction) String() string {
	var parts []string
	if d.Has(DirectionSerialize) {
		parts = append(parts, "serialize")
	}
	if d.Has(DirectionDeserialize) {
		parts = append(parts, "deserialize")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// PropertyDescriptor is one field's serialization metadata.
type PropertyDescriptor struct {
	// Name is the Go struct field the property reads and writes.
	Name string
	// WireName is the key used in the serialized tree. Defaults to
	// Name at registration time and is fixed thereafter unless the
	// field is registered again.
	WireName string
	// Scheme transforms the value; the zero Scheme is primitive.
	Scheme Scheme
	// Directions defaults to DirectionBoth when left zero.
	Directions Direction
}

// HookFunc runs against the fully populated instance after
// deserialization. An error aborts the deserialize call.
type HookFunc func(instance any) error

// FactoryFunc produces a new, empty instance of a type. The wire
// mapping being deserialized is passed for factories that need to peek
// at it; most ignore it.
type FactoryFunc func(wire map[string]any) any

// ClassDescriptor is one type's own (non-merged) metadata: its directly
// registered properties in registration order, keyed by wire name, plus
// the optional post-construct hook, construction factory and explicit
// parent type.
type ClassDescriptor struct {
	properties *orderedmap.OrderedMap[string, PropertyDescriptor]
	hook       HookFunc
	factory    FactoryFunc
	parent     reflect.Type
}

// NewClassDescriptor returns an empty descriptor, the default for any
// type the registry has not seen a registration for.
func NewClassDescriptor() *ClassDescriptor {
	return &ClassDescriptor{
		properties: orderedmap.New[string, PropertyDescriptor](),
	}
}

// SetProperty inserts or replaces a property. Zero values are filled
// with their defaults: WireName from Name, Directions to both. Any
// previous registration for the same field is removed first, so
// re-registering a field under a new wire name does not leave the old
// entry behind.
func (d *ClassDescriptor) SetProperty(p PropertyDescriptor) {
	if p.WireName == "" {
		p.WireName = p.Name
	}
	if p.Directions == 0 {
		p.Directions = DirectionBoth
	}
	for pair := d.properties.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Name == p.Name {
			d.properties.Delete(pair.Key)
			break
		}
	}
	d.properties.Set(p.WireName, p)
}

// Property looks a property up by wire name.
func (d *ClassDescriptor) Property(wireName string) (PropertyDescriptor, bool) {
	return d.properties.Get(wireName)
}

// PropertyNamed looks a property up by field name.
func (d *ClassDescriptor) PropertyNamed(fieldName string) (PropertyDescriptor, bool) {
	for pair := d.properties.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Name == fieldName {
			return pair.Value, true
		}
	}
	return PropertyDescriptor{}, false
}

// Properties iterates the properties in registration order.
func (d *ClassDescriptor) Properties() iter.Seq[PropertyDescriptor] {
	return func(yield func(PropertyDescriptor) bool) {
		for pair := d.properties.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Value) {
				return
			}
		}
	}
}

// Len returns the number of registered properties.
func (d *ClassDescriptor) Len() int {
	return d.properties.Len()
}

// SetPostConstructHook replaces the hook.
func (d *ClassDescriptor) SetPostConstructHook(fn HookFunc) {
	d.hook = fn
}

// PostConstructHook returns the hook, or nil.
func (d *ClassDescriptor) PostConstructHook() HookFunc {
	return d.hook
}

// SetConstructionFactory replaces the factory.
func (d *ClassDescriptor) SetConstructionFactory(fn FactoryFunc) {
	d.factory = fn
}

// ConstructionFactory returns the factory, or nil.
func (d *ClassDescriptor) ConstructionFactory() FactoryFunc {
	return d.factory
}

// clone returns a copy sharing nothing with d.
func (d *ClassDescriptor) clone() *ClassDescriptor {
	c := NewClassDescriptor()
	for pair := d.properties.Oldest(); pair != nil; pair = pair.Next() {
		c.properties.Set(pair.Key, pair.Value)
	}
	c.hook = d.hook
	c.factory = d.factory
	c.parent = d.parent
	return c
}
