package wiretree

import (
	"reflect"
)

// Resolve computes the effective descriptor for a concrete type by
// walking its ancestor chain from most specific to least specific and
// merging each type's own descriptor:
//
//   - properties merge first-seen-wins by wire name, so a derived
//     type's registration always shadows an ancestor's;
//   - the construction factory is taken only from the concrete type's
//     own descriptor, never from an ancestor;
//   - the post-construct hook comes from the first type in the walk
//     that defines one.
//
// The result is computed fresh on every call and is safe for the caller
// to hold on to; it shares no mutable state with the registry.
func (r *Registry) Resolve(prototype any) (*ClassDescriptor, error) {
	t, err := structTypeOf(prototype)
	if err != nil {
		return nil, err
	}
	return r.resolveType(t), nil
}

func (r *Registry) resolveType(t reflect.Type) *ClassDescriptor {
	merged := NewClassDescriptor()
	seen := make(map[reflect.Type]bool)

	for i, at := range r.ancestry(t) {
		if seen[at] {
			continue
		}
		seen[at] = true

		own := r.descriptorFor(at)
		r.mu.RLock()
		for p := range own.Properties() {
			if _, exists := merged.Property(p.WireName); !exists {
				merged.properties.Set(p.WireName, p)
			}
		}
		if i == 0 {
			merged.factory = own.factory
		}
		if merged.hook == nil {
			merged.hook = own.hook
		}
		r.mu.RUnlock()
	}

	r.logger.Debug("resolved descriptor", "type", typeName(t), "properties", merged.Len())
	return merged
}

// ancestry returns the walk order for a type: the type itself, then its
// ancestors from most specific to least specific. A parent pinned with
// WithParent replaces the chain reflected from anonymous embedded
// struct fields. Embedding is acyclic by construction, but pins are
// arbitrary registrations, so a type already walked ends the chain.
func (r *Registry) ancestry(t reflect.Type) []reflect.Type {
	return r.ancestryFrom(t, make(map[reflect.Type]bool))
}

func (r *Registry) ancestryFrom(t reflect.Type, walked map[reflect.Type]bool) []reflect.Type {
	if walked[t] {
		return nil
	}
	walked[t] = true
	chain := []reflect.Type{t}

	r.mu.RLock()
	own, registered := r.classes[t]
	var parent reflect.Type
	if registered {
		parent = own.parent
	}
	r.mu.RUnlock()

	if parent != nil {
		return append(chain, r.ancestryFrom(parent, walked)...)
	}
	return append(chain, embeddedAncestors(t)...)
}
