package wiretree

import (
	"fmt"
	"reflect"
	"time"

	"github.com/invopop/jsonschema"
)

// JSONSchemaFor generates a JSON Schema for a registered type from its
// Go struct shape, renaming keys to the wire names of the type's
// effective descriptor. Date-scheme fields appear as RFC 3339 strings,
// matching their serialized form.
func (r *Registry) JSONSchemaFor(prototype any) ([]byte, error) {
	t, err := structTypeOf(prototype)
	if err != nil {
		return nil, err
	}

	wireNames := make(map[string]string)
	for p := range r.resolveType(t).Properties() {
		wireNames[p.Name] = p.WireName
	}

	reflector := &jsonschema.Reflector{
		KeyNamer: func(name string) string {
			if wire, ok := wireNames[name]; ok {
				return wire
			}
			return name
		},
		Mapper: func(i reflect.Type) *jsonschema.Schema {
			if i == reflect.TypeOf(time.Time{}) {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}
			return nil
		},
	}

	schema, err := reflector.ReflectFromType(t).MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to create json schema for %s: %w", typeName(t), err)
	}
	return schema, nil
}
