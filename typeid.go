package wiretree

import (
	"reflect"
)

// structTypeOf normalizes a prototype into the struct type that serves
// as registry key. It accepts a struct value, a (possibly nested)
// pointer to one, or a reflect.Type directly.
func structTypeOf(prototype any) (reflect.Type, error) {
	var t reflect.Type
	switch v := prototype.(type) {
	case nil:
		return nil, configErrorf("prototype must not be nil")
	case reflect.Type:
		t = v
	default:
		t = reflect.TypeOf(prototype)
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return nil, configErrorf("prototype must be a struct or pointer to struct, got %s", t.Kind())
	}
	return t, nil
}

// typeName renders a type for log records and error messages.
func typeName(t reflect.Type) string {
	if t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// embeddedAncestors returns the ancestor chain contributed by anonymous
// embedded struct fields, linearized depth-first in field order.
// Pointer embeds are followed to their element type.
func embeddedAncestors(t reflect.Type) []reflect.Type {
	var chain []reflect.Type
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() != reflect.Struct {
			continue
		}
		chain = append(chain, ft)
		chain = append(chain, embeddedAncestors(ft)...)
	}
	return chain
}
