package wiretree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassDescriptor_PropertiesKeepRegistrationOrder(t *testing.T) {
	r := require.New(t)

	d := NewClassDescriptor()
	d.SetProperty(PropertyDescriptor{Name: "C", WireName: "c"})
	d.SetProperty(PropertyDescriptor{Name: "A", WireName: "a"})
	d.SetProperty(PropertyDescriptor{Name: "B", WireName: "b"})

	var order []string
	for p := range d.Properties() {
		order = append(order, p.WireName)
	}
	r.Equal([]string{"c", "a", "b"}, order)
}

func TestClassDescriptor_SetPropertyFillsDefaults(t *testing.T) {
	r := require.New(t)

	d := NewClassDescriptor()
	d.SetProperty(PropertyDescriptor{Name: "Field"})

	p, ok := d.Property("Field")
	r.True(ok)
	r.Equal("Field", p.WireName)
	r.Equal(DirectionBoth, p.Directions)
}

func TestClassDescriptor_PropertyNamed(t *testing.T) {
	r := require.New(t)

	d := NewClassDescriptor()
	d.SetProperty(PropertyDescriptor{Name: "Field", WireName: "field"})

	p, ok := d.PropertyNamed("Field")
	r.True(ok)
	r.Equal("field", p.WireName)

	_, ok = d.PropertyNamed("Other")
	r.False(ok)
}

func TestClassDescriptor_ReplaceMovesWireNameKey(t *testing.T) {
	r := require.New(t)

	d := NewClassDescriptor()
	d.SetProperty(PropertyDescriptor{Name: "Field", WireName: "old"})
	d.SetProperty(PropertyDescriptor{Name: "Field", WireName: "new"})

	r.Equal(1, d.Len())
	_, ok := d.Property("old")
	r.False(ok)
	_, ok = d.Property("new")
	r.True(ok)
}
