package wiretree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type profile struct {
	Handle string
	Bio    string
}

func TestRegistry_DescriptorCreateIfAbsent(t *testing.T) {
	r := require.New(t)
	reg := NewRegistry()

	d, err := reg.Descriptor(&profile{})
	r.NoError(err)
	r.NotNil(d)
	r.Zero(d.Len())

	// same descriptor on repeated lookup, not a fresh default
	again, err := reg.Descriptor(&profile{})
	r.NoError(err)
	r.Same(d, again)
}

func TestRegistry_DescriptorRejectsNonStruct(t *testing.T) {
	r := require.New(t)
	reg := NewRegistry()

	_, err := reg.Descriptor(42)
	r.Error(err)
	var cfg *ConfigurationError
	r.ErrorAs(err, &cfg)

	_, err = reg.Descriptor(nil)
	r.Error(err)
	r.ErrorAs(err, &cfg)
}

func TestRegistry_RegisterPropertyDefaults(t *testing.T) {
	r := require.New(t)
	reg := NewRegistry()

	r.NoError(reg.RegisterProperty(&profile{}, "Handle"))

	d, err := reg.Descriptor(&profile{})
	r.NoError(err)
	p, ok := d.Property("Handle")
	r.True(ok)
	r.Equal("Handle", p.Name)
	r.Equal("Handle", p.WireName)
	r.Equal(DirectionBoth, p.Directions)
}

func TestRegistry_RegisterPropertyUnknownField(t *testing.T) {
	r := require.New(t)
	reg := NewRegistry()

	err := reg.RegisterProperty(&profile{}, "Nope")
	r.Error(err)
	var cfg *ConfigurationError
	r.ErrorAs(err, &cfg)
}

func TestRegistry_RegisterPropertyUnexportedField(t *testing.T) {
	r := require.New(t)
	reg := NewRegistry()

	type account struct {
		User   string
		secret string
	}

	err := reg.RegisterProperty(&account{}, "secret")
	r.Error(err)
	var cfg *ConfigurationError
	r.ErrorAs(err, &cfg)

	// the invalid registration is rejected up front, so conversion
	// never trips over a field reflection cannot read
	r.NoError(reg.RegisterProperty(&account{}, "User", WithWireName("user")))
	wire, serr := reg.Serialize(account{User: "ann", secret: "hunter2"})
	r.NoError(serr)
	r.Equal(map[string]any{"user": "ann"}, wire)
}

func TestRegistry_MustRegisterPropertyPanics(t *testing.T) {
	reg := NewRegistry()
	require.Panics(t, func() {
		reg.MustRegisterProperty(&profile{}, "Nope")
	})
}

func TestRegistry_ReRegistrationAccumulatesAndMovesWireName(t *testing.T) {
	r := require.New(t)
	reg := NewRegistry()

	r.NoError(reg.RegisterProperty(&profile{}, "Handle", WithDirections(DirectionSerialize)))
	r.NoError(reg.RegisterProperty(&profile{}, "Handle", WithWireName("handle")))

	d, err := reg.Descriptor(&profile{})
	r.NoError(err)

	// old wire-name entry is gone, the direction from the first
	// registration carried over
	_, ok := d.Property("Handle")
	r.False(ok)
	p, ok := d.Property("handle")
	r.True(ok)
	r.Equal("Handle", p.Name)
	r.Equal(DirectionSerialize, p.Directions)
	r.Equal(1, d.Len())
}

func TestRegistry_RegisterClassIdempotent(t *testing.T) {
	r := require.New(t)
	reg := NewRegistry()

	hookRan := false
	r.NoError(reg.RegisterClass(&profile{}, WithPostConstructHook(func(any) error {
		hookRan = true
		return nil
	})))
	// second registration with no options leaves the hook in place
	r.NoError(reg.RegisterClass(&profile{}))

	d, err := reg.Descriptor(&profile{})
	r.NoError(err)
	r.NotNil(d.PostConstructHook())
	r.NoError(d.PostConstructHook()(nil))
	r.True(hookRan)
}

func TestRegistry_SetOverwritesDescriptor(t *testing.T) {
	r := require.New(t)
	reg := NewRegistry()

	r.NoError(reg.RegisterProperty(&profile{}, "Handle"))

	fresh := NewClassDescriptor()
	fresh.SetProperty(PropertyDescriptor{Name: "Bio", WireName: "bio"})
	r.NoError(reg.Set(&profile{}, fresh))

	d, err := reg.Descriptor(&profile{})
	r.NoError(err)
	_, ok := d.Property("Handle")
	r.False(ok)
	_, ok = d.Property("bio")
	r.True(ok)
}

func TestRegistry_CloneIsolation(t *testing.T) {
	r := require.New(t)
	reg := NewRegistry()
	r.NoError(reg.RegisterProperty(&profile{}, "Handle", WithWireName("handle")))

	clone := reg.Clone()
	r.NoError(clone.RegisterProperty(&profile{}, "Bio", WithWireName("bio")))

	orig, err := reg.Descriptor(&profile{})
	r.NoError(err)
	r.Equal(1, orig.Len())

	cloned, err := clone.Descriptor(&profile{})
	r.NoError(err)
	r.Equal(2, cloned.Len())
}

func TestRegistry_SettersRetrofitHookAndFactory(t *testing.T) {
	r := require.New(t)
	reg := NewRegistry()

	r.NoError(reg.SetConstructionFactory(&profile{}, func(map[string]any) any {
		return &profile{Bio: "from factory"}
	}))
	r.NoError(reg.SetPostConstructHook(&profile{}, func(any) error { return nil }))

	d, err := reg.Descriptor(&profile{})
	r.NoError(err)
	r.NotNil(d.ConstructionFactory())
	r.NotNil(d.PostConstructHook())
}

func TestDirection_String(t *testing.T) {
	tests := []struct {
		d    Direction
		want string
	}{
		{DirectionSerialize, "serialize"},
		{DirectionDeserialize, "deserialize"},
		{DirectionBoth, "serialize|deserialize"},
		{0, "none"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, tt.d.String())
		})
	}
}
