package wiretree

// DefaultRegistry is the process-wide registry behind the package-level
// functions. Hosts that want isolation, tests in particular, construct
// their own with NewRegistry instead.
var DefaultRegistry = NewRegistry()

// RegisterClass records type-level metadata on the default registry.
func RegisterClass(prototype any, opts ...ClassOption) error {
	return DefaultRegistry.RegisterClass(prototype, opts...)
}

// RegisterProperty records a field registration on the default registry.
func RegisterProperty(prototype any, fieldName string, opts ...PropertyOption) error {
	return DefaultRegistry.RegisterProperty(prototype, fieldName, opts...)
}

// SetPostConstructHook retrofits a hook on the default registry.
func SetPostConstructHook(prototype any, fn HookFunc) error {
	return DefaultRegistry.SetPostConstructHook(prototype, fn)
}

// SetConstructionFactory retrofits a factory on the default registry.
func SetConstructionFactory(prototype any, fn FactoryFunc) error {
	return DefaultRegistry.SetConstructionFactory(prototype, fn)
}

// Serialize converts an instance using the default registry.
func Serialize(v any) (any, error) {
	return DefaultRegistry.Serialize(v)
}

// Deserialize converts a wire tree using the default registry.
func Deserialize(prototype any, wire any) (any, error) {
	return DefaultRegistry.Deserialize(prototype, wire)
}
