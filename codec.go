package wiretree

import (
	"encoding/json"
	"fmt"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"
	"sigs.k8s.io/yaml"
)

// EncodeJSON serializes an instance and marshals the wire tree to JSON.
func (r *Registry) EncodeJSON(v any) ([]byte, error) {
	wire, err := r.Serialize(v)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("could not marshal wire tree: %w", err)
	}
	return data, nil
}

// DecodeJSON unmarshals JSON bytes into a wire tree and deserializes it
// into an instance of the prototype's type.
func (r *Registry) DecodeJSON(prototype any, data []byte) (any, error) {
	wire, err := wireFromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("could not unmarshal wire tree: %w", err)
	}
	return r.Deserialize(prototype, wire)
}

// EncodeYAML serializes an instance and marshals the wire tree to YAML.
func (r *Registry) EncodeYAML(v any) ([]byte, error) {
	wire, err := r.Serialize(v)
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("could not marshal wire tree: %w", err)
	}
	return data, nil
}

// DecodeYAML unmarshals YAML bytes into a wire tree and deserializes it
// into an instance of the prototype's type. The YAML passes through a
// JSON intermediate, so the resulting wire values are JSON-shaped.
func (r *Registry) DecodeYAML(prototype any, data []byte) (any, error) {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("could not convert yaml to json: %w", err)
	}
	return r.DecodeJSON(prototype, jsonData)
}

// CanonicalJSON renders a wire tree as canonical JSON (RFC 8785): keys
// sorted, numbers and strings normalized. Two trees holding the same
// data always produce identical bytes, which makes the output suitable
// for comparison and hashing.
func CanonicalJSON(wire any) ([]byte, error) {
	data, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("could not marshal wire tree: %w", err)
	}
	canonical, err := jsoncanonicalizer.Transform(data)
	if err != nil {
		return nil, fmt.Errorf("could not canonicalize wire tree: %w", err)
	}
	return canonical, nil
}
