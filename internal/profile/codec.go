package profile

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Marshal encodes the profile as YAML, fields in declaration order and empty
// values omitted.
func Marshal(p *MasterProfile) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalEntry encodes a single entry as YAML, for previews.
func MarshalEntry(e Entry) ([]byte, error) {
	out, err := yaml.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", e.Category(), err)
	}
	return out, nil
}

// ParseRaw decodes YAML (or JSON, which is a YAML subset) into an untyped mapping.
func ParseRaw(data []byte) (map[string]any, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

// Parse decodes, normalizes and validates a stored profile.
func Parse(data []byte) (*MasterProfile, error) {
	raw, err := ParseRaw(data)
	if err != nil {
		return nil, err
	}
	return FromMap(raw)
}

// FromMap normalizes and validates an untyped profile mapping.
func FromMap(raw map[string]any) (*MasterProfile, error) {
	normalized, err := Normalize(raw)
	if err != nil {
		return nil, err
	}
	return Decode(normalized)
}

// ToMap returns the canonical JSON-shaped representation of the profile.
func ToMap(p *MasterProfile) (map[string]any, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return out, nil
}
