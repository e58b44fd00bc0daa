package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ProductMetadata is the tagged replacement for the free-form metadata blobs
// the import pipeline used to write. Recognized keys are explicit struct
// fields; anything else is routed to Extensions verbatim rather than being
// dropped or silently merged.
type ProductMetadata struct {
	// VariantAttributes caches the attribute key ids currently driving this
	// product's variant structure, so runs don't re-derive the mapping.
	VariantAttributes []string `json:"variant_attributes,omitempty"`

	// Extensions holds unrecognized metadata keys, stringified.
	Extensions map[string]string `json:"extensions,omitempty"`
}

// HasVariantAttribute reports whether the given attribute key id is already
// recorded on the product.
func (m *ProductMetadata) HasVariantAttribute(keyID string) bool {
	for _, id := range m.VariantAttributes {
		if id == keyID {
			return true
		}
	}
	return false
}

// AddVariantAttributes unions the given key ids into the cached set,
// preserving order of first appearance. Returns true if anything was added.
func (m *ProductMetadata) AddVariantAttributes(keyIDs []string) bool {
	added := false
	for _, id := range keyIDs {
		if !m.HasVariantAttribute(id) {
			m.VariantAttributes = append(m.VariantAttributes, id)
			added = true
		}
	}
	return added
}

func (m *ProductMetadata) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = ProductMetadata{}
	for key, val := range raw {
		switch key {
		case "variant_attributes":
			if err := json.Unmarshal(val, &m.VariantAttributes); err != nil {
				return fmt.Errorf("metadata key %q: %w", key, err)
			}
		case "extensions":
			if err := json.Unmarshal(val, &m.Extensions); err != nil {
				return fmt.Errorf("metadata key %q: %w", key, err)
			}
		default:
			// Legacy rows carry arbitrary top-level keys; keep them readable
			// instead of failing the scan.
			if m.Extensions == nil {
				m.Extensions = make(map[string]string)
			}
			var s string
			if err := json.Unmarshal(val, &s); err != nil {
				s = string(val)
			}
			m.Extensions[key] = s
		}
	}
	return nil
}

func (m ProductMetadata) Value() (driver.Value, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *ProductMetadata) Scan(src interface{}) error {
	if src == nil {
		return nil
	}
	switch v := src.(type) {
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, m)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}
