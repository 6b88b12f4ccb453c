package storage

import (
	"encoding/json"
	"fmt"
)

// ExtensionState carries free form, per-feature json blobs on an asset. Each
// consumer owns one key and decodes it into its own type.
type ExtensionState map[string]json.RawMessage

// Set stores v under key after marshalling it to JSON.
func (e *ExtensionState) Set(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal extension %q: %w", key, err)
	}

	if *e == nil {
		*e = ExtensionState{}
	}
	(*e)[key] = json.RawMessage(b)
	return nil
}

// Get unmarshals the extension value at key into out.
// Returns (found=false, nil) if not present.
func (e ExtensionState) Get(key string, out any) (bool, error) {
	raw, ok := e[key]
	if !ok || len(raw) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("unmarshal extension %q: %w", key, err)
	}
	return true, nil
}

// Has reports whether key is present.
func (e ExtensionState) Has(key string) bool {
	_, ok := e[key]
	return ok
}

// Delete removes the extension key, if present.
func (e ExtensionState) Delete(key string) {
	delete(e, key)
}
