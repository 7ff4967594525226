package api

import (
	"bytes"
	"encoding/json"
)

// Field is a request field that is expected to hold a JSON string.
//
// Unlike a plain string it remembers whether the key was present in the body
// at all and whether its value was actually a string, so callers can tell
// `{}` from `{"username": ""}` from `{"username": 42}`.
type Field struct {
	Value    string
	Present  bool
	IsString bool
}

// String returns a present string field
func String(v string) Field {
	return Field{Value: v, Present: true, IsString: true}
}

// UnmarshalJSON records presence and type; non-string values are kept as not-a-string
// instead of failing the whole body.
func (f *Field) UnmarshalJSON(data []byte) error {
	f.Present = true
	f.Value = ""
	f.IsString = false

	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		return nil
	}

	if err := json.Unmarshal(data, &f.Value); err != nil {
		return err
	}
	f.IsString = true
	return nil
}

// MarshalJSON writes the string value, or null for a present non-string field
func (f Field) MarshalJSON() ([]byte, error) {
	if !f.IsString {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// IsZero reports an absent field so `omitzero` drops it from the body
func (f Field) IsZero() bool {
	return !f.Present
}
