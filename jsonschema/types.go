package jsonschema

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// Type names.
const (
	TypeObject  = "object"
	TypeArray   = "array"
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeNull    = "null"
)

// Types holds the "type" keyword, which may be a single name or a list.
type Types []string

// UnmarshalJSON accepts "string" as well as ["string", "null"].
func (t *Types) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("jsonschema: type: %w", err)
		}
		*t = list
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return fmt.Errorf("jsonschema: type: %w", err)
	}
	if one == "" {
		*t = nil
		return nil
	}
	*t = Types{one}
	return nil
}

// MarshalJSON writes a single type as a string and several as a list.
func (t Types) MarshalJSON() ([]byte, error) {
	if len(t) == 1 {
		return json.Marshal(t[0])
	}
	return json.Marshal([]string(t))
}

// Has reports whether name is one of the types.
func (t Types) Has(name string) bool {
	for _, n := range t {
		if n == name {
			return true
		}
	}
	return false
}

// NonNull returns the types other than "null".
func (t Types) NonNull() []string {
	var out []string
	for _, n := range t {
		if n != TypeNull {
			out = append(out, n)
		}
	}
	return out
}
