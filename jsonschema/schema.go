// Package jsonschema models the shape-describing subset of JSON Schema
// (2020-12 and draft-07) and OpenAPI 3 schema objects. Validation keywords
// such as pattern or minimum are not represented; only what is needed to
// rebuild the structure of a form.
package jsonschema

import (
	"github.com/goccy/go-json"
)

// Schema is a JSON Schema / OpenAPI schema object.
type Schema struct {
	Ref         string `json:"$ref,omitempty"`
	Type        Types  `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	Default any   `json:"default,omitempty"`
	Const   any   `json:"const,omitempty"`
	Enum    []any `json:"enum,omitempty"`

	// OpenAPI 3.0 flags.
	Nullable bool `json:"nullable,omitempty"`
	ReadOnly bool `json:"readOnly,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty"`

	// Composition
	AllOf         []*Schema      `json:"allOf,omitempty"`
	AnyOf         []*Schema      `json:"anyOf,omitempty"`
	OneOf         []*Schema      `json:"oneOf,omitempty"`
	Discriminator *Discriminator `json:"discriminator,omitempty"`

	// Local definitions
	Defs        map[string]*Schema `json:"$defs,omitempty"`
	Definitions map[string]*Schema `json:"definitions,omitempty"`
}

// Discriminator is the OpenAPI discriminator object.
type Discriminator struct {
	PropertyName string            `json:"propertyName"`
	Mapping      map[string]string `json:"mapping,omitempty"`
}

// Parse decodes a schema object from JSON.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// FromValue converts a decoded JSON value (typically map[string]any) into
// a Schema by round-tripping it through JSON.
func FromValue(v any) (*Schema, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// IsRequired reports whether name is listed in Required.
func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// IsNullable reports whether null is allowed, either through the OpenAPI
// nullable flag or a "null" entry in Type.
func (s *Schema) IsNullable() bool {
	return s.Nullable || s.Type.Has(TypeNull)
}

// Composite reports whether the schema uses allOf, anyOf or oneOf.
func (s *Schema) Composite() bool {
	return len(s.AllOf) > 0 || len(s.AnyOf) > 0 || len(s.OneOf) > 0
}
