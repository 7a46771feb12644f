package jsonschema_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/formskema/jsonschema"
)

func TestParse_ShapeKeywords(t *testing.T) {
	s, err := jsonschema.Parse([]byte(`{
		"type": "object",
		"required": ["email"],
		"properties": {
			"email": {"type": "string", "format": "email"},
			"age": {"type": ["integer", "null"], "default": 18},
			"tags": {"type": "array", "items": {"type": "string"}, "maxItems": 5},
			"pet": {"oneOf": [{"$ref": "#/$defs/Cat"}], "discriminator": {"propertyName": "kind"}},
			"role": {"enum": ["admin", "user"], "readOnly": true},
			"nick": {"type": "string", "nullable": true}
		},
		"$defs": {"Cat": {"type": "object"}}
	}`))
	require.NoError(t, err)

	assert.Equal(t, jsonschema.Types{"object"}, s.Type)
	assert.True(t, s.IsRequired("email"))
	assert.False(t, s.IsRequired("age"))

	age := s.Properties["age"]
	assert.True(t, age.IsNullable())
	assert.Equal(t, []string{"integer"}, age.Type.NonNull())
	assert.EqualValues(t, 18, age.Default)

	tags := s.Properties["tags"]
	require.NotNil(t, tags.Items)
	assert.True(t, tags.Items.Type.Has(jsonschema.TypeString))
	require.NotNil(t, tags.MaxItems)
	assert.Equal(t, 5, *tags.MaxItems)

	pet := s.Properties["pet"]
	assert.True(t, pet.Composite())
	assert.Equal(t, "#/$defs/Cat", pet.OneOf[0].Ref)
	assert.Equal(t, "kind", pet.Discriminator.PropertyName)

	assert.Equal(t, []any{"admin", "user"}, s.Properties["role"].Enum)
	assert.True(t, s.Properties["role"].ReadOnly)
	assert.True(t, s.Properties["nick"].IsNullable())
	assert.Contains(t, s.Defs, "Cat")
}

func TestTypes_JSON(t *testing.T) {
	var ts jsonschema.Types
	require.NoError(t, json.Unmarshal([]byte(`"string"`), &ts))
	assert.Equal(t, jsonschema.Types{"string"}, ts)

	require.NoError(t, json.Unmarshal([]byte(` ["string","null"]`), &ts))
	assert.Equal(t, jsonschema.Types{"string", "null"}, ts)

	assert.Error(t, json.Unmarshal([]byte(`42`), &ts))

	b, err := json.Marshal(jsonschema.Types{"number"})
	require.NoError(t, err)
	assert.JSONEq(t, `"number"`, string(b))

	b, err = json.Marshal(jsonschema.Types{"number", "null"})
	require.NoError(t, err)
	assert.JSONEq(t, `["number","null"]`, string(b))
}

func TestFromValue(t *testing.T) {
	s, err := jsonschema.FromValue(map[string]any{
		"type":       "object",
		"properties": map[string]any{"a": map[string]any{"type": "boolean"}},
	})
	require.NoError(t, err)
	assert.Equal(t, jsonschema.Types{"boolean"}, s.Properties["a"].Type)

	_, err = jsonschema.FromValue(map[string]any{"type": 3})
	assert.Error(t, err)
}
