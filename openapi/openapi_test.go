package openapi_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/formskema/dsl"
	"github.com/reoring/formskema/introspect"
	"github.com/reoring/formskema/jsonschema"
	"github.com/reoring/formskema/openapi"
)

func field(t *testing.T, s dsl.Schema, name string) dsl.Schema {
	t.Helper()
	obj, ok := s.(*dsl.ObjectSchema)
	require.True(t, ok, "want object, got %T", s)
	f, ok := obj.Field(name)
	require.True(t, ok, "missing field %q", name)
	return f
}

func TestImport_ObjectRequiredAndOptional(t *testing.T) {
	doc := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":  map[string]any{"type": "string"},
			"age":   map[string]any{"type": "integer"},
			"admin": map[string]any{"type": "boolean", "default": false},
		},
		"required": []any{"name"},
	}
	s, diag, err := openapi.Import(doc, openapi.Options{})
	require.NoError(t, err)
	assert.False(t, diag.HasWarnings())

	assert.Equal(t, dsl.KindString, field(t, s, "name").Kind())
	age := field(t, s, "age")
	require.Equal(t, dsl.KindOptional, age.Kind())
	assert.Equal(t, dsl.KindNumber, age.(*dsl.WrapperSchema).Unwrap().Kind())

	admin := field(t, s, "admin").(*dsl.WrapperSchema).Unwrap()
	require.Equal(t, dsl.KindDefault, admin.Kind())
	assert.Equal(t, false, admin.(*dsl.DefaultSchema).DefaultValue())
}

func TestImport_JSONBytesAndTypedSchema(t *testing.T) {
	raw := []byte(`{"type":"object","required":["a"],"properties":{"a":{"type":["number","null"]},"d":{"type":"string","format":"date-time"},"f":{"type":"string","format":"binary"}}}`)
	s, _, err := openapi.Import(raw, openapi.Options{})
	require.NoError(t, err)

	a := field(t, s, "a")
	require.Equal(t, dsl.KindNullable, a.Kind())
	assert.Equal(t, dsl.KindNumber, a.(*dsl.WrapperSchema).Unwrap().Kind())

	typed, err := jsonschema.Parse(raw)
	require.NoError(t, err)
	s2, _, err := openapi.Import(typed, openapi.Options{})
	require.NoError(t, err)
	assert.Equal(t,
		introspect.Paths(s, introspect.Options{}),
		introspect.Paths(s2, introspect.Options{}))

	_, _, err = openapi.Import([]byte(`{`), openapi.Options{})
	assert.Error(t, err)
	_, _, err = openapi.Import(nil, openapi.Options{})
	assert.Error(t, err)
	_, _, err = openapi.Import([]byte(`null`), openapi.Options{})
	assert.True(t, errors.Is(err, openapi.ErrNoSchema))
}

const storeYAML = `
openapi: 3.0.3
info: {title: store, version: "1"}
paths: {}
components:
  schemas:
    Address:
      type: object
      properties:
        city: {type: string}
        zip: {type: string, nullable: true}
    Line:
      type: object
      required: [sku]
      properties:
        sku: {type: string}
        qty: {type: integer, default: 1}
    Order:
      type: object
      required: [email, lines]
      properties:
        email: {type: string, format: email}
        placed: {type: string, format: date}
        tags: {type: array, items: {type: string}}
        shipTo: {$ref: '#/components/schemas/Address'}
        lines:
          type: array
          items: {$ref: '#/components/schemas/Line'}
        status: {enum: [new, paid, shipped], readOnly: true}
`

func TestImportYAML_SelectComponent(t *testing.T) {
	s, diag, err := openapi.ImportYAML([]byte(storeYAML), openapi.Options{Select: "$.components.schemas.Order"})
	require.NoError(t, err)
	assert.False(t, diag.HasWarnings(), "%v", diag.Warnings())

	paths := introspect.Paths(s, introspect.Options{}).(introspect.PathObject)
	assert.Equal(t, "email", paths.Leaf("email"))
	assert.Equal(t, "placed", paths.Leaf("placed"))
	assert.Equal(t, "tags", paths.Leaf("tags"))
	assert.Equal(t, "status", paths.Leaf("status"))
	assert.Equal(t, "shipTo.zip", paths.Object("shipTo").Leaf("zip"))
	assert.Equal(t, "lines.1.qty", paths.Array("lines").At(1).(introspect.PathObject).Leaf("qty"))

	sel := introspect.Select(s, introspect.Options{})
	assert.Equal(t, []string{"email", "lines.qty", "lines.sku", "placed", "shipTo.city", "shipTo.zip", "status", "tags"}, sel.Columns())
}

func TestImport_OpenAPIRootNeedsSelect(t *testing.T) {
	_, _, err := openapi.ImportYAML([]byte(storeYAML), openapi.Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, openapi.ErrNoSchema))

	_, _, err = openapi.ImportYAML([]byte(storeYAML), openapi.Options{Select: "$.components.schemas.Nope"})
	assert.True(t, errors.Is(err, openapi.ErrNoSchema))

	_, _, err = openapi.ImportYAML([]byte(storeYAML), openapi.Options{Select: "$["})
	assert.Error(t, err)
}

func TestImport_RecursiveRef(t *testing.T) {
	doc := map[string]any{
		"$ref": "#/$defs/Category",
		"$defs": map[string]any{
			"Category": map[string]any{
				"type":     "object",
				"required": []any{"name"},
				"properties": map[string]any{
					"name":     map[string]any{"type": "string"},
					"parent":   map[string]any{"$ref": "#/$defs/Category"},
					"children": map[string]any{"type": "array", "items": map[string]any{"$ref": "#/$defs/Category"}},
				},
			},
		},
	}
	s, _, err := openapi.Import(doc, openapi.Options{})
	require.NoError(t, err)

	parent := field(t, s, "parent").(*dsl.WrapperSchema).Unwrap()
	require.True(t, introspect.IsLazy(parent))
	assert.Same(t, s, parent.(*dsl.LazySchema).Resolve())

	paths := introspect.Paths(s, introspect.Options{}).(introspect.PathObject)
	assert.Equal(t, "parent", paths.Leaf("parent"))
	child := paths.Array("children").At(0).(introspect.PathObject)
	assert.Equal(t, "children.0.name", child.Leaf("name"))
	assert.Equal(t, "children.0.children.2.name", child.Array("children").At(2).(introspect.PathObject).Leaf("name"))
}

func TestImport_Composition(t *testing.T) {
	doc := []byte(`{
		"definitions": {
			"Base": {"type": "object", "properties": {"id": {"type": "string"}}},
			"Card": {"type": "object", "properties": {"method": {"const": "card"}, "number": {"type": "string"}}},
			"Bank": {"type": "object", "properties": {"method": {"const": "bank"}, "iban": {"type": "string"}}}
		},
		"type": "object",
		"properties": {
			"entity": {"allOf": [{"$ref": "#/definitions/Base"}], "properties": {"name": {"type": "string"}}},
			"payment": {
				"oneOf": [{"$ref": "#/definitions/Card"}, {"$ref": "#/definitions/Bank"}],
				"discriminator": {"propertyName": "method", "mapping": {"cc": "#/definitions/Card"}}
			},
			"contact": {"anyOf": [
				{"type": "object", "properties": {"email": {"type": "string"}}},
				{"type": "object", "properties": {"phone": {"type": "string"}}}
			]},
			"scalar": {"anyOf": [{"type": "string"}, {"type": "number"}]}
		}
	}`)
	s, _, err := openapi.Import(doc, openapi.Options{})
	require.NoError(t, err)

	pay := field(t, s, "payment").(*dsl.WrapperSchema).Unwrap().(*dsl.UnionSchema)
	assert.Equal(t, "method", pay.Discriminator())
	_, ok := pay.Variant("cc")
	assert.True(t, ok)
	_, ok = pay.Variant("Bank")
	assert.True(t, ok)

	paths := introspect.Paths(s, introspect.Options{}).(introspect.PathObject)
	assert.Equal(t, "entity.id", paths.Object("entity").Leaf("id"))
	assert.Equal(t, "entity.name", paths.Object("entity").Leaf("name"))
	assert.Equal(t, "payment.iban", paths.Object("payment").Leaf("iban"))
	assert.Equal(t, "payment.number", paths.Object("payment").Leaf("number"))
	assert.Equal(t, "contact.phone", paths.Object("contact").Leaf("phone"))
	assert.Equal(t, "scalar", paths.Leaf("scalar"))
}

func TestImport_Warnings(t *testing.T) {
	doc := map[string]any{
		"type":     "object",
		"required": []any{"ghost"},
		"properties": map[string]any{
			"a.b":    map[string]any{"type": "string"},
			"labels": map[string]any{"type": "object", "additionalProperties": map[string]any{"type": "string"}},
			"odd":    map[string]any{"type": "tuple"},
			"remote": map[string]any{"$ref": "https://example.com/schema.json"},
		},
	}
	s, diag, err := openapi.Import(doc, openapi.Options{})
	require.NoError(t, err)
	require.True(t, diag.HasWarnings())
	assert.Len(t, diag.Warnings(), 5)

	obj := s.(*dsl.ObjectSchema)
	assert.Equal(t, []string{"labels", "odd", "remote"}, obj.Keys())

	_, _, err = openapi.Import(doc, openapi.Options{StrictRefs: true})
	assert.ErrorContains(t, err, "unresolved $ref")
}

const crdBundle = `
apiVersion: v1
kind: ConfigMap
metadata: {name: unrelated}
---
apiVersion: apiextensions.k8s.io/v1
kind: CustomResourceDefinition
metadata: {name: widgets.example.com}
spec:
  names: {kind: Widget}
  versions:
    - name: v1alpha1
      served: false
      schema:
        openAPIV3Schema:
          type: object
          properties:
            old: {type: string}
    - name: v1
      served: true
      schema:
        openAPIV3Schema:
          type: object
          properties:
            spec:
              type: object
              properties:
                size: {type: integer}
                ports:
                  type: array
                  items:
                    type: object
                    properties:
                      port: {type: integer}
`

func TestImportYAML_CRDBundle(t *testing.T) {
	s, _, err := openapi.ImportYAML([]byte(crdBundle), openapi.Options{Document: 2})
	require.NoError(t, err)
	paths := introspect.Paths(s, introspect.Options{}).(introspect.PathObject)
	assert.Equal(t, "spec.size", paths.Object("spec").Leaf("size"))
	assert.Equal(t, "spec.ports.0.port", paths.Object("spec").Array("ports").At(0).(introspect.PathObject).Leaf("port"))

	s, _, err = openapi.ImportYAML([]byte(crdBundle), openapi.Options{Select: "$.spec.versions[0].schema.openAPIV3Schema"})
	require.NoError(t, err)
	assert.Equal(t, "old", introspect.Paths(s, introspect.Options{}).(introspect.PathObject).Leaf("old"))

	_, _, err = openapi.ImportYAML([]byte(crdBundle), openapi.Options{Document: 9})
	assert.True(t, errors.Is(err, openapi.ErrNoSchema))

	_, _, err = openapi.ImportYAML([]byte("a: [unclosed"), openapi.Options{})
	assert.Error(t, err)
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "user.yaml")
	require.NoError(t, os.WriteFile(yml, []byte("type: object\nproperties:\n  email: {type: string}\n"), 0o600))
	js := filepath.Join(dir, "user.json")
	require.NoError(t, os.WriteFile(js, []byte(`{"type":"object","properties":{"email":{"type":"string"}}}`), 0o600))

	for _, p := range []string{yml, js} {
		s, _, err := openapi.ImportFile(p, openapi.Options{})
		require.NoError(t, err, p)
		assert.Equal(t, introspect.PathObject{"email": introspect.PathLeaf("email")}, introspect.Paths(s, introspect.Options{}))
	}

	_, _, err := openapi.ImportFile(filepath.Join(dir, "missing.json"), openapi.Options{})
	assert.Error(t, err)
}
