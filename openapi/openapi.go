// Package openapi imports JSON Schema and OpenAPI 3 schema documents as dsl
// trees, so form paths and selections can be derived from schema files.
//
// Supported keywords: type (single or list, including "null"), properties
// and required (properties not listed become Optional), items, anyOf and
// oneOf (Union, or a discriminated union when a discriminator is set),
// allOf (Intersection), enum, const, nullable, readOnly, default, string
// formats date, date-time and binary, and local $ref pointers such as
// "#/$defs/Node", "#/definitions/Node" or "#/components/schemas/Node".
// Recursive references are broken with dsl.Lazy.
//
//	s, diag, err := openapi.ImportYAML(data, openapi.Options{Select: "$.components.schemas.User"})
package openapi

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/ohler55/ojg/jp"

	"github.com/reoring/formskema/dsl"
)

// ErrNoSchema is returned when the document (or the Select expression)
// does not lead to a schema object.
var ErrNoSchema = errors.New("openapi: no schema found")

// Import compiles a schema document into a dsl tree. doc may be raw JSON
// bytes, a decoded map[string]any, or any value that marshals to a JSON
// object (for example a *jsonschema.Schema).
func Import(doc any, opts Options) (dsl.Schema, Diag, error) {
	d := &simpleDiag{}
	root, err := toMap(doc)
	if err != nil {
		return nil, d, err
	}
	target, err := locate(root, opts.Select)
	if err != nil {
		return nil, d, err
	}
	s, err := newImporter(root, target, opts, d).run()
	return s, d, err
}

// ImportFile reads path and imports it as YAML when the extension is .yaml
// or .yml, and as JSON otherwise.
func ImportFile(path string, opts Options) (dsl.Schema, Diag, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &simpleDiag{}, fmt.Errorf("openapi: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ImportYAML(data, opts)
	}
	return Import(data, opts)
}

func toMap(doc any) (map[string]any, error) {
	var root map[string]any
	switch t := doc.(type) {
	case nil:
		return nil, errors.New("openapi: nil document")
	case map[string]any:
		return t, nil
	case []byte:
		if err := json.Unmarshal(t, &root); err != nil {
			return nil, fmt.Errorf("openapi: invalid JSON: %w", err)
		}
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("openapi: cannot marshal input: %w", err)
		}
		if err := json.Unmarshal(b, &root); err != nil {
			return nil, fmt.Errorf("openapi: input is not a JSON object: %w", err)
		}
	}
	if root == nil {
		return nil, fmt.Errorf("%w: document is null", ErrNoSchema)
	}
	return root, nil
}

// locate finds the schema to import: the first object matched by sel, or
// the root itself after unwrapping openAPIV3Schema and CRD documents.
func locate(root map[string]any, sel string) (map[string]any, error) {
	if sel != "" {
		x, err := compileSelect(sel)
		if err != nil {
			return nil, err
		}
		if m := firstObject(x, root); m != nil {
			return m, nil
		}
		return nil, fmt.Errorf("%w at %s", ErrNoSchema, sel)
	}
	if oas, ok := root["openAPIV3Schema"].(map[string]any); ok {
		return oas, nil
	}
	if oas := unwrapCRDSchema(root); oas != nil {
		return oas, nil
	}
	for _, k := range []string{"openapi", "swagger"} {
		if _, ok := root[k]; ok {
			return nil, fmt.Errorf("%w: the root of an OpenAPI document is not a schema; set Options.Select (for example $.components.schemas.User)", ErrNoSchema)
		}
	}
	return root, nil
}

func compileSelect(sel string) (jp.Expr, error) {
	x, err := jp.ParseString(sel)
	if err != nil {
		return nil, fmt.Errorf("openapi: invalid select %q: %w", sel, err)
	}
	return x, nil
}

func firstObject(x jp.Expr, root any) map[string]any {
	for _, r := range x.Get(root) {
		if m, ok := r.(map[string]any); ok {
			return m
		}
	}
	return nil
}

// unwrapCRDSchema extracts openAPIV3Schema from a Kubernetes
// CustomResourceDefinition: the first served entry of spec.versions, then
// any entry, then the legacy spec.validation.
func unwrapCRDSchema(root map[string]any) map[string]any {
	spec, ok := root["spec"].(map[string]any)
	if !ok {
		return nil
	}
	var fallback map[string]any
	versions, _ := spec["versions"].([]any)
	for _, v := range versions {
		vm, _ := v.(map[string]any)
		sch, _ := vm["schema"].(map[string]any)
		oas, ok := sch["openAPIV3Schema"].(map[string]any)
		if !ok {
			continue
		}
		if served, ok := vm["served"].(bool); !ok || served {
			return oas
		}
		if fallback == nil {
			fallback = oas
		}
	}
	if fallback != nil {
		return fallback
	}
	if val, ok := spec["validation"].(map[string]any); ok {
		if oas, ok := val["openAPIV3Schema"].(map[string]any); ok {
			return oas
		}
	}
	return nil
}
