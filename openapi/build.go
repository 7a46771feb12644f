package openapi

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/reoring/formskema/dsl"
	"github.com/reoring/formskema/jsonschema"
)

type importer struct {
	root   map[string]any // whole document, for $ref lookup
	target map[string]any // the schema being imported
	opts   Options
	d      *simpleDiag
	refs   map[string]dsl.Schema
	active map[string]bool
	errs   []error
}

func newImporter(root, target map[string]any, opts Options, d *simpleDiag) *importer {
	return &importer{
		root:   root,
		target: target,
		opts:   opts,
		d:      d,
		refs:   map[string]dsl.Schema{},
		active: map[string]bool{},
	}
}

func (im *importer) run() (dsl.Schema, error) {
	s, err := jsonschema.FromValue(im.target)
	if err != nil {
		return nil, fmt.Errorf("openapi: decode schema: %w", err)
	}
	out := im.build(s, "#")
	if len(im.errs) > 0 {
		return nil, errors.Join(im.errs...)
	}
	return out, nil
}

func (im *importer) fail(at, format string, a ...any) {
	im.errs = append(im.errs, fmt.Errorf("openapi: %s: %s", at, fmt.Sprintf(format, a...)))
}

// build converts s; at is the JSON pointer of s, used in diagnostics.
func (im *importer) build(s *jsonschema.Schema, at string) dsl.Schema {
	if s == nil {
		return dsl.Any()
	}
	return decorate(s, im.shape(s, at))
}

func (im *importer) shape(s *jsonschema.Schema, at string) dsl.Schema {
	switch {
	case s.Ref != "":
		return im.ref(s.Ref, at)
	case len(s.AllOf) > 0:
		parts := make([]dsl.Schema, 0, len(s.AllOf)+1)
		for i, p := range s.AllOf {
			parts = append(parts, im.build(p, at+"/allOf/"+strconv.Itoa(i)))
		}
		if len(s.Properties) > 0 {
			parts = append(parts, im.object(s, at))
		}
		return dsl.And(parts...)
	case len(s.OneOf) > 0:
		return im.withProperties(s, at, im.union(s, s.OneOf, at+"/oneOf"))
	case len(s.AnyOf) > 0:
		return im.withProperties(s, at, im.union(s, s.AnyOf, at+"/anyOf"))
	case s.Const != nil:
		return dsl.Literal(s.Const)
	case len(s.Enum) > 0:
		return dsl.Enum(enumStrings(s.Enum)...)
	}

	types := s.Type.NonNull()
	switch len(types) {
	case 0:
		switch {
		case s.Type.Has(jsonschema.TypeNull):
			return dsl.Null()
		case len(s.Properties) > 0:
			return im.object(s, at)
		case s.Items != nil:
			return im.array(s, at)
		}
		return dsl.Any()
	case 1:
		return im.typed(types[0], s, at)
	}
	opts := make([]dsl.Schema, 0, len(types))
	for _, t := range types {
		opts = append(opts, im.typed(t, s, at))
	}
	return dsl.Union(opts...)
}

func (im *importer) typed(t string, s *jsonschema.Schema, at string) dsl.Schema {
	switch t {
	case jsonschema.TypeObject:
		return im.object(s, at)
	case jsonschema.TypeArray:
		return im.array(s, at)
	case jsonschema.TypeString:
		switch s.Format {
		case "date", "date-time":
			return dsl.Date()
		case "binary":
			return dsl.Binary()
		}
		return dsl.String()
	case jsonschema.TypeNumber, jsonschema.TypeInteger:
		return dsl.Number()
	case jsonschema.TypeBoolean:
		return dsl.Bool()
	}
	im.d.warnf("%s: unknown type %q treated as any", at, t)
	return dsl.Any()
}

func (im *importer) object(s *jsonschema.Schema, at string) dsl.Schema {
	if len(s.Properties) == 0 && s.AdditionalProperties != nil && s.AdditionalProperties != false {
		im.d.warnf("%s: additionalProperties map treated as an opaque leaf", at)
		return dsl.Any()
	}
	b := dsl.Object()
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if name == "" || strings.Contains(name, ".") {
			im.d.warnf("%s: property %q skipped: form field names cannot be empty or contain '.'", at, name)
			continue
		}
		step := b.Field(name, im.build(s.Properties[name], at+"/properties/"+escapeToken(name)))
		if !s.IsRequired(name) {
			step.Optional()
		}
	}
	for _, r := range s.Required {
		if _, ok := s.Properties[r]; !ok {
			im.d.warnf("%s: required property %q is not declared", at, r)
		}
	}
	obj, err := b.Build()
	if err != nil {
		im.fail(at, "%v", err)
		return dsl.Any()
	}
	return obj
}

func (im *importer) array(s *jsonschema.Schema, at string) dsl.Schema {
	return dsl.Array(im.build(s.Items, at+"/items"))
}

func (im *importer) union(s *jsonschema.Schema, members []*jsonschema.Schema, at string) dsl.Schema {
	if s.Discriminator == nil || s.Discriminator.PropertyName == "" {
		opts := make([]dsl.Schema, 0, len(members))
		for i, m := range members {
			opts = append(opts, im.build(m, at+"/"+strconv.Itoa(i)))
		}
		return dsl.Union(opts...)
	}

	byRef := make(map[string]string, len(s.Discriminator.Mapping))
	for tag, ref := range s.Discriminator.Mapping {
		byRef[ref] = tag
	}
	prop := s.Discriminator.PropertyName
	vars := make([]dsl.UnionVariant, 0, len(members))
	for i, m := range members {
		if m == nil {
			continue
		}
		vars = append(vars, dsl.Variant(variantTag(m, prop, byRef, i), im.build(m, at+"/"+strconv.Itoa(i))))
	}
	return dsl.OneOf(prop, vars...)
}

// withProperties intersects a composite with sibling properties, as in
// {"properties": {...}, "oneOf": [...]}.
func (im *importer) withProperties(s *jsonschema.Schema, at string, composite dsl.Schema) dsl.Schema {
	if len(s.Properties) == 0 {
		return composite
	}
	return dsl.Intersection(im.object(s, at), composite)
}

// variantTag names a discriminated variant: the mapping entry for its $ref,
// the last segment of the $ref, the const/single enum of the discriminator
// property, or its position.
func variantTag(m *jsonschema.Schema, prop string, byRef map[string]string, i int) string {
	if m.Ref != "" {
		if tag, ok := byRef[m.Ref]; ok {
			return tag
		}
		return m.Ref[strings.LastIndex(m.Ref, "/")+1:]
	}
	if p := m.Properties[prop]; p != nil {
		if p.Const != nil {
			return fmt.Sprint(p.Const)
		}
		if len(p.Enum) == 1 {
			return fmt.Sprint(p.Enum[0])
		}
	}
	return strconv.Itoa(i)
}

// decorate applies the nullable, readOnly and default annotations.
func decorate(s *jsonschema.Schema, out dsl.Schema) dsl.Schema {
	if s.Nullable || (s.Type.Has(jsonschema.TypeNull) && len(s.Type.NonNull()) > 0) {
		out = dsl.Nullable(out)
	}
	if s.ReadOnly {
		out = dsl.Readonly(out)
	}
	if s.Default != nil {
		out = dsl.Default(out, s.Default)
	}
	return out
}

func enumStrings(vals []any) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v == nil {
			continue
		}
		out = append(out, fmt.Sprint(v))
	}
	return out
}
