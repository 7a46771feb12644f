package dsl

import (
	"sort"
	"strings"

	formskema "github.com/reoring/formskema"
	"github.com/reoring/formskema/i18n"
)

type objectBuilder struct {
	fields map[string]Schema
	order  []string
	issues formskema.Issues
}

type fieldStep struct {
	b    *objectBuilder
	name string
}

// Object creates a new object builder.
func Object() *objectBuilder {
	return &objectBuilder{fields: map[string]Schema{}}
}

// Field registers a field. Names may not be empty or contain '.', since
// they become dotted path segments.
func (b *objectBuilder) Field(name string, s Schema) *fieldStep {
	switch {
	case name == "" || strings.Contains(name, "."):
		b.issues = append(b.issues, formskema.Issue{Path: name, Code: formskema.CodeInvalidKey, Message: i18n.T(formskema.CodeInvalidKey, map[string]string{"key": name}), Hint: "field names must be non-empty and must not contain '.'"})
	case s == nil:
		b.issues = append(b.issues, formskema.Issue{Path: name, Code: formskema.CodeInvalidSchema, Message: i18n.T(formskema.CodeInvalidSchema, map[string]string{"key": name}), Hint: "nil schema"})
	default:
		if _, dup := b.fields[name]; dup {
			b.issues = append(b.issues, formskema.Issue{Path: name, Code: formskema.CodeInvalidSchema, Message: i18n.T(formskema.CodeInvalidSchema, map[string]string{"key": name}), Hint: "duplicate field"})
			break
		}
		b.fields[name] = s
		b.order = append(b.order, name)
	}
	return &fieldStep{b: b, name: name}
}

// Optional wraps the current field in Optional and returns the builder.
func (f *fieldStep) Optional() *objectBuilder { return f.wrap(func(s Schema) Schema { return Optional(s) }) }

// Nullable wraps the current field in Nullable and returns the builder.
func (f *fieldStep) Nullable() *objectBuilder { return f.wrap(func(s Schema) Schema { return Nullable(s) }) }

// Default wraps the current field in Default(v) and returns the builder.
func (f *fieldStep) Default(v any) *objectBuilder {
	return f.wrap(func(s Schema) Schema { return Default(s, v) })
}

func (f *fieldStep) wrap(fn func(Schema) Schema) *objectBuilder {
	if s, ok := f.b.fields[f.name]; ok {
		f.b.fields[f.name] = fn(s)
	}
	return f.b
}

func (f *fieldStep) Field(name string, s Schema) *fieldStep { return f.b.Field(name, s) }
func (f *fieldStep) Build() (*ObjectSchema, error)          { return f.b.Build() }
func (f *fieldStep) MustBuild() *ObjectSchema               { return f.b.MustBuild() }

// Build validates the builder and returns the object schema.
func (b *objectBuilder) Build() (*ObjectSchema, error) {
	if len(b.issues) > 0 {
		return nil, b.issues
	}
	fields := make(map[string]Schema, len(b.fields))
	for k, v := range b.fields {
		fields[k] = v
	}
	return &ObjectSchema{fields: fields, order: append([]string(nil), b.order...)}, nil
}

// MustBuild is like Build but panics on error.
func (b *objectBuilder) MustBuild() *ObjectSchema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// ObjectSchema is a record of named fields.
type ObjectSchema struct {
	fields map[string]Schema
	order  []string
}

func (o *ObjectSchema) Kind() Kind { return KindObject }

// Shape returns a copy of the field map.
func (o *ObjectSchema) Shape() map[string]Schema {
	out := make(map[string]Schema, len(o.fields))
	for k, v := range o.fields {
		out[k] = v
	}
	return out
}

// Keys returns field names in declaration order.
func (o *ObjectSchema) Keys() []string { return append([]string(nil), o.order...) }

// Field looks up one field.
func (o *ObjectSchema) Field(name string) (Schema, bool) {
	s, ok := o.fields[name]
	return s, ok
}

// Extend returns a new object with the fields of o followed by those of
// other; fields of other replace same-named fields of o.
func (o *ObjectSchema) Extend(other *ObjectSchema) *ObjectSchema {
	out := &ObjectSchema{fields: o.Shape(), order: o.Keys()}
	for _, k := range other.order {
		if _, exists := out.fields[k]; !exists {
			out.order = append(out.order, k)
		}
		out.fields[k] = other.fields[k]
	}
	return out
}

// Pick returns a new object limited to the named fields. Unknown names are
// ignored.
func (o *ObjectSchema) Pick(names ...string) *ObjectSchema {
	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		want[n] = struct{}{}
	}
	out := &ObjectSchema{fields: map[string]Schema{}}
	for _, k := range o.order {
		if _, ok := want[k]; ok {
			out.fields[k] = o.fields[k]
			out.order = append(out.order, k)
		}
	}
	return out
}

// Omit returns a new object without the named fields.
func (o *ObjectSchema) Omit(names ...string) *ObjectSchema {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	keep := make([]string, 0, len(o.order))
	for _, k := range o.order {
		if _, ok := drop[k]; !ok {
			keep = append(keep, k)
		}
	}
	return o.Pick(keep...)
}

// Partial returns a new object whose fields are all Optional.
func (o *ObjectSchema) Partial() *ObjectSchema {
	out := &ObjectSchema{fields: make(map[string]Schema, len(o.fields)), order: o.Keys()}
	for k, v := range o.fields {
		out.fields[k] = Optional(v)
	}
	return out
}

// sortedKeys is used where declaration order is unavailable (imported
// documents).
func sortedKeys(m map[string]Schema) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ObjectFromMap builds an object from a field map with sorted key order.
func ObjectFromMap(fields map[string]Schema) (*ObjectSchema, error) {
	b := Object()
	for _, k := range sortedKeys(fields) {
		b.Field(k, fields[k])
	}
	return b.Build()
}
