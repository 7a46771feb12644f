package introspect

import (
	"strings"

	"github.com/reoring/formskema/dsl"
	"github.com/reoring/formskema/internal/probe"
)

// variant is the classifier's closed view of a node.
type variant int

const (
	vUnknown variant = iota
	vPrimitive
	vObject
	vUnion
	vIntersection
	vArray
	vOptional
	vNullable
	vPromise
	vDefault
	vReadonly
	vPipe
	vEffect
	vLazy
	vWrapper // unrecognized modifier exposing Unwrap()
)

// classify resolves the variant of n. Native dsl nodes are trusted by
// Kind(); other nodes are matched by a kind name they report, then by the
// accessor methods they expose, then by their struct fields. The last two
// tiers let nodes from a forked or vendored copy of a schema package be
// walked like native ones.
func classify(n any) variant {
	if probe.IsNil(n) {
		return vUnknown
	}
	if s, ok := n.(dsl.Schema); ok {
		return fromKind(s.Kind())
	}
	if k, ok := foreignKind(n); ok {
		return fromKind(k)
	}
	if v := byMethods(n); v != vUnknown {
		return v
	}
	return byFields(n)
}

func fromKind(k dsl.Kind) variant {
	switch k {
	case dsl.KindObject:
		return vObject
	case dsl.KindUnion:
		return vUnion
	case dsl.KindIntersection:
		return vIntersection
	case dsl.KindArray:
		return vArray
	case dsl.KindOptional:
		return vOptional
	case dsl.KindNullable:
		return vNullable
	case dsl.KindPromise:
		return vPromise
	case dsl.KindDefault:
		return vDefault
	case dsl.KindReadonly:
		return vReadonly
	case dsl.KindPipe:
		return vPipe
	case dsl.KindEffect:
		return vEffect
	case dsl.KindLazy:
		return vLazy
	}
	if k.Primitive() {
		return vPrimitive
	}
	return vUnknown
}

var kindAliases = map[string]string{
	"bool":               "boolean",
	"int":                "number",
	"integer":            "number",
	"float":              "number",
	"decimal":            "number",
	"nan":                "number",
	"datetime":           "date",
	"time":               "date",
	"file":               "binary",
	"blob":               "binary",
	"bytes":              "binary",
	"nativeenum":         "enum",
	"symbol":             "any",
	"undefined":          "null",
	"void":               "null",
	"never":              "null",
	"discriminatedunion": "union",
	"effects":            "effect",
	"transform":          "effect",
	"refine":             "effect",
	"refinement":         "effect",
	"preprocess":         "effect",
	"pipeline":           "pipe",
}

// foreignKind reads a kind name from a Kind()/TypeName() method or a
// kind/typeName field and maps it onto dsl.Kind. "ZodObject", "object" and
// "OBJECT" all name the object kind.
func foreignKind(n any) (dsl.Kind, bool) {
	var raw any
	if v, ok := probe.Call(n, "Kind"); ok {
		raw = v
	} else if v, ok := probe.Call(n, "TypeName"); ok {
		raw = v
	} else if v := probe.Field(n, "typeName"); v != nil {
		raw = v
	} else if v := probe.Field(n, "kind"); v != nil {
		raw = v
	}
	name, ok := probe.Stringish(raw)
	if !ok {
		return dsl.KindUnknown, false
	}
	name = strings.ToLower(strings.NewReplacer("_", "", "-", "", " ", "").Replace(name))
	name = strings.TrimPrefix(name, "zod")
	if alias, ok := kindAliases[name]; ok {
		name = alias
	}
	return dsl.ParseKind(name)
}

func byMethods(n any) variant {
	if probe.HasMethod(n, "Shape") {
		return vObject
	}
	if opts, ok := probe.Call(n, "Options"); ok {
		if _, isSlice := probe.Slice(opts); isSlice {
			return vUnion
		}
	}
	switch {
	case probe.HasMethod(n, "Left") && probe.HasMethod(n, "Right"):
		return vIntersection
	case probe.HasMethod(n, "Element"):
		return vArray
	case probe.HasMethod(n, "RemoveDefault"):
		return vDefault
	case probe.HasMethod(n, "In") && probe.HasMethod(n, "Out"):
		return vPipe
	case probe.HasMethod(n, "InnerType"):
		return vEffect
	case probe.HasMethod(n, "Resolve"):
		return vLazy
	case probe.HasMethod(n, "Unwrap"):
		return wrapperByName(n)
	}
	return vUnknown
}

func byFields(n any) variant {
	if m, ok := probe.StringMap(probe.Field(n, "shape")); ok && m != nil {
		return vObject
	}
	if _, ok := probe.Slice(probe.Field(n, "options")); ok {
		return vUnion
	}
	if probe.Field(n, "left") != nil && probe.Field(n, "right") != nil {
		return vIntersection
	}
	if probe.Field(n, "element") != nil || probe.Field(n, "elem") != nil {
		return vArray
	}
	if probe.Field(n, "innerType") != nil || probe.Field(n, "inner") != nil {
		return wrapperByName(n)
	}
	return vUnknown
}

func wrapperByName(n any) variant {
	switch {
	case probe.TypeNameContains(n, "optional"):
		return vOptional
	case probe.TypeNameContains(n, "nullable"):
		return vNullable
	case probe.TypeNameContains(n, "promise"):
		return vPromise
	case probe.TypeNameContains(n, "readonly"):
		return vReadonly
	}
	return vWrapper
}

// IsObject reports whether n is an object node.
func IsObject(n any) bool { return classify(n) == vObject }

// IsUnion reports whether n is a plain or discriminated union.
func IsUnion(n any) bool { return classify(n) == vUnion }

func IsIntersection(n any) bool { return classify(n) == vIntersection }
func IsArray(n any) bool        { return classify(n) == vArray }
func IsOptional(n any) bool     { return classify(n) == vOptional }
func IsNullable(n any) bool     { return classify(n) == vNullable }
func IsPromise(n any) bool      { return classify(n) == vPromise }
func IsDefault(n any) bool      { return classify(n) == vDefault }
func IsReadonly(n any) bool     { return classify(n) == vReadonly }
func IsLazy(n any) bool         { return classify(n) == vLazy }

// IsPipeOrEffect reports whether n is a pipe or a transform/refine/
// preprocess node.
func IsPipeOrEffect(n any) bool {
	v := classify(n)
	return v == vPipe || v == vEffect
}

// IsPrimitive reports whether n is a leaf (string, number, boolean, date,
// binary, enum, literal ...). Unrecognized nodes are not primitives.
func IsPrimitive(n any) bool { return classify(n) == vPrimitive }

// IsTransparent reports whether n is a wrapper that adds no path segment.
func IsTransparent(n any) bool { return classify(n).transparent() }

func (v variant) transparent() bool {
	switch v {
	case vOptional, vNullable, vPromise, vDefault, vReadonly, vPipe, vEffect, vLazy, vWrapper:
		return true
	}
	return false
}

type shaper interface{ Shape() map[string]dsl.Schema }
type optioner interface{ Options() []dsl.Schema }
type sider interface {
	Left() dsl.Schema
	Right() dsl.Schema
}
type elementer interface{ Element() dsl.Schema }

// Fields returns the fields of an object node, or nil.
func Fields(n any) map[string]any {
	if s, ok := n.(shaper); ok {
		shape := s.Shape()
		out := make(map[string]any, len(shape))
		for k, v := range shape {
			if v != nil {
				out[k] = v
			}
		}
		return out
	}
	if v, ok := probe.Call(n, "Shape"); ok {
		m, _ := probe.StringMap(v)
		return m
	}
	m, _ := probe.StringMap(probe.Field(n, "shape"))
	return m
}

// Members returns the members of a union node, or nil.
func Members(n any) []any {
	if s, ok := n.(optioner); ok {
		opts := s.Options()
		out := make([]any, 0, len(opts))
		for _, o := range opts {
			if o != nil {
				out = append(out, o)
			}
		}
		return out
	}
	if v, ok := probe.Call(n, "Options"); ok {
		out, _ := probe.Slice(v)
		return out
	}
	out, _ := probe.Slice(probe.Field(n, "options"))
	return out
}

// Sides returns both operands of an intersection node.
func Sides(n any) (left, right any) {
	if s, ok := n.(sider); ok {
		return nilIfEmpty(s.Left()), nilIfEmpty(s.Right())
	}
	if l, ok := probe.Call(n, "Left"); ok {
		r, _ := probe.Call(n, "Right")
		return l, r
	}
	return probe.Field(n, "left"), probe.Field(n, "right")
}

// Element returns the element node of an array node.
func Element(n any) any {
	if s, ok := n.(elementer); ok {
		return nilIfEmpty(s.Element())
	}
	if v, ok := probe.Call(n, "Element"); ok {
		return v
	}
	if v := probe.Field(n, "element"); v != nil {
		return v
	}
	return probe.Field(n, "elem")
}

// Inner returns the node a transparent wrapper stands for: the unwrapped
// schema, the default's schema, a pipe's output, an effect's inner type or
// a lazy node's target. It returns nil for other nodes.
func Inner(n any) any {
	v := classify(n)
	if !v.transparent() {
		return nil
	}
	return inner(n, v)
}

func inner(n any, v variant) any {
	var methods []string
	switch v {
	case vDefault:
		methods = []string{"RemoveDefault", "Unwrap"}
	case vPipe:
		methods = []string{"Out"}
	case vEffect:
		methods = []string{"InnerType", "Unwrap"}
	case vLazy:
		methods = []string{"Resolve"}
	default:
		methods = []string{"Unwrap"}
	}
	for _, m := range methods {
		if r, ok := probe.Call(n, m); ok {
			return r
		}
	}
	for _, f := range []string{"innerType", "inner", "out", "schema"} {
		if r := probe.Field(n, f); r != nil {
			return r
		}
	}
	return nil
}

func nilIfEmpty(s dsl.Schema) any {
	if probe.IsNil(s) {
		return nil
	}
	return s
}

// unwrapAll strips transparent wrappers. limit bounds self-referencing
// lazy chains.
func unwrapAll(n any, limit int) any {
	for i := 0; i < limit; i++ {
		v := classify(n)
		if !v.transparent() {
			return n
		}
		next := inner(n, v)
		if next == nil {
			return n
		}
		n = next
	}
	return n
}

// primitiveElement reports whether an array element yields a single path:
// a primitive after unwrapping, or a union whose options all do.
func primitiveElement(n any, limit int) bool {
	if limit <= 0 {
		return false
	}
	n = unwrapAll(n, limit)
	switch classify(n) {
	case vPrimitive:
		return true
	case vUnion:
		opts := Members(n)
		if len(opts) == 0 {
			return false
		}
		for _, o := range opts {
			if !primitiveElement(o, limit-1) {
				return false
			}
		}
		return true
	}
	return false
}
