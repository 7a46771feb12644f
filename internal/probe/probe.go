// Package probe holds small reflection helpers used to inspect schema nodes
// whose concrete types are not known at compile time. This package is
// internal and not part of the public API.
package probe

import (
	"reflect"
	"sort"
	"strings"
	"unsafe"
)

// TypeName returns the name of v's concrete type, looking through one
// pointer. It returns "" for nil and unnamed types.
func TypeName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return ""
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// TypeNameContains reports whether the type name of v contains sub,
// ignoring case.
func TypeNameContains(v any, sub string) bool {
	return strings.Contains(strings.ToLower(TypeName(v)), strings.ToLower(sub))
}

// IsNil reports whether v is nil or a typed nil pointer/map/slice/func.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// HasMethod reports whether v has an exported method name taking no
// arguments and returning exactly one value.
func HasMethod(v any, name string) bool {
	_, ok := method(v, name)
	return ok
}

// Call invokes the no-argument, single-result method name on v.
func Call(v any, name string) (any, bool) {
	m, ok := method(v, name)
	if !ok {
		return nil, false
	}
	out := m.Call(nil)
	if !out[0].IsValid() {
		return nil, true
	}
	if (out[0].Kind() == reflect.Interface || out[0].Kind() == reflect.Pointer) && out[0].IsNil() {
		return nil, true
	}
	return out[0].Interface(), true
}

func method(v any, name string) (reflect.Value, bool) {
	if IsNil(v) {
		return reflect.Value{}, false
	}
	m := reflect.ValueOf(v).MethodByName(name)
	if !m.IsValid() {
		return reflect.Value{}, false
	}
	t := m.Type()
	if t.NumIn() != 0 || t.NumOut() != 1 {
		return reflect.Value{}, false
	}
	return m, true
}

// Stringish renders v when it is a string or implements String().
func Stringish(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case interface{ String() string }:
		return s.String(), true
	}
	return "", false
}

// Field reads the struct field name of v, exported or not, looking through
// one pointer. It returns nil when v is not a struct or has no such field.
func Field(v any, name string) any {
	if IsNil(v) {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	// ensure addressable by creating a settable copy when needed
	if !rv.CanAddr() {
		tmp := reflect.New(rv.Type()).Elem()
		tmp.Set(rv)
		rv = tmp
	}
	f := rv.FieldByName(name)
	if !f.IsValid() {
		return nil
	}
	f = reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
	if (f.Kind() == reflect.Interface || f.Kind() == reflect.Pointer) && f.IsNil() {
		return nil
	}
	return f.Interface()
}

// StringMap converts any map with string keys into map[string]any. Nil
// values are dropped.
func StringMap(v any) (map[string]any, bool) {
	if IsNil(v) {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		e := iter.Value()
		if (e.Kind() == reflect.Interface || e.Kind() == reflect.Pointer) && e.IsNil() {
			continue
		}
		out[iter.Key().String()] = e.Interface()
	}
	return out, true
}

// Slice converts any slice or array into []any. Nil elements are dropped.
func Slice(v any) ([]any, bool) {
	if IsNil(v) {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		e := rv.Index(i)
		if (e.Kind() == reflect.Interface || e.Kind() == reflect.Pointer) && e.IsNil() {
			continue
		}
		out = append(out, e.Interface())
	}
	return out, true
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ID identifies a reference-typed value.
type ID struct {
	t reflect.Type
	p uintptr
}

// Identity returns a comparable key for reference-typed v (pointer, map,
// slice or func). ok is false when v has no stable identity.
func Identity(v any) (id ID, ok bool) {
	if IsNil(v) {
		return ID{}, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.UnsafePointer, reflect.Chan:
		return ID{t: rv.Type(), p: rv.Pointer()}, true
	}
	return ID{}, false
}
