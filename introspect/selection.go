package introspect

import (
	"fmt"
	"sort"
	"strings"
)

// Selection is a nested field selection in the shape relational query
// builders accept: true for a scalar column, {"select": {...}} for a
// relation or embedded object.
//
//	{"email": true, "address": {"select": {"city": true}}}
type Selection map[string]any

// ToSelection rewrites a ModeSelect tree into a Selection. Booleans pass
// through; every nested map becomes {"select": ToSelection(map)}. Any other
// value means the input was not produced in ModeSelect, and ToSelection
// panics.
func ToSelection(tree map[string]any) Selection {
	out := make(Selection, len(tree))
	for k, v := range tree {
		switch v := v.(type) {
		case bool:
			out[k] = v
		case map[string]any:
			out[k] = map[string]any{"select": ToSelection(v)}
		case Selection:
			out[k] = map[string]any{"select": ToSelection(v)}
		default:
			panic(fmt.Sprintf("formskema/introspect: ToSelection: field %q holds %T; pass the output of a ModeSelect walk", k, v))
		}
	}
	return out
}

// Columns lists the selected leaf paths in sorted dotted form, for example
// ["address.city", "email"].
func (s Selection) Columns() []string {
	var out []string
	s.columns("", &out)
	sort.Strings(out)
	return out
}

func (s Selection) columns(prefix string, out *[]string) {
	for k, v := range s {
		p := joinPath(prefix, k)
		switch v := v.(type) {
		case bool:
			if v {
				*out = append(*out, p)
			}
		case map[string]any:
			if inner, ok := v["select"].(Selection); ok {
				inner.columns(p, out)
			}
		}
	}
}

// String renders the selection compactly: "{address{city} email}".
func (s Selection) String() string {
	var b strings.Builder
	s.write(&b)
	return b.String()
}

func (s Selection) write(b *strings.Builder) {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		if m, ok := s[k].(map[string]any); ok {
			if inner, ok := m["select"].(Selection); ok {
				inner.write(b)
			}
		}
	}
	b.WriteByte('}')
}
