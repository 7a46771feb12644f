package formskema

import (
	"mime/multipart"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/reoring/formskema/codec"
	"github.com/reoring/formskema/i18n"
)

// Entry is one flat form field: a dotted key and either a scalar
// (string or *multipart.FileHeader) or a sequence of scalars ([]any or
// []string).
type Entry struct {
	Key   string
	Value any
}

// Expand rebuilds a nested tree from dotted keys, processing entries in
// order. Objects are map[string]any and sequences are []any; leaves are
// coerced as configured by opts.
//
// Structural problems (conflicting container kinds, empty segments, indexes
// above the limit) are collected as Issues and the offending entry is
// skipped. The returned tree is always usable, also when err != nil.
func Expand(entries []Entry, opts Options) (map[string]any, error) {
	x := expander{opts: opts, sc: opts.scalar(), max: opts.maxIndex()}
	root := map[string]any{}
	for _, e := range entries {
		x.put(root, e)
	}
	if len(x.issues) > 0 {
		return root, x.issues
	}
	return root, nil
}

// ExpandMap is Expand over a map. Keys are processed in sorted order so the
// first writer of a shared prefix is deterministic.
func ExpandMap(m map[string]any, opts Options) (map[string]any, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Entry{Key: k, Value: m[k]})
	}
	return Expand(entries, opts)
}

// indexRe matches canonical array indexes; "01" or "+1" are field names.
var indexRe = regexp.MustCompile(`^(0|[1-9][0-9]*)$`)

func isIndex(seg string) bool { return indexRe.MatchString(seg) }

type expander struct {
	opts   Options
	sc     codec.Scalar
	max    int
	issues Issues
}

func (x *expander) put(root map[string]any, e Entry) {
	segs := strings.Split(e.Key, ".")
	for i, seg := range segs {
		if seg == "" {
			x.report(e.Key, CodeInvalidKey, "")
			return
		}
		if i == 0 || !isIndex(seg) {
			continue
		}
		if n, err := strconv.Atoi(seg); err != nil || n > x.max {
			x.report(strings.Join(segs[:i+1], "."), CodeIndexOutOfRange,
				"indexes above "+strconv.Itoa(x.max)+" are rejected")
			return
		}
	}
	v, del := x.convert(e.Key, e.Value)
	x.write(root, segs, "", v, del)
}

// convert applies the custom parser, the empty-string policy and scalar
// coercion. del reports that the key must be removed instead of stored.
func (x *expander) convert(name string, v any) (out any, del bool) {
	switch v := v.(type) {
	case string:
		if x.opts.CustomParser != nil {
			if r, ok := x.opts.CustomParser(name, v); ok {
				return r, false
			}
		}
		if v == "" && !x.opts.KeepEmptyScalarString {
			return nil, true
		}
		return x.sc.Coerce(v), false
	case []string:
		seq := make([]any, len(v))
		for i, s := range v {
			seq[i] = s
		}
		return x.sequence(name, seq), false
	case []*multipart.FileHeader:
		seq := make([]any, len(v))
		for i, fh := range v {
			seq[i] = fh
		}
		return seq, false
	case []any:
		return x.sequence(name, v), false
	default:
		return v, false
	}
}

// sequence filters and coerces a multi-valued field. The empty-string policy
// for scalars does not apply to surviving elements.
func (x *expander) sequence(name string, in []any) []any {
	out := make([]any, 0, len(in))
	for _, e := range in {
		s, ok := e.(string)
		if !ok {
			out = append(out, e)
			continue
		}
		if s == "" && !x.opts.KeepEmptyStringInSequence {
			continue
		}
		if x.opts.CustomParser != nil {
			if r, ok := x.opts.CustomParser(name, s); ok {
				out = append(out, r)
				continue
			}
		}
		out = append(out, x.sc.Coerce(s))
	}
	return out
}

// write stores v under segs inside container c and returns the (possibly
// reallocated) container. ok is false when the entry was rejected.
func (x *expander) write(c any, segs []string, path string, v any, del bool) (any, bool) {
	seg, rest := segs[0], segs[1:]
	path = joinPath(path, seg)

	switch c := c.(type) {
	case map[string]any:
		old := c[seg]
		nv, remove, ok := x.slot(old, rest, path, v, del)
		if !ok {
			return c, false
		}
		if remove {
			delete(c, seg)
		} else {
			c[seg] = nv
		}
		return c, true

	case []any:
		i, _ := strconv.Atoi(seg)
		var old any
		if i < len(c) {
			old = c[i]
		}
		nv, remove, ok := x.slot(old, rest, path, v, del)
		if !ok {
			return c, false
		}
		if remove {
			if i < len(c) {
				c[i] = nil
			}
			return c, true
		}
		for len(c) <= i {
			c = append(c, nil)
		}
		c[i] = nv
		return c, true
	}
	return c, false
}

// slot computes the new content of one container slot currently holding old.
func (x *expander) slot(old any, rest []string, path string, v any, del bool) (nv any, remove, ok bool) {
	if len(rest) == 0 {
		if isContainer(old) && !x.conflict(path) {
			return old, false, false
		}
		if del {
			return nil, true, true
		}
		return v, false, true
	}

	wantSeq := isIndex(rest[0])
	var child any
	switch old.(type) {
	case map[string]any:
		if !wantSeq {
			child = old
		}
	case []any:
		if wantSeq {
			child = old
		}
	}
	if child == nil {
		if old != nil && !x.conflict(path) {
			return old, false, false
		}
		if wantSeq {
			child = []any{}
		} else {
			child = map[string]any{}
		}
	}
	child, ok = x.write(child, rest, path, v, del)
	return child, false, ok
}

// conflict reports a container kind mismatch at path. It returns true when
// the policy allows replacing the slot.
func (x *expander) conflict(path string) bool {
	if x.opts.OnConflict == ConflictOverwrite {
		return true
	}
	x.report(path, CodeContainerConflict, "the first key written under this prefix decides between object and sequence")
	return false
}

func (x *expander) report(path, code, hint string) {
	x.issues = AppendIssues(x.issues, Issue{
		Path:    path,
		Code:    code,
		Message: i18n.T(code, map[string]string{"key": path}),
		Hint:    hint,
	})
}

func isContainer(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}

func joinPath(prefix, seg string) string {
	if prefix == "" {
		return seg
	}
	return prefix + "." + seg
}
