package formskema

import (
	"mime/multipart"
	"net/url"
	"sort"
	"strings"

	"github.com/reoring/formskema/i18n"
)

// Form is a multi-valued form submission: distinct keys in submission order
// and every value of a key in order. Values are strings or
// *multipart.FileHeader.
type Form interface {
	Keys() []string
	Values(key string) []any
}

// Pair is one submitted field.
type Pair struct {
	Key   string
	Value any
}

// Pairs is an ordered Form. Keys are reported in first-seen order.
type Pairs []Pair

// Add appends a value for key.
func (p *Pairs) Add(key string, value any) { *p = append(*p, Pair{Key: key, Value: value}) }

func (p Pairs) Keys() []string {
	seen := make(map[string]struct{}, len(p))
	keys := make([]string, 0, len(p))
	for _, kv := range p {
		if _, ok := seen[kv.Key]; ok {
			continue
		}
		seen[kv.Key] = struct{}{}
		keys = append(keys, kv.Key)
	}
	return keys
}

func (p Pairs) Values(key string) []any {
	var out []any
	for _, kv := range p {
		if kv.Key == key {
			out = append(out, kv.Value)
		}
	}
	return out
}

// ParseQuery parses application/x-www-form-urlencoded text keeping the
// submission order, which url.ParseQuery loses. Only '&' separates fields;
// a field containing ';' is reported and skipped, as net/url does.
func ParseQuery(query string) (Pairs, error) {
	var (
		out  Pairs
		errs Issues
	)
	for query != "" {
		var part string
		part, query, _ = strings.Cut(query, "&")
		if part == "" {
			continue
		}
		if strings.Contains(part, ";") {
			errs = append(errs, Issue{Path: part, Code: CodeParseError, Message: i18n.T(CodeParseError, map[string]string{"key": part}), Hint: "semicolon separators are not supported"})
			continue
		}
		rawKey, rawValue, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			errs = append(errs, Issue{Path: rawKey, Code: CodeParseError, Message: i18n.T(CodeParseError, map[string]string{"key": rawKey}), Cause: err})
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			errs = append(errs, Issue{Path: key, Code: CodeParseError, Message: i18n.T(CodeParseError, map[string]string{"key": key}), Cause: err})
			continue
		}
		out.Add(key, value)
	}
	if len(errs) > 0 {
		return out, errs
	}
	return out, nil
}

type urlValues struct {
	v    url.Values
	keys []string
}

// URLValues adapts url.Values. Go maps are unordered, so keys are reported
// sorted.
func URLValues(v url.Values) Form {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return urlValues{v: v, keys: keys}
}

func (u urlValues) Keys() []string { return u.keys }

func (u urlValues) Values(key string) []any {
	vs := u.v[key]
	out := make([]any, len(vs))
	for i, s := range vs {
		out[i] = s
	}
	return out
}

type multipartForm struct {
	f    *multipart.Form
	keys []string
}

// MultipartForm adapts a parsed multipart form. Keys are sorted; for a key
// present in both parts, string values come before files.
func MultipartForm(f *multipart.Form) Form {
	set := map[string]struct{}{}
	for k := range f.Value {
		set[k] = struct{}{}
	}
	for k := range f.File {
		set[k] = struct{}{}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return multipartForm{f: f, keys: keys}
}

func (m multipartForm) Keys() []string { return m.keys }

func (m multipartForm) Values(key string) []any {
	var out []any
	for _, s := range m.f.Value[key] {
		out = append(out, s)
	}
	for _, fh := range m.f.File[key] {
		out = append(out, fh)
	}
	return out
}
