package formskema

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/reoring/formskema/codec"
)

// Flatten is the inverse of Expand: it renders a tree back into dotted-key
// entries with string values. Map keys are visited in sorted order, sequence
// elements become index segments and nil holes are skipped. A container
// that yields no entries (an empty map, or a sequence of holes) is emitted
// as one entry holding an empty map or a slice of nils, so expanding the
// result with the same options yields a tree equal to one produced by Expand.
func Flatten(tree map[string]any) []Entry {
	var out []Entry
	flattenInto(&out, "", tree)
	return out
}

func flattenInto(out *[]Entry, prefix string, v any) {
	switch v := v.(type) {
	case nil:
	case map[string]any:
		n := len(*out)
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			flattenInto(out, joinPath(prefix, k), v[k])
		}
		if len(*out) == n && prefix != "" {
			*out = append(*out, Entry{Key: prefix, Value: map[string]any{}})
		}
	case []any:
		n := len(*out)
		for i, e := range v {
			flattenInto(out, joinPath(prefix, strconv.Itoa(i)), e)
		}
		if len(*out) == n && prefix != "" {
			*out = append(*out, Entry{Key: prefix, Value: make([]any, len(v))})
		}
	default:
		*out = append(*out, Entry{Key: prefix, Value: FormatScalar(v)})
	}
}

// FormatScalar renders a leaf the way a form would submit it. Stringers use
// String(); anything else, binary leaves included, is returned unchanged.
func FormatScalar(v any) any {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return string(v)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return codec.FormatDate(v)
	case fmt.Stringer:
		return v.String()
	default:
		return v
	}
}
