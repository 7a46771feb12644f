package formskema

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/reoring/formskema/i18n"
)

// DefaultMaxMemory is the multipart memory limit used by DecodeRequest.
const DefaultMaxMemory = 32 << 20

// DefaultMaxBodyBytes caps urlencoded bodies read by DecodeRequest.
const DefaultMaxBodyBytes = 10 << 20

// ErrBodyTooLarge is the Cause of the parse_error Issue reported for an
// urlencoded body over DefaultMaxBodyBytes.
var ErrBodyTooLarge = errors.New("formskema: request body too large")

// DecodeForm collapses f into entries (one value stays a bare scalar, more
// become an ordered sequence) and expands them.
func DecodeForm(f Form, opts Options) (map[string]any, error) {
	keys := f.Keys()
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		vs := f.Values(k)
		switch len(vs) {
		case 0:
			continue
		case 1:
			entries = append(entries, Entry{Key: k, Value: vs[0]})
		default:
			entries = append(entries, Entry{Key: k, Value: vs})
		}
	}
	return Expand(entries, opts)
}

// DecodeRequest decodes the form carried by r. urlencoded bodies keep
// submission order, multipart bodies are parsed with DefaultMaxMemory, and
// requests without a form body use the URL query. Malformed fields are
// reported as Issues next to the tree of the fields that did parse.
func DecodeRequest(r *http.Request, opts Options) (map[string]any, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch {
	case ct == "multipart/form-data":
		if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
			return nil, Issues{{Code: CodeParseError, Message: i18n.T(CodeParseError, nil), Cause: err}}
		}
		return DecodeForm(MultipartForm(r.MultipartForm), opts)

	case ct == "application/x-www-form-urlencoded" && r.Body != nil:
		body, err := io.ReadAll(io.LimitReader(r.Body, DefaultMaxBodyBytes+1))
		if err != nil {
			return nil, Issues{{Code: CodeParseError, Message: i18n.T(CodeParseError, nil), Cause: err}}
		}
		if len(body) > DefaultMaxBodyBytes {
			return nil, Issues{{Code: CodeParseError, Message: i18n.T(CodeParseError, nil), Hint: "request body exceeds " + strconv.Itoa(DefaultMaxBodyBytes) + " bytes", Cause: ErrBodyTooLarge}}
		}
		return decodeQuery(string(body), opts)

	default:
		return decodeQuery(r.URL.RawQuery, opts)
	}
}

// decodeQuery decodes the fields of query that parse, reporting the Issues
// of both steps together.
func decodeQuery(query string, opts Options) (map[string]any, error) {
	pairs, perr := ParseQuery(query)
	tree, err := DecodeForm(pairs, opts)
	return tree, combine(perr, err)
}

func combine(first, second error) error {
	if first == nil {
		return second
	}
	if second == nil {
		return first
	}
	a, okA := AsIssues(first)
	b, okB := AsIssues(second)
	if !okA || !okB {
		return first
	}
	return AppendIssues(append(Issues(nil), a...), b...)
}
