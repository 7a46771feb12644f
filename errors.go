package formskema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// CodeContainerConflict: a key prefix is used both as an object and as a
	// sequence, or a container collides with a scalar.
	CodeContainerConflict = "container_conflict"
	CodeInvalidKey        = "invalid_key"
	CodeIndexOutOfRange   = "index_out_of_range"
	CodeInvalidSchema     = "invalid_schema"
	CodeParseError        = "parse_error"
	CodeDuplicateKey      = "duplicate_key"
)

// Issue represents a single structural problem found while decoding or
// building a schema.
type Issue struct {
	Path    string `json:"path"` // Dotted key prefix (for example: items.2.price).
	Code    string `json:"code"` // One of the codes listed above.
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"` // Optional: remediation hints.
	Cause   error  `json:"-"`              // Optional: underlying error.
}

// Issues is a collection of issues that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. container_conflict at items.0
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
