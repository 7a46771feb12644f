package formskema

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/reoring/formskema/i18n"
)

type dupFrame struct {
	object bool
	prefix string
	keys   map[string]struct{}
	next   int  // array index of the next element
	key    bool // an object is waiting for a key
	cur    string
}

// DuplicateKeys reports object keys that occur more than once in a JSON
// document. Most decoders keep the last value silently, so a flattened form
// built from such a document would lose fields. Paths are dotted, like form
// keys. A syntax error ends the scan with a parse_error Issue.
func DuplicateKeys(data []byte) Issues {
	return DuplicateKeysReader(bytes.NewReader(data))
}

// DuplicateKeysReader is DuplicateKeys over a reader. It consumes r.
func DuplicateKeysReader(r io.Reader) Issues {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var (
		iss   Issues
		stack []*dupFrame
	)
	// here returns the dotted path of the value about to be read.
	here := func() string {
		if len(stack) == 0 {
			return ""
		}
		top := stack[len(stack)-1]
		if top.object {
			return joinPath(top.prefix, top.cur)
		}
		return joinPath(top.prefix, strconv.Itoa(top.next))
	}
	// done marks the value just read as finished in its parent.
	done := func() {
		if len(stack) == 0 {
			return
		}
		top := stack[len(stack)-1]
		if top.object {
			top.key = true
		} else {
			top.next++
		}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return iss
		}
		if err != nil {
			return append(iss, Issue{Path: here(), Code: CodeParseError, Message: i18n.T(CodeParseError, nil), Cause: err})
		}
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, &dupFrame{object: true, prefix: here(), keys: map[string]struct{}{}, key: true})
			case '[':
				stack = append(stack, &dupFrame{prefix: here()})
			default:
				stack = stack[:len(stack)-1]
				done()
			}
		case string:
			if top := last(stack); top != nil && top.object && top.key {
				if _, seen := top.keys[v]; seen {
					p := joinPath(top.prefix, v)
					iss = append(iss, Issue{Path: p, Code: CodeDuplicateKey, Message: i18n.T(CodeDuplicateKey, map[string]string{"key": p})})
				}
				top.keys[v] = struct{}{}
				top.cur = v
				top.key = false
				continue
			}
			done()
		default:
			done()
		}
	}
}

func last(stack []*dupFrame) *dupFrame {
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}
