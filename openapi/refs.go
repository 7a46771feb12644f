package openapi

import (
	"strconv"
	"strings"

	"github.com/reoring/formskema/dsl"
	"github.com/reoring/formskema/jsonschema"
)

// ref resolves a local $ref. Each target is built once; a reference back
// into a target that is still being built becomes a dsl.Lazy that reads the
// finished node.
func (im *importer) ref(ref, at string) dsl.Schema {
	if s, ok := im.refs[ref]; ok {
		return s
	}
	if im.active[ref] {
		return dsl.Lazy(func() dsl.Schema { return im.refs[ref] })
	}
	target, ok := im.lookup(ref)
	if !ok {
		if im.opts.StrictRefs {
			im.fail(at, "unresolved $ref %q", ref)
		} else {
			im.d.warnf("%s: unresolved $ref %q treated as any", at, ref)
		}
		return dsl.Any()
	}
	s, err := jsonschema.FromValue(target)
	if err != nil {
		im.fail(ref, "decode schema: %v", err)
		return dsl.Any()
	}

	im.active[ref] = true
	out := im.build(s, ref)
	delete(im.active, ref)
	im.refs[ref] = out
	return out
}

// lookup follows a local JSON pointer ("#/$defs/Node"), first from the
// document root, then from the imported schema (CRD schemas keep their
// $defs next to the schema).
func (im *importer) lookup(ref string) (map[string]any, bool) {
	if !strings.HasPrefix(ref, "#") {
		return nil, false
	}
	for _, base := range []map[string]any{im.root, im.target} {
		if m, ok := pointer(base, ref[1:]); ok {
			return m, true
		}
	}
	return nil, false
}

var tokenUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

func pointer(doc any, p string) (map[string]any, bool) {
	if p != "" && !strings.HasPrefix(p, "/") {
		return nil, false
	}
	cur := doc
	if p != "" {
		for _, tok := range strings.Split(p[1:], "/") {
			tok = tokenUnescaper.Replace(tok)
			switch c := cur.(type) {
			case map[string]any:
				next, ok := c[tok]
				if !ok {
					return nil, false
				}
				cur = next
			case []any:
				i, err := strconv.Atoi(tok)
				if err != nil || i < 0 || i >= len(c) {
					return nil, false
				}
				cur = c[i]
			default:
				return nil, false
			}
		}
	}
	m, ok := cur.(map[string]any)
	return m, ok
}

func escapeToken(s string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(s)
}
