package openapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ohler55/ojg/jp"
	"gopkg.in/yaml.v3"

	"github.com/reoring/formskema/dsl"
)

// ImportYAML imports a schema from a YAML stream. With several documents
// (for example a bundle of CRDs) Options.Document picks one by position;
// otherwise the first document matched by Options.Select is used, or the
// first mapping when Select is empty.
func ImportYAML(data []byte, opts Options) (dsl.Schema, Diag, error) {
	var sel jp.Expr
	if opts.Select != "" {
		x, err := compileSelect(opts.Select)
		if err != nil {
			return nil, &simpleDiag{}, err
		}
		sel = x
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	for n := 1; ; n++ {
		var node any
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, &simpleDiag{}, fmt.Errorf("openapi: invalid YAML (document %d): %w", n, err)
		}
		m := yamlAnyToStringMap(node)
		switch {
		case opts.Document > 0:
			if n != opts.Document {
				continue
			}
			if m == nil {
				return nil, &simpleDiag{}, fmt.Errorf("%w: YAML document %d is not a mapping", ErrNoSchema, n)
			}
		case m == nil:
			continue
		case sel != nil && firstObject(sel, m) == nil:
			continue
		}
		return Import(m, opts)
	}
	if opts.Document > 0 {
		return nil, &simpleDiag{}, fmt.Errorf("%w: YAML stream has no document %d", ErrNoSchema, opts.Document)
	}
	return nil, &simpleDiag{}, fmt.Errorf("%w in YAML stream", ErrNoSchema)
}

// yamlAnyToStringMap converts YAML-decoded values (which may contain
// map[any]any) into JSON-like map[string]any recursively. Non-map roots
// return nil.
func yamlAnyToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[fmt.Sprint(k)] = yamlNormalizeValue(vv)
		}
		return out
	}
	return nil
}

func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlAnyToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	}
	return v
}
