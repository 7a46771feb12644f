package introspect

import "github.com/reoring/formskema/internal/probe"

// Mode selects the output of Walk.
type Mode int

const (
	// ModePath produces PathNode values: dotted keys at the leaves and
	// *PathArray generators for arrays of non-primitive elements.
	ModePath Mode = iota
	// ModeSelect produces map[string]any trees with true at the leaves;
	// arrays resolve to their element without an index dimension.
	ModeSelect
)

// DefaultMaxDepth bounds the nesting walked unless Options.MaxDepth is set.
const DefaultMaxDepth = 64

// Walk traverses schema node n. Field paths are joined to prefix with '.'.
//
// In ModePath the result is a PathNode; in ModeSelect it is either true
// or a map[string]any. A primitive (or unrecognized) node yields the leaf
// for prefix, or an empty map when prefix is "".
//
// Transparent wrappers (optional, nullable, promise, default, readonly,
// pipe, effects, lazy) add no path segment. Union and intersection members
// are walked at the same prefix and their object results merged, later
// members winning on collision; when nothing merges the node is a leaf.
// A node met again while it is still being walked is treated as a leaf, so
// recursive schemas terminate.
func Walk(n any, mode Mode, prefix string, opts Options) any {
	w := newWalker(mode, opts)
	return w.walk(n, prefix, 0)
}

type walker struct {
	mode     Mode
	maxDepth int
	active   map[probe.ID]struct{}
}

func newWalker(mode Mode, opts Options) *walker {
	return &walker{mode: mode, maxDepth: opts.maxDepth(), active: map[probe.ID]struct{}{}}
}

func (w *walker) walk(n any, prefix string, depth int) any {
	if depth > w.maxDepth {
		return w.leaf(prefix)
	}
	if id, ok := probe.Identity(n); ok {
		if _, seen := w.active[id]; seen {
			return w.leaf(prefix)
		}
		w.active[id] = struct{}{}
		defer delete(w.active, id)
	}

	switch v := classify(n); v {
	case vObject:
		fields := Fields(n)
		out := w.object(len(fields))
		for _, name := range probe.SortedKeys(fields) {
			w.set(out, name, w.walk(fields[name], joinPath(prefix, name), depth+1))
		}
		return out

	case vUnion:
		merged := w.object(0)
		for _, o := range Members(n) {
			w.merge(merged, w.walk(o, prefix, depth+1))
		}
		if w.size(merged) > 0 {
			return merged
		}

	case vIntersection:
		left, right := Sides(n)
		merged := w.object(0)
		w.merge(merged, w.walk(left, prefix, depth+1))
		w.merge(merged, w.walk(right, prefix, depth+1))
		if w.size(merged) > 0 {
			return merged
		}

	case vArray:
		elem := Element(n)
		if w.mode == ModeSelect || primitiveElement(elem, w.maxDepth) {
			return w.walk(elem, prefix, depth+1)
		}
		mode, maxDepth := w.mode, w.maxDepth
		ancestors := make(map[probe.ID]struct{}, len(w.active))
		for id := range w.active {
			ancestors[id] = struct{}{}
		}
		return &PathArray{
			key: prefix,
			// a fresh walker: the enclosing walk has returned by the time
			// an element is requested, and each At call descends one level
			at: func(p string) PathNode {
				ew := &walker{mode: mode, maxDepth: maxDepth, active: map[probe.ID]struct{}{}}
				return ew.walk(elem, p, depth+1).(PathNode)
			},
			render: func(p string) PathNode {
				ew := &walker{mode: mode, maxDepth: maxDepth, active: make(map[probe.ID]struct{}, len(ancestors))}
				for id := range ancestors {
					ew.active[id] = struct{}{}
				}
				return ew.walk(elem, p, depth+1).(PathNode)
			},
		}

	case vOptional, vNullable, vPromise, vDefault, vReadonly, vPipe, vEffect, vLazy, vWrapper:
		return w.walk(inner(n, v), prefix, depth+1)
	}

	return w.leaf(prefix)
}

func (w *walker) leaf(prefix string) any {
	if prefix == "" {
		return w.object(0)
	}
	if w.mode == ModeSelect {
		return true
	}
	return PathLeaf(prefix)
}

func (w *walker) object(size int) any {
	if w.mode == ModeSelect {
		return make(map[string]any, size)
	}
	return make(PathObject, size)
}

func (w *walker) set(obj any, name string, v any) {
	switch o := obj.(type) {
	case PathObject:
		o[name] = v.(PathNode)
	case map[string]any:
		o[name] = v
	}
}

// merge copies the entries of src into dst when src is an object.
func (w *walker) merge(dst, src any) {
	switch s := src.(type) {
	case PathObject:
		d := dst.(PathObject)
		for k, v := range s {
			d[k] = v
		}
	case map[string]any:
		d := dst.(map[string]any)
		for k, v := range s {
			d[k] = v
		}
	}
}

func (w *walker) size(obj any) int {
	switch o := obj.(type) {
	case PathObject:
		return len(o)
	case map[string]any:
		return len(o)
	}
	return 0
}
