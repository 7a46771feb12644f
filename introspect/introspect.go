// Package introspect derives form artifacts from a schema tree: a path map
// of dotted form keys, and a selection map for relational query builders.
//
// Nodes are classified by Kind() for dsl schemas and by duck-typed probes
// (kind names, accessor methods, struct fields) for anything else, so trees
// built with a different copy of a schema package can be walked too.
//
//	res := introspect.Introspect(user, introspect.Options{})
//	paths := res.Fields()
//	paths.Leaf("email")                          // "email"
//	paths.Object("address").Leaf("city")         // "address.city"
//	paths.Array("items").At(2).(introspect.PathObject).Leaf("sku") // "items.2.sku"
//	paths.Array("items").Key()                   // "items"
//	res.Selection                                // {"email": true, "address": {"select": {...}}, ...}
package introspect

// Options tunes the walk.
type Options struct {
	// MaxDepth bounds recursion; deeper nodes become leaves.
	// <= 0 means DefaultMaxDepth.
	MaxDepth int
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

// Result bundles the artifacts derived from one schema.
type Result struct {
	Paths     PathNode
	Selection Selection
	Model     any
}

// Fields returns Paths as an object, or an empty object when the root is
// not an object (an array of objects at the root yields a *PathArray).
func (r Result) Fields() PathObject {
	if o, ok := r.Paths.(PathObject); ok {
		return o
	}
	return PathObject{}
}

// Introspect walks model in both modes.
func Introspect(model any, opts Options) Result {
	return Result{
		Paths:     Paths(model, opts),
		Selection: Select(model, opts),
		Model:     model,
	}
}

// Paths returns the path map of model rooted at the empty prefix.
func Paths(model any, opts Options) PathNode {
	return Walk(model, ModePath, "", opts).(PathNode)
}

// Select returns the selection map of model.
func Select(model any, opts Options) Selection {
	tree, ok := Walk(model, ModeSelect, "", opts).(map[string]any)
	if !ok {
		return Selection{}
	}
	return ToSelection(tree)
}
