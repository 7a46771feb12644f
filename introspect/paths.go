package introspect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// PathNode is one node of a path map: PathLeaf, PathObject or *PathArray.
type PathNode interface {
	pathNode()
}

// PathLeaf is the dotted form key of a single field.
type PathLeaf string

// PathObject maps field names to the paths below them.
type PathObject map[string]PathNode

// PathArray stands for an array of non-primitive elements. Key is the
// array's own path; At yields the paths of one element.
type PathArray struct {
	key string
	at  func(prefix string) PathNode
	// render walks the element for MarshalJSON and MarshalYAML. Unlike at
	// it keeps the ancestors of the array, so a recursive element renders
	// as a leaf.
	render func(prefix string) PathNode
}

func (PathLeaf) pathNode()   {}
func (PathObject) pathNode() {}
func (*PathArray) pathNode() {}

func (l PathLeaf) String() string { return string(l) }

// Key returns the path of the array itself, for example to address it when
// appending rows.
func (a *PathArray) Key() string { return a.key }

// At returns the paths of element i, rooted at "<key>.<i>". A negative
// index is a programming error and panics.
func (a *PathArray) At(i int) PathNode {
	if i < 0 {
		panic(fmt.Sprintf("formskema/introspect: PathArray.At(%d) on %q: negative index", i, a.key))
	}
	return a.at(joinPath(a.key, strconv.Itoa(i)))
}

// MarshalJSON renders the array as {"key": ..., "element": ...} with the
// element paths using the placeholder segment "{index}".
func (a *PathArray) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key     string   `json:"key"`
		Element PathNode `json:"element"`
	}{Key: a.key, Element: a.element()})
}

// MarshalYAML mirrors MarshalJSON.
func (a *PathArray) MarshalYAML() (any, error) {
	return map[string]any{"key": a.key, "element": a.element()}, nil
}

func (a *PathArray) element() PathNode {
	p := joinPath(a.key, "{index}")
	if a.render != nil {
		return a.render(p)
	}
	return a.at(p)
}

// Leaf returns the path of field name. It panics when the field is missing
// or is not a leaf.
func (o PathObject) Leaf(name string) string {
	l, ok := o[name].(PathLeaf)
	if !ok {
		panic(fmt.Sprintf("formskema/introspect: field %q is %s, not a leaf", name, describe(o[name])))
	}
	return string(l)
}

// Object returns the nested path object of field name. It panics when the
// field is missing or is not an object.
func (o PathObject) Object(name string) PathObject {
	m, ok := o[name].(PathObject)
	if !ok {
		panic(fmt.Sprintf("formskema/introspect: field %q is %s, not an object", name, describe(o[name])))
	}
	return m
}

// Array returns the path generator of field name. It panics when the field
// is missing or is not an array of objects; arrays of primitives are
// plain leaves.
func (o PathObject) Array(name string) *PathArray {
	a, ok := o[name].(*PathArray)
	if !ok {
		panic(fmt.Sprintf("formskema/introspect: field %q is %s, not an array generator", name, describe(o[name])))
	}
	return a
}

// Lookup follows a dotted path such as "items.2.price" through objects and
// array generators. Numeric segments index array generators.
func (o PathObject) Lookup(path string) (PathNode, bool) {
	var cur PathNode = o
	for _, seg := range strings.Split(path, ".") {
		switch n := cur.(type) {
		case PathObject:
			next, ok := n[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case *PathArray:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 {
				return nil, false
			}
			cur = n.At(i)
		default:
			return nil, false
		}
	}
	return cur, true
}

func describe(n PathNode) string {
	switch n.(type) {
	case nil:
		return "missing"
	case PathLeaf:
		return "a leaf"
	case PathObject:
		return "an object"
	case *PathArray:
		return "an array generator"
	}
	return fmt.Sprintf("%T", n)
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
