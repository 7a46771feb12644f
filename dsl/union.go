package dsl

// UnionSchema accepts any of its options. A discriminated union also
// records the tag of each option.
type UnionSchema struct {
	options       []Schema
	discriminator string
	tags          []string
}

func (u *UnionSchema) Kind() Kind { return KindUnion }

// Options returns the union members in declaration order.
func (u *UnionSchema) Options() []Schema { return append([]Schema(nil), u.options...) }

// Discriminator returns the tag field name, or "" for a plain union.
func (u *UnionSchema) Discriminator() string { return u.discriminator }

// Variant looks up the option registered under tag.
func (u *UnionSchema) Variant(tag string) (Schema, bool) {
	for i, t := range u.tags {
		if t == tag {
			return u.options[i], true
		}
	}
	return nil, false
}

// Union creates a plain union. nil options are skipped.
func Union(options ...Schema) *UnionSchema {
	u := &UnionSchema{}
	for _, o := range options {
		if o != nil {
			u.options = append(u.options, o)
		}
	}
	return u
}

// UnionVariant defines a named variant schema for discriminated unions.
type UnionVariant struct {
	name   string
	schema Schema
}

// Variant constructs a UnionVariant.
func Variant(name string, s Schema) UnionVariant {
	return UnionVariant{name: name, schema: s}
}

// OneOf creates a discriminated union keyed by the discriminator field.
// Variants with an empty name or nil schema are ignored; a repeated name
// replaces the earlier variant.
func OneOf(discriminator string, vars ...UnionVariant) *UnionSchema {
	u := &UnionSchema{discriminator: discriminator}
	for _, v := range vars {
		if v.name == "" || v.schema == nil {
			continue
		}
		replaced := false
		for i, t := range u.tags {
			if t == v.name {
				u.options[i] = v.schema
				replaced = true
			}
		}
		if !replaced {
			u.tags = append(u.tags, v.name)
			u.options = append(u.options, v.schema)
		}
	}
	return u
}

// IntersectionSchema requires both sides.
type IntersectionSchema struct {
	left, right Schema
}

func (i *IntersectionSchema) Kind() Kind    { return KindIntersection }
func (i *IntersectionSchema) Left() Schema  { return i.left }
func (i *IntersectionSchema) Right() Schema { return i.right }

// Intersection creates left & right.
func Intersection(left, right Schema) *IntersectionSchema {
	return &IntersectionSchema{left: left, right: right}
}

// And folds schemas into a left-leaning intersection chain. It returns nil
// for no input and the schema itself for one.
func And(ss ...Schema) Schema {
	var out Schema
	for _, s := range ss {
		if s == nil {
			continue
		}
		if out == nil {
			out = s
			continue
		}
		out = Intersection(out, s)
	}
	return out
}
