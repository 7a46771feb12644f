package dsl

// PrimitiveSchema is a leaf node. Enum and Literal nodes carry their
// allowed values.
type PrimitiveSchema struct {
	kind   Kind
	values []any
}

func (p *PrimitiveSchema) Kind() Kind { return p.kind }

// Values returns the allowed values of an Enum or Literal node.
func (p *PrimitiveSchema) Values() []any { return append([]any(nil), p.values...) }

// String creates a string leaf.
func String() *PrimitiveSchema { return &PrimitiveSchema{kind: KindString} }

// Number creates a number leaf.
func Number() *PrimitiveSchema { return &PrimitiveSchema{kind: KindNumber} }

// BigInt creates an arbitrary precision integer leaf.
func BigInt() *PrimitiveSchema { return &PrimitiveSchema{kind: KindBigInt} }

// Bool creates a boolean leaf.
func Bool() *PrimitiveSchema { return &PrimitiveSchema{kind: KindBoolean} }

// Date creates a date/time leaf.
func Date() *PrimitiveSchema { return &PrimitiveSchema{kind: KindDate} }

// Binary creates a leaf for uploaded files and raw bytes.
func Binary() *PrimitiveSchema { return &PrimitiveSchema{kind: KindBinary} }

func Null() *PrimitiveSchema    { return &PrimitiveSchema{kind: KindNull} }
func Any() *PrimitiveSchema     { return &PrimitiveSchema{kind: KindAny} }
func Unknown() *PrimitiveSchema { return &PrimitiveSchema{kind: KindUnknown} }

// Enum creates a leaf restricted to the given string values.
func Enum(values ...string) *PrimitiveSchema {
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return &PrimitiveSchema{kind: KindEnum, values: vs}
}

// Literal creates a leaf holding exactly v.
func Literal(v any) *PrimitiveSchema { return &PrimitiveSchema{kind: KindLiteral, values: []any{v}} }
