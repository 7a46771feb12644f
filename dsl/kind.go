package dsl

// Kind identifies a schema node variant.
type Kind int

const (
	KindUnknown Kind = iota
	KindString
	KindNumber
	KindBigInt
	KindBoolean
	KindDate
	KindBinary
	KindEnum
	KindLiteral
	KindNull
	KindAny

	KindObject
	KindArray
	KindUnion
	KindIntersection

	KindOptional
	KindNullable
	KindPromise
	KindDefault
	KindReadonly
	KindPipe
	KindEffect
	KindLazy
)

var kindNames = [...]string{
	KindUnknown:      "unknown",
	KindString:       "string",
	KindNumber:       "number",
	KindBigInt:       "bigint",
	KindBoolean:      "boolean",
	KindDate:         "date",
	KindBinary:       "binary",
	KindEnum:         "enum",
	KindLiteral:      "literal",
	KindNull:         "null",
	KindAny:          "any",
	KindObject:       "object",
	KindArray:        "array",
	KindUnion:        "union",
	KindIntersection: "intersection",
	KindOptional:     "optional",
	KindNullable:     "nullable",
	KindPromise:      "promise",
	KindDefault:      "default",
	KindReadonly:     "readonly",
	KindPipe:         "pipe",
	KindEffect:       "effect",
	KindLazy:         "lazy",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind maps a name produced by Kind.String back to the Kind. Matching
// is exact; unknown names yield (KindUnknown, false).
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return KindUnknown, false
}

// Primitive reports whether k is a leaf for path purposes.
func (k Kind) Primitive() bool { return k <= KindAny }

// Schema is a node of a schema tree. Nodes are immutable once built and
// may be shared between trees.
type Schema interface {
	Kind() Kind
}
