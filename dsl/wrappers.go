package dsl

// ArraySchema is a sequence of one element type.
type ArraySchema struct {
	elem Schema
}

func (a *ArraySchema) Kind() Kind      { return KindArray }
func (a *ArraySchema) Element() Schema { return a.elem }

// Array creates an array schema from an element schema.
func Array(elem Schema) *ArraySchema { return &ArraySchema{elem: elem} }

// WrapperSchema is a modifier around one inner node: Optional, Nullable,
// Promise or Readonly. It contributes nothing to the value's shape.
type WrapperSchema struct {
	kind  Kind
	inner Schema
}

func (w *WrapperSchema) Kind() Kind     { return w.kind }
func (w *WrapperSchema) Unwrap() Schema { return w.inner }

// Optional marks s as possibly absent.
func Optional(s Schema) *WrapperSchema { return &WrapperSchema{kind: KindOptional, inner: s} }

// Nullable marks s as possibly null.
func Nullable(s Schema) *WrapperSchema { return &WrapperSchema{kind: KindNullable, inner: s} }

// Nullish is Optional(Nullable(s)).
func Nullish(s Schema) *WrapperSchema { return Optional(Nullable(s)) }

// Promise describes a value delivered asynchronously.
func Promise(s Schema) *WrapperSchema { return &WrapperSchema{kind: KindPromise, inner: s} }

// Readonly marks s as immutable.
func Readonly(s Schema) *WrapperSchema { return &WrapperSchema{kind: KindReadonly, inner: s} }

// DefaultSchema substitutes a value when the input is absent.
type DefaultSchema struct {
	inner Schema
	value any
}

func (d *DefaultSchema) Kind() Kind { return KindDefault }

// RemoveDefault returns the wrapped schema.
func (d *DefaultSchema) RemoveDefault() Schema { return d.inner }

// DefaultValue returns the substituted value.
func (d *DefaultSchema) DefaultValue() any { return d.value }

// Default wraps s with a default value.
func Default(s Schema, v any) *DefaultSchema { return &DefaultSchema{inner: s, value: v} }
