package dsl

import "sync"

// PipeSchema feeds the output of In into Out. The value shape seen by
// consumers is the one of Out.
type PipeSchema struct {
	in, out Schema
}

func (p *PipeSchema) Kind() Kind  { return KindPipe }
func (p *PipeSchema) In() Schema  { return p.in }
func (p *PipeSchema) Out() Schema { return p.out }

// Pipe creates in -> out.
func Pipe(in, out Schema) *PipeSchema { return &PipeSchema{in: in, out: out} }

// EffectKind tells which hook an EffectSchema carries.
type EffectKind int

const (
	EffectTransform  EffectKind = iota // Maps the parsed value.
	EffectRefine                       // Checks the parsed value.
	EffectPreprocess                   // Maps the raw input before parsing.
)

// EffectSchema attaches a value hook to an inner schema without changing
// its shape.
type EffectSchema struct {
	inner  Schema
	effect EffectKind
	name   string
	fn     func(any) (any, error)
}

func (e *EffectSchema) Kind() Kind { return KindEffect }

// InnerType returns the schema the hook is attached to.
func (e *EffectSchema) InnerType() Schema { return e.inner }

// Effect returns the hook kind.
func (e *EffectSchema) Effect() EffectKind { return e.effect }

// Name returns the refine label, if any.
func (e *EffectSchema) Name() string { return e.name }

// Apply runs the hook on v. Refine hooks return v unchanged on success.
func (e *EffectSchema) Apply(v any) (any, error) {
	if e.fn == nil {
		return v, nil
	}
	return e.fn(v)
}

// Transform maps values of s through fn.
func Transform(s Schema, fn func(any) (any, error)) *EffectSchema {
	return &EffectSchema{inner: s, effect: EffectTransform, fn: fn}
}

// Refine attaches a named check to s.
func Refine(s Schema, name string, check func(any) error) *EffectSchema {
	var fn func(any) (any, error)
	if check != nil {
		fn = func(v any) (any, error) {
			if err := check(v); err != nil {
				return nil, err
			}
			return v, nil
		}
	}
	return &EffectSchema{inner: s, effect: EffectRefine, name: name, fn: fn}
}

// Preprocess maps raw input through fn before s sees it.
func Preprocess(fn func(any) (any, error), s Schema) *EffectSchema {
	return &EffectSchema{inner: s, effect: EffectPreprocess, fn: fn}
}

// LazySchema defers construction of its target, which allows recursive
// schemas. The getter runs at most once.
type LazySchema struct {
	get  func() Schema
	once sync.Once
	s    Schema
}

func (l *LazySchema) Kind() Kind { return KindLazy }

// Resolve returns the target schema, building it on first use.
func (l *LazySchema) Resolve() Schema {
	l.once.Do(func() {
		if l.get != nil {
			l.s = l.get()
		}
	})
	return l.s
}

// Lazy creates a schema resolved on first use by get.
//
//	var category dsl.Schema
//	category = dsl.Object().
//	    Field("name", dsl.String()).
//	    Field("children", dsl.Array(dsl.Lazy(func() dsl.Schema { return category }))).
//	    MustBuild()
func Lazy(get func() Schema) *LazySchema { return &LazySchema{get: get} }
