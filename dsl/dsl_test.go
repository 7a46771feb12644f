package dsl_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	formskema "github.com/reoring/formskema"
	"github.com/reoring/formskema/dsl"
)

func TestObjectBuilder_KeysAndWrappers(t *testing.T) {
	obj, err := dsl.Object().
		Field("name", dsl.String()).
		Field("age", dsl.Number()).Optional().
		Field("active", dsl.Bool()).Default(true).
		Field("note", dsl.String()).Nullable().
		Build()
	require.NoError(t, err)

	assert.Equal(t, dsl.KindObject, obj.Kind())
	assert.Equal(t, []string{"name", "age", "active", "note"}, obj.Keys())

	age, ok := obj.Field("age")
	require.True(t, ok)
	assert.Equal(t, dsl.KindOptional, age.Kind())

	active, _ := obj.Field("active")
	def, ok := active.(*dsl.DefaultSchema)
	require.True(t, ok)
	assert.Equal(t, true, def.DefaultValue())
	assert.Equal(t, dsl.KindBoolean, def.RemoveDefault().Kind())

	// Shape is a copy
	shape := obj.Shape()
	delete(shape, "name")
	_, ok = obj.Field("name")
	assert.True(t, ok)
}

func TestObjectBuilder_Errors(t *testing.T) {
	_, err := dsl.Object().
		Field("", dsl.String()).
		Field("a.b", dsl.String()).
		Field("x", nil).
		Field("dup", dsl.String()).
		Field("dup", dsl.Number()).
		Build()
	iss, ok := formskema.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 4)
	assert.Equal(t, formskema.CodeInvalidKey, iss[0].Code)
	assert.Equal(t, formskema.CodeInvalidKey, iss[1].Code)
	assert.Equal(t, formskema.CodeInvalidSchema, iss[2].Code)
	assert.Equal(t, formskema.CodeInvalidSchema, iss[3].Code)
	assert.Equal(t, "dup", iss[3].Path)

	assert.Panics(t, func() { dsl.Object().Field("", dsl.String()).MustBuild() })
}

func TestObjectSchema_Derivations(t *testing.T) {
	base := dsl.Object().Field("a", dsl.String()).Field("b", dsl.Number()).MustBuild()
	ext := base.Extend(dsl.Object().Field("b", dsl.String()).Field("c", dsl.Bool()).MustBuild())
	assert.Equal(t, []string{"a", "b", "c"}, ext.Keys())
	b, _ := ext.Field("b")
	assert.Equal(t, dsl.KindString, b.Kind())

	assert.Equal(t, []string{"a", "c"}, ext.Pick("c", "a", "zzz").Keys())
	assert.Equal(t, []string{"b"}, ext.Omit("a", "c").Keys())

	for _, k := range ext.Partial().Keys() {
		f, _ := ext.Partial().Field(k)
		assert.Equal(t, dsl.KindOptional, f.Kind(), k)
	}
	// base is untouched
	assert.Equal(t, []string{"a", "b"}, base.Keys())
}

func TestObjectFromMap_SortsKeys(t *testing.T) {
	obj, err := dsl.ObjectFromMap(map[string]dsl.Schema{"z": dsl.String(), "a": dsl.Number()})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "z"}, obj.Keys())
}

func TestUnion_PlainAndDiscriminated(t *testing.T) {
	u := dsl.Union(dsl.String(), nil, dsl.Number())
	assert.Len(t, u.Options(), 2)
	assert.Equal(t, "", u.Discriminator())

	card := dsl.Object().Field("number", dsl.String()).MustBuild()
	bank := dsl.Object().Field("iban", dsl.String()).MustBuild()
	bank2 := dsl.Object().Field("bic", dsl.String()).MustBuild()
	d := dsl.OneOf("method",
		dsl.Variant("card", card),
		dsl.Variant("bank", bank),
		dsl.Variant("", card),
		dsl.Variant("bank", bank2),
	)
	assert.Equal(t, "method", d.Discriminator())
	require.Len(t, d.Options(), 2)
	got, ok := d.Variant("bank")
	require.True(t, ok)
	assert.Same(t, bank2, got)
	_, ok = d.Variant("cash")
	assert.False(t, ok)
}

func TestAnd_FoldsLeft(t *testing.T) {
	a, b, c := dsl.String(), dsl.Number(), dsl.Bool()
	assert.Nil(t, dsl.And())
	assert.Same(t, a, dsl.And(nil, a))

	chain, ok := dsl.And(a, b, c).(*dsl.IntersectionSchema)
	require.True(t, ok)
	assert.Same(t, c, chain.Right())
	inner, ok := chain.Left().(*dsl.IntersectionSchema)
	require.True(t, ok)
	assert.Same(t, a, inner.Left())
	assert.Same(t, b, inner.Right())
}

func TestEffects(t *testing.T) {
	tr := dsl.Transform(dsl.String(), func(v any) (any, error) { return len(v.(string)), nil })
	out, err := tr.Apply("abcd")
	require.NoError(t, err)
	assert.Equal(t, 4, out)
	assert.Equal(t, dsl.EffectTransform, tr.Effect())

	errShort := errors.New("too short")
	rf := dsl.Refine(dsl.String(), "min3", func(v any) error {
		if len(v.(string)) < 3 {
			return errShort
		}
		return nil
	})
	_, err = rf.Apply("ab")
	assert.ErrorIs(t, err, errShort)
	out, err = rf.Apply("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", out)
	assert.Equal(t, "min3", rf.Name())

	pre := dsl.Preprocess(nil, dsl.Number())
	out, err = pre.Apply("7")
	require.NoError(t, err)
	assert.Equal(t, "7", out)
	assert.Equal(t, dsl.KindNumber, pre.InnerType().Kind())

	p := dsl.Pipe(dsl.String(), dsl.Date())
	assert.Equal(t, dsl.KindDate, p.Out().Kind())
}

func TestLazy_ResolvesOnce(t *testing.T) {
	calls := 0
	var node dsl.Schema
	l := dsl.Lazy(func() dsl.Schema {
		calls++
		return node
	})
	node = dsl.Object().Field("children", dsl.Array(l)).MustBuild()

	assert.Same(t, node, l.Resolve())
	assert.Same(t, node, l.Resolve())
	assert.Equal(t, 1, calls)
}

func TestKind_Names(t *testing.T) {
	for k := dsl.KindUnknown; k <= dsl.KindLazy; k++ {
		got, ok := dsl.ParseKind(k.String())
		require.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}
	_, ok := dsl.ParseKind("ZodObject")
	assert.False(t, ok)
	assert.True(t, dsl.KindDate.Primitive())
	assert.True(t, dsl.KindBinary.Primitive())
	assert.False(t, dsl.KindObject.Primitive())
	assert.False(t, dsl.KindOptional.Primitive())
	assert.Equal(t, "unknown", dsl.Kind(99).String())
}

func TestPrimitives_Values(t *testing.T) {
	e := dsl.Enum("a", "b")
	assert.Equal(t, []any{"a", "b"}, e.Values())
	assert.Equal(t, []any{42}, dsl.Literal(42).Values())
	assert.Nil(t, dsl.String().Values())
}
