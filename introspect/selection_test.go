package introspect_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/formskema/dsl"
	"github.com/reoring/formskema/introspect"
)

func userSchema() *dsl.ObjectSchema {
	return dsl.Object().
		Field("email", dsl.String()).
		Field("address", dsl.Object().
			Field("city", dsl.String()).
			Field("zip", dsl.String()).Optional().
			MustBuild()).
		Field("orders", dsl.Array(dsl.Object().
			Field("id", dsl.Number()).
			Field("lines", dsl.Array(dsl.Object().Field("sku", dsl.String()).MustBuild())).
			MustBuild())).
		MustBuild()
}

func TestToSelection_WrapsNestedMaps(t *testing.T) {
	got := introspect.ToSelection(map[string]any{
		"a": true,
		"b": map[string]any{"c": true, "d": map[string]any{"e": true}},
	})
	want := introspect.Selection{
		"a": true,
		"b": map[string]any{"select": introspect.Selection{
			"c": true,
			"d": map[string]any{"select": introspect.Selection{"e": true}},
		}},
	}
	assert.Equal(t, want, got)
}

func TestToSelection_RejectsPathOutput(t *testing.T) {
	assert.Panics(t, func() {
		introspect.ToSelection(map[string]any{"a": introspect.PathLeaf("a")})
	})
	assert.Panics(t, func() {
		introspect.ToSelection(map[string]any{"a": "a"})
	})
}

func TestSelection_MirrorsPathShape(t *testing.T) {
	res := introspect.Introspect(userSchema(), introspect.Options{})

	var check func(p introspect.PathObject, s introspect.Selection)
	check = func(p introspect.PathObject, s introspect.Selection) {
		require.Len(t, s, len(p))
		for k, node := range p {
			switch n := node.(type) {
			case introspect.PathLeaf:
				assert.Equal(t, true, s[k], k)
			case introspect.PathObject:
				inner := s[k].(map[string]any)["select"].(introspect.Selection)
				check(n, inner)
			case *introspect.PathArray:
				inner := s[k].(map[string]any)["select"].(introspect.Selection)
				check(n.At(0).(introspect.PathObject), inner)
			}
		}
	}
	check(res.Fields(), res.Selection)
}

func TestSelection_ColumnsAndString(t *testing.T) {
	sel := introspect.Select(userSchema(), introspect.Options{})
	assert.Equal(t, []string{"address.city", "address.zip", "email", "orders.id", "orders.lines.sku"}, sel.Columns())
	assert.Equal(t, "{address{city zip} email orders{id lines{sku}}}", sel.String())

	sel = introspect.ToSelection(map[string]any{"a": false, "b": true})
	assert.Equal(t, []string{"b"}, sel.Columns())
}

func TestPathArray_MarshalJSON(t *testing.T) {
	paths := introspect.Paths(userSchema(), introspect.Options{})
	b, err := json.Marshal(paths)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "email", got["email"])
	assert.Equal(t, map[string]any{"city": "address.city", "zip": "address.zip"}, got["address"])
	orders := got["orders"].(map[string]any)
	assert.Equal(t, "orders", orders["key"])
	el := orders["element"].(map[string]any)
	assert.Equal(t, "orders.{index}.id", el["id"])
	lines := el["lines"].(map[string]any)
	assert.Equal(t, "orders.{index}.lines", lines["key"])
	assert.Equal(t, map[string]any{"sku": "orders.{index}.lines.{index}.sku"}, lines["element"])
}
