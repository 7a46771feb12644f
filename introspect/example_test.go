package introspect_test

import (
	"fmt"

	"github.com/reoring/formskema/dsl"
	"github.com/reoring/formskema/introspect"
)

func ExampleIntrospect() {
	order := dsl.Object().
		Field("email", dsl.String()).
		Field("items", dsl.Array(dsl.Object().
			Field("sku", dsl.String()).
			Field("qty", dsl.Number()).
			MustBuild())).
		MustBuild()

	res := introspect.Introspect(order, introspect.Options{})
	paths := res.Fields()
	items := paths.Array("items")

	fmt.Println(paths.Leaf("email"))
	fmt.Println(items.Key())
	fmt.Println(items.At(2).(introspect.PathObject).Leaf("qty"))
	fmt.Println(res.Selection)
	// Output:
	// email
	// items
	// items.2.qty
	// {email items{qty sku}}
}
