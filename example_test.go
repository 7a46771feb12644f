package formskema_test

import (
	"fmt"

	formskema "github.com/reoring/formskema"
)

func ExampleExpandMap() {
	tree, _ := formskema.ExpandMap(map[string]any{
		"user.name":  "Ann",
		"user.age":   "31",
		"user.phone": "+622223651741",
		"items.0":    "pen",
		"items.1":    "ink",
		"agree":      "true",
		"note":       "",
	}, formskema.Options{})
	fmt.Println(tree)
	// Output: map[agree:true items:[pen ink] user:map[age:31 name:Ann phone:+622223651741]]
}

func ExampleFlatten() {
	for _, e := range formskema.Flatten(map[string]any{
		"items": []any{map[string]any{"sku": "A", "qty": float64(2)}},
	}) {
		fmt.Printf("%s=%v\n", e.Key, e.Value)
	}
	// Output:
	// items.0.qty=2
	// items.0.sku=A
}
