// Package dsl provides composable schema nodes describing the shape of form
// values.
//
// Overview
//   - Builder API: declare objects with Object()/Field()/Optional()/Default()/Build()/MustBuild().
//   - Leaves: String()/Number()/BigInt()/Bool()/Date()/Binary()/Enum()/Literal()/Null()/Any()/Unknown().
//   - Combinators: Array(elem), Union(...), OneOf(discriminator, Variant(...)...), Intersection(l, r), And(...).
//   - Transparent wrappers: Optional/Nullable/Nullish/Promise/Readonly, Default, Pipe, Transform/Refine/Preprocess, Lazy.
//
// Every node implements Schema (a Kind() method) and exposes its children
// through plain accessor methods: Shape/Keys (object), Options (union),
// Left/Right (intersection), Element (array), Unwrap (wrappers),
// RemoveDefault (default), In/Out (pipe), InnerType (effects) and Resolve
// (lazy). Package introspect relies only on those method names, so nodes
// of another package exposing the same accessors are walked as well.
//
// Nodes only describe shape. Nothing here validates values.
//
// File layout (roles)
//   - kind.go: Kind enum and the Schema interface.
//   - primitives.go: leaf nodes.
//   - object_builder.go: objectBuilder/fieldStep, ObjectSchema and Extend/Pick/Omit/Partial.
//   - union.go: plain and discriminated unions, intersections.
//   - wrappers.go: Array, Optional/Nullable/Promise/Readonly, Default.
//   - effects.go: Pipe, Transform/Refine/Preprocess, Lazy.
//
// Example (quickstart)
//
//	user := dsl.Object().
//	    Field("email", dsl.String()).
//	    Field("age", dsl.Number()).Optional().
//	    Field("address", dsl.Object().
//	        Field("city", dsl.String()).
//	        MustBuild()).
//	    Field("items", dsl.Array(dsl.Object().
//	        Field("sku", dsl.String()).
//	        Field("qty", dsl.Number()).Default(1).
//	        MustBuild())).
//	    MustBuild()
//
// Example (discriminated union)
//
//	payment := dsl.OneOf("method",
//	    dsl.Variant("card", dsl.Object().Field("method", dsl.Literal("card")).Field("number", dsl.String()).MustBuild()),
//	    dsl.Variant("bank", dsl.Object().Field("method", dsl.Literal("bank")).Field("iban", dsl.String()).MustBuild()),
//	)
package dsl
