// Package formskema turns flat web-form submissions into nested values and
// derives form field paths from schema trees.
//
// It provides:
//
// - Expand/DecodeForm/DecodeRequest: dotted keys ("items.0.price") rebuilt
// into maps and slices, with string coercion to numbers, booleans and dates
// - Flatten: the inverse rendering back to dotted keys
// - DuplicateKeys: repeated object keys in JSON that Flatten would lose
// - A stable error model via Issues (path, code, message)
//
// Design policy:
// - Keep only public APIs in the root package.
// - Place the schema DSL under dsl/, coercion under codec/, schema
// introspection (path maps and selection maps) under introspect/, JSON
// Schema and OpenAPI import under openapi/, HTTP middleware under
// middleware/, and the CLI under cmd/formskema.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	tree, err := formskema.DecodeRequest(r, formskema.Options{})
//	if iss, ok := formskema.AsIssues(err); ok {
//	    // container conflicts, invalid keys ...
//	}
//
//	res := introspect.Introspect(schema, introspect.Options{})
//	res.Paths.(introspect.PathObject).Leaf("email") // "email"
package formskema
