// Package harness runs declarative graph scenarios for conformance
// testing.
//
// A scenario is a YAML file listing editor operations (predicates,
// cuts, connections, rule applications, or a whole CLIF parse) and the
// canonical CLIF the finished graph must translate to. Operations name
// their results with symbolic handles so later steps can refer to
// them; "SA" always resolves to the Sheet of Assertion.
//
// Golden comparison goes through goldie: the canonical translation is
// asserted against testdata/golden/{name}.golden, regenerated with
// go test ./internal/harness -update.
package harness
