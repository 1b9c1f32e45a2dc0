// Package clif maps existential graphs to and from CLIF text.
//
// The parser is a recursive-descent reader over the supported CLIF
// subset (exists, and, not, =, predicates, constants). Parsing builds
// the entity graph through an editor as a side effect and returns a
// typed parse tree plus the variable, constant, and hook binding maps
// a renderer needs. Every failure comes back as a *ParseError; the
// parser never panics.
//
// The translator is the inverse: it walks the graph from the Sheet of
// Assertion and emits canonical CLIF. Quantifiers are placed at each
// line's minimal scope (the lowest common ancestor of every context
// the line is attached in), clause lists and variable lists are sorted,
// and variable names are assigned in discovery order over a traversal
// that follows entity creation order. Those sorts make translation a
// fixed point: for any graph G, translate(parse(translate(G))) equals
// translate(G).
//
// The supported grammar is deliberately partial CLIF. Disjunction is
// rejected, and the constant-vs-variable heuristic (lowercase-leading
// tokens are constants, a single uppercase letter or a ?-prefixed token
// is a variable) is documented behavior, not full CLIF typing.
package clif
