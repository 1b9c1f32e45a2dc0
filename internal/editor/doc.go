// Package editor provides the mutation API over an existential graph.
//
// All graph construction and every formal transformation rule goes
// through an Editor: creating cuts and predicates, joining hooks into
// shared lines of identity, double-cut insertion and removal, iteration,
// constant handling, and the functional property rule. Rule applications
// are gated by the rules.Validator; a refused application returns an
// eg.RuleError and leaves the graph untouched.
//
// The central algorithm is Connect: it unifies the lines bound to a set
// of hooks into one line of identity (union-style merging, first bound
// hook wins primary), records the joining event as an immutable
// Ligature, and caches which cuts the connection crosses via the lowest
// common ancestor of the attachment contexts.
package editor
