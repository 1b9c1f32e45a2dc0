// Package rules implements the precondition checks for Peirce's formal
// transformation rules.
//
// The validator is stateless: every check reads the registry and answers
// yes or no without mutating anything. Context polarity does the heavy
// lifting: erasure is licensed only in positive (even-depth) contexts,
// insertion only in negative (odd-depth) ones, and iteration only into
// a context nested inside the source.
//
// Two checks are deliberately weaker than full EG semantics and must
// stay that way (the editor's callers depend on the documented
// behavior): CanErase inspects only the first selected element's
// context, and CanDeiterate is an unconditional pass.
package rules
