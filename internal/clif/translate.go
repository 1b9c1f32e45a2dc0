package clif

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/bullpen/internal/eg"
)

// Translator emits canonical CLIF text for an existential graph.
//
// Determinism contract: structurally identical graphs translate to
// byte-identical text. Clause lists are sorted lexicographically,
// child traversal follows entity creation order, and variable names
// are assigned ?v1, ?v2, ... in order of first discovery. Quantifier
// variable lists keep that assignment order: parsing recreates lines
// in exists-list order, so ascending numbers are what make the output
// a fixed point under round-trip (parsing it and translating again
// reproduces it byte for byte).
type Translator struct {
	reg *eg.Registry

	names   map[string]string
	counter int
	scopes  map[string]string
}

// NewTranslator builds a translator over reg.
func NewTranslator(reg *eg.Registry) *Translator {
	return &Translator{reg: reg}
}

// Translate renders the whole graph. The empty graph yields "".
func (t *Translator) Translate() string {
	t.names = make(map[string]string)
	t.counter = 0
	t.scopes = make(map[string]string)
	return t.context(t.reg.Sheet())
}

// context renders one context subtree.
func (t *Translator) context(ctx *eg.Context) string {
	// Collect every line referenced anywhere in the subgraph, then
	// order by creation sequence so naming is reproducible.
	lineSet := make(map[string]struct{})
	queue := []*eg.Context{ctx}
	visited := map[string]struct{}{ctx.OID: {}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, childID := range current.Children {
			switch child := t.reg.Get(childID).(type) {
			case *eg.Predicate:
				for _, lineID := range child.Hooks {
					if lineID != "" {
						lineSet[lineID] = struct{}{}
					}
				}
			case *eg.Context:
				if _, seen := visited[child.OID]; !seen {
					visited[child.OID] = struct{}{}
					queue = append(queue, child)
				}
			}
		}
	}
	lines := make([]string, 0, len(lineSet))
	for lineID := range lineSet {
		lines = append(lines, lineID)
	}
	t.reg.SortByCreation(lines)

	// A line is quantified here iff its minimal scope is this exact
	// context. Names are assigned now, outermost context first, so
	// numbering follows textual appearance order.
	var quantified []string
	for _, lineID := range lines {
		if t.scope(lineID) == ctx.OID {
			quantified = append(quantified, t.variable(lineID))
		}
	}

	var clauses []string
	for _, childID := range ctx.Children {
		switch child := t.reg.Get(childID).(type) {
		case *eg.Predicate:
			clauses = append(clauses, t.predicate(child))
		case *eg.Context:
			if sub := t.context(child); sub != "" {
				clauses = append(clauses, sub)
			}
		}
	}
	if len(clauses) == 0 {
		return ""
	}
	sort.Strings(clauses)

	body := clauses[0]
	if len(clauses) > 1 {
		body = "(and " + strings.Join(clauses, " ") + ")"
	}
	// Quantifiers bind inside the context, so the exists wrap precedes
	// the negation wrap on a cut. The variable list stays in assignment
	// order, which is ascending numeric order: lexicographic sorting
	// would place ?v10 before ?v2, and the re-parse would then number
	// the lines differently and change the body text.
	if len(quantified) > 0 {
		body = "(exists (" + strings.Join(quantified, " ") + ") " + body + ")"
	}
	if ctx.Cut {
		body = "(not " + body + ")"
	}
	return body
}

// scope computes (and caches) the minimal scope of a line: the lowest
// common ancestor over the parent contexts of every predicate attached
// through any of the line's ligatures. A line with no attachments
// defaults to the Sheet of Assertion; a line with no ligatures has no
// scope and is never quantified.
func (t *Translator) scope(lineID string) string {
	if cached, ok := t.scopes[lineID]; ok {
		return cached
	}
	line := t.reg.Line(lineID)
	if line == nil || len(line.Ligatures) == 0 {
		return ""
	}
	contextSet := make(map[string]struct{})
	for ligID := range line.Ligatures {
		lig := t.reg.Ligature(ligID)
		if lig == nil {
			continue
		}
		for _, att := range lig.Attachments {
			if parent := t.reg.ParentOf(att.PredicateID); parent != "" {
				contextSet[parent] = struct{}{}
			}
		}
	}
	result := eg.SheetID
	if len(contextSet) > 0 {
		contexts := make([]string, 0, len(contextSet))
		for id := range contextSet {
			contexts = append(contexts, id)
		}
		result = t.reg.LCA(contexts)
	}
	t.scopes[lineID] = result
	return result
}

// variable returns the ?vN name for a line, assigning one on first use.
func (t *Translator) variable(lineID string) string {
	if name, ok := t.names[lineID]; ok {
		return name
	}
	t.counter++
	name := fmt.Sprintf("?v%d", t.counter)
	t.names[lineID] = name
	return name
}

// predicate renders one predicate clause. Functional predicates render
// as an equation on their output hook; a nullary predicate is its bare
// label. Labels are NFC-normalized at this emission boundary so that
// equal-looking labels cannot yield byte-different canonical text.
func (t *Translator) predicate(p *eg.Predicate) string {
	label := norm.NFC.String(p.Label)

	hooks := make([]int, 0, len(p.Hooks))
	for hook := range p.Hooks {
		hooks = append(hooks, hook)
	}
	sort.Ints(hooks)

	if p.Functional {
		out := p.OutputHook()
		outVar := t.variable(p.Hooks[out])
		var inputs []string
		for _, hook := range hooks {
			if hook != out {
				inputs = append(inputs, t.variable(p.Hooks[hook]))
			}
		}
		call := "(" + label
		if len(inputs) > 0 {
			call += " " + strings.Join(inputs, " ")
		}
		call += ")"
		return "(= " + outVar + " " + call + ")"
	}

	if len(hooks) == 0 {
		return label
	}
	terms := make([]string, 0, len(hooks))
	for _, hook := range hooks {
		terms = append(terms, t.variable(p.Hooks[hook]))
	}
	return "(" + label + " " + strings.Join(terms, " ") + ")"
}
