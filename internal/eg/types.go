package eg

import "github.com/google/uuid"

// Object is the interface every graph entity implements.
// Concrete kinds: *Context, *Predicate, *LineOfIdentity, *Ligature.
// Consumers dispatch with exhaustive type switches.
type Object interface {
	// ID returns the entity's unique identifier.
	ID() string
}

// NewID allocates a fresh entity identifier.
func NewID() string {
	return uuid.NewString()
}

// Context is a region of the sheet that owns child entities.
// The Sheet of Assertion is the unique root context; every other
// context is a Cut and represents one level of logical negation.
type Context struct {
	OID string

	// Cut marks negation contexts. False only for the Sheet of Assertion.
	Cut bool

	// Children holds non-owning references to child entity ids, in
	// insertion order. Order is load-bearing: the translator traverses
	// children in this order before sorting rendered clauses.
	Children []string
}

func (c *Context) ID() string { return c.OID }

// HasChild reports whether id is a direct child of the context.
func (c *Context) HasChild(id string) bool {
	for _, child := range c.Children {
		if child == id {
			return true
		}
	}
	return false
}

// AddChild appends id to the child list if not already present.
func (c *Context) AddChild(id string) {
	if !c.HasChild(id) {
		c.Children = append(c.Children, id)
	}
}

// RemoveChild deletes id from the child list. No-op if absent.
func (c *Context) RemoveChild(id string) {
	for i, child := range c.Children {
		if child == id {
			c.Children = append(c.Children[:i], c.Children[i+1:]...)
			return
		}
	}
}

// PredicateKind distinguishes relation predicates from constants.
// A constant is a unary predicate asserting the existence of a named
// individual; it is joined to relations by a shared line of identity,
// never written as a bare argument.
type PredicateKind string

const (
	KindRelation PredicateKind = "relation"
	KindConstant PredicateKind = "constant"
)

// Predicate is a relation node with numbered hooks 1..Arity.
// An unbound hook maps to the empty string; once connect has touched a
// hook it is bound to a LineOfIdentity id.
type Predicate struct {
	OID   string
	Label string
	Arity int

	// Hooks maps hook index (1-based) to the bound LineOfIdentity id,
	// or "" while unbound.
	Hooks map[int]string

	Kind PredicateKind

	// Functional marks single-valued function predicates. The
	// highest-numbered hook is the designated output.
	Functional bool
}

func (p *Predicate) ID() string { return p.OID }

// NewPredicate builds a predicate with all hooks unbound.
func NewPredicate(label string, arity int, kind PredicateKind, functional bool) *Predicate {
	hooks := make(map[int]string, arity)
	for i := 1; i <= arity; i++ {
		hooks[i] = ""
	}
	return &Predicate{
		OID:        NewID(),
		Label:      label,
		Arity:      arity,
		Hooks:      hooks,
		Kind:       kind,
		Functional: functional,
	}
}

// OutputHook returns the designated output hook index for functional
// predicates, or 0 for non-functional ones.
func (p *Predicate) OutputHook() int {
	if !p.Functional {
		return 0
	}
	return p.Arity
}

// LineOfIdentity represents one logical individual. It holds the set of
// ligature ids currently realizing it. Lines are never aliased: merging
// two lines deletes the loser and rewrites every reference.
type LineOfIdentity struct {
	OID string

	// Ligatures is the set of ligature ids attached to this line.
	Ligatures map[string]struct{}
}

func (l *LineOfIdentity) ID() string { return l.OID }

// NewLine builds a line with no ligatures.
func NewLine() *LineOfIdentity {
	return &LineOfIdentity{OID: NewID(), Ligatures: make(map[string]struct{})}
}

// Attachment identifies one hook on one predicate.
type Attachment struct {
	PredicateID string
	Hook        int
}

// Ligature records a single hook-joining event. Attachments is fixed at
// creation: it is the provenance of that one connect call and is not
// rewritten when lines are later merged by other ligatures.
type Ligature struct {
	OID string

	// LineID references the ligature's current line of identity. This is
	// the one mutable field: merges repoint it at the surviving line.
	LineID string

	// Attachments lists the joined (predicate, hook) pairs in the order
	// the connect call received them.
	Attachments []Attachment

	// TraversedCuts caches the Cut ids the connection logically crosses:
	// every cut on the walk from each attachment's context up to (but
	// excluding) their lowest common ancestor.
	TraversedCuts map[string]struct{}
}

func (g *Ligature) ID() string { return g.OID }

// NewLigature builds a ligature bound to the given line.
func NewLigature(lineID string, attachments []Attachment) *Ligature {
	copied := make([]Attachment, len(attachments))
	copy(copied, attachments)
	return &Ligature{
		OID:           NewID(),
		LineID:        lineID,
		Attachments:   copied,
		TraversedCuts: make(map[string]struct{}),
	}
}
