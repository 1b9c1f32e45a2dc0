package clif

import (
	"strings"
	"unicode"

	"github.com/roach88/bullpen/internal/editor"
	"github.com/roach88/bullpen/internal/eg"
)

// Node is the parse tree interface. Concrete kinds: *ConstantNode,
// *PredicateNode, *AndNode, *NotNode, *ExistsNode, *EqualityNode.
type Node interface {
	node()
}

// ConstantNode is a bare nullary constant like "cat" at top level.
type ConstantNode struct {
	Name        string
	PredicateID string
}

// ArgKind classifies a predicate argument.
type ArgKind string

const (
	ArgVariable ArgKind = "variable"
	ArgConstant ArgKind = "constant"
)

// Argument describes one parsed predicate argument and the entities it
// produced: the line bound to the enclosing predicate's hook, and for
// constants the unary constant predicate sharing that line.
type Argument struct {
	Kind        ArgKind
	Name        string
	Hook        int
	LineID      string
	PredicateID string // constant predicate id; empty for variables
}

// PredicateNode is an applied predicate like "(On x y)".
type PredicateNode struct {
	PredicateID string
	Name        string
	Arity       int
	Args        []Argument
}

// AndNode is a conjunction of sub-expressions in the same context.
type AndNode struct {
	Conjuncts []Node
}

// NotNode is a negation; physically, a Cut holding the body.
type NotNode struct {
	CutID string
	Body  Node
}

// ExistsNode is an existential quantifier. Quantification is
// structurally implicit in EG, so no scope entity is created; the
// listed variables are pre-bound to fresh lines.
type ExistsNode struct {
	Variables []string
	Body      Node
}

// EqualityNode unifies two variables onto one shared line.
type EqualityNode struct {
	Var1, Var2 string
	LineID     string
}

func (*ConstantNode) node()  {}
func (*PredicateNode) node() {}
func (*AndNode) node()       {}
func (*NotNode) node()       {}
func (*ExistsNode) node()    {}
func (*EqualityNode) node()  {}

// Result is a successful parse: the typed tree plus the binding
// metadata external renderers consume.
type Result struct {
	Root Node

	// Variables maps variable name → line of identity id.
	Variables map[string]string

	// Constants maps constant name → constant predicate id.
	Constants map[string]string

	// Bindings maps (predicate id, hook index) → line id for every hook
	// the parse bound.
	Bindings map[eg.Attachment]string
}

// Parser reads CLIF text into an existential graph through an editor.
// One parser instance serves one editor; state is reset per Parse call.
type Parser struct {
	ed        *editor.Editor
	variables map[string]string
	constants map[string]string
	bindings  map[eg.Attachment]string
}

// NewParser builds a parser that mutates ed's graph.
func NewParser(ed *editor.Editor) *Parser {
	return &Parser{ed: ed}
}

// Parse reads one CLIF expression into the graph rooted at the Sheet
// of Assertion. On failure the returned error is always a *ParseError
// (possibly wrapping a structural editor failure); the parser never
// panics.
func (p *Parser) Parse(src string) (*Result, error) {
	p.variables = make(map[string]string)
	p.constants = make(map[string]string)
	p.bindings = make(map[eg.Attachment]string)

	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	root, err := p.expression(tokens, eg.SheetID)
	if err != nil {
		return nil, asParseError(err)
	}
	return &Result{
		Root:      root,
		Variables: p.variables,
		Constants: p.constants,
		Bindings:  p.bindings,
	}, nil
}

// asParseError keeps the parse boundary contract: every failure that
// escapes Parse is a *ParseError.
func asParseError(err error) error {
	if pe, ok := err.(*ParseError); ok {
		return pe
	}
	return parseErrorf(err.Error())
}

func (p *Parser) expression(tokens []string, contextID string) (Node, error) {
	if len(tokens) == 0 {
		return nil, parseErrorf("empty expression")
	}
	if len(tokens) == 1 {
		return p.singleConstant(tokens[0], contextID)
	}
	if tokens[0] != "(" || tokens[len(tokens)-1] != ")" {
		return nil, parseErrorf("invalid expression: " + strings.Join(tokens, " "))
	}
	inner := tokens[1 : len(tokens)-1]
	if len(inner) == 0 {
		return nil, parseErrorf("empty parentheses")
	}
	switch inner[0] {
	case "exists":
		return p.exists(tokens, contextID)
	case "and":
		return p.and(tokens, contextID)
	case "not":
		return p.not(tokens, contextID)
	case "or":
		return nil, parseErrorf("disjunction is not supported")
	case "=":
		return p.equality(tokens)
	default:
		return p.predicate(tokens, contextID)
	}
}

// singleConstant parses a lone atom as a nullary proposition constant.
func (p *Parser) singleConstant(token, contextID string) (Node, error) {
	predID, err := p.ed.AddPredicate(capitalize(token), 0, contextID)
	if err != nil {
		return nil, err
	}
	p.constants[token] = predID
	return &ConstantNode{Name: token, PredicateID: predID}, nil
}

// predicate parses an applied predicate like "(On cat mat)". Each
// constant argument becomes (or reuses) its own unary constant
// predicate joined to the enclosing hook by a shared fresh line, so
// constants render as separate nodes rather than bare arguments. Each
// variable argument binds the hook to the line keyed by its name.
func (p *Parser) predicate(tokens []string, contextID string) (Node, error) {
	inner := tokens[1 : len(tokens)-1]
	name := inner[0]
	args := inner[1:]
	for _, arg := range args {
		if arg == "(" || arg == ")" {
			return nil, parseErrorf("predicate arguments must be atomic terms: " + name)
		}
	}

	predID, err := p.ed.AddPredicate(name, len(args), contextID)
	if err != nil {
		return nil, err
	}

	node := &PredicateNode{PredicateID: predID, Name: name, Arity: len(args)}
	for i, arg := range args {
		hook := i + 1
		if isConstantToken(arg) {
			constID, err := p.constantPredicate(arg, contextID)
			if err != nil {
				return nil, err
			}
			lineID, err := p.ed.NewLine()
			if err != nil {
				return nil, err
			}
			if lineID, err = p.ed.BindHook(constID, 1, lineID); err != nil {
				return nil, err
			}
			if lineID, err = p.ed.BindHook(predID, hook, lineID); err != nil {
				return nil, err
			}
			p.bindings[eg.Attachment{PredicateID: constID, Hook: 1}] = lineID
			p.bindings[eg.Attachment{PredicateID: predID, Hook: hook}] = lineID
			node.Args = append(node.Args, Argument{
				Kind: ArgConstant, Name: arg, Hook: hook, LineID: lineID, PredicateID: constID,
			})
			continue
		}
		lineID, err := p.lineForVariable(arg)
		if err != nil {
			return nil, err
		}
		if lineID, err = p.ed.BindHook(predID, hook, lineID); err != nil {
			return nil, err
		}
		p.variables[arg] = lineID
		p.bindings[eg.Attachment{PredicateID: predID, Hook: hook}] = lineID
		node.Args = append(node.Args, Argument{Kind: ArgVariable, Name: arg, Hook: hook, LineID: lineID})
	}
	return node, nil
}

// constantPredicate returns the unary constant predicate for the named
// constant, creating it on first use.
func (p *Parser) constantPredicate(name, contextID string) (string, error) {
	if id, ok := p.constants[name]; ok {
		return id, nil
	}
	id, err := p.ed.AddConstantPredicate(capitalize(name), contextID)
	if err != nil {
		return "", err
	}
	p.constants[name] = id
	return id, nil
}

// equality parses "(= x y)": the second variable's name is bound to the
// first variable's line. A direct shared-line merge, not a double-cut
// construction.
func (p *Parser) equality(tokens []string) (Node, error) {
	if len(tokens) != 5 {
		return nil, parseErrorf("equality requires exactly two arguments")
	}
	var1, var2 := tokens[2], tokens[3]
	lineID, err := p.lineForVariable(var1)
	if err != nil {
		return nil, err
	}
	p.variables[var2] = lineID
	return &EqualityNode{Var1: var1, Var2: var2, LineID: lineID}, nil
}

// exists parses "(exists (v...) body)". Lines are pre-created for every
// listed variable; the body is parsed in the same context because
// quantification has no physical node in EG.
func (p *Parser) exists(tokens []string, contextID string) (Node, error) {
	if len(tokens) < 5 || tokens[2] != "(" {
		return nil, parseErrorf("malformed 'exists' expression")
	}
	varEnd := matchingParen(tokens, 2)
	if varEnd < 0 {
		return nil, parseErrorf("malformed 'exists' expression")
	}
	variables := tokens[3:varEnd]
	if len(variables) == 0 {
		return nil, parseErrorf("'exists' requires at least one variable")
	}
	for _, v := range variables {
		if _, err := p.lineForVariable(v); err != nil {
			return nil, err
		}
	}
	body, err := p.expression(tokens[varEnd+1:len(tokens)-1], contextID)
	if err != nil {
		return nil, err
	}
	return &ExistsNode{Variables: variables, Body: body}, nil
}

// not parses "(not body)": negation is physical nesting, so a new cut
// becomes the context for the recursively parsed body.
func (p *Parser) not(tokens []string, contextID string) (Node, error) {
	if len(tokens) < 4 {
		return nil, parseErrorf("malformed 'not' expression")
	}
	cutID, err := p.ed.AddCut(contextID)
	if err != nil {
		return nil, err
	}
	body, err := p.expression(tokens[2:len(tokens)-1], cutID)
	if err != nil {
		return nil, err
	}
	return &NotNode{CutID: cutID, Body: body}, nil
}

// and parses "(and e...)": the body splits into balanced top-level
// sub-expressions, each parsed in the same context, order preserved.
func (p *Parser) and(tokens []string, contextID string) (Node, error) {
	if len(tokens) < 4 {
		return nil, parseErrorf("malformed 'and' expression")
	}
	inner := tokens[2 : len(tokens)-1]
	node := &AndNode{}
	i := 0
	for i < len(inner) {
		var sub []string
		if inner[i] == "(" {
			end := matchingParen(inner, i)
			if end < 0 {
				return nil, parseErrorf("unclosed parenthesis in 'and'")
			}
			sub = inner[i : end+1]
			i = end + 1
		} else {
			sub = inner[i : i+1]
			i++
		}
		conjunct, err := p.expression(sub, contextID)
		if err != nil {
			return nil, err
		}
		node.Conjuncts = append(node.Conjuncts, conjunct)
	}
	if len(node.Conjuncts) == 0 {
		return nil, parseErrorf("no valid conjuncts found in 'and' expression")
	}
	return node, nil
}

// lineForVariable returns the line keyed by the variable name, creating
// one on first use.
func (p *Parser) lineForVariable(name string) (string, error) {
	if id, ok := p.variables[name]; ok {
		return id, nil
	}
	id, err := p.ed.NewLine()
	if err != nil {
		return "", err
	}
	p.variables[name] = id
	return id, nil
}

// isConstantToken classifies an argument token. Lowercase-leading
// tokens are constants; a single uppercase letter is a variable. This
// is a documented simplification of CLIF typing, with one addition: a
// '?' prefix always marks a variable, since the translator emits ?vN
// names and the round trip must read them back as variables.
func isConstantToken(token string) bool {
	if token == "" || strings.HasPrefix(token, "?") {
		return false
	}
	runes := []rune(token)
	if len(runes) == 1 && unicode.IsUpper(runes[0]) {
		return false
	}
	return unicode.IsLower(runes[0])
}

// capitalize upper-cases the first rune, matching how constant labels
// are displayed ("cat" → "Cat").
func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
