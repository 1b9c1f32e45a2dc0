package editor

import (
	"github.com/roach88/bullpen/internal/eg"
	"github.com/roach88/bullpen/internal/rules"
)

// Editor mutates one existential graph. Not safe for concurrent use;
// callers serialize all mutating calls.
type Editor struct {
	Reg   *eg.Registry
	Check *rules.Validator
}

// New builds an editor over a fresh graph holding only the Sheet of
// Assertion.
func New() *Editor {
	reg := eg.NewRegistry()
	return &Editor{Reg: reg, Check: rules.New(reg)}
}

// NewWithRegistry builds an editor over an existing graph, e.g. one
// reloaded from a snapshot.
func NewWithRegistry(reg *eg.Registry) *Editor {
	return &Editor{Reg: reg, Check: rules.New(reg)}
}

// parentContext resolves parentID to a context or fails structurally.
func (e *Editor) parentContext(parentID string) (*eg.Context, error) {
	ctx := e.Reg.Context(parentID)
	if ctx == nil {
		return nil, eg.NewStructuralError(eg.ErrCodeMissingParent, "parent context not found or invalid: "+parentID)
	}
	return ctx, nil
}

// AddCut creates a new cut under parentID and returns its id.
func (e *Editor) AddCut(parentID string) (string, error) {
	parent, err := e.parentContext(parentID)
	if err != nil {
		return "", err
	}
	cut := &eg.Context{OID: eg.NewID(), Cut: true}
	if err := e.Reg.Add(cut); err != nil {
		return "", err
	}
	parent.AddChild(cut.OID)
	return cut.OID, nil
}

// AddPredicate creates a relation predicate with the given arity under
// parentID. All hooks start unbound.
func (e *Editor) AddPredicate(label string, arity int, parentID string) (string, error) {
	return e.addPredicate(label, arity, parentID, eg.KindRelation, false)
}

// AddFunctionalPredicate creates a functional predicate; its highest
// hook is the designated output.
func (e *Editor) AddFunctionalPredicate(label string, arity int, parentID string) (string, error) {
	return e.addPredicate(label, arity, parentID, eg.KindRelation, true)
}

func (e *Editor) addPredicate(label string, arity int, parentID string, kind eg.PredicateKind, functional bool) (string, error) {
	parent, err := e.parentContext(parentID)
	if err != nil {
		return "", err
	}
	pred := eg.NewPredicate(label, arity, kind, functional)
	if err := e.Reg.Add(pred); err != nil {
		return "", err
	}
	parent.AddChild(pred.OID)
	return pred.OID, nil
}

// AddConstantPredicate creates a unary constant-kind predicate with an
// unbound hook. Callers join it to the graph themselves; AddConstant is
// the variant that immediately asserts it on a fresh line.
func (e *Editor) AddConstantPredicate(label, parentID string) (string, error) {
	return e.addPredicate(label, 1, parentID, eg.KindConstant, false)
}

// NewLine allocates a standalone line of identity and returns its id.
// The parser uses this to pre-create lines for quantified variables.
func (e *Editor) NewLine() (string, error) {
	line := eg.NewLine()
	if err := e.Reg.Add(line); err != nil {
		return "", err
	}
	return line.OID, nil
}

// AddConstant asserts the existence of a named individual: a unary
// constant-kind predicate whose single hook is immediately connected to
// a fresh standalone line.
func (e *Editor) AddConstant(name, parentID string) (string, error) {
	predID, err := e.addPredicate(name, 1, parentID, eg.KindConstant, false)
	if err != nil {
		return "", err
	}
	if _, err := e.Connect([]eg.Attachment{{PredicateID: predID, Hook: 1}}); err != nil {
		return "", err
	}
	return predID, nil
}

// EraseConstant removes a standalone constant: its ligature, its line,
// and the predicate itself. Refuses with a rule error if the constant's
// line is shared with anything else.
func (e *Editor) EraseConstant(predicateID string) error {
	pred := e.Reg.Predicate(predicateID)
	if pred == nil || pred.Kind != eg.KindConstant {
		return eg.NewStructuralError(eg.ErrCodeMissingEntity, "target is not a constant: "+predicateID)
	}
	if lineID := pred.Hooks[1]; lineID != "" {
		line := e.Reg.Line(lineID)
		if line == nil || len(line.Ligatures) != 1 {
			return eg.NewRuleError(eg.RuleEraseConstant, "cannot erase constant; it is connected to other predicates")
		}
		var lig *eg.Ligature
		for ligID := range line.Ligatures {
			lig = e.Reg.Ligature(ligID)
		}
		if lig == nil || len(lig.Attachments) != 1 {
			return eg.NewRuleError(eg.RuleEraseConstant, "cannot erase constant; it is connected to other predicates")
		}
		e.Reg.Remove(lig.OID)
		e.Reg.Remove(lineID)
	}
	if parentID := e.Reg.ParentOf(predicateID); parentID != "" {
		e.Reg.Context(parentID).RemoveChild(predicateID)
	}
	e.Reg.Remove(predicateID)
	return nil
}

// ApplyTotalFunctionRule materializes a total function application: a
// functional predicate whose input hooks bind the given lines and whose
// output hook is connected to a fresh line. Returns the predicate id.
func (e *Editor) ApplyTotalFunctionRule(label string, arity int, inputLineIDs []string, parentID string) (string, error) {
	predID, err := e.addPredicate(label, arity, parentID, eg.KindRelation, true)
	if err != nil {
		return "", err
	}
	for i, lineID := range inputLineIDs {
		if i+1 >= arity {
			break
		}
		if _, err := e.BindHook(predID, i+1, lineID); err != nil {
			return "", err
		}
	}
	if _, err := e.Connect([]eg.Attachment{{PredicateID: predID, Hook: arity}}); err != nil {
		return "", err
	}
	return predID, nil
}
