package rules

import "github.com/roach88/bullpen/internal/eg"

// Validator answers whether a transformation rule may be applied to the
// current graph. It holds no state beyond the registry reference.
type Validator struct {
	Reg *eg.Registry
}

// New builds a validator over reg.
func New(reg *eg.Registry) *Validator {
	return &Validator{Reg: reg}
}

// CanErase reports whether the selection may be erased. Erasure is
// licensed in positive contexts. Only the first selected element's
// context is inspected; the editor documents this simplification.
func (v *Validator) CanErase(selection []string) bool {
	if len(selection) == 0 {
		return false
	}
	parent := v.Reg.ParentOf(selection[0])
	if parent == "" {
		return false
	}
	return v.Reg.IsPositive(parent)
}

// CanInsert reports whether an arbitrary subgraph may be inserted into
// the context. Insertion is licensed in negative contexts only.
func (v *Validator) CanInsert(contextID string) bool {
	if v.Reg.Context(contextID) == nil {
		return false
	}
	return v.Reg.IsNegative(contextID)
}

// CanIterate reports whether the selection may be copied into target.
// The target must be a strict descendant of the selection's context:
// walking upward from target must reach that context before the root.
func (v *Validator) CanIterate(selection []string, targetID string) bool {
	if len(selection) == 0 || targetID == "" {
		return false
	}
	source := v.Reg.ParentOf(selection[0])
	if source == "" || source == targetID {
		return false
	}
	current := targetID
	for current != "" {
		if current == source {
			return true
		}
		current = v.Reg.ParentOf(current)
	}
	return false
}

// CanDeiterate reports whether the selection may be de-iterated against
// its original. Currently an unconditional pass once both selections
// are non-empty; full structural equivalence checking is not performed.
func (v *Validator) CanDeiterate(selection, original []string) bool {
	return len(selection) > 0 && len(original) > 0
}

// CanRemoveDoubleCut reports whether outerID is the outer cut of an
// exact double cut: a Cut whose only child is itself a Cut.
func (v *Validator) CanRemoveDoubleCut(outerID string) bool {
	outer := v.Reg.Context(outerID)
	if outer == nil || !outer.Cut || len(outer.Children) != 1 {
		return false
	}
	inner := v.Reg.Context(outer.Children[0])
	return inner != nil && inner.Cut
}

// CanApplyFunctionalPropertyRule reports whether the single-valuedness
// of functions licenses merging the two predicates' outputs: both must
// be functional with the same label and arity, agree on every input
// hook, and differ (or be unbound) on the output hook.
func (v *Validator) CanApplyFunctionalPropertyRule(pred1ID, pred2ID string) bool {
	p1 := v.Reg.Predicate(pred1ID)
	p2 := v.Reg.Predicate(pred2ID)
	if p1 == nil || p2 == nil || !p1.Functional || !p2.Functional {
		return false
	}
	if p1.Label != p2.Label || p1.Arity != p2.Arity {
		return false
	}
	out := p1.OutputHook()
	for i := 1; i < out; i++ {
		if p1.Hooks[i] != p2.Hooks[i] {
			return false
		}
	}
	if p1.Hooks[out] == p2.Hooks[out] && p1.Hooks[out] != "" {
		return false
	}
	return true
}
