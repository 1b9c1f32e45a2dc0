package editor

import "github.com/roach88/bullpen/internal/eg"

// InsertDoubleCut wraps an empty double negation around the selection.
// It creates an outer cut and a nested inner cut; when a selection is
// given, the cuts are created in the selection's own context and the
// selected objects are reparented into the inner cut. Always legal.
// Returns the outer and inner cut ids.
func (e *Editor) InsertDoubleCut(selection []string, parentID string) (string, string, error) {
	if len(selection) > 0 {
		if p := e.Reg.ParentOf(selection[0]); p != "" {
			parentID = p
		}
	}
	outerID, err := e.AddCut(parentID)
	if err != nil {
		return "", "", err
	}
	innerID, err := e.AddCut(outerID)
	if err != nil {
		return "", "", err
	}
	if len(selection) > 0 {
		parent := e.Reg.Context(parentID)
		inner := e.Reg.Context(innerID)
		for _, id := range selection {
			if parent.HasChild(id) {
				parent.RemoveChild(id)
			}
			inner.AddChild(id)
		}
	}
	return outerID, innerID, nil
}

// RemoveDoubleCut erases an exact double cut: the inner cut's children
// are promoted into the outer cut's parent and both cuts are deleted.
// The inverse of InsertDoubleCut.
func (e *Editor) RemoveDoubleCut(outerID string) error {
	if !e.Check.CanRemoveDoubleCut(outerID) {
		return eg.NewRuleError(eg.RuleRemoveDoubleCut, "not a valid double cut: "+outerID)
	}
	outer := e.Reg.Context(outerID)
	innerID := outer.Children[0]
	inner := e.Reg.Context(innerID)
	parentID := e.Reg.ParentOf(outerID)
	parent := e.Reg.Context(parentID)
	if parent == nil {
		return eg.NewStructuralError(eg.ErrCodeMissingParent, "double cut has no parent context")
	}
	for _, childID := range append([]string(nil), inner.Children...) {
		inner.RemoveChild(childID)
		parent.AddChild(childID)
	}
	parent.RemoveChild(outerID)
	e.Reg.Remove(outerID)
	e.Reg.Remove(innerID)
	return nil
}

// Iterate deep-copies the selection into a target context nested inside
// the selection's own context. Copies get fresh ids throughout, but
// every copied hook keeps its existing line-of-identity binding: the
// copy shares identity lines with the original, which is what makes
// iteration a sound rule.
func (e *Editor) Iterate(selection []string, targetID string) error {
	if !e.Check.CanIterate(selection, targetID) {
		return eg.NewRuleError(eg.RuleIterate, "iteration target must be nested inside the selection's context")
	}
	target := e.Reg.Context(targetID)
	for _, id := range selection {
		copyID, err := e.copySubtree(id)
		if err != nil {
			return err
		}
		target.AddChild(copyID)
	}
	return nil
}

// copySubtree clones one entity (and, for contexts, its whole subtree)
// under fresh ids, registering every clone. Hook bindings are preserved
// as-is; lines and ligatures are shared, never copied.
func (e *Editor) copySubtree(id string) (string, error) {
	switch obj := e.Reg.Get(id).(type) {
	case *eg.Predicate:
		clone := &eg.Predicate{
			OID:        eg.NewID(),
			Label:      obj.Label,
			Arity:      obj.Arity,
			Hooks:      make(map[int]string, len(obj.Hooks)),
			Kind:       obj.Kind,
			Functional: obj.Functional,
		}
		for hook, lineID := range obj.Hooks {
			clone.Hooks[hook] = lineID
		}
		if err := e.Reg.Add(clone); err != nil {
			return "", err
		}
		return clone.OID, nil
	case *eg.Context:
		clone := &eg.Context{OID: eg.NewID(), Cut: obj.Cut}
		if err := e.Reg.Add(clone); err != nil {
			return "", err
		}
		for _, childID := range obj.Children {
			childCopy, err := e.copySubtree(childID)
			if err != nil {
				return "", err
			}
			clone.AddChild(childCopy)
		}
		return clone.OID, nil
	case nil:
		return "", eg.NewStructuralError(eg.ErrCodeMissingEntity, "cannot iterate missing entity: "+id)
	default:
		return "", eg.NewStructuralError(eg.ErrCodeMissingEntity, "cannot iterate entity kind of "+id)
	}
}

// ApplyFunctionalPropertyRule encodes single-valuedness of functions:
// two applications of the same function to identical inputs must yield
// the same individual, so the two output hooks are connected and their
// lines merged.
func (e *Editor) ApplyFunctionalPropertyRule(pred1ID, pred2ID string) error {
	if !e.Check.CanApplyFunctionalPropertyRule(pred1ID, pred2ID) {
		return eg.NewRuleError(eg.RuleFunctionalProperty, "functional property rule requires matching functional predicates with differing outputs")
	}
	out := e.Reg.Predicate(pred1ID).OutputHook()
	_, err := e.Connect([]eg.Attachment{
		{PredicateID: pred1ID, Hook: out},
		{PredicateID: pred2ID, Hook: out},
	})
	return err
}
