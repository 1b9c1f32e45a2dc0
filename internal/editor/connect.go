package editor

import "github.com/roach88/bullpen/internal/eg"

// Connect joins the given hooks into one shared line of identity.
//
// Primary line selection scans the pairs in argument order: the first
// hook already bound supplies the primary line; if none are bound a
// fresh line is allocated. Every other bound line encountered is merged
// into the primary. The joining event is recorded as a new Ligature
// whose attachments are exactly the input pairs, in input order,
// regardless of any merging. Pairs referencing a missing predicate are
// skipped but still appear in the attachment record.
//
// Connect is idempotent with respect to line identity: calling it twice
// on the same hooks creates no additional lines, though each call
// records its own ligature.
func (e *Editor) Connect(pairs []eg.Attachment) (string, error) {
	if len(pairs) == 0 {
		return "", eg.NewStructuralError(eg.ErrCodeEmptyInput, "connect requires at least one (predicate, hook) pair")
	}

	primary := ""
	for _, pair := range pairs {
		if pred := e.Reg.Predicate(pair.PredicateID); pred != nil && pred.Hooks[pair.Hook] != "" {
			primary = pred.Hooks[pair.Hook]
			break
		}
	}
	if primary == "" {
		line := eg.NewLine()
		if err := e.Reg.Add(line); err != nil {
			return "", err
		}
		primary = line.OID
	}

	for _, pair := range pairs {
		pred := e.Reg.Predicate(pair.PredicateID)
		if pred == nil {
			continue
		}
		if existing := pred.Hooks[pair.Hook]; existing != "" && existing != primary {
			e.mergeLines(primary, existing)
		}
		pred.Hooks[pair.Hook] = primary
	}

	lig := eg.NewLigature(primary, pairs)
	if err := e.Reg.Add(lig); err != nil {
		return "", err
	}
	e.Reg.Line(primary).Ligatures[lig.OID] = struct{}{}
	e.computeTraversedCuts(lig)
	return lig.OID, nil
}

// BindHook binds one hook to a specific line of identity, recording the
// binding as a single-attachment ligature. If the hook is already bound
// to a different line, that line is merged into lineID so the given
// line survives. Returns the line the hook ends up on.
//
// The parser uses this to tie predicate hooks to the lines it keys by
// variable name; Connect cannot express "use this particular line".
func (e *Editor) BindHook(predicateID string, hook int, lineID string) (string, error) {
	pred := e.Reg.Predicate(predicateID)
	if pred == nil {
		return "", eg.NewStructuralError(eg.ErrCodeMissingEntity, "predicate not found: "+predicateID)
	}
	line := e.Reg.Line(lineID)
	if line == nil {
		return "", eg.NewStructuralError(eg.ErrCodeMissingEntity, "line of identity not found: "+lineID)
	}
	if existing := pred.Hooks[hook]; existing != "" && existing != lineID {
		e.mergeLines(lineID, existing)
	}
	pred.Hooks[hook] = lineID

	lig := eg.NewLigature(lineID, []eg.Attachment{{PredicateID: predicateID, Hook: hook}})
	if err := e.Reg.Add(lig); err != nil {
		return "", err
	}
	line.Ligatures[lig.OID] = struct{}{}
	return lineID, nil
}

// mergeLines folds the line other into primary: every ligature on other
// is repointed at primary, every predicate hook in the registry bound
// to other is rewritten to primary, and other is deleted. Afterwards no
// entity anywhere references other.
func (e *Editor) mergeLines(primaryID, otherID string) {
	primary := e.Reg.Line(primaryID)
	other := e.Reg.Line(otherID)
	if primary == nil || other == nil || primaryID == otherID {
		return
	}
	for ligID := range other.Ligatures {
		if lig := e.Reg.Ligature(ligID); lig != nil {
			lig.LineID = primaryID
			primary.Ligatures[ligID] = struct{}{}
		}
	}
	for _, pred := range e.Reg.Predicates() {
		for hook, lineID := range pred.Hooks {
			if lineID == otherID {
				pred.Hooks[hook] = primaryID
			}
		}
	}
	e.Reg.Remove(otherID)
}

// computeTraversedCuts caches the cuts the ligature's connection
// logically crosses: for each attachment, every cut on the walk from
// its predicate's context up to (excluding) the lowest common ancestor
// of all attachment contexts.
func (e *Editor) computeTraversedCuts(lig *eg.Ligature) {
	if len(lig.Attachments) < 2 {
		return
	}
	var contexts []string
	for _, att := range lig.Attachments {
		if parent := e.Reg.ParentOf(att.PredicateID); parent != "" {
			contexts = append(contexts, parent)
		}
	}
	lca := e.Reg.LCA(contexts)
	for _, start := range contexts {
		current := start
		for current != "" && current != lca {
			if ctx := e.Reg.Context(current); ctx != nil && ctx.Cut {
				lig.TraversedCuts[current] = struct{}{}
			}
			current = e.Reg.ParentOf(current)
		}
	}
}
