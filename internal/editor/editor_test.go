package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bullpen/internal/eg"
)

func countLines(reg *eg.Registry) int {
	n := 0
	for _, obj := range reg.All() {
		if _, ok := obj.(*eg.LineOfIdentity); ok {
			n++
		}
	}
	return n
}

func TestAddPredicateRequiresValidParent(t *testing.T) {
	ed := New()

	_, err := ed.AddPredicate("P", 1, "no-such-context")
	require.Error(t, err)
	assert.True(t, eg.IsStructural(err))

	id, err := ed.AddPredicate("P", 1, eg.SheetID)
	require.NoError(t, err)
	assert.True(t, ed.Reg.Sheet().HasChild(id))
	assert.Equal(t, "", ed.Reg.Predicate(id).Hooks[1], "hooks start unbound")
}

func TestConnectSharesOneLine(t *testing.T) {
	ed := New()
	p, err := ed.AddPredicate("P", 1, eg.SheetID)
	require.NoError(t, err)
	q, err := ed.AddPredicate("Q", 1, eg.SheetID)
	require.NoError(t, err)

	ligID, err := ed.Connect([]eg.Attachment{{PredicateID: p, Hook: 1}, {PredicateID: q, Hook: 1}})
	require.NoError(t, err)

	line := ed.Reg.Predicate(p).Hooks[1]
	require.NotEmpty(t, line)
	assert.Equal(t, line, ed.Reg.Predicate(q).Hooks[1], "both hooks share one line")

	lig := ed.Reg.Ligature(ligID)
	require.NotNil(t, lig)
	assert.Equal(t, line, lig.LineID)
	assert.Equal(t, []eg.Attachment{{PredicateID: p, Hook: 1}, {PredicateID: q, Hook: 1}}, lig.Attachments,
		"attachments record the input pairs in input order")
}

func TestConnectIsIdempotentForLineIdentity(t *testing.T) {
	ed := New()
	p, _ := ed.AddPredicate("P", 1, eg.SheetID)
	q, _ := ed.AddPredicate("Q", 1, eg.SheetID)
	pairs := []eg.Attachment{{PredicateID: p, Hook: 1}, {PredicateID: q, Hook: 1}}

	_, err := ed.Connect(pairs)
	require.NoError(t, err)
	lineBefore := ed.Reg.Predicate(p).Hooks[1]

	_, err = ed.Connect(pairs)
	require.NoError(t, err)

	assert.Equal(t, lineBefore, ed.Reg.Predicate(p).Hooks[1], "repeat connect keeps the same line")
	assert.Equal(t, 1, countLines(ed.Reg), "no duplicate lines for identical bindings")
	line := ed.Reg.Line(lineBefore)
	assert.Len(t, line.Ligatures, 2, "each connect call records its own ligature")
}

func TestConnectRejectsEmptyInput(t *testing.T) {
	ed := New()
	_, err := ed.Connect(nil)
	require.Error(t, err)
	assert.True(t, eg.IsStructural(err))
}

func TestConnectSkipsMissingPredicates(t *testing.T) {
	ed := New()
	p, _ := ed.AddPredicate("P", 1, eg.SheetID)

	ligID, err := ed.Connect([]eg.Attachment{
		{PredicateID: "ghost", Hook: 1},
		{PredicateID: p, Hook: 1},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, ed.Reg.Predicate(p).Hooks[1])
	assert.Len(t, ed.Reg.Ligature(ligID).Attachments, 2, "skipped pairs still appear in the attachment record")
}

func TestMergeLinesLeavesNoDanglingReference(t *testing.T) {
	ed := New()
	p, _ := ed.AddPredicate("P", 1, eg.SheetID)
	q, _ := ed.AddPredicate("Q", 1, eg.SheetID)

	// Bind each hook to its own line first.
	_, err := ed.Connect([]eg.Attachment{{PredicateID: p, Hook: 1}})
	require.NoError(t, err)
	_, err = ed.Connect([]eg.Attachment{{PredicateID: q, Hook: 1}})
	require.NoError(t, err)

	primary := ed.Reg.Predicate(p).Hooks[1]
	other := ed.Reg.Predicate(q).Hooks[1]
	require.NotEqual(t, primary, other)

	// Joining merges the later line into the primary.
	_, err = ed.Connect([]eg.Attachment{{PredicateID: p, Hook: 1}, {PredicateID: q, Hook: 1}})
	require.NoError(t, err)

	assert.Nil(t, ed.Reg.Get(other), "the losing line is deleted")
	assert.Equal(t, primary, ed.Reg.Predicate(q).Hooks[1], "hooks are rewritten to the primary")
	for _, obj := range ed.Reg.All() {
		if lig, ok := obj.(*eg.Ligature); ok {
			assert.NotEqual(t, other, lig.LineID, "no surviving ligature references the merged line")
		}
	}
}

func TestConnectComputesTraversedCuts(t *testing.T) {
	ed := New()
	p, _ := ed.AddPredicate("P", 1, eg.SheetID)
	outer, err := ed.AddCut(eg.SheetID)
	require.NoError(t, err)
	inner, err := ed.AddCut(outer)
	require.NoError(t, err)
	q, _ := ed.AddPredicate("Q", 1, inner)

	ligID, err := ed.Connect([]eg.Attachment{{PredicateID: p, Hook: 1}, {PredicateID: q, Hook: 1}})
	require.NoError(t, err)

	lig := ed.Reg.Ligature(ligID)
	assert.Len(t, lig.TraversedCuts, 2)
	assert.Contains(t, lig.TraversedCuts, outer)
	assert.Contains(t, lig.TraversedCuts, inner)
}

func TestBindHookMergesIntoGivenLine(t *testing.T) {
	ed := New()
	p, _ := ed.AddPredicate("P", 1, eg.SheetID)

	first, err := ed.NewLine()
	require.NoError(t, err)
	_, err = ed.BindHook(p, 1, first)
	require.NoError(t, err)

	second, err := ed.NewLine()
	require.NoError(t, err)
	got, err := ed.BindHook(p, 1, second)
	require.NoError(t, err)

	assert.Equal(t, second, got, "the given line survives the merge")
	assert.Nil(t, ed.Reg.Get(first), "the previously bound line is merged away")
	assert.Equal(t, second, ed.Reg.Predicate(p).Hooks[1])
}

func TestInsertAndRemoveDoubleCutIsANetNoOp(t *testing.T) {
	ed := New()
	p, _ := ed.AddPredicate("P", 0, eg.SheetID)

	outer, inner, err := ed.InsertDoubleCut([]string{p}, eg.SheetID)
	require.NoError(t, err)

	assert.False(t, ed.Reg.Sheet().HasChild(p), "selection moved out of the sheet")
	assert.True(t, ed.Reg.Context(inner).HasChild(p), "selection moved into the inner cut")
	assert.Equal(t, []string{inner}, ed.Reg.Context(outer).Children)

	require.NoError(t, ed.RemoveDoubleCut(outer))

	assert.True(t, ed.Reg.Sheet().HasChild(p), "selection restored to its original parent")
	assert.Nil(t, ed.Reg.Get(outer))
	assert.Nil(t, ed.Reg.Get(inner))
	assert.Equal(t, 2, ed.Reg.Len(), "only the sheet and the predicate remain")
}

func TestRemoveDoubleCutRejectsWrongShape(t *testing.T) {
	ed := New()
	cut, _ := ed.AddCut(eg.SheetID)

	err := ed.RemoveDoubleCut(cut)
	require.Error(t, err)
	assert.True(t, eg.IsRuleViolation(err), "a lone cut is not a double cut")

	// A cut whose only child is a predicate is also not a double cut.
	cut2, _ := ed.AddCut(eg.SheetID)
	_, err = ed.AddPredicate("P", 0, cut2)
	require.NoError(t, err)
	assert.True(t, eg.IsRuleViolation(ed.RemoveDoubleCut(cut2)))
}

func TestIterateCopiesShareLines(t *testing.T) {
	ed := New()
	q, _ := ed.AddPredicate("Q", 1, eg.SheetID)
	_, err := ed.Connect([]eg.Attachment{{PredicateID: q, Hook: 1}})
	require.NoError(t, err)
	line := ed.Reg.Predicate(q).Hooks[1]

	cut, _ := ed.AddCut(eg.SheetID)
	require.NoError(t, ed.Iterate([]string{q}, cut))

	children := ed.Reg.Context(cut).Children
	require.Len(t, children, 1)
	clone := ed.Reg.Predicate(children[0])
	require.NotNil(t, clone)
	assert.NotEqual(t, q, clone.OID, "the copy has a fresh id")
	assert.Equal(t, "Q", clone.Label)
	assert.Equal(t, line, clone.Hooks[1], "the copy's hook references the same line id")
	assert.True(t, ed.Reg.Sheet().HasChild(q), "the original stays put")
}

func TestIterateCopiesNestedSubtrees(t *testing.T) {
	ed := New()
	src, _ := ed.AddCut(eg.SheetID)
	p, _ := ed.AddPredicate("P", 0, src)
	target, _ := ed.AddCut(src)

	require.NoError(t, ed.Iterate([]string{p}, target))

	// Copying a whole cut gives the nested children fresh ids too.
	outer, _ := ed.AddCut(eg.SheetID)
	innerPred, _ := ed.AddPredicate("R", 0, outer)
	dest, _ := ed.AddCut(outer)
	require.NoError(t, ed.Iterate([]string{outer}, dest))

	copies := ed.Reg.Context(dest).Children
	require.Len(t, copies, 1)
	cutCopy := ed.Reg.Context(copies[0])
	require.NotNil(t, cutCopy)
	assert.NotEqual(t, outer, cutCopy.OID)
	for _, childID := range cutCopy.Children {
		assert.NotEqual(t, innerPred, childID, "nested children get fresh ids")
		assert.NotEqual(t, dest, childID)
	}
}

func TestIterateRejectsNonDescendantTarget(t *testing.T) {
	ed := New()
	cut, _ := ed.AddCut(eg.SheetID)
	q, _ := ed.AddPredicate("Q", 0, cut)

	// Target is the selection's own context.
	err := ed.Iterate([]string{q}, cut)
	assert.True(t, eg.IsRuleViolation(err))

	// Target outside the selection's context.
	sibling, _ := ed.AddCut(eg.SheetID)
	err = ed.Iterate([]string{q}, sibling)
	assert.True(t, eg.IsRuleViolation(err))
}

func TestAddConstantAssertsOnFreshLine(t *testing.T) {
	ed := New()
	c, err := ed.AddConstant("Tully", eg.SheetID)
	require.NoError(t, err)

	pred := ed.Reg.Predicate(c)
	require.NotNil(t, pred)
	assert.Equal(t, eg.KindConstant, pred.Kind)
	assert.Equal(t, 1, pred.Arity)

	line := ed.Reg.Line(pred.Hooks[1])
	require.NotNil(t, line, "the constant's hook is connected immediately")
	assert.Len(t, line.Ligatures, 1)
}

func TestEraseConstantRemovesEverything(t *testing.T) {
	ed := New()
	c, _ := ed.AddConstant("Tully", eg.SheetID)

	require.NoError(t, ed.EraseConstant(c))
	assert.Equal(t, 1, ed.Reg.Len(), "only the sheet remains")
	assert.Empty(t, ed.Reg.Sheet().Children)
}

func TestEraseConstantRefusesWhenShared(t *testing.T) {
	ed := New()
	c, _ := ed.AddConstant("Tully", eg.SheetID)
	p, _ := ed.AddPredicate("Orator", 1, eg.SheetID)
	_, err := ed.Connect([]eg.Attachment{{PredicateID: c, Hook: 1}, {PredicateID: p, Hook: 1}})
	require.NoError(t, err)

	sizeBefore := ed.Reg.Len()
	err = ed.EraseConstant(c)
	require.Error(t, err)
	assert.True(t, eg.IsRuleViolation(err))
	assert.Contains(t, err.Error(), "connected to other predicates")
	assert.Equal(t, sizeBefore, ed.Reg.Len(), "a refused erase leaves the graph unmodified")
	assert.NotNil(t, ed.Reg.Predicate(c))
}

func TestEraseConstantRejectsNonConstant(t *testing.T) {
	ed := New()
	p, _ := ed.AddPredicate("P", 1, eg.SheetID)
	err := ed.EraseConstant(p)
	require.Error(t, err)
	assert.True(t, eg.IsStructural(err))
}

func TestApplyFunctionalPropertyRuleMergesOutputs(t *testing.T) {
	ed := New()
	input, _ := ed.NewLine()

	f1, _ := ed.AddFunctionalPredicate("father", 2, eg.SheetID)
	f2, _ := ed.AddFunctionalPredicate("father", 2, eg.SheetID)
	_, err := ed.BindHook(f1, 1, input)
	require.NoError(t, err)
	_, err = ed.BindHook(f2, 1, input)
	require.NoError(t, err)
	_, err = ed.Connect([]eg.Attachment{{PredicateID: f1, Hook: 2}})
	require.NoError(t, err)
	_, err = ed.Connect([]eg.Attachment{{PredicateID: f2, Hook: 2}})
	require.NoError(t, err)
	require.NotEqual(t, ed.Reg.Predicate(f1).Hooks[2], ed.Reg.Predicate(f2).Hooks[2])

	require.NoError(t, ed.ApplyFunctionalPropertyRule(f1, f2))
	assert.Equal(t, ed.Reg.Predicate(f1).Hooks[2], ed.Reg.Predicate(f2).Hooks[2],
		"single-valuedness merges the outputs")
}

func TestApplyFunctionalPropertyRuleRefusals(t *testing.T) {
	ed := New()
	input, _ := ed.NewLine()

	f1, _ := ed.AddFunctionalPredicate("father", 2, eg.SheetID)
	g, _ := ed.AddFunctionalPredicate("mother", 2, eg.SheetID)
	_, _ = ed.BindHook(f1, 1, input)
	_, _ = ed.BindHook(g, 1, input)

	err := ed.ApplyFunctionalPropertyRule(f1, g)
	assert.True(t, eg.IsRuleViolation(err), "different labels refuse")

	rel, _ := ed.AddPredicate("father", 2, eg.SheetID)
	err = ed.ApplyFunctionalPropertyRule(f1, rel)
	assert.True(t, eg.IsRuleViolation(err), "non-functional operand refuses")
}

func TestApplyTotalFunctionRule(t *testing.T) {
	ed := New()
	x, _ := ed.NewLine()

	f, err := ed.ApplyTotalFunctionRule("successor", 2, []string{x}, eg.SheetID)
	require.NoError(t, err)

	pred := ed.Reg.Predicate(f)
	require.NotNil(t, pred)
	assert.True(t, pred.Functional)
	assert.Equal(t, x, pred.Hooks[1], "input hook binds the given line")
	out := pred.Hooks[2]
	assert.NotEmpty(t, out, "output hook binds a fresh line")
	assert.NotEqual(t, x, out)
}
