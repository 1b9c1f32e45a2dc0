package eg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildNest registers a chain of cuts under the sheet and returns their
// ids outermost first.
func buildNest(t *testing.T, reg *Registry, depth int) []string {
	t.Helper()
	parent := reg.Sheet()
	var ids []string
	for i := 0; i < depth; i++ {
		cut := &Context{OID: NewID(), Cut: true}
		require.NoError(t, reg.Add(cut))
		parent.AddChild(cut.OID)
		ids = append(ids, cut.OID)
		parent = cut
	}
	return ids
}

func TestParentOf(t *testing.T) {
	reg := NewRegistry()
	cuts := buildNest(t, reg, 2)

	assert.Equal(t, "", reg.ParentOf(SheetID), "the sheet has no parent")
	assert.Equal(t, SheetID, reg.ParentOf(cuts[0]))
	assert.Equal(t, cuts[0], reg.ParentOf(cuts[1]))
	assert.Equal(t, "", reg.ParentOf("detached"))
}

func TestDepthAndPolarity(t *testing.T) {
	reg := NewRegistry()
	cuts := buildNest(t, reg, 3)

	assert.Equal(t, 0, reg.Depth(SheetID))
	assert.Equal(t, 1, reg.Depth(cuts[0]))
	assert.Equal(t, 2, reg.Depth(cuts[1]))
	assert.Equal(t, 3, reg.Depth(cuts[2]))

	assert.True(t, reg.IsPositive(SheetID), "the sheet is positive")
	assert.True(t, reg.IsNegative(cuts[0]), "a cut directly beneath the sheet is negative")
	assert.True(t, reg.IsPositive(cuts[1]))
	assert.True(t, reg.IsNegative(cuts[2]))
}

func TestAncestors(t *testing.T) {
	reg := NewRegistry()
	cuts := buildNest(t, reg, 2)

	chain := reg.Ancestors(cuts[1])
	assert.Equal(t, []string{cuts[1], cuts[0], SheetID}, chain)
}

func TestLCA(t *testing.T) {
	reg := NewRegistry()

	// Two sibling cuts under the sheet, one with a nested cut.
	left := &Context{OID: NewID(), Cut: true}
	right := &Context{OID: NewID(), Cut: true}
	nested := &Context{OID: NewID(), Cut: true}
	for _, ctx := range []*Context{left, right, nested} {
		require.NoError(t, reg.Add(ctx))
	}
	reg.Sheet().AddChild(left.OID)
	reg.Sheet().AddChild(right.OID)
	left.AddChild(nested.OID)

	assert.Equal(t, "", reg.LCA(nil))
	assert.Equal(t, left.OID, reg.LCA([]string{left.OID}))
	assert.Equal(t, SheetID, reg.LCA([]string{left.OID, right.OID}))
	assert.Equal(t, left.OID, reg.LCA([]string{nested.OID, left.OID}))
	assert.Equal(t, SheetID, reg.LCA([]string{nested.OID, right.OID}))
}

func TestContextChildHelpers(t *testing.T) {
	ctx := &Context{OID: NewID()}

	ctx.AddChild("a")
	ctx.AddChild("b")
	ctx.AddChild("a") // duplicate ignored
	assert.Equal(t, []string{"a", "b"}, ctx.Children)
	assert.True(t, ctx.HasChild("a"))

	ctx.RemoveChild("a")
	assert.Equal(t, []string{"b"}, ctx.Children)
	ctx.RemoveChild("missing")
	assert.Equal(t, []string{"b"}, ctx.Children)
}
