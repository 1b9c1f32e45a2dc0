package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/bullpen/internal/clif"
	"github.com/roach88/bullpen/internal/editor"
	"github.com/roach88/bullpen/internal/eg"
	"github.com/roach88/bullpen/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "bullpen.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func buildSampleGraph(t *testing.T, ed *editor.Editor) {
	t.Helper()
	p, err := ed.AddPredicate("P", 1, eg.SheetID)
	require.NoError(t, err)
	cut, err := ed.AddCut(eg.SheetID)
	require.NoError(t, err)
	q, err := ed.AddPredicate("Q", 1, cut)
	require.NoError(t, err)
	_, err = ed.Connect([]eg.Attachment{{PredicateID: p, Hook: 1}, {PredicateID: q, Hook: 1}})
	require.NoError(t, err)
}

func TestSnapshotRoundTripPreservesCanonicalForm(t *testing.T) {
	ed := editor.New()
	buildSampleGraph(t, ed)
	want := clif.NewTranslator(ed.Reg).Translate()
	require.NotEmpty(t, want)

	data, err := EncodeSnapshot(ed.Reg)
	require.NoError(t, err)

	reg, err := DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, want, clif.NewTranslator(reg).Translate(),
		"replaying records in creation order preserves canonical translation")
	assert.Equal(t, ed.Reg.Len(), reg.Len())
}

func TestSnapshotEncodingIsDeterministic(t *testing.T) {
	ed := editor.New()
	buildSampleGraph(t, ed)

	first, err := EncodeSnapshot(ed.Reg)
	require.NoError(t, err)
	second, err := EncodeSnapshot(ed.Reg)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDecodeSnapshotErrors(t *testing.T) {
	_, err := DecodeSnapshot([]byte("{not json"))
	require.Error(t, err)

	_, err = DecodeSnapshot([]byte(`[{"kind":"widget","id":"w1"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown snapshot record kind "widget"`)

	_, err = DecodeSnapshot([]byte(`[{"kind":"predicate","id":"p1","hooks":{"one":"l1"}}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad hook index")
}

func TestSaveAndLoadFolio(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	folio := session.NewFolio("Peirce")
	ed, err := folio.NewGraph("alpha")
	require.NoError(t, err)
	buildSampleGraph(t, ed)
	want := clif.NewTranslator(ed.Reg).Translate()

	sess, err := folio.NewSession("alpha")
	require.NoError(t, err)
	sess.Record("add_predicate", map[string]string{"label": "P"})
	sess.Record("connect", nil)

	require.NoError(t, s.SaveFolio(ctx, folio))

	loaded, err := s.LoadFolio(ctx, "Peirce")
	require.NoError(t, err)
	assert.Equal(t, folio.ID, loaded.ID)
	assert.Equal(t, []string{"alpha"}, loaded.GraphNames())

	graph := loaded.Graph("alpha")
	require.NotNil(t, graph)
	assert.Equal(t, want, clif.NewTranslator(graph.Reg).Translate(),
		"a loaded graph translates exactly as it did before saving")

	sessions := loaded.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, sess.ID, sessions[0].ID)
	assert.Equal(t, "alpha", sessions[0].GraphName)
	require.Len(t, sessions[0].History, 2)
	assert.Equal(t, "add_predicate", sessions[0].History[0].Name)
	assert.Equal(t, "P", sessions[0].History[0].Params["label"])
}

func TestLoadFolioNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.LoadFolio(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSaveFolioReplacesPreviousState(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	folio := session.NewFolio("Scratch")
	ed, err := folio.NewGraph("work")
	require.NoError(t, err)
	require.NoError(t, s.SaveFolio(ctx, folio))

	// Mutate and save again; the reload must reflect the latest state.
	_, err = ed.AddPredicate("Raining", 0, eg.SheetID)
	require.NoError(t, err)
	require.NoError(t, s.SaveFolio(ctx, folio))

	loaded, err := s.LoadFolio(ctx, "Scratch")
	require.NoError(t, err)
	assert.Equal(t, "Raining", clif.NewTranslator(loaded.Graph("work").Reg).Translate())
}

func TestFolioNames(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveFolio(ctx, session.NewFolio("Zeta")))
	require.NoError(t, s.SaveFolio(ctx, session.NewFolio("Alpha")))

	names, err := s.FolioNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Zeta"}, names)
}
