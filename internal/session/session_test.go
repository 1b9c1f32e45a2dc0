package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFolioDefaults(t *testing.T) {
	folio := NewFolio("")
	assert.Equal(t, "Untitled Folio", folio.Name)
	assert.NotEmpty(t, folio.ID)
	assert.Empty(t, folio.GraphNames())
	assert.Empty(t, folio.Sessions())
}

func TestNewGraphRejectsDuplicateNames(t *testing.T) {
	folio := NewFolio("Peirce")

	ed, err := folio.NewGraph("alpha")
	require.NoError(t, err)
	require.NotNil(t, ed)
	assert.Same(t, ed, folio.Graph("alpha"))

	_, err = folio.NewGraph("alpha")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestGraphNamesAreSorted(t *testing.T) {
	folio := NewFolio("Peirce")
	for _, name := range []string{"gamma", "alpha", "beta"} {
		_, err := folio.NewGraph(name)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, folio.GraphNames())
	assert.Nil(t, folio.Graph("delta"))
}

func TestNewSessionRequiresExistingGraph(t *testing.T) {
	folio := NewFolio("Peirce")

	_, err := folio.NewSession("nowhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no graph named "nowhere"`)

	_, err = folio.NewGraph("alpha")
	require.NoError(t, err)
	sess, err := folio.NewSession("alpha")
	require.NoError(t, err)
	assert.Equal(t, "alpha", sess.GraphName)
	assert.NotEmpty(t, sess.ID)
}

func TestSessionHistory(t *testing.T) {
	sess := NewSession("alpha")
	sess.Record("add_predicate", map[string]string{"label": "P", "arity": "1"})
	sess.Record("connect", nil)

	require.Len(t, sess.History, 2)
	assert.Equal(t, "add_predicate", sess.History[0].Name)
	assert.Equal(t, "P", sess.History[0].Params["label"])
	assert.Equal(t, "connect", sess.History[1].Name)
}

func TestSessionsOrderedByID(t *testing.T) {
	folio := NewFolio("Peirce")
	_, err := folio.NewGraph("alpha")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := folio.NewSession("alpha")
		require.NoError(t, err)
	}

	sessions := folio.Sessions()
	require.Len(t, sessions, 5)
	for i := 1; i < len(sessions); i++ {
		assert.Less(t, sessions[i-1].ID, sessions[i].ID)
	}
}
