// Package session provides the folio and proof-session model: the
// top-level containers a user works in. A Folio holds named graphs and
// the sessions recorded against them; a Session is one proof attempt
// with an ordered history of transformation actions.
//
// The core graph packages know nothing about folios; this layer only
// consumes them.
package session

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/roach88/bullpen/internal/editor"
)

// Action is a structured record of a single transformation applied to
// a graph: the rule name plus its parameters.
type Action struct {
	Name   string            `json:"name"`
	Params map[string]string `json:"params,omitempty"`
}

// Session manages the state and history for a single proof attempt
// against one graph.
type Session struct {
	ID        string            `json:"id"`
	GraphName string            `json:"graph_name"`
	History   []Action          `json:"history"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// NewSession starts a session against the named graph.
func NewSession(graphName string) *Session {
	return &Session{
		ID:        uuid.NewString(),
		GraphName: graphName,
		Metadata:  make(map[string]string),
	}
}

// Record appends an action to the session history.
func (s *Session) Record(name string, params map[string]string) {
	s.History = append(s.History, Action{Name: name, Params: params})
}

// Folio is the top-level container for a user's project: multiple named
// graphs plus the sessions recorded against them.
type Folio struct {
	ID   string
	Name string

	graphs   map[string]*editor.Editor
	sessions map[string]*Session
}

// NewFolio creates an empty folio.
func NewFolio(name string) *Folio {
	if name == "" {
		name = "Untitled Folio"
	}
	return &Folio{
		ID:       uuid.NewString(),
		Name:     name,
		graphs:   make(map[string]*editor.Editor),
		sessions: make(map[string]*Session),
	}
}

// NewGraph creates a new named graph in the folio and returns its
// editor. Fails if the name is taken.
func (f *Folio) NewGraph(name string) (*editor.Editor, error) {
	if _, exists := f.graphs[name]; exists {
		return nil, fmt.Errorf("a graph named %q already exists in this folio", name)
	}
	ed := editor.New()
	f.graphs[name] = ed
	return ed, nil
}

// PutGraph installs an editor under a name, replacing any existing
// graph. Used when loading folios from storage.
func (f *Folio) PutGraph(name string, ed *editor.Editor) {
	f.graphs[name] = ed
}

// Graph returns the editor for the named graph, or nil.
func (f *Folio) Graph(name string) *editor.Editor {
	return f.graphs[name]
}

// GraphNames returns the folio's graph names, sorted.
func (f *Folio) GraphNames() []string {
	names := make([]string, 0, len(f.graphs))
	for name := range f.graphs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewSession starts a session against the named graph.
func (f *Folio) NewSession(graphName string) (*Session, error) {
	if _, exists := f.graphs[graphName]; !exists {
		return nil, fmt.Errorf("no graph named %q in this folio", graphName)
	}
	s := NewSession(graphName)
	f.sessions[s.ID] = s
	return s, nil
}

// PutSession installs a session record. Used when loading from storage.
func (f *Folio) PutSession(s *Session) {
	f.sessions[s.ID] = s
}

// Sessions returns the folio's sessions ordered by id.
func (f *Folio) Sessions() []*Session {
	ids := make([]string, 0, len(f.sessions))
	for id := range f.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*Session, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.sessions[id])
	}
	return out
}
