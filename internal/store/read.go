package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/bullpen/internal/editor"
	"github.com/roach88/bullpen/internal/session"
)

// ErrNotFound is returned when the requested folio does not exist.
var ErrNotFound = errors.New("folio not found")

// LoadFolio reads a folio by name, rebuilding every graph registry from
// its snapshot and reattaching the recorded sessions.
func (s *Store) LoadFolio(ctx context.Context, name string) (*session.Folio, error) {
	var id, storedName string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM folios WHERE name = ?`, name,
	).Scan(&id, &storedName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("load folio %q: %w", name, err)
	}

	folio := session.NewFolio(storedName)
	folio.ID = id

	if err := s.loadGraphs(ctx, folio); err != nil {
		return nil, err
	}
	if err := s.loadSessions(ctx, folio); err != nil {
		return nil, err
	}
	return folio, nil
}

// FolioNames lists stored folio names in name order.
func (s *Store) FolioNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM folios ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list folios: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Store) loadGraphs(ctx context.Context, folio *session.Folio) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, snapshot FROM graphs WHERE folio_id = ? ORDER BY name`, folio.ID)
	if err != nil {
		return fmt.Errorf("load graphs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name, snapshot string
		if err := rows.Scan(&name, &snapshot); err != nil {
			return err
		}
		reg, err := DecodeSnapshot([]byte(snapshot))
		if err != nil {
			return fmt.Errorf("decode graph %q: %w", name, err)
		}
		folio.PutGraph(name, editor.NewWithRegistry(reg))
	}
	return rows.Err()
}

func (s *Store) loadSessions(ctx context.Context, folio *session.Folio) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, graph_name, history, metadata FROM sessions WHERE folio_id = ? ORDER BY id`, folio.ID)
	if err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sess session.Session
		var history, metadata string
		if err := rows.Scan(&sess.ID, &sess.GraphName, &history, &metadata); err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(history), &sess.History); err != nil {
			return fmt.Errorf("decode session %s history: %w", sess.ID, err)
		}
		if err := json.Unmarshal([]byte(metadata), &sess.Metadata); err != nil {
			return fmt.Errorf("decode session %s metadata: %w", sess.ID, err)
		}
		folio.PutSession(&sess)
	}
	return rows.Err()
}
