package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/roach88/bullpen/internal/session"
)

// SaveFolio writes the folio, all its graph snapshots, and all its
// sessions in one transaction, replacing any previous state for the
// same folio id.
func (s *Store) SaveFolio(ctx context.Context, folio *session.Folio) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO folios (id, name) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		folio.ID, folio.Name,
	); err != nil {
		return fmt.Errorf("save folio %s: %w", folio.ID, err)
	}

	// Full replace keeps deletions honest: graphs or sessions dropped
	// from the folio disappear from storage too.
	if _, err := tx.ExecContext(ctx, `DELETE FROM graphs WHERE folio_id = ?`, folio.ID); err != nil {
		return fmt.Errorf("clear graphs: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE folio_id = ?`, folio.ID); err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}

	for _, name := range folio.GraphNames() {
		if err := writeGraph(ctx, tx, folio, name); err != nil {
			return err
		}
	}
	for _, sess := range folio.Sessions() {
		if err := writeSession(ctx, tx, folio.ID, sess); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func writeGraph(ctx context.Context, tx *sql.Tx, folio *session.Folio, name string) error {
	snapshot, err := EncodeSnapshot(folio.Graph(name).Reg)
	if err != nil {
		return fmt.Errorf("encode graph %q: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO graphs (folio_id, name, snapshot) VALUES (?, ?, ?)`,
		folio.ID, name, string(snapshot),
	); err != nil {
		return fmt.Errorf("save graph %q: %w", name, err)
	}
	return nil
}

func writeSession(ctx context.Context, tx *sql.Tx, folioID string, sess *session.Session) error {
	history, err := json.Marshal(sess.History)
	if err != nil {
		return fmt.Errorf("encode session %s history: %w", sess.ID, err)
	}
	metadata, err := json.Marshal(sess.Metadata)
	if err != nil {
		return fmt.Errorf("encode session %s metadata: %w", sess.ID, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (id, folio_id, graph_name, history, metadata) VALUES (?, ?, ?, ?, ?)`,
		sess.ID, folioID, sess.GraphName, string(history), string(metadata),
	); err != nil {
		return fmt.Errorf("save session %s: %w", sess.ID, err)
	}
	return nil
}
