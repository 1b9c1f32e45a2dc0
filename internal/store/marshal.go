package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/roach88/bullpen/internal/eg"
)

// entityRecord is the storage form of one graph entity, tagged by kind.
// Only the fields for the record's kind are populated.
type entityRecord struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`

	// context
	Cut      bool     `json:"cut,omitempty"`
	Children []string `json:"children,omitempty"`

	// predicate
	Label         string            `json:"label,omitempty"`
	Arity         int               `json:"arity,omitempty"`
	Hooks         map[string]string `json:"hooks,omitempty"`
	PredicateKind string            `json:"predicate_kind,omitempty"`
	Functional    bool              `json:"functional,omitempty"`

	// line
	Ligatures []string `json:"ligatures,omitempty"`

	// ligature
	Line          string             `json:"line,omitempty"`
	Attachments   []attachmentRecord `json:"attachments,omitempty"`
	TraversedCuts []string           `json:"traversed_cuts,omitempty"`
}

type attachmentRecord struct {
	Predicate string `json:"predicate"`
	Hook      int    `json:"hook"`
}

const (
	recContext  = "context"
	recPred     = "predicate"
	recLine     = "line"
	recLigature = "ligature"
)

// EncodeSnapshot serializes a registry as JSON entity records in
// creation order. The encoding is deterministic: set-valued fields are
// sorted and map keys rely on encoding/json's sorted-key output.
func EncodeSnapshot(reg *eg.Registry) ([]byte, error) {
	var records []entityRecord
	for _, obj := range reg.All() {
		switch o := obj.(type) {
		case *eg.Context:
			records = append(records, entityRecord{
				Kind:     recContext,
				ID:       o.OID,
				Cut:      o.Cut,
				Children: append([]string(nil), o.Children...),
			})
		case *eg.Predicate:
			hooks := make(map[string]string, len(o.Hooks))
			for hook, lineID := range o.Hooks {
				hooks[strconv.Itoa(hook)] = lineID
			}
			records = append(records, entityRecord{
				Kind:          recPred,
				ID:            o.OID,
				Label:         o.Label,
				Arity:         o.Arity,
				Hooks:         hooks,
				PredicateKind: string(o.Kind),
				Functional:    o.Functional,
			})
		case *eg.LineOfIdentity:
			records = append(records, entityRecord{
				Kind:      recLine,
				ID:        o.OID,
				Ligatures: sortedKeys(o.Ligatures),
			})
		case *eg.Ligature:
			atts := make([]attachmentRecord, 0, len(o.Attachments))
			for _, att := range o.Attachments {
				atts = append(atts, attachmentRecord{Predicate: att.PredicateID, Hook: att.Hook})
			}
			records = append(records, entityRecord{
				Kind:          recLigature,
				ID:            o.OID,
				Line:          o.LineID,
				Attachments:   atts,
				TraversedCuts: sortedKeys(o.TraversedCuts),
			})
		default:
			return nil, fmt.Errorf("unknown entity kind for %s", obj.ID())
		}
	}
	return json.Marshal(records)
}

// DecodeSnapshot rebuilds a registry from EncodeSnapshot output.
// Records are replayed in order, so entity creation sequence, and with
// it canonical translation, survives the round trip.
func DecodeSnapshot(data []byte) (*eg.Registry, error) {
	var records []entityRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	reg := eg.NewRegistry()
	for _, rec := range records {
		if err := replayRecord(reg, rec); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func replayRecord(reg *eg.Registry, rec entityRecord) error {
	switch rec.Kind {
	case recContext:
		if rec.ID == eg.SheetID {
			// The sheet is pre-registered; only its children carry over.
			reg.Sheet().Children = append([]string(nil), rec.Children...)
			return nil
		}
		return reg.Add(&eg.Context{
			OID:      rec.ID,
			Cut:      rec.Cut,
			Children: append([]string(nil), rec.Children...),
		})
	case recPred:
		hooks := make(map[int]string, len(rec.Hooks))
		for key, lineID := range rec.Hooks {
			hook, err := strconv.Atoi(key)
			if err != nil {
				return fmt.Errorf("predicate %s: bad hook index %q", rec.ID, key)
			}
			hooks[hook] = lineID
		}
		return reg.Add(&eg.Predicate{
			OID:        rec.ID,
			Label:      rec.Label,
			Arity:      rec.Arity,
			Hooks:      hooks,
			Kind:       eg.PredicateKind(rec.PredicateKind),
			Functional: rec.Functional,
		})
	case recLine:
		ligatures := make(map[string]struct{}, len(rec.Ligatures))
		for _, id := range rec.Ligatures {
			ligatures[id] = struct{}{}
		}
		return reg.Add(&eg.LineOfIdentity{OID: rec.ID, Ligatures: ligatures})
	case recLigature:
		atts := make([]eg.Attachment, 0, len(rec.Attachments))
		for _, att := range rec.Attachments {
			atts = append(atts, eg.Attachment{PredicateID: att.Predicate, Hook: att.Hook})
		}
		traversed := make(map[string]struct{}, len(rec.TraversedCuts))
		for _, id := range rec.TraversedCuts {
			traversed[id] = struct{}{}
		}
		return reg.Add(&eg.Ligature{
			OID:           rec.ID,
			LineID:        rec.Line,
			Attachments:   atts,
			TraversedCuts: traversed,
		})
	default:
		return fmt.Errorf("unknown snapshot record kind %q for %s", rec.Kind, rec.ID)
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
