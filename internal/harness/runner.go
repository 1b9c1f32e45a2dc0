package harness

import (
	"fmt"

	"github.com/roach88/bullpen/internal/clif"
	"github.com/roach88/bullpen/internal/editor"
	"github.com/roach88/bullpen/internal/eg"
)

// Result is the outcome of running a scenario.
type Result struct {
	// CLIF is the canonical translation of the finished graph.
	CLIF string

	// IDs maps symbolic handles to the entity ids they produced.
	IDs map[string]string
}

// Run executes a scenario against a fresh editor and translates the
// finished graph.
func Run(sc *Scenario) (*Result, error) {
	r := &runner{
		ed:  editor.New(),
		ids: map[string]string{"SA": eg.SheetID},
	}
	for i, op := range sc.Ops {
		if err := r.apply(op); err != nil {
			return nil, fmt.Errorf("scenario %s op %d (%s): %w", sc.Name, i+1, op.Op, err)
		}
	}
	return &Result{
		CLIF: clif.NewTranslator(r.ed.Reg).Translate(),
		IDs:  r.ids,
	}, nil
}

type runner struct {
	ed  *editor.Editor
	ids map[string]string
}

// resolve maps a symbolic handle to an entity id. Unset handles default
// to the Sheet of Assertion so scenarios can omit parent everywhere.
func (r *runner) resolve(handle string) (string, error) {
	if handle == "" {
		return eg.SheetID, nil
	}
	if id, ok := r.ids[handle]; ok {
		return id, nil
	}
	return "", fmt.Errorf("unknown handle %q", handle)
}

func (r *runner) bind(handle, id string) {
	if handle != "" {
		r.ids[handle] = id
	}
}

func (r *runner) apply(op Op) error {
	switch op.Op {
	case "add_predicate", "add_functional_predicate":
		parent, err := r.resolve(op.Parent)
		if err != nil {
			return err
		}
		var id string
		if op.Op == "add_functional_predicate" {
			id, err = r.ed.AddFunctionalPredicate(op.Label, op.Arity, parent)
		} else {
			id, err = r.ed.AddPredicate(op.Label, op.Arity, parent)
		}
		if err != nil {
			return err
		}
		r.bind(op.As, id)
		return nil

	case "add_constant":
		parent, err := r.resolve(op.Parent)
		if err != nil {
			return err
		}
		id, err := r.ed.AddConstant(op.Label, parent)
		if err != nil {
			return err
		}
		r.bind(op.As, id)
		return nil

	case "add_cut":
		parent, err := r.resolve(op.Parent)
		if err != nil {
			return err
		}
		id, err := r.ed.AddCut(parent)
		if err != nil {
			return err
		}
		r.bind(op.As, id)
		return nil

	case "connect":
		pairs := make([]eg.Attachment, 0, len(op.Pairs))
		for _, pair := range op.Pairs {
			id, err := r.resolve(pair.Pred)
			if err != nil {
				return err
			}
			pairs = append(pairs, eg.Attachment{PredicateID: id, Hook: pair.Hook})
		}
		id, err := r.ed.Connect(pairs)
		if err != nil {
			return err
		}
		r.bind(op.As, id)
		return nil

	case "insert_double_cut":
		parent, err := r.resolve(op.Parent)
		if err != nil {
			return err
		}
		selection, err := r.resolveAll(op.Selection)
		if err != nil {
			return err
		}
		outer, inner, err := r.ed.InsertDoubleCut(selection, parent)
		if err != nil {
			return err
		}
		r.bind(op.As, outer)
		r.bind(op.AsInner, inner)
		return nil

	case "remove_double_cut":
		target, err := r.resolve(op.Target)
		if err != nil {
			return err
		}
		return r.ed.RemoveDoubleCut(target)

	case "iterate":
		selection, err := r.resolveAll(op.Selection)
		if err != nil {
			return err
		}
		target, err := r.resolve(op.Target)
		if err != nil {
			return err
		}
		return r.ed.Iterate(selection, target)

	case "erase_constant":
		target, err := r.resolve(op.Target)
		if err != nil {
			return err
		}
		return r.ed.EraseConstant(target)

	case "functional_property":
		first, err := r.resolve(op.First)
		if err != nil {
			return err
		}
		second, err := r.resolve(op.Second)
		if err != nil {
			return err
		}
		return r.ed.ApplyFunctionalPropertyRule(first, second)

	case "parse":
		_, err := clif.NewParser(r.ed).Parse(op.Text)
		return err

	default:
		return fmt.Errorf("unknown op %q", op.Op)
	}
}

func (r *runner) resolveAll(handles []string) ([]string, error) {
	ids := make([]string, 0, len(handles))
	for _, handle := range handles {
		id, err := r.resolve(handle)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
