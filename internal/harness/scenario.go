package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: a sequence of editor
// operations and the canonical CLIF the resulting graph translates to.
type Scenario struct {
	// Name uniquely identifies this scenario; it is also the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Ops is the ordered operation list.
	Ops []Op `yaml:"ops"`

	// Expect, when set, is the exact canonical CLIF the final graph
	// must translate to. Golden-file scenarios may omit it and rely on
	// goldie instead.
	Expect string `yaml:"expect,omitempty"`
}

// Op is one editor operation. Which fields apply depends on Op; the
// runner rejects unknown operation names.
type Op struct {
	// Op names the operation: add_predicate, add_functional_predicate,
	// add_constant, add_cut, connect, insert_double_cut,
	// remove_double_cut, iterate, erase_constant, functional_property,
	// or parse.
	Op string `yaml:"op"`

	// As registers the operation's result id under a symbolic handle
	// for later ops. insert_double_cut registers the outer cut under As
	// and the inner cut under AsInner.
	As      string `yaml:"as,omitempty"`
	AsInner string `yaml:"as_inner,omitempty"`

	Label  string `yaml:"label,omitempty"`
	Arity  int    `yaml:"arity,omitempty"`
	Parent string `yaml:"parent,omitempty"`

	// Pairs lists (handle, hook) pairs for connect.
	Pairs []Pair `yaml:"pairs,omitempty"`

	// Selection and Target drive insert_double_cut and iterate;
	// Target also names the operand of remove_double_cut and
	// erase_constant.
	Selection []string `yaml:"selection,omitempty"`
	Target    string   `yaml:"target,omitempty"`

	// First and Second name the operands of functional_property.
	First  string `yaml:"first,omitempty"`
	Second string `yaml:"second,omitempty"`

	// Text is the CLIF source for parse.
	Text string `yaml:"text,omitempty"`
}

// Pair references a hook on a previously created predicate.
type Pair struct {
	Pred string `yaml:"pred"`
	Hook int    `yaml:"hook"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if len(sc.Ops) == 0 {
		return nil, fmt.Errorf("scenario %s: at least one op is required", path)
	}
	return &sc, nil
}
