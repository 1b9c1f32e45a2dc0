package cli

import (
	"errors"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/bullpen/internal/clif"
	"github.com/roach88/bullpen/internal/editor"
)

// ParseReport summarizes a successful parse for CLI output.
type ParseReport struct {
	Status    string            `json:"status"`
	Variables map[string]string `json:"variables,omitempty"`
	Constants map[string]string `json:"constants,omitempty"`
	Bindings  int               `json:"bindings"`
	Entities  int               `json:"entities"`
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a CLIF expression into an existential graph",
		Long: `Parse a CLIF expression and report the graph it builds.

Reads from the named file, or stdin when no file (or "-") is given.
Parse failures are reported as structured output and exit code 1.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(rootOpts, cmd, args)
		},
	}
	return cmd
}

func runParse(opts *RootOptions, cmd *cobra.Command, args []string) error {
	formatter := newFormatter(opts, cmd)
	src, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	ed := editor.New()
	result, err := clif.NewParser(ed).Parse(src)
	if err != nil {
		var pe *clif.ParseError
		if errors.As(err, &pe) {
			formatter.Error("E_PARSE", pe.Message)
			return NewExitError(ExitFailure, pe.Message)
		}
		return WrapExitError(ExitCommandError, "parse", err)
	}

	formatter.VerboseLog("parsed %d entities", ed.Reg.Len())

	if opts.Format == "json" {
		return formatter.Success(ParseReport{
			Status:    "parsed",
			Variables: result.Variables,
			Constants: result.Constants,
			Bindings:  len(result.Bindings),
			Entities:  ed.Reg.Len(),
		})
	}
	return formatter.Success(textParseReport(result, ed))
}

func textParseReport(result *clif.Result, ed *editor.Editor) string {
	report := "parsed: " + strconv.Itoa(ed.Reg.Len()) + " entities, " +
		strconv.Itoa(len(result.Bindings)) + " hook bindings"
	if len(result.Variables) > 0 {
		report += "\nvariables: " + joinedKeys(result.Variables)
	}
	if len(result.Constants) > 0 {
		report += "\nconstants: " + joinedKeys(result.Constants)
	}
	return report
}

func joinedKeys(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += " "
		}
		out += k
	}
	return out
}

