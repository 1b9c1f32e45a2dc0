package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/roach88/bullpen/internal/clif"
	"github.com/roach88/bullpen/internal/editor"
)

// CanonOptions holds flags for the canon command.
type CanonOptions struct {
	*RootOptions
	Check bool
}

// NewCanonCommand creates the canon command.
func NewCanonCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CanonOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "canon [file]",
		Short: "Rewrite a CLIF expression in canonical form",
		Long: `Parse a CLIF expression and emit the canonical translation of the
resulting graph. Structurally identical inputs always canonicalize to
byte-identical output.

With --check, verify the input is already canonical and exit 1 if not.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCanon(opts, cmd, args)
		},
	}

	cmd.Flags().BoolVar(&opts.Check, "check", false, "verify the input is already canonical")

	return cmd
}

func runCanon(opts *CanonOptions, cmd *cobra.Command, args []string) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	src, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	ed := editor.New()
	if _, err := clif.NewParser(ed).Parse(src); err != nil {
		var pe *clif.ParseError
		if errors.As(err, &pe) {
			formatter.Error("E_PARSE", pe.Message)
			return NewExitError(ExitFailure, pe.Message)
		}
		return WrapExitError(ExitCommandError, "parse", err)
	}

	canonical := clif.NewTranslator(ed.Reg).Translate()

	if opts.Check {
		if trimText(src) != canonical {
			formatter.Error("E_NOT_CANONICAL", "input is not in canonical form")
			return NewExitError(ExitFailure, "input is not in canonical form")
		}
		return formatter.Success("canonical")
	}
	return formatter.Success(canonical)
}
