package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/roach88/bullpen/internal/clif"
	"github.com/roach88/bullpen/internal/session"
	"github.com/roach88/bullpen/internal/store"
)

// FolioOptions holds the flags shared by import and export.
type FolioOptions struct {
	*RootOptions
	DB    string
	Folio string
	Graph string
}

func addFolioFlags(cmd *cobra.Command, opts *FolioOptions) {
	cmd.Flags().StringVar(&opts.DB, "db", "bullpen.db", "folio database path")
	cmd.Flags().StringVar(&opts.Folio, "folio", "default", "folio name")
	cmd.Flags().StringVar(&opts.Graph, "graph", "", "graph name (required)")
	cmd.MarkFlagRequired("graph")
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FolioOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Parse CLIF into a named graph and save it to a folio database",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, cmd, args)
		},
	}
	addFolioFlags(cmd, opts)
	return cmd
}

func runImport(opts *FolioOptions, cmd *cobra.Command, args []string) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	src, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	db, err := store.Open(opts.DB)
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer db.Close()

	folio, err := db.LoadFolio(cmd.Context(), opts.Folio)
	if errors.Is(err, store.ErrNotFound) {
		folio = session.NewFolio(opts.Folio)
		err = nil
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "load folio", err)
	}

	ed, err := folio.NewGraph(opts.Graph)
	if err != nil {
		return WrapExitError(ExitCommandError, "create graph", err)
	}
	if _, err := clif.NewParser(ed).Parse(src); err != nil {
		var pe *clif.ParseError
		if errors.As(err, &pe) {
			formatter.Error("E_PARSE", pe.Message)
			return NewExitError(ExitFailure, pe.Message)
		}
		return WrapExitError(ExitCommandError, "parse", err)
	}

	sess, err := folio.NewSession(opts.Graph)
	if err != nil {
		return WrapExitError(ExitCommandError, "create session", err)
	}
	sess.Record("import", map[string]string{"graph": opts.Graph})

	if err := db.SaveFolio(cmd.Context(), folio); err != nil {
		return WrapExitError(ExitCommandError, "save folio", err)
	}

	formatter.VerboseLog("imported graph %q into folio %q", opts.Graph, opts.Folio)
	return formatter.Success("imported " + opts.Graph)
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FolioOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Translate a stored graph back to canonical CLIF",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}
	addFolioFlags(cmd, opts)
	return cmd
}

func runExport(opts *FolioOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	db, err := store.Open(opts.DB)
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer db.Close()

	folio, err := db.LoadFolio(cmd.Context(), opts.Folio)
	if err != nil {
		return WrapExitError(ExitCommandError, "load folio", err)
	}
	ed := folio.Graph(opts.Graph)
	if ed == nil {
		return NewExitError(ExitCommandError, "no graph named "+opts.Graph+" in folio "+opts.Folio)
	}
	return formatter.Success(clif.NewTranslator(ed.Reg).Translate())
}
