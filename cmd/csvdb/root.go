package main

import (
	"io"

	"github.com/dmitrijs2005/csvdb/internal/buildinfo"
	"github.com/dmitrijs2005/csvdb/internal/config"
	"github.com/dmitrijs2005/csvdb/internal/repl"
	"github.com/spf13/cobra"
)

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "csvdb",
		Short: "Multi-user database shell over plain CSV files",
		Long: `csvdb is an interactive shell for a small multi-user database.

Every user owns databases, every database is a directory and every table is a
CSV file whose first column is a generated unique_id. Start the shell and type
'help' for the command language. On a fresh data root an 'admin' account with
password 'admin' is created.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       buildinfo.String(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd, in, out, errOut)
			if err != nil {
				return err
			}
			return app.Run(cmd.Context())
		},
	}

	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	config.RegisterFlags(cmd.PersistentFlags())
	cmd.AddCommand(newUserCmd(in, out, errOut), newVersionCmd(out))
	return cmd
}

func newVersionCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version, date and commit",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			buildinfo.PrintBuildData(out)
		},
	}
}

// newApp loads the configuration from the parsed flags of cmd and wires the
// shell.
func newApp(cmd *cobra.Command, in io.Reader, out, errOut io.Writer) (*repl.App, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	return repl.NewApp(cfg, in, out, errOut)
}
