package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/csvdb/internal/common"
	"github.com/dmitrijs2005/csvdb/internal/repl"
	"github.com/spf13/cobra"
)

func newUserCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts without starting the shell",
	}
	cmd.AddCommand(newUserAddCmd(in, out, errOut), newUserListCmd(in, out, errOut))
	return cmd
}

func newUserAddCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create an account; the password is read from the terminal or stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd, in, out, errOut)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := app.Bootstrap(ctx); err != nil {
				return err
			}

			password, err := repl.GetPassword(bufio.NewReader(in), out)
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			defer common.WipeByteArray(password)
			if len(password) == 0 {
				return errors.New("password must not be empty")
			}

			if err := app.Accounts().CreateUser(ctx, args[0], password); err != nil {
				return err
			}
			fmt.Fprintf(out, "User '%s' created\n", args[0])
			return nil
		},
	}
}

func newUserListCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd, in, out, errOut)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := app.Bootstrap(ctx); err != nil {
				return err
			}

			names, err := app.Accounts().ListUsers(ctx)
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(out, n)
			}
			return nil
		},
	}
}
