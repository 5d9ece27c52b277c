// Package app contains the main application logic for the CLI.
package app

import (
	"context"
	"io"

	"github.com/goliatone/go-entityforms/internal/commands"
)

// Run is the main application logic, extracted for testability.
// It accepts OS dependencies as parameters (context, args, env lookup and
// standard streams). Errors are reported on stderr before being returned.
func Run(ctx context.Context, args []string, getenv func(string) string, stdin io.Reader, stdout, stderr io.Writer) error {
	rootCmd := commands.NewRootCmd(commands.Env{
		Getenv: getenv,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	})
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		commands.ReportError(stderr, err)
		return err
	}
	return nil
}
