// Package cmd implements the mdfront command line interface.
package cmd

import (
	_ "embed"
	"io"
	"io/fs"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ezerfernandes/mdfront/internal/config"
)

//go:embed help/root.md
var rootHelp string

// Execute runs the command line and exits the process on failure, with
// status 1 for user errors and 2 for system errors.
func Execute(args []string, stdout, stderr io.Writer) {
	if code := run(args, os.Stdin, stdout, stderr, osFS{}); code != exitSuccess {
		os.Exit(code)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, fsys fs.FS) int {
	opts := &options{fsys: fsys, stdin: stdin}

	root := rootCmd(opts)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		printError(stderr, err)

		return exitCode(err)
	}

	return exitSuccess
}

func printError(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprint(w, "error: ")
	io.WriteString(w, err.Error()+"\n")

	if hint := errors.FlattenHints(err); hint != "" {
		color.New(color.FgCyan).Fprintf(w, "hint: %s\n", hint)
	}
}

func rootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{ //nolint:exhaustruct
		Use:   "mdfront",
		Short: "Extract frontmatter from Markdown documents",
		Long:  rootHelp,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.applyConfig(cmd); err != nil {
				return err
			}

			opts.createStatus(cmd.ErrOrStderr())

			return nil
		},

		SilenceErrors:     true,
		SilenceUsage:      true,
		DisableAutoGenTag: true,
	}

	root.PersistentFlags().StringVar(&opts.configFile, "config", "",
		"config file (default: ./"+config.AppName+".yaml, then $XDG_CONFIG_HOME/"+config.AppName+")")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress status messages")

	root.AddCommand(
		extractCmd(opts),
		renderCmd(opts),
		eventsCmd(opts),
		execCmd(opts),
	)

	return root
}

func checkargs(_ *cobra.Command, args []string) error {
	if len(args) > 1 {
		return errors.WithHint(
			errors.Newf("expected at most one filename, got %d", len(args)),
			"pass '-' or no filename to read standard input",
		)
	}

	return nil
}
