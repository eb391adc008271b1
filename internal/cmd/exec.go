package cmd

import (
	"context"
	_ "embed"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/ezerfernandes/mdfront/pkg/frontmatter"
)

//go:embed help/exec.md
var execHelp string

// Variables exported to the command. They live outside the MDFRONT_ names
// read by config, so a nested mdfront call does not inherit them as flags.
const (
	envFile  = "MDFRONT_DOC_FILE"
	envTitle = "MDFRONT_DOC_TITLE"
	envLang  = "MDFRONT_BLOCK_LANG"
	envInfo  = "MDFRONT_BLOCK_INFO"
)

var errMissingCommand = errors.New("command is required after '--'")

func execCmd(opts *options) *cobra.Command {
	var dir string

	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "exec [flags] [filename] -- command",
		Aliases: []string{"e"},
		Short:   "Run a shell command on the frontmatter code block",
		Long:    execHelp,
		Args: func(cmd *cobra.Command, args []string) error {
			_, args = script(cmd, args)

			return checkargs(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			scr, args := script(cmd, args)
			if len(scr) == 0 {
				return errors.WithHint(errMissingCommand, "e.g. mdfront exec doc.md -- yq .title")
			}

			return execRun(cmd.OutOrStdout(), cmd.ErrOrStderr(), source(args), dir, opts, scr)
		},

		DisableAutoGenTag: true,
	}

	langFlag(cmd, opts)

	cmd.Flags().StringVar(&dir, "dir", ".", "working directory of the command")

	return cmd
}

// script splits the arguments at "--" into the shell command and the rest.
func script(cmd *cobra.Command, args []string) (string, []string) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return "", args
	}

	return strings.Join(args[dash:], " "), args[:dash]
}

func execRun(stdout, stderr io.Writer, filename, dir string, opts *options, scr string) error {
	fm, err := opts.extract(filename)
	if err != nil {
		return err
	}

	if fm == nil || fm.CodeBlock == nil {
		opts.status("%s: no frontmatter code block, nothing to run\n", filename)

		return nil
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return systemError(err)
	}

	opts.status("--- %s (%s) ---\n", filepath.Base(filename), langLabel(fm.CodeBlock))

	sh := &shell{dir: absDir, env: environ(filename, fm), stdout: stdout, stderr: stderr}

	status, err := sh.run(context.Background(), scr, fm.CodeBlock)
	if err != nil {
		return err
	}

	if status != 0 {
		return systemError(errors.Newf("command exited with %d", status))
	}

	return nil
}

func environ(filename string, fm *frontmatter.Frontmatter) expand.Environ {
	pairs := append(os.Environ(),
		envFile+"="+filename,
		envLang+"="+fm.CodeBlock.Language,
		envInfo+"="+fm.CodeBlock.Info,
	)

	if fm.HasTitle {
		pairs = append(pairs, envTitle+"="+fm.Title)
	}

	return expand.ListEnviron(pairs...)
}

// shell interprets exec scripts with a POSIX shell written in Go.
type shell struct {
	dir    string
	env    expand.Environ
	stdout io.Writer
	stderr io.Writer
}

// run feeds the contents of block to scr and returns the script's exit
// status. The error is set only when scr cannot be parsed, which is the
// user's mistake, or the interpreter fails, which is a system error.
func (sh *shell) run(ctx context.Context, scr string, block *frontmatter.CodeBlock) (uint8, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(scr), "")
	if err != nil {
		return 0, errors.Wrap(err, "parsing command")
	}

	runner, err := interp.New(
		interp.Dir(sh.dir),
		interp.Env(sh.env),
		interp.StdIO(strings.NewReader(block.Contents), sh.stdout, sh.stderr),
	)
	if err != nil {
		return 0, systemError(errors.Wrap(err, "starting shell"))
	}

	err = runner.Run(ctx, prog)
	if status, ok := interp.IsExitStatus(err); ok {
		return status, nil
	}

	return 0, systemError(errors.Wrap(err, "running command"))
}

func langLabel(block *frontmatter.CodeBlock) string {
	if len(block.Language) != 0 {
		return block.Language
	}

	if block.Fenced {
		return "no language"
	}

	return "indented"
}
