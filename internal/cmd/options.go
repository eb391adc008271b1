package cmd

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	"github.com/ezerfernandes/mdfront/internal/config"
)

const (
	fileMode = 0o644
	stdinArg = "-"
)

type (
	statusFunc func(format string, a ...interface{})
	filterFunc func(lang string) bool
)

type options struct {
	fsys  fs.FS
	stdin io.Reader

	configFile string
	quiet      bool
	format     string
	lang       []string

	filter filterFunc
	status statusFunc
	warn   statusFunc
}

// osFS opens files relative to the working directory, accepting any path the
// os package does.
type osFS struct{}

func (osFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

func (opts *options) createStatus(w io.Writer) {
	if opts.quiet {
		opts.status = func(string, ...interface{}) {}
		opts.warn = opts.status

		return
	}

	opts.status = func(format string, a ...interface{}) {
		fmt.Fprintf(w, format, a...)
	}

	yellow := color.New(color.FgYellow)
	opts.warn = func(format string, a ...interface{}) {
		yellow.Fprintf(w, format, a...)
	}
}

// applyConfig fills in every flag the user did not set from the config file
// and environment.
func (opts *options) applyConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return err
	}

	if flag := cmd.Flag("format"); flag == nil || !flag.Changed {
		opts.format = cfg.Format
	} else if err := (&config.Config{Format: opts.format}).Validate(); err != nil {
		return err
	}

	if flag := cmd.Flag("lang"); flag == nil || !flag.Changed {
		opts.lang = cfg.Lang
	}

	if flag := cmd.Flag("quiet"); flag == nil || !flag.Changed {
		opts.quiet = cfg.Quiet
	}

	opts.filter, err = filter(opts.lang)

	return err
}

func (opts *options) read(name string) ([]byte, error) {
	if name == stdinArg {
		src, err := io.ReadAll(opts.stdin)

		return src, systemError(errors.Wrap(err, "reading standard input"))
	}

	src, err := fs.ReadFile(opts.fsys, name)

	return src, systemError(errors.Wrapf(err, "reading %s", name))
}

func source(args []string) string {
	if len(args) == 0 {
		return stdinArg
	}

	return args[0]
}

// filter matches a code block language against glob patterns. A block
// without a language only matches patterns that match the empty string,
// such as "*".
func filter(patterns []string) (filterFunc, error) {
	if len(patterns) == 0 {
		return func(string) bool { return true }, nil
	}

	globs := make([]glob.Glob, 0, len(patterns))

	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.WithHint(
				errors.Wrapf(err, "invalid --lang pattern %q", pattern),
				"patterns use glob syntax, e.g. 'y*ml' or '{toml,json}'",
			)
		}

		globs = append(globs, g)
	}

	return func(lang string) bool {
		for _, g := range globs {
			if g.Match(lang) {
				return true
			}
		}

		return false
	}, nil
}
