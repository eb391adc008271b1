package cmd

import (
	"bytes"
	_ "embed"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ezerfernandes/mdfront/pkg/frontmatter"
)

//go:embed help/render.md
var renderHelp string

func renderCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "render [flags] [filename]",
		Aliases: []string{"r"},
		Short:   "Render a Markdown document to HTML without its frontmatter code block",
		Long:    renderHelp,
		Args:    checkargs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderRun(cmd.OutOrStdout(), source(args), output, opts)
		},

		DisableAutoGenTag: true,
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write HTML to this file instead of standard output")

	return cmd
}

func renderRun(out io.Writer, filename, output string, opts *options) error {
	src, err := opts.read(filename)
	if err != nil {
		return err
	}

	var buff bytes.Buffer

	fm, err := frontmatter.RenderHTML(&buff, src)
	if err != nil {
		return errors.Wrapf(err, "rendering %s", filename)
	}

	if fm != nil && fm.HasTitle {
		opts.status("%s: title %q\n", filename, fm.Title)
	}

	if len(output) == 0 {
		_, err = out.Write(buff.Bytes())

		return systemError(err)
	}

	return systemError(errors.Wrapf(os.WriteFile(output, buff.Bytes(), fileMode), "writing %s", output))
}
