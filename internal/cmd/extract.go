package cmd

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/pelletier/go-toml/v2"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ezerfernandes/mdfront/internal/config"
	"github.com/ezerfernandes/mdfront/pkg/frontmatter"
)

//go:embed help/extract.md
var extractHelp string

var errNotFound = errors.New("no frontmatter found")

type record struct {
	Title     *string      `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	CodeBlock *blockRecord `json:"code_block,omitempty" yaml:"code_block,omitempty" toml:"code_block,omitempty"`
}

type blockRecord struct {
	Language string                 `json:"language,omitempty" yaml:"language,omitempty" toml:"language,omitempty"`
	Info     string                 `json:"info,omitempty" yaml:"info,omitempty" toml:"info,omitempty"`
	Meta     map[string]interface{} `json:"meta,omitempty" yaml:"meta,omitempty" toml:"meta,omitempty"`
	Fenced   bool                   `json:"fenced" yaml:"fenced" toml:"fenced"`
	Contents string                 `json:"contents" yaml:"contents" toml:"contents"`
}

func newRecord(fm *frontmatter.Frontmatter) *record {
	rec := &record{}

	if fm.HasTitle {
		title := fm.Title
		rec.Title = &title
	}

	if block := fm.CodeBlock; block != nil {
		rec.CodeBlock = &blockRecord{
			Language: block.Language,
			Info:     block.Info,
			Meta:     block.Meta,
			Fenced:   block.Fenced,
			Contents: block.Contents,
		}
	}

	return rec
}

func extractCmd(opts *options) *cobra.Command {
	var (
		data    bool
		as      string
		require bool
	)

	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "extract [flags] [filename]",
		Aliases: []string{"x"},
		Short:   "Print the frontmatter of a Markdown document",
		Long:    extractHelp,
		Args:    checkargs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return extractRun(cmd.OutOrStdout(), source(args), opts, data, as, require)
		},

		DisableAutoGenTag: true,
	}

	formatFlag(cmd, opts)
	langFlag(cmd, opts)

	cmd.Flags().BoolVarP(&data, "data", "d", false, "print the decoded code block instead of the frontmatter record")
	cmd.Flags().StringVar(&as, "as", "", "decode the code block as this format instead of its language (yaml, toml, json)")
	cmd.Flags().BoolVar(&require, "require", false, "fail if the document has no frontmatter")

	return cmd
}

func extractRun(out io.Writer, filename string, opts *options, data bool, as string, require bool) error {
	fm, err := opts.extract(filename)
	if err != nil {
		return err
	}

	if fm == nil {
		if require {
			return errors.WithHint(errors.Wrapf(errNotFound, "%s", filename),
				"frontmatter is a level-1 heading and/or a code block at the very start of the document")
		}

		opts.status("%s: no frontmatter found\n", filename)

		return nil
	}

	if !data {
		return encode(out, opts.format, newRecord(fm))
	}

	values, err := decodeData(fm, as)
	if err != nil {
		return errors.Wrapf(err, "%s", filename)
	}

	return encode(out, opts.format, values)
}

func (opts *options) extract(filename string) (*frontmatter.Frontmatter, error) {
	src, err := opts.read(filename)
	if err != nil {
		return nil, err
	}

	return opts.filtered(filename, frontmatter.FromMarkdown(src).Extract()), nil
}

// filtered drops a code block whose language does not match --lang, keeping
// the title.
func (opts *options) filtered(filename string, fm *frontmatter.Frontmatter) *frontmatter.Frontmatter {
	if fm == nil || fm.CodeBlock == nil || opts.filter(fm.CodeBlock.Language) {
		return fm
	}

	opts.warn("%s: ignoring code block with language %q\n", filename, fm.CodeBlock.Language)

	if !fm.HasTitle {
		return nil
	}

	return &frontmatter.Frontmatter{Title: fm.Title, HasTitle: true}
}

func decodeData(fm *frontmatter.Frontmatter, as string) (map[string]interface{}, error) {
	if fm.CodeBlock == nil {
		return nil, errors.WithHint(frontmatter.ErrNoCodeBlock, "drop --data to print the title")
	}

	values := make(map[string]interface{})

	var err error
	if as != "" {
		err = fm.CodeBlock.DecodeAs(as, &values)
	} else {
		err = fm.CodeBlock.Decode(&values)
	}

	if errors.Is(err, frontmatter.ErrUnsupportedLanguage) {
		return nil, errors.WithHintf(err, "use --as with one of: %s", strings.Join(frontmatter.Formats, ", "))
	}

	return values, err
}

func encode(w io.Writer, format string, value interface{}) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(value)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2) //nolint:gomnd

		if err := enc.Encode(value); err != nil {
			return err
		}

		return enc.Close()
	case config.FormatTOML:
		return toml.NewEncoder(w).Encode(value)
	case config.FormatTable:
		return encodeTable(w, value)
	}

	return errors.Wrapf(config.ErrInvalidFormat, "%q", format)
}

func encodeTable(w io.Writer, value interface{}) error {
	tbl := newTable(w, "FIELD", "VALUE")

	switch v := value.(type) {
	case *record:
		if v.Title != nil {
			tbl.AddRow("title", *v.Title)
		}

		if block := v.CodeBlock; block != nil {
			tbl.AddRow("language", block.Language)
			tbl.AddRow("info", block.Info)
			tbl.AddRow("fenced", block.Fenced)
			tbl.AddRow("contents", fmt.Sprintf("%q", block.Contents))
		}
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		for _, key := range keys {
			tbl.AddRow(key, v[key])
		}
	default:
		return errors.Newf("cannot print %T as a table", value)
	}

	tbl.Print()

	return nil
}

func newTable(w io.Writer, columns ...interface{}) table.Table {
	return table.New(columns...).
		WithWriter(w).
		WithHeaderFormatter(color.New(color.FgGreen, color.Underline).SprintfFunc())
}

func formatFlag(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVarP(&opts.format, "format", "f", config.FormatJSON,
		"output format: "+strings.Join(config.Formats, ", "))
}

func langFlag(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringSliceVarP(&opts.lang, "lang", "l", []string{"*"},
		"glob patterns the code block language must match")
}
