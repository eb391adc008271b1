package cmd

import (
	_ "embed"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ezerfernandes/mdfront/pkg/frontmatter"
	"github.com/ezerfernandes/mdfront/pkg/mdevent"
)

//go:embed help/events.md
var eventsHelp string

const (
	roleTitle     = "title"
	roleCodeBlock = "frontmatter"
)

// recorder remembers every event pulled through it.
type recorder struct {
	stream mdevent.Stream
	pulled []mdevent.Event
}

func (r *recorder) Next() (mdevent.Event, bool) {
	ev, ok := r.stream.Next()
	if ok {
		r.pulled = append(r.pulled, ev)
	}

	return ev, ok
}

type eventRow struct {
	event mdevent.Event
	role  string
}

func eventsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "events [flags] [filename]",
		Aliases: []string{"ev"},
		Short:   "List the Markdown events of a document and the ones forming its frontmatter",
		Long:    eventsHelp,
		Args:    checkargs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return eventsRun(cmd.OutOrStdout(), source(args), opts)
		},

		DisableAutoGenTag: true,
	}

	return cmd
}

func eventsRun(out io.Writer, filename string, opts *options) error {
	src, err := opts.read(filename)
	if err != nil {
		return err
	}

	rows, err := classify(mdevent.Parse(src))
	if err != nil {
		return errors.Wrapf(err, "scanning %s", filename)
	}

	tbl := newTable(out, "#", "EVENT", "ROLE")
	for i, row := range rows {
		tbl.AddRow(i, row.event.String(), row.role)
	}

	tbl.Print()

	return nil
}

// classify runs stream through an Extractor and labels each event: title
// events, frontmatter code block events (the ones the extractor swallows),
// and body events.
func classify(stream mdevent.Stream) ([]eventRow, error) {
	rec := &recorder{stream: stream}

	extractor, err := frontmatter.New(rec)
	if err != nil {
		return nil, err
	}

	passed := mdevent.Collect(extractor)
	fm := extractor.Extract()

	rows := make([]eventRow, 0, len(rec.pulled))
	inTitle := fm != nil && fm.HasTitle
	next := 0

	for _, ev := range rec.pulled {
		row := eventRow{event: ev}

		switch {
		case next < len(passed) && passed[next] == ev:
			next++

			if inTitle {
				row.role = roleTitle
				inTitle = !ev.IsEnd(mdevent.TagHeading)
			}
		default:
			row.role = roleCodeBlock
		}

		rows = append(rows, row)
	}

	if next != len(passed) {
		return nil, errors.Newf("event stream out of sync: %d of %d events matched", next, len(passed))
	}

	return rows, nil
}
