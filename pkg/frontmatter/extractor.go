package frontmatter

import (
	"errors"
	"io"
	"strings"

	"github.com/ezerfernandes/mdfront/pkg/mdevent"
)

// ErrNilStream is returned by New when it is given no stream.
var ErrNilStream = errors.New("frontmatter: nil event stream")

type state int

const (
	stateStart state = iota
	stateTitle
	stateAfterTitle
	stateCodeBlock
	stateResolved
)

// Extractor detects Frontmatter at the start of an event stream.
//
// An Extractor is itself a [mdevent.Stream]: Next yields the wrapped stream's
// events with the frontmatter code block removed, so it can stand in for the
// wrapped stream in front of a renderer. The heading events are kept.
type Extractor struct {
	source mdevent.Stream
	state  state

	// events pulled by Extract that Next has not handed out yet
	pending []mdevent.Event

	title    strings.Builder
	hasTitle bool
	block    *CodeBlock
	contents strings.Builder

	result *Frontmatter
	taken  bool
}

// New returns an Extractor reading from stream.
func New(stream mdevent.Stream) (*Extractor, error) {
	if stream == nil {
		return nil, ErrNilStream
	}

	return &Extractor{source: stream}, nil
}

// FromMarkdown returns an Extractor over source parsed with goldmark.
func FromMarkdown(source []byte, opts ...mdevent.Option) *Extractor {
	return &Extractor{source: mdevent.Parse(source, opts...)}
}

// FromReader reads a Markdown document from r and returns an Extractor over
// it. Errors from reading r are returned unchanged.
func FromReader(r io.Reader, opts ...mdevent.Option) (*Extractor, error) {
	doc, err := mdevent.ParseReader(r, opts...)
	if err != nil {
		return nil, err
	}

	return New(doc)
}

// Extract scans the start of the document and returns its Frontmatter, or
// nil if the document has none. It pulls only the events needed to decide
// and leaves the rest of the stream to Next.
//
// Only the first call returns a result; later calls return nil.
func (e *Extractor) Extract() *Frontmatter {
	if e.taken {
		return nil
	}

	for e.state != stateResolved {
		ev, ok := e.source.Next()
		if !ok {
			e.resolve()

			break
		}

		if e.scan(ev) {
			e.pending = append(e.pending, ev)
		}
	}

	e.taken = true

	return e.result
}

// Resolved reports whether the frontmatter region has been fully scanned.
func (e *Extractor) Resolved() bool {
	return e.state == stateResolved
}

// Next returns the next event of the wrapped stream, skipping the events of
// the frontmatter code block. Events Extract pulled ahead are served first.
func (e *Extractor) Next() (mdevent.Event, bool) {
	if len(e.pending) > 0 {
		ev := e.pending[0]
		e.pending = e.pending[1:]

		return ev, true
	}

	for {
		ev, ok := e.source.Next()
		if !ok {
			e.resolve()

			return mdevent.Event{}, false
		}

		if e.state == stateResolved || e.scan(ev) {
			return ev, true
		}
	}
}

// scan feeds ev through the state machine and reports whether ev belongs to
// the document body rather than to the frontmatter code block.
func (e *Extractor) scan(ev mdevent.Event) bool {
	switch e.state {
	case stateStart:
		if ev.IsStart(mdevent.TagHeading) && ev.Tag.Level == 1 {
			e.hasTitle = true
			e.state = stateTitle

			return true
		}

		return e.scanCodeBlockStart(ev)
	case stateTitle:
		switch {
		case ev.Kind == mdevent.KindText:
			e.title.WriteString(ev.Text)
		case ev.IsEnd(mdevent.TagHeading):
			e.state = stateAfterTitle
		}

		return true
	case stateAfterTitle:
		return e.scanCodeBlockStart(ev)
	case stateCodeBlock:
		switch {
		case ev.Kind == mdevent.KindText:
			e.contents.WriteString(ev.Text)
		case ev.IsEnd(mdevent.TagCodeBlock):
			e.resolve()
		}

		return false
	}

	return true
}

func (e *Extractor) scanCodeBlockStart(ev mdevent.Event) bool {
	if ev.IsStart(mdevent.TagCodeBlock) {
		e.block = newCodeBlock(ev.Tag, ev.Node)
		e.state = stateCodeBlock

		return false
	}

	e.resolve()

	return true
}

func (e *Extractor) resolve() {
	if e.state == stateResolved {
		return
	}

	e.state = stateResolved

	if !e.hasTitle && e.block == nil {
		return
	}

	e.result = &Frontmatter{
		Title:    e.title.String(),
		HasTitle: e.hasTitle,
	}

	if e.block != nil {
		e.block.Contents = e.contents.String()
		e.result.CodeBlock = e.block
	}
}
