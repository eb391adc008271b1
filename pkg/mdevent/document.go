package mdevent

import (
	"bytes"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Option configures how a Document is parsed.
type Option func(*options)

type options struct {
	markdown goldmark.Markdown
}

// WithMarkdown parses with md instead of goldmark's default configuration,
// e.g. to enable extensions.
func WithMarkdown(md goldmark.Markdown) Option {
	return func(o *options) {
		o.markdown = md
	}
}

// Document is a Stream over a goldmark-parsed Markdown document. The AST is
// built up front, but events are generated on demand by walking it with a
// cursor, so pulling the first few events costs nothing for the rest of the
// document.
type Document struct {
	source   []byte
	markdown goldmark.Markdown
	root     ast.Node

	node     ast.Node
	entering bool
	done     bool
	queue    []Event
}

// Parse parses source and returns a Stream positioned at its first event.
func Parse(source []byte, opts ...Option) *Document {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if o.markdown == nil {
		o.markdown = goldmark.New()
	}

	root := o.markdown.Parser().Parse(text.NewReader(source))

	return &Document{
		source:   source,
		markdown: o.markdown,
		root:     root,
		node:     root,
		entering: true,
	}
}

// ParseReader reads all of r and parses it. Read errors are returned as is.
func ParseReader(r io.Reader, opts ...Option) (*Document, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return Parse(source, opts...), nil
}

// Root returns the document's AST.
func (d *Document) Root() ast.Node { return d.root }

// Source returns the Markdown the document was parsed from.
func (d *Document) Source() []byte { return d.source }

// Markdown returns the goldmark instance used for parsing.
func (d *Document) Markdown() goldmark.Markdown { return d.markdown }

// Next returns the next event, walking only as much of the AST as needed to
// produce it.
func (d *Document) Next() (Event, bool) {
	for len(d.queue) == 0 {
		if d.done {
			return Event{}, false
		}

		d.step()
	}

	ev := d.queue[0]
	d.queue = d.queue[1:]

	return ev, true
}

func (d *Document) step() {
	if d.entering {
		d.enter(d.node)
	} else {
		d.exit(d.node)
	}

	d.advance()
}

func (d *Document) advance() {
	n := d.node

	if d.entering {
		if child := n.FirstChild(); child != nil {
			d.node = child
		} else {
			d.entering = false
		}

		return
	}

	if n == d.root || n.Parent() == nil {
		d.done = true

		return
	}

	if next := n.NextSibling(); next != nil {
		d.node = next
		d.entering = true

		return
	}

	d.node = n.Parent()
}

func (d *Document) emit(events ...Event) {
	d.queue = append(d.queue, events...)
}

func (d *Document) enter(n ast.Node) {
	switch node := n.(type) {
	case *ast.Text:
		value := node.Segment.Value(d.source)
		if !node.IsRaw() {
			value = unescape(value)
		}

		d.emit(Event{Kind: KindText, Text: string(value), Node: n})

		switch {
		case node.HardLineBreak():
			d.emit(Event{Kind: KindHardBreak, Node: n})
		case node.SoftLineBreak():
			d.emit(Event{Kind: KindSoftBreak, Node: n})
		}
	case *ast.String:
		d.emit(Event{Kind: KindText, Text: string(node.Value), Node: n})
	case *ast.ThematicBreak:
		d.emit(Event{Kind: KindRule, Node: n})
	case *ast.RawHTML:
		d.emit(Event{Kind: KindHTML, Text: d.segments(node.Segments), Node: n})
	case *ast.HTMLBlock:
		html := d.lines(n)
		if node.HasClosure() {
			html += string(node.ClosureLine.Value(d.source))
		}

		d.emit(Event{Kind: KindHTML, Text: html, Node: n})
	case *ast.AutoLink:
		tag := Tag{Kind: TagLink, Destination: string(node.URL(d.source))}
		d.emit(
			Event{Kind: KindStart, Tag: tag, Node: n},
			Event{Kind: KindText, Text: string(node.Label(d.source)), Node: n},
			Event{Kind: KindEnd, Tag: tag, Node: n},
		)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		tag, _ := d.tag(n)
		d.emit(Event{Kind: KindStart, Tag: tag, Node: n})

		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			d.emit(Event{Kind: KindText, Text: string(seg.Value(d.source)), Node: n})
		}
	default:
		if tag, ok := d.tag(n); ok {
			d.emit(Event{Kind: KindStart, Tag: tag, Node: n})
		}
	}
}

func (d *Document) exit(n ast.Node) {
	switch n.(type) {
	case *ast.Text, *ast.String, *ast.ThematicBreak, *ast.RawHTML, *ast.HTMLBlock, *ast.AutoLink:
		return
	}

	if tag, ok := d.tag(n); ok {
		d.emit(Event{Kind: KindEnd, Tag: tag, Node: n})
	}
}

// tag maps container nodes to their Tag. Document and TextBlock nodes are
// transparent and produce no events.
func (d *Document) tag(n ast.Node) (Tag, bool) {
	switch node := n.(type) {
	case *ast.Document, *ast.TextBlock:
		return Tag{}, false
	case *ast.Paragraph:
		return Tag{Kind: TagParagraph}, true
	case *ast.Heading:
		return Tag{Kind: TagHeading, Level: node.Level}, true
	case *ast.Blockquote:
		return Tag{Kind: TagBlockQuote}, true
	case *ast.FencedCodeBlock:
		tag := Tag{Kind: TagCodeBlock, Fence: Fenced}
		if node.Info != nil {
			tag.Info = string(node.Info.Segment.Value(d.source))
		}

		return tag, true
	case *ast.CodeBlock:
		return Tag{Kind: TagCodeBlock, Fence: Indented}, true
	case *ast.List:
		return Tag{Kind: TagList, Ordered: node.IsOrdered(), Start: node.Start}, true
	case *ast.ListItem:
		return Tag{Kind: TagItem}, true
	case *ast.Emphasis:
		if node.Level >= 2 { //nolint:gomnd
			return Tag{Kind: TagStrong}, true
		}

		return Tag{Kind: TagEmphasis}, true
	case *ast.CodeSpan:
		return Tag{Kind: TagCodeSpan}, true
	case *ast.Link:
		return Tag{Kind: TagLink, Destination: string(node.Destination), Title: string(node.Title)}, true
	case *ast.Image:
		return Tag{Kind: TagImage, Destination: string(node.Destination), Title: string(node.Title)}, true
	default:
		return Tag{Kind: TagOther, Name: n.Kind().String()}, true
	}
}

func (d *Document) lines(n ast.Node) string {
	return d.segments(n.Lines())
}

func (d *Document) segments(segs *text.Segments) string {
	if segs == nil {
		return ""
	}

	var buff bytes.Buffer

	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)

		buff.Write(seg.Value(d.source))
	}

	return buff.String()
}

// unescape resolves backslash escapes and character references in inline
// text, as goldmark's HTML renderer does before writing it. Code span text is
// raw and never passes through here.
func unescape(value []byte) []byte {
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)

	return util.ResolveEntityNames(value)
}
