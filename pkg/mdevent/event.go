// Package mdevent turns Markdown into a pull-based stream of structural
// events (start/end of containers, text, breaks, raw HTML) on top of goldmark.
package mdevent

import (
	"fmt"

	"github.com/yuin/goldmark/ast"
)

// Kind identifies the type of an Event.
type Kind int

const (
	// KindStart opens a container described by the event's Tag.
	KindStart Kind = iota + 1
	// KindEnd closes the container opened by the matching KindStart.
	KindEnd
	// KindText carries inline text or one line of a code block.
	KindText
	// KindSoftBreak is a line ending inside a paragraph.
	KindSoftBreak
	// KindHardBreak is a line ending rendered as <br>.
	KindHardBreak
	// KindHTML carries inline or block-level raw HTML.
	KindHTML
	// KindRule is a thematic break.
	KindRule
)

// String returns the lower-case name of k.
func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindEnd:
		return "end"
	case KindText:
		return "text"
	case KindSoftBreak:
		return "softbreak"
	case KindHardBreak:
		return "hardbreak"
	case KindHTML:
		return "html"
	case KindRule:
		return "rule"
	}

	return fmt.Sprintf("kind(%d)", int(k))
}

// TagKind identifies the container opened or closed by a start or end Event.
type TagKind int

const (
	// TagParagraph is a paragraph.
	TagParagraph TagKind = iota + 1
	// TagHeading is a heading; Tag.Level holds its level.
	TagHeading
	// TagBlockQuote is a block quote.
	TagBlockQuote
	// TagCodeBlock is a code block; Tag.Fence and Tag.Info describe it.
	TagCodeBlock
	// TagList is an ordered or bullet list.
	TagList
	// TagItem is a list item.
	TagItem
	// TagEmphasis is emphasized text.
	TagEmphasis
	// TagStrong is strongly emphasized text.
	TagStrong
	// TagCodeSpan is inline code.
	TagCodeSpan
	// TagLink is a link or autolink.
	TagLink
	// TagImage is an image.
	TagImage
	// TagOther is any other goldmark node; Tag.Name holds its kind.
	TagOther
)

var tagNames = map[TagKind]string{
	TagParagraph:  "paragraph",
	TagHeading:    "heading",
	TagBlockQuote: "blockquote",
	TagCodeBlock:  "codeblock",
	TagList:       "list",
	TagItem:       "item",
	TagEmphasis:   "emphasis",
	TagStrong:     "strong",
	TagCodeSpan:   "codespan",
	TagLink:       "link",
	TagImage:      "image",
	TagOther:      "other",
}

// String returns the lower-case name of k.
func (k TagKind) String() string {
	if name, ok := tagNames[k]; ok {
		return name
	}

	return fmt.Sprintf("tag(%d)", int(k))
}

// CodeBlockKind tells fenced code blocks apart from indented ones.
type CodeBlockKind int

const (
	// Indented is a code block indented by four spaces.
	Indented CodeBlockKind = iota
	// Fenced is a code block between ``` or ~~~ fences.
	Fenced
)

// Tag describes a container element. Only the fields relevant to Kind are set.
type Tag struct {
	Kind TagKind

	// Level is the heading level, 1 to 6.
	Level int

	// Fence and Info are set for code blocks. Info is the raw text after the
	// opening fence.
	Fence CodeBlockKind
	Info  string

	// Destination and Title are set for links and images.
	Destination string
	Title       string

	// Ordered and Start are set for lists. Start is the first item number.
	Ordered bool
	Start   int

	// Name holds the goldmark node kind for TagOther.
	Name string
}

// Language returns the first word of a code block's info string.
func (t Tag) Language() string {
	lang, _, _ := ParseInfo(t.Info)

	return lang
}

// String returns a short label such as "h1" or "codeblock(toml)".
func (t Tag) String() string {
	switch t.Kind {
	case TagHeading:
		return fmt.Sprintf("h%d", t.Level)
	case TagCodeBlock:
		if t.Fence == Indented {
			return "codeblock(indented)"
		}

		return fmt.Sprintf("codeblock(%s)", t.Info)
	case TagOther:
		return t.Name
	default:
		return t.Kind.String()
	}
}

// Event is a single structural token of a Markdown document.
type Event struct {
	Kind Kind
	Tag  Tag
	Text string

	// Node is the goldmark node the event was produced from. It is nil for
	// events built by hand.
	Node ast.Node
}

// IsStart reports whether e opens a container of the given kind.
func (e Event) IsStart(kind TagKind) bool {
	return e.Kind == KindStart && e.Tag.Kind == kind
}

// IsEnd reports whether e closes a container of the given kind.
func (e Event) IsEnd(kind TagKind) bool {
	return e.Kind == KindEnd && e.Tag.Kind == kind
}

// String returns a compact form of e such as "start(h1)" or `text("Hi")`.
func (e Event) String() string {
	switch e.Kind {
	case KindStart, KindEnd:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Tag)
	case KindText, KindHTML:
		return fmt.Sprintf("%s(%q)", e.Kind, e.Text)
	default:
		return e.Kind.String()
	}
}

// StartEvent returns an event opening tag.
func StartEvent(tag Tag) Event { return Event{Kind: KindStart, Tag: tag} }

// EndEvent returns an event closing tag.
func EndEvent(tag Tag) Event { return Event{Kind: KindEnd, Tag: tag} }

// TextEvent returns a text event.
func TextEvent(text string) Event { return Event{Kind: KindText, Text: text} }

// Heading returns the tag of a heading of the given level.
func Heading(level int) Tag { return Tag{Kind: TagHeading, Level: level} }

// Paragraph returns the tag of a paragraph.
func Paragraph() Tag { return Tag{Kind: TagParagraph} }

// FencedCode returns the tag of a fenced code block with the given info string.
func FencedCode(info string) Tag { return Tag{Kind: TagCodeBlock, Fence: Fenced, Info: info} }

// IndentedCode returns the tag of an indented code block.
func IndentedCode() Tag { return Tag{Kind: TagCodeBlock, Fence: Indented} }
