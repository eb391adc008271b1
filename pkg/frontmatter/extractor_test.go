package frontmatter

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezerfernandes/mdfront/pkg/mdevent"
)

func TestNew_NilStream(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrNilStream)
}

func TestExtract_EventStreams(t *testing.T) {
	h1 := mdevent.Heading(1)
	para := mdevent.Paragraph()
	yaml := mdevent.FencedCode("yaml")

	tests := []struct {
		name   string
		events []mdevent.Event
		want   *Frontmatter
	}{
		{
			name: "empty code block",
			events: []mdevent.Event{
				mdevent.StartEvent(yaml),
				mdevent.EndEvent(yaml),
			},
			want: &Frontmatter{CodeBlock: &CodeBlock{Language: "yaml", Info: "yaml", Fenced: true}},
		},
		{
			name: "title and code block",
			events: []mdevent.Event{
				mdevent.StartEvent(h1),
				mdevent.TextEvent("Hello"),
				mdevent.EndEvent(h1),
				mdevent.StartEvent(yaml),
				mdevent.TextEvent("a: 1\n"),
				mdevent.EndEvent(yaml),
				mdevent.StartEvent(para),
			},
			want: &Frontmatter{
				Title:     "Hello",
				HasTitle:  true,
				CodeBlock: &CodeBlock{Language: "yaml", Info: "yaml", Fenced: true, Contents: "a: 1\n"},
			},
		},
		{
			name: "title only",
			events: []mdevent.Event{
				mdevent.StartEvent(h1),
				mdevent.TextEvent("Only"),
				mdevent.EndEvent(h1),
				mdevent.StartEvent(para),
				mdevent.TextEvent("body"),
				mdevent.EndEvent(para),
			},
			want: &Frontmatter{Title: "Only", HasTitle: true},
		},
		{
			name: "empty title",
			events: []mdevent.Event{
				mdevent.StartEvent(h1),
				mdevent.EndEvent(h1),
			},
			want: &Frontmatter{HasTitle: true},
		},
		{
			name: "leading paragraph",
			events: []mdevent.Event{
				mdevent.StartEvent(para),
				mdevent.TextEvent("text"),
				mdevent.EndEvent(para),
				mdevent.StartEvent(yaml),
				mdevent.EndEvent(yaml),
			},
		},
		{
			name: "code block before heading",
			events: []mdevent.Event{
				mdevent.StartEvent(yaml),
				mdevent.TextEvent("a: 1\n"),
				mdevent.EndEvent(yaml),
				mdevent.StartEvent(h1),
				mdevent.TextEvent("Late"),
				mdevent.EndEvent(h1),
			},
			want: &Frontmatter{CodeBlock: &CodeBlock{Language: "yaml", Info: "yaml", Fenced: true, Contents: "a: 1\n"}},
		},
		{
			name: "level two heading is not a title",
			events: []mdevent.Event{
				mdevent.StartEvent(mdevent.Heading(2)),
				mdevent.TextEvent("Sub"),
				mdevent.EndEvent(mdevent.Heading(2)),
				mdevent.StartEvent(yaml),
				mdevent.EndEvent(yaml),
			},
		},
		{
			name: "second heading is ignored",
			events: []mdevent.Event{
				mdevent.StartEvent(h1),
				mdevent.TextEvent("First"),
				mdevent.EndEvent(h1),
				mdevent.StartEvent(h1),
				mdevent.TextEvent("Second"),
				mdevent.EndEvent(h1),
			},
			want: &Frontmatter{Title: "First", HasTitle: true},
		},
		{
			name: "indented code block",
			events: []mdevent.Event{
				mdevent.StartEvent(mdevent.IndentedCode()),
				mdevent.TextEvent("x = 1\n"),
				mdevent.EndEvent(mdevent.IndentedCode()),
			},
			want: &Frontmatter{CodeBlock: &CodeBlock{Contents: "x = 1\n"}},
		},
		{
			name: "info string attributes",
			events: []mdevent.Event{
				mdevent.StartEvent(mdevent.FencedCode("toml draft=true")),
				mdevent.EndEvent(mdevent.FencedCode("toml draft=true")),
			},
			want: &Frontmatter{CodeBlock: &CodeBlock{
				Language: "toml",
				Info:     "toml draft=true",
				Meta:     mdevent.Meta{"draft": "true"},
				Fenced:   true,
			}},
		},
		{
			name: "unterminated code block",
			events: []mdevent.Event{
				mdevent.StartEvent(yaml),
				mdevent.TextEvent("a: 1\n"),
			},
			want: &Frontmatter{CodeBlock: &CodeBlock{Language: "yaml", Info: "yaml", Fenced: true, Contents: "a: 1\n"}},
		},
		{name: "empty stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor, err := New(mdevent.Events(tt.events...))
			require.NoError(t, err)

			assert.Equal(t, tt.want, extractor.Extract())
		})
	}
}

func TestExtract_ContentsConcatenateTextEvents(t *testing.T) {
	segments := []string{"  first line\n", "", "second\t\n", "no newline"}

	events := []mdevent.Event{mdevent.StartEvent(mdevent.FencedCode("text"))}
	for _, s := range segments {
		events = append(events, mdevent.TextEvent(s))
	}
	events = append(events, mdevent.EndEvent(mdevent.FencedCode("text")))

	extractor, err := New(mdevent.Events(events...))
	require.NoError(t, err)

	fm := extractor.Extract()
	require.NotNil(t, fm)
	require.NotNil(t, fm.CodeBlock)
	assert.Equal(t, strings.Join(segments, ""), fm.CodeBlock.Contents)
}

func TestExtract_SecondCallReturnsNil(t *testing.T) {
	extractor := FromMarkdown([]byte("# Title\n\n```yaml\na: 1\n```\n"))

	require.NotNil(t, extractor.Extract())
	assert.Nil(t, extractor.Extract())
	assert.Nil(t, extractor.Extract())
}

func TestExtract_SecondCallWithoutFrontmatter(t *testing.T) {
	extractor := FromMarkdown([]byte("plain text\n"))

	assert.Nil(t, extractor.Extract())
	assert.Nil(t, extractor.Extract())
}

func TestExtract_StopsPulling(t *testing.T) {
	h1 := mdevent.Heading(1)
	para := mdevent.Paragraph()
	stream := mdevent.Events(
		mdevent.StartEvent(h1),
		mdevent.TextEvent("T"),
		mdevent.EndEvent(h1),
		mdevent.StartEvent(para),
		mdevent.TextEvent("one"),
		mdevent.EndEvent(para),
		mdevent.StartEvent(para),
		mdevent.TextEvent("two"),
		mdevent.EndEvent(para),
	)

	extractor, err := New(stream)
	require.NoError(t, err)

	fm := extractor.Extract()
	require.NotNil(t, fm)
	assert.True(t, extractor.Resolved())
	assert.Equal(t, 5, stream.Remaining())
}

func TestExtract_StopsAfterCodeBlock(t *testing.T) {
	yaml := mdevent.FencedCode("yaml")
	stream := mdevent.Events(
		mdevent.StartEvent(yaml),
		mdevent.EndEvent(yaml),
		mdevent.StartEvent(mdevent.Paragraph()),
	)

	extractor, err := New(stream)
	require.NoError(t, err)

	require.NotNil(t, extractor.Extract())
	assert.Equal(t, 1, stream.Remaining())
}

func TestExtract_Markdown(t *testing.T) {
	src := "# My **Document**\n\n```toml\nhello = \"world\"\n```\n\nThis is regular text\n"

	fm := FromMarkdown([]byte(src)).Extract()
	require.NotNil(t, fm)
	assert.True(t, fm.HasTitle)
	assert.Equal(t, "My Document", fm.Title)
	require.NotNil(t, fm.CodeBlock)
	assert.Equal(t, "toml", fm.CodeBlock.Language)
	assert.Equal(t, "hello = \"world\"\n", fm.CodeBlock.Contents)
	assert.True(t, fm.CodeBlock.Fenced)
}

func TestExtract_MarkdownTitleIsDecoded(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{src: "# Fish &amp; Chips\n", want: "Fish & Chips"},
		{src: "# Tom \\*not\\* bold\n", want: "Tom *not* bold"},
		{src: "# Caf&#233;\n", want: "Café"},
		{src: "# Use `a &amp; b`\n", want: "Use a &amp; b"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			fm := FromMarkdown([]byte(tt.src)).Extract()
			require.NotNil(t, fm)
			assert.True(t, fm.HasTitle)
			assert.Equal(t, tt.want, fm.Title)
		})
	}
}

func TestExtract_MarkdownIndented(t *testing.T) {
	src := "# My **Document**\n\n    hello = \"world\"\n\nThis is regular text\n"

	fm := FromMarkdown([]byte(src)).Extract()
	require.NotNil(t, fm)
	assert.Equal(t, "My Document", fm.Title)
	require.NotNil(t, fm.CodeBlock)
	assert.Empty(t, fm.CodeBlock.Language)
	assert.False(t, fm.CodeBlock.Fenced)
	assert.Equal(t, "hello = \"world\"\n", fm.CodeBlock.Contents)
}

func TestExtract_MarkdownWithoutFrontmatter(t *testing.T) {
	tests := []string{
		"",
		"Just a paragraph.\n",
		"## Second level\n\n```yaml\na: 1\n```\n",
		"- list\n\n# Heading\n",
	}

	for _, src := range tests {
		assert.Nil(t, FromMarkdown([]byte(src)).Extract(), "source %q", src)
	}
}

func TestNext_DropsFrontmatterCodeBlock(t *testing.T) {
	src := "# Title\n\n```yaml\na: 1\n```\n\nBody\n"

	extractor := FromMarkdown([]byte(src))
	events := mdevent.Collect(extractor)

	var got []string
	for _, ev := range events {
		got = append(got, ev.String())
	}

	assert.Equal(t, []string{
		"start(h1)",
		`text("Title")`,
		"end(h1)",
		"start(paragraph)",
		`text("Body")`,
		"end(paragraph)",
	}, got)

	fm := extractor.Extract()
	require.NotNil(t, fm)
	assert.Equal(t, "Title", fm.Title)
	assert.Equal(t, "a: 1\n", fm.CodeBlock.Contents)
}

func TestNext_AfterExtractReplaysBody(t *testing.T) {
	src := "# Title\n\n```yaml\na: 1\n```\n\nBody\n\n```go\nlater\n```\n"

	extractor := FromMarkdown([]byte(src))
	require.NotNil(t, extractor.Extract())

	events := mdevent.Collect(extractor)
	require.Len(t, events, 9)
	assert.True(t, events[0].IsStart(mdevent.TagHeading))
	assert.True(t, events[3].IsStart(mdevent.TagParagraph))
	assert.True(t, events[6].IsStart(mdevent.TagCodeBlock))
	assert.Equal(t, "later\n", events[7].Text)
}

func TestNext_LaterCodeBlocksPassThrough(t *testing.T) {
	src := "Intro\n\n```yaml\na: 1\n```\n"

	events := mdevent.Collect(FromMarkdown([]byte(src)))
	require.Len(t, events, 6)
	assert.True(t, events[3].IsStart(mdevent.TagCodeBlock))
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

func TestFromReader(t *testing.T) {
	extractor, err := FromReader(strings.NewReader("```json\n{}\n```\n"))
	require.NoError(t, err)

	fm := extractor.Extract()
	require.NotNil(t, fm)
	assert.Equal(t, "json", fm.CodeBlock.Language)

	readErr := errors.New("disk on fire")
	_, err = FromReader(errReader{err: readErr})
	require.ErrorIs(t, err, readErr)
}
