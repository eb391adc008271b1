package frontmatter

import (
	"github.com/yuin/goldmark/ast"

	"github.com/ezerfernandes/mdfront/pkg/mdevent"
)

// Frontmatter is the metadata found at the very start of a Markdown document:
// a level-1 heading, a code block, or both.
type Frontmatter struct {
	// Title is the plain-text contents of the leading level-1 heading. It is
	// only meaningful when HasTitle is true; a heading may be empty.
	Title    string
	HasTitle bool

	// CodeBlock is the code block that starts the document or directly
	// follows the title. It is nil when there is none.
	CodeBlock *CodeBlock
}

// CodeBlock is the frontmatter code block.
type CodeBlock struct {
	// Language is the identifier following the opening fence, e.g. "toml".
	// It is empty for indented blocks and fences without an info string.
	Language string

	// Info is the full info string following the opening fence.
	Info string

	// Meta holds the attributes written after the language in the info
	// string. It is nil if there are none or they could not be parsed.
	Meta mdevent.Meta

	// Contents is the text between the fences, exactly as it appeared.
	Contents string

	// Fenced is true for fenced blocks and false for indented ones.
	Fenced bool

	node ast.Node
}

func newCodeBlock(tag mdevent.Tag, node ast.Node) *CodeBlock {
	block := &CodeBlock{
		Info:   tag.Info,
		Fenced: tag.Fence == mdevent.Fenced,
		node:   node,
	}

	if block.Fenced {
		// malformed attributes leave Meta nil; the language is still usable
		block.Language, block.Meta, _ = mdevent.ParseInfo(tag.Info)
	}

	return block
}
