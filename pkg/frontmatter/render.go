package frontmatter

import (
	"io"

	"github.com/ezerfernandes/mdfront/pkg/mdevent"
)

// RenderHTML renders source to w as HTML without its frontmatter code block
// and returns the Frontmatter it found. The title heading is rendered as part
// of the document.
func RenderHTML(w io.Writer, source []byte, opts ...mdevent.Option) (*Frontmatter, error) {
	doc := mdevent.Parse(source, opts...)

	extractor, err := New(doc)
	if err != nil {
		return nil, err
	}

	fm := extractor.Extract()
	if fm != nil && fm.CodeBlock != nil {
		detach(fm.CodeBlock)
	}

	if err := doc.Markdown().Renderer().Render(w, doc.Source(), doc.Root()); err != nil {
		return nil, err
	}

	return fm, nil
}

func detach(block *CodeBlock) {
	if block.node == nil {
		return
	}

	if parent := block.node.Parent(); parent != nil {
		parent.RemoveChild(parent, block.node)
	}
}
