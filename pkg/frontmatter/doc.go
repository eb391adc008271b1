// Package frontmatter extracts metadata from the start of a Markdown
// document: an optional level-1 heading used as the title, optionally
// followed by a code block holding structured attributes.
//
//	# Release notes
//
//	```toml
//	author = "ada"
//	date = 2024-03-01
//	```
//
//	The rest of the document...
//
// # Basic Usage
//
//	fm := frontmatter.FromMarkdown(source).Extract()
//	if fm == nil {
//		// no frontmatter
//	}
//
//	var attrs struct {
//		Author string `toml:"author"`
//	}
//	if err := fm.Decode(&attrs); err != nil {
//		log.Fatal(err)
//	}
//
// # Detection
//
// The heading must be the first element of the document and must be level 1.
// The code block must be the first element, or the one right after the
// heading. Anything else in either position ends the scan, so a code block
// that precedes the heading is captured while the heading is not. Extract
// pulls events one at a time and stops as soon as the pattern is decided.
//
// # Rendering
//
// [Extractor] implements [mdevent.Stream] and passes through every event
// except those of the frontmatter code block. [RenderHTML] renders a document
// to HTML with the code block removed.
//
// # Error Handling
//
// Not finding frontmatter is not an error: Extract returns nil. The package
// defines sentinel errors for the remaining cases:
//
//   - [ErrNilStream]: New was called without a stream
//   - [ErrNoCodeBlock]: Decode on Frontmatter that has only a title
//   - [ErrUnsupportedLanguage]: the code block language has no decoder
package frontmatter
