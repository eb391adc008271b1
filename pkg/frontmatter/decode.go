package frontmatter

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNoCodeBlock is returned when decoding Frontmatter without a code block.
	ErrNoCodeBlock = errors.New("frontmatter: no code block")

	// ErrUnsupportedLanguage is returned when a code block's language has no
	// known decoder.
	ErrUnsupportedLanguage = errors.New("frontmatter: unsupported language")
)

// Formats lists the languages Decode understands.
var Formats = []string{"yaml", "yml", "toml", "json"}

// Decode unmarshals the code block contents into v, picking the decoder from
// the block's language.
func (c *CodeBlock) Decode(v interface{}) error {
	return c.DecodeAs(c.Language, v)
}

// DecodeAs unmarshals the code block contents into v as format, regardless of
// the block's language. format is one of [Formats], case-insensitive.
func (c *CodeBlock) DecodeAs(format string, v interface{}) error {
	data := []byte(c.Contents)

	var err error

	switch strings.ToLower(format) {
	case "yaml", "yml":
		err = yaml.Unmarshal(data, v)
	case "toml":
		err = toml.Unmarshal(data, v)
	case "json":
		err = json.Unmarshal(data, v)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, format)
	}

	if err != nil {
		return fmt.Errorf("frontmatter: decoding %s: %w", strings.ToLower(format), err)
	}

	return nil
}

// Decode unmarshals the frontmatter code block into v.
func (f *Frontmatter) Decode(v interface{}) error {
	if f.CodeBlock == nil {
		return ErrNoCodeBlock
	}

	return f.CodeBlock.Decode(v)
}
