package mdevent

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/shlex"
)

// Meta holds key-value attributes parsed from a code block's info string.
type Meta map[string]interface{}

// Get returns the attribute name as a string. JSON attributes that are not
// strings are formatted with fmt; missing and null attributes read as "".
func (m Meta) Get(name string) string {
	switch value := m[name].(type) {
	case nil:
		return ""
	case string:
		return value
	default:
		return fmt.Sprint(value)
	}
}

// ParseInfo splits a fenced code block's info string into the language (the
// first word) and the attributes following it. Attributes are either a JSON
// object or shell-quoted key=value words, optionally wrapped in braces:
//
//	yaml title="My page" draft=true
//	toml {"weight": 10}
//
// The language is returned even when the attributes fail to parse.
func ParseInfo(info string) (string, Meta, error) {
	info = strings.TrimSpace(info)

	end := strings.IndexFunc(info, unicode.IsSpace)
	if end < 0 {
		return info, nil, nil
	}

	lang := info[:end]

	meta, err := parseAttributes(strings.TrimSpace(info[end:]))
	if err != nil {
		return lang, nil, fmt.Errorf("code fence attributes: %w", err)
	}

	return lang, meta, nil
}

func parseAttributes(attrs string) (Meta, error) {
	if isJSONObject(attrs) {
		var meta Meta
		if err := json.Unmarshal([]byte(attrs), &meta); err != nil {
			return nil, err
		}

		return meta, nil
	}

	if strings.HasPrefix(attrs, "{") && strings.HasSuffix(attrs, "}") {
		attrs = attrs[1 : len(attrs)-1]
	}

	words, err := shlex.Split(attrs)
	if err != nil {
		return nil, err
	}

	meta := make(Meta, len(words))

	// bare words such as "linenos" carry no value and are not kept
	for _, word := range words {
		if key, value, ok := strings.Cut(word, "="); ok {
			meta[key] = value
		}
	}

	return meta, nil
}

// isJSONObject tells `{"weight": 10}` and `{}` apart from `{weight=10}`.
func isJSONObject(attrs string) bool {
	body, ok := strings.CutPrefix(attrs, "{")
	if !ok {
		return false
	}

	body = strings.TrimLeftFunc(body, unicode.IsSpace)

	return strings.HasPrefix(body, `"`) || strings.HasPrefix(body, "}")
}
