// Package markdown reads and writes notes made of YAML frontmatter and a body
// with generated blocks, leaving user edits outside those blocks alone.
package markdown

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// Field is one frontmatter entry. Render keeps fields in the given order.
type Field struct {
	Key   string
	Value any
}

// Split separates frontmatter from body. Content without frontmatter yields
// an empty map and the content unchanged.
func Split(content string) (map[string]any, string, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, fence+"\n") {
		return map[string]any{}, content, nil
	}
	rest := content[len(fence)+1:]
	var raw, body string
	switch {
	case strings.HasPrefix(rest, fence+"\n"):
		body = rest[len(fence)+1:]
	default:
		idx := strings.Index(rest, "\n"+fence+"\n")
		if idx < 0 {
			if !strings.HasSuffix(rest, "\n"+fence) {
				return nil, "", fmt.Errorf("frontmatter is not closed")
			}
			idx = len(rest) - len(fence) - 1
			raw = rest[:idx]
		} else {
			raw = rest[:idx]
			body = rest[idx+len(fence)+2:]
		}
	}

	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, "", fmt.Errorf("decode frontmatter: %w", err)
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return meta, body, nil
}

// Render writes fields first, then any extra keys not already present in
// fields, sorted by key.
func Render(fields []Field, extra map[string]any, body string) (string, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if err := appendPair(doc, f.Key, f.Value); err != nil {
			return "", err
		}
		seen[f.Key] = true
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := appendPair(doc, k, extra[k]); err != nil {
			return "", err
		}
	}

	var buf bytes.Buffer
	buf.WriteString(fence + "\n")
	if len(doc.Content) > 0 {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return "", fmt.Errorf("encode frontmatter: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("encode frontmatter: %w", err)
		}
	}
	buf.WriteString(fence + "\n")
	if body != "" && !strings.HasPrefix(body, "\n") {
		buf.WriteByte('\n')
	}
	buf.WriteString(body)
	return buf.String(), nil
}

func appendPair(doc *yaml.Node, key string, value any) error {
	var v yaml.Node
	if err := v.Encode(value); err != nil {
		return fmt.Errorf("encode frontmatter %q: %w", key, err)
	}
	doc.Content = append(doc.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, &v)
	return nil
}
