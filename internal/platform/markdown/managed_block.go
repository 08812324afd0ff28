package markdown

import (
	"strings"
)

// Block is a region of a note owned by the exporter, delimited by HTML
// comments so it stays invisible in rendered markdown.
type Block struct {
	Name string
}

func (b Block) start() string { return "<!-- readenvy:" + b.Name + ":start -->" }
func (b Block) end() string   { return "<!-- readenvy:" + b.Name + ":end -->" }

// Replace swaps the block's content in body, appending the block when body
// does not contain it yet.
func (b Block) Replace(body, generated string) string {
	block := b.start() + "\n" + strings.TrimRight(generated, "\n") + "\n" + b.end()

	start := strings.Index(body, b.start())
	if start >= 0 {
		if rel := strings.Index(body[start:], b.end()); rel >= 0 {
			end := start + rel + len(b.end())
			return body[:start] + block + body[end:]
		}
	}

	switch trimmed := strings.TrimRight(body, "\n"); {
	case strings.TrimSpace(trimmed) == "":
		return block + "\n"
	default:
		return trimmed + "\n\n" + block + "\n"
	}
}

// Content returns the text between the block markers.
func (b Block) Content(body string) (string, bool) {
	start := strings.Index(body, b.start())
	if start < 0 {
		return "", false
	}
	from := start + len(b.start())
	rel := strings.Index(body[from:], b.end())
	if rel < 0 {
		return "", false
	}
	return strings.Trim(body[from:from+rel], "\n"), true
}

// Table renders a GitHub-flavoured markdown table. Pipes in cells are escaped.
func Table(headers []string, rows [][]string) string {
	var sb strings.Builder
	writeRow := func(cells []string) {
		sb.WriteString("|")
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = strings.ReplaceAll(strings.ReplaceAll(cells[i], "|", `\|`), "\n", " ")
			}
			sb.WriteString(" " + cell + " |")
		}
		sb.WriteString("\n")
	}
	writeRow(headers)
	sb.WriteString("|")
	for range headers {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")
	for _, r := range rows {
		writeRow(r)
	}
	return sb.String()
}
