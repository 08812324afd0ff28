package domain

import (
	"fmt"
	"strings"
)

type BookRef struct {
	ID              string
	Title           string
	Author          string
	FilePath        string
	TotalPages      int
	CurrentPage     int
	PercentComplete int
	Status          string
}

type Page struct {
	Number int
	Text   string
}

type OutlineEntry struct {
	Title    string
	Page     int
	Children []OutlineEntry
}

// Heading is a flattened outline entry, ready for a selectable list.
type Heading struct {
	Title string
	Page  int
	Depth int
}

// StartPage picks where to open a book: the requested page, else the saved
// position, else the first page. The result is clamped to [1, total].
func StartPage(requested, saved, total int) int {
	page := requested
	if page <= 0 {
		page = saved
	}
	return ClampPage(page, total)
}

func ClampPage(page, total int) int {
	if page < 1 {
		return 1
	}
	if total > 0 && page > total {
		return total
	}
	return page
}

func Flatten(entries []OutlineEntry) []Heading {
	var out []Heading
	var walk func([]OutlineEntry, int)
	walk = func(items []OutlineEntry, depth int) {
		for _, e := range items {
			out = append(out, Heading{Title: e.Title, Page: e.Page, Depth: depth})
			walk(e.Children, depth+1)
		}
	}
	walk(entries, 0)
	return out
}

// OutlineMarkdown renders the outline as a nested markdown list. Entries
// without a resolved page omit the page suffix.
func OutlineMarkdown(entries []OutlineEntry) string {
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	for _, h := range Flatten(entries) {
		b.WriteString(strings.Repeat("  ", h.Depth))
		b.WriteString("- ")
		b.WriteString(escapeMarkdown(h.Title))
		if h.Page > 0 {
			fmt.Fprintf(&b, " (p. %d)", h.Page)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `_`, `\_`, "`", "\\`", `[`, `\[`, `]`, `\]`)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(strings.TrimSpace(s))
}
