// Package pdfdoc wraps rsc.io/pdf with the few operations the app needs:
// metadata, page count, plain-text pages and the outline.
package pdfdoc

import (
	"fmt"
	"math"
	"os"
	"strings"

	"rsc.io/pdf"
)

// maxOutlineEntries bounds outline walks on malformed files with cyclic links.
const maxOutlineEntries = 2000

type Document struct {
	file   *os.File
	reader *pdf.Reader
}

type OutlineEntry struct {
	Title    string
	Page     int // 1-based, 0 when the destination could not be resolved
	Children []OutlineEntry
}

// Open parses the cross-reference table of the file at path. Callers must Close it.
func Open(path string) (doc *Document, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat pdf: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			_ = f.Close()
			doc, err = nil, fmt.Errorf("malformed pdf: %v", r)
		}
	}()
	reader, err := pdf.NewReader(f, info.Size())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("parse pdf: %w", err)
	}
	return &Document{file: f, reader: reader}, nil
}

func (d *Document) Close() error {
	return d.file.Close()
}

func (d *Document) PageCount() int {
	return d.reader.NumPage()
}

func (d *Document) Title() string {
	return d.info("Title")
}

func (d *Document) Author() string {
	return d.info("Author")
}

func (d *Document) info(key string) (out string) {
	defer func() {
		if recover() != nil {
			out = ""
		}
	}()
	return strings.TrimSpace(d.reader.Trailer().Key("Info").Key(key).Text())
}

// PageText extracts the text of page n (1-based), one output line per text baseline.
func (d *Document) PageText(n int) (text string, err error) {
	if n < 1 || n > d.PageCount() {
		return "", fmt.Errorf("page %d outside [1,%d]", n, d.PageCount())
	}
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("extract page %d: %v", n, r)
		}
	}()
	p := d.reader.Page(n)
	if p.V.IsNull() {
		return "", fmt.Errorf("pdf page %d is null", n)
	}

	var (
		b       strings.Builder
		lastY   = math.NaN()
		lastEnd float64
	)
	for _, t := range p.Content().Text {
		switch {
		case math.IsNaN(lastY):
		case math.Abs(t.Y-lastY) > t.FontSize/2:
			b.WriteByte('\n')
		case t.X > lastEnd+t.FontSize*0.15:
			b.WriteByte(' ')
		}
		b.WriteString(t.S)
		lastY = t.Y
		lastEnd = t.X + t.W
	}
	lines := strings.Split(b.String(), "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n"), nil
}

// Outline returns the document outline with destinations resolved to page numbers
// when they point directly at a page.
func (d *Document) Outline() (entries []OutlineEntry, err error) {
	defer func() {
		if r := recover(); r != nil {
			entries, err = nil, fmt.Errorf("read outline: %v", r)
		}
	}()
	root := d.reader.Trailer().Key("Root")
	first := root.Key("Outlines").Key("First")
	if first.IsNull() {
		return nil, nil
	}
	w := outlineWalker{doc: d, dests: root.Key("Dests")}
	return w.walk(first, 0), nil
}

type outlineWalker struct {
	doc   *Document
	dests pdf.Value
	pages map[string]int
	seen  int
}

func (w *outlineWalker) walk(item pdf.Value, depth int) []OutlineEntry {
	var out []OutlineEntry
	for !item.IsNull() && w.seen < maxOutlineEntries && depth < 32 {
		w.seen++
		entry := OutlineEntry{
			Title: strings.TrimSpace(item.Key("Title").Text()),
			Page:  w.resolve(item),
		}
		if child := item.Key("First"); !child.IsNull() {
			entry.Children = w.walk(child, depth+1)
		}
		out = append(out, entry)
		item = item.Key("Next")
	}
	return out
}

func (w *outlineWalker) resolve(item pdf.Value) int {
	dest := item.Key("Dest")
	if dest.IsNull() {
		dest = item.Key("A").Key("D")
	}
	switch dest.Kind() {
	case pdf.Name, pdf.String:
		name := dest.Name()
		if dest.Kind() == pdf.String {
			name = dest.RawString()
		}
		dest = w.dests.Key(name)
		if dest.Kind() == pdf.Dict {
			dest = dest.Key("D")
		}
	}
	if dest.Kind() != pdf.Array || dest.Len() == 0 {
		return 0
	}
	target := dest.Index(0)
	if target.Kind() == pdf.Integer {
		return int(target.Int64()) + 1
	}
	return w.pageIndex()[pageKey(target)]
}

// pageIndex maps a page fingerprint to its 1-based number. rsc.io/pdf hides
// object identity, so the Contents reference stands in for it.
func (w *outlineWalker) pageIndex() map[string]int {
	if w.pages != nil {
		return w.pages
	}
	w.pages = make(map[string]int, w.doc.PageCount())
	for i := 1; i <= w.doc.PageCount(); i++ {
		if key := pageKey(w.doc.reader.Page(i).V); key != "" {
			w.pages[key] = i
		}
	}
	return w.pages
}

func pageKey(page pdf.Value) string {
	contents := page.Key("Contents")
	if contents.IsNull() {
		return ""
	}
	return contents.String()
}
