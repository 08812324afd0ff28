// Package pdftest writes small but well-formed PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
)

type Layout struct {
	Title  string
	Author string
	// Pages holds the text of each page; lines are split on "\n".
	Pages []string
	// Outline maps a heading to a 1-based page number.
	Outline []Heading
}

type Heading struct {
	Title string
	Page  int
}

// Write renders layout to path and fails the test on error.
func Write(t testing.TB, path string, layout Layout) {
	t.Helper()
	if err := os.WriteFile(path, Build(layout), 0o644); err != nil {
		t.Fatalf("write pdf fixture: %v", err)
	}
}

// Build renders layout into PDF bytes with a classic xref table.
func Build(layout Layout) []byte {
	n := len(layout.Pages)
	// 1 catalog, 2 pages, 3 font, 4 info, 5 outlines, then page/content pairs, then outline items.
	pageObj := func(i int) int { return 6 + 2*i }
	contentObj := func(i int) int { return 7 + 2*i }
	itemObj := func(i int) int { return 6 + 2*n + i }
	total := 5 + 2*n + len(layout.Outline)

	objects := make([]string, total+1)
	catalog := "<< /Type /Catalog /Pages 2 0 R"
	if len(layout.Outline) > 0 {
		catalog += " /Outlines 5 0 R"
	}
	objects[1] = catalog + " >>"

	kids := make([]string, 0, n)
	for i := range layout.Pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", pageObj(i)))
	}
	objects[2] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n)
	objects[3] = "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>"
	objects[4] = fmt.Sprintf("<< /Title (%s) /Author (%s) >>", escape(layout.Title), escape(layout.Author))

	if len(layout.Outline) > 0 {
		objects[5] = fmt.Sprintf("<< /Type /Outlines /First %d 0 R /Last %d 0 R /Count %d >>",
			itemObj(0), itemObj(len(layout.Outline)-1), len(layout.Outline))
	} else {
		objects[5] = "<< /Type /Outlines /Count 0 >>"
	}

	for i, text := range layout.Pages {
		var content strings.Builder
		content.WriteString("BT /F1 12 Tf 72 720 Td")
		for j, line := range strings.Split(text, "\n") {
			if j > 0 {
				content.WriteString(" 0 -16 Td")
			}
			fmt.Fprintf(&content, " (%s) Tj", escape(line))
		}
		content.WriteString(" ET")
		stream := content.String()
		objects[pageObj(i)] = fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", contentObj(i))
		objects[contentObj(i)] = fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream)
	}

	for i, h := range layout.Outline {
		item := fmt.Sprintf("<< /Title (%s) /Parent 5 0 R /Dest [%d 0 R /Fit]", escape(h.Title), pageObj(h.Page-1))
		if i > 0 {
			item += fmt.Sprintf(" /Prev %d 0 R", itemObj(i-1))
		}
		if i < len(layout.Outline)-1 {
			item += fmt.Sprintf(" /Next %d 0 R", itemObj(i+1))
		}
		objects[itemObj(i)] = item + " >>"
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, total+1)
	for i := 1; i <= total; i++ {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i, objects[i])
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", total+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= total; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info 4 0 R >>\nstartxref\n%d\n%%%%EOF\n", total+1, xref)
	return buf.Bytes()
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
