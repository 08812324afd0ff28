// Package slug turns titles into file names that are stable across exports.
package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLen keeps generated names well inside common file name limits.
const MaxLen = 80

const fallback = "untitled"

// Make lowercases input, folds accents to ASCII and joins the remaining
// letter and digit runs with single dashes.
func Make(input string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), input)
	if err != nil {
		folded = input
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
	}
	s := b.String()
	if len(s) > MaxLen {
		s = strings.TrimRight(s[:MaxLen], "-")
	}
	if s == "" {
		return fallback
	}
	return s
}

// Registry hands out unique slugs, suffixing repeats with -2, -3 and so on.
type Registry struct {
	taken map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{taken: map[string]struct{}{}}
}

func (r *Registry) Claim(input string) string {
	base := Make(input)
	candidate := base
	for n := 2; ; n++ {
		if _, ok := r.taken[candidate]; !ok {
			r.taken[candidate] = struct{}{}
			return candidate
		}
		candidate = base + "-" + strconv.Itoa(n)
	}
}
