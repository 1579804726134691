// Package cleanse provides a deterministic sanitizer for client supplied
// attribute values before they reach storage
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFC normalization
// 3 Remove format chars ZWJ ZWNJ FEFF etc
// 4 Collapse whitespace to single spaces and trim
// 5 Cap rune length
package cleanse

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxValueRunes caps each stored attribute value. Values past the cap are
// truncated, not rejected: a long referrer is still a usable referrer
const MaxValueRunes = 1024

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// NFC rather than NFKC: display text keeps its compatibility forms,
		// we only want a canonical byte encoding per value
		return transform.Chain(
			norm.NFC,
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
		)
	},
}

// Sanitizer is concurrency safe when used with the pool above
type Sanitizer struct{}

// New constructs a Sanitizer
func New() *Sanitizer { return &Sanitizer{} }

// Value returns the cleansed form of s following the pipeline described above
func (c *Sanitizer) Value(s string) string {
	if s == "" {
		return ""
	}

	// 1 repair UTF-8 drop invalid bytes
	s = strings.ToValidUTF8(s, "")

	// 2-3 transform via pooled chain then reset and return it
	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	// 4 collapse whitespace and trim
	ns = collapseSpaces(ns)

	// 5 cap
	return truncateRunes(ns, MaxValueRunes)
}

// collapseSpaces converts whitespace runs to a single ASCII space and trims
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}

// truncateRunes cuts s to at most n runes without splitting a rune
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
