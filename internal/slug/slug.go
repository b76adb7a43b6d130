// Package slug turns titles and image URLs into filename-safe tokens.
package slug

import (
	"net/url"
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fallback is the stem used when a title slugs to nothing.
const fallback = "untitled"

// Slugify lowercases s, folds accented letters to ASCII and joins every run
// of remaining alphanumerics with a single hyphen.
func Slugify(s string) string {
	folded := foldASCII(s)

	var b strings.Builder
	b.Grow(len(folded))
	pendingDash := false
	for _, r := range folded {
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// foldASCII decomposes s to NFKD and drops combining marks, so "é" becomes "e".
func foldASCII(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// SplitExt splits src into the part before the extension and the extension
// itself. For URLs the extension comes from the last path element, so query
// strings and fragments stay with the stem.
func SplitExt(src string) (string, string) {
	u, err := url.Parse(src)
	if err != nil {
		ext := path.Ext(src)
		return strings.TrimSuffix(src, ext), ext
	}
	ext := path.Ext(u.Path)
	if ext == "" {
		return src, ""
	}
	pathEnd := len(src)
	if i := strings.IndexAny(src, "?#"); i >= 0 {
		pathEnd = i
	}
	if !strings.HasSuffix(src[:pathEnd], ext) {
		// Extension is percent-encoded in the raw form; keep src whole.
		return src, ""
	}
	return src[:pathEnd-len(ext)] + src[pathEnd:], ext
}

// LocalName maps an image src to the filename it is stored under inside a
// package: the slugged stem followed by the original extension.
func LocalName(src string) string {
	stem, ext := SplitExt(src)
	return Slugify(stem) + strings.ToLower(ext)
}

// Filename returns the package filename for title with the given extension.
func Filename(title, ext string) string {
	stem := Slugify(title)
	if stem == "" {
		stem = fallback
	}
	return stem + ext
}
