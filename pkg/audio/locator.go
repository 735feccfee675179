// Package audio locates pre-recorded clips for phonemes and example words
// and plays them with at most one clip sounding at a time.
package audio

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns an example word into its clip file stem: lowercased, trimmed,
// every run of characters outside [a-z0-9] collapsed to '-', and leading or
// trailing '-' removed. Words with no ASCII letters or digits slug to "".
func Slug(word string) string {
	s := strings.TrimSpace(strings.ToLower(word))
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

const upperhex = "0123456789ABCDEF"

// EscapeComponent percent-encodes s byte by byte as JavaScript's
// encodeURIComponent does, leaving only A-Z a-z 0-9 and -_.!~*'() as is.
// Recorded clip files are named this way.
func EscapeComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// Locator builds clip locations under a base path or URL. Clip existence is
// never checked here.
type Locator struct {
	Base string
}

// NewLocator returns a locator rooted at base. An empty base means the
// current directory.
func NewLocator(base string) Locator {
	return Locator{Base: base}
}

// PhonemeClip is <base>/phonemes/<escaped key>.mp3.
func (l Locator) PhonemeClip(key string) string {
	return l.join("phonemes", EscapeComponent(key)+".mp3")
}

// WordClip is <base>/words/<escaped slug>.mp3.
func (l Locator) WordClip(word string) string {
	return l.join("words", EscapeComponent(Slug(word))+".mp3")
}

func (l Locator) join(dir, file string) string {
	if l.Base == "" {
		return "./" + dir + "/" + file
	}
	return strings.TrimRight(l.Base, "/") + "/" + dir + "/" + file
}
