package scripts

import (
	"strings"
	"unicode/utf8"
)

// Chunk splits content into contiguous pieces of at most size characters.
// Empty content yields no chunks. A size <= 0 means unbounded: the whole
// content is a single chunk.
//
// Characters are runes; an invalid UTF-8 byte counts as one character and is
// kept as-is, so concatenating the chunks always reproduces content exactly.
func Chunk(content string, size int) []string {
	if content == "" {
		return nil
	}
	if size <= 0 {
		return []string{content}
	}

	var chunks []string
	start, n := 0, 0
	for i := 0; i < len(content); {
		_, w := utf8.DecodeRuneInString(content[i:])
		i += w
		n++
		if n == size {
			chunks = append(chunks, content[start:i])
			start, n = i, 0
		}
	}
	if start < len(content) {
		chunks = append(chunks, content[start:])
	}
	return chunks
}

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// Escape makes s safe to place inside a double-quoted C string literal.
// Only backslash, double quote and newline are rewritten.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Unescape reverses Escape. Backslash sequences Escape never produces are
// left untouched.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		switch s[i+1] {
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case 'n':
			b.WriteByte('\n')
		default:
			b.WriteByte(c)
			continue
		}
		i++
	}
	return b.String()
}

// Identifier converts a script stem into the upper-case prefix of its C array
// name. Anything outside [A-Z0-9_] becomes an underscore, and a leading digit
// is prefixed with one.
func Identifier(stem string) string {
	upper := strings.ToUpper(stem)

	var b strings.Builder
	b.Grow(len(upper) + 1)
	for i := 0; i < len(upper); i++ {
		c := upper[i]
		switch {
		case c >= 'A' && c <= 'Z', c == '_':
			b.WriteByte(c)
		case c >= '0' && c <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}
