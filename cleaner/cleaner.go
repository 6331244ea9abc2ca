// Package cleaner turns raw model output into text that is likely to parse as
// JSON, and decodes it into either a structured value or opaque text.
package cleaner

import (
	"encoding/json"
	"regexp"
	"strings"
)

const fence = "```"

var langTag = regexp.MustCompile(`^[A-Za-z0-9_+-]*$`)

var literals = []struct{ from, to string }{
	{"None", "null"},
	{"True", "true"},
	{"False", "false"},
}

// Clean strips markdown fences and surrounding prose and repairs the quoting
// and literal mistakes models commonly make. Clean(Clean(x)) == Clean(x).
func Clean(raw string) string {
	s := strings.TrimSpace(raw)
	s = stripFences(s)
	s = extractJSON(s)

	if json.Valid([]byte(s)) {
		return s
	}

	return repair(s)
}

// stripFences keeps only the body of the first fenced block. The result never
// contains a fence.
func stripFences(s string) string {
	start := strings.Index(s, fence)
	if start == -1 {
		return s
	}

	body := s[start+len(fence):]
	if nl := strings.IndexByte(body, '\n'); nl != -1 && langTag.MatchString(strings.TrimSpace(body[:nl])) {
		body = body[nl+1:]
	}
	if end := strings.Index(body, fence); end != -1 {
		body = body[:end]
	}

	return strings.TrimSpace(body)
}

// extractJSON cuts s down to the span between the first opening and the last
// closing bracket, dropping any prose around it.
func extractJSON(s string) string {
	start := strings.IndexAny(s, "{[")
	end := strings.LastIndexAny(s, "}]")
	if start == -1 || end == -1 || end <= start {
		return s
	}

	return s[start : end+1]
}

// Unfence returns the body of the first fenced block in s, or s itself when
// there is none. Unlike Clean it never cuts prose down to a bracketed span.
func Unfence(s string) string {
	return stripFences(strings.TrimSpace(s))
}

// repair only touches text that already looks like a JSON document, so prose
// answers pass through unchanged. String contents are never rewritten.
func repair(s string) string {
	if !strings.HasPrefix(s, "{") && !strings.HasPrefix(s, "[") {
		return s
	}
	if !strings.Contains(s, `"`) && strings.Contains(s, "'") {
		s = strings.ReplaceAll(s, "'", `"`)
	}

	var b strings.Builder
	b.Grow(len(s))

	inString := false
	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			b.WriteByte(c)
			switch c {
			case '\\':
				if i+1 < len(s) {
					i++
					b.WriteByte(s[i])
				}
			case '"':
				inString = false
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
		case c == ',':
			if end, ok := trailingComma(s, i); ok {
				i = end - 1
				continue
			}
		case i == 0 || !isWordByte(s[i-1]):
			if lit, to, ok := literalAt(s, i); ok {
				b.WriteString(to)
				i += len(lit) - 1
				continue
			}
		}
		b.WriteByte(c)
	}

	return b.String()
}

// trailingComma reports whether the comma at i starts a run of commas and
// whitespace that ends in a closing bracket, and returns the bracket index.
func trailingComma(s string, i int) (int, bool) {
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case ',', ' ', '\t', '\n', '\r':
		case '}', ']':
			return j, true
		default:
			return 0, false
		}
	}

	return 0, false
}

func literalAt(s string, i int) (string, string, bool) {
	for _, l := range literals {
		end := i + len(l.from)
		if strings.HasPrefix(s[i:], l.from) && (end == len(s) || !isWordByte(s[end])) {
			return l.from, l.to, true
		}
	}

	return "", "", false
}

func isWordByte(c byte) bool {
	return c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
