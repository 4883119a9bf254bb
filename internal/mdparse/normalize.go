package mdparse

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// punctReplacer straightens typographic punctuation that word processors and
// editors commonly introduce into Markdown text.
var punctReplacer = strings.NewReplacer(
	"“", `"`, // left double quote
	"”", `"`, // right double quote
	"‘", "'", // left single quote
	"’", "'", // right single quote
	"--", "–", // double hyphen to en dash
)

// normalizeText collapses whitespace runs into single spaces and straightens
// punctuation. A single leading or trailing space is preserved so that runs
// merged across style boundaries keep their separation; edge trimming is the
// job of finishRuns.
func normalizeText(s string) string {
	if s == "" {
		return ""
	}

	collapsed := strings.Join(strings.Fields(s), " ")
	if collapsed == "" {
		return " "
	}

	var b strings.Builder
	b.Grow(len(collapsed) + 2)
	if r, _ := utf8.DecodeRuneInString(s); unicode.IsSpace(r) {
		b.WriteByte(' ')
	}
	b.WriteString(collapsed)
	if r, _ := utf8.DecodeLastRuneInString(s); unicode.IsSpace(r) {
		b.WriteByte(' ')
	}

	return punctReplacer.Replace(b.String())
}
