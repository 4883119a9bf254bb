// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ElementKind identifies the block-level Markdown construct an Element carries.
type ElementKind string

const (
	KindHeading    ElementKind = "heading"
	KindParagraph  ElementKind = "paragraph"
	KindListItem   ElementKind = "list_item"
	KindCodeBlock  ElementKind = "code_block"
	KindBlockQuote ElementKind = "block_quote"
	KindRule       ElementKind = "rule"
)

// Element is one block-level construct from a parsed Markdown document.
// Kind selects the variant; the remaining fields are meaningful only for the
// kinds documented on them. Elements are produced in document order and
// consumed once by the mapper.
type Element struct {
	// Kind selects the element variant.
	Kind ElementKind `json:"kind" yaml:"kind"`

	// Level is the heading level as parsed (1-6). Headings only.
	Level int `json:"level,omitempty" yaml:"level,omitempty"`

	// Ordered marks a list item as part of a numbered list. List items only.
	Ordered bool `json:"ordered,omitempty" yaml:"ordered,omitempty"`

	// Depth is the 0-based nesting depth of a list item. List items only.
	Depth int `json:"depth,omitempty" yaml:"depth,omitempty"`

	// Ordinal is the 1-based number of an ordered list item, honoring the
	// list's start offset (a list opening with "3." numbers from 3).
	// Zero for unordered items.
	Ordinal int `json:"ordinal,omitempty" yaml:"ordinal,omitempty"`

	// Runs holds the styled inline text of headings, paragraphs, list items,
	// and block quotes.
	Runs []Run `json:"runs,omitempty" yaml:"runs,omitempty"`

	// Text is the literal body of a code block, trailing newline trimmed.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// Language is the fence info string of a code block (e.g. "go"). May be
	// empty; informational only.
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
}

// Run is a maximal span of inline text with uniform styling. Adjacent runs in
// an element never share identical styling; the parser merges those.
type Run struct {
	// Text is the span content with line breaks and entities resolved.
	Text string `json:"text" yaml:"text"`

	// Bold marks strong emphasis.
	Bold bool `json:"bold,omitempty" yaml:"bold,omitempty"`

	// Italic marks emphasis.
	Italic bool `json:"italic,omitempty" yaml:"italic,omitempty"`

	// Code marks an inline code span; code text is never normalized.
	Code bool `json:"code,omitempty" yaml:"code,omitempty"`

	// Href is the hyperlink destination, or empty for plain text.
	Href string `json:"href,omitempty" yaml:"href,omitempty"`
}

// SameStyle reports whether two runs carry identical styling and can be
// merged into a single span.
func (r Run) SameStyle(o Run) bool {
	return r.Bold == o.Bold && r.Italic == o.Italic && r.Code == o.Code && r.Href == o.Href
}

// PlainText concatenates the element's run texts without styling. Code blocks
// return their literal body.
func (e Element) PlainText() string {
	if e.Kind == KindCodeBlock {
		return e.Text
	}
	var out string
	for _, r := range e.Runs {
		out += r.Text
	}
	return out
}
