package types

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// LinkStyle selects how Markdown links are rendered in the output document.
type LinkStyle string

const (
	// LinkHyperlink emits clickable hyperlink fields.
	LinkHyperlink LinkStyle = "hyperlink"

	// LinkText renders a link as plain "text (url)"; a link whose text equals
	// its destination renders as the bare URL.
	LinkText LinkStyle = "text"
)

// ConvertConfig holds settings for the conversion pipeline.
type ConvertConfig struct {
	// Extensions lists the input filename extensions recognized as Markdown,
	// matched case-insensitively (default [".md"]).
	Extensions []string `json:"extensions" yaml:"extensions"`

	// Recursive descends into subdirectories when converting a directory.
	// Off by default: a directory input converts its own files only.
	Recursive bool `json:"recursive" yaml:"recursive"`

	// LinkStyle selects hyperlink or plain-text link rendering (default hyperlink).
	LinkStyle LinkStyle `json:"link_style" yaml:"link_style"`

	// NormalizeText collapses runs of whitespace and straightens typographic
	// punctuation in inline text (default true). Code is never normalized.
	NormalizeText bool `json:"normalize_text" yaml:"normalize_text"`

	// TitleFromFrontmatter emits a frontmatter "title" key as a leading
	// level-1 heading instead of discarding it with the rest of the block.
	TitleFromFrontmatter bool `json:"title_from_frontmatter" yaml:"title_from_frontmatter"`
}

// DefaultConvertConfig returns the configuration used when nothing is set:
// flat *.md scan, hyperlinks, normalization on.
func DefaultConvertConfig() ConvertConfig {
	return ConvertConfig{
		Extensions:    []string{".md"},
		LinkStyle:     LinkHyperlink,
		NormalizeText: true,
	}
}

// Validate checks that the configuration is internally consistent.
func (c ConvertConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Extensions, validation.Required, validation.Each(validation.By(checkExtension))),
		validation.Field(&c.LinkStyle, validation.Required, validation.In(LinkHyperlink, LinkText)),
	)
}

// checkExtension rejects extension entries without a leading dot, so that
// config values like "md" fail loudly instead of matching nothing.
func checkExtension(value interface{}) error {
	s, _ := value.(string)
	if !strings.HasPrefix(s, ".") || len(s) < 2 {
		return errors.New("must be a filename extension starting with '.'")
	}
	return nil
}

// MatchesExtension reports whether path ends in one of the configured
// Markdown extensions, ignoring case.
func (c ConvertConfig) MatchesExtension(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range c.Extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
