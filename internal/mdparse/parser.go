// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mdparse turns Markdown source into the flat element sequence the
// rest of the pipeline consumes. Parsing proper is delegated to goldmark;
// this package walks the AST, carries inline styling onto text runs, and
// records every construct it cannot represent as a warning instead of
// dropping it silently.
package mdparse

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/adryserage/md2docx/pkg/types"
)

// Parser converts Markdown documents into element sequences. A Parser holds
// no per-document state and is safe to reuse across a batch.
type Parser struct {
	cfg types.ConvertConfig
	md  goldmark.Markdown
}

// Result holds the parsed element sequence and the warnings collected while
// walking one document.
type Result struct {
	Elements []types.Element
	Warnings []types.Warning
}

// docMeta captures the frontmatter keys the converter understands.
type docMeta struct {
	Title string `yaml:"title"`
}

// New creates a Parser for the given configuration.
func New(cfg types.ConvertConfig) *Parser {
	return &Parser{
		cfg: cfg,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// Parse converts one Markdown document. A leading frontmatter block is
// stripped before parsing; its title key becomes a level-1 heading when the
// configuration asks for it. A nil error means the document parsed; degraded
// constructs surface through Result.Warnings.
func (p *Parser) Parse(source []byte) (*Result, error) {
	// An undecodable file fails at the read stage, like a permission error,
	// not as a malformed Markdown construct.
	if !utf8.Valid(source) {
		return nil, types.WrapError(types.ErrInputUnreadable, fmt.Errorf("input is not valid UTF-8"))
	}

	var meta docMeta
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, types.WrapError(types.ErrParse, fmt.Errorf("parsing frontmatter: %w", err))
	}

	s := &walker{cfg: p.cfg, source: body}

	if p.cfg.TitleFromFrontmatter {
		if title := strings.TrimSpace(s.normalize(meta.Title)); title != "" {
			s.elements = append(s.elements, types.Element{
				Kind:  types.KindHeading,
				Level: 1,
				Runs:  []types.Run{{Text: title}},
			})
		}
	}

	root := p.md.Parser().Parse(text.NewReader(body))
	s.walkBlockChildren(root)

	return &Result{Elements: s.elements, Warnings: s.warnings}, nil
}

// walker accumulates elements and warnings while descending one document.
type walker struct {
	cfg      types.ConvertConfig
	source   []byte
	elements []types.Element
	warnings []types.Warning
}

func (s *walker) addWarning(kind types.WarningKind, node, message string) {
	s.warnings = append(s.warnings, types.Warning{
		Kind:    kind,
		Node:    node,
		Message: message,
	})
}

// normalize applies text cleanup when the configuration enables it. Code
// content never passes through here.
func (s *walker) normalize(textValue string) string {
	if !s.cfg.NormalizeText {
		return textValue
	}
	return normalizeText(textValue)
}
