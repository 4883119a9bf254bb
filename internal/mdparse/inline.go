// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mdparse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/adryserage/md2docx/pkg/types"
)

// runStyle carries the formatting context while descending emphasis, code
// span, and link nodes. It travels by value; sibling branches never see each
// other's styling.
type runStyle struct {
	bold   bool
	italic bool
	code   bool
	href   string
}

var lineBreakTag = regexp.MustCompile(`(?i)^<br\s*/?>$`)

// collectInline gathers the styled runs beneath parent, merges adjacent
// same-style spans, and trims whitespace at the element boundaries.
func (s *walker) collectInline(parent ast.Node, style runStyle) []types.Run {
	return finishRuns(s.collectInlineInto(nil, parent, style))
}

func (s *walker) collectInlineInto(runs []types.Run, parent ast.Node, style runStyle) []types.Run {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		runs = s.walkInline(runs, child, style)
	}
	return runs
}

func (s *walker) walkInline(runs []types.Run, node ast.Node, style runStyle) []types.Run {
	switch typed := node.(type) {
	case *ast.Text:
		runs = appendRun(runs, s.styledRun(string(typed.Value(s.source)), style))
		if typed.HardLineBreak() {
			runs = appendRun(runs, rawRun("\n", style))
		} else if typed.SoftLineBreak() {
			runs = appendRun(runs, rawRun(" ", style))
		}
		return runs

	case *ast.String:
		return appendRun(runs, s.styledRun(string(typed.Value), style))

	case *ast.Emphasis:
		child := style
		if typed.Level >= 2 {
			child.bold = true
		} else {
			child.italic = true
		}
		return s.collectInlineInto(runs, typed, child)

	case *ast.CodeSpan:
		child := style
		child.code = true
		return s.collectInlineInto(runs, typed, child)

	case *ast.Link:
		href := strings.TrimSpace(string(typed.Destination))
		if href == "" {
			return s.collectInlineInto(runs, typed, style)
		}
		child := style
		child.href = href
		return s.collectInlineInto(runs, typed, child)

	case *ast.AutoLink:
		url := strings.TrimSpace(string(typed.URL(s.source)))
		if url == "" {
			return runs
		}
		label := strings.TrimSpace(string(typed.Label(s.source)))
		if typed.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(url, "mailto:") {
			url = "mailto:" + url
		}
		child := style
		child.href = url
		return appendRun(runs, rawRun(label, child))

	case *ast.Image:
		alt := strings.TrimSpace(string(typed.Text(s.source)))
		if alt == "" {
			alt = "Image"
		}
		s.addWarning(types.WarnDroppedFeature, typed.Kind().String(),
			"image dropped; alt text kept")
		return appendRun(runs, s.styledRun(alt, style))

	case *extast.Strikethrough:
		s.addWarning(types.WarnDroppedFeature, typed.Kind().String(),
			"strikethrough formatting dropped; text kept")
		return s.collectInlineInto(runs, typed, style)

	case *extast.TaskCheckBox:
		// GFM keeps the space between the checkbox and its text in the
		// following text node, so the marker carries none of its own.
		marker := "[ ]"
		if typed.IsChecked {
			marker = "[x]"
		}
		s.addWarning(types.WarnDroppedFeature, typed.Kind().String(),
			"task checkbox rendered as literal marker")
		return appendRun(runs, rawRun(marker, style))

	case *ast.RawHTML:
		return s.walkRawHTML(runs, typed, style)

	default:
		if node.HasChildren() {
			return s.collectInlineInto(runs, node, style)
		}
		textValue := strings.TrimSpace(string(node.Text(s.source)))
		if textValue == "" {
			return runs
		}
		kind := node.Kind().String()
		s.addWarning(types.WarnUnknownInline, kind,
			fmt.Sprintf("unsupported markdown inline node: %s", kind))
		return appendRun(runs, s.styledRun(textValue, style))
	}
}

// walkRawHTML turns <br> variants into line breaks and strips everything
// else down to its visible text.
func (s *walker) walkRawHTML(runs []types.Run, node *ast.RawHTML, style runStyle) []types.Run {
	raw := string(node.Segments.Value(s.source))
	if lineBreakTag.MatchString(strings.TrimSpace(raw)) {
		return appendRun(runs, rawRun("\n", style))
	}

	s.addWarning(types.WarnUnknownInline, node.Kind().String(),
		"inline html stripped to text")
	textValue := strings.TrimSpace(htmlToText(raw))
	if textValue == "" {
		return runs
	}
	return appendRun(runs, s.styledRun(textValue, style))
}

// styledRun builds a run in the current style, normalizing the text unless
// it is code.
func (s *walker) styledRun(textValue string, style runStyle) types.Run {
	if !style.code {
		textValue = s.normalize(textValue)
	}
	return rawRun(textValue, style)
}

// rawRun builds a run in the current style with the text taken verbatim.
func rawRun(textValue string, style runStyle) types.Run {
	return types.Run{
		Text:   textValue,
		Bold:   style.bold,
		Italic: style.italic,
		Code:   style.code,
		Href:   style.href,
	}
}

// appendRun adds next to runs, merging it into the previous run when both
// carry identical styling so no element ever holds two adjacent same-style
// spans.
func appendRun(runs []types.Run, next types.Run) []types.Run {
	if next.Text == "" {
		return runs
	}
	if len(runs) > 0 && runs[len(runs)-1].SameStyle(next) {
		runs[len(runs)-1].Text += next.Text
		return runs
	}
	return append(runs, next)
}

// finishRuns trims whitespace at the outer edges of an element's runs and
// drops runs left empty. Interior spacing between runs survives.
func finishRuns(runs []types.Run) []types.Run {
	for len(runs) > 0 {
		runs[0].Text = strings.TrimLeft(runs[0].Text, " \t\n")
		if runs[0].Text != "" {
			break
		}
		runs = runs[1:]
	}
	for len(runs) > 0 {
		last := len(runs) - 1
		runs[last].Text = strings.TrimRight(runs[last].Text, " \t\n")
		if runs[last].Text != "" {
			break
		}
		runs = runs[:last]
	}
	return runs
}
