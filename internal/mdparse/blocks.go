// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mdparse

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/adryserage/md2docx/pkg/types"
)

func (s *walker) walkBlockChildren(parent ast.Node) {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		s.walkBlock(child)
	}
}

func (s *walker) walkBlock(node ast.Node) {
	switch typed := node.(type) {
	case *ast.Heading:
		s.walkHeading(typed)
	case *ast.Paragraph:
		s.appendParagraph(typed)
	case *ast.TextBlock:
		s.appendParagraph(typed)
	case *ast.List:
		s.walkList(typed, 0)
	case *ast.FencedCodeBlock:
		language := strings.TrimSpace(string(typed.Language(s.source)))
		s.appendCodeBlock(typed, language)
	case *ast.CodeBlock:
		s.appendCodeBlock(typed, "")
	case *ast.Blockquote:
		s.walkBlockquote(typed)
	case *ast.ThematicBreak:
		s.elements = append(s.elements, types.Element{Kind: types.KindRule})
	case *ast.HTMLBlock:
		s.walkHTMLBlock(typed)
	case *extast.Table:
		s.addWarning(types.WarnUnknownBlock, typed.Kind().String(),
			"tables are not supported; table content skipped")
	default:
		kind := node.Kind().String()
		s.addWarning(types.WarnUnknownBlock, kind,
			fmt.Sprintf("unsupported markdown block: %s", kind))
		textValue := strings.TrimSpace(string(node.Text(s.source)))
		if textValue != "" {
			s.elements = append(s.elements, types.Element{
				Kind: types.KindParagraph,
				Runs: []types.Run{{Text: s.normalize(textValue)}},
			})
		}
	}
}

func (s *walker) walkHeading(node *ast.Heading) {
	s.elements = append(s.elements, types.Element{
		Kind:  types.KindHeading,
		Level: node.Level,
		Runs:  s.collectInline(node, runStyle{}),
	})
}

// appendParagraph handles both Paragraph and TextBlock nodes; goldmark emits
// the latter inside tight list items.
func (s *walker) appendParagraph(node ast.Node) {
	runs := s.collectInline(node, runStyle{})
	if len(runs) == 0 {
		return
	}
	s.elements = append(s.elements, types.Element{Kind: types.KindParagraph, Runs: runs})
}

func (s *walker) walkList(node *ast.List, depth int) {
	ordinal := 1
	if node.IsOrdered() && node.Start > 0 {
		ordinal = node.Start
	}
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		item, ok := child.(*ast.ListItem)
		if !ok {
			continue
		}
		s.walkListItem(item, node.IsOrdered(), depth, ordinal)
		ordinal++
	}
}

// walkListItem emits the item's first inline block as the list item element.
// Nested lists recurse one depth level down; any further block children
// (loose-item paragraphs, code blocks) follow as ordinary elements.
func (s *walker) walkListItem(item *ast.ListItem, ordered bool, depth, ordinal int) {
	itemEmitted := false
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.TextBlock:
			s.appendListBlock(typed, ordered, depth, ordinal, &itemEmitted)
		case *ast.Paragraph:
			s.appendListBlock(typed, ordered, depth, ordinal, &itemEmitted)
		case *ast.List:
			s.walkList(typed, depth+1)
		default:
			s.walkBlock(child)
		}
	}
}

func (s *walker) appendListBlock(node ast.Node, ordered bool, depth, ordinal int, itemEmitted *bool) {
	runs := s.collectInline(node, runStyle{})
	if !*itemEmitted {
		*itemEmitted = true
		elem := types.Element{
			Kind:    types.KindListItem,
			Ordered: ordered,
			Depth:   depth,
			Runs:    runs,
		}
		if ordered {
			elem.Ordinal = ordinal
		}
		s.elements = append(s.elements, elem)
		return
	}
	if len(runs) == 0 {
		return
	}
	s.elements = append(s.elements, types.Element{Kind: types.KindParagraph, Runs: runs})
}

func (s *walker) appendCodeBlock(node ast.Node, language string) {
	textValue := strings.TrimRight(string(node.Text(s.source)), "\n")
	s.elements = append(s.elements, types.Element{
		Kind:     types.KindCodeBlock,
		Text:     textValue,
		Language: language,
	})
}

// walkBlockquote flattens a quote into one block-quote element per enclosed
// paragraph. Nested quotes flatten into the same sequence; other block
// children convert as usual.
func (s *walker) walkBlockquote(node *ast.Blockquote) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Paragraph:
			s.appendQuoteParagraph(typed)
		case *ast.TextBlock:
			s.appendQuoteParagraph(typed)
		case *ast.Blockquote:
			s.walkBlockquote(typed)
		default:
			s.walkBlock(child)
		}
	}
}

func (s *walker) appendQuoteParagraph(node ast.Node) {
	runs := s.collectInline(node, runStyle{})
	if len(runs) == 0 {
		return
	}
	s.elements = append(s.elements, types.Element{Kind: types.KindBlockQuote, Runs: runs})
}

func (s *walker) walkHTMLBlock(node *ast.HTMLBlock) {
	raw := strings.TrimSpace(string(node.Text(s.source)))
	if raw == "" {
		return
	}

	kind := node.Kind().String()
	textValue := strings.TrimSpace(htmlToText(raw))
	if textValue == "" {
		s.addWarning(types.WarnUnknownBlock, kind, "html block with no text content skipped")
		return
	}

	s.addWarning(types.WarnUnknownBlock, kind, "html block converted to plain text")
	s.elements = append(s.elements, types.Element{
		Kind: types.KindParagraph,
		Runs: []types.Run{{Text: s.normalize(textValue)}},
	})
}
