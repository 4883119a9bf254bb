// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mapper translates parsed Markdown elements into document writer
// operations. The translation is pure: clamping, link degradation, and the
// dispatch itself never touch the filesystem.
package mapper

import (
	"fmt"

	"github.com/adryserage/md2docx/pkg/types"
)

const (
	// maxHeadingLevel is the deepest heading style the output format defines.
	maxHeadingLevel = 9

	// maxListDepth is the deepest list indent the writer renders distinctly.
	maxListDepth = 2
)

// Writer receives the document operations mapped from elements. The word
// package provides the production implementation; tests substitute fakes.
type Writer interface {
	AddHeading(level int, runs []types.Run)
	AddParagraph(runs []types.Run)
	AddListItem(ordered bool, depth, ordinal int, runs []types.Run)
	AddCodeBlock(text, language string)
	AddBlockQuote(runs []types.Run)
	AddRule()
}

// Map dispatches each element to exactly one writer operation, in document
// order. Heading levels and list depths outside the writer's range clamp
// instead of failing; an element kind the mapper does not recognize is
// skipped and reported. The returned warnings are the ones the mapping
// itself produced.
func Map(w Writer, elements []types.Element, cfg types.ConvertConfig) []types.Warning {
	var warnings []types.Warning
	for _, elem := range elements {
		switch elem.Kind {
		case types.KindHeading:
			w.AddHeading(clampHeading(elem.Level), mapRuns(elem.Runs, cfg))
		case types.KindParagraph:
			w.AddParagraph(mapRuns(elem.Runs, cfg))
		case types.KindListItem:
			ordinal := elem.Ordinal
			if elem.Ordered && ordinal < 1 {
				ordinal = 1
			}
			w.AddListItem(elem.Ordered, clampDepth(elem.Depth), ordinal, mapRuns(elem.Runs, cfg))
		case types.KindCodeBlock:
			w.AddCodeBlock(elem.Text, elem.Language)
		case types.KindBlockQuote:
			w.AddBlockQuote(mapRuns(elem.Runs, cfg))
		case types.KindRule:
			w.AddRule()
		default:
			warnings = append(warnings, types.Warning{
				Kind:    types.WarnUnknownBlock,
				Node:    string(elem.Kind),
				Message: fmt.Sprintf("unsupported element kind %q skipped", elem.Kind),
			})
		}
	}
	return warnings
}

func clampHeading(level int) int {
	if level < 1 {
		return 1
	}
	if level > maxHeadingLevel {
		return maxHeadingLevel
	}
	return level
}

func clampDepth(depth int) int {
	if depth < 0 {
		return 0
	}
	if depth > maxListDepth {
		return maxListDepth
	}
	return depth
}

// mapRuns applies the configured link policy. With LinkText, hyperlink runs
// degrade to "text (url)", or to the bare URL when the text already is the
// URL, and merge back into neighbors whose styles now match.
func mapRuns(runs []types.Run, cfg types.ConvertConfig) []types.Run {
	if cfg.LinkStyle != types.LinkText {
		return runs
	}
	out := make([]types.Run, 0, len(runs))
	for _, r := range runs {
		if r.Href != "" {
			if r.Text != r.Href {
				r.Text = fmt.Sprintf("%s (%s)", r.Text, r.Href)
			}
			r.Href = ""
		}
		out = appendMerged(out, r)
	}
	return out
}

func appendMerged(runs []types.Run, next types.Run) []types.Run {
	if next.Text == "" {
		return runs
	}
	if len(runs) > 0 && runs[len(runs)-1].SameStyle(next) {
		runs[len(runs)-1].Text += next.Text
		return runs
	}
	return append(runs, next)
}
