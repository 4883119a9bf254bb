// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package word renders mapped document operations into .docx files. It is
// the only package that calls the underlying Word library, so format quirks
// stay quarantined here.
package word

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/adryserage/md2docx/pkg/types"
)

const (
	codeFont      = "Courier New"
	codeSizeHalf  = "20" // 10pt
	codeShadeFill = "E7E6E6"
	quoteColor    = "595959"
	ruleColor     = "808080"
	ruleWidth     = 30
)

// headingSizes maps heading level to w:sz half-point values, level 1 largest.
var headingSizes = [...]string{"", "40", "32", "28", "26", "24", "22", "22", "22", "22"}

// bulletMarkers cycles by list depth.
var bulletMarkers = [...]string{"•", "◦", "▪"}

// Document builds one .docx in memory and saves it atomically. It implements
// the mapper's Writer interface; levels and depths arrive pre-clamped.
type Document struct {
	doc *docx.Docx
}

// NewDocument creates an empty document with the default theme.
func NewDocument() *Document {
	return &Document{doc: docx.New().WithDefaultTheme()}
}

// overlay is block-level styling applied on top of each run's own flags.
type overlay struct {
	bold   bool
	italic bool
	size   string
	color  string
}

func (d *Document) AddHeading(level int, runs []types.Run) {
	para := d.doc.AddParagraph().Style("Heading" + strconv.Itoa(level))
	d.addRuns(para, runs, overlay{bold: true, size: headingSizes[level]})
}

func (d *Document) AddParagraph(runs []types.Run) {
	d.addRuns(d.doc.AddParagraph(), runs, overlay{})
}

func (d *Document) AddListItem(ordered bool, depth, ordinal int, runs []types.Run) {
	para := d.doc.AddParagraph().Style("ListParagraph")
	para.AddText(listMarker(ordered, depth, ordinal))
	d.addRuns(para, runs, overlay{})
}

func (d *Document) AddCodeBlock(text, language string) {
	for _, line := range strings.Split(text, "\n") {
		para := d.doc.AddParagraph()
		para.AddText(line).
			Font(codeFont, "", codeFont, "").
			Size(codeSizeHalf).
			Shade("clear", "auto", codeShadeFill)
	}
}

func (d *Document) AddBlockQuote(runs []types.Run) {
	d.addRuns(d.doc.AddParagraph(), runs, overlay{italic: true, color: quoteColor})
}

func (d *Document) AddRule() {
	para := d.doc.AddParagraph().Justification("center")
	para.AddText(strings.Repeat("─", ruleWidth)).Color(ruleColor)
}

// addRuns appends one styled span per run. Hyperlink runs become link fields
// and keep the library's link styling.
func (d *Document) addRuns(para *docx.Paragraph, runs []types.Run, extra overlay) {
	for _, r := range runs {
		if r.Href != "" {
			para.AddLink(r.Text, r.Href)
			continue
		}
		run := para.AddText(r.Text)
		if r.Bold || extra.bold {
			run.Bold()
		}
		if r.Italic || extra.italic {
			run.Italic()
		}
		if extra.size != "" {
			run.Size(extra.size)
		}
		if extra.color != "" {
			run.Color(extra.color)
		}
		if r.Code {
			run.Font(codeFont, "", codeFont, "").Shade("clear", "auto", codeShadeFill)
		}
	}
}

// listMarker renders the literal marker for a list item: indented bullets
// cycling by depth, or the item's own ordinal for numbered lists.
func listMarker(ordered bool, depth, ordinal int) string {
	indent := strings.Repeat("    ", depth)
	if ordered {
		return fmt.Sprintf("%s%d. ", indent, ordinal)
	}
	return indent + bulletMarkers[depth%len(bulletMarkers)] + " "
}

// Save writes the document to destPath through a temp file in the same
// directory, renaming into place so a failed write never leaves a partial
// .docx behind. The destination directory is created here, not earlier in
// the pipeline, so a conversion that fails before this point leaves no empty
// directory either.
func (d *Document) Save(destPath string) error {
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		kind := types.ErrOutputPath
		if os.IsPermission(err) {
			kind = types.ErrWriteDenied
		}
		return types.WrapError(kind, fmt.Errorf("creating output directory %s: %w", dir, err))
	}
	tmpFile, err := os.CreateTemp(dir, ".md2docx-*.tmp")
	if err != nil {
		kind := types.ErrWrite
		if os.IsPermission(err) {
			kind = types.ErrWriteDenied
		}
		return types.WrapError(kind, fmt.Errorf("creating temp file in %s: %w", dir, err))
	}
	tmpPath := tmpFile.Name()

	_, writeErr := d.doc.WriteTo(tmpFile)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return types.WrapError(types.ErrWrite, fmt.Errorf("writing document: %w", writeErr))
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return types.WrapError(types.ErrWrite, fmt.Errorf("closing temp file: %w", closeErr))
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		kind := types.ErrWrite
		if os.IsPermission(err) {
			kind = types.ErrWriteDenied
		}
		return types.WrapError(kind, fmt.Errorf("renaming temp file: %w", err))
	}
	return nil
}

// WriteTo streams the rendered .docx archive to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.doc.WriteTo(w)
}
