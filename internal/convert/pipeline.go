// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"

	"github.com/adryserage/md2docx/internal/mapper"
	"github.com/adryserage/md2docx/internal/mdparse"
	"github.com/adryserage/md2docx/internal/word"
	"github.com/adryserage/md2docx/pkg/types"
)

// DocxPipeline is the production Pipeline: parse with the shared Markdown
// parser, map the elements, render into a fresh document per file. It holds
// no per-file state and is safe to reuse across a batch.
type DocxPipeline struct {
	cfg    types.ConvertConfig
	parser *mdparse.Parser
}

// NewDocxPipeline creates a pipeline for the given configuration. The caller
// validates the configuration first.
func NewDocxPipeline(cfg types.ConvertConfig) *DocxPipeline {
	return &DocxPipeline{cfg: cfg, parser: mdparse.New(cfg)}
}

// ConvertFile converts the Markdown at srcPath into a .docx at destPath. The
// returned warnings list every construct that was degraded or skipped; a nil
// error means the document was written.
func (p *DocxPipeline) ConvertFile(srcPath, destPath string) ([]types.Warning, error) {
	source, err := os.ReadFile(srcPath)
	if err != nil {
		kind := types.ErrInputUnreadable
		if os.IsNotExist(err) {
			kind = types.ErrInputNotFound
		}
		return nil, types.WrapError(kind, fmt.Errorf("reading %s: %w", srcPath, err))
	}

	parsed, err := p.parser.Parse(source)
	if err != nil {
		return nil, err
	}

	doc := word.NewDocument()
	warnings := append(parsed.Warnings, mapper.Map(doc, parsed.Elements, p.cfg)...)

	if err := doc.Save(destPath); err != nil {
		return warnings, err
	}
	return warnings, nil
}
