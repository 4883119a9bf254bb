// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert drives Markdown-to-Word conversion over a single file or a
// directory of files. Each file runs through the pipeline in isolation: one
// unreadable or malformed file fails its own result and never stops the rest
// of the batch.
package convert

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/adryserage/md2docx/pkg/types"
)

// DocxExt is the extension given to output files.
const DocxExt = ".docx"

// Pipeline converts one Markdown file into a Word document at destPath and
// reports every construct it degraded or skipped along the way. destPath's
// directory may not exist yet; implementations create it when they are ready
// to write. The production implementation lives in pipeline.go; tests
// substitute fakes.
type Pipeline interface {
	ConvertFile(srcPath, destPath string) ([]types.Warning, error)
}

// ConvertPath resolves input to either a single file or a directory scan and
// drives one conversion per source file, streaming per-file progress to w.
// Results appear in enumeration order; directory runs end with a summary
// line. The report is the complete outcome — no error short-circuits it
// except a directory that cannot be scanned at all.
func ConvertPath(p Pipeline, cfg types.ConvertConfig, input, output string, w io.Writer) (types.BatchReport, error) {
	var report types.BatchReport

	info, err := os.Stat(input)
	if err != nil {
		kind := types.ErrInputUnreadable
		if os.IsNotExist(err) {
			kind = types.ErrInputNotFound
		}
		wrapped := types.WrapError(kind, fmt.Errorf("resolving input %s: %w", input, err))
		fmt.Fprintf(w, "failed:  %s (%v)\n", input, wrapped)
		report.Add(types.ConversionResult{
			Input:   input,
			Status:  types.ConversionFailed,
			ErrKind: kind,
			Err:     wrapped,
		})
		return report, nil
	}

	if !info.IsDir() {
		dest, destErr := singleOutputPath(input, output)
		if destErr != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", input, destErr)
			report.Add(types.ConversionResult{
				Input:   input,
				Status:  types.ConversionFailed,
				ErrKind: types.KindOf(destErr),
				Err:     destErr,
			})
			return report, nil
		}
		report.Add(convertOne(p, input, dest, w))
		return report, nil
	}

	sources, err := discoverSources(cfg, input)
	if err != nil {
		return report, err
	}

	for _, src := range sources {
		dest, destErr := batchOutputPath(input, output, src)
		if destErr != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", src, destErr)
			report.Add(types.ConversionResult{
				Input:   src,
				Status:  types.ConversionFailed,
				ErrKind: types.KindOf(destErr),
				Err:     destErr,
			})
			continue
		}
		report.Add(convertOne(p, src, dest, w))
	}

	fmt.Fprintf(w, "\nBatch summary: %d succeeded, %d with warnings, %d failed (total: %d)\n",
		report.Succeeded, report.Warned, report.Failed, report.Total())
	return report, nil
}

// convertOne runs the pipeline for a single source file and turns the outcome
// into a ConversionResult, printing one progress line.
func convertOne(p Pipeline, src, dest string, w io.Writer) types.ConversionResult {
	res := types.ConversionResult{Input: src, Output: dest}

	warnings, err := p.ConvertFile(src, dest)
	res.Warnings = warnings
	if err != nil {
		res.Status = types.ConversionFailed
		res.ErrKind = types.KindOf(err)
		res.Err = err
		res.Output = ""
		fmt.Fprintf(w, "failed:  %s (%v)\n", src, err)
		return res
	}

	size := outputSize(dest)
	if len(warnings) > 0 {
		res.Status = types.ConversionWarned
		fmt.Fprintf(w, "converted: %s -> %s (%s, %d warnings)\n", src, dest, size, len(warnings))
	} else {
		res.Status = types.ConversionSucceeded
		fmt.Fprintf(w, "converted: %s -> %s (%s)\n", src, dest, size)
	}
	return res
}

// outputSize returns the humanized size of the written file, or a question
// mark when it cannot be read; the size is informational only.
func outputSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "?"
	}
	return humanize.Bytes(uint64(info.Size()))
}

// discoverSources enumerates the Markdown files under dir, sorted
// lexicographically so report order is reproducible. Subdirectories are
// skipped unless the configuration enables recursion.
func discoverSources(cfg types.ConvertConfig, dir string) ([]string, error) {
	var sources []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !cfg.Recursive && path != dir {
				return fs.SkipDir
			}
			return nil
		}
		if cfg.MatchesExtension(d.Name()) {
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		return nil, types.WrapError(types.ErrInputUnreadable, fmt.Errorf("scanning %s: %w", dir, err))
	}
	sort.Strings(sources)
	return sources, nil
}

// singleOutputPath resolves the destination for a single-file input: the
// explicit output when given (an existing directory keeps the source base
// name), else the source path with its extension swapped. Resolution never
// touches the filesystem beyond the stat; missing directories are created by
// the pipeline at save time, after the conversion has something to write.
func singleOutputPath(src, output string) (string, error) {
	if output == "" {
		return swapExt(src), nil
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, filepath.Base(swapExt(src))), nil
	}
	return output, nil
}

// batchOutputPath places one converted file under outDir, preserving the
// source's path relative to the scanned directory, or alongside the source
// when no output directory was given.
func batchOutputPath(inDir, outDir, src string) (string, error) {
	if outDir == "" {
		return swapExt(src), nil
	}
	rel, err := filepath.Rel(inDir, src)
	if err != nil {
		return "", types.WrapError(types.ErrOutputPath, fmt.Errorf("relativizing %s: %w", src, err))
	}
	return filepath.Join(outDir, swapExt(rel)), nil
}

// swapExt replaces the source extension with the output document extension.
func swapExt(src string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + DocxExt
}
