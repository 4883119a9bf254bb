// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adryserage/md2docx/pkg/types"
)

// fakePipeline implements Pipeline for testing. It records every call, fails
// the sources listed in errors, and writes a small placeholder file for
// successful conversions so the progress line has a size to report.
type fakePipeline struct {
	calls    []string
	warnings map[string][]types.Warning
	errors   map[string]error
}

func (f *fakePipeline) ConvertFile(srcPath, destPath string) ([]types.Warning, error) {
	f.calls = append(f.calls, srcPath)
	if err, ok := f.errors[srcPath]; ok {
		return nil, err
	}
	// Per the Pipeline contract, the destination directory is the
	// implementation's to create.
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(destPath, []byte("docx"), 0o644); err != nil {
		return nil, err
	}
	return f.warnings[srcPath], nil
}

// writeMarkdown drops a Markdown fixture into dir and returns its path.
func writeMarkdown(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConvertPathSingleFile(t *testing.T) {
	tmpDir := t.TempDir()
	src := writeMarkdown(t, tmpDir, "notes.md", "# Notes")

	fake := &fakePipeline{}
	var log bytes.Buffer
	report, err := ConvertPath(fake, types.DefaultConvertConfig(), src, "", &log)
	if err != nil {
		t.Fatalf("ConvertPath: %v", err)
	}

	if report.Total() != 1 || report.Succeeded != 1 {
		t.Fatalf("report = %+v, want 1 success", report)
	}
	want := filepath.Join(tmpDir, "notes.docx")
	if got := report.Results[0].Output; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if !strings.Contains(log.String(), "converted:") {
		t.Errorf("log %q missing progress line", log.String())
	}
	if strings.Contains(log.String(), "Batch summary") {
		t.Error("single-file runs should not print a batch summary")
	}
}

func TestConvertPathSingleFileExplicitOutput(t *testing.T) {
	tmpDir := t.TempDir()
	src := writeMarkdown(t, tmpDir, "notes.md", "# Notes")
	dest := filepath.Join(tmpDir, "out", "report.docx")

	report, err := ConvertPath(&fakePipeline{}, types.DefaultConvertConfig(), src, dest, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ConvertPath: %v", err)
	}
	if got := report.Results[0].Output; got != dest {
		t.Errorf("output = %q, want %q", got, dest)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("expected output file at %s: %v", dest, err)
	}
}

func TestConvertPathSingleFileOutputDir(t *testing.T) {
	tmpDir := t.TempDir()
	src := writeMarkdown(t, tmpDir, "notes.md", "# Notes")
	outDir := filepath.Join(tmpDir, "out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		t.Fatal(err)
	}

	report, err := ConvertPath(&fakePipeline{}, types.DefaultConvertConfig(), src, outDir, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ConvertPath: %v", err)
	}
	want := filepath.Join(outDir, "notes.docx")
	if got := report.Results[0].Output; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestConvertPathFailureLeavesNoOutputDir(t *testing.T) {
	tmpDir := t.TempDir()
	src := writeMarkdown(t, tmpDir, "notes.md", "broken")
	dest := filepath.Join(tmpDir, "out", "report.docx")

	fake := &fakePipeline{errors: map[string]error{
		src: types.WrapError(types.ErrParse, errors.New("malformed construct")),
	}}
	report, err := ConvertPath(fake, types.DefaultConvertConfig(), src, dest, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ConvertPath: %v", err)
	}
	if report.Failed != 1 {
		t.Fatalf("report = %+v, want 1 failure", report)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "out")); !os.IsNotExist(err) {
		t.Errorf("failed conversion left an output directory behind (stat err = %v)", err)
	}
}

func TestConvertPathMissingInput(t *testing.T) {
	var log bytes.Buffer
	report, err := ConvertPath(&fakePipeline{}, types.DefaultConvertConfig(),
		filepath.Join(t.TempDir(), "absent.md"), "", &log)
	if err != nil {
		t.Fatalf("ConvertPath: %v", err)
	}

	if report.Failed != 1 || report.Total() != 1 {
		t.Fatalf("report = %+v, want 1 failure", report)
	}
	if got := report.Results[0].ErrKind; got != types.ErrInputNotFound {
		t.Errorf("error kind = %q, want %q", got, types.ErrInputNotFound)
	}
	if !strings.Contains(log.String(), "failed:") {
		t.Errorf("log %q missing failure line", log.String())
	}
}

func TestConvertPathDirectoryIsolation(t *testing.T) {
	tmpDir := t.TempDir()
	bad := writeMarkdown(t, tmpDir, "b.md", "broken")
	writeMarkdown(t, tmpDir, "a.md", "# A")
	writeMarkdown(t, tmpDir, "c.md", "# C")
	writeMarkdown(t, tmpDir, "d.md", "# D")
	writeMarkdown(t, tmpDir, "skip.txt", "not markdown")

	fake := &fakePipeline{errors: map[string]error{
		bad: types.WrapError(types.ErrParse, errors.New("malformed construct")),
	}}
	var log bytes.Buffer
	report, err := ConvertPath(fake, types.DefaultConvertConfig(), tmpDir, "", &log)
	if err != nil {
		t.Fatalf("ConvertPath: %v", err)
	}

	if report.Succeeded != 3 || report.Failed != 1 || report.Total() != 4 {
		t.Fatalf("report = %+v, want 3 successes and 1 failure", report)
	}
	if !report.HasFailures() {
		t.Error("HasFailures should be true")
	}

	// Enumeration order is sorted, and the failure sits in place.
	wantOrder := []string{"a.md", "b.md", "c.md", "d.md"}
	for i, res := range report.Results {
		if got := filepath.Base(res.Input); got != wantOrder[i] {
			t.Errorf("results[%d] = %q, want %q", i, got, wantOrder[i])
		}
	}
	failures := report.Failures()
	if len(failures) != 1 || failures[0].Input != bad {
		t.Errorf("failures = %+v, want just %s", failures, bad)
	}
	if got := failures[0].ErrKind; got != types.ErrParse {
		t.Errorf("failure kind = %q, want %q", got, types.ErrParse)
	}
	if !strings.Contains(log.String(), "Batch summary: 3 succeeded, 0 with warnings, 1 failed (total: 4)") {
		t.Errorf("log %q missing summary", log.String())
	}
}

func TestConvertPathDirectoryOutputDir(t *testing.T) {
	tmpDir := t.TempDir()
	srcDir := filepath.Join(tmpDir, "src")
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeMarkdown(t, srcDir, "one.md", "# One")
	writeMarkdown(t, srcDir, "two.md", "# Two")
	outDir := filepath.Join(tmpDir, "out")

	report, err := ConvertPath(&fakePipeline{}, types.DefaultConvertConfig(), srcDir, outDir, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ConvertPath: %v", err)
	}
	if report.Succeeded != 2 {
		t.Fatalf("report = %+v, want 2 successes", report)
	}
	for _, name := range []string{"one.docx", "two.docx"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("expected %s in output dir: %v", name, err)
		}
	}
}

func TestConvertPathWarningsStatus(t *testing.T) {
	tmpDir := t.TempDir()
	src := writeMarkdown(t, tmpDir, "img.md", "![alt](pic.png)")

	fake := &fakePipeline{warnings: map[string][]types.Warning{
		src: {{Kind: types.WarnDroppedFeature, Node: "Image", Message: "image dropped"}},
	}}
	var log bytes.Buffer
	report, err := ConvertPath(fake, types.DefaultConvertConfig(), src, "", &log)
	if err != nil {
		t.Fatalf("ConvertPath: %v", err)
	}

	if report.Warned != 1 || report.Succeeded != 0 {
		t.Fatalf("report = %+v, want 1 warned", report)
	}
	res := report.Results[0]
	if res.Status != types.ConversionWarned {
		t.Errorf("status = %q, want %q", res.Status, types.ConversionWarned)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Kind != types.WarnDroppedFeature {
		t.Errorf("warnings = %+v", res.Warnings)
	}
	if !strings.Contains(log.String(), "1 warnings") {
		t.Errorf("log %q missing warning count", log.String())
	}
}

func TestDiscoverSources(t *testing.T) {
	tmpDir := t.TempDir()
	writeMarkdown(t, tmpDir, "b.md", "b")
	writeMarkdown(t, tmpDir, "A.MD", "a") // extension matching ignores case
	writeMarkdown(t, tmpDir, "notes.txt", "not markdown")
	nested := filepath.Join(tmpDir, "sub")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	writeMarkdown(t, nested, "deep.md", "deep")

	cfg := types.DefaultConvertConfig()

	flat, err := discoverSources(cfg, tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(flat) != 2 {
		t.Fatalf("flat scan found %v, want 2 files", flat)
	}
	for _, src := range flat {
		if strings.Contains(src, "sub") {
			t.Errorf("flat scan descended into subdirectory: %s", src)
		}
	}

	cfg.Recursive = true
	deep, err := discoverSources(cfg, tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(deep) != 3 {
		t.Fatalf("recursive scan found %v, want 3 files", deep)
	}
	if deep[len(deep)-1] != filepath.Join(nested, "deep.md") {
		t.Errorf("recursive scan order = %v", deep)
	}
}

func TestConvertPathRecursivePreservesStructure(t *testing.T) {
	tmpDir := t.TempDir()
	srcDir := filepath.Join(tmpDir, "src")
	nested := filepath.Join(srcDir, "sub")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	writeMarkdown(t, srcDir, "top.md", "# Top")
	writeMarkdown(t, nested, "deep.md", "# Deep")
	outDir := filepath.Join(tmpDir, "out")

	cfg := types.DefaultConvertConfig()
	cfg.Recursive = true
	report, err := ConvertPath(&fakePipeline{}, cfg, srcDir, outDir, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ConvertPath: %v", err)
	}
	if report.Succeeded != 2 {
		t.Fatalf("report = %+v, want 2 successes", report)
	}
	if _, err := os.Stat(filepath.Join(outDir, "sub", "deep.docx")); err != nil {
		t.Errorf("nested output should mirror source layout: %v", err)
	}
}

func TestSwapExt(t *testing.T) {
	if got := swapExt("docs/readme.md"); got != "docs/readme.docx" {
		t.Errorf("swapExt = %q", got)
	}
	if got := swapExt("NOTES.MD"); got != "NOTES.docx" {
		t.Errorf("swapExt = %q", got)
	}
}
