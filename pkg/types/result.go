// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// ConversionStatus indicates the outcome of converting one Markdown file.
type ConversionStatus string

const (
	ConversionSucceeded ConversionStatus = "succeeded"
	ConversionWarned    ConversionStatus = "succeeded_with_warnings"
	ConversionFailed    ConversionStatus = "failed"
)

// WarningKind classifies non-fatal conversion warnings.
type WarningKind string

const (
	// WarnUnknownBlock flags a block-level construct the converter does not
	// support; the block is skipped.
	WarnUnknownBlock WarningKind = "unknown_block"

	// WarnUnknownInline flags an inline construct that was stripped or
	// flattened to plain text.
	WarnUnknownInline WarningKind = "unknown_inline"

	// WarnDroppedFeature flags formatting degraded to plain content, such as
	// an image replaced by its alt text.
	WarnDroppedFeature WarningKind = "dropped_feature"
)

// Warning records a construct the converter could not fully translate.
// Warnings never abort a conversion; they surface on the file's result.
type Warning struct {
	// Kind classifies the warning.
	Kind WarningKind `json:"kind" yaml:"kind"`

	// Node names the source construct (e.g. "Image", "Table").
	Node string `json:"node" yaml:"node"`

	// Message describes what was degraded or skipped.
	Message string `json:"message" yaml:"message"`
}

// ErrorKind classifies fatal per-file conversion errors. A fatal error fails
// the file it occurred on and never aborts the rest of a batch.
type ErrorKind string

const (
	ErrInputNotFound   ErrorKind = "input_not_found"
	ErrInputUnreadable ErrorKind = "input_unreadable"
	ErrParse           ErrorKind = "parse_error"
	ErrOutputPath      ErrorKind = "output_path_invalid"
	ErrWriteDenied     ErrorKind = "write_permission_denied"
	ErrWrite           ErrorKind = "write_failure"
)

// ConversionError ties a failure cause to its ErrorKind. Pipeline stages wrap
// errors at the point where the kind is known; callers recover the kind with
// KindOf.
type ConversionError struct {
	Kind ErrorKind
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// WrapError classifies err with kind. A nil err returns nil.
func WrapError(kind ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	return &ConversionError{Kind: kind, Err: err}
}

// KindOf returns the ErrorKind carried by err, or the empty kind when err
// holds no classification.
func KindOf(err error) ErrorKind {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// ConversionResult records the outcome of converting one input file.
type ConversionResult struct {
	// Input is the source Markdown path as enumerated.
	Input string `json:"input" yaml:"input"`

	// Output is the written .docx path. Empty when the conversion failed
	// before a path was resolved.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Status distinguishes clean successes, successes that degraded content,
	// and failures.
	Status ConversionStatus `json:"status" yaml:"status"`

	// Warnings lists every construct that was degraded or skipped, in
	// document order.
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// ErrKind classifies the failure when Status is ConversionFailed.
	ErrKind ErrorKind `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`

	// Err is the failure cause. Not serialized; ErrKind carries the class.
	Err error `json:"-" yaml:"-"`
}

// BatchReport aggregates the results of one conversion run. Results keep
// input enumeration order; the counters are maintained by Add.
type BatchReport struct {
	// Results lists every file's outcome in the order the files were
	// enumerated.
	Results []ConversionResult `json:"results" yaml:"results"`

	// Succeeded counts files converted without any degradation.
	Succeeded int `json:"succeeded" yaml:"succeeded"`

	// Warned counts files converted with at least one warning.
	Warned int `json:"warned" yaml:"warned"`

	// Failed counts files whose conversion failed.
	Failed int `json:"failed" yaml:"failed"`
}

// Add appends res and updates the status counters.
func (r *BatchReport) Add(res ConversionResult) {
	r.Results = append(r.Results, res)
	switch res.Status {
	case ConversionSucceeded:
		r.Succeeded++
	case ConversionWarned:
		r.Warned++
	case ConversionFailed:
		r.Failed++
	}
}

// Total returns the number of files attempted.
func (r *BatchReport) Total() int {
	return r.Succeeded + r.Warned + r.Failed
}

// HasFailures reports whether any file in the batch failed.
func (r *BatchReport) HasFailures() bool {
	return r.Failed > 0
}

// Failures returns the failed results, in enumeration order.
func (r *BatchReport) Failures() []ConversionResult {
	var out []ConversionResult
	for _, res := range r.Results {
		if res.Status == ConversionFailed {
			out = append(out, res)
		}
	}
	return out
}
