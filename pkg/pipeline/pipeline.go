// Package pipeline provides the label generation pipeline for labeller.
//
// This package implements the complete validate → enumerate → output
// pipeline shared by the CLI and the HTTP server. By centralizing this
// logic, both entry points reject the same inputs and produce the same
// bytes.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Validate: check columns, output format and compile the filter
//     expression. Nothing is enumerated if any input is invalid.
//  2. Enumerate: walk the building's topology rules.
//  3. Output: lay the labels out as a comma-separated text grid, or render
//     a Code 39 image per label and an HTML sheet linking them.
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, cache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Building:   "TLR",
//	    Expression: "TLR-01-20",
//	    Columns:    6,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Output)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ThomasStivers/labeller/pkg/enumerate"
	"github.com/ThomasStivers/labeller/pkg/errors"
	"github.com/ThomasStivers/labeller/pkg/label"
	"github.com/ThomasStivers/labeller/pkg/render/sheet"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultBuilding is the building enumerated when none is given.
	DefaultBuilding = "TLR"

	// DefaultColumns is the number of labels per output row.
	DefaultColumns = label.DefaultColumns

	// DefaultImageDir is where barcode images live relative to the sheet.
	DefaultImageDir = sheet.DefaultImageDir
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatHTML = "html"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatHTML: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Building   string `json:"building"`
	Expression string `json:"expression,omitempty"` // case-insensitive filter
	Columns    int    `json:"columns,omitempty"`
	Format     string `json:"format,omitempty"`
	Separator  string `json:"separator,omitempty"`
	ImageDir   string `json:"image_dir,omitempty"` // image URL prefix in the sheet
	Refresh    bool   `json:"refresh,omitempty"`   // re-render cached images

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	// Progress, when set, is called after each barcode image is ready.
	Progress func(done, total int) `json:"-"`

	pattern   *enumerate.Pattern
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Building is the building code the labels were rendered with, or the
	// requested name when the building is unknown.
	Building string

	// Known is false when the requested building has no rule set.
	Known bool

	// Labels holds the enumerated labels and the grid width.
	Labels *label.Collection

	// Output is the text grid or the HTML sheet.
	Output []byte

	// Stats contains timing and count information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Count         int
	Generated     int // barcode images rendered
	Reused        int // barcode images found in the cache
	EnumerateTime time.Duration
	OutputTime    time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: text, html)", format)
	}
	return nil
}

// ValidateSeparator checks that labels joined with sep stay safe to use as
// file names and barcode text.
func ValidateSeparator(sep string) error {
	if sep == "" {
		return nil
	}
	if err := errors.ValidateLabelText("A" + sep + "A"); err != nil || strings.TrimSpace(sep) != sep {
		return errors.New(errors.ErrCodeInvalidInput, "invalid separator: %q", sep)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every input and applies defaults. It
// compiles the filter expression, so a malformed expression fails here
// before any enumeration. Calling it again has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if strings.TrimSpace(o.Building) == "" {
		o.Building = DefaultBuilding
	}
	if o.Columns == 0 {
		o.Columns = DefaultColumns
	}
	if err := errors.ValidateColumns(o.Columns); err != nil {
		return err
	}
	if o.Format == "" {
		o.Format = FormatText
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if err := ValidateSeparator(o.Separator); err != nil {
		return err
	}
	if o.ImageDir == "" {
		o.ImageDir = DefaultImageDir
	}

	pat, err := enumerate.CompilePattern(o.Expression)
	if err != nil {
		return err
	}
	o.pattern = pat

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// IsHTML returns true if the run produces a barcode sheet.
func (o *Options) IsHTML() bool {
	return o.Format == FormatHTML
}

// Formats returns the supported output formats in a stable order.
func Formats() []string {
	formats := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		formats = append(formats, f)
	}
	slices.Sort(formats)
	return formats
}
