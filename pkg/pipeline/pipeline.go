// Package pipeline drives a fold sequence from notation to rendered output.
//
// The CLI and the HTTP API both go through this package, so a fold sequence
// produces the same artifacts and the same errors regardless of entry point.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Simulate: parse fold and punch notation, apply them to a fresh
//     [paper.Paper] in order
//  2. Render: draw the requested history steps in each requested format
//
// Simulation is cheap and always re-run. Rendered artifacts are cached by a
// hash of the fold sequence plus the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Folds:   []string{"v:left:1.5", "h:up:1.5"},
//	    Punches: []string{"0,0"},
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	final := result.Artifacts[pipeline.ArtifactName(2, "svg")]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/holepunch/pkg/cache"
	"github.com/matzehuels/holepunch/pkg/catalog"
	"github.com/matzehuels/holepunch/pkg/errors"
	"github.com/matzehuels/holepunch/pkg/paper"
	"github.com/matzehuels/holepunch/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// MaxFolds bounds the sequence length.
	MaxFolds = paper.MaxFolds

	// MaxPunches bounds the number of punch points.
	MaxPunches = paper.CellCount

	// DefaultScale is the PNG pixel density.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatText = "txt"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatText: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Simulation input, in fold notation ("v:left:1.5") and "x,y" points.
	Folds   []string `json:"folds"`
	Punches []string `json:"punches,omitempty"`

	// Steps selects history steps to render; empty renders all of them.
	Steps []int `json:"steps,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	CellSize    float64  `json:"cell_size,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	HidePunches bool     `json:"hide_punches,omitempty"`
	Refresh     bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	// Catalog restricts folds to a menu. Nil allows any well-formed fold.
	Catalog catalog.Catalog `json:"-"`

	folds     []paper.Fold
	punches   []paper.GridPoint
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Paper is the simulated sheet, punched.
	Paper *paper.Paper

	// SeqHash identifies the fold sequence and punched cells.
	SeqHash string

	// Holes are the punched cells on the unfolded sheet.
	Holes []paper.GridPoint

	// Artifacts contains rendered outputs keyed by [ArtifactName].
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks cache use during rendering.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Folds        int
	Punched      int
	SimulateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	Hits      int
	Misses    int
	RenderHit bool // Whether every artifact came from cache
}

// ArtifactName is the key of one artifact in [Result.Artifacts].
func ArtifactName(step int, format string) string {
	return strconv.Itoa(step) + "/" + format
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, txt)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults parses the fold and punch notation, checks every
// field and applies defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	folds, err := ParseFolds(o.Folds)
	if err != nil {
		return err
	}
	if o.Catalog != nil {
		for _, f := range folds {
			if !o.Catalog.Contains(f) {
				return errors.New(errors.ErrCodeInvalidInput, "fold %s is not in the catalog", f)
			}
		}
	}
	punches, err := ParsePunches(o.Punches)
	if err != nil {
		return err
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.Formats = dedupe(o.Formats)

	if len(o.Steps) == 0 {
		o.Steps = make([]int, len(folds)+1)
		for i := range o.Steps {
			o.Steps[i] = i
		}
	}
	for _, s := range o.Steps {
		if err := errors.ValidateStep(s, len(folds)); err != nil {
			return err
		}
	}
	o.Steps = dedupe(o.Steps)
	slices.Sort(o.Steps)

	if o.CellSize == 0 {
		o.CellSize = render.DefaultCellSize
	}
	if err := errors.ValidateCellSize(o.CellSize); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 || o.Scale > 8 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, 8], got %g", o.Scale)
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.folds = folds
	o.punches = punches
	o.validated = true
	return nil
}

// ParsedFolds returns the folds parsed by ValidateAndSetDefaults.
func (o *Options) ParsedFolds() []paper.Fold { return slices.Clone(o.folds) }

// ParsedPunches returns the punch points parsed by ValidateAndSetDefaults.
func (o *Options) ParsedPunches() []paper.GridPoint { return slices.Clone(o.punches) }

// RenderOptions returns scene options for rendering.
func (o *Options) RenderOptions() render.Options {
	opts := render.DefaultOptions()
	opts.CellSize = o.CellSize
	opts.ShowPunches = !o.HidePunches
	return opts
}

// ArtifactKeyOpts returns cache key options for one artifact.
func (o *Options) ArtifactKeyOpts(step int, format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Step:        step,
		Format:      format,
		CellSize:    o.CellSize,
		ShowPunches: !o.HidePunches,
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}

// SequenceHash identifies a fold sequence and the cells it punched. Two runs
// with the same hash render identically.
func SequenceHash(folds []paper.Fold, holes []paper.GridPoint) string {
	parts := make([]string, 0, len(folds)+len(holes)+1)
	for _, f := range folds {
		parts = append(parts, f.String())
	}
	parts = append(parts, "punch")
	pts := slices.Clone(holes)
	paper.SortGridPoints(pts)
	for _, p := range slices.Compact(pts) {
		parts = append(parts, fmt.Sprintf("%d,%d", p.X, p.Y))
	}
	return cache.HashStrings(parts...)
}

func dedupe[T comparable](in []T) []T {
	seen := make(map[T]bool, len(in))
	out := in[:0:0]
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
