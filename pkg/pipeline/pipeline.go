// Package pipeline provides the core board generation pipeline for Ringforge.
//
// This package implements the complete build → layout → render pipeline that
// can be used by CLI, API, and worker components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Expand a network topology into the ordered ring sequence
//  2. Layout: Allocate radial space to every ring on the apparatus
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    NInput:     3,
//	    NHidden:    2,
//	    NOutput:    1,
//	    DiameterMM: 400,
//	    Formats:    []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Build only
//	rings, err := runner.BuildRings(ctx, opts)
//
//	// Layout with existing rings
//	p, doc, err := runner.ComputePlan(ctx, rings, opts)
//
//	// Render with existing plan
//	artifacts, err := runner.Render(ctx, p, doc, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/ringforge/ringforge/pkg/board"
	"github.com/ringforge/ringforge/pkg/cache"
	"github.com/ringforge/ringforge/pkg/errors"
	"github.com/ringforge/ringforge/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultDiameterMM is the default apparatus diameter. A 400mm board
	// keeps slider channels wide enough for hand operation at typical
	// topologies while still fitting common CNC beds.
	DefaultDiameterMM = 400.0

	// DefaultCenterDiameterMM reserves the center plate for the logo/QR
	// engraving and the fastener circle.
	DefaultCenterDiameterMM = 60.0

	// DefaultPaddingMM is the fixed gap between adjacent rings.
	DefaultPaddingMM = 1.0

	// DefaultPNGScale produces 2x resolution rasters for high-DPI displays.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the board pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Topology
	NInput  int `json:"n_input"`
	NHidden int `json:"n_hidden"`
	NOutput int `json:"n_output"`

	// Board options
	DiameterMM       float64 `json:"diameter_mm,omitempty"`
	CenterDiameterMM float64 `json:"center_diameter_mm,omitempty"`
	PaddingMM        float64 `json:"padding_mm,omitempty"`
	Policy           string  `json:"policy,omitempty"`
	ClampMax         float64 `json:"clamp_max,omitempty"`
	ClampDelta       float64 `json:"clamp_delta,omitempty"`
	RuleWidthMM      float64 `json:"rule_width_mm,omitempty"`
	AzimuthalWidthMM float64 `json:"azimuthal_width_mm,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Layers      []string `json:"layers,omitempty"` // per-pass svg variants; empty = combined document only
	DebugGuides bool     `json:"debug_guides,omitempty"`
	Scale       float64  `json:"scale,omitempty"` // raster scale for png

	// Name labels the plan document for the store and JSON output.
	Name string `json:"name,omitempty"`

	// Refresh bypasses the cache and recomputes everything.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Rings is the built ring sequence, outermost first.
	Rings []board.Ring

	// Plan is the allocated board layout.
	Plan board.Plan

	// PlanHash is the content hash of the plan document.
	PlanHash string

	// Artifacts contains rendered outputs keyed by format. Per-layer SVG
	// variants use the key "svg:<layer-slug>".
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RingCount  int
	BuildTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PlanHit   bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
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

// ValidateLayers checks that all layer names parse.
func ValidateLayers(layers []string) error {
	for _, l := range layers {
		if _, err := render.ParseLayer(l); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateLayers(o.Layers); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks required fields for ring construction.
func (o *Options) ValidateForBuild() error {
	if err := errors.ValidateTopology(o.NInput, o.NHidden, o.NOutput); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for plan allocation.
func (o *Options) SetLayoutDefaults() {
	if o.DiameterMM == 0 {
		o.DiameterMM = DefaultDiameterMM
	}
	if o.CenterDiameterMM == 0 {
		o.CenterDiameterMM = DefaultCenterDiameterMM
	}
	if o.PaddingMM == 0 {
		o.PaddingMM = DefaultPaddingMM
	}
	if o.Policy == "" {
		o.Policy = board.PolicyEqual
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultPNGScale
	}
}

// TopologyOptions returns the ring construction options. The clamp
// parameters arrive as floats from flags and JSON and convert to decimals
// here, at the scale-arithmetic boundary.
func (o *Options) TopologyOptions() board.TopologyOptions {
	return board.TopologyOptions{
		ClampMax:         decimal.NewFromFloat(o.ClampMax),
		ClampDelta:       decimal.NewFromFloat(o.ClampDelta),
		RuleWidthMM:      o.RuleWidthMM,
		AzimuthalWidthMM: o.AzimuthalWidthMM,
	}
}

// BoardConfig returns the allocator configuration.
func (o *Options) BoardConfig() board.Config {
	return board.Config{
		DiameterMM:       o.DiameterMM,
		CenterDiameterMM: o.CenterDiameterMM,
		PaddingMM:        o.PaddingMM,
		Policy:           o.Policy,
	}
}

// PlanKeyOpts returns cache key options for plan computation.
func (o *Options) PlanKeyOpts() cache.PlanKeyOpts {
	return cache.PlanKeyOpts{
		NInput:           o.NInput,
		NHidden:          o.NHidden,
		NOutput:          o.NOutput,
		DiameterMM:       o.DiameterMM,
		CenterDiameterMM: o.CenterDiameterMM,
		PaddingMM:        o.PaddingMM,
		Policy:           o.Policy,
		ClampMax:         o.ClampMax,
		ClampDelta:       o.ClampDelta,
		RuleWidthMM:      o.RuleWidthMM,
		AzimuthalWidthMM: o.AzimuthalWidthMM,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format, layer string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Layer:       layer,
		DebugGuides: o.DebugGuides,
		Scale:       o.Scale,
	}
}
