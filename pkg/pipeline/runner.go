package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ringforge/ringforge/pkg/board"
	"github.com/ringforge/ringforge/pkg/cache"
	"github.com/ringforge/ringforge/pkg/errors"
	"github.com/ringforge/ringforge/pkg/observability"
	"github.com/ringforge/ringforge/pkg/plan"
	"github.com/ringforge/ringforge/pkg/render"
	"github.com/ringforge/ringforge/pkg/render/rings"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete build → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Build
	buildStart := time.Now()
	ringSeq, err := r.BuildRings(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Rings = ringSeq
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.RingCount = len(ringSeq)

	r.Logger.Info("built ring sequence",
		"rings", len(ringSeq),
		"duration", result.Stats.BuildTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	p, doc, planHit, err := r.ComputePlanWithCacheInfo(ctx, ringSeq, opts)
	if err != nil {
		return nil, err
	}
	result.Plan = p
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.PlanHit = planHit

	if data, err := doc.Marshal(); err == nil {
		result.PlanHash = cache.Hash(data)
	}

	r.Logger.Info("allocated layout",
		"diameter_mm", p.Config.DiameterMM,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, p, doc, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// BuildRings expands the topology into the ordered ring sequence.
// Construction is pure arithmetic, so this stage is never cached.
func (r *Runner) BuildRings(ctx context.Context, opts Options) ([]board.Ring, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnBuildStart(ctx, opts.NInput, opts.NHidden, opts.NOutput)

	ringSeq, err := board.FromTopology(opts.NInput, opts.NHidden, opts.NOutput, opts.TopologyOptions())
	observability.Pipeline().OnBuildComplete(ctx, len(ringSeq), time.Since(start), err)
	return ringSeq, err
}

// ComputePlanWithCacheInfo allocates the board with caching and returns cache hit info.
func (r *Runner) ComputePlanWithCacheInfo(ctx context.Context, ringSeq []board.Ring, opts Options) (board.Plan, plan.Document, bool, error) {
	opts.SetLayoutDefaults()
	r.applyLogger(&opts)

	topo := plan.Topology{NInput: opts.NInput, NHidden: opts.NHidden, NOutput: opts.NOutput}
	cacheKey := r.Keyer.PlanKey(opts.PlanKeyOpts())

	// Try cache first (unless refresh requested). A cached document
	// regenerates the identical plan through Rebuild.
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if doc, err := plan.Unmarshal(data); err == nil {
				if _, p, err := doc.Rebuild(); err == nil {
					observability.Cache().OnCacheHit(ctx, "plan")
					return p, doc, true, nil
				}
			}
		}
		observability.Cache().OnCacheMiss(ctx, "plan")
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(ringSeq), opts.DiameterMM)

	p, err := board.Layout(opts.BoardConfig(), ringSeq)
	observability.Pipeline().OnLayoutComplete(ctx, len(ringSeq), time.Since(start), err)
	if err != nil {
		return board.Plan{}, plan.Document{}, false, err
	}

	doc := plan.FromPlan(topo, opts.TopologyOptions(), p)
	doc.Name = opts.Name

	if data, err := doc.Marshal(); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLPlan); err == nil {
			observability.Cache().OnCacheSet(ctx, "plan", len(data))
		}
	}

	return p, doc, false, nil
}

// ComputePlan is a convenience wrapper that discards the cache hit info.
func (r *Runner) ComputePlan(ctx context.Context, ringSeq []board.Ring, opts Options) (board.Plan, plan.Document, error) {
	p, doc, _, err := r.ComputePlanWithCacheInfo(ctx, ringSeq, opts)
	return p, doc, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, p board.Plan, doc plan.Document, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	r.applyLogger(&opts)
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	if err := ValidateLayers(opts.Layers); err != nil {
		return nil, false, err
	}

	docData, err := doc.Marshal()
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize plan for cache key")
	}
	planHash := cache.Hash(docData)

	keys := r.artifactKeys(planHash, opts)

	// Try to get everything from cache.
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(keys))
		allCached := true
		for name, key := range keys {
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				allCached = false
				break
			}
			artifacts[name] = data
		}
		if allCached {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	rendered, err := r.renderAll(p, doc, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for name, data := range rendered {
		if err := r.Cache.Set(ctx, keys[name], data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, p board.Plan, doc plan.Document, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, p, doc, opts)
	return artifacts, err
}

// artifactKeys maps every artifact name the options request to its cache key.
func (r *Runner) artifactKeys(planHash string, opts Options) map[string]string {
	keys := make(map[string]string)
	for _, format := range opts.Formats {
		keys[format] = r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(format, ""))
	}
	for _, layer := range opts.Layers {
		name := FormatSVG + ":" + layer
		keys[name] = r.Keyer.ArtifactKey(planHash, opts.ArtifactKeyOpts(FormatSVG, layer))
	}
	return keys
}

// renderAll produces every requested artifact from one shared primitive tree.
func (r *Runner) renderAll(p board.Plan, doc plan.Document, opts Options) (map[string][]byte, error) {
	nodes := rings.RenderPlan(p)

	var docOpts []render.DocOption
	if opts.DebugGuides {
		docOpts = append(docOpts, render.WithDebug())
	}

	svg := render.Document(nodes, p.Config.DiameterMM, docOpts...)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			artifacts[FormatSVG] = svg
		case FormatPNG:
			png, err := render.ToPNG(svg, opts.Scale)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "convert to png")
			}
			artifacts[FormatPNG] = png
		case FormatPDF:
			pdf, err := render.ToPDF(svg)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "convert to pdf")
			}
			artifacts[FormatPDF] = pdf
		case FormatJSON:
			data, err := doc.Marshal()
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "serialize plan")
			}
			artifacts[FormatJSON] = data
		}
	}

	// Per-pass layer variants share the tree; unrequested classes are
	// suppressed with CSS rather than re-rendered.
	for _, name := range opts.Layers {
		layer, err := render.ParseLayer(name)
		if err != nil {
			return nil, err
		}
		layerOpts := append([]render.DocOption{render.WithLayers(layer)}, docOpts...)
		artifacts[FormatSVG+":"+name] = render.Document(nodes, p.Config.DiameterMM, layerOpts...)
	}

	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
