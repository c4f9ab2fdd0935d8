package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ThomasStivers/labeller/pkg/cache"
	"github.com/ThomasStivers/labeller/pkg/enumerate"
	"github.com/ThomasStivers/labeller/pkg/label"
	"github.com/ThomasStivers/labeller/pkg/observability"
	"github.com/ThomasStivers/labeller/pkg/topology"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the rules, cache and logger - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Registry *topology.Registry
	Cache    cache.Cache
	Logger   *log.Logger
}

// NewRunner creates a runner over the given building rules and image cache.
// If reg is nil, the embedded rules are used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(reg *topology.Registry, c cache.Cache, logger *log.Logger) *Runner {
	if reg == nil {
		reg = topology.Default()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Registry: reg,
		Cache:    c,
		Logger:   logger,
	}
}

// Execute runs the complete validate → enumerate → output pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{Building: opts.Building}
	if b, ok := r.Registry.Lookup(opts.Building); ok {
		result.Building, result.Known = b.Code, true
	} else {
		r.Logger.Warn("unknown building", "building", opts.Building)
	}

	hooks := observability.Pipeline()

	// Stage 1: Enumerate
	start := time.Now()
	hooks.OnEnumerateStart(ctx, result.Building, opts.Expression)
	labels, err := r.Enumerate(opts)
	if err != nil {
		hooks.OnEnumerateComplete(ctx, result.Building, 0, time.Since(start), err)
		return nil, err
	}
	result.Labels = labels
	result.Stats.Count = labels.Len()
	result.Stats.EnumerateTime = time.Since(start)
	hooks.OnEnumerateComplete(ctx, result.Building, labels.Len(), result.Stats.EnumerateTime, nil)

	r.Logger.Debug("enumerated labels",
		"building", result.Building,
		"expression", opts.Expression,
		"count", labels.Len(),
		"duration", result.Stats.EnumerateTime)

	// Stage 2: Output
	start = time.Now()
	hooks.OnRenderStart(ctx, opts.Format, labels.Len())
	err = r.output(ctx, opts, result)
	result.Stats.OutputTime = time.Since(start)
	hooks.OnRenderComplete(ctx, opts.Format, result.Stats.OutputTime, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// output fills result.Output in the requested format.
func (r *Runner) output(ctx context.Context, opts Options, result *Result) error {
	if !opts.IsHTML() {
		result.Output = RenderText(result.Labels)
		return nil
	}
	if err := r.renderBarcodes(ctx, result.Labels, opts, &result.Stats); err != nil {
		return fmt.Errorf("render barcodes: %w", err)
	}
	out, err := RenderSheet(result.Building, result.Labels, opts.ImageDir)
	if err != nil {
		return err
	}
	result.Output = out
	r.Logger.Debug("rendered barcodes",
		"generated", result.Stats.Generated,
		"reused", result.Stats.Reused)
	return nil
}

// Enumerate validates opts and collects the matching labels.
func (r *Runner) Enumerate(opts Options) (*label.Collection, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	e := enumerate.New(r.Registry, enumerate.WithSeparator(opts.Separator))
	return label.NewCollection(e.Enumerate(opts.Building, opts.pattern), opts.Columns)
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}
