package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tichlinh-png/trace-worksheet/pkg/cache"
	apperr "github.com/tichlinh-png/trace-worksheet/pkg/errors"
	"github.com/tichlinh-png/trace-worksheet/pkg/observability"
	"github.com/tichlinh-png/trace-worksheet/pkg/worksheet"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different inputs.
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

// Execute runs generate → render with caching. cfg must already have its
// defaults applied.
func (r *Runner) Execute(ctx context.Context, entries []worksheet.Entry, cfg worksheet.Config, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Generate
	doc, err := r.Generate(ctx, entries, cfg, &result.Timing)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.Stats = worksheet.Summarize(doc)

	result.InputHash, err = InputHash(entries, cfg)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "hash inputs")
	}

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, doc, result.InputHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Timing.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered worksheets",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Timing.RenderTime)

	return result, nil
}

// Generate builds the document and reports it to the pipeline hooks.
// timing may be nil.
func (r *Runner) Generate(ctx context.Context, entries []worksheet.Entry, cfg worksheet.Config, timing *Timing) (worksheet.Document, error) {
	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, len(entries))

	start := time.Now()
	doc, err := worksheet.Generate(entries, cfg)
	elapsed := time.Since(start)
	hooks.OnGenerateComplete(ctx, len(doc.Pages), elapsed, err)
	if err != nil {
		return worksheet.Document{}, err
	}
	if timing != nil {
		timing.GenerateTime = elapsed
	}

	if doc.IsEmpty() {
		r.Logger.Warn("no words to trace", "entries", len(entries))
	}
	r.Logger.Debug("generated document",
		"entries", doc.BlockCount(),
		"pages", len(doc.Pages),
		"duration", elapsed)
	return doc, nil
}

// RenderWithCacheInfo renders artifacts with caching and returns cache hit info.
// All formats must be cached for a hit; otherwise everything is re-rendered.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc worksheet.Document, inputHash string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	cacheHooks := observability.Cache()

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			cacheHooks.OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		cacheHooks.OnCacheMiss(ctx, "artifact")
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := RenderFormats(ctx, doc, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(inputHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Debug("cache write failed", "format", format, "error", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, doc worksheet.Document, inputHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, inputHash, opts)
	return artifacts, err
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
