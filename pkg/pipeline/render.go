package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ThomasStivers/labeller/pkg/cache"
	"github.com/ThomasStivers/labeller/pkg/label"
	"github.com/ThomasStivers/labeller/pkg/observability"
	"github.com/ThomasStivers/labeller/pkg/render/barcode"
	"github.com/ThomasStivers/labeller/pkg/render/sheet"
)

// cacheKeyType names barcode images in cache hook events.
const cacheKeyType = "barcode"

// RenderText lays labels out as comma-separated rows ending in a newline.
func RenderText(c *label.Collection) []byte {
	var buf bytes.Buffer
	_, _ = c.WriteTo(&buf)
	return buf.Bytes()
}

// RenderSheet renders the HTML page for a collection.
func RenderSheet(building string, c *label.Collection, imageDir string) ([]byte, error) {
	var buf bytes.Buffer
	if err := sheet.Render(&buf, sheet.Page{Building: building, Labels: c, ImageDir: imageDir}); err != nil {
		return nil, fmt.Errorf("render sheet: %w", err)
	}
	return buf.Bytes(), nil
}

// BarcodeWithCacheInfo returns the SVG image for text, rendering and storing
// it on a cache miss. hit reports whether the image came from the cache.
func (r *Runner) BarcodeWithCacheInfo(ctx context.Context, text string, refresh bool) (data []byte, hit bool, err error) {
	hooks := observability.Cache()
	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, text); err == nil && hit {
			hooks.OnCacheHit(ctx, cacheKeyType)
			return data, true, nil
		} else if err != nil {
			r.Logger.Debug("cache read failed", "key", text, "error", err)
		}
		hooks.OnCacheMiss(ctx, cacheKeyType)
	}

	data, err = barcode.RenderSVG(text)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, text, data, cache.TTLBarcode); err != nil {
		return nil, false, fmt.Errorf("store barcode %s: %w", text, err)
	}
	hooks.OnCacheSet(ctx, cacheKeyType, len(data))
	return data, false, nil
}

// Barcode is a convenience wrapper that discards the cache hit info.
func (r *Runner) Barcode(ctx context.Context, text string) ([]byte, error) {
	data, _, err := r.BarcodeWithCacheInfo(ctx, text, false)
	return data, err
}

// renderBarcodes makes sure every label has an image in the cache.
func (r *Runner) renderBarcodes(ctx context.Context, c *label.Collection, opts Options, stats *Stats) error {
	labels := c.Labels()
	for i, l := range labels {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, hit, err := r.BarcodeWithCacheInfo(ctx, l.String(), opts.Refresh)
		if err != nil {
			return err
		}
		if hit {
			stats.Reused++
		} else {
			stats.Generated++
		}
		if opts.Progress != nil {
			opts.Progress(i+1, len(labels))
		}
	}
	return nil
}
