// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package pathtrace

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/gazed/pathtrace/integrator"
	"github.com/gazed/pathtrace/rng"
)

// Stats summarizes one Render or RenderTiles call: wall-clock time for the
// whole call plus per-sample trace timing, matching the counters a C-style
// render entry point returns.
type Stats struct {
	TotalMS      float64
	TraceTotalMS float64
	TraceMinMS   float64
	TraceMaxMS   float64
	TraceCount   int
}

func (s Stats) merge(o Stats) Stats {
	if o.TraceCount == 0 {
		return s
	}
	if s.TraceCount == 0 {
		return o
	}
	return Stats{
		TraceTotalMS: s.TraceTotalMS + o.TraceTotalMS,
		TraceMinMS:   math.Min(s.TraceMinMS, o.TraceMinMS),
		TraceMaxMS:   math.Max(s.TraceMaxMS, o.TraceMaxMS),
		TraceCount:   s.TraceCount + o.TraceCount,
	}
}

// StatsCollector receives one observation per primary-ray trace, letting a
// caller wire in its own metrics backend without the renderer depending on
// any specific metrics library. A nil collector passed to Render or
// RenderTiles is treated as a no-op.
type StatsCollector interface {
	Observe(traceMS float64)
}

type noopCollector struct{}

func (noopCollector) Observe(float64) {}

// Render traces SamplesPerPixel jittered primary rays through every pixel
// of the rectangle [x, x+w) x [y, y+h) of fb, accumulating radiance into
// the framebuffer's running per-pixel average and resolving each pixel's
// displayed color afterward. Pixel order within the tile is row-major but
// not externally observable; calling Render again over the same rectangle
// adds more samples to the existing accumulation rather than restarting
// it. The scene must already be built (End must have returned
// successfully); callers are responsible for not passing overlapping
// tiles to concurrent Render calls.
func Render(camera Camera, scene *Scene, fb *Framebuffer, x, y, w, h int, collector StatsCollector) (Stats, error) {
	if scene.state != sceneBuilt {
		return Stats{}, &SceneError{Msg: "Render called on a scene before End or after Destroy"}
	}
	if x < 0 || y < 0 || w <= 0 || h <= 0 || x+w > fb.Width || y+h > fb.Height {
		return Stats{}, &ConfigError{Msg: fmt.Sprintf("tile (%d,%d,%d,%d) out of bounds for %dx%d framebuffer", x, y, w, h, fb.Width, fb.Height)}
	}
	if collector == nil {
		collector = noopCollector{}
	}

	start := time.Now()
	b := camera.basis()
	opts := scene.opts

	stats := Stats{TraceMinMS: math.Inf(1)}
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			already := fb.sampleCount(px, py)
			for i := 0; i < opts.SamplesPerPixel; i++ {
				sampler := rng.PixelSampler(opts.Seed, px, py, already+i)
				r := camera.ray(px, py, fb.Width, fb.Height, opts.SubpixelJitter, b, sampler)

				traceStart := time.Now()
				radiance := integrator.Trace(scene, r, sampler)
				traceMS := milliseconds(time.Since(traceStart))

				collector.Observe(traceMS)
				stats.TraceCount++
				stats.TraceTotalMS += traceMS
				stats.TraceMinMS = math.Min(stats.TraceMinMS, traceMS)
				stats.TraceMaxMS = math.Max(stats.TraceMaxMS, traceMS)

				fb.add(px, py, radiance)
			}
			fb.resolve(px, py, opts)
		}
	}
	stats.TotalMS = milliseconds(time.Since(start))
	return stats, nil
}

func milliseconds(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

// tile is a pixel rectangle dispatched to a worker in RenderTiles.
type tile struct{ x, y, w, h int }

// RenderTiles covers the whole framebuffer with tileSize x tileSize tiles
// (clipped at the edges) and renders them across a pool of
// runtime.NumCPU() worker goroutines, one goroutine per tile's Render
// call. This generalizes a one-goroutine-per-row worker pool to
// rectangular tiles; because every pixel's sampler is derived from its own
// coordinates and sample index (rng.PixelSampler), not a stream shared
// across a tile or worker, the result does not depend on how work happened
// to interleave across workers or how the frame was cut into tiles.
func RenderTiles(camera Camera, scene *Scene, fb *Framebuffer, tileSize int, collector StatsCollector) (Stats, error) {
	if tileSize <= 0 {
		return Stats{}, &ConfigError{Msg: fmt.Sprintf("tileSize must be positive, got %d", tileSize)}
	}
	if scene.state != sceneBuilt {
		return Stats{}, &SceneError{Msg: "RenderTiles called on a scene before End or after Destroy"}
	}

	var tiles []tile
	for y := 0; y < fb.Height; y += tileSize {
		th := min(tileSize, fb.Height-y)
		for x := 0; x < fb.Width; x += tileSize {
			tw := min(tileSize, fb.Width-x)
			tiles = append(tiles, tile{x: x, y: y, w: tw, h: th})
		}
	}

	start := time.Now()
	work := make(chan tile, len(tiles))
	results := make(chan Stats, len(tiles))
	errs := make(chan error, len(tiles))

	procs := runtime.NumCPU()
	var wg sync.WaitGroup
	wg.Add(procs)
	for i := 0; i < procs; i++ {
		go func() {
			defer wg.Done()
			for t := range work {
				st, err := Render(camera, scene, fb, t.x, t.y, t.w, t.h, collector)
				if err != nil {
					errs <- err
					continue
				}
				results <- st
			}
		}()
	}
	for _, t := range tiles {
		work <- t
	}
	close(work)
	wg.Wait()
	close(results)
	close(errs)

	if err := <-errs; err != nil {
		return Stats{}, err
	}

	total := Stats{TraceMinMS: math.Inf(1)}
	for st := range results {
		total = total.merge(st)
	}
	total.TotalMS = milliseconds(time.Since(start))
	return total, nil
}
