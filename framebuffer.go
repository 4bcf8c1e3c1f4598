// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package pathtrace

import (
	"fmt"
	"log/slog"

	"github.com/gazed/pathtrace/vec"
)

// pixelAccum is one pixel's running Monte Carlo sum and sample count;
// render never clears it, enabling progressive refinement.
type pixelAccum struct {
	sum     vec.V3
	samples int
}

// Framebuffer holds the raw accumulators and the most recently tone-mapped
// output for a fixed-size image.
type Framebuffer struct {
	Width, Height int
	accum         []pixelAccum
	Pixels        []vec.V3
}

// NewFramebuffer zero-initializes a w×h framebuffer. Both dimensions must
// be positive.
func NewFramebuffer(w, h int) (*Framebuffer, error) {
	if w <= 0 || h <= 0 {
		slog.Warn("invalid framebuffer dimensions", "width", w, "height", h)
		return nil, &ConfigError{Msg: fmt.Sprintf("framebuffer dimensions must be positive, got %dx%d", w, h)}
	}
	return &Framebuffer{
		Width:  w,
		Height: h,
		accum:  make([]pixelAccum, w*h),
		Pixels: make([]vec.V3, w*h),
	}, nil
}

func (f *Framebuffer) index(x, y int) int { return y*f.Width + x }

// sampleCount returns how many samples pixel (x, y) has already
// accumulated, so a caller can derive the next sample's index without
// restarting the per-pixel RNG stream from zero.
func (f *Framebuffer) sampleCount(x, y int) int { return f.accum[f.index(x, y)].samples }

// add accumulates one radiance sample into pixel (x, y), clamping non-
// finite contributions to zero so a single bad sample can't poison a
// pixel forever.
func (f *Framebuffer) add(x, y int, radiance vec.V3) {
	if !radiance.IsFinite() {
		radiance = vec.V3{}
	}
	i := f.index(x, y)
	f.accum[i].sum = f.accum[i].sum.Add(radiance)
	f.accum[i].samples++
}

// resolve recomputes the tone-mapped output for pixel (x, y) from its
// current accumulator state.
func (f *Framebuffer) resolve(x, y int, opts Options) {
	i := f.index(x, y)
	a := f.accum[i]
	if a.samples == 0 {
		f.Pixels[i] = vec.V3{}
		return
	}
	color := a.sum.Scale(1 / float64(a.samples))
	color = color.Scale(opts.ManualExposure)
	f.Pixels[i] = tonemap(color, opts)
}
