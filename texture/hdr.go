// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package texture

import (
	"math"

	"github.com/gazed/pathtrace/vec"
)

// HDR is a 32-bit float RGB environment map sampled as a latitude/
// longitude equirectangular projection. Sampling is always bilinear, with
// the vertical (pole) axis clamped.
type HDR struct {
	Width, Height int
	Pixels        []float32 // RGB triples, row-major
}

// Empty reports whether the environment map has no data (a scene with no
// environment_map samples as black everywhere).
func (h *HDR) Empty() bool { return h == nil || h.Width == 0 || h.Height == 0 }

func (h *HDR) texel(x, y int) vec.V3 {
	x = Wrap.apply(x, h.Width)
	if y < 0 {
		y = 0
	}
	if y >= h.Height {
		y = h.Height - 1
	}
	i := (y*h.Width + x) * 3
	return vec.V3{X: float64(h.Pixels[i]), Y: float64(h.Pixels[i+1]), Z: float64(h.Pixels[i+2])}
}

// Sample looks up the environment map in the direction v (need not be
// unit length). theta = acos(v_y) is the polar angle from +Y, phi is the
// azimuth around Y, mapped into [0, 2*pi) before scaling to pixel space.
func (h *HDR) Sample(v vec.V3) vec.V3 {
	if h.Empty() {
		return vec.V3{}
	}
	d := v.Unit()
	theta := math.Acos(vec.Clamp(d.Y, -1, 1))
	phi := math.Atan2(d.Z, d.X) + math.Pi

	fx := phi / (2 * math.Pi) * float64(h.Width)
	fy := theta / math.Pi * float64(h.Height)
	fx -= 0.5
	fy -= 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	wx := fx - math.Floor(fx)
	wy := fy - math.Floor(fy)

	c00 := h.texel(x0, y0)
	c10 := h.texel(x0+1, y0)
	c01 := h.texel(x0, y0+1)
	c11 := h.texel(x0+1, y0+1)
	top := c00.Lerp(c10, wx)
	bottom := c01.Lerp(c11, wx)
	return top.Lerp(bottom, wy)
}
