// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package texture implements the tracer's two texture kinds: 8-bit packed
// LDR textures (albedo/roughness/metalness maps) and 32-bit float HDR
// equirectangular environment maps. Decoding images from disk is an
// external asset-loading collaborator's job; this package only samples
// pixel data already resident in memory.
package texture

import (
	"math"

	"github.com/gazed/pathtrace/internal/xmath"
	"github.com/gazed/pathtrace/vec"
)

// Filter selects how an LDR texture is reconstructed between texels.
type Filter int

const (
	Point Filter = iota
	Bilinear
)

// Address selects how out-of-range integer texel coordinates are mapped
// back into [0, size).
type Address int

const (
	Clamp Address = iota
	Wrap
	Mirror
)

// apply maps an arbitrary integer coordinate x into [0, size) under the
// given address mode. Idempotent: apply(apply(x)) == apply(x).
func (a Address) apply(x, size int) int {
	switch a {
	case Wrap:
		m := x % size
		if m < 0 {
			m += size
		}
		return m
	case Mirror:
		period := 2 * size
		m := x % period
		if m < 0 {
			m += period
		}
		if m < size {
			return m
		}
		return period - 1 - m
	default: // Clamp
		return xmath.Clamp(x, 0, size-1)
	}
}

// LDR is an 8-bit packed texture. Comps is the pixel stride; Offset lets a
// single RGBA image feed more than one material attribute from different
// channel ranges (e.g. a glTF-style ORM texture: occlusion/roughness/
// metalness packed into one image).
type LDR struct {
	Width, Height int
	Comps         int // total channels per pixel in Pixels
	Offset        int // first channel this LDR view reads from
	Pixels        []uint8
	Filter        Filter
	AddressU      Address
	AddressV      Address
	SRGB          bool // cleared by Linearize, so the conversion runs at most once
}

// texel fetches the normalized (0-1) RGB value at integer coordinates
// (x, y), applying the address modes first.
func (t *LDR) texel(x, y int) vec.V3 {
	x = t.AddressU.apply(x, t.Width)
	y = t.AddressV.apply(y, t.Height)
	i := (y*t.Width+x)*t.Comps + t.Offset
	r := float64(t.Pixels[i]) / 255
	g := r
	b := r
	if t.Comps-t.Offset >= 3 {
		g = float64(t.Pixels[i+1]) / 255
		b = float64(t.Pixels[i+2]) / 255
	}
	return vec.V3{X: r, Y: g, Z: b}
}

// Sample evaluates the texture at normalized UV coordinates, applying the
// configured filter and address modes.
func (t *LDR) Sample(uv vec.V2) vec.V3 {
	fx := uv.X*float64(t.Width) - 0.5
	fy := uv.Y*float64(t.Height) - 0.5
	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))

	if t.Filter == Point {
		return t.texel(x0, y0)
	}

	wx := fx - math.Floor(fx)
	wy := fy - math.Floor(fy)
	c00 := t.texel(x0, y0)
	c10 := t.texel(x0+1, y0)
	c01 := t.texel(x0, y0+1)
	c11 := t.texel(x0+1, y0+1)
	top := c00.Lerp(c10, wx)
	bottom := c01.Lerp(c11, wx)
	return top.Lerp(bottom, wy)
}

// sRGBGamma approximates the sRGB<->linear conversion with a flat gamma
// (the exact piecewise sRGB curve is not worth the extra branch on a
// per-texel conversion that runs once at scene_end).
const sRGBGamma = 2.2

// Linearize converts the texture's pixels from sRGB to linear space
// in-place using pow(x, 2.2), then clears the SRGB flag so a second call
// (or a second scene_end) is a no-op.
func (t *LDR) Linearize() {
	if !t.SRGB {
		return
	}
	for i, p := range t.Pixels {
		// only linearize color channels; Comps-Offset beyond 3 (e.g. an
		// alpha or packed roughness channel sharing this image) stays raw.
		if c := (i - t.Offset) % t.Comps; c >= 0 && c < 3 {
			linear := math.Pow(float64(p)/255, sRGBGamma)
			t.Pixels[i] = uint8(vec.Clamp(linear*255, 0, 255))
		}
	}
	t.SRGB = false
}
