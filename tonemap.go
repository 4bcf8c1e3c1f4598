// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package pathtrace

import (
	"math"

	"github.com/gazed/pathtrace/vec"
)

// TonemapOp selects the operator render applies after exposure.
type TonemapOp int

const (
	TonemapNone TonemapOp = iota
	TonemapLinear
	TonemapReinhard
	TonemapFilmic
	TonemapUncharted2
)

func tonemap(c vec.V3, opts Options) vec.V3 {
	switch opts.Tonemap {
	case TonemapLinear:
		return gammaCorrect(c, opts.Gamma)
	case TonemapReinhard:
		return gammaCorrect(reinhard(c), opts.Gamma)
	case TonemapFilmic:
		return filmic(c)
	case TonemapUncharted2:
		return uncharted2Tonemap(c, opts.Gamma)
	default:
		return c
	}
}

func gammaCorrect(c vec.V3, gamma float64) vec.V3 {
	return c.Pow(1 / gamma)
}

func reinhard(c vec.V3) vec.V3 {
	return vec.V3{X: c.X / (1 + c.X), Y: c.Y / (1 + c.Y), Z: c.Z / (1 + c.Z)}
}

// filmic is the Hable-approximation curve. A reference implementation of
// this curve is known to assign color.x twice instead of color.z; this
// version corrects that.
func filmic(c vec.V3) vec.V3 {
	x := vec.V3{X: math.Max(0, c.X-0.004), Y: math.Max(0, c.Y-0.004), Z: math.Max(0, c.Z-0.004)}
	curve := func(v float64) float64 {
		return (v * (6.2*v + 0.5)) / (v*(6.2*v+1.7) + 0.06)
	}
	return vec.V3{X: curve(x.X), Y: curve(x.Y), Z: curve(x.Z)}
}

func uncharted2Curve(x vec.V3) vec.V3 {
	const a, b, c, d, e, f = 0.15, 0.50, 0.10, 0.20, 0.02, 0.30
	curve := func(v float64) float64 {
		return ((v*(a*v+c*b) + d*e) / (v*(a*v+b) + d*f)) - e/f
	}
	return vec.V3{X: curve(x.X), Y: curve(x.Y), Z: curve(x.Z)}
}

func uncharted2Tonemap(c vec.V3, gamma float64) vec.V3 {
	const exposureBias = 2.0
	linearWhite := vec.NewV3(11.2)
	whiteScale := uncharted2Curve(linearWhite)
	whiteScale = vec.V3{X: 1 / whiteScale.X, Y: 1 / whiteScale.Y, Z: 1 / whiteScale.Z}

	t := uncharted2Curve(c.Scale(exposureBias))
	out := t.Mult(whiteScale)
	return gammaCorrect(out, gamma)
}
