// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package material

import (
	"math"

	"github.com/gazed/pathtrace/vec"
)

// sampleDiffuse draws a direction from a cosine-weighted hemisphere in
// tangent space (Malley's method: uniform disk sample lifted to the
// hemisphere) and rotates it into world space.
func sampleDiffuse(ctx ShadingContext, e1, e2 float64) vec.V3 {
	r := math.Sqrt(e1)
	theta := 2 * math.Pi * e2
	x := r * math.Cos(theta)
	z := r * math.Sin(theta)
	y := math.Sqrt(math.Max(0, 1-e1))
	return ctx.Basis.ToWorld(vec.V3{X: x, Y: y, Z: z})
}

// pdfDiffuse is cos(theta)/pi for the cosine-weighted hemisphere sampler.
func pdfDiffuse(l vec.V3, ctx ShadingContext) float64 {
	cosTheta := math.Max(0, ctx.Normal.Dot(l))
	return cosTheta / math.Pi
}

// shadeDiffuse is the Lambertian BRDF: albedo * max(0, n.l) / pi.
func shadeDiffuse(m *Material, l vec.V3, ctx ShadingContext) vec.V3 {
	albedo := m.Albedo.Eval(ctx.UV)
	nol := math.Max(0, ctx.Normal.Dot(l))
	return albedo.Scale(nol / math.Pi)
}
