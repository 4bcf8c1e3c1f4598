// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package material

import (
	"math"

	"github.com/gazed/pathtrace/vec"
)

// ggxChi is the characteristic function used by the Cook-Torrance G and D
// terms: 1 when its argument is positive, 0 otherwise.
func ggxChi(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return 1
}

// ggxG1 is Smith's masking/shadowing term for one of the two vectors
// (view or light) against the microfacet normal h.
func ggxG1(v, n, h vec.V3, alpha2 float64) float64 {
	voh := v.Dot(h)
	von := v.Dot(n)
	chi := ggxChi(voh / von)
	voh2 := voh * voh
	tan2 := (1 - voh2) / voh2
	return (chi * 2) / (math.Sqrt(1+alpha2*tan2) + 1)
}

// ggxD is the GGX microfacet normal distribution function.
func ggxD(noh, alpha2 float64) float64 {
	noh2 := noh * noh
	den := noh2*alpha2 + (1 - noh2)
	return (ggxChi(noh) * alpha2) / (math.Pi * den * den)
}

// sampleRoughDielectric mixes a diffuse lobe (weight 1-metalness) and a
// GGX specular lobe (weight metalness).
func sampleRoughDielectric(m *Material, state *State, ctx ShadingContext, e1, e2, e3 float64) vec.V3 {
	state.Roughness = m.Roughness.Eval(ctx.UV).X
	state.Metalness = m.Metalness.Eval(ctx.UV).X

	pd := 1 - state.Metalness

	if e3 <= pd {
		l := sampleDiffuse(ctx, e1, e2)
		state.HalfVector = l.Add(ctx.View).Unit()
		return l
	}

	alpha := state.Roughness
	theta := math.Atan((alpha * math.Sqrt(e1)) / math.Sqrt(1-e1))
	phi := 2 * math.Pi * e2
	sinTheta := math.Sin(theta)

	h := vec.V3{X: sinTheta * math.Cos(phi), Y: math.Cos(theta), Z: sinTheta * math.Sin(phi)}
	h = ctx.Basis.ToWorld(h).Unit()
	state.HalfVector = h

	hov := math.Max(0, h.Dot(ctx.View))
	return h.Scale(2 * hov).Sub(ctx.View)
}

// pdfRoughDielectric blends the diffuse cosine pdf and the GGX specular
// pdf by the same diffuse/specular mixture weights used in Sample.
func pdfRoughDielectric(m *Material, state *State, l vec.V3, ctx ShadingContext) float64 {
	alpha2 := state.Roughness * state.Roughness
	noh := ctx.Normal.Dot(state.HalfVector)

	weightSpecular := ggxD(noh, alpha2) * noh
	weightDiffuse := pdfDiffuse(l, ctx)

	pd := 1 - state.Metalness
	ps := state.Metalness

	return weightDiffuse*pd + weightSpecular*ps
}

// shadeRoughDielectric implements Cook-Torrance specular plus a Fresnel-
// weighted diffuse term, both scaled by NoL.
func shadeRoughDielectric(m *Material, state *State, l vec.V3, ctx ShadingContext) vec.V3 {
	albedo := m.Albedo.Eval(ctx.UV)
	f0v := f0(m.IOR, albedo, state.Metalness)
	ks := schlickFresnel(f0v, state.HalfVector.Dot(ctx.View))

	nol := math.Max(ctx.Normal.Dot(l), 0)
	nov := math.Max(ctx.Normal.Dot(ctx.View), 0)
	noh := math.Max(ctx.Normal.Dot(state.HalfVector), 0)
	alpha2 := state.Roughness * state.Roughness

	d := ggxD(noh, alpha2)
	g := ggxG1(ctx.View, ctx.Normal, state.HalfVector, alpha2) *
		ggxG1(l, ctx.Normal, state.HalfVector, alpha2)

	denCT := math.Min(4*nol*nov+0.05, 1)
	specular := ks.Scale(g * d / denCT)

	pd := 1 - state.Metalness
	ps := state.Metalness

	diffuse := shadeDiffuse(m, l, ctx)
	diffuseFactor := vec.V3{X: 1 - ks.X, Y: 1 - ks.Y, Z: 1 - ks.Z}.Scale((1 - state.Metalness) * pd)
	diffuse = diffuse.Mult(diffuseFactor)
	specular = specular.Scale(ps)

	return diffuse.Add(specular).Scale(nol)
}
