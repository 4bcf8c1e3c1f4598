// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package material implements the three BSDF variants (Diffuse,
// RoughDielectric, Glass) and the shading-context plumbing shared between
// them. Rather than function-pointer BSDF dispatch, each BSDF is a tagged
// variant on Material and dispatch is a switch on Material.Kind in
// Sample/Pdf/Shade.
package material

import (
	"github.com/gazed/pathtrace/texture"
	"github.com/gazed/pathtrace/vec"
)

// Kind selects which BSDF a Material uses.
type Kind int

const (
	Diffuse Kind = iota
	RoughDielectric
	Glass
)

// iorAir is the index of refraction of the medium a ray travels through
// before hitting a Glass surface.
const iorAir = 1.0

// Material is a BSDF selector plus its four tagged-union attributes and a
// scalar index of refraction.
type Material struct {
	Kind      Kind
	Albedo    texture.Attribute
	Roughness texture.Attribute
	Metalness texture.Attribute
	Emissive  texture.Attribute
	IOR       float64 // >= 1
}

// ShadingContext carries everything a BSDF needs about the hit point that
// doesn't change across the sample/pdf/shade calls for one bounce.
type ShadingContext struct {
	UV     vec.V2
	Normal vec.V3 // shading normal, unit length
	View   vec.V3 // unit vector toward the camera/previous vertex
	Basis  vec.M3 // tangent-space rotation whose Y column is Normal
}

// NewContext builds a ShadingContext, constructing the tangent basis from
// the shading normal.
func NewContext(uv vec.V2, normal, view vec.V3) ShadingContext {
	return ShadingContext{UV: uv, Normal: normal, View: view, Basis: vec.Basis(normal)}
}

// State is the mutable per-bounce scratch a BSDF uses to remember values
// computed in Sample so that Pdf and Shade (called later in the same
// bounce) don't recompute them. It is a stack-allocated struct owned by
// the integrator per bounce, not a heap blob threaded through function
// pointers.
type State struct {
	Roughness  float64
	Metalness  float64
	HalfVector vec.V3
	Fresnel    float64 // Glass only: reflectance actually sampled this bounce.
}

// Sample draws an outgoing direction from the BSDF's importance-sampling
// distribution given three uniform random numbers in [0, 1).
func Sample(m *Material, state *State, ctx ShadingContext, e1, e2, e3 float64) vec.V3 {
	switch m.Kind {
	case RoughDielectric:
		return sampleRoughDielectric(m, state, ctx, e1, e2, e3)
	case Glass:
		return sampleGlass(m, state, ctx, e1, e2, e3)
	default:
		return sampleDiffuse(ctx, e1, e2)
	}
}

// Pdf returns the probability density of the BSDF having sampled the
// outgoing direction L.
func Pdf(m *Material, state *State, l vec.V3, ctx ShadingContext) float64 {
	switch m.Kind {
	case RoughDielectric:
		return pdfRoughDielectric(m, state, l, ctx)
	case Glass:
		return pdfGlass(state)
	default:
		return pdfDiffuse(l, ctx)
	}
}

// Shade returns the BSDF's contribution (not yet divided by the pdf) for
// light arriving from direction L.
func Shade(m *Material, state *State, l vec.V3, ctx ShadingContext) vec.V3 {
	switch m.Kind {
	case RoughDielectric:
		return shadeRoughDielectric(m, state, l, ctx)
	case Glass:
		return shadeGlass(m, state)
	default:
		return shadeDiffuse(m, l, ctx)
	}
}

// IsDiscrete reports whether the BSDF's sampling distribution is a Dirac
// delta (Glass): the integrator must not attempt multiple-importance
// sampling against an area light for a discrete bounce.
func IsDiscrete(k Kind) bool { return k == Glass }

// f0 computes the Fresnel reflectance at normal incidence from IOR,
// lerped toward the surface albedo by metalness (metals tint their
// specular reflection; dielectrics don't).
func f0(ior float64, albedo vec.V3, metalness float64) vec.V3 {
	f := (1 - ior) / (1 + ior)
	if f < 0 {
		f = -f
	}
	base := vec.NewV3(f * f)
	return base.Lerp(albedo, metalness)
}

// schlickFresnel evaluates the Schlick approximation given the base
// reflectance F0 and the angle between the view and half vectors.
func schlickFresnel(f0V vec.V3, voH float64) vec.V3 {
	voH = vec.Clamp(voH, 0, 1)
	t := pow5(1 - voH)
	return vec.V3{
		X: f0V.X + (1-f0V.X)*t,
		Y: f0V.Y + (1-f0V.Y)*t,
		Z: f0V.Z + (1-f0V.Z)*t,
	}
}

func pow5(x float64) float64 {
	x2 := x * x
	return x2 * x2 * x
}
