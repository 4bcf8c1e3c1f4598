// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package material

import (
	"math"

	"github.com/gazed/pathtrace/vec"
)

// sampleGlass implements perfect (smooth) refraction with Fresnel-weighted
// Russian-roulette choice between reflection and transmission. Sampling is
// discrete: state.Fresnel records which outcome
// was chosen and doubles as both Pdf and the Shade scale factor.
func sampleGlass(m *Material, state *State, ctx ShadingContext, e1, e2, e3 float64) vec.V3 {
	normal := ctx.Normal
	incident := ctx.View.Neg()

	cosI := normal.Dot(incident)

	var n1, n2 float64
	if cosI > 0 {
		// exiting the medium: swap IORs and flip the normal to face the ray.
		n1, n2 = m.IOR, iorAir
		normal = normal.Neg()
	} else {
		n1, n2 = iorAir, m.IOR
		cosI = -cosI
	}

	refl := normal.Scale(2 * normal.Dot(incident)).Sub(incident)

	nni := n1 / n2
	cosT2 := 1 - nni*nni*(1-cosI*cosI)
	if cosT2 < 0 {
		// total internal reflection.
		state.Fresnel = 1
		return refl
	}
	cosT := math.Sqrt(cosT2)

	var grazing float64
	if n1 <= n2 {
		grazing = 1 - cosI
	} else {
		grazing = 1 - cosT
	}
	r0 := (n1 - n2) / (n1 + n2)
	r0 *= r0
	r := r0 + (1-r0)*pow5(grazing)

	if e3 < r {
		state.Fresnel = r
		return refl
	}

	transV := normal.Scale(nni*cosI - cosT)
	transN := incident.Scale(nni)
	trans := transV.Add(transN).Unit()
	state.Fresnel = 1 - r
	return trans
}

// pdfGlass (called via material.Pdf) returns the Russian-roulette
// probability of the outcome actually sampled. Because the choice is
// discrete, the integrator must not combine this with light-sampling MIS.
func pdfGlass(state *State) float64 { return state.Fresnel }

// shadeGlass returns albedo scaled by the already-resolved Fresnel
// weight; there is no further angular falloff for a discrete BSDF.
func shadeGlass(m *Material, state *State) vec.V3 {
	albedo := m.Albedo.Eval(vec.V2{})
	return albedo.Scale(state.Fresnel)
}
