// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package integrator implements the path-tracing core: next-event
// estimation with power-proportional light selection, multiple importance
// sampling between the light and BSDF sampling strategies, and the
// environment-map escape term.
package integrator

import (
	"math"

	"github.com/gazed/pathtrace/light"
	"github.com/gazed/pathtrace/material"
	"github.com/gazed/pathtrace/ray"
	"github.com/gazed/pathtrace/rng"
	"github.com/gazed/pathtrace/vec"
)

// pdfFloor keeps a BSDF's pdf away from zero so throughput updates never
// divide by zero.
const pdfFloor = 1e-6

// shadowBias offsets bounce and shadow ray origins off the shading surface
// to avoid self-intersection acne.
const shadowBias = 1e-4

// Hit is everything the integrator needs about an intersection: the
// interpolated shading data plus enough identity to test a shadow ray
// against a specific light's originating object.
type Hit struct {
	Point    vec.V3
	Normal   vec.V3
	UV       vec.V2
	Object   uint8
	Material *material.Material
}

// World is the read-only scene surface the integrator queries. Scene
// (the root package) implements it; the integrator has no dependency on
// that package, keeping the import graph one-directional.
type World interface {
	Intersect(r ray.Ray) (Hit, bool)
	Environment(dir vec.V3) vec.V3
	Lights() *light.List
	DirectLightSampling() bool
	Bounces() int
}

// Trace walks a primary ray through up to World.Bounces() bounces and
// returns the accumulated radiance.
func Trace(w World, primary ray.Ray, s *rng.Sampler) vec.V3 {
	var Lo vec.V3
	throughput := vec.NewV3(1)
	currentRay := primary
	nee := w.DirectLightSampling()
	lights := w.Lights()

	for bounce := 0; bounce < w.Bounces(); bounce++ {
		hit, ok := w.Intersect(currentRay)
		if !ok {
			env := w.Environment(currentRay.Dir)
			Lo = Lo.Add(throughput.Mult(env))
			break
		}

		mat := hit.Material
		view := currentRay.Dir.Neg()
		ctx := material.NewContext(hit.UV, hit.Normal, view)

		albedo := mat.Albedo.Eval(hit.UV)
		emissive := mat.Emissive.Eval(hit.UV)
		Lo = Lo.Add(throughput.Scale(emissive.X).Mult(albedo))

		e0, e1, e2 := s.Next3()
		var state material.State
		bsdfDir := material.Sample(mat, &state, ctx, e0, e1, e2)
		pB := math.Max(material.Pdf(mat, &state, bsdfDir, ctx), pdfFloor)

		pL := 0.0
		if nee && !lights.Empty() && !material.IsDiscrete(mat.Kind) {
			pL = sampleDirectLight(w, lights, mat, &state, ctx, hit, throughput, pB, &Lo, s)
		}

		bsdfRadiance := material.Shade(mat, &state, bsdfDir, ctx)
		wB := pB * pB / (pL*pL + pB*pB)
		throughput = throughput.Mult(bsdfRadiance.Scale(wB / pB))

		currentRay = ray.New(hit.Point.Add(biasOffset(hit.Normal, bsdfDir)), bsdfDir)
	}
	return Lo
}

// sampleDirectLight performs one next-event-estimation sample: pick a
// light proportional to power, sample its projected disk, weight by MIS,
// and add its contribution to Lo if the shadow ray reaches that light's
// surface. Returns the light-sampling pdf p_L used for the BSDF
// contribution's own MIS weight.
func sampleDirectLight(
	w World,
	lights *light.List,
	mat *material.Material,
	state *material.State,
	ctx material.ShadingContext,
	hit Hit,
	throughput vec.V3,
	pB float64,
	Lo *vec.V3,
	s *rng.Sampler,
) float64 {
	l1, l2 := s.Next2()
	picked, remapped, pdfPick := lights.Pick(l1)
	dir, diskPdf := light.SampleDisk(picked, hit.Point, remapped, l2)
	if diskPdf <= 0 || pdfPick <= 0 {
		return 0
	}
	pL := pdfPick * diskPdf

	wL := pL * pL / (pL*pL + pB*pB)
	radiance := material.Shade(mat, state, dir, ctx)
	contribution := radiance.Scale(wL / pL)

	shadowRay := ray.New(hit.Point.Add(biasOffset(hit.Normal, dir)), dir)
	shHit, ok := w.Intersect(shadowRay)
	if !ok || shHit.Object != picked.Object {
		return pL
	}

	lightEmissive := shHit.Material.Emissive.Eval(shHit.UV)
	add := throughput.Scale(lightEmissive.X).Mult(contribution)
	*Lo = Lo.Add(add)
	return pL
}

// biasOffset nudges a ray origin off the surface along the shading normal,
// choosing the sign that keeps the offset on the same side as dir.
func biasOffset(normal, dir vec.V3) vec.V3 {
	sign := 1.0
	if normal.Dot(dir) < 0 {
		sign = -1
	}
	return normal.Scale(sign * shadowBias)
}
