// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package integrator

import (
	"testing"

	"github.com/gazed/pathtrace/geom"
	"github.com/gazed/pathtrace/light"
	"github.com/gazed/pathtrace/material"
	"github.com/gazed/pathtrace/ray"
	"github.com/gazed/pathtrace/rng"
	"github.com/gazed/pathtrace/texture"
	"github.com/gazed/pathtrace/vec"
)

// fakeWorld is a tiny, in-memory World used to exercise Trace without a
// full scene/accelerator stack.
type fakeWorld struct {
	hit       *Hit
	env       vec.V3
	lights    *light.List
	nee       bool
	bounces   int
	hitOnce   bool // if true, only the first Intersect call reports a hit
	hitCalled bool
}

func (w *fakeWorld) Intersect(r ray.Ray) (Hit, bool) {
	if w.hit == nil {
		return Hit{}, false
	}
	if w.hitOnce && w.hitCalled {
		return Hit{}, false
	}
	w.hitCalled = true
	return *w.hit, true
}

func (w *fakeWorld) Environment(dir vec.V3) vec.V3     { return w.env }
func (w *fakeWorld) Lights() *light.List               { return w.lights }
func (w *fakeWorld) DirectLightSampling() bool         { return w.nee }
func (w *fakeWorld) Bounces() int                      { return w.bounces }

func diffuseMat(albedo vec.V3) *material.Material {
	return &material.Material{Kind: material.Diffuse, Albedo: texture.Attribute{Constant: albedo}}
}

func emissiveMat(power vec.V3) *material.Material {
	return &material.Material{Kind: material.Diffuse, Albedo: texture.Attribute{Constant: vec.NewV3(1)}, Emissive: texture.Attribute{Constant: power}}
}

func TestTraceMissSamplesEnvironment(t *testing.T) {
	w := &fakeWorld{env: vec.V3S(1, 2, 3), bounces: 4}
	s := rng.NewSampler(1, 0)
	got := Trace(w, ray.New(vec.V3{}, vec.V3{Z: -1}), s)
	if !got.Aeq(w.env) {
		t.Errorf("expected environment radiance %v, got %v", w.env, got)
	}
}

func TestTraceAccumulatesEmissiveHit(t *testing.T) {
	hit := Hit{Point: vec.V3{Z: -1}, Normal: vec.V3{Z: 1}, Material: emissiveMat(vec.NewV3(5))}
	w := &fakeWorld{hit: &hit, hitOnce: true, bounces: 4}
	s := rng.NewSampler(2, 0)
	got := Trace(w, ray.New(vec.V3{}, vec.V3{Z: -1}), s)
	if got.Luminance() <= 0 {
		t.Errorf("expected nonzero radiance from an emissive hit, got %v", got)
	}
}

func TestTraceTerminatesWithinBounceBudget(t *testing.T) {
	hit := Hit{Point: vec.V3{Z: -1}, Normal: vec.V3{Y: 1}, Material: diffuseMat(vec.NewV3(0.9))}
	w := &fakeWorld{hit: &hit, bounces: 8} // every bounce re-hits the same surface, never terminates by missing
	s := rng.NewSampler(3, 0)
	got := Trace(w, ray.New(vec.V3{}, vec.V3{Z: -1}), s)
	if !got.IsFinite() {
		t.Fatalf("expected finite radiance after a bounded number of bounces, got %v", got)
	}
}

func TestTraceWithDirectLightSamplingStaysFinite(t *testing.T) {
	hit := Hit{Point: vec.V3{Z: -1}, Normal: vec.V3{Y: 1}, Object: 0, Material: diffuseMat(vec.NewV3(0.8))}
	sources := []light.Source{{
		Object: 1,
		Triangles: []geom.Triangle{
			{A: vec.V3{X: -1, Y: 2, Z: -2}, B: vec.V3{X: 1, Y: 2, Z: -2}, C: vec.V3{Y: 2, Z: 0}},
		},
		Emissive: vec.NewV3(10),
	}}
	w := &fakeWorld{hit: &hit, lights: light.Derive(sources), nee: true, bounces: 4}
	s := rng.NewSampler(4, 0)
	got := Trace(w, ray.New(vec.V3{}, vec.V3{Z: -1}), s)
	if !got.IsFinite() {
		t.Fatalf("expected finite radiance with NEE enabled, got %v", got)
	}
}
