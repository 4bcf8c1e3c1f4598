// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package main

import (
	"github.com/gazed/pathtrace"
	"github.com/gazed/pathtrace/geom"
	"github.com/gazed/pathtrace/material"
	"github.com/gazed/pathtrace/texture"
	"github.com/gazed/pathtrace/vec"
)

// demoScene builds a small Cornell-box-style room: a diffuse floor, a
// diffuse back wall, and an emissive quad overhead acting as the only
// light, plus an upright rough dielectric panel standing on the floor. It is the
// scene end-to-end scenario 2 of the original specification's testable
// properties, built procedurally instead of loaded from a file.
func demoScene(opts pathtrace.Options) (*pathtrace.Scene, pathtrace.Camera, error) {
	scn, err := pathtrace.Begin(4, opts)
	if err != nil {
		return nil, pathtrace.Camera{}, err
	}

	white := &material.Material{Kind: material.Diffuse, Albedo: texture.ConstAttribute(vec.V3S(0.73, 0.73, 0.73))}
	red := &material.Material{Kind: material.Diffuse, Albedo: texture.ConstAttribute(vec.V3S(0.63, 0.065, 0.05))}
	metal := &material.Material{
		Kind:      material.RoughDielectric,
		Albedo:    texture.ConstAttribute(vec.V3S(0.9, 0.9, 0.9)),
		Roughness: texture.ConstAttribute(vec.NewV3(0.2)),
		Metalness: texture.ConstAttribute(vec.NewV3(0.8)),
		IOR:       1.5,
	}
	light := &material.Material{
		Kind:     material.Diffuse,
		Albedo:   texture.ConstAttribute(vec.NewV3(1)),
		Emissive: texture.ConstAttribute(vec.NewV3(15)),
	}

	if err := addQuad(scn, white,
		vec.V3S(-2, -1, -2), vec.V3S(2, -1, -2), vec.V3S(2, -1, 2), vec.V3S(-2, -1, 2)); err != nil {
		return nil, pathtrace.Camera{}, err
	}
	if err := addQuad(scn, red,
		vec.V3S(-2, -1, -2), vec.V3S(2, -1, -2), vec.V3S(2, 2, -2), vec.V3S(-2, 2, -2)); err != nil {
		return nil, pathtrace.Camera{}, err
	}
	if err := addQuad(scn, metal,
		vec.V3S(-0.6, -1, -0.6), vec.V3S(0.6, -1, -0.6), vec.V3S(0.6, 0.2, -0.6), vec.V3S(-0.6, 0.2, -0.6)); err != nil {
		return nil, pathtrace.Camera{}, err
	}
	if err := addQuad(scn, light,
		vec.V3S(-0.5, 1.98, -0.5), vec.V3S(0.5, 1.98, -0.5), vec.V3S(0.5, 1.98, 0.5), vec.V3S(-0.5, 1.98, 0.5)); err != nil {
		return nil, pathtrace.Camera{}, err
	}

	if err := scn.End(); err != nil {
		return nil, pathtrace.Camera{}, err
	}

	cam := pathtrace.Camera{
		Position:  vec.V3S(0, 0.2, 4),
		Direction: vec.V3S(0, -0.05, -1),
		Up:        vec.V3S(0, 1, 0),
		Fov:       40,
	}
	return scn, cam, nil
}

// addQuad splits a planar quad (a, b, c, d in order) into two triangles
// sharing a flat normal and attaches it as one scene object.
func addQuad(scn *pathtrace.Scene, mat *material.Material, a, b, c, d vec.V3) error {
	ref, err := scn.AddObject()
	if err != nil {
		return err
	}
	n := b.Sub(a).Cross(c.Sub(a)).Unit()
	tris := []geom.Triangle{{A: a, B: b, C: c}, {A: a, B: c, C: d}}
	props := []geom.TriangleProps{
		{NA: n, NB: n, NC: n, UVA: vec.V2{}, UVB: vec.V2{X: 1}, UVC: vec.V2{X: 1, Y: 1}},
		{NA: n, NB: n, NC: n, UVA: vec.V2{}, UVB: vec.V2{X: 1, Y: 1}, UVC: vec.V2{Y: 1}},
	}
	if err := scn.SetGeometry(ref, tris, props); err != nil {
		return err
	}
	return scn.SetMaterial(ref, mat)
}
