// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package config loads a renderer tuning preset (samples-per-pixel,
// bounces, tonemap operator, and the like) from a small YAML document.
// It never touches scene geometry or asset files: those remain an
// external collaborator's job, per the core's scope.
package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/gazed/pathtrace"
)

// preset is the string-keyed YAML shape a caller writes by hand; Load
// converts it into a pathtrace.Options the same way load.Shd converts a
// shader's string-keyed YAML into engine enums.
type preset struct {
	Tonemap             string  `yaml:"tonemap"`
	Accelerator         string  `yaml:"accelerator"`
	DirectLightSampling *bool   `yaml:"direct_light_sampling"`
	SubpixelJitter      float64 `yaml:"subpixel_jitter"`
	SamplesPerPixel     int     `yaml:"samples_per_pixel"`
	Bounces             int     `yaml:"bounces"`
	ManualExposure      float64 `yaml:"manual_exposure"`
	Gamma               float64 `yaml:"gamma"`
	Seed                uint64  `yaml:"seed"`
}

var tonemapNames = map[string]pathtrace.TonemapOp{
	"none":       pathtrace.TonemapNone,
	"linear":     pathtrace.TonemapLinear,
	"reinhard":   pathtrace.TonemapReinhard,
	"filmic":     pathtrace.TonemapFilmic,
	"uncharted2": pathtrace.TonemapUncharted2,
}

var acceleratorNames = map[string]pathtrace.Accelerator{
	"bvh":     pathtrace.BVH,
	"kdtree":  pathtrace.KDTree,
	"kd-tree": pathtrace.KDTree,
}

// Load reads a YAML preset from r and returns the pathtrace.Options it
// describes, with every field not present in the document left at
// pathtrace.DefaultOptions' value. Fields named "tonemap" or
// "accelerator" must match one of the known names (case-sensitive,
// lower-case) or Load fails rather than silently falling back to a
// default.
func Load(r io.Reader) (pathtrace.Options, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return pathtrace.Options{}, fmt.Errorf("config: reading preset: %w", err)
	}

	var p preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return pathtrace.Options{}, fmt.Errorf("config: yaml: %w", err)
	}

	attrs := []pathtrace.Attr{}
	if p.Tonemap != "" {
		op, ok := tonemapNames[p.Tonemap]
		if !ok {
			return pathtrace.Options{}, fmt.Errorf("config: unsupported tonemap %q", p.Tonemap)
		}
		attrs = append(attrs, pathtrace.WithTonemap(op))
	}
	if p.Accelerator != "" {
		acc, ok := acceleratorNames[p.Accelerator]
		if !ok {
			return pathtrace.Options{}, fmt.Errorf("config: unsupported accelerator %q", p.Accelerator)
		}
		attrs = append(attrs, pathtrace.WithAccelerator(acc))
	}
	if p.DirectLightSampling != nil {
		attrs = append(attrs, pathtrace.WithDirectLightSampling(*p.DirectLightSampling))
	}
	if p.SubpixelJitter != 0 {
		attrs = append(attrs, pathtrace.WithSubpixelJitter(p.SubpixelJitter))
	}
	if p.SamplesPerPixel != 0 {
		attrs = append(attrs, pathtrace.WithSamplesPerPixel(p.SamplesPerPixel))
	}
	if p.Bounces != 0 {
		attrs = append(attrs, pathtrace.WithBounces(p.Bounces))
	}
	if p.ManualExposure != 0 {
		attrs = append(attrs, pathtrace.WithManualExposure(p.ManualExposure))
	}
	if p.Gamma != 0 {
		attrs = append(attrs, pathtrace.WithGamma(p.Gamma))
	}
	if p.Seed != 0 {
		attrs = append(attrs, pathtrace.WithSeed(p.Seed))
	}

	return pathtrace.DefaultOptions(attrs...)
}
