// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package pathtrace

import (
	"fmt"
	"log/slog"

	"github.com/gazed/pathtrace/texture"
)

// Accelerator selects which intersection structure Scene.End builds.
type Accelerator int

const (
	BVH Accelerator = iota
	KDTree
)

// Options is the scene-wide render configuration. The zero value is not
// directly usable; build one with DefaultOptions and Attrs, the
// functional-options pattern used elsewhere for engine-wide settings.
type Options struct {
	Environment         *texture.HDR
	Tonemap             TonemapOp
	Accelerator         Accelerator
	DirectLightSampling bool
	SubpixelJitter      float64
	SamplesPerPixel     int
	Bounces             int
	ManualExposure      float64
	Gamma               float64
	Seed                uint64
}

// Attr mutates an in-progress Options during DefaultOptions(attrs...).
type Attr func(*Options)

// DefaultOptions returns the baseline configuration with every Attr
// applied in order, then validates the result.
func DefaultOptions(attrs ...Attr) (Options, error) {
	o := Options{
		Tonemap:             TonemapReinhard,
		Accelerator:         BVH,
		DirectLightSampling: true,
		SubpixelJitter:      0.5,
		SamplesPerPixel:     4,
		Bounces:             4,
		ManualExposure:      1,
		Gamma:               2.2,
		Seed:                1,
	}
	for _, a := range attrs {
		a(&o)
	}
	if err := o.validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

func (o Options) validate() error {
	if o.SamplesPerPixel < 1 {
		slog.Warn("invalid samples_per_pixel", "samples_per_pixel", o.SamplesPerPixel)
		return &ConfigError{Msg: fmt.Sprintf("samples_per_pixel must be >= 1, got %d", o.SamplesPerPixel)}
	}
	if o.Bounces < 1 {
		slog.Warn("invalid bounces", "bounces", o.Bounces)
		return &ConfigError{Msg: fmt.Sprintf("bounces must be >= 1, got %d", o.Bounces)}
	}
	if o.Gamma <= 0 {
		slog.Warn("invalid gamma", "gamma", o.Gamma)
		return &ConfigError{Msg: fmt.Sprintf("gamma must be positive, got %v", o.Gamma)}
	}
	if o.SubpixelJitter < 0 {
		slog.Warn("invalid subpixel_jitter", "subpixel_jitter", o.SubpixelJitter)
		return &ConfigError{Msg: fmt.Sprintf("subpixel_jitter must be >= 0, got %v", o.SubpixelJitter)}
	}
	if o.Accelerator != BVH && o.Accelerator != KDTree {
		slog.Warn("unknown accelerator", "accelerator", int(o.Accelerator))
		return &ConfigError{Msg: fmt.Sprintf("unknown accelerator %d", o.Accelerator)}
	}
	return nil
}

// WithEnvironment sets the equirectangular environment map sampled when a
// camera ray misses every object.
func WithEnvironment(h *texture.HDR) Attr { return func(o *Options) { o.Environment = h } }

// WithTonemap selects the tone-mapping operator applied after exposure.
func WithTonemap(t TonemapOp) Attr { return func(o *Options) { o.Tonemap = t } }

// WithAccelerator selects BVH or KDTree.
func WithAccelerator(a Accelerator) Attr { return func(o *Options) { o.Accelerator = a } }

// WithDirectLightSampling toggles next-event estimation.
func WithDirectLightSampling(enabled bool) Attr {
	return func(o *Options) { o.DirectLightSampling = enabled }
}

// WithSubpixelJitter sets the half-extent, in pixel units, of the uniform
// jitter applied to each sample's camera ray.
func WithSubpixelJitter(j float64) Attr { return func(o *Options) { o.SubpixelJitter = j } }

// WithSamplesPerPixel sets how many jittered primary rays render spawns
// per pixel per call.
func WithSamplesPerPixel(n int) Attr { return func(o *Options) { o.SamplesPerPixel = n } }

// WithBounces sets the maximum path length.
func WithBounces(n int) Attr { return func(o *Options) { o.Bounces = n } }

// WithManualExposure sets the linear multiplier applied before tone
// mapping.
func WithManualExposure(e float64) Attr { return func(o *Options) { o.ManualExposure = e } }

// WithGamma sets the output gamma.
func WithGamma(g float64) Attr { return func(o *Options) { o.Gamma = g } }

// WithSeed sets the base RNG seed every pixel's sampler is derived from.
func WithSeed(seed uint64) Attr { return func(o *Options) { o.Seed = seed } }
