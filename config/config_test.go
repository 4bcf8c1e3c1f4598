// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package config

import (
	"strings"
	"testing"

	"github.com/gazed/pathtrace"
)

func TestLoadDefaults(t *testing.T) {
	opts, err := Load(strings.NewReader(``))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want, _ := pathtrace.DefaultOptions()
	if opts != want {
		t.Errorf("empty preset = %+v, want defaults %+v", opts, want)
	}
}

func TestLoadOverrides(t *testing.T) {
	doc := `
tonemap: filmic
accelerator: kdtree
direct_light_sampling: false
samples_per_pixel: 64
bounces: 8
seed: 42
`
	opts, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if opts.Tonemap != pathtrace.TonemapFilmic {
		t.Errorf("Tonemap = %v, want Filmic", opts.Tonemap)
	}
	if opts.Accelerator != pathtrace.KDTree {
		t.Errorf("Accelerator = %v, want KDTree", opts.Accelerator)
	}
	if opts.DirectLightSampling {
		t.Error("DirectLightSampling = true, want false")
	}
	if opts.SamplesPerPixel != 64 {
		t.Errorf("SamplesPerPixel = %d, want 64", opts.SamplesPerPixel)
	}
	if opts.Bounces != 8 {
		t.Errorf("Bounces = %d, want 8", opts.Bounces)
	}
	if opts.Seed != 42 {
		t.Errorf("Seed = %d, want 42", opts.Seed)
	}
}

func TestLoadUnknownTonemap(t *testing.T) {
	_, err := Load(strings.NewReader("tonemap: bloom\n"))
	if err == nil {
		t.Fatal("Load with unknown tonemap: want error, got nil")
	}
}

func TestLoadUnknownAccelerator(t *testing.T) {
	_, err := Load(strings.NewReader("accelerator: octree\n"))
	if err == nil {
		t.Fatal("Load with unknown accelerator: want error, got nil")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	_, err := Load(strings.NewReader("samples_per_pixel: [this is not an int]\n"))
	if err == nil {
		t.Fatal("Load with malformed yaml: want error, got nil")
	}
}

func TestLoadRejectsInvalidPreset(t *testing.T) {
	_, err := Load(strings.NewReader("bounces: -1\n"))
	if err == nil {
		t.Fatal("Load with negative bounces: want validation error, got nil")
	}
}
