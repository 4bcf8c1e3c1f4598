// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/gazed/pathtrace"
	"github.com/gazed/pathtrace/config"
)

func renderCmd() *cobra.Command {
	var width, height, spp, bounces, tileSize int
	var accelName, tonemapName, preset string
	var seed uint64

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the built-in demo scene and print a stats panel.",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := renderOptions(cmd, preset, accelName, tonemapName, spp, bounces, seed)
			if err != nil {
				return err
			}

			scn, cam, err := demoScene(opts)
			if err != nil {
				return err
			}
			defer scn.Destroy()

			fb, err := pathtrace.NewFramebuffer(width, height)
			if err != nil {
				return err
			}

			stats, err := pathtrace.RenderTiles(cam, scn, fb, tileSize, nil)
			if err != nil {
				return err
			}

			fmt.Println(statsPanel(width, height, opts, stats))
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 320, "framebuffer width in pixels")
	cmd.Flags().IntVar(&height, "height", 240, "framebuffer height in pixels")
	cmd.Flags().IntVar(&spp, "spp", 16, "samples per pixel")
	cmd.Flags().IntVar(&bounces, "bounces", 4, "maximum path length")
	cmd.Flags().IntVar(&tileSize, "tile-size", 32, "tile edge length in pixels")
	cmd.Flags().StringVar(&accelName, "accelerator", "bvh", "bvh or kdtree")
	cmd.Flags().StringVar(&tonemapName, "tonemap", "reinhard", "none, linear, reinhard, filmic, or uncharted2")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "base RNG seed")
	cmd.Flags().StringVar(&preset, "preset", "", "path to a YAML renderer tuning preset (see config.Load); flags override it")
	return cmd
}

// renderOptions builds the render's Options from, in increasing priority:
// pathtrace.DefaultOptions, an optional --preset YAML file, and any flag
// the caller explicitly set on the command line.
func renderOptions(cmd *cobra.Command, presetPath, accelName, tonemapName string, spp, bounces int, seed uint64) (pathtrace.Options, error) {
	opts, err := pathtrace.DefaultOptions()
	if err != nil {
		return pathtrace.Options{}, err
	}
	if presetPath != "" {
		f, err := os.Open(presetPath)
		if err != nil {
			return pathtrace.Options{}, fmt.Errorf("opening preset: %w", err)
		}
		defer f.Close()
		opts, err = config.Load(f)
		if err != nil {
			return pathtrace.Options{}, err
		}
	}

	var attrs []pathtrace.Attr
	if cmd.Flags().Changed("accelerator") {
		accel, err := parseAccelerator(accelName)
		if err != nil {
			return pathtrace.Options{}, err
		}
		attrs = append(attrs, pathtrace.WithAccelerator(accel))
	}
	if cmd.Flags().Changed("tonemap") {
		op, err := parseTonemap(tonemapName)
		if err != nil {
			return pathtrace.Options{}, err
		}
		attrs = append(attrs, pathtrace.WithTonemap(op))
	}
	if cmd.Flags().Changed("spp") {
		attrs = append(attrs, pathtrace.WithSamplesPerPixel(spp))
	}
	if cmd.Flags().Changed("bounces") {
		attrs = append(attrs, pathtrace.WithBounces(bounces))
	}
	if cmd.Flags().Changed("seed") {
		attrs = append(attrs, pathtrace.WithSeed(seed))
	}
	for _, a := range attrs {
		a(&opts)
	}
	return opts, nil
}

func parseAccelerator(name string) (pathtrace.Accelerator, error) {
	switch name {
	case "bvh":
		return pathtrace.BVH, nil
	case "kdtree":
		return pathtrace.KDTree, nil
	default:
		return 0, fmt.Errorf("unknown accelerator %q (want bvh or kdtree)", name)
	}
}

func parseTonemap(name string) (pathtrace.TonemapOp, error) {
	switch name {
	case "none":
		return pathtrace.TonemapNone, nil
	case "linear":
		return pathtrace.TonemapLinear, nil
	case "reinhard":
		return pathtrace.TonemapReinhard, nil
	case "filmic":
		return pathtrace.TonemapFilmic, nil
	case "uncharted2":
		return pathtrace.TonemapUncharted2, nil
	default:
		return 0, fmt.Errorf("unknown tonemap %q", name)
	}
}

var (
	panelTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	panelLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	panelBox   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

// statsPanel renders the Render/RenderTiles Stats as a bordered panel.
func statsPanel(w, h int, opts pathtrace.Options, stats pathtrace.Stats) string {
	row := func(label, value string) string {
		return panelLabel.Render(label) + " " + value
	}
	body := fmt.Sprintf(
		"%s\n%s\n%s\n%s\n%s",
		row("resolution:", fmt.Sprintf("%dx%d", w, h)),
		row("samples/pixel:", fmt.Sprintf("%d", opts.SamplesPerPixel)),
		row("total:", fmt.Sprintf("%.1f ms", stats.TotalMS)),
		row("trace avg/min/max:", fmt.Sprintf("%.4f / %.4f / %.4f ms",
			stats.TraceTotalMS/float64(max(stats.TraceCount, 1)), stats.TraceMinMS, stats.TraceMaxMS)),
		row("trace count:", fmt.Sprintf("%d", stats.TraceCount)),
	)
	return panelBox.Render(panelTitle.Render("pathtrace demo render") + "\n" + body)
}
