// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gazed/pathtrace"
)

func benchCmd() *cobra.Command {
	var width, height, spp, bounces, tileSize, iterations int
	var accelName string

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Render the demo scene repeatedly and report per-iteration timing.",
		RunE: func(cmd *cobra.Command, args []string) error {
			accel, err := parseAccelerator(accelName)
			if err != nil {
				return err
			}
			opts, err := pathtrace.DefaultOptions(
				pathtrace.WithAccelerator(accel),
				pathtrace.WithSamplesPerPixel(spp),
				pathtrace.WithBounces(bounces),
			)
			if err != nil {
				return err
			}

			scn, cam, err := demoScene(opts)
			if err != nil {
				return err
			}
			defer scn.Destroy()

			for i := 0; i < iterations; i++ {
				fb, err := pathtrace.NewFramebuffer(width, height)
				if err != nil {
					return err
				}
				stats, err := pathtrace.RenderTiles(cam, scn, fb, tileSize, nil)
				if err != nil {
					return err
				}
				fmt.Printf("iteration %d/%d: %.1f ms (%d traces)\n", i+1, iterations, stats.TotalMS, stats.TraceCount)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 320, "framebuffer width in pixels")
	cmd.Flags().IntVar(&height, "height", 240, "framebuffer height in pixels")
	cmd.Flags().IntVar(&spp, "spp", 16, "samples per pixel")
	cmd.Flags().IntVar(&bounces, "bounces", 4, "maximum path length")
	cmd.Flags().IntVar(&tileSize, "tile-size", 32, "tile edge length in pixels")
	cmd.Flags().IntVar(&iterations, "iterations", 5, "number of renders to time")
	cmd.Flags().StringVar(&accelName, "accelerator", "bvh", "bvh or kdtree")
	return cmd
}
