// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Command ptdemo is a small demo/debug shell around the renderer: it is
// not part of the core, only a way to exercise it end to end from a
// terminal. It builds a fixed procedural scene (no asset loading, per the
// core's scope) and reports render statistics; it does not encode images
// to disk, since that too is an external collaborator's job.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ptdemo",
		Short: "Exercises the pathtrace core against a built-in demo scene.",
	}
	root.AddCommand(renderCmd(), benchCmd())
	return root
}
