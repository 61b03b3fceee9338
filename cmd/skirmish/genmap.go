package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-skirmish/internal/maps"
)

var (
	flagWidth  int
	flagHeight int
	flagOut    string
)

var genmapCmd = &cobra.Command{
	Use:   "genmap",
	Short: "Generate a map file from noise",
	Long: `Generate a terrain map and write it in the map text format: one line per
column, one terrain code per tile. The result can be referenced from a
scenario's "map" field.

Examples:
  skirmish genmap --seed 3 > islands.map
  skirmish genmap --width 24 --height 16 --out big.map`,
	Args: cobra.NoArgs,
	Run:  runGenmap,
}

func init() {
	genmapCmd.Flags().IntVar(&flagWidth, "width", 16, "Map width in tiles")
	genmapCmd.Flags().IntVar(&flagHeight, "height", 16, "Map height in tiles")
	genmapCmd.Flags().StringVar(&flagOut, "out", "", "Output file (default: stdout)")
}

func runGenmap(cmd *cobra.Command, args []string) {
	if flagWidth <= 0 || flagHeight <= 0 {
		fmt.Fprintln(os.Stderr, "Error: width and height must be positive")
		os.Exit(1)
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	grid := maps.Generate(seed, flagWidth, flagHeight)

	out := os.Stdout
	if flagOut != "" {
		f, err := os.Create(flagOut)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if err := maps.Write(out, grid); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing map: %v\n", err)
		os.Exit(1)
	}
	if flagOut != "" {
		fmt.Fprintf(os.Stderr, "Wrote %dx%d map (seed %d) to %s\n", flagWidth, flagHeight, seed, flagOut)
	}
}
