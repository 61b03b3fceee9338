// Package maps reads and writes terrain grids in the plain-text map format:
// one line per grid column (x), one whitespace-separated token per row (y),
// the first character of each token being a terrain code.
package maps

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"path"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-skirmish/internal/sim"
)

//go:embed data/*.map
var builtin embed.FS

// FallbackSize is the side of the all-grassland grid used when a map
// cannot be read.
const FallbackSize = 10

// Fallback returns a FallbackSize square of grassland.
func Fallback() *sim.Grid {
	return sim.NewGrid(FallbackSize, FallbackSize, nil)
}

// Parse reads a map. Unknown terrain codes and short lines become
// grassland and are logged. The first line fixes the grid height; tokens
// past it in longer lines are dropped and logged.
func Parse(r io.Reader, logger *log.Logger) (*sim.Grid, error) {
	var lines [][]string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		lines = append(lines, fields)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", sim.ErrMapLoad, err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no terrain rows", sim.ErrMapLoad)
	}

	width, height := len(lines), len(lines[0])
	if logger != nil {
		for x, row := range lines {
			if len(row) > height {
				logger.Warn("map row truncated", "row", x, "tokens", len(row), "height", height)
			}
		}
	}
	return sim.NewGrid(width, height, func(c sim.Coord) sim.Terrain {
		row := lines[c.X]
		if c.Y >= len(row) {
			if logger != nil {
				logger.Warn("map data missing", "at", c, "using", sim.Grassland)
			}
			return sim.Grassland
		}
		t, ok := sim.TerrainFromCode(row[c.Y][0])
		if !ok && logger != nil {
			logger.Warn("unrecognized terrain code", "code", string(row[c.Y][0]), "at", c)
		}
		return t
	}), nil
}

// Write formats g so that Parse reads it back unchanged.
func Write(w io.Writer, g *sim.Grid) error {
	bw := bufio.NewWriter(w)
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			if y > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteByte(g.TileAt(x, y).Terrain.Code())
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Names lists the built-in maps.
func Names() []string {
	entries, _ := builtin.ReadDir("data")
	var out []string
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".map"))
	}
	sort.Strings(out)
	return out
}

// Open reads a built-in map by name or a map file by path.
func Open(ref string, logger *log.Logger) (*sim.Grid, error) {
	var (
		rc  io.ReadCloser
		err error
	)
	if slices.Contains(Names(), ref) {
		rc, err = builtin.Open(path.Join("data", ref+".map"))
	} else {
		rc, err = os.Open(ref)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sim.ErrMapLoad, err)
	}
	defer rc.Close()
	return Parse(rc, logger)
}

// Load is Open that never fails: a missing or malformed map is logged and
// replaced by the fallback grid.
func Load(ref string, logger *log.Logger) *sim.Grid {
	g, err := Open(ref, logger)
	if err != nil {
		if logger != nil {
			logger.Error("map load failed, using fallback", "map", ref, "err", err, "size", FallbackSize)
		}
		return Fallback()
	}
	return g
}
