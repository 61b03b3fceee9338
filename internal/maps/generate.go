package maps

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/vovakirdan/tui-skirmish/internal/sim"
)

// Thresholds on normalised elevation and moisture.
const (
	seaLevel      = 0.28
	hillLevel     = 0.62
	mountainLevel = 0.72
	peakLevel     = 0.82
	dryLevel      = 0.32
	wetLevel      = 0.62
	coldLevel     = 0.70
)

// Generate builds a w by h grid from layered noise. The same seed always
// yields the same grid. Every coordinate in keep is forced passable so
// scenario entities can be placed on it.
func Generate(seed int64, w, h int, keep ...sim.Coord) *sim.Grid {
	elev := opensimplex.NewNormalized(seed)
	moist := opensimplex.NewNormalized(seed + 1)
	cold := opensimplex.NewNormalized(seed + 2)

	forced := make(map[sim.Coord]bool, len(keep))
	for _, c := range keep {
		forced[c] = true
	}

	return sim.NewGrid(w, h, func(c sim.Coord) sim.Terrain {
		x, y := float64(c.X), float64(c.Y)
		e := octaveNoise(elev, x, y, 4, 0.12, 0.5)
		m := octaveNoise(moist, x, y, 3, 0.09, 0.5)
		k := octaveNoise(cold, x, y, 2, 0.05, 0.5)
		t := deriveTerrain(e, m, k)
		if forced[c] && !t.Passable() {
			return sim.Grassland
		}
		return t
	})
}

func deriveTerrain(elev, moist, cold float64) sim.Terrain {
	switch {
	case elev < seaLevel:
		return sim.Water
	case elev > peakLevel:
		return sim.HighMountains
	case elev > mountainLevel:
		return sim.Mountains
	case cold > coldLevel:
		return sim.Snow
	case elev > hillLevel:
		return sim.Hills
	case moist > wetLevel:
		return sim.Woodland
	case moist < dryLevel:
		return sim.Desert
	}
	return sim.Grassland
}

// octaveNoise layers octaves of noise, halving amplitude and doubling
// frequency each time. The result stays in [0,1].
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total, amplitude, maxVal := 0.0, 1.0, 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxVal
}
