package sim

import "fmt"

// Terrain classifies a tile.
type Terrain uint8

const (
	Grassland Terrain = iota
	Water
	Desert
	Hills
	Mountains
	Woodland
	HighMountains
	Snow
)

var terrainInfo = [...]struct {
	name     string
	code     byte
	defence  float64
	passable bool
}{
	Grassland:     {"Grassland", 'G', 1.00, true},
	Water:         {"Water", 'A', 1.00, false},
	Desert:        {"Desert", 'D', 1.00, true},
	Hills:         {"Hills", 'H', 1.15, true},
	Mountains:     {"Mountains", 'M', 1.25, true},
	Woodland:      {"Woodland", 'W', 1.05, true},
	HighMountains: {"HighMountains", 'T', 1.30, false},
	Snow:          {"Snow", 'S', 1.00, true},
}

// String returns the terrain name.
func (t Terrain) String() string {
	if int(t) >= len(terrainInfo) {
		return fmt.Sprintf("Terrain(%d)", uint8(t))
	}
	return terrainInfo[t].name
}

// Code returns the single-character map code.
func (t Terrain) Code() byte {
	if int(t) >= len(terrainInfo) {
		return 'G'
	}
	return terrainInfo[t].code
}

// Passable reports whether armies may stand on the terrain.
func (t Terrain) Passable() bool {
	return int(t) < len(terrainInfo) && terrainInfo[t].passable
}

// DefenceModifier scales a defending army's power in open-field battle.
func (t Terrain) DefenceModifier() float64 {
	if int(t) >= len(terrainInfo) {
		return 1.0
	}
	return terrainInfo[t].defence
}

// TerrainFromCode maps a map code to a terrain.
func TerrainFromCode(code byte) (Terrain, bool) {
	for i, info := range terrainInfo {
		if info.code == code {
			return Terrain(i), true
		}
	}
	return Grassland, false
}

// Terrains returns every terrain in enumeration order.
func Terrains() []Terrain {
	out := make([]Terrain, len(terrainInfo))
	for i := range terrainInfo {
		out[i] = Terrain(i)
	}
	return out
}
