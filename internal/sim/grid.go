package sim

// Tile is one grid cell. Army and Settlement are lookup back-references;
// ownership lives on the Faction.
type Tile struct {
	Pos        Coord
	Terrain    Terrain
	Army       *Army
	Settlement *Settlement
}

// Passable reports whether armies may stand on the tile.
func (t *Tile) Passable() bool {
	return t.Terrain.Passable()
}

// Empty reports whether the tile holds neither an army nor a settlement.
func (t *Tile) Empty() bool {
	return t.Army == nil && t.Settlement == nil
}

// Grid is the fixed rectangular world map.
// Tiles are stored in row-major order: index = y*W + x.
type Grid struct {
	W     int
	H     int
	tiles []*Tile
}

// NewGrid builds a W×H grid, asking terrain for each position.
// A nil terrain function yields an all-Grassland grid.
func NewGrid(w, h int, terrain func(Coord) Terrain) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	g := &Grid{W: w, H: h, tiles: make([]*Tile, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := C(x, y)
			t := Grassland
			if terrain != nil {
				t = terrain(c)
			}
			g.tiles[g.index(c)] = &Tile{Pos: c, Terrain: t}
		}
	}
	return g
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.W + c.X
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// TileAt returns the tile at (x, y), or nil outside the grid.
func (g *Grid) TileAt(x, y int) *Tile {
	return g.At(C(x, y))
}

// At returns the tile at c, or nil outside the grid.
func (g *Grid) At(c Coord) *Tile {
	if !g.InBounds(c) {
		return nil
	}
	return g.tiles[g.index(c)]
}

// Tiles returns every tile, x-major: all of column x=0 first, then x=1.
func (g *Grid) Tiles() []*Tile {
	out := make([]*Tile, 0, len(g.tiles))
	for x := 0; x < g.W; x++ {
		for y := 0; y < g.H; y++ {
			out = append(out, g.tiles[g.index(C(x, y))])
		}
	}
	return out
}

// AdjacentTiles returns the in-bounds neighbors of t: orthogonal ones first,
// then diagonals when includeDiagonals is set.
func (g *Grid) AdjacentTiles(t *Tile, includeDiagonals bool) []*Tile {
	if t == nil {
		return nil
	}
	n := 4
	if includeDiagonals {
		n = 8
	}
	out := make([]*Tile, 0, n)
	for _, off := range neighborOffsets[:n] {
		if nb := g.At(t.Pos.Add(off.X, off.Y)); nb != nil {
			out = append(out, nb)
		}
	}
	return out
}

// TilesInRange returns every tile reachable from origin in at most r steps,
// origin included, in breadth-first order. With diagonals this is the
// Chebyshev square of radius r clipped to the grid.
func (g *Grid) TilesInRange(origin *Tile, r int, includeDiagonals bool) []*Tile {
	if origin == nil || r < 0 {
		return nil
	}
	type node struct {
		tile *Tile
		hops int
	}
	visited := map[*Tile]bool{origin: true}
	queue := []node{{origin, 0}}
	var out []*Tile
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, cur.tile)
		if cur.hops >= r {
			continue
		}
		for _, nb := range g.AdjacentTiles(cur.tile, includeDiagonals) {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			queue = append(queue, node{nb, cur.hops + 1})
		}
	}
	return out
}
