package sim

import (
	"fmt"
	"math"
)

// Coord is a grid position. X indexes map rows, Y indexes tokens within a row.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Chebyshev returns the king-move distance to other.
func (c Coord) Chebyshev(other Coord) int {
	return max(abs(c.X-other.X), abs(c.Y-other.Y))
}

// Euclidean returns the straight-line distance to other.
func (c Coord) Euclidean(other Coord) float64 {
	dx := float64(c.X - other.X)
	dy := float64(c.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// StepToward returns the neighbor of c one step toward target, moving on both
// axes whenever both differ.
func (c Coord) StepToward(target Coord) Coord {
	return c.Add(sign(target.X-c.X), sign(target.Y-c.Y))
}

// neighborOffsets is the fixed scan order for adjacency and spawn placement:
// the four orthogonal neighbors first, then the diagonals.
var neighborOffsets = [8]Coord{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
