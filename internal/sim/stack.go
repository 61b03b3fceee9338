package sim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-skirmish/internal/catalog"
)

// DefaultCapacity is the stack limit of armies and garrisons.
const DefaultCapacity = 15

// Stack is a group of soldiers of one unit type.
type Stack struct {
	Type catalog.UnitType
	Size int
}

// Power is the stack's contribution to a force's power score.
func (s *Stack) Power() float64 {
	return float64(s.Type.PowerPerSoldier() * s.Size)
}

func (s *Stack) String() string {
	return fmt.Sprintf("%s x%d", s.Type.ID, s.Size)
}

// Container is an ordered, capacity-bounded list of stacks shared by armies
// and garrisons.
type Container struct {
	cat      *catalog.Catalog
	capacity int
	stacks   []*Stack
}

// NewContainer returns an empty container resolving unit names against cat.
func NewContainer(cat *catalog.Catalog, capacity int) *Container {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Container{cat: cat, capacity: capacity}
}

// Stacks returns the stacks in order. The slice is a copy; the stacks are shared.
func (c *Container) Stacks() []*Stack {
	return append([]*Stack(nil), c.stacks...)
}

// Len returns the number of stacks.
func (c *Container) Len() int { return len(c.stacks) }

// Capacity returns the stack limit.
func (c *Container) Capacity() int { return c.capacity }

// Full reports whether no more stacks fit.
func (c *Container) Full() bool { return len(c.stacks) >= c.capacity }

// Empty reports whether the container holds no stacks.
func (c *Container) Empty() bool { return len(c.stacks) == 0 }

// Soldiers returns the total soldier count.
func (c *Container) Soldiers() int {
	n := 0
	for _, s := range c.stacks {
		n += s.Size
	}
	return n
}

// Power returns the power score: the sum over stacks of
// (damage + melee armor + speed) * size.
func (c *Container) Power() float64 {
	p := 0.0
	for _, s := range c.stacks {
		p += s.Power()
	}
	return p
}

// AddStack appends a stack of the named unit type.
func (c *Container) AddStack(id catalog.TypeID, size int) (*Stack, error) {
	if c.Full() {
		return nil, fmt.Errorf("add %s: %w (%d stacks)", id, ErrCapacityExceeded, c.capacity)
	}
	t, ok := c.cat.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("add stack: %w: %w %q", ErrInvalidTarget, catalog.ErrUnknownUnit, id)
	}
	if size <= 0 {
		return nil, fmt.Errorf("add %s: %w: size %d", id, ErrInvalidTarget, size)
	}
	s := &Stack{Type: t, Size: size}
	c.stacks = append(c.stacks, s)
	return s, nil
}

// Contains reports whether s belongs to the container.
func (c *Container) Contains(s *Stack) bool {
	return c.indexOf(s) >= 0
}

func (c *Container) indexOf(s *Stack) int {
	for i, have := range c.stacks {
		if have == s {
			return i
		}
	}
	return -1
}

// RemoveStack removes s and reports whether the container is now empty.
func (c *Container) RemoveStack(s *Stack) (empty bool, err error) {
	i := c.indexOf(s)
	if i < 0 {
		return c.Empty(), fmt.Errorf("remove stack: %w: not in container", ErrInvalidTarget)
	}
	c.stacks = append(c.stacks[:i], c.stacks[i+1:]...)
	return c.Empty(), nil
}

// Merge regroups the stacks by unit type, in order of first appearance, into
// full stacks of the type's default size plus one remainder stack. Stacks
// that would exceed capacity are dropped; Merge returns the number of
// soldiers lost that way.
func (c *Container) Merge() (dropped int) {
	var order []catalog.TypeID
	totals := make(map[catalog.TypeID]int)
	types := make(map[catalog.TypeID]catalog.UnitType)
	for _, s := range c.stacks {
		if _, seen := totals[s.Type.ID]; !seen {
			order = append(order, s.Type.ID)
			types[s.Type.ID] = s.Type
		}
		totals[s.Type.ID] += s.Size
	}

	merged := make([]*Stack, 0, len(c.stacks))
	for _, id := range order {
		t := types[id]
		total := totals[id]
		full, rest := total/t.DefaultSize, total%t.DefaultSize
		for i := 0; i < full; i++ {
			if len(merged) >= c.capacity {
				dropped += t.DefaultSize
				continue
			}
			merged = append(merged, &Stack{Type: t, Size: t.DefaultSize})
		}
		if rest > 0 {
			if len(merged) >= c.capacity {
				dropped += rest
				continue
			}
			merged = append(merged, &Stack{Type: t, Size: rest})
		}
	}
	c.stacks = merged
	return dropped
}

// applyLosses shrinks every stack by round(size*ratio), prunes empty stacks
// and returns the soldiers lost. Halves round to even.
func (c *Container) applyLosses(ratio float64) int {
	lost := 0
	for _, s := range c.stacks {
		loss := int(math.RoundToEven(float64(s.Size) * ratio))
		if loss > s.Size {
			loss = s.Size
		}
		s.Size -= loss
		lost += loss
	}
	c.prune()
	return lost
}

// prune drops stacks whose size reached zero.
func (c *Container) prune() {
	kept := c.stacks[:0]
	for _, s := range c.stacks {
		if s.Size > 0 {
			kept = append(kept, s)
		}
	}
	for i := len(kept); i < len(c.stacks); i++ {
		c.stacks[i] = nil
	}
	c.stacks = kept
}

// takeAll empties the container and returns its stacks.
func (c *Container) takeAll() []*Stack {
	out := c.stacks
	c.stacks = nil
	return out
}

// transferTo moves stacks from c into dst in order until dst is full and
// returns how many moved.
func (c *Container) transferTo(dst *Container) int {
	moved := 0
	for len(c.stacks) > 0 && !dst.Full() {
		dst.stacks = append(dst.stacks, c.stacks[0])
		c.stacks = c.stacks[1:]
		moved++
	}
	return moved
}
