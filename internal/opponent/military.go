package opponent

import (
	"math"

	"github.com/vovakirdan/tui-skirmish/internal/sim"
)

// EnemyNear reports whether an army hostile to s's owner stands within
// radius (straight-line) of s.
func EnemyNear(w *sim.World, s *sim.Settlement, radius float64) bool {
	for _, a := range w.Armies() {
		if a.Owner() == s.Owner() || a.Tile() == nil {
			continue
		}
		if s.Pos.Euclidean(a.Tile().Pos) <= radius {
			return true
		}
	}
	return false
}

func (c *Controller) spawn(w *sim.World, f *sim.Faction, s *sim.Settlement) {
	d := c.doctrine
	if s.Garrison.Len() < d.SpawnMinStacks || f.ArmyCapReached() {
		return
	}
	if EnemyNear(w, s, d.ThreatRadius) {
		c.log.Debug("holding garrison", "settlement", s.Name, "reason", "enemy nearby")
		return
	}
	stacks := s.Garrison.Stacks()
	take := len(stacks) - d.SpawnKeep
	if take <= 0 {
		return
	}
	a, err := w.CreateArmyFromGarrison(s, f, stacks[:take])
	if err != nil {
		c.log.Debug("army not raised", "settlement", s.Name, "err", err)
		return
	}
	c.log.Info("army raised", "settlement", s.Name, "army", a.Name(), "stacks", a.Len(), "at", a.Tile().Pos)
}

// NearestTarget returns the closest tile holding an enemy army or an enemy
// settlement, scanning columns left to right. Nil when there is none.
func NearestTarget(w *sim.World, a *sim.Army) *sim.Tile {
	var best *sim.Tile
	bestDist := math.MaxFloat64
	from := a.Tile().Pos
	for _, t := range w.Grid.Tiles() {
		hostile := (t.Army != nil && t.Army.Owner() != a.Owner()) ||
			(t.Settlement != nil && t.Settlement.Owner() != a.Owner())
		if !hostile {
			continue
		}
		if d := from.Euclidean(t.Pos); d < bestDist {
			best, bestDist = t, d
		}
	}
	return best
}

// march walks a toward its nearest target one greedy step at a time,
// attacking what it meets when the doctrine allows.
func (c *Controller) march(w *sim.World, f *sim.Faction, a *sim.Army) {
	target := NearestTarget(w, a)
	if target == nil {
		return
	}
	for a.RemainingMovement() > 0 && a.Tile() != nil {
		from := a.Tile()
		next := w.Grid.At(from.Pos.StepToward(target.Pos))
		if next == nil || next == from {
			return
		}
		switch {
		case next.Army != nil && next.Army.Owner() != f:
			if !c.ShouldAttack(w, f, a.Power(), next.Army.Power()) {
				c.log.Debug("holding", "army", a.Name(), "enemy", next.Army.Name(),
					"own", a.Power(), "enemy_power", next.Army.Power())
				return
			}
			c.move(w, a, from, next)
			return
		case next.Army != nil:
			return
		case next.Settlement != nil && next.Settlement.Owner() != f:
			c.move(w, a, from, next)
			return
		case !next.Passable():
			return
		}
		if res, ok := c.move(w, a, from, next); !ok || res.Kind != sim.MovePlain {
			return
		}
	}
}

func (c *Controller) move(w *sim.World, a *sim.Army, from, to *sim.Tile) (sim.MoveResult, bool) {
	name := a.Name()
	res, err := w.MoveArmy(a, from, to)
	if err != nil {
		c.log.Debug("move refused", "army", name, "to", to.Pos, "err", err)
		return res, false
	}
	if res.Battle != nil {
		c.log.Info("engaged", "army", name, "kind", res.Kind, "result", res.Battle.String())
	}
	return res, true
}
