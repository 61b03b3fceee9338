// Package opponent drives computer factions: what to build, what to
// recruit, when to field an army and where to march it.
package opponent

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-skirmish/internal/sim"
)

// Controller implements sim.Controller with fixed heuristics tuned by a
// Doctrine.
type Controller struct {
	doctrine Doctrine
	rules    compiled
	log      *log.Logger
}

var _ sim.Controller = (*Controller)(nil)

// New compiles d. A nil logger discards output.
func New(d Doctrine, logger *log.Logger) (*Controller, error) {
	rules, err := compileDoctrine(d)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{doctrine: d, rules: rules, log: logger.WithPrefix("opponent")}, nil
}

// Doctrine returns the settings the controller was built with.
func (c *Controller) Doctrine() Doctrine { return c.doctrine }

// PlayTurn runs the economy for every settlement, then moves every army.
func (c *Controller) PlayTurn(w *sim.World, f *sim.Faction) {
	posture := c.Posture(w, f)
	c.log.Debug("turn", "faction", f.Name, "gold", f.Gold(), "posture", posture)

	for _, s := range f.Settlements() {
		if !s.Construction().Active() {
			c.build(w, s, posture)
		}
		c.recruit(w, s)
		c.spawn(w, f, s)
	}
	for _, a := range f.Armies() {
		if w.Outcome() != sim.Ongoing {
			return
		}
		if a.Tile() == nil || a.Empty() {
			continue
		}
		c.march(w, f, a)
	}
}

// Posture compares f's military power with every rival's.
func (c *Controller) Posture(w *sim.World, f *sim.Faction) Posture {
	env := c.env(w, f)
	if ok, err := run(c.rules.threatened, env); err != nil {
		c.log.Warn("rule error", "rule", "threatened", "err", err)
	} else if ok {
		return Threatened
	}
	if ok, err := run(c.rules.advantaged, env); err != nil {
		c.log.Warn("rule error", "rule", "advantaged", "err", err)
	} else if ok {
		return Advantaged
	}
	return Balanced
}

func (c *Controller) env(w *sim.World, f *sim.Faction) Env {
	own := f.MilitaryPower()
	var enemy float64
	for _, r := range w.Rivals(f) {
		enemy += r.MilitaryPower()
	}
	ratio := 2.0
	if enemy > 0 {
		ratio = own / enemy
	}
	return Env{Ratio: ratio, Own: own, Enemy: enemy, Margin: c.doctrine.AttackMargin, Gold: f.Gold(), Turn: w.Turn()}
}

// ShouldAttack evaluates the attack rule for two forces.
func (c *Controller) ShouldAttack(w *sim.World, f *sim.Faction, own, enemy float64) bool {
	env := c.env(w, f)
	env.Own, env.Enemy = own, enemy
	ok, err := run(c.rules.attack, env)
	if err != nil {
		c.log.Warn("rule error", "rule", "attack", "err", err)
		return false
	}
	return ok
}
