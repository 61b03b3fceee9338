package opponent

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Doctrine holds the tunable parts of the planner. The three conditions are
// expr sources evaluated against Env.
type Doctrine struct {
	Threatened string `yaml:"threatened"`
	Advantaged string `yaml:"advantaged"`
	Attack     string `yaml:"attack"`
	// AttackMargin is exposed to conditions as `margin`.
	AttackMargin float64 `yaml:"attack_margin"`

	// Target share of Barracks, ArcheryRange and Stables units in a garrison.
	Composition [3]float64 `yaml:"composition,flow"`

	SpawnMinStacks int     `yaml:"spawn_min_stacks"`
	SpawnKeep      int     `yaml:"spawn_keep"`
	ThreatRadius   float64 `yaml:"threat_radius"`
}

// DefaultDoctrine returns the stock planner settings.
func DefaultDoctrine() Doctrine {
	return Doctrine{
		Threatened:     "ratio < 0.8",
		Advantaged:     "ratio > 1.2",
		Attack:         "own >= enemy * margin",
		AttackMargin:   0.8,
		Composition:    [3]float64{0.53, 0.27, 0.20},
		SpawnMinStacks: 12,
		SpawnKeep:      3,
		ThreatRadius:   5,
	}
}

// Env is what doctrine conditions can see.
type Env struct {
	// Ratio is own power over rival power, 2 when rivals have none.
	Ratio float64 `expr:"ratio"`
	// Own and Enemy are either faction totals (posture) or the two armies
	// about to fight (attack).
	Own    float64 `expr:"own"`
	Enemy  float64 `expr:"enemy"`
	Margin float64 `expr:"margin"`
	Gold   int     `expr:"gold"`
	Turn   int     `expr:"turn"`
}

// Posture is the construction stance picked each turn.
type Posture uint8

const (
	Balanced Posture = iota
	Threatened
	Advantaged
)

func (p Posture) String() string {
	switch p {
	case Threatened:
		return "threatened"
	case Advantaged:
		return "advantaged"
	}
	return "balanced"
}

type compiled struct {
	threatened *vm.Program
	advantaged *vm.Program
	attack     *vm.Program
}

func compileDoctrine(d Doctrine) (compiled, error) {
	var c compiled
	for _, r := range []struct {
		name string
		src  string
		dst  **vm.Program
	}{
		{"threatened", d.Threatened, &c.threatened},
		{"advantaged", d.Advantaged, &c.advantaged},
		{"attack", d.Attack, &c.attack},
	} {
		prog, err := expr.Compile(r.src, expr.Env(Env{}), expr.AsBool())
		if err != nil {
			return compiled{}, fmt.Errorf("compile %s rule %q: %w", r.name, r.src, err)
		}
		*r.dst = prog
	}
	return c, nil
}

func run(prog *vm.Program, env Env) (bool, error) {
	out, err := vm.Run(prog, env)
	if err != nil {
		return false, err
	}
	match, ok := out.(bool)
	return ok && match, nil
}
