package storage

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-skirmish/internal/sim"
)

// Recorder writes a running match into a Store. Install Observe as the
// world's event observer and call Finish when play stops.
type Recorder struct {
	store   *Store
	matchID string
	log     *log.Logger
	battles int
}

// NewRecorder starts a match row for m.
func NewRecorder(store *Store, m *Match, logger *log.Logger) (*Recorder, error) {
	if err := store.BeginMatch(m); err != nil {
		return nil, err
	}
	return &Recorder{store: store, matchID: m.ID, log: logger}, nil
}

// MatchID returns the recorded match's identifier.
func (r *Recorder) MatchID() string { return r.matchID }

// Battles returns how many engagements were stored.
func (r *Recorder) Battles() int { return r.battles }

// Observe stores battle and siege events. Write failures are logged; they
// never interrupt the match.
func (r *Recorder) Observe(ev sim.Event) {
	if ev.Battle == nil {
		return
	}
	b := ev.Battle
	where := b.Location.String()
	if b.Settlement != "" {
		where = b.Settlement
	}
	_, err := r.store.SaveBattle(Battle{
		MatchID:        r.matchID,
		Turn:           ev.Turn,
		Kind:           b.Kind.String(),
		Location:       where,
		Attacker:       b.Attacker.String(),
		Defender:       b.Defender.String(),
		AttackerPower:  b.AttackerPower,
		DefenderPower:  b.DefenderPower,
		AttackerWon:    b.AttackerWon,
		AttackerLosses: b.AttackerLosses,
		DefenderLosses: b.DefenderLosses,
	})
	if err != nil {
		if r.log != nil {
			r.log.Warn("battle not recorded", "match", r.matchID, "err", err)
		}
		return
	}
	r.battles++
}

// Finish stores the turn count and outcome of w. An undecided match is
// recorded as abandoned.
func (r *Recorder) Finish(w *sim.World) error {
	outcome := w.Outcome().String()
	if w.Outcome() == sim.Ongoing {
		outcome = "abandoned"
	}
	return r.store.FinishMatch(r.matchID, w.Turn(), outcome, time.Now())
}
