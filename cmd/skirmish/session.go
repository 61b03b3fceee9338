package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-skirmish/internal/config"
	"github.com/vovakirdan/tui-skirmish/internal/opponent"
	"github.com/vovakirdan/tui-skirmish/internal/scenario"
	"github.com/vovakirdan/tui-skirmish/internal/sim"
	"github.com/vovakirdan/tui-skirmish/internal/storage"
)

// session is one match wired to its rules, controller and history record.
type session struct {
	world    *sim.World
	scenario scenario.Scenario
	seed     int64
	store    *storage.Store
	recorder *storage.Recorder
	log      *log.Logger
}

// newSession loads rules and the scenario named by the global flags and
// builds a world. History recording is best-effort: without a database the
// match still runs.
func newSession(logger *log.Logger, autoplay bool) (*session, error) {
	cfg, err := config.LoadRules(flagConfig)
	if err != nil {
		return nil, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return nil, err
	}
	config.ApplyPreset(&cfg, preset)

	rules, err := cfg.SimRules()
	if err != nil {
		return nil, err
	}
	cat, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	ctrl, err := opponent.New(cfg.Opponent, logger)
	if err != nil {
		return nil, err
	}
	sc, err := scenario.Resolve(flagScenario)
	if err != nil {
		return nil, err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w, err := scenario.Build(sc, scenario.Options{
		Rules:        rules,
		Catalog:      cat,
		Logger:       logger,
		Seed:         seed,
		Controller:   ctrl,
		Autoplay:     autoplay,
		OpponentGold: cfg.OpponentGold,
	})
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	s := &session{world: w, scenario: sc, seed: seed, log: logger}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("match history disabled", "err", err)
		return s, nil
	}
	rec, err := storage.NewRecorder(store, &storage.Match{
		Scenario:   sc.Name,
		Seed:       seed,
		Difficulty: string(preset),
		Autoplay:   autoplay,
	}, logger)
	if err != nil {
		store.Close()
		logger.Warn("match history disabled", "err", err)
		return s, nil
	}
	s.store, s.recorder = store, rec
	w.SetObserver(rec.Observe)
	return s, nil
}

// close records the match result and releases the database.
func (s *session) close() {
	if s.recorder != nil {
		if err := s.recorder.Finish(s.world); err != nil {
			s.log.Warn("match result not recorded", "err", err)
		}
	}
	if s.store != nil {
		s.store.Close()
	}
}
