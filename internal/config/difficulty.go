package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the presets in increasing difficulty.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ParsePreset accepts a preset name in any case. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return DifficultyNormal, nil
	}
	for _, known := range Presets() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
}

// ApplyPreset shifts the opponent's starting gold and willingness to attack.
// Normal leaves the file as loaded.
func ApplyPreset(cfg *RulesConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.OpponentGold -= cfg.Economy.StartingGold / 2
		cfg.Opponent.AttackMargin *= 1.25
	case DifficultyHard:
		cfg.OpponentGold += cfg.Economy.StartingGold * 2
		cfg.Opponent.AttackMargin *= 0.75
	}
}
