package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// RulesFile is the file name searched for in config directories.
const RulesFile = "rules.yaml"

// LoadRules loads the match rules.
// Search order: customPath -> ~/.skirmish/configs/rules.yaml -> ./configs/rules.yaml -> embedded default.
// Fields missing from a file keep their default values.
func LoadRules(customPath string) (RulesConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RulesConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseRules(data)
		if err != nil {
			return RulesConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, p := range []string{userConfigPath(RulesFile), filepath.Join("configs", RulesFile)} {
		if p == "" {
			continue
		}
		if data, err := os.ReadFile(p); err == nil {
			if cfg, err := parseRules(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := parseRules(defaultRulesYAML)
	if err != nil {
		return DefaultRulesConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parseRules(data []byte) (RulesConfig, error) {
	cfg := DefaultRulesConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RulesConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path within ~/.skirmish/configs/.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".skirmish", "configs", filename)
}
