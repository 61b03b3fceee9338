// skirmish is a two-faction turn-based strategy game for the terminal.
//
// Usage:
//
//	skirmish play                 - Play a match against the computer
//	skirmish simulate             - Run a match headless and print a summary
//	skirmish units                - Show the unit catalog
//	skirmish scenarios            - List built-in scenarios
//	skirmish genmap               - Generate a map file from noise
//	skirmish history              - Show recorded matches
//
// Global flags:
//
//	--scenario <name|file>  - Scenario to play (default: classic)
//	--difficulty <preset>   - easy, normal or hard
//	--config <path>         - Custom rules YAML
//	--seed <value>          - RNG seed for reproducible matches
//	--db <path>             - Match history database (default: ~/.skirmish/history.db)
//	--log-level <level>     - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagScenario   string
	flagDifficulty string
	flagConfig     string
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skirmish",
	Short: "Skirmish - turn-based strategy in your terminal",
	Long: `Skirmish is a two-faction strategy game played on a tile map.
Grow your settlements, recruit stacks of soldiers and march armies
until one side holds every settlement.

Available commands:
  play       - Play a match against the computer
  simulate   - Run a match headless and print a summary
  units      - Show the unit catalog
  scenarios  - List built-in scenarios
  genmap     - Generate a map file from noise
  history    - Show recorded matches

Examples:
  skirmish play
  skirmish play --scenario frontier --difficulty hard
  skirmish simulate --autoplay --turns 100 --seed 7
  skirmish genmap --width 24 --height 16 > my.map
  skirmish history`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagScenario, "scenario", "classic", "Scenario name or path to a scenario YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.skirmish/history.db", "Path to match history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(unitsCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(genmapCmd)
	rootCmd.AddCommand(historyCmd)
}

// newLogger builds the command logger. An unknown level falls back to warn.
func newLogger(out io.Writer) *log.Logger {
	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "skirmish",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using warn", "level", flagLogLevel)
		level = log.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}
