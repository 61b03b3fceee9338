package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-skirmish/internal/platform/tui"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a match against the computer",
	Long: `Start a match as the human faction.

Controls:
  Arrows/hjkl  - Move the cursor
  Enter        - Select an army, then move it to the cursor
  Esc          - Clear the selection
  1-5          - Build Barracks, Archery Range, Stables, Farm, Market
  Tab / R      - Cycle the recruit choice / queue it
  A            - Raise an army from the garrison
  M / X        - Merge stacks / disband the last stack
  E            - End turn
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Examples:
  skirmish play
  skirmish play --scenario frontier
  skirmish play --difficulty hard --log-file skirmish.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while the board is on screen")
}

func runPlay(cmd *cobra.Command, args []string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: play needs an interactive terminal; try 'skirmish simulate'")
		os.Exit(1)
	}

	// The board owns the screen, so logs go to a file or nowhere.
	var out io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	logger := newLogger(out)

	s, err := newSession(logger, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if _, err := s.world.Start(); err != nil {
		s.close()
		fmt.Fprintf(os.Stderr, "Error starting match: %v\n", err)
		os.Exit(1)
	}
	logger.Info("match started", "scenario", s.scenario.Name, "seed", s.seed)

	runErr := tui.Run(s.world, logger)
	s.close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
	fmt.Printf("Match %s after %d turns (seed %d).\n", s.world.Outcome(), s.world.Turn(), s.seed)
}
