package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-skirmish/internal/sim"
)

var (
	flagTurns    int
	flagAutoplay bool
	flagEvents   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a match headless and print a summary",
	Long: `Run a match without the board. By default the human faction is passive
and only ends its turns; with --autoplay the computer controls both sides.

Examples:
  skirmish simulate --turns 30
  skirmish simulate --autoplay --turns 200 --seed 42
  skirmish simulate --scenario frontier --events`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTurns, "turns", 50, "Maximum number of turns to play")
	simulateCmd.Flags().BoolVar(&flagAutoplay, "autoplay", false, "Let the computer control every faction")
	simulateCmd.Flags().BoolVar(&flagEvents, "events", false, "Print every battle and siege")
}

func runSimulate(cmd *cobra.Command, args []string) {
	logger := newLogger(os.Stderr)
	s, err := newSession(logger, flagAutoplay)
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
	defer s.close()

	w := s.world
	if _, err := w.Start(); err != nil {
		color.Red("Error starting match: %v", err)
		s.close()
		os.Exit(1)
	}
	// Without a human each EndTurn plays one computer turn, so a round
	// takes one call per faction.
	calls := flagTurns
	if flagAutoplay {
		calls *= len(w.Factions())
	}
	for i := 0; i < calls && w.Outcome() == sim.Ongoing && w.Turn() <= flagTurns; i++ {
		if _, err := w.EndTurn(); err != nil {
			color.Red("Error: %v", err)
			s.close()
			os.Exit(1)
		}
	}

	titleColor := color.New(color.FgCyan, color.Bold)
	title := s.scenario.Title
	if title == "" {
		title = s.scenario.Name
	}
	titleColor.Printf("\n%s (seed %d)\n\n", title, s.seed)

	if flagEvents {
		printBattles(w)
	}
	printFactions(w)

	fmt.Println()
	fmt.Printf("Turns played: %d\n", w.Turn())
	fmt.Printf("Outcome:      %s\n", outcomeColor(w.Outcome().String()).Sprint(w.Outcome()))
	if s.recorder != nil {
		fmt.Printf("Recorded:     %s (%d battles)\n", s.recorder.MatchID(), s.recorder.Battles())
	}
}

func printFactions(w *sim.World) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Faction", "Gold", "Income", "Settlements", "Armies", "Soldiers", "Power"}),
	)
	for _, f := range w.Factions() {
		row := []string{
			f.Name,
			humanize.Comma(int64(f.Gold())),
			humanize.Comma(int64(f.Income())),
			fmt.Sprintf("%d", len(f.Settlements())),
			fmt.Sprintf("%d", len(f.Armies())),
			humanize.Comma(int64(f.Soldiers())),
			humanize.Comma(int64(f.MilitaryPower())),
		}
		_ = table.Append(row)
	}
	_ = table.Render()
}

func printBattles(w *sim.World) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Turn", "Kind", "Where", "Attacker", "Defender", "Power", "Result", "Losses"}),
	)
	for _, ev := range w.Events() {
		r := ev.Battle
		if r == nil {
			continue
		}
		where := r.Location.String()
		if r.Settlement != "" {
			where = r.Settlement
		}
		result := "repelled"
		if r.AttackerWon {
			result = "attacker won"
		}
		row := []string{
			fmt.Sprintf("%d", ev.Turn),
			r.Kind.String(),
			where,
			r.Attacker.String(),
			r.Defender.String(),
			fmt.Sprintf("%.0f vs %.0f", r.AttackerPower, r.DefenderPower),
			result,
			fmt.Sprintf("%s / %s", humanize.Comma(int64(r.AttackerLosses)), humanize.Comma(int64(r.DefenderLosses))),
		}
		_ = table.Append(row)
	}
	_ = table.Render()
	fmt.Println()
}

// outcomeColor picks the colour an outcome is printed in.
func outcomeColor(outcome string) *color.Color {
	switch outcome {
	case "victory":
		return color.New(color.FgGreen, color.Bold)
	case "defeat":
		return color.New(color.FgRed, color.Bold)
	case "draw":
		return color.New(color.FgYellow, color.Bold)
	}
	return color.New(color.FgWhite)
}
