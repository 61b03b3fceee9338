package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-skirmish/internal/platform/tui"
	"github.com/vovakirdan/tui-skirmish/internal/storage"
)

var (
	flagLimit  int
	flagBrowse bool
)

var historyCmd = &cobra.Command{
	Use:   "history [match-id]",
	Short: "Show recorded matches",
	Long: `Display recently recorded matches, or the battles of one match.

Examples:
  skirmish history
  skirmish history --limit 50
  skirmish history --browse
  skirmish history 6f1c2e1a-...`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of matches to list")
	historyCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Browse matches interactively")
}

func runHistory(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		color.Red("Error opening history database: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case len(args) == 1:
		err = showMatch(store, args[0])
	case flagBrowse:
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		err = tui.RunHistory(store, width, height)
	default:
		err = listMatches(store)
	}
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func listMatches(store *storage.Store) error {
	matches, err := store.RecentMatches(flagLimit)
	if err != nil {
		return err
	}
	stats, err := store.Stats()
	if err != nil {
		return err
	}

	titleColor := color.New(color.FgCyan, color.Bold)
	titleColor.Println("Match History")
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'skirmish play' or 'skirmish simulate' to record one!")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"ID", "Started", "Scenario", "Difficulty", "Mode", "Turns", "Outcome"}),
	)
	for _, m := range matches {
		mode := "play"
		if m.Autoplay {
			mode = "autoplay"
		}
		row := []string{
			m.ID[:min(len(m.ID), 8)],
			humanize.Time(m.StartedAt),
			m.Scenario,
			m.Difficulty,
			mode,
			fmt.Sprintf("%d", m.Turns),
			outcomeColor(m.Outcome).Sprint(m.Outcome),
		}
		_ = table.Append(row)
	}
	_ = table.Render()

	fmt.Println()
	fmt.Printf("%s matches: %s won, %s lost, %s drawn, %s battles fought\n",
		humanize.Comma(int64(stats.Matches)), humanize.Comma(int64(stats.Victories)),
		humanize.Comma(int64(stats.Defeats)), humanize.Comma(int64(stats.Draws)),
		humanize.Comma(int64(stats.Battles)))
	return nil
}

func showMatch(store *storage.Store, id string) error {
	m, err := store.MatchByID(id)
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("no match with id %q", id)
	}
	battles, err := store.Battles(id)
	if err != nil {
		return err
	}

	titleColor := color.New(color.FgCyan, color.Bold)
	titleColor.Printf("%s on %s (seed %d)\n", m.ID, m.Scenario, m.Seed)
	fmt.Printf("Started %s, %d turns, %s\n\n", m.StartedAt.Format("2006-01-02 15:04"), m.Turns,
		outcomeColor(m.Outcome).Sprint(m.Outcome))

	if len(battles) == 0 {
		fmt.Println("No battles fought.")
		return nil
	}
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Turn", "Kind", "Where", "Attacker", "Defender", "Power", "Winner", "Losses"}),
	)
	for _, b := range battles {
		winner := b.Defender
		if b.AttackerWon {
			winner = b.Attacker
		}
		row := []string{
			fmt.Sprintf("%d", b.Turn),
			b.Kind,
			b.Location,
			b.Attacker,
			b.Defender,
			fmt.Sprintf("%.0f vs %.0f", b.AttackerPower, b.DefenderPower),
			winner,
			fmt.Sprintf("%s / %s", humanize.Comma(int64(b.AttackerLosses)), humanize.Comma(int64(b.DefenderLosses))),
		}
		_ = table.Append(row)
	}
	return table.Render()
}
