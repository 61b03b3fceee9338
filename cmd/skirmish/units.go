package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-skirmish/internal/catalog"
	"github.com/vovakirdan/tui-skirmish/internal/config"
)

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "Show the unit catalog",
	Long: `List every unit type with its stats, the building that trains it and
the building level that unlocks it. Unit overrides from --config apply.`,
	Args: cobra.NoArgs,
	Run:  runUnits,
}

func runUnits(cmd *cobra.Command, args []string) {
	cfg, err := config.LoadRules(flagConfig)
	if err != nil {
		color.Red("Error loading config: %v", err)
		os.Exit(1)
	}
	cat, err := cfg.Catalog()
	if err != nil {
		color.Red("Invalid unit catalog: %v", err)
		os.Exit(1)
	}

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Unit", "Trained at", "Size", "Damage", "Melee", "Ranged", "Speed", "Power/soldier", "Cost"}),
	)
	for _, u := range cat.Types() {
		row := []string{
			string(u.ID),
			trainedAt(cat, u.ID),
			fmt.Sprintf("%d", u.DefaultSize),
			fmt.Sprintf("%d", u.Damage),
			fmt.Sprintf("%d", u.MeleeArmor),
			fmt.Sprintf("%d", u.RangedArmor),
			fmt.Sprintf("%d", u.Speed),
			fmt.Sprintf("%d", u.PowerPerSoldier()),
			fmt.Sprintf("%d", u.RecruitmentCost()),
		}
		_ = table.Append(row)
	}
	_ = table.Render()
}

// trainedAt names the building and lowest level that unlocks id.
func trainedAt(cat *catalog.Catalog, id catalog.TypeID) string {
	b, ok := cat.BuildingFor(id)
	if !ok {
		return "-"
	}
	for level := 1; level <= catalog.MaxLevel; level++ {
		for _, u := range cat.UnitsFor(b, level) {
			if u == id {
				return fmt.Sprintf("%s %d", b, level)
			}
		}
	}
	return b.String()
}
