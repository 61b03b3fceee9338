package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-skirmish/internal/maps"
	"github.com/vovakirdan/tui-skirmish/internal/scenario"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List built-in scenarios",
	Long:  `Shows the scenarios and maps bundled with skirmish.`,
	Args:  cobra.NoArgs,
	Run:   runScenarios,
}

func runScenarios(cmd *cobra.Command, args []string) {
	list := scenario.List()
	if len(list) == 0 {
		fmt.Println("No scenarios available.")
		return
	}

	fmt.Println("Available scenarios:")
	fmt.Println()

	maxNameLen := 4 // "Name" header
	for _, sc := range list {
		if len(sc.Name) > maxNameLen {
			maxNameLen = len(sc.Name)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Title")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----")
	for _, sc := range list {
		fmt.Printf("  %-*s  %s\n", maxNameLen, sc.Name, sc.Title)
		if sc.Description != "" {
			fmt.Printf("  %-*s  %s\n", maxNameLen, "", sc.Description)
		}
	}

	fmt.Println()
	fmt.Printf("Built-in maps: %v\n", maps.Names())
	fmt.Println("Run 'skirmish play --scenario <name>' to play one.")
}
