package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-brawler/internal/levels"
	"github.com/vovakirdan/tui-brawler/internal/registry"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List all game modes",
	Long:  `Shows every registered game mode.`,
	Args:  cobra.NoArgs,
	Run:   runModes,
}

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the campaign levels",
	Long: `Shows each level with its size in tiles and the number of enemy, item
and checkpoint spawns. Use --levels-dir to inspect a directory of level files.`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory of level files (default: built-in campaign)")
}

func runModes(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'brawler play <id>' to play a mode.")
}

func runLevels(_ *cobra.Command, _ []string) {
	var (
		set levels.Set
		err error
	)
	if flagLevelsDir != "" {
		set, err = levels.NewLoader(flagLevelsDir).LoadAll()
	} else {
		set, err = levels.Embedded()
	}
	if err != nil {
		fail("loading levels: %v", err)
	}

	if set.Count() == 0 {
		fmt.Println("No levels found.")
		return
	}

	maxNameLen := 4 // "Name" header
	for _, d := range set {
		maxNameLen = max(maxNameLen, len(d.Name))
	}

	fmt.Printf("  %-3s  %-*s  %-9s  %-7s  %-5s  %-11s  %s\n", "#", maxNameLen, "Name", "Size", "Enemies", "Items", "Checkpoints", "Boss")
	fmt.Printf("  %-3s  %-*s  %-9s  %-7s  %-5s  %-11s  %s\n", "-", maxNameLen, "----", "----", "-------", "-----", "-----------", "----")
	for i, d := range set {
		boss := "-"
		if d.Boss != nil {
			boss = d.Boss.Type
		}
		size := fmt.Sprintf("%dx%d", d.Cols(), d.Rows())
		fmt.Printf("  %-3d  %-*s  %-9s  %-7d  %-5d  %-11d  %s\n",
			i+1, maxNameLen, d.Name, size, len(d.Enemies), len(d.Items), len(d.Checkpoints), boss)
	}
}
