package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fifteen/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available boards",
	Long:  `Shows a list of all board sizes registered in the puzzle.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	variants := registry.List()

	if len(variants) == 0 {
		fmt.Println("No boards available.")
		return
	}

	fmt.Println("Available boards:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, v := range variants {
		if len(v.ID) > maxIDLen {
			maxIDLen = len(v.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, "ID", "Size", "Title")
	fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, "--", "----", "-----")

	for _, v := range variants {
		fmt.Printf("  %-*s  %-5s  %s\n", maxIDLen, v.ID, fmt.Sprintf("%dx%d", v.Width, v.Height), v.Title)
	}

	fmt.Println()
	fmt.Println("Run 'fifteen play <id>' to play a board.")
}
