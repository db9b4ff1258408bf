package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-ladders/internal/games/ladders/engine"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Print the snakes and ladders of the board",
	Long: `Print the fixed jump tables of the 100-square board, plus any
warnings from validating it.

Example:
  ladders board`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func runBoard(_ *cobra.Command, _ []string) error {
	board := engine.DefaultBoard()
	warnings, err := board.Validate()
	if err != nil {
		return err
	}

	fmt.Printf("Board: %d squares\n", board.Size)
	printJumps("Snakes", "Head", "Tail", board.Snakes)
	printJumps("Ladders", "Bottom", "Top", board.Ladders)

	if len(warnings) > 0 {
		fmt.Println()
		fmt.Println("Warnings:")
		for _, w := range warnings {
			fmt.Printf("  %s\n", w)
		}
	}
	return nil
}

func printJumps(title, from, to string, jumps map[int]int) {
	fmt.Println()
	fmt.Printf("%s (%d):\n", title, len(jumps))
	fmt.Printf("  %-6s  %s\n", from, to)
	for _, sq := range slices.Sorted(maps.Keys(jumps)) {
		fmt.Printf("  %-6d  %d\n", sq, jumps[sq])
	}
}
