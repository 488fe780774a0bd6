package config

import (
	_ "embed"
)

//go:embed defaults/fifteen.yaml
var defaultFifteenYAML []byte

// DefaultConfig returns the default puzzle configuration.
func DefaultConfig() FifteenConfig {
	return FifteenConfig{
		Board: BoardConfig{
			Width:  4,
			Height: 4,
		},
		Layout: LayoutConfig{
			Margin: 1,
		},
		Timing: TimingConfig{
			TransitionMS: 1000,
			TickMS:       5,
			AutoplayMS:   1200,
		},
		Solver: SolverConfig{
			TimeoutMS: 30000,
			MaxMoves:  80,
			Cache:     true,
			Database:  "~/.fifteen/fifteen.db",
		},
		Shuffle: ShuffleConfig{
			Moves: 0,
			Depth: string(DepthMedium),
		},
		Colors: ColorConfig{
			Background: "navy",
			Tile:       "tan",
			Caption:    "black",
			Border:     "white",
		},
	}
}
