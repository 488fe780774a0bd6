package config

import (
	"fmt"
	"strings"
)

// ShuffleDepth represents a named shuffle depth.
type ShuffleDepth string

const (
	DepthShort  ShuffleDepth = "short"
	DepthMedium ShuffleDepth = "medium"
	DepthLong   ShuffleDepth = "long"
)

// Random moves per preset on a 4x4 board.
var baseShuffleMoves = map[ShuffleDepth]int{
	DepthShort:   12,
	DepthMedium: 40,
	DepthLong:   150,
}

// ParseShuffleDepth converts a config or flag value into a preset.
// An empty string means medium.
func ParseShuffleDepth(s string) (ShuffleDepth, error) {
	p := ShuffleDepth(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return DepthMedium, nil
	}
	if _, ok := baseShuffleMoves[p]; !ok {
		return DepthMedium, fmt.Errorf("config: unknown shuffle depth %q", s)
	}
	return p, nil
}

// ShuffleMovesFor returns the shuffle length for a preset, scaled by the
// number of cells relative to the classic 16.
func ShuffleMovesFor(preset ShuffleDepth, width, height int) int {
	base, ok := baseShuffleMoves[preset]
	if !ok {
		base = baseShuffleMoves[DepthMedium]
	}
	cells := width * height
	if cells <= 0 {
		return base
	}
	n := base * cells / 16
	if n < 1 {
		n = 1
	}
	return n
}

// ApplyShuffleDepth sets the shuffle depth and clears any
// explicit move count so the preset takes effect.
func ApplyShuffleDepth(cfg *FifteenConfig, preset ShuffleDepth) {
	cfg.Shuffle.Depth = string(preset)
	cfg.Shuffle.Moves = 0
}
