// Package config provides YAML-based puzzle configuration loading and
// shuffle depth presets.
package config

// FifteenConfig contains all configuration for the puzzle.
type FifteenConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Layout  LayoutConfig  `yaml:"layout"`
	Timing  TimingConfig  `yaml:"timing"`
	Solver  SolverConfig  `yaml:"solver"`
	Shuffle ShuffleConfig `yaml:"shuffle"`
	Colors  ColorConfig   `yaml:"colors"`
}

// BoardConfig defines the grid size used when no variant is chosen.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// LayoutConfig defines the inset between the container edge and the grid, in cells.
type LayoutConfig struct {
	Margin int `yaml:"margin"`
}

// TimingConfig defines animation and autoplay timing in milliseconds.
type TimingConfig struct {
	TransitionMS int `yaml:"transition_ms"` // Slide animation length
	TickMS       int `yaml:"tick_ms"`       // Repaint period while sliding
	AutoplayMS   int `yaml:"autoplay_ms"`   // Delay between solver moves
}

// SolverConfig defines solver limits and caching.
type SolverConfig struct {
	TimeoutMS int    `yaml:"timeout_ms"`
	MaxMoves  int    `yaml:"max_moves"`
	Cache     bool   `yaml:"cache"`    // Store solutions in the database
	Database  string `yaml:"database"` // Path to the SQLite file, ~ allowed
}

// ShuffleConfig defines how scrambled a new board is.
type ShuffleConfig struct {
	Moves int    `yaml:"moves"` // Random moves; overrides depth when > 0
	Depth string `yaml:"depth"` // "short", "medium", or "long"
}

// ColorConfig names the colors used to draw the board.
type ColorConfig struct {
	Background string `yaml:"background"`
	Tile       string `yaml:"tile"`
	Caption    string `yaml:"caption"`
	Border     string `yaml:"border"`
}
