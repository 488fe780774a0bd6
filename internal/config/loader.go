package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/fifteen/internal/core"
	"github.com/vovakirdan/fifteen/internal/puzzle"
)

const configFile = "fifteen.yaml"

// MaxCells is the largest board the tile encoding can describe.
const MaxCells = 256

// Load loads the puzzle configuration.
// Search order: customPath -> ~/.fifteen/configs/fifteen.yaml -> ./configs/fifteen.yaml -> embedded default
// Files are decoded over the defaults, so a partial file only overrides
// the keys it names.
func Load(customPath string) (FifteenConfig, error) {
	cfg := DefaultConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, cfg.Validate()
			}
			cfg = DefaultConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, cfg.Validate()
		}
		cfg = DefaultConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultFifteenYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fifteen", "configs", filename)
}

// Validate reports every setting that cannot drive a game.
func (c FifteenConfig) Validate() error {
	var errs []error
	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		errs = append(errs, fmt.Errorf("board size %dx%d must be positive", c.Board.Width, c.Board.Height))
	} else if c.Board.Width*c.Board.Height > MaxCells {
		errs = append(errs, fmt.Errorf("board size %dx%d exceeds %d cells", c.Board.Width, c.Board.Height, MaxCells))
	}
	if c.Layout.Margin < 0 {
		errs = append(errs, fmt.Errorf("layout margin %d is negative", c.Layout.Margin))
	}
	if c.Timing.TransitionMS <= 0 {
		errs = append(errs, errors.New("timing.transition_ms must be positive"))
	}
	if c.Timing.TickMS <= 0 {
		errs = append(errs, errors.New("timing.tick_ms must be positive"))
	}
	if c.Timing.AutoplayMS <= 0 {
		errs = append(errs, errors.New("timing.autoplay_ms must be positive"))
	}
	if c.Solver.TimeoutMS <= 0 {
		errs = append(errs, errors.New("solver.timeout_ms must be positive"))
	}
	if c.Solver.MaxMoves <= 0 {
		errs = append(errs, errors.New("solver.max_moves must be positive"))
	}
	if c.Shuffle.Moves < 0 {
		errs = append(errs, fmt.Errorf("shuffle.moves %d is negative", c.Shuffle.Moves))
	}
	if _, err := ParseShuffleDepth(c.Shuffle.Depth); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Style(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid settings: %w", errors.Join(errs...))
	}
	return nil
}

// Style resolves the configured color names.
func (c FifteenConfig) Style() (puzzle.Style, error) {
	var s puzzle.Style
	fields := []struct {
		name string
		dst  *core.Color
	}{
		{c.Colors.Background, &s.Background},
		{c.Colors.Tile, &s.Tile},
		{c.Colors.Caption, &s.Caption},
		{c.Colors.Border, &s.Border},
	}
	for _, f := range fields {
		col, err := core.ParseColor(f.name)
		if err != nil {
			return s, fmt.Errorf("colors: %w", err)
		}
		*f.dst = col
	}
	return s, nil
}

// ShuffleMoves returns the shuffle length for the configured board.
func (c FifteenConfig) ShuffleMoves() int {
	if c.Shuffle.Moves > 0 {
		return c.Shuffle.Moves
	}
	preset, err := ParseShuffleDepth(c.Shuffle.Depth)
	if err != nil {
		preset = DepthMedium
	}
	return ShuffleMovesFor(preset, c.Board.Width, c.Board.Height)
}

// SolveTimeout returns the solver deadline.
func (c FifteenConfig) SolveTimeout() time.Duration {
	return ms(c.Solver.TimeoutMS)
}

// Options converts the configuration into game options.
func (c FifteenConfig) Options(seed int64) (puzzle.Options, error) {
	if err := c.Validate(); err != nil {
		return puzzle.Options{}, err
	}
	style, _ := c.Style()
	opts := puzzle.DefaultOptions()
	opts.Width = c.Board.Width
	opts.Height = c.Board.Height
	opts.Margin = c.Layout.Margin
	opts.TransitionDuration = ms(c.Timing.TransitionMS)
	opts.AnimationTick = ms(c.Timing.TickMS)
	opts.AutoplayInterval = ms(c.Timing.AutoplayMS)
	opts.SolveTimeout = c.SolveTimeout()
	opts.ShuffleMoves = c.ShuffleMoves()
	opts.Seed = seed
	opts.Style = style
	return opts, nil
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
