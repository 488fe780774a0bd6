package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/fifteen/internal/core"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

// isolate points the home and working directories at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded config = %+v\nexpected %+v", cfg, DefaultConfig())
	}
}

func TestLoadCustomPartial(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "board:\n  width: 3\n  height: 3\ntiming:\n  autoplay_ms: 300\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Board.Width != 3 || cfg.Board.Height != 3 {
		t.Errorf("board = %+v, expected 3x3", cfg.Board)
	}
	if cfg.Timing.AutoplayMS != 300 {
		t.Errorf("autoplay_ms = %d, expected 300", cfg.Timing.AutoplayMS)
	}
	// Untouched keys keep their defaults.
	if cfg.Timing.TransitionMS != 1000 || cfg.Colors.Tile != "tan" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	dir := isolate(t)

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "board: [not, a, map\n")
	if _, err := Load(bad); err == nil {
		t.Error("malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	writeFile(t, invalid, "timing:\n  tick_ms: 0\n")
	if _, err := Load(invalid); err == nil {
		t.Error("zero tick should fail validation")
	}
}

func TestLoadSearchOrder(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "configs", configFile), "board:\n  width: 5\n  height: 5\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Board.Width != 5 {
		t.Errorf("local config not used, width = %d", cfg.Board.Width)
	}

	writeFile(t, filepath.Join(dir, ".fifteen", "configs", configFile), "board:\n  width: 6\n  height: 2\n")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Board.Width != 6 || cfg.Board.Height != 2 {
		t.Errorf("user config should win over local, board = %+v", cfg.Board)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FifteenConfig)
	}{
		{"zero width", func(c *FifteenConfig) { c.Board.Width = 0 }},
		{"too many cells", func(c *FifteenConfig) { c.Board.Width, c.Board.Height = 20, 20 }},
		{"negative margin", func(c *FifteenConfig) { c.Layout.Margin = -1 }},
		{"zero transition", func(c *FifteenConfig) { c.Timing.TransitionMS = 0 }},
		{"zero autoplay", func(c *FifteenConfig) { c.Timing.AutoplayMS = 0 }},
		{"zero timeout", func(c *FifteenConfig) { c.Solver.TimeoutMS = 0 }},
		{"zero max moves", func(c *FifteenConfig) { c.Solver.MaxMoves = 0 }},
		{"negative shuffle", func(c *FifteenConfig) { c.Shuffle.Moves = -3 }},
		{"bad shuffle depth", func(c *FifteenConfig) { c.Shuffle.Depth = "endless" }},
		{"bad color", func(c *FifteenConfig) { c.Colors.Tile = "plaid" }},
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Board.Width, cfg.Board.Height = 3, 3
	cfg.Timing.TransitionMS = 250
	cfg.Colors.Tile = "bright-yellow"

	opts, err := cfg.Options(42)
	if err != nil {
		t.Fatalf("Options() failed: %v", err)
	}
	if opts.Width != 3 || opts.Height != 3 || opts.Margin != 1 {
		t.Errorf("geometry = %dx%d margin %d", opts.Width, opts.Height, opts.Margin)
	}
	if opts.TransitionDuration != 250*time.Millisecond {
		t.Errorf("transition = %v", opts.TransitionDuration)
	}
	if opts.AnimationTick != 5*time.Millisecond || opts.AutoplayInterval != 1200*time.Millisecond {
		t.Errorf("tick = %v, autoplay = %v", opts.AnimationTick, opts.AutoplayInterval)
	}
	if opts.SolveTimeout != 30*time.Second {
		t.Errorf("solve timeout = %v", opts.SolveTimeout)
	}
	if opts.Seed != 42 {
		t.Errorf("seed = %d", opts.Seed)
	}
	if opts.Style.Tile != core.ColorBrightYellow || opts.Style.Background != core.ColorNavy {
		t.Errorf("style = %+v", opts.Style)
	}
	if want := ShuffleMovesFor(DepthMedium, 3, 3); opts.ShuffleMoves != want {
		t.Errorf("shuffle moves = %d, expected %d", opts.ShuffleMoves, want)
	}

	cfg.Board.Width = 0
	if _, err := cfg.Options(0); err == nil {
		t.Error("Options() should reject an invalid config")
	}
}

func TestShuffleDepth(t *testing.T) {
	tests := []struct {
		in   string
		want ShuffleDepth
		ok   bool
	}{
		{"", DepthMedium, true},
		{"short", DepthShort, true},
		{" LONG ", DepthLong, true},
		{"fixed", DepthMedium, false},
	}
	for _, tt := range tests {
		got, err := ParseShuffleDepth(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseShuffleDepth(%q) = (%q, %v)", tt.in, got, err)
		}
	}

	if ShuffleMovesFor(DepthShort, 4, 4) >= ShuffleMovesFor(DepthLong, 4, 4) {
		t.Error("short should shuffle less than long")
	}
	if ShuffleMovesFor(DepthMedium, 4, 4) != 40 {
		t.Errorf("medium 4x4 = %d, expected 40", ShuffleMovesFor(DepthMedium, 4, 4))
	}
	if ShuffleMovesFor(DepthShort, 1, 1) != 1 {
		t.Error("shuffle length should never drop below one")
	}

	cfg := DefaultConfig()
	cfg.Shuffle.Moves = 99
	ApplyShuffleDepth(&cfg, DepthLong)
	if cfg.ShuffleMoves() != 150 {
		t.Errorf("preset should override explicit moves, got %d", cfg.ShuffleMoves())
	}
}
