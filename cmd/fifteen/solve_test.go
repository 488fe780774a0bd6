package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/fifteen/internal/config"
)

func TestParseTiles(t *testing.T) {
	tests := []struct {
		in      string
		want    []byte
		wantErr bool
	}{
		{"1,2,3,0", []byte{1, 2, 3, 0}, false},
		{"1 2  3\t0", []byte{1, 2, 3, 0}, false},
		{"1, 2, 3, 0", []byte{1, 2, 3, 0}, false},
		{"", nil, true},
		{"1,x,3", nil, true},
		{"1,-2", nil, true},
		{"1,256", nil, true},
	}
	for _, tt := range tests {
		got, err := parseTiles(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseTiles(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !bytes.Equal(got, tt.want) {
			t.Errorf("parseTiles(%q) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}

func TestSquareWidth(t *testing.T) {
	for n, want := range map[int]int{4: 2, 9: 3, 16: 4, 25: 5} {
		got, err := squareWidth(n)
		if err != nil || got != want {
			t.Errorf("squareWidth(%d) = %d, %v", n, got, err)
		}
	}
	if _, err := squareWidth(6); err == nil {
		t.Error("6 cells should need an explicit width")
	}
}

func TestConfigVariant(t *testing.T) {
	cfg := config.DefaultConfig()
	if v := configVariant(cfg); v.ID != "15" {
		t.Errorf("4x4 config maps to %q, expected 15", v.ID)
	}
	cfg.Board.Width, cfg.Board.Height = 3, 2
	v := configVariant(cfg)
	if v.ID != "custom" || v.Width != 3 || v.Height != 2 {
		t.Errorf("3x2 config maps to %+v", v)
	}
}

func TestSettingsForVariant(t *testing.T) {
	cfg := config.DefaultConfig()
	v := configVariant(cfg)
	v.Width, v.Height = 3, 3
	s, err := settingsFor(cfg, v, nil, newLogger(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("settingsFor() failed: %v", err)
	}
	if s.Options.Width != 3 || s.Options.Height != 3 {
		t.Errorf("options sized %dx%d", s.Options.Width, s.Options.Height)
	}
	if want := config.ShuffleMovesFor(config.DepthMedium, 3, 3); s.Options.ShuffleMoves != want {
		t.Errorf("shuffle moves = %d, expected %d", s.Options.ShuffleMoves, want)
	}
	if !s.Shuffle {
		t.Error("boards should start shuffled")
	}
}

func TestRunSolveReturnsErrors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	oldDB, oldWidth := flagDBPath, flagSolveWidth
	t.Cleanup(func() { flagDBPath, flagSolveWidth = oldDB, oldWidth })
	flagDBPath = filepath.Join(t.TempDir(), "fifteen.db")
	flagSolveWidth = 0

	if err := runSolve(nil, []string{"1,2,3,4,5,6,7,0,8"}); err != nil {
		t.Errorf("solvable position: %v", err)
	}

	err := runSolve(nil, []string{"1,2,3,4,5,6,8,7,0"})
	if err == nil || !strings.Contains(err.Error(), "cannot be solved") {
		t.Errorf("unsolvable position error = %v", err)
	}

	if err := runSolve(nil, []string{"1,2,3"}); err == nil {
		t.Error("non-square tile count should fail")
	}
}
