package puzzle

import (
	"fmt"
	"strings"
)

// Direction is one of the four move directions. The numeric values are the
// solver's move codes.
type Direction uint8

const (
	Right Direction = iota
	Down
	Left
	Up
)

// Delta returns the column/row offset of one step in the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Up:
		return 0, -1
	}
	return 0, 0
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d <= Up
}

func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	case Up:
		return "up"
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// ParseDirection accepts the direction names and their first letters.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right", "r":
		return Right, nil
	case "down", "d":
		return Down, nil
	case "left", "l":
		return Left, nil
	case "up", "u":
		return Up, nil
	}
	return 0, fmt.Errorf("puzzle: unknown direction %q", s)
}

// DecodeMoves converts solver move codes into directions.
// Each code says where the empty slot moves.
func DecodeMoves(codes []byte) ([]Direction, error) {
	seq := make([]Direction, len(codes))
	for i, c := range codes {
		d := Direction(c)
		if !d.Valid() {
			return nil, fmt.Errorf("puzzle: invalid move code %d at %d", c, i)
		}
		seq[i] = d
	}
	return seq, nil
}

// EncodeMoves is the inverse of DecodeMoves.
func EncodeMoves(seq []Direction) []byte {
	codes := make([]byte, len(seq))
	for i, d := range seq {
		codes[i] = byte(d)
	}
	return codes
}

// FormatMoves renders a sequence as a compact string like "RDLU".
func FormatMoves(seq []Direction) string {
	var sb strings.Builder
	for _, d := range seq {
		sb.WriteByte(strings.ToUpper(d.String())[0])
	}
	return sb.String()
}
