package puzzle

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrOutOfRange   = errors.New("puzzle: coordinate out of range")
	ErrOccupiedSlot = errors.New("puzzle: slot is occupied")
	ErrIllegalMove  = errors.New("puzzle: target slot is not empty")
	ErrForeignTile  = errors.New("puzzle: tile belongs to another board")
	ErrBusy         = errors.New("puzzle: solve in progress")
	ErrNoSolver     = errors.New("puzzle: no solver configured")
)

// OutOfRangeError reports a coordinate outside the board.
type OutOfRangeError struct {
	X, Y          int
	Width, Height int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("puzzle: slot (%d,%d) outside %dx%d board", e.X, e.Y, e.Width, e.Height)
}

func (e *OutOfRangeError) Is(target error) bool { return target == ErrOutOfRange }

// OccupiedSlotError reports an attempt to create a tile on a non-empty slot.
type OccupiedSlotError struct {
	X, Y int
}

func (e *OccupiedSlotError) Error() string {
	return fmt.Sprintf("puzzle: slot (%d,%d) already holds a tile", e.X, e.Y)
}

func (e *OccupiedSlotError) Is(target error) bool { return target == ErrOccupiedSlot }

// IllegalMoveError reports a shift onto an occupied slot when the move
// required an empty target.
type IllegalMoveError struct {
	From, To Slot
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("puzzle: cannot shift (%d,%d) to (%d,%d): target not empty",
		e.From.X, e.From.Y, e.To.X, e.To.Y)
}

func (e *IllegalMoveError) Is(target error) bool { return target == ErrIllegalMove }
