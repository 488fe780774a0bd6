package solver

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fifteen/internal/storage"
)

// Store persists solutions and the solve history.
type Store interface {
	LookupSolution(grid []byte, width int) ([]byte, bool, error)
	SaveSolution(grid []byte, width int, moves []byte) error
	RecordSolve(rec storage.SolveRecord) (int64, error)
}

// Cached answers repeated positions from a Store and records every solve.
// Store failures are logged and never fail a solve.
type Cached struct {
	inner  Solver
	store  Store
	logger *log.Logger
	now    func() time.Time
}

// NewCached wraps inner with store.
func NewCached(inner Solver, store Store, logger *log.Logger) *Cached {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Cached{inner: inner, store: store, logger: logger, now: time.Now}
}

func (c *Cached) Solve(ctx context.Context, grid []byte, width int) ([]byte, error) {
	start := c.now()
	moves, ok, err := c.store.LookupSolution(grid, width)
	if err != nil {
		c.logger.Warn("solution lookup failed", "err", err)
	}
	if err == nil && ok {
		c.record(grid, width, moves, start, true, nil)
		c.logger.Debug("solution cache hit", "moves", len(moves))
		return moves, nil
	}

	moves, err = c.inner.Solve(ctx, grid, width)
	c.record(grid, width, moves, start, false, err)
	if err != nil {
		return nil, err
	}
	if err := c.store.SaveSolution(grid, width, moves); err != nil {
		c.logger.Warn("saving solution failed", "err", err)
	}
	return moves, nil
}

func (c *Cached) record(grid []byte, width int, moves []byte, start time.Time, hit bool, solveErr error) {
	rec := storage.SolveRecord{
		Grid:     append([]byte{}, grid...),
		Width:    width,
		Moves:    len(moves),
		Duration: c.now().Sub(start),
		Cached:   hit,
		Outcome:  outcome(solveErr),
	}
	if _, err := c.store.RecordSolve(rec); err != nil {
		c.logger.Warn("recording solve failed", "err", err)
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return storage.OutcomeSolved
	case errors.Is(err, ErrUnsolvable):
		return storage.OutcomeUnsolvable
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return storage.OutcomeTimeout
	}
	return storage.OutcomeFailed
}
