// Package mcp exposes a headless puzzle board as MCP tools over stdio.
// Every tool call runs on the board's event loop.
package mcp

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vovakirdan/fifteen/internal/eventloop"
	"github.com/vovakirdan/fifteen/internal/puzzle"
	"github.com/vovakirdan/fifteen/internal/registry"
)

// pollInterval is how often a waiting solve checks the board.
const pollInterval = 50 * time.Millisecond

var directionEnum = []string{"up", "down", "left", "right"}

// Server owns a game and the MCP server that drives it.
type Server struct {
	loop      *eventloop.Loop
	game      *puzzle.Game
	solver    puzzle.Solver
	mcpServer *server.MCPServer
	logger    *log.Logger
}

// NewServer creates a board with opts and registers the puzzle tools.
// solver may be nil, in which case solve and hint report an error.
func NewServer(opts puzzle.Options, solver puzzle.Solver, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	loop := eventloop.New(0)
	game, err := puzzle.NewGame(loop, nil, solver, opts, logger)
	if err != nil {
		return nil, fmt.Errorf("mcp: cannot create game: %w", err)
	}

	s := &Server{
		loop:   loop,
		game:   game,
		solver: solver,
		logger: logger,
	}
	s.initMCPServer()
	return s, nil
}

// initMCPServer initializes the MCP server with all tools
func (s *Server) initMCPServer() {
	s.mcpServer = server.NewMCPServer(
		"Fifteen Puzzle",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Fifteen Puzzle - MCP Interface

Slide numbered tiles until they read 1, 2, 3, ... row by row with the
empty slot (shown as ".") in the bottom-right corner.

AVAILABLE TOOLS:
- board_state: Current grid, move count and solver status
- move: Slide one tile (up/down/left/right); the tile moves in that direction
- bulk_move: Several slides at once
- shuffle: Scramble the board
- reset: Put the board back in solved order
- load: Replace the board with a row-major grid (0 = empty)
- new_game: Switch board size by variant and shuffle
- list_variants: Available board sizes
- hint: Ask the solver for the move sequence without playing it
- solve: Solve and replay the answer on the board
- cancel: Stop a running replay

Solver moves name where the EMPTY slot goes, which is the opposite of the
tile direction used by move.`),
	)

	s.registerTools()
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "board_state",
		Description: "Get the current board and status",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleBoardState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Slide the tile next to the empty slot in a direction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        directionEnum,
					"description": "Direction the tile moves",
				},
			},
			Required: []string{"direction"},
		},
	}, s.handleMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: "Slide several tiles in sequence; stops at the first illegal move",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"moves": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": directionEnum,
					},
					"description": "Tile directions",
				},
			},
			Required: []string{"moves"},
		},
	}, s.handleBulkMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "shuffle",
		Description: "Scramble the board with random legal moves",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleShuffle)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "reset",
		Description: "Put the board back in solved order",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleReset)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "load",
		Description: "Replace the board with a row-major grid where 0 is the empty slot",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"tiles": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "integer"},
					"description": "Tile numbers in row-major order, one 0",
				},
			},
			Required: []string{"tiles"},
		},
	}, s.handleLoad)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Start a shuffled board of another size",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"variant": map[string]interface{}{
					"type":        "string",
					"description": "Variant ID from list_variants, e.g. \"15\"",
				},
			},
			Required: []string{"variant"},
		},
	}, s.handleNewGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_variants",
		Description: "List the available board sizes",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListVariants)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "hint",
		Description: "Solve the current board and return the empty-slot moves without playing them",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleHint)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "solve",
		Description: "Solve the board and replay the answer, one move per autoplay tick",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleSolve)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "cancel",
		Description: "Stop a running replay",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleCancel)
}

// GetMCPServer returns the underlying MCP server for serving
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// Serve runs the event loop and answers MCP requests on stdio until
// stdin closes.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := s.loop.Run(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("event loop stopped", "err", err)
		}
	}()
	s.logger.Info("serving MCP on stdio")
	return server.ServeStdio(s.mcpServer)
}

// onLoop runs op on the event loop and turns its outcome into a tool
// result. Operation errors are reported to the client, not returned.
func (s *Server) onLoop(ctx context.Context, op func() (string, error)) (*mcp.CallToolResult, error) {
	var (
		text  string
		opErr error
	)
	if err := s.loop.Call(ctx, func() { text, opErr = op() }); err != nil {
		return nil, err
	}
	if opErr != nil {
		return mcp.NewToolResultError(opErr.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// Tool handlers

func (s *Server) handleBoardState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.onLoop(ctx, func() (string, error) {
		return formatState(s.game), nil
	})
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	name, _ := args["direction"].(string)
	d, err := puzzle.ParseDirection(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.onLoop(ctx, func() (string, error) {
		if err := s.game.Move(d); err != nil {
			return "", fmt.Errorf("cannot move %s: %w", d, err)
		}
		return fmt.Sprintf("Moved %s\n\n%s", d, formatState(s.game)), nil
	})
}

func (s *Server) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	movesRaw, _ := args["moves"].([]interface{})

	seq := make([]puzzle.Direction, 0, len(movesRaw))
	for i, m := range movesRaw {
		name, _ := m.(string)
		d, err := puzzle.ParseDirection(name)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("move %d: %v", i+1, err)), nil
		}
		seq = append(seq, d)
	}

	return s.onLoop(ctx, func() (string, error) {
		for i, d := range seq {
			if err := s.game.Move(d); err != nil {
				return "", fmt.Errorf("move %d (%s) failed after %d moves: %w", i+1, d, i, err)
			}
		}
		return fmt.Sprintf("Made %d moves\n\n%s", len(seq), formatState(s.game)), nil
	})
}

func (s *Server) handleShuffle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.onLoop(ctx, func() (string, error) {
		if s.game.Busy() {
			return "", puzzle.ErrBusy
		}
		s.game.Shuffle()
		return formatState(s.game), nil
	})
}

func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.onLoop(ctx, func() (string, error) {
		if s.game.Busy() {
			return "", puzzle.ErrBusy
		}
		s.game.Reset()
		return formatState(s.game), nil
	})
}

func (s *Server) handleLoad(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	raw, _ := args["tiles"].([]interface{})
	grid := make([]byte, len(raw))
	for i, v := range raw {
		n, ok := v.(float64)
		if !ok || n < 0 || n > 255 || n != float64(int(n)) {
			return mcp.NewToolResultError(fmt.Sprintf("tile %d is not a small integer: %v", i, v)), nil
		}
		grid[i] = byte(n)
	}
	return s.onLoop(ctx, func() (string, error) {
		if err := s.game.Load(grid); err != nil {
			return "", err
		}
		return formatState(s.game), nil
	})
}

func (s *Server) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	id, _ := args["variant"].(string)
	v, err := registry.Lookup(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.onLoop(ctx, func() (string, error) {
		if s.game.Busy() {
			return "", puzzle.ErrBusy
		}
		s.game.Autoplay().Cancel()
		if err := s.game.Board().Resize(v.Width, v.Height); err != nil {
			return "", err
		}
		s.game.Reset()
		s.game.Shuffle()
		return fmt.Sprintf("New %s\n\n%s", v.Title, formatState(s.game)), nil
	})
}

func (s *Server) handleListVariants(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	b.WriteString("Available Variants:\n\n")
	for _, v := range registry.List() {
		fmt.Fprintf(&b, "- %s: %s (%dx%d)\n", v.ID, v.Title, v.Width, v.Height)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleHint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.solver == nil {
		return mcp.NewToolResultError(puzzle.ErrNoSolver.Error()), nil
	}
	var (
		grid  []byte
		width int
	)
	if err := s.loop.Call(ctx, func() {
		grid = s.game.Board().Encode()
		width = s.game.Board().Width()
	}); err != nil {
		return nil, err
	}

	timeout := s.game.Options().SolveTimeout
	solveCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	codes, err := s.solver.Solve(solveCtx, grid, width)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("no solution: %v", err)), nil
	}
	seq, err := puzzle.DecodeMoves(codes)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(seq) == 0 {
		return mcp.NewToolResultText("Already solved"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%d moves (empty slot): %s", len(seq), puzzle.FormatMoves(seq))), nil
}

func (s *Server) handleSolve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := s.onLoop(ctx, func() (string, error) {
		return "", s.game.RequestSolve()
	})
	if err != nil || res.IsError {
		return res, err
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		var (
			busy bool
			text string
		)
		if err := s.loop.Call(ctx, func() {
			busy = s.game.Busy()
			text = formatState(s.game)
		}); err != nil {
			return nil, err
		}
		if !busy {
			return mcp.NewToolResultText(text), nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *Server) handleCancel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.onLoop(ctx, func() (string, error) {
		if !s.game.Autoplay().Cancel() {
			return "Nothing to cancel\n\n" + formatState(s.game), nil
		}
		return "Replay stopped\n\n" + formatState(s.game), nil
	})
}

// formatState renders the board and its status for a tool result.
func formatState(g *puzzle.Game) string {
	st := g.Status()
	b := g.Board()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Board %dx%d, %d moves\n\n", b.Width(), b.Height(), st.Moves)
	sb.WriteString(b.String())
	sb.WriteString("\n\n")
	switch {
	case st.Busy:
		sb.WriteString("Status: solving\n")
	case st.Autoplay:
		fmt.Fprintf(&sb, "Status: replaying, %d moves left\n", st.Remaining)
	case st.Solved:
		sb.WriteString("Status: solved\n")
	default:
		sb.WriteString("Status: in play\n")
	}
	if st.Message != "" {
		fmt.Fprintf(&sb, "Message: %s\n", st.Message)
	}
	return sb.String()
}
