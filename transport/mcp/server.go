package mcp

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/wricardo/pushfight/game/engine"
	"github.com/wricardo/pushfight/game/service"
)

// Server exposes a GameService as MCP tools.
type Server struct {
	games     service.GameService
	log       logrus.FieldLogger
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server backed by games. A nil logger discards
// tool logs.
func NewServer(games service.GameService, log logrus.FieldLogger) *Server {
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	s := &Server{
		games: games,
		log:   log,
	}

	s.initMCPServer()
	return s
}

// initMCPServer initializes the MCP server with all tools
func (s *Server) initMCPServer() {
	s.mcpServer = server.NewMCPServer(
		"Push Fight",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Push Fight - MCP Interface

Each session holds one board. Pieces slide through empty cells or pushers shove
a line of pieces one cell; the pusher is then anchored for good.

AVAILABLE TOOLS:
- new_game: Create a session from a layout
- list_sessions: List active sessions
- get_board: Show the board of a session
- try_move: Move or push from one cell to another
- bulk_move: Several moves in order ("r1,c1:r2,c2" strings)
- legal_moves: Relocations and pushes available to a piece
- list_layouts: List available layouts
- delete_session: End a session
- game_rules: Full rules and board legend`),
	)

	s.registerTools()
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func coordProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "new_game",
		Description: "Create a new game session with optional layout selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"layout": map[string]interface{}{
					"type":        "string",
					"description": "Layout ID to use (optional, defaults to the configured layout)",
				},
			},
		},
	}, s.handleNewGame)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListSessions)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "get_board",
		Description: "Get the current board of a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleGetBoard)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "try_move",
		Description: "Move the piece at (from_row, from_col) to (to_row, to_col). Slides through empty cells when possible, otherwise pushes one cell toward the target.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"from_row":   coordProperty("Row of the piece to move"),
				"from_col":   coordProperty("Column of the piece to move"),
				"to_row":     coordProperty("Destination row"),
				"to_col":     coordProperty("Destination column"),
			},
			Required: []string{"session_id", "from_row", "from_col", "to_row", "to_col"},
		},
	}, s.handleTryMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: fmt.Sprintf("Execute up to %d moves in sequence. Rejected moves are reported and skipped.", service.MaxBulkMoves),
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"moves": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
					},
					"description": "Moves written as \"r1,c1:r2,c2\"",
				},
			},
			Required: []string{"session_id", "moves"},
		},
	}, s.handleBulkMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "legal_moves",
		Description: "List the cells a piece can slide to and the pushes it can make",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"row":        coordProperty("Row of the piece"),
				"col":        coordProperty("Column of the piece"),
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, s.handleLegalMoves)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_layouts",
		Description: "List available board layouts",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListLayouts)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_session",
		Description: "Delete a game session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, s.handleDeleteSession)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_rules",
		Description: "Get the rules of the game and the board legend",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleGameRules)
}

// MCPServer returns the underlying MCP server for serving
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves the tools over stdin/stdout until the input closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// Argument helpers

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

func stringArg(args map[string]interface{}, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("missing required argument %q", key)
	}
	return v, nil
}

// intArg accepts JSON numbers, which arrive as float64.
func intArg(args map[string]interface{}, key string) (int, error) {
	switch v := args[key].(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("argument %q must be an integer, got %v", key, v)
		}
		return int(v), nil
	case int:
		return v, nil
	case nil:
		return 0, fmt.Errorf("missing required argument %q", key)
	default:
		return 0, fmt.Errorf("argument %q must be an integer, got %T", key, v)
	}
}

func coordArgs(args map[string]interface{}, rowKey, colKey string) (engine.Coord, error) {
	row, err := intArg(args, rowKey)
	if err != nil {
		return engine.Coord{}, err
	}
	col, err := intArg(args, colKey)
	if err != nil {
		return engine.Coord{}, err
	}
	return engine.Coord{Row: row, Col: col}, nil
}

// Tool handlers

func (s *Server) handleNewGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	layout, _ := arguments(request)["layout"].(string)

	info, err := s.games.CreateSession(ctx, layout)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.log.WithFields(logrus.Fields{"session": info.ID, "layout": info.LayoutName}).Info("session created")

	result := fmt.Sprintf("Created session: %s\nLayout: %s\n\n%s", info.ID, info.LayoutName, formatBoard(info.Board))
	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := s.games.ListSessions(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", len(sessions))
	for _, sess := range sessions {
		pieces := 0
		if sess.Board != nil {
			pieces = sess.Board.PieceCount
		}
		fmt.Fprintf(&b, "- %s (Layout: %s, Pieces: %d, Created: %s)\n",
			sess.ID, sess.LayoutName, pieces, sess.CreatedAt.Format("15:04:05"))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleGetBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := stringArg(arguments(request), "session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	board, err := s.games.GetBoard(ctx, sessionID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatBoard(board)), nil
}

func (s *Server) handleTryMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, err := stringArg(args, "session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	from, err := coordArgs(args, "from_row", "from_col")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to, err := coordArgs(args, "to_row", "to_col")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.games.Move(ctx, sessionID, service.MoveRequest{From: from, To: to})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.log.WithFields(logrus.Fields{"session": sessionID, "kind": result.Kind.String()}).Debug("move handled")

	return mcp.NewToolResultText(formatMoveResult(result)), nil
}

func (s *Server) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, err := stringArg(args, "session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	movesRaw, _ := args["moves"].([]interface{})
	if len(movesRaw) == 0 {
		return mcp.NewToolResultError("moves must be a non-empty array"), nil
	}

	moves := make([]service.MoveRequest, 0, len(movesRaw))
	for i, m := range movesRaw {
		text, ok := m.(string)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("move %d must be a string", i+1)), nil
		}
		req, err := service.ParseMove(text)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		moves = append(moves, req)
	}

	result, err := s.games.BulkMove(ctx, sessionID, moves)
	if err != nil {
		if result != nil {
			return mcp.NewToolResultError(err.Error() + "\n\n" + formatBulkMoveResult(sessionID, result)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatBulkMoveResult(sessionID, result)), nil
}

func (s *Server) handleLegalMoves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, err := stringArg(args, "session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	at, err := coordArgs(args, "row", "col")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	moves, err := s.games.LegalMoves(ctx, sessionID, at)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatLegalMoves(moves)), nil
}

func (s *Server) handleListLayouts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	layouts, err := s.games.ListLayouts(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Layouts:\n\n")
	for _, l := range layouts {
		fmt.Fprintf(&b, "• %s (%s)\n  %s\n  Board: %dx%d\n\n", l.LayoutID, l.Name, l.Description, l.Width, l.Height)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleDeleteSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := stringArg(arguments(request), "session_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.games.DeleteSession(ctx, sessionID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.log.WithField("session", sessionID).Info("session deleted")
	return mcp.NewToolResultText(fmt.Sprintf("Deleted session: %s", sessionID)), nil
}

func (s *Server) handleGameRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(rules), nil
}

const rules = `Push Fight - Rules

BOARD:
Rows are numbered from 0 at the top, columns from 0 at the left.
Nothing can move outside the board.

LEGEND:
  .  empty cell
  #  void (off the playing surface)
  P  light pusher      p  dark pusher
  M  light mover       m  dark mover
  A  anchored light    a  anchored dark

MOVES:
try_move takes a start cell and an end cell.
• Relocation: any unanchored piece may jump to a cell it can reach through
  orthogonally connected empty cells. The path is only checked, not walked.
• Push: when no relocation applies, a pusher whose end cell is orthogonally
  adjacent pushes in that direction. The line of pieces ahead of it moves one
  cell. The pusher becomes anchored in the cell next to where it stood.
• Anything else is ignored and the board is left unchanged.

PUSH LIMITS:
• There must be at least one piece directly in front of the pusher.
• The line must end on an empty or void cell inside the board.
• An anchored pusher anywhere in the line blocks the push.
• A piece shoved onto a void cell is lost.

Anchored pushers never move again.`
