package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/wricardo/pushfight/game/config"
	"github.com/wricardo/pushfight/game/engine"
	"github.com/wricardo/pushfight/game/service"
	"github.com/wricardo/pushfight/game/session"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	configs, err := config.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}
	logger, _ := test.NewNullLogger()
	return NewServer(service.NewGameService(session.NewManager(), configs), logger)
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), name string, args map[string]interface{}) (string, bool) {
	t.Helper()
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}

	result, err := handler(context.Background(), request)
	if err != nil {
		t.Fatalf("%s failed: %v", name, err)
	}
	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}
	return text.Text, result.IsError
}

func newSession(t *testing.T, s *Server) string {
	t.Helper()
	sessions, err := s.games.ListSessions(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	before := len(sessions)

	callTool(t, s.handleNewGame, "new_game", map[string]interface{}{})

	sessions, _ = s.games.ListSessions(context.Background())
	if len(sessions) != before+1 {
		t.Fatalf("Expected a new session, have %d", len(sessions))
	}
	return sessions[len(sessions)-1].ID
}

func TestNewServer(t *testing.T) {
	s := newTestServer(t)
	if s.MCPServer() == nil {
		t.Fatal("Expected MCP server to be initialized")
	}

	// nil logger must not panic
	quiet := NewServer(s.games, nil)
	if quiet.log == nil {
		t.Error("Expected a fallback logger")
	}
}

func TestServer_handleNewGame(t *testing.T) {
	s := newTestServer(t)

	text, isErr := callTool(t, s.handleNewGame, "new_game", map[string]interface{}{})
	if isErr {
		t.Fatalf("Unexpected error: %s", text)
	}
	for _, want := range []string{"Created session:", "Layout: reference", "0  ###.pM..##"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in result, got:\n%s", want, text)
		}
	}

	text, isErr = callTool(t, s.handleNewGame, "new_game", map[string]interface{}{"layout": "nope"})
	if !isErr || !strings.Contains(text, "reference") {
		t.Errorf("Expected error listing available layouts, got: %s", text)
	}
}

func TestServer_handleTryMove(t *testing.T) {
	s := newTestServer(t)
	id := newSession(t, s)

	text, isErr := callTool(t, s.handleTryMove, "try_move", map[string]interface{}{
		"session_id": id,
		"from_row":   float64(0),
		"from_col":   float64(4),
		"to_row":     float64(0),
		"to_col":     float64(5),
	})
	if isErr {
		t.Fatalf("Unexpected error: %s", text)
	}
	if !strings.Contains(text, "✓ push") || !strings.Contains(text, "0  ###..aM.##") {
		t.Errorf("Expected applied push, got:\n%s", text)
	}

	text, _ = callTool(t, s.handleTryMove, "try_move", map[string]interface{}{
		"session_id": id,
		"from_row":   float64(0),
		"from_col":   float64(5),
		"to_row":     float64(0),
		"to_col":     float64(4),
	})
	if !strings.Contains(text, "rejected") || !strings.Contains(text, string(engine.ReasonAnchored)) {
		t.Errorf("Expected anchored piece to be rejected, got:\n%s", text)
	}
}

func TestServer_handleTryMove_BadArguments(t *testing.T) {
	s := newTestServer(t)
	id := newSession(t, s)

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"missing session", map[string]interface{}{}, "session_id"},
		{"missing coordinate", map[string]interface{}{"session_id": id, "from_row": float64(0)}, "from_col"},
		{"fractional coordinate", map[string]interface{}{"session_id": id, "from_row": 0.5, "from_col": float64(0), "to_row": float64(0), "to_col": float64(0)}, "integer"},
		{"unknown session", map[string]interface{}{"session_id": "zzzz", "from_row": float64(0), "from_col": float64(4), "to_row": float64(0), "to_col": float64(5)}, "session not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := callTool(t, s.handleTryMove, "try_move", tt.args)
			if !isErr {
				t.Fatalf("Expected error result, got: %s", text)
			}
			if !strings.Contains(text, tt.want) {
				t.Errorf("Expected %q in error, got: %s", tt.want, text)
			}
		})
	}
}

func TestServer_handleBulkMove(t *testing.T) {
	s := newTestServer(t)
	id := newSession(t, s)

	text, isErr := callTool(t, s.handleBulkMove, "bulk_move", map[string]interface{}{
		"session_id": id,
		"moves":      []interface{}{"2,7:1,8", "0,3:1,3", "0,4:0,5"},
	})
	if isErr {
		t.Fatalf("Unexpected error: %s", text)
	}
	if !strings.Contains(text, "Applied 2/3 moves (1 rejected)") {
		t.Errorf("Unexpected summary:\n%s", text)
	}

	text, isErr = callTool(t, s.handleBulkMove, "bulk_move", map[string]interface{}{
		"session_id": id,
		"moves":      []interface{}{"up"},
	})
	if !isErr {
		t.Errorf("Expected parse error, got: %s", text)
	}
}

func TestServer_handleLegalMoves(t *testing.T) {
	s := newTestServer(t)
	id := newSession(t, s)

	text, isErr := callTool(t, s.handleLegalMoves, "legal_moves", map[string]interface{}{
		"session_id": id,
		"row":        float64(1),
		"col":        float64(5),
	})
	if isErr {
		t.Fatalf("Unexpected error: %s", text)
	}
	if !strings.Contains(text, "light_pusher") || !strings.Contains(text, "- left (move to (1,4))") {
		t.Errorf("Unexpected legal moves:\n%s", text)
	}
}

func TestServer_SessionLifecycle(t *testing.T) {
	s := newTestServer(t)
	id := newSession(t, s)

	text, _ := callTool(t, s.handleListSessions, "list_sessions", map[string]interface{}{})
	if !strings.Contains(text, "Active Sessions (1)") || !strings.Contains(text, id) {
		t.Errorf("Unexpected session list:\n%s", text)
	}

	text, isErr := callTool(t, s.handleGetBoard, "get_board", map[string]interface{}{"session_id": id})
	if isErr || !strings.Contains(text, "Pieces: 10 (light 5, dark 5)") {
		t.Errorf("Unexpected board:\n%s", text)
	}

	if text, isErr := callTool(t, s.handleDeleteSession, "delete_session", map[string]interface{}{"session_id": id}); isErr {
		t.Fatalf("Delete failed: %s", text)
	}
	if _, isErr := callTool(t, s.handleGetBoard, "get_board", map[string]interface{}{"session_id": id}); !isErr {
		t.Error("Expected error after delete")
	}
}

func TestServer_handleListLayouts(t *testing.T) {
	s := newTestServer(t)
	text, _ := callTool(t, s.handleListLayouts, "list_layouts", map[string]interface{}{})
	if !strings.Contains(text, "• reference") || !strings.Contains(text, "Board: 10x4") {
		t.Errorf("Unexpected layouts:\n%s", text)
	}
}

func TestServer_handleGameRules(t *testing.T) {
	s := newTestServer(t)
	text, _ := callTool(t, s.handleGameRules, "game_rules", nil)

	for _, want := range []string{"LEGEND:", "Relocation:", "Push:", "PUSH LIMITS:", "Anchored pushers never move again."} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in rules", want)
		}
	}
}

func TestFormatBoard(t *testing.T) {
	got := formatBoard(&service.BoardView{
		Snapshot: engine.Snapshot{
			Name:       "tiny",
			Width:      3,
			Height:     2,
			Rows:       []string{"P.m", "#.."},
			PieceCount: 2,
		},
		LightCount: 1,
		DarkCount:  1,
	})
	want := "Board: tiny (3x2) | Pieces: 2 (light 1, dark 1)\n\n    012\n 0  P.m\n 1  #..\n"
	if got != want {
		t.Errorf("formatBoard mismatch:\ngot:\n%q\nwant:\n%q", got, want)
	}

	if formatBoard(nil) != "No board available" {
		t.Error("Expected placeholder for nil board")
	}
}
