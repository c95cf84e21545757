package service

import (
	"time"

	"github.com/wricardo/pushfight/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string     `json:"id"`
	LayoutName     string     `json:"layout_name"`
	CreatedAt      time.Time  `json:"created_at"`
	LastAccessedAt time.Time  `json:"last_accessed_at"`
	Board          *BoardView `json:"board"`
}

// BoardView is the serializable board state handed to renderers.
type BoardView struct {
	engine.Snapshot
	LightCount int `json:"light_count"`
	DarkCount  int `json:"dark_count"`
}

// MoveRequest is a proposed move from one cell to another.
type MoveRequest struct {
	From engine.Coord `json:"from"`
	To   engine.Coord `json:"to"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Kind         engine.MoveKind     `json:"kind"`
	Applied      bool                `json:"applied"`
	From         engine.Coord        `json:"from"`
	To           engine.Coord        `json:"to"`
	Message      string              `json:"message"`
	PiecesBefore int                 `json:"pieces_before"`
	PiecesAfter  int                 `json:"pieces_after"`
	PieceLost    bool                `json:"piece_lost,omitempty"`
	Diagnostics  []engine.Diagnostic `json:"diagnostics,omitempty"`
	Board        *BoardView          `json:"board"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	RequestedMoves int           `json:"requested_moves"`
	MovesApplied   int           `json:"moves_applied"`
	MovesRejected  int           `json:"moves_rejected"`
	Truncated      bool          `json:"truncated,omitempty"`
	Limit          int           `json:"limit,omitempty"`
	Results        []*MoveResult `json:"results"`
	Board          *BoardView    `json:"board"`
}

// PushOption is one legal push for a pusher.
type PushOption struct {
	Direction string       `json:"direction"`
	Target    engine.Coord `json:"target"` // the cell to pass as the move's end
}

// LegalMoves lists what the piece on a cell can do.
type LegalMoves struct {
	At          engine.Coord   `json:"at"`
	Cell        string         `json:"cell"`
	Side        string         `json:"side,omitempty"`
	Relocations []engine.Coord `json:"relocations"`
	Pushes      []PushOption   `json:"pushes"`
}

// LayoutInfo provides information about an available layout
type LayoutInfo struct {
	Filename    string `json:"filename,omitempty"`
	LayoutID    string `json:"layout_id"` // The identifier to use for session creation
	Name        string `json:"name"`
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}
