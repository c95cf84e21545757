package service

import (
	"context"
	"sync"
	"time"

	"github.com/wricardo/pushfight/game/engine"
)

// MaxBulkMoves caps the number of moves accepted in one BulkMove call.
const MaxBulkMoves = 50

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, layoutName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Move(ctx context.Context, sessionID string, req MoveRequest) (*MoveResult, error)
	BulkMove(ctx context.Context, sessionID string, moves []MoveRequest) (*BulkMoveResult, error)

	// Board queries
	GetBoard(ctx context.Context, sessionID string) (*BoardView, error)
	LegalMoves(ctx context.Context, sessionID string, at engine.Coord) (*LegalMoves, error)

	// Layouts
	ListLayouts(ctx context.Context) ([]*LayoutInfo, error)
	LoadLayout(ctx context.Context, layoutName string) (*engine.Layout, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, layout *engine.Layout) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles layout loading
type ConfigManager interface {
	LoadLayout(name string) (*engine.Layout, error)
	ListLayouts() ([]*LayoutInfo, error)
	GetDefault() *engine.Layout
}

// Session represents an active game with its own board.
type Session struct {
	ID             string
	Board          *engine.Board
	Layout         *engine.Layout
	CreatedAt      time.Time
	LastAccessedAt time.Time // guarded by mu once the session is shared

	mu sync.Mutex
}

// Touch marks the session as accessed now.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastAccessedAt = time.Now()
}

// LastAccessed returns the time of the most recent access.
func (s *Session) LastAccessed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.LastAccessedAt
}

// WithBoard runs fn with exclusive access to the session's board. The engine
// is single-threaded; every call into it goes through here.
func (s *Session) WithBoard(fn func(b *engine.Board)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.Board)
}
