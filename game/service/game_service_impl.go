package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wricardo/pushfight/game/diag"
	"github.com/wricardo/pushfight/game/engine"
)

// ErrLayoutUnavailable is returned when a session is requested for a layout
// the config manager cannot provide.
var ErrLayoutUnavailable = errors.New("layout unavailable")

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// CreateSession creates a new game session. An empty layout name uses the
// default layout.
func (s *gameServiceImpl) CreateSession(ctx context.Context, layoutName string) (*SessionInfo, error) {
	var layout *engine.Layout
	if layoutName != "" {
		var err error
		layout, err = s.configs.LoadLayout(layoutName)
		if err != nil {
			// Provide helpful error message with available options
			if available, listErr := s.configs.ListLayouts(); listErr == nil && len(available) > 0 {
				var ids []string
				for _, l := range available {
					ids = append(ids, l.LayoutID)
				}
				return nil, fmt.Errorf("%w: '%s' (%v). Available layouts: %v", ErrLayoutUnavailable, layoutName, err, ids)
			}
			return nil, fmt.Errorf("%w: '%s': %v", ErrLayoutUnavailable, layoutName, err)
		}
	} else {
		layout = s.configs.GetDefault()
	}

	// Let session manager generate the ID
	sess, err := s.sessions.Create("", layout)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return sessionInfo(sess), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(sessionID)
}

// Move runs the move dispatcher for one session and reports what happened.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID string, req MoveRequest) (*MoveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	var result *MoveResult
	sess.WithBoard(func(b *engine.Board) {
		result = applyMove(b, req)
		result.Board = boardView(b)
	})
	return result, nil
}

// BulkMove applies moves in order. Rejected moves do not stop the sequence.
// If ctx is cancelled partway, the moves applied so far are returned with the
// error.
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []MoveRequest) (*BulkMoveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Results:        make([]*MoveResult, 0, len(moves)),
	}

	// Limit moves to prevent abuse
	if len(moves) > MaxBulkMoves {
		result.Truncated = true
		result.Limit = MaxBulkMoves
		moves = moves[:MaxBulkMoves]
	}

	var ctxErr error
	sess.WithBoard(func(b *engine.Board) {
		for _, req := range moves {
			if ctxErr = ctx.Err(); ctxErr != nil {
				break
			}
			mr := applyMove(b, req)
			if mr.Applied {
				result.MovesApplied++
			} else {
				result.MovesRejected++
			}
			result.Results = append(result.Results, mr)
		}
		result.Board = boardView(b)
	})
	if ctxErr != nil {
		return result, ctxErr
	}
	return result, nil
}

// GetBoard returns the current board of a session.
func (s *gameServiceImpl) GetBoard(ctx context.Context, sessionID string) (*BoardView, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	var view *BoardView
	sess.WithBoard(func(b *engine.Board) {
		view = boardView(b)
	})
	return view, nil
}

// LegalMoves lists the relocations and pushes available to the piece at a cell.
func (s *gameServiceImpl) LegalMoves(ctx context.Context, sessionID string, at engine.Coord) (*LegalMoves, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	var (
		moves *LegalMoves
		inErr error
	)
	sess.WithBoard(func(b *engine.Board) {
		cell, ok := b.At(at.Row, at.Col)
		if !ok {
			inErr = fmt.Errorf("cell %s is outside the %dx%d board", at, b.Width(), b.Height())
			return
		}

		moves = &LegalMoves{
			At:          at,
			Cell:        cell.String(),
			Relocations: b.Reachable(at),
			Pushes:      []PushOption{},
		}
		if side, ok := cell.Side(); ok {
			moves.Side = side.String()
		}
		if moves.Relocations == nil {
			moves.Relocations = []engine.Coord{}
		}
		for _, d := range b.PushDirections(at) {
			moves.Pushes = append(moves.Pushes, PushOption{Direction: d.String(), Target: at.Add(d)})
		}
	})
	if inErr != nil {
		return nil, inErr
	}
	return moves, nil
}

// ListLayouts returns the available layouts
func (s *gameServiceImpl) ListLayouts(ctx context.Context) ([]*LayoutInfo, error) {
	return s.configs.ListLayouts()
}

// LoadLayout returns a layout by name
func (s *gameServiceImpl) LoadLayout(ctx context.Context, layoutName string) (*engine.Layout, error) {
	return s.configs.LoadLayout(layoutName)
}

func (s *gameServiceImpl) session(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// applyMove runs the dispatcher with a recorder attached next to the board's
// own sink, so the caller sees the diagnostics of this move only.
func applyMove(b *engine.Board, req MoveRequest) *MoveResult {
	rec := &diag.Recorder{}
	base := b.Sink()
	b.SetSink(diag.Tee(base, rec))
	defer b.SetSink(base)

	piece, _ := b.At(req.From.Row, req.From.Col)
	result := &MoveResult{
		From:         req.From,
		To:           req.To,
		PiecesBefore: b.PieceCount(),
	}
	result.Kind = b.Apply(req.From, req.To)
	result.Applied = result.Kind != engine.MoveIllegal
	result.PiecesAfter = b.PieceCount()
	result.Diagnostics = rec.Diagnostics()

	var rejections []string
	for _, d := range result.Diagnostics {
		switch {
		case d.Reason == engine.ReasonPieceLost:
			result.PieceLost = true
		case d.Reason == engine.ReasonRejected:
		case d.Reason.IsRejection():
			rejections = append(rejections, d.Message)
		}
	}

	switch result.Kind {
	case engine.MoveRelocate:
		result.Message = fmt.Sprintf("moved %s %s -> %s", piece, req.From, req.To)
	case engine.MovePush:
		result.Message = fmt.Sprintf("%s pushed %s from %s and is anchored at %s", piece, req.To.Sub(req.From), req.From, req.To)
		if result.PieceLost {
			result.Message += "; a piece was pushed into the void"
		}
	default:
		result.Message = "illegal move: " + strings.Join(rejections, "; ")
	}
	return result
}

func boardView(b *engine.Board) *BoardView {
	return &BoardView{
		Snapshot:   *b.Snapshot(),
		LightCount: b.SideCount(engine.Light),
		DarkCount:  b.SideCount(engine.Dark),
	}
}

func sessionInfo(sess *Session) *SessionInfo {
	info := &SessionInfo{
		ID:         sess.ID,
		LayoutName: sess.Layout.Name,
		CreatedAt:  sess.CreatedAt,
	}
	sess.WithBoard(func(b *engine.Board) {
		info.LastAccessedAt = sess.LastAccessedAt
		info.Board = boardView(b)
	})
	return info
}
