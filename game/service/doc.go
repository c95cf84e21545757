// Package service provides the application layer between transports and the
// rules engine.
//
// The service package implements:
//   - Multi-session game management
//   - Move execution with per-move diagnostics
//   - Board and legal-move queries
//   - Layout discovery
//
// Each Session owns one engine.Board. The engine is single-threaded, so every
// call into a board goes through Session.WithBoard, which serializes access
// per session. Different sessions proceed independently.
//
// Usage:
//
//	svc := service.NewGameService(sessionManager, configManager)
//
//	info, err := svc.CreateSession(ctx, "reference")
//	if err != nil {
//		return err
//	}
//
//	result, err := svc.Move(ctx, info.ID, service.MoveRequest{
//		From: engine.Coord{Row: 0, Col: 4},
//		To:   engine.Coord{Row: 0, Col: 5},
//	})
//
// Illegal moves are not errors: MoveResult.Applied is false and the board is
// unchanged. Errors are reserved for unknown sessions, unknown layouts and
// cancelled contexts.
package service
