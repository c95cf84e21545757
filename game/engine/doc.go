// Package engine provides the rules for a two-player push game played on a
// fixed grid.
//
// The engine package implements:
//   - A bounds-checked, row-major grid of cells
//   - Reachability checks for relocating a piece through open cells
//   - Validation and execution of straight-line pushes
//   - A move dispatcher that tries a relocation first, then a push
//   - Layout parsing and validation
//
// Core Types:
//
// Board owns the grid and applies moves. Cell is the closed set of states a
// grid position can hold: Empty, Void, a mover or pusher of either Side, or an
// anchored pusher. Layout describes an initial position as symbol rows.
//
// Usage:
//
//	board := engine.NewGame(engine.WithSink(sink))
//
//	// Push the dark pusher at (0,4) to the right
//	board.TryMove(0, 4, 0, 5)
//	cells := board.Cells()
//
// Rules:
//
// A piece relocates to any cell connected to it through Empty cells in the
// four orthogonal directions. A pusher may instead push the contiguous line of
// pieces ahead of it one step, provided the line ends on an Empty or Void cell
// inside the board and contains no anchored pusher. A piece pushed into Void
// leaves play. After pushing, the pusher is anchored and never moves again.
//
// Illegal moves are not errors: they leave the board unchanged and are
// reported to the Board's Sink.
package engine
