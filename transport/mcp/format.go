package mcp

import (
	"fmt"
	"strings"

	"github.com/wricardo/pushfight/game/service"
)

// Formatting helpers

func formatBoard(board *service.BoardView) string {
	if board == nil {
		return "No board available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Board: %s (%dx%d) | Pieces: %d (light %d, dark %d)\n\n",
		board.Name, board.Width, board.Height, board.PieceCount, board.LightCount, board.DarkCount)

	// Column header, last digit only
	b.WriteString("    ")
	for c := 0; c < board.Width; c++ {
		fmt.Fprintf(&b, "%d", c%10)
	}
	b.WriteString("\n")
	for r, row := range board.Rows {
		fmt.Fprintf(&b, "%2d  %s\n", r, row)
	}
	return b.String()
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Applied {
		fmt.Fprintf(&b, "✓ %s %s → %s\n", result.Kind, result.From, result.To)
	} else {
		fmt.Fprintf(&b, "✗ %s → %s rejected\n", result.From, result.To)
	}
	if result.Message != "" {
		fmt.Fprintf(&b, "%s\n", result.Message)
	}
	if result.PiecesAfter != result.PiecesBefore {
		fmt.Fprintf(&b, "Pieces: %d → %d\n", result.PiecesBefore, result.PiecesAfter)
	}

	if len(result.Diagnostics) > 0 {
		b.WriteString("Diagnostics:\n")
		for _, d := range result.Diagnostics {
			fmt.Fprintf(&b, "- %s: %s\n", d.Reason, d.Message)
		}
	}

	b.WriteString("\n")
	b.WriteString(formatBoard(result.Board))
	return b.String()
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Session: %s\n", sessionID)
	fmt.Fprintf(&b, "Applied %d/%d moves (%d rejected)\n",
		result.MovesApplied, len(result.Results), result.MovesRejected)
	if result.Truncated {
		fmt.Fprintf(&b, "Truncated: %d moves requested, limit is %d\n", result.RequestedMoves, result.Limit)
	}

	if len(result.Results) > 0 {
		b.WriteString("\nSteps:\n")
		for i, r := range result.Results {
			status := "✗"
			if r.Applied {
				status = "✓"
			}
			fmt.Fprintf(&b, "%2d. %s %s → %s %s: %s\n", i+1, status, r.From, r.To, r.Kind, r.Message)
		}
	}

	b.WriteString("\n")
	b.WriteString(formatBoard(result.Board))
	return b.String()
}

func formatLegalMoves(moves *service.LegalMoves) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cell %s: %s\n", moves.At, moves.Cell)

	if len(moves.Relocations) == 0 {
		b.WriteString("Relocations: none\n")
	} else {
		targets := make([]string, len(moves.Relocations))
		for i, c := range moves.Relocations {
			targets[i] = c.String()
		}
		fmt.Fprintf(&b, "Relocations (%d): %s\n", len(targets), strings.Join(targets, " "))
	}

	if len(moves.Pushes) == 0 {
		b.WriteString("Pushes: none\n")
	} else {
		b.WriteString("Pushes:\n")
		for _, p := range moves.Pushes {
			fmt.Fprintf(&b, "- %s (move to %s)\n", p.Direction, p.Target)
		}
	}
	return b.String()
}
