// Command analyze prints quick, human-readable statistics about the layouts in
// a layout directory: dimensions, pieces per side, how far each side can
// slide and how many pushes are open in the opening position.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/wricardo/pushfight/game/config"
	"github.com/wricardo/pushfight/game/engine"
)

func main() {
	dir := "layouts"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	} else if env := os.Getenv("PUSHFIGHT_LAYOUT_DIR"); env != "" {
		dir = env
	}

	if err := run(os.Stdout, dir); err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, dir string) error {
	manager, err := config.NewManager(dir)
	if err != nil {
		return err
	}
	layouts, err := manager.ListLayouts()
	if err != nil {
		return err
	}

	for _, info := range layouts {
		fmt.Fprintf(w, "\n=== Analyzing %s ===\n", info.LayoutID)
		layout, err := manager.LoadLayout(info.LayoutID)
		if err != nil {
			fmt.Fprintf(w, "Error loading layout: %v\n", err)
			continue
		}
		analyzeLayout(w, layout)
	}
	return nil
}

func analyzeLayout(w io.Writer, layout *engine.Layout) {
	board, err := engine.NewBoard(layout)
	if err != nil {
		fmt.Fprintf(w, "Error building board: %v\n", err)
		return
	}

	fmt.Fprintf(w, "Name: %s\n", layout.Name)
	fmt.Fprintf(w, "Board Size: %d x %d\n", board.Width(), board.Height())
	fmt.Fprintf(w, "Playable Cells: %d\n", board.Width()*board.Height()-board.Count(engine.Void))

	for _, side := range []engine.Side{engine.Light, engine.Dark} {
		pushers, movers, anchored := 0, 0, 0
		for _, c := range board.Pieces(side) {
			cell, _ := board.At(c.Row, c.Col)
			switch {
			case cell.IsAnchored():
				anchored++
			case cell.IsPusher():
				pushers++
			case cell.IsMover():
				movers++
			}
		}
		fmt.Fprintf(w, "%s: %d pushers, %d movers, %d anchored | mobility %d | pushes %d\n",
			side, pushers, movers, anchored, board.Mobility(side), board.LegalPushes(side))
	}

	diff := board.Mobility(engine.Light) - board.Mobility(engine.Dark)
	switch {
	case diff > 0:
		fmt.Fprintf(w, "Mobility favors light by %d\n", diff)
	case diff < 0:
		fmt.Fprintf(w, "Mobility favors dark by %d\n", -diff)
	default:
		fmt.Fprintln(w, "Mobility is even")
	}

	if board.LegalPushes(engine.Light)+board.LegalPushes(engine.Dark) == 0 {
		fmt.Fprintln(w, "⚠️  WARNING: no push is possible from the opening position")
	}
}
