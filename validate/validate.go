// Package validate checks layout JSON files before they are served. It
// reports:
//   - JSON structure and required fields
//   - Row consistency and allowed symbols
//   - At least one pusher per side
//   - Playability notes: anchored pieces in the opening position, pushers
//     with no legal push, pieces with nowhere to slide
package validate

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/pushfight/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// Errors make the layout unusable; Warnings do not.
type ValidationResult struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
	Info     []string
}

// File loads and validates a single layout JSON file.
func File(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail(fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var layout engine.Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		result.fail(fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	Layout(&layout, &result)
	return result
}

// Layout runs the structural and playability checks on an in-memory layout
// and adds its findings to result.
func Layout(layout *engine.Layout, result *ValidationResult) {
	board, err := engine.NewBoard(layout)
	if err != nil {
		result.fail(err.Error())
		return
	}

	for _, side := range []engine.Side{engine.Light, engine.Dark} {
		if len(board.Pieces(side)) == 0 {
			result.fail(fmt.Sprintf("%s has no pieces", side))
			continue
		}
		pushers := 0
		for _, c := range board.Pieces(side) {
			cell, _ := board.At(c.Row, c.Col)
			if cell.IsPusher() {
				pushers++
			}
		}
		if pushers == 0 {
			result.fail(fmt.Sprintf("%s must have at least 1 unanchored pusher", side))
		}
	}
	if !result.Valid {
		return
	}

	for _, c := range board.Pieces(engine.Light) {
		noteStuck(board, c, result)
	}
	for _, c := range board.Pieces(engine.Dark) {
		noteStuck(board, c, result)
	}
	if n := board.Count(engine.AnchoredLightPusher) + board.Count(engine.AnchoredDarkPusher); n > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%d anchored pusher(s) in the opening position", n))
	}
	if board.LegalPushes(engine.Light)+board.LegalPushes(engine.Dark) == 0 {
		result.Warnings = append(result.Warnings, "No legal push for either side")
	}

	result.Info = append(result.Info,
		fmt.Sprintf("✓ Name: %s", layout.Name),
		fmt.Sprintf("✓ Board: %dx%d", board.Width(), board.Height()),
		fmt.Sprintf("✓ Light: %d pieces, mobility %d, pushes %d",
			board.SideCount(engine.Light), board.Mobility(engine.Light), board.LegalPushes(engine.Light)),
		fmt.Sprintf("✓ Dark: %d pieces, mobility %d, pushes %d",
			board.SideCount(engine.Dark), board.Mobility(engine.Dark), board.LegalPushes(engine.Dark)),
	)
}

// noteStuck warns about unanchored pieces that can neither slide nor push.
func noteStuck(board *engine.Board, c engine.Coord, result *ValidationResult) {
	cell, _ := board.At(c.Row, c.Col)
	if cell.IsAnchored() {
		return
	}
	if len(board.Reachable(c)) == 0 && len(board.PushDirections(c)) == 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s at %s cannot move", cell, c))
	}
}

// Dir validates every *.json file in dir, sorted by file name.
func Dir(dir string) ([]ValidationResult, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("error finding layout files: %w", err)
	}
	sort.Strings(files)

	results := make([]ValidationResult, 0, len(files))
	for _, file := range files {
		results = append(results, File(file))
	}
	return results, nil
}

// Report prints a concise report and returns true if every result is valid.
func Report(w io.Writer, results []ValidationResult) bool {
	allValid := true
	for _, result := range results {
		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
			for _, info := range result.Info {
				fmt.Fprintln(w, "  "+info)
			}
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Fprintln(w, "  ❌ "+err)
			}
		}
		for _, warn := range result.Warnings {
			fmt.Fprintln(w, "  ⚠️  "+warn)
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	switch {
	case len(results) == 0:
		fmt.Fprintln(w, "No layout files found")
	case allValid:
		fmt.Fprintln(w, "✅ All layouts are valid!")
	default:
		fmt.Fprintln(w, "❌ Some layouts have errors")
	}
	return allValid
}

func (r *ValidationResult) fail(msg string) {
	r.Valid = false
	r.Errors = append(r.Errors, msg)
}
