package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"
)

// Layout describes an initial board as one string of symbols per row.
type Layout struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Rows        []string `json:"rows"`
}

// Width returns the number of columns, taken from the first row.
func (l *Layout) Width() int {
	if len(l.Rows) == 0 {
		return 0
	}
	return utf8.RuneCountInString(l.Rows[0])
}

// Height returns the number of rows.
func (l *Layout) Height() int {
	return len(l.Rows)
}

// ReferenceLayout returns the standard 10x4 opening position.
func ReferenceLayout() *Layout {
	return &Layout{
		Name:        "reference",
		Description: "Standard 10x4 opening position",
		Rows: []string{
			"###.pM..##",
			"#...mP...#",
			"#.p.mP.P.#",
			"##..pM.###",
		},
	}
}

// ValidateLayout checks that a layout describes a rectangular board made of
// known symbols.
func ValidateLayout(layout *Layout) error {
	if layout == nil {
		return fmt.Errorf("layout validation: layout is required")
	}
	if layout.Name == "" {
		return fmt.Errorf("layout validation: name is required")
	}
	if len(layout.Rows) == 0 {
		return fmt.Errorf("layout validation: at least one row is required")
	}

	width := layout.Width()
	if width == 0 {
		return fmt.Errorf("layout validation: row 1 is empty")
	}
	for i, row := range layout.Rows {
		if n := utf8.RuneCountInString(row); n != width {
			return fmt.Errorf("layout validation: row %d must have %d cells to match row 1, got %d", i+1, width, n)
		}
		col := 0
		for _, r := range row {
			if _, ok := CellFromSymbol(r); !ok {
				return fmt.Errorf("layout validation: invalid symbol '%c' at row %d, col %d", r, i+1, col+1)
			}
			col++
		}
	}
	return nil
}

// ParseLayout validates a layout and builds its grid.
func ParseLayout(layout *Layout) (*Grid, error) {
	if err := ValidateLayout(layout); err != nil {
		return nil, err
	}

	grid, err := NewGrid(layout.Width(), layout.Height())
	if err != nil {
		return nil, err
	}
	for r, row := range layout.Rows {
		c := 0
		for _, sym := range row {
			cell, _ := CellFromSymbol(sym)
			grid.set(Coord{Row: r, Col: c}, cell)
			c++
		}
	}
	return grid, nil
}

// LoadLayoutFile reads and validates a layout from a JSON file.
func LoadLayoutFile(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var layout Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("failed to parse layout file '%s': %w", path, err)
	}
	if err := ValidateLayout(&layout); err != nil {
		return nil, err
	}
	return &layout, nil
}
