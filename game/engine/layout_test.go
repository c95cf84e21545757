package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReferenceLayout(t *testing.T) {
	layout := ReferenceLayout()
	if err := ValidateLayout(layout); err != nil {
		t.Fatalf("Reference layout is invalid: %v", err)
	}
	if layout.Width() != 10 || layout.Height() != 4 {
		t.Errorf("Expected 10x4, got %dx%d", layout.Width(), layout.Height())
	}
}

func TestValidateLayout(t *testing.T) {
	tests := []struct {
		name    string
		layout  *Layout
		wantErr string
	}{
		{"nil layout", nil, "layout is required"},
		{"missing name", &Layout{Rows: []string{"..."}}, "name is required"},
		{"no rows", &Layout{Name: "x"}, "at least one row"},
		{"empty first row", &Layout{Name: "x", Rows: []string{""}}, "row 1 is empty"},
		{"ragged rows", &Layout{Name: "x", Rows: []string{"...", ".."}}, "row 2 must have 3 cells"},
		{"unknown symbol", &Layout{Name: "x", Rows: []string{"..", ".x"}}, "invalid symbol 'x' at row 2, col 2"},
		{"valid", &Layout{Name: "x", Rows: []string{"#Pp.", "MmAa"}}, ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := ValidateLayout(test.layout)
			if test.wantErr == "" {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q", test.wantErr)
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("Expected error containing %q, got %q", test.wantErr, err.Error())
			}
			if !strings.HasPrefix(err.Error(), "layout validation:") {
				t.Errorf("Expected layout validation prefix, got %q", err.Error())
			}
		})
	}
}

func TestParseLayout(t *testing.T) {
	grid, err := ParseLayout(&Layout{Name: "x", Rows: []string{"#P", "m."}})
	if err != nil {
		t.Fatalf("ParseLayout failed: %v", err)
	}

	want := []Cell{Void, LightPusher, DarkMover, Empty}
	for i, cell := range grid.Cells() {
		if cell != want[i] {
			t.Errorf("cell %d: expected %s, got %s", i, want[i], cell)
		}
	}
}

func TestLoadLayoutFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	if err := os.WriteFile(good, []byte(`{"name":"good","description":"d","rows":["P.m","#.#"]}`), 0644); err != nil {
		t.Fatal(err)
	}
	layout, err := LoadLayoutFile(good)
	if err != nil {
		t.Fatalf("LoadLayoutFile failed: %v", err)
	}
	if layout.Name != "good" || layout.Width() != 3 || layout.Height() != 2 {
		t.Errorf("Unexpected layout: %+v", layout)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"name":"bad","rows":["P.","m"]}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadLayoutFile(bad); err == nil {
		t.Error("Expected validation error for ragged layout")
	}

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte(`{`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadLayoutFile(broken); err == nil {
		t.Error("Expected parse error")
	}

	if _, err := LoadLayoutFile(filepath.Join(dir, "missing.json")); !os.IsNotExist(err) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}
