package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/pushfight/game/engine"
)

func TestAnalyzeLayout_Reference(t *testing.T) {
	var buf bytes.Buffer
	analyzeLayout(&buf, engine.ReferenceLayout())
	out := buf.String()

	expected := []string{
		"Name: reference",
		"Board Size: 10 x 4",
		"Playable Cells: 26",
		"light: 3 pushers, 2 movers, 0 anchored",
		"dark: 3 pushers, 2 movers, 0 anchored",
		"pushes 2",
	}
	for _, want := range expected {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestAnalyzeLayout_NoPushes(t *testing.T) {
	var buf bytes.Buffer
	analyzeLayout(&buf, &engine.Layout{Name: "apart", Rows: []string{"P...", "...p"}})
	out := buf.String()

	if !strings.Contains(out, "no push is possible") {
		t.Errorf("Expected no-push warning:\n%s", out)
	}
	if !strings.Contains(out, "Mobility is even") {
		t.Errorf("Expected even mobility:\n%s", out)
	}
}

func TestAnalyzeLayout_Invalid(t *testing.T) {
	var buf bytes.Buffer
	analyzeLayout(&buf, &engine.Layout{Name: "bad", Rows: []string{"P.", "p"}})

	if !strings.Contains(buf.String(), "Error building board") {
		t.Errorf("Expected build error, got: %s", buf.String())
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	data, _ := json.Marshal(&engine.Layout{Name: "lopsided", Rows: []string{"P..#", "#..p"}})
	if err := os.WriteFile(filepath.Join(dir, "lopsided.json"), data, 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := run(&buf, dir); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"=== Analyzing lopsided ===", "=== Analyzing reference ===", "Board Size: 4 x 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestRun_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.json")
	os.WriteFile(file, []byte("{}"), 0644)

	if err := run(&bytes.Buffer{}, file); err == nil {
		t.Error("Expected error when layout dir is a file")
	}
}
