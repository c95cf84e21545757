package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/pushfight/game/engine"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName != "Push Fight" {
		t.Errorf("Expected app name Push Fight, got %s", AppName)
	}
}

// runApp runs the command tree with output captured and os.Exit stubbed.
func runApp(t *testing.T, input string, args ...string) (string, int, error) {
	t.Helper()

	exitCode := 0
	originalExiter := cli.OsExiter
	cli.OsExiter = func(code int) { exitCode = code }
	defer func() { cli.OsExiter = originalExiter }()

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &bytes.Buffer{}
	app.Reader = strings.NewReader(input)

	err := app.Run(context.Background(), append([]string{"pushfight", "--log-level", "error"}, args...))
	return out.String(), exitCode, err
}

func TestMoveCommand(t *testing.T) {
	out, _, err := runApp(t, "", "--layout-dir", t.TempDir(), "move", "0,4:0,5", "0,3:1,3")
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}

	expected := []string{
		"1. push: dark_pusher pushed right from (0,4)",
		"2. illegal: illegal move:",
		" 0 ###..aM.##",
		"light 5, dark 5",
	}
	for _, want := range expected {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestMoveCommand_BadArguments(t *testing.T) {
	_, code, err := runApp(t, "", "move")
	if code != 2 {
		t.Errorf("Expected exit code 2 without moves, got code=%d err=%v", code, err)
	}

	_, code, _ = runApp(t, "", "--layout-dir", t.TempDir(), "move", "north")
	if code != 2 {
		t.Errorf("Expected exit code 2 for unparseable move, got %d", code)
	}
}

func TestPlayCommand(t *testing.T) {
	input := strings.Join([]string{
		"help",
		"2 7 1 8",
		"legal 0 4",
		"legal x",
		"0,3:1,3",
		"not a move",
		"quit",
		"2 5 2 6", // never read
	}, "\n")

	out, _, err := runApp(t, input, "--layout-dir", t.TempDir(), "play")
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}

	expected := []string{
		"Push Fight v" + Version,
		"Commands:",
		"moved light_pusher (2,7) -> (1,8)",
		" 1 #...mP..P#",
		"dark_pusher at (0,4)",
		"push: right via (0,5)",
		"usage: legal <row> <col>",
		"illegal move: nothing to move at (0,3)",
		"error: move \"not a move\"",
	}
	for _, want := range expected {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "moved light_pusher (2,5)") {
		t.Error("Input after quit should be ignored")
	}
}

func TestPlayCommand_EOF(t *testing.T) {
	out, _, err := runApp(t, "0 4 0 5", "--layout-dir", t.TempDir())
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}
	if !strings.Contains(out, " 0 ###..aM.##") {
		t.Errorf("Expected push to be applied before EOF:\n%s", out)
	}
}

func TestLayoutsCommand(t *testing.T) {
	dir := t.TempDir()
	data, _ := json.Marshal(&engine.Layout{Name: "small", Description: "Tiny board", Rows: []string{"P.", ".p"}})
	os.WriteFile(filepath.Join(dir, "small.json"), data, 0644)

	out, _, err := runApp(t, "", "--layout-dir", dir, "layouts")
	if err != nil {
		t.Fatalf("layouts failed: %v", err)
	}
	if !strings.Contains(out, "reference") || !strings.Contains(out, "small") || !strings.Contains(out, "Tiny board") {
		t.Errorf("Unexpected layouts output:\n%s", out)
	}
}

func TestInitAndValidateCommands(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "layouts")

	out, _, err := runApp(t, "", "--layout-dir", dir, "init-layouts")
	if err != nil {
		t.Fatalf("init-layouts failed: %v", err)
	}
	if !strings.Contains(out, "reference.json") {
		t.Errorf("Unexpected init output: %s", out)
	}

	out, code, err := runApp(t, "", "--layout-dir", dir, "validate")
	if err != nil || code != 0 {
		t.Fatalf("validate failed: code=%d err=%v", code, err)
	}
	if !strings.Contains(out, "All layouts are valid") {
		t.Errorf("Unexpected validate output:\n%s", out)
	}

	os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{"name": "broken", "rows": ["Pp", "x."]}`), 0644)
	out, code, _ = runApp(t, "", "validate", dir)
	if code != 1 {
		t.Errorf("Expected exit code 1 for invalid layout, got %d", code)
	}
	if !strings.Contains(out, "invalid symbol 'x'") {
		t.Errorf("Expected symbol error in output:\n%s", out)
	}
}

func TestInitializeServices_Errors(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	os.WriteFile(file, []byte("x"), 0644)

	tests := []struct {
		name string
		args []string
	}{
		{"layout dir is a file", []string{"--layout-dir", file, "layouts"}},
		{"unknown default layout", []string{"--layout-dir", t.TempDir(), "--layout", "missing", "layouts"}},
		{"bad log format", []string{"--log-format", "xml", "layouts"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := runApp(t, "", tt.args...); err == nil {
				t.Error("Expected error")
			}
		})
	}
}
