package msgcat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaults(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := c.Render("status.checkmate", map[string]any{"Winner": "Bob"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "Checkmate. Bob wins." {
		t.Fatalf("Render = %q", got)
	}
	if !strings.Contains(c.Text("help", nil), "play <user> <move>") {
		t.Fatalf("help text missing commands")
	}
	for _, k := range []string{"errors.illegal_move", "draw_reason.fifty_move_rule", "board.header"} {
		if !c.Has(k) {
			t.Errorf("missing key %s", k)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Render("no.such.key", nil); err == nil {
		t.Fatalf("missing key rendered")
	}
	if _, err := c.Render("status.checkmate", map[string]any{}); err == nil {
		t.Fatalf("missing data key rendered")
	}
	if got := c.Text("no.such.key", nil); got != "no.such.key" {
		t.Fatalf("Text fallback = %q", got)
	}
}

func TestOverrideDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("10-status.yaml", "status:\n  stalemate: \"No moves. Draw.\"\n")
	write("20-extra.yml", "custom:\n  hello: \"hi {{.Name}}\"\n")
	write("notes.txt", "ignored")

	c, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.Text("status.stalemate", nil); got != "No moves. Draw." {
		t.Fatalf("override not applied: %q", got)
	}
	if got := c.Text("custom.hello", map[string]string{"Name": "Ann"}); got != "hi Ann" {
		t.Fatalf("custom key = %q", got)
	}
	if got := c.Text("status.ongoing", nil); got != "Game in progress." {
		t.Fatalf("default lost: %q", got)
	}
}

func TestOverrideDirRejectsDuplicates(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.yaml", "b.yaml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("status:\n  ongoing: x\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if _, err := New(dir); err == nil || !strings.Contains(err.Error(), "duplicate override key") {
		t.Fatalf("New error = %v, want duplicate key error", err)
	}
}

func TestOverrideDirRejectsNonStrings(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("status:\n  ongoing: 3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := New(dir); err == nil {
		t.Fatalf("numeric leaf accepted")
	}
}
