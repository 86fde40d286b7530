package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/park285/chess-rules/internal/adapter/textpresenter"
	"github.com/park285/chess-rules/internal/archive"
	"github.com/park285/chess-rules/internal/msgcat"
	"github.com/park285/chess-rules/internal/session"
)

func newTestShell(t *testing.T) (*shell, *bytes.Buffer) {
	t.Helper()
	cat, err := msgcat.New("")
	if err != nil {
		t.Fatalf("msgcat.New: %v", err)
	}
	var buf bytes.Buffer
	mgr := session.NewManager(session.NewMemoryStore(), session.WithArchive(archive.NewMemoryRepository()))
	return newShell(mgr, textpresenter.NewFormatter(cat), textpresenter.NewPresenter(&buf), 0), &buf
}

func run(t *testing.T, sh *shell, buf *bytes.Buffer, line string) string {
	t.Helper()
	buf.Reset()
	if sh.handle(context.Background(), line) {
		t.Fatalf("%q ended the shell", line)
	}
	return buf.String()
}

func TestShellFoolsMate(t *testing.T) {
	sh, buf := newTestShell(t)

	if out := run(t, sh, buf, "show"); !strings.Contains(out, "No game in progress") {
		t.Fatalf("show without game = %q", out)
	}
	if out := run(t, sh, buf, "new alice bob"); !strings.Contains(out, "alice plays white, bob plays black") {
		t.Fatalf("new = %q", out)
	}
	if out := run(t, sh, buf, "moves g1"); !strings.Contains(out, "Nf3 (g1f3)") {
		t.Fatalf("moves = %q", out)
	}
	if out := run(t, sh, buf, "play bob e7e5"); !strings.Contains(out, "It is not your turn.") {
		t.Fatalf("out of turn = %q", out)
	}
	for _, line := range []string{"play alice f3", "play bob e5", "play alice g2g4"} {
		if out := run(t, sh, buf, line); !strings.Contains(out, "played") {
			t.Fatalf("%s = %q", line, out)
		}
	}
	out := run(t, sh, buf, "play bob Qh4")
	if !strings.Contains(out, "bob played Qh4# (d8h4).") || !strings.Contains(out, "Checkmate. bob wins.") {
		t.Fatalf("mate = %q", out)
	}
	if out := run(t, sh, buf, "play alice e2e4"); !strings.Contains(out, "This game is already over.") {
		t.Fatalf("after mate = %q", out)
	}
	if out := run(t, sh, buf, "history alice"); !strings.Contains(out, "loss vs bob as white by checkmate in 2 moves") {
		t.Fatalf("history = %q", out)
	}
	if out := run(t, sh, buf, "pgn bob"); !strings.Contains(out, "1. f3 e5 2. g4 Qh4# 0-1") {
		t.Fatalf("pgn = %q", out)
	}
}

func TestShellFENAndResign(t *testing.T) {
	sh, buf := newTestShell(t)
	run(t, sh, buf, "new alice bob 4k3/8/8/8/8/8/8/R3K3 w Q - 0 1")
	if out := run(t, sh, buf, "fen"); out != "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1\n" {
		t.Fatalf("fen = %q", out)
	}
	if out := run(t, sh, buf, "resign carol"); !strings.Contains(out, "You are not playing in this game.") {
		t.Fatalf("resign stranger = %q", out)
	}
	if out := run(t, sh, buf, "resign bob"); !strings.Contains(out, "bob resigned. alice wins.") {
		t.Fatalf("resign = %q", out)
	}
}

func TestShellUsageAndQuit(t *testing.T) {
	sh, buf := newTestShell(t)
	if out := run(t, sh, buf, "new alice"); !strings.HasPrefix(out, "Usage: new") {
		t.Fatalf("usage = %q", out)
	}
	if out := run(t, sh, buf, "dance"); !strings.Contains(out, "Unknown command dance") {
		t.Fatalf("unknown = %q", out)
	}
	if out := run(t, sh, buf, "   "); out != "" {
		t.Fatalf("blank line output = %q", out)
	}
	if !sh.handle(context.Background(), "quit") {
		t.Fatalf("quit did not end the shell")
	}
}
