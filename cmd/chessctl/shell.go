package main

import (
	"context"
	"strconv"
	"strings"

	"github.com/park285/chess-rules/internal/adapter/textpresenter"
	"github.com/park285/chess-rules/internal/session"
)

// shell drives one game at a time from text commands.
type shell struct {
	mgr          *session.Manager
	fmt          *textpresenter.Formatter
	out          *textpresenter.Presenter
	historyLimit int
	current      string
}

func newShell(mgr *session.Manager, f *textpresenter.Formatter, out *textpresenter.Presenter, historyLimit int) *shell {
	if historyLimit <= 0 {
		historyLimit = 10
	}
	return &shell{mgr: mgr, fmt: f, out: out, historyLimit: historyLimit}
}

func (s *shell) say(text string) error { return s.out.Say(text) }

func (s *shell) fail(err error) { _ = s.say(s.fmt.Error(err)) }

func (s *shell) usage(u string) { _ = s.say(s.fmt.Line("cli.usage", map[string]any{"Usage": u})) }

// handle runs one command line and reports whether the shell should exit.
func (s *shell) handle(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		_ = s.say(s.fmt.Help())
	case "quit", "exit":
		_ = s.say(s.fmt.Line("cli.bye", nil))
		return true
	case "new":
		s.newGame(ctx, args)
	case "moves":
		s.moves(ctx, args)
	case "play":
		s.play(ctx, args)
	case "resign":
		s.resign(ctx, args)
	case "show":
		s.show(ctx)
	case "fen":
		s.fen(ctx)
	case "history":
		s.history(ctx, args)
	case "pgn":
		s.pgn(ctx, args)
	default:
		_ = s.say(s.fmt.Line("cli.unknown_command", map[string]any{"Command": cmd}))
	}
	return false
}

func (s *shell) newGame(ctx context.Context, args []string) {
	if len(args) < 2 {
		s.usage("new <white> <black> [fen]")
		return
	}
	g, err := s.mgr.CreateGame(ctx, session.NewGameRequest{
		ChallengerID: args[0],
		OpponentID:   args[1],
		Color:        session.ChoiceWhite,
		StartFEN:     strings.Join(args[2:], " "),
	})
	if err != nil {
		s.fail(err)
		return
	}
	s.current = g.ID
	snap, err := session.BuildSnapshot(g)
	if err != nil {
		s.fail(err)
		return
	}
	_ = s.say(s.fmt.Created(snap))
}

func (s *shell) moves(ctx context.Context, args []string) {
	if len(args) != 1 {
		s.usage("moves <square>")
		return
	}
	if !s.hasGame() {
		return
	}
	opts, err := s.mgr.LegalMoves(ctx, s.current, args[0])
	if err != nil {
		s.fail(err)
		return
	}
	_ = s.say(s.fmt.Moves(strings.ToLower(args[0]), opts))
}

func (s *shell) play(ctx context.Context, args []string) {
	if len(args) < 2 {
		s.usage("play <user> <move>")
		return
	}
	if !s.hasGame() {
		return
	}
	res, err := s.mgr.PlayMove(ctx, s.current, args[0], strings.Join(args[1:], " "))
	if err != nil {
		s.fail(err)
		return
	}
	sum, err := textpresenter.MoveSummary(res, args[0])
	if err != nil {
		s.fail(err)
		return
	}
	_ = s.say(s.fmt.Move(sum))
}

func (s *shell) resign(ctx context.Context, args []string) {
	if len(args) != 1 {
		s.usage("resign <user>")
		return
	}
	if !s.hasGame() {
		return
	}
	g, err := s.mgr.Resign(ctx, s.current, args[0])
	if err != nil {
		s.fail(err)
		return
	}
	snap, err := session.BuildSnapshot(g)
	if err != nil {
		s.fail(err)
		return
	}
	_ = s.say(s.fmt.Status(snap))
}

func (s *shell) show(ctx context.Context) {
	if !s.hasGame() {
		return
	}
	snap, err := s.mgr.Snapshot(ctx, s.current)
	if err != nil {
		s.fail(err)
		return
	}
	_ = s.say(s.fmt.Board(snap))
}

func (s *shell) fen(ctx context.Context) {
	if !s.hasGame() {
		return
	}
	g, err := s.mgr.Game(ctx, s.current)
	if err != nil {
		s.fail(err)
		return
	}
	_ = s.say(g.FEN)
}

func (s *shell) history(ctx context.Context, args []string) {
	if len(args) < 1 {
		s.usage("history <user> [n]")
		return
	}
	limit := s.historyLimit
	if len(args) >= 2 {
		if n, err := strconv.Atoi(args[1]); err == nil && n > 0 {
			limit = n
		}
	}
	entries, err := s.mgr.History(ctx, args[0], limit)
	if err != nil {
		s.fail(err)
		return
	}
	_ = s.say(s.fmt.History(args[0], entries))
}

func (s *shell) pgn(ctx context.Context, args []string) {
	if len(args) != 1 {
		s.usage("pgn <user>")
		return
	}
	entries, err := s.mgr.History(ctx, args[0], 1)
	if err != nil {
		s.fail(err)
		return
	}
	if len(entries) == 0 || entries[0].PGN == "" {
		_ = s.say(s.fmt.Line("cli.no_pgn", map[string]any{"Player": args[0]}))
		return
	}
	_ = s.say(entries[0].PGN)
}

func (s *shell) hasGame() bool {
	if s.current == "" {
		_ = s.say(s.fmt.NoGame())
		return false
	}
	return true
}
