package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/park285/chess-rules/internal/archive"
	"github.com/park285/chess-rules/internal/rules"
	"github.com/park285/chess-rules/pkg/chessdto"
)

// Manager runs games stored in a Store. Every mutation goes through
// Store.Update, so two moves on the same game never interleave.
type Manager struct {
	store   Store
	archive archive.Repository
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithArchive hands finished games to r.
func WithArchive(r archive.Repository) Option {
	return func(m *Manager) { m.archive = r }
}

func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{store: store, logger: zap.NewNop(), now: time.Now}
	for _, o := range opts {
		o(m)
	}
	return m
}

// CreateGame starts a game between two distinct players.
func (m *Manager) CreateGame(ctx context.Context, req NewGameRequest) (*Game, error) {
	challenger := strings.TrimSpace(req.ChallengerID)
	opponent := strings.TrimSpace(req.OpponentID)
	if challenger == "" || opponent == "" || challenger == opponent {
		return nil, fmt.Errorf("%w: two distinct players are required", ErrInvalidRequest)
	}

	startFEN := strings.TrimSpace(req.StartFEN)
	if startFEN == "" {
		startFEN = rules.InitialFEN
	}
	state, err := rules.ParseFEN(startFEN)
	if err != nil {
		return nil, fmt.Errorf("start position: %w", err)
	}

	whiteID, whiteName := challenger, displayName(req.ChallengerName, challenger)
	blackID, blackName := opponent, displayName(req.OpponentName, opponent)
	if req.Color.resolve() == Black {
		whiteID, whiteName, blackID, blackName = blackID, blackName, whiteID, whiteName
	}

	now := m.now()
	g := &Game{
		ID:        uuid.NewString(),
		StartFEN:  state.FEN(),
		MovesUCI:  []string{},
		MovesSAN:  []string{},
		WhiteID:   whiteID,
		WhiteName: whiteName,
		BlackID:   blackID,
		BlackName: blackName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyPosition(g, state)

	if err := m.store.Create(ctx, g); err != nil {
		return nil, err
	}
	m.logger.Info("game_create",
		zap.String("game_id", g.ID),
		zap.String("white_id", g.WhiteID),
		zap.String("black_id", g.BlackID),
		zap.String("start_fen", g.StartFEN),
	)
	m.persistIfFinal(ctx, g)
	return g, nil
}

// Game returns the stored record.
func (m *Manager) Game(ctx context.Context, id string) (*Game, error) {
	return m.store.Load(ctx, id)
}

// ActiveGameByUser returns the user's most recently updated active game.
func (m *Manager) ActiveGameByUser(ctx context.Context, userID string) (*Game, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrGameNotFound
	}
	games, err := m.store.GamesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, g := range games {
		if g.Status == StatusActive {
			return g, nil
		}
	}
	return nil, ErrGameNotFound
}

// LegalMoves lists the legal moves of the piece on square (e.g. "e2").
func (m *Manager) LegalMoves(ctx context.Context, id, square string) ([]chessdto.MoveOption, error) {
	sq, err := rules.ParseSquare(strings.ToLower(strings.TrimSpace(square)))
	if err != nil {
		return nil, err
	}
	g, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.Status.Finished() {
		return nil, ErrGameFinished
	}
	state, err := rebuild(g, nil)
	if err != nil {
		return nil, err
	}
	moves, err := rules.LegalMoves(state, sq)
	if err != nil {
		return nil, err
	}
	out := make([]chessdto.MoveOption, 0, len(moves))
	for _, mv := range moves {
		out = append(out, chessdto.MoveOption{UCI: mv.String(), SAN: rules.SAN(state, mv)})
	}
	return out, nil
}

// PlayMove applies moveText (UCI or SAN) for userID. The game is rebuilt
// from its stored moves, the move validated and the record rewritten in one
// exclusive update.
func (m *Manager) PlayMove(ctx context.Context, id, userID, moveText string) (*MoveResult, error) {
	var played rules.Move
	var san string
	g, err := m.store.Update(ctx, id, func(cur *Game) error {
		if cur.Status.Finished() {
			return ErrGameFinished
		}
		color, ok := cur.ColorOf(userID)
		if !ok {
			return ErrNotParticipant
		}
		if color != cur.Turn {
			return ErrNotYourTurn
		}
		state, err := rebuild(cur, nil)
		if err != nil {
			return err
		}
		mv, err := rules.ParseAny(state, moveText)
		if err != nil {
			return fmt.Errorf("move %q: %w", strings.TrimSpace(moveText), err)
		}
		next, err := rules.ApplyMove(state, mv)
		if err != nil {
			return fmt.Errorf("move %q: %w", strings.TrimSpace(moveText), err)
		}
		played = next.History[len(next.History)-1]
		san = rules.SAN(state, played)
		cur.MovesUCI = append(cur.MovesUCI, played.String())
		cur.MovesSAN = append(cur.MovesSAN, san)
		cur.UpdatedAt = m.now()
		applyPosition(cur, next)
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("game_move",
		zap.String("game_id", g.ID),
		zap.String("user_id", strings.TrimSpace(userID)),
		zap.String("uci", played.String()),
		zap.String("san", san),
		zap.String("turn", string(g.Turn)),
		zap.String("status", string(g.Status)),
	)
	m.persistIfFinal(ctx, g)
	return &MoveResult{Game: g, UCI: played.String(), SAN: san}, nil
}

// Resign ends the game in favour of userID's opponent. Either player may
// resign at any time while the game is active.
func (m *Manager) Resign(ctx context.Context, id, userID string) (*Game, error) {
	g, err := m.store.Update(ctx, id, func(cur *Game) error {
		if cur.Status.Finished() {
			return ErrGameFinished
		}
		color, ok := cur.ColorOf(userID)
		if !ok {
			return ErrNotParticipant
		}
		winner := opposite(color)
		cur.Status = StatusResigned
		cur.Winner = cur.PlayerID(winner)
		cur.Outcome = string(winner)
		cur.UpdatedAt = m.now()
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.logger.Info("game_resign",
		zap.String("game_id", g.ID),
		zap.String("resigner", strings.TrimSpace(userID)),
		zap.String("winner", g.Winner),
	)
	m.persistIfFinal(ctx, g)
	return g, nil
}

// History returns the user's archived games, newest first.
func (m *Manager) History(ctx context.Context, userID string, limit int) ([]chessdto.HistoryEntry, error) {
	if m.archive == nil {
		return []chessdto.HistoryEntry{}, nil
	}
	results, err := m.archive.RecentGames(ctx, strings.TrimSpace(userID), limit)
	if err != nil {
		return nil, fmt.Errorf("recent games: %w", err)
	}
	out := make([]chessdto.HistoryEntry, 0, len(results))
	for _, r := range results {
		out = append(out, historyEntry(r, userID))
	}
	return out, nil
}

func historyEntry(r *archive.Result, userID string) chessdto.HistoryEntry {
	e := chessdto.HistoryEntry{
		GameID:       r.GameID,
		ResultMethod: r.Method,
		MovesSAN:     r.MovesSAN,
		PGN:          r.PGN,
		EndedAt:      r.EndedAt,
		Duration:     r.Duration,
		Color:        string(White),
		Opponent:     r.BlackName,
	}
	if r.BlackID == userID {
		e.Color, e.Opponent = string(Black), r.WhiteName
	}
	switch r.Result {
	case archive.ResultDraw:
		e.Result = "draw"
	case e.Color:
		e.Result = "win"
	default:
		e.Result = "loss"
	}
	return e
}

// persistIfFinal archives a finished game. Failures are logged only; the
// game record itself is already stored.
func (m *Manager) persistIfFinal(ctx context.Context, g *Game) {
	if m.archive == nil || g == nil || !g.Status.Finished() {
		return
	}
	res := &archive.Result{
		GameID:    g.ID,
		WhiteID:   g.WhiteID,
		WhiteName: g.WhiteName,
		BlackID:   g.BlackID,
		BlackName: g.BlackName,
		Result:    g.Outcome,
		Method:    resultMethod(g),
		StartFEN:  g.StartFEN,
		MovesUCI:  g.MovesUCI,
		MovesSAN:  g.MovesSAN,
		StartedAt: g.CreatedAt,
		EndedAt:   g.UpdatedAt,
	}
	if err := m.archive.SaveResult(ctx, res); err != nil {
		m.logger.Error("game_result_persist_error", zap.String("game_id", g.ID), zap.String("outcome", g.Outcome), zap.Error(err))
		return
	}
	m.logger.Info("game_result_persist", zap.String("game_id", g.ID), zap.String("outcome", g.Outcome), zap.String("method", res.Method))
}

func resultMethod(g *Game) string {
	switch g.Status {
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	case StatusDraw:
		return g.DrawReason
	case StatusResigned:
		return "resignation"
	}
	return ""
}

// rebuild replays the stored moves from StartFEN. visit, when set, sees
// each generated move together with the state it was played from.
func rebuild(g *Game, visit func(before *rules.GameState, mv rules.Move)) (*rules.GameState, error) {
	s, err := rules.ParseFEN(g.StartFEN)
	if err != nil {
		return nil, fmt.Errorf("game %s start position: %w", g.ID, err)
	}
	for i, text := range g.MovesUCI {
		mv, err := rules.ParseMove(text)
		if err != nil {
			return nil, fmt.Errorf("game %s ply %d: %w", g.ID, i+1, err)
		}
		next, err := rules.ApplyMove(s, mv)
		if err != nil {
			return nil, fmt.Errorf("game %s ply %d: %w", g.ID, i+1, err)
		}
		if visit != nil {
			visit(s, next.History[len(next.History)-1])
		}
		s = next
	}
	return s, nil
}

// applyPosition copies the derived position fields of s into g.
func applyPosition(g *Game, s *rules.GameState) {
	g.FEN = s.FEN()
	g.Turn = colorFrom(s.SideToMove)
	st := rules.Status(s)
	g.InCheck = rules.InCheck(s)
	switch st.Kind {
	case rules.Checkmate:
		winner := colorFrom(st.Color.Opposite())
		g.Status = StatusCheckmate
		g.Winner = g.PlayerID(winner)
		g.Outcome = string(winner)
	case rules.Stalemate:
		g.Status = StatusStalemate
		g.Outcome = archive.ResultDraw
	case rules.Draw:
		g.Status = StatusDraw
		g.Outcome = archive.ResultDraw
		g.DrawReason = st.Reason.String()
	default:
		g.Status = StatusActive
	}
}

func colorFrom(c rules.Color) Color {
	if c == rules.White {
		return White
	}
	return Black
}

func opposite(c Color) Color {
	if c == White {
		return Black
	}
	return White
}

func displayName(name, id string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return id
}

// IsRetryable reports whether err came from losing a write race.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrentUpdate)
}
