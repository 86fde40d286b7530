package textpresenter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/park285/chess-rules/internal/msgcat"
	"github.com/park285/chess-rules/pkg/chessdto"
)

const recentMovesLimit = 6

// Formatter renders snapshots and results as plain text.
type Formatter struct {
	cat *msgcat.Catalog
}

func NewFormatter(cat *msgcat.Catalog) *Formatter {
	return &Formatter{cat: cat}
}

func (f *Formatter) text(key string, data any) string {
	return f.cat.Text(key, data)
}

// Board draws the position with white at the bottom, followed by the
// header lines and the status line.
func (f *Formatter) Board(s *chessdto.Snapshot) string {
	if s == nil {
		return f.text("game.none", nil)
	}
	var sb strings.Builder
	sb.WriteString(f.text("board.header", map[string]any{"White": s.WhiteName, "Black": s.BlackName}))
	sb.WriteByte('\n')
	for row := 0; row < 8; row++ {
		sb.WriteString(strconv.Itoa(8 - row))
		for file := 0; file < 8; file++ {
			sb.WriteByte(' ')
			if cell := s.Board[row][file]; cell != "" {
				sb.WriteString(cell)
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(f.text("board.files", nil))
	sb.WriteByte('\n')

	if !s.Finished() {
		sb.WriteString(f.text("board.turn", map[string]any{"Color": s.Turn, "Number": fullmoveNumber(s.FEN)}))
		sb.WriteByte('\n')
	}
	sb.WriteString(f.text("board.material", map[string]any{"White": s.Material.White, "Black": s.Material.Black}))
	sb.WriteByte('\n')
	appendCaptured(&sb, f, "white", s.Captured.White)
	appendCaptured(&sb, f, "black", s.Captured.Black)
	if recent := formatRecentMoves(s.MovesSAN); recent != "" {
		sb.WriteString(f.text("board.last_move", map[string]any{"Move": recent}))
		sb.WriteByte('\n')
	}
	sb.WriteString(f.Status(s))
	return sb.String()
}

func appendCaptured(sb *strings.Builder, f *Formatter, color string, pieces []string) {
	if len(pieces) == 0 {
		return
	}
	sb.WriteString(f.text("board.captured", map[string]any{"Color": color, "Pieces": strings.Join(pieces, " ")}))
	sb.WriteByte('\n')
}

// Status is the one-line game state.
func (f *Formatter) Status(s *chessdto.Snapshot) string {
	winner, loser := s.WhiteName, s.BlackName
	if s.Outcome == "black" {
		winner, loser = s.BlackName, s.WhiteName
	}
	switch s.Status {
	case "CHECKMATE":
		return f.text("status.checkmate", map[string]any{"Winner": winner})
	case "STALEMATE":
		return f.text("status.stalemate", nil)
	case "DRAW":
		return f.text("status.draw", map[string]any{"Reason": f.text("draw_reason."+s.DrawReason, nil)})
	case "RESIGNED":
		return f.text("status.resigned", map[string]any{"Winner": winner, "Loser": loser})
	}
	if s.InCheck {
		return f.text("status.check", map[string]any{"Color": s.Turn})
	}
	return f.text("status.ongoing", nil)
}

// Move reports a played move and the board after it.
func (f *Formatter) Move(m *chessdto.MoveSummary) string {
	line := f.text("move.played", map[string]any{"Player": m.PlayerID, "SAN": m.PlayerSAN, "UCI": m.PlayerUCI})
	if m.State == nil {
		return line
	}
	return line + "\n" + f.Board(m.State)
}

// Moves lists the legal moves from one square.
func (f *Formatter) Moves(square string, opts []chessdto.MoveOption) string {
	if len(opts) == 0 {
		return f.text("move.no_options", map[string]any{"Square": square})
	}
	list := make([]string, 0, len(opts))
	for _, o := range opts {
		list = append(list, fmt.Sprintf("%s (%s)", o.SAN, o.UCI))
	}
	return f.text("move.options", map[string]any{"Square": square, "Moves": strings.Join(list, ", ")})
}

func (f *Formatter) Created(s *chessdto.Snapshot) string {
	line := f.text("game.created", map[string]any{"ID": s.GameID, "White": s.WhiteName, "Black": s.BlackName})
	return line + "\n" + f.Board(s)
}

func (f *Formatter) History(player string, entries []chessdto.HistoryEntry) string {
	if len(entries) == 0 {
		return f.text("history.empty", map[string]any{"Player": player})
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, f.text("history.entry", map[string]any{
			"Date":     e.EndedAt.Format("2006-01-02"),
			"Result":   e.Result,
			"Opponent": e.Opponent,
			"Color":    e.Color,
			"Method":   e.ResultMethod,
			"Moves":    (len(e.MovesSAN) + 1) / 2,
		}))
	}
	return strings.Join(lines, "\n")
}

func (f *Formatter) Help() string {
	return strings.TrimRight(f.text("help", nil), "\n")
}

func (f *Formatter) NoGame() string {
	return f.text("game.none", nil)
}

func (f *Formatter) Error(err error) string {
	return ToDomainError(f.cat, err).Error()
}

func formatRecentMoves(moves []string) string {
	if len(moves) == 0 {
		return ""
	}
	start := 0
	if len(moves) > recentMovesLimit {
		start = len(moves) - recentMovesLimit
	}
	var parts []string
	for i := start; i < len(moves); i++ {
		if i%2 == 0 {
			parts = append(parts, fmt.Sprintf("%d. %s", i/2+1, moves[i]))
		} else if i == start {
			parts = append(parts, fmt.Sprintf("%d... %s", i/2+1, moves[i]))
		} else {
			parts = append(parts, moves[i])
		}
	}
	return strings.Join(parts, " ")
}

func fullmoveNumber(fen string) string {
	fields := strings.Fields(fen)
	if len(fields) < 6 {
		return "1"
	}
	return fields[5]
}

// Line renders a single catalog entry.
func (f *Formatter) Line(key string, data any) string {
	return f.text(key, data)
}
