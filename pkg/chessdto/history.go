package chessdto

import "time"

// HistoryEntry is an archived game as seen from one player.
type HistoryEntry struct {
	GameID       string
	Opponent     string
	Color        string
	Result       string
	ResultMethod string
	MovesSAN     []string
	PGN          string
	EndedAt      time.Time
	Duration     time.Duration
}
