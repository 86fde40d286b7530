package chessdto

import "time"

// MaterialScore is the standard piece value total per side (P1 N3 B3 R5 Q9).
type MaterialScore struct {
	White int
	Black int
}

// CapturedPieces lists piece letters each side has captured.
type CapturedPieces struct {
	White []string
	Black []string
}

// Snapshot is a read-only view of one game for presentation.
type Snapshot struct {
	GameID    string
	WhiteID   string
	WhiteName string
	BlackID   string
	BlackName string
	FEN       string
	// Board[0] is rank 8 and Board[7] rank 1; cells hold FEN piece letters
	// or "" for empty squares.
	Board      [8][8]string
	Turn       string
	Status     string
	InCheck    bool
	Winner     string
	Outcome    string
	DrawReason string
	MovesUCI   []string
	MovesSAN   []string
	LastMove   string
	MoveCount  int
	Material   MaterialScore
	Captured   CapturedPieces
	UpdatedAt  time.Time
}

// Finished reports whether the game is over.
func (s *Snapshot) Finished() bool {
	return s != nil && s.Status != "" && s.Status != "ACTIVE"
}
