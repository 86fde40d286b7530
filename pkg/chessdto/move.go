package chessdto

// MoveOption is one legal move from a square.
type MoveOption struct {
	UCI string
	SAN string
}

// MoveSummary describes a played move and the position after it.
type MoveSummary struct {
	State     *Snapshot
	PlayerID  string
	PlayerUCI string
	PlayerSAN string
	Finished  bool
}
