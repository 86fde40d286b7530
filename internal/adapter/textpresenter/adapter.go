package textpresenter

import (
	"github.com/park285/chess-rules/internal/session"
	"github.com/park285/chess-rules/pkg/chessdto"
)

// MoveSummary converts a session move result into its presentation form.
func MoveSummary(res *session.MoveResult, playerID string) (*chessdto.MoveSummary, error) {
	if res == nil || res.Game == nil {
		return nil, nil
	}
	snap, err := session.BuildSnapshot(res.Game)
	if err != nil {
		return nil, err
	}
	return &chessdto.MoveSummary{
		State:     snap,
		PlayerID:  playerID,
		PlayerUCI: res.UCI,
		PlayerSAN: res.SAN,
		Finished:  snap.Finished(),
	}, nil
}
