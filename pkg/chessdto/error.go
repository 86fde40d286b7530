package chessdto

// Error codes carried by DomainError.
const (
	CodeIllegalMove      = "illegal_move"
	CodeInvalidInput     = "invalid_input"
	CodeNotYourTurn      = "not_your_turn"
	CodeNotParticipant   = "not_participant"
	CodeGameFinished     = "game_finished"
	CodeGameNotFound     = "game_not_found"
	CodeConcurrentUpdate = "concurrent_update"
	CodeInternal         = "internal"
)

// DomainError is an error safe to show to a player.
type DomainError struct {
	Code      string
	Message   string
	Retryable bool
}

func (e DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return "chess rules error"
}
