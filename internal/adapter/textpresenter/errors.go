package textpresenter

import (
	"errors"

	"github.com/park285/chess-rules/internal/msgcat"
	"github.com/park285/chess-rules/internal/rules"
	"github.com/park285/chess-rules/internal/session"
	"github.com/park285/chess-rules/pkg/chessdto"
)

// ToDomainError maps engine and session errors to player-facing codes.
// Messages are rendered from cat when it is non-nil.
func ToDomainError(cat *msgcat.Catalog, err error) chessdto.DomainError {
	if err == nil {
		return chessdto.DomainError{}
	}
	var de chessdto.DomainError
	if errors.As(err, &de) {
		return de
	}

	code, retry := chessdto.CodeInternal, false
	switch {
	case errors.Is(err, session.ErrConcurrentUpdate):
		code, retry = chessdto.CodeConcurrentUpdate, true
	case errors.Is(err, session.ErrGameNotFound):
		code = chessdto.CodeGameNotFound
	case errors.Is(err, session.ErrNotParticipant):
		code = chessdto.CodeNotParticipant
	case errors.Is(err, session.ErrNotYourTurn):
		code = chessdto.CodeNotYourTurn
	case errors.Is(err, session.ErrGameFinished), errors.Is(err, rules.ErrGameOver):
		code = chessdto.CodeGameFinished
	case errors.Is(err, rules.ErrIllegalMove):
		code = chessdto.CodeIllegalMove
	case errors.Is(err, rules.ErrInvalidSquare),
		errors.Is(err, rules.ErrInvalidNotation),
		errors.Is(err, rules.ErrInvalidFEN),
		errors.Is(err, session.ErrInvalidRequest):
		code = chessdto.CodeInvalidInput
	}

	msg := code
	if cat != nil {
		msg = cat.Text("errors."+code, map[string]any{"Detail": err.Error()})
	}
	return chessdto.DomainError{Code: code, Message: msg, Retryable: retry}
}
