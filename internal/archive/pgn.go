package archive

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/park285/chess-rules/internal/rules"
)

// PGNResult maps a result token to the PGN result string.
func PGNResult(result string) string {
	switch strings.ToLower(strings.TrimSpace(result)) {
	case ResultWhite:
		return "1-0"
	case ResultBlack:
		return "0-1"
	case ResultDraw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// BuildPGN renders r as PGN text from its SAN moves. Games that did not
// start from the standard position carry SetUp and FEN tags.
func BuildPGN(r *Result) string {
	if r == nil {
		return ""
	}
	pgnResult := PGNResult(r.Result)
	date := r.EndedAt
	if date.IsZero() {
		date = time.Now()
	}

	var b strings.Builder
	b.WriteString("[Event \"Casual Game\"]\n")
	b.WriteString("[Site \"chessctl\"]\n")
	fmt.Fprintf(&b, "[Date \"%04d.%02d.%02d\"]\n", date.Year(), int(date.Month()), date.Day())
	fmt.Fprintf(&b, "[White \"%s\"]\n", sanitizePGN(r.WhiteName))
	fmt.Fprintf(&b, "[Black \"%s\"]\n", sanitizePGN(r.BlackName))
	fmt.Fprintf(&b, "[Result \"%s\"]\n", pgnResult)
	custom := r.StartFEN != "" && r.StartFEN != rules.InitialFEN
	if custom {
		b.WriteString("[SetUp \"1\"]\n")
		fmt.Fprintf(&b, "[FEN \"%s\"]\n", sanitizePGN(r.StartFEN))
	}
	if m := strings.TrimSpace(r.Method); m != "" {
		fmt.Fprintf(&b, "[Termination \"%s\"]\n", sanitizePGN(strings.ToLower(m)))
	}
	b.WriteString("\n")

	number, blackFirst := 1, false
	if custom {
		number, blackFirst = moveNumbering(r.StartFEN)
	}
	for i, san := range r.MovesSAN {
		white := (i%2 == 0) != blackFirst
		switch {
		case i == 0 && !white:
			fmt.Fprintf(&b, "%d... ", number)
		case white:
			fmt.Fprintf(&b, "%d. ", number)
		}
		b.WriteString(strings.TrimSpace(san))
		b.WriteByte(' ')
		if !white {
			number++
		}
	}
	b.WriteString(pgnResult)
	return b.String()
}

// moveNumbering reads the fullmove number and side to move from a FEN.
func moveNumbering(fen string) (int, bool) {
	fields := strings.Fields(fen)
	number := 1
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil && n > 0 {
			number = n
		}
	}
	return number, len(fields) > 1 && fields[1] == "b"
}

func sanitizePGN(s string) string {
	s = strings.ReplaceAll(s, "\\", " ")
	s = strings.ReplaceAll(s, "\"", "'")
	return strings.TrimSpace(s)
}
