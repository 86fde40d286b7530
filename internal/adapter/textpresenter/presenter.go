package textpresenter

import (
	"fmt"
	"io"
	"strings"
)

// Presenter writes formatted blocks to an output stream.
type Presenter struct {
	out io.Writer
}

func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

// Say writes message followed by a newline. Blank messages are dropped.
func (p *Presenter) Say(message string) error {
	if p == nil || p.out == nil {
		return nil
	}
	text := strings.TrimRight(message, "\n")
	if strings.TrimSpace(text) == "" {
		return nil
	}
	_, err := fmt.Fprintln(p.out, text)
	return err
}
