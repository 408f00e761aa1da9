package input

import (
	"errors"
	"io"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// ErrQuit is returned by Listen when the user pressed a quit key.
var ErrQuit = errors.New("input: quit requested")

// Listen reads keys from r until a quit key or a read error, pushing every
// recognized action onto q in the order it was read. Before returning it
// raises stop, so a read failure acts as an implicit quit.
//
// Listen blocks on r and cannot be cancelled; run it in its own goroutine.
func Listen(r io.Reader, q *Queue, stop *Signal) error {
	defer stop.Raise()

	dec := NewDecoder(r)
	for {
		action, err := dec.Next()
		if err != nil {
			return err
		}
		switch action {
		case core.ActionNone:
			continue
		case core.ActionQuit:
			return ErrQuit
		}
		q.Push(action)
		if stop.Raised() {
			return nil
		}
	}
}
