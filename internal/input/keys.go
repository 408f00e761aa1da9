package input

import (
	"bufio"
	"io"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b
)

// byteActions maps single-byte keys to actions.
var byteActions = map[byte]core.Action{
	'a': core.ActionLeft, 'h': core.ActionLeft,
	'd': core.ActionRight, 'l': core.ActionRight,
	's': core.ActionDown, 'j': core.ActionDown,
	'w': core.ActionRotate, 'k': core.ActionRotate,
	'z': core.ActionRotate, 'x': core.ActionRotate, ' ': core.ActionRotate,
	'p': core.ActionPause, 'r': core.ActionRestart,
	'q': core.ActionQuit, keyCtrlC: core.ActionQuit,
}

// arrowActions maps the final byte of an arrow key escape sequence.
var arrowActions = map[byte]core.Action{
	'A': core.ActionRotate,
	'B': core.ActionDown,
	'C': core.ActionRight,
	'D': core.ActionLeft,
}

// escState tracks how far into an escape sequence the decoder is.
type escState uint8

const (
	escNone  escState = iota
	escStart          // ESC seen
	escIntro          // ESC [ or ESC O seen, parameters may follow
)

// Decoder turns raw terminal bytes into actions. Escape sequences may be
// split across reads; the decoder keeps its place between calls to Next.
type Decoder struct {
	r     *bufio.Reader
	state escState
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Next blocks until one key is complete and returns its action. Unknown keys
// map to ActionNone. Arrow keys arrive as ESC [ X or ESC O X, optionally
// with modifier parameters. An ESC that does not start a sequence is dropped
// and the byte after it is decoded on its own.
func (d *Decoder) Next() (core.Action, error) {
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return core.ActionNone, err
		}
		if action, done := d.feed(b); done {
			return action, nil
		}
	}
}

// feed advances the decoder by one byte and reports whether a key ended.
func (d *Decoder) feed(b byte) (core.Action, bool) {
	switch d.state {
	case escStart:
		switch b {
		case '[', 'O':
			d.state = escIntro
			return core.ActionNone, false
		case keyEscape:
			return core.ActionNone, false
		}
		d.state = escNone
	case escIntro:
		// Parameter bytes such as "1;5" in ESC [ 1 ; 5 C
		if b >= 0x30 && b <= 0x3f {
			return core.ActionNone, false
		}
		d.state = escNone
		return arrowActions[b], true
	}

	if b == keyEscape {
		d.state = escStart
		return core.ActionNone, false
	}
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	return byteActions[b], true
}
