package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"battleship/internal/game"
)

const (
	msgBadCoord       = "Invalid input. Please enter valid coordinates (x y): "
	msgBadOrientation = "Invalid input. Please enter 'H' or 'V' for direction: "
)

// Terminal is the interactive text channel: prompts on out, answers read
// as whitespace-separated tokens from in. A token may sit on a later line
// than the one before it. A malformed answer discards the rest of its line
// and is re-prompted.
type Terminal struct {
	in      *bufio.Reader
	out     io.Writer
	pending []string // unread tokens of the current line
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// ReadCoord blocks until two integers arrive.
// The integers are not bounds-checked here.
func (t *Terminal) ReadCoord(prompt string) (game.Coord, error) {
	fmt.Fprint(t.out, prompt)
	for {
		x, ok, err := t.readInt()
		if err != nil {
			return game.Coord{}, err
		}
		if ok {
			var y int
			y, ok, err = t.readInt()
			if err != nil {
				return game.Coord{}, err
			}
			if ok {
				return game.Coord{X: x, Y: y}, nil
			}
		}
		t.discardLine()
		fmt.Fprint(t.out, msgBadCoord)
	}
}

// ReadOrientation blocks until a lone 'H' or 'V' token arrives.
func (t *Terminal) ReadOrientation(prompt string) (game.Orientation, error) {
	fmt.Fprint(t.out, prompt)
	for {
		tok, err := t.token()
		if err != nil {
			return 0, err
		}
		if utf8.RuneCountInString(tok) == 1 {
			r, _ := utf8.DecodeRuneInString(tok)
			if o, ok := game.ParseOrientation(r); ok {
				return o, nil
			}
		}
		t.discardLine()
		fmt.Fprint(t.out, msgBadOrientation)
	}
}

func (t *Terminal) Announce(msg string) { fmt.Fprintln(t.out, msg) }

func (t *Terminal) Render(b *game.Board, reveal bool) { _ = b.Render(t.out, reveal) }

// token returns the next whitespace-separated word, reading further lines
// as needed. Lines have no length limit.
func (t *Terminal) token() (string, error) {
	for len(t.pending) == 0 {
		line, err := t.in.ReadString('\n')
		t.pending = strings.Fields(line)
		if err != nil && len(t.pending) == 0 {
			return "", err
		}
	}
	tok := t.pending[0]
	t.pending = t.pending[1:]
	return tok, nil
}

func (t *Terminal) readInt() (n int, ok bool, err error) {
	tok, err := t.token()
	if err != nil {
		return 0, false, err
	}
	n, convErr := strconv.Atoi(tok)
	return n, convErr == nil, nil
}

func (t *Terminal) discardLine() { t.pending = nil }
