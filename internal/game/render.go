package game

import (
	"io"
	"strconv"
	"strings"
)

// Render writes the labelled grid followed by a blank line. Without reveal,
// ship cells are drawn as water; hit and miss markers always show.
func (b *Board) Render(w io.Writer, reveal bool) error {
	_, err := io.WriteString(w, b.Text(reveal))
	return err
}

// Text is Render into a string.
func (b *Board) Text(reveal bool) string {
	var sb strings.Builder
	sb.WriteString("  ")
	for x := 0; x < Size; x++ {
		sb.WriteString(strconv.Itoa(x))
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')

	for y := 0; y < Size; y++ {
		sb.WriteString(strconv.Itoa(y))
		sb.WriteByte(' ')
		for x := 0; x < Size; x++ {
			c := b.Cells[y][x]
			if c.IsShip() && !reveal {
				c = Water
			}
			sb.WriteRune(rune(c))
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	return sb.String()
}

func (b *Board) String() string { return b.Text(true) }
