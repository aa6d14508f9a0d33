package game

import (
	"errors"
	"fmt"
	"strings"
)

// Size is the side length of every board.
const Size = 10

// Cell is the glyph held by one square. Ship squares hold their ship's symbol.
type Cell rune

const (
	Water Cell = '~' // also "unknown" on a guess board
	Hit   Cell = 'H'
	Miss  Cell = 'M'

	DefaultSymbol Cell = '#'
)

var (
	ErrOutOfBounds    = errors.New("coordinate out of bounds")
	ErrOverlap        = errors.New("ship overlaps another ship")
	ErrAlreadyGuessed = errors.New("cell already targeted")
	ErrBadMarker      = errors.New("guess marker must be hit or miss")
	ErrBadSymbol      = errors.New("ship symbol collides with a board marker")
)

// IsShip reports whether c is occupied by a ship.
func (c Cell) IsShip() bool { return c != Water && c != Hit && c != Miss && c != 0 }

// IsGuess reports whether c already holds a hit or miss marker.
func (c Cell) IsGuess() bool { return c == Hit || c == Miss }

// Coord addresses a square: X is the column, Y the row.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) String() string { return fmt.Sprintf("(%d, %d)", c.X, c.Y) }

func (c Coord) InBounds() bool { return c.X >= 0 && c.X < Size && c.Y >= 0 && c.Y < Size }

// Index is the row-major leaf index of c, as used by the fleet commitment.
func (c Coord) Index() int { return c.Y*Size + c.X }

// Board is a Size x Size grid stored row by row (Cells[y][x]).
type Board struct{ Cells [Size][Size]Cell }

func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// Reset fills the board with water.
func (b *Board) Reset() {
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			b.Cells[y][x] = Water
		}
	}
}

// At returns the cell at c. c must be in bounds.
func (b *Board) At(c Coord) Cell { return b.Cells[c.Y][c.X] }

func (b *Board) set(c Coord, v Cell) { b.Cells[c.Y][c.X] = v }

// Mark records a guess. Guess cells only ever go from unknown to hit or miss.
func (b *Board) Mark(c Coord, m Cell) error {
	if !m.IsGuess() {
		return ErrBadMarker
	}
	if !c.InBounds() {
		return fmt.Errorf("mark %s: %w", c, ErrOutOfBounds)
	}
	if b.At(c).IsGuess() {
		return fmt.Errorf("mark %s: %w", c, ErrAlreadyGuessed)
	}
	b.set(c, m)
	return nil
}

// Count returns the number of cells matching pred.
func (b *Board) Count(pred func(Cell) bool) int {
	n := 0
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if pred(b.Cells[y][x]) {
				n++
			}
		}
	}
	return n
}

// Flatten returns the ship bits in row-major order (1 = ship).
func (b *Board) Flatten() []uint8 {
	out := make([]uint8, Size*Size)
	k := 0
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if b.Cells[y][x].IsShip() {
				out[k] = 1
			}
			k++
		}
	}
	return out
}

// Validate checks that a ship board holds only water and ship symbols,
// with exactly as many ship cells as the standard fleet.
func (b *Board) Validate() error {
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			c := b.Cells[y][x]
			if c != Water && !c.IsShip() {
				return fmt.Errorf("board has non-ship marker %q at %s", rune(c), Coord{x, y})
			}
		}
	}
	want := FleetCells(StandardFleet)
	if got := b.Count(Cell.IsShip); got != want {
		return fmt.Errorf("board must contain exactly %d ship cells, has %d", want, got)
	}
	return nil
}

// Rows returns one string of glyphs per row.
func (b *Board) Rows() []string {
	rows := make([]string, Size)
	for y := 0; y < Size; y++ {
		var sb strings.Builder
		for x := 0; x < Size; x++ {
			sb.WriteRune(rune(b.Cells[y][x]))
		}
		rows[y] = sb.String()
	}
	return rows
}

// ParseRows is the inverse of Rows.
func ParseRows(rows []string) (*Board, error) {
	if len(rows) != Size {
		return nil, fmt.Errorf("board needs %d rows, got %d", Size, len(rows))
	}
	b := &Board{}
	for y, row := range rows {
		cells := []rune(row)
		if len(cells) != Size {
			return nil, fmt.Errorf("row %d needs %d cells, got %d", y, Size, len(cells))
		}
		for x, r := range cells {
			b.Cells[y][x] = Cell(r)
		}
	}
	return b, nil
}
