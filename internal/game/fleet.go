package game

import (
	"fmt"

	"github.com/samber/lo"
)

// Orientation is the axis a ship extends along from its origin.
type Orientation rune

const (
	Horizontal Orientation = 'H' // along x
	Vertical   Orientation = 'V' // along y
)

// ParseOrientation accepts exactly 'H' or 'V'.
func ParseOrientation(r rune) (Orientation, bool) {
	switch o := Orientation(r); o {
	case Horizontal, Vertical:
		return o, true
	}
	return 0, false
}

func (o Orientation) String() string { return string(rune(o)) }

// ShipClass names a ship length in the fleet.
type ShipClass struct {
	Name   string
	Length int
}

// StandardFleet is placed in this order by both sides.
var StandardFleet = []ShipClass{
	{"Carrier", 5},
	{"Battleship", 4},
	{"Cruiser", 3},
	{"Submarine", 3},
	{"Destroyer", 2},
}

// FleetCells is the total number of squares a fleet occupies (17 for the standard fleet).
func FleetCells(classes []ShipClass) int {
	return lo.SumBy(classes, func(c ShipClass) int { return c.Length })
}

// Ship is one placed (or to be placed) run of cells.
type Ship struct {
	ShipClass
	Origin      Coord
	Orientation Orientation
	Symbol      Cell

	hits int
}

// Cells lists the squares the ship covers, origin first. Some may be off the board.
func (s Ship) Cells() []Coord {
	dx, dy := 1, 0
	if s.Orientation == Vertical {
		dx, dy = 0, 1
	}
	return lo.Times(s.Length, func(i int) Coord {
		return Coord{X: s.Origin.X + i*dx, Y: s.Origin.Y + i*dy}
	})
}

func (s *Ship) Hits() int { return s.hits }

func (s *Ship) Sunk() bool { return s.hits >= s.Length }

func (s Ship) String() string {
	return fmt.Sprintf("%s(%d) at %s %s", s.Name, s.Length, s.Origin, s.Orientation)
}

// Place validates s against b and, when legal, writes its symbol into every
// covered cell. A failed placement leaves b untouched.
func Place(b *Board, s Ship) error {
	if s.Length < 1 || s.Length > Size {
		return fmt.Errorf("place %s: length must be 1..%d: %w", s.Name, Size, ErrOutOfBounds)
	}
	if _, ok := ParseOrientation(rune(s.Orientation)); !ok {
		return fmt.Errorf("place %s: unknown orientation %q", s.Name, rune(s.Orientation))
	}
	sym := s.Symbol
	if sym == 0 {
		sym = DefaultSymbol
	}
	if !sym.IsShip() {
		return fmt.Errorf("place %s: %w", s.Name, ErrBadSymbol)
	}

	cells := s.Cells()
	for _, c := range cells {
		if !c.InBounds() {
			return fmt.Errorf("place %s: %w", s, ErrOutOfBounds)
		}
		if b.At(c).IsShip() {
			return fmt.Errorf("place %s: %w", s, ErrOverlap)
		}
	}
	for _, c := range cells {
		b.set(c, sym)
	}
	return nil
}

// Fleet is a ship board plus the ships placed on it.
type Fleet struct {
	Board *Board
	Ships []*Ship
}

func NewFleet() *Fleet { return &Fleet{Board: NewBoard()} }

// Place puts s on the fleet's board and records it.
func (f *Fleet) Place(s Ship) error {
	if s.Symbol == 0 {
		s.Symbol = DefaultSymbol
	}
	if err := Place(f.Board, s); err != nil {
		return err
	}
	s.hits = 0
	f.Ships = append(f.Ships, &s)
	return nil
}

// Reset clears the board and forgets every ship.
func (f *Fleet) Reset() {
	f.Board.Reset()
	f.Ships = nil
}

// ShipAt returns the ship covering c, or nil.
func (f *Fleet) ShipAt(c Coord) *Ship {
	ship, _ := lo.Find(f.Ships, func(s *Ship) bool {
		return lo.Contains(s.Cells(), c)
	})
	return ship
}

// Afloat is the number of ships that still have an unhit cell.
func (f *Fleet) Afloat() int {
	return lo.CountBy(f.Ships, func(s *Ship) bool { return !s.Sunk() })
}
