package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRand(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }

func TestPlaceHorizontalCarrierAtOrigin(t *testing.T) {
	b := NewBoard()
	err := Place(b, Ship{ShipClass: ShipClass{"Carrier", 5}, Origin: Coord{0, 0}, Orientation: Horizontal, Symbol: '#'})
	require.NoError(t, err)

	for x := 0; x < 5; x++ {
		assert.True(t, b.At(Coord{x, 0}).IsShip(), "(%d, 0) should be ship", x)
	}
	assert.Equal(t, Water, b.At(Coord{5, 0}))
	assert.Equal(t, 5, b.Count(Cell.IsShip))
}

func TestPlaceOutOfBoundsLeavesBoardUnchanged(t *testing.T) {
	b := NewBoard()
	before := b.Cells

	err := Place(b, Ship{ShipClass: ShipClass{"Battleship", 4}, Origin: Coord{0, 7}, Orientation: Vertical})
	require.ErrorIs(t, err, ErrOutOfBounds)
	assert.Equal(t, before, b.Cells)

	err = Place(b, Ship{ShipClass: ShipClass{"Cruiser", 3}, Origin: Coord{-1, 0}, Orientation: Horizontal})
	require.ErrorIs(t, err, ErrOutOfBounds)
	assert.Equal(t, before, b.Cells)
}

func TestPlaceOverlapLeavesExistingShip(t *testing.T) {
	b := NewBoard()
	require.NoError(t, Place(b, Ship{ShipClass: ShipClass{"Cruiser", 3}, Origin: Coord{2, 2}, Orientation: Horizontal, Symbol: 'C'}))
	before := b.Cells

	err := Place(b, Ship{ShipClass: ShipClass{"Submarine", 3}, Origin: Coord{3, 0}, Orientation: Vertical, Symbol: 'S'})
	require.ErrorIs(t, err, ErrOverlap)
	assert.Equal(t, before, b.Cells)
	assert.Equal(t, Cell('C'), b.At(Coord{3, 2}))
}

func TestPlaceRejectsBadInput(t *testing.T) {
	b := NewBoard()
	assert.Error(t, Place(b, Ship{ShipClass: ShipClass{"Zero", 0}, Origin: Coord{0, 0}, Orientation: Horizontal}))
	assert.Error(t, Place(b, Ship{ShipClass: ShipClass{"Long", 11}, Origin: Coord{0, 0}, Orientation: Horizontal}))
	assert.Error(t, Place(b, Ship{ShipClass: ShipClass{"Diag", 2}, Origin: Coord{0, 0}, Orientation: 'D'}))
	assert.ErrorIs(t, Place(b, Ship{ShipClass: ShipClass{"Marker", 2}, Origin: Coord{0, 0}, Orientation: Horizontal, Symbol: Hit}), ErrBadSymbol)
	assert.Equal(t, 0, b.Count(Cell.IsShip))
}

func TestShipCellsContiguous(t *testing.T) {
	s := Ship{ShipClass: ShipClass{"Battleship", 4}, Origin: Coord{6, 3}, Orientation: Vertical}
	assert.Equal(t, []Coord{{6, 3}, {6, 4}, {6, 5}, {6, 6}}, s.Cells())

	s.Orientation = Horizontal
	assert.Equal(t, []Coord{{6, 3}, {7, 3}, {8, 3}, {9, 3}}, s.Cells())
}

func TestParseOrientation(t *testing.T) {
	o, ok := ParseOrientation('H')
	assert.True(t, ok)
	assert.Equal(t, Horizontal, o)
	o, ok = ParseOrientation('V')
	assert.True(t, ok)
	assert.Equal(t, Vertical, o)
	_, ok = ParseOrientation('h')
	assert.False(t, ok)
	_, ok = ParseOrientation('X')
	assert.False(t, ok)
}

func TestRandomFleetIsLegal(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		f, err := RandomFleet(testRand(seed))
		require.NoError(t, err)
		require.Len(t, f.Ships, len(StandardFleet))
		require.NoError(t, f.Board.Validate())

		seen := map[Coord]bool{}
		for i, s := range f.Ships {
			assert.Equal(t, StandardFleet[i], s.ShipClass)
			cells := s.Cells()
			require.Len(t, cells, s.Length)
			for _, c := range cells {
				require.True(t, c.InBounds(), "seed %d: %s leaves the board", seed, s)
				require.False(t, seen[c], "seed %d: %s overlaps at %s", seed, s, c)
				seen[c] = true
			}
		}
		assert.Len(t, seen, FleetCells(StandardFleet))
	}
}

func TestRandomFleetDeterministicPerSeed(t *testing.T) {
	a, err := RandomFleet(testRand(7))
	require.NoError(t, err)
	b, err := RandomFleet(testRand(7))
	require.NoError(t, err)
	assert.Equal(t, a.Board.Cells, b.Board.Cells)
}

func TestPlaceRandomBudget(t *testing.T) {
	f := NewFleet()
	// Fill every row so nothing else fits.
	for y := 0; y < Size; y++ {
		require.NoError(t, f.Place(Ship{ShipClass: ShipClass{"Row", Size}, Origin: Coord{0, y}, Orientation: Horizontal}))
	}
	err := PlaceRandom(f, testRand(1), []ShipClass{{"Destroyer", 2}})
	assert.ErrorIs(t, err, ErrPlacementBudget)
}

func TestShipAtAndAfloat(t *testing.T) {
	f := NewFleet()
	require.NoError(t, f.Place(Ship{ShipClass: ShipClass{"Destroyer", 2}, Origin: Coord{4, 4}, Orientation: Vertical}))

	s := f.ShipAt(Coord{4, 5})
	require.NotNil(t, s)
	assert.Equal(t, "Destroyer", s.Name)
	assert.Nil(t, f.ShipAt(Coord{5, 4}))
	assert.Equal(t, 1, f.Afloat())

	f.Reset()
	assert.Empty(t, f.Ships)
	assert.Equal(t, 0, f.Board.Count(Cell.IsShip))
}

func TestFleetCells(t *testing.T) {
	assert.Equal(t, 17, FleetCells(StandardFleet))
}
