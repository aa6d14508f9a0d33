package game

import (
	"errors"
	"math/rand/v2"
)

const placementBudget = 10000

var ErrPlacementBudget = errors.New("failed to place ships")

// RandomShip draws a uniformly random origin and orientation for class.
// The result is not necessarily legal.
func RandomShip(rng *rand.Rand, class ShipClass) Ship {
	o := Horizontal
	if rng.IntN(2) == 0 {
		o = Vertical
	}
	return Ship{
		ShipClass:   class,
		Origin:      Coord{X: rng.IntN(Size), Y: rng.IntN(Size)},
		Orientation: o,
		Symbol:      DefaultSymbol,
	}
}

// PlaceRandom adds every class to f at random legal positions, retrying
// rejected draws. No adjacency rule is enforced, only bounds and overlap.
func PlaceRandom(f *Fleet, rng *rand.Rand, classes []ShipClass) error {
	tries := 0
	for _, class := range classes {
		for {
			if tries >= placementBudget {
				return ErrPlacementBudget
			}
			tries++
			if err := f.Place(RandomShip(rng, class)); err == nil {
				break
			}
		}
	}
	return nil
}

// RandomFleet builds a fresh board holding the standard fleet.
func RandomFleet(rng *rand.Rand) (*Fleet, error) {
	f := NewFleet()
	if err := PlaceRandom(f, rng, StandardFleet); err != nil {
		return nil, err
	}
	return f, nil
}
