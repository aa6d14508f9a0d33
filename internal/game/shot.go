package game

import (
	"fmt"
	"math/rand/v2"
)

// CountMode decides when a side's remaining-ship counter goes down.
type CountMode string

const (
	// CountHits decrements once per ship cell hit.
	CountHits CountMode = "hits"
	// CountSunk decrements once per ship whose last cell is hit.
	CountSunk CountMode = "sunk"
)

func ParseCountMode(s string) (CountMode, error) {
	switch m := CountMode(s); m {
	case CountHits, CountSunk:
		return m, nil
	}
	return "", fmt.Errorf("unknown counting mode %q (want %q or %q)", s, CountHits, CountSunk)
}

// StartingCount is every side's counter before the first shot.
func StartingCount() int { return len(StandardFleet) }

// ShotResult describes one resolved shot.
type ShotResult struct {
	Coord Coord
	Hit   bool
	Ship  *Ship // nil on a miss
	Sunk  bool  // the shot finished Ship off
}

// Resolve fires at c: the firer's guess board records hit or miss, and a hit
// lowers remaining according to mode. An out-of-bounds or repeated target is
// rejected without touching any state.
func Resolve(target *Fleet, guesses *Board, remaining *int, c Coord, mode CountMode) (ShotResult, error) {
	if !c.InBounds() {
		return ShotResult{}, fmt.Errorf("fire at %s: %w", c, ErrOutOfBounds)
	}
	if guesses.At(c).IsGuess() {
		return ShotResult{}, fmt.Errorf("fire at %s: %w", c, ErrAlreadyGuessed)
	}

	res := ShotResult{Coord: c}
	if !target.Board.At(c).IsShip() {
		if err := guesses.Mark(c, Miss); err != nil {
			return ShotResult{}, err
		}
		return res, nil
	}

	if err := guesses.Mark(c, Hit); err != nil {
		return ShotResult{}, err
	}
	res.Hit = true
	if ship := target.ShipAt(c); ship != nil {
		ship.hits++
		res.Ship = ship
		res.Sunk = ship.Sunk()
	}

	switch mode {
	case CountSunk:
		if res.Sunk && *remaining > 0 {
			*remaining--
		}
	default:
		if *remaining > 0 {
			*remaining--
		}
	}
	return res, nil
}

// RandomTarget samples uniform coordinates until one is still unknown on
// guesses. ok is false when every cell has already been fired at.
func RandomTarget(rng *rand.Rand, guesses *Board) (c Coord, ok bool) {
	if guesses.Count(Cell.IsGuess) == Size*Size {
		return Coord{}, false
	}
	for {
		c = Coord{X: rng.IntN(Size), Y: rng.IntN(Size)}
		if !guesses.At(c).IsGuess() {
			return c, true
		}
	}
}
