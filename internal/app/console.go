package app

import "battleship/internal/game"

// Console is the interactive channel the game talks through. Reads block
// until the player supplies a well-formed answer or the input closes.
type Console interface {
	ReadCoord(prompt string) (game.Coord, error)
	ReadOrientation(prompt string) (game.Orientation, error)
	Announce(msg string)
	Render(b *game.Board, reveal bool)
}
