package console

import (
	"io"

	"battleship/internal/game"
)

// Script is a canned console: it answers prompts from queued coordinates and
// orientations and records everything the game says. Running out of answers
// behaves like a closed stdin.
type Script struct {
	Coords       []game.Coord
	Orientations []game.Orientation

	Prompts       []string
	Announcements []string
	Frames        []string
}

func (s *Script) ReadCoord(prompt string) (game.Coord, error) {
	s.Prompts = append(s.Prompts, prompt)
	if len(s.Coords) == 0 {
		return game.Coord{}, io.EOF
	}
	c := s.Coords[0]
	s.Coords = s.Coords[1:]
	return c, nil
}

func (s *Script) ReadOrientation(prompt string) (game.Orientation, error) {
	s.Prompts = append(s.Prompts, prompt)
	if len(s.Orientations) == 0 {
		return 0, io.EOF
	}
	o := s.Orientations[0]
	s.Orientations = s.Orientations[1:]
	return o, nil
}

func (s *Script) Announce(msg string) { s.Announcements = append(s.Announcements, msg) }

func (s *Script) Render(b *game.Board, reveal bool) { s.Frames = append(s.Frames, b.Text(reveal)) }

// Place queues one ship placement answer.
func (s *Script) Place(x, y int, o game.Orientation) *Script {
	s.Coords = append(s.Coords, game.Coord{X: x, Y: y})
	s.Orientations = append(s.Orientations, o)
	return s
}

// Fire queues shot answers.
func (s *Script) Fire(cs ...game.Coord) *Script {
	s.Coords = append(s.Coords, cs...)
	return s
}
