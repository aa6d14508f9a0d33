package console

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battleship/internal/game"
)

func TestReadCoordRepromptsOnGarbage(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("abc 1 2\n3 x\n  4   7\n"), &out)

	c, err := term.ReadCoord("Fire (x y): ")
	require.NoError(t, err)
	assert.Equal(t, game.Coord{X: 4, Y: 7}, c)
	assert.Equal(t, "Fire (x y): "+msgBadCoord+msgBadCoord, out.String())
}

func TestReadCoordAcrossLines(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("3\n\n4\n5 6\n"), &out)

	c, err := term.ReadCoord("Fire (x y): ")
	require.NoError(t, err)
	assert.Equal(t, game.Coord{X: 3, Y: 4}, c)
	assert.Equal(t, "Fire (x y): ", out.String())

	c, err = term.ReadCoord("")
	require.NoError(t, err)
	assert.Equal(t, game.Coord{X: 5, Y: 6}, c)
}

func TestReadCoordSurvivesHugeLine(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader(strings.Repeat("x", 70000)+"\n3 4\n"), &out)

	c, err := term.ReadCoord("")
	require.NoError(t, err)
	assert.Equal(t, game.Coord{X: 3, Y: 4}, c)
	assert.Equal(t, msgBadCoord, out.String())
}

func TestReadCoordThenOrientationOnOneLine(t *testing.T) {
	term := NewTerminal(strings.NewReader("2 5 V\n"), io.Discard)

	c, err := term.ReadCoord("")
	require.NoError(t, err)
	assert.Equal(t, game.Coord{X: 2, Y: 5}, c)
	o, err := term.ReadOrientation("")
	require.NoError(t, err)
	assert.Equal(t, game.Vertical, o)
}

func TestReadCoordPartialLastLine(t *testing.T) {
	c, err := NewTerminal(strings.NewReader("8 9"), io.Discard).ReadCoord("")
	require.NoError(t, err)
	assert.Equal(t, game.Coord{X: 8, Y: 9}, c)
}

func TestReadCoordKeepsOutOfRangeNumbers(t *testing.T) {
	term := NewTerminal(strings.NewReader("-1 12\n"), io.Discard)
	c, err := term.ReadCoord("")
	require.NoError(t, err)
	assert.Equal(t, game.Coord{X: -1, Y: 12}, c)
}

func TestReadOrientation(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("x\nh\nHello\nVxyz\n\n V\n"), &out)

	o, err := term.ReadOrientation("Dir: ")
	require.NoError(t, err)
	assert.Equal(t, game.Vertical, o)
	assert.Equal(t, 4, strings.Count(out.String(), msgBadOrientation))
}

func TestReadEOF(t *testing.T) {
	term := NewTerminal(strings.NewReader("nope\n"), io.Discard)
	_, err := term.ReadCoord("")
	assert.ErrorIs(t, err, io.EOF)

	_, err = NewTerminal(strings.NewReader(""), io.Discard).ReadOrientation("")
	assert.ErrorIs(t, err, io.EOF)
}

func TestAnnounceAndRender(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader(""), &out)
	term.Announce("HIT at (1, 2)!")
	term.Render(game.NewBoard(), false)

	assert.True(t, strings.HasPrefix(out.String(), "HIT at (1, 2)!\n  0 1 2"))
	assert.True(t, strings.HasSuffix(out.String(), "~ \n\n"))
}

func TestScriptRunsDry(t *testing.T) {
	s := (&Script{}).Place(1, 2, game.Horizontal).Fire(game.Coord{X: 3, Y: 3})

	c, err := s.ReadCoord("a")
	require.NoError(t, err)
	assert.Equal(t, game.Coord{X: 1, Y: 2}, c)
	o, err := s.ReadOrientation("b")
	require.NoError(t, err)
	assert.Equal(t, game.Horizontal, o)
	_, err = s.ReadCoord("c")
	require.NoError(t, err)

	_, err = s.ReadCoord("d")
	assert.ErrorIs(t, err, io.EOF)
	_, err = s.ReadOrientation("e")
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, s.Prompts)
}
