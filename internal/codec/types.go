package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"battleship/internal/game"
	"battleship/internal/merkle"
)

var ErrRootMismatch = errors.New("revealed board does not match committed root")

// Receipt is the end-of-game reveal of the computer's fleet: the board, the
// salt behind the commitment announced at setup, and every shot fired at it.
type Receipt struct {
	GameID  string       `json:"gameId"`
	RootHex string       `json:"rootHex"`
	SaltHex string       `json:"saltHex"`
	Board   []string     `json:"board"`
	Shots   []ShotRecord `json:"shots"`
}

type ShotRecord struct {
	X        int  `json:"x"`
	Y        int  `json:"y"`
	Hit      bool `json:"hit"`
	Verified bool `json:"verified,omitempty"` // a shot proof was checked at the time
}

// NewReceipt snapshots a committed board.
func NewReceipt(gameID string, b *game.Board, c *merkle.Commitment) *Receipt {
	return &Receipt{
		GameID:  gameID,
		RootHex: merkle.Hex(c.Root),
		SaltHex: merkle.Hex(c.Salt),
		Board:   b.Rows(),
		Shots:   []ShotRecord{},
	}
}

func (r *Receipt) Record(res game.ShotResult, verified bool) {
	r.Shots = append(r.Shots, ShotRecord{X: res.Coord.X, Y: res.Coord.Y, Hit: res.Hit, Verified: verified})
}

// Check recomputes the salted root from the revealed board and confirms
// every recorded shot result against it.
func Check(r *Receipt) error {
	root, err := merkle.ParseHex(r.RootHex)
	if err != nil {
		return fmt.Errorf("root: %w", err)
	}
	salt, err := merkle.ParseHex(r.SaltHex)
	if err != nil {
		return fmt.Errorf("salt: %w", err)
	}
	b, err := game.ParseRows(r.Board)
	if err != nil {
		return err
	}
	if err := b.Validate(); err != nil {
		return err
	}
	c, err := merkle.Commit(b.Flatten(), salt)
	if err != nil {
		return err
	}
	if c.Root.Cmp(root) != 0 {
		return ErrRootMismatch
	}
	for i, s := range r.Shots {
		at := game.Coord{X: s.X, Y: s.Y}
		if !at.InBounds() {
			return fmt.Errorf("shot %d: %s: %w", i+1, at, game.ErrOutOfBounds)
		}
		if b.At(at).IsShip() != s.Hit {
			return fmt.Errorf("shot %d at %s reported hit=%v but board disagrees", i+1, at, s.Hit)
		}
	}
	return nil
}

func Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func DecodeReceipt(rd io.Reader) (*Receipt, error) {
	var r Receipt
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode receipt: %w", err)
	}
	return &r, nil
}
