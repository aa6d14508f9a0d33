package merkle

import (
	"fmt"
	"math/big"
)

// Commitment hides a ship layout behind a salted Merkle root until the
// owner reveals the board and salt.
type Commitment struct {
	Tree *Tree
	Salt *big.Int
	Root *big.Int // Salted(Salt, Tree.Root())

	bits []uint8
}

// Commit builds the tree over bits (one per board cell) and salts its root.
func Commit(bits []uint8, salt *big.Int) (*Commitment, error) {
	t, err := BuildTree(bits, Leaves, HashLeaf(0))
	if err != nil {
		return nil, err
	}
	return &Commitment{
		Tree: t,
		Salt: new(big.Int).Set(salt),
		Root: Salted(salt, t.Root()),
		bits: append([]uint8(nil), bits...),
	}, nil
}

// Opening is everything needed to check one cell against a salted root.
type Opening struct {
	Index int
	Bit   uint8
	Path  []*big.Int
	Dir   []uint8
}

// Open returns the opening for leaf idx.
func (c *Commitment) Open(idx int) (Opening, error) {
	if idx < 0 || idx >= len(c.bits) {
		return Opening{}, fmt.Errorf("open leaf %d: out of range", idx)
	}
	path, dir, err := c.Tree.Path(idx)
	if err != nil {
		return Opening{}, err
	}
	return Opening{Index: idx, Bit: c.bits[idx], Path: path, Dir: dir}, nil
}

// VerifyOpening checks o against root using salt.
func VerifyOpening(root, salt *big.Int, o Opening) bool {
	for i, d := range o.Dir {
		if int(d) != (o.Index>>i)&1 {
			return false
		}
	}
	treeRoot, err := RootFromPath(o.Bit, o.Path, o.Dir)
	if err != nil {
		return false
	}
	return Salted(salt, treeRoot).Cmp(root) == 0
}

// Hex formats a field element the way commitments are shown to players.
func Hex(x *big.Int) string { return fmt.Sprintf("0x%x", x) }

// ParseHex is the inverse of Hex.
func ParseHex(s string) (*big.Int, error) {
	if len(s) < 3 || (s[:2] != "0x" && s[:2] != "0X") {
		return nil, fmt.Errorf("invalid hex %q: missing 0x prefix", s)
	}
	n, ok := new(big.Int).SetString(s[2:], 16)
	if !ok {
		return nil, fmt.Errorf("invalid hex %q", s)
	}
	return n, nil
}
