package merkle

import (
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	bnmimc "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

// Leaves is the padded leaf count for a 10x10 board; Depth is log2(Leaves).
const (
	Leaves = 128
	Depth  = 7
)

// encode BN254 field elements as 32-byte big-endian
func feBytes(x *big.Int) []byte {
	b := x.Bytes()
	if len(b) == 32 {
		return b
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

func bytesToFE(b []byte) *big.Int { return new(big.Int).SetBytes(b) }

// HashLeaf is MiMC(bit), matching the in-circuit leaf hash.
func HashLeaf(bit uint8) *big.Int {
	h := bnmimc.NewMiMC()
	h.Write(feBytes(new(big.Int).SetUint64(uint64(bit))))
	return bytesToFE(h.Sum(nil))
}

// HashNode is MiMC(left || right).
func HashNode(left, right *big.Int) *big.Int {
	h := bnmimc.NewMiMC()
	h.Write(feBytes(left))
	h.Write(feBytes(right))
	return bytesToFE(h.Sum(nil))
}

// Tree is a fixed-size binary Merkle tree stored level by level.
type Tree struct {
	Depth  int          `json:"depth"`
	Levels [][]*big.Int `json:"levels"` // Levels[0]=leaves, Levels[Depth]=root
}

// BuildTree hashes bits into the first leaves and pads the rest with padLeaf.
func BuildTree(bits []uint8, size int, padLeaf *big.Int) (*Tree, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, errors.New("size must be power of two")
	}
	if len(bits) > size {
		return nil, errors.New("too many leaves")
	}

	leaves := make([]*big.Int, size)
	for i := range leaves {
		if i < len(bits) {
			leaves[i] = HashLeaf(bits[i])
		} else {
			leaves[i] = new(big.Int).Set(padLeaf)
		}
	}
	levels := [][]*big.Int{leaves}

	for n := size; n > 1; n /= 2 {
		prev := levels[len(levels)-1]
		up := make([]*big.Int, n/2)
		for i := range up {
			up[i] = HashNode(prev[2*i], prev[2*i+1])
		}
		levels = append(levels, up)
	}

	return &Tree{Depth: len(levels) - 1, Levels: levels}, nil
}

func (t *Tree) Root() *big.Int { return new(big.Int).Set(t.Levels[len(t.Levels)-1][0]) }

// Path returns sibling hashes and direction bits for leaf idx.
// dir[i]=0: current node is a left child; dir[i]=1: right child.
func (t *Tree) Path(idx int) (path []*big.Int, dir []uint8, err error) {
	if idx < 0 || idx >= len(t.Levels[0]) {
		return nil, nil, errors.New("leaf index out of range")
	}
	path = make([]*big.Int, 0, t.Depth)
	dir = make([]uint8, 0, t.Depth)
	cur := idx
	for level := 0; level < t.Depth; level++ {
		sib := cur + 1
		var d uint8
		if cur%2 == 1 {
			sib = cur - 1
			d = 1
		}
		path = append(path, new(big.Int).Set(t.Levels[level][sib]))
		dir = append(dir, d)
		cur /= 2
	}
	return path, dir, nil
}

// RootFromPath recomputes the tree root from one leaf bit and its path.
func RootFromPath(bit uint8, path []*big.Int, dir []uint8) (*big.Int, error) {
	if len(path) != len(dir) {
		return nil, errors.New("path and direction lengths differ")
	}
	cur := HashLeaf(bit)
	for i := range path {
		if dir[i] == 1 {
			cur = HashNode(path[i], cur)
		} else {
			cur = HashNode(cur, path[i])
		}
	}
	return cur, nil
}

// NewSalt draws a random BN254 scalar.
func NewSalt() (*big.Int, error) {
	salt, err := rand.Int(rand.Reader, ecc.BN254.ScalarField())
	if err != nil {
		return nil, err
	}
	return salt, nil
}

// Salted binds a tree root to a salt so equal boards get different commitments.
func Salted(salt, treeRoot *big.Int) *big.Int { return HashNode(salt, treeRoot) }
