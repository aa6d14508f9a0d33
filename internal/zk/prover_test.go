package zk

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battleship/internal/merkle"
)

func TestProveVerifyShot(t *testing.T) {
	if testing.Short() {
		t.Skip("groth16 setup is slow")
	}

	bits := make([]uint8, 100)
	bits[12], bits[13], bits[14] = 1, 1, 1
	c, err := merkle.Commit(bits, big.NewInt(987654321))
	require.NoError(t, err)

	p, err := NewProver()
	require.NoError(t, err)
	assert.Positive(t, p.Constraints())

	proof, pub, err := p.Prove(c, 13)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), pub.Hit)
	assert.Equal(t, 13, pub.Index)
	require.NoError(t, p.Verify(proof, pub, c.Root))

	missProof, missPub, err := p.Prove(c, 50)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), missPub.Hit)
	require.NoError(t, p.Verify(missProof, missPub, c.Root))

	forged := pub
	forged.Hit = 0
	assert.Error(t, p.Verify(proof, forged, c.Root), "claimed miss on a hit must fail")

	moved := pub
	moved.Index = 14
	assert.Error(t, p.Verify(proof, moved, c.Root), "proof is bound to its cell")

	assert.ErrorIs(t, p.Verify(proof, pub, big.NewInt(1)), ErrRootMismatch)
}
