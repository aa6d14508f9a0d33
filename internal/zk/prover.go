package zk

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	"battleship/internal/merkle"
)

var ErrRootMismatch = errors.New("proof root does not match commitment")

// ShotPublic is what a verifier learns about one shot.
type ShotPublic struct {
	Root  *big.Int `json:"root"`
	Index int      `json:"index"`
	Hit   uint8    `json:"hit"`
}

// Prover holds a compiled shot circuit and its groth16 keys. Keys live only
// in memory for the lifetime of one game.
type Prover struct {
	ccs constraint.ConstraintSystem
	pk  groth16.ProvingKey
	vk  groth16.VerifyingKey
}

// NewProver compiles the circuit and runs a fresh groth16 setup.
func NewProver() (*Prover, error) {
	var circuit ShotCircuit
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &circuit)
	if err != nil {
		return nil, fmt.Errorf("compile shot circuit: %w", err)
	}
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, fmt.Errorf("groth16 setup: %w", err)
	}
	return &Prover{ccs: ccs, pk: pk, vk: vk}, nil
}

// Constraints reports the circuit size, for logging.
func (p *Prover) Constraints() int { return p.ccs.GetNbConstraints() }

// Prove opens leaf idx of c inside the circuit and returns the serialized proof.
func (p *Prover) Prove(c *merkle.Commitment, idx int) ([]byte, ShotPublic, error) {
	o, err := c.Open(idx)
	if err != nil {
		return nil, ShotPublic{}, err
	}
	if len(o.Path) != MerkleDepth {
		return nil, ShotPublic{}, errors.New("bad path length")
	}

	var assign ShotCircuit
	assign.Bit = o.Bit
	assign.Salt = c.Salt
	for i := 0; i < MerkleDepth; i++ {
		assign.Path[i] = o.Path[i]
	}
	assign.Root = c.Root
	assign.Index = idx
	assign.Hit = o.Bit

	wit, err := frontend.NewWitness(&assign, ecc.BN254.ScalarField())
	if err != nil {
		return nil, ShotPublic{}, err
	}
	proof, err := groth16.Prove(p.ccs, p.pk, wit)
	if err != nil {
		return nil, ShotPublic{}, err
	}

	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, ShotPublic{}, err
	}
	pub := ShotPublic{Root: new(big.Int).Set(c.Root), Index: idx, Hit: o.Bit}
	return buf.Bytes(), pub, nil
}

// Verify checks a serialized proof against the expected committed root.
// A nil error means the proof is valid.
func (p *Prover) Verify(proofBin []byte, pub ShotPublic, root *big.Int) error {
	if pub.Root == nil || pub.Root.Cmp(root) != 0 {
		return ErrRootMismatch
	}
	if pub.Hit > 1 {
		return fmt.Errorf("invalid hit public output %d", pub.Hit)
	}

	var pubAssign ShotCircuit
	pubAssign.Root = root
	pubAssign.Index = pub.Index
	pubAssign.Hit = pub.Hit

	pubWit, err := frontend.NewWitness(&pubAssign, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return err
	}
	pr := groth16.NewProof(ecc.BN254)
	if _, err := pr.ReadFrom(bytes.NewReader(proofBin)); err != nil {
		return fmt.Errorf("decode proof: %w", err)
	}
	return groth16.Verify(pr, p.vk, pubWit)
}
