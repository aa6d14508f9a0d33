package app

import (
	"fmt"

	"battleship/internal/codec"
	"battleship/internal/game"
	"battleship/internal/merkle"
	"battleship/internal/zk"
)

// commitComputerFleet salts and commits the computer's board so the human
// can check after the game that it never moved a ship.
func (g *Game) commitComputerFleet() error {
	salt, err := merkle.NewSalt()
	if err != nil {
		return fmt.Errorf("draw salt: %w", err)
	}
	c, err := merkle.Commit(g.computer.Board.Flatten(), salt)
	if err != nil {
		return fmt.Errorf("commit computer fleet: %w", err)
	}
	g.commitment = c
	g.receipt = codec.NewReceipt(g.ID, g.computer.Board, c)

	if g.opts.Prove && g.prover == nil {
		g.log.Info().Msg("compiling shot circuit")
		p, err := zk.NewProver()
		if err != nil {
			return err
		}
		g.prover = p
		g.log.Info().Int("constraints", p.Constraints()).Msg("shot prover ready")
	}
	return nil
}

// answer is the computer's proven reply to a shot at at. Without proofs it
// returns verified=false and the caller trusts the board.
func (g *Game) answer(at game.Coord) (hit, verified bool, err error) {
	if g.prover == nil {
		return false, false, nil
	}
	proof, pub, err := g.prover.Prove(g.commitment, at.Index())
	if err != nil {
		return false, false, fmt.Errorf("prove shot: %w", err)
	}
	if err := g.prover.Verify(proof, pub, g.commitment.Root); err != nil {
		return false, false, fmt.Errorf("%w: %v", ErrProofRejected, err)
	}
	g.log.Debug().Int("index", pub.Index).Uint8("hit", pub.Hit).Int("proof_bytes", len(proof)).Msg("shot proof verified")
	return pub.Hit == 1, true, nil
}
