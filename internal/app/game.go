package app

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"battleship/internal/codec"
	"battleship/internal/game"
	"battleship/internal/merkle"
	"battleship/internal/zk"
)

var ErrProofRejected = errors.New("shot proof rejected")

// Phase is the game's position in Setup -> Playing -> Finished.
type Phase int

const (
	Setup Phase = iota
	Playing
	Finished
)

func (p Phase) String() string {
	switch p {
	case Setup:
		return "setup"
	case Playing:
		return "playing"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

type Side int

const (
	Human Side = iota
	Computer
)

func (s Side) String() string {
	if s == Computer {
		return "computer"
	}
	return "human"
}

type Options struct {
	Counting game.CountMode
	Prove    bool // the computer backs every answer with a zk proof
}

// Outcome summarises a finished game.
type Outcome struct {
	GameID        string
	Winner        Side
	HumanShots    int
	ComputerShots int
	Receipt       *codec.Receipt
}

// Game owns both fleets, both guess boards and both counters for one match.
// It is not safe for concurrent use.
type Game struct {
	ID string

	opts Options
	con  Console
	rng  *rand.Rand
	log  zerolog.Logger

	phase    Phase
	human    *game.Fleet
	computer *game.Fleet

	humanGuesses    *game.Board // what the human knows about the computer's board
	computerGuesses *game.Board // what the computer knows about the human's board

	humanLeft, computerLeft   int
	humanShots, computerShots int

	commitment *merkle.Commitment
	prover     *zk.Prover
	receipt    *codec.Receipt
}

func New(con Console, rng *rand.Rand, log zerolog.Logger, opts Options) *Game {
	if opts.Counting == "" {
		opts.Counting = game.CountHits
	}
	id := uuid.NewString()
	return &Game{
		ID:              id,
		opts:            opts,
		con:             con,
		rng:             rng,
		log:             log.With().Str("game", id).Logger(),
		human:           game.NewFleet(),
		computer:        game.NewFleet(),
		humanGuesses:    game.NewBoard(),
		computerGuesses: game.NewBoard(),
	}
}

func (g *Game) Phase() Phase { return g.phase }

// Remaining returns the human's and the computer's counters.
func (g *Game) Remaining() (human, computer int) { return g.humanLeft, g.computerLeft }

// Run plays a whole game: setup, alternating turns, result.
func (g *Game) Run() (*Outcome, error) {
	if err := g.Setup(); err != nil {
		return nil, err
	}
	if err := g.play(); err != nil {
		return nil, err
	}
	return g.finish(), nil
}

// Setup resets every board, places and commits the computer fleet, then
// places the human fleet interactively.
func (g *Game) Setup() error {
	g.phase = Setup
	g.human.Reset()
	g.computer.Reset()
	g.humanGuesses.Reset()
	g.computerGuesses.Reset()
	g.humanLeft, g.computerLeft = game.StartingCount(), game.StartingCount()
	g.humanShots, g.computerShots = 0, 0

	if err := game.PlaceRandom(g.computer, g.rng, game.StandardFleet); err != nil {
		return fmt.Errorf("place computer fleet: %w", err)
	}
	if err := g.commitComputerFleet(); err != nil {
		return err
	}
	g.con.Announce(fmt.Sprintf("Computer fleet committed: %s", merkle.Hex(g.commitment.Root)))

	if err := g.placeHumanFleet(); err != nil {
		return fmt.Errorf("place human fleet: %w", err)
	}

	g.phase = Playing
	g.log.Info().Str("phase", g.phase.String()).Str("counting", string(g.opts.Counting)).
		Bool("prove", g.opts.Prove).Msg("fleets placed")
	return nil
}

func (g *Game) placeHumanFleet() error {
	for _, class := range game.StandardFleet {
		for {
			at, err := g.con.ReadCoord(fmt.Sprintf("Enter the starting coordinates (x y) for your %d-length ship: ", class.Length))
			if err != nil {
				return err
			}
			o, err := g.con.ReadOrientation("Enter the direction (H for horizontal, V for vertical): ")
			if err != nil {
				return err
			}
			err = g.human.Place(game.Ship{ShipClass: class, Origin: at, Orientation: o, Symbol: game.DefaultSymbol})
			if err == nil {
				break
			}
			g.log.Debug().Err(err).Str("ship", class.Name).Msg("placement rejected")
			g.con.Announce("Invalid placement. Try again.")
		}
		g.con.Render(g.human.Board, true)
	}
	return nil
}

// Over reports whether either side's counter has reached zero.
func (g *Game) Over() bool { return g.humanLeft == 0 || g.computerLeft == 0 }

func (g *Game) play() error {
	for {
		if _, err := g.HumanTurn(); err != nil {
			return err
		}
		if g.Over() {
			return nil
		}
		if _, err := g.ComputerTurn(); err != nil {
			return err
		}
		if g.Over() {
			return nil
		}
	}
}

// HumanTurn prompts until the human names an in-bounds cell not yet fired
// at, then resolves it against the computer's fleet.
func (g *Game) HumanTurn() (game.ShotResult, error) {
	g.con.Announce("\nYour turn!")
	g.con.Render(g.humanGuesses, true)

	var at game.Coord
	for {
		var err error
		at, err = g.con.ReadCoord("Enter coordinates to fire (x y): ")
		if err != nil {
			return game.ShotResult{}, err
		}
		if at.InBounds() && !g.humanGuesses.At(at).IsGuess() {
			break
		}
		g.con.Announce("Invalid target. Try again.")
	}

	claim, verified, err := g.answer(at)
	if err != nil {
		return game.ShotResult{}, err
	}
	if verified && claim != g.computer.Board.At(at).IsShip() {
		return game.ShotResult{}, fmt.Errorf("%w: proof for %s claims hit=%v", ErrProofRejected, at, claim)
	}
	res, err := game.Resolve(g.computer, g.humanGuesses, &g.computerLeft, at, g.opts.Counting)
	if err != nil {
		return game.ShotResult{}, err
	}
	g.humanShots++
	g.receipt.Record(res, verified)

	g.con.Announce(fmt.Sprintf("%s at %s!", hitWord(res.Hit), at))
	if res.Sunk && g.opts.Counting == game.CountSunk {
		g.con.Announce(fmt.Sprintf("You sank the %s!", res.Ship.Name))
	}
	g.con.Render(g.humanGuesses, true)

	g.logShot(Human, res, g.computerLeft)
	return res, nil
}

// ComputerTurn fires at a uniformly random cell the computer has not tried.
func (g *Game) ComputerTurn() (game.ShotResult, error) {
	at, ok := game.RandomTarget(g.rng, g.computerGuesses)
	if !ok {
		return game.ShotResult{}, errors.New("computer has no cells left to fire at")
	}
	res, err := game.Resolve(g.human, g.computerGuesses, &g.humanLeft, at, g.opts.Counting)
	if err != nil {
		return game.ShotResult{}, err
	}
	g.computerShots++

	g.con.Announce(fmt.Sprintf("Computer's turn: %s at %s!", hitWord(res.Hit), at))
	if res.Sunk && g.opts.Counting == game.CountSunk {
		g.con.Announce(fmt.Sprintf("Computer sank your %s!", res.Ship.Name))
	}
	g.con.Render(g.computerGuesses, false)

	g.logShot(Computer, res, g.humanLeft)
	return res, nil
}

func (g *Game) finish() *Outcome {
	g.phase = Finished
	winner := Human
	if g.humanLeft == 0 {
		winner = Computer
		g.con.Announce("You lose! Computer wins!")
	} else {
		g.con.Announce("Congratulations! You win!")
	}

	g.con.Announce("Computer fleet:")
	g.con.Render(g.computer.Board, true)

	g.log.Info().Str("phase", g.phase.String()).Str("winner", winner.String()).
		Int("human_shots", g.humanShots).Int("computer_shots", g.computerShots).Msg("game over")
	return &Outcome{
		GameID:        g.ID,
		Winner:        winner,
		HumanShots:    g.humanShots,
		ComputerShots: g.computerShots,
		Receipt:       g.receipt,
	}
}

func (g *Game) logShot(by Side, res game.ShotResult, remaining int) {
	ev := g.log.Debug().Str("side", by.String()).Int("x", res.Coord.X).Int("y", res.Coord.Y).
		Bool("hit", res.Hit).Int("remaining", remaining)
	if res.Ship != nil {
		ev = ev.Str("ship", res.Ship.Name).Int("ship_hits", res.Ship.Hits()).Bool("sunk", res.Sunk)
	}
	ev.Msg("shot")
}

func hitWord(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
