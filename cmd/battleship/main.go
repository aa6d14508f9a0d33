package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/rs/zerolog"

	"battleship/internal/app"
	"battleship/internal/codec"
	"battleship/internal/config"
	"battleship/internal/console"
	"battleship/internal/game"
	"battleship/internal/logging"
	"battleship/internal/merkle"
)

func main() {
	args := os.Args[1:]
	cmd := "play"
	if len(args) > 0 {
		switch args[0] {
		case "play", "board", "verify":
			cmd, args = args[0], args[1:]
		case "help", "-h", "--help":
			usage(os.Stdout)
			return
		}
	}

	var err error
	switch cmd {
	case "play":
		err = cmdPlay(args)
	case "board":
		err = cmdBoard(args)
	case "verify":
		err = cmdVerify(args)
	}
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log, _ := logging.New(zerolog.LevelWarnValue)
		log.Fatal().Err(err).Str("cmd", cmd).Msg("battleship failed")
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `Battleship

Commands:
  play   [-seed N] [-counting hits|sunk] [-prove] [-receipt] [-log-level L]   (default)
  board  [-seed N] [-json]
  verify [-in receipt.json]   (reads stdin when -in is omitted)
`)
}

func newRand(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }

func cmdPlay(args []string) error {
	cfg, err := config.Load("play", args, os.Stderr)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	seed := cfg.ResolvedSeed()
	log.Info().Uint64("seed", seed).Msg("starting game")

	g := app.New(console.NewTerminal(os.Stdin, os.Stdout), newRand(seed), log, app.Options{
		Counting: cfg.Counting,
		Prove:    cfg.Prove,
	})
	out, err := g.Run()
	if err != nil {
		if errors.Is(err, io.EOF) {
			log.Warn().Str("phase", g.Phase().String()).Msg("input closed before the game finished")
		}
		return err
	}
	if cfg.Receipt {
		fmt.Println("Receipt:")
		return codec.Encode(os.Stdout, out.Receipt)
	}
	return nil
}

type boardDump struct {
	Seed    uint64   `json:"seed"`
	RootHex string   `json:"rootHex"`
	SaltHex string   `json:"saltHex"`
	Board   []string `json:"board"`
}

func cmdBoard(args []string) error {
	fs := flag.NewFlagSet("board", flag.ContinueOnError)
	seed := fs.Uint64("seed", 0, "random seed (0 = wall clock)")
	asJSON := fs.Bool("json", false, "print the board and its commitment as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg := config.Config{Seed: *seed}
	s := cfg.ResolvedSeed()

	f, err := game.RandomFleet(newRand(s))
	if err != nil {
		return err
	}
	salt, err := merkle.NewSalt()
	if err != nil {
		return err
	}
	c, err := merkle.Commit(f.Board.Flatten(), salt)
	if err != nil {
		return err
	}

	if *asJSON {
		return codec.Encode(os.Stdout, boardDump{
			Seed:    s,
			RootHex: merkle.Hex(c.Root),
			SaltHex: merkle.Hex(c.Salt),
			Board:   f.Board.Rows(),
		})
	}
	fmt.Printf("seed %d\n", s)
	if err := f.Board.Render(os.Stdout, true); err != nil {
		return err
	}
	fmt.Println("ROOT:", merkle.Hex(c.Root))
	return nil
}

func cmdVerify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	in := fs.String("in", "", "receipt file (default stdin)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	log, err := logging.New(zerolog.LevelInfoValue)
	if err != nil {
		return err
	}

	var r io.Reader = os.Stdin
	if *in != "" {
		f, err := os.Open(*in)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	rec, err := codec.DecodeReceipt(r)
	if err != nil {
		return err
	}
	if err := codec.Check(rec); err != nil {
		return fmt.Errorf("receipt for game %s: %w", rec.GameID, err)
	}
	log.Info().Str("game", rec.GameID).Str("root", rec.RootHex).Int("shots", len(rec.Shots)).Msg("receipt verified")
	fmt.Println("OK")
	return nil
}
