package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"battleship/internal/game"
)

var ErrBadCounting = errors.New("invalid counting mode")

// Config is the resolved game configuration: .env, then environment, then flags.
type Config struct {
	Seed     uint64
	Counting game.CountMode
	Prove    bool
	Receipt  bool
	LogLevel string
}

// Load reads an optional .env file, the BATTLESHIP_* variables and finally
// the flags in args. Later sources win.
func Load(name string, args []string, stderr io.Writer) (*Config, error) {
	_ = godotenv.Load()
	return Parse(name, args, stderr)
}

// Parse is Load without the .env file.
func Parse(name string, args []string, stderr io.Writer) (*Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	seed := fs.Uint64("seed", getEnvUint(stderr, "BATTLESHIP_SEED", 0), "random seed (0 = wall clock)")
	counting := fs.String("counting", getEnv("BATTLESHIP_COUNTING", string(game.CountHits)), "when a side's counter drops: hits | sunk")
	prove := fs.Bool("prove", getEnvBool(stderr, "BATTLESHIP_PROVE", false), "prove every computer answer with a zk-SNARK")
	receipt := fs.Bool("receipt", getEnvBool(stderr, "BATTLESHIP_RECEIPT", true), "print the computer's fleet receipt at the end")
	level := fs.String("log-level", getEnv("BATTLESHIP_LOG_LEVEL", "warn"), "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	mode, err := game.ParseCountMode(*counting)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCounting, err)
	}
	return &Config{
		Seed:     *seed,
		Counting: mode,
		Prove:    *prove,
		Receipt:  *receipt,
		LogLevel: *level,
	}, nil
}

// ResolvedSeed returns Seed, or a wall-clock seed when it is zero.
func (c *Config) ResolvedSeed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvUint reads a uint64 from the environment or returns a fallback,
// warning on warn when the value does not parse.
func getEnvUint(warn io.Writer, key string, fallback uint64) uint64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		fmt.Fprintf(warn, "invalid uint for %s: %v, using default %d\n", key, err, fallback)
		return fallback
	}
	return n
}

// getEnvBool reads a bool from the environment or returns a fallback.
func getEnvBool(warn io.Writer, key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		fmt.Fprintf(warn, "invalid bool for %s: %v, using default %v\n", key, err, fallback)
		return fallback
	}
	return b
}
