package logging

import (
	"io"
	"os"
	"time"

	gnarklogger "github.com/consensys/gnark/logger"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// New returns a human-readable logger on stderr. Colour is only used when
// stderr is a terminal. gnark's circuit/prover logs go to the same sink.
func New(level string) (zerolog.Logger, error) {
	color := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	return NewWithWriter(colorable.NewColorableStderr(), level, color)
}

func NewWithWriter(w io.Writer, level string, color bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}
	out := zerolog.ConsoleWriter{Out: w, NoColor: !color, TimeFormat: time.TimeOnly}
	l := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	gnarklogger.Set(l)
	return l, nil
}
