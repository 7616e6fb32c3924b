package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Field names shared across the codebase
const (
	FieldRunID     = "run_id"
	FieldComponent = "component"
	FieldVideoID   = "video_id"
)

// Options configures a logger
type Options struct {
	Level  string    // debug, info, warn, error; anything else means warn
	Format string    // auto, console or json
	Output io.Writer // defaults to os.Stderr
}

// New builds a zerolog logger. Reports go to stdout, so logs always
// default to stderr. In auto format a terminal gets the console writer
// and anything else gets JSON lines.
func New(opts Options) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.WarnLevel
	}

	var w io.Writer = out
	if useConsole(opts.Format, out) {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen, NoColor: !isTerminal(out)}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// WithRunID tags every entry of log with a fresh run id
func WithRunID(log zerolog.Logger) (zerolog.Logger, string) {
	id := uuid.NewString()
	return log.With().Str(FieldRunID, id).Logger(), id
}

func useConsole(format string, out io.Writer) bool {
	switch strings.ToLower(format) {
	case FormatConsole, "pretty":
		return true
	case FormatJSON:
		return false
	default:
		return isTerminal(out)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
