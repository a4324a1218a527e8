package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/homeport/responder/internal/config"
	"golang.org/x/exp/slog"
	"golang.org/x/term"
)

// New builds a logger writing to w. With the auto format, terminals get
// the text handler and everything else gets JSON.
func New(settings config.Logging, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(settings.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", settings.Level, err)
	}

	opts := &slog.HandlerOptions{Level: level}

	format := settings.Format
	if format == config.LogFormatAuto {
		format = config.LogFormatJSON
		if isTerminal(w) {
			format = config.LogFormatText
		}
	}

	switch format {
	case config.LogFormatText:
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case config.LogFormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", settings.Format)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
