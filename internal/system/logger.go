package system

import (
	"io"
	"os"
	"strings"

	clog "github.com/charmbracelet/log"
)

// EnvLogLevel selects the logger level (debug, info, warn, error).
const EnvLogLevel = "NUCLEICTL_LOG_LEVEL"

// Logger is the shared application logger. It prints to stderr with
// timestamps; the TUI points it at a file instead.
var Logger = newLogger(os.Stderr)

func newLogger(w io.Writer) *clog.Logger {
	l := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		Prefix:          "nucleictl",
	})
	l.SetLevel(levelFromEnv())
	return l
}

func levelFromEnv() clog.Level {
	lv, err := clog.ParseLevel(strings.TrimSpace(os.Getenv(EnvLogLevel)))
	if err != nil {
		return clog.WarnLevel
	}
	return lv
}

// LogToFile redirects Logger to path (appending) and returns a closer.
func LogToFile(path string) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	Logger.SetOutput(f)
	if levelFromEnv() > clog.InfoLevel {
		Logger.SetLevel(clog.InfoLevel)
	}
	return f, nil
}
