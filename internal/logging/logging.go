// Package logging configures the process-wide logrus logger. Logs go to
// stderr so the report on stdout can be piped cleanly.
package logging

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// Setup sets the level and format of the standard logger. Unknown levels
// fall back to warn.
func Setup(level string, verbose bool) {
	SetupWriter(os.Stderr, level, verbose)
}

func SetupWriter(w io.Writer, level string, verbose bool) {
	log.SetOutput(w)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	log.SetLevel(ParseLevel(level))
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

func ParseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return log.WarnLevel
	}
	return lvl
}
