/* logging.go
 * Contains the zerolog setup shared by every command
 */

package config

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger configures the global zerolog logger. Unknown levels fall back to info.
// It returns the level that was applied.
func SetupLogger(level string, format string) zerolog.Level {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if strings.ToLower(format) == "pretty" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	// Code that logs through log.Ctx(ctx) without a request logger falls back to the global one
	zerolog.DefaultContextLogger = &log.Logger

	return lvl
}
