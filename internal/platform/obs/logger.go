package obs

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger configures the global zerolog logger. Development builds get a
// human-readable console writer; everything else logs JSON lines to stderr.
func SetupLogger(environment, level string) error {
	return setupLogger(os.Stderr, environment, level)
}

func setupLogger(w io.Writer, environment, level string) error {
	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("setup logger: %w", err)
		}
		lvl = parsed
	}

	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if environment == "development" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
		return nil
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return nil
}
