package logging

import (
	"encoding/hex"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/andrei-cloud/go_segop/pkg/errorcodes"
)

// InitLogger initializes the zerolog logger with the specified debug mode and output format.
// Logs go to stderr so stdout stays free for payload output.
func InitLogger(debug, human bool) {
	initLogger(os.Stderr, debug, human)
}

// InitFromConfig initializes the logger from level and format strings (e.g. "debug", "json").
func InitFromConfig(level, format string) {
	level = strings.TrimSpace(strings.ToLower(level))
	format = strings.TrimSpace(strings.ToLower(format))
	InitLogger(level == "debug", format != "json")
}

func initLogger(out io.Writer, debug, human bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano           // always initialize base logger with timestamp.
	base := zerolog.New(out).With().Timestamp().Logger() // initialize base logger.
	if human {
		log.Logger = base.Output(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339Nano,
		}) // select output format.
	} else {
		log.Logger = base // use JSON logger.
	}
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel) // set debug level.
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel) // set info level.
	}
}

// LogPayloadBuilt logs a finished payload with structured fields.
func LogPayloadBuilt(
	runID string,
	source string,
	records int,
	payload []byte,
) {
	log.Info().
		Str("event", "payload_built").
		Str("run_id", runID).
		Str("source", source).
		Int("records", records).
		Int("size", len(payload)).
		Str("payload_hex", hex.EncodeToString(payload)).
		Msg("built payload")
}

// LogPayloadRejected logs a payload that failed validation or could not be written.
func LogPayloadRejected(
	runID string,
	source string,
	err error,
) {
	log.Warn().
		Str("event", "payload_rejected").
		Str("run_id", runID).
		Str("source", source).
		Str("error_code", errorcodes.Code(err)).
		Err(err).
		Msg("payload rejected")
}
