package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/devbush/transcriptkit/internal/application"
	"github.com/devbush/transcriptkit/internal/domain"
)

// errReported marks a failure whose envelope was already printed; the
// process only has to exit non-zero.
var errReported = errors.New("failure reported")

// encodeEnvelope renders env as indented JSON with non-ASCII text and
// HTML characters left as-is
func encodeEnvelope(w io.Writer, env domain.Envelope) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// emitEnvelope writes a success envelope to stdout and a failure envelope
// to stderr, returning errReported for failures
func emitEnvelope(stdout, stderr io.Writer, env domain.Envelope) error {
	if !env.Succeeded() {
		if err := encodeEnvelope(stderr, env); err != nil {
			return err
		}
		return errReported
	}
	return encodeEnvelope(stdout, env)
}

// reportFailure prints the failure envelope for err
func reportFailure(stderr io.Writer, videoID string, err error) error {
	if encErr := encodeEnvelope(stderr, application.FailureFrom(videoID, err)); encErr != nil {
		return fmt.Errorf("%w (while reporting: %v)", err, encErr)
	}
	return errReported
}
