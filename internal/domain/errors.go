package domain

import (
	"errors"
	"fmt"
)

var (
	// Transcript catalog errors
	ErrNoTranscript     = errors.New("no transcript available")
	ErrTrackNotFound    = errors.New("transcript track not found")
	ErrVideoUnavailable = errors.New("video unavailable or private")
	ErrNotTranslatable  = errors.New("transcript is not translatable")

	// Segment errors
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// Transcription errors
	ErrTranscriptionFailed = errors.New("transcription failed")
	ErrModelNotFound       = errors.New("model not found")

	// Dependency errors
	ErrYtDlpNotFound   = errors.New("yt-dlp not found")
	ErrWhisperNotFound = errors.New("whisper binary not found (install whisper.cpp)")
)

// Kind classifies a failure for the report envelope
type Kind string

const (
	KindSourceUnavailable  Kind = "SourceUnavailable"
	KindFetchFailure       Kind = "FetchFailure"
	KindTranslationFailure Kind = "TranslationFailure"
	KindEnumerationFailure Kind = "EnumerationFailure"
	KindRenderIOFailure    Kind = "RenderIOFailure"
	KindInvalidInput       Kind = "InvalidInput"
	KindInternal           Kind = "Internal"
)

// Fatal reports whether a failure of this kind aborts the pipeline.
// Translation and enumeration failures only degrade the result.
func (k Kind) Fatal() bool {
	return k != KindTranslationFailure && k != KindEnumerationFailure
}

// Error carries a Kind alongside the underlying cause
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// E wraps err with a kind and the operation that failed
func E(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of the outermost *Error in err's chain,
// or KindInternal when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
