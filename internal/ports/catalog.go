package ports

import (
	"context"

	"github.com/devbush/transcriptkit/internal/domain"
)

// TranscriptTrack is one fetchable transcript of a video
type TranscriptTrack interface {
	// LanguageCode returns the track's language, e.g. "en" or "pt-BR"
	LanguageCode() string

	// Fetch downloads the track's segments
	Fetch(ctx context.Context) ([]domain.RawSegment, error)

	// Translate returns a new track machine-translated into lang
	Translate(ctx context.Context, lang string) (TranscriptTrack, error)
}

// GeneratedReporter is implemented by tracks that know whether they were
// auto-generated. Tracks without it are treated as generated.
type GeneratedReporter interface {
	IsGenerated() bool
}

// TranslatableReporter is implemented by tracks that know whether they can
// be translated. Tracks without it are treated as not translatable.
type TranslatableReporter interface {
	IsTranslatable() bool
}

// TranscriptList is the set of transcripts a video exposes
type TranscriptList interface {
	// Lookup

	// FindManual returns the manually created track for exactly lang
	FindManual(lang string) (TranscriptTrack, error)

	// FindGenerated returns the auto-generated track for exactly lang
	FindGenerated(lang string) (TranscriptTrack, error)

	// Enumeration

	// Manual lists every manually created track
	Manual() ([]TranscriptTrack, error)

	// Generated lists every auto-generated track
	Generated() ([]TranscriptTrack, error)
}

// TranscriptCatalog lists the transcripts available for a video
type TranscriptCatalog interface {
	List(ctx context.Context, videoID string) (TranscriptList, error)
}
