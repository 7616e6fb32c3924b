package application

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/devbush/transcriptkit/internal/domain"
	"github.com/devbush/transcriptkit/internal/logging"
	"github.com/devbush/transcriptkit/internal/ports"
)

// SpeechOptions configures an audio transcription
type SpeechOptions struct {
	Model    string
	Language string // empty for auto-detect
}

// SpeechService converts audio files to speech reports
type SpeechService struct {
	transcriber ports.Transcriber
	log         zerolog.Logger
	now         func() time.Time
}

// NewSpeechService creates a new speech service
func NewSpeechService(transcriber ports.Transcriber, log zerolog.Logger) *SpeechService {
	return &SpeechService{
		transcriber: transcriber,
		log:         log.With().Str(logging.FieldComponent, "speech").Logger(),
		now:         time.Now,
	}
}

// Convert transcribes audioPath and returns its envelope.
// Like TranscriptService.Extract it never returns a bare error.
func (s *SpeechService) Convert(ctx context.Context, audioPath string, opts SpeechOptions) (env domain.Envelope) {
	defer func() {
		if r := recover(); r != nil {
			err := domain.E(domain.KindInternal, "convert", fmt.Errorf("%v", r))
			s.log.Error().Err(err).Str("audio", audioPath).Msg("speech conversion panicked")
			env = FailureFrom("", err)
		}
	}()

	model := opts.Model
	if model == "" {
		model = "base"
	}

	transcript, err := s.transcriber.Transcribe(ctx, audioPath, ports.TranscribeOpts{
		Model:    model,
		Language: opts.Language,
	})
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			err = domain.E(domain.KindSourceUnavailable, "transcribe", err)
		}
		s.log.Warn().Err(err).Str("audio", audioPath).Msg("speech conversion failed")
		return FailureFrom("", err)
	}

	segments := make([]domain.SpeechSegment, 0, len(transcript.Segments))
	for i, seg := range transcript.RawSegments() {
		if err := domain.ValidateSeconds(seg.Start); err != nil {
			return FailureFrom("", domain.E(domain.KindFetchFailure, fmt.Sprintf("segment %d", i), err))
		}
		segments = append(segments, domain.SpeechSegment{
			Text:      seg.Text,
			Start:     seg.Start,
			Duration:  seg.Duration,
			StartTime: domain.FormatTimestamp(seg.Start, false),
		})
	}

	language := transcript.Language
	if language == "" {
		language = opts.Language
	}

	return &domain.SpeechReport{
		Text:     transcript.ToText(),
		Segments: segments,
		Language: language,
		Duration: transcript.Duration(),
		Metadata: domain.SpeechMetadata{
			ProcessedAt: s.now(),
			Model:       "whisper",
			ModelSize:   model,
		},
	}
}
