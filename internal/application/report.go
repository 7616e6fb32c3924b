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

// BuildReport assembles the success envelope. It makes no decisions.
func BuildReport(videoID string, outcome *domain.ResolutionOutcome, normalized []domain.NormalizedSegment, extractedAt time.Time) *domain.SuccessReport {
	available := outcome.AvailableLanguages
	if available == nil {
		available = []string{}
	}

	report := &domain.SuccessReport{
		VideoID:       videoID,
		Transcript:    normalized,
		RawTranscript: outcome.RawSegments,
		Metadata: domain.TranscriptMetadata{
			ExtractedAt:        extractedAt,
			Duration:           domain.TotalDuration(outcome.RawSegments),
			WordCount:          domain.WordCount(outcome.RawSegments),
			AvailableLanguages: available,
		},
	}
	if outcome.Chosen != nil {
		report.Language = outcome.Chosen.LanguageCode
		report.IsGenerated = outcome.Chosen.IsGenerated
		report.Metadata.IsTranslatable = outcome.Chosen.IsTranslatable
	}
	if len(outcome.Diagnostics) > 0 {
		report.Metadata.Errors = outcome.Diagnostics
	}
	return report
}

// FailureFrom converts an error into the failure envelope
func FailureFrom(videoID string, err error) *domain.FailureReport {
	return &domain.FailureReport{
		VideoID:   videoID,
		Error:     err.Error(),
		ErrorType: domain.KindOf(err),
	}
}

// TranscriptService runs resolve -> normalize -> report for one video
type TranscriptService struct {
	catalog ports.TranscriptCatalog
	log     zerolog.Logger
	now     func() time.Time
}

// NewTranscriptService creates a new transcript service
func NewTranscriptService(catalog ports.TranscriptCatalog, log zerolog.Logger) *TranscriptService {
	return &TranscriptService{
		catalog: catalog,
		log:     log,
		now:     time.Now,
	}
}

// Extract resolves the transcript for videoID and returns its envelope.
// Every failure, including a panic further down, becomes a FailureReport.
func (s *TranscriptService) Extract(ctx context.Context, videoID string, languages []string) (env domain.Envelope) {
	defer func() {
		if r := recover(); r != nil {
			err := domain.E(domain.KindInternal, "extract", fmt.Errorf("%v", r))
			s.log.Error().Err(err).Str(logging.FieldVideoID, videoID).Msg("transcript extraction panicked")
			env = FailureFrom(videoID, err)
		}
	}()

	// A fresh resolver per call keeps concurrent extractions isolated
	resolver := NewResolver(s.catalog, s.log)

	outcome, err := resolver.Resolve(ctx, videoID, languages)
	if err != nil {
		s.log.Warn().Err(err).Str(logging.FieldVideoID, videoID).Str("kind", string(domain.KindOf(err))).Msg("transcript extraction failed")
		return FailureFrom(videoID, err)
	}

	normalized, err := domain.Normalize(outcome.RawSegments)
	if err != nil {
		err = domain.E(domain.KindFetchFailure, "normalize transcript", err)
		s.log.Warn().Err(err).Str(logging.FieldVideoID, videoID).Msg("transcript extraction failed")
		return FailureFrom(videoID, err)
	}

	return BuildReport(videoID, outcome, normalized, s.now())
}
