package cli

import (
	"context"
	"fmt"

	"github.com/devbush/transcriptkit/internal/domain"
	"github.com/devbush/transcriptkit/internal/ports"
)

// stubTrack is a fixed transcript track
type stubTrack struct {
	lang         string
	generated    bool
	translatable bool
	segments     []domain.RawSegment
}

func (t *stubTrack) LanguageCode() string { return t.lang }
func (t *stubTrack) IsGenerated() bool    { return t.generated }
func (t *stubTrack) IsTranslatable() bool { return t.translatable }

func (t *stubTrack) Fetch(ctx context.Context) ([]domain.RawSegment, error) {
	return t.segments, nil
}

func (t *stubTrack) Translate(ctx context.Context, lang string) (ports.TranscriptTrack, error) {
	if !t.translatable {
		return nil, domain.ErrNotTranslatable
	}
	return &stubTrack{lang: lang, generated: true, segments: t.segments}, nil
}

// stubList serves tracks from two slices
type stubList struct {
	manual    []*stubTrack
	generated []*stubTrack
}

func findStub(tracks []*stubTrack, lang string) (ports.TranscriptTrack, error) {
	for _, t := range tracks {
		if t.lang == lang {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrTrackNotFound, lang)
}

func (l *stubList) FindManual(lang string) (ports.TranscriptTrack, error) {
	return findStub(l.manual, lang)
}

func (l *stubList) FindGenerated(lang string) (ports.TranscriptTrack, error) {
	return findStub(l.generated, lang)
}

func (l *stubList) Manual() ([]ports.TranscriptTrack, error) {
	out := make([]ports.TranscriptTrack, len(l.manual))
	for i, t := range l.manual {
		out[i] = t
	}
	return out, nil
}

func (l *stubList) Generated() ([]ports.TranscriptTrack, error) {
	out := make([]ports.TranscriptTrack, len(l.generated))
	for i, t := range l.generated {
		out[i] = t
	}
	return out, nil
}

// stubCatalog maps video IDs to track lists; unknown IDs are unavailable
type stubCatalog struct {
	lists map[string]*stubList
}

func (c *stubCatalog) List(ctx context.Context, videoID string) (ports.TranscriptList, error) {
	list, ok := c.lists[videoID]
	if !ok {
		return nil, domain.E(domain.KindSourceUnavailable, "list transcripts", domain.ErrVideoUnavailable)
	}
	return list, nil
}

func sampleSegments() []domain.RawSegment {
	return []domain.RawSegment{
		{Text: "hola", Start: 0, Duration: 1.5},
		{Text: "mundo <b>&</b> café", Start: 1.5, Duration: 2},
	}
}

func sampleCatalog() *stubCatalog {
	return &stubCatalog{lists: map[string]*stubList{
		"dQw4w9WgXcQ": {
			manual:    []*stubTrack{{lang: "es", translatable: true, segments: sampleSegments()}},
			generated: []*stubTrack{{lang: "en", generated: true, segments: sampleSegments()}},
		},
	}}
}

// stubTranscriber returns a fixed transcript or error
type stubTranscriber struct {
	transcript *domain.Transcript
	err        error
}

func (s *stubTranscriber) Transcribe(ctx context.Context, audioPath string, opts ports.TranscribeOpts) (*domain.Transcript, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.transcript, nil
}

func (s *stubTranscriber) AvailableModels() []ports.Model      { return nil }
func (s *stubTranscriber) IsModelDownloaded(model string) bool { return true }
func (s *stubTranscriber) DeleteModel(model string) error      { return nil }
func (s *stubTranscriber) DownloadModel(ctx context.Context, model string, progress func(int64, int64)) error {
	return nil
}
