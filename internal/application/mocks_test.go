package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/devbush/transcriptkit/internal/domain"
	"github.com/devbush/transcriptkit/internal/ports"
)

// Mock implementations for testing
type mockTrack struct {
	lang         string
	generated    bool
	translatable bool
	segments     []domain.RawSegment
	fetchErr     error
	translateErr error
	fetched      bool
}

func (m *mockTrack) LanguageCode() string { return m.lang }
func (m *mockTrack) IsGenerated() bool    { return m.generated }
func (m *mockTrack) IsTranslatable() bool { return m.translatable }

func (m *mockTrack) Fetch(ctx context.Context) ([]domain.RawSegment, error) {
	m.fetched = true
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.segments, nil
}

func (m *mockTrack) Translate(ctx context.Context, lang string) (ports.TranscriptTrack, error) {
	if m.translateErr != nil {
		return nil, m.translateErr
	}
	return &mockTrack{
		lang:      lang,
		generated: m.generated,
		segments:  []domain.RawSegment{{Text: "translated", Start: 0, Duration: 1}},
	}, nil
}

// bareTrack reports neither IsGenerated nor IsTranslatable
type bareTrack struct {
	lang string
}

func (b *bareTrack) LanguageCode() string { return b.lang }
func (b *bareTrack) Fetch(ctx context.Context) ([]domain.RawSegment, error) {
	return []domain.RawSegment{{Text: "bare", Start: 0, Duration: 1}}, nil
}
func (b *bareTrack) Translate(ctx context.Context, lang string) (ports.TranscriptTrack, error) {
	return nil, domain.ErrNotTranslatable
}

type mockList struct {
	manual    []ports.TranscriptTrack
	generated []ports.TranscriptTrack
	enumErr   error
}

func find(tracks []ports.TranscriptTrack, lang string) (ports.TranscriptTrack, error) {
	for _, t := range tracks {
		if t.LanguageCode() == lang {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrTrackNotFound, lang)
}

func (m *mockList) FindManual(lang string) (ports.TranscriptTrack, error) {
	return find(m.manual, lang)
}

func (m *mockList) FindGenerated(lang string) (ports.TranscriptTrack, error) {
	return find(m.generated, lang)
}

func (m *mockList) Manual() ([]ports.TranscriptTrack, error) {
	if m.enumErr != nil {
		return nil, m.enumErr
	}
	return m.manual, nil
}

func (m *mockList) Generated() ([]ports.TranscriptTrack, error) {
	if m.enumErr != nil {
		return nil, m.enumErr
	}
	return m.generated, nil
}

type mockCatalog struct {
	list    *mockList
	listErr error
}

func (m *mockCatalog) List(ctx context.Context, videoID string) (ports.TranscriptList, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.list, nil
}

type mockTranscriber struct {
	transcript *domain.Transcript
	err        error
	gotOpts    ports.TranscribeOpts
}

func (m *mockTranscriber) Transcribe(ctx context.Context, audioPath string, opts ports.TranscribeOpts) (*domain.Transcript, error) {
	m.gotOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.transcript, nil
}

func (m *mockTranscriber) AvailableModels() []ports.Model {
	return []ports.Model{{Name: "base", Size: 140 * 1024 * 1024, Downloaded: true}}
}
func (m *mockTranscriber) IsModelDownloaded(model string) bool { return true }
func (m *mockTranscriber) DownloadModel(ctx context.Context, model string, progress func(int64, int64)) error {
	return nil
}
func (m *mockTranscriber) DeleteModel(model string) error { return nil }

var errBoom = errors.New("boom")
