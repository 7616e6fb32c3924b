package application

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/devbush/transcriptkit/internal/domain"
	"github.com/devbush/transcriptkit/internal/ports"
)

var fixedNow = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestService(list *mockList) *TranscriptService {
	svc := NewTranscriptService(&mockCatalog{list: list}, zerolog.Nop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestExtract_Success(t *testing.T) {
	list := &mockList{
		manual: []ports.TranscriptTrack{&mockTrack{lang: "en", translatable: true, segments: []domain.RawSegment{
			{Text: "Hello world", Start: 0, Duration: 2.5},
			{Text: "  second line ", Start: 2.5, Duration: 3.25},
		}}},
	}

	env := newTestService(list).Extract(context.Background(), "dQw4w9WgXcQ", []string{"en"})
	report, ok := env.(*domain.SuccessReport)
	if !ok {
		t.Fatalf("Extract() = %#v, want *SuccessReport", env)
	}

	if report.VideoID != "dQw4w9WgXcQ" || report.Language != "en" || report.IsGenerated {
		t.Errorf("report header = %q %q %v", report.VideoID, report.Language, report.IsGenerated)
	}
	if report.Metadata.Duration != 5.75 {
		t.Errorf("Duration = %v, want 5.75", report.Metadata.Duration)
	}
	if report.Metadata.WordCount != 4 {
		t.Errorf("WordCount = %d, want 4", report.Metadata.WordCount)
	}
	if !report.Metadata.IsTranslatable {
		t.Error("IsTranslatable = false, want true")
	}
	if report.Metadata.Errors != nil {
		t.Errorf("Errors = %v, want nil", report.Metadata.Errors)
	}
	if !report.Metadata.ExtractedAt.Equal(fixedNow) {
		t.Errorf("ExtractedAt = %v", report.Metadata.ExtractedAt)
	}
	if len(report.Transcript) != len(report.RawTranscript) {
		t.Fatalf("transcript has %d segments, raw has %d", len(report.Transcript), len(report.RawTranscript))
	}
	if report.Transcript[1].StartTime != "00:02" || report.Transcript[1].EndTime != "00:05" {
		t.Errorf("segment 1 times = %s-%s", report.Transcript[1].StartTime, report.Transcript[1].EndTime)
	}
}

func TestExtract_SuccessJSONShape(t *testing.T) {
	list := &mockList{
		generated: []ports.TranscriptTrack{&mockTrack{lang: "en", generated: true, segments: []domain.RawSegment{
			{Text: "hi", Start: 0, Duration: 1},
		}}},
	}

	env := newTestService(list).Extract(context.Background(), "vid", []string{"es", "en"})
	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got["success"] != true || got["is_generated"] != true {
		t.Errorf("envelope = %v", got)
	}
	meta := got["metadata"].(map[string]any)
	errs, ok := meta["errors"].([]any)
	if !ok || len(errs) < 2 {
		t.Errorf("metadata.errors = %v, want at least 2 diagnostics", meta["errors"])
	}
	if !reflect.DeepEqual(meta["available_languages"], []any{"en"}) {
		t.Errorf("available_languages = %v", meta["available_languages"])
	}
}

func TestExtract_Failure(t *testing.T) {
	env := newTestService(&mockList{}).Extract(context.Background(), "vid", []string{"en"})
	failure, ok := env.(*domain.FailureReport)
	if !ok {
		t.Fatalf("Extract() = %#v, want *FailureReport", env)
	}
	if failure.Succeeded() {
		t.Error("Succeeded() = true")
	}
	if failure.ErrorType != domain.KindSourceUnavailable {
		t.Errorf("ErrorType = %s, want SourceUnavailable", failure.ErrorType)
	}
	if failure.VideoID != "vid" {
		t.Errorf("VideoID = %q", failure.VideoID)
	}
}

func TestExtract_InvalidSegmentsFail(t *testing.T) {
	list := &mockList{
		manual: []ports.TranscriptTrack{&mockTrack{lang: "en", segments: []domain.RawSegment{
			{Text: "bad", Start: -1, Duration: 1},
		}}},
	}

	env := newTestService(list).Extract(context.Background(), "vid", []string{"en"})
	failure, ok := env.(*domain.FailureReport)
	if !ok {
		t.Fatalf("Extract() = %#v, want *FailureReport", env)
	}
	if failure.ErrorType != domain.KindFetchFailure {
		t.Errorf("ErrorType = %s, want FetchFailure", failure.ErrorType)
	}
}

type panickingCatalog struct{}

func (panickingCatalog) List(ctx context.Context, videoID string) (ports.TranscriptList, error) {
	panic("catalog exploded")
}

func TestExtract_RecoversPanic(t *testing.T) {
	svc := NewTranscriptService(panickingCatalog{}, zerolog.Nop())

	env := svc.Extract(context.Background(), "vid", nil)
	failure, ok := env.(*domain.FailureReport)
	if !ok {
		t.Fatalf("Extract() = %#v, want *FailureReport", env)
	}
	if failure.ErrorType != domain.KindInternal {
		t.Errorf("ErrorType = %s, want Internal", failure.ErrorType)
	}
}

func TestBuildReport_NilAvailableLanguages(t *testing.T) {
	outcome := &domain.ResolutionOutcome{
		Chosen:      &domain.TranscriptSource{LanguageCode: "en"},
		RawSegments: []domain.RawSegment{},
	}
	report := BuildReport("vid", outcome, []domain.NormalizedSegment{}, fixedNow)
	if report.Metadata.AvailableLanguages == nil {
		t.Error("AvailableLanguages = nil, want empty slice")
	}
	if report.Metadata.Duration != 0 || report.Metadata.WordCount != 0 {
		t.Errorf("metadata = %+v, want zero totals", report.Metadata)
	}
}
