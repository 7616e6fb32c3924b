package application

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/devbush/transcriptkit/internal/domain"
	"github.com/devbush/transcriptkit/internal/logging"
	"github.com/devbush/transcriptkit/internal/ports"
)

func newTestResolver(list *mockList) *Resolver {
	return NewResolver(&mockCatalog{list: list}, zerolog.Nop())
}

func TestResolve_PrefersManual(t *testing.T) {
	manual := &mockTrack{lang: "en", translatable: true, segments: []domain.RawSegment{{Text: "m", Duration: 1}}}
	list := &mockList{
		manual:    []ports.TranscriptTrack{manual},
		generated: []ports.TranscriptTrack{&mockTrack{lang: "en", generated: true}},
	}

	outcome, err := newTestResolver(list).Resolve(context.Background(), "vid", []string{"en"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if outcome.Chosen.Origin != domain.OriginManual || outcome.Chosen.IsGenerated {
		t.Errorf("Chosen = %+v, want manual track", outcome.Chosen)
	}
	if !outcome.Chosen.IsTranslatable {
		t.Errorf("IsTranslatable = false, want true")
	}
	if len(outcome.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %v, want none", outcome.Diagnostics)
	}
	if !manual.fetched {
		t.Error("selected track was not fetched")
	}
}

func TestResolve_FallsBackToGeneratedAcrossLanguages(t *testing.T) {
	gen := &mockTrack{lang: "en", generated: true, segments: []domain.RawSegment{{Text: "hello", Duration: 1}}}
	list := &mockList{generated: []ports.TranscriptTrack{gen}}

	outcome, err := newTestResolver(list).Resolve(context.Background(), "vid", []string{"es", "en"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if outcome.Chosen.LanguageCode != "en" || outcome.Chosen.Origin != domain.OriginGenerated {
		t.Errorf("Chosen = %+v, want generated en", outcome.Chosen)
	}
	if len(outcome.Diagnostics) != 3 {
		t.Fatalf("Diagnostics = %v, want 3 entries", outcome.Diagnostics)
	}
	wantPrefixes := []string{
		"Manual transcript not found for es",
		"Generated transcript not found for es",
		"Manual transcript not found for en",
	}
	for i, prefix := range wantPrefixes {
		if !strings.HasPrefix(outcome.Diagnostics[i], prefix) {
			t.Errorf("Diagnostics[%d] = %q, want prefix %q", i, outcome.Diagnostics[i], prefix)
		}
	}
	if !reflect.DeepEqual(outcome.AvailableLanguages, []string{"en"}) {
		t.Errorf("AvailableLanguages = %v, want [en]", outcome.AvailableLanguages)
	}
}

func TestResolve_TranslatesFallbackCandidate(t *testing.T) {
	list := &mockList{
		manual:    []ports.TranscriptTrack{&mockTrack{lang: "de", translatable: true}},
		generated: []ports.TranscriptTrack{&mockTrack{lang: "fr", generated: true}},
	}

	outcome, err := newTestResolver(list).Resolve(context.Background(), "vid", []string{"en", "es"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if outcome.Chosen.Origin != domain.OriginTranslated || outcome.Chosen.LanguageCode != "en" {
		t.Errorf("Chosen = %+v, want translated en", outcome.Chosen)
	}
	if outcome.RawSegments[0].Text != "translated" {
		t.Errorf("RawSegments = %v, want translated segments", outcome.RawSegments)
	}
	if !reflect.DeepEqual(outcome.AvailableLanguages, []string{"de", "fr"}) {
		t.Errorf("AvailableLanguages = %v, want [de fr]", outcome.AvailableLanguages)
	}
}

func TestResolve_TranslationFailureKeepsCandidate(t *testing.T) {
	list := &mockList{
		generated: []ports.TranscriptTrack{&mockTrack{lang: "fr", generated: true, translateErr: errBoom,
			segments: []domain.RawSegment{{Text: "bonjour", Duration: 1}}}},
	}

	outcome, err := newTestResolver(list).Resolve(context.Background(), "vid", []string{"en"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if outcome.Chosen.LanguageCode != "fr" || outcome.Chosen.Origin != domain.OriginGenerated {
		t.Errorf("Chosen = %+v, want untranslated fr", outcome.Chosen)
	}
	last := outcome.Diagnostics[len(outcome.Diagnostics)-1]
	if !strings.HasPrefix(last, "Translation failed") {
		t.Errorf("last diagnostic = %q, want translation failure", last)
	}
}

func TestResolve_NoTranslationWithoutPreferences(t *testing.T) {
	list := &mockList{manual: []ports.TranscriptTrack{&mockTrack{lang: "de"}}}

	outcome, err := newTestResolver(list).Resolve(context.Background(), "vid", nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if outcome.Chosen.LanguageCode != "de" || outcome.Chosen.Origin != domain.OriginManual {
		t.Errorf("Chosen = %+v, want manual de", outcome.Chosen)
	}
}

func TestResolve_EmptyCatalogFails(t *testing.T) {
	for _, langs := range [][]string{nil, {"en"}, {"es", "en", "fr"}} {
		outcome, err := newTestResolver(&mockList{}).Resolve(context.Background(), "vid", langs)
		if err == nil {
			t.Fatalf("Resolve(%v) expected error", langs)
		}
		if outcome.Chosen != nil {
			t.Errorf("Chosen = %+v, want nil", outcome.Chosen)
		}
		if domain.KindOf(err) != domain.KindSourceUnavailable {
			t.Errorf("KindOf() = %s, want SourceUnavailable", domain.KindOf(err))
		}
		if !errors.Is(err, domain.ErrNoTranscript) {
			t.Errorf("error %v does not wrap ErrNoTranscript", err)
		}
		if len(outcome.Diagnostics) != 2*len(langs) {
			t.Errorf("Diagnostics = %d entries, want %d", len(outcome.Diagnostics), 2*len(langs))
		}
	}
}

func TestResolve_AggregatesDiagnosticsInError(t *testing.T) {
	_, err := newTestResolver(&mockList{}).Resolve(context.Background(), "vid", []string{"es"})
	msg := err.Error()
	if !strings.HasPrefix(msg, "no transcript available. Errors: Manual transcript not found for es") {
		t.Errorf("error = %q", msg)
	}
	if !strings.Contains(msg, "; Generated transcript not found for es") {
		t.Errorf("error = %q, want joined diagnostics", msg)
	}
}

func TestResolve_EnumerationFailure(t *testing.T) {
	list := &mockList{
		manual:  []ports.TranscriptTrack{&mockTrack{lang: "en", segments: []domain.RawSegment{{Text: "x", Duration: 1}}}},
		enumErr: errBoom,
	}

	outcome, err := newTestResolver(list).Resolve(context.Background(), "vid", []string{"en"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if outcome.Chosen == nil {
		t.Fatal("Chosen = nil, enumeration failure must not be fatal")
	}
	if outcome.AvailableLanguages == nil || len(outcome.AvailableLanguages) != 0 {
		t.Errorf("AvailableLanguages = %v, want empty set", outcome.AvailableLanguages)
	}
	if len(outcome.Diagnostics) != 1 || !strings.HasPrefix(outcome.Diagnostics[0], "Failed to get available languages") {
		t.Errorf("Diagnostics = %v", outcome.Diagnostics)
	}
}

func TestResolve_FetchFailure(t *testing.T) {
	list := &mockList{manual: []ports.TranscriptTrack{&mockTrack{lang: "en", fetchErr: errBoom}}}

	outcome, err := newTestResolver(list).Resolve(context.Background(), "vid", []string{"en"})
	if domain.KindOf(err) != domain.KindFetchFailure {
		t.Fatalf("KindOf() = %s, want FetchFailure (err=%v)", domain.KindOf(err), err)
	}
	if !errors.Is(err, errBoom) {
		t.Errorf("error %v does not wrap cause", err)
	}
	if outcome.Chosen != nil {
		t.Errorf("Chosen = %+v, want nil after failed fetch", outcome.Chosen)
	}
}

func TestResolve_ListFailure(t *testing.T) {
	r := NewResolver(&mockCatalog{listErr: errBoom}, zerolog.Nop())
	_, err := r.Resolve(context.Background(), "vid", []string{"en"})
	if domain.KindOf(err) != domain.KindFetchFailure {
		t.Errorf("KindOf() = %s, want FetchFailure", domain.KindOf(err))
	}

	r = NewResolver(&mockCatalog{listErr: domain.E(domain.KindSourceUnavailable, "list", domain.ErrVideoUnavailable)}, zerolog.Nop())
	_, err = r.Resolve(context.Background(), "vid", []string{"en"})
	if domain.KindOf(err) != domain.KindSourceUnavailable {
		t.Errorf("KindOf() = %s, want adapter kind preserved", domain.KindOf(err))
	}
}

func TestResolve_DefaultAttributes(t *testing.T) {
	list := &mockList{manual: []ports.TranscriptTrack{&bareTrack{lang: "en"}}}

	outcome, err := newTestResolver(list).Resolve(context.Background(), "vid", []string{"en"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !outcome.Chosen.IsGenerated {
		t.Error("IsGenerated should default to true when the track does not report it")
	}
	if outcome.Chosen.IsTranslatable {
		t.Error("IsTranslatable should default to false when the track does not report it")
	}
}

func TestResolve_AvailableLanguagesDeduplicated(t *testing.T) {
	list := &mockList{
		manual:    []ports.TranscriptTrack{&mockTrack{lang: "en"}, &mockTrack{lang: "es"}},
		generated: []ports.TranscriptTrack{&mockTrack{lang: "en", generated: true}},
	}

	outcome, err := newTestResolver(list).Resolve(context.Background(), "vid", []string{"en"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !reflect.DeepEqual(outcome.AvailableLanguages, []string{"en", "es"}) {
		t.Errorf("AvailableLanguages = %v, want [en es]", outcome.AvailableLanguages)
	}
}

func TestResolve_LogsVideoFields(t *testing.T) {
	var buf bytes.Buffer
	list := &mockList{manual: []ports.TranscriptTrack{&mockTrack{lang: "en"}}}
	r := NewResolver(&mockCatalog{list: list}, zerolog.New(&buf))

	if _, err := r.Resolve(context.Background(), "vid", []string{"en"}); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		`"` + logging.FieldComponent + `":"resolver"`,
		`"` + logging.FieldVideoID + `":"vid"`,
		`"message":"transcript selected"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s:\n%s", want, out)
		}
	}
}
