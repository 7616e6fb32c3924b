package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/devbush/transcriptkit/internal/domain"
	"github.com/devbush/transcriptkit/internal/logging"
	"github.com/devbush/transcriptkit/internal/ports"
)

// Resolver picks one transcript for a video following the preference
// chain manual -> generated per language, then any available track,
// translated to the first preferred language when possible.
type Resolver struct {
	catalog ports.TranscriptCatalog
	log     zerolog.Logger
}

// NewResolver creates a resolver backed by catalog
func NewResolver(catalog ports.TranscriptCatalog, log zerolog.Logger) *Resolver {
	return &Resolver{
		catalog: catalog,
		log:     log.With().Str(logging.FieldComponent, "resolver").Logger(),
	}
}

// selection is the track the attempt chain settled on
type selection struct {
	track  ports.TranscriptTrack
	origin domain.Origin
}

// attempts accumulates diagnostics for failed attempts in order
type attempts struct {
	diagnostics []string
	log         zerolog.Logger
}

func (a *attempts) fail(kind domain.Kind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.diagnostics = append(a.diagnostics, msg)
	a.log.Debug().Str("kind", string(kind)).Msg(msg)
}

// Resolve selects and fetches a transcript for videoID.
//
// The returned outcome always carries the diagnostics collected so far.
// When no transcript can be selected, outcome.Chosen is nil and the error
// has kind SourceUnavailable; a failed fetch of the selected track is a
// FetchFailure.
func (r *Resolver) Resolve(ctx context.Context, videoID string, languages []string) (*domain.ResolutionOutcome, error) {
	outcome := &domain.ResolutionOutcome{}
	log := r.log.With().Str(logging.FieldVideoID, videoID).Logger()

	list, err := r.catalog.List(ctx, videoID)
	if err != nil {
		var kerr *domain.Error
		if errors.As(err, &kerr) {
			return outcome, err
		}
		return outcome, domain.E(domain.KindFetchFailure, "list transcripts", err)
	}

	att := &attempts{log: log}

	sel := r.selectPreferred(list, languages, att)
	if sel == nil {
		sel = r.selectFallback(ctx, list, languages, att)
	}

	if sel == nil {
		outcome.Diagnostics = att.diagnostics
		cause := domain.ErrNoTranscript
		if len(att.diagnostics) > 0 {
			cause = fmt.Errorf("%w. Errors: %s", domain.ErrNoTranscript, strings.Join(att.diagnostics, "; "))
		}
		return outcome, domain.E(domain.KindSourceUnavailable, "", cause)
	}

	source := describe(sel)
	log.Info().
		Str("language", source.LanguageCode).
		Str("origin", string(source.Origin)).
		Msg("transcript selected")

	segments, err := sel.track.Fetch(ctx)
	if err != nil {
		outcome.Diagnostics = att.diagnostics
		return outcome, domain.E(domain.KindFetchFailure, "fetch transcript", err)
	}

	outcome.Chosen = &source
	outcome.RawSegments = segments
	outcome.AvailableLanguages = r.availableLanguages(list, att)
	outcome.Diagnostics = att.diagnostics
	return outcome, nil
}

// selectPreferred walks the preferred languages in order, trying the
// manual track first and the generated one second.
func (r *Resolver) selectPreferred(list ports.TranscriptList, languages []string, att *attempts) *selection {
	for _, lang := range languages {
		track, err := list.FindManual(lang)
		if err == nil {
			return &selection{track: track, origin: domain.OriginManual}
		}
		att.fail(domain.KindSourceUnavailable, "Manual transcript not found for %s: %v", lang, err)

		track, err = list.FindGenerated(lang)
		if err == nil {
			return &selection{track: track, origin: domain.OriginGenerated}
		}
		att.fail(domain.KindSourceUnavailable, "Generated transcript not found for %s: %v", lang, err)
	}
	return nil
}

// selectFallback takes the first of all manual then generated tracks and
// translates it into the first preferred language when it is not one of
// them. A failed translation keeps the untranslated track.
func (r *Resolver) selectFallback(ctx context.Context, list ports.TranscriptList, languages []string, att *attempts) *selection {
	manual, err := list.Manual()
	if err != nil {
		att.fail(domain.KindEnumerationFailure, "Fallback transcript failed: %v", err)
		return nil
	}
	generated, err := list.Generated()
	if err != nil {
		att.fail(domain.KindEnumerationFailure, "Fallback transcript failed: %v", err)
		return nil
	}

	var sel *selection
	switch {
	case len(manual) > 0:
		sel = &selection{track: manual[0], origin: domain.OriginManual}
	case len(generated) > 0:
		sel = &selection{track: generated[0], origin: domain.OriginGenerated}
	default:
		return nil
	}

	if len(languages) == 0 || domain.ContainsLanguage(languages, sel.track.LanguageCode()) {
		return sel
	}

	translated, err := sel.track.Translate(ctx, languages[0])
	if err != nil {
		att.fail(domain.KindTranslationFailure, "Translation failed: %v", err)
		return sel
	}
	return &selection{track: translated, origin: domain.OriginTranslated}
}

// availableLanguages is the deduplicated set of manual and generated
// language codes, sorted. Enumeration failure yields an empty set.
func (r *Resolver) availableLanguages(list ports.TranscriptList, att *attempts) []string {
	manual, err := list.Manual()
	if err != nil {
		att.fail(domain.KindEnumerationFailure, "Failed to get available languages: %v", err)
		return []string{}
	}
	generated, err := list.Generated()
	if err != nil {
		att.fail(domain.KindEnumerationFailure, "Failed to get available languages: %v", err)
		return []string{}
	}

	seen := make(map[string]bool)
	langs := []string{}
	for _, group := range [][]ports.TranscriptTrack{manual, generated} {
		for _, t := range group {
			code := t.LanguageCode()
			if !seen[code] {
				seen[code] = true
				langs = append(langs, code)
			}
		}
	}
	sort.Strings(langs)
	return langs
}

// describe builds the source record for a selection. Attributes a track
// does not report default to generated and not translatable.
func describe(sel *selection) domain.TranscriptSource {
	src := domain.TranscriptSource{
		LanguageCode:   sel.track.LanguageCode(),
		IsGenerated:    true,
		IsTranslatable: false,
		Origin:         sel.origin,
	}
	if g, ok := sel.track.(ports.GeneratedReporter); ok {
		src.IsGenerated = g.IsGenerated()
	}
	if t, ok := sel.track.(ports.TranslatableReporter); ok {
		src.IsTranslatable = t.IsTranslatable()
	}
	return src
}
