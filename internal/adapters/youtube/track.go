package youtube

import (
	"context"
	"fmt"
	"net/url"

	"github.com/devbush/transcriptkit/internal/domain"
	"github.com/devbush/transcriptkit/internal/ports"
)

// Track is one caption track of a video
type Track struct {
	lang      string
	url       string
	generated bool
	// targets are the languages the track can be machine-translated into
	targets map[string]bool
	fetcher *Fetcher
}

func (t *Track) LanguageCode() string { return t.lang }
func (t *Track) IsGenerated() bool    { return t.generated }
func (t *Track) IsTranslatable() bool { return len(t.targets) > 0 }

// Fetch downloads and parses the track's json3 document
func (t *Track) Fetch(ctx context.Context) ([]domain.RawSegment, error) {
	var doc json3Doc
	if err := t.fetcher.JSON(ctx, t.url, &doc); err != nil {
		return nil, fmt.Errorf("fetch %s captions: %w", t.lang, err)
	}
	return doc.segments(), nil
}

// Translate returns the same captions translated into lang
func (t *Track) Translate(ctx context.Context, lang string) (ports.TranscriptTrack, error) {
	if !t.IsTranslatable() {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotTranslatable, t.lang)
	}
	if !t.targets[lang] {
		return nil, fmt.Errorf("%w: %s cannot be translated to %s", domain.ErrNotTranslatable, t.lang, lang)
	}

	u, err := withQuery(t.url, "tlang", lang)
	if err != nil {
		return nil, err
	}
	return &Track{
		lang:      lang,
		url:       u,
		generated: t.generated,
		fetcher:   t.fetcher,
	}, nil
}

func withQuery(raw, key, value string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse track url: %w", err)
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// TrackList holds a video's manual and generated tracks, ordered by
// language code
type TrackList struct {
	manual    []*Track
	generated []*Track
}

func findTrack(tracks []*Track, lang, kind string) (ports.TranscriptTrack, error) {
	for _, t := range tracks {
		if t.lang == lang {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: no %s transcript in %s", domain.ErrTrackNotFound, kind, lang)
}

func (l *TrackList) FindManual(lang string) (ports.TranscriptTrack, error) {
	return findTrack(l.manual, lang, "manual")
}

func (l *TrackList) FindGenerated(lang string) (ports.TranscriptTrack, error) {
	return findTrack(l.generated, lang, "generated")
}

func (l *TrackList) Manual() ([]ports.TranscriptTrack, error) {
	return asTracks(l.manual), nil
}

func (l *TrackList) Generated() ([]ports.TranscriptTrack, error) {
	return asTracks(l.generated), nil
}

// TranslationLanguages lists the codes any track can be translated into
func (l *TrackList) TranslationLanguages() []string {
	for _, group := range [][]*Track{l.manual, l.generated} {
		for _, t := range group {
			if t.IsTranslatable() {
				return sortedKeys(t.targets)
			}
		}
	}
	return []string{}
}

func asTracks(tracks []*Track) []ports.TranscriptTrack {
	out := make([]ports.TranscriptTrack, len(tracks))
	for i, t := range tracks {
		out[i] = t
	}
	return out
}

var _ ports.TranscriptTrack = (*Track)(nil)
var _ ports.GeneratedReporter = (*Track)(nil)
var _ ports.TranslatableReporter = (*Track)(nil)
var _ ports.TranscriptList = (*TrackList)(nil)
