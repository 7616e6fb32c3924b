package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/devbush/transcriptkit/internal/domain"
	"github.com/devbush/transcriptkit/internal/logging"
	"github.com/devbush/transcriptkit/internal/ports"
)

const origSuffix = "-orig"

// runFunc executes yt-dlp and returns stdout
type runFunc func(ctx context.Context, bin string, args ...string) ([]byte, error)

// Catalog implements ports.TranscriptCatalog by asking yt-dlp for a
// video's caption metadata
type Catalog struct {
	bin     *Binary
	fetcher *Fetcher
	log     zerolog.Logger
	run     runFunc
}

// NewCatalog creates a catalog backed by bin
func NewCatalog(bin *Binary, fetcher *Fetcher, log zerolog.Logger) *Catalog {
	if fetcher == nil {
		fetcher = NewFetcher(nil, 0)
	}
	return &Catalog{
		bin:     bin,
		fetcher: fetcher,
		log:     log.With().Str(logging.FieldComponent, "youtube").Logger(),
		run:     runYtDlp,
	}
}

func runYtDlp(ctx context.Context, bin string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, bin, args...).Output()
}

// List returns the caption tracks of videoID
func (c *Catalog) List(ctx context.Context, videoID string) (ports.TranscriptList, error) {
	return c.Tracks(ctx, videoID)
}

// Tracks is List with the concrete type, for callers that also want
// translation languages
func (c *Catalog) Tracks(ctx context.Context, videoID string) (*TrackList, error) {
	binPath := c.bin.Path()
	if binPath == "" {
		return nil, domain.E(domain.KindFetchFailure, "list transcripts", domain.ErrYtDlpNotFound)
	}

	video := &domain.Video{ID: videoID}
	args := []string{
		"-J",
		"--skip-download",
		"--no-warnings",
		video.WatchURL(),
	}

	c.log.Debug().Str(logging.FieldVideoID, videoID).Strs("args", args).Msg("running yt-dlp")

	output, err := c.run(ctx, binPath, args...)
	if err != nil {
		return nil, classifyRunError(err)
	}

	list, err := parseMetadata(output, c.fetcher)
	if err != nil {
		return nil, domain.E(domain.KindFetchFailure, "list transcripts", err)
	}

	c.log.Debug().
		Str(logging.FieldVideoID, videoID).
		Int("manual", len(list.manual)).
		Int("generated", len(list.generated)).
		Msg("caption tracks listed")

	return list, nil
}

func classifyRunError(err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		if strings.Contains(stderr, "Private video") || strings.Contains(stderr, "Video unavailable") {
			return domain.E(domain.KindSourceUnavailable, "list transcripts", fmt.Errorf("%w: %s", domain.ErrVideoUnavailable, stderr))
		}
		return domain.E(domain.KindFetchFailure, "list transcripts", fmt.Errorf("yt-dlp failed: %s", stderr))
	}
	return domain.E(domain.KindFetchFailure, "list transcripts", fmt.Errorf("yt-dlp failed: %w", err))
}

type captionItem struct {
	Ext string `json:"ext"`
	URL string `json:"url"`
}

// videoInfo is the subset of yt-dlp's -J output the catalog reads
type videoInfo struct {
	ID                string                   `json:"id"`
	Subtitles         map[string][]captionItem `json:"subtitles"`
	AutomaticCaptions map[string][]captionItem `json:"automatic_captions"`
}

// parseMetadata builds a track list from yt-dlp JSON.
//
// subtitles holds the manual tracks. In automatic_captions the keys
// ending in -orig are the speech-recognition tracks and every other key
// is a machine translation target.
func parseMetadata(data []byte, fetcher *Fetcher) (*TrackList, error) {
	var info videoInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("parse yt-dlp output: %w", err)
	}

	targets := make(map[string]bool)
	for lang := range info.AutomaticCaptions {
		if !strings.HasSuffix(lang, origSuffix) {
			targets[lang] = true
		}
	}

	list := &TrackList{}

	for _, lang := range sortedKeys(info.Subtitles) {
		if lang == "live_chat" {
			continue
		}
		u := json3URL(info.Subtitles[lang])
		if u == "" {
			continue
		}
		list.manual = append(list.manual, &Track{
			lang:    lang,
			url:     u,
			targets: targets,
			fetcher: fetcher,
		})
	}

	for _, key := range sortedKeys(info.AutomaticCaptions) {
		if !strings.HasSuffix(key, origSuffix) {
			continue
		}
		u := json3URL(info.AutomaticCaptions[key])
		if u == "" {
			continue
		}
		list.generated = append(list.generated, &Track{
			lang:      strings.TrimSuffix(key, origSuffix),
			url:       u,
			generated: true,
			targets:   targets,
			fetcher:   fetcher,
		})
	}

	return list, nil
}

// json3URL picks the json3 rendition of a track, or forces fmt=json3 on
// the first URL when yt-dlp listed none
func json3URL(items []captionItem) string {
	for _, it := range items {
		if it.Ext == "json3" && it.URL != "" {
			return it.URL
		}
	}
	for _, it := range items {
		if it.URL == "" {
			continue
		}
		u, err := withQuery(it.URL, "fmt", "json3")
		if err != nil {
			continue
		}
		return u
	}
	return ""
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var _ ports.TranscriptCatalog = (*Catalog)(nil)
