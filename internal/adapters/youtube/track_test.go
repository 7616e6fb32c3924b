package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/devbush/transcriptkit/internal/domain"
)

const sampleJSON3 = `{
  "wireMagic": "pb3",
  "events": [
    {"tStartMs": 0, "dDurationMs": 60000, "id": 1, "wpWinPosId": 1},
    {"tStartMs": 1200, "dDurationMs": 2500, "segs": [{"utf8": "Hello "}, {"utf8": "world", "tOffsetMs": 400}]},
    {"tStartMs": 3700, "dDurationMs": 10, "aAppend": 1, "segs": [{"utf8": "\n"}]},
    {"tStartMs": 3700, "segs": [{"utf8": "¿Qué tal?"}]}
  ]
}`

func TestJSON3Segments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleJSON3))
	}))
	defer srv.Close()

	track := &Track{lang: "es", url: srv.URL, fetcher: NewFetcher(srv.Client(), 0)}
	segs, err := track.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	want := []domain.RawSegment{
		{Text: "Hello world", Start: 1.2, Duration: 2.5},
		{Text: "¿Qué tal?", Start: 3.7, Duration: 0},
	}
	if len(segs) != len(want) {
		t.Fatalf("got %d segments, want %d: %+v", len(segs), len(want), segs)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("segment %d = %+v, want %+v", i, segs[i], want[i])
		}
	}
}

func TestTrackFetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	track := &Track{lang: "en", url: srv.URL, fetcher: NewFetcher(srv.Client(), 0)}
	if _, err := track.Fetch(context.Background()); err == nil {
		t.Error("Fetch() expected error for HTTP 429")
	}
}

func TestFetcher_ByteCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleJSON3))
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), 0)
	f.MaxBytes = 16
	if _, err := f.Bytes(context.Background(), srv.URL); !errors.Is(err, ErrTooLarge) {
		t.Errorf("Bytes() error = %v, want ErrTooLarge", err)
	}
}

func TestFetcher_InvalidURL(t *testing.T) {
	if _, err := NewFetcher(nil, 0).Bytes(context.Background(), "::not a url"); err == nil {
		t.Error("Bytes() expected error for invalid url")
	}
}

func TestTrackTranslate(t *testing.T) {
	track := &Track{
		lang:    "es",
		url:     "https://www.youtube.com/api/timedtext?v=abc&lang=es&fmt=json3",
		targets: map[string]bool{"en": true, "fr": true},
	}
	if !track.IsTranslatable() {
		t.Fatal("IsTranslatable() = false")
	}

	got, err := track.Translate(context.Background(), "en")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	tr := got.(*Track)
	if tr.LanguageCode() != "en" {
		t.Errorf("LanguageCode() = %s, want en", tr.LanguageCode())
	}
	u, _ := url.Parse(tr.url)
	if u.Query().Get("tlang") != "en" || u.Query().Get("lang") != "es" {
		t.Errorf("translated url = %s", tr.url)
	}
	if tr.IsTranslatable() {
		t.Error("translated track should not be translatable again")
	}

	if _, err := track.Translate(context.Background(), "ja"); !errors.Is(err, domain.ErrNotTranslatable) {
		t.Errorf("Translate(ja) error = %v, want ErrNotTranslatable", err)
	}
}

func TestTrackTranslate_NotTranslatable(t *testing.T) {
	track := &Track{lang: "es", url: "https://example.com/t"}
	if _, err := track.Translate(context.Background(), "en"); !errors.Is(err, domain.ErrNotTranslatable) {
		t.Errorf("Translate() error = %v, want ErrNotTranslatable", err)
	}
}
