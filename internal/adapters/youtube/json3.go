package youtube

import (
	"strings"

	"github.com/devbush/transcriptkit/internal/domain"
)

// json3Doc is YouTube's timedtext json3 caption format
type json3Doc struct {
	Events []json3Event `json:"events"`
}

type json3Event struct {
	TStartMs    int64      `json:"tStartMs"`
	DDurationMs int64      `json:"dDurationMs"`
	AAppend     int        `json:"aAppend,omitempty"`
	Segs        []json3Seg `json:"segs,omitempty"`
}

type json3Seg struct {
	UTF8 string `json:"utf8"`
}

// segments converts caption events to raw segments. Events without text
// runs are window/style markers, and appended newline-only events are
// line breaks of the previous cue; both are dropped.
func (d *json3Doc) segments() []domain.RawSegment {
	out := make([]domain.RawSegment, 0, len(d.Events))
	for _, ev := range d.Events {
		if len(ev.Segs) == 0 {
			continue
		}

		var sb strings.Builder
		for _, s := range ev.Segs {
			sb.WriteString(s.UTF8)
		}
		text := sb.String()

		if ev.AAppend != 0 && strings.TrimSpace(text) == "" {
			continue
		}

		out = append(out, domain.RawSegment{
			Text:     text,
			Start:    float64(ev.TStartMs) / 1000,
			Duration: float64(ev.DDurationMs) / 1000,
		})
	}
	return out
}
