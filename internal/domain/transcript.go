package domain

import (
	"strings"
	"time"
)

// Segment represents a timed segment of recognized speech
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript is the output of the speech recognizer for one audio file
type Transcript struct {
	Text          string    `json:"text"`
	Segments      []Segment `json:"segments"`
	Model         string    `json:"model"`
	Language      string    `json:"language"`
	TranscribedAt time.Time `json:"transcribed_at"`
}

// ToText returns the full text, falling back to joined segments
func (t *Transcript) ToText() string {
	if t.Text != "" {
		return t.Text
	}

	var parts []string
	for _, seg := range t.Segments {
		parts = append(parts, strings.TrimSpace(seg.Text))
	}
	return strings.Join(parts, " ")
}

// Duration of the recording: end of the last segment, or 0
func (t *Transcript) Duration() float64 {
	if len(t.Segments) == 0 {
		return 0
	}
	return t.Segments[len(t.Segments)-1].End
}

// RawSegments converts recognizer segments to the start/duration schema
func (t *Transcript) RawSegments() []RawSegment {
	out := make([]RawSegment, 0, len(t.Segments))
	for _, seg := range t.Segments {
		dur := seg.End - seg.Start
		if dur < 0 {
			dur = 0
		}
		out = append(out, RawSegment{Text: seg.Text, Start: seg.Start, Duration: dur})
	}
	return out
}
