package domain

import (
	"fmt"
	"math"
	"strings"
)

// RawSegment is one caption record as delivered by a transcript source
type RawSegment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// End returns the playback offset at which the segment stops
func (s RawSegment) End() float64 {
	return s.Start + s.Duration
}

// NormalizedSegment is a RawSegment with trimmed text and display timestamps
type NormalizedSegment struct {
	Text      string  `json:"text"`
	Start     float64 `json:"start"`
	Duration  float64 `json:"duration"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
}

// Normalize maps raw segments one-to-one onto the uniform schema.
// Order is preserved and nothing is filtered or merged, so empty or
// zero-length segments pass through untouched.
func Normalize(raw []RawSegment) ([]NormalizedSegment, error) {
	out := make([]NormalizedSegment, 0, len(raw))
	for i, seg := range raw {
		if err := validateSegment(seg); err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		out = append(out, NormalizedSegment{
			Text:      strings.TrimSpace(seg.Text),
			Start:     seg.Start,
			Duration:  seg.Duration,
			StartTime: FormatTimestamp(seg.Start, false),
			EndTime:   FormatTimestamp(seg.End(), false),
		})
	}
	return out, nil
}

// TotalDuration is the playback position where the last segment ends,
// rounded to hundredths. It is not the sum of segment durations.
func TotalDuration(raw []RawSegment) float64 {
	if len(raw) == 0 {
		return 0.0
	}
	return math.Round(raw[len(raw)-1].End()*100) / 100
}

// WordCount counts whitespace-separated words across all segments
func WordCount(raw []RawSegment) int {
	total := 0
	for _, seg := range raw {
		total += len(strings.Fields(seg.Text))
	}
	return total
}

func validateSegment(seg RawSegment) error {
	if err := ValidateSeconds(seg.Start); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if err := ValidateSeconds(seg.Duration); err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	return nil
}
