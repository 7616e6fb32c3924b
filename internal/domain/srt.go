package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RenderSRT returns the segments as a SubRip document.
// Each cue is its 1-based index, the time range, the trimmed text and a
// blank line; lines are joined with "\n".
func RenderSRT(raw []RawSegment) (string, error) {
	lines := make([]string, 0, len(raw)*4)
	for i, seg := range raw {
		if err := validateSegment(seg); err != nil {
			return "", fmt.Errorf("segment %d: %w", i, err)
		}
		lines = append(lines,
			strconv.Itoa(i+1),
			fmt.Sprintf("%s --> %s", FormatTimestamp(seg.Start, true), FormatTimestamp(seg.End(), true)),
			strings.TrimSpace(seg.Text),
			"",
		)
	}
	return strings.Join(lines, "\n"), nil
}

var srtRangePattern = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2})[,.](\d{3})\s*-->\s*(\d+):(\d{2}):(\d{2})[,.](\d{3})`)

// ParseSRT reads a SubRip document back into raw segments.
// Multi-line cue text is joined with a single space.
func ParseSRT(doc string) ([]RawSegment, error) {
	doc = strings.ReplaceAll(doc, "\r\n", "\n")
	lines := strings.Split(doc, "\n")

	var segments []RawSegment
	for i := 0; i < len(lines); {
		if strings.TrimSpace(lines[i]) == "" {
			i++
			continue
		}

		index := strings.TrimSpace(lines[i])
		if _, err := strconv.Atoi(index); err != nil {
			return nil, fmt.Errorf("line %d: invalid cue index %q", i+1, index)
		}
		i++
		if i >= len(lines) {
			return nil, fmt.Errorf("cue %s: missing time range", index)
		}

		m := srtRangePattern.FindStringSubmatch(strings.TrimSpace(lines[i]))
		if m == nil {
			return nil, fmt.Errorf("line %d: invalid time range %q", i+1, lines[i])
		}
		start := srtSeconds(m[1:5])
		end := srtSeconds(m[5:9])
		if end < start {
			return nil, fmt.Errorf("cue %s: end %s is before start", index, strings.TrimSpace(lines[i]))
		}
		i++

		var text []string
		for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
			text = append(text, strings.TrimSpace(lines[i]))
			i++
		}

		segments = append(segments, RawSegment{
			Text:     strings.Join(text, " "),
			Start:    start,
			Duration: end - start,
		})
	}
	return segments, nil
}

func srtSeconds(parts []string) float64 {
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	seconds, _ := strconv.Atoi(parts[2])
	millis, _ := strconv.Atoi(parts[3])
	return float64(hours)*3600 + float64(minutes)*60 + float64(seconds) + float64(millis)/1000
}
