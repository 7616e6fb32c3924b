package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Video identifies a YouTube video
type Video struct {
	ID  string
	URL string
}

// WatchURL builds the canonical watch URL for a video
func (v *Video) WatchURL() string {
	if v.URL != "" {
		return v.URL
	}
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", v.ID)
}

var (
	// Matches watch?v=ID, youtu.be/ID, /shorts/ID, /embed/ID and /live/ID
	videoURLPattern = regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:.*&)?v=|shorts/|embed/|live/)|youtu\.be/)([A-Za-z0-9_-]{11})`)
	// Valid video ID pattern (11 chars of the URL-safe base64 alphabet)
	videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

// ParseVideoInput extracts a Video from a URL or ID string
func ParseVideoInput(input string) (*Video, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty input")
	}

	if matches := videoURLPattern.FindStringSubmatch(input); len(matches) > 1 {
		return &Video{
			ID:  matches[1],
			URL: input,
		}, nil
	}

	if videoIDPattern.MatchString(input) {
		return &Video{
			ID: input,
		}, nil
	}

	return nil, fmt.Errorf("invalid video URL or ID: %s", input)
}
