package domain

import (
	"fmt"
	"math"
)

// ValidateSeconds reports whether seconds can be rendered as a timestamp
func ValidateSeconds(seconds float64) error {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidTimestamp, seconds)
	}
	return nil
}

// FormatTimestamp converts a seconds offset into "MM:SS" / "HH:MM:SS",
// or into the SRT form "HH:MM:SS,mmm" when srt is true.
//
// seconds must be finite and non-negative; anything else panics.
// Use ValidateSeconds first when the value comes from outside.
func FormatTimestamp(seconds float64, srt bool) string {
	if err := ValidateSeconds(seconds); err != nil {
		panic("domain.FormatTimestamp: " + err.Error())
	}

	if srt {
		// Work in whole milliseconds so 5.25 never renders as 5,249
		totalMillis := int64(math.Round(seconds * 1000))
		hours := totalMillis / 3_600_000
		minutes := (totalMillis % 3_600_000) / 60_000
		secs := (totalMillis % 60_000) / 1000
		millis := totalMillis % 1000
		return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
	}

	whole := int64(math.Floor(seconds))
	hours := whole / 3600
	minutes := (whole % 3600) / 60
	secs := whole % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
