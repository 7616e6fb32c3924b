package tui

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// FormatSize formats a byte count with a binary unit suffix
// Examples: 512 -> "512 B", 1536 -> "1.5 KB", 147951465 -> "141.1 MB"
func FormatSize(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}

// FormatDuration formats an elapsed time for progress lines
// Examples: 800ms -> "0.8s", 75s -> "1m15s"
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return d.Round(time.Second).String()
}

// LanguageLabel formats a language code with its English name
// Example: "es" -> "es (Spanish)". Unknown codes are returned as is.
func LanguageLabel(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	name := display.English.Tags().Name(tag)
	if name == "" {
		return code
	}
	return fmt.Sprintf("%s (%s)", code, name)
}
