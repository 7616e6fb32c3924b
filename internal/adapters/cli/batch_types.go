package cli

import (
	"time"

	"github.com/devbush/transcriptkit/internal/domain"
)

// BatchResult represents the result of processing a single video in a batch
type BatchResult struct {
	VideoID  string
	Success  bool
	Error    string
	Kind     domain.Kind
	Path     string
	Duration time.Duration
}

// BatchSummary aggregates results from a batch run
type BatchSummary struct {
	Total     int
	Succeeded int
	Failed    int
	Results   []BatchResult
}

func (s *BatchSummary) add(r BatchResult) {
	s.Results = append(s.Results, r)
	if r.Success {
		s.Succeeded++
	} else {
		s.Failed++
	}
}

// FailedResults returns only the failed results
func (s *BatchSummary) FailedResults() []BatchResult {
	var failed []BatchResult
	for _, r := range s.Results {
		if !r.Success {
			failed = append(failed, r)
		}
	}
	return failed
}
