package cli

import (
	"bufio"
	"os"
	"strings"

	"github.com/devbush/transcriptkit/internal/domain"
)

// ParseInputFile reads a file containing URLs or IDs, one per line.
// Blank lines and lines starting with # are ignored.
// Returns a slice of video IDs (extracted from URLs if needed).
func ParseInputFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var ids []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		video, err := domain.ParseVideoInput(line)
		if err != nil {
			logger.Warn().Str("line", line).Err(err).Msg("skipping invalid input line")
			continue
		}

		ids = append(ids, video.ID)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

// CollectInputs combines CLI arguments and file input, deduplicating.
// Args are processed first, then file entries.
// Returns a slice of unique video IDs in order of first appearance.
func CollectInputs(args []string, filePath string) ([]string, error) {
	seen := make(map[string]bool)
	var ids []string

	for _, arg := range args {
		video, err := domain.ParseVideoInput(arg)
		if err != nil {
			logger.Warn().Str("arg", arg).Err(err).Msg("skipping invalid argument")
			continue
		}
		if !seen[video.ID] {
			seen[video.ID] = true
			ids = append(ids, video.ID)
		}
	}

	if filePath != "" {
		fileIDs, err := ParseInputFile(filePath)
		if err != nil {
			return nil, err
		}
		for _, id := range fileIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	return ids, nil
}
