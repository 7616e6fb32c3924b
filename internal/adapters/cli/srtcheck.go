package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devbush/transcriptkit/internal/domain"
)

// NewSRTCheckCmd creates the srt-check subcommand
func NewSRTCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "srt-check <file>",
		Short: "Validate an SRT file",
		Args:  cobra.ExactArgs(1),
		RunE:  runSRTCheck,
	}
}

func runSRTCheck(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	segments, err := app.Subtitles.Check(args[0])
	if err != nil {
		return reportFailure(cmd.ErrOrStderr(), "", err)
	}

	end := domain.TotalDuration(segments)
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d cues, %d words, ends at %s\n",
		args[0], len(segments), domain.WordCount(segments), domain.FormatTimestamp(end, true))
	return nil
}
