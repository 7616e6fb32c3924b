package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/devbush/transcriptkit/internal/domain"
	"github.com/devbush/transcriptkit/internal/ports"
)

// NewLanguagesCmd creates the languages subcommand
func NewLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages <video-url|video-id>",
		Short: "List the transcripts a video offers",
		Args:  cobra.ExactArgs(1),
		RunE:  runLanguages,
	}
}

func runLanguages(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	video, err := domain.ParseVideoInput(args[0])
	if err != nil {
		return reportFailure(cmd.ErrOrStderr(), "", domain.E(domain.KindInvalidInput, "parse video", err))
	}

	tracks, err := app.Catalog.Tracks(context.Background(), video.ID)
	if err != nil {
		return reportFailure(cmd.ErrOrStderr(), video.ID, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTrackTable(tracks))

	targets := tracks.TranslationLanguages()
	if len(targets) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Translatable to %d languages: %s\n", len(targets), strings.Join(targets, ", "))
	}
	return nil
}

func renderTrackTable(list ports.TranscriptList) string {
	manual, _ := list.Manual()
	generated, _ := list.Generated()

	var rows [][]string
	for _, group := range []struct {
		kind   string
		tracks []ports.TranscriptTrack
	}{{"manual", manual}, {"generated", generated}} {
		for _, t := range group.tracks {
			translatable := "no"
			if r, ok := t.(ports.TranslatableReporter); ok && r.IsTranslatable() {
				translatable = "yes"
			}
			rows = append(rows, []string{t.LanguageCode(), group.kind, translatable})
		}
	}

	if len(rows) == 0 {
		return "No transcripts available"
	}
	return renderTable([]string{"Language", "Type", "Translatable"}, rows, nil)
}

// trackLanguages lists each language once, manual tracks first
func trackLanguages(list ports.TranscriptList) []string {
	manual, _ := list.Manual()
	generated, _ := list.Generated()

	seen := make(map[string]bool)
	var langs []string
	for _, group := range [][]ports.TranscriptTrack{manual, generated} {
		for _, t := range group {
			if !seen[t.LanguageCode()] {
				seen[t.LanguageCode()] = true
				langs = append(langs, t.LanguageCode())
			}
		}
	}
	return langs
}
