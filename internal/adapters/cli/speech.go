package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devbush/transcriptkit/internal/adapters/cli/tui"
	"github.com/devbush/transcriptkit/internal/application"
	"github.com/devbush/transcriptkit/internal/domain"
)

var (
	speechLanguageFlag string
	modelFlag          string
	speechFormatFlag   string
	speechOutputFlag   string
)

// NewSpeechCmd creates the speech subcommand
func NewSpeechCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "speech <audio-file>",
		Short: "Transcribe an audio file with whisper.cpp",
		Long: `Transcribe a local audio file and print a JSON report or SRT subtitles.

The model must be downloaded first (transcriptkit model download base).

Example:
  transcriptkit speech interview.wav --language en --model small
  transcriptkit speech interview.wav --format srt -o interview.srt`,
		Args: cobra.ExactArgs(1),
		RunE: runSpeech,
	}

	cmd.Flags().StringVarP(&speechLanguageFlag, "language", "l", "", "Spoken language code (empty to auto-detect)")
	cmd.Flags().StringVarP(&modelFlag, "model", "m", "", "Whisper model: tiny, base, small, medium, large (default from config)")
	cmd.Flags().StringVarP(&speechFormatFlag, "format", "f", "", "Output format: json, srt (default from config)")
	cmd.Flags().StringVarP(&speechOutputFlag, "output", "o", "", "Output file path")

	return cmd
}

func runSpeech(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	model := modelFlag
	if model == "" {
		model = app.Config.Defaults.Model
	}

	format, err := resolveFormat(speechFormatFlag, app.Config.Defaults.Format)
	if err != nil {
		return reportFailure(cmd.ErrOrStderr(), "", err)
	}

	opts := application.SpeechOptions{Model: model, Language: speechLanguageFlag}
	return transcribeAudio(cmd, app, args[0], opts, format, speechOutputFlag)
}

func transcribeAudio(cmd *cobra.Command, app *App, audioPath string, opts application.SpeechOptions, format, output string) error {
	progress := tui.NewProgressDisplay(cmd.ErrOrStderr(), []string{"Transcribing audio"}, quietFlag || !tui.IsTerminal(cmd.ErrOrStderr()))
	progress.StartStep(0)
	spinnerDone := progress.StartSpinner()

	env := app.SpeechSvc.Convert(context.Background(), audioPath, opts)

	close(spinnerDone)
	if failure, ok := env.(*domain.FailureReport); ok {
		progress.FailStep(0, failure.Error)
	} else {
		progress.CompleteStep(0)
	}

	report, ok := env.(*domain.SpeechReport)
	if !ok || format == formatJSON {
		if ok && output != "" {
			return saveJSON(cmd, app, "", env, output)
		}
		return emitEnvelope(cmd.OutOrStdout(), cmd.ErrOrStderr(), env)
	}

	return emitSRT(cmd, app, "", report, output)
}
