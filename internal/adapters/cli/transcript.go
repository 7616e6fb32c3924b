package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devbush/transcriptkit/internal/adapters/cli/tui"
	"github.com/devbush/transcriptkit/internal/domain"
)

const (
	formatJSON = "json"
	formatSRT  = "srt"
)

var (
	languagesFlag []string
	formatFlag    string
	outputFlag    string
)

// NewTranscriptCmd creates the transcript subcommand
func NewTranscriptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcript <video-url|video-id>",
		Short: "Fetch a video transcript as JSON or SRT",
		Long: `Fetch the transcript of a YouTube video.

Languages are tried in order, manual transcripts before generated ones.
When none match, the first available transcript is used, translated to
the first preferred language when possible.

Example:
  transcriptkit transcript dQw4w9WgXcQ --languages es,en
  transcriptkit transcript https://youtu.be/dQw4w9WgXcQ --format srt -o talk.srt`,
		Args: cobra.ExactArgs(1),
		RunE: runTranscript,
	}

	cmd.Flags().StringSliceVarP(&languagesFlag, "languages", "l", nil, "Preferred language codes in order (default from config)")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output format: json, srt (default from config)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file path")

	return cmd
}

func runTranscript(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	video, err := domain.ParseVideoInput(args[0])
	if err != nil {
		return reportFailure(cmd.ErrOrStderr(), "", domain.E(domain.KindInvalidInput, "parse video", err))
	}

	rawLangs := languagesFlag
	if len(rawLangs) == 0 {
		rawLangs = app.Config.Defaults.Languages
	}
	languages, err := domain.ParseLanguages(rawLangs)
	if err != nil {
		return reportFailure(cmd.ErrOrStderr(), video.ID, err)
	}

	format, err := resolveFormat(formatFlag, app.Config.Defaults.Format)
	if err != nil {
		return reportFailure(cmd.ErrOrStderr(), video.ID, err)
	}

	return transcribeVideo(cmd, app, video.ID, languages, format, outputFlag)
}

func resolveFormat(flag, fallback string) (string, error) {
	format := flag
	if format == "" {
		format = fallback
	}
	switch format {
	case formatJSON, formatSRT:
		return format, nil
	case "":
		return formatJSON, nil
	default:
		return "", domain.E(domain.KindInvalidInput, "", fmt.Errorf("unknown format: %s (use json or srt)", format))
	}
}

func transcribeVideo(cmd *cobra.Command, app *App, videoID string, languages []string, format, output string) error {
	progress := tui.NewProgressDisplay(cmd.ErrOrStderr(), []string{"Fetching transcript"}, quietFlag || !tui.IsTerminal(cmd.ErrOrStderr()))
	progress.StartStep(0)
	spinnerDone := progress.StartSpinner()

	env := app.TranscriptSvc.Extract(context.Background(), videoID, languages)

	close(spinnerDone)
	if failure, ok := env.(*domain.FailureReport); ok {
		progress.FailStep(0, failure.Error)
	} else {
		progress.CompleteStep(0)
	}

	report, ok := env.(*domain.SuccessReport)
	if !ok || format == formatJSON {
		if ok && output != "" {
			return saveJSON(cmd, app, videoID, env, output)
		}
		return emitEnvelope(cmd.OutOrStdout(), cmd.ErrOrStderr(), env)
	}

	return emitSRT(cmd, app, videoID, report, output)
}

// subtitled is a report that can be rendered as subtitles
type subtitled interface {
	RawSegments() []domain.RawSegment
	ToSRT() (string, error)
}

// emitSRT prints report as SRT, or saves it to output when set
func emitSRT(cmd *cobra.Command, app *App, videoID string, report subtitled, output string) error {
	if output == "" {
		doc, err := report.ToSRT()
		if err != nil {
			return reportFailure(cmd.ErrOrStderr(), videoID, domain.E(domain.KindRenderIOFailure, "render srt", err))
		}
		fmt.Fprintln(cmd.OutOrStdout(), doc)
		return nil
	}

	// Write logs the cause through the app logger
	if !app.Subtitles.Write(report.RawSegments(), output) {
		err := domain.E(domain.KindRenderIOFailure, "write srt", fmt.Errorf("could not save %s", output))
		return reportFailure(cmd.ErrOrStderr(), videoID, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "SRT file saved to: %s\n", output)
	return nil
}

func saveJSON(cmd *cobra.Command, app *App, videoID string, env domain.Envelope, path string) error {
	var buf bytes.Buffer
	if err := encodeEnvelope(&buf, env); err != nil {
		return err
	}
	if err := app.Subtitles.WriteAtomic(path, buf.Bytes()); err != nil {
		return reportFailure(cmd.ErrOrStderr(), videoID, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "JSON file saved to: %s\n", path)
	return nil
}

// runTranscriptInteractive asks for a video, lets the user pick preferred
// languages among those available, then the output format
func runTranscriptInteractive(cmd *cobra.Command, in *bufio.Reader) error {
	app, err := GetApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	input, err := prompt(cmd.OutOrStdout(), in, "Enter video URL or ID: ")
	if err != nil {
		return err
	}
	video, err := domain.ParseVideoInput(input)
	if err != nil {
		return reportFailure(cmd.ErrOrStderr(), "", domain.E(domain.KindInvalidInput, "parse video", err))
	}

	tracks, err := app.Catalog.Tracks(context.Background(), video.ID)
	if err != nil {
		return reportFailure(cmd.ErrOrStderr(), video.ID, err)
	}

	available := trackLanguages(tracks)
	languages := app.Config.Defaults.Languages
	if len(available) > 0 {
		picked, err := tui.RunLanguageSelector(available, languages)
		if err != nil {
			return err
		}
		if picked == nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled")
			return nil
		}
		languages = picked
	}

	format, err := tui.RunMenu("Output format?", []tui.MenuOption{
		{Label: "JSON report", Value: formatJSON},
		{Label: "SRT subtitles", Value: formatSRT},
	})
	if err != nil {
		return err
	}
	if format == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled")
		return nil
	}

	output, err := prompt(cmd.OutOrStdout(), in, "Output file (empty for stdout): ")
	if err != nil {
		return err
	}

	return transcribeVideo(cmd, app, video.ID, languages, format, output)
}
