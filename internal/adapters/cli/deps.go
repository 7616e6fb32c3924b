package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devbush/transcriptkit/internal/adapters/cli/tui"
)

// NewDepsCmd creates the deps subcommand
func NewDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Manage external tools (yt-dlp, whisper.cpp)",
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show dependency status",
		RunE:  runDepsStatus,
	}

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Update yt-dlp to latest version",
		RunE:  runDepsUpdate,
	}

	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Install yt-dlp",
		RunE:  runDepsInstall,
	}

	cmd.AddCommand(statusCmd, updateCmd, installCmd)
	return cmd
}

func runDepsStatus(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	ytdlp := "not found (run: transcriptkit deps install)"
	if app.YtDlp.IsAvailable() {
		version, err := app.YtDlp.Version(context.Background())
		if err != nil {
			version = "unknown version"
		}
		ytdlp = fmt.Sprintf("%s (%s)", version, app.YtDlp.Path())
	}

	whisperBin := "not found (install whisper.cpp)"
	if path := app.Transcriber.BinaryPath(); path != "" {
		whisperBin = path
	}

	models := app.Transcriber.AvailableModels()
	downloaded := 0
	for _, m := range models {
		if m.Downloaded {
			downloaded++
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Dependency", "Status"},
		[][]string{
			{"yt-dlp", ytdlp},
			{"whisper.cpp", whisperBin},
			{"whisper models", fmt.Sprintf("%d/%d downloaded", downloaded, len(models))},
		},
		nil,
	))
	return nil
}

func runDepsUpdate(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	if !app.YtDlp.IsAvailable() {
		return fmt.Errorf("yt-dlp is not installed. Run 'transcriptkit deps install' first")
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Updating yt-dlp...")
	if err := app.YtDlp.Update(context.Background()); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "yt-dlp updated")
	return nil
}

func runDepsInstall(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	if app.YtDlp.IsAvailable() {
		fmt.Fprintln(cmd.OutOrStdout(), "yt-dlp is already installed")
		return nil
	}

	progress := tui.NewProgressDisplay(cmd.ErrOrStderr(), []string{"Installing yt-dlp"}, quietFlag)
	progress.StartStep(0)

	err = app.YtDlp.Install(context.Background(), func(downloaded, total int64) {
		progress.UpdateProgress(0, downloaded, total)
	})
	if err != nil {
		progress.FailStep(0, err.Error())
		return err
	}

	progress.CompleteStep(0)
	fmt.Fprintln(cmd.OutOrStdout(), "yt-dlp installed")
	return nil
}
