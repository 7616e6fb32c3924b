package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devbush/transcriptkit/internal/adapters/cli/tui"
)

// NewModelCmd creates the model subcommand
func NewModelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Manage whisper models",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available models",
		RunE:  runModelList,
	}

	downloadCmd := &cobra.Command{
		Use:   "download <model>",
		Short: "Download a model",
		Args:  cobra.ExactArgs(1),
		RunE:  runModelDownload,
	}

	removeCmd := &cobra.Command{
		Use:   "remove <model>",
		Short: "Remove a downloaded model",
		Args:  cobra.ExactArgs(1),
		RunE:  runModelRemove,
	}

	cmd.AddCommand(listCmd, downloadCmd, removeCmd)
	return cmd
}

func runModelList(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	var rows [][]string
	for _, m := range app.Transcriber.AvailableModels() {
		status := "not downloaded"
		if m.Downloaded {
			status = "downloaded"
		}
		if m.Name == app.Config.Defaults.Model {
			status += " (default)"
		}
		rows = append(rows, []string{m.Name, tui.FormatSize(m.Size), status, m.Description})
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Model", "Size", "Status", "Notes"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
	))
	return nil
}

func runModelDownload(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	model := args[0]

	if app.Transcriber.IsModelDownloaded(model) {
		fmt.Fprintf(cmd.OutOrStdout(), "Model '%s' is already downloaded\n", model)
		return nil
	}

	progress := tui.NewProgressDisplay(cmd.ErrOrStderr(), []string{fmt.Sprintf("Downloading model '%s'", model)}, quietFlag)
	progress.StartStep(0)

	err = app.Transcriber.DownloadModel(context.Background(), model, func(downloaded, total int64) {
		progress.UpdateProgress(0, downloaded, total)
	})
	if err != nil {
		progress.FailStep(0, err.Error())
		return err
	}

	progress.CompleteStep(0)
	fmt.Fprintln(cmd.OutOrStdout(), "Model downloaded successfully")
	return nil
}

func runModelRemove(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	model := args[0]

	if !app.Transcriber.IsModelDownloaded(model) {
		fmt.Fprintf(cmd.OutOrStdout(), "Model '%s' is not downloaded\n", model)
		return nil
	}

	if err := app.Transcriber.DeleteModel(model); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Model '%s' removed\n", model)
	return nil
}
