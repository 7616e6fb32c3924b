package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/devbush/transcriptkit/internal/adapters/cli/tui"
	"github.com/devbush/transcriptkit/internal/config"
	"github.com/devbush/transcriptkit/internal/logging"
)

var (
	// Global flags
	configFlag    string
	logLevelFlag  string
	logFormatFlag string
	quietFlag     bool

	logger = zerolog.Nop()
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "transcriptkit",
		Short: "Fetch YouTube transcripts and transcribe audio",
		Long: `transcriptkit retrieves YouTube video transcripts as JSON or SRT
and converts audio files to text with whisper.cpp.

Run without arguments for an interactive menu.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupLogging,
		RunE:              runRoot,
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default ~/.transcriptkit/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", logging.FormatAuto, "Log format: auto, console, json")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress progress output")

	rootCmd.AddCommand(NewTranscriptCmd())
	rootCmd.AddCommand(NewSpeechCmd())
	rootCmd.AddCommand(NewLanguagesCmd())
	rootCmd.AddCommand(NewBatchCmd())
	rootCmd.AddCommand(NewSRTCheckCmd())
	rootCmd.AddCommand(NewModelCmd())
	rootCmd.AddCommand(NewDepsCmd())

	return rootCmd
}

func loadConfig() (*config.Config, error) {
	if configFlag != "" {
		return config.Load(configFlag)
	}
	return config.LoadDefault()
}

// setupLogging builds the process logger; every entry of one run carries
// the same run_id
func setupLogging(cmd *cobra.Command, args []string) error {
	level := logLevelFlag
	if level == "" {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		level = cfg.Defaults.LogLevel
	}

	base := logging.New(logging.Options{
		Level:  level,
		Format: logFormatFlag,
		Output: cmd.ErrOrStderr(),
	})
	logger, _ = logging.WithRunID(base)
	logger.Debug().Str("command", cmd.CommandPath()).Msg("starting")
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	return runInteractiveMenu(cmd)
}

func runInteractiveMenu(cmd *cobra.Command) error {
	options := []tui.MenuOption{
		{Label: "Get a video transcript", Value: "transcript"},
		{Label: "List a video's transcript languages", Value: "languages"},
		{Label: "Transcribe an audio file", Value: "speech"},
		{Label: "Manage whisper models", Value: "models"},
		{Label: "Check dependencies", Value: "deps"},
	}

	selected, err := tui.RunMenu("What would you like to do?", options)
	if err != nil {
		return err
	}

	in := bufio.NewReader(cmd.InOrStdin())

	switch selected {
	case "transcript":
		return runTranscriptInteractive(cmd, in)
	case "languages":
		input, err := prompt(cmd.OutOrStdout(), in, "Enter video URL or ID: ")
		if err != nil {
			return err
		}
		return runLanguages(cmd, []string{input})
	case "speech":
		path, err := prompt(cmd.OutOrStdout(), in, "Enter audio file path: ")
		if err != nil {
			return err
		}
		return runSpeech(cmd, []string{path})
	case "models":
		return runModelList(cmd, nil)
	case "deps":
		return runDepsStatus(cmd, nil)
	case "":
		fmt.Fprintln(cmd.ErrOrStderr(), "Cancelled")
	}

	return nil
}

func prompt(out io.Writer, in *bufio.Reader, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
