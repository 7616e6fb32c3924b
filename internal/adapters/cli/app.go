package cli

import (
	"github.com/rs/zerolog"

	"github.com/devbush/transcriptkit/internal/adapters/subtitle"
	"github.com/devbush/transcriptkit/internal/adapters/whisper"
	"github.com/devbush/transcriptkit/internal/adapters/youtube"
	"github.com/devbush/transcriptkit/internal/application"
	"github.com/devbush/transcriptkit/internal/config"
)

// App holds all application dependencies
type App struct {
	Config      *config.Config
	Log         zerolog.Logger
	YtDlp       *youtube.Binary
	Catalog     *youtube.Catalog
	Transcriber *whisper.Transcriber
	Subtitles   *subtitle.Writer

	TranscriptSvc *application.TranscriptService
	SpeechSvc     *application.SpeechService
}

// NewApp creates and wires up all dependencies
func NewApp(cfg *config.Config, log zerolog.Logger) (*App, error) {
	if err := config.EnsureDirs(); err != nil {
		return nil, err
	}

	timeout, err := cfg.GetFetchTimeout()
	if err != nil {
		log.Warn().Err(err).Str("fetch_timeout", cfg.Defaults.FetchTimeout).Msg("invalid fetch timeout, using default")
		timeout = youtube.DefaultFetchTimeout
	}

	ytdlp := youtube.NewBinary(cfg.Paths.YtDlp)
	catalog := youtube.NewCatalog(ytdlp, youtube.NewFetcher(nil, timeout), log)
	transcriber := whisper.NewTranscriber("", whisper.WithBinary(cfg.Paths.Whisper), whisper.WithLogger(log))

	return &App{
		Config:        cfg,
		Log:           log,
		YtDlp:         ytdlp,
		Catalog:       catalog,
		Transcriber:   transcriber,
		Subtitles:     subtitle.NewWriter(nil, log),
		TranscriptSvc: application.NewTranscriptService(catalog, log),
		SpeechSvc:     application.NewSpeechService(transcriber, log),
	}, nil
}

var globalApp *App

// GetApp returns the global app instance, creating it if needed
func GetApp() (*App, error) {
	if globalApp == nil {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		app, err := NewApp(cfg, logger)
		if err != nil {
			return nil, err
		}
		globalApp = app
	}
	return globalApp, nil
}
