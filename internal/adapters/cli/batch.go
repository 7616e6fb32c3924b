package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/devbush/transcriptkit/internal/adapters/cli/tui"
	"github.com/devbush/transcriptkit/internal/adapters/subtitle"
	"github.com/devbush/transcriptkit/internal/domain"
)

const maxBatchConcurrency = 16

var (
	batchFileFlag        string
	batchDirFlag         string
	batchConcurrencyFlag int
)

// NewBatchCmd creates the batch command
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [video-urls/ids...]",
		Short: "Fetch transcripts for many videos",
		Long: `Fetch transcripts for several YouTube videos concurrently.

Provide video URLs or IDs as arguments and/or via a file with --file.
Each transcript is saved as <video-id>.json or <video-id>.srt in --dir.

Example:
  transcriptkit batch dQw4w9WgXcQ jNQXAC9IVRw
  transcriptkit batch --file videos.txt --dir transcripts --format srt
  transcriptkit batch dQw4w9WgXcQ --file more.txt --concurrency 8`,
		RunE: runBatch,
	}

	cmd.Flags().StringVarP(&batchFileFlag, "file", "F", "", "File with URLs/IDs (one per line)")
	cmd.Flags().StringVarP(&batchDirFlag, "dir", "d", ".", "Output directory")
	cmd.Flags().IntVarP(&batchConcurrencyFlag, "concurrency", "c", 4, fmt.Sprintf("Max concurrent workers (max %d)", maxBatchConcurrency))
	cmd.Flags().StringSliceVarP(&languagesFlag, "languages", "l", nil, "Preferred language codes in order (default from config)")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Output format: json, srt (default from config)")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	videoIDs, err := CollectInputs(args, batchFileFlag)
	if err != nil {
		return fmt.Errorf("failed to collect inputs: %w", err)
	}
	if len(videoIDs) == 0 {
		return fmt.Errorf("no valid video URLs or IDs provided")
	}

	app, err := GetApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	rawLangs := languagesFlag
	if len(rawLangs) == 0 {
		rawLangs = app.Config.Defaults.Languages
	}
	languages, err := domain.ParseLanguages(rawLangs)
	if err != nil {
		return err
	}

	format, err := resolveFormat(formatFlag, app.Config.Defaults.Format)
	if err != nil {
		return err
	}

	job := &batchJob{
		svc:         app.TranscriptSvc,
		writer:      app.Subtitles,
		languages:   languages,
		format:      format,
		outputDir:   batchDirFlag,
		concurrency: batchConcurrencyFlag,
	}

	progress := tui.NewBatchProgress(cmd.ErrOrStderr(), len(videoIDs), quietFlag)
	summary := job.run(context.Background(), videoIDs, progress)
	progress.Complete()

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d videos failed", summary.Failed, summary.Total)
	}
	return nil
}

// extractor produces the envelope for one video
type extractor interface {
	Extract(ctx context.Context, videoID string, languages []string) domain.Envelope
}

type batchJob struct {
	svc         extractor
	writer      *subtitle.Writer
	languages   []string
	format      string
	outputDir   string
	concurrency int
}

func (j *batchJob) run(ctx context.Context, videoIDs []string, progress *tui.BatchProgress) *BatchSummary {
	concurrency := j.concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > maxBatchConcurrency {
		concurrency = maxBatchConcurrency
	}

	summary := &BatchSummary{Total: len(videoIDs)}
	var mu sync.Mutex

	// Worker pool using semaphore pattern
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for _, videoID := range videoIDs {
		wg.Add(1)
		sem <- struct{}{}

		go func(id string) {
			defer wg.Done()
			defer func() { <-sem }()

			result := j.processOne(ctx, id)

			mu.Lock()
			summary.add(result)
			mu.Unlock()

			if progress != nil {
				progress.AddResult(id, result.Success, result.Error, result.Duration)
			}
		}(videoID)
	}

	wg.Wait()
	return summary
}

func (j *batchJob) processOne(ctx context.Context, videoID string) BatchResult {
	start := time.Now()
	result := BatchResult{VideoID: videoID}

	finish := func(err error) BatchResult {
		result.Duration = time.Since(start)
		if err != nil {
			result.Error = err.Error()
			result.Kind = domain.KindOf(err)
			return result
		}
		result.Success = true
		return result
	}

	env := j.svc.Extract(ctx, videoID, j.languages)
	switch report := env.(type) {
	case *domain.FailureReport:
		result.Duration = time.Since(start)
		result.Error = report.Error
		result.Kind = report.ErrorType
		return result
	case *domain.SuccessReport:
		path := filepath.Join(j.outputDir, videoID+"."+j.format)
		result.Path = path
		if j.format == formatSRT {
			return finish(j.writer.Save(report.RawTranscript, path))
		}
		var buf bytes.Buffer
		if err := encodeEnvelope(&buf, report); err != nil {
			return finish(domain.E(domain.KindInternal, "encode report", err))
		}
		return finish(j.writer.WriteAtomic(path, buf.Bytes()))
	default:
		return finish(domain.E(domain.KindInternal, "extract", fmt.Errorf("unexpected envelope %T", env)))
	}
}
