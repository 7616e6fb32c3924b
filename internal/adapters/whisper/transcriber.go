package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/devbush/transcriptkit/internal/config"
	"github.com/devbush/transcriptkit/internal/domain"
	"github.com/devbush/transcriptkit/internal/logging"
	"github.com/devbush/transcriptkit/internal/ports"
)

// Model sizes in bytes (approximate)
var modelSizes = map[string]int64{
	"tiny":   75 * 1024 * 1024,
	"base":   140 * 1024 * 1024,
	"small":  462 * 1024 * 1024,
	"medium": 1500 * 1024 * 1024,
	"large":  3000 * 1024 * 1024,
}

// Transcriber implements ports.Transcriber using whisper.cpp
type Transcriber struct {
	modelsDir  string
	binDir     string
	configured string
	log        zerolog.Logger
	run        func(cmd *exec.Cmd) error
}

// Option customizes a Transcriber
type Option func(*Transcriber)

// WithBinary pins the whisper.cpp executable instead of searching for it
func WithBinary(path string) Option {
	return func(t *Transcriber) { t.configured = path }
}

// WithLogger sets the logger used for command tracing
func WithLogger(log zerolog.Logger) Option {
	return func(t *Transcriber) { t.log = log.With().Str(logging.FieldComponent, "whisper").Logger() }
}

// NewTranscriber creates a new whisper.cpp transcriber. An empty
// modelsDir means the default models directory.
func NewTranscriber(modelsDir string, opts ...Option) *Transcriber {
	if modelsDir == "" {
		modelsDir = config.ModelsDir()
	}
	t := &Transcriber{
		modelsDir: modelsDir,
		binDir:    config.BinDir(),
		log:       zerolog.Nop(),
		run:       func(cmd *exec.Cmd) error { return cmd.Run() },
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func modelURL(name string) string {
	return fmt.Sprintf("https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-%s.bin", name)
}

func (t *Transcriber) modelPath(name string) string {
	return filepath.Join(t.modelsDir, fmt.Sprintf("ggml-%s.bin", name))
}

func (t *Transcriber) AvailableModels() []ports.Model {
	models := []ports.Model{
		{Name: "tiny", Size: modelSizes["tiny"], Description: "basic accuracy, very fast"},
		{Name: "base", Size: modelSizes["base"], Description: "good accuracy, fast"},
		{Name: "small", Size: modelSizes["small"], Description: "better accuracy, moderate speed"},
		{Name: "medium", Size: modelSizes["medium"], Description: "great accuracy, slower"},
		{Name: "large", Size: modelSizes["large"], Description: "best accuracy, slow"},
	}

	for i := range models {
		models[i].Downloaded = t.IsModelDownloaded(models[i].Name)
	}

	return models
}

func (t *Transcriber) IsModelDownloaded(model string) bool {
	_, err := os.Stat(t.modelPath(model))
	return err == nil
}

// DownloadModel fetches a ggml model into the models directory. The file
// only appears under its final name once fully written.
func (t *Transcriber) DownloadModel(ctx context.Context, model string, progress func(downloaded, total int64)) error {
	if _, ok := modelSizes[model]; !ok {
		return domain.E(domain.KindInvalidInput, "download model", fmt.Errorf("%w: %s", domain.ErrModelNotFound, model))
	}

	if err := os.MkdirAll(t.modelsDir, 0755); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, modelURL(model), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download model: HTTP %d", resp.StatusCode)
	}

	destPath := t.modelPath(model)
	tempPath := destPath + ".tmp"

	out, err := os.Create(tempPath)
	if err != nil {
		return err
	}

	success := false
	defer func() {
		out.Close()
		if !success {
			os.Remove(tempPath)
		}
	}()

	w := &progressWriter{ctx: ctx, w: out, total: resp.ContentLength, fn: progress}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return err
	}

	if err := out.Close(); err != nil {
		return err
	}
	if err := os.Rename(tempPath, destPath); err != nil {
		return err
	}

	success = true
	return nil
}

func (t *Transcriber) DeleteModel(model string) error {
	if err := os.Remove(t.modelPath(model)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", domain.ErrModelNotFound, model)
		}
		return err
	}
	return nil
}

// BinaryPath returns the whisper.cpp executable in use, or ""
func (t *Transcriber) BinaryPath() string {
	return t.findWhisperBinary()
}

func (t *Transcriber) Transcribe(ctx context.Context, audioPath string, opts ports.TranscribeOpts) (*domain.Transcript, error) {
	model := opts.Model
	if model == "" {
		model = "base"
	}

	if _, err := os.Stat(audioPath); err != nil {
		return nil, domain.E(domain.KindSourceUnavailable, "transcribe", fmt.Errorf("audio file: %w", err))
	}

	if !t.IsModelDownloaded(model) {
		return nil, domain.E(domain.KindSourceUnavailable, "transcribe",
			fmt.Errorf("%w: %s (run: transcriptkit model download %s)", domain.ErrModelNotFound, model, model))
	}

	whisperBin := t.findWhisperBinary()
	if whisperBin == "" {
		return nil, domain.E(domain.KindSourceUnavailable, "transcribe", domain.ErrWhisperNotFound)
	}

	workDir, err := os.MkdirTemp("", "transcriptkit-whisper-")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	outputBase := filepath.Join(workDir, "out")
	args := []string{
		"-m", t.modelPath(model),
		"-f", audioPath,
		"-of", outputBase,
		"-oj",
		"-np",
	}
	if opts.Language != "" {
		args = append(args, "-l", opts.Language)
	}

	t.log.Debug().Str("bin", whisperBin).Strs("args", args).Msg("running whisper")

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, whisperBin, args...)
	cmd.Stderr = &stderr
	if err := t.run(cmd); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, domain.E(domain.KindSourceUnavailable, "transcribe", fmt.Errorf("%w: %s", domain.ErrTranscriptionFailed, msg))
	}

	data, err := os.ReadFile(outputBase + ".json")
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}

	transcript, err := parseWhisperJSON(data, model)
	if err != nil {
		return nil, err
	}
	if transcript.Language == "" {
		transcript.Language = opts.Language
	}
	return transcript, nil
}

func (t *Transcriber) findWhisperBinary() string {
	if t.configured != "" {
		if _, err := os.Stat(t.configured); err == nil {
			return t.configured
		}
		return ""
	}

	names := []string{"whisper-cli", "whisper", "whisper-cpp", "main"}
	if runtime.GOOS == "windows" {
		for i := range names {
			names[i] += ".exe"
		}
	}

	for _, name := range names {
		bundled := filepath.Join(t.binDir, name)
		if _, err := os.Stat(bundled); err == nil {
			return bundled
		}
	}

	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	return ""
}

// whisperOutput is the -oj document written by whisper.cpp
type whisperOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Timestamps struct {
			From string `json:"from"`
			To   string `json:"to"`
		} `json:"timestamps"`
		Offsets *struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

func parseWhisperJSON(data []byte, model string) (*domain.Transcript, error) {
	var output whisperOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	segments := make([]domain.Segment, 0, len(output.Transcription))
	var fullText strings.Builder

	for _, item := range output.Transcription {
		var start, end float64
		if item.Offsets != nil {
			start = float64(item.Offsets.From) / 1000
			end = float64(item.Offsets.To) / 1000
		} else {
			start = parseTimestamp(item.Timestamps.From)
			end = parseTimestamp(item.Timestamps.To)
		}
		text := strings.TrimSpace(item.Text)

		segments = append(segments, domain.Segment{
			Start: start,
			End:   end,
			Text:  text,
		})

		if text == "" {
			continue
		}
		if fullText.Len() > 0 {
			fullText.WriteString(" ")
		}
		fullText.WriteString(text)
	}

	return &domain.Transcript{
		Text:          fullText.String(),
		Segments:      segments,
		Model:         model,
		Language:      output.Result.Language,
		TranscribedAt: time.Now(),
	}, nil
}

var timestampRegex = regexp.MustCompile(`(\d+):(\d+):(\d+)[,.](\d+)`)

func parseTimestamp(ts string) float64 {
	matches := timestampRegex.FindStringSubmatch(ts)
	if len(matches) != 5 {
		return 0
	}

	hours, _ := strconv.Atoi(matches[1])
	minutes, _ := strconv.Atoi(matches[2])
	seconds, _ := strconv.Atoi(matches[3])
	millis, _ := strconv.Atoi(matches[4])

	return float64(hours)*3600 + float64(minutes)*60 + float64(seconds) + float64(millis)/1000
}

type progressWriter struct {
	ctx        context.Context
	w          io.Writer
	total      int64
	downloaded int64
	fn         func(downloaded, total int64)
}

func (p *progressWriter) Write(buf []byte) (int, error) {
	if err := p.ctx.Err(); err != nil {
		return 0, err
	}
	n, err := p.w.Write(buf)
	p.downloaded += int64(n)
	if p.fn != nil {
		p.fn(p.downloaded, p.total)
	}
	return n, err
}

// Ensure Transcriber implements interface
var _ ports.Transcriber = (*Transcriber)(nil)
