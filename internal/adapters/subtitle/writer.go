package subtitle

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/devbush/transcriptkit/internal/domain"
	"github.com/devbush/transcriptkit/internal/logging"
)

// Writer renders segments as SRT files
type Writer struct {
	fs  afero.Fs
	log zerolog.Logger
}

// NewWriter creates a writer on fs. A nil fs means the OS filesystem.
func NewWriter(fs afero.Fs, log zerolog.Logger) *Writer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Writer{fs: fs, log: log.With().Str(logging.FieldComponent, "subtitle").Logger()}
}

// Save renders raw and writes it to path
func (w *Writer) Save(raw []domain.RawSegment, path string) error {
	doc, err := domain.RenderSRT(raw)
	if err != nil {
		return domain.E(domain.KindRenderIOFailure, "render srt", err)
	}
	if err := w.WriteAtomic(path, []byte(doc)); err != nil {
		return err
	}
	w.log.Debug().Str("path", path).Int("segments", len(raw)).Msg("srt written")
	return nil
}

// WriteAtomic writes data to a temporary file next to path and renames it
// into place, so path never holds a partial document
func (w *Writer) WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := w.fs.MkdirAll(dir, 0755); err != nil {
		return domain.E(domain.KindRenderIOFailure, "write file", err)
	}

	tmp, err := afero.TempFile(w.fs, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return domain.E(domain.KindRenderIOFailure, "write file", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			tmp.Close()
			w.fs.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return domain.E(domain.KindRenderIOFailure, "write file", err)
	}
	if err := tmp.Sync(); err != nil {
		return domain.E(domain.KindRenderIOFailure, "write file", err)
	}
	if err := tmp.Close(); err != nil {
		return domain.E(domain.KindRenderIOFailure, "write file", err)
	}
	if err := w.fs.Chmod(tmpName, 0644); err != nil {
		return domain.E(domain.KindRenderIOFailure, "write file", err)
	}
	if err := w.fs.Rename(tmpName, path); err != nil {
		return domain.E(domain.KindRenderIOFailure, "write file", fmt.Errorf("rename into place: %w", err))
	}

	success = true
	return nil
}

// Write is Save for callers that only need a yes/no answer; the error is
// logged, never returned.
func (w *Writer) Write(raw []domain.RawSegment, path string) bool {
	if err := w.Save(raw, path); err != nil {
		w.log.Error().Err(err).Str("path", path).Msg("failed to write srt file")
		return false
	}
	return true
}

// Check reads an SRT file from disk and parses it
func (w *Writer) Check(path string) ([]domain.RawSegment, error) {
	data, err := afero.ReadFile(w.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.E(domain.KindSourceUnavailable, "read srt", err)
		}
		return nil, domain.E(domain.KindRenderIOFailure, "read srt", err)
	}
	segs, err := domain.ParseSRT(string(data))
	if err != nil {
		return nil, domain.E(domain.KindInvalidInput, "parse srt", err)
	}
	return segs, nil
}
