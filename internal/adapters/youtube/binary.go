package youtube

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/devbush/transcriptkit/internal/config"
	"github.com/devbush/transcriptkit/internal/domain"
)

// Binary locates, installs and updates the yt-dlp executable
type Binary struct {
	configured string
	binDir     string

	mu      sync.Mutex
	binPath string
}

// NewBinary creates a yt-dlp locator. A non-empty configured path wins
// over the bundled copy and PATH.
func NewBinary(configured string) *Binary {
	return &Binary{configured: configured, binDir: config.BinDir()}
}

func binaryName() string {
	if runtime.GOOS == "windows" {
		return "yt-dlp.exe"
	}
	return "yt-dlp"
}

func (b *Binary) find() string {
	if b.configured != "" {
		if _, err := os.Stat(b.configured); err == nil {
			return b.configured
		}
		return ""
	}

	// Check bundled location first
	bundled := filepath.Join(b.binDir, binaryName())
	if _, err := os.Stat(bundled); err == nil {
		return bundled
	}

	if path, err := exec.LookPath(binaryName()); err == nil {
		return path
	}

	return ""
}

// Path returns the resolved executable, or "" when none was found
func (b *Binary) Path() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.binPath == "" {
		b.binPath = b.find()
	}
	return b.binPath
}

func (b *Binary) IsAvailable() bool {
	return b.Path() != ""
}

// Version runs yt-dlp --version
func (b *Binary) Version(ctx context.Context) (string, error) {
	path := b.Path()
	if path == "" {
		return "", domain.ErrYtDlpNotFound
	}
	out, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("yt-dlp --version: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Install downloads the latest release into the bundled bin directory
func (b *Binary) Install(ctx context.Context, progress func(downloaded, total int64)) error {
	if err := os.MkdirAll(b.binDir, 0755); err != nil {
		return err
	}

	destPath := filepath.Join(b.binDir, binaryName())
	tempPath := destPath + ".tmp"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download yt-dlp: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download yt-dlp: HTTP %d", resp.StatusCode)
	}

	out, err := os.Create(tempPath)
	if err != nil {
		return err
	}

	// Track success to clean up partial downloads on failure
	success := false
	defer func() {
		out.Close()
		if !success {
			os.Remove(tempPath)
		}
	}()

	pr := &progressReader{r: resp.Body, total: resp.ContentLength, fn: progress}
	if _, err := io.Copy(out, &ctxReader{ctx: ctx, r: pr}); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(tempPath, 0755); err != nil {
			return err
		}
	}
	if err := os.Rename(tempPath, destPath); err != nil {
		return err
	}

	success = true

	b.mu.Lock()
	b.binPath = destPath
	b.mu.Unlock()
	return nil
}

func downloadURL() string {
	base := "https://github.com/yt-dlp/yt-dlp/releases/latest/download/"

	switch runtime.GOOS {
	case "windows":
		return base + "yt-dlp.exe"
	case "darwin":
		return base + "yt-dlp_macos"
	default:
		return base + "yt-dlp"
	}
}

// Update runs the self-updater of the resolved binary
func (b *Binary) Update(ctx context.Context) error {
	path := b.Path()
	if path == "" {
		return domain.ErrYtDlpNotFound
	}
	return exec.CommandContext(ctx, path, "-U").Run()
}

type progressReader struct {
	r          io.Reader
	total      int64
	downloaded int64
	fn         func(downloaded, total int64)
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.downloaded += int64(n)
		if p.fn != nil {
			p.fn(p.downloaded, p.total)
		}
	}
	return n, err
}

// ctxReader stops a copy once ctx is done
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(buf []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(buf)
}
