// Package download saves recordings to the local download directory.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/tilawa/internal/errmsg"
	"github.com/llehouerou/tilawa/internal/network"
)

// Result describes a saved file.
type Result struct {
	Path  string
	Bytes int64
}

// Size returns the file size in human-readable form.
func (r Result) Size() string {
	return humanize.Bytes(uint64(max(r.Bytes, 0)))
}

// Saver downloads files into a directory.
type Saver struct {
	dir        string
	httpClient *http.Client
}

// New creates a saver writing into dir.
func New(dir string) *Saver {
	return &Saver{
		dir:        dir,
		httpClient: network.NewClient(10 * time.Minute),
	}
}

// Dir returns the destination directory.
func (s *Saver) Dir() string { return s.dir }

// Save downloads url to the destination directory under a name derived
// from title, keeping the extension of the URL (default ".mp3"). The file
// appears only once the download completes.
func (s *Saver) Save(ctx context.Context, url, title string) (Result, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create download dir: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", network.UserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, &errmsg.StatusError{URL: url, Code: resp.StatusCode}
	}

	dest := filepath.Join(s.dir, FileName(title, url))
	tmp, err := os.CreateTemp(s.dir, ".tilawa-*.part")
	if err != nil {
		return Result{}, fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after a successful rename

	n, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return Result{}, fmt.Errorf("write %s: %w", dest, err)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return Result{}, fmt.Errorf("rename: %w", err)
	}
	return Result{Path: dest, Bytes: n}, nil
}

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// FileName builds a safe file name from a title and the source URL.
func FileName(title, url string) string {
	ext := strings.ToLower(path.Ext(strings.SplitN(url, "?", 2)[0]))
	if ext == "" || len(ext) > 5 {
		ext = ".mp3"
	}

	name := invalidFilenameChars.ReplaceAllString(title, "_")
	name = strings.Trim(name, " .")
	if r := []rune(name); len(r) > 100 {
		name = string(r[:100])
	}
	if name == "" {
		name = "recording"
	}
	return name + ext
}
