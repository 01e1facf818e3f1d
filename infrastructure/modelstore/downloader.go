package modelstore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	pkgerrors "github.com/pkg/errors"

	"statement-ocr/domain/entities"
	domerrors "statement-ocr/domain/errors"
	"statement-ocr/domain/interfaces"
)

// DefaultDownloadTimeout bounds a single artifact download.
const DefaultDownloadTimeout = 10 * time.Minute

// downloader implements the ArtifactFetcher interface over HTTP.
type downloader struct {
	client *http.Client
	logger interfaces.Logger
}

// NewDownloader creates an HTTP artifact fetcher. A zero timeout falls back
// to DefaultDownloadTimeout.
func NewDownloader(timeout time.Duration, logger interfaces.Logger) interfaces.ArtifactFetcher {
	if timeout <= 0 {
		timeout = DefaultDownloadTimeout
	}
	return &downloader{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Fetch mirrors one artifact into destDir/<kind>/<file>. An artifact already
// present is reported as a cache hit and not re-downloaded. There is no
// retry: a failed download surfaces as a DownloadError and leaves no partial
// file behind.
func (d *downloader) Fetch(ctx context.Context, artifact entities.ModelArtifact, destDir string) (string, bool, error) {
	kindDir := filepath.Join(destDir, string(artifact.Kind))
	finalPath := filepath.Join(kindDir, artifact.FileName)

	if info, err := os.Stat(finalPath); err == nil && info.Mode().IsRegular() {
		d.logger.Info("Model already cached", "artifact", artifact.Name, "path", finalPath)
		return finalPath, true, nil
	}

	if err := os.MkdirAll(kindDir, 0o755); err != nil {
		return "", false, pkgerrors.Wrapf(err, "create cache dir %s", kindDir)
	}

	d.logger.Info("Downloading model",
		"artifact", artifact.Name,
		"url", artifact.URL,
		"size", artifact.SizeLabel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, artifact.URL, nil)
	if err != nil {
		return "", false, &domerrors.DownloadError{Artifact: artifact.Name, URL: artifact.URL, Err: err}
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", false, &domerrors.DownloadError{Artifact: artifact.Name, URL: artifact.URL, Err: err}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			d.logger.Error("Failed to close response body", "error", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", false, &domerrors.DownloadError{
			Artifact: artifact.Name,
			URL:      artifact.URL,
			Err:      fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	// Write to a temp file first so an interrupted download never leaves a
	// truncated archive at the final path.
	tmp, err := os.CreateTemp(kindDir, artifact.FileName+".partial-*")
	if err != nil {
		return "", false, pkgerrors.Wrap(err, "create temp file")
	}
	tmpPath := tmp.Name()

	written, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return "", false, &domerrors.DownloadError{Artifact: artifact.Name, URL: artifact.URL, Err: err}
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", false, pkgerrors.Wrapf(err, "move %s into cache", artifact.FileName)
	}

	d.logger.Info("Model cached", "artifact", artifact.Name, "bytes", written, "path", finalPath)
	return finalPath, false, nil
}
