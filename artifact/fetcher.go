// Package artifact downloads serialized model artifacts from the file host.
package artifact

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// FileURL builds the download URL for a hosted file ID.
func FileURL(baseURL, fileID string) string {
	return fmt.Sprintf("%s?export=download&id=%s", baseURL, fileID)
}

// EnsureLocal makes sure dest exists, downloading it from url when absent.
// An existing file is never re-downloaded. Returns whether a download
// happened. No retries and no integrity check; failures propagate as-is.
func EnsureLocal(ctx context.Context, client *http.Client, url, dest string) (bool, error) {
	if _, err := os.Stat(dest); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("download %s: %w", dest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("download %s: unexpected status %s", dest, resp.Status)
	}

	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, err
		}
	}

	// Write to a temp file first so a partial download never shadows dest.
	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp*")
	if err != nil {
		return false, err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return false, fmt.Errorf("download %s: %w", dest, err)
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return false, err
	}
	return true, nil
}
