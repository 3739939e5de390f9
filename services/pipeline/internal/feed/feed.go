package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/02loveslollipop/station-backfill/services/pipeline/internal/fileio"
	"github.com/02loveslollipop/station-backfill/services/pipeline/internal/models"
	"github.com/02loveslollipop/station-backfill/services/pipeline/internal/transform"
)

// IsRemote reports whether source names an http(s) URL rather than a file.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Read returns the raw bytes of a feed snapshot from a local path or URL.
func Read(ctx context.Context, client *http.Client, source string) ([]byte, error) {
	if !IsRemote(source) {
		return fileio.ReadFile(source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", transform.ErrMissingInput, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request feed: %v", transform.ErrMissingInput, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %s", transform.ErrMissingInput, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read feed body: %v", transform.ErrMissingInput, err)
	}
	return data, nil
}

// Fetch reads and decodes a feed snapshot.
func Fetch(ctx context.Context, client *http.Client, source string) ([]models.RawSample, error) {
	data, err := Read(ctx, client, source)
	if err != nil {
		return nil, err
	}
	return transform.DecodeFeed(data)
}
