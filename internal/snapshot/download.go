// Package snapshot streams collection snapshots from the server.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/sadopc/qconsole/internal/protocol"
)

// ErrDownloadInProgress is returned when a Downloader is already busy.
var ErrDownloadInProgress = errors.New("Please wait until the previous download is finished")

const chunkSize = 32 * 1024

// Options identifies the snapshot to fetch.
type Options struct {
	BaseURL    string
	APIKey     string
	Collection string
	Name       string
	// Size is the snapshot size as listed by the server. Zero falls back to
	// Content-Length.
	Size int64
}

// Progress is reported after every chunk.
type Progress struct {
	Loaded  int64
	Total   int64
	Percent int
}

// Downloader runs at most one download at a time.
type Downloader struct {
	client *http.Client
	busy   atomic.Bool
}

// NewDownloader creates a Downloader. A nil client uses http.DefaultClient.
func NewDownloader(client *http.Client) *Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Downloader{client: client}
}

// Download fetches a snapshot with a single-use Downloader.
func Download(ctx context.Context, client *http.Client, opts Options, w io.Writer, progress func(Progress)) (int64, error) {
	return NewDownloader(client).Download(ctx, opts, w, progress)
}

// Download streams the snapshot into w and returns the number of bytes written.
func (d *Downloader) Download(ctx context.Context, opts Options, w io.Writer, progress func(Progress)) (int64, error) {
	if !d.busy.CompareAndSwap(false, true) {
		return 0, ErrDownloadInProgress
	}
	defer d.busy.Store(false)

	if opts.Collection == "" || opts.Name == "" {
		return 0, fmt.Errorf("collection and snapshot name are required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, snapshotURL(opts), nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	if opts.APIKey != "" {
		req.Header.Set(protocol.DefaultAPIKeyHeader, opts.APIKey)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("downloading snapshot: %s", resp.Status)
	}

	total := opts.Size
	if total <= 0 && resp.ContentLength > 0 {
		total = resp.ContentLength
	}

	var loaded int64
	buf := make([]byte, chunkSize)
	for {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			if _, err := w.Write(buf[:n]); err != nil {
				return loaded, fmt.Errorf("writing snapshot: %w", err)
			}
			loaded += int64(n)
			if progress != nil {
				progress(Progress{Loaded: loaded, Total: total, Percent: percent(loaded, total)})
			}
		}
		if rerr == io.EOF {
			return loaded, nil
		}
		if rerr != nil {
			return loaded, fmt.Errorf("reading snapshot: %w", rerr)
		}
	}
}

func snapshotURL(opts Options) string {
	return fmt.Sprintf("%s/collections/%s/snapshots/%s",
		strings.TrimRight(opts.BaseURL, "/"),
		url.PathEscape(opts.Collection),
		url.PathEscape(opts.Name))
}

func percent(loaded, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(loaded) / float64(total) * 100))
}
