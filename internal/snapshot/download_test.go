package snapshot

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownload_StreamsWithProgress(t *testing.T) {
	payload := bytes.Repeat([]byte("s"), chunkSize*2+100)
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("api-key")
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		w.Write(payload)
	}))
	defer srv.Close()

	var out bytes.Buffer
	var reports []Progress
	n, err := Download(context.Background(), srv.Client(), Options{
		BaseURL:    srv.URL + "/",
		APIKey:     "secret",
		Collection: "demo",
		Name:       "demo-2024.snapshot",
	}, &out, func(p Progress) { reports = append(reports, p) })

	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), n)
	assert.Equal(t, payload, out.Bytes())
	assert.Equal(t, "/collections/demo/snapshots/demo-2024.snapshot", gotPath)
	assert.Equal(t, "secret", gotKey)

	require.NotEmpty(t, reports)
	last := reports[len(reports)-1]
	assert.Equal(t, int64(len(payload)), last.Loaded)
	assert.Equal(t, int64(len(payload)), last.Total)
	assert.Equal(t, 100, last.Percent)
	for i := 1; i < len(reports); i++ {
		assert.Greater(t, reports[i].Loaded, reports[i-1].Loaded)
	}
}

func TestDownload_SizeOverridesContentLength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("0123456789"))
	}))
	defer srv.Close()

	var last Progress
	_, err := Download(context.Background(), srv.Client(), Options{
		BaseURL: srv.URL, Collection: "c", Name: "n", Size: 40,
	}, &bytes.Buffer{}, func(p Progress) { last = p })

	require.NoError(t, err)
	assert.Equal(t, int64(40), last.Total)
	assert.Equal(t, 25, last.Percent)
}

func TestDownload_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":{"error":"not found"}}`, http.StatusNotFound)
	}))
	defer srv.Close()

	var out bytes.Buffer
	n, err := Download(context.Background(), srv.Client(), Options{
		BaseURL: srv.URL, Collection: "c", Name: "missing",
	}, &out, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Zero(t, n)
	assert.Zero(t, out.Len())
}

func TestDownload_RequiresNames(t *testing.T) {
	_, err := NewDownloader(nil).Download(context.Background(), Options{BaseURL: "http://x"}, &bytes.Buffer{}, nil)
	assert.Error(t, err)
}

func TestDownloader_OneAtATime(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { close(started) })
		<-release
		w.Write([]byte("done"))
	}))
	defer srv.Close()

	d := NewDownloader(srv.Client())
	opts := Options{BaseURL: srv.URL, Collection: "c", Name: "n"}

	errc := make(chan error, 1)
	go func() {
		_, err := d.Download(context.Background(), opts, &bytes.Buffer{}, nil)
		errc <- err
	}()
	<-started

	_, err := d.Download(context.Background(), opts, &bytes.Buffer{}, nil)
	assert.ErrorIs(t, err, ErrDownloadInProgress)
	assert.EqualError(t, err, "Please wait until the previous download is finished")

	close(release)
	require.NoError(t, <-errc)

	_, err = d.Download(context.Background(), opts, &bytes.Buffer{}, nil)
	assert.NoError(t, err)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, percent(10, 0))
	assert.Equal(t, 33, percent(1, 3))
	assert.Equal(t, 67, percent(2, 3))
}
