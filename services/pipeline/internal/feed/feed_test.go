package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/02loveslollipop/station-backfill/services/pipeline/internal/transform"
)

const snapshot = `{"data":[{"main":{"temp":293.15,"humidity":50},"dt":0}]}`

func TestFetch_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(snapshot), 0o644))

	samples, err := Fetch(context.Background(), http.DefaultClient, path)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, 293.15, *samples[0].Main.Temp)
}

func TestFetch_LocalFileMissing(t *testing.T) {
	_, err := Fetch(context.Background(), http.DefaultClient, filepath.Join(t.TempDir(), "data.json"))
	assert.ErrorIs(t, err, transform.ErrMissingInput)
}

func TestFetch_Remote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(snapshot))
	}))
	defer srv.Close()

	samples, err := Fetch(context.Background(), srv.Client(), srv.URL+"/history.json")
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, int64(0), *samples[0].Dt)
}

func TestFetch_RemoteErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/garbled" {
			_, _ = w.Write([]byte(`{"data": [`))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.Client(), srv.URL+"/missing")
	assert.ErrorIs(t, err, transform.ErrMissingInput)

	_, err = Fetch(context.Background(), srv.Client(), srv.URL+"/garbled")
	assert.ErrorIs(t, err, transform.ErrMalformedInput)
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://example.com/a.json"))
	assert.True(t, IsRemote("http://localhost:8080/a.json"))
	assert.False(t, IsRemote("data.json"))
	assert.False(t, IsRemote("/var/lib/http/data.json"))
}
