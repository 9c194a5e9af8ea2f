package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalProvider_Fetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644))

	data, err := (&LocalProvider{}).Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))
}

func TestLocalProvider_Missing(t *testing.T) {
	_, err := (&LocalProvider{}).Fetch(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestHTTPProvider_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("csv,data"))
	}))
	defer srv.Close()

	data, err := NewHTTPProvider(HTTPOptions{}).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "csv,data", string(data))
}

func TestHTTPProvider_RetriesThenFails(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTPProvider(HTTPOptions{MaxRetries: 2, RatePerHost: 100}).Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
	assert.Equal(t, 3, attempts)
}

func TestResolver_Dispatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("remote"))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "local.csv")
	require.NoError(t, os.WriteFile(path, []byte("local"), 0o644))

	r := NewResolver(HTTPOptions{RatePerHost: 100}, FTPOptions{})

	local, err := r.Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "local", string(local))

	remote, err := r.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "remote", string(remote))

	_, err = r.Fetch(context.Background(), "s3://bucket/key")
	assert.Error(t, err)
}

func TestFTPAddress(t *testing.T) {
	addr, path, err := ftpAddress("ftp://drop.carrier.example/exports/roster.csv")
	require.NoError(t, err)
	assert.Equal(t, "drop.carrier.example:21", addr)
	assert.Equal(t, "/exports/roster.csv", path)

	addr, _, err = ftpAddress("ftp://drop.carrier.example:2121/roster.csv")
	require.NoError(t, err)
	assert.Equal(t, "drop.carrier.example:2121", addr)

	_, _, err = ftpAddress("https://not-ftp.example/x")
	assert.Error(t, err)

	_, _, err = ftpAddress("ftp://host.example")
	assert.Error(t, err)
}
