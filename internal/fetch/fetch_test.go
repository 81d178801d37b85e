package fetch

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

func TestRetrieve_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0644))

	got, err := Retrieve(context.Background(), nil, "file://"+path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", got)
}

func TestRetrieve_FileMissing(t *testing.T) {
	_, err := Retrieve(context.Background(), nil, "file:///nonexistent/data.csv")
	require.Error(t, err)

	var fe *Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, CodeFile, fe.Code)
}

func TestRetrieve_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("a,b\n1,2\n"))
	}))
	defer srv.Close()

	got, err := Retrieve(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", got)
}

func TestRetrieve_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Retrieve(context.Background(), srv.Client(), srv.URL)
	require.Error(t, err)

	var fe *Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, CodeHTTP, fe.Code)
	assert.Contains(t, err.Error(), "404")
}

func TestRetrieve_UnsupportedScheme(t *testing.T) {
	// Rejected before any I/O: no server exists and none is contacted.
	_, err := Retrieve(context.Background(), nil, "ftp://host/file")
	require.Error(t, err)
	assert.True(t, IsSchemeError(err))
	assert.Contains(t, err.Error(), "ftp://host/file")
}

func TestRetrieve_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("unreached"))
	}))
	defer srv.Close()

	_, err := Retrieve(ctx, srv.Client(), srv.URL)
	require.Error(t, err)

	var fe *Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, CodeHTTP, fe.Code)
}

func TestForSource_StripsFileScheme(t *testing.T) {
	f, err := ForSource(nil, "file:///tmp/x.csv")
	require.NoError(t, err)

	ff, ok := f.(*FileFetcher)
	require.True(t, ok)
	assert.Equal(t, "/tmp/x.csv", ff.Path)
}

func TestForSource_HTTPSPrefix(t *testing.T) {
	f, err := ForSource(nil, "https://example.com/d.csv")
	require.NoError(t, err)
	assert.IsType(t, &URLFetcher{}, f)
}
