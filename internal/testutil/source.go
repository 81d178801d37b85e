// Package testutil provides shared fixtures for tests that need real
// sources: temp files addressable with the file scheme and HTTP
// servers addressable with the http scheme.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// CovidCSV is a small fixture in the shape of the OWID COVID export
// the original examples query: string, string, then numeric columns.
const CovidCSV = `location,continent,total_cases,new_deaths
Andorra,Europe,48015,0
Brazil,South America,37076053,700
Chile,South America,5288292,502
Denmark,Europe,3440616,1
France,Europe,38997490,900
Peru,South America,4526977,510
`

// WriteSourceFile writes content into a temp file and returns it as
// a file:// source. The file is removed with the test's temp dir.
func WriteSourceFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write source file: %v", err)
	}
	return "file://" + path
}

// ServeContent starts an HTTP server that answers every request with
// content, and shuts it down when the test ends. The returned URL is
// usable as an http source.
func ServeContent(t *testing.T, content string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(content))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

// ServeStatus starts an HTTP server that always answers with the
// given status code and no body.
func ServeStatus(t *testing.T, code int) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}
