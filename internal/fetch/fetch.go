// Package fetch retrieves raw source content for a query.
//
// A source is addressed by a scheme prefix embedded in the SQL FROM
// clause: http:// and https:// fetch over the network, file:// reads
// local storage. There is no retry, no cache, and no deduplication of
// in-flight fetches; cancellation happens per call through the
// context.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// fileSchemeLen is the length of "file://"; the path starts right
// after it.
const fileSchemeLen = 7

// Fetcher returns the full raw text of one source.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// Retrieve resolves a source string to its raw content, dispatching
// on the scheme prefix. Anything other than http(s) or file is
// rejected before any I/O happens.
func Retrieve(ctx context.Context, client *http.Client, source string) (string, error) {
	f, err := ForSource(client, source)
	if err != nil {
		return "", err
	}
	return f.Fetch(ctx)
}

// ForSource picks a fetcher for the source string. The client applies
// to URL sources only; nil falls back to http.DefaultClient.
func ForSource(client *http.Client, source string) (Fetcher, error) {
	switch {
	case strings.HasPrefix(source, "http"):
		return &URLFetcher{Client: client, URL: source}, nil
	case strings.HasPrefix(source, "file://"):
		return &FileFetcher{Path: source[fileSchemeLen:]}, nil
	default:
		return nil, &Error{Code: CodeScheme, Source: source,
			Message: "only http, https, and file sources are supported"}
	}
}

// URLFetcher fetches a source over HTTP(S).
type URLFetcher struct {
	Client *http.Client
	URL    string
}

// Fetch performs one GET and returns the full body. A non-2xx status
// is a fetch failure.
func (f *URLFetcher) Fetch(ctx context.Context) (string, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return "", &Error{Code: CodeHTTP, Source: f.URL, Message: "build request", Err: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", &Error{Code: CodeHTTP, Source: f.URL, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{Code: CodeHTTP, Source: f.URL,
			Message: fmt.Sprintf("unexpected status %s", resp.Status)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Code: CodeHTTP, Source: f.URL, Message: "read body", Err: err}
	}
	return string(body), nil
}

// FileFetcher reads a source from local storage.
type FileFetcher struct {
	Path string
}

// Fetch reads the whole file. The context is honored only between
// operations; local reads are not interruptible.
func (f *FileFetcher) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &Error{Code: CodeFile, Source: f.Path, Message: "cancelled", Err: err}
	}

	content, err := os.ReadFile(f.Path)
	if err != nil {
		return "", &Error{Code: CodeFile, Source: f.Path, Message: "read file", Err: err}
	}
	return string(content), nil
}
