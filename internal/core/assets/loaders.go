package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// MaxAssetSize bounds how much a loader reads.
const MaxAssetSize = 64 << 20

// HTTPLoader fetches assets over http(s).
type HTTPLoader struct {
	Client *http.Client
}

func NewHTTPLoader(timeout time.Duration) *HTTPLoader {
	return &HTTPLoader{Client: &http.Client{Timeout: timeout}}
}

func (l *HTTPLoader) Load(ctx context.Context, uri string) (*Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("asset request: %w", err)
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("asset fetch %s: %w", uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d", ErrFetchFailed, uri, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxAssetSize))
	if err != nil {
		return nil, fmt.Errorf("asset read %s: %w", uri, err)
	}
	return Decode(uri, data)
}

// FileLoader reads assets from the local filesystem. A file:// prefix is
// accepted and stripped.
type FileLoader struct{}

func (FileLoader) Load(_ context.Context, uri string) (*Asset, error) {
	path := strings.TrimPrefix(uri, "file://")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("asset open: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, MaxAssetSize))
	if err != nil {
		return nil, fmt.Errorf("asset read %s: %w", path, err)
	}
	return Decode(uri, data)
}

// SchemeLoader picks the HTTP loader for http(s) URIs and the file loader
// otherwise.
type SchemeLoader struct {
	HTTP *HTTPLoader
	File FileLoader
}

func (l SchemeLoader) Load(ctx context.Context, uri string) (*Asset, error) {
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		if l.HTTP == nil {
			return NewHTTPLoader(0).Load(ctx, uri)
		}
		return l.HTTP.Load(ctx, uri)
	}
	return l.File.Load(ctx, uri)
}
