package photos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrHostNotAllowed = errors.New("photo host not allowed")

// Fetcher opens a photo by URL for download.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, string, error)
}

// HTTPFetcher downloads photos over HTTP(S) from AllowedHosts only. memory:// URLs
// are served from Memory when it is set.
type HTTPFetcher struct {
	Client       *http.Client
	Memory       *MemoryStorage
	AllowedHosts []string
}

// NewHTTPFetcher accepts hosts as "host" or "host:port"; full URLs are reduced to
// their host.
func NewHTTPFetcher(memory *MemoryStorage, allowedHosts ...string) *HTTPFetcher {
	f := &HTTPFetcher{
		Client: &http.Client{Timeout: 30 * time.Second},
		Memory: memory,
	}
	for _, h := range allowedHosts {
		if h = hostOf(h); h != "" {
			f.AllowedHosts = append(f.AllowedHosts, h)
		}
	}
	return f
}

func hostOf(s string) string {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil {
			return ""
		}
		s = u.Host
	}
	return strings.ToLower(s)
}

func (f *HTTPFetcher) allowed(u *url.URL) bool {
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Host)
	for _, h := range f.AllowedHosts {
		if h == host {
			return true
		}
	}
	return false
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, string, error) {
	if strings.HasPrefix(rawURL, "memory://") {
		if f.Memory == nil {
			return nil, "", ErrPhotoNotFound
		}
		return f.Memory.Open(rawURL)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, "", fmt.Errorf("invalid photo url: %w", err)
	}
	if !f.allowed(u) {
		return nil, "", fmt.Errorf("%w: %s", ErrHostNotAllowed, u.Host)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("invalid photo url: %w", err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch photo: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, "", ErrPhotoNotFound
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", fmt.Errorf("failed to fetch photo: unexpected status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return resp.Body, contentType, nil
}
