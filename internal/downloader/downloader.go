package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/saberdeck/saberdeck/internal/logger"
	"github.com/saberdeck/saberdeck/internal/media"
	"github.com/saberdeck/saberdeck/internal/webapi"
)

var (
	// ErrAudioFetch marks a preview payload that could not be downloaded.
	ErrAudioFetch = errors.New("audio fetch failed")
	// ErrUnsupportedScheme is returned for URLs that are not http(s).
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")
)

// DefaultMaxBytes caps a preview payload when no limit is configured.
const DefaultMaxBytes int64 = 16 << 20

// Downloader fetches whole audio payloads into memory.
type Downloader struct {
	api      *webapi.Client
	maxBytes int64
}

// New creates a Downloader. maxBytes <= 0 selects DefaultMaxBytes.
func New(maxBytes int64, reqPerSec float64, timeout time.Duration) *Downloader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Downloader{
		api:      webapi.New("", reqPerSec, timeout),
		maxBytes: maxBytes,
	}
}

// IsURL returns true if the argument looks like a URL.
func IsURL(arg string) bool {
	return strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://")
}

// Fetch downloads rawURL and returns its body. HTML pages, oversized bodies
// and empty bodies are refused.
func (d *Downloader) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	target, err := normalizeAndValidateURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAudioFetch, err)
	}

	start := time.Now()
	resp, err := d.api.Get(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAudioFetch, err)
	}
	defer resp.Body.Close()

	contentType := media.NormalizeContentType(resp.Header.Get("Content-Type"))
	if contentType == "text/html" {
		return nil, fmt.Errorf("%w: %s returned a web page", ErrAudioFetch, target)
	}
	if resp.ContentLength > d.maxBytes {
		return nil, fmt.Errorf("%w: preview is %d bytes, limit is %d", ErrAudioFetch, resp.ContentLength, d.maxBytes)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, d.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrAudioFetch, target, err)
	}
	switch {
	case int64(len(data)) > d.maxBytes:
		return nil, fmt.Errorf("%w: preview exceeds %d bytes", ErrAudioFetch, d.maxBytes)
	case len(data) == 0:
		return nil, fmt.Errorf("%w: %s returned an empty body", ErrAudioFetch, target)
	case media.LooksLikeHTML(data):
		return nil, fmt.Errorf("%w: %s returned a web page", ErrAudioFetch, target)
	}

	if !media.IsAudioContentType(contentType) {
		logger.Warn("preview has no audio content type", logger.String("url", target), logger.String("content_type", contentType))
	}
	logger.Info("preview downloaded",
		logger.String("url", target),
		logger.String("content_type", contentType),
		logger.Int("bytes", len(data)),
		logger.Duration("elapsed", time.Since(start)))
	return data, nil
}

func normalizeAndValidateURL(rawURL string) (string, error) {
	s := strings.TrimSpace(rawURL)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	parsed, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("invalid URL %q: missing host", rawURL)
	}
	return parsed.String(), nil
}
