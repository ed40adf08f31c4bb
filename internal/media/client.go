// Package media resolves WhatsApp media references to bytes via the Graph
// API's two-step lookup: a metadata fetch that yields a short-lived download
// URL, then the binary fetch itself. Both steps carry the same bearer token.
//
// Download URLs are single-use per platform contract, so assets are fetched
// fresh per message and never cached across requests.
package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Sentinel errors for the two retrieval phases. Callers distinguish them to
// decide what degraded state to record; neither aborts sibling messages.
var (
	// ErrMetadataUnavailable indicates the metadata fetch failed or the
	// response carried no download URL.
	ErrMetadataUnavailable = errors.New("media metadata unavailable")

	// ErrDownloadFailed indicates the binary fetch failed or returned a
	// payload whose size disagrees with the advertised byte size.
	ErrDownloadFailed = errors.New("media download failed")
)

// sizeTolerance is the allowed disagreement between the advertised file_size
// and the downloaded byte count before the payload is treated as corrupt.
const sizeTolerance = 1024

// Asset is a fully retrieved media payload. It is owned by the caller once
// returned; the client holds no reference to it.
type Asset struct {
	MediaID     string
	DownloadURL string
	MimeType    string
	Filename    string
	ByteSize    int64
	Data        []byte
}

// metadataResponse is the Graph API media metadata shape.
type metadataResponse struct {
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
	FileSize int64  `json:"file_size"`
	Filename string `json:"filename,omitempty"`
}

// Config holds media client settings.
type Config struct {
	// BaseURL is the Graph API base, e.g. "https://graph.facebook.com/v18.0".
	BaseURL string

	// AccessToken is the bearer credential for both phases.
	AccessToken string

	// MetadataTimeout bounds phase 1. Zero means 10s.
	MetadataTimeout time.Duration

	// DownloadTimeout bounds phase 2. Zero means 30s.
	DownloadTimeout time.Duration
}

// Client retrieves media assets from the platform.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// NewClient creates a media client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.MetadataTimeout <= 0 {
		cfg.MetadataTimeout = 10 * time.Second
	}
	if cfg.DownloadTimeout <= 0 {
		cfg.DownloadTimeout = 30 * time.Second
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{},
		logger: logger,
	}
}

// Fetch resolves mediaID to an Asset. Phase 2 is only attempted after phase 1
// succeeds; a phase 2 failure never invalidates already-extracted message
// state upstream.
func (c *Client) Fetch(ctx context.Context, mediaID string) (*Asset, error) {
	if c.cfg.AccessToken == "" {
		return nil, fmt.Errorf("no access token configured: %w", ErrMetadataUnavailable)
	}

	meta, err := c.fetchMetadata(ctx, mediaID)
	if err != nil {
		return nil, err
	}

	data, err := c.fetchBinary(ctx, meta.URL)
	if err != nil {
		return nil, err
	}

	if meta.FileSize > 0 {
		diff := int64(len(data)) - meta.FileSize
		if diff < 0 {
			diff = -diff
		}
		if diff > sizeTolerance {
			return nil, fmt.Errorf("size mismatch: got %d bytes, metadata advertised %d: %w",
				len(data), meta.FileSize, ErrDownloadFailed)
		}
	}

	c.logger.Info("media downloaded",
		"media_id", mediaID,
		"mime_type", meta.MimeType,
		"bytes", len(data),
	)

	return &Asset{
		MediaID:     mediaID,
		DownloadURL: meta.URL,
		MimeType:    meta.MimeType,
		Filename:    meta.Filename,
		ByteSize:    int64(len(data)),
		Data:        data,
	}, nil
}

// fetchMetadata is phase 1: GET {base}/{media_id} with the bearer token.
func (c *Client) fetchMetadata(ctx context.Context, mediaID string) (*metadataResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.MetadataTimeout)
	defer cancel()

	url := c.cfg.BaseURL + "/" + mediaID
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build metadata request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("metadata request for %s: %v: %w", mediaID, err, ErrMetadataUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("metadata request for %s: status %d: %w", mediaID, resp.StatusCode, ErrMetadataUnavailable)
	}

	var meta metadataResponse
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("decode metadata for %s: %v: %w", mediaID, err, ErrMetadataUnavailable)
	}

	if meta.URL == "" {
		return nil, fmt.Errorf("no download URL in metadata for %s: %w", mediaID, ErrMetadataUnavailable)
	}

	return &meta, nil
}

// fetchBinary is phase 2: GET the short-lived download URL with the same
// bearer token.
func (c *Client) fetchBinary(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.DownloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download request: %v: %w", err, ErrDownloadFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("download request: status %d: %w", resp.StatusCode, ErrDownloadFailed)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read download body: %v: %w", err, ErrDownloadFailed)
	}

	return data, nil
}
