package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"
)

// TransactConfig holds document-processing API settings.
type TransactConfig struct {
	BaseURL     string
	AccessToken string

	// UploadTimeout bounds each upload and process call. Zero means 60s.
	UploadTimeout time.Duration
}

// TransactClient uploads business documents to the processing API and
// triggers extraction on them. The API authenticates with a session cookie
// rather than a bearer header.
type TransactClient struct {
	cfg    TransactConfig
	http   *http.Client
	logger *slog.Logger
}

// NewTransactClient creates a document API client.
func NewTransactClient(cfg TransactConfig, logger *slog.Logger) *TransactClient {
	if cfg.UploadTimeout <= 0 {
		cfg.UploadTimeout = 60 * time.Second
	}
	return &TransactClient{
		cfg:    cfg,
		http:   &http.Client{},
		logger: logger,
	}
}

// uploadResponse is the document API's upload result. The id may arrive at
// the top level or nested under "document".
type uploadResponse struct {
	ID       int `json:"id"`
	Document *struct {
		ID int `json:"id"`
	} `json:"document"`
}

// Upload sends a document as multipart form data and returns the assigned
// document id.
func (c *TransactClient) Upload(ctx context.Context, filename, mimeType string, data []byte) (int, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return 0, fmt.Errorf("build multipart form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return 0, fmt.Errorf("write multipart payload: %w", err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("close multipart writer: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.UploadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/documents", &buf)
	if err != nil {
		return 0, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.addAuth(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("document upload: %v: %w", err, ErrUnreachable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("document upload: status %d: %s: %w", resp.StatusCode, body, ErrUnreachable)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode upload response: %v: %w", err, ErrUnreachable)
	}

	id := out.ID
	if id == 0 && out.Document != nil {
		id = out.Document.ID
	}
	if id == 0 {
		return 0, fmt.Errorf("upload response carried no document id: %w", ErrUnreachable)
	}

	c.logger.Info("document uploaded",
		"document_id", id,
		"filename", filename,
		"bytes", len(data),
	)

	return id, nil
}

// Process asks the document API to run extraction on an uploaded document.
func (c *TransactClient) Process(ctx context.Context, documentID int) error {
	body, err := json.Marshal(map[string][]int{"document_ids": {documentID}})
	if err != nil {
		return fmt.Errorf("marshal process request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.UploadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/documents/process", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build process request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.addAuth(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("document process: %v: %w", err, ErrUnreachable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("document process: status %d: %w", resp.StatusCode, ErrUnreachable)
	}

	c.logger.Info("document processing triggered", "document_id", documentID)
	return nil
}

// Probe checks connectivity to the document API.
func (c *TransactClient) Probe(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.UploadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/documents", nil)
	if err != nil {
		return fmt.Errorf("build probe request: %w", err)
	}
	c.addAuth(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("transact probe: %v: %w", err, ErrUnreachable)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("transact probe: status %d: %w", resp.StatusCode, ErrUnreachable)
	}
	return nil
}

func (c *TransactClient) addAuth(req *http.Request) {
	if c.cfg.AccessToken != "" {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: c.cfg.AccessToken})
	}
}
