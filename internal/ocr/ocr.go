// Package ocr reads the platform account id from a profile screenshot.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"regexp"
	"time"

	"recruitbot/internal/models"

	"github.com/rs/zerolog"
)

// ErrNotConfigured is returned by Noop.
var ErrNotConfigured = errors.New("ocr endpoint is not configured")

var idPattern = regexp.MustCompile(`\d+`)

// Client posts the image to an OCR HTTP endpoint that answers {"text": "..."}.
type Client struct {
	endpoint string
	http     *http.Client
	logger   *zerolog.Logger
}

func NewClient(endpoint string, timeout time.Duration, logger *zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

type ocrResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// ExtractID returns the first 6-15 digit run found in the recognized text.
// ok=false with nil error means the image was read but held no id.
func (c *Client) ExtractID(ctx context.Context, image []byte) (string, bool, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "screenshot.jpg")
	if err != nil {
		return "", false, err
	}
	if _, err := part.Write(image); err != nil {
		return "", false, err
	}
	if err := mw.Close(); err != nil {
		return "", false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return "", false, fmt.Errorf("build ocr request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("ocr request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", false, fmt.Errorf("read ocr response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("ocr endpoint returned %d", resp.StatusCode)
	}

	var out ocrResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", false, fmt.Errorf("decode ocr response: %w", err)
	}
	if out.Error != "" {
		return "", false, fmt.Errorf("ocr: %s", out.Error)
	}

	id, ok := FindID(out.Text)
	c.logger.Debug().Bool("found", ok).Int("text_len", len(out.Text)).Msg("ocr result")
	return id, ok, nil
}

// FindID returns the first digit run of platform id length.
func FindID(text string) (string, bool) {
	for _, m := range idPattern.FindAllString(text, -1) {
		if models.IsPlatformID(m) {
			return m, true
		}
	}
	return "", false
}

// Noop is used when no OCR endpoint is configured; the user is asked to type the id.
type Noop struct{}

func (Noop) ExtractID(ctx context.Context, image []byte) (string, bool, error) {
	return "", false, ErrNotConfigured
}
