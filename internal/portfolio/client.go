package portfolio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"portfolio-backend/internal/content"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/validation"
)

// APIClient talks to the /api routes of a running portfolio server. It
// implements Source and the writer interfaces used by the forms.
type APIClient struct {
	baseURL    string
	adminKey   string
	httpClient *http.Client
	val        *validation.Validator
	log        *slog.Logger
}

func NewAPIClient(baseURL, adminKey string, val *validation.Validator, log *slog.Logger) *APIClient {
	if val == nil {
		val = validation.New()
	}
	if log == nil {
		log = slog.Default()
	}
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		adminKey:   adminKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		val:        val,
		log:        log,
	}
}

func (c *APIClient) Videos(ctx context.Context) ([]content.Video, error) {
	var raw []content.Video
	if err := c.do(ctx, http.MethodGet, "/api/videos", nil, &raw); err != nil {
		return nil, err
	}
	return sanitize(c, "videos", raw), nil
}

func (c *APIClient) Clients(ctx context.Context) ([]content.Client, error) {
	var raw []content.Client
	if err := c.do(ctx, http.MethodGet, "/api/clients", nil, &raw); err != nil {
		return nil, err
	}
	return sanitize(c, "clients", raw), nil
}

func (c *APIClient) Certificates(ctx context.Context) ([]content.Certificate, error) {
	var raw []content.Certificate
	if err := c.do(ctx, http.MethodGet, "/api/certificates", nil, &raw); err != nil {
		return nil, err
	}
	return sanitize(c, "certificates", raw), nil
}

func (c *APIClient) CreateVideo(ctx context.Context, in content.VideoInput) (content.Video, error) {
	var out content.Video
	err := c.do(ctx, http.MethodPost, "/api/videos", in, &out)
	return out, err
}

func (c *APIClient) UpdateVideo(ctx context.Context, in content.VideoUpdate) (content.Video, error) {
	var out content.Video
	err := c.do(ctx, http.MethodPut, "/api/videos", in, &out)
	return out, err
}

func (c *APIClient) DeleteVideo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/videos/"+url.PathEscape(id), nil, nil)
}

func (c *APIClient) CreateClient(ctx context.Context, in content.ClientInput) (content.Client, error) {
	var out content.Client
	err := c.do(ctx, http.MethodPost, "/api/clients", in, &out)
	return out, err
}

func (c *APIClient) DeleteClient(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/clients/"+url.PathEscape(id), nil, nil)
}

func (c *APIClient) SendContact(ctx context.Context, msg content.ContactMessage) error {
	return c.do(ctx, http.MethodPost, "/api/contact", msg, nil)
}

func sanitize[T any](c *APIClient, resource string, raw []T) []T {
	items, errs := content.Sanitize(raw, c.val)
	for _, err := range errs {
		c.log.Warn("api client "+resource+": dropped invalid record", slog.String("error", err.Error()))
	}
	return items
}

// do performs one request. Every failure comes back wrapping ErrRequestFailed.
func (c *APIClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: %s %s: encode body: %v", ErrRequestFailed, method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrRequestFailed, method, path, err)
	}
	req.Header.Set("accept", "application/json")
	if body != nil {
		req.Header.Set("content-type", "application/json")
	}
	if c.adminKey != "" {
		req.Header.Set(middleware.AdminKeyHeader, c.adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrRequestFailed, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %s %s: status=%d", ErrRequestFailed, method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: decode: %v", ErrRequestFailed, method, path, err)
	}
	return nil
}
