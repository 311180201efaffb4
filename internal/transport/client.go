// Package transport is the HTTP layer shared by every entity repository.
//
// Client performs JSON and multipart requests against the back-office API,
// resolves paths under the configured proxy prefix and turns every failure
// into an *apperr.Error scoped to the operation and entity that issued it.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/fekuna/omnipos-admin-console/config"
	"github.com/fekuna/omnipos-admin-console/internal/apperr"
	"github.com/fekuna/omnipos-admin-console/internal/logger"
	"go.uber.org/zap"
)

// Op identifies a repository call in errors and logs.
type Op struct {
	Name   string
	Entity apperr.Entity
}

type Client struct {
	baseURL    string
	prefix     string
	httpClient *http.Client
	logger     logger.ZapLogger
}

func NewClient(cfg *config.APIConfig, log logger.ZapLogger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		prefix:  "/" + strings.Trim(cfg.Prefix, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: log,
	}
}

// SetHTTPClient swaps the underlying client, e.g. for a fake RoundTripper.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL
	if c.prefix != "/" {
		u += c.prefix
	}
	u += path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Get issues a GET and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, op Op, path string, query url.Values, out any) error {
	return c.doJSON(ctx, op, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body and decodes the JSON response into out.
func (c *Client) Post(ctx context.Context, op Op, path string, body, out any) error {
	return c.doJSON(ctx, op, http.MethodPost, path, nil, body, out)
}

func (c *Client) doJSON(ctx context.Context, op Op, method, path string, query url.Values, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return apperr.Network(op.Name, op.Entity, 0, fmt.Errorf("failed to marshal request body: %w", err))
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), bodyReader)
	if err != nil {
		return apperr.Network(op.Name, op.Entity, 0, fmt.Errorf("failed to create request: %w", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return c.do(ctx, op, req, out)
}

// File is a locally selected file ready to be sent as a multipart part.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// PostMultipart sends file as the single part named field. The request
// content type comes from the multipart writer so the boundary is always
// the one actually used in the body.
func (c *Client) PostMultipart(ctx context.Context, op Op, path, field string, file File, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreatePart(filePartHeader(field, file))
	if err != nil {
		return apperr.Network(op.Name, op.Entity, 0, fmt.Errorf("failed to create form file: %w", err))
	}
	if _, err := part.Write(file.Data); err != nil {
		return apperr.Network(op.Name, op.Entity, 0, fmt.Errorf("failed to write form file: %w", err))
	}
	if err := w.Close(); err != nil {
		return apperr.Network(op.Name, op.Entity, 0, fmt.Errorf("failed to close multipart body: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), &buf)
	if err != nil {
		return apperr.Network(op.Name, op.Entity, 0, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	return c.do(ctx, op, req, out)
}

func (c *Client) do(ctx context.Context, op Op, req *http.Request, out any) error {
	requestID := RequestIDOrNew(ctx)
	req.Header.Set(RequestIDHeader, requestID)

	log := c.logger.With(
		zap.String("op", op.Name),
		zap.String("entity", string(op.Entity)),
		zap.String("request_id", requestID),
	)
	log.Debug("Sending request", zap.String("method", req.Method), zap.String("url", req.URL.String()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("Request failed", zap.Error(err))
		return apperr.Network(op.Name, op.Entity, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		apiErr := fmt.Errorf("API error: status=%d, body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
		log.Warn("Request rejected", zap.Int("status", resp.StatusCode))
		if resp.StatusCode == http.StatusNotFound {
			return apperr.NotFound(op.Name, op.Entity, apiErr)
		}
		return apperr.Network(op.Name, op.Entity, resp.StatusCode, apiErr)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			log.Error("Failed to decode response", zap.Error(err))
			return apperr.Network(op.Name, op.Entity, resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
		}
	}
	return nil
}
