// Package backend is a typed client for the banking services behind the web
// front-end. Authentication is added by the transport of the *http.Client the
// Client is built with; see package auth.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/duccv/bank-web/config"
	"github.com/duccv/bank-web/pkg/logger"
	"go.uber.org/zap"
)

const maxBodySize = 4 << 20

// Endpoints are the base URLs of the backend services.
type Endpoints struct {
	User         string
	Document     string
	Theft        string
	Card         string
	Notification string
	Login        string
	Wallet       string
}

func EndpointsFromConfig(cfg config.BackendConfig) Endpoints {
	return Endpoints{
		User:         cfg.UserURL,
		Document:     cfg.DocumentURL,
		Theft:        cfg.TheftURL,
		Card:         cfg.CardURL,
		Notification: cfg.NotificationURL,
		Login:        cfg.LoginURL,
		Wallet:       cfg.WalletURL,
	}
}

type Client struct {
	urls Endpoints
	http *http.Client
}

func New(urls Endpoints, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{urls: urls, http: httpClient}
}

type request struct {
	method string
	base   string
	path   string
	query  url.Values
	json   any
	upload *Upload
}

// Upload is a multipart/form-data body.
type Upload struct {
	Fields map[string]string
	Files  []File
}

type File struct {
	Field   string
	Name    string
	Content io.Reader
}

func (u *Upload) encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	keys := make([]string, 0, len(u.Fields))
	for k := range u.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, u.Fields[k]); err != nil {
			return nil, "", err
		}
	}

	for _, f := range u.Files {
		part, err := w.CreateFormFile(f.Field, f.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, "", fmt.Errorf("copy %s: %w", f.Field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

// send performs r and returns the body of a 2xx response. Other statuses
// become *APIError.
func (c *Client) send(ctx context.Context, r request) ([]byte, error) {
	target := r.base + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case r.upload != nil:
		buf, ct, err := r.upload.encode()
		if err != nil {
			return nil, fmt.Errorf("encode multipart body: %w", err)
		}
		body, contentType = buf, ct
	case r.json != nil:
		raw, err := json.Marshal(r.json)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body, contentType = bytes.NewReader(raw), "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json, text/plain")
	if cid := logger.CorrelationID(ctx); cid != "" {
		req.Header.Set("X-Correlation-ID", cid)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.FromContext(ctx).Warn("Backend call failed",
			zap.String("method", r.method), zap.String("url", r.base+r.path), zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	logger.WithUpstream(logger.FromContext(ctx), req, resp.StatusCode, time.Since(start)).
		Debug("Backend call")

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseError(resp.StatusCode, raw)
	}
	return raw, nil
}

// exec discards the response body.
func (c *Client) exec(ctx context.Context, r request) error {
	_, err := c.send(ctx, r)
	return err
}

func (c *Client) message(ctx context.Context, r request) (string, error) {
	raw, err := c.send(ctx, r)
	if err != nil {
		return "", err
	}
	return parseMessage(raw), nil
}

func (c *Client) text(ctx context.Context, r request) (string, error) {
	raw, err := c.send(ctx, r)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimSpace(raw)), nil
}

func fetch[T any](ctx context.Context, c *Client, r request) (T, error) {
	var out T
	raw, err := c.send(ctx, r)
	if err != nil {
		return out, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode %s%s: %w", r.base, r.path, err)
	}
	return out, nil
}

func get(base, path string) request {
	return request{method: http.MethodGet, base: base, path: path}
}
