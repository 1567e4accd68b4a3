package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bft-labs/vaultsweep/internal/domain"
	"github.com/bft-labs/vaultsweep/internal/ports"
)

const (
	// TokenHeader carries the API token on every request.
	TokenHeader = "X-CDD-Token"

	// DefaultBaseURL is the vault collection root of the service.
	DefaultBaseURL = "https://app.collaborativedrug.com/api/v1/vaults"

	// DefaultTimeout bounds every request.
	DefaultTimeout = 30 * time.Second

	discardAction = "discard"

	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 8 << 20
)

// ClientConfig configures a vault API client.
type ClientConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client implements ports.VaultAPI over HTTPS.
type Client struct {
	client  ports.HTTPClient
	baseURL string
	token   string
	logger  ports.Logger
}

// NewClient creates a vault client. When httpClient is nil a *http.Client
// with cfg.Timeout (or DefaultTimeout) is used, so no call waits forever.
func NewClient(cfg ClientConfig, httpClient ports.HTTPClient, logger ports.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		client:  httpClient,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		logger:  logger,
	}
}

// listResponse is the envelope of every list endpoint.
type listResponse struct {
	Count   *int              `json:"count"`
	Objects []json.RawMessage `json:"objects"`
}

// Count returns the collection's total_count.
func (c *Client) Count(ctx context.Context, resource domain.Resource, vaultID int64) (int, error) {
	q := url.Values{}
	q.Set("page_size", "1")
	if resource.OnlyIDs {
		q.Set("only_ids", "true")
	}

	var lr listResponse
	if err := c.getJSON(ctx, c.collectionURL(resource, vaultID, q), &lr); err != nil {
		return 0, err
	}
	if lr.Count == nil {
		return 0, &domain.UnexpectedResponseError{Status: http.StatusOK, Err: errors.New("missing count field")}
	}
	return *lr.Count, nil
}

// ListPage returns the ids on the page starting at offset.
func (c *Client) ListPage(ctx context.Context, resource domain.Resource, vaultID int64, offset, size int) ([]domain.RecordID, error) {
	if size <= 0 {
		return nil, nil
	}

	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("page_size", strconv.Itoa(size))
	if resource.OnlyIDs {
		q.Set("only_ids", "true")
	}

	var lr listResponse
	if err := c.getJSON(ctx, c.collectionURL(resource, vaultID, q), &lr); err != nil {
		return nil, err
	}
	if lr.Objects == nil {
		return nil, &domain.UnexpectedResponseError{Status: http.StatusOK, Err: errors.New("missing objects field")}
	}

	ids := make([]domain.RecordID, 0, len(lr.Objects))
	for i, raw := range lr.Objects {
		id, err := parseRecordID(raw)
		if err != nil {
			return nil, &domain.UnexpectedResponseError{
				Status: http.StatusOK,
				Err:    fmt.Errorf("objects[%d]: %w", i, err),
			}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Mutate issues the request for verb against one record.
func (c *Client) Mutate(ctx context.Context, resource domain.Resource, vaultID int64, id domain.RecordID, verb domain.Verb) (domain.MutationResult, error) {
	req, err := c.mutationRequest(ctx, resource, vaultID, id, verb)
	if err != nil {
		return domain.MutationResult{}, err
	}

	c.debug(req)
	resp, err := c.client.Do(req)
	if err != nil {
		return domain.MutationResult{}, &domain.TransportError{Op: req.Method + " " + req.URL.Path, Err: err}
	}
	defer resp.Body.Close()

	result := domain.MutationResult{Status: resp.StatusCode}
	if result.OK() {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return result, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.MutationResult{}, &domain.TransportError{Op: "read response", Err: err}
	}
	result.Body = strings.TrimSpace(string(body))
	return result, nil
}

func (c *Client) mutationRequest(ctx context.Context, resource domain.Resource, vaultID int64, id domain.RecordID, verb domain.Verb) (*http.Request, error) {
	itemURL := c.itemURL(resource, vaultID, id)

	var (
		method      string
		body        io.Reader
		contentType string
	)
	switch verb {
	case domain.VerbRemove:
		method = http.MethodDelete
	case domain.VerbDetach:
		method = http.MethodPut
		body = bytes.NewReader([]byte(`{"projects":[]}`))
		contentType = "application/json"
	case domain.VerbTransition:
		method = http.MethodPost
		itemURL += "/status"
		form := url.Values{}
		form.Set("status_action", discardAction)
		body = strings.NewReader(form.Encode())
		contentType = "application/x-www-form-urlencoded"
	default:
		return nil, fmt.Errorf("unsupported verb %q", verb)
	}

	req, err := http.NewRequestWithContext(ctx, method, itemURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.authorize(req)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

// getJSON issues a GET and decodes a 2xx body into v.
func (c *Client) getJSON(ctx context.Context, rawURL string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.authorize(req)
	req.Header.Set("Accept", "application/json")

	c.debug(req)
	resp, err := c.client.Do(req)
	if err != nil {
		return &domain.TransportError{Op: "GET " + req.URL.Path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &domain.TransportError{Op: "read response", Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &domain.AuthError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	case resp.StatusCode/100 != 2:
		return &domain.UnexpectedResponseError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return &domain.UnexpectedResponseError{Status: resp.StatusCode, Body: string(body), Err: err}
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set(TokenHeader, c.token)
}

func (c *Client) debug(req *http.Request) {
	if c.logger == nil {
		return
	}
	c.logger.Debug("vault request", ports.String("method", req.Method), ports.String("path", req.URL.Path))
}

func (c *Client) collectionURL(resource domain.Resource, vaultID int64, q url.Values) string {
	u := fmt.Sprintf("%s/%d/%s", c.baseURL, vaultID, resource.Path)
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (c *Client) itemURL(resource domain.Resource, vaultID int64, id domain.RecordID) string {
	return fmt.Sprintf("%s/%d/%s", c.baseURL, vaultID, resource.ItemPath(domain.RecordID(url.PathEscape(id.String()))))
}

// parseRecordID accepts a bare number, a bare string, or an object with an
// "id" field.
func parseRecordID(raw json.RawMessage) (domain.RecordID, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", errors.New("empty object")
	}

	switch raw[0] {
	case '{':
		var obj struct {
			ID json.RawMessage `json:"id"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return "", err
		}
		if len(obj.ID) == 0 || obj.ID[0] == '{' {
			return "", errors.New("object has no scalar id")
		}
		return parseRecordID(obj.ID)
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		if s == "" {
			return "", errors.New("empty id")
		}
		return domain.RecordID(s), nil
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", err
		}
		if _, err := n.Int64(); err != nil {
			return "", fmt.Errorf("non-integer id %s", n)
		}
		return domain.RecordID(n.String()), nil
	}
}
