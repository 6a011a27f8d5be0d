package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/shenavaapp/shenava-client/internal/errors"
	"github.com/shenavaapp/shenava-client/internal/ratelimit"
)

const (
	// restPath is the row-API mount point.
	restPath = "/rest/v1/"

	// maxResponseSize bounds a single query response.
	maxResponseSize = 8 * 1024 * 1024
)

// Client is the query/mutation capability contract the rest of the core
// consumes. dest for Query must be a pointer to a slice.
type Client interface {
	Query(ctx context.Context, spec QuerySpec, dest any) error
	Insert(ctx context.Context, collection string, row any) error
	Delete(ctx context.Context, collection string, filters []Filter) error
}

// TokenSource supplies the bearer token for authenticated requests.
// An empty token means anonymous access.
type TokenSource interface {
	AccessToken(ctx context.Context) string
}

// RESTClient executes QuerySpecs against the backend's REST row API.
type RESTClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	tokens     TokenSource
	limiter    *ratelimit.KeyedRateLimiter
	logger     *slog.Logger
}

// NewRESTClient creates a client for the row API at baseURL.
func NewRESTClient(baseURL, apiKey string, tokens TokenSource, limiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) *RESTClient {
	return &RESTClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{},
		tokens:     tokens,
		limiter:    limiter,
		logger:     logger,
	}
}

// WithTimeout sets the per-request timeout and returns the client.
func (c *RESTClient) WithTimeout(d time.Duration) *RESTClient {
	c.httpClient.Timeout = d
	return c
}

// Query fetches rows matching the spec and decodes them into dest.
func (c *RESTClient) Query(ctx context.Context, spec QuerySpec, dest any) error {
	params, err := spec.Values()
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "build query")
	}

	body, err := c.do(ctx, http.MethodGet, spec.Collection, params, nil)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return errors.Wrap(err, errors.CodeBackend, "decode response")
	}
	return nil
}

// Insert adds one row to the collection.
func (c *RESTClient) Insert(ctx context.Context, collection string, row any) error {
	payload, err := json.Marshal(row)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "encode row")
	}

	_, err = c.do(ctx, http.MethodPost, collection, nil, payload)
	return err
}

// Delete removes rows matching the filters. Refuses an empty filter list:
// a client must never wipe a collection.
func (c *RESTClient) Delete(ctx context.Context, collection string, filters []Filter) error {
	if len(filters) == 0 {
		return errors.Validation("delete requires at least one filter")
	}

	params, err := QuerySpec{Collection: collection, Filters: filters}.Values()
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "build delete")
	}

	_, err = c.do(ctx, http.MethodDelete, collection, params, nil)
	return err
}

// do performs one request against the row API and returns the raw body.
func (c *RESTClient) do(ctx context.Context, method, collection string, params url.Values, payload []byte) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, collection); err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "rate limit wait")
		}
	}

	endpoint := c.baseURL + restPath + url.PathEscape(collection)
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "build request")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=minimal")
	}
	if token := c.tokens.AccessToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, classifyTransportError(err)
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("backend request failed",
			"collection", collection,
			"method", method,
			"status", resp.StatusCode,
		)
		return nil, classifyStatus(resp.StatusCode)
	}

	return body, nil
}

// classifyStatus maps an HTTP error status to the client error taxonomy.
func classifyStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return errors.Unauthorized("session rejected by backend")
	case status == http.StatusNotFound:
		return errors.NotFound("collection or row not found")
	default:
		return errors.Backendf("backend returned status %d", status)
	}
}

// anonTokens is a TokenSource for unauthenticated access.
type anonTokens struct{}

// AccessToken implements TokenSource with an empty token.
func (anonTokens) AccessToken(context.Context) string { return "" }

// AnonymousTokens returns a TokenSource that never authenticates.
func AnonymousTokens() TokenSource { return anonTokens{} }

var _ Client = (*RESTClient)(nil)

// String renders the spec for debug logs.
func (q QuerySpec) String() string {
	v, err := q.Values()
	if err != nil {
		return q.Collection + "?<invalid>"
	}
	return fmt.Sprintf("%s?%s", q.Collection, v.Encode())
}
