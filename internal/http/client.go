package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/contentful-labs/cma-client/internal/constants"
	"github.com/contentful-labs/cma-client/pkg/cma"
)

// Logger is the logging interface used by the transport.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request is one API request. Host selects the management or upload host;
// an empty Host means management. Body is JSON-encoded unless RawBody is
// set.
type Request struct {
	Method  string
	Host    string
	Path    string
	Query   url.Values
	Headers map[string]string
	Body    interface{}
	RawBody []byte
}

// Response is the decoded-enough response: status, headers, and the raw
// body for the caller to unmarshal.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client dispatches requests against the management and upload hosts. It
// owns the rate-limit retry policy: HTTP 429 responses are retried within
// a per-request budget, sleeping for the server-advertised wait. Nothing
// else is retried unless WithRetryConfig opts in to transport-level
// retries for connection failures and 5xx responses.
type Client struct {
	baseURL    string
	uploadURL  string
	token      string
	userAgent  string
	debug      bool
	logger     Logger
	httpClient *http.Client

	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	retry        *retryablehttp.Client

	maxRateLimitRetries int
	maxRateLimitWait    time.Duration

	interceptors InterceptorChain

	// sleep is replaceable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the transport logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithUploadURL sets the base URL for upload-host requests.
func WithUploadURL(uploadURL string) Option {
	return func(c *Client) {
		c.uploadURL = strings.TrimSuffix(uploadURL, "/")
	}
}

// WithHTTPClient injects the underlying HTTP transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithRetryConfig enables transport-level retries for connection failures
// and 5xx responses.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryMax = retryMax
		c.retryWaitMin = waitMin
		c.retryWaitMax = waitMax
	}
}

// WithRequestInterceptor appends transport middleware run before each
// dispatch.
func WithRequestInterceptor(interceptor RequestInterceptor) Option {
	return func(c *Client) {
		c.interceptors.AddRequest(interceptor)
	}
}

// WithResponseInterceptor appends transport middleware run after each
// exchange.
func WithResponseInterceptor(interceptor ResponseInterceptor) Option {
	return func(c *Client) {
		c.interceptors.AddResponse(interceptor)
	}
}

// WithRateLimitConfig sets the 429 retry budget and the longest advertised
// wait the client will sleep for.
func WithRateLimitConfig(maxRetries int, maxWait time.Duration) Option {
	return func(c *Client) {
		c.maxRateLimitRetries = maxRetries

		if maxWait > 0 {
			c.maxRateLimitWait = maxWait
		}
	}
}

// NewClient creates a transport for the given management base URL and
// bearer token.
func NewClient(baseURL, token string, opts ...Option) *Client {
	client := &Client{
		baseURL:          strings.TrimSuffix(baseURL, "/"),
		uploadURL:        constants.DefaultUploadHost,
		token:            token,
		userAgent:        "cma-client-go",
		maxRateLimitWait: constants.DefaultMaxRateLimitWait,
		sleep:            sleepWithContext,
	}

	for _, opt := range opts {
		opt(client)
	}

	client.retry = client.newRetryClient()

	return client
}

// Do dispatches a request, applying the rate-limit retry policy. On 2xx it
// returns the response for the caller to decode; a 429 beyond budget or
// ceiling and every other non-2xx status become errors carrying the parsed
// error envelope.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if err := c.interceptors.RunRequest(ctx, req); err != nil {
		return nil, err
	}

	body, err := c.encodeBody(req)
	if err != nil {
		return nil, err
	}

	// The retry budget is transient per-request state; it only ever
	// decreases.
	budget := c.maxRateLimitRetries

	for {
		resp, err := c.doOnce(ctx, req, body)
		if err != nil {
			return nil, err
		}

		if err := c.interceptors.RunResponse(ctx, req, resp); err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return c.finish(req, resp)
		}

		wait := rateLimitWait(resp.Headers)
		errResp := cma.ParseErrorResponse(resp.Body, resp.StatusCode)

		if wait > c.maxRateLimitWait {
			return resp, &cma.RateWaitTooLongError{
				RetryAfter: wait,
				MaxWait:    c.maxRateLimitWait,
				Response:   errResp,
			}
		}

		if budget <= 0 {
			return resp, &cma.RateLimitError{Response: errResp, RetryAfter: wait}
		}

		budget--

		if c.logger != nil {
			c.logger.Info("rate limited, retrying", map[string]interface{}{
				"method": req.Method,
				"path":   req.Path,
				"wait":   wait.String(),
			})
		}

		if err := c.sleep(ctx, wait); err != nil {
			return nil, err
		}
	}
}

// doOnce performs a single HTTP exchange, delegating connection-level and
// 5xx retries to go-retryablehttp when they are enabled.
func (c *Client) doOnce(ctx context.Context, req *Request, body []byte) (*Response, error) {
	requestURL, err := c.buildURL(req)
	if err != nil {
		return nil, err
	}

	var bodyReader io.ReadSeeker
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	c.setHeaders(httpReq, req, body != nil)

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    requestURL,
		})
	}

	httpResp, err := c.retry.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         requestURL,
			"status_code": httpResp.StatusCode,
		})
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}, nil
}

// finish classifies a non-429 response: 2xx passes through, everything
// else surfaces immediately as an error envelope.
func (c *Client) finish(req *Request, resp *Response) (*Response, error) {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	errResp := cma.ParseErrorResponse(resp.Body, resp.StatusCode)

	if c.logger != nil {
		c.logger.Error("API error", map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"status_code": resp.StatusCode,
			"request_id":  errResp.RequestID,
		})
	}

	return resp, errResp
}

func (c *Client) newRetryClient() *retryablehttp.Client {
	retry := retryablehttp.NewClient()
	retry.Logger = nil
	retry.RetryMax = c.retryMax

	if c.retryWaitMin > 0 {
		retry.RetryWaitMin = c.retryWaitMin
	}

	if c.retryWaitMax > 0 {
		retry.RetryWaitMax = c.retryWaitMax
	}

	if c.httpClient != nil {
		retry.HTTPClient = c.httpClient
	}

	// 429 is handled by this client's own budgeted wait, never by the
	// transport's backoff.
	retry.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
			return false, nil
		}

		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}

	return retry
}

func (c *Client) encodeBody(req *Request) ([]byte, error) {
	if req.RawBody != nil {
		return req.RawBody, nil
	}

	if req.Body == nil {
		return nil, nil
	}

	body, err := json.Marshal(req.Body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	return body, nil
}

func (c *Client) buildURL(req *Request) (string, error) {
	base := c.baseURL
	if req.Host == cma.HostUpload {
		base = c.uploadURL
	}

	// Trailing slashes produce redirects on this API; normalize them away.
	path := strings.TrimSuffix(req.Path, "/")

	requestURL, err := url.Parse(base + path)
	if err != nil {
		return "", fmt.Errorf("building request URL: %w", err)
	}

	if len(req.Query) > 0 {
		requestURL.RawQuery = req.Query.Encode()
	}

	return requestURL.String(), nil
}

func (c *Client) setHeaders(httpReq *retryablehttp.Request, req *Request, hasBody bool) {
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", constants.ContentTypeManagement)

	if hasBody {
		httpReq.Header.Set("Content-Type", constants.ContentTypeManagement)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
}

// Get issues a GET against the management host.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post issues a POST against the management host.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put issues a PUT against the management host.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete issues a DELETE against the management host.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// rateLimitWait reads the advertised remaining seconds from a 429
// response. Absent or unparseable headers mean retry immediately.
func rateLimitWait(headers http.Header) time.Duration {
	value := headers.Get(constants.HeaderRateLimitReset)
	if value == "" {
		return 0
	}

	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds < 0 {
		return 0
	}

	return time.Duration(seconds) * time.Second
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
