package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Client is the transport layer shared by the REST and Bulk API surfaces.
// It executes a single request per call and reports every HTTP status back
// to the caller; interpreting statuses is the response classifier's job,
// not the transport's. Network-level failures surface as *TransportError.
type Client struct {
	httpClient *http.Client
	logger     *zap.Logger
}

type RequestOptions struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    interface{}
	Context context.Context

	// Retry enables exponential-backoff retries for network failures and
	// 5xx responses. Off by default: the client never retries on the
	// caller's behalf unless asked to.
	Retry           bool
	MaxElapsed      time.Duration
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// TransportError is a network-level failure: the request never produced an
// HTTP response. The underlying error message is passed through unchanged.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func NewClient() *Client {
	logger, _ := zap.NewProduction()
	return NewClientWithLogger(logger)
}

// NewClientWithLogger creates a new HTTP client with a custom logger
func NewClientWithLogger(logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 2 * time.Second,
				}).DialContext,
			},
		},
		logger: logger,
	}
}

// Do executes the request described by opts. The returned *Response carries
// whatever status the server answered with, including 4xx and 5xx; an error
// is returned only when no response was obtained at all.
func (c *Client) Do(opts RequestOptions) (*Response, error) {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	requestID := uuid.NewString()

	if !opts.Retry {
		return c.attempt(ctx, opts, requestID)
	}

	if opts.MaxElapsed == 0 {
		opts.MaxElapsed = 5 * time.Minute
	}
	if opts.InitialInterval == 0 {
		opts.InitialInterval = 100 * time.Millisecond
	}
	if opts.MaxInterval == 0 {
		opts.MaxInterval = 30 * time.Second
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = opts.InitialInterval
	expBackoff.MaxInterval = opts.MaxInterval
	expBackoff.Reset()

	var last *Response

	operation := func() (*Response, error) {
		resp, err := c.attempt(ctx, opts, requestID)
		if err != nil {
			// Only network failures are worth another attempt; a request
			// that cannot be built will not build next time either.
			var terr *TransportError
			if !errors.As(err, &terr) {
				return nil, backoff.Permanent(err)
			}
			c.logger.Warn("HTTP request failed, will retry",
				zap.Error(err),
				zap.String("method", opts.Method),
				zap.String("url", opts.URL),
				zap.String("request_id", requestID))
			return nil, err
		}

		last = resp
		if resp.StatusCode >= 500 {
			c.logger.Warn("Server error, will retry",
				zap.Int("status_code", resp.StatusCode),
				zap.String("method", opts.Method),
				zap.String("url", opts.URL),
				zap.String("request_id", requestID))
			return nil, fmt.Errorf("server error: %d", resp.StatusCode)
		}

		return resp, nil
	}

	retryOpts := []backoff.RetryOption{
		backoff.WithBackOff(expBackoff),
		backoff.WithMaxElapsedTime(opts.MaxElapsed),
	}

	resp, err := backoff.Retry(ctx, operation, retryOpts...)
	if err != nil {
		// Retries exhausted. A lingering 5xx response still belongs to the
		// caller; only a pure network failure is an error here.
		if last != nil {
			return last, nil
		}
		return nil, err
	}

	return resp, nil
}

func (c *Client) attempt(ctx context.Context, opts RequestOptions, requestID string) (*Response, error) {
	req, err := c.buildRequest(ctx, opts, requestID)
	if err != nil {
		c.logger.Error("Failed to build request", zap.Error(err), zap.String("method", opts.Method), zap.String("url", opts.URL))
		return nil, err
	}

	c.logger.Debug("Making HTTP request",
		zap.String("method", opts.Method),
		zap.String("url", opts.URL),
		zap.String("request_id", requestID))

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: opts.Method, URL: opts.URL, Err: err}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		c.logger.Error("Failed to read response body", zap.Error(err))
		return nil, &TransportError{Method: opts.Method, URL: opts.URL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.logger.Debug("HTTP request completed",
		zap.Int("status_code", httpResp.StatusCode),
		zap.String("method", opts.Method),
		zap.String("url", opts.URL),
		zap.String("request_id", requestID))

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}, nil
}

func (c *Client) buildRequest(ctx context.Context, opts RequestOptions, requestID string) (*http.Request, error) {
	var bodyReader io.Reader
	if opts.Body != nil {
		contentType := opts.Headers["Content-Type"]
		if contentType == "" {
			contentType = opts.Headers["content-type"]
		}

		switch v := opts.Body.(type) {
		case io.Reader:
			bodyReader = v
		case []byte:
			bodyReader = bytes.NewReader(v)
		case string:
			bodyReader = strings.NewReader(v)
		default:
			// JSON only for an explicit (or defaulted) application/json
			// content type; any other content type form-encodes the params.
			if contentType == "" || strings.HasPrefix(strings.ToLower(contentType), "application/json") {
				bodyJSON, err := json.Marshal(opts.Body)
				if err != nil {
					return nil, fmt.Errorf("failed to marshal request body: %w", err)
				}
				bodyReader = bytes.NewReader(bodyJSON)
			} else {
				form := url.Values{}

				switch vv := opts.Body.(type) {
				case url.Values:
					form = vv
				case map[string]string:
					for k, val := range vv {
						form.Set(k, val)
					}
				case map[string]interface{}:
					for k, val := range vv {
						if val == nil {
							continue
						}
						form.Set(k, fmt.Sprint(val))
					}
				default:
					// Convert structs (or other JSON-marshalable types) into a map first.
					bodyJSON, err := json.Marshal(opts.Body)
					if err != nil {
						return nil, fmt.Errorf("failed to marshal request body: %w", err)
					}
					var m map[string]interface{}
					if err := json.Unmarshal(bodyJSON, &m); err != nil {
						return nil, fmt.Errorf("failed to unmarshal request body: %w", err)
					}
					for k, val := range m {
						if val == nil {
							continue
						}
						form.Set(k, fmt.Sprint(val))
					}
				}

				bodyReader = strings.NewReader(form.Encode())
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, opts.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set default headers
	if opts.Body != nil && opts.Headers["Content-Type"] == "" && opts.Headers["content-type"] == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	// Set custom headers
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	return req, nil
}

func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	return c.Do(RequestOptions{
		Method:  http.MethodGet,
		URL:     url,
		Headers: headers,
		Context: ctx,
	})
}

func (c *Client) Post(ctx context.Context, url string, headers map[string]string, body interface{}) (*Response, error) {
	return c.Do(RequestOptions{
		Method:  http.MethodPost,
		URL:     url,
		Headers: headers,
		Body:    body,
		Context: ctx,
	})
}

func (c *Client) Patch(ctx context.Context, url string, headers map[string]string, body interface{}) (*Response, error) {
	return c.Do(RequestOptions{
		Method:  http.MethodPatch,
		URL:     url,
		Headers: headers,
		Body:    body,
		Context: ctx,
	})
}

func (c *Client) Delete(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	return c.Do(RequestOptions{
		Method:  http.MethodDelete,
		URL:     url,
		Headers: headers,
		Context: ctx,
	})
}
