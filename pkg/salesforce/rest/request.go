package sfrest

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	httpclient "github.com/perchlabs/sforce/pkg/http"
	sfcore "github.com/perchlabs/sforce/pkg/salesforce/core"
	"go.uber.org/zap"
)

// url resolves a path relative to the versioned REST root.
func (c *Client) url(path string) string {
	return c.session.RestBaseURL + strings.TrimPrefix(path, "/")
}

// execute runs one authenticated round trip against endpoint.
//
// Method semantics: GET serializes params into the query string and carries
// no body; every other method carries params in the body, JSON-encoded when
// the effective Content-Type is application/json and form-urlencoded
// otherwise. Headers merge base (Content-Type) first, then the per-call set
// (Authorization, If-Modified-Since); later keys win.
func (c *Client) execute(ctx context.Context, method, endpoint string, params map[string]interface{}, headers map[string]string) (*sfcore.Result, error) {
	if err := c.session.RequireAuth(fmt.Sprintf("%s %s", method, endpoint)); err != nil {
		return nil, err
	}

	merged := map[string]string{
		"Content-Type": "application/json",
	}
	for k, v := range headers {
		merged[k] = v
	}
	merged["Authorization"] = "Bearer " + c.session.AccessToken

	var body interface{}
	if method == http.MethodGet {
		if len(params) > 0 {
			query := make(map[string]string, len(params))
			for k, v := range params {
				query[k] = fmt.Sprint(v)
			}
			built, err := httpclient.BuildURL(endpoint, "", query)
			if err != nil {
				c.logger.Error("Failed to build URL", zap.Error(err), zap.String("endpoint", endpoint))
				return nil, fmt.Errorf("failed to build URL: %w", err)
			}
			endpoint = built
		}
	} else if len(params) > 0 {
		body = params
	}

	c.logger.Debug("Executing REST request", zap.String("method", method), zap.String("endpoint", endpoint))

	resp, err := c.transport.Do(httpclient.RequestOptions{
		Method:  method,
		URL:     endpoint,
		Headers: merged,
		Body:    body,
		Context: ctx,
	})
	if err != nil {
		c.logger.Error("REST request failed", zap.Error(err), zap.String("method", method), zap.String("endpoint", endpoint))
		return nil, err
	}

	payload, err := sfcore.Classify(method, endpoint, resp)
	if err != nil {
		c.logger.Error("REST request rejected",
			zap.Int("status_code", resp.StatusCode),
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.String("response", string(resp.Body)))
		return nil, err
	}

	data, err := sfcore.Decode(c.mode, payload)
	if err != nil {
		return nil, err
	}

	return &sfcore.Result{
		Data:       data,
		StatusCode: resp.StatusCode,
		Header:     resp.Headers,
		Raw:        resp.Body,
	}, nil
}
