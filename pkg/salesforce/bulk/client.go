// Package sfbulk drives the asynchronous Bulk job workflow: create a job,
// submit batch payloads, close or abort the job, and fetch batch results.
//
// The bulk surface authenticates with the X-SFDC-Session header rather than
// the Authorization bearer header used by the REST surface. Both carry the
// same token; using the wrong scheme is a protocol bug the platform rejects.
//
// A Client is built over the Session a REST client populated at login:
//
//	rc := sfrest.New(cfg)
//	if err := rc.Login(ctx); err != nil { ... }
//	bc := sfbulk.New(rc.Session())
package sfbulk

import (
	"context"
	"encoding/json"
	"fmt"

	httpclient "github.com/perchlabs/sforce/pkg/http"
	sfcore "github.com/perchlabs/sforce/pkg/salesforce/core"
	"go.uber.org/zap"
)

// Client is the Bulk API client. It shares the session with the REST client
// and, like it, provides no internal locking: login must complete before the
// client is shared across goroutines.
type Client struct {
	session   *sfcore.Session
	transport *httpclient.Client
	logger    *zap.Logger
}

// New creates a bulk client over an already constructed session with the
// default production logger.
func New(session *sfcore.Session) *Client {
	logger, _ := zap.NewProduction()
	return NewWithLogger(session, logger)
}

// NewWithLogger creates a new bulk client with a custom logger
func NewWithLogger(session *sfcore.Session, logger *zap.Logger) *Client {
	return &Client{
		session:   session,
		transport: httpclient.NewClientWithLogger(logger),
		logger:    logger,
	}
}

// execute runs one authenticated round trip against the job base path plus
// path, classifies the outcome, and returns the payload to decode.
// contentType overrides the application/json default for raw batch bodies.
func (c *Client) execute(ctx context.Context, method, path string, body interface{}, contentType string) ([]byte, error) {
	if err := c.session.RequireAuth(fmt.Sprintf("%s %s", method, path)); err != nil {
		return nil, err
	}

	if contentType == "" {
		contentType = "application/json"
	}

	headers := map[string]string{
		"Content-Type":   contentType,
		"X-SFDC-Session": c.session.AccessToken,
	}

	endpoint := c.session.BulkBaseURL + path

	c.logger.Debug("Executing bulk request", zap.String("method", method), zap.String("endpoint", endpoint))

	resp, err := c.transport.Do(httpclient.RequestOptions{
		Method:  method,
		URL:     endpoint,
		Headers: headers,
		Body:    body,
		Context: ctx,
	})
	if err != nil {
		c.logger.Error("Bulk request failed", zap.Error(err), zap.String("method", method), zap.String("endpoint", endpoint))
		return nil, err
	}

	payload, err := sfcore.Classify(method, endpoint, resp)
	if err != nil {
		c.logger.Error("Bulk request rejected",
			zap.Int("status_code", resp.StatusCode),
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.String("response", string(resp.Body)))
		return nil, err
	}

	return payload, nil
}

// executeInto runs execute and decodes the payload into out.
func (c *Client) executeInto(ctx context.Context, method, path string, body interface{}, contentType string, out interface{}) error {
	payload, err := c.execute(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, out); err != nil {
		c.logger.Error("Failed to parse bulk response", zap.Error(err), zap.String("path", path))
		return fmt.Errorf("failed to parse bulk response: %w", err)
	}
	return nil
}
