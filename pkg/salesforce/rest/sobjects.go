package sfrest

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sfcore "github.com/perchlabs/sforce/pkg/salesforce/core"
	"go.uber.org/zap"
)

// Limits retrieves the org's API usage limits.
func (c *Client) Limits(ctx context.Context) (*sfcore.Result, error) {
	return c.execute(ctx, http.MethodGet, c.url("limits/"), nil, nil)
}

// Resources lists the REST resources available under the versioned root.
func (c *Client) Resources(ctx context.Context) (*sfcore.Result, error) {
	return c.execute(ctx, http.MethodGet, c.session.RestBaseURL, nil, nil)
}

// SObjects lists every object type available in the org.
func (c *Client) SObjects(ctx context.Context) (*sfcore.Result, error) {
	return c.execute(ctx, http.MethodGet, c.url("sobjects/"), nil, nil)
}

// GetObjectMetadata retrieves metadata for one object type. When all is set
// the full describe/ sub-resource is fetched instead of the basic summary.
// A non-nil since becomes an If-Modified-Since header; an unchanged object
// then answers 304, which the classifier reports as {"message":"not modified"}.
func (c *Client) GetObjectMetadata(ctx context.Context, name string, all bool, since *time.Time) (*sfcore.Result, error) {
	c.logger.Info("Getting object metadata", zap.String("object", name), zap.Bool("all", all))

	path := fmt.Sprintf("sobjects/%s", name)
	if all {
		path = fmt.Sprintf("sobjects/%s/describe/", name)
	}

	var headers map[string]string
	if since != nil {
		headers = map[string]string{
			"If-Modified-Since": since.UTC().Format(http.TimeFormat),
		}
	}

	return c.execute(ctx, http.MethodGet, c.url(path), nil, headers)
}

// Create inserts a new record and returns the platform's save result.
func (c *Client) Create(ctx context.Context, name string, fields map[string]interface{}) (*sfcore.Result, error) {
	c.logger.Info("Creating record", zap.String("object", name))
	return c.execute(ctx, http.MethodPost, c.url(fmt.Sprintf("sobjects/%s", name)), fields, nil)
}

// Update patches fields on an existing record.
func (c *Client) Update(ctx context.Context, name, id string, fields map[string]interface{}) (*sfcore.Result, error) {
	c.logger.Info("Updating record", zap.String("object", name), zap.String("id", id))
	return c.execute(ctx, http.MethodPatch, c.url(fmt.Sprintf("sobjects/%s/%s", name, id)), fields, nil)
}

// Upsert patches a record addressed by external id, creating it when absent.
// id is the "{externalIdField}/{value}" segment the platform expects.
func (c *Client) Upsert(ctx context.Context, name, id string, fields map[string]interface{}) (*sfcore.Result, error) {
	c.logger.Info("Upserting record", zap.String("object", name), zap.String("id", id))
	return c.execute(ctx, http.MethodPatch, c.url(fmt.Sprintf("sobjects/%s/%s", name, id)), fields, nil)
}

// Delete removes a record.
func (c *Client) Delete(ctx context.Context, name, id string) (*sfcore.Result, error) {
	c.logger.Info("Deleting record", zap.String("object", name), zap.String("id", id))
	return c.execute(ctx, http.MethodDelete, c.url(fmt.Sprintf("sobjects/%s/%s", name, id)), nil, nil)
}

// Get fetches one record, optionally restricted to the named fields via a
// comma-joined fields query parameter.
func (c *Client) Get(ctx context.Context, name, id string, fields ...string) (*sfcore.Result, error) {
	var params map[string]interface{}
	if len(fields) > 0 {
		params = map[string]interface{}{
			"fields": strings.Join(fields, ","),
		}
	}
	return c.execute(ctx, http.MethodGet, c.url(fmt.Sprintf("sobjects/%s/%s", name, id)), params, nil)
}
