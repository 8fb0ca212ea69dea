package sfrest

import (
	"context"
	"net/http"
	"strings"

	sfcore "github.com/perchlabs/sforce/pkg/salesforce/core"
	"go.uber.org/zap"
)

// QueryOptions are extra query-string parameters merged into a query call.
type QueryOptions map[string]interface{}

// Query executes a SOQL query. The query string is an opaque payload: it is
// passed through to the platform unparsed.
func (c *Client) Query(ctx context.Context, soql string) (*sfcore.Result, error) {
	return c.QueryWith(ctx, soql, nil, false, false)
}

// QueryAll executes a SOQL query against queryAll/, which includes deleted
// and archived records.
func (c *Client) QueryAll(ctx context.Context, soql string) (*sfcore.Result, error) {
	return c.QueryWith(ctx, soql, nil, true, false)
}

// Explain fetches the platform's execution plan for a query instead of
// running it.
func (c *Client) Explain(ctx context.Context, soql string) (*sfcore.Result, error) {
	return c.QueryWith(ctx, soql, nil, false, true)
}

// QueryWith is the full query surface. opts are merged into the parameters
// as-is. explain replaces query execution with a plan: the q parameter is
// renamed to explain, the two are mutually exclusive.
func (c *Client) QueryWith(ctx context.Context, soql string, opts QueryOptions, all, explain bool) (*sfcore.Result, error) {
	c.logger.Info("Executing query", zap.Bool("all", all), zap.Bool("explain", explain))

	params := map[string]interface{}{
		"q": soql,
	}
	for k, v := range opts {
		params[k] = v
	}
	if explain {
		params["explain"] = params["q"]
		delete(params, "q")
	}

	path := "query/"
	if all {
		path = "queryAll/"
	}

	return c.execute(ctx, http.MethodGet, c.url(path), params, nil)
}

// QueryMore follows the nextRecordsUrl of a paginated query result. The URL
// is server-relative (it already carries the versioned prefix), so it is
// resolved against the instance URL rather than the REST root.
func (c *Client) QueryMore(ctx context.Context, nextRecordsURL string) (*sfcore.Result, error) {
	endpoint := strings.TrimSuffix(c.session.InstanceURL, "/") + "/" + strings.TrimPrefix(nextRecordsURL, "/")
	return c.execute(ctx, http.MethodGet, endpoint, nil, nil)
}
