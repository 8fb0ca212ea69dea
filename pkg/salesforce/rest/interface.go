package sfrest

import (
	"context"
	"time"

	sfcore "github.com/perchlabs/sforce/pkg/salesforce/core"
)

// API defines the interface for the synchronous REST surface
type API interface {
	// Login performs the password-grant exchange and populates the session
	Login(ctx context.Context) error

	// Limits retrieves the org's API usage limits
	Limits(ctx context.Context) (*sfcore.Result, error)

	// Resources lists the REST resources under the versioned root
	Resources(ctx context.Context) (*sfcore.Result, error)

	// SObjects lists every object type available in the org
	SObjects(ctx context.Context) (*sfcore.Result, error)

	// GetObjectMetadata retrieves metadata for one object type
	GetObjectMetadata(ctx context.Context, name string, all bool, since *time.Time) (*sfcore.Result, error)

	// Create inserts a new record
	Create(ctx context.Context, name string, fields map[string]interface{}) (*sfcore.Result, error)

	// Update patches fields on an existing record
	Update(ctx context.Context, name, id string, fields map[string]interface{}) (*sfcore.Result, error)

	// Upsert patches a record addressed by external id
	Upsert(ctx context.Context, name, id string, fields map[string]interface{}) (*sfcore.Result, error)

	// Delete removes a record
	Delete(ctx context.Context, name, id string) (*sfcore.Result, error)

	// Get fetches one record, optionally restricted to named fields
	Get(ctx context.Context, name, id string, fields ...string) (*sfcore.Result, error)

	// Query executes a SOQL query
	Query(ctx context.Context, soql string) (*sfcore.Result, error)

	// QueryAll executes a SOQL query including deleted and archived records
	QueryAll(ctx context.Context, soql string) (*sfcore.Result, error)

	// Explain fetches the execution plan for a query
	Explain(ctx context.Context, soql string) (*sfcore.Result, error)

	// QueryWith is the full query surface with extra options
	QueryWith(ctx context.Context, soql string, opts QueryOptions, all, explain bool) (*sfcore.Result, error)

	// QueryMore follows the nextRecordsUrl of a paginated result
	QueryMore(ctx context.Context, nextRecordsURL string) (*sfcore.Result, error)
}

var _ API = (*Client)(nil)
