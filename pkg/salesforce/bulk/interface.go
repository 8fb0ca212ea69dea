package sfbulk

import "context"

// API defines the interface for the asynchronous Bulk job surface
type API interface {
	// CreateJob opens a new bulk job
	CreateJob(ctx context.Context, op Operation, object string, contentType ContentType, externalIDField string) (*Job, error)

	// GetJob fetches the current server-side snapshot of a job
	GetJob(ctx context.Context, ref JobRef) (*Job, error)

	// CloseJob transitions an open job to Closed
	CloseJob(ctx context.Context, ref JobRef) (*Job, error)

	// AbortJob transitions an open job to Aborted
	AbortJob(ctx context.Context, ref JobRef) (*Job, error)

	// AddBatch submits one payload to a job
	AddBatch(ctx context.Context, ref JobRef, payload interface{}) (*BatchInfo, error)

	// AddBatches submits several payloads to one job concurrently
	AddBatches(ctx context.Context, ref JobRef, payloads ...interface{}) ([]*BatchInfo, error)

	// GetJobBatches enumerates every batch of a job
	GetJobBatches(ctx context.Context, ref JobRef) ([]*BatchInfo, error)

	// GetBatchInfo fetches the current snapshot of one batch
	GetBatchInfo(ctx context.Context, jobRef JobRef, batchRef BatchRef) (*BatchInfo, error)

	// GetBatchResults fetches the per-record outcomes of a processed batch
	GetBatchResults(ctx context.Context, jobRef JobRef, batchRef BatchRef) (*BatchResult, error)
}

var _ API = (*Client)(nil)
