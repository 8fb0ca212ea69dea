package sfbulk

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// AddBatch submits one payload to a job and returns the created BatchInfo
// bound to its owning Job. A []byte, string or io.Reader payload is sent raw
// with the job's content type; anything else is JSON-marshaled. When ref is
// a bare id the job is fetched after submission so the returned BatchInfo
// still carries full job context.
func (c *Client) AddBatch(ctx context.Context, ref JobRef, payload interface{}) (*BatchInfo, error) {
	id, err := resolveJobID(ref)
	if err != nil {
		return nil, err
	}

	job, _ := ref.(*Job)

	batch, err := c.submitBatch(ctx, id, job, payload)
	if err != nil {
		return nil, err
	}

	if job == nil {
		job, err = c.GetJob(ctx, JobID(id))
		if err != nil {
			return nil, fmt.Errorf("hydrate job %s after batch submission failed: %w", id, err)
		}
	}

	bindBatch(batch, job)
	return batch, nil
}

// AddBatches submits several payloads to one job concurrently, resolving and
// hydrating the job once. Returned BatchInfos are in payload order; the
// first submission error cancels the remaining ones and fails the call.
func (c *Client) AddBatches(ctx context.Context, ref JobRef, payloads ...interface{}) ([]*BatchInfo, error) {
	id, err := resolveJobID(ref)
	if err != nil {
		return nil, err
	}

	job, ok := ref.(*Job)
	if !ok {
		job, err = c.GetJob(ctx, JobID(id))
		if err != nil {
			return nil, fmt.Errorf("hydrate job %s before batch submission failed: %w", id, err)
		}
	}

	c.logger.Info("Submitting batches", zap.String("job_id", id), zap.Int("count", len(payloads)))

	batches := make([]*BatchInfo, len(payloads))
	p := pool.New().WithContext(ctx).WithCancelOnError()
	for i := range payloads {
		p.Go(func(ctx context.Context) error {
			batch, err := c.submitBatch(ctx, id, job, payloads[i])
			if err != nil {
				return err
			}
			bindBatch(batch, job)
			batches[i] = batch
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return batches, nil
}

// submitBatch POSTs one payload to /job/{id}/batch without binding.
func (c *Client) submitBatch(ctx context.Context, id string, job *Job, payload interface{}) (*BatchInfo, error) {
	contentType := ""
	if job != nil && isRawPayload(payload) {
		contentType = job.ContentType.mime()
	}

	var batch BatchInfo
	if err := c.executeInto(ctx, http.MethodPost, "/"+id+"/batch", payload, contentType, &batch); err != nil {
		return nil, fmt.Errorf("add batch to job %s failed: %w", id, err)
	}

	c.logger.Info("Successfully submitted batch",
		zap.String("job_id", id),
		zap.String("batch_id", batch.ID),
		zap.String("state", string(batch.State)))

	return &batch, nil
}

// GetJobBatches enumerates every batch of a job, each bound to the resolved
// Job.
func (c *Client) GetJobBatches(ctx context.Context, ref JobRef) ([]*BatchInfo, error) {
	id, err := resolveJobID(ref)
	if err != nil {
		return nil, err
	}

	var list batchInfoList
	if err := c.executeInto(ctx, http.MethodGet, "/"+id+"/batch", nil, "", &list); err != nil {
		return nil, fmt.Errorf("get batches of job %s failed: %w", id, err)
	}

	job, ok := ref.(*Job)
	if !ok {
		job, err = c.GetJob(ctx, JobID(id))
		if err != nil {
			return nil, fmt.Errorf("hydrate job %s failed: %w", id, err)
		}
	}

	batches := make([]*BatchInfo, len(list.BatchInfo))
	for i := range list.BatchInfo {
		batch := list.BatchInfo[i]
		bindBatch(&batch, job)
		batches[i] = &batch
	}

	return batches, nil
}

// GetBatchInfo fetches the current snapshot of one batch, bound to the
// resolved Job.
func (c *Client) GetBatchInfo(ctx context.Context, jobRef JobRef, batchRef BatchRef) (*BatchInfo, error) {
	jobID, err := resolveJobID(jobRef)
	if err != nil {
		return nil, err
	}
	batchID, err := resolveBatchID(batchRef)
	if err != nil {
		return nil, err
	}

	var batch BatchInfo
	if err := c.executeInto(ctx, http.MethodGet, fmt.Sprintf("/%s/batch/%s", jobID, batchID), nil, "", &batch); err != nil {
		return nil, fmt.Errorf("get batch %s of job %s failed: %w", batchID, jobID, err)
	}

	job, ok := jobRef.(*Job)
	if !ok {
		job, err = c.GetJob(ctx, JobID(jobID))
		if err != nil {
			return nil, fmt.Errorf("hydrate job %s failed: %w", jobID, err)
		}
	}

	bindBatch(&batch, job)
	return &batch, nil
}

// GetBatchResults fetches the per-record outcomes of a processed batch. Each
// row carries its own success flag for the caller to inspect; rows are never
// aggregated into a call-level error.
func (c *Client) GetBatchResults(ctx context.Context, jobRef JobRef, batchRef BatchRef) (*BatchResult, error) {
	jobID, err := resolveJobID(jobRef)
	if err != nil {
		return nil, err
	}
	batchID, err := resolveBatchID(batchRef)
	if err != nil {
		return nil, err
	}

	var rows []BatchResultRow
	if err := c.executeInto(ctx, http.MethodGet, fmt.Sprintf("/%s/batch/%s/result", jobID, batchID), nil, "", &rows); err != nil {
		return nil, fmt.Errorf("get results of batch %s of job %s failed: %w", batchID, jobID, err)
	}

	batch, ok := batchRef.(*BatchInfo)
	if !ok {
		// At most one extra round trip to resolve the bare id: fetch the
		// batch snapshot directly, binding the job handle only if the
		// caller already supplied one.
		var fetched BatchInfo
		if err := c.executeInto(ctx, http.MethodGet, fmt.Sprintf("/%s/batch/%s", jobID, batchID), nil, "", &fetched); err != nil {
			return nil, fmt.Errorf("hydrate batch %s failed: %w", batchID, err)
		}
		if job, ok := jobRef.(*Job); ok {
			bindBatch(&fetched, job)
		} else if fetched.JobID == "" {
			fetched.JobID = jobID
		}
		batch = &fetched
	}

	return &BatchResult{Batch: batch, Rows: rows}, nil
}

// bindBatch attaches the owning job back-reference.
func bindBatch(batch *BatchInfo, job *Job) {
	batch.Job = job
	if batch.JobID == "" && job != nil {
		batch.JobID = job.ID
	}
}

func isRawPayload(payload interface{}) bool {
	switch payload.(type) {
	case []byte, string, io.Reader:
		return true
	default:
		return false
	}
}
