package sfbulk

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// CreateJob opens a new bulk job. externalIDField is included in the payload
// only when the operation is upsert and a value was supplied; an upsert
// without it is still sent, the server is the one that validates it.
func (c *Client) CreateJob(ctx context.Context, op Operation, object string, contentType ContentType, externalIDField string) (*Job, error) {
	c.logger.Info("Creating bulk job",
		zap.String("operation", string(op)),
		zap.String("object", object),
		zap.String("content_type", string(contentType)))

	payload := map[string]interface{}{
		"operation":   op,
		"object":      object,
		"contentType": contentType,
	}
	if op == OperationUpsert && externalIDField != "" {
		payload["externalIdFieldName"] = externalIDField
	}

	var job Job
	if err := c.executeInto(ctx, http.MethodPost, "", payload, "", &job); err != nil {
		return nil, fmt.Errorf("create job failed: %w", err)
	}

	c.logger.Info("Successfully created bulk job", zap.String("job_id", job.ID), zap.String("state", string(job.State)))
	return &job, nil
}

// GetJob fetches the current server-side snapshot of a job.
func (c *Client) GetJob(ctx context.Context, ref JobRef) (*Job, error) {
	id, err := resolveJobID(ref)
	if err != nil {
		return nil, err
	}

	var job Job
	if err := c.executeInto(ctx, http.MethodGet, "/"+id, nil, "", &job); err != nil {
		return nil, fmt.Errorf("get job %s failed: %w", id, err)
	}
	return &job, nil
}

// CloseJob transitions an open job to Closed, after which no further batches
// are accepted and queued batches run to completion.
func (c *Client) CloseJob(ctx context.Context, ref JobRef) (*Job, error) {
	return c.setJobState(ctx, ref, JobStateClosed)
}

// AbortJob transitions an open job to Aborted, discarding unprocessed batches.
func (c *Client) AbortJob(ctx context.Context, ref JobRef) (*Job, error) {
	return c.setJobState(ctx, ref, JobStateAborted)
}

// setJobState PATCHes the requested state and verifies the state echoed by
// the server matches it. A mismatch means the server rejected the transition
// even though the HTTP call succeeded, and is reported as
// *JobTransitionError.
func (c *Client) setJobState(ctx context.Context, ref JobRef, state JobState) (*Job, error) {
	id, err := resolveJobID(ref)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Changing bulk job state", zap.String("job_id", id), zap.String("state", string(state)))

	payload := map[string]interface{}{
		"state": state,
	}

	var job Job
	if err := c.executeInto(ctx, http.MethodPatch, "/"+id, payload, "", &job); err != nil {
		return nil, fmt.Errorf("set job %s state to %s failed: %w", id, state, err)
	}

	if job.State != state {
		c.logger.Error("Bulk job state mismatch",
			zap.String("job_id", id),
			zap.String("requested", string(state)),
			zap.String("actual", string(job.State)))
		return nil, &JobTransitionError{JobID: id, Requested: state, Actual: job.State}
	}

	return &job, nil
}
