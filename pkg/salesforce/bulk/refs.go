package sfbulk

// JobRef identifies a job either as a raw id string (JobID) or as a
// previously fetched *Job handle. Every job-scoped operation resolves the
// reference to a concrete id before constructing any URL path.
type JobRef interface {
	jobRefID() string
}

// JobID is a bare job identifier usable wherever a JobRef is expected.
type JobID string

func (id JobID) jobRefID() string { return string(id) }

func (j *Job) jobRefID() string {
	if j == nil {
		return ""
	}
	return j.ID
}

// BatchRef identifies a batch either as a raw id string (BatchID) or as a
// previously fetched *BatchInfo handle.
type BatchRef interface {
	batchRefID() string
}

// BatchID is a bare batch identifier usable wherever a BatchRef is expected.
type BatchID string

func (id BatchID) batchRefID() string { return string(id) }

func (b *BatchInfo) batchRefID() string {
	if b == nil {
		return ""
	}
	return b.ID
}

// resolveJobID reduces a JobRef to its id: a handle contributes its ID
// field, a raw string is taken literally, and anything unresolvable (nil
// reference, empty id) is an *InvalidReferenceError.
func resolveJobID(ref JobRef) (string, error) {
	if ref == nil {
		return "", &InvalidReferenceError{Kind: "job"}
	}
	id := ref.jobRefID()
	if id == "" {
		return "", &InvalidReferenceError{Kind: "job"}
	}
	return id, nil
}

func resolveBatchID(ref BatchRef) (string, error) {
	if ref == nil {
		return "", &InvalidReferenceError{Kind: "batch"}
	}
	id := ref.batchRefID()
	if id == "" {
		return "", &InvalidReferenceError{Kind: "batch"}
	}
	return id, nil
}
