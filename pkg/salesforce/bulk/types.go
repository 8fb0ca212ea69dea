package sfbulk

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Operation is the record operation a job performs.
type Operation string

const (
	OperationInsert Operation = "insert"
	OperationUpdate Operation = "update"
	OperationUpsert Operation = "upsert"
	OperationDelete Operation = "delete"
)

// ContentType is the payload format of a job's batches.
type ContentType string

const (
	ContentTypeJSON ContentType = "JSON"
	ContentTypeCSV  ContentType = "CSV"
	ContentTypeXML  ContentType = "XML"
)

// mime maps the job content type to the HTTP media type for batch payloads.
func (t ContentType) mime() string {
	switch t {
	case ContentTypeCSV:
		return "text/csv"
	case ContentTypeXML:
		return "application/xml"
	default:
		return "application/json"
	}
}

// JobState is the lifecycle state of a job. Closed, Aborted and Failed are
// terminal: the platform accepts no transition out of them.
type JobState string

const (
	JobStateOpen    JobState = "Open"
	JobStateClosed  JobState = "Closed"
	JobStateAborted JobState = "Aborted"
	JobStateFailed  JobState = "Failed"
)

// BatchState is the processing state of one submitted batch.
type BatchState string

const (
	BatchStateQueued       BatchState = "Queued"
	BatchStateInProgress   BatchState = "InProgress"
	BatchStateCompleted    BatchState = "Completed"
	BatchStateFailed       BatchState = "Failed"
	BatchStateNotProcessed BatchState = "NotProcessed"
)

// Job is a server-side batch-processing unit: one operation type against one
// object type. Instances are immutable snapshots of server state at fetch
// time; nothing is cached client-side.
type Job struct {
	ID                  string      `json:"id"`
	Operation           Operation   `json:"operation"`
	Object              string      `json:"object"`
	ContentType         ContentType `json:"contentType"`
	State               JobState    `json:"state"`
	ExternalIDFieldName string      `json:"externalIdFieldName,omitempty"`
	ConcurrencyMode     string      `json:"concurrencyMode,omitempty"`
	CreatedByID         string      `json:"createdById,omitempty"`
	CreatedDate         APITime     `json:"createdDate,omitzero"`
	SystemModstamp      APITime     `json:"systemModstamp,omitzero"`

	NumberBatchesQueued     int `json:"numberBatchesQueued,omitempty"`
	NumberBatchesInProgress int `json:"numberBatchesInProgress,omitempty"`
	NumberBatchesCompleted  int `json:"numberBatchesCompleted,omitempty"`
	NumberBatchesFailed     int `json:"numberBatchesFailed,omitempty"`
	NumberBatchesTotal      int `json:"numberBatchesTotal,omitempty"`
	NumberRecordsProcessed  int `json:"numberRecordsProcessed,omitempty"`
	NumberRecordsFailed     int `json:"numberRecordsFailed,omitempty"`
}

// BatchInfo is one payload submission within a Job. Job is a back-reference
// bound after fetch, never serialized.
type BatchInfo struct {
	ID                     string     `json:"id"`
	JobID                  string     `json:"jobId"`
	State                  BatchState `json:"state"`
	StateMessage           string     `json:"stateMessage,omitempty"`
	CreatedDate            APITime    `json:"createdDate,omitzero"`
	SystemModstamp         APITime    `json:"systemModstamp,omitzero"`
	NumberRecordsProcessed int        `json:"numberRecordsProcessed,omitempty"`
	NumberRecordsFailed    int        `json:"numberRecordsFailed,omitempty"`

	Job *Job `json:"-"`
}

// batchInfoList is the wrapper shape of GET /job/{id}/batch.
type batchInfoList struct {
	BatchInfo []BatchInfo `json:"batchInfo"`
}

// ResultError is one record-level error inside a batch result row.
type ResultError struct {
	Message    string   `json:"message"`
	StatusCode string   `json:"statusCode"`
	Fields     []string `json:"fields,omitempty"`
}

// BatchResultRow is the outcome of one submitted record. Each row carries
// its own success flag; the client never collapses rows into a call-level
// error.
type BatchResultRow struct {
	ID      string        `json:"id"`
	Success bool          `json:"success"`
	Created bool          `json:"created"`
	Errors  []ResultError `json:"errors,omitempty"`
}

// BatchResult is the full result set of one completed batch.
type BatchResult struct {
	Batch *BatchInfo
	Rows  []BatchResultRow
}

// APITime is a custom time type that handles Salesforce API date formats.
// The Bulk API returns offsets without a colon ("2020-09-09T04:04:02.000+0000")
// and some surfaces omit the timezone entirely.
type APITime struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler for APITime
func (t *APITime) UnmarshalJSON(data []byte) error {
	var timeStr string
	if err := json.Unmarshal(data, &timeStr); err != nil {
		return err
	}

	// Handle empty string
	if timeStr == "" {
		t.Time = time.Time{}
		return nil
	}

	formats := []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05.000-0700", // Bulk API offset without colon
		"2006-01-02T15:04:05-0700",
	}

	for _, format := range formats {
		if parsed, err := time.Parse(format, timeStr); err == nil {
			t.Time = parsed
			return nil
		}
	}

	// No timezone at all. Drop any fractional seconds and parse the rest.
	if strings.Contains(timeStr, ".") {
		parts := strings.Split(timeStr, ".")
		if len(parts) == 2 {
			if parsed, err := time.Parse("2006-01-02T15:04:05", parts[0]); err == nil {
				t.Time = parsed
				return nil
			}
		}
	}

	if parsed, err := time.Parse("2006-01-02T15:04:05", timeStr); err == nil {
		t.Time = parsed
		return nil
	}

	return fmt.Errorf("unable to parse time string: %s", timeStr)
}

// MarshalJSON implements json.Marshaler for APITime
func (t APITime) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}
