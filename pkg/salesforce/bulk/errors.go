package sfbulk

import "fmt"

// InvalidReferenceError is returned when a job or batch reference cannot be
// resolved to an identifier.
type InvalidReferenceError struct {
	Kind string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid %s reference: no id to resolve", e.Kind)
}

// JobTransitionError is returned when a close or abort call succeeds at the
// HTTP level but the job state echoed by the server does not match the
// requested target, meaning the server rejected the transition.
type JobTransitionError struct {
	JobID     string
	Requested JobState
	Actual    JobState
}

func (e *JobTransitionError) Error() string {
	return fmt.Sprintf("job %s: requested state %s but server reports %s", e.JobID, e.Requested, e.Actual)
}
