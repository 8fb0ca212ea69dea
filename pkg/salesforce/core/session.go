// Package sfcore holds the pieces shared by the synchronous REST surface and
// the asynchronous Bulk job surface: the login exchange, the session state it
// produces, the response classifier, and the error taxonomy.
//
// A Session is written exactly once, by Login, and read by every subsequent
// call. The package performs no internal locking: in a concurrent embedding
// the caller must complete Login before sharing the session across
// goroutines.
package sfcore

import (
	"fmt"
	"strings"
)

// Session is the credential state produced by a successful login: the bearer
// token plus the endpoint URLs derived from the returned instance URL.
type Session struct {
	AccessToken string
	InstanceURL string

	// RestBaseURL is {instance}/services/data/v{version}/.
	RestBaseURL string

	// BulkBaseURL is {instance}/services/async/{version}/job.
	BulkBaseURL string

	APIVersion string
}

// Populated reports whether a login has completed.
func (s *Session) Populated() bool {
	return s != nil && s.AccessToken != ""
}

// RequireAuth fails fast when the session has not been populated yet, before
// any network I/O happens. op names the operation for the error message.
func (s *Session) RequireAuth(op string) error {
	if !s.Populated() {
		return &NotAuthenticatedError{Operation: op}
	}
	return nil
}

// derive fills in the versioned REST and Bulk endpoint URLs from the
// instance URL the login exchange returned.
func (s *Session) derive() {
	instance := strings.TrimSuffix(s.InstanceURL, "/")
	s.RestBaseURL = fmt.Sprintf("%s/services/data/v%s/", instance, s.APIVersion)
	s.BulkBaseURL = fmt.Sprintf("%s/services/async/%s/job", instance, s.APIVersion)
}
