package sfcore

import (
	"bytes"
	"encoding/json"
	"net/http"

	httpclient "github.com/perchlabs/sforce/pkg/http"
)

// Classify is a pure function mapping (status, body) to the payload that
// should be decoded, or to a typed *APIError. The request method and URL are
// threaded through only so the error carries full diagnostics.
//
// Classification rules:
//   - 304 with an empty body is a conditional-get hit, synthesized as
//     {"message": "not modified"}.
//   - 200/201/204/300 with an empty body becomes {"success": true}.
//   - 200/201/204/300 with a body passes the body through unchanged.
//   - Everything else is an *APIError.
func Classify(method, url string, resp *httpclient.Response) ([]byte, error) {
	empty := len(bytes.TrimSpace(resp.Body)) == 0

	if resp.StatusCode == http.StatusNotModified && empty {
		return []byte(`{"message":"not modified"}`), nil
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent, http.StatusMultipleChoices:
		if empty {
			return []byte(`{"success":true}`), nil
		}
		return resp.Body, nil
	}

	return nil, &APIError{
		StatusCode: resp.StatusCode,
		Message:    errorMessage(resp.Body),
		Body:       resp.Body,
		Method:     method,
		URL:        url,
		Header:     resp.Headers,
	}
}

// errorMessage extracts a human-readable message from the platform's two
// structured-error shapes: the OAuth {error, error_description} object and
// the REST [{message, errorCode}] array. Falls back to the raw body.
func errorMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "empty response body"
	}

	var oauthErr struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(trimmed, &oauthErr); err == nil && oauthErr.Error != "" && oauthErr.ErrorDescription != "" {
		return oauthErr.ErrorDescription
	}

	var restErrs []struct {
		Message   string `json:"message"`
		ErrorCode string `json:"errorCode"`
	}
	if err := json.Unmarshal(trimmed, &restErrs); err == nil && len(restErrs) > 0 && restErrs[0].Message != "" {
		return restErrs[0].Message
	}

	return string(trimmed)
}
