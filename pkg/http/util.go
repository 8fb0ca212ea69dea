package http

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildURL joins a base URL with a path and encodes the query parameters.
// The path is appended to any path already present on the base, so versioned
// API roots like ".../services/data/v62.0/" stay intact.
func BuildURL(baseURL, path string, queryParams map[string]string) (string, error) {
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("error parsing base URL: %w", err)
	}

	if path != "" {
		parsedURL.Path = strings.TrimSuffix(parsedURL.Path, "/") + "/" + strings.TrimPrefix(path, "/")
	}

	q := url.Values{}
	for key, value := range queryParams {
		q.Set(key, value)
	}
	parsedURL.RawQuery = q.Encode()

	return parsedURL.String(), nil
}
