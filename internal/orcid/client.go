// Package orcid extracts a researcher's works from the public ORCID
// registry. Several endpoints expose the same record in different shapes;
// each shape gets its own Strategy and the client folds them in a fixed
// priority order.
package orcid

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultPublicAPIURL = "https://pub.orcid.org"
	defaultRegistryURL  = "https://orcid.org"
)

// Typed failures for the diagnostic log.
var (
	ErrRecordNotFound = errors.New("orcid: record not found")
	ErrAccessDenied   = errors.New("orcid: access denied")
	// ErrNoPublications means at least one strategy parsed its source
	// successfully but the record holds zero works. Distinct from a fetch
	// failure so the page can say "no publications found" instead of
	// blaming the network.
	ErrNoPublications = errors.New("orcid: no publications found")
)

// Client fetches from the ORCID registry and its public API.
type Client struct {
	publicAPIURL string
	registryURL  string
	httpClient   *http.Client
	strategies   []Strategy
}

// NewClient creates a client with the default strategy chain. Empty URLs
// select the real endpoints; tests point both at an httptest server.
func NewClient(publicAPIURL, registryURL string) *Client {
	if publicAPIURL == "" {
		publicAPIURL = defaultPublicAPIURL
	}
	if registryURL == "" {
		registryURL = defaultRegistryURL
	}
	return &Client{
		publicAPIURL: publicAPIURL,
		registryURL:  registryURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		strategies: []Strategy{
			ActivitiesStrategy{},
			RecordStrategy{},
			PageStrategy{},
		},
	}
}

// get issues one GET with the given Accept header and returns the body.
// Status codes are mapped to the typed errors above.
func (c *Client) get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", accept)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, url)
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d", ErrAccessDenied, resp.StatusCode)
	default:
		return nil, fmt.Errorf("registry returned %d for %s", resp.StatusCode, url)
	}
}
