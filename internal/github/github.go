// Package github lists a user's public repositories via the REST API.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jmorelli/folio/internal/models"
)

const defaultBaseURL = "https://api.github.com"

// Typed failures for the diagnostic log. The rendered page collapses all of
// them into one static message.
var (
	ErrUserNotFound = errors.New("github: user not found")
	ErrAccessDenied = errors.New("github: access denied")
)

// Client is a thin wrapper around the GitHub REST API. No authentication,
// no pagination: one request per build, first page only.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client against the public API. baseURL is overridable
// for tests; pass "" for the real endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// repoEntry mirrors the fields of one element of the users/{user}/repos
// response that the page cares about.
type repoEntry struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Stars       int     `json:"stargazers_count"`
	Forks       int     `json:"forks_count"`
	UpdatedAt   string  `json:"updated_at"`
	Language    *string `json:"language"`
	HTMLURL     string  `json:"html_url"`
}

// ListRepos fetches the user's repositories and returns them newest-first
// by last update. Any failure returns an error and no partial results.
func (c *Client) ListRepos(ctx context.Context, user string) ([]models.Repo, error) {
	url := fmt.Sprintf("%s/users/%s/repos?per_page=100&sort=updated", c.baseURL, user)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

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
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, user)
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d", ErrAccessDenied, resp.StatusCode)
	default:
		return nil, fmt.Errorf("GitHub API returned %d: %s", resp.StatusCode, string(body))
	}

	var entries []repoEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	repos := make([]models.Repo, 0, len(entries))
	for _, e := range entries {
		repos = append(repos, entryToRepo(e))
	}
	models.SortReposByUpdated(repos)
	return repos, nil
}

func entryToRepo(e repoEntry) models.Repo {
	r := models.Repo{
		Name:        e.Name,
		Description: e.Description,
		Stars:       e.Stars,
		Forks:       e.Forks,
		Language:    e.Language,
		URL:         e.HTMLURL,
	}
	// The sort key tolerates a missing or malformed timestamp; such a repo
	// just sinks to the end of the list.
	if t, err := time.Parse(time.RFC3339, e.UpdatedAt); err == nil {
		r.UpdatedAt = t
	}
	return r
}
