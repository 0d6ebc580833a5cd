package orcid

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmorelli/folio/internal/models"
)

// Strategy is one way of obtaining a researcher's works. The registry
// exposes the record as a v3.0 JSON API, a public-record XML document, and
// an HTML page with embedded structured data; strategies encapsulate each
// shape so the chain can fall through when one breaks.
type Strategy interface {
	// Name identifies the strategy in logs.
	Name() string
	// Fetch returns the parsed works. A nil error with an empty slice
	// means the source parsed cleanly but held no works.
	Fetch(ctx context.Context, c *Client, id string) ([]models.Publication, error)
}

// FetchPublications tries each strategy in order and returns the first
// non-empty result. An empty successful parse moves on to the next
// strategy; it only becomes the terminal ErrNoPublications once the whole
// chain is exhausted. If every strategy fails outright, the last failure
// is returned instead.
func (c *Client) FetchPublications(ctx context.Context, id string, log *slog.Logger) ([]models.Publication, error) {
	var (
		lastErr  error
		sawEmpty bool
	)

	for _, s := range c.strategies {
		pubs, err := s.Fetch(ctx, c, id)
		if err != nil {
			log.Debug("publication strategy failed", "strategy", s.Name(), "error", err)
			lastErr = err
			continue
		}
		if len(pubs) == 0 {
			log.Debug("publication strategy returned no works", "strategy", s.Name())
			sawEmpty = true
			continue
		}
		log.Debug("publication strategy succeeded", "strategy", s.Name(), "works", len(pubs))
		return pubs, nil
	}

	if sawEmpty {
		return nil, ErrNoPublications
	}
	if lastErr != nil {
		return nil, fmt.Errorf("all strategies failed: %w", lastErr)
	}
	return nil, ErrNoPublications
}
