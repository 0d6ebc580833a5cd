package orcid

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/jmorelli/folio/internal/models"
)

// stubStrategy is a canned strategy for chain tests.
type stubStrategy struct {
	name   string
	pubs   []models.Publication
	err    error
	called *bool
}

func (s stubStrategy) Name() string { return s.name }

func (s stubStrategy) Fetch(_ context.Context, _ *Client, _ string) ([]models.Publication, error) {
	if s.called != nil {
		*s.called = true
	}
	return s.pubs, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func chainClient(strategies ...Strategy) *Client {
	c := NewClient("http://unused", "http://unused")
	c.strategies = strategies
	return c
}

func onePub(title string) []models.Publication {
	return []models.Publication{{Title: title}}
}

func TestFetchPublicationsShortCircuits(t *testing.T) {
	var secondCalled bool
	c := chainClient(
		stubStrategy{name: "first", pubs: onePub("from first")},
		stubStrategy{name: "second", pubs: onePub("from second"), called: &secondCalled},
	)

	pubs, err := c.FetchPublications(context.Background(), testID, discardLogger())
	if err != nil {
		t.Fatalf("FetchPublications() error = %v", err)
	}
	if len(pubs) != 1 || pubs[0].Title != "from first" {
		t.Errorf("pubs = %v, want the first strategy's result", pubs)
	}
	if secondCalled {
		t.Error("second strategy ran despite first succeeding")
	}
}

func TestFetchPublicationsFailureFallsThrough(t *testing.T) {
	c := chainClient(
		stubStrategy{name: "first", err: errors.New("boom")},
		stubStrategy{name: "second", pubs: onePub("from second")},
	)

	pubs, err := c.FetchPublications(context.Background(), testID, discardLogger())
	if err != nil {
		t.Fatalf("FetchPublications() error = %v", err)
	}
	if len(pubs) != 1 || pubs[0].Title != "from second" {
		t.Errorf("pubs = %v, want the fallback strategy's result", pubs)
	}
}

func TestFetchPublicationsEmptyParseFallsThrough(t *testing.T) {
	// An empty successful parse is not terminal mid-chain.
	c := chainClient(
		stubStrategy{name: "first"},
		stubStrategy{name: "second", pubs: onePub("from second")},
	)

	pubs, err := c.FetchPublications(context.Background(), testID, discardLogger())
	if err != nil {
		t.Fatalf("FetchPublications() error = %v", err)
	}
	if len(pubs) != 1 || pubs[0].Title != "from second" {
		t.Errorf("pubs = %v, want the fallback strategy's result", pubs)
	}
}

func TestFetchPublicationsAllEmpty(t *testing.T) {
	c := chainClient(
		stubStrategy{name: "first"},
		stubStrategy{name: "second"},
	)

	_, err := c.FetchPublications(context.Background(), testID, discardLogger())
	if !errors.Is(err, ErrNoPublications) {
		t.Errorf("error = %v, want ErrNoPublications", err)
	}
}

func TestFetchPublicationsEmptyThenFailureIsStillEmpty(t *testing.T) {
	// One clean-but-empty parse outweighs a later fetch failure: the
	// record was observed and it holds nothing.
	c := chainClient(
		stubStrategy{name: "first"},
		stubStrategy{name: "second", err: errors.New("boom")},
	)

	_, err := c.FetchPublications(context.Background(), testID, discardLogger())
	if !errors.Is(err, ErrNoPublications) {
		t.Errorf("error = %v, want ErrNoPublications", err)
	}
}

func TestFetchPublicationsAllFail(t *testing.T) {
	c := chainClient(
		stubStrategy{name: "first", err: errors.New("first boom")},
		stubStrategy{name: "second", err: errors.New("second boom")},
	)

	_, err := c.FetchPublications(context.Background(), testID, discardLogger())
	if err == nil {
		t.Fatal("want error when every strategy fails")
	}
	if errors.Is(err, ErrNoPublications) {
		t.Error("all-failed must be distinct from the empty-record state")
	}
}
