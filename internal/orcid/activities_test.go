package orcid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const testID = "0000-0002-1825-0097"

const activitiesJSON = `{
  "works": {
    "group": [
      {
        "work-summary": [
          {
            "title": {"title": {"value": "Deep Learning for Tide Prediction"}},
            "journal-title": {"value": "Journal of Coastal Modelling"},
            "publication-date": {
              "year": {"value": "2021"},
              "month": {"value": "3"},
              "day": {"value": "9"}
            },
            "external-ids": {
              "external-id": [
                {"external-id-type": "url", "external-id-value": "https://example.org/raw-link"},
                {"external-id-type": "doi", "external-id-value": "10.1000/tide.2021"}
              ]
            },
            "contributors": {
              "contributor": [
                {"credit-name": {"value": "J. Morelli"}},
                {"credit-name": {"value": "A. Kline"}},
                {"credit-name": null}
              ]
            }
          },
          {
            "title": {"title": {"value": "Duplicate summary that must be ignored"}}
          }
        ]
      },
      {
        "work-summary": [
          {
            "title": {"title": {"value": "Year-Only Preprint"}},
            "publication-date": {"year": {"value": "2019"}},
            "external-ids": {"external-id": []},
            "url": {"value": "https://example.org/preprint"}
          }
        ]
      },
      {"work-summary": []}
    ]
  }
}`

func serveORCID(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, srv.URL)
}

func TestActivitiesStrategy(t *testing.T) {
	c := serveORCID(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3.0/"+testID+"/activities" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if accept := r.Header.Get("Accept"); accept != "application/json" {
			t.Errorf("Accept = %q, want application/json", accept)
		}
		_, _ = w.Write([]byte(activitiesJSON))
	})

	pubs, err := (ActivitiesStrategy{}).Fetch(context.Background(), c, testID)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(pubs) != 2 {
		t.Fatalf("len(pubs) = %d, want 2 (one per group)", len(pubs))
	}

	first := pubs[0]
	if first.Title != "Deep Learning for Tide Prediction" {
		t.Errorf("title = %q", first.Title)
	}
	if first.Journal == nil || *first.Journal != "Journal of Coastal Modelling" {
		t.Error("journal not extracted")
	}
	if got := first.Date.String(); got != "2021-03-09" {
		t.Errorf("date = %q, want 2021-03-09 (zero-padded)", got)
	}
	// DOI wins over the url-typed identifier and routes via the resolver.
	if first.Link == nil || *first.Link != "https://doi.org/10.1000/tide.2021" {
		t.Errorf("link = %v, want DOI resolver URL", first.Link)
	}
	if len(first.Authors) != 2 || first.Authors[0] != "J. Morelli" || first.Authors[1] != "A. Kline" {
		t.Errorf("authors = %v", first.Authors)
	}

	second := pubs[1]
	if got := second.Date.String(); got != "2019" {
		t.Errorf("year-only date = %q, want 2019", got)
	}
	if second.Link == nil || *second.Link != "https://example.org/preprint" {
		t.Errorf("link = %v, want the work url fallback", second.Link)
	}
}

func TestActivitiesStrategyEmptyRecord(t *testing.T) {
	c := serveORCID(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"works": {"group": []}}`))
	})

	pubs, err := (ActivitiesStrategy{}).Fetch(context.Background(), c, testID)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(pubs) != 0 {
		t.Errorf("len(pubs) = %d, want 0", len(pubs))
	}
}

func TestActivitiesStrategyMalformedBody(t *testing.T) {
	c := serveORCID(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"works": [`))
	})

	if _, err := (ActivitiesStrategy{}).Fetch(context.Background(), c, testID); err == nil {
		t.Fatal("want error on malformed body")
	}
}

func TestDoiResolverURL(t *testing.T) {
	if got := doiResolverURL("10.1000/x"); got != "https://doi.org/10.1000/x" {
		t.Errorf("doiResolverURL = %q", got)
	}
	// Already-resolved values pass through untouched.
	if got := doiResolverURL("https://doi.org/10.1000/x"); got != "https://doi.org/10.1000/x" {
		t.Errorf("doiResolverURL = %q", got)
	}
}
