package orcid

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmorelli/folio/internal/models"
)

// ActivitiesStrategy reads the versioned JSON API. Works arrive grouped by
// identifier; only the first summary of each group is taken.
type ActivitiesStrategy struct{}

func (ActivitiesStrategy) Name() string { return "activities-json" }

type valueField struct {
	Value string `json:"value"`
}

type activitiesResponse struct {
	Works struct {
		Group []workGroup `json:"group"`
	} `json:"works"`
}

type workGroup struct {
	WorkSummary []workSummary `json:"work-summary"`
}

type workSummary struct {
	Title struct {
		Title valueField `json:"title"`
	} `json:"title"`
	JournalTitle    *valueField `json:"journal-title"`
	PublicationDate *struct {
		Year  *valueField `json:"year"`
		Month *valueField `json:"month"`
		Day   *valueField `json:"day"`
	} `json:"publication-date"`
	ExternalIDs struct {
		ExternalID []externalID `json:"external-id"`
	} `json:"external-ids"`
	URL          *valueField `json:"url"`
	Contributors struct {
		Contributor []struct {
			CreditName *valueField `json:"credit-name"`
		} `json:"contributor"`
	} `json:"contributors"`
}

type externalID struct {
	Type  string      `json:"external-id-type"`
	Value string      `json:"external-id-value"`
	URL   *valueField `json:"external-id-url"`
}

func (ActivitiesStrategy) Fetch(ctx context.Context, c *Client, id string) ([]models.Publication, error) {
	url := fmt.Sprintf("%s/v3.0/%s/activities", c.publicAPIURL, id)
	body, err := c.get(ctx, url, "application/json")
	if err != nil {
		return nil, err
	}

	var resp activitiesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing activities response: %w", err)
	}

	pubs := make([]models.Publication, 0, len(resp.Works.Group))
	for _, group := range resp.Works.Group {
		if len(group.WorkSummary) == 0 {
			continue
		}
		pubs = append(pubs, summaryToPublication(group.WorkSummary[0]))
	}
	return pubs, nil
}

func summaryToPublication(w workSummary) models.Publication {
	pub := models.Publication{
		Title: strings.TrimSpace(w.Title.Title.Value),
		Link:  linkFromExternalIDs(w.ExternalIDs.ExternalID, w.URL),
	}

	if w.JournalTitle != nil && w.JournalTitle.Value != "" {
		journal := w.JournalTitle.Value
		pub.Journal = &journal
	}

	if w.PublicationDate != nil {
		pub.Date = models.PartialDate{
			Year:  atoiField(w.PublicationDate.Year),
			Month: atoiField(w.PublicationDate.Month),
			Day:   atoiField(w.PublicationDate.Day),
		}
	}

	for _, contrib := range w.Contributors.Contributor {
		if contrib.CreditName != nil && contrib.CreditName.Value != "" {
			pub.Authors = append(pub.Authors, contrib.CreditName.Value)
		}
	}

	return pub
}

// linkFromExternalIDs picks the card link: a DOI routed through the
// resolver wins over any plain URL identifier, which wins over the work's
// own url field.
func linkFromExternalIDs(ids []externalID, workURL *valueField) *string {
	for _, eid := range ids {
		if strings.EqualFold(eid.Type, "doi") && eid.Value != "" {
			u := doiResolverURL(eid.Value)
			return &u
		}
	}
	for _, eid := range ids {
		if strings.EqualFold(eid.Type, "url") {
			if eid.URL != nil && eid.URL.Value != "" {
				u := eid.URL.Value
				return &u
			}
			if eid.Value != "" {
				u := eid.Value
				return &u
			}
		}
	}
	if workURL != nil && workURL.Value != "" {
		u := workURL.Value
		return &u
	}
	return nil
}

func doiResolverURL(doi string) string {
	doi = strings.TrimSpace(doi)
	// Some records store the full resolver URL as the identifier value.
	if strings.HasPrefix(doi, "http://") || strings.HasPrefix(doi, "https://") {
		return doi
	}
	return "https://doi.org/" + doi
}

func atoiField(v *valueField) int {
	if v == nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(v.Value))
	if err != nil {
		return 0
	}
	return n
}
