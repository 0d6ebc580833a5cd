package orcid

import (
	"context"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmorelli/folio/internal/models"
)

// RecordStrategy reads the public-record XML document. Element names are
// namespace-qualified in the document; matching on local names keeps the
// structs readable and survives prefix changes.
type RecordStrategy struct{}

func (RecordStrategy) Name() string { return "public-record-xml" }

type publicRecord struct {
	XMLName xml.Name     `xml:"record"`
	Works   []recordWork `xml:"activities-summary>works>group>work-summary"`
}

type recordWork struct {
	Title        string             `xml:"title>title"`
	JournalTitle string             `xml:"journal-title"`
	Date         recordDate         `xml:"publication-date"`
	ExternalIDs  []recordExternalID `xml:"external-ids>external-id"`
	URL          string             `xml:"url"`
	CreditNames  []string           `xml:"contributors>contributor>credit-name"`
}

type recordDate struct {
	Year  string `xml:"year"`
	Month string `xml:"month"`
	Day   string `xml:"day"`
}

type recordExternalID struct {
	Type  string `xml:"external-id-type"`
	Value string `xml:"external-id-value"`
	URL   string `xml:"external-id-url"`
}

func (RecordStrategy) Fetch(ctx context.Context, c *Client, id string) ([]models.Publication, error) {
	url := fmt.Sprintf("%s/%s/public-record.xml", c.registryURL, id)
	body, err := c.get(ctx, url, "application/xml")
	if err != nil {
		return nil, err
	}

	var record publicRecord
	if err := xml.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("parsing public record XML: %w", err)
	}

	pubs := make([]models.Publication, 0, len(record.Works))
	for _, w := range record.Works {
		pubs = append(pubs, recordWorkToPublication(w))
	}
	return pubs, nil
}

func recordWorkToPublication(w recordWork) models.Publication {
	pub := models.Publication{
		Title: strings.TrimSpace(w.Title),
		Date: models.PartialDate{
			Year:  atoiXML(w.Date.Year),
			Month: atoiXML(w.Date.Month),
			Day:   atoiXML(w.Date.Day),
		},
	}

	if journal := strings.TrimSpace(w.JournalTitle); journal != "" {
		pub.Journal = &journal
	}

	for _, name := range w.CreditNames {
		if name = strings.TrimSpace(name); name != "" {
			pub.Authors = append(pub.Authors, name)
		}
	}

	// Same link preference as the JSON path: DOI first, then a url-typed
	// identifier, then the work's own url element.
	for _, eid := range w.ExternalIDs {
		if strings.EqualFold(eid.Type, "doi") && eid.Value != "" {
			u := doiResolverURL(eid.Value)
			pub.Link = &u
			return pub
		}
	}
	for _, eid := range w.ExternalIDs {
		if strings.EqualFold(eid.Type, "url") {
			if v := firstNonEmpty(eid.URL, eid.Value); v != "" {
				pub.Link = &v
				return pub
			}
		}
	}
	if u := strings.TrimSpace(w.URL); u != "" {
		pub.Link = &u
	}
	return pub
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func atoiXML(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
