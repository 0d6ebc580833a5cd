package orcid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jmorelli/folio/internal/models"
)

// PageStrategy is the last resort: fetch the registry's own profile page
// and mine it. First choice is the JSON-LD structured data embedded in
// script blocks; failing that, guess at the rendered work list by
// selector. The selector path tracks registry markup and will break
// whenever the page is redesigned.
type PageStrategy struct{}

func (PageStrategy) Name() string { return "profile-page" }

// workTypes is the set of JSON-LD @type values accepted as an authored
// work. Anything else in the graph (Person, Organization, breadcrumbs)
// is skipped.
var workTypes = map[string]bool{
	"ScholarlyArticle": true,
	"Article":          true,
	"Book":             true,
	"Chapter":          true,
	"Thesis":           true,
	"Dataset":          true,
	"Report":           true,
	"CreativeWork":     true,
}

func (PageStrategy) Fetch(ctx context.Context, c *Client, id string) ([]models.Publication, error) {
	url := fmt.Sprintf("%s/%s", c.registryURL, id)
	body, err := c.get(ctx, url, "text/html")
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing profile page: %w", err)
	}

	pubs := extractStructuredData(doc)
	if len(pubs) > 0 {
		return pubs, nil
	}
	return scrapeWorkElements(doc), nil
}

// extractStructuredData collects works from every ld+json script block.
// Blocks may hold a single entity, an array, or an @graph envelope.
func extractStructuredData(doc *goquery.Document) []models.Publication {
	var pubs []models.Publication

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		var raw any
		if err := json.Unmarshal([]byte(sel.Text()), &raw); err != nil {
			return // malformed block, keep scanning the rest
		}
		for _, entity := range flattenEntities(raw) {
			if pub, ok := entityToPublication(entity); ok {
				pubs = append(pubs, pub)
			}
		}
	})

	return pubs
}

func flattenEntities(raw any) []map[string]any {
	var out []map[string]any
	switch v := raw.(type) {
	case []any:
		for _, item := range v {
			out = append(out, flattenEntities(item)...)
		}
	case map[string]any:
		if graph, ok := v["@graph"].([]any); ok {
			for _, item := range graph {
				out = append(out, flattenEntities(item)...)
			}
			return out
		}
		out = append(out, v)
	}
	return out
}

func entityToPublication(entity map[string]any) (models.Publication, bool) {
	if !isWorkType(entity["@type"]) {
		return models.Publication{}, false
	}

	pub := models.Publication{
		Title:   jsonldString(entity, "name", "headline"),
		Authors: jsonldNames(entity, "author", "creator", "contributor"),
		Date:    parseDashDate(jsonldString(entity, "datePublished", "dateCreated")),
	}

	if venue := containerName(entity); venue != "" {
		pub.Journal = &venue
	}
	if link := jsonldString(entity, "url", "sameAs", "@id"); link != "" {
		pub.Link = &link
	}

	if pub.Title == "" && len(pub.Authors) == 0 && pub.Link == nil {
		return models.Publication{}, false
	}
	return pub, true
}

func isWorkType(v any) bool {
	switch t := v.(type) {
	case string:
		return workTypes[t]
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && workTypes[s] {
				return true
			}
		}
	}
	return false
}

// jsonldString returns the first non-empty string among the given keys.
// A value may be a plain string, a list, or an entity carrying "name".
func jsonldString(entity map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := anyToString(entity[key]); s != "" {
			return s
		}
	}
	return ""
}

func anyToString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		for _, item := range t {
			if s := anyToString(item); s != "" {
				return s
			}
		}
	case map[string]any:
		return anyToString(t["name"])
	}
	return ""
}

// jsonldNames flattens person-or-string author values across the given
// keys, stopping at the first key that yields any names.
func jsonldNames(entity map[string]any, keys ...string) []string {
	for _, key := range keys {
		var names []string
		collectNames(entity[key], &names)
		if len(names) > 0 {
			return names
		}
	}
	return nil
}

func collectNames(v any, names *[]string) {
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			*names = append(*names, s)
		}
	case []any:
		for _, item := range t {
			collectNames(item, names)
		}
	case map[string]any:
		collectNames(t["name"], names)
	}
}

func containerName(entity map[string]any) string {
	if s := anyToString(entity["isPartOf"]); s != "" {
		return s
	}
	return anyToString(entity["publisher"])
}

// parseDashDate splits "2021-03-09", "2021-03" or "2021" into parts.
func parseDashDate(s string) models.PartialDate {
	var d models.PartialDate
	parts := strings.SplitN(strings.TrimSpace(s), "-", 3)
	if len(parts) > 0 {
		d.Year = atoiXML(parts[0])
	}
	if len(parts) > 1 {
		d.Month = atoiXML(parts[1])
	}
	if len(parts) > 2 {
		d.Day = atoiXML(parts[2])
	}
	return d
}

// workSelectors are guesses at the rendered work list, most specific
// first. The data-test attributes are the registry's own test hooks; the
// rest are class names observed on past redesigns.
var workSelectors = []string{
	`[data-test="work-list-item"]`,
	`li.work-list-container`,
	`app-work-stack`,
	`.workspace-works .work`,
	`.result-container`,
}

func scrapeWorkElements(doc *goquery.Document) []models.Publication {
	var items *goquery.Selection
	for _, selector := range workSelectors {
		if found := doc.Find(selector); found.Length() > 0 {
			items = found
			break
		}
	}
	if items == nil {
		return nil
	}

	var pubs []models.Publication
	items.Each(func(_ int, item *goquery.Selection) {
		pub := models.Publication{
			Title: childText(item, `[data-test="work-title"]`, "h3", ".work-title", "a"),
			Date:  parseDashDate(childText(item, `[data-test="publication-date"]`, ".date", ".work-date")),
		}

		if venue := childText(item, `[data-test="journal-title"]`, ".journal-title", ".work-journal"); venue != "" {
			pub.Journal = &venue
		}
		if authors := childText(item, `[data-test="contributors"]`, ".contributors", ".work-authors"); authors != "" {
			pub.Authors = splitAuthorList(authors)
		}
		if href, ok := item.Find("a[href]").First().Attr("href"); ok && href != "" {
			pub.Link = &href
		}

		if pub.Title != "" || pub.Link != nil {
			pubs = append(pubs, pub)
		}
	})
	return pubs
}

func childText(item *goquery.Selection, selectors ...string) string {
	for _, selector := range selectors {
		if text := strings.TrimSpace(item.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

func splitAuthorList(s string) []string {
	var authors []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' }) {
		if part = strings.TrimSpace(part); part != "" {
			authors = append(authors, part)
		}
	}
	return authors
}
