// Package site renders the portfolio page and serves the output directory.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmorelli/folio/internal/models"
	"github.com/jmorelli/folio/internal/pipeline"
)

// User-facing strings. Each section shows exactly one of its cards, its
// error message, or (for publications) its empty message.
const (
	msgRepoError = "Unable to load repositories. Please try again later."
	msgPubError  = "Unable to load publications. Please try again later."
	msgNoPubs    = "No publications found."

	fallbackTitle       = "Untitled Work"
	fallbackDescription = "No description provided"
	fallbackLanguage    = "Not specified"
)

// Generator writes the static page into OutputDir.
type Generator struct {
	OutputDir   string
	ProfileName string
	Tagline     string

	// now is the footer timestamp source, swappable in tests.
	now func() time.Time
}

func NewGenerator(outputDir, profileName, tagline string) *Generator {
	return &Generator{
		OutputDir:   outputDir,
		ProfileName: profileName,
		Tagline:     tagline,
		now:         time.Now,
	}
}

type pageData struct {
	ProfileName string
	Tagline     string

	Repos     []repoCard
	RepoError string

	Publications []pubCard
	PubError     string
	PubEmpty     string

	GeneratedAt string
}

type repoCard struct {
	Name        string
	URL         string
	Description string
	Stars       int
	Forks       int
	Language    string
	Updated     string
}

type pubCard struct {
	Title   string
	Link    string
	Authors string
	Journal string
	Date    string
}

// Generate renders the page for the given pipeline result and writes
// index.html plus style.css. Returns the path of the written page.
func (g *Generator) Generate(res *pipeline.Result) (string, error) {
	data := g.buildPageData(res)

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing page template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering page: %w", err)
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	indexPath := filepath.Join(g.OutputDir, "index.html")
	if err := os.WriteFile(indexPath, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing index.html: %w", err)
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return "", fmt.Errorf("writing style.css: %w", err)
	}
	return indexPath, nil
}

func (g *Generator) buildPageData(res *pipeline.Result) pageData {
	data := pageData{
		ProfileName: g.ProfileName,
		Tagline:     g.Tagline,
		GeneratedAt: g.now().Format("January 2, 2006 15:04 MST"),
	}

	switch {
	case res.RepoErr != nil:
		data.RepoError = msgRepoError
	default:
		for _, repo := range res.Repos {
			data.Repos = append(data.Repos, repoToCard(repo))
		}
	}

	switch {
	case res.PubErr != nil:
		data.PubError = msgPubError
	case res.PubsEmpty || len(res.Publications) == 0:
		data.PubEmpty = msgNoPubs
	default:
		for _, pub := range res.Publications {
			data.Publications = append(data.Publications, pubToCard(pub))
		}
	}

	return data
}

func repoToCard(r models.Repo) repoCard {
	card := repoCard{
		Name:        r.Name,
		URL:         r.URL,
		Description: fallbackDescription,
		Stars:       r.Stars,
		Forks:       r.Forks,
		Language:    fallbackLanguage,
	}
	if r.Description != nil && *r.Description != "" {
		card.Description = *r.Description
	}
	if r.Language != nil && *r.Language != "" {
		card.Language = *r.Language
	}
	if !r.UpdatedAt.IsZero() {
		card.Updated = r.UpdatedAt.Format("Jan 2, 2006")
	}
	return card
}

func pubToCard(p models.Publication) pubCard {
	card := pubCard{
		Title:   fallbackTitle,
		Authors: strings.Join(p.Authors, ", "),
		Date:    p.Date.String(),
	}
	if p.Title != "" {
		card.Title = p.Title
	}
	if p.Link != nil {
		card.Link = *p.Link
	}
	if p.Journal != nil {
		card.Journal = *p.Journal
	}
	return card
}
