// Package pipeline runs the two page loaders and collects their outcomes.
package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/jmorelli/folio/internal/config"
	"github.com/jmorelli/folio/internal/github"
	"github.com/jmorelli/folio/internal/models"
	"github.com/jmorelli/folio/internal/orcid"
)

// Result carries each section's outcome separately. One loader failing
// never hides the other's data: the renderer shows whatever loaded next to
// an error message for whatever did not.
type Result struct {
	Repos   []models.Repo
	RepoErr error

	Publications []models.Publication
	// PubsEmpty means the record parsed cleanly but holds no works.
	// Rendered distinctly from PubErr.
	PubsEmpty bool
	PubErr    error
}

// Pipeline wires the loaders to their configuration.
type Pipeline struct {
	github *github.Client
	orcid  *orcid.Client
	cfg    *config.Config
	log    *slog.Logger
}

// New builds a pipeline against the real endpoints.
func New(cfg *config.Config, log *slog.Logger) *Pipeline {
	return NewWithClients(cfg, log, github.NewClient(""), orcid.NewClient("", ""))
}

// NewWithClients injects the clients; tests point them at local servers.
func NewWithClients(cfg *config.Config, log *slog.Logger, gh *github.Client, oc *orcid.Client) *Pipeline {
	return &Pipeline{github: gh, orcid: oc, cfg: cfg, log: log}
}

// Run kicks off both loaders as independent tasks and waits for both.
// There is no ordering dependency between them and they write to disjoint
// fields, so the group wait is the only synchronization. Loader failures
// are captured in the Result, never returned: a build always produces a
// page.
func (p *Pipeline) Run(ctx context.Context) *Result {
	res := &Result{}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		repos, err := p.github.ListRepos(ctx, p.cfg.GitHub.User)
		if err != nil {
			p.log.Error("repository load failed", "user", p.cfg.GitHub.User, "error", err)
			res.RepoErr = err
			return nil
		}
		p.log.Info("repositories loaded", "user", p.cfg.GitHub.User, "count", len(repos))
		res.Repos = repos
		return nil
	})

	g.Go(func() error {
		pubs, err := p.orcid.FetchPublications(ctx, p.cfg.ORCID.ID, p.log)
		switch {
		case errors.Is(err, orcid.ErrNoPublications):
			p.log.Info("publication record is empty", "id", p.cfg.ORCID.ID)
			res.PubsEmpty = true
		case err != nil:
			p.log.Error("publication load failed", "id", p.cfg.ORCID.ID, "error", err)
			res.PubErr = err
		default:
			p.log.Info("publications loaded", "id", p.cfg.ORCID.ID, "count", len(pubs))
			res.Publications = pubs
		}
		return nil
	})

	_ = g.Wait()
	return res
}
