package models

import (
	"sort"
	"time"
)

// Repo is a read-only projection of one repository for display.
// It is rebuilt on every run and never persisted.
type Repo struct {
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	UpdatedAt   time.Time `json:"updated_at"`
	Language    *string   `json:"language"`
	URL         string    `json:"html_url"`
}

// SortReposByUpdated orders repos newest-first by last update. Cards are
// always rendered in this order.
func SortReposByUpdated(repos []Repo) {
	sort.SliceStable(repos, func(i, j int) bool {
		return repos[i].UpdatedAt.After(repos[j].UpdatedAt)
	})
}
