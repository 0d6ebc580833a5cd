package models

import (
	"testing"
	"time"
)

func TestSortReposByUpdated(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
	}

	repos := []Repo{
		{Name: "old", UpdatedAt: day(1)},
		{Name: "newest", UpdatedAt: day(20)},
		{Name: "middle", UpdatedAt: day(10)},
		{Name: "no-timestamp"},
	}

	SortReposByUpdated(repos)

	wantOrder := []string{"newest", "middle", "old", "no-timestamp"}
	for i, want := range wantOrder {
		if repos[i].Name != want {
			t.Errorf("repos[%d] = %q, want %q", i, repos[i].Name, want)
		}
	}

	// Order must be non-increasing by timestamp.
	for i := 1; i < len(repos); i++ {
		if repos[i].UpdatedAt.After(repos[i-1].UpdatedAt) {
			t.Errorf("repos[%d] is newer than repos[%d]", i, i-1)
		}
	}
}
