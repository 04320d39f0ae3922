// Package saved manages a user's saved-jobs list. Removal follows the same
// optimistic-update-with-rollback discipline as the detail-page toggle: the
// item leaves the list immediately and returns to its old position if the
// backend delete fails.
package saved

import (
	"context"
	"log"
	"sync"

	"joblane/backend"
	"joblane/models"
)

const listColumns = "id,job_id,user_id,saved_at,jobs(*,companies(id,name,logo_url))"

// List fetches the saved rows for userID with their jobs and company
// summaries, most recently saved first.
func List(ctx context.Context, cli *backend.Client, token, userID string) ([]models.SavedJob, error) {
	var rows []models.SavedJob
	_, err := cli.From("saved_jobs").
		Select(listColumns).
		Eq("user_id", userID).
		Order("saved_at", false).
		Token(token).
		Get(ctx, &rows)
	if err != nil {
		return nil, err
	}

	// Drop rows whose job was deleted out from under the relation.
	kept := rows[:0]
	for _, row := range rows {
		if row.Jobs != nil && row.Jobs.ID != "" {
			kept = append(kept, row)
		}
	}
	if kept == nil {
		kept = []models.SavedJob{}
	}
	return kept, nil
}

// ListService is the stateful controller behind the saved-jobs page.
type ListService struct {
	cli    *backend.Client
	userID string
	token  string

	mu    sync.Mutex
	items []models.SavedJob
	err   string
}

func NewListService(cli *backend.Client, userID, token string) *ListService {
	return &ListService{cli: cli, userID: userID, token: token, items: []models.SavedJob{}}
}

func (s *ListService) Load(ctx context.Context) {
	rows, err := List(ctx, s.cli, s.token, s.userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		log.Printf("saved: loading list for %s: %v", s.userID, err)
		s.err = err.Error()
		return
	}
	s.items = rows
	s.err = ""
}

// Remove deletes the (user, job) relation. The item is removed from the
// in-memory list first and restored at its previous index on failure.
func (s *ListService) Remove(ctx context.Context, jobID string) {
	s.mu.Lock()
	idx := -1
	for i, item := range s.items {
		if item.JobID == jobID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	removed := s.items[idx]
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.mu.Unlock()

	err := s.cli.From("saved_jobs").
		Delete().
		Eq("job_id", jobID).
		Eq("user_id", s.userID).
		Token(s.token).
		Execute(ctx)
	if err != nil {
		log.Printf("saved: removing %s for %s: %v", jobID, s.userID, err)
		s.mu.Lock()
		if idx > len(s.items) {
			idx = len(s.items)
		}
		s.items = append(s.items[:idx], append([]models.SavedJob{removed}, s.items[idx:]...)...)
		s.mu.Unlock()
	}
}

func (s *ListService) Items() []models.SavedJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.SavedJob, len(s.items))
	copy(out, s.items)
	return out
}

func (s *ListService) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
