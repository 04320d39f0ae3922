// Package profile reads and lazily creates the one-per-user profile row
// that carries the employer/job-seeker capability flags.
package profile

import (
	"context"

	"github.com/google/uuid"

	"joblane/backend"
	"joblane/models"
)

// Fetch returns the profile row for userID, or nil when none exists yet
// (a normal state for new users).
func Fetch(ctx context.Context, cli *backend.Client, token, userID string) (*models.UserProfile, error) {
	var p models.UserProfile
	_, err := cli.From("user_profiles").
		Select("*").
		Eq("user_id", userID).
		Single().
		Token(token).
		Get(ctx, &p)
	if err != nil {
		if backend.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func payload(userID string, p models.UserProfile) map[string]any {
	out := map[string]any{
		"user_id":       userID,
		"full_name":     nullable(p.FullName),
		"bio":           nullable(p.Bio),
		"location":      nullable(p.Location),
		"website":       nullable(p.Website),
		"linkedin_url":  nullable(p.LinkedinURL),
		"github_url":    nullable(p.GithubURL),
		"current_title": nullable(p.CurrentTitle),
	}
	if p.ExperienceYears > 0 {
		out["experience_years"] = p.ExperienceYears
	} else {
		out["experience_years"] = nil
	}
	if len(p.Skills) > 0 {
		out["skills"] = p.Skills
	} else {
		out["skills"] = nil
	}
	if p.IsEmployer != nil {
		out["is_employer"] = *p.IsEmployer
	}
	if p.IsJobSeeker != nil {
		out["is_job_seeker"] = *p.IsJobSeeker
	}
	return out
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Save upserts the profile: update when a row exists, insert on first save.
func Save(ctx context.Context, cli *backend.Client, token, userID string, p models.UserProfile, exists bool) (*models.UserProfile, error) {
	data := payload(userID, p)

	if exists {
		if err := cli.From("user_profiles").
			Update(data).
			Eq("user_id", userID).
			Token(token).
			Execute(ctx); err != nil {
			return nil, err
		}
		return Fetch(ctx, cli, token, userID)
	}

	data["id"] = uuid.NewString()
	var created []models.UserProfile
	if _, err := cli.From("user_profiles").Insert(data).Token(token).Get(ctx, &created); err != nil {
		return nil, err
	}
	if len(created) > 0 {
		return &created[0], nil
	}
	return Fetch(ctx, cli, token, userID)
}
