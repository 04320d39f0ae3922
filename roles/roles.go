// Package roles derives a user's employer/job-seeker capabilities from the
// user_profiles table. A missing profile row is a normal state, not an
// error: such users browse as job seekers and cannot post.
package roles

import (
	"context"
	"log"

	"joblane/backend"
	"joblane/models"
)

type Resolution struct {
	Profile     *models.UserProfile
	IsEmployer  bool
	IsJobSeeker bool
	HasProfile  bool
	Err         string
}

type Resolver struct {
	cli *backend.Client
}

func NewResolver(cli *backend.Client) *Resolver {
	return &Resolver{cli: cli}
}

// Resolve looks up the profile for userID. An empty userID resolves
// immediately with everything false and no network call. On lookup failure
// the resolver reports the error but keeps safe defaults: open for
// browsing, closed for posting.
func (r *Resolver) Resolve(ctx context.Context, userID, token string) Resolution {
	if userID == "" {
		return Resolution{}
	}

	var profile models.UserProfile
	_, err := r.cli.From("user_profiles").
		Select("*").
		Eq("user_id", userID).
		Single().
		Token(token).
		Get(ctx, &profile)

	if err != nil {
		if backend.IsNotFound(err) {
			return Resolution{IsJobSeeker: true}
		}
		log.Printf("roles: fetching profile for %s: %v", userID, err)
		return Resolution{IsJobSeeker: true, Err: err.Error()}
	}

	return Resolution{
		Profile:     &profile,
		IsEmployer:  profile.IsEmployer != nil && *profile.IsEmployer,
		IsJobSeeker: profile.IsJobSeeker == nil || *profile.IsJobSeeker,
		HasProfile:  true,
	}
}

// Refresh repeats the lookup; callers use it after editing role flags.
func (r *Resolver) Refresh(ctx context.Context, userID, token string) Resolution {
	return r.Resolve(ctx, userID, token)
}
