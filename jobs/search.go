// Package jobs holds the job listing and detail logic: filtered search,
// the debounced query controller, per-user detail state, and employer CRUD.
package jobs

import (
	"context"

	"joblane/backend"
	"joblane/models"
)

const DefaultLimit = 50

// listColumns embeds the company summary shown on listing cards.
const listColumns = "*,companies(id,name,description,logo_url,size_range,industry)"

// detailColumns embeds the full company record for the detail page.
const detailColumns = "*,companies(id,name,description,website,logo_url,size_range,industry,founded_year,headquarters)"

type Options struct {
	SearchTerm      string
	LocationFilter  string
	JobTypeFilter   string
	Limit           int
	IncludeInactive bool
}

// Search runs one filtered, paginated listing query. SearchTerm matches
// title, company name or description as a case-insensitive substring;
// LocationFilter matches location the same way; JobTypeFilter is exact.
// Results are newest-created first, capped at Limit; the returned total is
// the full matching count, not the page size.
func Search(ctx context.Context, cli *backend.Client, token string, opts Options) ([]models.Job, int64, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := cli.From("jobs").
		Select(listColumns).
		Count().
		Order("created_at", false)

	if !opts.IncludeInactive {
		q = q.Eq("is_active", "true")
	}
	if opts.SearchTerm != "" {
		pattern := "%" + opts.SearchTerm + "%"
		q = q.Or("title.ilike." + pattern + ",company.ilike." + pattern + ",description.ilike." + pattern)
	}
	if opts.LocationFilter != "" {
		q = q.Ilike("location", "%"+opts.LocationFilter+"%")
	}
	if opts.JobTypeFilter != "" {
		q = q.Eq("job_type", opts.JobTypeFilter)
	}

	var jobs []models.Job
	count, err := q.Limit(limit).Token(token).Get(ctx, &jobs)
	if err != nil {
		return nil, -1, err
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	return jobs, count, nil
}
