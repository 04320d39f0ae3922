// Package companies covers the company directory and the employer-side
// company creation used by the post-job flow.
package companies

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"joblane/backend"
	"joblane/models"
)

// List returns all companies ordered by name. Search narrowing happens in
// the presentation layer; the directory is small enough to ship whole.
func List(ctx context.Context, cli *backend.Client, token string) ([]models.Company, error) {
	var rows []models.Company
	_, err := cli.From("companies").
		Select("*").
		Order("name", true).
		Token(token).
		Get(ctx, &rows)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.Company{}
	}
	return rows, nil
}

// Listing pairs a company with its open-position count for the directory page.
type Listing struct {
	models.Company
	ActiveJobs int `json:"active_jobs"`
}

type listingRow struct {
	models.Company
	Jobs []struct {
		Count int `json:"count"`
	} `json:"jobs"`
}

// ListWithCounts returns the directory listing: companies ordered by name,
// each with the number of active jobs, counted by the backend through an
// embedded aggregate so no job rows travel over the wire.
func ListWithCounts(ctx context.Context, cli *backend.Client, token string) ([]Listing, error) {
	var rows []listingRow
	_, err := cli.From("companies").
		Select("*,jobs(count)").
		Eq("jobs.is_active", "true").
		Order("name", true).
		Token(token).
		Get(ctx, &rows)
	if err != nil {
		return nil, err
	}

	listings := make([]Listing, 0, len(rows))
	for _, row := range rows {
		l := Listing{Company: row.Company}
		if len(row.Jobs) > 0 {
			l.ActiveJobs = row.Jobs[0].Count
		}
		listings = append(listings, l)
	}
	return listings, nil
}

// Create inserts a company and returns the stored row. Name uniqueness is
// the backend's constraint; this layer only requires the name be present.
func Create(ctx context.Context, cli *backend.Client, token string, company models.Company) (*models.Company, error) {
	company.Name = strings.TrimSpace(company.Name)
	if company.Name == "" {
		return nil, errors.New("company name is required")
	}

	payload := map[string]any{
		"id":   uuid.NewString(),
		"name": company.Name,
	}
	if company.Description != "" {
		payload["description"] = company.Description
	}
	if company.Website != "" {
		payload["website"] = company.Website
	}
	if company.LogoURL != "" {
		payload["logo_url"] = company.LogoURL
	}
	if company.SizeRange != "" {
		payload["size_range"] = company.SizeRange
	}
	if company.Industry != "" {
		payload["industry"] = company.Industry
	}
	if company.FoundedYear != 0 {
		payload["founded_year"] = company.FoundedYear
	}
	if company.Headquarters != "" {
		payload["headquarters"] = company.Headquarters
	}

	var created []models.Company
	if _, err := cli.From("companies").Insert(payload).Token(token).Get(ctx, &created); err != nil {
		return nil, err
	}
	if len(created) > 0 {
		return &created[0], nil
	}
	company.ID = payload["id"].(string)
	return &company, nil
}
