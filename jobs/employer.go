package jobs

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"joblane/backend"
	"joblane/models"
)

// ValidateJob checks the fields this layer owns before any insert/update is
// issued: required fields, the fixed job-type enumeration, and the salary
// range. The backend's own constraints still apply for other writers.
func ValidateJob(job *models.Job) error {
	job.Title = strings.TrimSpace(job.Title)
	job.Company = strings.TrimSpace(job.Company)
	job.Description = strings.TrimSpace(job.Description)
	job.Location = strings.TrimSpace(job.Location)

	if job.Title == "" || job.Company == "" || job.Description == "" || job.Location == "" {
		return errors.New("title, company, description and location are required")
	}
	if !models.ValidJobType(job.JobType) {
		return errors.New("invalid job type")
	}
	if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMin > *job.SalaryMax {
		return errors.New("salary_min must not exceed salary_max")
	}
	return nil
}

// jobPayload builds the write payload with only the fields the caller set;
// the backend fills defaults and timestamps for the rest.
func jobPayload(job models.Job) map[string]any {
	p := map[string]any{
		"title":       job.Title,
		"company":     job.Company,
		"description": job.Description,
		"location":    job.Location,
		"job_type":    job.JobType,
	}
	if job.CompanyID != "" {
		p["company_id"] = job.CompanyID
	}
	if job.SalaryMin != nil {
		p["salary_min"] = *job.SalaryMin
	}
	if job.SalaryMax != nil {
		p["salary_max"] = *job.SalaryMax
	}
	if job.SalaryCurrency != "" {
		p["salary_currency"] = job.SalaryCurrency
	}
	if job.ExperienceLevel != "" {
		p["experience_level"] = job.ExperienceLevel
	}
	if job.RemoteType != "" {
		p["remote_type"] = job.RemoteType
	}
	if len(job.Requirements) > 0 {
		p["requirements"] = job.Requirements
	}
	if len(job.Benefits) > 0 {
		p["benefits"] = job.Benefits
	}
	if len(job.Skills) > 0 {
		p["skills"] = job.Skills
	}
	if job.EmploymentType != "" {
		p["employment_type"] = job.EmploymentType
	}
	if job.ApplicationDeadline != nil {
		p["application_deadline"] = *job.ApplicationDeadline
	}
	if job.IsActive != nil {
		p["is_active"] = *job.IsActive
	}
	return p
}

// Create inserts a new listing owned by userID and returns it.
func Create(ctx context.Context, cli *backend.Client, token, userID string, job models.Job) (*models.Job, error) {
	if err := ValidateJob(&job); err != nil {
		return nil, err
	}
	payload := jobPayload(job)
	payload["id"] = uuid.NewString()
	payload["user_id"] = userID

	var created []models.Job
	if _, err := cli.From("jobs").Insert(payload).Token(token).Get(ctx, &created); err != nil {
		return nil, err
	}
	if len(created) > 0 {
		return &created[0], nil
	}
	job.ID = payload["id"].(string)
	job.UserID = userID
	return &job, nil
}

// Update patches an existing listing, scoped to its owner.
func Update(ctx context.Context, cli *backend.Client, token, userID, jobID string, job models.Job) error {
	if err := ValidateJob(&job); err != nil {
		return err
	}
	return cli.From("jobs").
		Update(jobPayload(job)).
		Eq("id", jobID).
		Eq("user_id", userID).
		Token(token).
		Execute(ctx)
}

// Delete removes a listing, scoped to its owner. This is the only hard
// delete the application layer performs.
func Delete(ctx context.Context, cli *backend.Client, token, userID, jobID string) error {
	return cli.From("jobs").
		Delete().
		Eq("id", jobID).
		Eq("user_id", userID).
		Token(token).
		Execute(ctx)
}

// ListOwn returns the listings posted by userID, newest first.
func ListOwn(ctx context.Context, cli *backend.Client, token, userID string) ([]models.Job, error) {
	var jobs []models.Job
	_, err := cli.From("jobs").
		Select("*").
		Eq("user_id", userID).
		Order("created_at", false).
		Token(token).
		Get(ctx, &jobs)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	return jobs, nil
}

// Apply submits an application for userID; status starts as "pending".
// Duplicate applications are left to the backend's uniqueness constraint.
func Apply(ctx context.Context, cli *backend.Client, token, userID, jobID, coverLetter, resumeURL string) error {
	app := map[string]any{
		"id":           uuid.NewString(),
		"job_id":       jobID,
		"applicant_id": userID,
		"status":       "pending",
	}
	if coverLetter != "" {
		app["cover_letter"] = coverLetter
	}
	if resumeURL != "" {
		app["resume_url"] = resumeURL
	}
	return cli.From("job_applications").Insert(app).Token(token).Execute(ctx)
}

// Fetch loads one job with its full company record.
func Fetch(ctx context.Context, cli *backend.Client, token, jobID string) (*models.Job, error) {
	var job models.Job
	_, err := cli.From("jobs").
		Select(detailColumns).
		Eq("id", jobID).
		Single().
		Token(token).
		Get(ctx, &job)
	if err != nil {
		return nil, err
	}
	return &job, nil
}
