package models

import "time"

type UserProfile struct {
	ID              string    `json:"id,omitempty"`
	UserID          string    `json:"user_id"`
	FullName        string    `json:"full_name,omitempty"`
	AvatarURL       string    `json:"avatar_url,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	Location        string    `json:"location,omitempty"`
	Website         string    `json:"website,omitempty"`
	LinkedinURL     string    `json:"linkedin_url,omitempty"`
	GithubURL       string    `json:"github_url,omitempty"`
	Skills          []string  `json:"skills,omitempty"`
	ExperienceYears int       `json:"experience_years,omitempty"`
	CurrentTitle    string    `json:"current_title,omitempty"`
	IsEmployer      *bool     `json:"is_employer,omitempty"`
	IsJobSeeker     *bool     `json:"is_job_seeker,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}

type SavedJob struct {
	ID      string    `json:"id,omitempty"`
	JobID   string    `json:"job_id"`
	UserID  string    `json:"user_id"`
	SavedAt time.Time `json:"saved_at,omitempty"`

	Jobs *Job `json:"jobs,omitempty"`
}

type JobApplication struct {
	ID          string    `json:"id,omitempty"`
	JobID       string    `json:"job_id"`
	ApplicantID string    `json:"applicant_id"`
	Status      string    `json:"status,omitempty"`
	CoverLetter string    `json:"cover_letter,omitempty"`
	ResumeURL   string    `json:"resume_url,omitempty"`
	AppliedAt   time.Time `json:"applied_at,omitempty"`
}

type JobView struct {
	ID        string `json:"id,omitempty"`
	JobID     string `json:"job_id"`
	UserID    string `json:"user_id,omitempty"`
	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}
