package models

import "time"

// Job type / employment type enumeration accepted by the backend.
var JobTypes = []string{"Full-Time", "Part-Time", "Contract", "Internship"}

var ExperienceLevels = []string{"Entry", "Mid", "Senior", "Lead", "Executive"}

var RemoteTypes = []string{"Remote", "Hybrid", "On-site"}

type Job struct {
	ID                  string     `json:"id,omitempty"`
	Title               string     `json:"title"`
	Company             string     `json:"company"`
	Description         string     `json:"description"`
	Location            string     `json:"location"`
	JobType             string     `json:"job_type"`
	UserID              string     `json:"user_id"`
	CompanyID           string     `json:"company_id,omitempty"`
	SalaryMin           *int       `json:"salary_min,omitempty"`
	SalaryMax           *int       `json:"salary_max,omitempty"`
	SalaryCurrency      string     `json:"salary_currency,omitempty"`
	ExperienceLevel     string     `json:"experience_level,omitempty"`
	RemoteType          string     `json:"remote_type,omitempty"`
	Requirements        []string   `json:"requirements,omitempty"`
	Benefits            []string   `json:"benefits,omitempty"`
	Skills              []string   `json:"skills,omitempty"`
	EmploymentType      string     `json:"employment_type,omitempty"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty"`
	IsActive            *bool      `json:"is_active,omitempty"`
	ViewCount           int        `json:"view_count,omitempty"`
	ApplicationCount    int        `json:"application_count,omitempty"`
	CreatedAt           time.Time  `json:"created_at,omitempty"`
	UpdatedAt           time.Time  `json:"updated_at,omitempty"`

	// Embedded relation, present when the query selects companies(...).
	Companies *Company `json:"companies,omitempty"`
}

type Company struct {
	ID           string    `json:"id,omitempty"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Website      string    `json:"website,omitempty"`
	LogoURL      string    `json:"logo_url,omitempty"`
	SizeRange    string    `json:"size_range,omitempty"`
	Industry     string    `json:"industry,omitempty"`
	FoundedYear  int       `json:"founded_year,omitempty"`
	Headquarters string    `json:"headquarters,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

func ValidJobType(t string) bool {
	for _, v := range JobTypes {
		if v == t {
			return true
		}
	}
	return false
}
