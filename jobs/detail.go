package jobs

import (
	"context"
	"log"
	"sync"

	"joblane/backend"
	"joblane/models"
)

// DetailService carries the per-user state of one job detail page: the job
// with its company, whether this user saved or applied to it, and the
// once-per-lifetime view event.
type DetailService struct {
	cli    *backend.Client
	jobID  string
	userID string
	token  string

	mu          sync.Mutex
	job         *models.Job
	loading     bool
	err         string
	isSaved     bool
	hasApplied  bool
	viewTracked bool
}

func NewDetailService(cli *backend.Client, jobID, userID, token string) *DetailService {
	return &DetailService{cli: cli, jobID: jobID, userID: userID, token: token, loading: true}
}

// Load fetches the job joined with its company, then, when a user is
// present, the saved/applied flags. A missing flag row is a normal state.
func (d *DetailService) Load(ctx context.Context) {
	d.mu.Lock()
	d.loading = true
	d.err = ""
	d.mu.Unlock()

	var job models.Job
	_, err := d.cli.From("jobs").
		Select(detailColumns).
		Eq("id", d.jobID).
		Single().
		Token(d.token).
		Get(ctx, &job)

	if err != nil {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.loading = false
		if backend.IsNotFound(err) {
			d.err = "Job not found"
		} else {
			log.Printf("jobs: fetching job %s: %v", d.jobID, err)
			d.err = err.Error()
		}
		return
	}

	isSaved, hasApplied := false, false
	if d.userID != "" {
		isSaved = d.relationExists(ctx, "saved_jobs", "user_id")
		hasApplied = d.relationExists(ctx, "job_applications", "applicant_id")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.job = &job
	d.isSaved = isSaved
	d.hasApplied = hasApplied
	d.loading = false
}

func (d *DetailService) relationExists(ctx context.Context, table, userColumn string) bool {
	var row struct {
		ID string `json:"id"`
	}
	_, err := d.cli.From(table).
		Select("id").
		Eq("job_id", d.jobID).
		Eq(userColumn, d.userID).
		Single().
		Token(d.token).
		Get(ctx, &row)
	if err != nil {
		if !backend.IsNotFound(err) {
			log.Printf("jobs: checking %s for job %s: %v", table, d.jobID, err)
		}
		return false
	}
	return true
}

// TrackView records one view event for this page lifetime. The first call
// after a successful load inserts the row; later calls are no-ops. Failures
// are logged and swallowed: view tracking never blocks the page.
func (d *DetailService) TrackView(ctx context.Context, userAgent string) {
	d.mu.Lock()
	if d.viewTracked || d.job == nil {
		d.mu.Unlock()
		return
	}
	d.viewTracked = true
	d.mu.Unlock()

	view := models.JobView{
		JobID:     d.jobID,
		UserID:    d.userID,
		UserAgent: userAgent,
	}
	if err := d.cli.From("job_views").Insert(view).Token(d.token).Execute(ctx); err != nil {
		log.Printf("jobs: tracking view for %s: %v", d.jobID, err)
	}
}

// ToggleSaved flips the saved flag optimistically, then issues the matching
// insert or delete. On failure the flag reverts to its pre-toggle value.
// No-op without a signed-in user or before the job has loaded.
func (d *DetailService) ToggleSaved(ctx context.Context) {
	d.mu.Lock()
	if d.userID == "" || d.job == nil {
		d.mu.Unlock()
		return
	}
	wasSaved := d.isSaved
	d.isSaved = !wasSaved
	d.mu.Unlock()

	var err error
	if wasSaved {
		err = d.cli.From("saved_jobs").
			Delete().
			Eq("job_id", d.jobID).
			Eq("user_id", d.userID).
			Token(d.token).
			Execute(ctx)
	} else {
		err = d.cli.From("saved_jobs").
			Insert(map[string]string{"job_id": d.jobID, "user_id": d.userID}).
			Token(d.token).
			Execute(ctx)
	}

	if err != nil {
		log.Printf("jobs: toggling saved for %s: %v", d.jobID, err)
		d.mu.Lock()
		d.isSaved = wasSaved
		d.mu.Unlock()
	}
}

func (d *DetailService) Job() *models.Job {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.job
}

func (d *DetailService) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loading
}

func (d *DetailService) Error() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

func (d *DetailService) IsSaved() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.isSaved
}

func (d *DetailService) HasApplied() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hasApplied
}
