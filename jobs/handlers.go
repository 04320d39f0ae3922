package jobs

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"joblane/backend"
	"joblane/models"
	"joblane/roles"
	"joblane/utils"
)

type Handlers struct {
	cli      *backend.Client
	resolver *roles.Resolver
}

func NewHandlers(cli *backend.Client) *Handlers {
	return &Handlers{cli: cli, resolver: roles.NewResolver(cli)}
}

// List serves the job board page: filters come in as query params and go
// out as backend-side constraints.
func (h *Handlers) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	opts := Options{
		SearchTerm:      q.Get("q"),
		LocationFilter:  q.Get("location"),
		JobTypeFilter:   q.Get("type"),
		Limit:           utils.ParseLimit(r, DefaultLimit, 100),
		IncludeInactive: q.Get("include_inactive") == "true",
	}

	found, total, err := Search(r.Context(), h.cli, utils.GetTokenFromRequest(r), opts)
	if err != nil {
		log.Printf("jobs: listing: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch jobs")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"jobs":  found,
		"total": total,
	})
}

// Detail serves one job with this user's saved/applied flags.
func (h *Handlers) Detail(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	svc := NewDetailService(h.cli, ps.ByName("id"), utils.GetUserIDFromRequest(r), utils.GetTokenFromRequest(r))
	svc.Load(r.Context())

	if msg := svc.Error(); msg != "" {
		if msg == "Job not found" {
			utils.RespondWithError(w, http.StatusNotFound, msg)
		} else {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch job")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"job":         svc.Job(),
		"is_saved":    svc.IsSaved(),
		"has_applied": svc.HasApplied(),
	})
}

// TrackView records a view event. Best-effort: the response is 204 no
// matter what, a failed insert is only logged.
func (h *Handlers) TrackView(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	view := map[string]any{
		"id":         uuid.NewString(),
		"job_id":     ps.ByName("id"),
		"user_agent": r.UserAgent(),
	}
	if userID := utils.GetUserIDFromRequest(r); userID != "" {
		view["user_id"] = userID
	}
	if err := h.cli.From("job_views").Insert(view).Token(utils.GetTokenFromRequest(r)).Execute(r.Context()); err != nil {
		log.Printf("jobs: tracking view for %s: %v", ps.ByName("id"), err)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	token := utils.GetTokenFromRequest(r)

	res := h.resolver.Resolve(r.Context(), userID, token)
	if !res.IsEmployer {
		utils.RespondWithError(w, http.StatusForbidden, "Only employers can post job listings")
		return
	}

	var job models.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := Create(r.Context(), h.cli, token, userID, job)
	if err != nil {
		if _, ok := err.(*backend.APIError); ok {
			log.Printf("jobs: creating: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create job")
		} else {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *Handlers) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	token := utils.GetTokenFromRequest(r)

	var job models.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := Update(r.Context(), h.cli, token, userID, ps.ByName("id"), job); err != nil {
		if _, ok := err.(*backend.APIError); ok {
			log.Printf("jobs: updating %s: %v", ps.ByName("id"), err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update job")
		} else {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Job updated"})
}

func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	token := utils.GetTokenFromRequest(r)

	if err := Delete(r.Context(), h.cli, token, userID, ps.ByName("id")); err != nil {
		log.Printf("jobs: deleting %s: %v", ps.ByName("id"), err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete job")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Job deleted"})
}

// ListOwn serves the employer dashboard.
func (h *Handlers) ListOwn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	token := utils.GetTokenFromRequest(r)

	found, err := ListOwn(r.Context(), h.cli, token, userID)
	if err != nil {
		log.Printf("jobs: listing own for %s: %v", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch jobs")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"jobs": found})
}

func (h *Handlers) Apply(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	token := utils.GetTokenFromRequest(r)

	var input struct {
		CoverLetter string `json:"cover_letter"`
		ResumeURL   string `json:"resume_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := Apply(r.Context(), h.cli, token, userID, ps.ByName("id"), input.CoverLetter, input.ResumeURL); err != nil {
		log.Printf("jobs: applying to %s: %v", ps.ByName("id"), err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to submit application")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "Application submitted",
	})
}

// Save and Unsave back the save button on the detail page.
func (h *Handlers) Save(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	token := utils.GetTokenFromRequest(r)

	err := h.cli.From("saved_jobs").
		Insert(map[string]string{"job_id": ps.ByName("id"), "user_id": userID}).
		Token(token).
		Execute(r.Context())
	if err != nil {
		log.Printf("jobs: saving %s: %v", ps.ByName("id"), err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save job")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"saved": true})
}

func (h *Handlers) Unsave(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	token := utils.GetTokenFromRequest(r)

	err := h.cli.From("saved_jobs").
		Delete().
		Eq("job_id", ps.ByName("id")).
		Eq("user_id", userID).
		Token(token).
		Execute(r.Context())
	if err != nil {
		log.Printf("jobs: unsaving %s: %v", ps.ByName("id"), err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to unsave job")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"saved": false})
}
