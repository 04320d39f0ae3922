package profile

import (
	"encoding/json"
	"log"
	"net/http"

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

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	token := utils.GetTokenFromRequest(r)

	p, err := Fetch(r.Context(), h.cli, token, userID)
	if err != nil {
		log.Printf("profile: fetching for %s: %v", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"profile":     p,
		"has_profile": p != nil,
	})
}

// SaveProfile updates the row when one exists, inserts it on first save.
func (h *Handlers) SaveProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	token := utils.GetTokenFromRequest(r)

	var input models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	existing, err := Fetch(r.Context(), h.cli, token, userID)
	if err != nil {
		log.Printf("profile: fetching for %s: %v", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save profile")
		return
	}

	savedProfile, err := Save(r.Context(), h.cli, token, userID, input, existing != nil)
	if err != nil {
		log.Printf("profile: saving for %s: %v", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save profile")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"profile": savedProfile})
}

// GetRoles exposes the capability resolution used for gating.
func (h *Handlers) GetRoles(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	token := utils.GetTokenFromRequest(r)

	res := h.resolver.Resolve(r.Context(), userID, token)
	body := utils.M{
		"is_employer":   res.IsEmployer,
		"is_job_seeker": res.IsJobSeeker,
		"has_profile":   res.HasProfile,
	}
	if res.Err != "" {
		body["error"] = res.Err
	}
	utils.RespondWithJSON(w, http.StatusOK, body)
}
