package saved

import (
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"joblane/backend"
	"joblane/utils"
)

type Handlers struct {
	cli *backend.Client
}

func NewHandlers(cli *backend.Client) *Handlers {
	return &Handlers{cli: cli}
}

func (h *Handlers) GetSavedJobs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	token := utils.GetTokenFromRequest(r)

	rows, err := List(r.Context(), h.cli, token, userID)
	if err != nil {
		log.Printf("saved: listing for %s: %v", userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch saved jobs")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"saved_jobs": rows})
}

func (h *Handlers) RemoveSavedJob(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	token := utils.GetTokenFromRequest(r)

	err := h.cli.From("saved_jobs").
		Delete().
		Eq("job_id", ps.ByName("id")).
		Eq("user_id", userID).
		Token(token).
		Execute(r.Context())
	if err != nil {
		log.Printf("saved: removing %s for %s: %v", ps.ByName("id"), userID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove saved job")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"removed": true})
}
