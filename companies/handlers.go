package companies

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

// GetCompanies serves the directory. With ?counts=1 each company carries its
// active-job count; without it the plain list is returned for pickers.
func (h *Handlers) GetCompanies(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	token := utils.GetTokenFromRequest(r)

	if r.URL.Query().Get("counts") == "1" {
		listings, err := ListWithCounts(r.Context(), h.cli, token)
		if err != nil {
			log.Printf("companies: listing with counts: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch companies")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"companies": listings})
		return
	}

	rows, err := List(r.Context(), h.cli, token)
	if err != nil {
		log.Printf("companies: listing: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch companies")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"companies": rows})
}

func (h *Handlers) CreateCompany(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	token := utils.GetTokenFromRequest(r)

	res := h.resolver.Resolve(r.Context(), userID, token)
	if !res.IsEmployer {
		utils.RespondWithError(w, http.StatusForbidden, "Only employers can add companies")
		return
	}

	var company models.Company
	if err := json.NewDecoder(r.Body).Decode(&company); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := Create(r.Context(), h.cli, token, company)
	if err != nil {
		if _, ok := err.(*backend.APIError); ok {
			log.Printf("companies: creating: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create company")
		} else {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, created)
}
