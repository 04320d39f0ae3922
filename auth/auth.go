// Package auth passes credentials straight through to the external auth
// provider. No password ever gets verified or stored at this layer.
package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"joblane/backend"
	"joblane/middleware"
	"joblane/utils"
)

type Handlers struct {
	cli *backend.Client
}

func NewHandlers(cli *backend.Client) *Handlers {
	return &Handlers{cli: cli}
}

type credentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input credentialsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	sess, err := h.cli.Auth().Authenticate(r.Context(), input.Email, input.Password)
	if err != nil {
		log.Printf("auth: sign-in for %s: %v", input.Email, err)
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, sess)
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input credentialsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	sess, err := h.cli.Auth().CreateAccount(r.Context(), input.Email, input.Password)
	if err != nil {
		log.Printf("auth: sign-up for %s: %v", input.Email, err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to create account")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, sess)
}

// Logout revokes the caller's own bearer token. The shared client session
// is never consulted; an anonymous request is a no-op.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if token := utils.GetTokenFromRequest(r); token != "" {
		if err := h.cli.Auth().SignOutToken(r.Context(), token); err != nil {
			log.Printf("auth: sign-out: %v", err)
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Signed out"})
}

// Session introspects the caller's bearer token without a backend round
// trip; the token itself is the session handle.
func (h *Handlers) Session(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims, err := middleware.ValidateJWT(r.Header.Get("Authorization"))
	if err != nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"session": nil})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"session": utils.M{
			"user": utils.M{
				"id":    claims.Subject,
				"email": claims.Email,
			},
			"expires_at": claims.ExpiresAt,
		},
	})
}
