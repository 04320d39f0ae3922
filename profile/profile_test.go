package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joblane/backend"
	"joblane/models"
)

func TestFetchMissingProfileIsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotAcceptable)
		w.Write([]byte(`{"code":"PGRST116","message":"JSON object requested, multiple (or no) rows returned"}`))
	}))
	defer srv.Close()

	p, err := Fetch(context.Background(), backend.NewClient(srv.URL, "anon"), "tok", "u1")
	require.NoError(t, err, "no profile row is a normal state")
	assert.Nil(t, p)
}

func TestSaveInsertsOnFirstSave(t *testing.T) {
	var method string
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`[{"id":"p1","user_id":"u1","full_name":"Ada"}]`))
	}))
	defer srv.Close()

	employer := true
	saved, err := Save(context.Background(), backend.NewClient(srv.URL, "anon"), "tok", "u1", models.UserProfile{
		FullName:   "Ada",
		IsEmployer: &employer,
	}, false)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "u1", payload["user_id"])
	assert.Equal(t, "Ada", payload["full_name"])
	assert.Equal(t, true, payload["is_employer"])
	assert.Nil(t, payload["bio"], "unset fields are written as null")
	require.NotNil(t, saved)
	assert.Equal(t, "p1", saved.ID)
}

func TestSaveUpdatesExistingProfile(t *testing.T) {
	var methods []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		if r.Method == http.MethodPatch {
			assert.Equal(t, "eq.u1", r.URL.Query().Get("user_id"))
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Write([]byte(`{"id":"p1","user_id":"u1","full_name":"Ada"}`))
	}))
	defer srv.Close()

	saved, err := Save(context.Background(), backend.NewClient(srv.URL, "anon"), "tok", "u1", models.UserProfile{
		FullName: "Ada",
	}, true)
	require.NoError(t, err)

	require.NotEmpty(t, methods)
	assert.Equal(t, http.MethodPatch, methods[0])
	require.NotNil(t, saved)
	assert.Equal(t, "p1", saved.ID)
}
