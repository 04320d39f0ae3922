package auth

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joblane/backend"
)

type authBackend struct {
	*httptest.Server
	revoked []string
}

func newAuthBackend(t *testing.T) *authBackend {
	t.Helper()
	b := &authBackend{}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/v1/token", "/auth/v1/signup":
			w.Write([]byte(`{"access_token":"at","refresh_token":"rt","token_type":"bearer","expires_in":3600,"user":{"id":"u1","email":"a@b.c"}}`))
		case "/auth/v1/logout":
			b.revoked = append(b.revoked, r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	return b
}

func TestLoginDoesNotTouchSharedSession(t *testing.T) {
	srv := newAuthBackend(t)
	defer srv.Close()

	cli := backend.NewClient(srv.URL, "anon")
	h := NewHandlers(cli)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		bytes.NewReader([]byte(`{"email":"a@b.c","password":"pw"}`)))
	rec := httptest.NewRecorder()
	h.Login(rec, req, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, cli.Auth().GetSession())
}

func TestAnonymousLogoutRevokesNothing(t *testing.T) {
	srv := newAuthBackend(t)
	defer srv.Close()

	cli := backend.NewClient(srv.URL, "anon")
	h := NewHandlers(cli)

	// another caller signed in first; their token must stay valid
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		bytes.NewReader([]byte(`{"email":"alice@b.c","password":"pw"}`)))
	h.Login(httptest.NewRecorder(), req, nil)

	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, srv.revoked)
}

func TestLogoutRevokesCallersOwnToken(t *testing.T) {
	srv := newAuthBackend(t)
	defer srv.Close()

	cli := backend.NewClient(srv.URL, "anon")
	h := NewHandlers(cli)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer bob-token")
	rec := httptest.NewRecorder()
	h.Logout(rec, req, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Bearer bob-token"}, srv.revoked)
}
