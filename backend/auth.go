package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	EventSignedIn       = "SIGNED_IN"
	EventSignedOut      = "SIGNED_OUT"
	EventTokenRefreshed = "TOKEN_REFRESHED"
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

type AuthChange struct {
	Event   string
	Session *Session
}

// Auth tracks the current session and fans out state transitions to
// subscribers. There is no ambient global; every consumer subscribes
// explicitly and tears down with the returned unsubscribe func.
type Auth struct {
	client *Client

	mu      sync.Mutex
	session *Session
	subs    map[int]func(AuthChange)
	nextID  int
}

func newAuth(c *Client) *Auth {
	return &Auth{client: c, subs: make(map[int]func(AuthChange))}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Authenticate exchanges credentials for a session without touching the
// stored one. Callers serving many users (the HTTP gateway) go through
// this; SignInWithPassword is the single-session embedder path.
func (a *Auth) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	return a.tokenRequest(ctx, "/auth/v1/token?grant_type=password", credentials{email, password})
}

// CreateAccount signs the user up without adopting the returned session.
func (a *Auth) CreateAccount(ctx context.Context, email, password string) (*Session, error) {
	return a.tokenRequest(ctx, "/auth/v1/signup", credentials{email, password})
}

func (a *Auth) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	sess, err := a.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	a.setSession(sess, EventSignedIn)
	return sess, nil
}

func (a *Auth) SignUp(ctx context.Context, email, password string) (*Session, error) {
	sess, err := a.CreateAccount(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if sess.AccessToken != "" {
		a.setSession(sess, EventSignedIn)
	}
	return sess, nil
}

func (a *Auth) RefreshSession(ctx context.Context) (*Session, error) {
	a.mu.Lock()
	current := a.session
	a.mu.Unlock()
	if current == nil {
		return nil, &APIError{Status: http.StatusUnauthorized, Message: "no session to refresh"}
	}

	sess, err := a.tokenRequest(ctx, "/auth/v1/token?grant_type=refresh_token",
		map[string]string{"refresh_token": current.RefreshToken})
	if err != nil {
		return nil, err
	}
	a.setSession(sess, EventTokenRefreshed)
	return sess, nil
}

// SignOutToken revokes the given access token at the provider. The stored
// session is left untouched, so one caller signing out can never clear
// another's state.
func (a *Auth) SignOutToken(ctx context.Context, accessToken string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(a.client.BaseURL, "/")+"/auth/v1/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", a.client.APIKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	resp, err := a.client.HTTP.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// SignOut revokes the stored session's token and clears it.
func (a *Auth) SignOut(ctx context.Context) error {
	a.mu.Lock()
	current := a.session
	a.mu.Unlock()

	if current != nil {
		if err := a.SignOutToken(ctx, current.AccessToken); err != nil {
			return err
		}
	}

	a.setSession(nil, EventSignedOut)
	return nil
}

// GetSession returns the current session, or nil when signed out or the
// access token has expired.
func (a *Auth) GetSession() *Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return nil
	}
	if exp, err := tokenExpiry(a.session.AccessToken); err == nil && time.Now().After(exp) {
		return nil
	}
	return a.session
}

// OnAuthStateChange registers fn for session transitions and returns the
// teardown. Callbacks run synchronously on the mutating goroutine.
func (a *Auth) OnAuthStateChange(fn func(AuthChange)) (unsubscribe func()) {
	a.mu.Lock()
	id := a.nextID
	a.nextID++
	a.subs[id] = fn
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.subs, id)
		a.mu.Unlock()
	}
}

func (a *Auth) setSession(sess *Session, event string) {
	a.mu.Lock()
	a.session = sess
	subs := make([]func(AuthChange), 0, len(a.subs))
	for _, fn := range a.subs {
		subs = append(subs, fn)
	}
	a.mu.Unlock()

	for _, fn := range subs {
		fn(AuthChange{Event: event, Session: sess})
	}
}

func (a *Auth) tokenRequest(ctx context.Context, path string, payload any) (*Session, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(a.client.BaseURL, "/")+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", a.client.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeError(resp)
	}

	var sess Session
	if err := json.NewDecoder(resp.Body).Decode(&sess); err != nil && err != io.EOF {
		return nil, err
	}
	return &sess, nil
}

// tokenExpiry reads the exp claim without verifying the signature; the
// service, not this layer, is the authority on token validity.
func tokenExpiry(token string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, jwt.ErrTokenInvalidClaims
	}
	return claims.ExpiresAt.Time, nil
}
