// Package backend is the single handle to the hosted data/auth service.
// All persistence and authentication are delegated to it; the rest of the
// application composes filters structurally and lets the service evaluate
// them remotely.
package backend

import (
	"errors"
	"net/http"
	"os"
	"time"
)

type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client

	auth *Auth
}

func NewClient(baseURL, apiKey string) *Client {
	c := &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
	c.auth = newAuth(c)
	return c
}

// NewFromEnv builds the client from BACKEND_URL and BACKEND_ANON_KEY.
func NewFromEnv() (*Client, error) {
	url := os.Getenv("BACKEND_URL")
	key := os.Getenv("BACKEND_ANON_KEY")
	if url == "" || key == "" {
		return nil, errors.New("BACKEND_URL and BACKEND_ANON_KEY must be set")
	}
	return NewClient(url, key), nil
}

// From starts a query against one logical table.
func (c *Client) From(table string) *QueryBuilder {
	return &QueryBuilder{client: c, table: table}
}

// Auth returns the auth surface of the service.
func (c *Client) Auth() *Auth {
	return c.auth
}
