package backend

import (
	"errors"
	"fmt"
)

// CodeNoRows is the service's error code for ".single()" matching no row.
// Callers treat it as a normal empty state, never as a failure.
const CodeNoRows = "PGRST116"

type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend: %s (%s)", e.Message, e.Code)
	}
	return fmt.Sprintf("backend: %s (status %d)", e.Message, e.Status)
}

// IsNotFound reports whether err is the distinguishable no-row condition.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == CodeNoRows || apiErr.Status == 404
	}
	return false
}
