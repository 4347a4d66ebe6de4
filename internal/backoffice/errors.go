package backoffice

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnauthorized      = errors.New("not signed in or session expired")
	ErrForbidden         = errors.New("not permitted")
	ErrNotFound          = errors.New("record no longer exists")
	ErrInvalidCredential = errors.New("manager password rejected")
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
	// Credential is set when the request carried a secondary credential.
	Credential bool
}

func (e *APIError) Error() string {
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return fmt.Sprintf("api %s %s returned status %d: %s", e.Method, e.Path, e.Status, msg)
	}
	return fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.Status)
}

// Is maps status codes onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrInvalidCredential:
		return e.Credential && (e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized && !e.Credential
	case ErrForbidden:
		return e.Status == http.StatusForbidden && !e.Credential
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// UserMessage renders err for a toast: the server message when there is one,
// otherwise a generic line for the failure class.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if msg := strings.TrimSpace(apiErr.Message); msg != "" {
			return msg
		}
		switch {
		case errors.Is(err, ErrInvalidCredential):
			return ErrInvalidCredential.Error()
		case errors.Is(err, ErrUnauthorized):
			return ErrUnauthorized.Error()
		case errors.Is(err, ErrForbidden):
			return ErrForbidden.Error()
		case errors.Is(err, ErrNotFound):
			return ErrNotFound.Error()
		case apiErr.Status >= http.StatusInternalServerError:
			return fmt.Sprintf("server error (status %d), try again later", apiErr.Status)
		}
		return fmt.Sprintf("request failed (status %d)", apiErr.Status)
	}
	return err.Error()
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (b errorBody) text() string {
	if strings.TrimSpace(b.Message) != "" {
		return b.Message
	}
	return b.Error
}
