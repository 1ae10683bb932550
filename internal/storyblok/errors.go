package storyblok

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies every failure a tool invocation can produce.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfig
	KindValidation
	KindAPI
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "configuration"
	case KindValidation:
		return "validation"
	case KindAPI:
		return "api"
	default:
		return "unknown"
	}
}

// KindOf reports which error kind err belongs to.
func KindOf(err error) Kind {
	var cfgErr *ConfigError
	var valErr *ValidationError
	var apiErr *APIError
	switch {
	case err == nil:
		return KindUnknown
	case errors.As(err, &cfgErr):
		return KindConfig
	case errors.As(err, &valErr):
		return KindValidation
	case errors.As(err, &apiErr):
		return KindAPI
	default:
		return KindUnknown
	}
}

// ConfigError is returned when required settings are absent.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	msgs := make([]string, 0, len(e.Missing))
	for _, name := range e.Missing {
		msgs = append(msgs, name+" is missing.")
	}
	return strings.Join(msgs, " ")
}

// ValidationError is a local precondition failure on tool arguments.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid builds a ValidationError for field.
func Invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ErrorContext carries diagnostics attached to an APIError.
type ErrorContext struct {
	Endpoint     string `json:"endpoint"`
	SpaceID      string `json:"space_id"`
	SuggestedFix string `json:"suggested_fix"`
}

// APIError is a non-success response from the Management API.
type APIError struct {
	StatusCode int          `json:"status_code"`
	StatusText string       `json:"status_text"`
	Details    any          `json:"details"`
	Context    ErrorContext `json:"context"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.StatusText, detailString(e.Details))
}

// SuggestedFix maps a status code to a remedy hint.
func SuggestedFix(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "Check if the API token is correct and has not expired."
	case http.StatusForbidden:
		return "Check token permissions."
	case http.StatusNotFound:
		return "Resource not found. Check endpoint and ID."
	case http.StatusNoContent:
		return "No content returned. This is not an error, but a valid response for some operations."
	default:
		return "Unknown error, please check the details."
	}
}

func detailString(details any) string {
	switch d := details.(type) {
	case nil:
		return ""
	case string:
		return d
	default:
		b, err := json.Marshal(d)
		if err != nil {
			return fmt.Sprintf("%v", d)
		}
		return string(b)
	}
}
