package storyblok

import (
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the Management API root.
	DefaultBaseURL = "https://mapi.storyblok.com/v1"
	DefaultTimeout = 30 * time.Second

	EnvSpaceID         = "STORYBLOK_SPACE_ID"
	EnvManagementToken = "STORYBLOK_MANAGEMENT_TOKEN"
	EnvPublicToken     = "STORYBLOK_DEFAULT_PUBLIC_TOKEN"
)

// Settings binds a client to one space. It is resolved once at startup.
type Settings struct {
	SpaceID         string
	ManagementToken string
	PublicToken     string
	BaseURL         string
	Timeout         time.Duration
}

// Validate reports every missing credential as a single ConfigError.
func (s Settings) Validate() error {
	var missing []string
	if strings.TrimSpace(s.SpaceID) == "" {
		missing = append(missing, EnvSpaceID)
	}
	if strings.TrimSpace(s.ManagementToken) == "" {
		missing = append(missing, EnvManagementToken)
	}
	if strings.TrimSpace(s.PublicToken) == "" {
		missing = append(missing, EnvPublicToken)
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	return nil
}

func (s Settings) withDefaults() Settings {
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	s.BaseURL = strings.TrimRight(s.BaseURL, "/")
	if s.Timeout <= 0 {
		s.Timeout = DefaultTimeout
	}
	return s
}
