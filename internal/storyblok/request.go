package storyblok

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cast"
	"github.com/yosida95/uritemplate/v3"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 25
	MaxPerPage     = 100
)

// Scope selects whether a path is rooted under /spaces/{space_id}.
type Scope int

const (
	ScopeSpace Scope = iota
	ScopeAccount
)

// BuildManagementURL returns <base>/spaces/<spaceID><path>.
func BuildManagementURL(base, spaceID, path string) string {
	return strings.TrimRight(base, "/") + "/spaces/" + spaceID + normalizePath(path)
}

// BuildAccountURL returns <base><path> for paths outside any space.
func BuildAccountURL(base, path string) string {
	return strings.TrimRight(base, "/") + normalizePath(path)
}

func normalizePath(path string) string {
	if path == "" || strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}

// ManagementHeaders returns the auth and content headers for every call.
func ManagementHeaders(token string) http.Header {
	h := make(http.Header, 2)
	h.Set("Authorization", token)
	h.Set("Content-Type", "application/json")
	return h
}

// Params is a query or body object under construction.
type Params map[string]any

// PaginationParams clamps per_page to MaxPerPage.
func PaginationParams(page, perPage int) Params {
	return Params{
		"page":     page,
		"per_page": min(perPage, MaxPerPage),
	}
}

// Optional carries a value together with an explicit presence flag, so an
// explicit false, 0 or "" is distinguishable from "not provided".
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns a present Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Get returns the value and whether it was set.
func (o Optional[T]) Get() (T, bool) { return o.value, o.set }

// IsSet reports presence.
func (o Optional[T]) IsSet() bool { return o.set }

// Any returns the wrapped value as an interface.
func (o Optional[T]) Any() any { return o.value }

type presence interface {
	IsSet() bool
	Any() any
}

// MergeOptional copies every present option into base and returns it.
// A nil value or an unset Optional is skipped; falsy values are kept.
func MergeOptional(base Params, options map[string]any) Params {
	if base == nil {
		base = Params{}
	}
	for k, v := range options {
		if v == nil {
			continue
		}
		if p, ok := v.(presence); ok {
			if !p.IsSet() {
				continue
			}
			v = p.Any()
		}
		base[k] = v
	}
	return base
}

// Values encodes p as a query string. Lists are joined with commas and
// objects are sent as JSON.
func (p Params) Values() url.Values {
	q := make(url.Values, len(p))
	for k, v := range p {
		if v == nil {
			continue
		}
		q.Set(k, encodeQueryValue(v))
	}
	return q
}

func encodeQueryValue(v any) string {
	switch val := v.(type) {
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, encodeQueryValue(item))
		}
		return strings.Join(parts, ",")
	case []string:
		return strings.Join(val, ",")
	case []int:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, cast.ToString(item))
		}
		return strings.Join(parts, ",")
	case map[string]any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return s
}

// ExpandPath fills an RFC 6570 path template such as /stories/{story_id}.
func ExpandPath(template string, vars map[string]any) (string, error) {
	tmpl, err := uritemplate.New(template)
	if err != nil {
		return "", fmt.Errorf("parse path template %q: %w", template, err)
	}
	values := uritemplate.Values{}
	for _, name := range tmpl.Varnames() {
		v, ok := vars[name]
		if !ok || v == nil {
			return "", Invalid(name, "is required")
		}
		values.Set(name, uritemplate.String(encodeQueryValue(v)))
	}
	path, err := tmpl.Expand(values)
	if err != nil {
		return "", fmt.Errorf("expand path template %q: %w", template, err)
	}
	return path, nil
}
