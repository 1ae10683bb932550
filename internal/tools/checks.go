package tools

import (
	"strings"

	"github.com/Kiran1689/storyblok-mcp-server/internal/storyblok"
)

// RequireAnyOf fails unless at least one of keys is present.
func RequireAnyOf(keys ...string) func(Args) error {
	return func(a Args) error {
		for _, k := range keys {
			if a.Has(k) {
				return nil
			}
		}
		return storyblok.Invalid("", "at least one of %s must be provided", strings.Join(keys, ", "))
	}
}

// RequireWith fails when key is present without dependency.
func RequireWith(key, dependency string) func(Args) error {
	return func(a Args) error {
		if a.Has(key) && !a.Has(dependency) {
			return storyblok.Invalid(dependency, "is required when %s is provided", key)
		}
		return nil
	}
}

// NonEmpty fails when the list under key is absent or empty.
func NonEmpty(key string) func(Args) error {
	return func(a Args) error {
		if l, ok := a.List(key); !ok || len(l) == 0 {
			return storyblok.Invalid(key, "must be a non-empty list")
		}
		return nil
	}
}

// All combines checks, stopping at the first failure.
func All(checks ...func(Args) error) func(Args) error {
	return func(a Args) error {
		for _, check := range checks {
			if err := check(a); err != nil {
				return err
			}
		}
		return nil
	}
}
