package storyblok

import (
	"net/http"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildManagementURL(t *testing.T) {
	assert.Equal(t,
		"https://mapi.storyblok.com/v1/spaces/12345/assets",
		BuildManagementURL(DefaultBaseURL, "12345", "/assets"))
	assert.Equal(t,
		"https://mapi.storyblok.com/v1/spaces/12345/assets",
		BuildManagementURL(DefaultBaseURL+"/", "12345", "assets"))
}

func TestBuildAccountURL(t *testing.T) {
	assert.Equal(t, "https://mapi.storyblok.com/v1/org_apps/7", BuildAccountURL(DefaultBaseURL, "/org_apps/7"))
}

func TestManagementHeaders(t *testing.T) {
	h := ManagementHeaders("secret")
	assert.Equal(t, "secret", h.Get("Authorization"))
	assert.Equal(t, "application/json", h.Get("Content-Type"))
	assert.Len(t, h, 2)
}

func TestPaginationParams_Clamp(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("per_page above 100 is clamped to 100", prop.ForAll(
		func(page, perPage int) bool {
			p := PaginationParams(page, perPage)
			return p["page"] == page && p["per_page"] == MaxPerPage
		},
		gen.IntRange(1, 1000),
		gen.IntRange(MaxPerPage+1, 100000),
	))

	properties.Property("per_page up to 100 is unchanged", prop.ForAll(
		func(page, perPage int) bool {
			return PaginationParams(page, perPage)["per_page"] == perPage
		},
		gen.IntRange(1, 1000),
		gen.IntRange(0, MaxPerPage),
	))

	properties.TestingRun(t)
}

func TestMergeOptional_PresenceNotTruthiness(t *testing.T) {
	base := Params{"name": "keep"}
	got := MergeOptional(base, map[string]any{
		"is_default":  false,
		"position":    0,
		"description": "",
		"skipped":     nil,
		"unset":       Optional[bool]{},
		"set_false":   Some(false),
		"set_zero":    Some(0),
	})

	assert.Equal(t, Params{
		"name":        "keep",
		"is_default":  false,
		"position":    0,
		"description": "",
		"set_false":   false,
		"set_zero":    0,
	}, got)
}

func TestMergeOptional_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("present keys survive and absent keys never appear", prop.ForAll(
		func(keys []string, mask []bool) bool {
			options := map[string]any{}
			want := map[string]bool{}
			for i, k := range keys {
				present := i < len(mask) && mask[i]
				if present {
					options[k] = Some(i)
				} else {
					options[k] = Optional[int]{}
				}
				want[k] = present
			}
			out := MergeOptional(nil, options)
			for k, present := range want {
				_, ok := out[k]
				if ok != present {
					return false
				}
			}
			return len(out) <= len(options)
		},
		gen.SliceOf(gen.Identifier()),
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t)
}

func TestParamsValues(t *testing.T) {
	q := Params{
		"page":         2,
		"by_ids":       []any{1.0, 2.0, 3.0},
		"types":        []string{"a", "b"},
		"filter_query": map[string]any{"component": map[string]any{"in": "page"}},
		"pinned":       true,
		"skip":         nil,
	}.Values()

	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "1,2,3", q.Get("by_ids"))
	assert.Equal(t, "a,b", q.Get("types"))
	assert.JSONEq(t, `{"component":{"in":"page"}}`, q.Get("filter_query"))
	assert.Equal(t, "true", q.Get("pinned"))
	assert.False(t, q.Has("skip"))
}

func TestExpandPath(t *testing.T) {
	path, err := ExpandPath("/stories/{story_id}/restore/{version_id}", map[string]any{
		"story_id":   float64(123456789012),
		"version_id": "55",
	})
	require.NoError(t, err)
	assert.Equal(t, "/stories/123456789012/restore/55", path)

	_, err = ExpandPath("/stories/{story_id}", map[string]any{})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestSuggestedFix(t *testing.T) {
	assert.Contains(t, SuggestedFix(http.StatusNotFound), "Check endpoint and ID")
	assert.Contains(t, SuggestedFix(http.StatusUnauthorized), "API token")
	assert.Contains(t, SuggestedFix(http.StatusForbidden), "permissions")
	assert.Contains(t, SuggestedFix(http.StatusNoContent), "not an error")
	assert.Equal(t, "Unknown error, please check the details.", SuggestedFix(http.StatusTeapot))
}
