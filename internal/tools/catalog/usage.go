package catalog

import (
	"context"
	"errors"

	"github.com/spf13/cast"

	"github.com/Kiran1689/storyblok-mcp-server/internal/storyblok"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools"
)

// DefaultUsageMaxPages caps the story pages read per version.
const DefaultUsageMaxPages = 10

var usageVersions = []string{"published", "draft"}

// UsageReport is the result of a component usage search.
type UsageReport struct {
	ComponentName        string       `json:"component_name"`
	UsageCount           int          `json:"usage_count"`
	StoriesAnalyzedCount int          `json:"stories_analyzed_count"`
	SearchLimitReached   bool         `json:"search_limit_reached"`
	UsedInStories        []StoryUsage `json:"used_in_stories"`
}

type StoryUsage struct {
	ID       any    `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	FullSlug string `json:"full_slug"`
}

// UsageSearch scans the published and draft story listings for a component.
type UsageSearch struct {
	client   *storyblok.Client
	maxPages int
}

func NewUsageSearch(c *storyblok.Client, maxPages int) *UsageSearch {
	if maxPages <= 0 {
		maxPages = DefaultUsageMaxPages
	}
	return &UsageSearch{client: c, maxPages: maxPages}
}

// Run reads at most maxPages pages per version. A short page or an API error
// ends a version; running out of pages sets SearchLimitReached.
func (s *UsageSearch) Run(ctx context.Context, component string) (*UsageReport, error) {
	stories := make(map[string]map[string]any)
	var order []string
	limitReached := false

	for _, version := range usageVersions {
		exhausted := true
		for page := 1; page <= s.maxPages; page++ {
			resp, err := s.client.Get(ctx, "/stories", storyblok.Params{
				"page":         page,
				"per_page":     storyblok.MaxPerPage,
				"with_content": 1,
				"version":      version,
			})
			var apiErr *storyblok.APIError
			if errors.As(err, &apiErr) {
				exhausted = false
				break
			}
			if err != nil {
				return nil, err
			}

			batch := listOf(resp.Object(), "stories")
			for _, item := range batch {
				story, ok := item.(map[string]any)
				if !ok {
					continue
				}
				id := cast.ToString(story["id"])
				if _, seen := stories[id]; !seen {
					order = append(order, id)
				}
				stories[id] = story
			}
			if len(batch) < storyblok.MaxPerPage {
				exhausted = false
				break
			}
		}
		if exhausted {
			limitReached = true
		}
	}

	report := &UsageReport{
		ComponentName:        component,
		StoriesAnalyzedCount: len(stories),
		SearchLimitReached:   limitReached,
		UsedInStories:        []StoryUsage{},
	}
	for _, id := range order {
		story := stories[id]
		if !UsesComponent(story["content"], component) {
			continue
		}
		report.UsedInStories = append(report.UsedInStories, StoryUsage{
			ID:       story["id"],
			Name:     cast.ToString(story["name"]),
			Slug:     cast.ToString(story["slug"]),
			FullSlug: cast.ToString(story["full_slug"]),
		})
	}
	report.UsageCount = len(report.UsedInStories)
	return report, nil
}

// UsesComponent reports whether any object nested in content has a
// "component" value equal to name.
func UsesComponent(content any, name string) bool {
	switch v := content.(type) {
	case []any:
		for _, item := range v {
			if UsesComponent(item, name) {
				return true
			}
		}
	case map[string]any:
		if c, ok := v["component"].(string); ok && c == name {
			return true
		}
		for _, item := range v {
			if UsesComponent(item, name) {
				return true
			}
		}
	}
	return false
}

func componentUsage(c *storyblok.Client, maxPages int) tools.Definition {
	search := NewUsageSearch(c, maxPages)
	return tools.Definition{
		Name:        "get_component_usage",
		Description: "Find the stories whose content uses a component, across published and draft versions.",
		Params: []tools.Param{
			{Name: "component_name", Kind: tools.KindString, Required: true, Description: "Technical component name."},
		},
		Run: func(ctx context.Context, args tools.Args) (any, error) {
			name, _ := args.String("component_name")
			return search.Run(ctx, name)
		},
	}
}
