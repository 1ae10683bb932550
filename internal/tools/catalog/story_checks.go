package catalog

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cast"

	"github.com/Kiran1689/storyblok-mcp-server/internal/storyblok"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools"
)

// ContentIssue is one schema mismatch found in story content.
type ContentIssue struct {
	Field   string `json:"field"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ContentReport compares story content against a component schema.
type ContentReport struct {
	IsValid                bool           `json:"isValid"`
	Errors                 []ContentIssue `json:"errors"`
	MissingFields          []string       `json:"missingFields"`
	ExtraneousFields       []string       `json:"extraneousFields"`
	ValidatedComponentName string         `json:"validatedComponentName"`
	StoryIDProcessed       string         `json:"storyIdProcessed"`
}

// CheckContent reports required schema fields missing from content and
// content keys the schema does not declare. Fields are reported in name order.
func CheckContent(schema, content map[string]any) ContentReport {
	report := ContentReport{
		Errors:           []ContentIssue{},
		MissingFields:    []string{},
		ExtraneousFields: []string{},
	}
	for _, name := range slices.Sorted(maps.Keys(schema)) {
		def, _ := schema[name].(map[string]any)
		if cast.ToBool(def["required"]) && content[name] == nil {
			report.MissingFields = append(report.MissingFields, name)
			report.Errors = append(report.Errors, ContentIssue{
				Field: name, Type: "missing_required", Message: fmt.Sprintf("Field '%s' is required.", name),
			})
		}
	}
	for _, name := range slices.Sorted(maps.Keys(content)) {
		if _, ok := schema[name]; !ok {
			report.ExtraneousFields = append(report.ExtraneousFields, name)
			report.Errors = append(report.Errors, ContentIssue{
				Field: name, Type: "extraneous_field", Message: fmt.Sprintf("Field '%s' not in schema.", name),
			})
		}
	}
	report.IsValid = len(report.Errors) == 0
	return report
}

func componentSchema(ctx context.Context, c *storyblok.Client, name string) (map[string]any, error) {
	resp, err := c.Get(ctx, "/components", nil)
	if err != nil {
		return nil, err
	}
	for _, item := range listOf(resp.Object(), "components") {
		component, _ := item.(map[string]any)
		if component["name"] != name {
			continue
		}
		if schema, ok := component["schema"].(map[string]any); ok && len(schema) > 0 {
			return schema, nil
		}
		break
	}
	return nil, storyblok.Invalid("component_name", "component schema %q not found", name)
}

func validateStoryContent(c *storyblok.Client) tools.Definition {
	return tools.Definition{
		Name: "validate_story_content",
		Description: "Check story content against a component schema for missing required fields " +
			"and fields the schema does not declare. Pass story_content or a story_id to load it.",
		Params: []tools.Param{
			{Name: "component_name", Kind: tools.KindString, Required: true, Description: "Component whose schema is used."},
			{Name: "story_id", Kind: tools.KindString, Description: "Story to load the content from."},
			{Name: "story_content", Kind: tools.KindObject, Description: "Content to check."},
		},
		Check: tools.RequireAnyOf("story_id", "story_content"),
		Run: func(ctx context.Context, args tools.Args) (any, error) {
			name, _ := args.String("component_name")
			schema, err := componentSchema(ctx, c, name)
			if err != nil {
				return nil, err
			}

			content, _ := args.Object("story_content")
			storyID := args.StringOr("story_id", "")
			if len(content) == 0 && storyID != "" {
				path, err := storyPath(storyID, "")
				if err != nil {
					return nil, err
				}
				resp, err := c.Get(ctx, path, nil)
				if err != nil {
					return nil, err
				}
				story, _ := resp.Object()["story"].(map[string]any)
				content, _ = story["content"].(map[string]any)
			}
			if len(content) == 0 {
				return nil, storyblok.Invalid("story_content", "story_id or story_content must be provided and valid")
			}

			report := CheckContent(schema, content)
			report.ValidatedComponentName = name
			report.StoryIDProcessed = storyID
			if storyID == "" {
				report.StoryIDProcessed = "N/A"
			}
			return report, nil
		},
	}
}

type accessScenario struct {
	name  string
	query storyblok.Params
}

var accessScenarios = []accessScenario{
	{"Default (likely draft)", storyblok.Params{}},
	{"Published", storyblok.Params{"version": "published"}},
	{"Draft explicit", storyblok.Params{"version": "draft"}},
	{"Draft with content", storyblok.Params{"version": "draft", "with_content": "1"}},
	{"Published with content", storyblok.Params{"version": "published", "with_content": "1"}},
}

// VersionAccess records whether a story version could be read.
type VersionAccess struct {
	Accessible     bool   `json:"accessible"`
	ContentPresent bool   `json:"contentPresent"`
	FromScenario   string `json:"fromScenario"`
}

func (v *VersionAccess) observe(scenario string, contentPresent bool) {
	if !v.Accessible || (contentPresent && !v.ContentPresent) {
		*v = VersionAccess{Accessible: true, ContentPresent: contentPresent, FromScenario: scenario}
	}
}

// AccessReport is the result of debug_story_access.
type AccessReport struct {
	StoryID         string           `json:"storyId"`
	Draft           VersionAccess    `json:"accessibleAsDraftDetails"`
	Published       VersionAccess    `json:"accessibleAsPublishedDetails"`
	IssuesDetected  []string         `json:"issuesDetected"`
	Suggestions     []string         `json:"suggestions"`
	APICallAttempts []map[string]any `json:"apiCallAttempts"`
}

func (r *AccessReport) issue(s string) {
	if !slices.Contains(r.IssuesDetected, s) {
		r.IssuesDetected = append(r.IssuesDetected, s)
	}
}

func (r *AccessReport) suggest(s string) {
	if !slices.Contains(r.Suggestions, s) {
		r.Suggestions = append(r.Suggestions, s)
	}
}

// DebugStoryAccess fetches a story under each access scenario in turn and
// explains the differences.
func DebugStoryAccess(ctx context.Context, c *storyblok.Client, storyID string) (*AccessReport, error) {
	path, err := storyPath(storyID, "")
	if err != nil {
		return nil, err
	}
	report := &AccessReport{
		StoryID:         storyID,
		IssuesDetected:  []string{},
		Suggestions:     []string{},
		APICallAttempts: make([]map[string]any, 0, len(accessScenarios)),
	}

	for _, sc := range accessScenarios {
		used := maps.Clone(sc.query)
		used["story_id"] = storyID
		attempt := map[string]any{"scenarioName": sc.name, "paramsUsed": used}
		report.APICallAttempts = append(report.APICallAttempts, attempt)

		resp, err := c.Get(ctx, path, sc.query)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			var apiErr *storyblok.APIError
			if errors.As(err, &apiErr) {
				attempt["status"] = apiErr.StatusCode
				attempt["errorDetails"] = apiErr.Details
			} else {
				attempt["status"] = "ERROR"
				attempt["errorDetails"] = err.Error()
			}
			continue
		}

		story, _ := resp.Object()["story"].(map[string]any)
		content, _ := story["content"].(map[string]any)
		contentPresent := len(content) > 0
		attempt["status"] = resp.StatusCode
		attempt["responseData"] = map[string]any{
			"id":                story["id"],
			"name":              story["name"],
			"published_at":      story["published_at"],
			"full_slug":         story["full_slug"],
			"content_present":   contentPresent,
			"content_component": content["component"],
			"version":           story["version"],
		}

		if sc.query["version"] == "published" {
			report.Published.observe(sc.name, contentPresent)
			if story["published_at"] == nil {
				report.issue(fmt.Sprintf("Scenario '%s': fetched as published but no published_at.", sc.name))
			}
		} else {
			report.Draft.observe(sc.name, contentPresent)
		}
		if _, withContent := sc.query["with_content"]; withContent && !contentPresent {
			report.issue(fmt.Sprintf("Scenario '%s': with_content=1 used but no content present.", sc.name))
		}
	}

	draft, pub := report.Draft, report.Published
	switch {
	case draft.Accessible && !pub.Accessible:
		report.suggest("Accessible in draft but not published. Might be unpublished.")
	case pub.Accessible && !draft.Accessible:
		report.issue("Accessible in published but not draft.")
	case draft.Accessible && pub.Accessible:
		if draft.ContentPresent && !pub.ContentPresent {
			report.suggest("Published version doesn't include content; try with_content=1.")
		}
		if pub.ContentPresent && !draft.ContentPresent {
			report.suggest("Draft version doesn't include content; try with_content=1.")
		}
	default:
		report.issue("Story not accessible in any scenario.")
		report.suggest("Check story ID and token permissions.")
	}

	all404, any403 := true, false
	for _, attempt := range report.APICallAttempts {
		all404 = all404 && attempt["status"] == 404
		any403 = any403 || attempt["status"] == 403
	}
	if all404 {
		report.issue("All attempts returned 404 Not Found.")
		report.suggest("Verify the story exists and isn't deleted.")
	}
	if any403 {
		report.issue("One or more attempts resulted in 403 Forbidden.")
		report.suggest("Check that your API token has proper permissions.")
	}
	return report, nil
}

func debugStoryAccess(c *storyblok.Client) tools.Definition {
	return tools.Definition{
		Name:        "debug_story_access",
		Description: "Fetch a story as draft and published, with and without content, and explain access problems.",
		Params: []tools.Param{
			{Name: "story_id", Kind: tools.KindString, Required: true, Description: "Story ID."},
		},
		Run: func(ctx context.Context, args tools.Args) (any, error) {
			id, _ := args.String("story_id")
			return DebugStoryAccess(ctx, c, id)
		},
	}
}
