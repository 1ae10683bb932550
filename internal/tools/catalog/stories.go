package catalog

import (
	"net/http"

	"github.com/Kiran1689/storyblok-mcp-server/internal/storyblok"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools"
)

// storyFilters are the fetch_stories query filters. Booleans go out as 1 or 0.
func storyFilters() []field {
	return []field{
		query("contain_component", tools.KindString, "Only stories containing this component."),
		query("text_search", tools.KindString, "Full text search."),
		query("sort_by", tools.KindString, "Sort order, e.g. created_at:desc."),
		query("pinned", tools.KindBoolean, "Only pinned stories.").binary(),
		query("excluding_ids", tools.KindString, "Comma separated IDs to leave out."),
		query("by_ids", tools.KindString, "Comma separated story IDs."),
		query("by_uuids", tools.KindString, "Comma separated story UUIDs."),
		query("with_tag", tools.KindString, "Comma separated tag names."),
		query("folder_only", tools.KindBoolean, "Only folders.").binary(),
		query("story_only", tools.KindBoolean, "Only stories, no folders.").binary(),
		query("with_parent", tools.KindInteger, "Parent folder ID."),
		query("starts_with", tools.KindString, "Full slug prefix."),
		query("in_trash", tools.KindBoolean, "Only deleted stories.").binary(),
		query("search", tools.KindString, "Search by name."),
		newField("filter_query", tools.KindAny, inQuery, "Filter query as an object or a JSON string."),
		query("in_release", tools.KindInteger, "Release ID."),
		query("is_published", tools.KindBoolean, "Only published, or only unpublished when false.").binary(),
		query("by_slugs", tools.KindString, "Comma separated full slugs."),
		query("mine", tools.KindBoolean, "Only stories of the current user.").binary(),
		query("excluding_slugs", tools.KindString, "Comma separated full slugs to leave out."),
		query("in_workflow_stages", tools.KindString, "Comma separated workflow stage IDs."),
		query("by_uuids_ordered", tools.KindString, "Comma separated UUIDs, keeping their order."),
		query("with_slug", tools.KindString, "Exact full slug."),
		query("with_summary", tools.KindBoolean, "Include summaries.").binary(),
		query("scheduled_at_gt", tools.KindString, "Scheduled after this time."),
		query("scheduled_at_lt", tools.KindString, "Scheduled before this time."),
		query("favourite", tools.KindBoolean, "Only favourites.").binary(),
		query("reference_search", tools.KindString, "Search by reference."),
	}
}

func storyFields() []field {
	return []field{
		body("parent_id", tools.KindInteger, "Parent folder ID."),
		body("group_id", tools.KindString, "Group UUID shared by alternates."),
		body("sort_by_date", tools.KindString, "Date used for sorting."),
		body("is_folder", tools.KindBoolean, "Create a folder."),
		body("default_root", tools.KindString, "Default content type of a folder."),
		body("disable_fe_editor", tools.KindBoolean, "Disable the visual editor."),
		body("is_startpage", tools.KindBoolean, "Folder start page."),
		body("meta_data", tools.KindObject, "Custom metadata."),
		body("pinned", tools.KindBoolean, "Pin the story."),
		body("translated_slugs_attributes", tools.KindArray, "Translated slugs.").of(tools.KindObject),
		body("position", tools.KindInteger, "Position in the folder."),
		body("release_id", tools.KindInteger, "Release ID."),
	}
}

func storyTools(c *storyblok.Client) []tools.Definition {
	defs := definitions(c,
		endpoint{
			name:        "fetch_stories",
			description: "List stories with optional filters.",
			method:      http.MethodGet,
			path:        "/stories",
			paginate:    true,
			fields:      storyFilters(),
			result: func(args tools.Args, resp *storyblok.Response) (any, error) {
				stories := listOf(resp.Object(), "stories")
				page := pagination(args)
				return map[string]any{
					"stories":  stories,
					"total":    len(stories),
					"page":     page["page"],
					"per_page": page["per_page"],
				}, nil
			},
		},
		endpoint{
			name:        "get_story",
			description: "Get a story by ID.",
			method:      http.MethodGet,
			path:        "/stories/{story_id}",
			fields:      []field{pathID("story_id", "Story ID.")},
		},
		endpoint{
			name:        "create_story",
			description: "Create a story, optionally publishing it.",
			method:      http.MethodPost,
			path:        "/stories",
			envelope:    "story",
			fields: append([]field{
				body("name", tools.KindString, "Story name.").required(),
				body("slug", tools.KindString, "Story slug.").required(),
				body("content", tools.KindObject, "Story content with a component key.").required(),
				top("publish", tools.KindBoolean, "Publish after creating.").flag(),
			}, storyFields()...),
		},
		endpoint{
			name:        "update_story",
			description: "Update a story. At least one of name, slug, content or publish is required.",
			method:      http.MethodPut,
			path:        "/stories/{story_id}",
			envelope:    "story",
			resource:    "Story",
			fields: append([]field{
				pathID("story_id", "Story ID."),
				body("name", tools.KindString, "Story name."),
				body("slug", tools.KindString, "Story slug."),
				body("content", tools.KindObject, "Story content."),
				body("tag_list", tools.KindArray, "Tag names.").of(tools.KindString),
				body("path", tools.KindString, "Real path for the visual editor."),
				body("first_published_at", tools.KindString, "First publish time."),
				body("lang", tools.KindString, "Language code."),
				body("force_update", tools.KindBoolean, "Overwrite a locked story.").flag(),
				top("publish", tools.KindBoolean, "Publish after updating.").flag(),
			}, storyFields()...),
			check: requireStoryChange,
			shape: func(_ tools.Args, req *storyblok.Request) error {
				story := bodyObject(req, "story")
				if _, ok := story["force_update"]; ok {
					story["force_update"] = "1"
				}
				return nil
			},
		},
		endpoint{
			name:        "delete_story",
			description: "Delete a story.",
			method:      http.MethodDelete,
			path:        "/stories/{id}",
			resource:    "Story",
			fields:      []field{pathKey("id", "Story ID.")},
		},
		endpoint{
			name:        "publish_story",
			description: "Publish a story, optionally one language or within a release.",
			method:      http.MethodGet,
			path:        "/stories/{story_id}/publish",
			resource:    "Story publish",
			fields: []field{
				pathID("story_id", "Story ID."),
				query("lang", tools.KindString, "Language code."),
				query("release_id", tools.KindInteger, "Release ID."),
			},
		},
		endpoint{
			name:        "unpublish_story",
			description: "Unpublish a story.",
			method:      http.MethodGet,
			path:        "/stories/{story_id}/unpublish",
			resource:    "Story unpublish",
			fields: []field{
				pathID("story_id", "Story ID."),
				query("lang", tools.KindString, "Language code."),
			},
		},
		endpoint{
			name:        "get_story_versions",
			description: "List the saved versions of a story.",
			method:      http.MethodGet,
			path:        "/story_versions",
			paginate:    true,
			fields: []field{
				query("by_story_id", tools.KindInteger, "Story ID.").required(),
				query("version_id", tools.KindInteger, "Only this version."),
				query("by_release_id", tools.KindInteger, "Release ID."),
				query("show_content", tools.KindBoolean, "Include content.").flag(),
			},
			result: func(args tools.Args, resp *storyblok.Response) (any, error) {
				data := resp.Object()
				page := pagination(args)
				return map[string]any{
					"versions": listOf(data, "story_versions"),
					"page":     page["page"],
					"per_page": page["per_page"],
					"total":    data["total"],
				}, nil
			},
		},
		endpoint{
			name:        "restore_story",
			description: "Restore a story to a saved version.",
			method:      http.MethodPost,
			path:        "/stories/{id}/restore/{version_id}",
			resource:    "Story restore",
			fields: []field{
				pathKey("id", "Story ID."),
				pathKey("version_id", "Version ID."),
			},
		},
		endpoint{
			name:        "get_unpublished_dependencies",
			description: "List unpublished stories and assets the given stories depend on.",
			method:      http.MethodPost,
			path:        "/stories/unpublished_dependencies",
			fields: []field{
				top("story_ids", tools.KindArray, "Story IDs.").of(tools.KindInteger).required(),
				top("release_id", tools.KindInteger, "Release ID."),
			},
			check: tools.NonEmpty("story_ids"),
		},
		endpoint{
			name:        "ai_translate_story",
			description: "Translate a story into a language with AI.",
			method:      http.MethodPut,
			path:        "/stories/{story_id}/ai_translate",
			resource:    "Story translation",
			fields: []field{
				pathID("story_id", "Story ID."),
				top("lang", tools.KindString, "Target language name.").required(),
				top("code", tools.KindString, "Target language code.").required(),
				top("overwrite", tools.KindBoolean, "Overwrite existing translations.").withDefault(false),
				top("release_id", tools.KindInteger, "Release ID."),
			},
		},
		endpoint{
			name:        "compare_story_versions",
			description: "Compare the current story with a saved version.",
			method:      http.MethodGet,
			path:        "/stories/{story_id}/compare",
			fields: []field{
				pathID("story_id", "Story ID."),
				query("version_v2", tools.KindInteger, "Version ID to compare with.").required(),
			},
		},
	)
	return append(defs,
		validateStoryContent(c),
		debugStoryAccess(c),
		bulkPublishStories(c),
		bulkDeleteStories(c),
		bulkUpdateStories(c),
		bulkCreateStories(c),
	)
}

// requireStoryChange accepts an update that sets name, slug or content, or
// one that only publishes. publish=false alone changes nothing.
func requireStoryChange(a tools.Args) error {
	if a.Truthy("publish") {
		return nil
	}
	return tools.RequireAnyOf("name", "slug", "content")(a)
}
