package catalog

import (
	"net/http"

	"github.com/Kiran1689/storyblok-mcp-server/internal/storyblok"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools"
)

var internalTagObjectTypes = []string{"asset", "component"}

func presetFields() []field {
	return []field{
		body("image", tools.KindString, "Preview image URL."),
		body("color", tools.KindString, "Hex color."),
		body("icon", tools.KindString, "Icon name."),
		body("description", tools.KindString, "Preset description."),
	}
}

func taxonomyTools(c *storyblok.Client) []tools.Definition {
	return definitions(c,
		endpoint{
			name:        "retrieve_multiple_tags",
			description: "List the tags of the space.",
			method:      http.MethodGet,
			path:        "/tags/",
			fields:      []field{query("search", tools.KindString, "Search by name.")},
		},
		endpoint{
			name:        "create_tag",
			description: "Create a tag, optionally attaching it to a story.",
			method:      http.MethodPost,
			path:        "/tags/",
			envelope:    "tag",
			fields: []field{
				body("name", tools.KindString, "Tag name.").required(),
				body("story_id", tools.KindInteger, "Story to tag."),
			},
		},
		endpoint{
			name:        "update_tag",
			description: "Rename a tag.",
			method:      http.MethodPut,
			path:        "/tags/{tag_id}",
			envelope:    "tag",
			resource:    "Tag",
			fields: []field{
				pathKey("tag_id", "Tag ID, which is the tag name."),
				body("new_name", tools.KindString, "New tag name.").as("name").required(),
			},
			shape: echoTagID,
		},
		endpoint{
			name:        "delete_tag",
			description: "Delete a tag.",
			method:      http.MethodDelete,
			path:        "/tags/{id}",
			resource:    "Tag",
			fields:      []field{pathKey("id", "Tag ID, which is the tag name.")},
		},
		endpoint{
			name:        "tag_bulk_association",
			description: "Attach tags to several stories in one call.",
			method:      http.MethodPost,
			path:        "/tags/bulk_association",
			envelope:    "tags",
			resource:    "Tag association",
			fields: []field{
				body("stories", tools.KindArray, "Items of {story_id, tag_list}.").of(tools.KindObject).required(),
			},
			check: tools.NonEmpty("stories"),
		},

		endpoint{
			name:        "retrieve_multiple_internal_tags",
			description: "List internal tags used on assets and components.",
			method:      http.MethodGet,
			path:        "/internal_tags/",
			fields: []field{
				query("by_object_type", tools.KindString, "Object type.").oneOf(internalTagObjectTypes...),
				query("search", tools.KindString, "Search by name."),
			},
		},
		endpoint{
			name:        "create_internal_tag",
			description: "Create an internal tag.",
			method:      http.MethodPost,
			path:        "/internal_tags",
			envelope:    "internal_tag",
			fields: []field{
				body("name", tools.KindString, "Tag name.").required(),
				body("object_type", tools.KindString, "Object type.").oneOf(internalTagObjectTypes...),
			},
		},
		endpoint{
			name:        "update_internal_tag",
			description: "Update an internal tag.",
			method:      http.MethodPut,
			path:        "/internal_tags/{internal_tag_id}",
			envelope:    "internal_tag",
			resource:    "Internal tag",
			fields: []field{
				pathID("internal_tag_id", "Internal tag ID."),
				body("name", tools.KindString, "Tag name."),
				body("object_type", tools.KindString, "Object type.").oneOf(internalTagObjectTypes...),
			},
		},
		endpoint{
			name:        "delete_internal_tag",
			description: "Delete an internal tag.",
			method:      http.MethodDelete,
			path:        "/internal_tags/{internal_tag_id}",
			resource:    "Internal tag",
			fields:      []field{pathID("internal_tag_id", "Internal tag ID.")},
		},

		endpoint{
			name:        "retrieve_multiple_presets",
			description: "List presets, optionally for one component.",
			method:      http.MethodGet,
			path:        "/presets/",
			fields:      []field{query("component_id", tools.KindInteger, "Component ID.")},
		},
		endpoint{
			name:        "retrieve_single_preset",
			description: "Get a preset by ID.",
			method:      http.MethodGet,
			path:        "/presets/{preset_id}",
			fields:      []field{pathID("preset_id", "Preset ID.")},
		},
		endpoint{
			name:        "create_preset",
			description: "Create a component preset.",
			method:      http.MethodPost,
			path:        "/presets/",
			envelope:    "preset",
			fields: append([]field{
				body("name", tools.KindString, "Preset name.").required(),
				body("component_id", tools.KindInteger, "Component ID.").required(),
				body("preset", tools.KindObject, "Preset field values.").required(),
			}, presetFields()...),
		},
		endpoint{
			name:        "update_preset",
			description: "Update a component preset.",
			method:      http.MethodPut,
			path:        "/presets/{preset_id}",
			envelope:    "preset",
			resource:    "Preset",
			fields: append([]field{
				pathID("preset_id", "Preset ID."),
				body("name", tools.KindString, "Preset name."),
				body("component_id", tools.KindInteger, "Component ID."),
				body("preset", tools.KindObject, "Preset field values."),
			}, presetFields()...),
		},
		endpoint{
			name:        "delete_preset",
			description: "Delete a preset.",
			method:      http.MethodDelete,
			path:        "/presets/{preset_id}",
			resource:    "Preset",
			fields:      []field{pathID("preset_id", "Preset ID.")},
		},
	)
}

// echoTagID repeats the path id at the top of the body as the API expects.
func echoTagID(args tools.Args, req *storyblok.Request) error {
	bodyObject(req, "")["id"] = args["tag_id"]
	return nil
}
