package catalog

import (
	"net/http"

	"github.com/Kiran1689/storyblok-mcp-server/internal/storyblok"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools"
)

func spaceTools(c *storyblok.Client) []tools.Definition {
	return definitions(c,
		endpoint{
			name:        "fetch_spaces",
			description: "List every space the token can access.",
			method:      http.MethodGet,
			path:        "/spaces/",
			scope:       storyblok.ScopeAccount,
		},
		endpoint{
			name:        "get_space",
			description: "Get a space by ID.",
			method:      http.MethodGet,
			path:        "/spaces/{space_id}",
			scope:       storyblok.ScopeAccount,
			fields:      []field{pathID("space_id", "Space ID.")},
		},
		endpoint{
			name:        "create_space",
			description: "Create a space.",
			method:      http.MethodPost,
			path:        "/spaces/",
			scope:       storyblok.ScopeAccount,
			envelope:    "space",
			fields: []field{
				body("name", tools.KindString, "Space name.").required(),
				body("domain", tools.KindString, "Default preview domain."),
				body("story_published_hook", tools.KindString, "Webhook called on publish."),
				body("environments", tools.KindArray, "Preview environments as {name, location}.").of(tools.KindObject),
			},
		},
		endpoint{
			name:        "update_space",
			description: "Update a space. Only the provided settings are sent.",
			method:      http.MethodPut,
			path:        "/spaces/{space_id}",
			scope:       storyblok.ScopeAccount,
			envelope:    "space",
			resource:    "Space",
			fields: []field{
				pathID("space_id", "Space ID."),
				body("name", tools.KindString, "Space name."),
				body("domain", tools.KindString, "Default preview domain."),
				body("uniq_domain", tools.KindString, "Unique domain."),
				body("owner_id", tools.KindInteger, "Owner user ID."),
				body("story_published_hook", tools.KindString, "Webhook called on publish."),
				body("environments", tools.KindArray, "Preview environments as {name, location}.").of(tools.KindObject),
				body("parent_id", tools.KindInteger, "Parent space ID."),
				body("searchblok_id", tools.KindInteger, "Searchblok ID."),
				body("duplicatable", tools.KindBoolean, "Allow duplication."),
				body("billing_address", tools.KindObject, "Billing address."),
				body("routes", tools.KindArray, "Routes.").of(tools.KindString),
				body("default_root", tools.KindString, "Default content type of root folders."),
				body("has_pending_tasks", tools.KindBoolean, "Pending task flag."),
				body("ai_translation_disabled", tools.KindBoolean, "Disable AI translation."),
				body("options", tools.KindObject, "Space options."),
			},
		},
		endpoint{
			name:        "duplicate_space",
			description: "Create a new space as a copy of an existing one.",
			method:      http.MethodPost,
			path:        "/spaces/",
			scope:       storyblok.ScopeAccount,
			envelope:    "space",
			fields: []field{
				top("original_space_id", tools.KindInteger, "Space to copy.").as("dup_id").required(),
				body("new_space_name", tools.KindString, "Name of the copy.").as("name").required(),
				body("domain", tools.KindString, "Default preview domain."),
				body("story_published_hook", tools.KindString, "Webhook called on publish."),
				body("environments", tools.KindArray, "Preview environments as {name, location}.").of(tools.KindObject),
				body("searchblok_id", tools.KindInteger, "Searchblok ID."),
				body("has_pending_tasks", tools.KindBoolean, "Pending task flag."),
			},
		},
		endpoint{
			name:        "backup_space",
			description: "Start a backup of a space.",
			method:      http.MethodPost,
			path:        "/spaces/{space_id}/backups",
			scope:       storyblok.ScopeAccount,
			resource:    "Space backup",
			fields:      []field{pathID("space_id", "Space ID.")},
			shape:       emptyBody,
		},
		endpoint{
			name:        "delete_space",
			description: "Delete a space.",
			method:      http.MethodDelete,
			path:        "/spaces/{space_id}",
			scope:       storyblok.ScopeAccount,
			resource:    "Space",
			fields:      []field{pathID("space_id", "Space ID.")},
		},
	)
}

// emptyBody sends {} for endpoints that reject a bodiless POST.
func emptyBody(_ tools.Args, req *storyblok.Request) error {
	bodyObject(req, "")
	return nil
}
