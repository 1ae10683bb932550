package catalog

import (
	"net/http"

	"github.com/Kiran1689/storyblok-mcp-server/internal/storyblok"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools"
)

var (
	extensionCollections = map[string]string{
		"org":     "org_apps",
		"partner": "partner_apps",
	}
	fieldPluginCollections = map[string]string{
		"space":   "field_types",
		"org":     "org_field_types",
		"partner": "partner_field_types",
	}
)

// extensionContext routes a call to the org or partner app collection.
func extensionContext() field {
	return newField("context", tools.KindString, inPath, "Ownership context of the extension.").
		oneOf("org", "partner").
		as("collection").
		mapped(extensionCollections)
}

func fieldPluginContext() field {
	return newField("context", tools.KindString, inPath, "Ownership context of the field plugin.").
		oneOf("space", "org", "partner").
		withDefault("space").
		as("collection").
		mapped(fieldPluginCollections)
}

func extensionFields() []field {
	return []field{
		body("icon", tools.KindString, "Icon URL."),
		body("preview_video", tools.KindString, "Preview video URL."),
		body("description", tools.KindString, "Short description."),
		body("intro", tools.KindString, "Intro text."),
		body("screenshot", tools.KindString, "Screenshot URL."),
		body("website", tools.KindString, "Website URL."),
		body("author", tools.KindString, "Author name."),
		body("field_type_ids", tools.KindArray, "Field plugin IDs bundled with the extension.").of(tools.KindInteger),
		body("embedded_app_url", tools.KindString, "URL of the embedded app."),
		body("dev_embedded_app_url", tools.KindString, "Development URL of the embedded app."),
		body("dev_oauth_redirect_uri", tools.KindString, "Development OAuth redirect URI."),
		body("in_sidebar", tools.KindBoolean, "Show in the sidebar."),
		body("in_toolbar", tools.KindBoolean, "Show in the toolbar."),
		body("sidebar_icon", tools.KindString, "Sidebar icon URL."),
		body("oauth_redirect_uri", tools.KindString, "OAuth redirect URI."),
		body("enable_space_settings", tools.KindBoolean, "Enable per-space settings."),
	}
}

func appTools(c *storyblok.Client) []tools.Definition {
	return definitions(c,
		endpoint{
			name:        "retrieve_all_extensions",
			description: "List the extensions of the organization or partner account.",
			method:      http.MethodGet,
			path:        "/{collection}/",
			scope:       storyblok.ScopeAccount,
			fields:      []field{extensionContext().required()},
		},
		endpoint{
			name:        "retrieve_extension",
			description: "Get an extension by ID.",
			method:      http.MethodGet,
			path:        "/{collection}/{extension_id}",
			scope:       storyblok.ScopeAccount,
			fields: []field{
				pathID("extension_id", "Extension ID."),
				extensionContext().required(),
			},
		},
		endpoint{
			name:        "create_extension",
			description: "Create an extension in the organization or partner account.",
			method:      http.MethodPost,
			path:        "/{collection}",
			scope:       storyblok.ScopeAccount,
			envelope:    "app",
			fields: append([]field{
				body("name", tools.KindString, "Extension name.").required(),
				body("slug", tools.KindString, "Extension slug.").required(),
				extensionContext().required(),
			}, extensionFields()...),
		},
		endpoint{
			name:        "update_extension",
			description: "Update an extension.",
			method:      http.MethodPut,
			path:        "/{collection}/{extension_id}",
			scope:       storyblok.ScopeAccount,
			envelope:    "app",
			resource:    "Extension",
			fields: append([]field{
				pathID("extension_id", "Extension ID."),
				extensionContext().withDefault("org"),
				body("name", tools.KindString, "Extension name."),
				body("slug", tools.KindString, "Extension slug."),
			}, extensionFields()...),
		},
		endpoint{
			name:        "delete_extension",
			description: "Delete an extension.",
			method:      http.MethodDelete,
			path:        "/{collection}/{extension_id}",
			scope:       storyblok.ScopeAccount,
			resource:    "Extension",
			fields: []field{
				pathID("extension_id", "Extension ID."),
				extensionContext().withDefault("org"),
			},
		},
		endpoint{
			name:        "retrieve_extension_settings",
			description: "Get the settings of an extension installed in the space.",
			method:      http.MethodGet,
			path:        "/app_provisions/{extension_id}",
			fields:      []field{pathID("extension_id", "Extension ID.")},
		},
		endpoint{
			name:        "retrieve_all_extension_settings",
			description: "List the settings of every extension installed in the space.",
			method:      http.MethodGet,
			path:        "/app_provisions/",
		},

		endpoint{
			name:        "retrieve_field_plugins",
			description: "List field plugins of the space, organization or partner account.",
			method:      http.MethodGet,
			path:        "/{collection}/",
			scope:       storyblok.ScopeAccount,
			paginate:    true,
			fields: []field{
				fieldPluginContext(),
				query("only_mine", tools.KindBoolean, "Only plugins owned by the current user.").withDefault(true).binary(),
				query("search", tools.KindString, "Search by name."),
			},
		},
		endpoint{
			name:        "retrieve_field_plugin",
			description: "Get a field plugin by ID.",
			method:      http.MethodGet,
			path:        "/{collection}/{field_type_id}",
			scope:       storyblok.ScopeAccount,
			fields: []field{
				pathID("field_type_id", "Field plugin ID."),
				fieldPluginContext(),
			},
		},
		endpoint{
			name:        "create_field_plugin",
			description: "Create a field plugin.",
			method:      http.MethodPost,
			path:        "/{collection}/",
			scope:       storyblok.ScopeAccount,
			envelope:    "field_type",
			fields: []field{
				body("name", tools.KindString, "Plugin name.").required(),
				body("body", tools.KindString, "Plugin source.").required(),
				body("compiled_body", tools.KindString, "Compiled plugin source.").withDefault(""),
				fieldPluginContext(),
			},
		},
		endpoint{
			name:        "update_field_plugin",
			description: "Update a field plugin.",
			method:      http.MethodPut,
			path:        "/{collection}/{field_type_id}",
			scope:       storyblok.ScopeAccount,
			envelope:    "field_type",
			resource:    "Field plugin",
			fields: []field{
				pathID("field_type_id", "Field plugin ID."),
				fieldPluginContext(),
				body("name", tools.KindString, "Plugin name."),
				body("body", tools.KindString, "Plugin source."),
				body("compiled_body", tools.KindString, "Compiled plugin source."),
				body("options", tools.KindObject, "Plugin options."),
				body("space_ids", tools.KindArray, "Spaces the plugin is assigned to.").of(tools.KindInteger),
			},
		},
		endpoint{
			name:        "delete_field_plugin",
			description: "Delete a field plugin.",
			method:      http.MethodDelete,
			path:        "/{collection}/{field_type_id}",
			scope:       storyblok.ScopeAccount,
			resource:    "Field plugin",
			fields: []field{
				pathID("field_type_id", "Field plugin ID."),
				fieldPluginContext(),
			},
		},
	)
}
