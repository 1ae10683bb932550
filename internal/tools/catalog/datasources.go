package catalog

import (
	"net/http"

	"github.com/Kiran1689/storyblok-mcp-server/internal/storyblok"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools"
)

func datasourceTools(c *storyblok.Client) []tools.Definition {
	return definitions(c,
		endpoint{
			name:        "retrieve_multiple_datasources",
			description: "List datasources.",
			method:      http.MethodGet,
			path:        "/datasources",
			fields: []field{
				query("search", tools.KindString, "Search by name or slug."),
				query("by_ids", tools.KindString, "Comma separated datasource IDs."),
			},
		},
		endpoint{
			name:        "retrieve_single_datasource",
			description: "Get a datasource by ID.",
			method:      http.MethodGet,
			path:        "/datasources/{datasource_id}",
			fields:      []field{pathID("datasource_id", "Datasource ID.")},
		},
		endpoint{
			name:        "create_datasource",
			description: "Create a datasource, optionally with dimensions.",
			method:      http.MethodPost,
			path:        "/datasources",
			envelope:    "datasource",
			fields: []field{
				body("name", tools.KindString, "Datasource name.").required(),
				body("slug", tools.KindString, "Datasource slug.").required(),
				body("dimensions", tools.KindArray, "Dimensions as {name, entry_value} objects.").
					of(tools.KindObject).as("dimensions_attributes").withDefault([]any{}),
			},
		},
		endpoint{
			name:        "update_datasource",
			description: "Update a datasource.",
			method:      http.MethodPut,
			path:        "/datasources/{datasource_id}",
			envelope:    "datasource",
			resource:    "Datasource",
			fields: []field{
				pathID("datasource_id", "Datasource ID."),
				body("name", tools.KindString, "Datasource name."),
				body("slug", tools.KindString, "Datasource slug."),
				body("dimensions", tools.KindArray, "Dimensions as {name, entry_value} objects.").
					of(tools.KindObject).as("dimensions_attributes"),
			},
		},
		endpoint{
			name:        "delete_datasource",
			description: "Delete a datasource.",
			method:      http.MethodDelete,
			path:        "/datasources/{datasource_id}",
			resource:    "Datasource",
			fields:      []field{pathID("datasource_id", "Datasource ID.")},
		},

		endpoint{
			name:        "retrieve_multiple_datasource_entries",
			description: "List the entries of a datasource, selected by id or slug.",
			method:      http.MethodGet,
			path:        "/datasource_entries/",
			fields: []field{
				query("datasource_id", tools.KindInteger, "Datasource ID."),
				query("datasource_slug", tools.KindString, "Datasource slug."),
				query("dimension", tools.KindString, "Dimension value to resolve."),
			},
			check: tools.RequireAnyOf("datasource_id", "datasource_slug"),
		},
		endpoint{
			name:        "retrieve_single_datasource_entry",
			description: "Get a datasource entry by ID.",
			method:      http.MethodGet,
			path:        "/datasource_entries/{datasource_entry_id}",
			fields:      []field{pathID("datasource_entry_id", "Datasource entry ID.")},
		},
		endpoint{
			name:        "create_datasource_entry",
			description: "Add an entry to a datasource.",
			method:      http.MethodPost,
			path:        "/datasource_entries",
			envelope:    "datasource_entry",
			fields: []field{
				body("datasource_id", tools.KindInteger, "Datasource ID.").required(),
				body("name", tools.KindString, "Entry key.").required(),
				body("value", tools.KindString, "Entry value.").required(),
			},
		},
		endpoint{
			name:        "update_datasource_entry",
			description: "Update a datasource entry or its value in one dimension.",
			method:      http.MethodPut,
			path:        "/datasource_entries/{datasource_entry_id}",
			envelope:    "datasource_entry",
			resource:    "Datasource entry",
			fields: []field{
				pathID("datasource_entry_id", "Datasource entry ID."),
				body("name", tools.KindString, "Entry key."),
				body("value", tools.KindString, "Entry value."),
				body("dimension_value", tools.KindString, "Value in the given dimension."),
				top("dimension_id", tools.KindInteger, "Dimension ID, required with dimension_value."),
			},
			check: tools.All(
				tools.RequireAnyOf("name", "value", "dimension_value"),
				tools.RequireWith("dimension_value", "dimension_id"),
			),
		},
		endpoint{
			name:        "delete_datasource_entry",
			description: "Delete a datasource entry.",
			method:      http.MethodDelete,
			path:        "/datasource_entries/{datasource_entry_id}",
			resource:    "Datasource entry",
			fields:      []field{pathID("datasource_entry_id", "Datasource entry ID.")},
		},
	)
}
