package catalog

import (
	"context"
	"net/http"

	"github.com/Kiran1689/storyblok-mcp-server/internal/storyblok"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools"
)

func componentFields() []field {
	return []field{
		body("schema", tools.KindObject, "Field schema keyed by field name."),
		body("preview_field", tools.KindString, "Field used as preview."),
		body("preview_tmpl", tools.KindString, "Preview template."),
		body("component_group_uuid", tools.KindString, "Component folder UUID."),
		body("color", tools.KindString, "Hex color."),
		body("icon", tools.KindString, "Icon name."),
		body("internal_tag_ids", tools.KindArray, "Internal tag IDs.").of(tools.KindString),
		body("content_type_asset_preview", tools.KindString, "Asset field used as preview."),
	}
}

func componentTools(c *storyblok.Client, opts Options) []tools.Definition {
	defs := []tools.Definition{fetchComponents(c), componentUsage(c, opts.UsageMaxPages)}
	return append(defs, definitions(c,
		endpoint{
			name:        "get_component",
			description: "Get a component by ID.",
			method:      http.MethodGet,
			path:        "/components/{id}",
			fields:      []field{pathKey("id", "Component ID.")},
		},
		endpoint{
			name:        "create_component",
			description: "Create a component. display_name defaults to name and is_nestable to true.",
			method:      http.MethodPost,
			path:        "/components",
			envelope:    "component",
			fields: append([]field{
				body("name", tools.KindString, "Technical name.").required(),
				body("display_name", tools.KindString, "Display name."),
				body("is_root", tools.KindBoolean, "Usable as content type.").withDefault(false),
				body("is_nestable", tools.KindBoolean, "Usable as nested block.").withDefault(true),
			}, componentFields()...),
			shape: defaultComponentFields,
		},
		endpoint{
			name:        "update_component",
			description: "Update a component. Only the provided fields are sent.",
			method:      http.MethodPut,
			path:        "/components/{id}",
			envelope:    "component",
			resource:    "Component",
			fields: append([]field{
				pathKey("id", "Component ID."),
				body("name", tools.KindString, "Technical name."),
				body("display_name", tools.KindString, "Display name."),
				body("image", tools.KindString, "Preview image URL."),
				body("is_root", tools.KindBoolean, "Usable as content type."),
				body("is_nestable", tools.KindBoolean, "Usable as nested block."),
			}, componentFields()...),
		},
		endpoint{
			name:        "delete_component",
			description: "Delete a component.",
			method:      http.MethodDelete,
			path:        "/components/{id}",
			resource:    "Component",
			fields:      []field{pathKey("id", "Component ID.")},
		},
		endpoint{
			name:        "retrieve_component_versions",
			description: "List the saved versions of a component.",
			method:      http.MethodGet,
			path:        "/versions",
			paginate:    true,
			fields: []field{
				query("component_id", tools.KindString, "Component ID.").as("model_id").required(),
			},
			shape: func(_ tools.Args, req *storyblok.Request) error {
				req.Query["model"] = "components"
				return nil
			},
			result: componentVersionsPage,
		},
		endpoint{
			name:        "retrieve_single_component_version",
			description: "Get one saved version of a component.",
			method:      http.MethodGet,
			path:        "/components/{component_id}/component_versions/{version_id}",
			fields: []field{
				pathKey("component_id", "Component ID."),
				pathKey("version_id", "Version ID."),
			},
		},
		endpoint{
			name:        "restore_component_version",
			description: "Restore a component to a saved version.",
			method:      http.MethodPut,
			path:        "/versions/{version_id}",
			resource:    "Component version",
			fields: []field{
				pathKey("version_id", "Version ID."),
				top("component_id", tools.KindString, "Component ID.").as("model_id").required(),
			},
			shape: func(_ tools.Args, req *storyblok.Request) error {
				bodyObject(req, "")["model"] = "components"
				return nil
			},
		},

		endpoint{
			name:        "fetch_component_folders",
			description: "List component folders.",
			method:      http.MethodGet,
			path:        "/component_groups/",
			fields: []field{
				query("search", tools.KindString, "Search by name."),
				query("with_parent", tools.KindInteger, "Parent folder ID."),
			},
			result: func(_ tools.Args, resp *storyblok.Response) (any, error) {
				groups := listOf(resp.Object(), "component_groups")
				return map[string]any{"component_folders": groups, "count": len(groups)}, nil
			},
		},
		endpoint{
			name:        "retrieve_single_component_folder",
			description: "Get a component folder by ID.",
			method:      http.MethodGet,
			path:        "/component_groups/{folder_id}",
			fields:      []field{pathKey("folder_id", "Folder ID.")},
			result: func(_ tools.Args, resp *storyblok.Response) (any, error) {
				if group, ok := resp.Object()["component_group"]; ok && group != nil {
					return map[string]any{"component_group": group}, nil
				}
				return map[string]any{"component_group": resp.Data}, nil
			},
		},
		endpoint{
			name:        "create_component_folder",
			description: "Create a component folder.",
			method:      http.MethodPost,
			path:        "/component_groups/",
			envelope:    "component_group",
			fields: []field{
				body("name", tools.KindString, "Folder name.").required(),
				body("parent_id", tools.KindInteger, "Parent folder ID."),
			},
		},
		endpoint{
			name:        "update_component_folder",
			description: "Rename or move a component folder.",
			method:      http.MethodPut,
			path:        "/component_groups/{folder_id}",
			envelope:    "component_group",
			resource:    "Component folder",
			fields: []field{
				pathKey("folder_id", "Folder ID."),
				body("name", tools.KindString, "Folder name."),
				body("parent_id", tools.KindInteger, "Parent folder ID."),
			},
		},
		endpoint{
			name:        "delete_component_folder",
			description: "Delete a component folder.",
			method:      http.MethodDelete,
			path:        "/component_groups/{folder_id}",
			resource:    "Component folder",
			fields:      []field{pathKey("folder_id", "Folder ID.")},
		},
	)...)
}

func defaultComponentFields(args tools.Args, req *storyblok.Request) error {
	component := bodyObject(req, "component")
	if !args.Has("display_name") {
		component["display_name"] = args["name"]
	}
	if !args.Has("schema") {
		component["schema"] = map[string]any{}
	}
	return nil
}

func componentVersionsPage(args tools.Args, resp *storyblok.Response) (any, error) {
	versions := listOf(resp.Object(), "versions")
	page := pagination(args)
	return map[string]any{
		"versions":       versions,
		"page":           page["page"],
		"per_page":       page["per_page"],
		"total_versions": len(versions),
	}, nil
}

func fetchComponents(c *storyblok.Client) tools.Definition {
	return tools.Definition{
		Name:        "fetch_components",
		Description: "List components together with the component folders. Use component_summary for id and names only.",
		Params: []tools.Param{
			{Name: "component_summary", Kind: tools.KindBoolean, Default: false, Description: "Return only id, name and display_name."},
			{Name: "include_schema_details", Kind: tools.KindBoolean, Default: true, Description: "Keep the schema of each component."},
			{Name: "filter_by_name", Kind: tools.KindString, Description: "Search by name."},
			{Name: "is_root", Kind: tools.KindBoolean, Description: "Only content types, or only nestable blocks when false."},
			{Name: "in_group", Kind: tools.KindInteger, Description: "Component folder ID."},
			{Name: "sort_by", Kind: tools.KindString, Description: "Sort order, e.g. name:asc."},
			{Name: "per_page", Kind: tools.KindInteger, Description: "Items per page."},
		},
		Run: func(ctx context.Context, args tools.Args) (any, error) {
			query := args.Pick("in_group", "sort_by", "per_page")
			if name, ok := args.String("filter_by_name"); ok && name != "" {
				query["search"] = name
			}
			if isRoot, ok := args.Bool("is_root"); ok {
				query["is_root"] = boolFlag(isRoot)
			}

			resp, err := c.Get(ctx, "/components", query)
			if err != nil {
				return nil, err
			}
			components := listOf(resp.Object(), "components")
			switch {
			case args.Truthy("component_summary"):
				components = summarize(components, "id", "name", "display_name")
			case !args.Truthy("include_schema_details"):
				components = without(components, "schema")
			}

			groups, err := c.Get(ctx, "/component_groups", nil)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"components_count": len(components),
				"components":       components,
				"component_groups": listOf(groups.Object(), "component_groups"),
			}, nil
		},
	}
}

func boolFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// listOf returns obj[key] as a list, or an empty list.
func listOf(obj map[string]any, key string) []any {
	if l, ok := obj[key].([]any); ok {
		return l
	}
	return []any{}
}

// summarize keeps only keys from every object in items.
func summarize(items []any, keys ...string) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		s := make(map[string]any, len(keys))
		for _, k := range keys {
			s[k] = m[k]
		}
		out = append(out, s)
	}
	return out
}

// without drops key from every object in items.
func without(items []any, key string) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			out = append(out, item)
			continue
		}
		s := make(map[string]any, len(m))
		for k, v := range m {
			if k != key {
				s[k] = v
			}
		}
		out = append(out, s)
	}
	return out
}
