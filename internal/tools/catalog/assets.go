package catalog

import (
	"net/http"

	"github.com/Kiran1689/storyblok-mcp-server/internal/storyblok"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools"
)

var assetSortOrders = []string{
	"created_at:asc", "created_at:desc",
	"updated_at:asc", "updated_at:desc",
	"short_filename:asc", "short_filename:desc",
}

// metaDataKeys are merged into meta_data unless already set there.
var metaDataKeys = []string{"alt", "title", "source", "copyright"}

func assetTools(c *storyblok.Client) []tools.Definition {
	return definitions(c,
		endpoint{
			name:        "fetch_assets",
			description: "Retrieve multiple assets with optional search, folder, sort and metadata filters.",
			method:      http.MethodGet,
			path:        "/assets",
			paginate:    true,
			fields: []field{
				query("search", tools.KindString, "Search by filename."),
				query("folder_id", tools.KindInteger, "Only assets in this folder.").as("in_folder"),
				query("sort_by", tools.KindString, "Sort order.").oneOf(assetSortOrders...),
				query("is_private", tools.KindBoolean, "Only private assets.").flag(),
				query("by_alt", tools.KindString, "Filter by alt text."),
				query("by_title", tools.KindString, "Filter by title."),
				query("by_copyright", tools.KindString, "Filter by copyright."),
				query("with_tags", tools.KindString, "Comma separated tag names."),
			},
		},
		endpoint{
			name:        "get_asset",
			description: "Get a specific asset by ID.",
			method:      http.MethodGet,
			path:        "/assets/{id}",
			fields:      []field{pathKey("id", "Asset ID.")},
		},
		endpoint{
			name:        "delete_asset",
			description: "Delete an asset.",
			method:      http.MethodDelete,
			path:        "/assets/{id}",
			resource:    "Asset",
			fields:      []field{pathKey("id", "Asset ID.")},
		},
		endpoint{
			name:        "update_asset",
			description: "Update an asset's settings or metadata. alt, title, source and copyright are stored in meta_data.",
			method:      http.MethodPut,
			path:        "/assets/{asset_id}",
			resource:    "Asset",
			fields: []field{
				pathID("asset_id", "Asset ID."),
				body("asset_folder_id", tools.KindInteger, "Move to this folder."),
				body("internal_tag_ids", tools.KindArray, "Internal tag IDs.").of(tools.KindInteger),
				body("locked", tools.KindBoolean, "Lock the asset."),
				body("is_private", tools.KindBoolean, "Make the asset private."),
				body("publish_at", tools.KindString, "ISO 8601 publish time."),
				body("expire_at", tools.KindString, "ISO 8601 expiry time."),
				body("focus", tools.KindString, "Focal point, e.g. 100x200:101x201."),
				body("alt", tools.KindString, "Alt text."),
				body("title", tools.KindString, "Title."),
				body("source", tools.KindString, "Source."),
				body("copyright", tools.KindString, "Copyright."),
				body("meta_data", tools.KindObject, "Raw metadata object."),
			},
			shape: mergeAssetMetaData,
		},
		endpoint{
			name:        "delete_multiple_assets",
			description: "Delete several assets by ID.",
			method:      http.MethodPost,
			path:        "/assets/bulk_destroy",
			resource:    "Assets",
			fields:      []field{top("ids", tools.KindArray, "Asset IDs.").of(tools.KindInteger).required()},
			check:       tools.NonEmpty("ids"),
		},
		endpoint{
			name:        "bulk_move_assets",
			description: "Move several assets into a folder.",
			method:      http.MethodPost,
			path:        "/assets/bulk_update",
			resource:    "Assets",
			fields: []field{
				top("ids", tools.KindArray, "Asset IDs.").of(tools.KindInteger).required(),
				top("asset_folder_id", tools.KindInteger, "Target folder ID.").required(),
			},
			check: tools.NonEmpty("ids"),
		},
		endpoint{
			name:        "bulk_restore_assets",
			description: "Restore several deleted assets.",
			method:      http.MethodPost,
			path:        "/assets/bulk_restore",
			resource:    "Assets",
			fields:      []field{top("ids", tools.KindArray, "Asset IDs.").of(tools.KindInteger).required()},
			check:       tools.NonEmpty("ids"),
		},
		endpoint{
			name:        "init_asset_upload",
			description: "Start an asset upload and return the signed upload URL.",
			method:      http.MethodPost,
			path:        "/assets",
			fields: []field{
				top("filename", tools.KindString, "File name.").required(),
				top("size", tools.KindInteger, "Size in bytes.").required(),
				top("content_type", tools.KindString, "MIME type.").required(),
			},
		},
		endpoint{
			name:        "complete_asset_upload",
			description: "Finish an asset upload after the file was sent to the signed URL.",
			method:      http.MethodPost,
			path:        "/assets/{asset_id}/finish_upload",
			resource:    "Asset upload",
			fields:      []field{pathKey("asset_id", "Asset ID.")},
		},
		endpoint{
			name:        "retrieve_asset_folders",
			description: "List asset folders.",
			method:      http.MethodGet,
			path:        "/asset_folders/",
			fields: []field{
				query("search", tools.KindString, "Search by name."),
				query("with_parent", tools.KindInteger, "Parent folder ID."),
				query("by_ids", tools.KindArray, "Folder IDs.").of(tools.KindInteger),
				query("by_uuids", tools.KindArray, "Folder UUIDs.").of(tools.KindString),
			},
		},
		endpoint{
			name:        "fetch_asset_folder",
			description: "Get an asset folder by ID.",
			method:      http.MethodGet,
			path:        "/asset_folders/{folder_id}",
			fields:      []field{pathKey("folder_id", "Folder ID.")},
		},
		endpoint{
			name:        "create_asset_folder",
			description: "Create an asset folder.",
			method:      http.MethodPost,
			path:        "/asset_folders/",
			envelope:    "asset_folder",
			fields: []field{
				body("name", tools.KindString, "Folder name.").required(),
				body("parent_id", tools.KindInteger, "Parent folder ID."),
			},
		},
		endpoint{
			name:        "update_asset_folder",
			description: "Rename or move an asset folder.",
			method:      http.MethodPut,
			path:        "/asset_folders/{folder_id}",
			envelope:    "asset_folder",
			resource:    "Asset folder",
			fields: []field{
				pathKey("folder_id", "Folder ID."),
				body("name", tools.KindString, "New name."),
				body("parent_id", tools.KindInteger, "New parent folder ID."),
			},
		},
		endpoint{
			name:        "delete_asset_folder",
			description: "Delete an asset folder.",
			method:      http.MethodDelete,
			path:        "/asset_folders/{folder_id}",
			resource:    "Asset folder",
			fields:      []field{pathKey("folder_id", "Folder ID.")},
		},
	)
}

// mergeAssetMetaData moves the loose metadata fields into meta_data without
// overriding keys the caller set there explicitly.
func mergeAssetMetaData(args tools.Args, req *storyblok.Request) error {
	payload := bodyObject(req, "")
	md, _ := args.Object("meta_data")
	merged := make(map[string]any, len(md)+len(metaDataKeys))
	for k, v := range md {
		merged[k] = v
	}
	for _, k := range metaDataKeys {
		delete(payload, k)
		if !args.Has(k) {
			continue
		}
		if _, set := merged[k]; !set {
			merged[k] = args[k]
		}
	}
	if len(merged) > 0 {
		payload["meta_data"] = merged
	} else {
		delete(payload, "meta_data")
	}
	return nil
}
