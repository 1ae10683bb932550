package catalog

import (
	"net/http"

	"github.com/Kiran1689/storyblok-mcp-server/internal/storyblok"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools"
)

var discussionStatuses = []string{"unsolved", "solved"}

func accessTokenFields() []field {
	return []field{
		body("name", tools.KindString, "Token name."),
		body("branch_id", tools.KindInteger, "Branch the token is bound to."),
		body("story_ids", tools.KindArray, "Story IDs the token may read.").of(tools.KindInteger),
		body("min_cache", tools.KindInteger, "Minimum cache time in seconds."),
	}
}

func collaborationTools(c *storyblok.Client) []tools.Definition {
	return definitions(c,
		endpoint{
			name:        "retrieve_multiple_access_tokens",
			description: "List the access tokens of the space.",
			method:      http.MethodGet,
			path:        "/api_keys/",
		},
		endpoint{
			name:        "create_access_token",
			description: "Create an access token.",
			method:      http.MethodPost,
			path:        "/api_keys/",
			envelope:    "api_key",
			fields: append([]field{
				body("access", tools.KindString, "Access level, e.g. private or public.").required(),
			}, accessTokenFields()...),
		},
		endpoint{
			name:        "update_access_token",
			description: "Update an access token.",
			method:      http.MethodPut,
			path:        "/api_keys/{token_id}",
			envelope:    "api_key",
			resource:    "Access token",
			fields: append([]field{
				pathID("token_id", "Access token ID."),
				body("access", tools.KindString, "Access level."),
			}, accessTokenFields()...),
		},
		endpoint{
			name:        "delete_access_token",
			description: "Delete an access token.",
			method:      http.MethodDelete,
			path:        "/api_keys/{token_id}",
			resource:    "Access token",
			fields:      []field{pathID("token_id", "Access token ID.")},
		},

		endpoint{
			name:        "retrieve_multiple_activities",
			description: "List space activities, optionally filtered by date range, owners and types.",
			method:      http.MethodGet,
			path:        "/activities/",
			fields: []field{
				query("created_at_gte", tools.KindString, "Created on or after, YYYY-MM-DD."),
				query("created_at_lte", tools.KindString, "Created on or before, YYYY-MM-DD."),
				query("by_owner_ids", tools.KindArray, "Owner user IDs.").of(tools.KindInteger),
				query("types", tools.KindArray, "Activity types, e.g. story.published.").of(tools.KindString),
			},
		},
		endpoint{
			name:        "retrieve_single_activity",
			description: "Get an activity by ID.",
			method:      http.MethodGet,
			path:        "/activities/{activity_id}",
			fields:      []field{pathID("activity_id", "Activity ID.")},
		},

		endpoint{
			name:        "retrieve_multiple_approvals",
			description: "List approvals assigned to an approver.",
			method:      http.MethodGet,
			path:        "/approvals/",
			paginate:    true,
			fields:      []field{query("approver", tools.KindInteger, "Approver user ID.").required()},
		},
		endpoint{
			name:        "retrieve_single_approval",
			description: "Get an approval by ID.",
			method:      http.MethodGet,
			path:        "/approvals/{approval_id}",
			fields:      []field{pathID("approval_id", "Approval ID.")},
		},
		endpoint{
			name:        "create_approval",
			description: "Request approval of a story from a user.",
			method:      http.MethodPost,
			path:        "/approvals/",
			envelope:    "approval",
			fields: []field{
				body("story_id", tools.KindInteger, "Story ID.").required(),
				body("approver_id", tools.KindInteger, "Approver user ID.").required(),
			},
		},
		endpoint{
			name:        "create_release_approval",
			description: "Request approval of a story within a release.",
			method:      http.MethodPost,
			path:        "/approvals/",
			envelope:    "approval",
			fields: []field{
				body("story_id", tools.KindInteger, "Story ID.").required(),
				body("approver_id", tools.KindInteger, "Approver user ID.").required(),
				top("release_id", tools.KindInteger, "Release ID.").required(),
			},
		},
		endpoint{
			name:        "delete_approval",
			description: "Delete an approval.",
			method:      http.MethodDelete,
			path:        "/approvals/{approval_id}",
			resource:    "Approval",
			fields:      []field{pathID("approval_id", "Approval ID.")},
		},

		endpoint{
			name:        "create_branch_deployment",
			description: "Deploy one or more releases to a branch.",
			method:      http.MethodPost,
			path:        "/deployments/",
			resource:    "Branch deployment",
			fields: []field{
				top("branch_id", tools.KindInteger, "Branch ID.").required(),
				top("release_uuids", tools.KindArray, "Release UUIDs.").of(tools.KindString),
			},
		},

		endpoint{
			name:        "retrieve_multiple_collaborators",
			description: "List the collaborators of the space.",
			method:      http.MethodGet,
			path:        "/collaborators/",
			paginate:    true,
		},
		endpoint{
			name:        "add_collaborator",
			description: "Invite a collaborator to the space by email.",
			method:      http.MethodPost,
			path:        "/collaborators/",
			envelope:    "collaborator",
			fields: []field{
				body("email", tools.KindString, "Collaborator email.").required(),
				body("role", tools.KindString, "Role, e.g. admin or editor."),
				body("space_role_id", tools.KindInteger, "Space role ID."),
				body("space_role_ids", tools.KindArray, "Space role IDs.").of(tools.KindInteger),
				body("permissions", tools.KindArray, "Permission names.").of(tools.KindString),
				body("allow_multiple_roles_creation", tools.KindBoolean, "Allow assigning several roles."),
			},
		},
		endpoint{
			name:        "update_collaborator",
			description: "Update a collaborator's role or permissions.",
			method:      http.MethodPut,
			path:        "/collaborators/{collaborator_id}",
			envelope:    "collaborator",
			resource:    "Collaborator",
			fields: []field{
				pathID("collaborator_id", "Collaborator ID."),
				body("role", tools.KindString, "Role."),
				body("user_id", tools.KindInteger, "User ID."),
				body("permissions", tools.KindArray, "Permission names.").of(tools.KindString),
				body("space_role_id", tools.KindInteger, "Space role ID."),
				body("space_role_ids", tools.KindArray, "Space role IDs.").of(tools.KindInteger),
				body("allowed_paths", tools.KindArray, "Allowed story IDs.").of(tools.KindInteger),
				body("field_permissions", tools.KindArray, "Field permissions.").of(tools.KindString),
			},
		},
		endpoint{
			name:        "delete_collaborator",
			description: "Remove a collaborator. An SSO id, when given, is used instead of the collaborator id.",
			method:      http.MethodDelete,
			path:        "/collaborators/{collaborator}",
			resource:    "Collaborator",
			fields: []field{
				newField("collaborator_id", tools.KindInteger, inPath, "Collaborator ID.").as("collaborator"),
				newField("sso_id", tools.KindString, inPath, "SSO user ID.").as("collaborator"),
			},
			check: tools.RequireAnyOf("collaborator_id", "sso_id"),
		},

		endpoint{
			name:        "retrieve_multiple_discussions",
			description: "List the discussions of a story.",
			method:      http.MethodGet,
			path:        "/stories/{story_id}/discussions",
			paginate:    true,
			fields: []field{
				pathID("story_id", "Story ID."),
				query("by_status", tools.KindString, "Filter by status.").oneOf(discussionStatuses...),
			},
		},
		endpoint{
			name:        "retrieve_specific_discussion",
			description: "Get a discussion by ID.",
			method:      http.MethodGet,
			path:        "/discussions/{discussion_id}",
			fields:      []field{pathID("discussion_id", "Discussion ID.")},
		},
		endpoint{
			name:        "retrieve_idea_discussions_comments",
			description: "List the comments of an idea discussion.",
			method:      http.MethodGet,
			path:        "/discussions/{discussion_uuid}/comments",
			fields:      []field{pathKey("discussion_uuid", "Discussion UUID.")},
		},
		endpoint{
			name:        "create_discussion",
			description: "Open a discussion on a story field with a first comment.",
			method:      http.MethodPost,
			path:        "/stories/{story_id}/discussions",
			envelope:    "discussion",
			fields: []field{
				pathID("story_id", "Story ID."),
				body("title", tools.KindString, "Discussion title.").required(),
				body("fieldname", tools.KindString, "Field the discussion is attached to.").required(),
				body("block_uid", tools.KindString, "UID of the block.").required(),
				body("component", tools.KindString, "Component name of the block.").required(),
				body("lang", tools.KindString, "Language code.").required(),
				body("message_json", tools.KindArray, "Rich text message nodes.").of(tools.KindObject).required(),
			},
			shape: nestDiscussionComment,
		},
		endpoint{
			name:        "retrieve_my_discussions",
			description: "List discussions that mention the current user.",
			method:      http.MethodGet,
			path:        "/mentioned_discussions/me",
			paginate:    true,
			fields: []field{
				query("by_status", tools.KindString, "Filter by status.").oneOf(discussionStatuses...),
			},
		},
		endpoint{
			name:        "resolve_discussion",
			description: "Mark a discussion as solved.",
			method:      http.MethodPut,
			path:        "/discussions/{discussion_id}",
			envelope:    "discussion",
			resource:    "Discussion",
			fields: []field{
				pathID("discussion_id", "Discussion ID."),
				body("solved_at", tools.KindString, "ISO 8601 resolution time.").required(),
			},
		},
		endpoint{
			name:        "retrieve_multiple_comments",
			description: "List the comments of a discussion.",
			method:      http.MethodGet,
			path:        "/discussions/{discussion_id}/comments",
			fields:      []field{pathID("discussion_id", "Discussion ID.")},
		},
		endpoint{
			name:        "create_comment",
			description: "Add a comment to a discussion.",
			method:      http.MethodPost,
			path:        "/discussions/{discussion_id}/comments",
			envelope:    "comment",
			fields: []field{
				pathID("discussion_id", "Discussion ID."),
				body("message_json", tools.KindArray, "Rich text message nodes.").of(tools.KindObject).required(),
				body("message", tools.KindString, "Plain text message."),
			},
		},
		endpoint{
			name:        "update_comment",
			description: "Edit a comment.",
			method:      http.MethodPut,
			path:        "/discussions/{discussion_id}/comments/{comment_id}",
			envelope:    "comment",
			resource:    "Comment",
			fields: []field{
				pathID("discussion_id", "Discussion ID."),
				pathID("comment_id", "Comment ID."),
				body("message_json", tools.KindArray, "Rich text message nodes.").of(tools.KindObject),
				body("message", tools.KindString, "Plain text message."),
			},
			check: tools.RequireAnyOf("message_json", "message"),
		},
		endpoint{
			name:        "delete_comment",
			description: "Delete a comment.",
			method:      http.MethodDelete,
			path:        "/discussions/{discussion_id}/comments/{comment_id}",
			resource:    "Comment",
			fields: []field{
				pathID("discussion_id", "Discussion ID."),
				pathID("comment_id", "Comment ID."),
			},
		},

		endpoint{
			name:        "fetch_space_roles",
			description: "List space roles.",
			method:      http.MethodGet,
			path:        "/space_roles/",
			fields: []field{
				query("search", tools.KindString, "Search by role name."),
				query("by_ids", tools.KindArray, "Role IDs.").of(tools.KindInteger),
			},
		},
		endpoint{
			name:        "get_space_role",
			description: "Get a space role by ID.",
			method:      http.MethodGet,
			path:        "/space_roles/{space_role_id}",
			fields:      []field{pathID("space_role_id", "Space role ID.")},
		},
		endpoint{
			name:        "create_space_role",
			description: "Create a space role.",
			method:      http.MethodPost,
			path:        "/space_roles/",
			envelope:    "space_role",
			fields: append([]field{
				body("role_name", tools.KindString, "Role name.").as("role").required(),
			}, spaceRoleFields()...),
		},
		endpoint{
			name:        "update_space_role",
			description: "Update a space role.",
			method:      http.MethodPut,
			path:        "/space_roles/{space_role_id}",
			envelope:    "space_role",
			resource:    "Space role",
			fields: append([]field{
				pathID("space_role_id", "Space role ID."),
				body("role_name", tools.KindString, "Role name.").as("role"),
			}, spaceRoleFields()...),
		},
		endpoint{
			name:        "delete_space_role",
			description: "Delete a space role.",
			method:      http.MethodDelete,
			path:        "/space_roles/{space_role_id}",
			resource:    "Space role",
			fields:      []field{pathID("space_role_id", "Space role ID.")},
		},
	)
}

func spaceRoleFields() []field {
	return []field{
		body("subtitle", tools.KindString, "Role description."),
		body("permissions", tools.KindArray, "Permission names.").of(tools.KindString),
		body("allowed_paths", tools.KindArray, "Allowed story IDs.").of(tools.KindInteger),
		body("field_permissions", tools.KindArray, "Hidden fields.").of(tools.KindString),
		body("readonly_field_permissions", tools.KindArray, "Read-only fields.").of(tools.KindString),
		body("datasource_ids", tools.KindArray, "Allowed datasource IDs.").of(tools.KindInteger),
		body("component_ids", tools.KindArray, "Allowed component IDs.").of(tools.KindInteger),
		body("branch_ids", tools.KindArray, "Allowed branch IDs.").of(tools.KindInteger),
		body("allowed_languages", tools.KindArray, "Allowed language codes.").of(tools.KindString),
		body("asset_folder_ids", tools.KindArray, "Allowed asset folder IDs.").of(tools.KindInteger),
	}
}

// nestDiscussionComment moves message_json into the opening comment.
func nestDiscussionComment(args tools.Args, req *storyblok.Request) error {
	discussion := bodyObject(req, "discussion")
	delete(discussion, "message_json")
	discussion["comment"] = storyblok.Params{"message_json": args["message_json"]}
	return nil
}
