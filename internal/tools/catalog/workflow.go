package catalog

import (
	"net/http"

	"github.com/Kiran1689/storyblok-mcp-server/internal/storyblok"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools"
)

func workflowStageFields() []field {
	return []field{
		body("user_ids", tools.KindArray, "Users allowed in this stage.").of(tools.KindInteger),
		body("space_role_ids", tools.KindArray, "Space roles allowed in this stage.").of(tools.KindInteger),
		body("workflow_stage_ids", tools.KindArray, "Stages a story may move to next.").of(tools.KindInteger),
		body("position", tools.KindInteger, "Position in the workflow."),
		body("after_publish_id", tools.KindInteger, "Stage to move to after publishing."),
	}
}

var workflowStagePermissions = []string{
	"is_default",
	"allow_publish",
	"allow_all_stages",
	"allow_admin_publish",
	"allow_all_users",
	"allow_admin_change",
	"allow_editor_change",
}

func workflowStagePermissionFields(withDefaults bool) []field {
	fields := make([]field, 0, len(workflowStagePermissions))
	for _, name := range workflowStagePermissions {
		f := body(name, tools.KindBoolean, "Stage permission "+name+".")
		if withDefaults {
			f = f.withDefault(false)
		}
		fields = append(fields, f)
	}
	return fields
}

func releaseFields() []field {
	return []field{
		body("release_at", tools.KindString, "ISO 8601 release time."),
		body("timezone", tools.KindString, "Time zone, e.g. Europe/Vienna."),
		body("branches_to_deploy", tools.KindArray, "Branch IDs deployed on release.").of(tools.KindInteger),
		body("users_to_notify_ids", tools.KindArray, "Users notified on release.").of(tools.KindInteger),
	}
}

func branchFields() []field {
	return []field{
		body("source_id", tools.KindInteger, "Branch to copy content from."),
		body("url", tools.KindString, "Preview URL."),
		body("position", tools.KindInteger, "Position in the pipeline."),
	}
}

func workflowTools(c *storyblok.Client) []tools.Definition {
	return definitions(c,
		endpoint{
			name:        "retrieve_multiple_workflows",
			description: "List workflows, optionally for one content type.",
			method:      http.MethodGet,
			path:        "/workflows",
			fields:      []field{query("content_type", tools.KindString, "Content type name.")},
		},
		endpoint{
			name:        "retrieve_single_workflow",
			description: "Get a workflow by ID.",
			method:      http.MethodGet,
			path:        "/workflows/{workflow_id}",
			fields:      []field{pathID("workflow_id", "Workflow ID.")},
		},
		endpoint{
			name:        "create_workflow",
			description: "Create a workflow for a set of content types.",
			method:      http.MethodPost,
			path:        "/workflows",
			envelope:    "workflow",
			fields: []field{
				body("name", tools.KindString, "Workflow name.").required(),
				body("content_types", tools.KindArray, "Content type names.").of(tools.KindString).required(),
			},
		},
		endpoint{
			name:        "update_workflow",
			description: "Update a workflow.",
			method:      http.MethodPut,
			path:        "/workflows/{workflow_id}",
			envelope:    "workflow",
			resource:    "Workflow",
			fields: []field{
				pathID("workflow_id", "Workflow ID."),
				body("name", tools.KindString, "Workflow name."),
				body("content_types", tools.KindArray, "Content type names.").of(tools.KindString),
			},
		},
		endpoint{
			name:        "duplicate_workflow",
			description: "Copy a workflow under a new name.",
			method:      http.MethodPost,
			path:        "/workflows/{workflow_id}/duplicate",
			envelope:    "workflow",
			resource:    "Workflow",
			fields: []field{
				pathID("workflow_id", "Workflow ID."),
				body("name", tools.KindString, "Name of the copy.").required(),
				body("content_types", tools.KindArray, "Content type names.").of(tools.KindString).required(),
			},
		},
		endpoint{
			name:        "delete_workflow",
			description: "Delete a workflow.",
			method:      http.MethodDelete,
			path:        "/workflows/{workflow_id}",
			resource:    "Workflow",
			fields:      []field{pathID("workflow_id", "Workflow ID.")},
		},

		endpoint{
			name:        "retrieve_multiple_workflow_stages",
			description: "List workflow stages.",
			method:      http.MethodGet,
			path:        "/workflow_stages/",
			fields: []field{
				query("exclude_id", tools.KindInteger, "Stage ID to leave out."),
				query("by_ids", tools.KindString, "Comma separated stage IDs."),
				query("search", tools.KindString, "Search by name."),
				query("in_workflow", tools.KindInteger, "Workflow ID."),
			},
		},
		endpoint{
			name:        "retrieve_single_workflow_stage",
			description: "Get a workflow stage by ID.",
			method:      http.MethodGet,
			path:        "/workflow_stages/{workflow_stage_id}",
			fields:      []field{pathID("workflow_stage_id", "Workflow stage ID.")},
		},
		endpoint{
			name:        "create_workflow_stage",
			description: "Create a workflow stage. Permission flags default to false.",
			method:      http.MethodPost,
			path:        "/workflow_stages",
			envelope:    "workflow_stage",
			fields: append(append([]field{
				body("name", tools.KindString, "Stage name.").required(),
				body("color", tools.KindString, "Hex color.").required(),
				body("workflow_id", tools.KindInteger, "Workflow the stage belongs to."),
			}, workflowStagePermissionFields(true)...), workflowStageFields()...),
		},
		endpoint{
			name:        "update_workflow_stage",
			description: "Update a workflow stage. Only the provided fields are sent.",
			method:      http.MethodPut,
			path:        "/workflow_stages/{workflow_stage_id}",
			envelope:    "workflow_stage",
			resource:    "Workflow stage",
			fields: append(append([]field{
				pathID("workflow_stage_id", "Workflow stage ID."),
				body("name", tools.KindString, "Stage name."),
				body("color", tools.KindString, "Hex color."),
			}, workflowStagePermissionFields(false)...), workflowStageFields()...),
		},
		endpoint{
			name:        "delete_workflow_stage",
			description: "Delete a workflow stage.",
			method:      http.MethodDelete,
			path:        "/workflow_stages/{workflow_stage_id}",
			resource:    "Workflow stage",
			fields:      []field{pathID("workflow_stage_id", "Workflow stage ID.")},
		},

		endpoint{
			name:        "retrieve_multiple_workflow_stage_changes",
			description: "List workflow stage changes, optionally for one story.",
			method:      http.MethodGet,
			path:        "/workflow_stage_changes",
			fields:      []field{query("with_story", tools.KindInteger, "Story ID.")},
		},
		endpoint{
			name:        "create_workflow_stage_change",
			description: "Move a story to a workflow stage.",
			method:      http.MethodPost,
			path:        "/workflow_stage_changes",
			envelope:    "workflow_stage_change",
			fields: []field{
				body("story_id", tools.KindInteger, "Story ID.").required(),
				body("workflow_stage_id", tools.KindInteger, "Target workflow stage ID.").required(),
			},
		},

		endpoint{
			name:        "retrieve_multiple_releases",
			description: "List releases, optionally for one branch.",
			method:      http.MethodGet,
			path:        "/releases",
			fields:      []field{query("branch_id", tools.KindInteger, "Branch ID.")},
		},
		endpoint{
			name:        "retrieve_single_release",
			description: "Get a release by ID.",
			method:      http.MethodGet,
			path:        "/releases/{release_id}",
			fields:      []field{pathID("release_id", "Release ID.")},
		},
		endpoint{
			name:        "create_release",
			description: "Create a release.",
			method:      http.MethodPost,
			path:        "/releases",
			envelope:    "release",
			fields: append([]field{
				body("name", tools.KindString, "Release name.").required(),
			}, releaseFields()...),
		},
		endpoint{
			name:        "update_release",
			description: "Update a release. Set do_release to publish it now.",
			method:      http.MethodPut,
			path:        "/releases/{release_id}",
			envelope:    "release",
			resource:    "Release",
			fields: append([]field{
				pathID("release_id", "Release ID."),
				body("name", tools.KindString, "Release name."),
				top("do_release", tools.KindBoolean, "Publish the release immediately."),
			}, releaseFields()...),
		},
		endpoint{
			name:        "delete_release",
			description: "Delete a release.",
			method:      http.MethodDelete,
			path:        "/releases/{release_id}",
			resource:    "Release",
			fields:      []field{pathID("release_id", "Release ID.")},
		},

		endpoint{
			name:        "retrieve_multiple_branches",
			description: "List the branches of the pipeline.",
			method:      http.MethodGet,
			path:        "/branches/",
			fields: []field{
				query("by_ids", tools.KindString, "Comma separated branch IDs."),
				query("search", tools.KindString, "Search by name."),
			},
		},
		endpoint{
			name:        "retrieve_single_branch",
			description: "Get a branch by ID.",
			method:      http.MethodGet,
			path:        "/branches/{branch_id}",
			fields:      []field{pathID("branch_id", "Branch ID.")},
		},
		endpoint{
			name:        "create_branch",
			description: "Create a pipeline branch.",
			method:      http.MethodPost,
			path:        "/branches/",
			envelope:    "branch",
			fields: append([]field{
				body("name", tools.KindString, "Branch name.").required(),
			}, branchFields()...),
		},
		endpoint{
			name:        "update_branch",
			description: "Update a pipeline branch.",
			method:      http.MethodPut,
			path:        "/branches/{branch_id}",
			envelope:    "branch",
			resource:    "Branch",
			fields: append([]field{
				pathID("branch_id", "Branch ID."),
				body("name", tools.KindString, "Branch name."),
			}, branchFields()...),
		},
		endpoint{
			name:        "delete_branch",
			description: "Delete a pipeline branch.",
			method:      http.MethodDelete,
			path:        "/branches/{branch_id}",
			resource:    "Branch",
			fields:      []field{pathID("branch_id", "Branch ID.")},
		},

		endpoint{
			name:        "retrieve_multiple_story_schedules",
			description: "List story schedules.",
			method:      http.MethodGet,
			path:        "/story_schedulings/",
			fields: []field{
				query("by_status", tools.KindString, "Filter by status.").oneOf("published", "unpublished"),
			},
		},
		endpoint{
			name:        "retrieve_one_story_schedule",
			description: "Get a story schedule by ID.",
			method:      http.MethodGet,
			path:        "/story_schedulings/{story_scheduling_id}",
			fields:      []field{pathID("story_scheduling_id", "Story schedule ID.")},
		},
		endpoint{
			name:        "create_story_schedule",
			description: "Schedule a story for publishing.",
			method:      http.MethodPost,
			path:        "/story_schedulings",
			envelope:    "story_scheduling",
			fields: []field{
				body("story_id", tools.KindInteger, "Story ID.").required(),
				body("publish_at", tools.KindString, "ISO 8601 publish time.").required(),
				body("language", tools.KindString, "Language code to publish."),
			},
		},
		endpoint{
			name:        "update_story_schedule",
			description: "Update a story schedule.",
			method:      http.MethodPut,
			path:        "/story_schedulings/{story_scheduling_id}",
			envelope:    "story_scheduling",
			resource:    "Story schedule",
			fields: []field{
				pathID("story_scheduling_id", "Story schedule ID."),
				body("publish_at", tools.KindString, "ISO 8601 publish time."),
				body("language", tools.KindString, "Language code to publish."),
			},
		},
		endpoint{
			name:        "delete_story_schedule",
			description: "Delete a story schedule.",
			method:      http.MethodDelete,
			path:        "/story_schedulings/{story_scheduling_id}",
			resource:    "Story schedule",
			fields:      []field{pathID("story_scheduling_id", "Story schedule ID.")},
		},
	)
}
