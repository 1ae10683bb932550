package catalog

import (
	"net/http"

	"github.com/Kiran1689/storyblok-mcp-server/internal/storyblok"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools"
)

var taskTypes = []string{"webhook", "lambda"}

func taskFields() []field {
	return []field{
		body("description", tools.KindString, "Task description."),
		body("webhook_url", tools.KindString, "URL called when the task runs."),
		body("lambda_code", tools.KindString, "Code of a lambda task."),
		body("user_dialog", tools.KindObject, "Dialog fields shown before the task runs."),
	}
}

func webhookFields() []field {
	return []field{
		body("description", tools.KindString, "Webhook description."),
		body("secret", tools.KindString, "Signing secret."),
	}
}

func automationTools(c *storyblok.Client) []tools.Definition {
	return definitions(c,
		endpoint{
			name:        "retrieve_multiple_tasks",
			description: "List tasks.",
			method:      http.MethodGet,
			path:        "/tasks/",
			paginate:    true,
		},
		endpoint{
			name:        "retrieve_single_task",
			description: "Get a task by ID.",
			method:      http.MethodGet,
			path:        "/tasks/{task_id}",
			fields:      []field{pathID("task_id", "Task ID.")},
		},
		endpoint{
			name:        "create_task",
			description: "Create a task.",
			method:      http.MethodPost,
			path:        "/tasks/",
			envelope:    "task",
			fields: append([]field{
				body("name", tools.KindString, "Task name.").required(),
				body("task_type", tools.KindString, "Task type.").oneOf(taskTypes...).withDefault("webhook"),
			}, taskFields()...),
		},
		endpoint{
			name:        "update_task",
			description: "Update a task.",
			method:      http.MethodPut,
			path:        "/tasks/{task_id}",
			envelope:    "task",
			resource:    "Task",
			fields: append([]field{
				pathID("task_id", "Task ID."),
				body("name", tools.KindString, "Task name."),
				body("task_type", tools.KindString, "Task type.").oneOf(taskTypes...),
			}, taskFields()...),
		},
		endpoint{
			name:        "delete_task",
			description: "Delete a task.",
			method:      http.MethodDelete,
			path:        "/tasks/{task_id}",
			resource:    "Task",
			fields:      []field{pathID("task_id", "Task ID.")},
		},

		endpoint{
			name:        "retrieve_multiple_webhooks",
			description: "List webhook endpoints.",
			method:      http.MethodGet,
			path:        "/webhook_endpoints/",
			paginate:    true,
		},
		endpoint{
			name:        "retrieve_single_webhook",
			description: "Get a webhook endpoint by ID.",
			method:      http.MethodGet,
			path:        "/webhook_endpoints/{webhook_endpoint_id}",
			fields:      []field{pathID("webhook_endpoint_id", "Webhook endpoint ID.")},
		},
		endpoint{
			name:        "add_webhook",
			description: "Register a webhook endpoint for a set of actions.",
			method:      http.MethodPost,
			path:        "/webhook_endpoints/",
			envelope:    "webhook_endpoint",
			fields: append([]field{
				body("name", tools.KindString, "Webhook name.").required(),
				body("endpoint", tools.KindString, "Target URL.").required(),
				body("actions", tools.KindArray, "Actions, e.g. story.published.").of(tools.KindString).required(),
				body("activated", tools.KindBoolean, "Whether the webhook fires.").withDefault(true),
			}, webhookFields()...),
		},
		endpoint{
			name:        "update_webhook",
			description: "Update a webhook endpoint.",
			method:      http.MethodPut,
			path:        "/webhook_endpoints/{webhook_endpoint_id}",
			envelope:    "webhook_endpoint",
			resource:    "Webhook",
			fields: append([]field{
				pathID("webhook_endpoint_id", "Webhook endpoint ID."),
				body("name", tools.KindString, "Webhook name."),
				body("endpoint", tools.KindString, "Target URL."),
				body("actions", tools.KindArray, "Actions.").of(tools.KindString),
				body("activated", tools.KindBoolean, "Whether the webhook fires."),
			}, webhookFields()...),
		},
		endpoint{
			name:        "delete_webhook",
			description: "Delete a webhook endpoint.",
			method:      http.MethodDelete,
			path:        "/webhook_endpoints/{webhook_endpoint_id}",
			resource:    "Webhook",
			fields:      []field{pathID("webhook_endpoint_id", "Webhook endpoint ID.")},
		},
	)
}
