package catalog

import (
	"context"
	"net/http"

	"github.com/spf13/cast"

	"github.com/Kiran1689/storyblok-mcp-server/internal/storyblok"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools"
)

// BulkResult summarizes a sequential bulk operation. One failing item never
// stops the others.
type BulkResult struct {
	TotalProcessed       int              `json:"total_processed"`
	SuccessfulOperations int              `json:"successful_operations"`
	FailedOperations     int              `json:"failed_operations"`
	Results              []map[string]any `json:"results"`
}

func (r *BulkResult) succeed(item map[string]any) {
	item["status"] = "success"
	r.SuccessfulOperations++
	r.Results = append(r.Results, item)
}

func (r *BulkResult) fail(item map[string]any, err error) {
	item["status"] = "error"
	item["error"] = err.Error()
	r.FailedOperations++
	r.Results = append(r.Results, item)
}

func newBulkResult(n int) *BulkResult {
	return &BulkResult{TotalProcessed: n, Results: make([]map[string]any, 0, n)}
}

func storyIDsParam() tools.Param {
	return tools.Param{Name: "story_ids", Kind: tools.KindArray, Items: tools.KindString, Required: true, Description: "Story IDs."}
}

func storiesParam(desc string) tools.Param {
	return tools.Param{Name: "stories", Kind: tools.KindArray, Items: tools.KindObject, Required: true, Description: desc}
}

func storyPath(id any, suffix string) (string, error) {
	return storyblok.ExpandPath("/stories/{id}"+suffix, map[string]any{"id": id})
}

func publishStory(ctx context.Context, c *storyblok.Client, id any) (*storyblok.Response, error) {
	path, err := storyPath(id, "/publish")
	if err != nil {
		return nil, err
	}
	return c.Get(ctx, path, nil)
}

func bulkPublishStories(c *storyblok.Client) tools.Definition {
	return tools.Definition{
		Name:        "bulk_publish_stories",
		Description: "Publish several stories one after another and report each outcome.",
		Params:      []tools.Param{storyIDsParam()},
		Check:       tools.NonEmpty("story_ids"),
		Run: func(ctx context.Context, args tools.Args) (any, error) {
			ids, _ := args.List("story_ids")
			result := newBulkResult(len(ids))
			for _, id := range ids {
				resp, err := publishStory(ctx, c, id)
				if err != nil {
					result.fail(map[string]any{"id": id}, err)
					continue
				}
				result.succeed(map[string]any{"id": id, "data": resp.Data})
			}
			return result, nil
		},
	}
}

func bulkDeleteStories(c *storyblok.Client) tools.Definition {
	return tools.Definition{
		Name:        "bulk_delete_stories",
		Description: "Delete several stories one after another and report each outcome.",
		Params:      []tools.Param{storyIDsParam()},
		Check:       tools.NonEmpty("story_ids"),
		Run: func(ctx context.Context, args tools.Args) (any, error) {
			ids, _ := args.List("story_ids")
			result := newBulkResult(len(ids))
			for _, id := range ids {
				path, err := storyPath(id, "")
				if err == nil {
					_, err = c.Do(ctx, storyblok.Request{Method: http.MethodDelete, Path: path})
				}
				if err != nil {
					result.fail(map[string]any{"id": id}, err)
					continue
				}
				result.succeed(map[string]any{"id": id})
			}
			return result, nil
		},
	}
}

func bulkUpdateStories(c *storyblok.Client) tools.Definition {
	return tools.Definition{
		Name: "bulk_update_stories",
		Description: "Update several stories one after another. Each item needs an id; " +
			"set publish on an item to publish it after the update.",
		Params: []tools.Param{storiesParam("Story updates, each with an id.")},
		Check:  tools.NonEmpty("stories"),
		Run: func(ctx context.Context, args tools.Args) (any, error) {
			items, _ := args.List("stories")
			result := newBulkResult(len(items))
			for _, item := range items {
				update, _ := item.(map[string]any)
				id := update["id"]
				if id == nil {
					result.fail(map[string]any{"id": nil}, storyblok.Invalid("id", "is required for every story"))
					continue
				}

				fields := make(map[string]any, len(update))
				publish := false
				for k, v := range update {
					switch {
					case k == "publish":
						publish = cast.ToBool(v)
					case v != nil:
						fields[k] = v
					}
				}

				path, err := storyPath(id, "")
				if err != nil {
					result.fail(map[string]any{"id": id}, err)
					continue
				}
				resp, err := c.Do(ctx, storyblok.Request{
					Method: http.MethodPut,
					Path:   path,
					Body:   storyblok.Params{"story": fields},
				})
				if err != nil {
					result.fail(map[string]any{"id": id}, err)
					continue
				}

				// A failed publish does not undo the update.
				published := false
				if publish {
					_, perr := publishStory(ctx, c, id)
					published = perr == nil
				}
				result.succeed(map[string]any{"id": id, "data": resp.Data, "published": published})
			}
			return result, nil
		},
	}
}

func bulkCreateStories(c *storyblok.Client) tools.Definition {
	return tools.Definition{
		Name:        "bulk_create_stories",
		Description: "Create several stories one after another and report each outcome.",
		Params:      []tools.Param{storiesParam("Story objects with name, slug and content.")},
		Check:       tools.NonEmpty("stories"),
		Run: func(ctx context.Context, args tools.Args) (any, error) {
			items, _ := args.List("stories")
			result := newBulkResult(len(items))
			for _, item := range items {
				input, ok := item.(map[string]any)
				if !ok {
					result.fail(map[string]any{"input": item}, storyblok.Invalid("stories", "every item must be an object"))
					continue
				}
				resp, err := c.Do(ctx, storyblok.Request{
					Method: http.MethodPost,
					Path:   "/stories",
					Body:   storyblok.Params{"story": input},
				})
				if err != nil {
					result.fail(map[string]any{"input": input, "slug": input["slug"]}, err)
					continue
				}
				story, _ := resp.Object()["story"].(map[string]any)
				result.succeed(map[string]any{
					"input": input,
					"id":    story["id"],
					"slug":  story["slug"],
					"data":  resp.Data,
				})
			}
			return result, nil
		},
	}
}
