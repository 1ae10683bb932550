package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kiran1689/storyblok-mcp-server/internal/mcp"
	"github.com/Kiran1689/storyblok-mcp-server/internal/storyblok"
)

func sampleDefinition(run func(ctx context.Context, args Args) (any, error)) Definition {
	return Definition{
		Name:        "update_thing",
		Description: "Update a thing",
		Params: []Param{
			{Name: "thing_id", Kind: KindInteger, Required: true},
			{Name: "name", Kind: KindString},
			{Name: "is_default", Kind: KindBoolean},
			{Name: "sort_by", Kind: KindString, Enum: []string{"name:asc", "name:desc"}},
			{Name: "ids", Kind: KindArray, Items: KindInteger},
			{Name: "page", Kind: KindInteger, Default: 1},
		},
		Run: run,
	}
}

func TestDefinition_Schema(t *testing.T) {
	def := sampleDefinition(nil)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(def.Schema(), &schema))

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []any{"thing_id"}, schema["required"])

	props := schema["properties"].(map[string]any)
	assert.Len(t, props, 6)
	assert.Equal(t, map[string]any{"type": "array", "items": map[string]any{"type": "integer"}}, props["ids"])
	assert.Equal(t, []any{"name:asc", "name:desc"}, props["sort_by"].(map[string]any)["enum"])

	require.NoError(t, NewToolValidator(nil).ValidateSchema(def.Schema()))
}

func TestDefinition_MissingRequiredNeverRuns(t *testing.T) {
	called := false
	def := sampleDefinition(func(ctx context.Context, args Args) (any, error) {
		called = true
		return nil, nil
	})

	result := def.Invoke(context.Background(), json.RawMessage(`{"name":"x"}`))

	assert.True(t, result.IsError())
	assert.Equal(t, "validation", result.ErrorKind())
	assert.Equal(t, "Validation error: thing_id: is required", mcp.Text(result))
	assert.False(t, called)
}

func TestDefinition_Bind(t *testing.T) {
	def := sampleDefinition(nil)

	args, err := def.Bind(json.RawMessage(`{"thing_id": 42, "is_default": false, "name": "", "ids": [1,2]}`))
	require.NoError(t, err)

	assert.Equal(t, int64(42), args["thing_id"])
	assert.Equal(t, false, args["is_default"])
	assert.Equal(t, "", args["name"])
	assert.Equal(t, int64(1), args["page"])
	assert.True(t, args.Has("is_default"))
	assert.False(t, args.Has("sort_by"))
}

func TestDefinition_BindRejects(t *testing.T) {
	def := sampleDefinition(nil)

	tests := []struct {
		name string
		raw  string
	}{
		{"fractional integer", `{"thing_id": 1.5}`},
		{"string for integer", `{"thing_id": "abc"}`},
		{"enum", `{"thing_id": 1, "sort_by": "size"}`},
		{"array kind", `{"thing_id": 1, "ids": "1,2"}`},
		{"array item kind", `{"thing_id": 1, "ids": [1, "abc"]}`},
		{"array item object", `{"thing_id": 1, "ids": [{"x": 1}]}`},
		{"array item null", `{"thing_id": 1, "ids": [null]}`},
		{"hex string for integer", `{"thing_id": "0x10"}`},
		{"not an object", `[1,2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := def.Bind(json.RawMessage(tt.raw))
			require.Error(t, err)
			assert.Equal(t, storyblok.KindValidation, storyblok.KindOf(err))
		})
	}
}

func TestDefinition_BindDecimalStrings(t *testing.T) {
	def := sampleDefinition(nil)

	args, err := def.Bind(json.RawMessage(`{"thing_id": " 010 ", "ids": ["010", 7]}`))
	require.NoError(t, err)

	assert.Equal(t, int64(10), args["thing_id"])
	assert.Equal(t, []any{int64(10), int64(7)}, args["ids"])

	n, ok := Args{"page": "08"}.Int("page")
	assert.True(t, ok)
	assert.Equal(t, 8, n)
}

func TestDefinition_BindArrayItems(t *testing.T) {
	def := Definition{
		Name: "bulk_thing",
		Params: []Param{
			{Name: "names", Kind: KindArray, Items: KindString},
			{Name: "things", Kind: KindArray, Items: KindObject},
			{Name: "anything", Kind: KindArray},
		},
	}

	args, err := def.Bind(json.RawMessage(`{"names": ["a", 2], "things": [{"id": 1}], "anything": [1, "x", {}]}`))
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "2"}, args["names"])
	assert.Equal(t, []any{map[string]any{"id": float64(1)}}, args["things"])
	assert.Len(t, args["anything"], 3)

	_, err = def.Bind(json.RawMessage(`{"names": ["a", {"x": 1}]}`))
	require.Error(t, err)
	assert.Equal(t, "names[1]: must be a string", err.Error())

	_, err = def.Bind(json.RawMessage(`{"things": ["not-an-object"]}`))
	require.Error(t, err)
	assert.Equal(t, "things[0]: must be an object", err.Error())
}

func TestDefinition_Check(t *testing.T) {
	def := sampleDefinition(func(ctx context.Context, args Args) (any, error) { return "ok", nil })
	def.Check = RequireAnyOf("name", "is_default")

	result := def.Invoke(context.Background(), json.RawMessage(`{"thing_id": 1}`))
	assert.True(t, result.IsError())

	result = def.Invoke(context.Background(), json.RawMessage(`{"thing_id": 1, "is_default": false}`))
	assert.False(t, result.IsError())
	assert.Equal(t, "ok", mcp.Text(result))
}

func TestDefinition_InvokeRendersJSON(t *testing.T) {
	def := sampleDefinition(func(ctx context.Context, args Args) (any, error) {
		return map[string]any{"id": args["thing_id"]}, nil
	})

	result := def.Invoke(context.Background(), json.RawMessage(`{"thing_id": 7}`))
	require.False(t, result.IsError())
	assert.JSONEq(t, `{"id": 7}`, mcp.Text(result))
}

func TestDefinition_InvokeRecoversPanic(t *testing.T) {
	def := sampleDefinition(func(ctx context.Context, args Args) (any, error) {
		panic("kaboom")
	})

	result := def.Invoke(context.Background(), json.RawMessage(`{"thing_id": 7}`))
	assert.True(t, result.IsError())
	assert.Contains(t, mcp.Text(result), "kaboom")
}

func TestFailureText(t *testing.T) {
	apiErr := &storyblok.APIError{
		StatusCode: 404,
		StatusText: "Not Found",
		Details:    map[string]any{"error": "not found"},
		Context: storyblok.ErrorContext{
			Endpoint:     "https://mapi.storyblok.com/v1/spaces/1/stories/9",
			SuggestedFix: storyblok.SuggestedFix(404),
		},
	}

	assert.Equal(t,
		"404 Not Found: {\"error\":\"not found\"}\nEndpoint: https://mapi.storyblok.com/v1/spaces/1/stories/9\nSuggested fix: Resource not found. Check endpoint and ID.",
		FailureText(apiErr))
	assert.Equal(t, "Configuration error: STORYBLOK_SPACE_ID is missing.",
		FailureText(&storyblok.ConfigError{Missing: []string{"STORYBLOK_SPACE_ID"}}))
	assert.Equal(t, "Error: dial tcp: refused", FailureText(errors.New("dial tcp: refused")))
}

func TestDefinitionFactory(t *testing.T) {
	def := sampleDefinition(func(ctx context.Context, args Args) (any, error) { return "done", nil })
	factory := NewDefinitionFactory(def, "1.0.0")

	require.NoError(t, NewToolValidator(nil).ValidateFactory(factory))

	_, err := factory.Create(context.Background(), ToolConfig{Enabled: false})
	assert.Error(t, err)

	tool, err := factory.Create(context.Background(), ToolConfig{Enabled: true})
	require.NoError(t, err)
	require.NoError(t, NewToolValidator(nil).ValidateTool(tool))

	result, err := tool.Handler().Handle(context.Background(), json.RawMessage(`{"thing_id": 3}`))
	require.NoError(t, err)
	assert.Equal(t, "done", mcp.Text(result))
}
