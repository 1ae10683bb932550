package tools

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Kiran1689/storyblok-mcp-server/internal/mcp"
	"github.com/Kiran1689/storyblok-mcp-server/internal/storyblok"
)

// Success wraps a tool value. Strings are returned verbatim, anything else
// as indented JSON.
func Success(v any) mcp.ToolResult {
	if s, ok := v.(string); ok {
		return mcp.NewToolResult(mcp.NewTextContent(s))
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return Failure(fmt.Errorf("encode result: %w", err))
	}
	return mcp.NewToolResult(mcp.NewTextContent(string(b)))
}

// Failure renders err into the uniform failure envelope.
func Failure(err error) mcp.ToolResult {
	kind := storyblok.KindOf(err)
	return mcp.NewToolErrorOfKind(kind.String(), FailureText(err))
}

// FailureText is the human-readable message for err.
func FailureText(err error) string {
	switch storyblok.KindOf(err) {
	case storyblok.KindValidation:
		return "Validation error: " + err.Error()
	case storyblok.KindConfig:
		return "Configuration error: " + err.Error()
	case storyblok.KindAPI:
		var apiErr *storyblok.APIError
		errors.As(err, &apiErr)
		return fmt.Sprintf("%s\nEndpoint: %s\nSuggested fix: %s",
			apiErr.Error(), apiErr.Context.Endpoint, apiErr.Context.SuggestedFix)
	default:
		return "Error: " + err.Error()
	}
}
