package tools

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Kiran1689/storyblok-mcp-server/internal/logger"
)

func createTestValidator() *ToolValidator {
	return NewToolValidator(logger.Discard())
}

func TestToolValidator_ValidateName(t *testing.T) {
	validator := createTestValidator()

	tests := []struct {
		name      string
		toolName  string
		wantError bool
	}{
		{"valid simple name", "fetch_stories", false},
		{"valid name with numbers", "tool123", false},
		{"empty name", "", true},
		{"name with hyphen", "fetch-stories", true},
		{"name with space", "fetch stories", true},
		{"name starting with number", "123tool", true},
		{"upper case", "FetchStories", true},
		{"reserved name", "system", true},
		{"too long name", strings.Repeat("a", 65), true},
		{"max length name", strings.Repeat("a", 64), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateName(tt.toolName)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateName() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestToolValidator_ValidateFactory(t *testing.T) {
	validator := createTestValidator()

	tests := []struct {
		name      string
		mutate    func(f *mockToolFactory)
		wantError bool
	}{
		{"valid", func(f *mockToolFactory) {}, false},
		{"empty description", func(f *mockToolFactory) { f.description = "" }, true},
		{"long description", func(f *mockToolFactory) { f.description = strings.Repeat("d", 1025) }, true},
		{"empty version", func(f *mockToolFactory) { f.version = "" }, true},
		{"long version", func(f *mockToolFactory) { f.version = strings.Repeat("1", 33) }, true},
		{"empty capability", func(f *mockToolFactory) { f.capabilities = []string{""} }, true},
		{"empty requirement key", func(f *mockToolFactory) { f.requirements = map[string]string{"": "x"} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := createTestFactory("test_tool")
			tt.mutate(f)
			err := validator.ValidateFactory(f)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateFactory() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestToolValidator_ValidateTool(t *testing.T) {
	validator := createTestValidator()

	valid := &mockTool{
		name:        "get_story",
		description: "Get a story",
		parameters:  json.RawMessage(`{"type":"object","properties":{"id":{"type":"integer"}},"required":["id"]}`),
		handler:     &mockToolHandler{},
	}
	if err := validator.ValidateTool(valid); err != nil {
		t.Fatalf("Expected valid tool, got: %v", err)
	}

	noHandler := *valid
	noHandler.handler = nil
	if err := validator.ValidateTool(&noHandler); err == nil {
		t.Error("Expected error for nil handler")
	}

	badSchema := *valid
	badSchema.parameters = json.RawMessage(`{"type":"string"}`)
	if err := validator.ValidateTool(&badSchema); err == nil {
		t.Error("Expected error for non-object schema")
	}
}

func TestToolValidator_ValidateSchema(t *testing.T) {
	validator := createTestValidator()

	tests := []struct {
		name      string
		schema    string
		wantError bool
	}{
		{"valid object schema", `{"type": "object", "properties": {"name": {"type": "string"}}}`, false},
		{"object with enum", `{"type": "object", "properties": {"sort_by": {"type": "string", "enum": ["created_at:asc"]}}}`, false},
		{"empty", ``, true},
		{"invalid JSON", `{invalid json`, true},
		{"array at top level", `{"type": "array", "items": {"type": "string"}}`, true},
		{"missing type", `{"properties": {}}`, true},
		{"invalid property type", `{"type": "object", "properties": {"a": {"type": "invalid_type"}}}`, true},
		{"invalid properties", `{"type": "object", "properties": "not_an_object"}`, true},
		{"invalid required", `{"type": "object", "required": "not_an_array"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateSchema(json.RawMessage(tt.schema))
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateSchema() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestToolValidator_ValidateToolConfig(t *testing.T) {
	validator := createTestValidator()

	if err := validator.ValidateToolConfig(ToolConfig{Enabled: true}); err != nil {
		t.Errorf("Expected empty config to be valid, got: %v", err)
	}

	cfg := ToolConfig{Enabled: true, Config: map[string]interface{}{"": 1}}
	if err := validator.ValidateToolConfig(cfg); err == nil {
		t.Error("Expected error for empty key")
	}
}

func TestToolValidationErrors(t *testing.T) {
	var errs ToolValidationErrors
	if errs.HasErrors() {
		t.Error("Expected no errors initially")
	}

	errs.Add("name", "x", "first")
	errs.Add("version", "", "second")

	if !errs.HasErrors() {
		t.Error("Expected errors after Add")
	}
	if got, want := errs.Error(), `name "x": first; version: second`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
