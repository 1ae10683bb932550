package tools

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Kiran1689/storyblok-mcp-server/internal/logger"
	"github.com/Kiran1689/storyblok-mcp-server/internal/mcp"
)

const (
	maxNameLength        = 64
	maxDescriptionLength = 1024
	maxVersionLength     = 32
)

// ToolValidator validates tool implementations
type ToolValidator struct {
	logger *logger.Logger
}

// NewToolValidator creates a new tool validator
func NewToolValidator(log *logger.Logger) *ToolValidator {
	return &ToolValidator{logger: log}
}

var (
	// Tool name must be lower snake case, 1-64 characters
	toolNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)

	reservedNames = []string{
		"system", "internal", "mcp", "server", "registry", "health", "status", "admin",
	}
)

// ValidateName validates a tool name
func (v *ToolValidator) ValidateName(name string) error {
	var errors ToolValidationErrors

	if name == "" {
		errors.Add("name", name, "tool name cannot be empty")
		return errors
	}

	if len(name) > maxNameLength {
		errors.Add("name", name, "tool name cannot exceed 64 characters")
	}

	if !toolNameRegex.MatchString(name) {
		errors.Add("name", name, "tool name must start with a lowercase letter and contain only lowercase letters, digits and underscores")
	}

	lowerName := strings.ToLower(name)
	for _, reserved := range reservedNames {
		if lowerName == reserved {
			errors.Add("name", name, fmt.Sprintf("tool name '%s' is reserved", reserved))
			break
		}
	}

	if errors.HasErrors() {
		return errors
	}
	return nil
}

// ValidateFactory validates a tool factory
func (v *ToolValidator) ValidateFactory(factory ToolFactory) error {
	var errors ToolValidationErrors

	if err := v.ValidateName(factory.Name()); err != nil {
		if valErrs, ok := err.(ToolValidationErrors); ok {
			errors = append(errors, valErrs...)
		} else {
			errors.Add("factory.name", factory.Name(), err.Error())
		}
	}

	v.checkDescription(&errors, "factory.description", factory.Description())

	if factory.Version() == "" {
		errors.Add("factory.version", "", "tool version cannot be empty")
	} else if len(factory.Version()) > maxVersionLength {
		errors.Add("factory.version", factory.Version(), "tool version cannot exceed 32 characters")
	}

	capabilities := factory.Capabilities()
	if len(capabilities) > 20 {
		errors.Add("factory.capabilities", fmt.Sprintf("%d items", len(capabilities)), "cannot have more than 20 capabilities")
	}
	for i, capability := range capabilities {
		if capability == "" {
			errors.Add("factory.capabilities", fmt.Sprintf("index %d", i), "capability cannot be empty")
		} else if len(capability) > 64 {
			errors.Add("factory.capabilities", capability, "capability cannot exceed 64 characters")
		}
	}

	for key, value := range factory.Requirements() {
		if key == "" {
			errors.Add("factory.requirements", "empty key", "requirement key cannot be empty")
		}
		if len(value) > 256 {
			errors.Add("factory.requirements", key, "requirement value cannot exceed 256 characters")
		}
	}

	if errors.HasErrors() {
		return errors
	}
	return nil
}

// ValidateTool validates a tool implementation
func (v *ToolValidator) ValidateTool(tool mcp.Tool) error {
	var errors ToolValidationErrors

	if err := v.ValidateName(tool.Name()); err != nil {
		if valErrs, ok := err.(ToolValidationErrors); ok {
			errors = append(errors, valErrs...)
		} else {
			errors.Add("tool.name", tool.Name(), err.Error())
		}
	}

	v.checkDescription(&errors, "tool.description", tool.Description())

	if err := v.ValidateSchema(tool.Parameters()); err != nil {
		errors.Add("tool.parameters", tool.Name(), fmt.Sprintf("invalid JSON schema: %v", err))
	}

	if tool.Handler() == nil {
		errors.Add("tool.handler", "nil", "tool handler cannot be nil")
	}

	if errors.HasErrors() {
		return errors
	}
	return nil
}

func (v *ToolValidator) checkDescription(errors *ToolValidationErrors, field, desc string) {
	if desc == "" {
		errors.Add(field, "", "tool description cannot be empty")
	} else if len(desc) > maxDescriptionLength {
		errors.Add(field, desc[:32]+"...", "tool description cannot exceed 1024 characters")
	}
}

// ValidateSchema compiles an input schema. The top level must be an object.
func (v *ToolValidator) ValidateSchema(params json.RawMessage) error {
	if len(params) == 0 {
		return fmt.Errorf("schema is empty")
	}

	var top map[string]interface{}
	if err := json.Unmarshal(params, &top); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if t, _ := top["type"].(string); t != "object" {
		return fmt.Errorf("top-level type must be object, got %v", top["type"])
	}

	if _, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(params)); err != nil {
		return err
	}
	return nil
}

// ValidateToolConfig validates tool configuration
func (v *ToolValidator) ValidateToolConfig(config ToolConfig) error {
	var errors ToolValidationErrors

	if len(config.Config) > 50 {
		errors.Add("config.config", fmt.Sprintf("%d items", len(config.Config)), "configuration cannot have more than 50 items")
	}
	for key := range config.Config {
		if key == "" {
			errors.Add("config.config", "empty key", "configuration key cannot be empty")
		} else if len(key) > 64 {
			errors.Add("config.config", key, "configuration key cannot exceed 64 characters")
		}
	}

	if errors.HasErrors() {
		return errors
	}
	return nil
}
