package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Kiran1689/storyblok-mcp-server/internal/mcp"
	"github.com/Kiran1689/storyblok-mcp-server/internal/storyblok"
)

// ParamKind is the JSON type of a tool parameter.
type ParamKind string

const (
	KindString  ParamKind = "string"
	KindInteger ParamKind = "integer"
	KindNumber  ParamKind = "number"
	KindBoolean ParamKind = "boolean"
	KindArray   ParamKind = "array"
	KindObject  ParamKind = "object"
	// KindAny accepts any JSON value and omits "type" from the schema.
	KindAny ParamKind = ""
)

// Param describes one tool argument.
type Param struct {
	Name        string
	Description string
	Kind        ParamKind
	Required    bool
	Enum        []string
	// Items is the element kind of an array parameter.
	Items ParamKind
	// Default is applied when the argument is absent.
	Default any
}

// Definition declares a tool: its parameters and what it does.
type Definition struct {
	Name        string
	Description string
	Params      []Param
	// Check runs after parameter validation and before Run. It carries rules
	// that span several arguments.
	Check func(Args) error
	// Run performs the calls. Its value is rendered by Success.
	Run          func(ctx context.Context, args Args) (any, error)
	Capabilities []string
}

// Schema returns the JSON schema of the tool input.
func (d Definition) Schema() json.RawMessage {
	props := make(map[string]any, len(d.Params))
	required := make([]string, 0)
	for _, p := range d.Params {
		props[p.Name] = p.schema()
		if p.Required {
			required = append(required, p.Name)
		}
	}
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	b, _ := json.Marshal(schema)
	return b
}

func (p Param) schema() map[string]any {
	s := map[string]any{}
	if p.Kind != KindAny {
		s["type"] = string(p.Kind)
	}
	if p.Description != "" {
		s["description"] = p.Description
	}
	if len(p.Enum) > 0 {
		s["enum"] = p.Enum
	}
	if p.Kind == KindArray && p.Items != KindAny {
		s["items"] = map[string]any{"type": string(p.Items)}
	}
	if p.Default != nil {
		s["default"] = p.Default
	}
	return s
}

// Bind validates raw arguments against the declared parameters and returns
// them normalized: integers as int64, numbers as float64, booleans as bool.
func (d Definition) Bind(raw json.RawMessage) (Args, error) {
	args, err := DecodeArgs(raw)
	if err != nil {
		return nil, err
	}
	for _, p := range d.Params {
		if !args.Has(p.Name) {
			if p.Required {
				return nil, storyblok.Invalid(p.Name, "is required")
			}
			if p.Default == nil {
				continue
			}
			args[p.Name] = p.Default
		}
		v, err := normalize(p, args[p.Name])
		if err != nil {
			return nil, err
		}
		args[p.Name] = v
	}
	if d.Check != nil {
		if err := d.Check(args); err != nil {
			return nil, err
		}
	}
	return args, nil
}

// Invoke runs the whole contract for one call and never panics.
func (d Definition) Invoke(ctx context.Context, raw json.RawMessage) (result mcp.ToolResult) {
	defer func() {
		if r := recover(); r != nil {
			result = Failure(fmt.Errorf("tool %s panicked: %v", d.Name, r))
		}
	}()

	args, err := d.Bind(raw)
	if err != nil {
		return Failure(err)
	}
	v, err := d.Run(ctx, args)
	if err != nil {
		return Failure(err)
	}
	return Success(v)
}

// definitionTool adapts a Definition to mcp.Tool.
type definitionTool struct {
	def    Definition
	schema json.RawMessage
}

// NewTool builds the mcp.Tool for d.
func NewTool(d Definition) mcp.Tool {
	return &definitionTool{def: d, schema: d.Schema()}
}

func (t *definitionTool) Name() string                { return t.def.Name }
func (t *definitionTool) Description() string         { return t.def.Description }
func (t *definitionTool) Parameters() json.RawMessage { return t.schema }
func (t *definitionTool) Handler() mcp.ToolHandler    { return t }

func (t *definitionTool) Handle(ctx context.Context, params json.RawMessage) (mcp.ToolResult, error) {
	return t.def.Invoke(ctx, params), nil
}

// DefinitionFactory is the ToolFactory for a declared tool.
type DefinitionFactory struct {
	def     Definition
	version string
}

// NewDefinitionFactory wraps d for registration.
func NewDefinitionFactory(d Definition, version string) *DefinitionFactory {
	return &DefinitionFactory{def: d, version: version}
}

func (f *DefinitionFactory) Name() string        { return f.def.Name }
func (f *DefinitionFactory) Description() string { return f.def.Description }
func (f *DefinitionFactory) Version() string     { return f.version }

func (f *DefinitionFactory) Capabilities() []string {
	if len(f.def.Capabilities) == 0 {
		return []string{"storyblok"}
	}
	return f.def.Capabilities
}

func (f *DefinitionFactory) Requirements() map[string]string {
	return map[string]string{"network": "storyblok management api"}
}

func (f *DefinitionFactory) Validate(config ToolConfig) error {
	if !config.Enabled {
		return fmt.Errorf("tool %s is disabled", f.def.Name)
	}
	return nil
}

func (f *DefinitionFactory) Create(ctx context.Context, config ToolConfig) (mcp.Tool, error) {
	if err := f.Validate(config); err != nil {
		return nil, err
	}
	if f.def.Run == nil {
		return nil, fmt.Errorf("tool %s has no run function", f.def.Name)
	}
	return NewTool(f.def), nil
}
