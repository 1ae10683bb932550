package mcp

import (
	"encoding/json"
	"strings"
)

type TextContent struct {
	text string
}

func NewTextContent(text string) Content {
	return &TextContent{text: text}
}

func (c *TextContent) Type() string {
	return "text"
}

func (c *TextContent) GetText() string {
	return c.text
}

type toolResult struct {
	content []Content
	isError bool
	kind    string
}

// NewToolResult builds a success envelope.
func NewToolResult(content ...Content) ToolResult {
	return &toolResult{content: content}
}

// NewToolError builds the failure envelope carrying a single text item.
func NewToolError(text string) ToolResult {
	return NewToolErrorOfKind("unknown", text)
}

// NewToolErrorOfKind is NewToolError with an error classification attached
// for logging. The kind never reaches the wire.
func NewToolErrorOfKind(kind, text string) ToolResult {
	return &toolResult{content: []Content{NewTextContent(text)}, isError: true, kind: kind}
}

func (r *toolResult) IsError() bool {
	return r.isError
}

func (r *toolResult) GetContent() []Content {
	return r.content
}

func (r *toolResult) ErrorKind() string {
	return r.kind
}

type wireContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type wireResult struct {
	IsError bool          `json:"isError"`
	Content []wireContent `json:"content"`
}

// MarshalJSON renders {isError, content:[{type, text}]}.
func (r *toolResult) MarshalJSON() ([]byte, error) {
	out := wireResult{IsError: r.isError, Content: make([]wireContent, 0, len(r.content))}
	for _, c := range r.content {
		out.Content = append(out.Content, wireContent{Type: c.Type(), Text: c.GetText()})
	}
	return json.Marshal(out)
}

// Text concatenates the text items of a result.
func Text(r ToolResult) string {
	parts := make([]string, 0, len(r.GetContent()))
	for _, c := range r.GetContent() {
		parts = append(parts, c.GetText())
	}
	return strings.Join(parts, "\n")
}
