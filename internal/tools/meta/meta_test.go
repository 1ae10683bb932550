package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kiran1689/storyblok-mcp-server/internal/tools"
)

func TestFormatToolList(t *testing.T) {
	tests := []struct {
		name     string
		infos    []tools.ToolInfo
		expected string
	}{
		{
			name:     "empty",
			infos:    nil,
			expected: "Available tools (total: 0):",
		},
		{
			name: "sorted by name",
			infos: []tools.ToolInfo{
				{Name: "ping", Description: "Check health."},
				{Name: "fetch_stories", Description: "List stories."},
			},
			expected: "Available tools (total: 2):\nfetch_stories: List stories.\nping: Check health.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatToolList(tt.infos))
		})
	}
}

func TestFormatToolList_DoesNotReorderInput(t *testing.T) {
	infos := []tools.ToolInfo{{Name: "b"}, {Name: "a"}}
	FormatToolList(infos)
	assert.Equal(t, "b", infos[0].Name)
}
