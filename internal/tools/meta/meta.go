// Package meta holds the process-level tools that describe the server itself
// rather than a Storyblok resource.
package meta

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Kiran1689/storyblok-mcp-server/internal/tools"
)

// PingMessage is returned when the Management API answers the ping.
const PingMessage = "Server is running and Storyblok API is reachable."

// FormatToolList renders the registered tools, one "name: description" line
// each, sorted by name.
func FormatToolList(infos []tools.ToolInfo) string {
	sorted := make([]tools.ToolInfo, len(infos))
	copy(sorted, infos)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Available tools (total: %d):\n", len(sorted))
	for _, info := range sorted {
		fmt.Fprintf(&b, "%s: %s\n", info.Name, info.Description)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
