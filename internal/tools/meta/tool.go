package meta

import (
	"context"
	"errors"

	"github.com/Kiran1689/storyblok-mcp-server/internal/storyblok"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools"
)

// Pinger checks that the Management API is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Tools returns ping and list_tools. lister is read on every call so tools
// registered later are included.
func Tools(p Pinger, lister tools.ToolLister) []tools.Definition {
	return []tools.Definition{Ping(p), ListTools(lister)}
}

func Ping(p Pinger) tools.Definition {
	return tools.Definition{
		Name:         "ping",
		Description:  "Check that the server is running and the Storyblok Management API is reachable.",
		Capabilities: []string{"health"},
		Run: func(ctx context.Context, _ tools.Args) (any, error) {
			if err := p.Ping(ctx); err != nil {
				return nil, err
			}
			return PingMessage, nil
		},
	}
}

func ListTools(lister tools.ToolLister) tools.Definition {
	return tools.Definition{
		Name:         "list_tools",
		Description:  "List every tool this server exposes with its description.",
		Capabilities: []string{"introspection"},
		Run: func(_ context.Context, _ tools.Args) (any, error) {
			if lister == nil {
				return nil, errors.New("tool listing is not available")
			}
			return FormatToolList(lister.List()), nil
		},
	}
}

// compile-time check
var _ Pinger = (*storyblok.Client)(nil)
