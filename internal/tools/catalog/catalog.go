// Package catalog declares the Storyblok Management API tools.
//
// Plain CRUD passthroughs are declared as endpoints: a method, an RFC 6570
// path template, and fields that say where each argument lands (path, query,
// the resource envelope of the body, or the top of the body). Tools that
// combine several calls or reshape results are written out by hand.
package catalog

import (
	"github.com/Kiran1689/storyblok-mcp-server/internal/storyblok"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools"
)

// Options tunes the composite tools.
type Options struct {
	// UsageMaxPages caps the pages read per version by get_component_usage.
	UsageMaxPages int
}

// New returns every catalog tool bound to c.
func New(c *storyblok.Client, opts Options) []tools.Definition {
	var defs []tools.Definition
	for _, family := range [][]tools.Definition{
		collaborationTools(c),
		assetTools(c),
		componentTools(c, opts),
		datasourceTools(c),
		appTools(c),
		spaceTools(c),
		storyTools(c),
		taxonomyTools(c),
		automationTools(c),
		workflowTools(c),
	} {
		defs = append(defs, family...)
	}
	return defs
}
