package catalog

import (
	"context"
	"net/http"

	"github.com/Kiran1689/storyblok-mcp-server/internal/storyblok"
	"github.com/Kiran1689/storyblok-mcp-server/internal/tools"
)

// location says where a field lands in the outgoing request.
type location int

const (
	inQuery location = iota
	inPath
	// inBody fields are nested under the endpoint envelope.
	inBody
	// inTop fields sit next to the envelope at the top of the body.
	inTop
)

// field is a tool parameter plus its wire mapping.
type field struct {
	tools.Param
	in     location
	wire   string
	encode func(any) (any, bool)
}

func newField(name string, kind tools.ParamKind, in location, desc string) field {
	return field{Param: tools.Param{Name: name, Kind: kind, Description: desc}, in: in}
}

func pathID(name, desc string) field {
	return newField(name, tools.KindInteger, inPath, desc).required()
}

func pathKey(name, desc string) field {
	return newField(name, tools.KindString, inPath, desc).required()
}

func query(name string, kind tools.ParamKind, desc string) field {
	return newField(name, kind, inQuery, desc)
}

func body(name string, kind tools.ParamKind, desc string) field {
	return newField(name, kind, inBody, desc)
}

func top(name string, kind tools.ParamKind, desc string) field {
	return newField(name, kind, inTop, desc)
}

func (f field) required() field {
	f.Required = true
	return f
}

// as renames the field on the wire.
func (f field) as(wire string) field {
	f.wire = wire
	return f
}

func (f field) oneOf(values ...string) field {
	f.Enum = values
	return f
}

func (f field) of(kind tools.ParamKind) field {
	f.Items = kind
	return f
}

func (f field) withDefault(v any) field {
	f.Default = v
	return f
}

// flag sends 1 for true and omits false.
func (f field) flag() field {
	f.encode = func(v any) (any, bool) {
		if b, ok := v.(bool); ok && b {
			return 1, true
		}
		return nil, false
	}
	return f
}

// binary sends 1 or 0.
func (f field) binary() field {
	f.encode = func(v any) (any, bool) {
		if b, ok := v.(bool); ok && b {
			return 1, true
		}
		return 0, true
	}
	return f
}

// mapped translates an enum value into its wire form, e.g. a context name
// into the account-level collection it addresses.
func (f field) mapped(m map[string]string) field {
	f.encode = func(v any) (any, bool) {
		s, _ := v.(string)
		out, ok := m[s]
		return out, ok
	}
	return f
}

func (f field) wireName() string {
	if f.wire != "" {
		return f.wire
	}
	return f.Name
}

// endpoint declares a single-call tool.
type endpoint struct {
	name        string
	description string
	method      string
	// path is an RFC 6570 template relative to the scope root.
	path     string
	scope    storyblok.Scope
	envelope string
	fields   []field
	// paginate adds page and per_page query parameters.
	paginate bool
	// resource names the entity in no-content confirmations.
	resource string
	check    func(tools.Args) error
	// shape adjusts the built request before it is sent.
	shape func(tools.Args, *storyblok.Request) error
	// result replaces the default passthrough of the response.
	result func(tools.Args, *storyblok.Response) (any, error)
}

func (e endpoint) params() []tools.Param {
	params := make([]tools.Param, 0, len(e.fields)+2)
	for _, f := range e.fields {
		params = append(params, f.Param)
	}
	if e.paginate {
		params = append(params, pageParams()...)
	}
	return params
}

func pageParams() []tools.Param {
	return []tools.Param{
		{Name: "page", Kind: tools.KindInteger, Default: storyblok.DefaultPage, Description: "Page number."},
		{Name: "per_page", Kind: tools.KindInteger, Default: storyblok.DefaultPerPage, Description: "Items per page, at most 100."},
	}
}

func pagination(args tools.Args) storyblok.Params {
	return storyblok.PaginationParams(
		args.IntOr("page", storyblok.DefaultPage),
		args.IntOr("per_page", storyblok.DefaultPerPage),
	)
}

func (e endpoint) definition(c *storyblok.Client) tools.Definition {
	return tools.Definition{
		Name:        e.name,
		Description: e.description,
		Params:      e.params(),
		Check:       e.check,
		Run: func(ctx context.Context, args tools.Args) (any, error) {
			req, err := e.request(args)
			if err != nil {
				return nil, err
			}
			resp, err := c.Do(ctx, req)
			if err != nil {
				return nil, err
			}
			if e.result != nil {
				return e.result(args, resp)
			}
			return e.outcome(resp), nil
		},
	}
}

func (e endpoint) request(args tools.Args) (storyblok.Request, error) {
	vars := map[string]any{}
	q := storyblok.Params{}
	if e.paginate {
		q = pagination(args)
	}
	inner := storyblok.Params{}
	outer := storyblok.Params{}

	for _, f := range e.fields {
		if !args.Has(f.Name) {
			continue
		}
		v := args[f.Name]
		if f.encode != nil {
			var keep bool
			if v, keep = f.encode(v); !keep {
				continue
			}
		}
		switch f.in {
		case inPath:
			vars[f.wireName()] = v
		case inQuery:
			q[f.wireName()] = v
		case inBody:
			inner[f.wireName()] = v
		case inTop:
			outer[f.wireName()] = v
		}
	}

	path, err := storyblok.ExpandPath(e.path, vars)
	if err != nil {
		return storyblok.Request{}, err
	}

	req := storyblok.Request{Method: e.method, Path: path, Scope: e.scope}
	if len(q) > 0 {
		req.Query = q
	}
	switch {
	case e.envelope != "":
		outer[e.envelope] = inner
		req.Body = outer
	case len(inner) > 0 || len(outer) > 0:
		for k, v := range inner {
			outer[k] = v
		}
		req.Body = outer
	}

	if e.shape != nil {
		if err := e.shape(args, &req); err != nil {
			return storyblok.Request{}, err
		}
	}
	return req, nil
}

func (e endpoint) outcome(resp *storyblok.Response) any {
	if resp.NoContent {
		return noContentMessage(e.method, e.resource)
	}
	return resp.Data
}

func noContentMessage(method, resource string) string {
	if resource == "" {
		resource = "Resource"
	}
	switch method {
	case http.MethodDelete:
		return resource + " deleted successfully"
	case http.MethodPut, http.MethodPatch:
		return resource + " updated successfully"
	default:
		return resource + " request completed successfully"
	}
}

// bodyObject returns the envelope object of req, creating it when needed.
func bodyObject(req *storyblok.Request, envelope string) storyblok.Params {
	outer, ok := req.Body.(storyblok.Params)
	if !ok {
		outer = storyblok.Params{}
		req.Body = outer
	}
	if envelope == "" {
		return outer
	}
	inner, ok := outer[envelope].(storyblok.Params)
	if !ok {
		inner = storyblok.Params{}
		outer[envelope] = inner
	}
	return inner
}

func definitions(c *storyblok.Client, endpoints ...endpoint) []tools.Definition {
	defs := make([]tools.Definition, 0, len(endpoints))
	for _, e := range endpoints {
		defs = append(defs, e.definition(c))
	}
	return defs
}
