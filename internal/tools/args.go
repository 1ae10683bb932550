package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/Kiran1689/storyblok-mcp-server/internal/storyblok"
)

// Args are the decoded arguments of one invocation. A key holding JSON null
// is treated as absent.
type Args map[string]any

// DecodeArgs parses the raw arguments object.
func DecodeArgs(raw json.RawMessage) (Args, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Args{}, nil
	}
	var args Args
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, storyblok.Invalid("arguments", "must be a JSON object: %v", err)
	}
	if args == nil {
		args = Args{}
	}
	return args, nil
}

// Has reports whether key was provided with a non-null value.
func (a Args) Has(key string) bool {
	v, ok := a[key]
	return ok && v != nil
}

// Value returns the raw value or nil.
func (a Args) Value(key string) any {
	return a[key]
}

func (a Args) String(key string) (string, bool) {
	if !a.Has(key) {
		return "", false
	}
	s, err := cast.ToStringE(a[key])
	return s, err == nil
}

// StringOr returns the string value or def when absent.
func (a Args) StringOr(key, def string) string {
	if s, ok := a.String(key); ok {
		return s
	}
	return def
}

func (a Args) Int(key string) (int, bool) {
	if !a.Has(key) {
		return 0, false
	}
	n, err := toInt64(a[key])
	return int(n), err == nil
}

// IntOr returns the integer value or def when absent.
func (a Args) IntOr(key string, def int) int {
	if n, ok := a.Int(key); ok {
		return n
	}
	return def
}

func (a Args) Bool(key string) (bool, bool) {
	if !a.Has(key) {
		return false, false
	}
	b, err := cast.ToBoolE(a[key])
	return b, err == nil
}

// Truthy is true only for a present boolean-like true.
func (a Args) Truthy(key string) bool {
	b, ok := a.Bool(key)
	return ok && b
}

func (a Args) List(key string) ([]any, bool) {
	if !a.Has(key) {
		return nil, false
	}
	l, ok := a[key].([]any)
	return l, ok
}

func (a Args) Object(key string) (map[string]any, bool) {
	if !a.Has(key) {
		return nil, false
	}
	m, ok := a[key].(map[string]any)
	return m, ok
}

// Optional wraps key with presence semantics for storyblok.MergeOptional.
func (a Args) Optional(key string) storyblok.Optional[any] {
	if !a.Has(key) {
		return storyblok.Optional[any]{}
	}
	return storyblok.Some(a[key])
}

// Pick returns the provided subset of keys, keeping explicit false, 0 and "".
func (a Args) Pick(keys ...string) storyblok.Params {
	opts := make(map[string]any, len(keys))
	for _, k := range keys {
		opts[k] = a.Optional(k)
	}
	return storyblok.MergeOptional(nil, opts)
}

// normalize coerces a present value to the declared kind.
func normalize(p Param, v any) (any, error) {
	switch p.Kind {
	case KindString:
		switch v.(type) {
		case []any, map[string]any:
			return nil, storyblok.Invalid(p.Name, "must be a string")
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, storyblok.Invalid(p.Name, "must be a string")
		}
		if len(p.Enum) > 0 && !contains(p.Enum, s) {
			return nil, storyblok.Invalid(p.Name, "must be one of %v, got %q", p.Enum, s)
		}
		return s, nil
	case KindInteger:
		if f, ok := v.(float64); ok && f != math.Trunc(f) {
			return nil, storyblok.Invalid(p.Name, "must be an integer, got %v", f)
		}
		if _, isBool := v.(bool); isBool {
			return nil, storyblok.Invalid(p.Name, "must be an integer")
		}
		n, err := toInt64(v)
		if err != nil {
			return nil, storyblok.Invalid(p.Name, "must be an integer, got %v", v)
		}
		return n, nil
	case KindNumber:
		if _, isBool := v.(bool); isBool {
			return nil, storyblok.Invalid(p.Name, "must be a number")
		}
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return nil, storyblok.Invalid(p.Name, "must be a number, got %v", v)
		}
		return f, nil
	case KindBoolean:
		b, err := cast.ToBoolE(v)
		if err != nil {
			return nil, storyblok.Invalid(p.Name, "must be a boolean, got %v", v)
		}
		return b, nil
	case KindArray:
		l, ok := v.([]any)
		if !ok {
			return nil, storyblok.Invalid(p.Name, "must be an array")
		}
		if p.Items == KindAny {
			return l, nil
		}
		out := make([]any, len(l))
		for i, elem := range l {
			item := Param{Name: fmt.Sprintf("%s[%d]", p.Name, i), Kind: p.Items}
			if elem == nil {
				return nil, storyblok.Invalid(item.Name, "must not be null")
			}
			n, err := normalize(item, elem)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case KindObject:
		m, ok := v.(map[string]any)
		if !ok {
			return nil, storyblok.Invalid(p.Name, "must be an object")
		}
		return m, nil
	case KindAny:
		return v, nil
	}
	return v, nil
}

// toInt64 reads an integer. Strings are parsed as base 10 only, so "010"
// stays 10.
func toInt64(v any) (int64, error) {
	if s, ok := v.(string); ok {
		return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	}
	return cast.ToInt64E(v)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
