package mdispatch

import (
	"fmt"
	"strings"
	"sync"

	"github.com/LerianStudio/mdispatch/common"
	cn "github.com/LerianStudio/mdispatch/common/constant"
	"github.com/LerianStudio/mdispatch/pkg/mfacet"
)

// RouteOptions controls RegisterRoute's duplicate-pattern policy.
type RouteOptions struct {
	Overwrite bool
}

// ResolvedRoute is what ResolveRoute returns on a match.
type ResolvedRoute struct {
	Handler HandlerFunc
	Params  map[string]string
}

// route holds one registered pattern: its compiled segments and handler.
type route struct {
	pattern  string
	segments []string
	handler  HandlerFunc
}

func isWildcardSegment(seg string) bool {
	return strings.HasPrefix(seg, ":") || seg == "*"
}

// RouterFacet maps message paths to handlers. Patterns are slash-
// separated templates with named segments (":id"); an exact path
// (no wildcard segments) always takes precedence over a pattern that
// would also match.
type RouterFacet struct {
	mfacet.Base

	mu     sync.RWMutex
	exact  map[string]*route
	wild   []*route
}

// NewRouterFacet returns a factory suitable for use as a Hook.Factory
// for the "router" kind.
func NewRouterFacet(source string) func() (mfacet.Facet, error) {
	return func() (mfacet.Facet, error) {
		return &RouterFacet{
			Base:  mfacet.NewBase("router", source),
			exact: make(map[string]*route),
		}, nil
	}
}

// RegisterRoute adds pattern -> handler. Without opts.Overwrite, a
// duplicate pattern is a ValidationError.
func (r *RouterFacet) RegisterRoute(pattern string, handler HandlerFunc, opts RouteOptions) error {
	segments := splitPath(pattern)

	wildcard := false

	for _, s := range segments {
		if isWildcardSegment(s) {
			wildcard = true
			break
		}
	}

	rt := &route{pattern: pattern, segments: segments, handler: handler}

	r.mu.Lock()
	defer r.mu.Unlock()

	if wildcard {
		for i, existing := range r.wild {
			if existing.pattern == pattern {
				if !opts.Overwrite {
					return common.ValidationError{
						EntityType: pattern,
						Code:       cn.ErrRouteAlreadyRegistered.Error(),
						Title:      "Route Already Registered",
						Message:    fmt.Sprintf("route pattern %q already registered", pattern),
					}
				}

				r.wild[i] = rt

				return nil
			}
		}

		r.wild = append(r.wild, rt)

		return nil
	}

	if _, exists := r.exact[pattern]; exists && !opts.Overwrite {
		return common.ValidationError{
			EntityType: pattern,
			Code:       cn.ErrRouteAlreadyRegistered.Error(),
			Title:      "Route Already Registered",
			Message:    fmt.Sprintf("route pattern %q already registered", pattern),
		}
	}

	r.exact[pattern] = rt

	return nil
}

// UnregisterRoute removes pattern from both the exact and wildcard
// tables; a miss is a no-op.
func (r *RouterFacet) UnregisterRoute(pattern string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.exact, pattern)

	for i, existing := range r.wild {
		if existing.pattern == pattern {
			r.wild = append(r.wild[:i], r.wild[i+1:]...)
			break
		}
	}
}

// ResolveRoute finds the handler for path, preferring an exact match
// over any wildcard pattern.
func (r *RouterFacet) ResolveRoute(path string) (*ResolvedRoute, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rt, ok := r.exact[path]; ok {
		return &ResolvedRoute{Handler: rt.handler, Params: map[string]string{}}, true
	}

	segments := splitPath(path)

	for _, rt := range r.wild {
		if params, ok := matchSegments(rt.segments, segments); ok {
			return &ResolvedRoute{Handler: rt.handler, Params: params}, true
		}
	}

	return nil, false
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}

	return strings.Split(trimmed, "/")
}

func matchSegments(pattern, path []string) (map[string]string, bool) {
	if len(pattern) != len(path) {
		return nil, false
	}

	params := make(map[string]string)

	for i, seg := range pattern {
		switch {
		case seg == "*":
			params["*"] = path[i]
		case strings.HasPrefix(seg, ":"):
			params[strings.TrimPrefix(seg, ":")] = path[i]
		case seg != path[i]:
			return nil, false
		}
	}

	return params, true
}
