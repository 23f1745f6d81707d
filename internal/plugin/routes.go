package plugin

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// ErrNoReverseMatch is returned by Reverse when no route matches the name
// and arguments.
var ErrNoReverseMatch = errors.New("no reverse match")

// Route is one entry of a plugin URL list. Path is relative to the mount
// prefix and may contain {param} wildcards as understood by http.ServeMux.
type Route struct {
	Name    string
	Method  string
	Path    string
	Handler http.Handler
}

// mountedRoute is a route after its prefix has been resolved.
type mountedRoute struct {
	Route
	fullPath string
	params   []string
}

var wildcardRe = regexp.MustCompile(`\{([^}/]+)\}`)

// prefixFromRegex converts an anchored prefix pattern like
// "^openedx_plugin/api/" into the mux path prefix "/openedx_plugin/api/".
// Only literal prefixes are supported.
func prefixFromRegex(pattern string) (string, error) {
	if !strings.HasPrefix(pattern, "^") {
		return "", fmt.Errorf("url regex %q must be anchored with ^", pattern)
	}

	literal := strings.TrimPrefix(pattern, "^")
	if strings.ContainsAny(literal, `$.*+?()[]{}|\`) {
		return "", fmt.Errorf("url regex %q must be a literal path prefix", pattern)
	}
	if literal != "" && !strings.HasSuffix(literal, "/") {
		return "", fmt.Errorf("url regex %q must end with /", pattern)
	}

	return "/" + strings.TrimPrefix(literal, "/"), nil
}

func mountRoute(prefix string, r Route) (mountedRoute, error) {
	if r.Handler == nil {
		return mountedRoute{}, fmt.Errorf("route %q has no handler", r.Name)
	}

	full := prefix + strings.TrimPrefix(r.Path, "/")

	var params []string
	for _, m := range wildcardRe.FindAllStringSubmatch(full, -1) {
		params = append(params, strings.TrimSuffix(m[1], "..."))
	}

	return mountedRoute{Route: r, fullPath: full, params: params}, nil
}

// pattern returns the ServeMux pattern for the route.
func (m mountedRoute) pattern() string {
	if m.Method == "" {
		return m.fullPath
	}
	return m.Method + " " + m.fullPath
}

// reverse substitutes args for the route's wildcards in order.
func (m mountedRoute) reverse(args []string) (string, error) {
	if len(args) != len(m.params) {
		return "", fmt.Errorf("%w: %q takes %d arguments, got %d", ErrNoReverseMatch, m.Name, len(m.params), len(args))
	}

	i := 0
	return wildcardRe.ReplaceAllStringFunc(m.fullPath, func(string) string {
		arg := args[i]
		i++
		return escapeSegment(arg)
	}), nil
}

// escapeSegment escapes a path segment, keeping characters common in course
// keys (":" and "+") readable.
func escapeSegment(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-._~:+@!$&'*,;=", c) >= 0
}
