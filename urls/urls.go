// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package urls names the public page routes so that handlers, templates and
// tests build links from a name instead of a hard-coded path.
package urls

import (
	"fmt"
	"net/url"
	"strings"
)

// Route names
const (
	Index   = "polls:index"
	Detail  = "polls:detail"
	Results = "polls:results"
	Vote    = "polls:vote"
)

type route struct {
	method string
	path   string // {id} marks the single parameter
}

var routes = map[string]route{
	Index:   {"GET", "/polls/"},
	Detail:  {"GET", "/polls/{id}/"},
	Results: {"GET", "/polls/{id}/results/"},
	Vote:    {"POST", "/polls/{id}/vote/"},
}

// Pattern returns the http.ServeMux pattern for a named route. Patterns end
// in {$} so that each one matches its path exactly.
func Pattern(name string) string {
	r, ok := routes[name]
	if !ok {
		panic("urls: unknown route " + name)
	}
	return r.method + " " + r.path + "{$}"
}

// Reverse builds the path of a named route from its arguments.
func Reverse(name string, args ...string) (string, error) {
	r, ok := routes[name]
	if !ok {
		return "", fmt.Errorf("no route named %q", name)
	}

	want := strings.Count(r.path, "{id}")
	if len(args) != want {
		return "", fmt.Errorf("route %q takes %d argument(s), got %d", name, want, len(args))
	}
	if want == 0 {
		return r.path, nil
	}
	if args[0] == "" {
		return "", fmt.Errorf("route %q needs a non-empty id", name)
	}

	return strings.Replace(r.path, "{id}", url.PathEscape(args[0]), 1), nil
}

// MustReverse is Reverse for routes known to be valid; it panics otherwise.
func MustReverse(name string, args ...string) string {
	path, err := Reverse(name, args...)
	if err != nil {
		panic(err)
	}
	return path
}
