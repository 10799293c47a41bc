package pathutil

import (
	"regexp"
	"strings"
)

const uuidSegment = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`

// routeTemplate collapses one ID-bearing route into a fixed label.
type routeTemplate struct {
	pattern  *regexp.Regexp
	template string
}

var routeTemplates = []routeTemplate{
	{regexp.MustCompile(`^/wardrobe/items/` + uuidSegment + `$`), "/wardrobe/items/:id"},
	{regexp.MustCompile(`^/outfits/` + uuidSegment + `$`), "/outfits/:id"},
}

// NormalizePath maps ID-bearing paths onto their route templates so the
// path metric label stays bounded. Query strings and trailing slashes
// are stripped first; static paths pass through unchanged.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, route := range routeTemplates {
		if route.pattern.MatchString(path) {
			return route.template
		}
	}
	return path
}

// ExpectedCardinality is the label count after normalization: the route
// templates plus the static endpoints (/health, /metrics,
// /wardrobe/items, /wardrobe/counts, /outfits, /recommendations).
func ExpectedCardinality() int {
	return len(routeTemplates) + 6
}
