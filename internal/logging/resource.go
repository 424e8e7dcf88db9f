// ABOUTME: Resource detection for request logging.
// ABOUTME: Determines which page resource a manifest request addressed.

package logging

import "strings"

const pagesPrefix = "/api/pages/"

// ResourceFromPath returns the resource segment of /api/pages/{resource}/...
// paths, or "" for anything else.
func ResourceFromPath(path string) string {
	if !strings.HasPrefix(path, pagesPrefix) {
		return ""
	}
	rest := strings.TrimPrefix(path, pagesPrefix)
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}
