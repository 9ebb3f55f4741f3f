package htmx

import (
	"net/http"
	"strings"
)

func IsRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true")
}

// WantsHTML reports whether the caller asked for an HTML fragment rather than JSON.
func WantsHTML(r *http.Request) bool {
	if IsRequest(r) {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
